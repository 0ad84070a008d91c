package content

// Kind identifies which renderer or content-block type an item represents.
// The set of kinds is the integration contract between the collection model
// and the rendering collaborators: each kind has a rule entry in the validate
// package declaring its required parameters and column references.
type Kind string

// Content-block kinds.
const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindImage    Kind = "image"
	KindInput    Kind = "input"
	KindSidebar  Kind = "sidebar"
)

// Visualization kinds.
const (
	KindTable      Kind = "table"
	KindMetric     Kind = "metric"
	KindBar        Kind = "bar"
	KindStackedBar Kind = "stacked-bar"
	KindLine       Kind = "line"
	KindScatter    Kind = "scatter"
	KindHeatmap    Kind = "heatmap"
	KindHistogram  Kind = "histogram"
	KindTimeline   Kind = "timeline"
	KindDiagram    Kind = "diagram"
)

// KindPaginationBreak is a sentinel item that never renders. The emitter
// splits the document stream at each sentinel; nothing else in the
// collection model treats it specially.
const KindPaginationBreak Kind = "pagination-break"

// kinds is the registry of all known kinds.
var kinds = map[Kind]bool{
	KindText:            true,
	KindMarkdown:        true,
	KindImage:           true,
	KindInput:           true,
	KindSidebar:         true,
	KindTable:           true,
	KindMetric:          true,
	KindBar:             true,
	KindStackedBar:      true,
	KindLine:            true,
	KindScatter:         true,
	KindHeatmap:         true,
	KindHistogram:       true,
	KindTimeline:        true,
	KindDiagram:         true,
	KindPaginationBreak: true,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return kinds[k] }

// IsSentinel reports whether k is a non-visual instruction to the emitter.
func (k Kind) IsSentinel() bool { return k == KindPaginationBreak }

// Kinds returns all known kinds in stable order.
func Kinds() []Kind {
	out := []Kind{
		KindText, KindMarkdown, KindImage, KindInput, KindSidebar,
		KindTable, KindMetric, KindBar, KindStackedBar, KindLine,
		KindScatter, KindHeatmap, KindHistogram, KindTimeline, KindDiagram,
		KindPaginationBreak,
	}
	return out
}
