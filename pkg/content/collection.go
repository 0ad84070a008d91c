package content

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Collection is the aggregate root of the content model: an append-only item
// registry plus the label table, dataset bindings, and collection-level
// settings that shape materialization. Collections are built up linearly by
// one caller via the fluent Add API; concurrent mutation is unsupported.
//
// A collection exclusively owns its items and label table. Items never
// reference the collection back.
type Collection struct {
	registry       *Registry
	labels         LabelTable
	datasets       map[string]any
	defaultDataset string
	defaults       Params

	sharedFirstLevel bool
	sharedSet        bool // whether sharedFirstLevel was set explicitly

	warnings []MergeWarning
}

// Option configures a collection at creation time.
type Option func(*Collection)

// WithSharedFirstLevel controls whether multiple top-level groups render
// under one shared tab-strip (true, the default) or as stacked independent
// sections (false). Setting it explicitly makes it sticky across merges.
func WithSharedFirstLevel(shared bool) Option {
	return func(c *Collection) {
		c.sharedFirstLevel = shared
		c.sharedSet = true
	}
}

// WithLabels seeds the label table.
func WithLabels(labels map[string]string) Option {
	return func(c *Collection) {
		for k, v := range labels {
			c.labels.Set(k, v)
		}
	}
}

// WithDefaults sets collection-level default params. Defaults are overlaid
// with per-call params at append time and frozen into each item; changing
// defaults later never rewrites already-appended items.
func WithDefaults(defaults Params) Option {
	return func(c *Collection) { c.defaults = defaults.Clone() }
}

// WithDataset registers a named dataset handle. The handle is opaque to the
// collection model; rendering collaborators interpret it.
func WithDataset(name string, handle any) Option {
	return func(c *Collection) { c.datasets[name] = handle }
}

// WithDefaultDataset names the dataset items use when they carry no explicit
// DatasetRef.
func WithDefaultDataset(name string) Option {
	return func(c *Collection) { c.defaultDataset = name }
}

// New creates an empty collection. SharedFirstLevel defaults to true.
func New(opts ...Option) *Collection {
	c := &Collection{
		registry:         NewRegistry(),
		labels:           NewLabelTable(),
		datasets:         make(map[string]any),
		defaults:         Params{},
		sharedFirstLevel: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ItemOption configures a single Add call.
type ItemOption func(*ItemDraft)

// AtPath places the item in the tab hierarchy. The spec may be any shape
// accepted by [NormalizePath]: a "a/b" string, a key list, or a level map.
func AtPath(spec any) ItemOption {
	return func(d *ItemDraft) { d.Path = spec }
}

// WithTitle sets the item's display heading.
func WithTitle(title string) ItemOption {
	return func(d *ItemDraft) { d.Title = title }
}

// WithTabTitle sets the item's tab label. When empty, the tab label falls
// back to the title.
func WithTabTitle(title string) ItemOption {
	return func(d *ItemDraft) { d.TabTitle = title }
}

// WithParams overlays a params map onto the draft. Later options win on key
// collisions.
func WithParams(params Params) ItemOption {
	return func(d *ItemDraft) { d.Params = d.Params.Merge(params) }
}

// WithParam sets a single param.
func WithParam(key string, value any) ItemOption {
	return func(d *ItemDraft) {
		if d.Params == nil {
			d.Params = Params{}
		}
		d.Params[key] = value
	}
}

// FromDataset binds the item to a named dataset instead of the collection's
// default dataset.
func FromDataset(name string) ItemOption {
	return func(d *ItemDraft) { d.DatasetRef = name }
}

// Add appends an item of the given kind and returns the collection for
// piping. Effective params are resolved here, once: collection defaults
// overlaid with the call's params, then frozen into the item.
func (c *Collection) Add(kind Kind, opts ...ItemOption) *Collection {
	draft := ItemDraft{Kind: kind}
	for _, opt := range opts {
		opt(&draft)
	}
	draft.Params = c.defaults.Merge(draft.Params)
	c.registry.Append(draft)
	return c
}

// AddPageBreak appends a pagination sentinel. The emitter splits output
// documents at each sentinel; the collection model carries it as an ordinary
// item.
func (c *Collection) AddPageBreak() *Collection {
	return c.Add(KindPaginationBreak)
}

// SetLabel records a display label for a group key or dotted path, without
// touching items. Last write wins.
func (c *Collection) SetLabel(key, label string) *Collection {
	c.labels.Set(key, label)
	return c
}

// SetLabels records several labels at once.
func (c *Collection) SetLabels(labels map[string]string) *Collection {
	for k, v := range labels {
		c.labels.Set(k, v)
	}
	return c
}

// SetDefaults replaces the collection defaults used for subsequent Add
// calls. Already-appended items keep their frozen params.
func (c *Collection) SetDefaults(defaults Params) *Collection {
	c.defaults = defaults.Clone()
	return c
}

// SetDataset registers or replaces a named dataset handle.
func (c *Collection) SetDataset(name string, handle any) *Collection {
	c.datasets[name] = handle
	return c
}

// Items returns the flat item list in insertion order.
func (c *Collection) Items() []Item { return c.registry.All() }

// Len returns the number of items in the collection.
func (c *Collection) Len() int { return c.registry.Len() }

// Labels returns a copy of the label table.
func (c *Collection) Labels() LabelTable { return c.labels.Clone() }

// Datasets returns a copy of the dataset bindings.
func (c *Collection) Datasets() map[string]any {
	out := make(map[string]any, len(c.datasets))
	maps.Copy(out, c.datasets)
	return out
}

// Dataset resolves a dataset reference: an empty ref means the collection's
// default dataset. The second return reports whether a handle was found.
func (c *Collection) Dataset(ref string) (any, bool) {
	if ref == "" {
		ref = c.defaultDataset
	}
	if ref == "" && len(c.datasets) == 1 {
		for _, h := range c.datasets {
			return h, true
		}
	}
	h, ok := c.datasets[ref]
	return h, ok
}

// DefaultDataset returns the name of the default dataset, or "".
func (c *Collection) DefaultDataset() string { return c.defaultDataset }

// SharedFirstLevel reports whether top-level groups share one tab-strip.
func (c *Collection) SharedFirstLevel() bool { return c.sharedFirstLevel }

// Warnings returns merge warnings accumulated on this collection, if any.
func (c *Collection) Warnings() []MergeWarning {
	out := make([]MergeWarning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// HasConflicts reports whether merging flagged divergent settings.
func (c *Collection) HasConflicts() bool { return len(c.warnings) > 0 }

// Materialize folds the flat item list into the nested node tree consumed by
// the emitter. The collection is not modified; repeated calls with the same
// contents produce equal trees.
func (c *Collection) Materialize(opts ...TreeOption) []Node {
	return Build(c.Items(), c.labels, c.sharedFirstLevel, opts...)
}

// String returns a one-line summary.
func (c *Collection) String() string {
	return fmt.Sprintf("collection: %d items, %d labels, %d datasets", c.Len(), len(c.labels), len(c.datasets))
}

// Describe returns a human-readable dump of the collection: settings,
// datasets, and the materialized tree with insertion indices. Intended for
// inspection and previews, not machine consumption.
func (c *Collection) Describe() string {
	var b strings.Builder
	b.WriteString(c.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "shared first level: %v\n", c.sharedFirstLevel)
	if len(c.datasets) > 0 {
		names := make([]string, 0, len(c.datasets))
		for name := range c.datasets {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "datasets: %s", strings.Join(names, ", "))
		if c.defaultDataset != "" {
			fmt.Fprintf(&b, " (default: %s)", c.defaultDataset)
		}
		b.WriteString("\n")
	}
	for _, w := range c.warnings {
		fmt.Fprintf(&b, "warning: %s\n", w.Message)
	}
	for _, node := range c.Materialize() {
		describeNode(&b, node, 0)
	}
	return b.String()
}

func describeNode(b *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *GroupNode:
		fmt.Fprintf(b, "%s[%s] %s\n", indent, n.Key, n.Label)
		for _, child := range n.Children {
			describeNode(b, child, depth+1)
		}
	case Leaf:
		fmt.Fprintf(b, "%s%s\n", indent, n.Item)
	}
}
