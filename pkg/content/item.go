package content

import (
	"fmt"
	"maps"
	"strings"
)

// Params is the opaque key-value parameter map attached to an item. Keys and
// value shapes are specific to the item's kind; the validate package checks
// them against the per-kind rule tables.
type Params map[string]any

// Clone returns a shallow copy of the params map. A nil map clones to an
// empty, non-nil map so appended items always carry a usable map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Merge returns a new map with overlay applied on top of p. Overlay values
// win on key collisions; neither input is modified.
func (p Params) Merge(overlay Params) Params {
	out := p.Clone()
	maps.Copy(out, overlay)
	return out
}

// Item is a leaf unit of content. Items are immutable once appended to a
// registry: "changing" an item means appending a new one. Params are resolved
// at append time (collection defaults overlaid with call params) and frozen,
// so later changes to collection defaults never alter existing items.
type Item struct {
	// Kind identifies the renderer or content-block type.
	Kind Kind

	// Path places the item in the tab hierarchy. Empty means standalone.
	Path GroupPath

	// Index is the insertion index, strictly increasing from 1 within one
	// registry. It is the stable tie-break for ordering and survives
	// unchanged until a merge renumbers the combined sequence.
	Index int

	// Params holds the frozen effective parameters for the item's kind.
	Params Params

	// Title is the display heading. Optional.
	Title string

	// TabTitle labels the item's tab; falls back to Title when empty.
	TabTitle string

	// DatasetRef names a dataset in the collection's dataset map. Empty
	// means the collection's single default dataset.
	DatasetRef string
}

// DisplayTitle returns the tab label: TabTitle if set, else Title.
func (it Item) DisplayTitle() string {
	if it.TabTitle != "" {
		return it.TabTitle
	}
	return it.Title
}

// IsStandalone reports whether the item renders outside any tab group.
func (it Item) IsStandalone() bool { return it.Path.IsEmpty() }

// String returns a compact one-line description, e.g.
// `#3 bar "Age distribution" at demographics/details`.
func (it Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", it.Index, it.Kind)
	if t := it.DisplayTitle(); t != "" {
		fmt.Fprintf(&b, " %q", t)
	}
	if !it.Path.IsEmpty() {
		fmt.Fprintf(&b, " at %s", it.Path)
	}
	if it.DatasetRef != "" {
		fmt.Fprintf(&b, " [%s]", it.DatasetRef)
	}
	return b.String()
}
