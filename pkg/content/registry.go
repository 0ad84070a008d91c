package content

// ItemDraft describes an item before it receives an insertion index. The
// zero value is usable; Append normalizes the path and clones the params so
// the finalized item shares no mutable state with the caller.
type ItemDraft struct {
	Kind       Kind
	Path       any // any shape accepted by NormalizePath
	Params     Params
	Title      string
	TabTitle   string
	DatasetRef string
}

// Registry is an append-only, order-preserving list of items. Indices start
// at 1 and increase strictly; they are never reused, even after items from
// other registries are concatenated in (only a merge renumbers).
//
// Registry is a single-writer, in-process builder. It is not safe for
// concurrent use.
type Registry struct {
	items []Item
	next  int
}

// NewRegistry creates an empty registry whose first index is 1.
func NewRegistry() *Registry {
	return &Registry{next: 1}
}

// Append finalizes a draft into an immutable Item, assigns the next
// insertion index, and stores it. The draft's path spec is normalized and
// its params cloned, so mutating the draft afterwards has no effect on the
// stored item.
func (r *Registry) Append(draft ItemDraft) Item {
	item := Item{
		Kind:       draft.Kind,
		Path:       NormalizePath(draft.Path),
		Index:      r.next,
		Params:     draft.Params.Clone(),
		Title:      draft.Title,
		TabTitle:   draft.TabTitle,
		DatasetRef: draft.DatasetRef,
	}
	r.items = append(r.items, item)
	r.next++
	return item
}

// All returns the items in insertion order. The returned slice is a copy;
// the items themselves are values and safe to hold.
func (r *Registry) All() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of items appended so far.
func (r *Registry) Len() int { return len(r.items) }
