package content

import (
	"fmt"
	"reflect"
)

// MergeWarning flags divergent collection-level settings discovered during a
// merge. Warnings never block the merge; the result is usable but flagged so
// callers can surface the drift instead of silently picking a side.
type MergeWarning struct {
	// Setting names the conflicting setting ("shared_first_level",
	// "default_dataset", "dataset").
	Setting string

	// Message describes the conflict and which value won.
	Message string
}

// Merge combines collections into a new one. The inputs are not modified.
//
// Rules:
//   - Items concatenate in argument order, then insertion indices are
//     renumbered sequentially from 1. Only relative order survives, which
//     makes the merge a flattening concatenation: merge(merge(a,b),c),
//     merge(a,merge(b,c)) and merge(a,b,c) yield the same sequence.
//   - Label tables merge key-by-key, later argument wins.
//   - Settings come from the first collection unless a later one set them
//     explicitly. Two explicit, divergent settings produce a MergeWarning
//     on the result, with the later value winning.
//   - Pagination sentinels pass through as ordinary items.
//
// Merging zero collections returns an empty collection.
func Merge(collections ...*Collection) *Collection {
	merged := New()

	for _, c := range collections {
		if c == nil {
			continue
		}

		for _, it := range c.registry.items {
			merged.registry.Append(ItemDraft{
				Kind:       it.Kind,
				Path:       it.Path,
				Params:     it.Params,
				Title:      it.Title,
				TabTitle:   it.TabTitle,
				DatasetRef: it.DatasetRef,
			})
		}

		merged.labels.Merge(c.labels)
		merged.warnings = append(merged.warnings, c.warnings...)

		if c.sharedSet {
			if merged.sharedSet && merged.sharedFirstLevel != c.sharedFirstLevel {
				merged.warnings = append(merged.warnings, MergeWarning{
					Setting: "shared_first_level",
					Message: fmt.Sprintf("merged collections disagree on shared_first_level; using %v from the later collection", c.sharedFirstLevel),
				})
			}
			merged.sharedFirstLevel = c.sharedFirstLevel
			merged.sharedSet = true
		}

		if c.defaultDataset != "" {
			if merged.defaultDataset != "" && merged.defaultDataset != c.defaultDataset {
				merged.warnings = append(merged.warnings, MergeWarning{
					Setting: "default_dataset",
					Message: fmt.Sprintf("merged collections disagree on the default dataset (%q vs %q); using %q", merged.defaultDataset, c.defaultDataset, c.defaultDataset),
				})
			}
			merged.defaultDataset = c.defaultDataset
		}

		for name, handle := range c.datasets {
			if existing, ok := merged.datasets[name]; ok && !sameHandle(existing, handle) {
				merged.warnings = append(merged.warnings, MergeWarning{
					Setting: "dataset",
					Message: fmt.Sprintf("dataset %q is bound in multiple collections; using the later binding", name),
				})
			}
			merged.datasets[name] = handle
		}

		// Later defaults replace earlier ones for items added after the
		// merge; already-appended items carry their frozen params.
		if len(c.defaults) > 0 {
			merged.defaults = merged.defaults.Merge(c.defaults)
		}
	}

	return merged
}

// sameHandle compares dataset handles without panicking on uncomparable
// types. Handles of different or uncomparable types count as distinct.
func sameHandle(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}
