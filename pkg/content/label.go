package content

import (
	"maps"
	"strings"
	"unicode"
)

// LabelTable maps a fully-qualified dotted path ("demographics.details") or a
// bare key ("details") to a display label. Labels are presentation-only
// overrides: they can be updated at any time without touching items, and the
// last write per key wins.
type LabelTable map[string]string

// NewLabelTable returns an empty label table.
func NewLabelTable() LabelTable { return LabelTable{} }

// Set records a label for a key. Last write wins.
func (t LabelTable) Set(key, label string) { t[key] = label }

// Clone returns an independent copy of the table.
func (t LabelTable) Clone() LabelTable {
	out := make(LabelTable, len(t))
	maps.Copy(out, t)
	return out
}

// Merge applies other on top of t in place. Keys defined in both take the
// value from other (last-write-wins, matching merge semantics).
func (t LabelTable) Merge(other LabelTable) {
	maps.Copy(t, other)
}

// Resolve returns the display label for the group at path. Precedence:
// fully-qualified dotted path, then the bare last key, then Humanize of the
// key. The humanized fallback is a display nicety, not a contract.
func (t LabelTable) Resolve(path GroupPath) string {
	if path.IsEmpty() {
		return ""
	}
	if label, ok := t[path.Dotted()]; ok {
		return label
	}
	key := path[len(path)-1]
	if label, ok := t[key]; ok {
		return label
	}
	return Humanize(key)
}

// Humanize converts a path key into a default display label: underscores and
// hyphens become spaces and each word is title-cased, so "age_group" renders
// as "Age Group".
func Humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
