// Package validate checks item specs against the per-kind rule tables and,
// optionally, against a live dataset's column names.
//
// Validation is read-only and idempotent: repeated calls with the same
// inputs produce identical results. Two modes exist: fail-fast (the first
// issue aborts with a coded error, ordered by item index then field) and
// collect-all (every issue across every item is gathered for batch
// auditing before a long rendering pass).
//
// Unknown column references carry a fuzzy-match suggestion when a known
// column is within a small edit distance of the typo (see [Suggest]).
package validate

import (
	"fmt"
	"sort"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/errors"
)

// ColumnSet is the set of column names a dataset exposes.
type ColumnSet map[string]struct{}

// NewColumnSet builds a column set from names.
func NewColumnSet(names ...string) ColumnSet {
	s := make(ColumnSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether the set contains name.
func (s ColumnSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the column names in sorted order.
func (s ColumnSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Issue describes one validation finding on one item. Issues are transient
// values produced per Validate call; they are never stored on a collection.
type Issue struct {
	// ItemIndex is the insertion index of the offending item.
	ItemIndex int `json:"item_index"`

	// Kind is the item's kind.
	Kind content.Kind `json:"kind"`

	// Field names the missing parameter, OR-group, or column parameter.
	Field string `json:"field"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Suggestion holds a nearby known column name for typos, or "".
	Suggestion string `json:"suggestion,omitempty"`
}

// String renders the issue as a single actionable line.
func (i Issue) String() string {
	s := fmt.Sprintf("item #%d (%s): %s", i.ItemIndex, i.Kind, i.Message)
	if i.Suggestion != "" {
		s += fmt.Sprintf(" (did you mean %q?)", i.Suggestion)
	}
	return s
}

// Result is the outcome of a Validate call.
type Result struct {
	Issues []Issue
}

// OK reports whether validation found no issues.
func (r Result) OK() bool { return len(r.Issues) == 0 }

// Options configures a Validate call.
type Options struct {
	// Columns is the column set of the default dataset. When nil and
	// ColumnsFor is also nil, column-existence checks are skipped.
	Columns ColumnSet

	// ColumnsFor resolves the column set for an item's dataset reference.
	// When set it takes precedence over Columns; returning false for a ref
	// skips column checks for that item.
	ColumnsFor func(datasetRef string) (ColumnSet, bool)

	// StopOnFirstError selects fail-fast mode: Validate returns a coded
	// error carrying the first issue instead of collecting all of them.
	StopOnFirstError bool
}

// Validate checks every item against the rule tables and the supplied
// column sets. Items are processed in index order; within one item the
// required-field check precedes the column checks, and fields are checked
// in their declared table order, so issue order is deterministic.
//
// An item with an empty kind is a contract violation of the internal API
// (the public Add path cannot produce one) and returns an INVALID_KIND
// error immediately regardless of mode.
func Validate(items []content.Item, opts Options) (Result, error) {
	var result Result

	report := func(issue Issue, code errors.Code) error {
		result.Issues = append(result.Issues, issue)
		if opts.StopOnFirstError {
			return errors.New(code, "%s", issue.String())
		}
		return nil
	}

	for _, item := range items {
		if item.Kind == "" {
			return result, errors.New(errors.ErrCodeInvalidKind, "item #%d has empty kind", item.Index)
		}

		rule, ok := RuleFor(item.Kind)
		if !ok {
			issue := Issue{
				ItemIndex: item.Index,
				Kind:      item.Kind,
				Message:   fmt.Sprintf("unknown kind %q", item.Kind),
			}
			if err := report(issue, errors.ErrCodeInvalidKind); err != nil {
				return result, err
			}
			continue
		}

		if issue, ok := checkRequired(item, rule); ok {
			if err := report(issue, errors.ErrCodeMissingField); err != nil {
				return result, err
			}
		}

		columns, ok := columnsFor(item, opts)
		if !ok {
			continue
		}
		for _, issue := range checkColumns(item, rule, columns) {
			if err := report(issue, errors.ErrCodeUnknownColumn); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// columnsFor resolves the column set applying to one item.
func columnsFor(item content.Item, opts Options) (ColumnSet, bool) {
	if opts.ColumnsFor != nil {
		return opts.ColumnsFor(item.DatasetRef)
	}
	if opts.Columns != nil {
		return opts.Columns, true
	}
	return nil, false
}

// checkRequired verifies that at least one of the rule's alternative
// AND-groups is fully present in the item's params.
func checkRequired(item content.Item, rule Rule) (Issue, bool) {
	if len(rule.Required) == 0 {
		return Issue{}, false
	}

	for _, group := range rule.Required {
		if groupSatisfied(item.Params, group) {
			return Issue{}, false
		}
	}

	var missing []string
	for _, field := range rule.Required[0] {
		if !paramPresent(item.Params, field) {
			missing = append(missing, field)
		}
	}

	return Issue{
		ItemIndex: item.Index,
		Kind:      item.Kind,
		Field:     fieldLabel(missing, rule),
		Message:   fmt.Sprintf("missing required parameters: needs %s", rule.Describe()),
	}, true
}

func fieldLabel(missing []string, rule Rule) string {
	if len(missing) == 1 {
		return missing[0]
	}
	return rule.Describe()
}

func groupSatisfied(params content.Params, group FieldGroup) bool {
	for _, field := range group {
		if !paramPresent(params, field) {
			return false
		}
	}
	return true
}

// paramPresent reports whether a param exists with a usable value: not nil,
// not an empty string, not an empty list.
func paramPresent(params content.Params, field string) bool {
	v, ok := params[field]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// checkColumns verifies every column-reference parameter against the
// dataset's column set, producing one issue per unknown name with an
// optional fuzzy suggestion.
func checkColumns(item content.Item, rule Rule, columns ColumnSet) []Issue {
	var issues []Issue

	for _, field := range rule.ColumnFields {
		v, ok := item.Params[field]
		if !ok || v == nil {
			continue
		}
		for _, name := range columnValues(v) {
			if name == "" || columns.Has(name) {
				continue
			}
			issue := Issue{
				ItemIndex: item.Index,
				Kind:      item.Kind,
				Field:     field,
				Message:   fmt.Sprintf("%s references unknown column %q", field, name),
			}
			if suggestion, ok := Suggest(name, columns.Names()); ok {
				issue.Suggestion = suggestion
			}
			issues = append(issues, issue)
		}
	}

	return issues
}

// columnValues extracts the column names a parameter value references:
// a single string, a string list, or a decoded []any of strings.
func columnValues(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
