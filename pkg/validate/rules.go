package validate

import (
	"fmt"
	"strings"

	"github.com/dashweave/dashweave/pkg/content"
)

// RulesVersion identifies the revision of the rule tables below. Emitted
// site configs record it so external renderers can detect mismatched
// expectations about required parameters.
const RulesVersion = "1"

// FieldGroup is a set of parameter names that must all be present together
// (an AND-group). A rule's Required list holds alternative groups: the rule
// is satisfied when any one group is fully present.
type FieldGroup []string

// String renders the group as "(a and b)" or "a" for a single field.
func (g FieldGroup) String() string {
	if len(g) == 1 {
		return g[0]
	}
	return "(" + strings.Join(g, " and ") + ")"
}

// Rule declares the parameter contract for one item kind. The tables are
// the integration contract every new kind must extend: required parameters
// (with OR-group alternatives) and which parameters reference dataset
// columns.
type Rule struct {
	// Kind is the item kind the rule applies to.
	Kind content.Kind

	// Required lists alternative AND-groups of parameter names. An empty
	// list means the kind has no required parameters.
	Required []FieldGroup

	// ColumnFields names the parameters whose values are dataset column
	// references. Values may be a single string or a list of strings.
	ColumnFields []string
}

// Describe renders the requirement in the form used by issue messages,
// e.g. "(x_var and stack_var) or x_vars".
func (r Rule) Describe() string {
	if len(r.Required) == 0 {
		return ""
	}
	parts := make([]string, len(r.Required))
	for i, g := range r.Required {
		parts[i] = g.String()
	}
	return strings.Join(parts, " or ")
}

// rules holds the per-kind parameter contracts.
var rules = map[content.Kind]Rule{
	content.KindText: {
		Kind:     content.KindText,
		Required: []FieldGroup{{"text"}},
	},
	content.KindMarkdown: {
		Kind:     content.KindMarkdown,
		Required: []FieldGroup{{"body"}},
	},
	content.KindImage: {
		Kind:     content.KindImage,
		Required: []FieldGroup{{"src"}},
	},
	content.KindInput: {
		Kind:     content.KindInput,
		Required: []FieldGroup{{"name", "options"}},
	},
	content.KindSidebar: {
		Kind:     content.KindSidebar,
		Required: []FieldGroup{{"body"}},
	},
	content.KindTable: {
		Kind:         content.KindTable,
		ColumnFields: []string{"columns"},
	},
	content.KindMetric: {
		Kind:         content.KindMetric,
		Required:     []FieldGroup{{"agg"}},
		ColumnFields: []string{"value_var"},
	},
	content.KindBar: {
		Kind:         content.KindBar,
		Required:     []FieldGroup{{"x_var"}},
		ColumnFields: []string{"x_var", "y_var", "color_var"},
	},
	content.KindStackedBar: {
		Kind:         content.KindStackedBar,
		Required:     []FieldGroup{{"x_var", "stack_var"}, {"x_vars"}},
		ColumnFields: []string{"x_var", "stack_var", "x_vars", "y_var"},
	},
	content.KindLine: {
		Kind:         content.KindLine,
		Required:     []FieldGroup{{"x_var", "y_var"}},
		ColumnFields: []string{"x_var", "y_var", "group_var"},
	},
	content.KindScatter: {
		Kind:         content.KindScatter,
		Required:     []FieldGroup{{"x_var", "y_var"}},
		ColumnFields: []string{"x_var", "y_var", "color_var"},
	},
	content.KindHeatmap: {
		Kind:         content.KindHeatmap,
		Required:     []FieldGroup{{"x_var", "y_var"}},
		ColumnFields: []string{"x_var", "y_var", "value_var"},
	},
	content.KindHistogram: {
		Kind:         content.KindHistogram,
		Required:     []FieldGroup{{"x_var"}},
		ColumnFields: []string{"x_var"},
	},
	content.KindTimeline: {
		Kind:         content.KindTimeline,
		Required:     []FieldGroup{{"time_var"}},
		ColumnFields: []string{"time_var", "group_var"},
	},
	content.KindDiagram: {
		Kind:     content.KindDiagram,
		Required: []FieldGroup{{"dot"}},
	},
	content.KindPaginationBreak: {
		Kind: content.KindPaginationBreak,
	},
}

// RuleFor returns the rule for a kind. The second return is false for kinds
// the tables do not know.
func RuleFor(kind content.Kind) (Rule, bool) {
	r, ok := rules[kind]
	return r, ok
}

// Rules returns all rules in the stable kind order of [content.Kinds].
func Rules() []Rule {
	out := make([]Rule, 0, len(rules))
	for _, kind := range content.Kinds() {
		if r, ok := rules[kind]; ok {
			out = append(out, r)
		}
	}
	return out
}

// init cross-checks that every known kind has a rule entry, so adding a
// kind without extending the tables fails loudly at startup.
func init() {
	for _, kind := range content.Kinds() {
		if _, ok := rules[kind]; !ok {
			panic(fmt.Sprintf("validate: kind %q has no rule entry", kind))
		}
	}
}
