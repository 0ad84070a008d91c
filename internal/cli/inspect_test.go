package cli

import (
	"strings"
	"testing"

	"github.com/dashweave/dashweave/pkg/content"
)

func TestFlattenTree(t *testing.T) {
	c := content.New().
		Add(content.KindText, content.WithParam("text", "a"), content.AtPath([]string{"overview"})).
		Add(content.KindText, content.WithParam("text", "b"), content.AtPath([]string{"overview"})).
		Add(content.KindText, content.WithParam("text", "c"), content.WithTitle("Standalone"))

	rows := flattenTree(c.Materialize(), 0)

	if len(rows) != 4 {
		t.Fatalf("row count = %d, want 4: %+v", len(rows), rows)
	}
	if rows[0].Text != "Overview" || rows[0].IsLeaf {
		t.Errorf("first row should be the group: %+v", rows[0])
	}
	if rows[1].Depth != 1 || !rows[1].IsLeaf {
		t.Errorf("group children should be indented leaves: %+v", rows[1])
	}
	if !strings.Contains(rows[3].Text, "Standalone") {
		t.Errorf("titled leaf text = %q", rows[3].Text)
	}
}

func TestLeafDetail(t *testing.T) {
	item := content.Item{
		Kind:   content.KindBar,
		Params: map[string]any{"x_var": "age", "color_scheme": "blues"},
	}
	got := leafDetail(item)
	if got != "color_scheme=blues  x_var=age" {
		t.Errorf("leafDetail() = %q", got)
	}

	if got := leafDetail(content.Item{Kind: content.KindText}); got != "no params" {
		t.Errorf("leafDetail() without params = %q", got)
	}
}

func TestTreeModelNavigation(t *testing.T) {
	rows := []treeRow{
		{Text: "A"},
		{Text: "b", Depth: 1, IsLeaf: true, Detail: "no params"},
		{Text: "c", Depth: 1, IsLeaf: true, Detail: "no params"},
	}
	m := newTreeModel("", rows)

	if m.Title != "Dashboard" {
		t.Errorf("empty title should default: %q", m.Title)
	}

	view := m.View()
	if !strings.Contains(view, "Dashboard") || !strings.Contains(view, "[1/3]") {
		t.Errorf("unexpected view:\n%s", view)
	}
}
