package content

import (
	"testing"
)

// grouping per the documented end-to-end example: a demographics group with
// a leaf and a nested details group, plus a standalone item.
func TestBuildGrouping(t *testing.T) {
	c := New().
		Add(KindText, WithTitle("Overview"), AtPath("demographics")).
		Add(KindBar, WithTitle("Details"), AtPath("demographics/details")).
		Add(KindMarkdown, WithTitle("Standalone"))

	nodes := c.Materialize()

	if got, want := len(nodes), 2; got != want {
		t.Fatalf("root node count = %d, want %d", got, want)
	}

	group, ok := nodes[0].(*GroupNode)
	if !ok {
		t.Fatalf("first root node = %T, want *GroupNode", nodes[0])
	}
	if got, want := group.Key, "demographics"; got != want {
		t.Errorf("group key = %q, want %q", got, want)
	}
	if got, want := len(group.Children), 2; got != want {
		t.Fatalf("group child count = %d, want %d", got, want)
	}

	leaf, ok := group.Children[0].(Leaf)
	if !ok || leaf.Item.Title != "Overview" {
		t.Errorf("first child = %v, want leaf Overview", group.Children[0])
	}
	details, ok := group.Children[1].(*GroupNode)
	if !ok || details.Key != "details" {
		t.Fatalf("second child = %v, want details group", group.Children[1])
	}
	if inner, ok := details.Children[0].(Leaf); !ok || inner.Item.Title != "Details" {
		t.Errorf("details child = %v, want leaf Details", details.Children[0])
	}

	standalone, ok := nodes[1].(Leaf)
	if !ok || standalone.Item.Title != "Standalone" {
		t.Errorf("second root node = %v, want standalone leaf", nodes[1])
	}
}

func TestBuildGroupAppearsAtEarliestMember(t *testing.T) {
	c := New().
		Add(KindText, WithTitle("first"), AtPath("alpha")).
		Add(KindText, WithTitle("middle")).
		Add(KindText, WithTitle("late member"), AtPath("alpha"))

	nodes := c.Materialize(WithCollapse(CollapseNever))

	if got, want := len(nodes), 2; got != want {
		t.Fatalf("root node count = %d, want %d", got, want)
	}
	group, ok := nodes[0].(*GroupNode)
	if !ok {
		t.Fatalf("first node = %T, want group (earliest member at index 1)", nodes[0])
	}
	if got, want := group.Position(), 1; got != want {
		t.Errorf("group position = %d, want %d", got, want)
	}
	if leaf, ok := nodes[1].(Leaf); !ok || leaf.Item.Title != "middle" {
		t.Errorf("second node = %v, want standalone 'middle'", nodes[1])
	}
}

// A later-appended standalone item must never materialize before an earlier
// one unless it belongs to a group whose earliest member precedes it.
func TestBuildOrderPreservation(t *testing.T) {
	c := New()
	titles := []string{"a", "b", "c", "d"}
	for _, title := range titles {
		c.Add(KindText, WithTitle(title))
	}

	nodes := c.Materialize()
	for i, n := range nodes {
		leaf := n.(Leaf)
		if got, want := leaf.Item.Title, titles[i]; got != want {
			t.Errorf("node %d = %q, want %q", i, got, want)
		}
	}
}

func TestBuildLabelResolution(t *testing.T) {
	c := New(WithLabels(map[string]string{
		"demographics.details": "Fine Detail",
		"demographics":         "Demographics",
	})).
		Add(KindText, AtPath("demographics")).
		Add(KindText, AtPath("demographics/details")).
		Add(KindText, AtPath("raw_key"))

	nodes := c.Materialize(WithCollapse(CollapseNever))

	root := nodes[0].(*GroupNode)
	if got, want := root.Label, "Demographics"; got != want {
		t.Errorf("bare-key label = %q, want %q", got, want)
	}
	details := root.Children[1].(*GroupNode)
	if got, want := details.Label, "Fine Detail"; got != want {
		t.Errorf("dotted-path label = %q, want %q", got, want)
	}
	humanized := nodes[1].(*GroupNode)
	if got, want := humanized.Label, "Raw Key"; got != want {
		t.Errorf("humanized label = %q, want %q", got, want)
	}
}

func TestBuildCollapseLeaf(t *testing.T) {
	c := New().
		Add(KindText, AtPath("lonely")).
		Add(KindText, WithTitle("kept"), AtPath("busy")).
		Add(KindText, WithTitle("also kept"), AtPath("busy"))

	// "lonely" has a single item but "busy" is a sibling group, so the
	// shared tab-strip keeps both groups.
	nodes := c.Materialize()
	if _, ok := nodes[0].(*GroupNode); !ok {
		t.Errorf("lonely group collapsed despite sibling group: %T", nodes[0])
	}

	// Without the sibling, the single-item group collapses to a leaf that
	// carries the group label as its title.
	solo := New().Add(KindText, AtPath("lonely"))
	nodes = solo.Materialize()
	leaf, ok := nodes[0].(Leaf)
	if !ok {
		t.Fatalf("single-item group did not collapse: %T", nodes[0])
	}
	if got, want := leaf.Item.Title, "Lonely"; got != want {
		t.Errorf("collapsed leaf title = %q, want group label %q", got, want)
	}
}

func TestBuildCollapseIndependentSections(t *testing.T) {
	// With stacked sections (shared first level off) each top-level group
	// stands alone, so single-item groups collapse even with siblings.
	c := New(WithSharedFirstLevel(false)).
		Add(KindText, AtPath("lonely")).
		Add(KindText, WithTitle("kept"), AtPath("busy")).
		Add(KindText, WithTitle("also kept"), AtPath("busy"))

	nodes := c.Materialize()
	if _, ok := nodes[0].(Leaf); !ok {
		t.Errorf("independent single-item section did not collapse: %T", nodes[0])
	}
	if _, ok := nodes[1].(*GroupNode); !ok {
		t.Errorf("two-item group should not collapse: %T", nodes[1])
	}
}

func TestBuildCollapsePolicies(t *testing.T) {
	build := func(policy CollapsePolicy) []Node {
		c := New().Add(KindText, AtPath("outer/inner"))
		return c.Materialize(WithCollapse(policy))
	}

	// Never: full two-level chain survives.
	nodes := build(CollapseNever)
	outer := nodes[0].(*GroupNode)
	if _, ok := outer.Children[0].(*GroupNode); !ok {
		t.Errorf("CollapseNever flattened the chain: %T", outer.Children[0])
	}

	// Leaf: the bottom group folds, the outer one keeps its (collapsed)
	// child because the leaf's path reaches deeper than the outer group.
	nodes = build(CollapseLeaf)
	outer = nodes[0].(*GroupNode)
	if _, ok := outer.Children[0].(Leaf); !ok {
		t.Errorf("CollapseLeaf kept the leaf-level group: %T", outer.Children[0])
	}

	// All: the chain collapses to a single root leaf.
	nodes = build(CollapseAll)
	if _, ok := nodes[0].(Leaf); !ok {
		t.Errorf("CollapseAll left a group at the root: %T", nodes[0])
	}
}

func TestBuildEmptyKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Build should panic on an item with empty kind")
		}
	}()
	Build([]Item{{Index: 1}}, nil, true)
}

func TestWalkAndCountLeaves(t *testing.T) {
	c := New().
		Add(KindText, AtPath("a")).
		Add(KindText, AtPath("a/b")).
		Add(KindText)

	nodes := c.Materialize(WithCollapse(CollapseNever))
	if got, want := CountLeaves(nodes), 3; got != want {
		t.Errorf("CountLeaves = %d, want %d", got, want)
	}

	visited := 0
	Walk(nodes, func(Node) bool { visited++; return true })
	// 3 leaves + 2 groups
	if got, want := visited, 5; got != want {
		t.Errorf("Walk visited %d nodes, want %d", got, want)
	}
}
