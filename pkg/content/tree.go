package content

import (
	"fmt"
	"sort"
)

// Node is a materialized tree entry: either a *GroupNode or a Leaf. The
// union is sealed; emitters switch on the concrete type.
type Node interface {
	// Position is the node's effective insertion position: an item's own
	// index, or for a group the minimum index among all items transitively
	// under it. A group therefore appears where its earliest member was
	// added, even when later members interleaved with unrelated items.
	Position() int

	node()
}

// GroupNode is a materialized group in the tab hierarchy. All items sharing
// the same key at one level fold into exactly one GroupNode; duplicate
// sibling groups with the same key cannot occur.
type GroupNode struct {
	// Key is the path segment the group represents.
	Key string

	// Label is the resolved display string (explicit label, else humanized
	// key).
	Label string

	// Path is the full path from the root to this group.
	Path GroupPath

	// Children holds nested groups and leaf items, ordered by Position.
	Children []Node

	pos int
}

// Position implements Node.
func (g *GroupNode) Position() int { return g.pos }

func (*GroupNode) node() {}

// Leaf wraps an item appearing directly in the tree: a standalone item, an
// item at its group's level, or a single-child group collapsed by policy.
type Leaf struct {
	Item Item
}

// Position implements Node.
func (l Leaf) Position() int { return l.Item.Index }

func (Leaf) node() {}

// CollapsePolicy controls when a group holding exactly one item is replaced
// by a standalone leaf carrying the group's label, avoiding single-tab UI
// noise. This is a rendering decision, not a structural invariant.
type CollapsePolicy int

const (
	// CollapseNever keeps every group, even single-child ones.
	CollapseNever CollapsePolicy = iota

	// CollapseLeaf collapses only leaf-level groups: a group whose sole
	// child is an item that terminates at that group, and which stands
	// alone at its level. This is the default.
	CollapseLeaf

	// CollapseAll applies the rule recursively, so a chain of single-child
	// groups collapses all the way down to one leaf.
	CollapseAll
)

// TreeOption configures materialization.
type TreeOption func(*treeConfig)

type treeConfig struct {
	collapse CollapsePolicy
}

// WithCollapse overrides the single-child collapse policy.
func WithCollapse(policy CollapsePolicy) TreeOption {
	return func(c *treeConfig) { c.collapse = policy }
}

// Build folds a flat item list into the nested node tree.
//
// Standalone items (empty path) become leaves directly. Grouped items fold
// top-down: all items sharing the same first key join one group, recursing
// on the remaining path suffix. Top-level ordering merges standalone leaves
// and groups by effective position, ties broken by first-seen order.
//
// Build never fails on path shape: malformed specs were already normalized
// to something valid. An item with an empty kind is a contract violation of
// the internal API (the public Add path cannot produce one) and panics.
//
// sharedFirstLevel matters to collapse at the top level: when false, each
// top-level group is an independently stacked section, so a group holding a
// single item collapses regardless of sibling groups.
func Build(items []Item, labels LabelTable, sharedFirstLevel bool, opts ...TreeOption) []Node {
	cfg := treeConfig{collapse: CollapseLeaf}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, it := range items {
		if it.Kind == "" {
			panic(fmt.Sprintf("content: item #%d has empty kind", it.Index))
		}
	}
	if labels == nil {
		labels = LabelTable{}
	}
	return buildLevel(items, nil, labels, cfg, !sharedFirstLevel)
}

// buildLevel groups items by their key at depth len(prefix) and recurses.
// independent marks levels where every group renders as its own section, so
// the collapse rule ignores sibling groups.
func buildLevel(items []Item, prefix GroupPath, labels LabelTable, cfg treeConfig, independent bool) []Node {
	depth := len(prefix)

	var nodes []Node
	groups := make(map[string]*GroupNode)
	members := make(map[string][]Item)

	for _, it := range items {
		if len(it.Path) <= depth {
			nodes = append(nodes, Leaf{Item: it})
			continue
		}
		key := it.Path[depth]
		g, ok := groups[key]
		if !ok {
			g = &GroupNode{
				Key:  key,
				Path: append(prefix.Clone(), key),
				pos:  it.Index,
			}
			groups[key] = g
			nodes = append(nodes, g)
		}
		if it.Index < g.pos {
			g.pos = it.Index
		}
		members[key] = append(members[key], it)
	}

	for key, g := range groups {
		g.Label = labels.Resolve(g.Path)
		g.Children = buildLevel(members[key], g.Path, labels, cfg, false)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Position() < nodes[j].Position()
	})

	return collapseLevel(nodes, cfg.collapse, independent)
}

// collapseLevel replaces qualifying single-child groups with their leaf.
// A group collapses only when it is the sole node at its level (or sits in
// an independent section), so a lone tab never renders, while a group next
// to siblings keeps its tab. The leaf inherits the group's label as its
// title when it has none, so the group path stays visible after the tab
// disappears.
func collapseLevel(nodes []Node, policy CollapsePolicy, independent bool) []Node {
	if policy == CollapseNever {
		return nodes
	}

	for i, n := range nodes {
		g, ok := n.(*GroupNode)
		if !ok || len(g.Children) != 1 {
			continue
		}
		leaf, ok := g.Children[0].(Leaf)
		if !ok {
			continue
		}
		// CollapseLeaf only folds groups whose item terminates right here;
		// a leaf produced by a deeper collapse keeps its original path and
		// is left alone.
		if policy == CollapseLeaf && len(leaf.Item.Path) != len(g.Path) {
			continue
		}
		if len(nodes) > 1 && !independent {
			continue
		}
		item := leaf.Item
		if item.Title == "" {
			item.Title = g.Label
		}
		nodes[i] = Leaf{Item: item}
	}

	return nodes
}

// Walk visits every node in depth-first order, groups before their children.
// It stops early when fn returns false.
func Walk(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if g, ok := n.(*GroupNode); ok {
			if !Walk(g.Children, fn) {
				return false
			}
		}
	}
	return true
}

// CountLeaves returns the number of leaf items under nodes, sentinels
// included.
func CountLeaves(nodes []Node) int {
	count := 0
	Walk(nodes, func(n Node) bool {
		if _, ok := n.(Leaf); ok {
			count++
		}
		return true
	})
	return count
}
