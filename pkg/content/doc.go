// Package content implements the dashboard content-collection model: an
// in-memory tree builder that accepts a flat, order-independent stream of
// add operations tagged with hierarchical group paths and reconstructs the
// nested tab hierarchy from them.
//
// # Overview
//
// Users compose a dashboard by piping Add calls on a [Collection]:
//
//	c := content.New().
//	    Add(content.KindText, content.WithTitle("Overview"), content.AtPath("demographics")).
//	    Add(content.KindBar, content.WithTitle("Details"), content.AtPath("demographics/details")).
//	    Add(content.KindMarkdown, content.WithTitle("Standalone"))
//
// Each Add appends an immutable [Item] with a strictly increasing insertion
// index. On materialization the flat list folds into a tree of [GroupNode]
// and [Leaf] values:
//
//	nodes := c.Materialize()
//
// The tree preserves insertion order: a group appears at the position of its
// earliest-added member, and standalone items interleave with groups by
// index.
//
// # Group paths
//
// [NormalizePath] accepts separator strings ("a/b"), key lists, and explicit
// level maps ({1: "a", 2: "b"}), and is total: anything it cannot interpret
// becomes a one-key path rather than an error. Display labels resolve
// through a [LabelTable] with last-write-wins override semantics.
//
// # Merging
//
// [Merge] concatenates collections and renumbers indices from 1. The
// operation is a flattening concatenation, so it is associative up to the
// renumbering. Divergent collection settings surface as [MergeWarning]
// values on the result instead of errors.
//
// # Concurrency
//
// All operations are synchronous, in-process data transformations with no
// I/O. A Collection is built linearly by one caller; concurrent mutation is
// not supported. Materialized trees are fully built before they are
// returned and need no further synchronization.
package content
