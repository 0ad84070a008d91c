// Package emit writes materialized dashboards to disk as markdown sites.
//
// # Overview
//
// Emit consumes the materialized tab tree and the per-item artifacts and
// produces a self-contained site directory:
//
//	site/
//	  index.md              First page
//	  002-demographics.md   Further pages, split on pagination breaks
//	  assets/               Binary assets (SVG diagrams, images)
//	  dashweave.yml         Site config: pages, build record, rules version
//
// Top-level groups become tabsets (shared first level) or stacked
// sections; nested groups become deeper headings. Pages are split on
// pagination-break sentinels, and page files after the first are named by
// their leading group.
//
// # Invalid items
//
// By default every leaf must have an artifact. With
// [Options.AllowInvalid], items that failed validation are emitted as
// annotation blockquotes listing their issues, so a draft dashboard can
// be previewed before its data contract is complete.
package emit
