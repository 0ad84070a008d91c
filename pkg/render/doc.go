// Package render turns collected items into markdown artifacts.
//
// # Overview
//
// Each item kind has a [Renderer]; a [Registry] dispatches items to the
// right renderer and wraps failures with coded errors. The builtin set
// (see [DefaultRegistry]) covers:
//
//   - Static content: text, markdown, image, input, sidebar
//   - Data display: table (markdown tables), metric (aggregated figures)
//   - Charts: bar, stacked-bar, line, scatter, heatmap, histogram, and
//     timeline, emitted as fenced chart-spec blocks with inline data
//   - Diagrams: Graphviz DOT rendered to SVG assets
//
// Custom kinds plug in by implementing [Renderer] and calling
// [Registry.Register].
//
// # Artifacts
//
// A rendered [Artifact] is a markdown fragment plus optional binary
// assets. Artifacts are self-contained and cacheable: [ItemHash] combined
// with the dataset fingerprint keys an artifact uniquely, so unchanged
// items skip rendering on rebuilds.
package render
