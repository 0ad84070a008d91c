package render

import "github.com/dashweave/dashweave/pkg/content"

// builtins returns one renderer instance per renderable kind. Pagination
// sentinels are handled by the registry itself and have no renderer.
func builtins() []Renderer {
	return []Renderer{
		textRenderer{},
		markdownRenderer{},
		imageRenderer{},
		inputRenderer{},
		sidebarRenderer{},
		tableRenderer{},
		metricRenderer{},
		diagramRenderer{},
		chartRenderer{kind: content.KindBar},
		chartRenderer{kind: content.KindStackedBar},
		chartRenderer{kind: content.KindLine},
		chartRenderer{kind: content.KindScatter},
		chartRenderer{kind: content.KindHeatmap},
		chartRenderer{kind: content.KindHistogram},
		chartRenderer{kind: content.KindTimeline},
	}
}
