package render

import (
	"context"
	"strings"
	"testing"

	"github.com/dashweave/dashweave/pkg/content"
)

func TestRenderDiagram(t *testing.T) {
	c := content.New().Add(content.KindDiagram,
		content.WithParam("dot", "digraph { a -> b }"),
		content.WithTitle("Flow"))
	artifact := renderOne(t, c, nil)

	if len(artifact.Assets) != 1 {
		t.Fatalf("asset count = %d, want 1", len(artifact.Assets))
	}
	for name, data := range artifact.Assets {
		if !strings.HasPrefix(name, "diagram-") || !strings.HasSuffix(name, ".svg") {
			t.Errorf("unexpected asset name %q", name)
		}
		if !strings.Contains(string(data), "<svg") {
			t.Error("asset does not look like SVG")
		}
		if !strings.Contains(artifact.Markdown, "]("+name+")") {
			t.Errorf("markdown does not reference asset %q: %q", name, artifact.Markdown)
		}
	}
	if !strings.Contains(artifact.Markdown, "![Flow]") {
		t.Errorf("markdown should use the title as alt text: %q", artifact.Markdown)
	}
}

func TestRenderDiagramSharedAssetName(t *testing.T) {
	dot := "digraph { x -> y }"
	c := content.New().
		Add(content.KindDiagram, content.WithParam("dot", dot)).
		Add(content.KindDiagram, content.WithParam("dot", dot))
	items := c.Items()

	r := DefaultRegistry()
	a1, err := r.Render(context.Background(), items[0], nil)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	a2, err := r.Render(context.Background(), items[1], nil)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	for name := range a1.Assets {
		if _, ok := a2.Assets[name]; !ok {
			t.Error("identical DOT sources should share one asset name")
		}
	}
}
