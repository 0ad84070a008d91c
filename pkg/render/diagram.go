package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/dashweave/dashweave/pkg/cache"
	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
)

// diagramRenderer renders Graphviz DOT source to an SVG asset and embeds
// an image reference to it.
type diagramRenderer struct{}

func (diagramRenderer) Kind() content.Kind { return content.KindDiagram }

func (diagramRenderer) Render(ctx context.Context, item content.Item, _ *dataset.Dataset) (*Artifact, error) {
	dot := stringParam(item.Params, "dot")
	if dot == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "diagram item #%d has no dot source", item.Index)
	}

	svg, err := renderDOT(ctx, dot)
	if err != nil {
		return nil, err
	}

	// Asset names are content-addressed so identical diagrams on different
	// pages share one file.
	name := fmt.Sprintf("diagram-%s.svg", cache.Hash([]byte(dot))[:12])
	alt := item.DisplayTitle()
	if alt == "" {
		alt = "diagram"
	}

	return &Artifact{
		Markdown: fmt.Sprintf("![%s](%s)\n", alt, name),
		Assets:   map[string][]byte{name: svg},
	}, nil
}

// renderDOT renders DOT source to SVG using Graphviz.
func renderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
