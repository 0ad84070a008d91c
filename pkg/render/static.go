package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
)

// textRenderer renders plain text as a paragraph.
type textRenderer struct{}

func (textRenderer) Kind() content.Kind { return content.KindText }

func (textRenderer) Render(_ context.Context, item content.Item, _ *dataset.Dataset) (*Artifact, error) {
	return &Artifact{Markdown: strings.TrimSpace(stringParam(item.Params, "text")) + "\n"}, nil
}

// markdownRenderer passes a markdown body through unchanged.
type markdownRenderer struct{}

func (markdownRenderer) Kind() content.Kind { return content.KindMarkdown }

func (markdownRenderer) Render(_ context.Context, item content.Item, _ *dataset.Dataset) (*Artifact, error) {
	return &Artifact{Markdown: strings.TrimSpace(stringParam(item.Params, "body")) + "\n"}, nil
}

// imageRenderer renders an image reference with optional alt text and
// caption.
type imageRenderer struct{}

func (imageRenderer) Kind() content.Kind { return content.KindImage }

func (imageRenderer) Render(_ context.Context, item content.Item, _ *dataset.Dataset) (*Artifact, error) {
	src := stringParam(item.Params, "src")
	alt := stringParam(item.Params, "alt")

	var b strings.Builder
	fmt.Fprintf(&b, "![%s](%s)\n", alt, src)
	if caption := stringParam(item.Params, "caption"); caption != "" {
		fmt.Fprintf(&b, "\n_%s_\n", caption)
	}
	return &Artifact{Markdown: b.String()}, nil
}

// inputRenderer renders an interactive input widget as a fenced spec block
// the site runtime hydrates client-side.
type inputRenderer struct{}

func (inputRenderer) Kind() content.Kind { return content.KindInput }

func (inputRenderer) Render(_ context.Context, item content.Item, _ *dataset.Dataset) (*Artifact, error) {
	spec := map[string]any{
		"name":    stringParam(item.Params, "name"),
		"options": stringsParam(item.Params, "options"),
	}
	if label := stringParam(item.Params, "label"); label != "" {
		spec["label"] = label
	}
	if def := stringParam(item.Params, "default"); def != "" {
		spec["default"] = def
	}
	return &Artifact{Markdown: fencedSpec("input", spec)}, nil
}

// sidebarRenderer renders sidebar content inside a sidebar container block.
type sidebarRenderer struct{}

func (sidebarRenderer) Kind() content.Kind { return content.KindSidebar }

func (sidebarRenderer) Render(_ context.Context, item content.Item, _ *dataset.Dataset) (*Artifact, error) {
	body := strings.TrimSpace(stringParam(item.Params, "body"))
	return &Artifact{Markdown: "::: {.sidebar}\n" + body + "\n:::\n"}, nil
}

// fencedSpec renders a spec object as a fenced code block with the given
// info string. Marshaling a map of JSON-safe values cannot fail.
func fencedSpec(info string, spec any) string {
	data, _ := json.MarshalIndent(spec, "", "  ")
	return "```" + info + "\n" + string(data) + "\n```\n"
}
