package render

import (
	"context"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
)

// encodingFields are the parameters copied into a chart spec's encoding
// section when present on the item.
var encodingFields = []string{
	"x_var", "y_var", "x_vars", "stack_var", "color_var", "group_var",
	"value_var", "time_var", "bins", "sort", "horizontal",
}

// chartRenderer renders one chart kind as a fenced chart-spec block the
// site runtime hydrates client-side. The spec carries the chart type, the
// encoding parameters, and the referenced data columns inline.
type chartRenderer struct {
	kind content.Kind
}

func (r chartRenderer) Kind() content.Kind { return r.kind }

func (r chartRenderer) Render(_ context.Context, item content.Item, ds *dataset.Dataset) (*Artifact, error) {
	if ds == nil {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "%s item #%d has no dataset", r.kind, item.Index)
	}

	encoding := map[string]any{}
	for _, field := range encodingFields {
		if v, ok := item.Params[field]; ok && v != nil {
			encoding[field] = v
		}
	}

	columns := map[string][]string{}
	for _, field := range []string{"x_var", "y_var", "stack_var", "color_var", "group_var", "value_var", "time_var"} {
		if name := stringParam(item.Params, field); name != "" {
			col, ok := ds.Column(name)
			if !ok {
				return nil, errors.New(errors.ErrCodeUnknownColumn, "%s column %q not in dataset %q", r.kind, name, ds.Name)
			}
			columns[name] = col
		}
	}
	for _, name := range stringsParam(item.Params, "x_vars") {
		col, ok := ds.Column(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownColumn, "%s column %q not in dataset %q", r.kind, name, ds.Name)
		}
		columns[name] = col
	}

	spec := map[string]any{
		"type":     string(r.kind),
		"encoding": encoding,
		"data":     map[string]any{"columns": columns},
	}
	if title := item.DisplayTitle(); title != "" {
		spec["title"] = title
	}

	return &Artifact{Markdown: fencedSpec("chart", spec)}, nil
}
