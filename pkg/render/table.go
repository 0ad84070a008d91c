package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
)

// defaultTableLimit caps table output when the item does not set "limit".
const defaultTableLimit = 100

// tableRenderer renders a dataset (or a column subset of it) as a markdown
// table.
type tableRenderer struct{}

func (tableRenderer) Kind() content.Kind { return content.KindTable }

func (tableRenderer) Render(_ context.Context, item content.Item, ds *dataset.Dataset) (*Artifact, error) {
	if ds == nil {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "table item #%d has no dataset", item.Index)
	}

	columns := stringsParam(item.Params, "columns")
	if len(columns) == 0 {
		columns = ds.Columns
	}

	indices := make([]int, len(columns))
	for i, col := range columns {
		indices[i] = -1
		for j, c := range ds.Columns {
			if c == col {
				indices[i] = j
				break
			}
		}
		if indices[i] < 0 {
			return nil, errors.New(errors.ErrCodeUnknownColumn, "table column %q not in dataset %q", col, ds.Name)
		}
	}

	limit := intParam(item.Params, "limit", defaultTableLimit)
	rows := ds.Rows
	truncated := false
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
		truncated = true
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(escapeCells(columns), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(columns)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(indices))
		for i, idx := range indices {
			cells[i] = row[idx]
		}
		b.WriteString("| " + strings.Join(escapeCells(cells), " | ") + " |\n")
	}
	if truncated {
		fmt.Fprintf(&b, "\n_Showing %d of %d rows._\n", limit, ds.Len())
	}

	return &Artifact{Markdown: b.String()}, nil
}

// escapeCells escapes characters that would break markdown table syntax.
func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", "\\|")
		c = strings.ReplaceAll(c, "\n", " ")
		out[i] = c
	}
	return out
}
