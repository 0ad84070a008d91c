package render

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
)

func surveyDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Name:    "survey",
		Columns: []string{"age_group", "region", "income"},
		Rows: [][]string{
			{"18-24", "north", "100"},
			{"25-34", "south", "250"},
			{"25-34", "north", ""},
		},
	}
}

func renderOne(t *testing.T, c *content.Collection, ds *dataset.Dataset) *Artifact {
	t.Helper()
	items := c.Items()
	artifact, err := DefaultRegistry().Render(context.Background(), items[len(items)-1], ds)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	return artifact
}

func TestRenderText(t *testing.T) {
	c := content.New().Add(content.KindText, content.WithParam("text", "hello world"))
	artifact := renderOne(t, c, nil)
	if got, want := artifact.Markdown, "hello world\n"; got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestRenderMarkdownPassthrough(t *testing.T) {
	c := content.New().Add(content.KindMarkdown, content.WithParam("body", "# Heading\n\nbody"))
	artifact := renderOne(t, c, nil)
	if !strings.HasPrefix(artifact.Markdown, "# Heading") {
		t.Errorf("markdown body not passed through: %q", artifact.Markdown)
	}
}

func TestRenderImage(t *testing.T) {
	c := content.New().Add(content.KindImage,
		content.WithParam("src", "logo.png"),
		content.WithParam("alt", "Logo"),
		content.WithParam("caption", "Our logo"))
	artifact := renderOne(t, c, nil)
	if !strings.Contains(artifact.Markdown, "![Logo](logo.png)") {
		t.Errorf("missing image reference: %q", artifact.Markdown)
	}
	if !strings.Contains(artifact.Markdown, "_Our logo_") {
		t.Errorf("missing caption: %q", artifact.Markdown)
	}
}

func TestRenderSidebar(t *testing.T) {
	c := content.New().Add(content.KindSidebar, content.WithParam("body", "About this report"))
	artifact := renderOne(t, c, nil)
	if !strings.HasPrefix(artifact.Markdown, "::: {.sidebar}") {
		t.Errorf("sidebar container missing: %q", artifact.Markdown)
	}
}

func TestRenderInputSpec(t *testing.T) {
	c := content.New().Add(content.KindInput,
		content.WithParam("name", "region_filter"),
		content.WithParam("options", []string{"north", "south"}),
		content.WithParam("label", "Region"))
	artifact := renderOne(t, c, nil)

	spec := decodeFenced(t, artifact.Markdown, "```input")
	if spec["name"] != "region_filter" {
		t.Errorf("spec name = %v", spec["name"])
	}
	if spec["label"] != "Region" {
		t.Errorf("spec label = %v", spec["label"])
	}
}

func TestRenderTable(t *testing.T) {
	c := content.New().Add(content.KindTable,
		content.WithParam("columns", []string{"age_group", "region"}))
	artifact := renderOne(t, c, surveyDataset())

	lines := strings.Split(strings.TrimSpace(artifact.Markdown), "\n")
	if got, want := lines[0], "| age_group | region |"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if got, want := len(lines), 5; got != want { // header + separator + 3 rows
		t.Errorf("line count = %d, want %d:\n%s", got, want, artifact.Markdown)
	}
}

func TestRenderTableLimit(t *testing.T) {
	c := content.New().Add(content.KindTable, content.WithParam("limit", 1))
	artifact := renderOne(t, c, surveyDataset())
	if !strings.Contains(artifact.Markdown, "Showing 1 of 3 rows") {
		t.Errorf("missing truncation note: %q", artifact.Markdown)
	}
}

func TestRenderTableUnknownColumn(t *testing.T) {
	c := content.New().Add(content.KindTable, content.WithParam("columns", []string{"nope"}))
	items := c.Items()
	_, err := DefaultRegistry().Render(context.Background(), items[0], surveyDataset())
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("error = %v, want RENDER_FAILED wrapper", err)
	}
}

func TestRenderMetric(t *testing.T) {
	tests := []struct {
		name string
		agg  string
		want string
	}{
		{"count rows", "count", "**3**"},
		{"sum", "sum", "**350**"},
		{"mean", "mean", "**175**"},
		{"min", "min", "**100**"},
		{"max", "max", "**250**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := content.New().Add(content.KindMetric,
				content.WithParam("agg", tt.agg),
				content.WithParam("value_var", "income"))
			if tt.agg == "count" {
				c = content.New().Add(content.KindMetric, content.WithParam("agg", "count"))
			}
			artifact := renderOne(t, c, surveyDataset())
			if !strings.Contains(artifact.Markdown, tt.want) {
				t.Errorf("markdown = %q, want contains %q", artifact.Markdown, tt.want)
			}
		})
	}
}

func TestRenderMetricCountSkipsEmpty(t *testing.T) {
	c := content.New().Add(content.KindMetric,
		content.WithParam("agg", "count"),
		content.WithParam("value_var", "income"))
	artifact := renderOne(t, c, surveyDataset())
	if !strings.Contains(artifact.Markdown, "**2**") {
		t.Errorf("count of non-empty income cells should be 2: %q", artifact.Markdown)
	}
}

func TestRenderChartSpec(t *testing.T) {
	c := content.New().Add(content.KindBar,
		content.WithParam("x_var", "age_group"),
		content.WithTitle("Ages"))
	artifact := renderOne(t, c, surveyDataset())

	spec := decodeFenced(t, artifact.Markdown, "```chart")
	if spec["type"] != "bar" {
		t.Errorf("spec type = %v, want bar", spec["type"])
	}
	if spec["title"] != "Ages" {
		t.Errorf("spec title = %v, want Ages", spec["title"])
	}
	data := spec["data"].(map[string]any)["columns"].(map[string]any)
	if _, ok := data["age_group"]; !ok {
		t.Error("chart spec should inline the x_var column")
	}
}

func TestRenderChartListColumns(t *testing.T) {
	c := content.New().Add(content.KindStackedBar,
		content.WithParam("x_vars", []string{"age_group", "region"}))
	artifact := renderOne(t, c, surveyDataset())

	spec := decodeFenced(t, artifact.Markdown, "```chart")
	data := spec["data"].(map[string]any)["columns"].(map[string]any)
	for _, col := range []string{"age_group", "region"} {
		if _, ok := data[col]; !ok {
			t.Errorf("chart spec missing column %q", col)
		}
	}
}

func TestRenderSentinelIsEmpty(t *testing.T) {
	c := content.New().AddPageBreak()
	artifact := renderOne(t, c, nil)
	if artifact.Markdown != "" || len(artifact.Assets) != 0 {
		t.Errorf("sentinel should render empty, got %+v", artifact)
	}
}

func TestRenderUnregisteredKind(t *testing.T) {
	r := NewRegistry()
	item := content.Item{Kind: content.KindBar, Index: 1}
	_, err := r.Render(context.Background(), item, nil)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestItemHash(t *testing.T) {
	a := content.New().Add(content.KindBar, content.WithParam("x_var", "age_group")).Items()[0]
	b := content.New().Add(content.KindBar, content.WithParam("x_var", "age_group")).Items()[0]
	c := content.New().Add(content.KindBar, content.WithParam("x_var", "region")).Items()[0]

	if ItemHash(a) != ItemHash(b) {
		t.Error("identical items should hash equal")
	}
	if ItemHash(a) == ItemHash(c) {
		t.Error("different params should change the hash")
	}

	// Index does not participate, so cached artifacts survive reordering
	b.Index = 99
	if ItemHash(a) != ItemHash(b) {
		t.Error("index should not affect the hash")
	}
}

func TestDefaultRegistryCoversRenderableKinds(t *testing.T) {
	r := DefaultRegistry()
	for _, kind := range content.Kinds() {
		if kind.IsSentinel() {
			continue
		}
		if _, ok := r.For(kind); !ok {
			t.Errorf("kind %q has no builtin renderer", kind)
		}
	}
}

// decodeFenced extracts and unmarshals the JSON body of a fenced block.
func decodeFenced(t *testing.T, markdown, fence string) map[string]any {
	t.Helper()
	start := strings.Index(markdown, fence)
	if start < 0 {
		t.Fatalf("no %s block in %q", fence, markdown)
	}
	body := markdown[start+len(fence):]
	end := strings.Index(body, "```")
	if end < 0 {
		t.Fatalf("unterminated fenced block in %q", markdown)
	}
	var spec map[string]any
	if err := json.Unmarshal([]byte(body[:end]), &spec); err != nil {
		t.Fatalf("invalid spec JSON: %v", err)
	}
	return spec
}
