package content

import (
	"strings"
	"testing"
)

func TestCollectionDefaultsSnapshot(t *testing.T) {
	c := New(WithDefaults(Params{"color": "blue", "width": 400}))

	c.Add(KindBar, WithParam("x_var", "age"))
	c.SetDefaults(Params{"color": "red"})
	c.Add(KindBar, WithParam("x_var", "region"))

	items := c.Items()
	if got, want := items[0].Params["color"], "blue"; got != want {
		t.Errorf("first item color = %v, want frozen default %v", got, want)
	}
	if got, want := items[1].Params["color"], "red"; got != want {
		t.Errorf("second item color = %v, want new default %v", got, want)
	}
	if _, ok := items[1].Params["width"]; ok {
		t.Error("SetDefaults should replace, not overlay, the default set")
	}
}

func TestCollectionCallParamsWinOverDefaults(t *testing.T) {
	c := New(WithDefaults(Params{"color": "blue"}))
	c.Add(KindBar, WithParam("color", "green"))

	if got, want := c.Items()[0].Params["color"], "green"; got != want {
		t.Errorf("color = %v, want call override %v", got, want)
	}
}

func TestCollectionDatasetResolution(t *testing.T) {
	survey := &struct{ n string }{"survey"}
	census := &struct{ n string }{"census"}

	c := New(
		WithDataset("survey", survey),
		WithDataset("census", census),
		WithDefaultDataset("survey"),
	)

	if h, ok := c.Dataset(""); !ok || h != any(survey) {
		t.Error("empty ref should resolve to the default dataset")
	}
	if h, ok := c.Dataset("census"); !ok || h != any(census) {
		t.Error("explicit ref should resolve directly")
	}
	if _, ok := c.Dataset("missing"); ok {
		t.Error("unknown ref should not resolve")
	}

	// A collection with exactly one dataset needs no default declaration.
	single := New(WithDataset("only", survey))
	if h, ok := single.Dataset(""); !ok || h != any(survey) {
		t.Error("single dataset should act as the implicit default")
	}
}

func TestCollectionTabTitleFallback(t *testing.T) {
	c := New().
		Add(KindText, WithTitle("Full Title")).
		Add(KindText, WithTitle("Full Title"), WithTabTitle("Short"))

	items := c.Items()
	if got, want := items[0].DisplayTitle(), "Full Title"; got != want {
		t.Errorf("DisplayTitle fallback = %q, want %q", got, want)
	}
	if got, want := items[1].DisplayTitle(), "Short"; got != want {
		t.Errorf("DisplayTitle = %q, want %q", got, want)
	}
}

func TestCollectionDescribe(t *testing.T) {
	c := New().
		Add(KindText, WithTitle("Overview"), AtPath("demographics")).
		Add(KindBar, WithTitle("Ages"), AtPath("demographics"))

	out := c.Describe()
	for _, want := range []string{"2 items", "[demographics]", "Overview", "Ages"} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() missing %q:\n%s", want, out)
		}
	}
}

func TestCollectionMaterializeIsRepeatable(t *testing.T) {
	c := New().
		Add(KindText, WithTitle("one"), AtPath("a/b")).
		Add(KindText, WithTitle("two"))

	first := c.Describe()
	second := c.Describe()
	if first != second {
		t.Errorf("repeated materialization diverged:\n%s\nvs\n%s", first, second)
	}
}
