package content

import "testing"

func titlesOf(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestMergeConcatenatesAndRenumbers(t *testing.T) {
	a := New().Add(KindText, WithTitle("a1")).Add(KindText, WithTitle("a2"))
	b := New().Add(KindText, WithTitle("b1"))

	merged := Merge(a, b)

	items := merged.Items()
	if got, want := len(items), 3; got != want {
		t.Fatalf("item count = %d, want %d", got, want)
	}
	for i, it := range items {
		if got, want := it.Index, i+1; got != want {
			t.Errorf("item %d index = %d, want %d", i, got, want)
		}
	}
	want := []string{"a1", "a2", "b1"}
	for i, title := range titlesOf(items) {
		if title != want[i] {
			t.Errorf("item %d = %q, want %q", i, title, want[i])
		}
	}
}

func TestMergeAssociativity(t *testing.T) {
	a := New().Add(KindText, WithTitle("a1")).Add(KindText, WithTitle("a2"))
	b := New().Add(KindBar, WithTitle("b1"), AtPath("charts"))
	c := New().Add(KindText, WithTitle("c1"))

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	flat := Merge(a, b, c)

	lt, rt, ft := titlesOf(left.Items()), titlesOf(right.Items()), titlesOf(flat.Items())
	if len(lt) != len(ft) || len(rt) != len(ft) {
		t.Fatalf("item counts diverge: %d / %d / %d", len(lt), len(rt), len(ft))
	}
	for i := range ft {
		if lt[i] != ft[i] || rt[i] != ft[i] {
			t.Errorf("item %d order diverges: %q / %q / %q", i, lt[i], rt[i], ft[i])
		}
	}
}

func TestMergeLabelPrecedence(t *testing.T) {
	a := New(WithLabels(map[string]string{"demo": "Demographics"}))
	b := New(WithLabels(map[string]string{"demo": "DEMOGRAPHICS"}))

	merged := Merge(a, b)

	if got, want := merged.Labels()["demo"], "DEMOGRAPHICS"; got != want {
		t.Errorf("merged label = %q, want later source %q", got, want)
	}
}

func TestMergeSettings(t *testing.T) {
	t.Run("later explicit override, no conflict", func(t *testing.T) {
		a := New() // default shared first level, not explicit
		b := New(WithSharedFirstLevel(false))

		merged := Merge(a, b)
		if merged.SharedFirstLevel() {
			t.Error("explicit override should win over default")
		}
		if merged.HasConflicts() {
			t.Errorf("default-vs-explicit should not warn: %v", merged.Warnings())
		}
	})

	t.Run("explicit divergence warns", func(t *testing.T) {
		a := New(WithSharedFirstLevel(true))
		b := New(WithSharedFirstLevel(false))

		merged := Merge(a, b)
		if merged.SharedFirstLevel() {
			t.Error("later explicit setting should win")
		}
		if !merged.HasConflicts() {
			t.Fatal("divergent explicit settings should warn")
		}
		if got, want := merged.Warnings()[0].Setting, "shared_first_level"; got != want {
			t.Errorf("warning setting = %q, want %q", got, want)
		}
	})

	t.Run("dataset rebinding warns", func(t *testing.T) {
		h1, h2 := &struct{ name string }{"one"}, &struct{ name string }{"two"}
		a := New(WithDataset("survey", h1))
		b := New(WithDataset("survey", h2))

		merged := Merge(a, b)
		if !merged.HasConflicts() {
			t.Fatal("rebinding a dataset name should warn")
		}
		if got, ok := merged.Dataset("survey"); !ok || got != any(h2) {
			t.Error("later dataset binding should win")
		}
	})

	t.Run("same dataset handle does not warn", func(t *testing.T) {
		h := &struct{ name string }{"one"}
		merged := Merge(New(WithDataset("survey", h)), New(WithDataset("survey", h)))
		if merged.HasConflicts() {
			t.Errorf("identical binding warned: %v", merged.Warnings())
		}
	})
}

func TestMergePreservesSentinels(t *testing.T) {
	a := New().Add(KindText, WithTitle("page one")).AddPageBreak()
	b := New().Add(KindText, WithTitle("page two"))

	merged := Merge(a, b)

	items := merged.Items()
	if got, want := items[1].Kind, KindPaginationBreak; got != want {
		t.Errorf("sentinel kind = %q, want %q", got, want)
	}
	if got, want := items[1].Index, 2; got != want {
		t.Errorf("sentinel renumbered to %d, want %d", got, want)
	}
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge()
	if got, want := merged.Len(), 0; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	merged = Merge(nil, New())
	if got, want := merged.Len(), 0; got != want {
		t.Errorf("Len() with nil input = %d, want %d", got, want)
	}
}
