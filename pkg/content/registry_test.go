package content

import "testing"

func TestRegistryAppend(t *testing.T) {
	r := NewRegistry()

	first := r.Append(ItemDraft{Kind: KindText, Title: "one"})
	second := r.Append(ItemDraft{Kind: KindBar, Title: "two", Path: "demographics"})

	if got, want := first.Index, 1; got != want {
		t.Errorf("first index = %d, want %d", got, want)
	}
	if got, want := second.Index, 2; got != want {
		t.Errorf("second index = %d, want %d", got, want)
	}
	if got, want := r.Len(), 2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}

	items := r.All()
	if items[0].Title != "one" || items[1].Title != "two" {
		t.Errorf("All() order = [%s %s], want insertion order", items[0].Title, items[1].Title)
	}
	if !items[1].Path.Equal(Path("demographics")) {
		t.Errorf("path not normalized: %v", items[1].Path)
	}
}

func TestRegistryAppendSnapshotsParams(t *testing.T) {
	r := NewRegistry()
	params := Params{"x_var": "age"}

	item := r.Append(ItemDraft{Kind: KindBar, Params: params})

	params["x_var"] = "mutated"
	if got, want := item.Params["x_var"], "age"; got != want {
		t.Errorf("item params changed after draft mutation: got %v, want %v", got, want)
	}
}

func TestRegistryAllIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Append(ItemDraft{Kind: KindText})

	items := r.All()
	items[0].Title = "mutated"

	if got := r.All()[0].Title; got != "" {
		t.Errorf("registry item mutated through All() slice: %q", got)
	}
}
