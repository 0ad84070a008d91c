package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dashweave/dashweave/pkg/content"
)

type document struct {
	SharedFirstLevel bool              `json:"shared_first_level"`
	DefaultDataset   string            `json:"default_dataset,omitempty"`
	Labels           map[string]string `json:"labels,omitempty"`
	Items            []item            `json:"items"`
}

type item struct {
	Kind     string         `json:"kind"`
	Path     []string       `json:"path,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
	Title    string         `json:"title,omitempty"`
	TabTitle string         `json:"tab_title,omitempty"`
	Dataset  string         `json:"dataset,omitempty"`
}

// WriteJSON encodes a collection as JSON and writes it to w.
// The output includes all items (in insertion order, with params and
// titles), the label table, and the collection settings.
// This format can be re-imported with [ReadJSON] for round-trip processing.
//
// Dataset handles are not serialized; only dataset references on items
// survive a round trip. Callers re-attach handles after import.
func WriteJSON(c *content.Collection, w io.Writer) error {
	items := c.Items()
	out := document{
		SharedFirstLevel: c.SharedFirstLevel(),
		DefaultDataset:   c.DefaultDataset(),
		Labels:           c.Labels(),
		Items:            make([]item, len(items)),
	}

	for i, it := range items {
		out.Items[i] = item{
			Kind:     string(it.Kind),
			Path:     it.Path,
			Params:   it.Params,
			Title:    it.Title,
			TabTitle: it.TabTitle,
			Dataset:  it.DatasetRef,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a collection to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(c *content.Collection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
