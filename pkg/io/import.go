package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dashweave/dashweave/pkg/content"
)

// ReadJSON decodes a JSON collection from r.
//
// The input must be a JSON object with an "items" array:
//
//	{
//	  "shared_first_level": true,
//	  "labels": {"demographics": "Demographics"},
//	  "items": [{"kind": "bar", "path": ["demographics"], "params": {"x_var": "age"}}]
//	}
//
// Each item must have a valid "kind". Optional fields:
//   - path: list of group keys (defaults to standalone)
//   - params: object with arbitrary parameter values
//   - title, tab_title: display titles
//   - dataset: dataset reference name
//
// ReadJSON returns an error if the JSON is malformed or an item carries an
// unknown kind. Errors are wrapped with context naming the offending item.
//
// The returned collection is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*content.Collection, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	opts := []content.Option{
		content.WithSharedFirstLevel(data.SharedFirstLevel),
	}
	if len(data.Labels) > 0 {
		opts = append(opts, content.WithLabels(data.Labels))
	}
	if data.DefaultDataset != "" {
		opts = append(opts, content.WithDefaultDataset(data.DefaultDataset))
	}

	c := content.New(opts...)
	for i, it := range data.Items {
		kind := content.Kind(it.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("item %d: unknown kind %q", i+1, it.Kind)
		}

		itemOpts := []content.ItemOption{}
		if len(it.Path) > 0 {
			itemOpts = append(itemOpts, content.AtPath(it.Path))
		}
		if len(it.Params) > 0 {
			itemOpts = append(itemOpts, content.WithParams(it.Params))
		}
		if it.Title != "" {
			itemOpts = append(itemOpts, content.WithTitle(it.Title))
		}
		if it.TabTitle != "" {
			itemOpts = append(itemOpts, content.WithTabTitle(it.TabTitle))
		}
		if it.Dataset != "" {
			itemOpts = append(itemOpts, content.FromDataset(it.Dataset))
		}
		c.Add(kind, itemOpts...)
	}

	return c, nil
}

// ImportJSON reads a JSON file at path and returns the decoded collection.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error naming the path.
func ImportJSON(path string) (*content.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return c, nil
}
