package dataset

import (
	"encoding/json"

	"github.com/dashweave/dashweave/pkg/cache"
)

// Dataset is an immutable, rectangular table of string cells.
//
// All cell values are strings; renderers that need numbers parse them on
// demand. Every row has exactly len(Columns) cells.
type Dataset struct {
	// Name identifies the dataset within a collection.
	Name string `json:"name"`

	// Columns holds the column names in declaration order.
	Columns []string `json:"columns"`

	// Rows holds the table body, one string per column per row.
	Rows [][]string `json:"rows"`
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn reports whether the dataset has a column with the given name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns all values of the named column in row order.
// The second return value is false when the column does not exist.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := -1
	for i, c := range d.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Fingerprint returns a content hash covering the dataset's name, columns,
// and rows. Equal datasets produce equal fingerprints, which makes the
// fingerprint suitable for artifact cache keys.
func (d *Dataset) Fingerprint() string {
	data, _ := json.Marshal(d)
	return cache.Hash(data)
}
