package dataset

import "context"

// Source loads a named dataset from some origin (file, URL, database,
// inline literal). Sources are lazy: construction never touches the
// origin, only Load does.
type Source interface {
	// Name returns the dataset name the source will produce.
	Name() string

	// Origin returns a stable identifier for the data's location (file
	// path, URL, connection string). Used in cache keys and error messages.
	Origin() string

	// Load reads the data and returns the materialized dataset.
	Load(ctx context.Context) (*Dataset, error)
}

// Inline is a Source backed by literal columns and rows, typically from a
// manifest's inline table or test fixtures.
type Inline struct {
	DatasetName string
	Columns     []string
	Rows        [][]string
}

// Name returns the dataset name.
func (s *Inline) Name() string { return s.DatasetName }

// Origin identifies the source as inline data.
func (s *Inline) Origin() string { return "inline:" + s.DatasetName }

// Load materializes the inline data, validating that rows are rectangular.
func (s *Inline) Load(ctx context.Context) (*Dataset, error) {
	d := &Dataset{
		Name:    s.DatasetName,
		Columns: append([]string(nil), s.Columns...),
		Rows:    make([][]string, len(s.Rows)),
	}
	for i, row := range s.Rows {
		if len(row) != len(s.Columns) {
			return nil, errRaggedRow(s.DatasetName, i, len(row), len(s.Columns))
		}
		d.Rows[i] = append([]string(nil), row...)
	}
	return d, nil
}

// Ensure implementations satisfy Source.
var (
	_ Source = (*Inline)(nil)
	_ Source = (*CSVFile)(nil)
	_ Source = (*HTTPCSV)(nil)
	_ Source = (*Mongo)(nil)
)
