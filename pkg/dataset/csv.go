package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/dashweave/dashweave/pkg/errors"
)

// CSVFile is a Source backed by a local CSV file. The first record is the
// header row; all further records are data rows.
type CSVFile struct {
	DatasetName string
	Path        string
}

// Name returns the dataset name.
func (s *CSVFile) Name() string { return s.DatasetName }

// Origin returns the file path.
func (s *CSVFile) Origin() string { return s.Path }

// Load reads and parses the CSV file.
func (s *CSVFile) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %q: open %s", s.DatasetName, s.Path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "dataset %q: open %s", s.DatasetName, s.Path)
	}
	defer f.Close()
	return ReadCSV(f, s.DatasetName)
}

// ReadCSV parses CSV data from r into a dataset. The first record is the
// header; encoding/csv enforces that every data row matches its width.
// Header names are trimmed of surrounding whitespace and a leading UTF-8
// BOM.
func ReadCSV(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "dataset %q: empty CSV input", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "dataset %q: read CSV header", name)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = h
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "dataset %q: read CSV row %d", name, len(rows)+2)
		}
		rows = append(rows, record)
	}

	return &Dataset{Name: name, Columns: columns, Rows: rows}, nil
}

func errRaggedRow(name string, row, got, want int) error {
	return errors.New(errors.ErrCodeInvalidFormat,
		"dataset %q: row %d has %d cells, want %d", name, row+1, got, want)
}
