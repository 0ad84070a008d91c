package dataset

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dashweave/dashweave/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	input := "age_group,region\n18-24,north\n25-34,south\n"

	d, err := ReadCSV(strings.NewReader(input), "survey")
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}
	if want := []string{"age_group", "region"}; !reflect.DeepEqual(d.Columns, want) {
		t.Errorf("Columns = %v, want %v", d.Columns, want)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
	if d.Rows[1][1] != "south" {
		t.Errorf("Rows[1][1] = %q, want south", d.Rows[1][1])
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("a,b\n"), "empty")
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("header-only CSV should have 0 rows, got %d", d.Len())
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "empty")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("empty input error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadCSVRaggedRow(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1\n"), "bad")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ragged row error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("\uFEFFa,b\n1,2\n"), "bom")
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}
	if d.Columns[0] != "a" {
		t.Errorf("first column = %q, want a", d.Columns[0])
	}
}

func TestCSVFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &CSVFile{DatasetName: "survey", Path: path}
	d, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if d.Name != "survey" || d.Len() != 1 {
		t.Errorf("unexpected dataset: %+v", d)
	}
}

func TestCSVFileSourceMissing(t *testing.T) {
	src := &CSVFile{DatasetName: "gone", Path: filepath.Join(t.TempDir(), "missing.csv")}
	_, err := src.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
