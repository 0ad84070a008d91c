// Package manifest loads declarative dashboard manifests (dashboard.toml)
// and turns them into content collections with attached dataset sources.
//
// A manifest declares the site settings, labels, defaults, datasets, and
// the ordered item list:
//
//	title = "Survey Report"
//	shared_first_level = true
//	default_dataset = "survey"
//
//	[labels]
//	demographics = "Demographics"
//
//	[defaults]
//	color_scheme = "blues"
//
//	[[dataset]]
//	name = "survey"
//	source = "csv"
//	path = "data/survey.csv"
//
//	[[item]]
//	kind = "bar"
//	path = ["demographics"]
//	  [item.params]
//	  x_var = "age_group"
//
// Item order in the file is insertion order in the collection, which
// drives both tab ordering and pagination.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/httputil"
)

// DefaultFilename is the manifest file name looked up when a directory is
// given instead of a file.
const DefaultFilename = "dashboard.toml"

// Manifest is the decoded form of a dashboard.toml file.
type Manifest struct {
	Title            string            `toml:"title"`
	SharedFirstLevel *bool             `toml:"shared_first_level"`
	DefaultDataset   string            `toml:"default_dataset"`
	Labels           map[string]string `toml:"labels"`
	Defaults         map[string]any    `toml:"defaults"`
	Datasets         []Dataset         `toml:"dataset"`
	Items            []Item            `toml:"item"`

	// dir is the manifest's directory, used to resolve relative paths.
	dir string
}

// Dataset declares one data source.
type Dataset struct {
	Name   string `toml:"name"`
	Source string `toml:"source"` // csv | http | mongo | inline

	// csv
	Path string `toml:"path"`

	// http
	URL string `toml:"url"`

	// mongo
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	Limit      int64  `toml:"limit"`

	// inline
	Columns []string   `toml:"columns"`
	Rows    [][]string `toml:"rows"`
}

// Item declares one dashboard item.
type Item struct {
	Kind     string         `toml:"kind"`
	Path     []string       `toml:"path"`
	Title    string         `toml:"title"`
	TabTitle string         `toml:"tab_title"`
	Dataset  string         `toml:"dataset"`
	Params   map[string]any `toml:"params"`
}

// Load reads and decodes a manifest. The path may be a dashboard.toml
// file or a directory containing one.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// Parse decodes a manifest from TOML source. Relative dataset paths
// resolve against dir.
func Parse(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest")
	}
	m.dir = dir
	return &m, nil
}

// Collection builds a content collection from the manifest. Dataset
// declarations become lazy [dataset.Source] handles on the collection;
// nothing is loaded here. The optional HTTP cache is attached to remote
// sources.
func (m *Manifest) Collection(httpCache *httputil.Cache) (*content.Collection, error) {
	opts := []content.Option{}
	if m.SharedFirstLevel != nil {
		opts = append(opts, content.WithSharedFirstLevel(*m.SharedFirstLevel))
	}
	if len(m.Labels) > 0 {
		opts = append(opts, content.WithLabels(m.Labels))
	}
	if len(m.Defaults) > 0 {
		opts = append(opts, content.WithDefaults(m.Defaults))
	}
	if m.DefaultDataset != "" {
		opts = append(opts, content.WithDefaultDataset(m.DefaultDataset))
	}

	c := content.New(opts...)

	for i, d := range m.Datasets {
		if err := errors.ValidateDatasetName(d.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "dataset %d", i+1)
		}
		src, err := m.source(d, httpCache)
		if err != nil {
			return nil, err
		}
		c.SetDataset(d.Name, src)
	}

	for i, it := range m.Items {
		kind := content.Kind(it.Kind)
		if !kind.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidKind, "item %d: unknown kind %q", i+1, it.Kind)
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

// source builds the lazy dataset source for one declaration.
func (m *Manifest) source(d Dataset, httpCache *httputil.Cache) (dataset.Source, error) {
	switch d.Source {
	case "csv":
		if d.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "dataset %q: csv source needs a path", d.Name)
		}
		path := d.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		return &dataset.CSVFile{DatasetName: d.Name, Path: path}, nil

	case "http":
		if err := errors.ValidateURL(d.URL); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "dataset %q", d.Name)
		}
		return &dataset.HTTPCSV{DatasetName: d.Name, URL: d.URL, Cache: httpCache}, nil

	case "mongo":
		if d.URI == "" || d.Database == "" || d.Collection == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest,
				"dataset %q: mongo source needs uri, database, and collection", d.Name)
		}
		return &dataset.Mongo{
			DatasetName: d.Name,
			URI:         d.URI,
			Database:    d.Database,
			Collection:  d.Collection,
			Limit:       d.Limit,
		}, nil

	case "inline":
		if len(d.Columns) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "dataset %q: inline source needs columns", d.Name)
		}
		return &dataset.Inline{DatasetName: d.Name, Columns: d.Columns, Rows: d.Rows}, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"dataset %q: unknown source %q (must be csv, http, mongo, or inline)", d.Name, d.Source)
	}
}
