// Package pipeline provides the core dashboard build pipeline.
//
// This package implements the complete collect → validate → render → emit
// pipeline that can be used by CLI, preview server, and worker components.
// By centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Collect: Load the manifest (or take a programmatic collection) and
//     materialize its datasets
//  2. Validate: Check every item against the per-kind rule tables and the
//     dataset columns
//  3. Render: Produce one markdown artifact per item, with caching
//  4. Emit: Write the paginated markdown site and its config
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest: "dashboard.toml",
//	    OutDir:   "site",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Emit.Pages)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/emit"
	"github.com/dashweave/dashweave/pkg/httputil"
	"github.com/dashweave/dashweave/pkg/render"
	"github.com/dashweave/dashweave/pkg/validate"
)

// Default values shared by CLI, preview server, and worker entry points.
const (
	// DefaultOutDir is the default site output directory.
	DefaultOutDir = "site"

	// DefaultCollapse is the default single-tab collapse policy.
	DefaultCollapse = CollapseLeaf
)

// Collapse policy names accepted by Options.Collapse.
const (
	CollapseNever = "never"
	CollapseLeaf  = "leaf"
	CollapseAll   = "all"
)

// ValidCollapse is the set of supported collapse policy names.
var ValidCollapse = map[string]bool{
	CollapseNever: true,
	CollapseLeaf:  true,
	CollapseAll:   true,
}

// Options contains all configuration for the build pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Collect options
	Manifest string `json:"manifest,omitempty"`
	Title    string `json:"title,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Validate options
	FailFast     bool `json:"fail_fast,omitempty"`
	AllowInvalid bool `json:"allow_invalid,omitempty"`

	// Render and emit options
	Collapse string `json:"collapse,omitempty"`
	OutDir   string `json:"out_dir,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger         `json:"-"`
	Collection *content.Collection `json:"-"`
	Registry   *render.Registry    `json:"-"`
	HTTPCache  *httputil.Cache     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Collection is the collected content.
	Collection *content.Collection

	// Title is the effective site title.
	Title string

	// Datasets holds the loaded datasets by name.
	Datasets map[string]*dataset.Dataset

	// Issues contains the validation findings.
	Issues []validate.Issue

	// Artifacts contains rendered outputs keyed by item index.
	Artifacts map[int]*render.Artifact

	// Tree is the materialized tab tree.
	Tree []content.Node

	// Emit describes the written site. Nil when emission was skipped.
	Emit *emit.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache hits across the run.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount    int
	DatasetCount int
	IssueCount   int
	PageCount    int
	CollectTime  time.Duration
	ValidateTime time.Duration
	RenderTime   time.Duration
	EmitTime     time.Duration
}

// CacheInfo tracks cache hits for the cached pipeline stages.
type CacheInfo struct {
	DatasetHits    int
	DatasetMisses  int
	ArtifactHits   int
	ArtifactMisses int
}

// ValidateCollapse checks that a collapse policy name is valid.
func ValidateCollapse(collapse string) error {
	if !ValidCollapse[collapse] {
		return fmt.Errorf("invalid collapse policy: %q (must be one of: never, leaf, all)", collapse)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCollect(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateCollapse(o.Collapse); err != nil {
		return err
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	o.validated = true
	return nil
}

// ValidateForCollect checks required fields for collection.
func (o *Options) ValidateForCollect() error {
	if o.Manifest == "" && o.Collection == nil {
		return fmt.Errorf("manifest or collection is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Collapse == "" {
		o.Collapse = DefaultCollapse
	}
	if o.Registry == nil {
		o.Registry = render.DefaultRegistry()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// TreeOptions converts the collapse policy name to tree build options.
func (o *Options) TreeOptions() []content.TreeOption {
	switch o.Collapse {
	case CollapseNever:
		return []content.TreeOption{content.WithCollapse(content.CollapseNever)}
	case CollapseAll:
		return []content.TreeOption{content.WithCollapse(content.CollapseAll)}
	default:
		return []content.TreeOption{content.WithCollapse(content.CollapseLeaf)}
	}
}
