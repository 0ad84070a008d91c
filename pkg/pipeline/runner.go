package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dashweave/dashweave/pkg/cache"
	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/emit"
	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/manifest"
	"github.com/dashweave/dashweave/pkg/observability"
	"github.com/dashweave/dashweave/pkg/render"
	"github.com/dashweave/dashweave/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and preview server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete collect → validate → render → emit pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[int]*render.Artifact),
	}

	// Stage 1: Collect
	collectStart := time.Now()
	if err := r.Collect(ctx, opts, result); err != nil {
		return nil, err
	}
	result.Stats.CollectTime = time.Since(collectStart)
	result.Stats.ItemCount = result.Collection.Len()
	result.Stats.DatasetCount = len(result.Datasets)

	r.Logger.Info("collected content",
		"items", result.Stats.ItemCount,
		"datasets", result.Stats.DatasetCount,
		"duration", result.Stats.CollectTime)

	// Stage 2: Validate
	validateStart := time.Now()
	if err := r.ValidateCollection(ctx, opts, result); err != nil {
		return result, err
	}
	result.Stats.ValidateTime = time.Since(validateStart)
	result.Stats.IssueCount = len(result.Issues)

	r.Logger.Info("validated items",
		"items", result.Stats.ItemCount,
		"issues", result.Stats.IssueCount,
		"duration", result.Stats.ValidateTime)

	// Stage 3: Render
	renderStart := time.Now()
	if err := r.RenderArtifacts(ctx, opts, result); err != nil {
		return result, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered artifacts",
		"artifacts", len(result.Artifacts),
		"cache_hits", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)

	// Stage 4: Emit
	emitStart := time.Now()
	if err := r.EmitSite(ctx, opts, result); err != nil {
		return result, err
	}
	result.Stats.EmitTime = time.Since(emitStart)
	result.Stats.PageCount = len(result.Emit.Pages)

	r.Logger.Info("emitted site",
		"dir", opts.OutDir,
		"pages", result.Stats.PageCount,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// Collect loads the collection (from the manifest or Options.Collection)
// and materializes its datasets into Result.Collection and Result.Datasets.
func (r *Runner) Collect(ctx context.Context, opts Options, result *Result) error {
	if err := opts.ValidateForCollect(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnCollectStart(ctx, opts.Manifest)
	start := time.Now()

	c := opts.Collection
	title := opts.Title
	if c == nil {
		m, err := manifest.Load(opts.Manifest)
		if err != nil {
			hooks.OnCollectComplete(ctx, opts.Manifest, 0, time.Since(start), err)
			return err
		}
		if title == "" {
			title = m.Title
		}
		c, err = m.Collection(opts.HTTPCache)
		if err != nil {
			hooks.OnCollectComplete(ctx, opts.Manifest, 0, time.Since(start), err)
			return err
		}
	}

	result.Collection = c
	result.Title = title

	datasets, err := r.loadDatasets(ctx, c, opts, &result.CacheInfo)
	hooks.OnCollectComplete(ctx, opts.Manifest, c.Len(), time.Since(start), err)
	if err != nil {
		return err
	}
	result.Datasets = datasets
	return nil
}

// loadDatasets materializes every dataset handle on the collection.
// Handles may be pre-loaded datasets or lazy sources; source loads go
// through the cache keyed by origin.
func (r *Runner) loadDatasets(ctx context.Context, c *content.Collection, opts Options, info *CacheInfo) (map[string]*dataset.Dataset, error) {
	out := make(map[string]*dataset.Dataset)
	cacheHooks := observability.Cache()

	for name, handle := range c.Datasets() {
		switch h := handle.(type) {
		case *dataset.Dataset:
			out[name] = h

		case dataset.Source:
			key := r.Keyer.DatasetKey(h.Origin(), cache.DatasetKeyOpts{})

			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
					var ds dataset.Dataset
					if err := json.Unmarshal(data, &ds); err == nil {
						cacheHooks.OnCacheHit(ctx, "dataset")
						info.DatasetHits++
						out[name] = &ds
						continue
					}
				}
			}
			cacheHooks.OnCacheMiss(ctx, "dataset")
			info.DatasetMisses++

			ds, err := h.Load(ctx)
			if err != nil {
				return nil, err
			}
			out[name] = ds

			if data, err := json.Marshal(ds); err == nil {
				_ = r.Cache.Set(ctx, key, data, cache.TTLDataset)
				cacheHooks.OnCacheSet(ctx, "dataset", len(data))
			}

		default:
			return nil, errors.New(errors.ErrCodeDatasetNotFound,
				"dataset %q: unusable handle type %T", name, handle)
		}
	}
	return out, nil
}

// ValidateCollection checks the collected items against the rule tables
// and the loaded dataset columns, filling Result.Issues.
//
// Issues fail the run unless AllowInvalid is set; FailFast aborts at the
// first issue with a coded error.
func (r *Runner) ValidateCollection(ctx context.Context, opts Options, result *Result) error {
	hooks := observability.Pipeline()
	hooks.OnValidateStart(ctx, result.Collection.Len())
	start := time.Now()

	vr, err := validate.Validate(result.Collection.Items(), validate.Options{
		ColumnsFor:       r.columnsFor(result),
		StopOnFirstError: opts.FailFast,
	})
	result.Issues = vr.Issues
	hooks.OnValidateComplete(ctx, result.Collection.Len(), len(vr.Issues), time.Since(start), err)

	if err != nil {
		return err
	}
	if !vr.OK() && !opts.AllowInvalid {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d validation issue(s); first: %s", len(vr.Issues), vr.Issues[0].String())
	}
	return nil
}

// columnsFor adapts the loaded datasets to the validator's column lookup.
func (r *Runner) columnsFor(result *Result) func(ref string) (validate.ColumnSet, bool) {
	return func(ref string) (validate.ColumnSet, bool) {
		name := resolveRef(result.Collection, ref)
		ds, ok := result.Datasets[name]
		if !ok {
			return nil, false
		}
		return validate.NewColumnSet(ds.Columns...), true
	}
}

// RenderArtifacts renders every renderable item, consulting the artifact
// cache keyed by item hash and dataset fingerprint. Items with validation
// issues are skipped (they surface as annotations at emit time).
func (r *Runner) RenderArtifacts(ctx context.Context, opts Options, result *Result) error {
	opts.SetRenderDefaults()
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, result.Collection.Len())
	start := time.Now()

	invalid := make(map[int]bool, len(result.Issues))
	for _, issue := range result.Issues {
		invalid[issue.ItemIndex] = true
	}
	cacheHooks := observability.Cache()

	for _, item := range result.Collection.Items() {
		if item.Kind.IsSentinel() || invalid[item.Index] {
			continue
		}

		ds := result.Datasets[resolveRef(result.Collection, item.DatasetRef)]

		keyOpts := cache.ArtifactKeyOpts{Kind: string(item.Kind)}
		if ds != nil {
			keyOpts.DatasetHash = ds.Fingerprint()
		}
		key := r.Keyer.ArtifactKey(render.ItemHash(item), keyOpts)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				var artifact render.Artifact
				if err := json.Unmarshal(data, &artifact); err == nil {
					cacheHooks.OnCacheHit(ctx, "artifact")
					result.CacheInfo.ArtifactHits++
					result.Artifacts[item.Index] = &artifact
					continue
				}
			}
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		result.CacheInfo.ArtifactMisses++

		artifact, err := opts.Registry.Render(ctx, item, ds)
		if err != nil {
			hooks.OnRenderComplete(ctx, result.Collection.Len(), time.Since(start), err)
			return err
		}
		result.Artifacts[item.Index] = artifact

		if data, err := json.Marshal(artifact); err == nil {
			_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	hooks.OnRenderComplete(ctx, result.Collection.Len(), time.Since(start), nil)
	return nil
}

// EmitSite materializes the tree and writes the site directory.
func (r *Runner) EmitSite(ctx context.Context, opts Options, result *Result) error {
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	hooks.OnEmitStart(ctx, opts.OutDir)
	start := time.Now()

	result.Tree = result.Collection.Materialize(opts.TreeOptions()...)

	emitResult, err := emit.Emit(result.Tree, result.Artifacts, emit.Options{
		OutDir:           opts.OutDir,
		Title:            result.Title,
		SharedFirstLevel: result.Collection.SharedFirstLevel(),
		AllowInvalid:     opts.AllowInvalid,
		Issues:           result.Issues,
	})
	pages := 0
	if emitResult != nil {
		pages = len(emitResult.Pages)
	}
	hooks.OnEmitComplete(ctx, opts.OutDir, pages, time.Since(start), err)
	if err != nil {
		return err
	}
	result.Emit = emitResult
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// resolveRef resolves an item's dataset reference to a dataset name,
// mirroring the collection's handle resolution: empty refs fall back to
// the default dataset, then to a sole bound dataset.
func resolveRef(c *content.Collection, ref string) string {
	if ref != "" {
		return ref
	}
	if name := c.DefaultDataset(); name != "" {
		return name
	}
	datasets := c.Datasets()
	if len(datasets) == 1 {
		for name := range datasets {
			return name
		}
	}
	return ""
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
