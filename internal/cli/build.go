package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dashweave/dashweave/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	out          string // output directory for the emitted site
	title        string // site title override
	collapse     string // single-tab collapse policy: never, leaf, all
	refresh      bool   // bypass dataset and artifact caches
	allowInvalid bool   // emit annotations for invalid items instead of failing
	failFast     bool   // stop validation at the first issue
	noCache      bool   // disable caching entirely
	cacheURL     string // redis URL for a cache shared across builders
}

// buildCommand creates the build command, which runs the full pipeline.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{
		out:      pipeline.DefaultOutDir,
		collapse: pipeline.DefaultCollapse,
	}

	cmd := &cobra.Command{
		Use:   "build [manifest]",
		Short: "Build the dashboard site from a manifest",
		Long: `Build runs the full pipeline: it collects the manifest's items and
datasets, validates them, renders one markdown fragment per item, and
emits the paginated site with its config and assets.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, manifestArg(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory")
	cmd.Flags().StringVar(&opts.title, "title", "", "override the site title")
	cmd.Flags().StringVar(&opts.collapse, "collapse", opts.collapse, "single-tab collapse policy: never, leaf, all")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload datasets and re-render, bypassing caches")
	cmd.Flags().BoolVar(&opts.allowInvalid, "allow-invalid", false, "annotate invalid items instead of failing")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop validation at the first issue")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the dataset and artifact cache")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "redis URL for a shared cache (redis://host:port/db)")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, manifest string, opts *buildOpts) error {
	if err := pipeline.ValidateCollapse(opts.collapse); err != nil {
		return err
	}

	runner, err := c.newRunner(cmd.Context(), opts.noCache, opts.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(cmd.Context(), "Building dashboard")
	spinner.Start()
	start := time.Now()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Manifest:     manifest,
		Title:        opts.title,
		Refresh:      opts.refresh,
		FailFast:     opts.failFast,
		AllowInvalid: opts.allowInvalid,
		Collapse:     opts.collapse,
		OutDir:       opts.out,
		Logger:       c.Logger,
		HTTPCache:    newHTTPCache(opts.noCache),
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Build failed: %v", err))
		if result != nil {
			printIssues(result.Issues)
		}
		return err
	}

	cached := result.CacheInfo.ArtifactHits > 0 && result.CacheInfo.ArtifactMisses == 0
	spinner.StopWithSuccess(fmt.Sprintf("Built %s (%s)", opts.out, time.Since(start).Round(time.Millisecond)))
	printStats(result.Stats.ItemCount, result.Stats.PageCount, cached)

	for _, page := range result.Emit.Pages {
		printFile(filepath.Join(opts.out, page.File))
	}
	if len(result.Issues) > 0 {
		printWarning("%d item(s) skipped with validation issues", len(result.Issues))
		printIssues(result.Issues)
	}

	printNextStep("Preview the site", fmt.Sprintf("%s preview %s -o %s", appName, manifest, opts.out))
	return nil
}
