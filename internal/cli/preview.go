package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashweave/dashweave/internal/preview"
	"github.com/dashweave/dashweave/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	addr         string // listen address
	out          string // site directory to build into and serve
	collapse     string // single-tab collapse policy
	allowInvalid bool   // annotate invalid items instead of failing
	noBuild      bool   // serve the existing directory without building first
	noCache      bool   // disable caching
	cacheURL     string // redis URL for a cache shared across builders
}

// previewCommand creates the preview command, which builds the site and
// serves it locally with rebuild-on-demand APIs.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{
		addr:     preview.DefaultAddr,
		out:      pipeline.DefaultOutDir,
		collapse: pipeline.DefaultCollapse,
	}

	cmd := &cobra.Command{
		Use:   "preview [manifest]",
		Short: "Serve the dashboard site locally",
		Long: `Preview builds the site and serves it over HTTP. The server also
exposes read-only JSON APIs under /api (config, tree, issues, stats)
and POST /api/build to rebuild after a manifest edit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, manifestArg(args), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "site directory")
	cmd.Flags().StringVar(&opts.collapse, "collapse", opts.collapse, "single-tab collapse policy: never, leaf, all")
	cmd.Flags().BoolVar(&opts.allowInvalid, "allow-invalid", false, "annotate invalid items instead of failing")
	cmd.Flags().BoolVar(&opts.noBuild, "no-build", false, "serve the existing site without building first")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the dataset and artifact cache")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "redis URL for a shared cache (redis://host:port/db)")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, manifest string, opts *previewOpts) error {
	if err := pipeline.ValidateCollapse(opts.collapse); err != nil {
		return err
	}

	runner, err := c.newRunner(cmd.Context(), opts.noCache, opts.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	server := preview.NewServer(runner, pipeline.Options{
		Manifest:     manifest,
		AllowInvalid: opts.allowInvalid,
		Collapse:     opts.collapse,
		OutDir:       opts.out,
		Logger:       c.Logger,
		HTTPCache:    newHTTPCache(opts.noCache),
	}, c.Logger)

	if !opts.noBuild {
		result, err := server.Build(cmd.Context())
		if err != nil {
			return err
		}
		printSuccess("Built %d page(s)", result.Stats.PageCount)
	}

	printInfo("Serving %s on http://%s", opts.out, opts.addr)
	printNextStep("Rebuild after edits", fmt.Sprintf("curl -X POST http://%s/api/build", opts.addr))

	return server.ListenAndServe(cmd.Context(), opts.addr)
}
