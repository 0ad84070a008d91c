package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashweave/dashweave/pkg/io"
	"github.com/dashweave/dashweave/pkg/pipeline"
)

// collectOpts holds the command-line flags for the collect command.
type collectOpts struct {
	output  string // optional JSON export path for the collection
	refresh bool   // bypass the dataset cache
	noCache bool   // disable caching entirely
}

// collectCommand creates the collect command, which loads a manifest and
// reports what it found without validating or rendering.
func (c *CLI) collectCommand() *cobra.Command {
	var opts collectOpts

	cmd := &cobra.Command{
		Use:   "collect [manifest]",
		Short: "Load a manifest and report its items and datasets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCollect(cmd, manifestArg(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "export the collection as JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload datasets, bypassing the cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the dataset cache")

	return cmd
}

func (c *CLI) runCollect(cmd *cobra.Command, manifest string, opts *collectOpts) error {
	runner, err := c.newRunner(cmd.Context(), opts.noCache, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	var result pipeline.Result
	err = runner.Collect(cmd.Context(), pipeline.Options{
		Manifest:  manifest,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
		HTTPCache: newHTTPCache(opts.noCache),
	}, &result)
	if err != nil {
		return err
	}

	printSuccess("Collected %d item(s) from %s", result.Collection.Len(), manifest)
	if result.Title != "" {
		printKeyValue("title", result.Title)
	}
	for name, ds := range result.Datasets {
		printDetail("dataset %s: %d columns, %d rows", name, len(ds.Columns), ds.Len())
	}
	if result.Collection.HasConflicts() {
		for _, w := range result.Collection.Warnings() {
			printWarning("%s", w.Message)
		}
	}

	if opts.output != "" {
		if err := io.ExportJSON(result.Collection, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	printNextStep("Validate the manifest", fmt.Sprintf("%s validate %s", appName, manifest))
	return nil
}
