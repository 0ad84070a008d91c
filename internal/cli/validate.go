package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/pipeline"
	"github.com/dashweave/dashweave/pkg/validate"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	all     bool // report every issue instead of stopping at the first
	noCache bool // disable the dataset cache
}

// validateCommand creates the validate command, which checks a manifest
// without rendering anything. By default it stops at the first issue;
// --all reports everything.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Validate a manifest without building",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, manifestArg(args), &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "report all issues instead of stopping at the first")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the dataset cache")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, manifest string, opts *validateOpts) error {
	runner, err := c.newRunner(cmd.Context(), opts.noCache, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Manifest:  manifest,
		FailFast:  !opts.all,
		Logger:    c.Logger,
		HTTPCache: newHTTPCache(opts.noCache),
	}

	var result pipeline.Result
	if err := runner.Collect(cmd.Context(), pipeOpts, &result); err != nil {
		return err
	}
	if err := runner.ValidateCollection(cmd.Context(), pipeOpts, &result); err != nil {
		if len(result.Issues) == 0 {
			return err
		}
	}

	if len(result.Issues) == 0 {
		printSuccess("All %d item(s) valid", result.Collection.Len())
		return nil
	}

	printError("%d validation issue(s)", len(result.Issues))
	printIssues(result.Issues)
	if !opts.all {
		printNextStep("See every issue", fmt.Sprintf("%s validate %s --all", appName, manifest))
	}
	return errors.New(errors.ErrCodeInvalidInput, "validation failed with %d issue(s)", len(result.Issues))
}

// printIssues prints validation issues, one actionable line each.
func printIssues(issues []validate.Issue) {
	for _, issue := range issues {
		printDetail("%s", issue.String())
	}
}
