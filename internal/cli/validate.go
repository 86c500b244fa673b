package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/errors"
	"github.com/oyalabs/flowcanvas/pkg/pipeline"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// validateCommand creates the validate command for linting workflows.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [flow.json]",
		Short: "Lint the structure of a workflow document",
		Long: `Lint the structure of a workflow document.

Checks that the workflow has at least one entry point, that every node is
reachable and connected, and that all node types are known. Errors block
execution; warnings are advisory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(withLogger(cmd.Context(), c.Logger), args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, strict bool) error {
	logger := loggerFromContext(ctx)

	w, _, err := pipeline.Load(pipeline.Options{Path: input, Logger: logger})
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result := workflow.Validate(w)
	prog.done(fmt.Sprintf("Checked %d nodes", len(w.Nodes)))

	for _, issue := range result.Issues {
		printIssue(issue)
	}

	switch {
	case result.HasErrors():
		printNewline()
		printError("%d error(s), %d warning(s)", result.ErrorCount(), result.WarningCount())
		return errors.New(errors.ErrCodeInvalidWorkflow, "workflow failed validation")
	case strict && result.HasWarnings():
		printNewline()
		printError("%d warning(s) (strict mode)", result.WarningCount())
		return errors.New(errors.ErrCodeInvalidWorkflow, "workflow has warnings")
	case result.HasWarnings():
		printNewline()
		printWarning("%d warning(s)", result.WarningCount())
	default:
		printSuccess("Workflow is valid")
	}
	printStats(len(w.Nodes), len(w.Connections), false)
	return nil
}
