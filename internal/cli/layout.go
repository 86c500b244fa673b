package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// layoutCommand creates the layout command for computing workflow layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		refresh  bool
		skipLint bool
		strict   bool
		fitView  bool
	)
	var layerSpacing, nodeSpacing float64

	cmd := &cobra.Command{
		Use:   "layout [flow.json]",
		Short: "Compute the layered auto-layout for a workflow",
		Long: `Compute the layered auto-layout for a workflow document.

The layout command reads a workflow file, validates its structure, and
rewrites every node position using the layered layout: entry points on top,
each node one layer below its deepest parent, siblings ordered to minimize
edge crossings.

The document is updated in place unless -o names a different output file.
Layout results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layoutParams{
				output:       output,
				noCache:      noCache,
				refresh:      refresh,
				skipLint:     skipLint,
				strict:       strict,
				fitView:      fitView,
				layerSpacing: layerSpacing,
				nodeSpacing:  nodeSpacing,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: update input in place)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&skipLint, "skip-lint", false, "skip structural validation")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat lint warnings as errors")
	cmd.Flags().BoolVar(&fitView, "fit-view", false, "frame all nodes in the viewport after layout")
	cmd.Flags().Float64Var(&layerSpacing, "layer-spacing", 0, "vertical gap between layers (default from config)")
	cmd.Flags().Float64Var(&nodeSpacing, "node-spacing", 0, "horizontal gap between siblings (default from config)")

	return cmd
}

type layoutParams struct {
	output       string
	noCache      bool
	refresh      bool
	skipLint     bool
	strict       bool
	fitView      bool
	layerSpacing float64
	nodeSpacing  float64
}

// runLayout executes the pipeline and writes the laid-out document.
func (c *CLI) runLayout(ctx context.Context, input string, p layoutParams) error {
	ctx = withLogger(ctx, c.Logger)

	runner, err := c.newRunner(ctx, p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions(input)
	opts.Refresh = p.refresh
	opts.SkipLint = p.skipLint
	opts.Strict = p.strict
	opts.FitView = p.fitView
	if p.layerSpacing != 0 {
		opts.LayerSpacing = p.layerSpacing
	}
	if p.nodeSpacing != 0 {
		opts.NodeSpacing = p.nodeSpacing
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		if result != nil {
			for _, issue := range result.Lint.Issues {
				printIssue(issue)
			}
		}
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, issue := range result.Lint.Issues {
		printIssue(issue)
	}

	outputPath := p.output
	if outputPath == "" {
		outputPath = input
	}
	if err := workflow.WriteFile(result.Workflow, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.ConnectionCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Inspect", "flowcanvas inspect "+outputPath)

	return nil
}
