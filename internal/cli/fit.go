package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/pipeline"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// fitCommand creates the "fit" command for framing all nodes in the viewport.
func (c *CLI) fitCommand() *cobra.Command {
	var (
		width   float64
		height  float64
		padding float64
	)

	cmd := &cobra.Command{
		Use:   "fit [flow.json]",
		Short: "Frame all nodes in the viewport",
		Long: `Frame all nodes in the viewport.

Recomputes the viewport transform so every node is visible with the given
padding, then writes the document back in place. A workflow without nodes
is left unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFit(args[0], width, height, padding)
		},
	}

	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultViewportWidth, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultViewportHeight, "viewport height in pixels")
	cmd.Flags().Float64Var(&padding, "padding", pipeline.DefaultFitPadding, "padding around the node bounding box")

	return cmd
}

func (c *CLI) runFit(input string, width, height, padding float64) error {
	w, _, err := pipeline.Load(pipeline.Options{Path: input, Logger: c.Logger})
	if err != nil {
		return err
	}

	if !w.FitView(width, height, padding) {
		printInfo("Nothing to frame")
		return nil
	}

	if err := workflow.WriteFile(w, input); err != nil {
		return fmt.Errorf("write %s: %w", input, err)
	}

	printSuccess("Viewport framed to %d nodes", len(w.Nodes))
	printKeyValue("viewport", fmt.Sprintf("x=%.1f y=%.1f zoom=%.2f", w.Viewport.X, w.Viewport.Y, w.Viewport.Zoom))
	printFile(input)
	return nil
}
