package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/catalog"
	"github.com/oyalabs/flowcanvas/pkg/pipeline"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// inspectCommand creates the inspect command for summarizing workflows.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [flow.json]",
		Short: "Summarize a workflow document",
		Long: `Summarize a workflow document: node and connection counts, nodes per
category, the viewport transform, and the per-node listing with positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw document as JSON")
	return cmd
}

func (c *CLI) runInspect(input string, asJSON bool) error {
	w, hash, err := pipeline.Load(pipeline.Options{Path: input, Logger: c.Logger})
	if err != nil {
		return err
	}

	if asJSON {
		return workflow.Write(w, os.Stdout)
	}

	fmt.Println(StyleTitle.Render("Workflow: " + input))
	printNewline()
	printKeyValue("nodes", fmt.Sprintf("%d", len(w.Nodes)))
	printKeyValue("connections", fmt.Sprintf("%d", len(w.Connections)))
	printKeyValue("viewport", fmt.Sprintf("x=%.1f y=%.1f zoom=%.2f", w.Viewport.X, w.Viewport.Y, w.Viewport.Zoom))
	printKeyValue("hash", hash[:12])

	if counts := categoryCounts(w); len(counts) > 0 {
		printNewline()
		fmt.Println(StyleDim.Render("By category"))
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printKeyValue(name, fmt.Sprintf("%d", counts[name]))
		}
	}

	if len(w.Nodes) > 0 {
		printNewline()
		fmt.Println(StyleDim.Render("Nodes"))
		for _, n := range w.Nodes {
			marker := " "
			if !catalog.Known(n.NodeType) {
				marker = StyleWarning.Render("?")
			}
			fmt.Printf("  %s %-28s %-16s (%.0f, %.0f)\n",
				marker, StyleValue.Render(n.Name), StyleDim.Render(n.NodeType), n.X, n.Y)
		}
	}

	return nil
}

func categoryCounts(w *workflow.Workflow) map[string]int {
	counts := make(map[string]int)
	for _, n := range w.Nodes {
		counts[string(n.Category)]++
	}
	return counts
}
