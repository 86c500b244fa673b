package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/catalog"
	"github.com/oyalabs/flowcanvas/pkg/errors"
	"github.com/oyalabs/flowcanvas/pkg/pipeline"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// addCommand creates the "add" command for appending nodes to a workflow.
func (c *CLI) addCommand() *cobra.Command {
	var (
		nodeType    string
		name        string
		at          string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add [flow.json]",
		Short: "Add a node to a workflow",
		Long: `Add a node to a workflow document.

The node is placed at the current viewport center unless --at gives an
explicit position. When the chosen spot is occupied the node is nudged
diagonally until it lands on free canvas. Use --interactive to pick the
node type from the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(args[0], nodeType, name, at, interactive)
		},
	}

	cmd.Flags().StringVarP(&nodeType, "type", "t", "", "node type to add (see 'add --interactive' for the catalog)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: auto-generated from the type)")
	cmd.Flags().StringVar(&at, "at", "", "canvas position as x,y (default: viewport center)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the node type from an interactive list")

	return cmd
}

func (c *CLI) runAdd(input, nodeType, name, at string, interactive bool) error {
	if interactive && nodeType == "" {
		picked, err := pickNodeType()
		if err != nil {
			return fmt.Errorf("node type selection: %w", err)
		}
		if picked == "" {
			printInfo("No node type selected")
			return nil
		}
		nodeType = picked
	}
	if nodeType == "" {
		return errors.New(errors.ErrCodeInvalidInput, "node type is required (use --type or --interactive)")
	}
	if err := errors.ValidateNodeType(nodeType); err != nil {
		return err
	}
	if name != "" {
		if err := errors.ValidateNodeName(name); err != nil {
			return err
		}
	}

	w, _, err := pipeline.Load(pipeline.Options{Path: input, Logger: c.Logger})
	if err != nil {
		return err
	}

	if !catalog.Known(nodeType) {
		printWarning("Unknown node type %q, adding with default metadata", nodeType)
	}

	var id workflow.NodeID
	if at != "" {
		var x, y float64
		if _, err := fmt.Sscanf(at, "%f,%f", &x, &y); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid --at position, expected x,y")
		}
		id = w.AddNode(nodeType, x, y)
	} else {
		id = w.AddNodeAtViewportCenter(nodeType)
	}

	node, _ := w.Node(id)
	if name != "" {
		node.Name = name
	}

	if err := workflow.WriteFile(w, input); err != nil {
		return fmt.Errorf("write %s: %w", input, err)
	}

	printSuccess("Added %s", node.Name)
	printKeyValue("id", string(id))
	printKeyValue("type", nodeType)
	printKeyValue("position", fmt.Sprintf("(%.0f, %.0f)", node.X, node.Y))
	printNewline()
	printNextStep("Connect it", fmt.Sprintf("flowcanvas connect %s --from <node> --to %q", input, node.Name))
	return nil
}
