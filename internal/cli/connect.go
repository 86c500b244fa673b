package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/errors"
	"github.com/oyalabs/flowcanvas/pkg/pipeline"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// connectCommand creates the "connect" command for wiring nodes together.
func (c *CLI) connectCommand() *cobra.Command {
	var (
		from     string
		to       string
		fromPort string
		toPort   string
	)

	cmd := &cobra.Command{
		Use:   "connect [flow.json]",
		Short: "Connect two nodes in a workflow",
		Long: `Connect two nodes in a workflow document.

Nodes are addressed by ID or by display name. The connection is rejected
when it would point a node at itself, close a directed cycle, or duplicate
an existing edge. Incompatible port types are reported as a warning but do
not block the connection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConnect(withLogger(cmd.Context(), c.Logger), args[0], from, to, fromPort, toPort)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source node (ID or name)")
	cmd.Flags().StringVar(&to, "to", "", "target node (ID or name)")
	cmd.Flags().StringVar(&fromPort, "from-port", "main", "source port name")
	cmd.Flags().StringVar(&toPort, "to-port", "main", "target port name")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) runConnect(ctx context.Context, input, from, to, fromPort, toPort string) error {
	if err := errors.ValidatePortName(fromPort); err != nil {
		return err
	}
	if err := errors.ValidatePortName(toPort); err != nil {
		return err
	}

	w, _, err := pipeline.Load(pipeline.Options{Path: input, Logger: loggerFromContext(ctx)})
	if err != nil {
		return err
	}

	source, err := resolveNode(w, from)
	if err != nil {
		return err
	}
	target, err := resolveNode(w, to)
	if err != nil {
		return err
	}

	result, err := w.AddConnectionChecked(source.ID, target.ID,
		workflow.PortName(fromPort), workflow.PortName(toPort))
	if err != nil {
		switch {
		case stderrors.Is(err, workflow.ErrSelfConnection):
			return errors.New(errors.ErrCodeInvalidInput, "a node cannot connect to itself")
		case stderrors.Is(err, workflow.ErrWouldCreateCycle):
			return errors.New(errors.ErrCodeCyclicGraph,
				"connecting %s to %s would create a cycle", source.Name, target.Name)
		case stderrors.Is(err, workflow.ErrDuplicateConnection):
			return errors.New(errors.ErrCodeInvalidInput,
				"%s is already connected to %s on these ports", source.Name, target.Name)
		default:
			return err
		}
	}

	if result.TypeWarning != "" {
		printWarning("%s", result.TypeWarning)
	}

	if err := workflow.WriteFile(w, input); err != nil {
		return fmt.Errorf("write %s: %w", input, err)
	}

	printSuccess("Connected %s → %s", source.Name, target.Name)
	printKeyValue("id", result.Connection.ID)
	printKeyValue("ports", fmt.Sprintf("%s → %s", fromPort, toPort))
	printNewline()
	printNextStep("Re-layout", "flowcanvas layout "+input)
	return nil
}

// resolveNode finds a node by exact ID, then by display name. Name matches
// must be unique.
func resolveNode(w *workflow.Workflow, ref string) (*workflow.Node, error) {
	if node, ok := w.Node(workflow.NodeID(ref)); ok {
		return node, nil
	}

	var match *workflow.Node
	for i := range w.Nodes {
		if w.Nodes[i].Name == ref {
			if match != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"node name %q is ambiguous, use the node ID", ref)
			}
			match = &w.Nodes[i]
		}
	}
	if match == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node matches %q", ref)
	}
	return match, nil
}
