package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// newCommand creates the "new" command for initializing workflow documents.
func (c *CLI) newCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new [flow.json]",
		Short: "Create an empty workflow document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := workflow.WriteFile(workflow.New(), path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess("Created empty workflow")
			printFile(path)
			printNewline()
			printNextStep("Add a node", "flowcanvas add "+path+" --type http-handler")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
