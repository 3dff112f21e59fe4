package cli

import (
	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// Same as running `pm` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for browsing tickets.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
	return cmd
}
