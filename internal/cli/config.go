package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
)

// newConfigCommand creates the config command for showing resolved settings.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show resolved configuration",
		Long: `Display the configuration pm resolved at startup.

Storage path resolution order:
  1. PM_STORAGE_PATH environment variable
  2. storage.path in config.toml
  3. <config-home>/project-manager[-<mode>]/tickets.json

PM_MODE switches to an isolated storage namespace, e.g. PM_MODE=test.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			mode := c.Config.Mode
			if mode == "" {
				mode = "-"
			}
			_, _ = fmt.Fprintf(tw, "Mode\t%s\n", mode)
			_, _ = fmt.Fprintf(tw, "Storage\t%s\n", c.Config.StorePath)
			_, _ = fmt.Fprintf(tw, "Data dir\t%s\n", c.Config.DataDir)
			return nil
		},
	}
	return cmd
}
