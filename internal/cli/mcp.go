package cli

import (
	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/mcp"
)

// newMCPCommand creates the mcp command for serving tickets over MCP.
func newMCPCommand(c *app.Container, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Serve ticket operations as MCP tools over stdin/stdout.

The server speaks line-delimited JSON-RPC 2.0 and is meant to be
spawned by an MCP client, not run interactively. It exits when stdin
is closed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcp.NewServer(c, version)
			return server.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	return cmd
}
