// Package cli provides the command-line interface for pm.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/tui"
)

// Command group IDs.
const (
	groupTicket   = "ticket"
	groupWorkflow = "workflow"
	groupData     = "data"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it
// to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for pm.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "pm",
		Short: "Local-first ticket tracker",
		Long: `pm is a local-first ticket tracker for project work.

Tickets live in a single JSON file, so the whole collection can be
inspected, diffed, and versioned alongside the project it tracks.
Each ticket moves through a fixed lifecycle:

  pending -> in_progress -> completed
  pending | in_progress -> archived

Run 'pm' without arguments to open the interactive TUI, or use the
subcommands below for scripting. 'pm mcp' exposes the same operations
as MCP tools over stdio for AI agents.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupTicket, Title: "Ticket Commands:"},
		&cobra.Group{ID: groupWorkflow, Title: "Workflow Commands:"},
		&cobra.Group{ID: groupData, Title: "Data Commands:"},
	)

	// Ticket commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTicket

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTicket

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTicket

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTicket

	deleteCmd := newDeleteCommand(c)
	deleteCmd.GroupID = groupTicket

	searchCmd := newSearchCommand(c)
	searchCmd.GroupID = groupTicket

	// Workflow commands
	startCmd := newStartCommand(c)
	startCmd.GroupID = groupWorkflow

	completeCmd := newCompleteCommand(c)
	completeCmd.GroupID = groupWorkflow

	archiveCmd := newArchiveCommand(c)
	archiveCmd.GroupID = groupWorkflow

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupWorkflow

	// Data commands
	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupData

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupData

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupData

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupData

	mcpCmd := newMCPCommand(c, version)
	tuiCmd := newTUICommand(c)

	root.AddCommand(
		newCmd,
		listCmd,
		showCmd,
		editCmd,
		deleteCmd,
		searchCmd,
		startCmd,
		completeCmd,
		archiveCmd,
		statusCmd,
		statsCmd,
		importCmd,
		exportCmd,
		configCmd,
		mcpCmd,
		tuiCmd,
	)

	return root
}

// launchTUI starts the interactive ticket browser.
func launchTUI(c *app.Container) error {
	model := tui.NewModel(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
