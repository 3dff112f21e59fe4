package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/usecase"
)

// newStartCommand creates the start command for beginning work on a ticket.
func newStartCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Start work on a ticket",
		Long: `Move a pending ticket to 'in_progress'.

Only pending tickets can be started.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ChangeStatusUseCase()
			out, err := uc.Start(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started ticket %s\n", out.Ticket.ID)
			return nil
		},
	}
	return cmd
}

// newCompleteCommand creates the complete command for finishing a ticket.
func newCompleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a ticket",
		Long: `Move an in-progress ticket to 'completed'.

Only in-progress tickets can be completed. A pending ticket must be
started first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ChangeStatusUseCase()
			out, err := uc.Complete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed ticket %s\n", out.Ticket.ID)
			return nil
		},
	}
	return cmd
}

// newArchiveCommand creates the archive command for retiring a ticket.
func newArchiveCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a ticket",
		Long: `Move a ticket to 'archived', taking it out of circulation.

Pending and in-progress tickets can be archived. Archived is terminal;
the ticket keeps its record but no further transitions are allowed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ChangeStatusUseCase()
			out, err := uc.Archive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived ticket %s\n", out.Ticket.ID)
			return nil
		},
	}
	return cmd
}

// newStatusCommand creates the status command for explicit transitions.
func newStatusCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change ticket status",
		Long: `Move a ticket to an explicit target status.

Valid statuses: pending, in_progress, completed, archived.
The transition must be allowed by the lifecycle:

  pending -> in_progress | archived
  in_progress -> completed | archived

'pm start', 'pm complete', and 'pm archive' are shorthands for the
common transitions.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ChangeStatusUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ChangeStatusInput{
				ID:     args[0],
				Status: args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ticket %s is now %s\n", out.Ticket.ID, out.Ticket.Status)
			return nil
		},
	}
	return cmd
}
