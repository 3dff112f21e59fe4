package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/domain"
	"github.com/harukisoda/project-manager/internal/usecase"
)

const listTitleWidth = 60

// newNewCommand creates the new command for creating tickets.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Priority    string
		Type        string
		Privacy     string
		JSON        bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new ticket",
		Long: `Create a new ticket with status 'pending'.

Title and description are required. Priority, type, and privacy are
optional and default to medium / task / local-only.

Examples:
  # Create a ticket with defaults
  pm new --title "Fix login bug" --description "Users cannot login with email"

  # Create a high-priority bug
  pm new --title "Fix login bug" --description "..." --priority high --type bug

  # Create a shareable feature ticket
  pm new --title "Add search" --description "..." --type feature --privacy shareable`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.CreateTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateTicketInput{
				Title:       opts.Title,
				Description: opts.Description,
				Priority:    opts.Priority,
				Type:        opts.Type,
				Privacy:     opts.Privacy,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTicketJSON(cmd.OutOrStdout(), out.Ticket)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created ticket %s\n", out.Ticket.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Ticket title (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Ticket description (required)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority: high, medium, low (default: medium)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Type: feature, bug, task (default: task)")
	cmd.Flags().StringVar(&opts.Privacy, "privacy", "", "Privacy: local-only, shareable, public (default: local-only)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the created ticket as JSON")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// newListCommand creates the list command for listing tickets.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		All  bool
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Long: `Display tickets in stored order.

By default archived tickets are hidden. Use --all to include them.

Output format is tab-separated with columns:
  ID, STATUS, PRI, TYPE, UPDATED, TITLE

Examples:
  # List active tickets
  pm list

  # List all tickets including archived
  pm list --all

  # Machine-readable output
  pm list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTicketsInput{
				IncludeArchived: opts.All,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTicketsJSON(cmd.OutOrStdout(), out.Tickets)
			}
			printTicketList(cmd.OutOrStdout(), out.Tickets)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Show all tickets including archived")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output tickets as JSON")

	return cmd
}

// newShowCommand creates the show command for displaying ticket details.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display ticket details",
		Long: `Display detailed information about a ticket.

Examples:
  # Show a ticket
  pm show k3f9m2xq01ab

  # Output in JSON format
  pm show k3f9m2xq01ab --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.GetTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.GetTicketInput{ID: args[0]})
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTicketJSON(cmd.OutOrStdout(), out.Ticket)
			}
			printTicketDetails(cmd.OutOrStdout(), out.Ticket)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// newEditCommand creates the edit command for updating ticket fields.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Priority    string
		JSON        bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit ticket fields",
		Long: `Edit an existing ticket's title, description, or priority.

At least one of --title, --description, or --priority is required.
Fields not specified are left unchanged. Status is not editable here;
use 'pm start', 'pm complete', 'pm archive', or 'pm status'.

Examples:
  # Change the title
  pm edit k3f9m2xq01ab --title "New title"

  # Update description and priority together
  pm edit k3f9m2xq01ab --description "Updated text" --priority high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.UpdateTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateTicketInput{
				ID:          args[0],
				Title:       opts.Title,
				Description: opts.Description,
				Priority:    opts.Priority,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTicketJSON(cmd.OutOrStdout(), out.Ticket)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated ticket %s\n", out.Ticket.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "New description")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority: high, medium, low")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the updated ticket as JSON")

	return cmd
}

// newDeleteCommand creates the delete command for removing tickets.
func newDeleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Long: `Permanently remove a ticket from the store.

Deletion is irreversible. To take a ticket out of circulation while
keeping its record, archive it instead with 'pm archive'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DeleteTicketUseCase()
			if err := uc.Execute(cmd.Context(), usecase.DeleteTicketInput{ID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted ticket %s\n", args[0])
			return nil
		},
	}
	return cmd
}

// newSearchCommand creates the search command for filtered queries.
func newSearchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title    string
		Status   string
		Priority string
		Type     string
		Privacy  string
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search tickets",
		Long: `Search tickets by free text and attribute filters.

The positional argument matches case-insensitively against title and
description. Attribute filters are combined with AND.

Examples:
  # Free-text search
  pm search login

  # All pending high-priority tickets
  pm search --status pending --priority high

  # Combine text and filters
  pm search login --type bug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.SearchTicketsInput{
				Title:    opts.Title,
				Status:   opts.Status,
				Priority: opts.Priority,
				Type:     opts.Type,
				Privacy:  opts.Privacy,
			}
			if len(args) > 0 {
				input.Search = args[0]
			}

			uc := c.SearchTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTicketsJSON(cmd.OutOrStdout(), out.Tickets)
			}
			printTicketList(cmd.OutOrStdout(), out.Tickets)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Filter by title substring")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Filter by priority")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type")
	cmd.Flags().StringVar(&opts.Privacy, "privacy", "", "Filter by privacy")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output tickets as JSON")

	return cmd
}

// newStatsCommand creates the stats command for collection statistics.
func newStatsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show ticket statistics",
		Long:  `Display ticket counts grouped by status, priority, and type.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.TicketStatsUseCase()
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), statsJSON(out.Stats))
			}
			printStats(cmd.OutOrStdout(), out.Stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output statistics as JSON")

	return cmd
}

// printTicketList prints tickets in TSV format.
func printTicketList(w io.Writer, tickets []*domain.Ticket) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRI\tTYPE\tUPDATED\tTITLE")

	for _, ticket := range tickets {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ticket.ID,
			ticket.Status,
			ticket.Priority,
			ticket.Type,
			ticket.UpdatedAt.Local().Format("2006-01-02 15:04"),
			ticket.DisplayTitle(listTitleWidth),
		)
	}
}

// printTicketDetails prints a single ticket in long form.
func printTicketDetails(w io.Writer, ticket *domain.Ticket) {
	_, _ = fmt.Fprintf(w, "Ticket %s: %s\n", ticket.ID, ticket.Title)
	_, _ = fmt.Fprintf(w, "  Status:   %s\n", ticket.Status.Display())
	_, _ = fmt.Fprintf(w, "  Priority: %s\n", ticket.Priority.Display())
	_, _ = fmt.Fprintf(w, "  Type:     %s\n", ticket.Type)
	_, _ = fmt.Fprintf(w, "  Privacy:  %s\n", ticket.Privacy)
	_, _ = fmt.Fprintf(w, "  Created:  %s\n", ticket.CreatedAt.Local().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "  Updated:  %s\n", ticket.UpdatedAt.Local().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "\n%s\n", ticket.Description)
}

// printStats prints statistics grouped by dimension.
func printStats(w io.Writer, stats *domain.Statistics) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintf(tw, "Total\t%d\n", stats.Total)
	_, _ = fmt.Fprintln(tw, "")
	for _, status := range domain.AllStatuses() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", status, stats.ByStatus[status])
	}
	_, _ = fmt.Fprintln(tw, "")
	for _, priority := range domain.AllPriorities() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", priority, stats.ByPriority[priority])
	}
	_, _ = fmt.Fprintln(tw, "")
	for _, typ := range domain.AllTypes() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", typ, stats.ByType[typ])
	}
}

// statsJSON converts statistics to a JSON-friendly shape with string keys.
func statsJSON(stats *domain.Statistics) map[string]any {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[string(status)] = n
	}
	byPriority := make(map[string]int, len(stats.ByPriority))
	for priority, n := range stats.ByPriority {
		byPriority[string(priority)] = n
	}
	byType := make(map[string]int, len(stats.ByType))
	for typ, n := range stats.ByType {
		byType[string(typ)] = n
	}
	return map[string]any{
		"total":       stats.Total,
		"by_status":   byStatus,
		"by_priority": byPriority,
		"by_type":     byType,
	}
}

func printTicketJSON(w io.Writer, ticket *domain.Ticket) error {
	return printJSON(w, ticket.ToRecord())
}

func printTicketsJSON(w io.Writer, tickets []*domain.Ticket) error {
	records := make([]domain.Record, 0, len(tickets))
	for _, ticket := range tickets {
		records = append(records, ticket.ToRecord())
	}
	return printJSON(w, records)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
