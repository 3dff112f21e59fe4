package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/usecase"
)

// newImportCommand creates the import command for batch ticket creation.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tickets from a file",
		Long: `Create tickets in bulk from a Markdown file.

Each ticket is a YAML frontmatter block followed by its description.
All blocks are validated before any ticket is created; one bad block
fails the whole import.

Examples:
  # Import tickets
  pm import tickets.md

  # Preview without creating
  pm import tickets.md --dry-run

File format:
  ---
  title: Fix login bug
  priority: high
  type: bug
  ---
  Users cannot login with email addresses containing a plus sign.

  ---
  title: Add search
  ---
  Full-text search across titles and descriptions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			uc := c.ImportTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportTicketsInput{
				Content: string(content),
				DryRun:  opts.DryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.DryRun {
				_, _ = fmt.Fprintln(w, "Dry run - tickets that would be created:")
				_, _ = fmt.Fprintln(w, "")
			}

			for i, ticket := range out.Tickets {
				if opts.DryRun {
					_, _ = fmt.Fprintf(w, "Ticket %d:\n", i+1)
				} else {
					_, _ = fmt.Fprintf(w, "Created ticket %s:\n", ticket.ID)
				}
				_, _ = fmt.Fprintf(w, "  Title:    %s\n", ticket.Title)
				_, _ = fmt.Fprintf(w, "  Priority: %s\n", ticket.Priority)
				_, _ = fmt.Fprintf(w, "  Type:     %s\n", ticket.Type)
				if i < len(out.Tickets)-1 {
					_, _ = fmt.Fprintln(w, "")
				}
			}

			if !opts.DryRun {
				_, _ = fmt.Fprintf(w, "\nImported %d ticket(s)\n", len(out.Tickets))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate and preview without creating tickets")

	return cmd
}

// newExportCommand creates the export command for dumping the collection.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tickets",
		Long: `Serialize the full ticket collection to JSON or YAML.

Output goes to stdout unless --output is given.

Examples:
  # Export as JSON to stdout
  pm export

  # Export as YAML to a file
  pm export --format yaml --output tickets.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ExportTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTicketsInput{
				Format: opts.Format,
			})
			if err != nil {
				return err
			}

			if opts.Output != "" {
				if err := os.WriteFile(opts.Output, out.Content, 0o600); err != nil {
					return fmt.Errorf("write file: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d ticket(s) to %s\n", out.Count, opts.Output)
				return nil
			}

			_, _ = cmd.OutOrStdout().Write(out.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: json (default) or yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
