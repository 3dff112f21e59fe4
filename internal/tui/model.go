// Package tui provides the interactive ticket browser for pm.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/domain"
	"github.com/harukisoda/project-manager/internal/usecase"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

const detailTitleWidth = 70

// Model is the ticket TUI model. The browser is read-only; mutations go
// through the CLI or MCP surfaces.
type Model struct {
	container *app.Container

	tickets []*domain.Ticket
	err     error

	keys   KeyMap
	styles Styles

	cursor int
	width  int
	height int
	mode   Mode

	loading      bool
	showArchived bool
}

// NewModel creates a new ticket TUI model.
func NewModel(c *app.Container) *Model {
	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		mode:      ModeList,
		loading:   true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.loadTickets()
}

// loadTickets loads tickets through the list use case.
func (m *Model) loadTickets() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListTicketsUseCase().Execute(context.Background(), usecase.ListTicketsInput{
			IncludeArchived: m.showArchived,
		})
		if err != nil {
			return MsgTicketsLoaded{Err: err}
		}
		return MsgTicketsLoaded{Tickets: out.Tickets}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MsgTicketsLoaded:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.tickets = msg.Tickets
		if m.cursor >= len(m.tickets) && m.cursor > 0 {
			m.cursor = len(m.tickets) - 1
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.mode == ModeDetail {
		if key.Matches(msg, m.keys.Back, m.keys.Enter) {
			m.mode = ModeList
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tickets)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if len(m.tickets) > 0 {
			m.mode = ModeDetail
		}

	case key.Matches(msg, m.keys.Archived):
		m.showArchived = !m.showArchived
		m.loading = true
		return m, m.loadTickets()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadTickets()
	}

	return m, nil
}

// View renders the TUI.
func (m *Model) View() string {
	if m.mode == ModeDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

// viewList renders the ticket list.
func (m *Model) viewList() string {
	var b strings.Builder

	scope := "active"
	if m.showArchived {
		scope = "all"
	}
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Tickets (%d, %s)", len(m.tickets), scope)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(m.styles.Loading.Render("Loading tickets..."))
		b.WriteString("\n")
	case len(m.tickets) == 0:
		b.WriteString(m.styles.Muted.Render("No tickets. Create one with 'pm new'."))
		b.WriteString("\n")
	default:
		for i, ticket := range m.tickets {
			b.WriteString(m.renderTicketLine(ticket, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.styles.Help.Render(
		"j/k nav  enter details  a toggle archived  r refresh  q quit"))
	return b.String()
}

// renderTicketLine renders a single ticket row.
func (m *Model) renderTicketLine(ticket *domain.Ticket, selected bool) string {
	cursor := " "
	if selected {
		cursor = "▸"
	}

	title := ticket.DisplayTitle(m.titleWidth())
	if selected {
		title = m.styles.Selected.Render(title)
	} else {
		title = m.styles.Normal.Render(title)
	}

	return fmt.Sprintf("%s %s  %s  %s",
		cursor,
		m.styles.StatusBadge(ticket.Status),
		title,
		m.styles.Muted.Render(string(ticket.Priority)),
	)
}

// titleWidth returns the width available for titles in the list.
func (m *Model) titleWidth() int {
	// Status badge plus decoration take roughly 20 columns.
	w := m.width - 20
	if w <= 0 || w > detailTitleWidth {
		w = detailTitleWidth
	}
	return w
}

// viewDetail renders the detail view for the selected ticket.
func (m *Model) viewDetail() string {
	if m.cursor >= len(m.tickets) {
		return ""
	}
	ticket := m.tickets[m.cursor]

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(ticket.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("ID:       %s\n", ticket.ID))
	b.WriteString(fmt.Sprintf("Status:   %s\n", m.styles.StatusBadge(ticket.Status)))
	b.WriteString(fmt.Sprintf("Priority: %s\n", ticket.Priority))
	b.WriteString(fmt.Sprintf("Type:     %s\n", ticket.Type))
	b.WriteString(fmt.Sprintf("Privacy:  %s\n", ticket.Privacy))
	b.WriteString(fmt.Sprintf("Created:  %s\n", ticket.CreatedAt.Local().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Updated:  %s\n", ticket.UpdatedAt.Local().Format(time.RFC3339)))
	b.WriteString("\n")
	b.WriteString(ticket.Description)

	detail := m.styles.Detail.Render(b.String())
	help := m.styles.Help.Render("esc back  q quit")
	return detail + "\n" + help
}
