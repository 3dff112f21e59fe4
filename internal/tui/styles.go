package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/harukisoda/project-manager/internal/domain"
)

// Colors used in the ticket TUI.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
	ColorPending = lipgloss.Color("#F59E0B") // Amber
	ColorInProg  = lipgloss.Color("#3B82F6") // Blue
	ColorDone    = lipgloss.Color("#10B981") // Green
	ColorError   = lipgloss.Color("#EF4444") // Red
)

// Styles holds the styles for the ticket TUI.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Loading  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Detail   lipgloss.Style

	statusBadges map[domain.Status]lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary),
		Normal: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Loading: lipgloss.NewStyle().
			Foreground(ColorPending).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2),
		statusBadges: map[domain.Status]lipgloss.Style{
			domain.StatusPending:    lipgloss.NewStyle().Foreground(ColorPending),
			domain.StatusInProgress: lipgloss.NewStyle().Foreground(ColorInProg),
			domain.StatusCompleted:  lipgloss.NewStyle().Foreground(ColorDone),
			domain.StatusArchived:   lipgloss.NewStyle().Foreground(ColorMuted),
		},
	}
}

// StatusBadge renders a status with its lifecycle color.
func (s Styles) StatusBadge(status domain.Status) string {
	style, ok := s.statusBadges[status]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(string(status))
}
