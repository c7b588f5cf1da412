package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackarck/werename/pkg/rename"
)

// ConfirmationConfig holds the content of a confirmation prompt
type ConfirmationConfig struct {
	Title   string   // Title line
	Message string   // Main confirmation message
	Warning string   // Optional warning text (shown in orange)
	Details []string // Optional detail lines
	Width   int      // Dialog width
}

// ConfirmationModel handles the Yes/No/Cancel prompt shown on close
type ConfirmationModel struct {
	active bool
	config ConfirmationConfig
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig) {
	m.active = true
	m.config = config
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update maps a key to a decision. ok is false for keys that do not
// answer the prompt.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) (d rename.Decision, ok bool) {
	if !m.active {
		return rename.Cancel, false
	}

	switch msg.String() {
	case "y", "Y":
		d, ok = rename.Yes, true
	case "n", "N":
		d, ok = rename.No, true
	case "c", "C", "esc":
		d, ok = rename.Cancel, true
	default:
		return rename.Cancel, false
	}
	m.active = false
	return d, ok
}

// View renders the dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))
	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(headerStyle.Render(m.config.Title))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(m.config.Message)
		b.WriteString("\n")
	}
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(m.config.Warning))
		b.WriteString("\n")
	}
	for _, detail := range m.config.Details {
		b.WriteString(detailStyle.Render("  • " + detail))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(formatConfirmOptions())

	style := dialogStyle
	if m.config.Width > 0 {
		style = style.Width(m.config.Width)
	}
	return style.Render(b.String())
}

func formatConfirmOptions() string {
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("[y]es")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("[n]o")
	cancel := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("[c]ancel")
	return yes + "  " + no + "  " + cancel
}
