// Package view renders checklists as text: the flat checklist view and the
// kanban board in its horizontal and vertical layouts. Rendering is pure;
// nothing here touches storage.
package view

import (
	"checklistpp/internal/config"
	"checklistpp/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all rendering styles, initialized from theme configuration.
type Styles struct {
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color

	TitleStyle     lipgloss.Style
	ColumnStyle    lipgloss.Style
	TaskDoneStyle  lipgloss.Style
	TaskTodoStyle  lipgloss.Style
	MetaStyle      lipgloss.Style
	WarningStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	StatusStyle    lipgloss.Style
	PromptStyle    lipgloss.Style

	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style

	CheckboxDone    string
	CheckboxPending string
}

// NewStyles creates a Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a Styles instance from a ThemeConfig. Empty
// theme colors fall back to the defaults.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors, not configurable from theme
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.ColumnStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorAccent)

	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		Strikethrough(true)

	s.TaskTodoStyle = lipgloss.NewStyle()

	s.MetaStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.PriorityHighStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.PriorityMediumStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	s.PriorityLowStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.CheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[x]")
	s.CheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	return s
}

func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// PriorityStyle returns the badge style for a priority.
func (s *Styles) PriorityStyle(p storage.Priority) lipgloss.Style {
	switch p {
	case storage.PriorityHigh:
		return s.PriorityHighStyle
	case storage.PriorityLow:
		return s.PriorityLowStyle
	default:
		return s.PriorityMediumStyle
	}
}
