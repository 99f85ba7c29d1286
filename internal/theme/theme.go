// Package theme maps a models.Theme to terminal colours and lipgloss styles
// shared by the CLI and the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studydojo/internal/models"
)

// Palette is the handful of colours a theme defines.
type Palette struct {
	Accent  lipgloss.Color
	Heading lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Border  lipgloss.Color
	TabBg   lipgloss.Color
}

var palettes = map[models.Theme]Palette{
	models.ThemeSamurai: {
		Accent: "#db2777", Heading: "#be185d", Text: "#1f2937", Muted: "#6b7280",
		Warning: "#92400e", Danger: "#dc2626", Success: "#16a34a", Border: "#f9a8d4", TabBg: "#fce7f3",
	},
	models.ThemeNinja: {
		Accent: "#a855f7", Heading: "#c084fc", Text: "#f3f4f6", Muted: "#9ca3af",
		Warning: "#facc15", Danger: "#f87171", Success: "#4ade80", Border: "#7e22ce", TabBg: "#3b0764",
	},
	models.ThemeShrine: {
		Accent: "#ea580c", Heading: "#c2410c", Text: "#451a03", Muted: "#b45309",
		Warning: "#991b1b", Danger: "#b91c1c", Success: "#15803d", Border: "#fcd34d", TabBg: "#fef3c7",
	},
	models.ThemeDefault: {
		Accent: "#2563eb", Heading: "#2563eb", Text: "#111827", Muted: "#6b7280",
		Warning: "#92400e", Danger: "#dc2626", Success: "#16a34a", Border: "#93c5fd", TabBg: "#dbeafe",
	},
	models.ThemeLight: {
		Accent: "#2563eb", Heading: "#2563eb", Text: "#111827", Muted: "#6b7280",
		Warning: "#92400e", Danger: "#dc2626", Success: "#16a34a", Border: "#d1d5db", TabBg: "#f3f4f6",
	},
	models.ThemeDark: {
		Accent: "#6b7280", Heading: "#6b7280", Text: "#e5e7eb", Muted: "#9ca3af",
		Warning: "#facc15", Danger: "#f87171", Success: "#4ade80", Border: "#4b5563", TabBg: "#1f2937",
	},
}

// PaletteFor returns t's palette, or the default theme's for unknown names.
func PaletteFor(t models.Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[models.DefaultTheme]
}

// Styles are the lipgloss styles derived from a Palette.
type Styles struct {
	Palette Palette

	Title       lipgloss.Style
	Accent      lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Checked     lipgloss.Style
	Warning     lipgloss.Style
	Danger      lipgloss.Style
	Success     lipgloss.Style
	Card        lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Doc         lipgloss.Style
}

func New(t models.Theme) Styles {
	p := PaletteFor(t)
	return Styles{
		Palette: p,
		Title:   lipgloss.NewStyle().Foreground(p.Heading).Bold(true),
		Accent:  lipgloss.NewStyle().Foreground(p.Accent),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Checked: lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Warning: lipgloss.NewStyle().Foreground(p.Warning).Italic(true),
		Danger:  lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(p.TabBg).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}

// UrgencyStyle colours an exam countdown.
func (s Styles) UrgencyStyle(u models.Urgency) lipgloss.Style {
	switch u {
	case models.UrgencyUrgent:
		return s.Danger
	case models.UrgencyApproaching:
		return s.Warning
	default:
		return s.Success
	}
}
