package theme

import (
	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/studydojo/internal/models"
)

// IsDark reports whether t is meant for a dark terminal background.
func IsDark(t models.Theme) bool {
	return t == models.ThemeNinja || t == models.ThemeDark
}

// RenderMarkdown renders md for the terminal, falling back to the raw
// markdown if glamour cannot.
func RenderMarkdown(md string, t models.Theme, width int) string {
	style := "light"
	if IsDark(t) {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
