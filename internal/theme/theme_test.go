package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studydojo/internal/models"
)

func TestEveryThemeHasPalette(t *testing.T) {
	for _, th := range models.Themes() {
		if _, ok := palettes[th]; !ok {
			t.Errorf("theme %q has no palette", th)
		}
	}
}

func TestPaletteForUnknownTheme(t *testing.T) {
	if got, want := PaletteFor("neon"), palettes[models.DefaultTheme]; got != want {
		t.Errorf("PaletteFor(neon) = %+v, want default palette", got)
	}
}

func TestUrgencyStyle(t *testing.T) {
	s := New(models.ThemeNinja)
	tests := []struct {
		u    models.Urgency
		want lipgloss.Color
	}{
		{models.UrgencyUrgent, s.Palette.Danger},
		{models.UrgencyApproaching, s.Palette.Warning},
		{models.UrgencyRelaxed, s.Palette.Success},
	}
	for _, tt := range tests {
		if got := s.UrgencyStyle(tt.u).GetForeground(); got != tt.want {
			t.Errorf("UrgencyStyle(%d) foreground = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Sakura\n\nA brilliant mathematician.", models.ThemeSamurai, 40)
	if !strings.Contains(out, "Sakura") || !strings.Contains(out, "mathematician") {
		t.Errorf("rendered output lost content:\n%s", out)
	}
	if strings.Contains(out, "# Sakura") {
		t.Errorf("heading was not rendered:\n%s", out)
	}
}
