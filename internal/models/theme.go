package models

import "fmt"

// Theme names a colour scheme.
type Theme string

const (
	ThemeSamurai Theme = "samurai"
	ThemeNinja   Theme = "ninja"
	ThemeShrine  Theme = "shrine"
	ThemeDefault Theme = "default"
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
)

// DefaultTheme is used when nothing (or garbage) is stored.
const DefaultTheme = ThemeSamurai

// themeCycle is the order the theme toggle walks through.
var themeCycle = []Theme{ThemeSamurai, ThemeNinja, ThemeShrine, ThemeDark, ThemeLight, ThemeDefault}

// Themes returns every known theme in toggle order.
func Themes() []Theme {
	out := make([]Theme, len(themeCycle))
	copy(out, themeCycle)
	return out
}

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	for _, t := range themeCycle {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Next returns the theme after t in toggle order. Unknown themes restart the cycle.
func (t Theme) Next() Theme {
	for i, c := range themeCycle {
		if c == t {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return themeCycle[0]
}
