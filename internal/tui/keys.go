package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding

	// Timer
	Toggle  key.Binding
	Reset   key.Binding
	Mode    key.Binding
	Longer  key.Binding
	Shorter key.Binding

	// Tasks
	Study   key.Binding
	Focus   key.Binding
	Add     key.Binding
	Delete  key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	ThisDay key.Binding

	// Settings
	Theme key.Binding
	Name  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "focus/break"),
		),
		Longer: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "longer"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shorter"),
		),
		Study: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "study goal"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus task"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		ThisDay: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "today"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Name: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "edit name"),
		),
	}
}
