package papers

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/theme"
)

type AddPaperMsg struct{}

type TogglePaperMsg struct {
	Paper models.PastPaper
}

type RemovePaperMsg struct {
	Paper models.PastPaper
}

type Item struct {
	Paper models.PastPaper
}

func (i Item) Title() string {
	mark := "○ "
	if i.Paper.Completed {
		mark = "✓ "
	}
	return mark + i.Paper.Subject + ": " + i.Paper.Title
}

func (i Item) Description() string {
	switch {
	case i.Paper.CarriedOver:
		return "carried over from yesterday"
	case i.Paper.Completed:
		return "completed"
	default:
		return "to do"
	}
}

func (i Item) FilterValue() string { return i.Paper.Subject + " " + i.Paper.Title }

type KeyMap struct {
	Toggle key.Binding
	Add    key.Binding
	Remove key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle paper"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add paper"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove paper"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(styles theme.Styles, width, height int) Model {
	l := list.New(nil, delegate(styles), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Remove}
	}
	return Model{list: l, keys: keys}
}

func delegate(s theme.Styles) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(s.Palette.Accent).
		BorderLeftForeground(s.Palette.Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(s.Palette.Muted).
		BorderLeftForeground(s.Palette.Accent)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(s.Palette.Text)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(s.Palette.Muted)
	return d
}

// SetStyles re-colours the list after a theme change.
func (m *Model) SetStyles(s theme.Styles) {
	m.list.SetDelegate(delegate(s))
}

// SetPapers replaces the items, keeping the cursor in range.
func (m *Model) SetPapers(papers []models.PastPaper) {
	items := make([]list.Item, len(papers))
	for i, p := range papers {
		items[i] = Item{Paper: p}
	}
	m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

func (m Model) Len() int { return len(m.list.Items()) }

func (m Model) Selected() (models.PastPaper, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Paper, true
	}
	return models.PastPaper{}, false
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Remove}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddPaperMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return TogglePaperMsg{Paper: p} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Remove):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return RemovePaperMsg{Paper: p} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No past papers logged today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
