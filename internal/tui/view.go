package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/media"
	"github.com/julianstephens/studydojo/internal/story"
	"github.com/julianstephens/studydojo/internal/theme"
	"github.com/julianstephens/studydojo/internal/timer"
)

// wideLayout is the terminal width from which panels sit side by side.
const wideLayout = 90

var tabTitles = []string{"⏱ Timer", "📚 Tasks", "🌸 Companions", "🏆 Achievements", "⚙ Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	if m.form != nil {
		content = m.viewForm()
	} else {
		switch m.State {
		case constants.StateTimer:
			content = m.viewTimer()
		case constants.StateTasks:
			content = m.viewTasks()
		case constants.StateCompanions:
			content = m.viewCompanions()
		case constants.StateAchievements:
			content = m.viewAchievements()
		case constants.StateSettings:
			content = m.viewSettings()
		}
	}

	sections := []string{m.viewTabs()}
	if m.warning != "" {
		sections = append(sections, m.styles.Warning.Render("⚠ "+m.warning))
	}
	if m.planWarning != "" {
		sections = append(sections, m.styles.Warning.Render(m.planWarning))
	}
	sections = append(sections, m.styles.Doc.Render(content))
	if m.notice != "" {
		sections = append(sections, m.styles.Accent.Render(m.notice))
	}
	if m.form == nil {
		sections = append(sections, m.help.View(m))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if m.State == constants.SessionState(i) || (m.form != nil && m.PreviousState == constants.SessionState(i)) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	var title string
	switch m.State {
	case constants.StateIntro:
		title = "🏯 studydojo"
	case constants.StateAddPaper:
		title = "Log a past paper"
	case constants.StateAddStream:
		title = "Save a music stream"
	case constants.StateEditName:
		title = "Edit name"
	}
	parts := []string{m.styles.Title.Render(title), m.form.View()}
	if m.formError != "" {
		parts = append(parts, m.styles.Danger.Render(m.formError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTimer() string {
	mode := "Focus"
	if m.timer.Mode() == timer.Break {
		mode = "Break"
	}
	state := "paused"
	if m.timer.Running() {
		state = "running"
	}

	clock := m.styles.Card.
		Padding(1, 4).
		BorderForeground(m.styles.Palette.Accent).
		Render(m.styles.Title.Render(m.timer.Format()))

	lines := []string{
		m.styles.Title.Render(m.greeting),
		"",
		m.styles.Accent.Render(fmt.Sprintf("%s session · %d min", mode, m.timer.Minutes(m.timer.Mode()))) +
			" " + m.styles.Muted.Render("("+state+")"),
		clock,
		m.timerBar.ViewAs(m.timer.Fraction()),
		"",
		m.styles.Text.Render("🎯 " + m.focusTask(m.date)),
	}
	if m.plan != nil {
		if exam, ok := m.plan.NextExam(m.date); ok {
			lines = append(lines, "📝 Next exam: "+cli.ExamLine(m.styles, exam))
		}
	}
	lines = append(lines,
		"",
		m.styles.Muted.Render(fmt.Sprintf("Total study time: %s · Breaks taken: %d · Streak: %d 🔥",
			studyTime(m.story.TotalStudyMinutes()), m.story.BreaksTaken(), m.streak)),
		"",
		m.styles.Text.Render("“" + m.quote.Quote + "”"),
		m.styles.Muted.Render("  - "+m.quote.Source),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func studyTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func (m Model) checkLine(done bool, label string) string {
	if done {
		return m.styles.Success.Render("✓ ") + m.styles.Checked.Render(label)
	}
	return m.styles.Muted.Render("○ ") + m.styles.Text.Render(label)
}

func (m Model) focusTask(date string) string {
	if m.plan != nil {
		if task, ok := m.plan.FocusTask(date); ok {
			return task
		}
	}
	return "Free day: rest or review"
}

func (m Model) viewTasks() string {
	target := constants.DefaultPapersTarget
	if m.plan != nil {
		target = m.plan.PapersTarget()
	}
	heading := m.viewDate
	if m.viewDate == m.date {
		heading = "Today · " + heading
	}

	checklist := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(heading),
		m.checkLine(m.day.FocusTaskCompleted, "Focus: "+m.focusTask(m.viewDate)),
		m.checkLine(m.day.StudyCompleted, "Study goal for today"),
		m.styles.Muted.Render(fmt.Sprintf("Past papers %d/%d · Streak %d 🔥", m.day.CompletedPapers(), target, m.streak)),
	)
	left := lipgloss.JoinVertical(lipgloss.Left, m.styles.Card.Render(checklist), m.papers.View())

	if m.width >= wideLayout {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.exams.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, "", m.exams.View())
}

func (m Model) viewCompanions() string {
	companions := m.story.Companions()
	favorite, _ := m.prefs.FavoriteCompanion()

	var b strings.Builder
	for i, c := range companions {
		cursor := "  "
		if i == m.companionCursor {
			cursor = m.styles.Accent.Render("› ")
		}
		switch {
		case !c.IsUnlocked:
			b.WriteString(cursor + m.styles.Muted.Render("🔒 "+c.Name) + "\n")
		case c.ID == favorite:
			b.WriteString(cursor + m.styles.Text.Render("⭐ "+c.Name) + "\n")
		default:
			b.WriteString(cursor + m.styles.Text.Render("🌸 "+c.Name) + "\n")
		}
	}
	roster := m.styles.Card.Render(strings.TrimRight(b.String(), "\n"))

	if m.companionCursor >= len(companions) {
		return roster
	}
	profile := m.profile(companions[m.companionCursor].ID)
	if m.width >= wideLayout {
		return lipgloss.JoinHorizontal(lipgloss.Top, roster, "  ", profile)
	}
	return lipgloss.JoinVertical(lipgloss.Left, roster, profile)
}

// profile renders a companion's markdown profile, caching per id until the
// theme, size or unlock state changes.
func (m Model) profile(id string) string {
	if out, ok := m.profiles[id]; ok {
		return out
	}
	c, err := m.story.Companion(id)
	if err != nil {
		return m.styles.Danger.Render(err.Error())
	}
	width := m.width - 30
	if m.width < wideLayout {
		width = m.width - 4
	}
	out := theme.RenderMarkdown(story.Profile(c), m.prefs.Theme(), max(width, 40))
	m.profiles[id] = out
	return out
}

func (m Model) viewAchievements() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Achievements") + "\n")
	for _, a := range m.story.Achievements() {
		if a.IsUnlocked {
			fmt.Fprintf(&b, "%s %s  %s\n", a.Icon, m.styles.Text.Render(a.Name), m.styles.Success.Render(a.Reward))
		} else {
			fmt.Fprintf(&b, "🔒 %s  %s\n", m.styles.Muted.Render(a.Name), m.styles.Muted.Render(a.Description))
		}
	}

	b.WriteString("\n" + m.styles.Title.Render("Quests") + "\n")
	for _, q := range m.story.Quests(m.date) {
		mark := "○"
		if q.IsCompleted {
			mark = m.styles.Success.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s  %s %s\n", mark, m.styles.Text.Render(q.Name),
			m.questBar.ViewAs(q.Fraction()),
			m.styles.Muted.Render(fmt.Sprintf("%d/%d", q.CurrentProgress, q.TotalRequired)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewSettings() string {
	var b strings.Builder
	name, ok := m.prefs.UserName()
	if !ok {
		name = m.styles.Muted.Render(constants.DefaultUserNameLabel + " (default)")
	}
	fmt.Fprintf(&b, "%s %s\n", m.styles.Title.Render("Theme:"), m.prefs.Theme())
	fmt.Fprintf(&b, "%s %s\n\n", m.styles.Title.Render("Name: "), name)

	b.WriteString(m.styles.Title.Render("Music streams") + "\n")
	for _, s := range media.DefaultTracks() {
		fmt.Fprintf(&b, "  %s %s\n", s.Name, m.styles.Muted.Render(s.URL))
	}
	custom := m.prefs.CustomStreams()
	if len(custom) == 0 {
		b.WriteString(m.styles.Muted.Render("  No saved streams. Press 'a' to add one.") + "\n")
	}
	for i, s := range custom {
		cursor := "  "
		if i == m.streamCursor {
			cursor = m.styles.Accent.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, m.styles.Text.Render(s.Name), m.styles.Muted.Render(s.URL))
	}

	b.WriteString("\n" + m.styles.Title.Render("Ambient sounds") + "\n")
	byCategory := media.AmbientByCategory()
	for _, cat := range media.Categories() {
		names := make([]string, 0, len(byCategory[cat]))
		for _, s := range byCategory[cat] {
			names = append(names, s.Name)
		}
		fmt.Fprintf(&b, "  %s %s\n", m.styles.Accent.Render(cat+":"), strings.Join(names, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
