package exams

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/theme"
)

// Model shows the exam countdown for the active plan.
type Model struct {
	viewport viewport.Model
	bar      progress.Model
	plan     *studyplan.Plan
	today    string
	styles   theme.Styles
}

func New(styles theme.Styles, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		bar:      newBar(styles),
		styles:   styles,
	}
}

func newBar(s theme.Styles) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(s.Palette.Accent)),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
	m.bar = newBar(s)
	m.Render()
}

func (m *Model) SetPlan(plan *studyplan.Plan, today string) {
	m.plan = plan
	m.today = today
	m.Render()
}

func (m *Model) Render() {
	if m.plan == nil {
		m.viewport.SetContent(m.styles.Muted.Render("No study plan loaded."))
		return
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Exams") + "\n")

	upcoming := m.plan.UpcomingExams(m.today, "")
	if len(upcoming) == 0 {
		b.WriteString("No upcoming exams. 🎉\n")
	}
	for _, e := range upcoming {
		fmt.Fprintf(&b, "%s %s  %s\n", e.Date, e.Time, cli.ExamLine(m.styles, e))
	}

	if total, passed, ok := m.plan.ExamPeriod(m.today); ok {
		fmt.Fprintf(&b, "\n%s %s\n", m.bar.ViewAs(m.plan.Fraction(m.today)),
			m.styles.Muted.Render(fmt.Sprintf("%d/%d days", min(passed, total), total)))
	}
	m.viewport.SetContent(b.String())
}
