package tui

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/greeting"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/prefs"
	"github.com/julianstephens/studydojo/internal/progress"
	"github.com/julianstephens/studydojo/internal/story"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/theme"
	"github.com/julianstephens/studydojo/internal/timer"
	"github.com/julianstephens/studydojo/internal/tui/components/exams"
	"github.com/julianstephens/studydojo/internal/tui/components/papers"
	"github.com/julianstephens/studydojo/internal/utils"
)

// Options carries the services the TUI drives.
type Options struct {
	Progress *progress.Store
	Prefs    *prefs.Prefs
	Story    *story.Engine
	Plan     *studyplan.Plan
	// PlanUpdates delivers reloads of the plan file. Nil when the built-in plan is in use.
	PlanUpdates <-chan studyplan.Update
	Location    *time.Location
	Now         func() time.Time
	// Warning is shown as a banner for the whole session.
	Warning string
	// Rand drives greeting and quote picks. Nil uses the global source.
	Rand *rand.Rand
}

type Model struct {
	progress    *progress.Store
	prefs       *prefs.Prefs
	story       *story.Engine
	plan        *studyplan.Plan
	planUpdates <-chan studyplan.Update
	location    *time.Location
	now         func() time.Time
	rng         *rand.Rand

	State         constants.SessionState
	PreviousState constants.SessionState
	keys          KeyMap
	help          help.Model
	styles        theme.Styles

	timer      *timer.Timer
	timerBar   progressbar.Model
	questBar   progressbar.Model
	papers     papers.Model
	exams      exams.Model
	profiles   map[string]string
	form       *huh.Form
	paperForm  *PaperFormModel
	streamForm *StreamFormModel
	nameForm   *NameFormModel

	date     string
	viewDate string
	day      models.DailyProgress
	streak   int
	greeting string
	quote    models.Quote
	speaker  string

	companionCursor int
	streamCursor    int

	warning     string
	planWarning string
	notice      string
	formError   string
	quitting    bool
	width       int
	height      int
}

func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	styles := theme.New(opts.Prefs.Theme())

	m := Model{
		progress:    opts.Progress,
		prefs:       opts.Prefs,
		story:       opts.Story,
		plan:        opts.Plan,
		planUpdates: opts.PlanUpdates,
		location:    loc,
		now:         now,
		rng:         opts.Rand,
		State:       constants.StateTimer,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      styles,
		timer:       timer.Default(),
		papers:      papers.New(styles, 0, 0),
		exams:       exams.New(styles, 0, 0),
		profiles:    map[string]string{},
		warning:     opts.Warning,
	}
	m.setBars()
	m.checkPlan()
	m.refreshDay()
	m.refreshGreeting()

	if !m.prefs.IntroShown() {
		m.openIntro()
	}
	return m
}

func (m *Model) setBars() {
	m.timerBar = progressbar.New(
		progressbar.WithSolidFill(string(m.styles.Palette.Accent)),
		progressbar.WithWidth(40),
		progressbar.WithoutPercentage(),
	)
	m.questBar = progressbar.New(
		progressbar.WithSolidFill(string(m.styles.Palette.Success)),
		progressbar.WithWidth(24),
	)
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), waitForPlan(m.planUpdates)}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.TimerTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type planUpdateMsg studyplan.Update

func waitForPlan(updates <-chan studyplan.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return planUpdateMsg(u)
	}
}

func (m Model) today() string {
	return utils.DateIn(m.now(), m.location)
}

// refreshDay reloads the record on the tasks tab. Crossing midnight re-checks
// the streak and moves a tab that was showing today along with it.
func (m *Model) refreshDay() {
	today := m.today()
	if today != m.date {
		if m.viewDate == m.date {
			m.viewDate = today
		}
		m.date = today
		m.streak = m.progress.CheckAndResetStreak(today)
		m.exams.SetPlan(m.plan, today)
	} else {
		m.streak = m.progress.Streak()
	}
	m.day = m.progress.GetDailyProgress(m.viewDate, today)
	m.papers.SetPapers(m.day.PastPapers)
}

// shiftDay moves the tasks tab by n days.
func (m *Model) shiftDay(n int) {
	date, err := utils.AddDays(m.viewDate, n)
	if err != nil {
		return
	}
	m.viewDate = date
	m.refreshDay()
}

func (m *Model) refreshGreeting() {
	favorite, _ := m.prefs.FavoriteCompanion()
	name, _ := m.prefs.UserName()
	m.quote, m.speaker = m.story.MotivationalQuote(favorite, m.rng)
	tod := greeting.At(m.now().In(m.location))
	m.greeting = greeting.Greeting(tod, greeting.StyleFor(tod, m.speaker), name, m.rng)
}

func (m *Model) checkPlan() {
	m.planWarning = ""
	if m.plan == nil {
		return
	}
	if res := studyplan.Validate(m.plan); res.HasProblems() {
		m.planWarning = fmt.Sprintf("⚠ Study plan has %d problem(s). Run 'studydojo plan validate' for details.", len(res.Problems))
	}
}

func (m *Model) restyle() {
	m.styles = theme.New(m.prefs.Theme())
	m.papers.SetStyles(m.styles)
	m.exams.SetStyles(m.styles)
	m.setBars()
	m.profiles = map[string]string{}
}

// announce appends anything newly earned to the notice line.
func (m *Model) announce(u story.Unlocks) {
	for _, a := range u.Achievements {
		m.addNotice(fmt.Sprintf("🏆 %s %s unlocked!", a.Icon, a.Name))
	}
	for _, c := range u.Companions {
		m.addNotice("🌸 " + c.UnlockMessage)
	}
	for _, q := range u.Quests {
		m.addNotice(fmt.Sprintf("📜 Quest complete: %s", q.Name))
	}
	if len(u.Companions) > 0 {
		m.profiles = map[string]string{}
	}
}

func (m *Model) addNotice(s string) {
	if m.notice != "" {
		m.notice += "  "
	}
	m.notice += s
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	return append(keys, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	return [][]key.Binding{global, m.actionKeys()}
}

func (m Model) actionKeys() []key.Binding {
	switch m.State {
	case constants.StateTimer:
		return []key.Binding{m.keys.Toggle, m.keys.Reset, m.keys.Mode, m.keys.Longer, m.keys.Shorter}
	case constants.StateTasks:
		keys := []key.Binding{m.keys.Study, m.keys.Focus, m.keys.PrevDay, m.keys.NextDay, m.keys.ThisDay}
		return append(keys, m.papers.ShortHelp()...)
	case constants.StateCompanions:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	case constants.StateSettings:
		return []key.Binding{m.keys.Theme, m.keys.Name, m.keys.Add, m.keys.Delete}
	}
	return nil
}
