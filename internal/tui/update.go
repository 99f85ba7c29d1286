package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/story"
	"github.com/julianstephens/studydojo/internal/timer"
	"github.com/julianstephens/studydojo/internal/tui/components/papers"
)

// adjustStep is how many minutes +/- move the timer length.
const adjustStep = 5

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tickMsg:
		m.onTick()
		return m, tick()
	case planUpdateMsg:
		m.onPlanUpdate(msg)
		return m, waitForPlan(m.planUpdates)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case papers.AddPaperMsg:
		m.openPaperForm()
		return m, m.form.Init()
	case papers.TogglePaperMsg:
		p := msg.Paper
		p.Completed = !p.Completed
		m.announce(m.story.SetPaperStatus(m.viewDate, p, m.date))
		m.refreshDay()
		return m, nil
	case papers.RemovePaperMsg:
		if m.progress.RemovePastPaper(m.viewDate, msg.Paper.ID) {
			m.notice = fmt.Sprintf("Removed %s: %s", msg.Paper.Subject, msg.Paper.Title)
		}
		m.refreshDay()
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.State = (m.State + 1) % constants.SessionState(constants.MainTabs)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.State = (m.State - 1 + constants.SessionState(constants.MainTabs)) % constants.SessionState(constants.MainTabs)
			return m, nil
		}

		switch m.State {
		case constants.StateTimer:
			return m.updateTimer(msg)
		case constants.StateTasks:
			return m.updateTasks(msg)
		case constants.StateCompanions:
			return m.updateCompanions(msg)
		case constants.StateSettings:
			return m.updateSettings(msg)
		}
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.profiles = map[string]string{}

	listWidth := width - 4
	if width >= wideLayout {
		listWidth = width/2 - 4
	}
	m.papers.SetSize(max(listWidth, 20), max(height-16, 4))
	m.exams.SetSize(max(listWidth, 20), max(height-8, 4))
}

func (m *Model) onTick() {
	if m.today() != m.date {
		m.refreshDay()
		m.refreshGreeting()
	}
	done, ok := m.timer.Tick(constants.TimerTick)
	if !ok {
		return
	}

	var u story.Unlocks
	switch done.Mode {
	case timer.Focus:
		u = m.story.RecordStudyMinutes(done.Minutes, m.date)
		m.notice = fmt.Sprintf("Focus session complete: %d minutes logged. Time for a break.", done.Minutes)
	case timer.Break:
		u = m.story.RecordBreak()
		m.notice = "Break over. Ready to focus?"
	}
	logger.Debug("Timer session completed", "mode", done.Mode, "minutes", done.Minutes)
	m.announce(u)
}

func (m *Model) onPlanUpdate(u planUpdateMsg) {
	if u.Err != nil {
		logger.Warn("Study plan reload failed", "error", u.Err)
		m.planWarning = fmt.Sprintf("⚠ Study plan not reloaded: %v", u.Err)
		return
	}
	m.plan = u.Plan
	m.checkPlan()
	m.exams.SetPlan(m.plan, m.date)
	m.notice = "Study plan reloaded."
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		if m.State == constants.StateIntro {
			m.prefs.SetIntroShown(true)
		}
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.closeForm()
	case huh.StateAborted:
		if m.State == constants.StateIntro {
			m.prefs.SetIntroShown(true)
		}
		m.closeForm()
	}
	return m, cmd
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.timer.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
	case key.Matches(msg, m.keys.Mode):
		next := timer.Break
		if m.timer.Mode() == timer.Break {
			next = timer.Focus
		}
		if err := m.timer.SetMode(next); errors.Is(err, timer.ErrRunning) {
			m.notice = "Pause the timer before switching modes."
		}
	case key.Matches(msg, m.keys.Longer):
		m.timer.Adjust(adjustStep)
	case key.Matches(msg, m.keys.Shorter):
		m.timer.Adjust(-adjustStep)
	}
	return m, nil
}

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Study):
		m.announce(m.story.SetStudyStatus(m.viewDate, !m.day.StudyCompleted, m.date))
		m.refreshDay()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.progress.UpdateFocusTaskStatus(m.viewDate, !m.day.FocusTaskCompleted, m.date)
		m.refreshDay()
		return m, nil
	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDay(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		m.shiftDay(1)
		return m, nil
	case key.Matches(msg, m.keys.ThisDay):
		m.viewDate = m.date
		m.refreshDay()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.papers, cmd = m.papers.Update(msg)
	cmds = append(cmds, cmd)
	if msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown {
		m.exams, cmd = m.exams.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateCompanions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	companions := m.story.Companions()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.companionCursor = max(m.companionCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.companionCursor = min(m.companionCursor+1, len(companions)-1)
	case key.Matches(msg, m.keys.Enter):
		if m.companionCursor >= len(companions) {
			return m, nil
		}
		c := companions[m.companionCursor]
		if !c.IsUnlocked {
			m.notice = "🔒 " + story.UnlockHint(c)
			return m, nil
		}
		m.prefs.SetFavoriteCompanion(c.ID)
		m.refreshGreeting()
		m.notice = fmt.Sprintf("⭐ %s is now your favourite companion.", c.Name)
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	streams := m.prefs.CustomStreams()
	switch {
	case key.Matches(msg, m.keys.Theme):
		t := m.prefs.NextTheme()
		m.restyle()
		m.notice = fmt.Sprintf("Theme: %s", t)
	case key.Matches(msg, m.keys.Name):
		m.openNameForm()
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Add):
		m.openStreamForm()
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Up):
		m.streamCursor = max(m.streamCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.streamCursor = max(min(m.streamCursor+1, len(streams)-1), 0)
	case key.Matches(msg, m.keys.Delete):
		if m.streamCursor < len(streams) {
			s := streams[m.streamCursor]
			if m.prefs.RemoveCustomStream(s.ID) {
				m.notice = "Removed stream " + s.Name
			}
			m.streamCursor = max(min(m.streamCursor, len(streams)-2), 0)
		}
	}
	return m, nil
}
