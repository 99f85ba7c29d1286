package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/media"
	"github.com/julianstephens/studydojo/internal/models"
)

type PaperFormModel struct {
	Subject string
	Title   string
	Done    bool
}

type StreamFormModel struct {
	URL  string
	Name string
}

type NameFormModel struct {
	Name string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func formTheme(t models.Theme) *huh.Theme {
	switch t {
	case models.ThemeDark, models.ThemeNinja:
		return huh.ThemeDracula()
	case models.ThemeLight:
		return huh.ThemeBase()
	default:
		return huh.ThemeCharm()
	}
}

func (m *Model) openForm(state constants.SessionState, form *huh.Form) {
	if m.State < constants.SessionState(constants.MainTabs) {
		m.PreviousState = m.State
	}
	m.State = state
	m.formError = ""
	m.form = form.WithTheme(formTheme(m.prefs.Theme())).WithShowHelp(true)
}

func (m *Model) closeForm() {
	m.form = nil
	m.formError = ""
	m.State = m.PreviousState
}

func (m *Model) openIntro() {
	m.nameForm = &NameFormModel{}
	m.openForm(constants.StateIntro, huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to the dojo").
				Description("Run focus sessions, log past papers and keep your streak alive.\n"+
					"Finish papers to unlock companions who cheer you on."),
			huh.NewInput().
				Title("What should your companions call you?").
				Placeholder(constants.DefaultUserNameLabel).
				Value(&m.nameForm.Name),
		),
	))
}

func (m *Model) openNameForm() {
	current, _ := m.prefs.UserName()
	m.nameForm = &NameFormModel{Name: current}
	m.openForm(constants.StateEditName, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Description("Leave empty to be greeted as " + constants.DefaultUserNameLabel + ".").
				Value(&m.nameForm.Name),
		),
	))
}

func (m *Model) openPaperForm() {
	m.paperForm = &PaperFormModel{}
	var subjects []string
	if m.plan != nil {
		subjects = m.plan.Subjects()
	}
	m.openForm(constants.StateAddPaper, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Suggestions(subjects).
				Value(&m.paperForm.Subject).
				Validate(required("subject")),
			huh.NewInput().
				Title("Paper").
				Placeholder("June 2023 Paper 1").
				Value(&m.paperForm.Title).
				Validate(required("paper title")),
			huh.NewConfirm().
				Title("Already completed?").
				Value(&m.paperForm.Done),
		),
	))
}

func (m *Model) openStreamForm() {
	m.streamForm = &StreamFormModel{}
	m.openForm(constants.StateAddStream, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("YouTube URL").
				Value(&m.streamForm.URL).
				Validate(media.ValidateStreamURL),
			huh.NewInput().
				Title("Name").
				Placeholder("Lofi beats").
				Value(&m.streamForm.Name),
		),
	))
}

// submitForm applies a completed form. A non-nil error keeps the form open.
func (m *Model) submitForm() error {
	switch m.State {
	case constants.StateIntro:
		if name := strings.TrimSpace(m.nameForm.Name); name != "" {
			m.prefs.SetUserName(name)
		}
		m.prefs.SetIntroShown(true)
		m.refreshGreeting()

	case constants.StateEditName:
		if name := strings.TrimSpace(m.nameForm.Name); name != "" {
			m.prefs.SetUserName(name)
		} else {
			m.prefs.RemoveUserName()
		}
		m.refreshGreeting()
		m.notice = "Name saved."

	case constants.StateAddPaper:
		paper := models.PastPaper{
			ID:        uuid.New().String(),
			Subject:   strings.TrimSpace(m.paperForm.Subject),
			Title:     strings.TrimSpace(m.paperForm.Title),
			Completed: m.paperForm.Done,
		}
		m.notice = ""
		m.announce(m.story.SetPaperStatus(m.viewDate, paper, m.date))
		m.refreshDay()

	case constants.StateAddStream:
		name := strings.TrimSpace(m.streamForm.Name)
		if name == "" {
			id, _ := media.ExtractYouTubeVideoID(m.streamForm.URL)
			name = "Stream " + id
		}
		if _, added := m.prefs.AddCustomStream(strings.TrimSpace(m.streamForm.URL), name); !added {
			return errors.New("that stream is already saved")
		}
		m.notice = "Stream saved."
	}
	return nil
}
