package cli

import (
	"fmt"

	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/theme"
)

// Styles returns the styles for the saved theme.
func (c *Context) Styles() theme.Styles {
	return theme.New(c.Prefs.Theme())
}

// DaysLeftLabel renders a countdown as "today", "tomorrow" or "in N days".
func DaysLeftLabel(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// ExamLine renders an upcoming exam coloured by urgency.
func ExamLine(s theme.Styles, e models.UpcomingExam) string {
	return s.UrgencyStyle(studyplan.UrgencyOf(e.DaysLeft)).
		Render(fmt.Sprintf("%s %s %s", e.Subject, e.Paper, DaysLeftLabel(e.DaysLeft)))
}

// ShortID abbreviates a uuid for display. Commands accept the prefix back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
