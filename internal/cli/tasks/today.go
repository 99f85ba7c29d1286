package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/theme"
)

type TodayCmd struct {
	Date string `help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	today := ctx.Today()
	if date == today {
		ctx.Progress.CheckAndResetStreak(today)
	}

	plan, _, err := ctx.Plan()
	if err != nil {
		return fmt.Errorf("failed to load study plan: %w", err)
	}
	rec := ctx.Progress.GetDailyProgress(date, today)
	s := ctx.Styles()

	var b strings.Builder
	b.WriteString(s.Title.Render("📅 "+date) + "\n\n")

	focus, ok := plan.FocusTask(date)
	if !ok {
		focus = "No focus task planned"
	}
	b.WriteString(checkLine(s, rec.FocusTaskCompleted, "Focus: "+focus) + "\n")
	b.WriteString(checkLine(s, rec.StudyCompleted, "Study goal") + "\n")

	target := plan.PapersTarget()
	b.WriteString(fmt.Sprintf("\nPast papers %d/%d\n", rec.CompletedPapers(), target))
	if len(rec.PastPapers) == 0 {
		b.WriteString(s.Muted.Render("  none logged") + "\n")
	}
	for i, p := range rec.PastPapers {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, paperLine(s, p)))
	}

	b.WriteString("\n" + s.Accent.Render(fmt.Sprintf("🔥 Streak: %d", ctx.Progress.Streak())))
	if exam, ok := plan.NextExam(today); ok {
		b.WriteString("   Next exam: " + cli.ExamLine(s, exam))
	}

	fmt.Fprintln(ctx.Out, s.Card.Render(b.String()))
	return nil
}

func checkLine(s theme.Styles, done bool, label string) string {
	if done {
		return s.Success.Render("[x] ") + s.Checked.Render(label)
	}
	return "[ ] " + s.Text.Render(label)
}

func paperLine(s theme.Styles, p models.PastPaper) string {
	line := checkLine(s, p.Completed, fmt.Sprintf("%s: %s", p.Subject, p.Title))
	if p.CarriedOver {
		line += s.Muted.Render(" (carried over)")
	}
	return line
}
