package tasks

import (
	"fmt"

	"github.com/julianstephens/studydojo/internal/cli"
)

type StudyDoneCmd struct {
	Date string `help:"Date to update (YYYY-MM-DD). Defaults to today."`
}

func (c *StudyDoneCmd) Run(ctx *cli.Context) error {
	return setStudy(ctx, c.Date, true)
}

type StudyUndoCmd struct {
	Date string `help:"Date to update (YYYY-MM-DD). Defaults to today."`
}

func (c *StudyUndoCmd) Run(ctx *cli.Context) error {
	return setStudy(ctx, c.Date, false)
}

func setStudy(ctx *cli.Context, rawDate string, completed bool) error {
	date, err := ctx.ResolveDate(rawDate)
	if err != nil {
		return err
	}
	unlocks := ctx.Story.SetStudyStatus(date, completed, ctx.Today())

	if completed {
		fmt.Fprintf(ctx.Out, "✓ Study goal completed for %s\n", date)
	} else {
		fmt.Fprintf(ctx.Out, "Study goal reopened for %s\n", date)
	}
	fmt.Fprintf(ctx.Out, "🔥 Streak: %d\n", ctx.Progress.Streak())
	ctx.ReportUnlocks(unlocks)
	return nil
}

type FocusDoneCmd struct {
	Date string `help:"Date to update (YYYY-MM-DD). Defaults to today."`
}

func (c *FocusDoneCmd) Run(ctx *cli.Context) error {
	return setFocus(ctx, c.Date, true)
}

type FocusUndoCmd struct {
	Date string `help:"Date to update (YYYY-MM-DD). Defaults to today."`
}

func (c *FocusUndoCmd) Run(ctx *cli.Context) error {
	return setFocus(ctx, c.Date, false)
}

func setFocus(ctx *cli.Context, rawDate string, completed bool) error {
	date, err := ctx.ResolveDate(rawDate)
	if err != nil {
		return err
	}
	ctx.Progress.UpdateFocusTaskStatus(date, completed, ctx.Today())

	if completed {
		fmt.Fprintf(ctx.Out, "✓ Focus task completed for %s\n", date)
	} else {
		fmt.Fprintf(ctx.Out, "Focus task reopened for %s\n", date)
	}
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	streak := ctx.Progress.CheckAndResetStreak(today)

	fmt.Fprintf(ctx.Out, "🔥 Current streak: %d day(s)\n", streak)
	if last, ok := ctx.Progress.LastStudyDate(); ok {
		fmt.Fprintf(ctx.Out, "Last study day: %s\n", last)
	} else {
		fmt.Fprintln(ctx.Out, "No study days recorded yet.")
	}
	return nil
}
