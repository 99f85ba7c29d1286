package plans

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/utils"
)

type ExamsCmd struct {
	Subject string `help:"Only show exams for this subject."`
}

func (c *ExamsCmd) Run(ctx *cli.Context) error {
	plan, _, err := ctx.Plan()
	if err != nil {
		return err
	}
	today := ctx.Today()
	s := ctx.Styles()

	exams := plan.UpcomingExams(today, c.Subject)
	if len(exams) == 0 {
		fmt.Fprintln(ctx.Out, "No upcoming exams. 🎉")
		return nil
	}

	fmt.Fprintln(ctx.Out, s.Title.Render("Upcoming exams"))
	for _, e := range exams {
		fmt.Fprintf(ctx.Out, "  %s  %s %s  %s\n", e.Date, e.Time, cli.ExamLine(s, e), s.Muted.Render(e.Code))
	}

	if total, passed, ok := plan.ExamPeriod(today); ok {
		fmt.Fprintf(ctx.Out, "\nExam period: %d of %d days passed (%.0f%%)\n", min(passed, total), total, plan.Fraction(today)*100)
	}
	return nil
}

type PlanShowCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	plan, path, err := ctx.Plan()
	if err != nil {
		return err
	}
	s := ctx.Styles()
	today := ctx.Today()

	source := "built-in plan"
	if path != "" {
		source = path
	}
	fmt.Fprintf(ctx.Out, "%s %s\n", s.Title.Render("Study plan"), s.Muted.Render("("+source+")"))
	fmt.Fprintf(ctx.Out, "Daily past paper target: %d\n\n", plan.PapersTarget())

	for i := 0; i < c.Days; i++ {
		date, err := utils.AddDays(today, i)
		if err != nil {
			return err
		}
		task, ok := plan.FocusTask(date)
		if !ok {
			task = s.Muted.Render("free day")
		}
		fmt.Fprintf(ctx.Out, "  %s  %s\n", date, task)
	}
	return nil
}

type PlanValidateCmd struct {
	Path string `arg:"" optional:"" help:"Plan file to check. Defaults to the active plan."`
}

func (c *PlanValidateCmd) Run(ctx *cli.Context) error {
	var (
		plan *studyplan.Plan
		err  error
	)
	if c.Path != "" {
		plan, err = studyplan.Load(c.Path)
	} else {
		plan, _, err = ctx.Plan()
	}
	if err != nil {
		return err
	}

	result := studyplan.Validate(plan)
	fmt.Fprintln(ctx.Out, result.FormatReport())
	if result.HasProblems() {
		return fmt.Errorf("%d problem(s) found", len(result.Problems))
	}
	return nil
}

type PlanInitCmd struct {
	Force bool `help:"Overwrite an existing plan file."`
}

// Run writes the built-in plan, re-based on today, as an editable file.
func (c *PlanInitCmd) Run(ctx *cli.Context) error {
	path := ctx.PlanPath
	if path == "" {
		path = filepath.Join(ctx.ConfigDir, constants.DefaultPlanFileName)
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("plan file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to access plan file: %w", err)
	}

	plan, err := studyplan.Default(ctx.Today())
	if err != nil {
		return err
	}
	if err := plan.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Study plan written to %s\n", path)
	fmt.Fprintln(ctx.Out, "  Edit it while the TUI is open and changes are picked up live.")
	return nil
}
