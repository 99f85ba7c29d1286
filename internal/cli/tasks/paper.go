package tasks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/studydojo/internal/cli"
	apperrors "github.com/julianstephens/studydojo/internal/errors"
	"github.com/julianstephens/studydojo/internal/models"
)

var (
	errPaperNotFound  = errors.New("paper not found")
	errAmbiguousPaper = errors.New("paper reference is ambiguous")
)

type PaperAddCmd struct {
	Subject string `arg:"" help:"Subject of the paper, e.g. Physics."`
	Title   string `arg:"" help:"Paper title, e.g. \"June 2023 Paper 1\"."`
	Date    string `help:"Date to log the paper on (YYYY-MM-DD). Defaults to today."`
	Done    bool   `help:"Mark the paper completed right away."`
}

func (c *PaperAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	subject, title := strings.TrimSpace(c.Subject), strings.TrimSpace(c.Title)
	if subject == "" || title == "" {
		return apperrors.Usagef("subject and title are required")
	}

	paper := models.PastPaper{
		ID:        uuid.New().String(),
		Subject:   subject,
		Title:     title,
		Completed: c.Done,
	}
	unlocks := ctx.Story.SetPaperStatus(date, paper, ctx.Today())

	fmt.Fprintf(ctx.Out, "✓ Added %s: %s on %s (id %s)\n", subject, title, date, cli.ShortID(paper.ID))
	ctx.ReportUnlocks(unlocks)
	return nil
}

type PaperDoneCmd struct {
	Paper string `arg:"" help:"Paper number from 'paper list', or an id prefix."`
	Date  string `help:"Date of the paper (YYYY-MM-DD). Defaults to today."`
}

func (c *PaperDoneCmd) Run(ctx *cli.Context) error {
	return setPaper(ctx, c.Date, c.Paper, true)
}

type PaperUndoCmd struct {
	Paper string `arg:"" help:"Paper number from 'paper list', or an id prefix."`
	Date  string `help:"Date of the paper (YYYY-MM-DD). Defaults to today."`
}

func (c *PaperUndoCmd) Run(ctx *cli.Context) error {
	return setPaper(ctx, c.Date, c.Paper, false)
}

func setPaper(ctx *cli.Context, rawDate, ref string, completed bool) error {
	date, err := ctx.ResolveDate(rawDate)
	if err != nil {
		return err
	}
	today := ctx.Today()
	paper, err := findPaper(ctx.Progress.PastPapersForDate(date, today), ref)
	if err != nil {
		return err
	}
	paper.Completed = completed
	unlocks := ctx.Story.SetPaperStatus(date, paper, today)

	state := "completed"
	if !completed {
		state = "reopened"
	}
	fmt.Fprintf(ctx.Out, "✓ %s: %s %s\n", paper.Subject, paper.Title, state)
	ctx.ReportUnlocks(unlocks)
	return nil
}

type PaperRemoveCmd struct {
	Paper string `arg:"" help:"Paper number from 'paper list', or an id prefix."`
	Date  string `help:"Date of the paper (YYYY-MM-DD). Defaults to today."`
}

func (c *PaperRemoveCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	paper, err := findPaper(ctx.Progress.PastPapersForDate(date, ctx.Today()), c.Paper)
	if err != nil {
		return err
	}
	if !ctx.Progress.RemovePastPaper(date, paper.ID) {
		return fmt.Errorf("failed to remove %s", cli.ShortID(paper.ID))
	}
	fmt.Fprintf(ctx.Out, "Removed %s: %s from %s\n", paper.Subject, paper.Title, date)
	return nil
}

type PaperListCmd struct {
	Date string `help:"Date to list (YYYY-MM-DD). Defaults to today."`
}

func (c *PaperListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	papers := ctx.Progress.PastPapersForDate(date, ctx.Today())
	if len(papers) == 0 {
		fmt.Fprintf(ctx.Out, "No papers logged for %s.\n", date)
		return nil
	}

	s := ctx.Styles()
	fmt.Fprintf(ctx.Out, "Papers for %s:\n", date)
	for i, p := range papers {
		fmt.Fprintf(ctx.Out, "%2d. %s  %s\n", i+1, paperLine(s, p), s.Muted.Render(cli.ShortID(p.ID)))
	}
	return nil
}

// findPaper resolves a 1-based list position, an exact id or a unique id prefix.
func findPaper(papers []models.PastPaper, ref string) (models.PastPaper, error) {
	ref = strings.TrimSpace(ref)
	// Out-of-range numbers fall through, since an id prefix can be all digits.
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(papers) {
		return papers[n-1], nil
	}

	var match []models.PastPaper
	for _, p := range papers {
		if p.ID == ref {
			return p, nil
		}
		if ref != "" && strings.HasPrefix(p.ID, ref) {
			match = append(match, p)
		}
	}
	switch len(match) {
	case 0:
		return models.PastPaper{}, fmt.Errorf("%w: %q", errPaperNotFound, ref)
	case 1:
		return match[0], nil
	default:
		return models.PastPaper{}, fmt.Errorf("%w: %q matches %d papers", errAmbiguousPaper, ref, len(match))
	}
}
