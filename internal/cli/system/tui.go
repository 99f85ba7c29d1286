package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/session"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	var warning string
	lock, holder, err := session.Acquire(ctx.ConfigDir)
	if err != nil {
		logger.Warn("Failed to acquire session lock", "error", err)
	}
	if holder != nil {
		warning = fmt.Sprintf("Another studydojo session (%s) is open on this store. The last write to each value wins.", holder)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release session lock", "error", err)
		}
	}()

	plan, planPath, err := ctx.Plan()
	if err != nil {
		return fmt.Errorf("failed to load study plan: %w", err)
	}

	opts := tui.Options{
		Progress: ctx.Progress,
		Prefs:    ctx.Prefs,
		Story:    ctx.Story,
		Plan:     plan,
		Location: ctx.Location,
		Now:      ctx.Now,
		Warning:  warning,
	}

	if planPath != "" {
		watchCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if w, err := startWatcher(watchCtx, planPath); err != nil {
			logger.Warn("Study plan changes will not be picked up", "path", planPath, "error", err)
		} else {
			defer w.Stop()
			opts.PlanUpdates = w.Updates()
		}
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

func startWatcher(ctx context.Context, path string) (*studyplan.Watcher, error) {
	w, err := studyplan.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
