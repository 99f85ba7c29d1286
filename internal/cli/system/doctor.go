package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studydojo/internal/backup"
	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/storage/sqlite"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the store cannot be loaded.
	needsDB bool
	// warnOnly failures are reported but do not fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Stored values", needsDB: true, run: checkStoredValues},
	{name: "Progress integrity", needsDB: true, run: checkProgressIntegrity},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Study plan", run: checkStudyPlan},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	dbReachable := true
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", c.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

// pinger and migrator are satisfied by the SQL backends.
type pinger interface{ Ping() error }

type migrator interface {
	PendingMigrations() (int, error)
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if p, ok := ctx.Store.(pinger); ok {
		if err := p.Ping(); err != nil {
			return err
		}
	}
	// Keys is a kv round trip on every backend.
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	pending, err := m.PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'studydojo init'", pending)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'studydojo backup create'")
	}
	return nil
}

// checkStoredValues decodes every structured key. The stores themselves treat
// garbage as "no data", so this is the only place it becomes visible.
func checkStoredValues(ctx *cli.Context) error {
	decoders := map[string]func() error{
		constants.KeyProgress:          storage.GetJSON[[]models.DailyProgress](ctx.Store, constants.KeyProgress).Error,
		constants.KeyAchievements:      storage.GetJSON[[]models.AchievementState](ctx.Store, constants.KeyAchievements).Error,
		constants.KeyQuests:            storage.GetJSON[[]models.QuestState](ctx.Store, constants.KeyQuests).Error,
		constants.KeyCompletedSubjects: storage.GetJSON[[]string](ctx.Store, constants.KeyCompletedSubjects).Error,
		constants.KeyCustomStreams:     storage.GetJSON[[]models.CustomMusicStream](ctx.Store, constants.KeyCustomStreams).Error,
		constants.KeyIntroShown:        storage.GetJSON[bool](ctx.Store, constants.KeyIntroShown).Error,
		constants.KeyStreak:            storage.GetInt(ctx.Store, constants.KeyStreak).Error,
		constants.KeyTotalStudyMinutes: storage.GetInt(ctx.Store, constants.KeyTotalStudyMinutes).Error,
		constants.KeyBreaksTaken:       storage.GetInt(ctx.Store, constants.KeyBreaksTaken).Error,
		constants.KeyQuestsCompleted:   storage.GetInt(ctx.Store, constants.KeyQuestsCompleted).Error,
	}

	var errs []error
	for _, key := range constants.AllKeys {
		decode, ok := decoders[key]
		if !ok {
			continue
		}
		if err := decode(); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func checkProgressIntegrity(ctx *cli.Context) error {
	list, err := ctx.Progress.Progress().Unwrap()
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return err
	}

	seen := make(map[string]bool, len(list))
	for _, rec := range list {
		if _, err := utils.ParseDate(rec.Date); err != nil {
			return fmt.Errorf("record with invalid date %q", rec.Date)
		}
		if seen[rec.Date] {
			return fmt.Errorf("duplicate record for %s", rec.Date)
		}
		seen[rec.Date] = true

		ids := make(map[string]bool, len(rec.PastPapers))
		for _, p := range rec.PastPapers {
			if ids[p.ID] {
				return fmt.Errorf("duplicate paper id %q on %s", p.ID, rec.Date)
			}
			ids[p.ID] = true
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return errors.New("no timezone configured")
	}
	return nil
}

func checkStudyPlan(ctx *cli.Context) error {
	plan, _, err := ctx.Plan()
	if err != nil {
		return err
	}
	result := studyplan.Validate(plan)
	if result.HasProblems() {
		return fmt.Errorf("%d problem(s), run 'studydojo plan validate'", len(result.Problems))
	}
	return nil
}
