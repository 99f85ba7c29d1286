package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/studydojo/internal/backup"
	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/errors"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/prefs"
	"github.com/julianstephens/studydojo/internal/progress"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/storage/sqlite"
	"github.com/julianstephens/studydojo/internal/story"
	"github.com/julianstephens/studydojo/internal/studyplan"
	"github.com/julianstephens/studydojo/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Progress *progress.Store
	Prefs    *prefs.Prefs
	Story    *story.Engine

	// ConfigDir holds logs, backups, the session lock and the default plan file.
	ConfigDir string
	// PlanPath overrides <ConfigDir>/plan.yaml when set.
	PlanPath string
	Location *time.Location
	Debug    bool

	Now func() time.Time
	In  io.Reader
	Out io.Writer
}

// NewContext wires the domain services over store. The store is not loaded.
func NewContext(store storage.Provider, configDir string, loc *time.Location) *Context {
	if loc == nil {
		loc = time.Local
	}
	p := progress.New(store)
	return &Context{
		Store:     store,
		Progress:  p,
		Prefs:     prefs.New(store),
		Story:     story.NewEngine(store, p),
		ConfigDir: configDir,
		Location:  loc,
		Now:       time.Now,
		In:        os.Stdin,
		Out:       os.Stdout,
	}
}

// Today is the current calendar date in the configured timezone.
func (c *Context) Today() string {
	return utils.DateIn(c.Now(), c.Location)
}

// ResolveDate returns today for an empty value and validates anything else.
func (c *Context) ResolveDate(date string) (string, error) {
	if date == "" {
		return c.Today(), nil
	}
	t, err := utils.ParseDate(date)
	if err != nil {
		return "", errors.Usagef("invalid date %q, expected YYYY-MM-DD", date)
	}
	return utils.FormatDate(t), nil
}

func (c *Context) planFile() string {
	if c.PlanPath != "" {
		return c.PlanPath
	}
	return filepath.Join(c.ConfigDir, constants.DefaultPlanFileName)
}

// Plan loads the user's plan file, or the built-in plan re-based on today
// when no file exists. The returned path is empty for the built-in plan.
func (c *Context) Plan() (*studyplan.Plan, string, error) {
	path := c.planFile()
	if _, err := os.Stat(path); err != nil {
		if c.PlanPath != "" {
			return nil, "", fmt.Errorf("plan file not found: %s", path)
		}
		plan, err := studyplan.Default(c.Today())
		return plan, "", err
	}
	plan, err := studyplan.Load(path)
	if err != nil {
		return nil, path, err
	}
	return plan, path, nil
}

// PerformAutomaticBackup takes the daily backup for file-backed stores and
// silently handles errors.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	path, err := mgr.AutoBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if path != "" {
		logger.Info("Automatic backup created", "path", path)
	}
}

// Confirm asks a y/N question on In.
func (c *Context) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ReportUnlocks prints anything a command newly unlocked.
func (c *Context) ReportUnlocks(u story.Unlocks) {
	for _, a := range u.Achievements {
		fmt.Fprintf(c.Out, "🏆 Achievement unlocked: %s %s (%s)\n", a.Icon, a.Name, a.Reward)
	}
	for _, comp := range u.Companions {
		fmt.Fprintf(c.Out, "🌸 Companion unlocked: %s. %s\n", comp.Name, comp.UnlockMessage)
	}
	for _, q := range u.Quests {
		fmt.Fprintf(c.Out, "📜 Quest complete: %s (%s)\n", q.Name, q.Reward)
	}
}
