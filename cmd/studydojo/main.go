package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/cli/backups"
	"github.com/julianstephens/studydojo/internal/cli/companions"
	"github.com/julianstephens/studydojo/internal/cli/plans"
	"github.com/julianstephens/studydojo/internal/cli/settings"
	"github.com/julianstephens/studydojo/internal/cli/system"
	"github.com/julianstephens/studydojo/internal/cli/tasks"
	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/errors"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/storage/backend"
	"github.com/julianstephens/studydojo/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, PostgreSQL URL, Redis URL, or 'keyring'/'env' to read a PostgreSQL connection string from the OS keyring or STUDYDOJO_DB_CONNECTION. PostgreSQL URLs given here must NOT embed a password." type:"string" default:"~/.config/studydojo/studydojo.db"`
	Plan     string `help:"Study plan YAML file. Defaults to plan.yaml next to the database." type:"path"`
	Timezone string `help:"IANA timezone that decides what 'today' is." env:"STUDYDOJO_TIMEZONE" default:"Local"`
	Debug    bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize studydojo storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`

	Today tasks.TodayCmd `cmd:"" help:"Show a day's checklist."`
	Study struct {
		Done tasks.StudyDoneCmd `cmd:"" help:"Mark the study goal done." default:"1"`
		Undo tasks.StudyUndoCmd `cmd:"" help:"Reopen the study goal."`
	} `cmd:"" help:"Update the daily study goal."`
	Focus struct {
		Done tasks.FocusDoneCmd `cmd:"" help:"Mark the focus task done." default:"1"`
		Undo tasks.FocusUndoCmd `cmd:"" help:"Reopen the focus task."`
	} `cmd:"" help:"Update the daily focus task."`
	Paper struct {
		Add    tasks.PaperAddCmd    `cmd:"" help:"Log a past paper."`
		Done   tasks.PaperDoneCmd   `cmd:"" help:"Mark a paper completed."`
		Undo   tasks.PaperUndoCmd   `cmd:"" help:"Mark a paper not completed."`
		Remove tasks.PaperRemoveCmd `cmd:"" help:"Remove a logged paper."`
		List   tasks.PaperListCmd   `cmd:"" help:"List a day's papers." default:"1"`
	} `cmd:"" help:"Manage past papers."`
	Streak tasks.StreakCmd `cmd:"" help:"Show the study streak."`

	Companions struct {
		List     companions.CompanionsListCmd     `cmd:"" help:"List companions." default:"1"`
		Show     companions.CompanionsShowCmd     `cmd:"" help:"Show a companion's profile."`
		Favorite companions.CompanionsFavoriteCmd `cmd:"" help:"Show or set the favourite companion."`
	} `cmd:"" help:"Meet your study companions."`
	Achievements companions.AchievementsCmd `cmd:"" help:"List achievements."`
	Quests       companions.QuestsCmd       `cmd:"" help:"Show quest progress."`
	Greet        companions.GreetCmd        `cmd:"" help:"Get a greeting and a word of encouragement."`

	Exams     plans.ExamsCmd `cmd:"" help:"List upcoming exams."`
	StudyPlan struct {
		Show     plans.PlanShowCmd     `cmd:"" help:"Show the next days of the plan." default:"1"`
		Validate plans.PlanValidateCmd `cmd:"" help:"Check a plan file for problems."`
		Init     plans.PlanInitCmd     `cmd:"" help:"Write the built-in plan to an editable file."`
	} `cmd:"" name:"plan" help:"Inspect and edit the study plan."`

	Theme  settings.ThemeCmd `cmd:"" help:"Show or change the colour theme."`
	Name   settings.NameCmd  `cmd:"" help:"Show or change the name companions greet you by."`
	Stream struct {
		List   settings.StreamListCmd   `cmd:"" help:"List music streams." default:"1"`
		Add    settings.StreamAddCmd    `cmd:"" help:"Save a YouTube stream."`
		Remove settings.StreamRemoveCmd `cmd:"" help:"Remove a saved stream."`
	} `cmd:"" help:"Manage music stream bookmarks."`
}

// Commands that open the store themselves, or never need it.
var selfLoading = map[string]bool{
	"init":    true,
	"doctor":  true,
	"tui":     true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A gamified study companion: focus timer, daily checklist and streaks."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := "tui"
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		command = fields[0]
	}

	configDir, err := backend.ConfigDir(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Quiet:     command == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(errors.Usagef("invalid timezone %q: %v", CLI.Timezone, err))
	}

	store, err := backend.New(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(store, configDir, loc)
	appCtx.PlanPath = CLI.Plan
	appCtx.Debug = CLI.Debug

	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
