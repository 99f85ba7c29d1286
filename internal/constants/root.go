package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "studydojo"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studydojo/studydojo.db"
	Version            = "v0.3.0"

	// Environment variables
	EnvDBConnection = "STUDYDOJO_DB_CONNECTION"
	EnvTimezone     = "STUDYDOJO_TIMEZONE"

	// Logging
	LogBackups = 3

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studydojo-"
	BackupFileSuffix = ".db"

	// Session lock
	SessionLockfileName = "studydojo.lock"

	// Timer constants
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
	MinTimerMinutes     = 1
	MaxTimerMinutes     = 240
	TimerTick           = time.Second

	// Story thresholds
	StreakAchievementDays  = 3
	DevotedStudyMinutes    = 10 * 60
	BalancedMindBreaks     = 3
	DedicatedScholarQuests = 5

	// Study plan
	DefaultPapersTarget  = 4
	PlanWatchDebounce    = 250 * time.Millisecond
	ExamUrgentDays       = 7
	ExamApproachingDays  = 14
	DefaultPlanHorizon   = 14
	DefaultPlanFileName  = "plan.yaml"
	DefaultUserNameLabel = "Samurai"
)

// Session States
const (
	StateTimer SessionState = iota
	StateTasks
	StateCompanions
	StateAchievements
	StateSettings
	StateIntro
	StateAddPaper
	StateAddStream
	StateEditName
)

// MainTabs is the number of top-level TUI tabs; states below this value are tabs.
const MainTabs = int(StateSettings) + 1
