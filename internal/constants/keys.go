package constants

// Persisted keys. These names are part of the on-disk format; do not rename.
const (
	KeyProgress          = "study_progress"
	KeyTheme             = "app_theme"
	KeyIntroShown        = "intro_shown"
	KeyStreak            = "study_streak"
	KeyLastStudyDate     = "last_study_date"
	KeyCompletedSubjects = "completed_subjects"
	KeyAchievements      = "achievements_state"
	KeyQuests            = "quests_state"
	KeyFavoriteCompanion = "favorite_companion"
	KeyCustomStreams     = "custom_music_streams"
	KeyUserName          = "user_name"
	KeyTotalStudyMinutes = "total_study_minutes"
	KeyBreaksTaken       = "timer_breaks_taken"
	KeyQuestsResetDate   = "quests_reset_date"
	KeyQuestsCompleted   = "quests_completed_total"
)

// AllKeys lists every key the application writes, in a stable order.
var AllKeys = []string{
	KeyProgress,
	KeyTheme,
	KeyIntroShown,
	KeyStreak,
	KeyLastStudyDate,
	KeyCompletedSubjects,
	KeyAchievements,
	KeyQuests,
	KeyFavoriteCompanion,
	KeyCustomStreams,
	KeyUserName,
	KeyTotalStudyMinutes,
	KeyBreaksTaken,
	KeyQuestsResetDate,
	KeyQuestsCompleted,
}
