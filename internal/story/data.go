package story

import "github.com/julianstephens/studydojo/internal/models"

// Companion ids with special unlock rules.
const (
	CompanionAkira   = "akira"
	CompanionMizuki  = "mizuki"
	CompanionTakeshi = "takeshi"
	CompanionRen     = "ren"
)

// Achievement ids.
const (
	AchFirstStudy  = "first_study"
	AchStreak3     = "study_streak_3"
	AchAllSubjects = "study_all_subjects"
	AchTenHours    = "study_10_hours"
	AchTakeABreak  = "take_a_break"
	AchFiveQuests  = "complete_5_quests"
)

// Quest ids.
const (
	QuestDailyStudy    = "daily_study_session"
	QuestDailyPapers   = "daily_past_papers"
	QuestWeeklyMinutes = "weekly_study_hours"
)

// CoreSubjects are the subjects with their own companion.
var CoreSubjects = []string{"Mathematics", "Physics", "Computer Science"}

// Subjects with a companion that is not unlocked by studying the subject.
var nonSubjectCompanions = map[string]bool{
	"All Subjects":    true,
	"Time Management": true,
	"Motivation":      true,
	"Relaxation":      true,
}

var companionData = []models.Companion{
	{
		ID:            CompanionAkira,
		Name:          "Master Akira",
		Subject:       "All Subjects",
		Description:   "The wise master who oversees all disciplines.",
		UnlockMessage: "Master Akira guides your journey from the start.",
		MotivationalQuotes: []string{
			"The path to mastery is walked one step at a time...",
			"Knowledge without application is like a sword that remains sheathed...",
			"Embrace challenges as opportunities to strengthen your mind...",
			"A calm mind can overcome any obstacle in study or life.",
		},
		Backstory:     "Once a renowned strategist, Master Akira now dedicates his life to cultivating sharp minds, believing true strength lies in knowledge and discipline.",
		Specialty:     "Holistic Learning & Strategy: Connects ideas across subjects and crafts effective study plans.",
		FavoriteQuote: models.Quote{Quote: "Knowing is not enough, we must apply. Willing is not enough, we must do.", Source: "Bruce Lee"},
		IsUnlocked:    true,
	},
	{
		ID:            "sakura",
		Name:          "Sakura",
		Subject:       "Mathematics",
		Description:   "A brilliant mathematician with a calm demeanor.",
		UnlockMessage: "Sakura is impressed by your mathematical diligence!",
		MotivationalQuotes: []string{
			"The beauty of mathematics lies in its patterns...",
			"Each equation you master is another step...",
			"Like a well-balanced katana, precision in mathematics...",
			"Study with patience and persistence...",
		},
		Backstory:     "Descended from imperial scholars, Sakura sees the universe through the elegant language of numbers. She finds peace in logic and seeks to share its beauty.",
		Specialty:     "Calculus & Abstract Algebra: Unravels complex proofs with grace and finds elegant solutions.",
		FavoriteQuote: models.Quote{Quote: "Hard work is worthless for those that don’t believe in themselves.", Source: "Naruto Uzumaki (Naruto)"},
	},
	{
		ID:                 "hana",
		Name:               "Hana",
		Subject:            "Physics",
		Description:        "Energetic and curious, loves exploring physical laws.",
		UnlockMessage:      "Hana is excited to join your physics studies!",
		MotivationalQuotes: []string{"The laws of physics are like the code of the samurai..."},
		Backstory:          "Fascinated by motion since childhood, Hana constantly experiments to understand the forces shaping reality. Her curiosity is boundless.",
		Specialty:          "Mechanics & Thermodynamics: Loves understanding motion, energy transfer, and system interactions.",
		FavoriteQuote:      models.Quote{Quote: "Stand up and walk. Keep moving forward. You've got two good legs. So get up and use them.", Source: "Edward Elric (Fullmetal Alchemist)"},
	},
	{
		ID:                 "yuki",
		Name:               "Yuki",
		Subject:            "Computer Science",
		Description:        "A coding prodigy who speaks in algorithms.",
		UnlockMessage:      "Yuki is impressed by your coding skills!",
		MotivationalQuotes: []string{"Code with the focus of a samurai archer..."},
		Backstory:          "Yuki found solace in the logical world of code. She sees programming as digital craftsmanship, striving for efficiency and elegance.",
		Specialty:          "Algorithm Design & Debugging: Uncanny ability to spot flaws and devise efficient computational solutions.",
		FavoriteQuote:      models.Quote{Quote: "Simplicity is the ultimate sophistication.", Source: "Leonardo da Vinci (Often attributed)"},
	},
	{
		ID:                 CompanionMizuki,
		Name:               "Mizuki",
		Subject:            "Time Management",
		Description:        "Guardian of time, helps organize schedules.",
		UnlockMessage:      "Mizuki has noticed your consistent study habits!",
		MotivationalQuotes: []string{"Time flows like a river..."},
		Backstory:          "Tasked with maintaining the temporal balance, Mizuki ensures every second is accounted for. She believes discipline in time leads to mastery.",
		Specialty:          "Scheduling & Prioritization: Helps create efficient timetables and focus on important tasks.",
		FavoriteQuote:      models.Quote{Quote: "The future belongs to those who prepare for it today.", Source: "Malcolm X"},
	},
	{
		ID:                 CompanionTakeshi,
		Name:               "Takeshi",
		Subject:            "Motivation",
		Description:        "Legendary samurai inspiring students.",
		UnlockMessage:      "Takeshi recognizes your fighting spirit!",
		MotivationalQuotes: []string{"Rise again after each defeat!..."},
		Backstory:          "A warrior known for unwavering spirit, Takeshi now channels his intensity into motivating students against procrastination and doubt.",
		Specialty:          "Overcoming Obstacles & Maintaining Drive: Pushes students past limits and reignites their passion.",
		FavoriteQuote:      models.Quote{Quote: "If you don’t take risks, you can’t create a future!", Source: "Monkey D. Luffy (One Piece)"},
	},
	{
		ID:                 CompanionRen,
		Name:               "Ren",
		Subject:            "Relaxation",
		Description:        "Zen master teaching balance.",
		UnlockMessage:      "Ren appreciates your balanced approach to studying!",
		MotivationalQuotes: []string{"A rested mind absorbs knowledge..."},
		Backstory:          "Ren achieved enlightenment by finding calm amidst chaos. He teaches rest as a vital part of learning, allowing the mind to consolidate.",
		Specialty:          "Mindfulness & Stress Reduction: Guides students to calm the mind, improve focus, and prevent burnout.",
		FavoriteQuote:      models.Quote{Quote: "Sometimes the most productive thing you can do is relax.", Source: "Mark Black"},
	},
}

var achievementData = []models.Achievement{
	{ID: AchFirstStudy, Name: "First Steps", Description: "Complete your first study session", Icon: "📚", Reward: "Progress towards Sakura"},
	{ID: AchStreak3, Name: "The Way of Discipline", Description: "Study for 3 days in a row", Icon: "🔥", Reward: "Unlock Mizuki companion"},
	{ID: "unlock_mathematics_waifu", Name: "Numerical Precision", Description: "Unlock the Mathematics companion", Icon: "🌸"},
	{ID: "unlock_physics_waifu", Name: "Force of Nature", Description: "Unlock the Physics companion", Icon: "💡"},
	{ID: "unlock_computer_science_waifu", Name: "Digital Domain", Description: "Unlock the Computer Science companion", Icon: "💻"},
	{ID: AchAllSubjects, Name: "Master of All", Description: "Study all core subjects (Math, Physics, CS)", Icon: "🧠", Reward: "Unlock Master Akira (if not already)"},
	{ID: AchTenHours, Name: "The Devoted", Description: "Accumulate 10 hours of study time", Icon: "⏱️", Reward: "Unlock Takeshi companion"},
	{ID: AchTakeABreak, Name: "Balanced Mind", Description: "Use the timer's break feature 3 times", Icon: "🧘", Reward: "Unlock Ren companion"},
	{ID: AchFiveQuests, Name: "Dedicated Scholar", Description: "Complete 5 study quests", Icon: "⚔️", Reward: "Special Theme Unlock"},
}

var questData = []models.Quest{
	{ID: QuestDailyStudy, Name: "Daily Training", Description: "Complete today's main study task", TotalRequired: 1, Reward: "+1 Streak Day"},
	{ID: QuestDailyPapers, Name: "Paper Pursuit", Description: "Complete 2 past papers", TotalRequired: 2, Reward: "Minor XP Boost"},
	{ID: QuestWeeklyMinutes, Name: "Focused Effort", Description: "Study for 5 hours this week", TotalRequired: 5 * 60, Reward: "Companion Treat"},
}

// weeklyQuests reset on ISO week change instead of daily.
var weeklyQuests = map[string]bool{QuestWeeklyMinutes: true}

// fallbackQuote is shown when no companion has anything to say.
var fallbackQuote = models.Quote{Quote: "Begin your journey. Unlock companions by studying!", Source: "System"}
