package models

// Quote is an attributed quotation.
type Quote struct {
	Quote  string `json:"quote" yaml:"quote"`
	Source string `json:"source" yaml:"source"`
}

// Companion is an unlockable study companion.
type Companion struct {
	ID                 string
	Name               string
	Subject            string
	Description        string
	UnlockMessage      string
	MotivationalQuotes []string
	Backstory          string
	Specialty          string
	FavoriteQuote      Quote
	IsUnlocked         bool
}

// Achievement is a one-shot unlockable milestone.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Reward      string
	IsUnlocked  bool
}

// Quest is a progress counter toward a goal.
type Quest struct {
	ID              string
	Name            string
	Description     string
	CurrentProgress int
	TotalRequired   int
	Reward          string
	IsCompleted     bool
}

// Fraction returns progress in [0, 1].
func (q Quest) Fraction() float64 {
	if q.TotalRequired <= 0 {
		return 0
	}
	f := float64(q.CurrentProgress) / float64(q.TotalRequired)
	if f > 1 {
		return 1
	}
	return f
}

// AchievementState is the persisted slice of an Achievement.
type AchievementState struct {
	ID         string `json:"id"`
	IsUnlocked bool   `json:"isUnlocked"`
}

// QuestState is the persisted slice of a Quest.
type QuestState struct {
	ID              string `json:"id"`
	CurrentProgress int    `json:"currentProgress"`
	IsCompleted     bool   `json:"isCompleted"`
}
