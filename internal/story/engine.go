// Package story drives companions, achievements and quests from study activity.
package story

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/progress"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/utils"
)

var (
	ErrUnknownCompanion   = errors.New("unknown companion")
	ErrUnknownAchievement = errors.New("unknown achievement")
	ErrUnknownQuest       = errors.New("unknown quest")
)

// Unlocks lists what an action newly earned.
type Unlocks struct {
	Achievements []models.Achievement
	Companions   []models.Companion
	Quests       []models.Quest
}

func (u Unlocks) Empty() bool {
	return len(u.Achievements) == 0 && len(u.Companions) == 0 && len(u.Quests) == 0
}

func (u *Unlocks) merge(o Unlocks) {
	u.Achievements = append(u.Achievements, o.Achievements...)
	u.Companions = append(u.Companions, o.Companions...)
	u.Quests = append(u.Quests, o.Quests...)
}

type Engine struct {
	kv       storage.Store
	progress *progress.Store
}

func NewEngine(kv storage.Store, p *progress.Store) *Engine {
	return &Engine{kv: kv, progress: p}
}

func (e *Engine) saveJSON(key string, v any) {
	if err := storage.SetJSON(e.kv, key, v); err != nil {
		logger.Warn("Failed to save story state", "key", key, "error", err)
	}
}

func (e *Engine) counter(key string) int {
	return storage.GetInt(e.kv, key).OrWarn(0, key)
}

func (e *Engine) setCounter(key string, n int) {
	if err := storage.SetInt(e.kv, key, n); err != nil {
		logger.Warn("Failed to save story counter", "key", key, "error", err)
	}
}

// --- Subjects & companions ---

var subjectAliases = map[string]string{
	"math":     "Mathematics",
	"maths":    "Mathematics",
	"comp sci": "Computer Science",
	"compsci":  "Computer Science",
	"cs":       "Computer Science",
}

// CanonicalSubject maps common short forms ("Maths", "Comp Sci") to the
// subject names companions are keyed on.
func CanonicalSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if full, ok := subjectAliases[strings.ToLower(subject)]; ok {
		return full
	}
	return subject
}

// companionForSubject finds the companion a completed subject unlocks.
func companionForSubject(subject string) (models.Companion, bool) {
	lower := strings.ToLower(subject)
	for _, c := range companionData {
		if strings.EqualFold(c.Subject, subject) {
			return c, true
		}
		if !nonSubjectCompanions[c.Subject] && strings.Contains(lower, strings.ToLower(c.Subject)) {
			return c, true
		}
	}
	return models.Companion{}, false
}

func subjectAchievementID(subject string) string {
	return "unlock_" + strings.ReplaceAll(strings.ToLower(subject), " ", "_") + "_waifu"
}

// CompletedSubjects returns subjects in the order they were completed.
func (e *Engine) CompletedSubjects() []string {
	return storage.GetJSON[[]string](e.kv, constants.KeyCompletedSubjects).OrWarn([]string{}, constants.KeyCompletedSubjects)
}

func hasSubject(subjects []string, subject string) bool {
	for _, s := range subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// MarkSubjectComplete records subject and applies the companion and
// achievement unlocks that follow from it.
func (e *Engine) MarkSubjectComplete(subject string) Unlocks {
	subject = CanonicalSubject(subject)
	if subject == "" {
		return Unlocks{}
	}
	return e.track(func() Unlocks {
		subjects := e.CompletedSubjects()
		if !hasSubject(subjects, subject) {
			subjects = append(subjects, subject)
			e.saveJSON(constants.KeyCompletedSubjects, subjects)
		}
		return e.subjectAchievements(subjects)
	})
}

func (e *Engine) subjectAchievements(subjects []string) Unlocks {
	var u Unlocks
	covered := 0
	for _, core := range CoreSubjects {
		for _, s := range subjects {
			if c, ok := companionForSubject(s); ok && c.Subject == core {
				u.merge(e.unlock(subjectAchievementID(core)))
				covered++
				break
			}
		}
	}
	if covered == len(CoreSubjects) {
		u.merge(e.unlock(AchAllSubjects))
	}
	return u
}

func (e *Engine) unlockedSet() map[string]bool {
	unlocked := map[string]bool{CompanionAkira: true}
	for _, s := range e.CompletedSubjects() {
		if c, ok := companionForSubject(s); ok {
			unlocked[c.ID] = true
		}
	}
	achieved := e.achievementState()
	if achieved[AchStreak3] {
		unlocked[CompanionMizuki] = true
	}
	if achieved[AchTenHours] {
		unlocked[CompanionTakeshi] = true
	}
	if achieved[AchTakeABreak] {
		unlocked[CompanionRen] = true
	}
	return unlocked
}

// UnlockedCompanionIDs lists unlocked companions in roster order.
func (e *Engine) UnlockedCompanionIDs() []string {
	unlocked := e.unlockedSet()
	var ids []string
	for _, c := range companionData {
		if unlocked[c.ID] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func cloneCompanion(c models.Companion) models.Companion {
	c.MotivationalQuotes = append([]string(nil), c.MotivationalQuotes...)
	return c
}

// Companions returns the roster with IsUnlocked resolved.
func (e *Engine) Companions() []models.Companion {
	unlocked := e.unlockedSet()
	out := make([]models.Companion, len(companionData))
	for i, c := range companionData {
		out[i] = cloneCompanion(c)
		out[i].IsUnlocked = unlocked[c.ID]
	}
	return out
}

// Companion looks up one companion by id.
func (e *Engine) Companion(id string) (models.Companion, error) {
	for _, c := range e.Companions() {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Companion{}, fmt.Errorf("%w: %q", ErrUnknownCompanion, id)
}

// UnlockCompanion marks the companion's subject as completed.
func (e *Engine) UnlockCompanion(id string) (Unlocks, error) {
	c, err := e.Companion(id)
	if err != nil {
		return Unlocks{}, err
	}
	return e.MarkSubjectComplete(c.Subject), nil
}

// track runs fn and adds any companions that became unlocked during it.
func (e *Engine) track(fn func() Unlocks) Unlocks {
	before := e.unlockedSet()
	u := fn()
	after := e.unlockedSet()
	for _, c := range companionData {
		if after[c.ID] && !before[c.ID] {
			unlocked := cloneCompanion(c)
			unlocked.IsUnlocked = true
			u.Companions = append(u.Companions, unlocked)
		}
	}
	return u
}

// --- Achievements ---

func (e *Engine) achievementState() map[string]bool {
	saved := storage.GetJSON[[]models.AchievementState](e.kv, constants.KeyAchievements).
		OrWarn(nil, constants.KeyAchievements)
	state := make(map[string]bool, len(saved))
	for _, s := range saved {
		state[s.ID] = s.IsUnlocked
	}
	return state
}

// Achievements merges saved unlock state over the static list.
func (e *Engine) Achievements() []models.Achievement {
	state := e.achievementState()
	out := make([]models.Achievement, len(achievementData))
	for i, a := range achievementData {
		out[i] = a
		if unlocked, ok := state[a.ID]; ok {
			out[i].IsUnlocked = unlocked
		}
	}
	return out
}

// unlock sets an achievement without companion tracking. Unknown ids and
// already-unlocked achievements yield nothing.
func (e *Engine) unlock(id string) Unlocks {
	all := e.Achievements()
	idx := -1
	for i, a := range all {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || all[idx].IsUnlocked {
		return Unlocks{}
	}

	all[idx].IsUnlocked = true
	states := make([]models.AchievementState, len(all))
	for i, a := range all {
		states[i] = models.AchievementState{ID: a.ID, IsUnlocked: a.IsUnlocked}
	}
	e.saveJSON(constants.KeyAchievements, states)
	logger.Debug("Achievement unlocked", "id", id)
	return Unlocks{Achievements: []models.Achievement{all[idx]}}
}

// UnlockAchievement unlocks id and reports everything that newly unlocked
// as a result, including companions gated on it.
func (e *Engine) UnlockAchievement(id string) (Unlocks, error) {
	known := false
	for _, a := range achievementData {
		known = known || a.ID == id
	}
	if !known {
		return Unlocks{}, fmt.Errorf("%w: %q", ErrUnknownAchievement, id)
	}
	return e.track(func() Unlocks { return e.unlock(id) }), nil
}

// --- Quests ---

func sameISOWeek(a, b string) bool {
	ta, err := utils.ParseDate(a)
	if err != nil {
		return false
	}
	tb, err := utils.ParseDate(b)
	if err != nil {
		return false
	}
	ya, wa := ta.ISOWeek()
	yb, wb := tb.ISOWeek()
	return ya == yb && wa == wb
}

func (e *Engine) questStates() []models.QuestState {
	return storage.GetJSON[[]models.QuestState](e.kv, constants.KeyQuests).OrWarn(nil, constants.KeyQuests)
}

func (e *Engine) saveQuests(quests []models.Quest) {
	states := make([]models.QuestState, len(quests))
	for i, q := range quests {
		states[i] = models.QuestState{ID: q.ID, CurrentProgress: q.CurrentProgress, IsCompleted: q.IsCompleted}
	}
	e.saveJSON(constants.KeyQuests, states)
}

// Quests returns quest progress for today. The first call on a new day
// resets the daily quests, and the weekly quest too when the ISO week changed.
func (e *Engine) Quests(today string) []models.Quest {
	states := e.questStates()
	byID := make(map[string]models.QuestState, len(states))
	for _, s := range states {
		byID[s.ID] = s
	}

	lastReset := storage.GetString(e.kv, constants.KeyQuestsResetDate).OrWarn("", constants.KeyQuestsResetDate)
	stale := lastReset != today
	newWeek := !sameISOWeek(lastReset, today)

	out := make([]models.Quest, len(questData))
	for i, q := range questData {
		out[i] = q
		s, ok := byID[q.ID]
		if !ok || (stale && (!weeklyQuests[q.ID] || newWeek)) {
			continue
		}
		out[i].CurrentProgress = s.CurrentProgress
		out[i].IsCompleted = s.IsCompleted
	}

	if stale {
		e.saveQuests(out)
		if err := e.kv.Set(constants.KeyQuestsResetDate, today); err != nil {
			logger.Warn("Failed to save quest reset date", "key", constants.KeyQuestsResetDate, "error", err)
		}
	}
	return out
}

// UpdateQuestProgress adds amount to a quest, clamped to its total. Reaching
// the total completes the quest once and counts toward complete_5_quests.
func (e *Engine) UpdateQuestProgress(id string, amount int, today string) (Unlocks, error) {
	quests := e.Quests(today)
	idx := -1
	for i, q := range quests {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Unlocks{}, fmt.Errorf("%w: %q", ErrUnknownQuest, id)
	}

	q := &quests[idx]
	if amount <= 0 || q.IsCompleted {
		return Unlocks{}, nil
	}
	q.CurrentProgress = min(q.CurrentProgress+amount, q.TotalRequired)

	var u Unlocks
	if q.CurrentProgress >= q.TotalRequired {
		q.IsCompleted = true
		u.Quests = append(u.Quests, *q)
	}
	e.saveQuests(quests)

	if q.IsCompleted {
		total := e.counter(constants.KeyQuestsCompleted) + 1
		e.setCounter(constants.KeyQuestsCompleted, total)
		if total >= constants.DedicatedScholarQuests {
			u.merge(e.track(func() Unlocks { return e.unlock(AchFiveQuests) }))
		}
	}
	return u, nil
}

func (e *Engine) questProgress(id string, amount int, today string) Unlocks {
	u, err := e.UpdateQuestProgress(id, amount, today)
	if err != nil {
		logger.Error("Quest update failed", "id", id, "error", err)
	}
	return u
}

// --- Study events ---

func (e *Engine) afterStudy(streak int, today string) Unlocks {
	var u Unlocks
	if streak >= constants.StreakAchievementDays {
		u.merge(e.track(func() Unlocks { return e.unlock(AchStreak3) }))
	}
	u.merge(e.questProgress(QuestDailyStudy, 1, today))
	return u
}

// IncreaseDailyStreak counts today as studied and applies streak rewards.
func (e *Engine) IncreaseDailyStreak(today string) (int, Unlocks) {
	streak := e.progress.UpdateStreak(true, today)
	return streak, e.afterStudy(streak, today)
}

// SetStudyStatus updates date's study goal. Completing today's goal for the
// first time extends the streak and pays out its rewards.
func (e *Engine) SetStudyStatus(date string, completed bool, today string) Unlocks {
	before := e.progress.GetDailyProgress(date, today).StudyCompleted
	e.progress.UpdateDailyStudyStatus(date, completed, today)
	if before || !completed || !utils.SameDay(date, today) {
		return Unlocks{}
	}
	return e.afterStudy(e.progress.Streak(), today)
}

// SetPaperStatus upserts a paper on date. A paper that is newly completed
// marks its subject complete, and counts toward today's paper quest when
// date is today.
func (e *Engine) SetPaperStatus(date string, paper models.PastPaper, today string) Unlocks {
	rec := e.progress.GetDailyProgress(date, today)
	wasDone := false
	if i := rec.PaperIndex(paper.ID); i >= 0 {
		wasDone = rec.PastPapers[i].Completed
	}
	e.progress.UpdatePastPaperStatus(date, paper)

	if !paper.Completed || wasDone {
		return Unlocks{}
	}
	u := e.MarkSubjectComplete(paper.Subject)
	if utils.SameDay(date, today) {
		u.merge(e.questProgress(QuestDailyPapers, 1, today))
	}
	return u
}

func (e *Engine) TotalStudyMinutes() int { return e.counter(constants.KeyTotalStudyMinutes) }

func (e *Engine) BreaksTaken() int { return e.counter(constants.KeyBreaksTaken) }

// RecordStudyMinutes credits a finished focus session.
func (e *Engine) RecordStudyMinutes(minutes int, today string) Unlocks {
	if minutes <= 0 {
		return Unlocks{}
	}
	total := e.TotalStudyMinutes() + minutes
	e.setCounter(constants.KeyTotalStudyMinutes, total)

	u := e.track(func() Unlocks {
		u := e.unlock(AchFirstStudy)
		if total >= constants.DevotedStudyMinutes {
			u.merge(e.unlock(AchTenHours))
		}
		return u
	})
	u.merge(e.questProgress(QuestWeeklyMinutes, minutes, today))
	return u
}

// RecordBreak credits a finished break.
func (e *Engine) RecordBreak() Unlocks {
	breaks := e.BreaksTaken() + 1
	e.setCounter(constants.KeyBreaksTaken, breaks)
	if breaks < constants.BalancedMindBreaks {
		return Unlocks{}
	}
	return e.track(func() Unlocks { return e.unlock(AchTakeABreak) })
}

// --- Quotes ---

// MotivationalQuote picks a line from the preferred companion when it is
// unlocked, otherwise from a random unlocked companion. It also returns the
// speaking companion's id, empty for the system fallback.
func (e *Engine) MotivationalQuote(preferredID string, rng *rand.Rand) (models.Quote, string) {
	pick := rand.IntN
	if rng != nil {
		pick = rng.IntN
	}

	var available []models.Companion
	for _, c := range e.Companions() {
		if c.IsUnlocked && len(c.MotivationalQuotes) > 0 {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return fallbackQuote, ""
	}

	chosen := available[pick(len(available))]
	for _, c := range available {
		if preferredID != "" && c.ID == preferredID {
			chosen = c
			break
		}
	}
	text := chosen.MotivationalQuotes[pick(len(chosen.MotivationalQuotes))]
	return models.Quote{Quote: text, Source: chosen.Name}, chosen.ID
}
