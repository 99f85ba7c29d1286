// Package progress keeps the per-date study checklist and the study streak.
//
// Every operation takes "today" explicitly. Storage failures never reach the
// caller: reads fall back to defaults and writes are logged and dropped.
package progress

import (
	"errors"
	"fmt"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/utils"
)

type Store struct {
	kv storage.Store
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// CarriedOverID derives the id of a paper copied forward onto date.
func CarriedOverID(originalID, date string) string {
	return fmt.Sprintf("%s-co-%s", originalID, date)
}

// Progress returns every stored record in insertion order.
func (s *Store) Progress() storage.Result[[]models.DailyProgress] {
	r := storage.GetJSON[[]models.DailyProgress](s.kv, constants.KeyProgress)
	list, err := r.Unwrap()
	if err != nil {
		return r
	}
	for i := range list {
		if list[i].PastPapers == nil {
			list[i].PastPapers = []models.PastPaper{}
		}
	}
	return storage.Ok(list)
}

// load reads the record list for a mutation. writable is false when the
// backend itself failed, so a blind rewrite cannot wipe history it never saw.
// Missing and malformed data both read as a fresh install.
func (s *Store) load() (list []models.DailyProgress, writable bool) {
	list, err := s.Progress().Unwrap()
	switch {
	case err == nil:
		return list, true
	case errors.Is(err, storage.ErrKeyNotFound):
		return []models.DailyProgress{}, true
	case errors.Is(err, storage.ErrMalformed):
		logger.Warn("Discarding unreadable progress data", "key", constants.KeyProgress, "error", err)
		return []models.DailyProgress{}, true
	default:
		logger.Warn("Progress store unavailable", "key", constants.KeyProgress, "error", err)
		return []models.DailyProgress{}, false
	}
}

func (s *Store) save(list []models.DailyProgress) {
	if err := storage.SetJSON(s.kv, constants.KeyProgress, list); err != nil {
		logger.Warn("Failed to save progress", "key", constants.KeyProgress, "error", err)
	}
}

func indexOf(list []models.DailyProgress, date string) int {
	for i := range list {
		if list[i].Date == date {
			return i
		}
	}
	return -1
}

// carryOver builds a fresh record for date holding copies of the previous
// day's unfinished papers.
func carryOver(list []models.DailyProgress, date string) models.DailyProgress {
	rec := models.NewDailyProgress(date)

	yesterday, err := utils.AddDays(date, -1)
	if err != nil {
		return rec
	}
	i := indexOf(list, yesterday)
	if i < 0 {
		return rec
	}
	for _, p := range list[i].PastPapers {
		if p.Completed {
			continue
		}
		p.ID = CarriedOverID(p.ID, date)
		p.CarriedOver = true
		rec.PastPapers = append(rec.PastPapers, p)
	}
	return rec
}

// resolve finds or synthesizes the record for date within list. For today a
// missing record is carried over and appended (created=true); for any other
// date a transient default is returned and list is left alone.
func resolve(list []models.DailyProgress, date, today string) (out []models.DailyProgress, idx int, created bool) {
	if i := indexOf(list, date); i >= 0 {
		return list, i, false
	}
	if utils.SameDay(date, today) {
		list = append(list, carryOver(list, date))
		return list, len(list) - 1, true
	}
	list = append(list, models.NewDailyProgress(date))
	return list, len(list) - 1, false
}

// GetDailyProgress returns the record for date. The first read of today
// persists a record seeded with yesterday's unfinished papers; reads of other
// missing dates return an unsaved empty record.
func (s *Store) GetDailyProgress(date, today string) models.DailyProgress {
	list, writable := s.load()
	list, i, created := resolve(list, date, today)
	if created && writable {
		s.save(list)
	}
	return list[i].Clone()
}

// PastPapersForDate is GetDailyProgress narrowed to the paper list.
func (s *Store) PastPapersForDate(date, today string) []models.PastPaper {
	return s.GetDailyProgress(date, today).PastPapers
}

// setFlag applies a boolean change to date's record. It reports whether the
// stored value changed.
func (s *Store) setFlag(date, today string, completed bool, field func(*models.DailyProgress) *bool) bool {
	list, writable := s.load()
	if !writable {
		return false
	}
	list, i, created := resolve(list, date, today)

	flag := field(&list[i])
	if *flag == completed {
		if created {
			s.save(list)
		}
		return false
	}
	*flag = completed
	s.save(list)
	return true
}

// UpdateDailyStudyStatus sets the study goal flag for date. Marking today
// complete for the first time extends the streak.
func (s *Store) UpdateDailyStudyStatus(date string, completed bool, today string) {
	changed := s.setFlag(date, today, completed, func(d *models.DailyProgress) *bool { return &d.StudyCompleted })
	if changed && completed && utils.SameDay(date, today) {
		s.UpdateStreak(true, today)
	}
}

// UpdateFocusTaskStatus sets the focus task flag for date.
func (s *Store) UpdateFocusTaskStatus(date string, completed bool, today string) {
	s.setFlag(date, today, completed, func(d *models.DailyProgress) *bool { return &d.FocusTaskCompleted })
}

// UpdatePastPaperStatus replaces the paper with the same id on date, or
// appends it. A missing record is created without carry-over.
func (s *Store) UpdatePastPaperStatus(date string, paper models.PastPaper) {
	list, writable := s.load()
	if !writable {
		return
	}

	i := indexOf(list, date)
	if i < 0 {
		rec := models.NewDailyProgress(date)
		rec.PastPapers = append(rec.PastPapers, paper)
		s.save(append(list, rec))
		return
	}

	if j := list[i].PaperIndex(paper.ID); j >= 0 {
		list[i].PastPapers[j] = paper
	} else {
		list[i].PastPapers = append(list[i].PastPapers, paper)
	}
	s.save(list)
}

// RemovePastPaper drops the paper with id from date's record. It reports
// whether anything was removed.
func (s *Store) RemovePastPaper(date, id string) bool {
	list, writable := s.load()
	i := indexOf(list, date)
	if !writable || i < 0 {
		return false
	}
	j := list[i].PaperIndex(id)
	if j < 0 {
		return false
	}
	list[i].PastPapers = append(list[i].PastPapers[:j], list[i].PastPapers[j+1:]...)
	s.save(list)
	return true
}

// Streak returns the stored streak, 0 when absent or unreadable.
func (s *Store) Streak() int {
	return storage.GetInt(s.kv, constants.KeyStreak).OrWarn(0, constants.KeyStreak)
}

// SaveStreak overwrites the stored streak.
func (s *Store) SaveStreak(n int) {
	if err := storage.SetInt(s.kv, constants.KeyStreak, n); err != nil {
		logger.Warn("Failed to save streak", "key", constants.KeyStreak, "error", err)
	}
}

// LastStudyDate returns the date the streak was last extended. An empty
// stored value counts as never.
func (s *Store) LastStudyDate() (string, bool) {
	v := storage.GetString(s.kv, constants.KeyLastStudyDate).OrWarn("", constants.KeyLastStudyDate)
	return v, v != ""
}

func (s *Store) saveLastStudyDate(date string) {
	if err := s.kv.Set(constants.KeyLastStudyDate, date); err != nil {
		logger.Warn("Failed to save last study date", "key", constants.KeyLastStudyDate, "error", err)
	}
}

// UpdateStreak records a completion on today and returns the streak.
//
// The streak moves at most once per day: +1 after a one-day gap, back to 1
// after a longer gap, no prior date or an unparseable one. A last study date
// in the future leaves the count alone but still moves the marker to today.
func (s *Store) UpdateStreak(completedToday bool, today string) int {
	streak := s.Streak()
	if !completedToday {
		return streak
	}

	last, ok := s.LastStudyDate()
	if ok && last == today {
		return streak
	}

	if !ok {
		streak = 1
	} else {
		gap, err := utils.DaysBetween(last, today)
		switch {
		case err != nil:
			logger.Debug("Unparseable last study date, restarting streak", "last", last, "error", err)
			streak = 1
		case gap == 1:
			streak++
		case gap > 1:
			streak = 1
		}
	}

	s.saveLastStudyDate(today)
	s.SaveStreak(streak)
	return streak
}

// CheckAndResetStreak zeroes the streak when more than one day has passed
// since the last study date. A one-day gap is left for today to extend.
func (s *Store) CheckAndResetStreak(today string) int {
	last, ok := s.LastStudyDate()
	if !ok {
		return s.Streak()
	}

	gap, err := utils.DaysBetween(last, today)
	if err != nil || gap > 1 {
		s.SaveStreak(0)
		return 0
	}
	return s.Streak()
}
