package progress

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/storage"
)

const (
	day1 = "2025-05-04"
	day2 = "2025-05-05"
	day3 = "2025-05-06"
	day5 = "2025-05-08"
)

func newStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return New(mem), mem
}

func seed(t *testing.T, mem *storage.Memory, records ...models.DailyProgress) {
	t.Helper()
	if err := storage.SetJSON(mem, constants.KeyProgress, records); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func stored(t *testing.T, mem *storage.Memory) []models.DailyProgress {
	t.Helper()
	list, err := storage.GetJSON[[]models.DailyProgress](mem, constants.KeyProgress).Unwrap()
	if err != nil {
		t.Fatalf("reading stored progress: %v", err)
	}
	return list
}

func TestGetDailyProgressIdempotent(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{
		Date:       day1,
		PastPapers: []models.PastPaper{{ID: "p2", Subject: "Physics", Title: "Unit 5"}},
	})

	for _, date := range []string{day1, day2, day3} {
		first := s.GetDailyProgress(date, day2)
		second := s.GetDailyProgress(date, day2)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("GetDailyProgress(%s) not idempotent (-first +second):\n%s", date, diff)
		}
	}

	if got := s.GetDailyProgress(day2, day2).PastPapers; len(got) != 1 {
		t.Errorf("carry-over duplicated: %d papers", len(got))
	}
	if n := len(stored(t, mem)); n != 2 {
		t.Errorf("stored %d records, want 2 (day1 + today only)", n)
	}
}

func TestCarryOverInvariant(t *testing.T) {
	s, mem := newStore(t)
	yesterday := models.DailyProgress{
		Date: day1,
		PastPapers: []models.PastPaper{
			{ID: "a", Subject: "Physics", Title: "Unit 4", Completed: true},
			{ID: "b", Subject: "Maths", Title: "P3"},
			{ID: "c", Subject: "Comp Sci", Title: "Paper 3"},
			{ID: "d", Subject: "Maths", Title: "D1", Completed: true},
		},
	}
	seed(t, mem, yesterday)

	got := s.GetDailyProgress(day2, day2)
	if len(got.PastPapers) != 2 {
		t.Fatalf("got %d papers, want 2", len(got.PastPapers))
	}
	yesterdayIDs := map[string]bool{"a": true, "b": true, "c": true, "d": true}
	for _, p := range got.PastPapers {
		if !p.CarriedOver || p.Completed {
			t.Errorf("paper %+v: want carriedOver=true completed=false", p)
		}
		if yesterdayIDs[p.ID] {
			t.Errorf("paper id %q reuses a previous-day id", p.ID)
		}
	}
	if got.StudyCompleted || got.FocusTaskCompleted {
		t.Error("fresh record should start with nothing completed")
	}

	// History is not rewritten.
	list := stored(t, mem)
	if diff := cmp.Diff(yesterday, list[0]); diff != "" {
		t.Errorf("previous day mutated (-want +got):\n%s", diff)
	}
}

func TestCarryOverScenario(t *testing.T) {
	s, _ := newStore(t)

	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p1", Subject: "Physics", Title: "Unit 4"})
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p2", Subject: "Maths", Title: "Pure 3"})
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p1", Subject: "Physics", Title: "Unit 4", Completed: true})

	got := s.GetDailyProgress(day2, day2).PastPapers
	want := []models.PastPaper{{ID: "p2-co-" + day2, Subject: "Maths", Title: "Pure 3", CarriedOver: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("carried papers mismatch (-want +got):\n%s", diff)
	}
}

func TestCarryOverOnlyForToday(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{Date: day1, PastPapers: []models.PastPaper{{ID: "x"}}})
	writes := mem.Writes

	got := s.GetDailyProgress(day2, day3)
	if len(got.PastPapers) != 0 {
		t.Errorf("non-today read carried papers: %+v", got.PastPapers)
	}
	if got.PastPapers == nil {
		t.Error("transient record should have an empty, non-nil paper list")
	}
	if mem.Writes != writes {
		t.Error("non-today read must not write")
	}
}

func TestCarryOverWithoutYesterday(t *testing.T) {
	s, mem := newStore(t)

	got := s.GetDailyProgress(day3, day3)
	if len(got.PastPapers) != 0 {
		t.Errorf("expected no papers, got %+v", got.PastPapers)
	}
	if n := len(stored(t, mem)); n != 1 {
		t.Errorf("today's record should be persisted, stored %d", n)
	}
}

func TestReturnedRecordIsACopy(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{Date: day1, PastPapers: []models.PastPaper{{ID: "p"}}})

	got := s.GetDailyProgress(day1, day1)
	got.PastPapers[0].Completed = true

	if s.GetDailyProgress(day1, day1).PastPapers[0].Completed {
		t.Error("mutating a returned record leaked into the store")
	}
}

func TestLegacyRecordDefaults(t *testing.T) {
	s, mem := newStore(t)
	_ = mem.Set(constants.KeyProgress, `[{"date":"2025-05-04","studyCompleted":true,"pastPapersCompleted":null}]`)

	got := s.GetDailyProgress(day1, day2)
	if got.FocusTaskCompleted {
		t.Error("missing focus flag should read false")
	}
	if got.PastPapers == nil {
		t.Error("null paper list should read as empty")
	}
	if !got.StudyCompleted {
		t.Error("stored study flag lost")
	}
}

func TestStudyStatusStartsStreak(t *testing.T) {
	s, mem := newStore(t)

	s.UpdateDailyStudyStatus(day1, true, day1)

	if got := s.Streak(); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
	if last, ok := s.LastStudyDate(); !ok || last != day1 {
		t.Errorf("last study date = %q, %v", last, ok)
	}
	if !s.GetDailyProgress(day1, day1).StudyCompleted {
		t.Error("study flag not stored")
	}
	if n := len(stored(t, mem)); n != 1 {
		t.Errorf("stored %d records, want 1", n)
	}
}

func TestStudyStatusNoOpWhenUnchanged(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{Date: day1, StudyCompleted: true, PastPapers: []models.PastPaper{}})
	writes := mem.Writes

	s.UpdateDailyStudyStatus(day1, true, day1)

	if mem.Writes != writes {
		t.Errorf("unchanged value wrote %d times", mem.Writes-writes)
	}
	if s.Streak() != 0 {
		t.Error("unchanged value must not trigger the streak")
	}
}

func TestStudyStatusPastDateDoesNotTouchStreak(t *testing.T) {
	s, _ := newStore(t)

	s.UpdateDailyStudyStatus(day1, true, day3)

	if s.Streak() != 0 {
		t.Errorf("streak = %d after completing a past day", s.Streak())
	}
	if !s.GetDailyProgress(day1, day3).StudyCompleted {
		t.Error("past day should still be recorded")
	}
}

func TestStudyStatusMissingPastDateUnchanged(t *testing.T) {
	s, mem := newStore(t)

	s.UpdateDailyStudyStatus(day1, false, day3)
	s.UpdateFocusTaskStatus(day1, false, day3)

	if mem.Writes != 0 {
		t.Errorf("clearing an absent past record wrote %d times", mem.Writes)
	}
}

func TestStatusUpdateOnMissingTodayCarriesOver(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{Date: day1, PastPapers: []models.PastPaper{{ID: "q", Title: "S1"}}})

	s.UpdateFocusTaskStatus(day2, true, day2)

	got := s.GetDailyProgress(day2, day2)
	if !got.FocusTaskCompleted {
		t.Error("focus flag not stored")
	}
	if len(got.PastPapers) != 1 || got.PastPapers[0].ID != "q-co-"+day2 {
		t.Errorf("create-through-update skipped carry-over: %+v", got.PastPapers)
	}
	if s.Streak() != 0 {
		t.Error("focus task must not affect the streak")
	}
}

func TestStudyStatusUncheckKeepsStreak(t *testing.T) {
	s, _ := newStore(t)
	s.UpdateDailyStudyStatus(day1, true, day1)
	s.UpdateDailyStudyStatus(day1, false, day1)
	s.UpdateDailyStudyStatus(day1, true, day1)

	if got := s.Streak(); got != 1 {
		t.Errorf("streak = %d, want 1 after toggling within one day", got)
	}
}

func TestUpdatePastPaperUpsert(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{Date: day1, PastPapers: []models.PastPaper{{ID: "y", Title: "old"}}})

	// A missing date is created without carry-over even when it is "today".
	s.UpdatePastPaperStatus(day2, models.PastPaper{ID: "n", Title: "new"})
	got := s.GetDailyProgress(day2, day2).PastPapers
	if len(got) != 1 || got[0].ID != "n" {
		t.Errorf("papers = %+v, want only the inserted one", got)
	}

	s.UpdatePastPaperStatus(day2, models.PastPaper{ID: "m", Title: "second"})
	s.UpdatePastPaperStatus(day2, models.PastPaper{ID: "n", Title: "new", Completed: true})

	got = s.GetDailyProgress(day2, day2).PastPapers
	want := []models.PastPaper{
		{ID: "n", Title: "new", Completed: true},
		{ID: "m", Title: "second"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("upsert mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovePastPaper(t *testing.T) {
	s, _ := newStore(t)
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "a"})
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "b"})

	if !s.RemovePastPaper(day1, "a") {
		t.Fatal("RemovePastPaper(a) = false")
	}
	if s.RemovePastPaper(day1, "a") || s.RemovePastPaper(day2, "b") {
		t.Error("removing an absent paper should report false")
	}
	got := s.PastPapersForDate(day1, day3)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("papers = %+v", got)
	}
}

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name       string
		streak     *string
		last       *string
		completed  bool
		today      string
		want       int
		wantLast   string
		wantStored string
	}{
		{name: "not completed", streak: str("4"), last: str(day1), completed: false, today: day2, want: 4, wantLast: day1, wantStored: "4"},
		{name: "first ever", completed: true, today: day1, want: 1, wantLast: day1, wantStored: "1"},
		{name: "consecutive day", streak: str("4"), last: str(day1), completed: true, today: day2, want: 5, wantLast: day2, wantStored: "5"},
		{name: "already today", streak: str("4"), last: str(day2), completed: true, today: day2, want: 4, wantLast: day2, wantStored: "4"},
		{name: "gap resets to one", streak: str("9"), last: str(day1), completed: true, today: "2025-05-07", want: 1, wantLast: "2025-05-07", wantStored: "1"},
		{name: "unparseable last date", streak: str("9"), last: str("yesterday-ish"), completed: true, today: day2, want: 1, wantLast: day2, wantStored: "1"},
		{name: "empty last date counts as none", streak: str("9"), last: str(""), completed: true, today: day2, want: 1, wantLast: day2, wantStored: "1"},
		{name: "future last date keeps count", streak: str("3"), last: str(day3), completed: true, today: day1, want: 3, wantLast: day1, wantStored: "3"},
		{name: "garbage streak", streak: str("lots"), last: str(day1), completed: true, today: day2, want: 1, wantLast: day2, wantStored: "1"},
		{name: "month boundary", streak: str("2"), last: str("2025-04-30"), completed: true, today: "2025-05-01", want: 3, wantLast: "2025-05-01", wantStored: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := newStore(t)
			if tt.streak != nil {
				_ = mem.Set(constants.KeyStreak, *tt.streak)
			}
			if tt.last != nil {
				_ = mem.Set(constants.KeyLastStudyDate, *tt.last)
			}

			if got := s.UpdateStreak(tt.completed, tt.today); got != tt.want {
				t.Errorf("UpdateStreak() = %d, want %d", got, tt.want)
			}
			if v, _, _ := mem.Get(constants.KeyLastStudyDate); v != tt.wantLast {
				t.Errorf("last study date = %q, want %q", v, tt.wantLast)
			}
			if v, _, _ := mem.Get(constants.KeyStreak); v != tt.wantStored && !(tt.streak == nil && !tt.completed) {
				t.Errorf("stored streak = %q, want %q", v, tt.wantStored)
			}
		})
	}
}

func TestUpdateStreakOncePerDay(t *testing.T) {
	s, mem := newStore(t)
	_ = mem.Set(constants.KeyStreak, "6")
	_ = mem.Set(constants.KeyLastStudyDate, day1)

	for i := 0; i < 5; i++ {
		if got := s.UpdateStreak(true, day2); got != 7 {
			t.Fatalf("call %d: streak = %d, want 7", i, got)
		}
	}
}

func TestCheckAndResetStreak(t *testing.T) {
	tests := []struct {
		name       string
		last       *string
		today      string
		want       int
		wantStored string
	}{
		{name: "no last date", today: day2, want: 5, wantStored: "5"},
		{name: "studied today", last: str(day2), today: day2, want: 5, wantStored: "5"},
		{name: "studied yesterday", last: str(day1), today: day2, want: 5, wantStored: "5"},
		{name: "two days ago", last: str(day1), today: day3, want: 0, wantStored: "0"},
		{name: "long ago", last: str("2024-12-25"), today: day5, want: 0, wantStored: "0"},
		{name: "unparseable", last: str("not-a-date"), today: day2, want: 0, wantStored: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := newStore(t)
			_ = mem.Set(constants.KeyStreak, "5")
			if tt.last != nil {
				_ = mem.Set(constants.KeyLastStudyDate, *tt.last)
			}

			if got := s.CheckAndResetStreak(tt.today); got != tt.want {
				t.Errorf("CheckAndResetStreak() = %d, want %d", got, tt.want)
			}
			if v, _, _ := mem.Get(constants.KeyStreak); v != tt.wantStored {
				t.Errorf("stored streak = %q, want %q", v, tt.wantStored)
			}
		})
	}
}

func TestYesterdayGraceThenExtend(t *testing.T) {
	s, mem := newStore(t)
	_ = mem.Set(constants.KeyStreak, "2")
	_ = mem.Set(constants.KeyLastStudyDate, day1)

	if got := s.CheckAndResetStreak(day2); got != 2 {
		t.Fatalf("session start = %d, want 2", got)
	}
	s.UpdateDailyStudyStatus(day2, true, day2)
	if got := s.Streak(); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestStorageUnavailable(t *testing.T) {
	s, mem := newStore(t)
	seed(t, mem, models.DailyProgress{Date: day1, StudyCompleted: true, PastPapers: []models.PastPaper{{ID: "keep"}}})
	_ = mem.Set(constants.KeyStreak, "3")
	before := mem.Writes

	mem.FailReads = true
	got := s.GetDailyProgress(day1, day1)
	if got.Date != day1 || got.StudyCompleted || len(got.PastPapers) != 0 {
		t.Errorf("unreadable store should yield a default record, got %+v", got)
	}
	s.UpdateDailyStudyStatus(day2, true, day2)
	s.UpdatePastPaperStatus(day2, models.PastPaper{ID: "lost"})
	if s.Streak() != 0 {
		t.Error("unreadable streak should read 0")
	}
	if mem.Writes != before {
		t.Error("writes issued while reads were failing could clobber history")
	}

	mem.FailReads = false
	if list := stored(t, mem); len(list) != 1 || list[0].PastPapers[0].ID != "keep" {
		t.Errorf("history changed: %+v", list)
	}
}

func TestWritesFailingIsSilent(t *testing.T) {
	s, mem := newStore(t)
	mem.FailWrites = true

	s.UpdateDailyStudyStatus(day1, true, day1)
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p"})
	got := s.GetDailyProgress(day1, day1)

	if got.StudyCompleted || len(got.PastPapers) != 0 {
		t.Errorf("nothing should persist, got %+v", got)
	}
	if s.UpdateStreak(true, day1) != 1 {
		t.Error("UpdateStreak should still report the computed value")
	}
}

func TestMalformedProgressIsFreshInstall(t *testing.T) {
	s, mem := newStore(t)
	_ = mem.Set(constants.KeyProgress, "{{{")

	if got := s.GetDailyProgress(day1, day2); len(got.PastPapers) != 0 {
		t.Errorf("malformed store returned papers: %+v", got)
	}

	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p"})
	list := stored(t, mem)
	if len(list) != 1 || list[0].Date != day1 {
		t.Errorf("store not rebuilt: %+v", list)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	s, mem := newStore(t)
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p1", Subject: "Physics", Title: "Unit 4", Completed: true})
	s.UpdatePastPaperStatus(day1, models.PastPaper{ID: "p2", Subject: "Maths", Title: "P4"})
	s.UpdateDailyStudyStatus(day1, true, day1)
	s.UpdateFocusTaskStatus(day2, true, day2)

	want, err := s.Progress().Unwrap()
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}

	raw, _, _ := mem.Get(constants.KeyProgress)
	var decoded []models.DailyProgress
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("stored value is not JSON: %v", err)
	}
	reencoded, _ := json.Marshal(decoded)

	reloaded := storage.NewMemory()
	_ = reloaded.Set(constants.KeyProgress, string(reencoded))
	got, err := New(reloaded).Progress().Unwrap()
	if err != nil {
		t.Fatalf("reloaded Progress() failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func str(s string) *string { return &s }
