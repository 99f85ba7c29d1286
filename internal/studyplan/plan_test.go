package studyplan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/studydojo/internal/models"
)

const samplePlan = `
start_date: "2025-05-04"
daily_past_papers_target: 2
daily_study_plan:
  "2025-05-04": Physics Unit 4
  "2025-05-05": Maths D1
exam_schedule:
  Physics:
    - paper: Physics Unit 4
      date: "2025-05-29"
      time: "11:30 - 13:15"
      code: WPH14 01
  Mathematics:
    - paper: "Maths D1: Decision 1"
      date: "2025-05-15"
      time: "11:30 - 13:00"
      code: WDM11 01
    - paper: "Maths P3: Pure 3"
      date: "2025-05-10"
      time: "09:00 - 10:30"
      code: WMA13 01
`

func mustParse(t *testing.T, data string) *Plan {
	t.Helper()
	p, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return p
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("start_date: \"2025-05-04\"\nbogus: 1\n")); err == nil {
		t.Fatal("Parse should reject unknown fields")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(samplePlan), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if task, ok := p.FocusTask("2025-05-05"); !ok || task != "Maths D1" {
		t.Errorf("FocusTask = %q, %v", task, ok)
	}
	if _, ok := p.FocusTask("2025-05-06"); ok {
		t.Error("FocusTask should miss unplanned days")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestDefaultRebasesToToday(t *testing.T) {
	p, err := Default("2026-01-01")
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if p.StartDate != "2026-01-01" {
		t.Errorf("StartDate = %q", p.StartDate)
	}
	if len(p.DailyStudyPlan) != 14 {
		t.Errorf("expected 14 planned days, got %d", len(p.DailyStudyPlan))
	}

	tests := map[string]string{
		"2026-01-01": "Physics Unit 4",
		"2026-01-08": "Maths S1",
		"2026-01-09": "Review Comp Sci - Day 9",
		"2026-01-14": "Review Maths - Day 14",
	}
	for date, want := range tests {
		if got, _ := p.FocusTask(date); got != want {
			t.Errorf("FocusTask(%s) = %q, want %q", date, got, want)
		}
	}
	if _, ok := p.FocusTask("2026-01-15"); ok {
		t.Error("plan should end after the horizon")
	}
	if p.PapersTarget() != 4 {
		t.Errorf("PapersTarget() = %d, want 4", p.PapersTarget())
	}
	if res := Validate(p); res.HasProblems() {
		t.Errorf("default plan has problems:\n%s", res.FormatReport())
	}
}

func TestRebaseInvalidDate(t *testing.T) {
	p := mustParse(t, samplePlan)
	if _, err := p.Rebase("not-a-date", 7); err == nil {
		t.Error("Rebase should reject an invalid today")
	}
}

func TestPapersTargetDefault(t *testing.T) {
	if got := (&Plan{}).PapersTarget(); got != 4 {
		t.Errorf("PapersTarget() = %d, want 4", got)
	}
	if got := mustParse(t, samplePlan).PapersTarget(); got != 2 {
		t.Errorf("PapersTarget() = %d, want 2", got)
	}
}

func TestUpcomingExams(t *testing.T) {
	p := mustParse(t, samplePlan)

	got := p.UpcomingExams("2025-05-10", "")
	var summary []string
	for _, e := range got {
		summary = append(summary, e.Code+"/"+e.Subject)
	}
	want := []string{"WMA13 01/Mathematics", "WDM11 01/Mathematics", "WPH14 01/Physics"}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("UpcomingExams order (-want +got):\n%s", diff)
	}
	if got[0].DaysLeft != 0 || got[2].DaysLeft != 19 {
		t.Errorf("DaysLeft = %d, %d", got[0].DaysLeft, got[2].DaysLeft)
	}

	if got := p.UpcomingExams("2025-05-11", "Mathematics"); len(got) != 1 || got[0].Code != "WDM11 01" {
		t.Errorf("UpcomingExams(Mathematics) = %+v", got)
	}
	if got := p.UpcomingExams("2025-06-01", ""); len(got) != 0 {
		t.Errorf("expected no exams after the period, got %+v", got)
	}
}

func TestNextExam(t *testing.T) {
	p := mustParse(t, samplePlan)
	next, ok := p.NextExam("2025-05-11")
	if !ok || next.Paper != "Maths D1: Decision 1" || next.DaysLeft != 4 {
		t.Errorf("NextExam = %+v, %v", next, ok)
	}
	if _, ok := p.NextExam("2025-07-01"); ok {
		t.Error("NextExam should report none after the last exam")
	}
}

func TestExamPeriod(t *testing.T) {
	p := mustParse(t, samplePlan)

	tests := []struct {
		today      string
		wantPassed int
		wantFrac   float64
	}{
		{"2025-05-01", 0, 0},
		{"2025-05-10", 0, 0},
		{"2025-05-20", 10, float64(10) / 19},
		{"2025-06-30", 51, 1},
	}
	for _, tt := range tests {
		total, passed, ok := p.ExamPeriod(tt.today)
		if !ok || total != 19 || passed != tt.wantPassed {
			t.Errorf("ExamPeriod(%s) = %d, %d, %v", tt.today, total, passed, ok)
		}
		if got := p.Fraction(tt.today); got != tt.wantFrac {
			t.Errorf("Fraction(%s) = %v, want %v", tt.today, got, tt.wantFrac)
		}
	}

	if _, _, ok := (&Plan{}).ExamPeriod("2025-05-10"); ok {
		t.Error("empty schedule should report no exam period")
	}
}

func TestFractionSingleDay(t *testing.T) {
	p := &Plan{ExamSchedule: map[string][]models.ExamInfo{"Physics": {{Date: "2025-05-10"}}}}
	if got := p.Fraction("2025-05-09"); got != 0 {
		t.Errorf("Fraction before = %v", got)
	}
	if got := p.Fraction("2025-05-10"); got != 1 {
		t.Errorf("Fraction on the day = %v", got)
	}
}

func TestUrgencyOf(t *testing.T) {
	tests := []struct {
		days int
		want models.Urgency
	}{
		{0, models.UrgencyUrgent},
		{7, models.UrgencyUrgent},
		{8, models.UrgencyApproaching},
		{14, models.UrgencyApproaching},
		{15, models.UrgencyRelaxed},
	}
	for _, tt := range tests {
		if got := UrgencyOf(tt.days); got != tt.want {
			t.Errorf("UrgencyOf(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestSubjectsSorted(t *testing.T) {
	got := strings.Join(mustParse(t, samplePlan).Subjects(), ",")
	if got != "Mathematics,Physics" {
		t.Errorf("Subjects() = %s", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plan.yaml")
	want, err := Default("2026-03-02")
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("plan changed across Save/Load (-want +got):\n%s", diff)
	}
}
