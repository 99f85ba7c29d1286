package studyplan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/julianstephens/studydojo/internal/utils"
)

// ProblemType classifies a plan validation finding.
type ProblemType string

const (
	ProblemInvalidDate       ProblemType = "invalid_date"
	ProblemInvalidTimeRange  ProblemType = "invalid_time_range"
	ProblemDuplicateExamCode ProblemType = "duplicate_exam_code"
	ProblemEmptyTask         ProblemType = "empty_task"
	ProblemNegativeTarget    ProblemType = "negative_target"
)

// Problem is one finding in a plan.
type Problem struct {
	Type        ProblemType
	Description string
	Date        string
}

// ValidationResult holds every finding for a plan.
type ValidationResult struct {
	Problems []Problem
}

func (vr *ValidationResult) HasProblems() bool {
	return len(vr.Problems) > 0
}

// FormatReport renders the findings one per line.
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasProblems() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, p := range vr.Problems {
		fmt.Fprintf(&b, "- %s\n", p.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ProblemType, date, format string, args ...any) {
	vr.Problems = append(vr.Problems, Problem{Type: t, Date: date, Description: fmt.Sprintf(format, args...)})
}

// "HH:MM - HH:MM"
var timeRangePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d\s*-\s*([01]\d|2[0-3]):[0-5]\d$`)

// Validate checks dates, exam times and codes. Findings are ordered by
// subject then exam so reports are stable.
func Validate(p *Plan) ValidationResult {
	result := ValidationResult{Problems: []Problem{}}

	if _, err := utils.ParseDate(p.StartDate); err != nil {
		result.add(ProblemInvalidDate, p.StartDate, "start_date %q is not a YYYY-MM-DD date", p.StartDate)
	}
	if p.DailyPastPapersTarget < 0 {
		result.add(ProblemNegativeTarget, "", "daily_past_papers_target must not be negative (got %d)", p.DailyPastPapersTarget)
	}

	dates := make([]string, 0, len(p.DailyStudyPlan))
	for d := range p.DailyStudyPlan {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		if _, err := utils.ParseDate(d); err != nil {
			result.add(ProblemInvalidDate, d, "daily_study_plan has invalid date %q", d)
		}
		if strings.TrimSpace(p.DailyStudyPlan[d]) == "" {
			result.add(ProblemEmptyTask, d, "daily_study_plan has an empty task on %s", d)
		}
	}

	codes := make(map[string]string)
	for _, subject := range p.Subjects() {
		for _, exam := range p.ExamSchedule[subject] {
			if _, err := utils.ParseDate(exam.Date); err != nil {
				result.add(ProblemInvalidDate, exam.Date, "%s exam %q has invalid date %q", subject, exam.Paper, exam.Date)
			}
			if exam.Time != "" && !timeRangePattern.MatchString(exam.Time) {
				result.add(ProblemInvalidTimeRange, exam.Date, "%s exam %q has invalid time %q (expected HH:MM - HH:MM)", subject, exam.Paper, exam.Time)
			}
			if exam.Code == "" {
				continue
			}
			if prev, dup := codes[exam.Code]; dup {
				result.add(ProblemDuplicateExamCode, exam.Date, "exam code %q is used by both %q and %q", exam.Code, prev, exam.Paper)
				continue
			}
			codes[exam.Code] = exam.Paper
		}
	}

	return result
}
