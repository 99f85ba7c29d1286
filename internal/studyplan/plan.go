// Package studyplan loads the study schedule and answers date questions
// about it: today's focus task, upcoming exams and the exam period.
package studyplan

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/models"
	"github.com/julianstephens/studydojo/internal/utils"
)

//go:embed default.yaml
var defaultYAML []byte

// reviewSubjects rotate through days the template does not cover.
var reviewSubjects = []string{"Physics", "Maths", "Comp Sci"}

// Plan is the user's study schedule.
type Plan struct {
	StartDate             string                       `yaml:"start_date"`
	DailyStudyPlan        map[string]string            `yaml:"daily_study_plan"`
	DailyPastPapersTarget int                          `yaml:"daily_past_papers_target"`
	ExamSchedule          map[string][]models.ExamInfo `yaml:"exam_schedule"`
}

// Parse decodes a YAML plan. Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse study plan: %w", err)
	}
	if p.DailyStudyPlan == nil {
		p.DailyStudyPlan = map[string]string{}
	}
	return &p, nil
}

// Load reads a plan from path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read study plan: %w", err)
	}
	return Parse(data)
}

// Save writes p to path as YAML, creating the parent directory.
func (p *Plan) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode study plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write study plan: %w", err)
	}
	return nil
}

// Default returns the built-in plan with its daily tasks shifted to start on
// today, covering constants.DefaultPlanHorizon days.
func Default(today string) (*Plan, error) {
	tmpl, err := Parse(defaultYAML)
	if err != nil {
		return nil, err
	}
	return tmpl.Rebase(today, constants.DefaultPlanHorizon)
}

// Rebase maps day i of the plan onto today+i for the given number of days.
// Days with no task at the same offset get a rotating review task. Exams
// keep their dates.
func (p *Plan) Rebase(today string, days int) (*Plan, error) {
	if _, err := utils.ParseDate(today); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", today, err)
	}
	if _, err := utils.ParseDate(p.StartDate); err != nil {
		return nil, fmt.Errorf("invalid plan start_date %q: %w", p.StartDate, err)
	}

	out := &Plan{
		StartDate:             today,
		DailyStudyPlan:        make(map[string]string, days),
		DailyPastPapersTarget: p.DailyPastPapersTarget,
		ExamSchedule:          p.ExamSchedule,
	}
	for i := 0; i < days; i++ {
		target, _ := utils.AddDays(today, i)
		source, _ := utils.AddDays(p.StartDate, i)
		if task, ok := p.DailyStudyPlan[source]; ok {
			out.DailyStudyPlan[target] = task
			continue
		}
		out.DailyStudyPlan[target] = fmt.Sprintf("Review %s - Day %d", reviewSubjects[i%len(reviewSubjects)], i+1)
	}
	return out, nil
}

// FocusTask returns the planned task for date.
func (p *Plan) FocusTask(date string) (string, bool) {
	task, ok := p.DailyStudyPlan[date]
	return task, ok && task != ""
}

// PapersTarget is the daily past-paper goal, defaulting when unset.
func (p *Plan) PapersTarget() int {
	if p.DailyPastPapersTarget <= 0 {
		return constants.DefaultPapersTarget
	}
	return p.DailyPastPapersTarget
}

// Subjects lists the exam subjects in name order.
func (p *Plan) Subjects() []string {
	subjects := make([]string, 0, len(p.ExamSchedule))
	for s := range p.ExamSchedule {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// UpcomingExams lists exams on or after today, soonest first. An empty
// subject means every subject. Exams with unparseable dates are skipped.
func (p *Plan) UpcomingExams(today, subject string) []models.UpcomingExam {
	var out []models.UpcomingExam
	for _, s := range p.Subjects() {
		if subject != "" && s != subject {
			continue
		}
		for _, exam := range p.ExamSchedule[s] {
			days, err := utils.DaysBetween(today, exam.Date)
			if err != nil || days < 0 {
				continue
			}
			out = append(out, models.UpcomingExam{ExamInfo: exam, Subject: s, DaysLeft: days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out
}

// NextExam returns the soonest upcoming exam.
func (p *Plan) NextExam(today string) (models.UpcomingExam, bool) {
	exams := p.UpcomingExams(today, "")
	if len(exams) == 0 {
		return models.UpcomingExam{}, false
	}
	return exams[0], true
}

func (p *Plan) examBounds() (first, last string, ok bool) {
	for _, exams := range p.ExamSchedule {
		for _, exam := range exams {
			if _, err := utils.ParseDate(exam.Date); err != nil {
				continue
			}
			if first == "" || exam.Date < first {
				first = exam.Date
			}
			if last == "" || exam.Date > last {
				last = exam.Date
			}
		}
	}
	return first, last, first != ""
}

// ExamPeriod spans the first to the last exam. Both values are clamped at
// zero; ok is false when no exam date parses.
func (p *Plan) ExamPeriod(today string) (total, passed int, ok bool) {
	first, last, ok := p.examBounds()
	if !ok {
		return 0, 0, false
	}
	total, _ = utils.DaysBetween(first, last)
	passed, err := utils.DaysBetween(first, today)
	if err != nil {
		passed = 0
	}
	return max(total, 0), max(passed, 0), true
}

// Fraction is how far through the exam period today is, in [0, 1]. A
// single-day period counts as done from that day on.
func (p *Plan) Fraction(today string) float64 {
	first, last, ok := p.examBounds()
	if !ok {
		return 0
	}
	total, _ := utils.DaysBetween(first, last)
	elapsed, err := utils.DaysBetween(first, today)
	if err != nil {
		return 0
	}
	if total <= 0 {
		if elapsed >= 0 {
			return 1
		}
		return 0
	}
	return max(0, min(1, float64(elapsed)/float64(total)))
}

// UrgencyOf buckets days left: a week or less is urgent, two weeks or less
// is approaching.
func UrgencyOf(daysLeft int) models.Urgency {
	switch {
	case daysLeft <= constants.ExamUrgentDays:
		return models.UrgencyUrgent
	case daysLeft <= constants.ExamApproachingDays:
		return models.UrgencyApproaching
	default:
		return models.UrgencyRelaxed
	}
}
