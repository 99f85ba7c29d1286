package studyplan

import (
	"strings"
	"testing"

	"github.com/julianstephens/studydojo/internal/models"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		plan  Plan
		types []ProblemType
	}{
		{
			name: "clean",
			plan: Plan{
				StartDate:      "2025-05-04",
				DailyStudyPlan: map[string]string{"2025-05-04": "Physics"},
				ExamSchedule: map[string][]models.ExamInfo{
					"Physics": {{Paper: "U4", Date: "2025-05-29", Time: "11:30 - 13:15", Code: "A"}},
				},
			},
		},
		{
			name:  "bad start date",
			plan:  Plan{StartDate: "05/04/2025"},
			types: []ProblemType{ProblemInvalidDate},
		},
		{
			name: "bad plan entries",
			plan: Plan{
				StartDate:      "2025-05-04",
				DailyStudyPlan: map[string]string{"tomorrow": "Maths", "2025-05-05": "  "},
			},
			types: []ProblemType{ProblemEmptyTask, ProblemInvalidDate},
		},
		{
			name:  "negative target",
			plan:  Plan{StartDate: "2025-05-04", DailyPastPapersTarget: -1},
			types: []ProblemType{ProblemNegativeTarget},
		},
		{
			name: "exam problems",
			plan: Plan{
				StartDate: "2025-05-04",
				ExamSchedule: map[string][]models.ExamInfo{
					"Mathematics": {{Paper: "P3", Date: "2025-13-01", Code: "X"}},
					"Physics":     {{Paper: "U4", Date: "2025-05-29", Time: "late morning", Code: "X"}},
				},
			},
			types: []ProblemType{ProblemInvalidDate, ProblemInvalidTimeRange, ProblemDuplicateExamCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(&tt.plan)
			if len(res.Problems) != len(tt.types) {
				t.Fatalf("got %d problems, want %d:\n%s", len(res.Problems), len(tt.types), res.FormatReport())
			}
			for i, want := range tt.types {
				if res.Problems[i].Type != want {
					t.Errorf("problem %d = %s, want %s", i, res.Problems[i].Type, want)
				}
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	var clean ValidationResult
	if got := clean.FormatReport(); got != "No problems detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	res := Validate(&Plan{StartDate: "nope"})
	if !strings.Contains(res.FormatReport(), `start_date "nope"`) {
		t.Errorf("report missing detail:\n%s", res.FormatReport())
	}
}
