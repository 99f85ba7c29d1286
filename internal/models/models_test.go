package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestThemeNextCycle(t *testing.T) {
	want := []Theme{ThemeNinja, ThemeShrine, ThemeDark, ThemeLight, ThemeDefault, ThemeSamurai}
	cur := ThemeSamurai
	for i, w := range want {
		cur = cur.Next()
		if cur != w {
			t.Fatalf("step %d: Next() = %q, want %q", i, cur, w)
		}
	}

	if got := Theme("neon").Next(); got != ThemeSamurai {
		t.Errorf("unknown theme Next() = %q, want %q", got, ThemeSamurai)
	}
}

func TestParseTheme(t *testing.T) {
	for _, th := range Themes() {
		got, err := ParseTheme(string(th))
		if err != nil || got != th {
			t.Errorf("ParseTheme(%q) = %q, %v", th, got, err)
		}
	}
	if _, err := ParseTheme("neon"); err == nil {
		t.Error("ParseTheme(neon) should fail")
	}
}

func TestDailyProgressJSONFieldNames(t *testing.T) {
	d := DailyProgress{
		Date: "2025-05-04",
		PastPapers: []PastPaper{
			{ID: "p1", Subject: "Physics", Title: "Unit 4", Completed: true},
			{ID: "p2-co-2025-05-04", Subject: "Maths", Title: "P3", CarriedOver: true},
		},
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	for _, field := range []string{`"date"`, `"studyCompleted"`, `"focusTaskCompleted"`, `"pastPapersCompleted"`, `"carriedOver":true`} {
		if !strings.Contains(s, field) {
			t.Errorf("encoded record %s missing %s", s, field)
		}
	}
	if strings.Count(s, `"carriedOver"`) != 1 {
		t.Errorf("carriedOver should be omitted on user papers: %s", s)
	}
}

func TestLegacyRecordWithoutFocusField(t *testing.T) {
	var d DailyProgress
	if err := json.Unmarshal([]byte(`{"date":"2025-05-04","studyCompleted":true,"pastPapersCompleted":[]}`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d.FocusTaskCompleted {
		t.Error("missing focusTaskCompleted must decode as false")
	}
}

func TestPaperHelpers(t *testing.T) {
	d := NewDailyProgress("2025-05-04")
	d.PastPapers = append(d.PastPapers, PastPaper{ID: "a", Completed: true}, PastPaper{ID: "b"})

	if d.PaperIndex("b") != 1 || d.PaperIndex("zzz") != -1 {
		t.Error("PaperIndex returned wrong positions")
	}
	if d.CompletedPapers() != 1 {
		t.Errorf("CompletedPapers() = %d, want 1", d.CompletedPapers())
	}

	c := d.Clone()
	c.PastPapers[0].Completed = false
	if !d.PastPapers[0].Completed {
		t.Error("Clone shares the paper slice with the original")
	}
}

func TestQuestFraction(t *testing.T) {
	tests := []struct {
		q    Quest
		want float64
	}{
		{Quest{CurrentProgress: 1, TotalRequired: 2}, 0.5},
		{Quest{CurrentProgress: 5, TotalRequired: 2}, 1},
		{Quest{CurrentProgress: 1, TotalRequired: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.q.Fraction(); got != tt.want {
			t.Errorf("Fraction(%+v) = %v, want %v", tt.q, got, tt.want)
		}
	}
}
