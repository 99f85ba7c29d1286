package models

// PastPaper is one practice paper logged against a day.
type PastPaper struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	// CarriedOver is only ever set on copies synthesized from the previous day.
	CarriedOver bool `json:"carriedOver,omitempty"`
}

// DailyProgress is the completion record for one calendar date.
type DailyProgress struct {
	Date               string      `json:"date"`
	StudyCompleted     bool        `json:"studyCompleted"`
	FocusTaskCompleted bool        `json:"focusTaskCompleted"`
	PastPapers         []PastPaper `json:"pastPapersCompleted"`
}

// NewDailyProgress returns an empty record for date.
func NewDailyProgress(date string) DailyProgress {
	return DailyProgress{
		Date:       date,
		PastPapers: []PastPaper{},
	}
}

// PaperIndex returns the position of the paper with id, or -1.
func (d DailyProgress) PaperIndex(id string) int {
	for i, p := range d.PastPapers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CompletedPapers counts papers marked completed.
func (d DailyProgress) CompletedPapers() int {
	n := 0
	for _, p := range d.PastPapers {
		if p.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers can mutate without touching the store's slice.
func (d DailyProgress) Clone() DailyProgress {
	c := d
	c.PastPapers = make([]PastPaper, len(d.PastPapers))
	copy(c.PastPapers, d.PastPapers)
	return c
}
