package models

// ExamInfo is one scheduled exam paper.
type ExamInfo struct {
	Paper string `yaml:"paper" json:"paper"`
	Date  string `yaml:"date" json:"date"`
	Time  string `yaml:"time" json:"time"`
	Code  string `yaml:"code" json:"code"`
}

// UpcomingExam is an exam resolved against a reference date.
type UpcomingExam struct {
	ExamInfo
	Subject  string
	DaysLeft int
}

// Urgency buckets an exam by how close it is.
type Urgency int

const (
	UrgencyRelaxed Urgency = iota
	UrgencyApproaching
	UrgencyUrgent
)
