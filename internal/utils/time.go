package utils

import (
	"time"

	"github.com/julianstephens/studydojo/internal/constants"
)

// LoadLocation resolves an IANA zone name. Empty and "Local" mean the system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateIn is the calendar day t falls on in loc. A nil loc means UTC.
func DateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(t.In(loc))
}

// ParseDate parses an ISO calendar date. The result is midnight UTC so that
// day arithmetic is never skewed by DST transitions.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(constants.DateFormat, date)
}

// FormatDate formats t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of whole calendar days from -> to.
// Negative when to is before from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// SameDay reports whether a and b name the same calendar day. Unparseable
// input is never the same day as anything.
func SameDay(a, b string) bool {
	ta, err := ParseDate(a)
	if err != nil {
		return false
	}
	tb, err := ParseDate(b)
	if err != nil {
		return false
	}
	return ta.Equal(tb)
}
