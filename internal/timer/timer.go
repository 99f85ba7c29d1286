// Package timer is the focus/break countdown behind the timer tab.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studydojo/internal/constants"
)

var (
	ErrRunning       = errors.New("timer is running")
	ErrDurationRange = fmt.Errorf("duration must be between %d and %d minutes", constants.MinTimerMinutes, constants.MaxTimerMinutes)
)

type Mode int

const (
	Focus Mode = iota
	Break
)

func (m Mode) String() string {
	if m == Break {
		return "break"
	}
	return "focus"
}

// Completion describes a session that ran to zero.
type Completion struct {
	Mode    Mode
	Minutes int
}

// Timer counts down one session at a time. It is driven by Tick and holds
// no goroutines of its own.
type Timer struct {
	mode      Mode
	minutes   [2]int
	remaining time.Duration
	running   bool
}

func validMinutes(m int) bool {
	return m >= constants.MinTimerMinutes && m <= constants.MaxTimerMinutes
}

// New returns a stopped focus timer.
func New(focusMinutes, breakMinutes int) (*Timer, error) {
	if !validMinutes(focusMinutes) || !validMinutes(breakMinutes) {
		return nil, ErrDurationRange
	}
	t := &Timer{minutes: [2]int{focusMinutes, breakMinutes}}
	t.remaining = t.Duration()
	return t, nil
}

// Default returns a timer with the standard 25/5 split.
func Default() *Timer {
	t, _ := New(constants.DefaultFocusMinutes, constants.DefaultBreakMinutes)
	return t
}

func (t *Timer) Mode() Mode { return t.mode }
func (t *Timer) Running() bool { return t.running }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Minutes(m Mode) int { return t.minutes[m] }
func (t *Timer) Duration() time.Duration { return time.Duration(t.minutes[t.mode]) * time.Minute }

// SetMinutes changes the length of the current mode. Only allowed while
// stopped; the countdown restarts at the new length.
func (t *Timer) SetMinutes(minutes int) error {
	if t.running {
		return ErrRunning
	}
	if !validMinutes(minutes) {
		return ErrDurationRange
	}
	t.minutes[t.mode] = minutes
	t.remaining = t.Duration()
	return nil
}

// Adjust nudges the current mode's length by delta minutes, clamped to the
// allowed range. It is a no-op while running.
func (t *Timer) Adjust(delta int) {
	if t.running {
		return
	}
	m := min(max(t.minutes[t.mode]+delta, constants.MinTimerMinutes), constants.MaxTimerMinutes)
	_ = t.SetMinutes(m)
}

// SetMode switches between focus and break while stopped.
func (t *Timer) SetMode(m Mode) error {
	if t.running {
		return ErrRunning
	}
	t.mode = m
	t.remaining = t.Duration()
	return nil
}

// Toggle starts or pauses the countdown and reports whether it is running.
func (t *Timer) Toggle() bool {
	if !t.running && t.remaining <= 0 {
		t.remaining = t.Duration()
	}
	t.running = !t.running
	return t.running
}

// Reset stops the timer and refills the current mode.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.Duration()
}

// Tick advances a running timer by d. When the countdown reaches zero the
// timer stops, flips to the other mode and reports the finished session.
func (t *Timer) Tick(d time.Duration) (Completion, bool) {
	if !t.running || d <= 0 {
		return Completion{}, false
	}
	t.remaining -= d
	if t.remaining > 0 {
		return Completion{}, false
	}

	done := Completion{Mode: t.mode, Minutes: t.minutes[t.mode]}
	t.running = false
	if t.mode == Focus {
		t.mode = Break
	} else {
		t.mode = Focus
	}
	t.remaining = t.Duration()
	return done, true
}

// Fraction is how much of the current session has elapsed, in [0, 1].
func (t *Timer) Fraction() float64 {
	total := t.Duration()
	if total <= 0 {
		return 0
	}
	return min(1, max(0, 1-float64(t.remaining)/float64(total)))
}

// Format renders the remaining time as MM:SS, or H:MM:SS from an hour up.
func (t *Timer) Format() string {
	return Format(t.remaining)
}

func Format(d time.Duration) string {
	secs := int(max(d, 0).Round(time.Second) / time.Second)
	h, m, s := secs/3600, secs%3600/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
