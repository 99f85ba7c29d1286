package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: stderrors.New("storage not initialized"), want: "Error: storage not initialized"},
		{name: "wrapped", err: fmt.Errorf("failed to open database: %w", stderrors.New("permission denied")), want: "Error: failed to open database: permission denied"},
		{name: "usage", err: Usagef("unknown theme %q", "neon"), want: `Error: unknown theme "neon"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: stderrors.New("redis: connection refused"), want: ExitFailure},
		{name: "usage", err: Usagef("invalid date %q", "2025-13-01"), want: ExitUsage},
		{name: "wrapped usage", err: fmt.Errorf("paper done: %w", Usagef("paper not found")), want: ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFatal(t *testing.T) {
	code := -1
	old := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = old })

	Fatal(nil)
	if code != -1 {
		t.Fatalf("Fatal(nil) exited with %d", code)
	}

	Fatal(Usagef("minutes must be between %d and %d", 1, 240))
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}

	Fatal(stderrors.New("boom"))
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
}
