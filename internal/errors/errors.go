// Package errors turns a failed command into a terminal message and an exit status.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/studydojo/internal/logger"
)

// Exit statuses.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// exit is swapped in tests.
var exit = os.Exit

// UsageError is a failure caused by what the user typed, not by the system.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

// Usagef builds a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	var usage *UsageError
	if stderrors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}

// Message renders err for stderr.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Fatal logs and prints err, then exits. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err, "exit", ExitCode(err))
	fmt.Fprintln(os.Stderr, Message(err))
	exit(ExitCode(err))
}
