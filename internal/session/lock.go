// Package session tracks which process has the TUI open on a store.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	nowFunc         = time.Now
)

var ErrMalformedLock = errors.New("lockfile is malformed")

// Holder is the process recorded in a lockfile.
type Holder struct {
	PID     int
	Started time.Time
}

func (h Holder) String() string {
	return fmt.Sprintf("pid %d since %s", h.PID, h.Started.Local().Format("2006-01-02 15:04"))
}

// Lock is this process's claim on a store directory.
type Lock struct {
	path string
	pid  int
}

// LockPath is where the lockfile for a config directory lives.
func LockPath(dir string) string {
	return filepath.Join(dir, constants.SessionLockfileName)
}

// ReadHolder parses a "pid|started" lockfile.
func ReadHolder(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, ErrMalformedLock
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, fmt.Errorf("%w: invalid process ID %q", ErrMalformedLock, parts[0])
	}
	started, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Holder{}, fmt.Errorf("%w: invalid start time %q", ErrMalformedLock, parts[1])
	}
	return Holder{PID: pid, Started: started}, nil
}

// alive reports whether pid is a running studydojo process.
func alive(pid int) bool {
	p, err := findProcessFunc(pid)
	if err != nil || p == nil {
		return false
	}
	return strings.HasPrefix(p.Executable(), constants.AppName)
}

// Acquire records this process in dir's lockfile. When another live session
// already holds it, that holder is returned alongside the lock: both
// sessions keep running and the last write to a key wins. Stale or
// malformed lockfiles are replaced.
func Acquire(dir string) (*Lock, *Holder, error) {
	path := LockPath(dir)
	pid := getpidFunc()

	var other *Holder
	switch h, err := ReadHolder(path); {
	case err == nil && h.PID != pid && alive(h.PID):
		other = &h
		logger.Warn("Another session is open on this store", "holder", h.String())
	case err == nil && h.PID != pid:
		logger.Debug("Replacing stale session lock", "pid", h.PID)
	case errors.Is(err, ErrMalformedLock):
		logger.Debug("Replacing malformed session lock", "path", path, "error", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	content := fmt.Sprintf("%d|%s\n", pid, nowFunc().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, nil, fmt.Errorf("failed to write session lock: %w", err)
	}
	return &Lock{path: path, pid: pid}, other, nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	h, err := ReadHolder(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil && h.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session lock: %w", err)
	}
	return nil
}
