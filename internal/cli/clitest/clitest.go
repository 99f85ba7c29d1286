// Package clitest builds command contexts over a throwaway SQLite store.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/storage/sqlite"
)

// Today is the date every Context built here treats as today. It is a Monday.
const Today = "2025-05-05"

// Env is a command context plus its captured output.
type Env struct {
	*cli.Context
	Buf   *bytes.Buffer
	Clock time.Time
}

// New initializes a store under t.TempDir and wires a Context over it with a
// fixed clock and captured output.
func New(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "studydojo.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &Env{
		Buf:   &bytes.Buffer{},
		Clock: time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC),
	}
	ctx := cli.NewContext(store, dir, time.UTC)
	ctx.Out = env.Buf
	ctx.In = strings.NewReader("")
	ctx.Now = func() time.Time { return env.Clock }
	env.Context = ctx
	return env
}

// Input replaces what the commands read from stdin.
func (e *Env) Input(s string) {
	e.In = strings.NewReader(s)
}

// Output returns and clears everything written so far.
func (e *Env) Output() string {
	out := e.Buf.String()
	e.Buf.Reset()
	return out
}
