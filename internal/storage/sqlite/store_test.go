package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/studydojo/internal/migration"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/storage/storagetest"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "nested", "studydojo.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storagetest.RunContract(t, setupStore(t))
}

func TestLoadUninitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() = %v, want ErrNotInitialized", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	s := setupStore(t)
	if err := s.Set("study_streak", "4"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(s.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("study_streak")
	if err != nil || !ok || v != "4" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	s := setupStore(t)
	_ = s.Set("app_theme", "ninja")

	if err := s.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if v, _, _ := s.Get("app_theme"); v != "ninja" {
		t.Errorf("Init clobbered data: %q", v)
	}
	if n, err := s.PendingMigrations(); err != nil || n != 0 {
		t.Errorf("PendingMigrations() = %d, %v", n, err)
	}
}

func TestLoadRefusesNewerSchema(t *testing.T) {
	s := setupStore(t)
	if _, err := s.DB().Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(s.GetConfigPath())
	defer reopened.Close()
	if err := reopened.Load(); !errors.Is(err, migration.ErrNewerSchema) {
		t.Errorf("Load() = %v, want ErrNewerSchema", err)
	}
}

func TestPingAndClose(t *testing.T) {
	s := setupStore(t)
	if err := s.Ping(); err != nil {
		t.Fatalf("Ping() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if err := s.Ping(); err == nil {
		t.Error("Ping on a closed store should fail")
	}
}
