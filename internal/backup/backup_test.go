package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/storage/sqlite"
)

// setupStore creates an initialised store holding one key and returns its path.
func setupStore(t *testing.T, key, value string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "studydojo.db")
	writeKey(t, dbPath, key, value)
	return dbPath
}

func writeKey(t *testing.T, dbPath, key, value string) {
	t.Helper()
	s := sqlite.NewStore(dbPath)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()
	if err := s.Set(key, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func readKey(t *testing.T, dbPath, key string) (string, bool) {
	t.Helper()
	s := sqlite.NewStore(dbPath)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	return v, ok
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	cur := start.Add(-step)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "4")
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(path) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.GetBackupDir())
	}
	if !strings.HasPrefix(filepath.Base(path), constants.BackupFilePrefix) {
		t.Errorf("unexpected backup name %s", filepath.Base(path))
	}
	if v, ok := readKey(t, path, constants.KeyStreak); !ok || v != "4" {
		t.Errorf("backup holds %q, %v; want 4", v, ok)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("CreateBackup should fail without a database")
	}
}

func TestCreateBackupRejectsForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	if err := os.WriteFile(dbPath, []byte("not sqlite at all"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(dbPath).CreateBackup(); err == nil {
		t.Fatal("CreateBackup should reject a file that is not a store")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "1")
	mgr := NewManager(dbPath)
	mgr.maxBackups = 3
	mgr.now = fixedClock(time.Date(2025, 5, 4, 9, 0, 0, 0, time.Local), time.Hour)

	var paths []string
	for i := 0; i < 5; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		paths = append(paths, p)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Path != paths[4] || backups[2].Path != paths[2] {
		t.Errorf("rotation kept the wrong backups: %v", backups)
	}
	if _, err := os.Stat(paths[0]); !os.IsNotExist(err) {
		t.Error("oldest backup should have been removed")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "1")
	mgr := NewManager(dbPath)
	frozen := time.Date(2025, 5, 4, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return frozen }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatal(err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 3 || backups[0].Seq != 2 || backups[2].Seq != 0 {
		t.Errorf("same-second backups not ordered by sequence: %+v", backups)
	}
}

func TestListBackupsIgnoresOtherFiles(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "1")
	mgr := NewManager(dbPath)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "studydojo-garbage.db", "other-20250504-0900.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestListBackupsNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "studydojo.db"))
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("ListBackups() = %v, %v", backups, err)
	}
}

func TestAutoBackupOncePerDay(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "1")
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 5, 4, 9, 0, 0, 0, time.Local), 6*time.Hour)

	first, err := mgr.AutoBackup()
	if err != nil || first == "" {
		t.Fatalf("first AutoBackup = %q, %v", first, err)
	}
	// 21:00 the same day.
	if again, err := mgr.AutoBackup(); err != nil || again != "" {
		t.Errorf("second AutoBackup on the same day = %q, %v", again, err)
	}
	// 03:00 the next day.
	next, err := mgr.AutoBackup()
	if err != nil || next == "" {
		t.Errorf("AutoBackup on a new day = %q, %v", next, err)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "2")
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 5, 4, 9, 0, 0, 0, time.Local), time.Minute)

	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	writeKey(t, dbPath, constants.KeyStreak, "9")

	safety, err := mgr.RestoreBackup(snapshot)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if v, _ := readKey(t, dbPath, constants.KeyStreak); v != "2" {
		t.Errorf("restored streak = %q, want 2", v)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if v, _ := readKey(t, safety, constants.KeyStreak); v != "9" {
		t.Errorf("safety backup streak = %q, want 9", v)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreRejectsBadBackups(t *testing.T) {
	dbPath := setupStore(t, constants.KeyStreak, "2")
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(corrupt); err == nil {
		t.Error("RestoreBackup should fail for a corrupted file")
	}
	if v, _ := readKey(t, dbPath, constants.KeyStreak); v != "2" {
		t.Errorf("failed restore changed the database: streak %q", v)
	}
}
