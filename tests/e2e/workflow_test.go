package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const TEST_BACKUP_TIMEOUT = 10 * time.Second

// binary locates bin/studydojo, or $STUDYDOJO_BIN_DIR/studydojo.
func binary(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("STUDYDOJO_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "studydojo")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with: go build -o bin/studydojo ./cmd/studydojo", cliPath)
	}
	return cliPath
}

// isolatedEnv points HOME and XDG_CONFIG_HOME at dir and pins the timezone.
func isolatedEnv(dir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "STUDYDOJO_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", dir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", dir),
		"STUDYDOJO_TIMEZONE=UTC",
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := binary(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)
	dbPath := filepath.Join(tempDir, "studydojo", "studydojo.db")

	run := func(stdin string, args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, env, stdin, append([]string{"--config", dbPath}, args...)...)
	}

	out := run("", "init")
	if !strings.Contains(out, "Initialized studydojo storage") {
		t.Fatalf("init output: %s", out)
	}

	out = run("", "study", "done")
	if !strings.Contains(out, "First Steps") {
		t.Errorf("expected the first study achievement, got: %s", out)
	}
	if !strings.Contains(out, "Streak: 1") {
		t.Errorf("expected a one day streak, got: %s", out)
	}

	run("", "paper", "add", "Physics", "June 2023 Paper 1")
	run("", "paper", "add", "Mathematics", "Specimen Paper 2", "--done")
	out = run("", "paper", "done", "1")
	if !strings.Contains(out, "Physics: June 2023 Paper 1 completed") {
		t.Errorf("paper done output: %s", out)
	}

	out = run("", "quests")
	if !strings.Contains(out, "Paper Pursuit") {
		t.Errorf("quests output: %s", out)
	}

	run("", "theme", "ninja")
	run("", "name", "Kenji")
	out = run("", "greet")
	if !strings.Contains(out, "Kenji") {
		t.Errorf("greeting should use the saved name, got: %s", out)
	}

	planPath := filepath.Join(tempDir, "plan.yaml")
	run("", "--plan", planPath, "plan", "init")
	out = run("", "--plan", planPath, "plan", "validate")
	if !strings.Contains(out, "No problems detected") {
		t.Errorf("plan validate output: %s", out)
	}

	out = run("", "backup", "create")
	if !strings.Contains(out, "Backup created") {
		t.Fatalf("backup create output: %s", out)
	}
	waitForFile(t, filepath.Join(filepath.Dir(dbPath), "backups"), TEST_BACKUP_TIMEOUT)

	// Undo after the backup so a restore visibly brings the streak back.
	run("", "study", "undo")
	out = run("", "streak")
	if !strings.Contains(out, "0 day(s)") {
		t.Errorf("streak after undo: %s", out)
	}

	out = run("", "backup", "list")
	backup := firstBackup(out)
	if backup == "" {
		t.Fatalf("no backup in list output: %s", out)
	}
	run("y\n", "backup", "restore", backup)
	out = run("", "streak")
	if !strings.Contains(out, "1 day(s)") {
		t.Errorf("streak after restore: %s", out)
	}

	out = run("", "doctor")
	if !strings.Contains(out, "All diagnostics passed!") {
		t.Errorf("doctor output: %s", out)
	}
}

func firstBackup(listing string) string {
	for _, line := range strings.Split(listing, "\n") {
		for _, field := range strings.Fields(line) {
			if strings.HasSuffix(field, ".db") {
				return field
			}
		}
	}
	return ""
}

func runCmd(t *testing.T, path string, env []string, stdin string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func waitForFile(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	start := time.Now()
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for file: %s", path)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
