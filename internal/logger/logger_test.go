package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCreatesRotatingLogFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("storage read failed", "key", "study_progress")

	logFile := filepath.Join(configDir, "logs", "studydojo.log")
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file was not written: %v", err)
	}
	if !strings.Contains(string(data), "study_progress") {
		t.Errorf("log file = %q, want it to contain the key value", string(data))
	}
}

func TestInitNonDebugDropsDebugLines(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	Debug("should not appear")
	Warn("visible")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "studydojo.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if strings.Contains(string(data), "should not appear") {
		t.Error("debug line written at warn level")
	}
}

func TestInitDebugQuiet(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, Quiet: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed in debug mode: %v", err)
	}

	Debug("debug line")
	Info("info line")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "studydojo.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "debug line") {
		t.Error("debug line missing in debug mode")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
