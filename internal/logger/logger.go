// Package logger writes leveled logs to a rotating file under <config dir>/logs.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/studydojo/internal/constants"
)

// Logger stays nil until Init succeeds; the helpers below are no-ops until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps debug output off stderr so it cannot tear the TUI's alt screen.
	Quiet bool
}

// File is the active log file for configDir.
func File(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	path := File(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: constants.LogBackups,
		MaxAge:     30,
		Compress:   true,
	}
	opts := log.Options{
		Level:           log.WarnLevel,
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Formatter:       log.LogfmtFormatter,
	}
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		if !cfg.Quiet {
			out = io.MultiWriter(os.Stderr, out)
		}
	}

	Logger = log.NewWithOptions(out, opts)
	return nil
}

func at(level log.Level, msg string, keyvals []any) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...any) { at(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { at(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { at(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { at(log.ErrorLevel, msg, keyvals) }
