// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logging/logging.go
// Summary: Process-wide zerolog logger with per-component children.
// Usage: Init once from the CLI; packages call Component("name") for a tagged logger.

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	logger  = zerolog.New(io.Discard)
	logFile *os.File
)

// Options selects where logs go. A full-screen UI owns the terminal, so
// Stderr is only honoured when File is empty and Console is set.
type Options struct {
	Level   string
	File    string
	Console bool
}

// Init replaces the global logger. An unknown level falls back to info.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	closeFileLocked()

	var out io.Writer = io.Discard
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
	case opts.Console:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return nil
}

// SetOutput points the logger at w with the given level. Tests use it to capture output.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Close flushes and closes the log file, if any, and silences the logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logger = zerolog.New(io.Discard)
}

func closeFileLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Component returns a child logger tagged with the component name.
func Component(name string) *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger.With().Str("component", name).Logger()
	return &l
}

// DefaultFile is the log path used with --debug when no file is configured.
func DefaultFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "texellaunch", "texellaunch.log")
	}
	return filepath.Join(os.TempDir(), "texellaunch.log")
}
