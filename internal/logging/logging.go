// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the zerolog logger shared by every authapp component.
//
// The TUI owns stdout, so by default log output goes to a file under the
// authapp config directory. Components take a zerolog.Logger and tag it with
// their own name via Component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field names used across components.
const (
	FieldComponent = "component"
	FieldOperation = "op"
	FieldEmail     = "email"
	FieldUserID    = "user_id"
	FieldStatus    = "status"
	FieldDuration  = "duration"
)

// Output destinations besides a file path.
const (
	OutputStdout  = "stdout"
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
)

// Config holds logging configuration.
type Config struct {
	// Level is one of trace, debug, info, warn, error.
	Level string
	// Format is "json" or "console".
	Format string
	// Output is a file path, "stdout", "stderr" or "discard".
	Output string
}

// Validate checks the level and format values.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil || c.Level == "" {
		return fmt.Errorf("log level must be one of trace, debug, info, warn, error (got %q)", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console (got %q)", c.Format)
	}
	return nil
}

// New builds a logger from cfg. The returned closer releases the output file,
// if one was opened; it is never nil.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var w io.Writer = out
	if strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    closer != nil,
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if closer == nil {
		return logger, nopCloser{}, nil
	}
	return logger, closer, nil
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(FieldComponent, name).Logger()
}

// Nop returns a logger that discards everything. Used as the default for
// components constructed without a logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "", OutputDiscard:
		return io.Discard, nil, nil
	case OutputStdout:
		return os.Stdout, nil, nil
	case OutputStderr:
		return os.Stderr, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
