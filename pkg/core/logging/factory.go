// ============================================================================
// Acid - Lexer, Parser und REPL
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating toolchain loggers
// Author:      Mike Stoffels with Claude
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	mdwlog "github.com/msto63/acid/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "text", "json", "console" or "logfmt" (default: text)
	Format string

	// Output writer (default: stderr, stdout carries program output)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer

	// CorrelationID ties all entries of one invocation together; empty
	// generates a fresh one
	CorrelationID string

	// EnableCaller adds file:line to every entry
	EnableCaller bool
}

// DefaultLoggerConfig returns the configuration the command line starts
// from before applying config file and flags
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	// Build output writer
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	// Add additional outputs if specified
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatText
	}

	correlationID := cfg.CorrelationID
	if correlationID == "" {
		correlationID = NewCorrelationID()
	}

	// Create logger
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:        parseLevel(cfg.Level),
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: cfg.EnableCaller,
	})

	return logger.WithCorrelationID(correlationID)
}

// NewCorrelationID returns a fresh random correlation ID
func NewCorrelationID() string {
	return uuid.NewString()
}

// parseLevel converts a string level to mdwlog.Level; unknown levels fall
// back to warn so a typo never floods the terminal
func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelWarn
	}
	return parsed
}
