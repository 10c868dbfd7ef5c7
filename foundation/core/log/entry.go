// File: entry.go
// Title: Log Entry Structure
// Description: Defines the entry handed to formatters and the Fields map
//              that carries structured context such as paths, token counts
//              and rule names.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-02-14 v0.2.0: Correlation ID is the only request-scoped context

package log

import (
	"maps"
	"slices"
	"time"
)

// Entry is one formatted log line before rendering
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string

	// CorrelationID ties together all entries of one CLI run or REPL session
	CorrelationID string

	Fields Fields
	Error  error

	// Duration is set by timers, zero otherwise
	Duration time.Duration

	Caller *CallerInfo
}

// CallerInfo locates the log call when caller reporting is enabled
type CallerInfo struct {
	Function string
	File     string
	Line     int
}

// Fields holds structured key-value context
type Fields map[string]interface{}

// Clone copies f; nil stays nil
func (f Fields) Clone() Fields {
	return maps.Clone(f)
}

// Keys returns the field names sorted, so text output is stable
func (f Fields) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

func newEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
