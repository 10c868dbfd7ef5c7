// File: level.go
// Title: Log Level Definitions
// Description: Defines the log levels. Trace carries every backtracked rule
//              attempt of the parser, debug the per-input summaries, info
//              REPL events and source errors.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-02-14 v0.2.0: Table of names, short names and colors

package log

import (
	"slices"
	"strings"
)

// Level orders log entries by importance
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal

	// LevelAudit is written regardless of the configured minimum
	LevelAudit
)

var levelInfo = [...]struct {
	name, short, color string
	aliases            []string
}{
	LevelTrace: {"trace", "TRC", "\033[37m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", "information"}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelFatal: {"fatal", "FTL", "\033[35m", []string{"ftl"}},
	LevelAudit: {"audit", "AUD", "\033[34m", []string{"aud"}},
}

func (l Level) valid() bool {
	return l >= 0 && int(l) < len(levelInfo)
}

// String returns the lower-case level name used in JSON and logfmt output
func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelInfo[l].name
}

// ShortString returns the three-letter tag of console output
func (l Level) ShortString() string {
	if !l.valid() {
		return "???"
	}
	return levelInfo[l].short
}

// Color returns the ANSI color of console output
func (l Level) Color() string {
	if !l.valid() {
		return "\033[0m"
	}
	return levelInfo[l].color
}

// ShouldLog reports whether an entry at l passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l == LevelAudit || l >= minLevel
}

// ParseLevel reads a level name or one of its short forms, ignoring case.
// Unknown names give LevelInfo and a *ParseError.
func ParseLevel(level string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	for l, info := range levelInfo {
		if name == info.name || slices.Contains(info.aliases, name) {
			return Level(l), nil
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError reports an unknown level or format name in the configuration
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}
