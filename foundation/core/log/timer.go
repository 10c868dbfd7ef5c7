// File: timer.go
// Title: Performance Timer
// Description: Measures operation duration and logs it on completion. The
//              acid engine times every tokenize and parse call with it.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-02-14 v0.2.0: Duration travels on the entry, not as a field

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time. A second call is a no-op
// and returns zero.
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, t.operation+" completed", nil)
}

// StopWithResult stops the timer and records whether the operation succeeded.
// Failures are raised to at least warn.
func (t *Timer) StopWithResult(success bool, result interface{}) time.Duration {
	t.fields["success"] = success
	if result != nil {
		t.fields["result"] = result
	}
	level, message := t.level, t.operation+" completed successfully"
	if !success {
		message = t.operation + " completed with errors"
		if level < LevelWarn {
			level = LevelWarn
		}
	}
	return t.finish(level, message, nil)
}

func (t *Timer) finish(level Level, message string, err error) time.Duration {
	if t.stopped {
		return 0
	}
	elapsed := t.Elapsed()
	t.stopped = true

	if t.logger != nil {
		fields := t.fields.Clone()
		fields["operation"] = t.operation
		t.logger.write(level, message, err, elapsed, fields)
	}
	return elapsed
}
