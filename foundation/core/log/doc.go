// Package log provides structured logging for the Acid toolchain.
//
// Package: log
// Title: Acid Structured Logging
// Description: Leveled, structured logger with immutable context derivation,
//              JSON/text/console/logfmt output and operation timers. The
//              lexer/parser facade, the command line tool and the REPL all
//              log through this package.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-02-14 v0.2.0: Removed async buffering and request/user context
//
// Usage:
//   logger := log.New().WithField("component", "acid-parser")
//   logger.Debug("Starting parse", log.Fields{"path": path})
//
//   timer := logger.StartTimer("parse")
//   defer timer.Stop()
package log
