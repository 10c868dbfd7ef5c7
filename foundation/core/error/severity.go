// File: severity.go
// Title: Error Severity Levels
// Description: Severity decides how loudly an error is logged. Rejected
//              Acid source is the user's business and stays low; broken
//              configuration and internal faults are raised.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-02-14 v0.2.0: Severity mapping for Acid codes

package error

// Severity ranks errors for logging
type Severity int

const (
	// SeverityLow is rejected user input: source, commands, missing files
	SeverityLow Severity = iota
	SeverityMedium
	// SeverityHigh is an environment problem such as an unreadable config
	SeverityHigh
	// SeverityCritical is a bug in the toolchain
	SeverityCritical
)

var severityNames = [...]string{"low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// GetSeverityFromCode is the severity WithCode assigns when none was set
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeAcidLexical, CodeAcidSyntax, CodeAcidTooLarge,
		CodeInvalidInput, CodeNotFound, CodeDuplicateEntry:
		return SeverityLow
	case CodeConfigError, CodeInvalidConfig, CodeIOError:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
