// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes raised across the Acid toolchain. Codes
//              classify failures for logging and for the exit status of the
//              command line tool.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-02-14 v0.2.0: Replaced service/database codes with Acid front end codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Registry and rule tables
	CodeDuplicateEntry   Code = "DUPLICATE_ENTRY"
	CodeInvalidOperation Code = "INVALID_OPERATION"

	// Acid source processing
	CodeAcidLexical  Code = "ACID_LEXICAL"
	CodeAcidSyntax   Code = "ACID_SYNTAX"
	CodeAcidTooLarge Code = "ACID_TOO_LARGE"
	CodeIOError      Code = "IO_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeDuplicateEntry, CodeInvalidOperation,
		CodeAcidLexical, CodeAcidSyntax, CodeAcidTooLarge, CodeIOError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category groups codes for log fields (error_category)
func (c Code) Category() string {
	switch c {
	case CodeAcidLexical, CodeAcidSyntax, CodeAcidTooLarge:
		return "source"
	case CodeDuplicateEntry, CodeInvalidOperation:
		return "registry"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeIOError:
		return "io"
	default:
		return "generic"
	}
}

// ExitStatus returns the process exit status the command line tool uses
// when it terminates because of an error with this code
func (c Code) ExitStatus() int {
	switch c {
	case CodeAcidLexical, CodeAcidSyntax, CodeAcidTooLarge:
		return 2
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return 3
	case CodeNotFound, CodeIOError:
		return 4
	default:
		return 1
	}
}
