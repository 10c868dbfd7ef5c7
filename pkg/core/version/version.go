// ============================================================================
// Acid - Lexer, Parser und REPL
// ============================================================================
//
// Package:     version
// Description: Central version management for the Acid toolchain
// Author:      Mike Stoffels with Claude
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the Acid components
const (
	// Toolchain version
	Toolchain = "0.2.0"

	// Component versions
	Lexer  = "0.2.0"
	Parser = "0.2.0"
	REPL   = "0.1.0"
)

// Build information, set via -ldflags at release time
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "repl":
		return REPL
	default:
		return Toolchain
	}
}

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("Acid v%s (%s, %s/%s)", Toolchain, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Details returns the multi-line version report of `acid version`
func Details() string {
	return fmt.Sprintf("Acid v%s\n"+
		"  Lexer:      v%s\n"+
		"  Parser:     v%s\n"+
		"  REPL:       v%s\n"+
		"  Git Commit: %s\n"+
		"  Build Date: %s\n"+
		"  Go Version: %s\n"+
		"  OS/Arch:    %s/%s\n",
		Toolchain, Lexer, Parser, REPL, GitCommit, BuildDate,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
