// File: errors.go
// Title: Acid Parse Errors
// Description: Positioned lexical and syntax errors, and their conversion
//              into coded foundation errors.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.2.0: Replaces ParseError

package parser

import (
	"fmt"
	"strconv"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwerror "github.com/msto63/acid/foundation/core/error"
)

// ErrorKind classifies parse failures
type ErrorKind int

const (
	// KindLexical means no token pattern matched, or a block comment was
	// never closed
	KindLexical ErrorKind = iota

	// KindUnexpectedToken means a rule required another token kind
	KindUnexpectedToken

	// KindUnexpectedEOF means a rule required a token but none remained
	KindUnexpectedEOF

	// KindNoRuleMatched means every rule failed on the first token
	KindNoRuleMatched

	// KindLimitExceeded means the input is too long or nested too deeply
	KindLimitExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindUnexpectedToken:
		return "unexpected-token"
	case KindUnexpectedEOF:
		return "unexpected-eof"
	case KindNoRuleMatched:
		return "no-rule-matched"
	case KindLimitExceeded:
		return "limit-exceeded"
	default:
		return "unknown"
	}
}

// Error is a positioned parse failure
type Error struct {
	Kind      ErrorKind
	Message   string
	Span      mdwast.Span
	Path      string
	Expected  string // What the failing rule wanted: a token kind, "expression" or "statement"
	Found     string // Kind of the offending token, empty at end of input
	Remaining string // Start of the unlexable text, lexical errors only

	// index is the token index the failure happened at; the farthest
	// failure wins when every rule fails
	index int

	incomplete bool
}

// Error renders path:line:col: message
func (e *Error) Error() string {
	loc := e.Span.Start.String()
	if e.Path != "" {
		loc = e.Path + ":" + loc
	}
	return loc + ": " + e.Message
}

// Incomplete reports whether more input could make the source valid: the
// input ended inside a form or inside a block comment. Interactive readers
// use it to ask for a continuation line.
func (e *Error) Incomplete() bool {
	return e.incomplete || e.Kind == KindUnexpectedEOF
}

// Position returns where the failure starts
func (e *Error) Position() mdwast.Position {
	return e.Span.Start
}

// Coded converts the error into a foundation error for logging and exit
// status mapping
func (e *Error) Coded() *mdwerror.Error {
	code := mdwerror.CodeAcidSyntax
	switch e.Kind {
	case KindLexical:
		code = mdwerror.CodeAcidLexical
	case KindLimitExceeded:
		code = mdwerror.CodeAcidTooLarge
	}

	coded := mdwerror.Wrap(e, "acid source rejected").
		WithCode(code).
		WithSeverity(mdwerror.SeverityLow).
		WithOperation("acid.parse").
		WithDetail("kind", e.Kind.String()).
		WithDetail("line", e.Span.Start.Line).
		WithDetail("column", e.Span.Start.Column)
	if e.Path != "" {
		coded = coded.WithDetail("path", e.Path)
	}
	if e.Expected != "" {
		coded = coded.WithDetail("expected", e.Expected)
	}
	if e.Found != "" {
		coded = coded.WithDetail("found", e.Found)
	}
	return coded
}

func lexicalError(pos mdwast.Position, remaining string) *Error {
	excerpt := remaining
	if r := []rune(excerpt); len(r) > 20 {
		excerpt = string(r[:20])
	}
	return &Error{
		Kind:      KindLexical,
		Message:   "failed to tokenize code near " + strconv.Quote(excerpt),
		Span:      mdwast.NewSpan(pos, pos.Advance(excerpt[:firstRuneLen(excerpt)])),
		Remaining: excerpt,
	}
}

func unterminatedComment(start, afterOpen mdwast.Position) *Error {
	return &Error{
		Kind:       KindLexical,
		Message:    "unterminated block comment",
		Span:       mdwast.NewSpan(start, afterOpen),
		incomplete: true,
	}
}

func unexpectedToken(tok Token, index int, expected string) *Error {
	return &Error{
		Kind:     KindUnexpectedToken,
		Message:  fmt.Sprintf("expected %s, got %s", expected, tok.Kind),
		Span:     tok.Loc,
		Expected: expected,
		Found:    tok.Kind.String(),
		index:    index,
	}
}

func unexpectedEOF(end mdwast.Position, index int, expected string) *Error {
	return &Error{
		Kind:     KindUnexpectedEOF,
		Message:  "unexpected end of input, expected " + expected,
		Span:     mdwast.NewSpan(end, end),
		Expected: expected,
		index:    index,
	}
}

// invalidLiteral reports a token of the right kind whose value cannot be
// represented. The index points past the token so it outranks failures of
// rules that never got that far.
func invalidLiteral(tok Token, index int, reason string) *Error {
	return &Error{
		Kind:     KindUnexpectedToken,
		Message:  fmt.Sprintf("invalid %s %s: %s", tok.Kind, tok.Text, reason),
		Span:     tok.Loc,
		Expected: tok.Kind.String(),
		Found:    tok.Kind.String(),
		index:    index + 1,
	}
}

func firstRuneLen(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}
