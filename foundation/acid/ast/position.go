// File: position.go
// Title: Source Positions and Spans
// Description: Line/column positions and start/end spans used by tokens,
//              nodes and diagnostics.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Position as part of nodes.go
// - 2025-02-14 v0.2.0: Separate file, spans and span unions

package ast

import (
	"fmt"
	"unicode/utf8"
)

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based, counted in runes)
	Offset int // Byte offset (0-based)
}

// StartPosition is the position of the first character of any source
func StartPosition() Position {
	return Position{Line: 1, Column: 1}
}

// Advance returns the position reached after consuming text. A newline
// moves to column 1 of the next line; every other rune moves one column.
func (p Position) Advance(text string) Position {
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		p.Offset += size
		text = text[size:]
	}
	return p
}

// IsValid reports whether p refers to a real location
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 1
}

// Before reports whether p comes strictly before other
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span delimits the source text a token or node derives from. End is the
// position just after the last character.
type Span struct {
	Start Position
	End   Position
}

// NewSpan creates a span from start to end
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// IsValid reports whether both bounds are valid and ordered
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// Contains reports whether pos lies within [Start, End]
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() {
		return false
	}
	return !pos.Before(s.Start) && !s.End.Before(pos)
}

// Encloses reports whether other lies entirely within s
func (s Span) Encloses(other Span) bool {
	return s.Contains(other.Start) && s.Contains(other.End)
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Spanned is anything carrying a span, tokens as well as nodes
type Spanned interface {
	Span() Span
}

// SpanBetween returns the span from the start of first to the end of last
func SpanBetween(first, last Spanned) Span {
	return Span{Start: first.Span().Start, End: last.Span().End}
}

// Union returns the span from the first valid span's start to the last
// valid span's end. Invalid spans are skipped; with none left the zero Span
// is returned.
func Union(spans ...Span) Span {
	var out Span
	found := false
	for _, s := range spans {
		if !s.IsValid() {
			continue
		}
		if !found {
			out.Start = s.Start
			found = true
		}
		out.End = s.End
	}
	return out
}
