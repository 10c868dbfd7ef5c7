// File: stringx.go
// Title: Core String Utility Functions
// Description: Rune-aware helpers for excerpts, tables and prompts.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2025-02-14 v0.2.0: Added Line and Quote

package stringx

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FirstNonBlank returns the first non-blank string.
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if !IsBlank(s) {
			return s
		}
	}
	return ""
}

// Truncate shortens s to at most maxLen runes, ending in ellipsis when cut.
// If the ellipsis does not fit, the plain prefix is returned.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads s with pad until it is width runes wide.
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}

// SplitLines splits on \n, \r\n and \r.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// Line returns the 1-based line n of s without its terminator. The boolean
// is false when s has fewer lines.
func Line(s string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	for i := 1; ; i++ {
		idx := strings.IndexByte(s, '\n')
		if i == n {
			if idx >= 0 {
				s = s[:idx]
			}
			return strings.TrimSuffix(s, "\r"), true
		}
		if idx < 0 {
			return "", false
		}
		s = s[idx+1:]
	}
}

// Quote renders s as a Go-quoted literal, shortened to maxLen runes of
// content first. Used to show token text in messages.
func Quote(s string, maxLen int) string {
	return strconv.Quote(Truncate(s, maxLen, "…"))
}
