// File: unescape.go
// Title: Literal Unescaping
// Description: Decodes backslash escapes in char and string literals.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.2.0: Initial implementation

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unescape decodes \n \t \r \\ \' \" \a \b \f \v, octal \N to \NNN,
// \xHH, \uHHHH and \UHHHHHHHH. A backslash before any other character is
// kept as written.
func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		if s[0] != '\\' {
			_, size := utf8.DecodeRuneInString(s)
			b.WriteString(s[:size])
			s = s[size:]
			continue
		}
		if len(s) == 1 {
			return "", fmt.Errorf("dangling backslash")
		}

		switch c := s[1]; {
		case c == '\'' || c == '"':
			b.WriteByte(c)
			s = s[2:]

		case c >= '0' && c <= '7':
			n := 1
			for n < 3 && 1+n < len(s) && s[1+n] >= '0' && s[1+n] <= '7' {
				n++
			}
			v, _ := strconv.ParseUint(s[1:1+n], 8, 32)
			b.WriteRune(rune(v))
			s = s[1+n:]

		case strings.IndexByte(`abfnrtv\xuU`, c) >= 0:
			r, _, tail, err := strconv.UnquoteChar(s, 0)
			if err != nil {
				return "", fmt.Errorf("invalid escape sequence %s", escapeExcerpt(s))
			}
			b.WriteRune(r)
			s = tail

		default:
			b.WriteByte('\\')
			s = s[1:]
		}
	}
	return b.String(), nil
}

// unescapeChar decodes a char literal body, which must yield one rune
func unescapeChar(s string) (rune, error) {
	decoded, err := unescape(s)
	if err != nil {
		return 0, err
	}
	if utf8.RuneCountInString(decoded) != 1 {
		return 0, fmt.Errorf("char literal must contain exactly one character")
	}
	r, _ := utf8.DecodeRuneInString(decoded)
	return r, nil
}

func escapeExcerpt(s string) string {
	end := 2
	for end < len(s) && end < 10 && isHex(s[end]) {
		end++
	}
	if end > len(s) {
		end = len(s)
	}
	return s[:end]
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
