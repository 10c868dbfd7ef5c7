// File: lexer.go
// Title: Acid Lexical Analyzer (Tokenizer)
// Description: Converts Acid source into a lazy, finite token sequence by
//              ordered pattern matching. Drops whitespace and comments and
//              tracks line/column positions for every token.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2025-02-14 v0.2.0: Ordered-choice regexp lexer for Acid

package parser

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
)

// TokenKind represents the type of a lexical token. The declaration order
// is the order in which patterns are tried.
type TokenKind int

const (
	TokenDefine TokenKind = iota
	TokenLambda
	TokenIf
	TokenHasType
	TokenLineComment
	TokenCommentStart
	TokenCommentEnd
	TokenLParen
	TokenRParen
	TokenChar
	TokenString
	TokenFloat
	TokenInt
	TokenAtom
	TokenWhitespace

	tokenKindCount
)

var tokenNames = [tokenKindCount]string{
	"DEFINE", "LAMBDA", "IF", "HASTYPE",
	"LINE_COMMENT", "COMMENT_START", "COMMENT_END",
	"LPAREN", "RPAREN",
	"CHAR_LITERAL", "STRING_LITERAL", "FLOAT_LITERAL", "INT_LITERAL",
	"ATOM", "WHITESPACE",
}

var tokenPatterns = [tokenKindCount]string{
	`define`,
	`lambda`,
	`if`,
	`::|hastype`,
	`//`,
	`/\*`,
	`\*/`,
	`\(`,
	`\)`,
	`'(?:[^'\\]|\\.)'`,
	`"(?:[^"\\]|\\.)*"`,
	`\d+\.\d+`,
	`\d+`,
	`[\p{L}\p{N}_+\-'*/:,$<>=~#&|@ç^%!?.]+`,
	`[\s\v\x{85}\p{Z}]+`,
}

// tokenRegexps holds the patterns anchored at the start of the input
var tokenRegexps = func() [tokenKindCount]*regexp.Regexp {
	var out [tokenKindCount]*regexp.Regexp
	for i, p := range tokenPatterns {
		out[i] = regexp.MustCompile(`^(?:` + p + `)`)
	}
	return out
}()

// String returns the upper-case token kind name
func (k TokenKind) String() string {
	if k < 0 || k >= tokenKindCount {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenNames[k]
}

// Pattern returns the regular expression source of the kind
func (k TokenKind) Pattern() string {
	if k < 0 || k >= tokenKindCount {
		return ""
	}
	return tokenPatterns[k]
}

// TokenKinds returns every kind in trial order
func TokenKinds() []TokenKind {
	kinds := make([]TokenKind, tokenKindCount)
	for i := range kinds {
		kinds[i] = TokenKind(i)
	}
	return kinds
}

// Token represents a lexical token with its source span
type Token struct {
	Kind TokenKind
	Text string
	Loc  mdwast.Span
}

// Span implements ast.Spanned
func (t Token) Span() mdwast.Span {
	return t.Loc
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("Token(kind=%s, text=%q, span=%s)", t.Kind, t.Text, t.Loc)
}

// Lexer produces tokens from a source string. It is single-use: once
// exhausted or failed it yields nothing more.
type Lexer struct {
	rest string
	pos  mdwast.Position
	err  *Error
}

// NewLexer creates a lexer positioned at line 1, column 1 of source
func NewLexer(source string) *Lexer {
	return &Lexer{rest: source, pos: mdwast.StartPosition()}
}

// Position returns the current cursor position. After the last token it is
// the end of input.
func (l *Lexer) Position() mdwast.Position {
	return l.pos
}

// Next returns the next token. ok is false once the input is exhausted.
// After a lexical error, every further call returns the same error.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	if l.err != nil {
		return Token{}, false, l.err
	}

	for l.rest != "" {
		kind, n, matched := l.match()
		if !matched {
			l.err = lexicalError(l.pos, l.rest)
			return Token{}, false, l.err
		}

		start := l.pos
		text := l.rest[:n]
		l.consume(n)

		switch kind {
		case TokenLineComment:
			end := strings.IndexByte(l.rest, '\n')
			if end < 0 {
				end = len(l.rest)
			}
			l.consume(end)

		case TokenCommentStart:
			end := strings.Index(l.rest, "*/")
			if end < 0 {
				l.err = unterminatedComment(start, l.pos)
				l.rest = ""
				return Token{}, false, l.err
			}
			l.consume(end + len("*/"))

		case TokenWhitespace:

		default:
			return Token{Kind: kind, Text: text, Loc: mdwast.NewSpan(start, l.pos)}, true, nil
		}
	}
	return Token{}, false, nil
}

// All returns the remaining tokens as a sequence. A lexical error is
// yielded once as the final element.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, ok, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !ok || !yield(tok, nil) {
				return
			}
		}
	}
}

// match finds the first kind matching a non-empty prefix of the input.
// Trial order decides, not match length: "defined" is DEFINE then ATOM "d".
func (l *Lexer) match() (TokenKind, int, bool) {
	for i, re := range tokenRegexps {
		if loc := re.FindStringIndex(l.rest); loc != nil && loc[1] > 0 {
			return TokenKind(i), loc[1], true
		}
	}
	return 0, 0, false
}

func (l *Lexer) consume(n int) {
	l.pos = l.pos.Advance(l.rest[:n])
	l.rest = l.rest[n:]
}

// Tokenize lexes source lazily
func Tokenize(source string) iter.Seq2[Token, error] {
	return NewLexer(source).All()
}

// TokenizeAll lexes source completely. On error no tokens are returned.
func TokenizeAll(source string) ([]Token, error) {
	tokens, _, err := tokenizeAll(source)
	return tokens, err
}

// tokenizeAll also returns the end-of-input position
func tokenizeAll(source string) ([]Token, mdwast.Position, error) {
	lx := NewLexer(source)
	var tokens []Token
	for {
		tok, ok, err := lx.Next()
		if err != nil {
			return nil, lx.Position(), err
		}
		if !ok {
			return tokens, lx.Position(), nil
		}
		tokens = append(tokens, tok)
	}
}
