// File: parser.go
// Title: Acid Backtracking Parser
// Description: Rule-table driven parser over an immutable token cursor.
//              Statement and expression rules are tried in priority order;
//              a failed rule leaves no trace and the farthest failure is
//              reported when all of them fail.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial TCOL parser implementation
// - 2025-02-14 v0.2.0: Rule-based Acid parser with immutable cursor

package parser

import (
	"fmt"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwregistry "github.com/msto63/acid/foundation/acid/registry"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwlog "github.com/msto63/acid/foundation/core/log"
)

const (
	// DefaultMaxInputLength is the largest source accepted by default (1 MiB)
	DefaultMaxInputLength = 1 << 20

	// DefaultMaxDepth bounds expression nesting
	DefaultMaxDepth = 10000
)

// Cursor is an immutable position in a token slice. Advancing returns a
// new cursor; backtracking is dropping one.
type Cursor struct {
	tokens []Token
	index  int
	end    mdwast.Position
	depth  int
}

// NewCursor creates a cursor at the first token. end is the position just
// past the input and is used for end-of-input errors.
func NewCursor(tokens []Token, end mdwast.Position) Cursor {
	return Cursor{tokens: tokens, end: end}
}

// Peek returns the current token without consuming it
func (c Cursor) Peek() (Token, bool) {
	if c.index >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[c.index], true
}

// Done reports whether all tokens are consumed
func (c Cursor) Done() bool {
	return c.index >= len(c.tokens)
}

// Index returns the number of consumed tokens
func (c Cursor) Index() int {
	return c.index
}

// Advance returns the cursor moved past the current token
func (c Cursor) Advance() Cursor {
	if c.index < len(c.tokens) {
		c.index++
	}
	return c
}

// Expect consumes a token of the given kind
func (c Cursor) Expect(kind TokenKind) (Token, Cursor, *Error) {
	tok, ok := c.Peek()
	if !ok {
		return Token{}, c, unexpectedEOF(c.end, c.index, kind.String())
	}
	if tok.Kind != kind {
		return Token{}, c, unexpectedToken(tok, c.index, kind.String())
	}
	return tok, c.Advance(), nil
}

// StmtRule parses a statement starting at the cursor
type StmtRule func(p *Parser, c Cursor) (mdwast.Stmt, Cursor, *Error)

// ExprRule parses an expression starting at the cursor
type ExprRule func(p *Parser, c Cursor) (mdwast.Expr, Cursor, *Error)

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int // Bytes; zero means DefaultMaxInputLength, negative disables the check
	MaxDepth       int // Zero means DefaultMaxDepth

	// Rule tables; nil means the default grammar
	Statements  *mdwregistry.Registry[StmtRule]
	Expressions *mdwregistry.Registry[ExprRule]
}

// Parser parses Acid source. It holds no per-parse state and is safe for
// concurrent use.
type Parser struct {
	logger      *mdwlog.Logger
	options     Options
	statements  []mdwregistry.Rule[StmtRule]
	expressions []mdwregistry.Rule[ExprRule]
}

// New creates a new Acid parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Statements == nil {
		opts.Statements = DefaultStatementRules()
	}
	if opts.Expressions == nil {
		opts.Expressions = DefaultExpressionRules()
	}

	p := &Parser{
		logger:      opts.Logger.WithField("component", "acid-parser"),
		options:     opts,
		statements:  opts.Statements.Ordered(),
		expressions: opts.Expressions.Ordered(),
	}
	if len(p.statements) == 0 || len(p.expressions) == 0 {
		return nil, mdwerror.New("parser needs at least one statement and one expression rule").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.New").
			WithDetail("statements", len(p.statements)).
			WithDetail("expressions", len(p.expressions))
	}
	return p, nil
}

// Parse tokenizes and parses source. path is only used in error messages
// and recorded on the program. Errors are *Error values.
func (p *Parser) Parse(source, path string) (*mdwast.Program, error) {
	tokens, end, err := p.Tokenize(source, path)
	if err != nil {
		return nil, err
	}
	return p.ParseTokens(tokens, end, path)
}

// Tokenize lexes source completely under the parser's length limit. It also
// returns the end-of-input position that ParseTokens needs.
func (p *Parser) Tokenize(source, path string) ([]Token, mdwast.Position, error) {
	if limit := p.options.MaxInputLength; limit > 0 && len(source) > limit {
		return nil, mdwast.Position{}, &Error{
			Kind:    KindLimitExceeded,
			Message: fmt.Sprintf("input exceeds maximum length: %d > %d bytes", len(source), limit),
			Span:    mdwast.NewSpan(mdwast.StartPosition(), mdwast.StartPosition()),
			Path:    path,
		}
	}

	tokens, end, err := tokenizeAll(source)
	if err != nil {
		if perr, ok := err.(*Error); ok {
			perr.Path = path
			p.logger.Debug("Acid tokenizing failed", mdwlog.Fields{"path": path, "error": perr.Message})
		}
		return nil, end, err
	}
	return tokens, end, nil
}

// MaxInputLength returns the effective input limit in bytes; zero or less
// means unlimited
func (p *Parser) MaxInputLength() int {
	return p.options.MaxInputLength
}

// ParseTokens parses an already tokenized source. end is the position just
// past the input.
func (p *Parser) ParseTokens(tokens []Token, end mdwast.Position, path string) (*mdwast.Program, error) {
	p.logger.Debug("Starting Acid parsing", mdwlog.Fields{
		"path":   path,
		"tokens": len(tokens),
	})

	var instructions []mdwast.Stmt
	c := NewCursor(tokens, end)
	for !c.Done() {
		stmt, next, perr := p.ConsumeStmt(c)
		if perr != nil {
			perr.Path = path
			p.logger.Debug("Acid parsing failed", mdwlog.Fields{
				"path":  path,
				"kind":  perr.Kind.String(),
				"error": perr.Message,
			})
			return nil, perr
		}
		instructions = append(instructions, stmt)
		c = next
	}

	prog := &mdwast.Program{Instructions: instructions, Path: path}
	if len(instructions) > 0 {
		prog.Loc = mdwast.SpanBetween(instructions[0], instructions[len(instructions)-1])
	} else {
		prog.Loc = mdwast.NewSpan(mdwast.StartPosition(), end)
	}

	p.logger.Debug("Acid parsing completed successfully", mdwlog.Fields{
		"path":         path,
		"instructions": len(instructions),
	})
	return prog, nil
}

type failure struct {
	rule string
	err  *Error
}

// ConsumeStmt tries every statement rule on c and returns the first success
func (p *Parser) ConsumeStmt(c Cursor) (mdwast.Stmt, Cursor, *Error) {
	failures := make([]failure, 0, len(p.statements))
	for _, rule := range p.statements {
		node, next, err := rule.Consume(p, c)
		if err == nil {
			return node, next, nil
		}
		failures = append(failures, failure{rule: rule.Name, err: err})
	}
	return nil, c, p.selectFailure(c, "statement", failures)
}

// ConsumeExpr tries every expression rule on c and returns the first success
func (p *Parser) ConsumeExpr(c Cursor) (mdwast.Expr, Cursor, *Error) {
	if c.depth >= p.options.MaxDepth {
		return nil, c, p.tooDeep(c)
	}
	inner := c
	inner.depth++

	failures := make([]failure, 0, len(p.expressions))
	for _, rule := range p.expressions {
		node, next, err := rule.Consume(p, inner)
		if err == nil {
			next.depth = c.depth
			return node, next, nil
		}
		failures = append(failures, failure{rule: rule.Name, err: err})
	}
	return nil, c, p.selectFailure(c, "expression", failures)
}

// selectFailure picks the failure that got farthest; earlier rules win
// ties. A failure on the very first token means no rule applies at all.
func (p *Parser) selectFailure(c Cursor, what string, failures []failure) *Error {
	best := failures[0]
	for _, f := range failures[1:] {
		if f.err.index > best.err.index {
			best = f
		}
	}

	if p.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		for _, f := range failures {
			p.logger.Trace("Rule failed", mdwlog.Fields{
				"tier":  what,
				"rule":  f.rule,
				"start": c.index,
				"at":    f.err.index,
				"error": f.err.Message,
			})
		}
	}

	out := *best.err
	if out.index != c.index {
		return &out
	}
	switch out.Kind {
	case KindUnexpectedToken:
		tok, _ := c.Peek()
		out.Kind = KindNoRuleMatched
		out.Expected = what
		out.Message = fmt.Sprintf("expected %s, got %s", what, tok.Kind)
	case KindUnexpectedEOF:
		out.Expected = what
		out.Message = "unexpected end of input, expected " + what
	}
	return &out
}

func (p *Parser) tooDeep(c Cursor) *Error {
	span := mdwast.NewSpan(c.end, c.end)
	if tok, ok := c.Peek(); ok {
		span = tok.Loc
	}
	return &Error{
		Kind:    KindLimitExceeded,
		Message: fmt.Sprintf("expression nesting exceeds %d levels", p.options.MaxDepth),
		Span:    span,
		index:   len(c.tokens) + 1,
	}
}

// Parse parses source with the default grammar and options
func Parse(source, path string) (*mdwast.Program, error) {
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.Parse(source, path)
}
