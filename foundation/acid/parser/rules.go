// File: rules.go
// Title: Acid Grammar Rules
// Description: The default statement and expression rules and their
//              priorities.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.2.0: Initial rule set

package parser

import (
	"strconv"
	"strings"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwregistry "github.com/msto63/acid/foundation/acid/registry"
	mdwlog "github.com/msto63/acid/foundation/core/log"
)

// DefaultStatementRules returns a fresh registry with the statement grammar:
//
//	1 declaration       ( define ATOM Expr )
//	1 type-declaration  ( HASTYPE ATOM Expr )
//	2 top-level-expr    Expr
func DefaultStatementRules() *mdwregistry.Registry[StmtRule] {
	return mdwregistry.New[StmtRule](mdwregistry.Options{Name: "statements", Logger: mdwlog.Discard()}).
		MustRegister("declaration", 1, consumeDeclaration).
		MustRegister("type-declaration", 1, consumeTypeDeclaration).
		MustRegister("top-level-expr", 2, consumeTopLevelExpr)
}

// DefaultExpressionRules returns a fresh registry with the expression
// grammar. Call comes last so special forms are never read as calls:
//
//	1 lambda          ( lambda ( ATOM* ) Expr )
//	1 variable        ATOM
//	1 int-literal     INT_LITERAL
//	1 float-literal   FLOAT_LITERAL
//	1 char-literal    CHAR_LITERAL
//	1 string-literal  STRING_LITERAL
//	2 call            ( Expr Expr* )
func DefaultExpressionRules() *mdwregistry.Registry[ExprRule] {
	return mdwregistry.New[ExprRule](mdwregistry.Options{Name: "expressions", Logger: mdwlog.Discard()}).
		MustRegister("lambda", 1, consumeLambda).
		MustRegister("variable", 1, consumeVariable).
		MustRegister("int-literal", 1, consumeIntLiteral).
		MustRegister("float-literal", 1, consumeFloatLiteral).
		MustRegister("char-literal", 1, consumeCharLiteral).
		MustRegister("string-literal", 1, consumeStringLiteral).
		MustRegister("call", 2, consumeCall)
}

func consumeDeclaration(p *Parser, start Cursor) (mdwast.Stmt, Cursor, *Error) {
	open, c, err := start.Expect(TokenLParen)
	if err != nil {
		return nil, start, err
	}
	if _, c, err = c.Expect(TokenDefine); err != nil {
		return nil, start, err
	}
	name, c, err := c.Expect(TokenAtom)
	if err != nil {
		return nil, start, err
	}
	value, c, err := p.ConsumeExpr(c)
	if err != nil {
		return nil, start, err
	}
	closing, c, err := c.Expect(TokenRParen)
	if err != nil {
		return nil, start, err
	}
	return &mdwast.Declaration{Name: name.Text, Value: value, Loc: mdwast.SpanBetween(open, closing)}, c, nil
}

func consumeTypeDeclaration(p *Parser, start Cursor) (mdwast.Stmt, Cursor, *Error) {
	open, c, err := start.Expect(TokenLParen)
	if err != nil {
		return nil, start, err
	}
	if _, c, err = c.Expect(TokenHasType); err != nil {
		return nil, start, err
	}
	name, c, err := c.Expect(TokenAtom)
	if err != nil {
		return nil, start, err
	}
	typ, c, err := p.ConsumeExpr(c)
	if err != nil {
		return nil, start, err
	}
	closing, c, err := c.Expect(TokenRParen)
	if err != nil {
		return nil, start, err
	}
	return &mdwast.TypeDeclaration{Name: name.Text, Type: typ, Loc: mdwast.SpanBetween(open, closing)}, c, nil
}

func consumeTopLevelExpr(p *Parser, start Cursor) (mdwast.Stmt, Cursor, *Error) {
	expr, c, err := p.ConsumeExpr(start)
	if err != nil {
		return nil, start, err
	}
	return &mdwast.TopLevelExpr{Expr: expr, Loc: expr.Span()}, c, nil
}

func consumeLambda(p *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	open, c, err := start.Expect(TokenLParen)
	if err != nil {
		return nil, start, err
	}
	if _, c, err = c.Expect(TokenLambda); err != nil {
		return nil, start, err
	}
	if _, c, err = c.Expect(TokenLParen); err != nil {
		return nil, start, err
	}

	params := []string{}
	for {
		tok, ok := c.Peek()
		if !ok || tok.Kind != TokenAtom {
			break
		}
		params = append(params, tok.Text)
		c = c.Advance()
	}

	if _, c, err = c.Expect(TokenRParen); err != nil {
		return nil, start, err
	}
	body, c, err := p.ConsumeExpr(c)
	if err != nil {
		return nil, start, err
	}
	closing, c, err := c.Expect(TokenRParen)
	if err != nil {
		return nil, start, err
	}
	return &mdwast.Lambda{Params: params, Body: body, Loc: mdwast.SpanBetween(open, closing)}, c, nil
}

func consumeCall(p *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	open, c, err := start.Expect(TokenLParen)
	if err != nil {
		return nil, start, err
	}
	callee, c, err := p.ConsumeExpr(c)
	if err != nil {
		return nil, start, err
	}

	// Arguments run until the first expression that does not parse
	args := []mdwast.Expr{}
	var argErr *Error
	for {
		arg, next, err := p.ConsumeExpr(c)
		if err != nil {
			argErr = err
			break
		}
		args = append(args, arg)
		c = next
	}

	closing, c, err := c.Expect(TokenRParen)
	if err != nil {
		// The failed argument usually explains a missing paren better
		if argErr != nil && argErr.index > err.index {
			return nil, start, argErr
		}
		return nil, start, err
	}
	return &mdwast.Call{Callee: callee, Args: args, Loc: mdwast.SpanBetween(open, closing)}, c, nil
}

func consumeVariable(_ *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	tok, c, err := start.Expect(TokenAtom)
	if err != nil {
		return nil, start, err
	}
	return &mdwast.Variable{Name: tok.Text, Loc: tok.Loc}, c, nil
}

func consumeIntLiteral(_ *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	tok, c, err := start.Expect(TokenInt)
	if err != nil {
		return nil, start, err
	}
	v, perr := strconv.ParseInt(tok.Text, 10, 64)
	if perr != nil {
		return nil, start, invalidLiteral(tok, start.index, "value out of range")
	}
	return &mdwast.IntLiteral{Value: v, Loc: tok.Loc}, c, nil
}

func consumeFloatLiteral(_ *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	tok, c, err := start.Expect(TokenFloat)
	if err != nil {
		return nil, start, err
	}
	v, perr := strconv.ParseFloat(tok.Text, 64)
	if perr != nil {
		return nil, start, invalidLiteral(tok, start.index, "value out of range")
	}
	return &mdwast.FloatLiteral{Value: v, Loc: tok.Loc}, c, nil
}

func consumeCharLiteral(_ *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	tok, c, err := start.Expect(TokenChar)
	if err != nil {
		return nil, start, err
	}
	r, uerr := unescapeChar(stripQuotes(tok.Text, '\''))
	if uerr != nil {
		return nil, start, invalidLiteral(tok, start.index, uerr.Error())
	}
	return &mdwast.CharLiteral{Value: r, Loc: tok.Loc}, c, nil
}

func consumeStringLiteral(_ *Parser, start Cursor) (mdwast.Expr, Cursor, *Error) {
	tok, c, err := start.Expect(TokenString)
	if err != nil {
		return nil, start, err
	}
	s, uerr := unescape(stripQuotes(tok.Text, '"'))
	if uerr != nil {
		return nil, start, invalidLiteral(tok, start.index, uerr.Error())
	}
	return &mdwast.StringLiteral{Value: s, Loc: tok.Loc}, c, nil
}

// stripQuotes removes exactly one quote character from each end
func stripQuotes(s string, quote byte) string {
	s = strings.TrimPrefix(s, string(quote))
	return strings.TrimSuffix(s, string(quote))
}
