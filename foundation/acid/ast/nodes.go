// File: nodes.go
// Title: Acid AST Node Definitions
// Description: Defines the program, statement and expression nodes of the
//              Acid syntax tree with their debug representations and
//              structural validation.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2025-02-14 v0.2.0: Acid statements and expressions

package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns the debug representation of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Span returns the source span, the zero Span if the node has none
	Span() Span

	// Position returns the start of the span
	Position() Position

	// Validate checks structural well-formedness of the node and its children
	Validate() error
}

// Stmt is a top-level instruction of a program
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression
type Expr interface {
	Node
	exprNode()
}

// Program is a parsed source unit
type Program struct {
	Instructions []Stmt
	Path         string // Originating path, empty for anonymous input
	Loc          Span
}

// Declaration binds a name to a value: (define pi 3.14)
type Declaration struct {
	Name  string
	Value Expr
	Loc   Span
}

// TypeDeclaration assigns a type to a name: (:: not (lambda (Bool) Bool)).
// The type expression is parsed but never checked.
type TypeDeclaration struct {
	Name string
	Type Expr
	Loc  Span
}

// TopLevelExpr is an expression used as a statement
type TopLevelExpr struct {
	Expr Expr
	Loc  Span
}

// Call applies a callee to arguments: (f x y)
type Call struct {
	Callee Expr
	Args   []Expr
	Loc    Span
}

// Lambda is an anonymous function: (lambda (x y) (+ x y)).
// Parameter names are not required to be unique.
type Lambda struct {
	Params []string
	Body   Expr
	Loc    Span
}

// Variable references a name
type Variable struct {
	Name string
	Loc  Span
}

// IntLiteral is an integer literal
type IntLiteral struct {
	Value int64
	Loc   Span
}

// FloatLiteral is a floating point literal
type FloatLiteral struct {
	Value float64
	Loc   Span
}

// CharLiteral is a single character after unescaping
type CharLiteral struct {
	Value rune
	Loc   Span
}

// StringLiteral is a string after unescaping
type StringLiteral struct {
	Value string
	Loc   Span
}

// Program

func (p *Program) String() string {
	return fmt.Sprintf("Program(path=%s, instructions=%s)", quoteOrNone(p.Path), joinStmts(p.Instructions))
}

func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }
func (p *Program) Span() Span                         { return p.Loc }
func (p *Program) Position() Position                 { return p.Loc.Start }

func (p *Program) Validate() error {
	for i, stmt := range p.Instructions {
		if err := validateChild(fmt.Sprintf("instruction %d", i), stmt); err != nil {
			return err
		}
	}
	return nil
}

// Declaration

func (d *Declaration) String() string {
	return fmt.Sprintf("Declaration(name=%q, value=%s)", d.Name, nodeString(d.Value))
}

func (d *Declaration) Accept(visitor Visitor) interface{} { return visitor.VisitDeclaration(d) }
func (d *Declaration) Span() Span                         { return d.Loc }
func (d *Declaration) Position() Position                 { return d.Loc.Start }
func (d *Declaration) stmtNode()                          {}

func (d *Declaration) Validate() error {
	if mdwstringx.IsBlank(d.Name) {
		return fmt.Errorf("declaration name is required")
	}
	return validateChild("declaration "+d.Name+" value", d.Value)
}

// TypeDeclaration

func (t *TypeDeclaration) String() string {
	return fmt.Sprintf("TypeDeclaration(name=%q, type=%s)", t.Name, nodeString(t.Type))
}

func (t *TypeDeclaration) Accept(visitor Visitor) interface{} { return visitor.VisitTypeDeclaration(t) }
func (t *TypeDeclaration) Span() Span                         { return t.Loc }
func (t *TypeDeclaration) Position() Position                 { return t.Loc.Start }
func (t *TypeDeclaration) stmtNode()                          {}

func (t *TypeDeclaration) Validate() error {
	if mdwstringx.IsBlank(t.Name) {
		return fmt.Errorf("type declaration name is required")
	}
	return validateChild("type of "+t.Name, t.Type)
}

// TopLevelExpr

func (t *TopLevelExpr) String() string {
	return fmt.Sprintf("TopLevelExpr(expr=%s)", nodeString(t.Expr))
}

func (t *TopLevelExpr) Accept(visitor Visitor) interface{} { return visitor.VisitTopLevelExpr(t) }
func (t *TopLevelExpr) Span() Span                         { return t.Loc }
func (t *TopLevelExpr) Position() Position                 { return t.Loc.Start }
func (t *TopLevelExpr) stmtNode()                          {}

func (t *TopLevelExpr) Validate() error {
	return validateChild("top-level expression", t.Expr)
}

// Call

func (c *Call) String() string {
	return fmt.Sprintf("Call(callee=%s, args=%s)", nodeString(c.Callee), joinExprs(c.Args))
}

func (c *Call) Accept(visitor Visitor) interface{} { return visitor.VisitCall(c) }
func (c *Call) Span() Span                         { return c.Loc }
func (c *Call) Position() Position                 { return c.Loc.Start }
func (c *Call) exprNode()                          {}

func (c *Call) Validate() error {
	if err := validateChild("callee", c.Callee); err != nil {
		return err
	}
	for i, arg := range c.Args {
		if err := validateChild(fmt.Sprintf("argument %d", i), arg); err != nil {
			return err
		}
	}
	return nil
}

// Lambda

func (l *Lambda) String() string {
	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = strconv.Quote(p)
	}
	return fmt.Sprintf("Lambda(params=[%s], body=%s)", strings.Join(params, ", "), nodeString(l.Body))
}

func (l *Lambda) Accept(visitor Visitor) interface{} { return visitor.VisitLambda(l) }
func (l *Lambda) Span() Span                         { return l.Loc }
func (l *Lambda) Position() Position                 { return l.Loc.Start }
func (l *Lambda) exprNode()                          {}

func (l *Lambda) Validate() error {
	for i, p := range l.Params {
		if mdwstringx.IsBlank(p) {
			return fmt.Errorf("lambda parameter %d is blank", i)
		}
	}
	return validateChild("lambda body", l.Body)
}

// Variable

func (v *Variable) String() string { return fmt.Sprintf("Variable(name=%q)", v.Name) }

func (v *Variable) Accept(visitor Visitor) interface{} { return visitor.VisitVariable(v) }
func (v *Variable) Span() Span                         { return v.Loc }
func (v *Variable) Position() Position                 { return v.Loc.Start }
func (v *Variable) exprNode()                          {}

func (v *Variable) Validate() error {
	if mdwstringx.IsBlank(v.Name) {
		return fmt.Errorf("variable name is required")
	}
	return nil
}

// Literals

func (l *IntLiteral) String() string { return fmt.Sprintf("IntLiteral(value=%d)", l.Value) }

func (l *IntLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitIntLiteral(l) }
func (l *IntLiteral) Span() Span                         { return l.Loc }
func (l *IntLiteral) Position() Position                 { return l.Loc.Start }
func (l *IntLiteral) Validate() error                    { return nil }
func (l *IntLiteral) exprNode()                          {}

func (l *FloatLiteral) String() string {
	return "FloatLiteral(value=" + FormatFloat(l.Value) + ")"
}

func (l *FloatLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitFloatLiteral(l) }
func (l *FloatLiteral) Span() Span                         { return l.Loc }
func (l *FloatLiteral) Position() Position                 { return l.Loc.Start }
func (l *FloatLiteral) exprNode()                          {}

func (l *FloatLiteral) Validate() error {
	if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
		return fmt.Errorf("float literal is not finite")
	}
	return nil
}

func (l *CharLiteral) String() string { return fmt.Sprintf("CharLiteral(value=%q)", l.Value) }

func (l *CharLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitCharLiteral(l) }
func (l *CharLiteral) Span() Span                         { return l.Loc }
func (l *CharLiteral) Position() Position                 { return l.Loc.Start }
func (l *CharLiteral) exprNode()                          {}

func (l *CharLiteral) Validate() error {
	if l.Value < 0 || l.Value > 0x10FFFF {
		return fmt.Errorf("char literal %d is not a valid code point", l.Value)
	}
	return nil
}

func (l *StringLiteral) String() string { return fmt.Sprintf("StringLiteral(value=%q)", l.Value) }

func (l *StringLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitStringLiteral(l) }
func (l *StringLiteral) Span() Span                         { return l.Loc }
func (l *StringLiteral) Position() Position                 { return l.Loc.Start }
func (l *StringLiteral) Validate() error                    { return nil }
func (l *StringLiteral) exprNode()                          {}

// FormatFloat renders a float so that it always reads as one: 1 becomes
// "1.0", 3.14 stays "3.14".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func validateChild(what string, n Node) error {
	if isNil(n) {
		return fmt.Errorf("%s is missing", what)
	}
	if err := n.Validate(); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// isNil catches typed nil pointers stored in an interface
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Call:
		return v == nil
	case *Lambda:
		return v == nil
	case *Variable:
		return v == nil
	case *IntLiteral:
		return v == nil
	case *FloatLiteral:
		return v == nil
	case *CharLiteral:
		return v == nil
	case *StringLiteral:
		return v == nil
	case *Declaration:
		return v == nil
	case *TypeDeclaration:
		return v == nil
	case *TopLevelExpr:
		return v == nil
	case *Program:
		return v == nil
	}
	return false
}

func nodeString(n Node) string {
	if isNil(n) {
		return "None"
	}
	return n.String()
}

func quoteOrNone(s string) string {
	if s == "" {
		return "None"
	}
	return strconv.Quote(s)
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = nodeString(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func joinStmts(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = nodeString(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
