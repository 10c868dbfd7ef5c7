// File: visitor.go
// Title: Acid AST Visitor Pattern Implementation
// Description: Visitor interface, generic pre-order traversal, an indented
//              tree printer and the structural export used for JSON and
//              YAML output.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2025-02-14 v0.2.0: Acid node set, Walk, Dump and CollectSpans

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitProgram(p *Program) interface{}

	// Statements
	VisitDeclaration(d *Declaration) interface{}
	VisitTypeDeclaration(t *TypeDeclaration) interface{}
	VisitTopLevelExpr(t *TopLevelExpr) interface{}

	// Expressions
	VisitCall(c *Call) interface{}
	VisitLambda(l *Lambda) interface{}
	VisitVariable(v *Variable) interface{}
	VisitIntLiteral(l *IntLiteral) interface{}
	VisitFloatLiteral(l *FloatLiteral) interface{}
	VisitCharLiteral(l *CharLiteral) interface{}
	VisitStringLiteral(l *StringLiteral) interface{}
}

// BaseVisitor provides default implementations for all visitor methods.
// Embed it in concrete visitors to only override needed methods. The
// defaults visit nothing and return nil; use Walk for full traversal.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program) interface{}                 { return nil }
func (BaseVisitor) VisitDeclaration(*Declaration) interface{}         { return nil }
func (BaseVisitor) VisitTypeDeclaration(*TypeDeclaration) interface{} { return nil }
func (BaseVisitor) VisitTopLevelExpr(*TopLevelExpr) interface{}       { return nil }
func (BaseVisitor) VisitCall(*Call) interface{}                       { return nil }
func (BaseVisitor) VisitLambda(*Lambda) interface{}                   { return nil }
func (BaseVisitor) VisitVariable(*Variable) interface{}               { return nil }
func (BaseVisitor) VisitIntLiteral(*IntLiteral) interface{}           { return nil }
func (BaseVisitor) VisitFloatLiteral(*FloatLiteral) interface{}       { return nil }
func (BaseVisitor) VisitCharLiteral(*CharLiteral) interface{}         { return nil }
func (BaseVisitor) VisitStringLiteral(*StringLiteral) interface{}     { return nil }

// Children returns the direct sub-nodes of n in source order
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Program:
		out := make([]Node, 0, len(v.Instructions))
		for _, s := range v.Instructions {
			out = append(out, s)
		}
		return out
	case *Declaration:
		return nonNil(v.Value)
	case *TypeDeclaration:
		return nonNil(v.Type)
	case *TopLevelExpr:
		return nonNil(v.Expr)
	case *Call:
		out := nonNil(v.Callee)
		for _, a := range v.Args {
			out = append(out, nonNil(a)...)
		}
		return out
	case *Lambda:
		return nonNil(v.Body)
	}
	return nil
}

func nonNil(n Node) []Node {
	if isNil(n) {
		return nil
	}
	return []Node{n}
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of that node. Walk uses an explicit stack so that very
// deep trees do not grow the goroutine stack.
func Walk(n Node, fn func(Node) bool) {
	if isNil(n) {
		return
	}
	stack := []Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		kids := Children(cur)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// CollectSpans returns the span of every node under n in pre-order
func CollectSpans(n Node) []Span {
	var spans []Span
	Walk(n, func(node Node) bool {
		spans = append(spans, node.Span())
		return true
	})
	return spans
}

// Count returns the number of nodes under n, n included
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// TreeVisitor renders an indented, one-node-per-line tree
type TreeVisitor struct {
	BaseVisitor
	builder   strings.Builder
	indent    int
	withSpans bool
}

// NewTreeVisitor creates a tree printer; withSpans appends each span
func NewTreeVisitor(withSpans bool) *TreeVisitor {
	return &TreeVisitor{withSpans: withSpans}
}

// String returns the rendered tree
func (tv *TreeVisitor) String() string {
	return tv.builder.String()
}

func (tv *TreeVisitor) line(n Node, label string) {
	tv.builder.WriteString(strings.Repeat("  ", tv.indent))
	tv.builder.WriteString(label)
	if tv.withSpans && n.Span().IsValid() {
		tv.builder.WriteString(" @")
		tv.builder.WriteString(n.Span().String())
	}
	tv.builder.WriteByte('\n')
}

func (tv *TreeVisitor) children(n Node) {
	tv.indent++
	for _, c := range Children(n) {
		c.Accept(tv)
	}
	tv.indent--
}

func (tv *TreeVisitor) VisitProgram(p *Program) interface{} {
	tv.line(p, "Program "+quoteOrNone(p.Path))
	tv.children(p)
	return nil
}

func (tv *TreeVisitor) VisitDeclaration(d *Declaration) interface{} {
	tv.line(d, "Declaration "+d.Name)
	tv.children(d)
	return nil
}

func (tv *TreeVisitor) VisitTypeDeclaration(t *TypeDeclaration) interface{} {
	tv.line(t, "TypeDeclaration "+t.Name)
	tv.children(t)
	return nil
}

func (tv *TreeVisitor) VisitTopLevelExpr(t *TopLevelExpr) interface{} {
	tv.line(t, "TopLevelExpr")
	tv.children(t)
	return nil
}

func (tv *TreeVisitor) VisitCall(c *Call) interface{} {
	tv.line(c, fmt.Sprintf("Call (%d args)", len(c.Args)))
	tv.children(c)
	return nil
}

func (tv *TreeVisitor) VisitLambda(l *Lambda) interface{} {
	tv.line(l, "Lambda ("+strings.Join(l.Params, " ")+")")
	tv.children(l)
	return nil
}

func (tv *TreeVisitor) VisitVariable(v *Variable) interface{} {
	tv.line(v, "Variable "+v.Name)
	return nil
}

func (tv *TreeVisitor) VisitIntLiteral(l *IntLiteral) interface{} {
	tv.line(l, "IntLiteral "+strconv.FormatInt(l.Value, 10))
	return nil
}

func (tv *TreeVisitor) VisitFloatLiteral(l *FloatLiteral) interface{} {
	tv.line(l, "FloatLiteral "+FormatFloat(l.Value))
	return nil
}

func (tv *TreeVisitor) VisitCharLiteral(l *CharLiteral) interface{} {
	tv.line(l, "CharLiteral "+strconv.QuoteRune(l.Value))
	return nil
}

func (tv *TreeVisitor) VisitStringLiteral(l *StringLiteral) interface{} {
	tv.line(l, "StringLiteral "+strconv.Quote(l.Value))
	return nil
}

// Tree renders n as an indented tree
func Tree(n Node, withSpans bool) string {
	if isNil(n) {
		return ""
	}
	tv := NewTreeVisitor(withSpans)
	n.Accept(tv)
	return tv.String()
}

// Dump exports n as nested maps and slices suitable for JSON or YAML
// encoding. Every map has a "node" key naming the variant; spans are
// included when withSpans is set.
func Dump(n Node, withSpans bool) map[string]interface{} {
	if isNil(n) {
		return nil
	}
	m := map[string]interface{}{}
	switch v := n.(type) {
	case *Program:
		m["node"] = "Program"
		if v.Path != "" {
			m["path"] = v.Path
		}
		instr := make([]interface{}, 0, len(v.Instructions))
		for _, s := range v.Instructions {
			instr = append(instr, Dump(s, withSpans))
		}
		m["instructions"] = instr
	case *Declaration:
		m["node"] = "Declaration"
		m["name"] = v.Name
		m["value"] = Dump(v.Value, withSpans)
	case *TypeDeclaration:
		m["node"] = "TypeDeclaration"
		m["name"] = v.Name
		m["type"] = Dump(v.Type, withSpans)
	case *TopLevelExpr:
		m["node"] = "TopLevelExpr"
		m["expr"] = Dump(v.Expr, withSpans)
	case *Call:
		m["node"] = "Call"
		m["callee"] = Dump(v.Callee, withSpans)
		args := make([]interface{}, 0, len(v.Args))
		for _, a := range v.Args {
			args = append(args, Dump(a, withSpans))
		}
		m["args"] = args
	case *Lambda:
		m["node"] = "Lambda"
		params := make([]interface{}, len(v.Params))
		for i, p := range v.Params {
			params[i] = p
		}
		m["params"] = params
		m["body"] = Dump(v.Body, withSpans)
	case *Variable:
		m["node"] = "Variable"
		m["name"] = v.Name
	case *IntLiteral:
		m["node"] = "IntLiteral"
		m["value"] = v.Value
	case *FloatLiteral:
		m["node"] = "FloatLiteral"
		m["value"] = v.Value
	case *CharLiteral:
		m["node"] = "CharLiteral"
		m["value"] = string(v.Value)
	case *StringLiteral:
		m["node"] = "StringLiteral"
		m["value"] = v.Value
	}
	if withSpans && n.Span().IsValid() {
		m["span"] = dumpSpan(n.Span())
	}
	return m
}

func dumpSpan(s Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{"line": s.Start.Line, "column": s.Start.Column, "offset": s.Start.Offset},
		"end":   map[string]interface{}{"line": s.End.Line, "column": s.End.Column, "offset": s.End.Offset},
	}
}
