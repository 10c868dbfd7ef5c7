// File: doc.go
// Title: Acid Abstract Syntax Tree Package Documentation
// Description: Defines source positions, spans and the syntax tree produced
//              by the Acid parser. Provides the visitor pattern and
//              structural export used by the JSON/YAML dumps.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST implementation
// - 2025-02-14 v0.2.0: Acid node set with spans

/*
Package ast defines the syntax tree of Acid programs.

The tree is a closed set of node types:

	Program
	  Stmt: Declaration, TypeDeclaration, TopLevelExpr
	  Expr: Call, Lambda, Variable,
	        IntLiteral, FloatLiteral, CharLiteral, StringLiteral

Every node carries a Span. Nodes produced by the parser always have a valid
span that lies inside the parsed source; nodes built by hand may leave it as
the zero value, which means "no location".

A Program exclusively owns its descendants. The parser never mutates a node
after handing it out.
*/
package ast
