// File: doc.go
// Title: Acid Front End Package Documentation
// Description: Documents the Acid front end: lexer, backtracking parser,
//              syntax tree and the engine facade tying them together.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL package documentation
// - 2025-02-14 v0.2.0: Rewritten for the Acid front end

/*
Package acid turns Acid source text into a typed syntax tree with source
spans.

Acid is a small parenthesized language:

	// a declaration
	(define square (lambda (x) (* x x)))

	// a type declaration and a top-level call
	(:: square (lambda (Int) Int))
	(square 4)

Sub-packages:

  - ast: node types, positions and spans, visitor, tree and map dumps
  - parser: lexer, rule tables, immutable cursor and the parser itself
  - registry: priority-ordered rule tables used by the parser

The Engine is the entry point for applications. It owns one configured
parser, logs through the mDW logger and converts parse failures into coded
foundation errors:

	engine, err := acid.NewEngine()
	if err != nil {
		return err
	}
	prog, err := engine.Parse("(define pi 3.14)", "main.acid")
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			fmt.Println(perr.Position(), perr.Message)
		}
		return err
	}
	fmt.Println(prog)

Nothing is evaluated or type checked; the front end stops at the tree.
*/
package acid
