// File: doc.go
// Title: Acid Parser Package Documentation
// Description: Lexer and backtracking parser for the Acid language.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL lexer and parser
// - 2025-02-14 v0.2.0: Acid lexer and rule-based parser

/*
Package parser turns Acid source text into a syntax tree.

Lexing is an ordered choice: at each position the token kinds are tried in
declaration order and the first one matching a non-empty prefix wins.
Whitespace and comments are dropped.

Parsing uses two rule tables, statements and expressions, each ordered by
priority. A rule receives an immutable Cursor and returns either a node and
the advanced cursor or an *Error; backtracking is simply retrying the next
rule with the original cursor. When every rule fails, the failure that got
farthest into the token stream is reported.

	prog, err := parser.Parse("(define pi 3.14)", "pi.acid")
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			fmt.Println(perr.Position())
		}
	}
*/
package parser
