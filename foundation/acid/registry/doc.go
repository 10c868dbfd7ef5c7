// File: doc.go
// Title: Acid Rule Registry Package Documentation
// Description: Ordered, named rule tables for the Acid parser.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL object registry
// - 2025-02-14 v0.2.0: Generic priority registry for grammar rules

/*
Package registry keeps named rules ordered by priority.

A registry is built once, handed to the parser and snapshotted there, so no
rule table is shared as mutable global state. Lower priorities are tried
first; rules with equal priority keep their registration order.

	reg := registry.New[parser.ExprRule](registry.Options{Name: "expressions"})
	reg.MustRegister("variable", 1, variableRule)
	for _, rule := range reg.Ordered() {
		...
	}
*/
package registry
