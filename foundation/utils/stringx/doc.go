// Package stringx provides Unicode-aware string helpers used when rendering
// Acid source excerpts and diagnostics.
//
// Package: stringx
// Title: String Utilities
// Description: Rune-aware truncation, padding and line access. Column numbers
//              reported by the lexer count runes, so everything here counts
//              runes as well.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2025-02-14 v0.2.0: Reduced to the helpers the diagnostics renderer needs
package stringx
