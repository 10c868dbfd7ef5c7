// Package filex provides file helpers for loading Acid source and
// configuration files.
//
// Package: filex
// Title: File Utilities
// Description: Existence checks, home-directory expansion, search-path
//              resolution and size-limited source reading with structured
//              errors.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2025-02-14 v0.2.0: Reduced to source and config loading
package filex
