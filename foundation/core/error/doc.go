// Package error provides structured error handling for the Acid toolchain.
//
// Package: error
// Title: Acid Error Handling Framework
// Description: Implements a coded error type carrying severity, operation,
//              free-form details and a captured stack trace. Domain packages
//              keep their own positioned error values and convert them into
//              this type at the boundary where errors are logged or shown.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-02-14 v0.2.0: Reduced code set to the Acid front end, added lexical/syntax codes
//
// Usage:
//   import mdwerror "github.com/msto63/acid/foundation/core/error"
//
//   err := mdwerror.New("unterminated block comment").
//     WithCode(mdwerror.CodeAcidLexical).
//     WithDetail("line", 3)
//
//   wrapped := mdwerror.Wrap(err, "parse failed").
//     WithOperation("acid.Parse")
//
//   if mdwerror.GetCode(wrapped) == mdwerror.CodeAcidLexical {
//     os.Exit(mdwerror.GetCode(wrapped).ExitStatus())
//   }
package error
