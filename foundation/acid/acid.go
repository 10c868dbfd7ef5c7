// File: acid.go
// Title: Acid Engine
// Description: High-level entry point combining lexer and parser with
//              logging, timing, file reading and coded error conversion.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL engine
// - 2025-02-14 v0.2.0: Acid parse-only engine

package acid

import (
	"errors"
	"time"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwparser "github.com/msto63/acid/foundation/acid/parser"
	mdwregistry "github.com/msto63/acid/foundation/acid/registry"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwlog "github.com/msto63/acid/foundation/core/log"
	mdwfilex "github.com/msto63/acid/foundation/utils/filex"
)

// Engine parses Acid source
type Engine struct {
	parser  *mdwparser.Parser
	logger  *mdwlog.Logger
	options Options
}

// Options configures the Acid engine
type Options struct {
	// Logger for engine and parser (optional, defaults to the default logger)
	Logger *mdwlog.Logger

	// MaxInputLength limits source size in bytes (default: 1 MiB, negative: unlimited)
	MaxInputLength int

	// MaxDepth limits expression nesting (default: 10000)
	MaxDepth int

	// SlowParseThreshold logs a warning for parses that take longer (0: off)
	SlowParseThreshold time.Duration

	// Statements and Expressions replace the default grammar when set
	Statements  *mdwregistry.Registry[mdwparser.StmtRule]
	Expressions *mdwregistry.Registry[mdwparser.ExprRule]
}

// NewEngine creates an engine. At most one Options value is used.
func NewEngine(opts ...Options) (*Engine, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = mdwlog.GetDefault()
	}

	logger := o.Logger.WithField("component", "acid-engine")

	p, err := mdwparser.New(mdwparser.Options{
		Logger:         o.Logger,
		MaxInputLength: o.MaxInputLength,
		MaxDepth:       o.MaxDepth,
		Statements:     o.Statements,
		Expressions:    o.Expressions,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to initialize Acid parser").
			WithOperation("acid.NewEngine")
	}

	logger.Debug("Acid engine initialized", mdwlog.Fields{
		"maxInputLength": p.MaxInputLength(),
		"customGrammar":  o.Statements != nil || o.Expressions != nil,
	})

	return &Engine{parser: p, logger: logger, options: o}, nil
}

// Tokenize lexes source without parsing it. path names the source in
// errors and may be empty.
func (e *Engine) Tokenize(source, path string) ([]mdwparser.Token, error) {
	tokens, _, err := e.parser.Tokenize(source, path)
	if err != nil {
		return nil, coded(err)
	}
	e.logger.Debug("Acid source tokenized", mdwlog.Fields{"tokens": len(tokens)})
	return tokens, nil
}

// Parse parses source. path names the source in errors and may be empty.
// Parse failures are *mdwerror.Error values wrapping a *parser.Error.
func (e *Engine) Parse(source, path string) (*mdwast.Program, error) {
	timer := e.logger.StartTimer("acid.parse").
		WithField("path", path).
		WithField("bytes", len(source))

	prog, err := e.parser.Parse(source, path)
	if err != nil {
		timer.StopWithResult(false, nil)
		return nil, coded(err)
	}

	elapsed := timer.WithField("instructions", len(prog.Instructions)).Stop()
	if t := e.options.SlowParseThreshold; t > 0 && elapsed > t {
		e.logger.Warn("Slow Acid parse", mdwlog.Fields{
			"path":      path,
			"bytes":     len(source),
			"elapsed":   elapsed.String(),
			"threshold": t.String(),
		})
	}
	return prog, nil
}

// ReadSource reads a source file under the engine's input limit
func (e *Engine) ReadSource(path string) (string, error) {
	limit := int64(e.parser.MaxInputLength())
	if limit < 0 {
		limit = 0
	}
	source, err := mdwfilex.ReadSource(path, limit)
	if err != nil {
		e.logger.Debug("Reading Acid source failed", mdwlog.Fields{"path": path, "error": err.Error()})
		return "", err
	}
	return source, nil
}

// ParseFile reads and parses the file at path
func (e *Engine) ParseFile(path string) (*mdwast.Program, error) {
	source, err := e.ReadSource(path)
	if err != nil {
		return nil, err
	}
	return e.Parse(source, path)
}

// Parser returns the underlying parser
func (e *Engine) Parser() *mdwparser.Parser {
	return e.parser
}

// coded converts parser failures to foundation errors and passes anything
// else through
func coded(err error) error {
	var perr *mdwparser.Error
	if errors.As(err, &perr) {
		return perr.Coded()
	}
	return err
}

// ParseError extracts the positioned parse failure from err
func ParseError(err error) (*mdwparser.Error, bool) {
	var perr *mdwparser.Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
