// ============================================================================
// Acid - Lexer, Parser und REPL
// ============================================================================
//
// Package:     repl
// Description: Parse-only read-eval-print session shared by the plain line
//              reader and the terminal UI
// Author:      Mike Stoffels with Claude
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msto63/acid/foundation/acid"
	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwparser "github.com/msto63/acid/foundation/acid/parser"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwlog "github.com/msto63/acid/foundation/core/log"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
	"github.com/msto63/acid/internal/render"
)

// StdinName names interactive input in error reports
const StdinName = "<stdin>"

// Options configures a session
type Options struct {
	Prompt      string
	Format      render.Format
	Spans       bool
	Styles      render.Styles
	HistorySize int // 0 keeps no history
	Logger      *mdwlog.Logger
}

// Result is the outcome of one input
type Result struct {
	Output string
	Err    error
	Clear  bool // the screen should be cleared
	Quit   bool // the session is over
}

// Session holds the state of one REPL. Nothing is evaluated: source input is
// parsed and its tree printed. A Session is not safe for concurrent use.
type Session struct {
	engine   *acid.Engine
	logger   *mdwlog.Logger
	options  Options
	commands *commandTable

	prompt  string
	format  render.Format
	spans   bool
	path    string
	program *mdwast.Program
	count   int
	history []string
}

// New creates a session over engine
func New(engine *acid.Engine, opts Options) *Session {
	opts.Prompt = mdwstringx.FirstNonBlank(opts.Prompt, "> ")
	if opts.Format == "" {
		opts.Format = render.FormatText
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Session{
		engine:   engine,
		commands: defaultCommands(),
		logger:   opts.Logger.WithField("component", "acid-repl"),
		options:  opts,
		prompt:   opts.Prompt,
		format:   opts.Format,
		spans:    opts.Spans,
	}
}

// Prompt returns the current prompt
func (s *Session) Prompt() string { return s.prompt }

// Path returns the loaded file, empty when none was loaded
func (s *Session) Path() string { return s.path }

// Program returns the tree of the loaded file
func (s *Session) Program() *mdwast.Program { return s.program }

// Count returns the number of inputs handled without error
func (s *Session) Count() int { return s.count }

// Format returns the output format for trees
func (s *Session) Format() render.Format { return s.format }

// History returns past inputs, oldest first
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Execute handles one input: a `:command` or Acid source. Errors are
// reported in Output and returned in Err; only successful inputs advance
// the input counter.
func (s *Session) Execute(input string) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{}
	}
	s.remember(trimmed)

	var (
		res    Result
		err    error
		source string
	)
	if strings.HasPrefix(trimmed, ":") {
		res, err = s.command(trimmed[1:])
	} else {
		source = input
		res, err = s.source(input)
	}

	if err != nil {
		s.logger.WithField("input", s.count).LogError(err)
		res.Err = err
		res.Output = s.report(source, err)
		return res
	}

	s.count++
	return res
}

func (s *Session) source(input string) (Result, error) {
	prog, err := s.engine.Parse(input, "")
	if err != nil {
		return Result{}, err
	}
	out, err := render.ProgramString(prog, render.Options{Format: s.format, Spans: s.spans})
	if err != nil {
		return Result{}, err
	}
	return Result{Output: out}, nil
}

// Load parses the file at path and makes it the session's module
func (s *Session) Load(path string) (Result, error) {
	prog, err := s.engine.ParseFile(path)
	if err != nil {
		return Result{}, err
	}
	s.path = path
	s.program = prog

	s.logger.Info("Acid file loaded", mdwlog.Fields{
		"path":         path,
		"instructions": len(prog.Instructions),
	})
	return Result{Output: fmt.Sprintf("Loading file %q\n%d instructions\n", path, len(prog.Instructions))}, nil
}

// report renders an error the way the REPL always has: location, a fixed
// headline, then the error type and message
func (s *Session) report(source string, err error) string {
	var b strings.Builder
	if s.path == "" {
		fmt.Fprintf(&b, "File %s, input #%d\n", StdinName, s.count)
	} else {
		fmt.Fprintf(&b, "File %q, input #%d\n", s.path, s.count)
	}
	b.WriteString("An error has occurred:\n")

	var perr *mdwparser.Error
	if errors.As(err, &perr) {
		fmt.Fprintf(&b, "%s: %s\n", s.options.Styles.Error.Render(errorType(err)), perr.Error())
		if source != "" && perr.Path == "" {
			b.WriteString(render.Excerpt(source, perr, s.options.Styles))
		}
		return b.String()
	}
	fmt.Fprintf(&b, "%s: %s\n", s.options.Styles.Error.Render(errorType(err)), err.Error())
	return b.String()
}

// errorType names the failure class shown in reports
func errorType(err error) string {
	var perr *mdwparser.Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case mdwparser.KindLexical:
			return "LexicalError"
		case mdwparser.KindLimitExceeded:
			return "LimitError"
		default:
			return "ParseError"
		}
	}
	switch mdwerror.GetCode(err) {
	case mdwerror.CodeNotFound:
		return "FileNotFoundError"
	case mdwerror.CodeIOError:
		return "IOError"
	case mdwerror.CodeAcidTooLarge:
		return "LimitError"
	case mdwerror.CodeInvalidInput:
		return "CommandError"
	default:
		return "Error"
	}
}

func (s *Session) remember(input string) {
	if s.options.HistorySize <= 0 {
		return
	}
	if n := len(s.history); n > 0 && s.history[n-1] == input {
		return
	}
	s.history = append(s.history, input)
	if over := len(s.history) - s.options.HistorySize; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
}
