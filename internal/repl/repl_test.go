package repl

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/msto63/acid/foundation/acid"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwlog "github.com/msto63/acid/foundation/core/log"
	"github.com/msto63/acid/internal/render"
	"github.com/msto63/acid/pkg/core/version"
)

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	engine, err := acid.NewEngine(acid.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.Discard()
	}
	return New(engine, opts)
}

// scriptReader replays lines and records the prompts it was shown
type scriptReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *scriptReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func TestExecuteSource(t *testing.T) {
	s := newSession(t, Options{})

	res := s.Execute("(define pi 3.14)")
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	want := `Program(path=None, instructions=[Declaration(name="pi", value=FloatLiteral(value=3.14))])` + "\n"
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}

	if res := s.Execute("   "); res.Output != "" || res.Err != nil || s.Count() != 1 {
		t.Errorf("blank input changed state: %+v, count %d", res, s.Count())
	}
}

func TestExecuteErrorReport(t *testing.T) {
	s := newSession(t, Options{})

	res := s.Execute("(define)")
	want := "File <stdin>, input #0\n" +
		"An error has occurred:\n" +
		"ParseError: 1:8: expected ATOM, got RPAREN\n" +
		"1 | (define)\n" +
		"  |        ^\n"
	if res.Output != want {
		t.Errorf("got\n%s\nwant\n%s", res.Output, want)
	}
	if mdwerror.GetCode(res.Err) != mdwerror.CodeAcidSyntax {
		t.Errorf("error = %v, want ACID_SYNTAX", res.Err)
	}
	if s.Count() != 0 {
		t.Errorf("failed input advanced the counter to %d", s.Count())
	}

	s.Execute("(f)")
	res = s.Execute("(f [")
	if !strings.HasPrefix(res.Output, "File <stdin>, input #1\n") {
		t.Errorf("counter not shown:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "LexicalError: 1:4: failed to tokenize") {
		t.Errorf("lexical error not named:\n%s", res.Output)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		errType  string
		check    func(t *testing.T, s *Session, res Result)
	}{
		{name: "help", input: ":help", contains: "Commands available from the prompt:"},
		{name: "help alias", input: ":h", contains: ":load <path>"},
		{name: "help for command", input: ":h load", contains: `Alias: "l"`},
		{name: "help for alias", input: ":help cls", contains: `Showing help for command "clear"`},
		{name: "help unknown", input: ":help nope", errType: "CommandError"},
		{
			name: "prompt", input: `:prompt "acid> "`,
			check: func(t *testing.T, s *Session, _ Result) {
				if s.Prompt() != "acid> " {
					t.Errorf("Prompt() = %q", s.Prompt())
				}
			},
		},
		{name: "prompt needs string", input: ":prompt acid", contains: "`:prompt`: expected string", errType: "CommandError"},
		{name: "prompt arity", input: ":prompt", contains: "usage: :prompt <string>", errType: "CommandError"},
		{name: "prompt bad argument", input: ":prompt (f)", errType: "CommandError"},
		{name: "argument parse error", input: `:prompt "open`, errType: "LexicalError"},
		{
			name: "format", input: ":format json", contains: "format: json",
			check: func(t *testing.T, s *Session, _ Result) {
				if s.Format() != render.FormatJSON {
					t.Errorf("Format() = %q", s.Format())
				}
			},
		},
		{name: "format invalid", input: ":format xml", errType: "CommandError"},
		{name: "spans", input: ":spans on", contains: "spans: on"},
		{name: "spans invalid", input: ":spans maybe", errType: "CommandError"},
		{name: "lex", input: ":lex (f 'c')", contains: "CHAR_LITERAL"},
		{name: "lex error", input: ":lex [", errType: "LexicalError"},
		{
			name: "quit", input: ":q", contains: "Goodbye.",
			check: func(t *testing.T, _ *Session, res Result) {
				if !res.Quit {
					t.Error("Quit not set")
				}
			},
		},
		{
			name: "clear", input: ":cls",
			check: func(t *testing.T, _ *Session, res Result) {
				if !res.Clear {
					t.Error("Clear not set")
				}
			},
		},
		{name: "reload without module", input: ":reload", contains: "no module loaded", errType: "CommandError"},
		{name: "unknown", input: ":frobnicate", contains: "unknown command", errType: "CommandError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, Options{})
			res := s.Execute(tt.input)
			if tt.contains != "" && !strings.Contains(res.Output, tt.contains) {
				t.Errorf("output lacks %q:\n%s", tt.contains, res.Output)
			}
			if tt.errType == "" && res.Err != nil {
				t.Errorf("unexpected error: %v", res.Err)
			}
			if tt.errType != "" {
				if res.Err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(res.Output, "\n"+tt.errType+": ") {
					t.Errorf("report does not name %s:\n%s", tt.errType, res.Output)
				}
			}
			if tt.check != nil {
				tt.check(t, s, res)
			}
		})
	}
}

func TestFormatAffectsSourceOutput(t *testing.T) {
	s := newSession(t, Options{})
	s.Execute(":format tree")
	s.Execute(":spans on")

	res := s.Execute("(f)")
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if !strings.Contains(res.Output, "Call (0 args) @1:1-1:4") {
		t.Errorf("tree output = %q", res.Output)
	}
}

func TestLoadAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.acid")
	if err := os.WriteFile(path, []byte("(define id (lambda (x) x))\n(id 1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newSession(t, Options{})
	res := s.Execute(`:load "` + path + `"`)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if want := "Loading file \"" + path + "\"\n2 instructions\n"; res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
	if s.Path() != path || s.Program() == nil || len(s.Program().Instructions) != 2 {
		t.Fatalf("module not loaded: path %q", s.Path())
	}

	if err := os.WriteFile(path, []byte("(define id\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res = s.Execute(":r")
	if res.Err == nil {
		t.Fatal("reload of broken file succeeded")
	}
	wantHead := "File \"" + path + "\", input #1\nAn error has occurred:\nParseError: " + path + ":2:1: "
	if !strings.HasPrefix(res.Output, wantHead) {
		t.Errorf("got\n%s\nwant prefix\n%s", res.Output, wantHead)
	}

	res = s.Execute(`:l "` + filepath.Join(dir, "missing.acid") + `"`)
	if !strings.Contains(res.Output, "FileNotFoundError: ") {
		t.Errorf("missing file report:\n%s", res.Output)
	}
}

func TestReadInputContinuation(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    string
		prompts []string
	}{
		{"single line", []string{"(f 1)"}, "(f 1)", []string{"> "}},
		{"open form", []string{"(define x", "  (f 1)", ")"}, "(define x\n  (f 1)\n)", []string{"> ", "... ", "... "}},
		{"open comment", []string{"/* a", "b */ (f)"}, "/* a\nb */ (f)", []string{"> ", "... "}},
		{"syntax error ends input", []string{"(define)", "(f)"}, "(define)", []string{"> "}},
		{"command", []string{":load (", "x"}, ":load (", []string{"> "}},
		{"end of input inside form", []string{"(f"}, "(f", []string{"> ", "... "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, Options{})
			r := &scriptReader{lines: tt.lines}
			got, err := s.ReadInput(r)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("input = %q, want %q", got, tt.want)
			}
			if !reflect.DeepEqual(r.prompts, tt.prompts) {
				t.Errorf("prompts = %q, want %q", r.prompts, tt.prompts)
			}
		})
	}

	s := newSession(t, Options{})
	if _, err := s.ReadInput(&scriptReader{}); err != io.EOF {
		t.Errorf("empty reader error = %v, want io.EOF", err)
	}
}

func TestRun(t *testing.T) {
	s := newSession(t, Options{})
	r := &scriptReader{lines: []string{"(f)", "(define)", `:prompt "$ "`, "(g", " 2)", ":q", "(never)"}}
	var out bytes.Buffer

	if err := s.Run(context.Background(), r, &out); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{
		`TopLevelExpr(expr=Call(callee=Variable(name="f"), args=[]))`,
		"File <stdin>, input #1\nAn error has occurred:\n",
		`args=[IntLiteral(value=2)]`,
		"Goodbye.\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "never") || len(r.lines) != 1 {
		t.Error("input after :quit was read")
	}
	if want := []string{"> ", "> ", "> ", "$ ", "... ", "$ "}; !reflect.DeepEqual(r.prompts, want) {
		t.Errorf("prompts = %q, want %q", r.prompts, want)
	}
	if want := []string{"(f)", `:prompt "$ "`, "(g  2)"}; !reflect.DeepEqual(r.history, want) {
		t.Errorf("history = %q, want %q", r.history, want)
	}
}

func TestRunStopsAtEOFAndCancel(t *testing.T) {
	s := newSession(t, Options{})
	var out bytes.Buffer
	if err := s.Run(context.Background(), &scriptReader{lines: []string{"(f)"}}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\n\n") {
		t.Errorf("no newline after end of input: %q", out.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, &scriptReader{lines: []string{"(f)"}}, &out); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestHistory(t *testing.T) {
	s := newSession(t, Options{HistorySize: 2})
	for _, in := range []string{"(a)", "(b)", "(b)", "(c)"} {
		s.Execute(in)
	}
	if got, want := s.History(), []string{"(b)", "(c)"}; !reflect.DeepEqual(got, want) {
		t.Errorf("History() = %q, want %q", got, want)
	}

	none := newSession(t, Options{})
	none.Execute("(a)")
	if len(none.History()) != 0 {
		t.Error("history kept without a size")
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{":l", []string{":l", ":lex", ":load"}},
		{":re", []string{":reload"}},
		{":q", []string{":q", ":quit"}},
		{":load x", nil},
		{"(f", nil},
	}
	s := newSession(t, Options{})
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := s.Complete(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSessionsHaveOwnCommandTables(t *testing.T) {
	a := newSession(t, Options{})
	b := newSession(t, Options{})
	if a.commands == b.commands || a.commands.list[0] == b.commands.list[0] {
		t.Fatal("sessions share command values")
	}
	if !reflect.DeepEqual(a.CommandNames(), b.CommandNames()) {
		t.Error("sessions should start with the same commands")
	}

	tests := []struct {
		name string
		want string
	}{
		{"l", "load"},
		{"load", "load"},
		{"cls", "clear"},
		{"h", "help"},
		{"spans", "spans"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := b.commands.lookup(tt.name)
			if !ok || c.name != tt.want {
				t.Errorf("lookup(%q) = %v, %v, want %s", tt.name, c, ok, tt.want)
			}
		})
	}
}

func TestTerminalHistoryLimit(t *testing.T) {
	term := &Terminal{historySize: 2}
	for _, item := range []string{"a", "b", "c"} {
		term.remember(item)
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(term.entries, want) {
		t.Errorf("entries = %q, want %q", term.entries, want)
	}
}

func TestBanner(t *testing.T) {
	b := Banner()
	if !strings.Contains(b, version.String()) || !strings.Contains(b, ":help") {
		t.Errorf("banner = %q", b)
	}
}

func TestLines(t *testing.T) {
	var out bytes.Buffer
	lines := NewLines(strings.NewReader("(f\n 1)\n:q\n"), &out)

	s := newSession(t, Options{})
	if err := s.Run(context.Background(), lines, &out); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	if !strings.HasPrefix(text, "> ... ") {
		t.Errorf("prompts not written: %q", text)
	}
	if !strings.Contains(text, "args=[IntLiteral(value=1)]") || !strings.HasSuffix(text, "> Goodbye.\n") {
		t.Errorf("output = %q", text)
	}
}
