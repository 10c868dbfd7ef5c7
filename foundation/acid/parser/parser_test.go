// File: parser_test.go
// Title: Acid Parser Tests
// Description: Tests for statement and expression rules, backtracking,
//              error selection, spans and limits.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: TCOL parser tests
// - 2025-02-14 v0.2.0: Acid parser tests

package parser

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwregistry "github.com/msto63/acid/foundation/acid/registry"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwlog "github.com/msto63/acid/foundation/core/log"
)

func mustParse(t *testing.T, source string) *mdwast.Program {
	t.Helper()
	prog, err := Parse(source, "")
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", source, err)
	}
	return prog
}

func parseError(t *testing.T, p *Parser, source string) *Error {
	t.Helper()
	_, err := p.Parse(source, "")
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", source)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not *Error", err)
	}
	return perr
}

func newParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return p
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"declaration",
			"(define pi 3.14)",
			`[Declaration(name="pi", value=FloatLiteral(value=3.14))]`,
		},
		{
			"lambda",
			"(lambda (x y) (+ x y))",
			`[TopLevelExpr(expr=Lambda(params=["x", "y"], body=Call(callee=Variable(name="+"), args=[Variable(name="x"), Variable(name="y")])))]`,
		},
		{
			"lambda without params",
			"(lambda () 1)",
			`[TopLevelExpr(expr=Lambda(params=[], body=IntLiteral(value=1)))]`,
		},
		{
			"call without args",
			"(f)",
			`[TopLevelExpr(expr=Call(callee=Variable(name="f"), args=[]))]`,
		},
		{
			"call with call as callee",
			"((f 1) 'a')",
			`[TopLevelExpr(expr=Call(callee=Call(callee=Variable(name="f"), args=[IntLiteral(value=1)]), args=[CharLiteral(value='a')]))]`,
		},
		{
			"type declaration",
			"(:: not (lambda (Bool) Bool))",
			`[TypeDeclaration(name="not", type=Lambda(params=["Bool"], body=Variable(name="Bool")))]`,
		},
		{
			"hastype keyword",
			"(hastype n Int)",
			`[TypeDeclaration(name="n", type=Variable(name="Int"))]`,
		},
		{
			"bare literals",
			`42 2.0 "s" x`,
			`[TopLevelExpr(expr=IntLiteral(value=42)), TopLevelExpr(expr=FloatLiteral(value=2.0)), TopLevelExpr(expr=StringLiteral(value="s")), TopLevelExpr(expr=Variable(name="x"))]`,
		},
		{
			"primed names",
			"(define f' g')",
			`[Declaration(name="f'", value=Variable(name="g'"))]`,
		},
		{
			"comments between statements",
			"(define a 1) // one\n/* two */ (define b 2)",
			`[Declaration(name="a", value=IntLiteral(value=1)), Declaration(name="b", value=IntLiteral(value=2))]`,
		},
		{
			"empty",
			"  // nothing\n",
			`[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.source)
			want := "Program(path=None, instructions=" + tt.want + ")"
			if got := prog.String(); got != want {
				t.Errorf("got  %s\nwant %s", got, want)
			}
			if err := prog.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestParseRecordsPath(t *testing.T) {
	prog, err := Parse("(f)", "main.acid")
	if err != nil {
		t.Fatal(err)
	}
	if prog.Path != "main.acid" || !strings.HasPrefix(prog.String(), `Program(path="main.acid"`) {
		t.Errorf("path not recorded: %s", prog)
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   mdwast.Expr
	}{
		{`"a\nb"`, &mdwast.StringLiteral{Value: "a\nb"}},
		{`"tab\there \"q\" \\"`, &mdwast.StringLiteral{Value: "tab\there \"q\" \\"}},
		{`"\x41\u00e9\101"`, &mdwast.StringLiteral{Value: "AéA"}},
		{`'\n'`, &mdwast.CharLiteral{Value: '\n'}},
		{`'\''`, &mdwast.CharLiteral{Value: '\''}},
		{`'é'`, &mdwast.CharLiteral{Value: 'é'}},
		{`'\\'`, &mdwast.CharLiteral{Value: '\\'}},
		{"9223372036854775807", &mdwast.IntLiteral{Value: 9223372036854775807}},
		{"0.5", &mdwast.FloatLiteral{Value: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			prog := mustParse(t, tt.source)
			if len(prog.Instructions) != 1 {
				t.Fatalf("got %d instructions", len(prog.Instructions))
			}
			top, ok := prog.Instructions[0].(*mdwast.TopLevelExpr)
			if !ok {
				t.Fatalf("got %T, want *TopLevelExpr", prog.Instructions[0])
			}
			if top.Expr.String() != tt.want.String() {
				t.Errorf("got %s, want %s", top.Expr, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		kind    ErrorKind
		message string
		at      string
	}{
		{"missing declaration name", "(define)", KindUnexpectedToken, "expected ATOM, got RPAREN", "1:8"},
		{"keyword prefix as name", "(define defined 1)", KindUnexpectedToken, "expected ATOM, got DEFINE", "1:9"},
		{"missing close paren", "(f 1 2", KindUnexpectedEOF, "unexpected end of input, expected RPAREN", "1:7"},
		{"unclosed declaration", "(define x 1", KindUnexpectedEOF, "unexpected end of input, expected RPAREN", "1:12"},
		{"stray close paren", ")", KindNoRuleMatched, "expected statement, got RPAREN", "1:1"},
		{"stray comment end", "(f) */", KindNoRuleMatched, "expected statement, got COMMENT_END", "1:5"},
		{"lambda without param list", "(lambda x)", KindUnexpectedToken, "expected LPAREN, got ATOM", "1:9"},
		{"farthest failure in argument", "(f (lambda x) 3)", KindUnexpectedToken, "expected LPAREN, got ATOM", "1:12"},
		{"bad param", "(lambda (x 1) x)", KindUnexpectedToken, "expected RPAREN, got INT_LITERAL", "1:12"},
		{"int overflow", "99999999999999999999", KindUnexpectedToken, "invalid INT_LITERAL 99999999999999999999: value out of range", "1:1"},
		{"int64 max plus one", "(f 9223372036854775808)", KindUnexpectedToken, "value out of range", "1:4"},
		{"char with two runes", `'\q'`, KindUnexpectedToken, "exactly one character", "1:1"},
		{"lexical", "(f\n  #{)", KindLexical, `failed to tokenize code near "{)"`, "2:4"},
		{"unterminated comment", "(f) /* open", KindLexical, "unterminated block comment", "1:5"},
	}

	p := newParser(t, Options{Logger: mdwlog.Discard()})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseError(t, p, tt.source)
			if perr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", perr.Kind, tt.kind)
			}
			if !strings.Contains(perr.Message, tt.message) {
				t.Errorf("message = %q, want %q", perr.Message, tt.message)
			}
			if got := perr.Position().String(); got != tt.at {
				t.Errorf("position = %s, want %s", got, tt.at)
			}
		})
	}
}

func TestIfHasNoRule(t *testing.T) {
	perr := parseError(t, newParser(t, Options{Logger: mdwlog.Discard()}), "(if a b)")
	if perr.Kind != KindUnexpectedToken || perr.Found != "IF" {
		t.Errorf("got %s %q, want unexpected IF", perr.Kind, perr.Message)
	}
	if perr.Position().String() != "1:2" {
		t.Errorf("position = %s", perr.Position())
	}
}

func TestErrorFormatting(t *testing.T) {
	_, err := Parse("(define)", "main.acid")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "main.acid:1:8: expected ATOM, got RPAREN"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	_, err = Parse("(define)", "")
	if got, want := err.Error(), "1:8: expected ATOM, got RPAREN"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorCoded(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   Options
		code   mdwerror.Code
	}{
		{"syntax", "(define)", Options{}, mdwerror.CodeAcidSyntax},
		{"lexical", "[", Options{}, mdwerror.CodeAcidLexical},
		{"too large", "(f x)", Options{MaxInputLength: 3}, mdwerror.CodeAcidTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = mdwlog.Discard()
			perr := parseError(t, newParser(t, tt.opts), tt.source)
			coded := perr.Coded()
			if coded.Code() != tt.code {
				t.Errorf("code = %s, want %s", coded.Code(), tt.code)
			}
			if coded.Severity() != mdwerror.SeverityLow {
				t.Errorf("severity = %v", coded.Severity())
			}
			if coded.Details()["kind"] != perr.Kind.String() {
				t.Errorf("details = %v", coded.Details())
			}
			var back *Error
			if !errors.As(coded, &back) || back != perr {
				t.Error("parse error not reachable through Coded()")
			}
		})
	}
}

// greedyRule consumes tokens before failing; nothing of that may leak into
// the rules tried after it
func greedyRule(_ *Parser, c Cursor) (mdwast.Expr, Cursor, *Error) {
	for i := 0; i < 2; i++ {
		if _, ok := c.Peek(); !ok {
			break
		}
		c = c.Advance()
	}
	tok, _ := c.Peek()
	return nil, c, unexpectedToken(tok, c.Index(), "nothing")
}

func TestBacktrackingLeavesNoTrace(t *testing.T) {
	exprs := mdwregistry.New[ExprRule](mdwregistry.Options{Name: "expressions", Logger: mdwlog.Discard()}).
		MustRegister("greedy", 1, greedyRule).
		MustRegister("variable", 1, consumeVariable).
		MustRegister("call", 2, consumeCall)
	p := newParser(t, Options{Logger: mdwlog.Discard(), Expressions: exprs})

	prog, err := p.Parse("(f x)", "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := `Program(path=None, instructions=[TopLevelExpr(expr=Call(callee=Variable(name="f"), args=[Variable(name="x")]))])`
	if prog.String() != want {
		t.Errorf("got %s", prog)
	}
}

func TestNewRejectsEmptyRules(t *testing.T) {
	empty := mdwregistry.New[ExprRule](mdwregistry.Options{Logger: mdwlog.Discard()})
	_, err := New(Options{Logger: mdwlog.Discard(), Expressions: empty})
	if mdwerror.GetCode(err) != mdwerror.CodeInvalidInput {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestCursorIsImmutable(t *testing.T) {
	tokens, end, err := tokenizeAll("(a b)")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCursor(tokens, end)
	next := c.Advance().Advance()
	if c.Index() != 0 || next.Index() != 2 {
		t.Errorf("indexes = %d, %d", c.Index(), next.Index())
	}
	if _, _, perr := next.Expect(TokenRParen); perr == nil || perr.Found != "ATOM" {
		t.Errorf("Expect(RPAREN) at b = %v", perr)
	}
	done := next.Advance().Advance()
	if !done.Done() || done.Advance().Index() != len(tokens) {
		t.Error("cursor moved past the end")
	}
	if _, _, perr := done.Expect(TokenRParen); perr == nil || perr.Kind != KindUnexpectedEOF {
		t.Errorf("Expect at end = %v", perr)
	}
}

func TestSpans(t *testing.T) {
	source := "(define sq\n  (lambda (x) (* x x)))\n(sq 'c' \"s\" 1.5)"
	prog := mustParse(t, source)

	whole := mdwast.NewSpan(mdwast.StartPosition(), mdwast.StartPosition().Advance(source))
	mdwast.Walk(prog, func(n mdwast.Node) bool {
		if !n.Span().IsValid() {
			t.Errorf("%s has invalid span %s", n, n.Span())
		}
		if !whole.Encloses(n.Span()) {
			t.Errorf("%s span %s outside source", n, n.Span())
		}
		for _, child := range mdwast.Children(n) {
			if !n.Span().Encloses(child.Span()) {
				t.Errorf("child %s span %s not inside %s", child, child.Span(), n.Span())
			}
		}
		return true
	})

	decl := prog.Instructions[0].(*mdwast.Declaration)
	if got := decl.Span().String(); got != "1:1-2:24" {
		t.Errorf("declaration span = %s", got)
	}
	if got := prog.Span().String(); got != "1:1-3:17" {
		t.Errorf("program span = %s", got)
	}
	if n := len(mdwast.CollectSpans(prog)); n != mdwast.Count(prog) {
		t.Errorf("%d spans for %d nodes", n, mdwast.Count(prog))
	}
}

func TestCallArgumentPosition(t *testing.T) {
	prog := mustParse(t, "(+ 1 2)")
	call := prog.Instructions[0].(*mdwast.TopLevelExpr).Expr.(*mdwast.Call)
	if got := call.Args[0].Position().String(); got != "1:4" {
		t.Errorf("position of 1 = %s, want 1:4", got)
	}
}

func TestBlockCommentNewlinesCount(t *testing.T) {
	prog := mustParse(t, "/* a\nb\nc */ x")
	if got := prog.Instructions[0].Position().String(); got != "3:6" {
		t.Errorf("position of x = %s, want 3:6", got)
	}
}

func TestEmptyProgramSpan(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"", "1:1-1:1"},
		{"  \n ", "1:1-2:2"},
		{"/* only */", "1:1-1:11"},
	}
	for _, tt := range tests {
		prog := mustParse(t, tt.source)
		if len(prog.Instructions) != 0 {
			t.Errorf("%q: got instructions", tt.source)
		}
		if got := prog.Span().String(); got != tt.want {
			t.Errorf("%q: span = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestWhitespaceDoesNotChangeTree(t *testing.T) {
	a := mustParse(t, "(define f (lambda (x) (g x 1)))")
	b := mustParse(t, "(define f\n  /* doc */ (lambda (x)\n    (g x 1))) // end")
	if a.String() != b.String() {
		t.Errorf("trees differ:\n%s\n%s", a, b)
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 1000
	source := strings.Repeat("(f ", depth) + "x" + strings.Repeat(")", depth)
	prog := mustParse(t, source)
	// each level is a call plus its callee, then x, program and statement
	if got, want := mdwast.Count(prog), 2*depth+3; got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
}

func TestLimits(t *testing.T) {
	nested := strings.Repeat("(f ", 20) + "x" + strings.Repeat(")", 20)

	p := newParser(t, Options{Logger: mdwlog.Discard(), MaxDepth: 10})
	perr := parseError(t, p, nested)
	if perr.Kind != KindLimitExceeded || !strings.Contains(perr.Message, "exceeds 10 levels") {
		t.Errorf("got %s %q", perr.Kind, perr.Message)
	}
	if _, err := p.Parse("(f (g (h x)))", ""); err != nil {
		t.Errorf("shallow nesting rejected: %v", err)
	}

	p = newParser(t, Options{Logger: mdwlog.Discard(), MaxInputLength: 4})
	perr = parseError(t, p, "(f x)")
	if perr.Kind != KindLimitExceeded {
		t.Errorf("kind = %s, want limit-exceeded", perr.Kind)
	}

	p = newParser(t, Options{Logger: mdwlog.Discard(), MaxInputLength: -1})
	if _, err := p.Parse(strings.Repeat("x", DefaultMaxInputLength+1), ""); err != nil {
		t.Errorf("disabled length limit still applied: %v", err)
	}
}

func TestParseDeterministic(t *testing.T) {
	source := "(define id (lambda (x) x)) (id 'q') (f (lambda y) 1)"
	_, first := Parse(source, "a")
	_, second := Parse(source, "a")
	if first == nil || second == nil || first.Error() != second.Error() {
		t.Errorf("errors differ: %v / %v", first, second)
	}
}

func TestParserConcurrentUse(t *testing.T) {
	p := newParser(t, Options{Logger: mdwlog.Discard()})
	source := "(define add (lambda (a b) (+ a b))) (add 1 2)"
	want := mustParse(t, source).String()

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prog, err := p.Parse(source, "")
			if err != nil {
				errs <- err.Error()
				return
			}
			if got := prog.String(); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestRuleFailuresAreTraced(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelTrace, Output: &buf})
	p := newParser(t, Options{Logger: logger})

	if _, err := p.Parse("(define)", "t.acid"); err == nil {
		t.Fatal("expected error")
	}
	out := buf.String()
	for _, want := range []string{"Rule failed", "declaration", "Acid parsing failed", "acid-parser"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	source := strings.Repeat("(define add (lambda (x y) (+ x y))) (add 1 2.5 'c' \"s\")\n", 100)
	p, err := New(Options{Logger: mdwlog.Discard()})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(source, ""); err != nil {
			b.Fatal(err)
		}
	}
}

func TestErrorIncomplete(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"(define x", true},
		{"(f (g 1)", true},
		{"(f) /* still open", true},
		{"(define)", false},
		{")", false},
		{"(f [", false},
	}

	p := newParser(t, Options{Logger: mdwlog.Discard()})
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			perr := parseError(t, p, tt.source)
			if got := perr.Incomplete(); got != tt.want {
				t.Errorf("Incomplete() = %v, want %v (%v)", got, tt.want, perr)
			}
		})
	}
}
