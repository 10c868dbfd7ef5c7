package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	mdwparser "github.com/msto63/acid/foundation/acid/parser"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
)

// Diagnostic renders err for a terminal. Parse failures show the offending
// source line with a caret under the span; other errors are a single line.
func Diagnostic(source string, err error, styles Styles) string {
	if err == nil {
		return ""
	}

	var perr *mdwparser.Error
	if !errors.As(err, &perr) {
		return styles.Error.Render("Fehler:") + " " + err.Error() + codeHint(err, styles) + "\n"
	}

	var b strings.Builder
	loc := perr.Span.Start.String()
	if perr.Path != "" {
		loc = perr.Path + ":" + loc
	}
	fmt.Fprintf(&b, "%s %s %s%s\n",
		styles.Location.Render(loc+":"),
		styles.Error.Render("Fehler:"),
		perr.Message,
		codeHint(err, styles))

	b.WriteString(Excerpt(source, perr, styles))
	return b.String()
}

// Excerpt shows the source line of perr with a caret under the failing span.
// It is empty when the line is not part of source.
func Excerpt(source string, perr *mdwparser.Error, styles Styles) string {
	if perr == nil || !perr.Span.Start.IsValid() {
		return ""
	}
	line, ok := mdwstringx.Line(source, perr.Span.Start.Line)
	if !ok {
		return ""
	}

	var b strings.Builder
	number := fmt.Sprintf("%d", perr.Span.Start.Line)
	gutter := strings.Repeat(" ", len(number))
	fmt.Fprintf(&b, "%s %s\n", styles.Gutter.Render(number+" |"), line)
	fmt.Fprintf(&b, "%s %s%s\n",
		styles.Gutter.Render(gutter+" |"),
		caretIndent(line, perr.Span.Start.Column),
		styles.Caret.Render(strings.Repeat("^", caretWidth(line, perr))))
	return b.String()
}

// caretIndent keeps tabs so the caret lines up under the source text
func caretIndent(line string, column int) string {
	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		col++
	}
	return b.String()
}

// caretWidth underlines the whole span on its first line, at least one
// character
func caretWidth(line string, perr *mdwparser.Error) int {
	start, end := perr.Span.Start, perr.Span.End
	width := 1
	if end.Line == start.Line && end.Column > start.Column {
		width = end.Column - start.Column
	} else if end.Line > start.Line {
		width = utf8.RuneCountInString(line) - start.Column + 1
	}
	if width < 1 {
		width = 1
	}
	return width
}

// codeHint names the error code of err; unknown and foreign codes are left out
func codeHint(err error, styles Styles) string {
	code := mdwerror.GetCode(err)
	if !code.IsValid() || code == mdwerror.CodeUnknown {
		return ""
	}
	return " " + styles.Hint.Render("["+code.String()+"]")
}
