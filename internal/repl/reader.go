package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mdwparser "github.com/msto63/acid/foundation/acid/parser"
	mdwfilex "github.com/msto63/acid/foundation/utils/filex"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
	"github.com/peterh/liner"
)

// ContinuationPrompt is shown while an input spans several lines
const ContinuationPrompt = "... "

// LineReader shows a prompt and reads one line. *liner.State and Terminal
// satisfy it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

type historyAppender interface {
	AppendHistory(item string)
}

// ReadInput reads one input. Source that stops inside a form or a block
// comment is continued on further lines; commands are always one line.
func (s *Session) ReadInput(r LineReader) (string, error) {
	var b strings.Builder
	for {
		prompt := s.prompt
		if b.Len() > 0 {
			prompt = ContinuationPrompt
		}
		line, err := r.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !s.NeedsMore(src) {
			return src, nil
		}
	}
}

// NeedsMore reports whether src stops inside a form or a block comment, so
// that another line could complete it
func (s *Session) NeedsMore(src string) bool {
	_, err := s.engine.Parser().Parse(src, "")
	var perr *mdwparser.Error
	return errors.As(err, &perr) && perr.Incomplete()
}

// Run reads and executes inputs until :quit, end of input or cancellation
func (s *Session) Run(ctx context.Context, r LineReader, out io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := s.ReadInput(r)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(out, "Interrupted.")
			continue
		case err != nil:
			return err
		}

		res := s.Execute(input)
		if res.Clear {
			io.WriteString(out, "\033[H\033[2J")
		}
		io.WriteString(out, res.Output)
		if res.Quit {
			return nil
		}
		if h, ok := r.(historyAppender); ok && res.Err == nil && strings.TrimSpace(input) != "" {
			h.AppendHistory(strings.Join(mdwstringx.SplitLines(input), " "))
		}
	}
}

// Complete proposes command names for a line starting with a colon
func (s *Session) Complete(line string) []string {
	if !strings.HasPrefix(line, ":") || strings.ContainsRune(line, ' ') {
		return nil
	}
	var out []string
	for _, name := range s.CommandNames() {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}
	return out
}

// Lines reads input without line editing, for pipes and scripts
type Lines struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLines reads lines from r and writes prompts to out
func NewLines(r io.Reader, out io.Writer) *Lines {
	return &Lines{scanner: bufio.NewScanner(r), out: out}
}

// Prompt implements LineReader
func (l *Lines) Prompt(prompt string) (string, error) {
	fmt.Fprint(l.out, prompt)
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.scanner.Text(), nil
}

// Terminal is a line editor with completion and a persistent history
type Terminal struct {
	*liner.State
	historyPath string
	historySize int
	entries     []string
}

// OpenTerminal sets up line editing on the controlling terminal. An empty
// historyPath or "-" keeps history in memory only.
func OpenTerminal(historyPath string, historySize int, complete liner.Completer) *Terminal {
	t := &Terminal{
		State:       liner.NewLiner(),
		historySize: historySize,
	}
	t.SetCtrlCAborts(true)
	t.SetCompleter(complete)

	if historyPath == "" || historyPath == "-" || historySize <= 0 {
		return t
	}
	t.historyPath = mdwfilex.ExpandHome(historyPath)
	if f, err := os.Open(t.historyPath); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				t.remember(line)
			}
		}
		f.Close()
		for _, line := range t.entries {
			t.State.AppendHistory(line)
		}
	}
	return t
}

// AppendHistory records an entry for line editing and the history file
func (t *Terminal) AppendHistory(item string) {
	t.State.AppendHistory(item)
	t.remember(item)
}

func (t *Terminal) remember(item string) {
	if t.historySize <= 0 {
		return
	}
	t.entries = append(t.entries, item)
	if over := len(t.entries) - t.historySize; over > 0 {
		t.entries = append(t.entries[:0], t.entries[over:]...)
	}
}

// Close restores the terminal and writes the history file
func (t *Terminal) Close() error {
	err := t.State.Close()
	if t.historyPath == "" {
		return err
	}
	data := strings.Join(t.entries, "\n")
	if data != "" {
		data += "\n"
	}
	if werr := os.WriteFile(t.historyPath, []byte(data), 0o600); werr != nil && err == nil {
		err = werr
	}
	return err
}
