package repl

import (
	"fmt"
	"sort"
	"strings"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
	"github.com/msto63/acid/internal/render"
)

// arg is one parsed command argument. Names are bare atoms, strings are
// quoted Acid string literals.
type arg struct {
	value  string
	quoted bool
}

type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	min     int
	max     int
	raw     bool // receives the unparsed remainder of the line
	run     func(s *Session, args []arg, raw string) (Result, error)
}

// commandTable is the command set of one session in help order. It is not
// changed after construction.
type commandTable struct {
	list    []*command
	aliases map[string]string
}

func newCommandTable(cmds ...*command) *commandTable {
	t := &commandTable{list: cmds, aliases: make(map[string]string)}
	for _, c := range cmds {
		for _, a := range c.aliases {
			t.aliases[a] = c.name
		}
	}
	return t
}

func (t *commandTable) lookup(name string) (*command, bool) {
	if target, ok := t.aliases[name]; ok {
		name = target
	}
	for _, c := range t.list {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// names returns every command name and alias with its colon prefix, sorted
func (t *commandTable) names() []string {
	var names []string
	for _, c := range t.list {
		names = append(names, ":"+c.name)
		for _, a := range c.aliases {
			names = append(names, ":"+a)
		}
	}
	sort.Strings(names)
	return names
}

// CommandNames returns the commands and aliases of s, sorted, for completion
func (s *Session) CommandNames() []string {
	return s.commands.names()
}

// defaultCommands builds the command set a new session starts with
func defaultCommands() *commandTable {
	return newCommandTable(
		&command{
			name: "load", aliases: []string{"l"}, usage: "<path>", min: 1, max: 1,
			help: "Loads a file and parses it as the current module.",
			run: func(s *Session, args []arg, _ string) (Result, error) {
				return s.Load(args[0].value)
			},
		},
		&command{
			name: "reload", aliases: []string{"r"},
			help: "Reloads the current file.",
			run: func(s *Session, _ []arg, _ string) (Result, error) {
				if s.path == "" {
					return Result{}, commandError("reload", "no module loaded, type `:load <file>` to load one")
				}
				return s.Load(s.path)
			},
		},
		&command{
			name: "quit", aliases: []string{"q"},
			help: "Stops the REPL.",
			run: func(*Session, []arg, string) (Result, error) {
				return Result{Output: "Goodbye.\n", Quit: true}, nil
			},
		},
		&command{
			name: "prompt", usage: "<string>", min: 1, max: 1,
			help: "Sets the REPL prompt.",
			run: func(s *Session, args []arg, _ string) (Result, error) {
				if !args[0].quoted {
					return Result{}, commandError("prompt", "expected string")
				}
				s.prompt = args[0].value
				return Result{}, nil
			},
		},
		&command{
			name: "clear", aliases: []string{"cls"},
			help: "Clears the console screen.",
			run: func(*Session, []arg, string) (Result, error) {
				return Result{Clear: true}, nil
			},
		},
		&command{
			name: "lex", usage: "<source>", raw: true,
			help: "Shows the tokens of the rest of the line.",
			run: func(s *Session, _ []arg, raw string) (Result, error) {
				tokens, err := s.engine.Tokenize(raw, "")
				if err != nil {
					return Result{}, err
				}
				var b strings.Builder
				if err := render.Tokens(&b, tokens, render.FormatText, s.options.Styles); err != nil {
					return Result{}, err
				}
				return Result{Output: b.String()}, nil
			},
		},
		&command{
			name: "format", usage: "[text|tree|json|yaml]", max: 1,
			help: "Shows or sets the output format for trees.",
			run: func(s *Session, args []arg, _ string) (Result, error) {
				if len(args) == 1 {
					f, err := render.ParseFormat(args[0].value)
					if err != nil {
						return Result{}, err
					}
					s.format = f
				}
				return Result{Output: "format: " + string(s.format) + "\n"}, nil
			},
		},
		&command{
			name: "spans", usage: "[on|off]", max: 1,
			help: "Shows or sets whether trees include source spans.",
			run: func(s *Session, args []arg, _ string) (Result, error) {
				if len(args) == 1 {
					switch strings.ToLower(args[0].value) {
					case "on":
						s.spans = true
					case "off":
						s.spans = false
					default:
						return Result{}, commandError("spans", "expected on or off")
					}
				}
				state := "off"
				if s.spans {
					state = "on"
				}
				return Result{Output: "spans: " + state + "\n"}, nil
			},
		},
		&command{
			name: "help", aliases: []string{"h"}, usage: "[command]", max: 1,
			help: "Lists all available commands or shows help for a given command.",
			run: func(s *Session, args []arg, _ string) (Result, error) {
				if len(args) == 0 {
					var b strings.Builder
					b.WriteString("Commands available from the prompt:\n\n")
					for _, c := range s.commands.list {
						b.WriteString(c.describe())
					}
					return Result{Output: b.String()}, nil
				}
				return s.commands.help(args[0].value)
			},
		},
	)
}

func (c *command) describe() string {
	return mdwstringx.PadRight(strings.TrimSpace(":"+c.name+" "+c.usage), 30, ' ') + "  " + c.help + "\n"
}

func (t *commandTable) help(name string) (Result, error) {
	name = strings.TrimPrefix(name, ":")
	c, ok := t.lookup(name)
	if !ok {
		return Result{}, commandError("help", fmt.Sprintf("command %q is not defined", name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing help for command %q\n", c.name)
	b.WriteString(c.describe())
	switch len(c.aliases) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "Alias: %q\n", c.aliases[0])
	default:
		quoted := make([]string, len(c.aliases))
		for i, a := range c.aliases {
			quoted[i] = fmt.Sprintf("%q", a)
		}
		fmt.Fprintf(&b, "Aliases: %s\n", strings.Join(quoted, ", "))
	}
	return Result{Output: b.String()}, nil
}

// command runs a `:name args` line
func (s *Session) command(line string) (Result, error) {
	name, rest, _ := strings.Cut(line, " ")
	name = strings.TrimSpace(name)
	c, ok := s.commands.lookup(name)
	if !ok {
		return Result{}, commandError(name, "unknown command, type :help for a list")
	}

	if c.raw {
		return c.run(s, nil, rest)
	}
	args, err := s.parseArgs(rest)
	if err != nil {
		return Result{}, err
	}
	if len(args) < c.min || len(args) > c.max {
		return Result{}, commandError(c.name, "usage: "+strings.TrimSpace(":"+c.name+" "+c.usage))
	}
	return c.run(s, args, rest)
}

// parseArgs reads command arguments with the Acid parser. Each argument is
// a name or a string literal.
func (s *Session) parseArgs(raw string) ([]arg, error) {
	if mdwstringx.IsBlank(raw) {
		return nil, nil
	}
	prog, err := s.engine.Parse(raw, "")
	if err != nil {
		return nil, err
	}

	args := make([]arg, 0, len(prog.Instructions))
	for _, instr := range prog.Instructions {
		top, ok := instr.(*mdwast.TopLevelExpr)
		if !ok {
			return nil, commandError("", "arguments must be names or strings")
		}
		switch v := top.Expr.(type) {
		case *mdwast.StringLiteral:
			args = append(args, arg{value: v.Value, quoted: true})
		case *mdwast.Variable:
			args = append(args, arg{value: v.Name})
		default:
			return nil, commandError("", "arguments must be names or strings")
		}
	}
	return args, nil
}

func commandError(name, message string) error {
	if name != "" {
		message = "`:" + name + "`: " + message
	}
	return mdwerror.New(message).
		WithCode(mdwerror.CodeInvalidInput).
		WithSeverity(mdwerror.SeverityLow).
		WithOperation("repl.command")
}
