package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/acid/internal/repl"
	"github.com/msto63/acid/pkg/core/version"
)

// chrome is the number of lines taken by header, input box and footer
const chrome = 7

// Options configures the terminal UI
type Options struct {
	Banner bool
	// Load is parsed before the first prompt when set
	Load string
}

// Model is the bubbletea model of the interactive REPL
type Model struct {
	session *repl.Session
	options Options

	width   int
	height  int
	ready   bool
	loading bool
	done    bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript strings.Builder
	pending    []string // lines of an unfinished input
	histIndex  int      // position while browsing history, len(history) when not

	// copy of the session state; the session itself is only touched by the
	// command that executes an input
	path    string
	format  string
	count   int
	history []string
}

// NewModel creates a model around session
func NewModel(session *repl.Session, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Acid-Ausdruck oder :help"
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 76

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m := &Model{
		session: session,
		options: opts,
		input:   ti,
		spinner: sp,
	}
	if opts.Banner {
		m.transcript.WriteString(SubtitleStyle.Render(repl.Banner()))
		m.transcript.WriteString("\n")
	}
	m.sync()
	return m
}

// sync copies the session state shown by View and used for browsing
func (m *Model) sync() {
	m.path = m.session.Path()
	m.format = string(m.session.Format())
	m.count = m.session.Count()
	m.history = m.session.History()
	m.histIndex = len(m.history)
	m.input.Prompt = m.session.Prompt()
}

// resultMsg carries the outcome of one input back to Update
type resultMsg struct {
	res repl.Result
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.options.Load != "" {
		m.loading = true
		cmds = append(cmds, m.spinner.Tick, m.run(fmt.Sprintf(":load %q", m.options.Load)))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit

		case "enter":
			if m.loading {
				return m, nil
			}
			return m, m.submit()

		case "ctrl+l":
			m.transcript.Reset()
			m.refresh()
			return m, nil

		case "up":
			m.browse(-1)
			return m, nil

		case "down":
			m.browse(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-chrome))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-chrome)
		}
		m.input.Width = max(10, msg.Width-8)
		m.refresh()

	case resultMsg:
		m.loading = false
		m.apply(msg.res)
		if msg.res.Quit {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit takes the input line. Unfinished source is kept until a later line
// completes it; everything else runs in the background.
func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()

	prompt := m.input.Prompt
	m.echo(prompt, line)

	src := strings.Join(append(m.pending, line), "\n")
	if len(m.pending) == 0 && strings.TrimSpace(line) == "" {
		return nil
	}
	if !strings.HasPrefix(strings.TrimSpace(src), ":") && m.session.NeedsMore(src) {
		m.pending = append(m.pending, line)
		m.input.Prompt = repl.ContinuationPrompt
		return nil
	}

	m.pending = nil
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.run(src))
}

func (m *Model) run(src string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return resultMsg{res: session.Execute(src)}
	}
}

func (m *Model) apply(res repl.Result) {
	if res.Clear {
		m.transcript.Reset()
	}
	if out := strings.TrimRight(res.Output, "\n"); out != "" {
		if res.Err != nil {
			m.transcript.WriteString(RenderError(out))
		} else {
			m.transcript.WriteString(OutputStyle.Render(out))
		}
		m.transcript.WriteString("\n")
	}
	m.sync()
	m.refresh()
}

func (m *Model) echo(prompt, line string) {
	m.transcript.WriteString(PromptStyle.Render(prompt))
	m.transcript.WriteString(line)
	m.transcript.WriteString("\n")
	m.refresh()
}

// browse moves through the session history
func (m *Model) browse(delta int) {
	idx := m.histIndex + delta
	if idx < 0 || idx > len(m.history) {
		return
	}
	m.histIndex = idx
	if idx == len(m.history) {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.history[idx])
	}
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript.String())
	m.viewport.GotoBottom()
}

// Transcript returns everything shown in the output area
func (m *Model) Transcript() string {
	return m.transcript.String()
}

// Done reports whether the user ended the session
func (m *Model) Done() bool {
	return m.done
}

// View renders the UI
func (m *Model) View() string {
	if !m.ready {
		return "Lade..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.loading {
		s.WriteString(m.spinner.View())
		s.WriteString(" Parse läuft...\n")
	}
	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	title := RenderTitle("Acid REPL")
	info := SubtitleStyle.Render(" v" + version.REPL)
	if m.path != "" {
		info += SubtitleStyle.Render(" • " + m.path)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, info)
}

func (m *Model) renderFooter() string {
	help := "Enter: Ausführen • ↑/↓: Verlauf • Ctrl+L: Leeren • Ctrl+C: Beenden"
	state := fmt.Sprintf("Format: %s • Eingabe #%d", m.format, m.count)

	gap := m.width - lipgloss.Width(help) - lipgloss.Width(state) - 2
	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			RenderHelp(help),
			strings.Repeat(" ", max(0, gap)),
			state,
		),
	)
}

// Run starts the terminal UI on the alternate screen
func Run(session *repl.Session, opts Options) error {
	m := NewModel(session, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
