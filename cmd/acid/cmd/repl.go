package cmd

import (
	"fmt"
	"os"

	mdwlog "github.com/msto63/acid/foundation/core/log"
	"github.com/msto63/acid/internal/repl"
	"github.com/msto63/acid/internal/tui"
	"github.com/spf13/cobra"
)

var replPlain bool

var replCmd = &cobra.Command{
	Use:   "repl [datei]",
	Short: "Startet die interaktive Sitzung",
	Long: `Startet eine REPL, die jede Eingabe parst und den Syntaxbaum anzeigt.
Ausgewertet wird nichts. Eine angegebene Datei wird vorab geladen.

Befehle in der Sitzung beginnen mit ":" (z.B. :help, :load, :quit).

Navigation (TUI):
  Enter     - Eingabe ausführen
  ↑/↓       - Verlauf
  Ctrl+L    - Ausgabe leeren
  Ctrl+C    - Beenden

Mit --plain oder ohne Terminal wird ein einfacher Zeilenleser verwendet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replPlain, "plain", false, "Zeilenleser statt TUI")
}

func runREPL(cmd *cobra.Command, args []string) error {
	format, err := outputFormat("")
	if err != nil {
		return err
	}

	opts := repl.Options{
		Prompt:      cfg.REPL.Prompt,
		Format:      format,
		Spans:       cfg.Output.Spans,
		Styles:      styles(),
		HistorySize: cfg.REPL.HistorySize,
		Logger:      logger,
	}

	var load string
	if len(args) == 1 {
		load = args[0]
	}

	if !replPlain && !cfg.REPL.Plain && stdinIsTerminal() {
		// The alternate screen owns the terminal, log lines on stderr
		// would tear it up
		opts.Logger = logger.WithLevel(mdwlog.LevelFatal).WithName(cfg.General.Name + "-tui")
		quiet, err := newEngine(opts.Logger)
		if err != nil {
			return err
		}
		session := repl.New(quiet, opts)
		if err := tui.Run(session, tui.Options{Banner: cfg.BannerEnabled(), Load: load}); err != nil {
			return fmt.Errorf("TUI Fehler: %w", err)
		}
		return nil
	}

	session := repl.New(engine, opts)
	out := cmd.OutOrStdout()
	if cfg.BannerEnabled() {
		fmt.Fprintln(out, repl.Banner())
	}
	if load != "" {
		fmt.Fprint(out, session.Execute(fmt.Sprintf(":load %q", load)).Output)
	}

	in := cmd.InOrStdin()
	if in != os.Stdin || !stdinIsTerminal() {
		return session.Run(cmd.Context(), repl.NewLines(in, out), out)
	}

	term := repl.OpenTerminal(cfg.REPL.HistoryFile, cfg.REPL.HistorySize, session.Complete)
	defer term.Close()

	return session.Run(cmd.Context(), term, out)
}
