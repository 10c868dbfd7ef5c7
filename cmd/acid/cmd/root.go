package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/msto63/acid/foundation/acid"
	mdwlog "github.com/msto63/acid/foundation/core/log"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
	"github.com/msto63/acid/internal/render"
	"github.com/msto63/acid/pkg/core/config"
	"github.com/msto63/acid/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
	noColor  bool

	cfg    *config.Config
	logger *mdwlog.Logger
	engine *acid.Engine
)

var rootCmd = &cobra.Command{
	Use:   "acid",
	Short: "Acid - Lexer, Parser und REPL",
	Long: `Acid ist ein Frontend für die Lisp-artige Sprache Acid: Lexer, Parser
mit Quellpositionen und eine interaktive REPL, die Syntaxbäume anzeigt.

Befehle:
  lex      - Tokens einer Datei anzeigen
  ast      - Syntaxbaum einer Datei anzeigen
  check    - Dateien auf Syntaxfehler prüfen
  repl     - Interaktive Sitzung starten
  version  - Version anzeigen

Ein Dateiname "-" liest von der Standardeingabe.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line. Errors not yet shown to the user are
// printed to stderr.
func Execute() error {
	err := rootCmd.Execute()
	var shown reportedError
	if err != nil && !errors.As(err, &shown) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $ACID_CONFIG, ./configs/acid.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log-Level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Farben abschalten")
}

// setup loads the configuration and builds logger and engine
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	if logLevel != "" {
		level = logLevel
	}
	lc := logging.DefaultLoggerConfig(cfg.General.Name)
	lc.Level = mdwstringx.FirstNonBlank(level, lc.Level)
	lc.Format = mdwstringx.FirstNonBlank(cfg.General.LogFormat, lc.Format)
	lc.Output = cmd.ErrOrStderr()
	logger = logging.NewLogger(lc)
	mdwlog.SetDefault(logger)

	engine, err = newEngine(logger)
	if err != nil {
		return err
	}

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"config":  cfg.Path(),
		"command": cmd.Name(),
	})
	return nil
}

// newEngine builds an engine with the configured parser limits
func newEngine(l *mdwlog.Logger) (*acid.Engine, error) {
	return acid.NewEngine(acid.Options{
		Logger:             l,
		MaxInputLength:     cfg.Parser.MaxInputLength,
		MaxDepth:           cfg.Parser.MaxDepth,
		SlowParseThreshold: cfg.Parser.SlowThreshold.Duration,
	})
}

// styles for diagnostics and token tables
func styles() render.Styles {
	return render.NewStyles(cfg.ColorEnabled() && !noColor)
}

// outputFormat resolves a --format flag against the configured default
func outputFormat(flag string) (render.Format, error) {
	if flag == "" {
		flag = cfg.Output.Format
	}
	return render.ParseFormat(flag)
}

// readSource reads a file, or stdin for "-". The name is used in messages.
func readSource(cmd *cobra.Command, path string) (source, name string, err error) {
	if path != "-" {
		source, err = engine.ReadSource(path)
		return source, path, err
	}

	in := cmd.InOrStdin()
	if limit := engine.Parser().MaxInputLength(); limit > 0 {
		// one byte more than allowed so the parser reports the limit
		in = io.LimitReader(in, int64(limit)+1)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", "<stdin>", err
	}
	return string(data), "<stdin>", nil
}

// reportedError marks an error whose diagnostic was already printed
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// report prints a diagnostic for err and marks it as shown
func report(cmd *cobra.Command, source string, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), render.Diagnostic(source, err, styles()))
	return reportedError{err}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Fehler: %v\n", err)
}

// stdinIsTerminal reports whether standard input is interactive
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
