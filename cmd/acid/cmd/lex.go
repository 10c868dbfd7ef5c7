package cmd

import (
	"github.com/msto63/acid/internal/render"
	"github.com/spf13/cobra"
)

var lexFormat string

var lexCmd = &cobra.Command{
	Use:   "lex <datei>",
	Short: "Zeigt die Tokens einer Datei an",
	Long: `Zerlegt eine Acid-Datei in Tokens und gibt sie mit Position, Art und
Text aus. Kommentare und Leerraum erscheinen nicht.

Beispiele:
  acid lex main.acid
  acid lex --format json main.acid
  echo '(f 1)' | acid lex -`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexFormat, "format", "f", "", "Ausgabeformat (text, json, yaml)")
}

func runLex(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(lexFormat)
	if err != nil {
		return err
	}
	if format == render.FormatTree {
		format = render.FormatText
	}

	source, name, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	tokens, err := engine.Tokenize(source, name)
	if err != nil {
		return report(cmd, source, err)
	}
	return render.Tokens(cmd.OutOrStdout(), tokens, format, styles())
}
