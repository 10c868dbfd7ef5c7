package cmd

import (
	"github.com/msto63/acid/internal/render"
	"github.com/spf13/cobra"
)

var (
	astFormat string
	astSpans  bool
)

var astCmd = &cobra.Command{
	Use:   "ast <datei>",
	Short: "Zeigt den Syntaxbaum einer Datei an",
	Long: `Parst eine Acid-Datei und gibt den Syntaxbaum aus.

Formate:
  text  - einzeilige Darstellung aller Knoten
  tree  - eingerückter Baum, ein Knoten pro Zeile
  json  - strukturierte Ausgabe
  yaml  - strukturierte Ausgabe

Beispiele:
  acid ast main.acid
  acid ast --format tree --spans main.acid`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)

	astCmd.Flags().StringVarP(&astFormat, "format", "f", "", "Ausgabeformat (text, tree, json, yaml)")
	astCmd.Flags().BoolVar(&astSpans, "spans", false, "Quellpositionen ausgeben")
}

func runAST(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(astFormat)
	if err != nil {
		return err
	}

	source, name, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	prog, err := engine.Parse(source, name)
	if err != nil {
		return report(cmd, source, err)
	}

	return render.Program(cmd.OutOrStdout(), prog, render.Options{
		Format: format,
		Spans:  astSpans || cfg.Output.Spans,
	})
}
