package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkQuiet bool

var checkCmd = &cobra.Command{
	Use:   "check <datei>...",
	Short: "Prüft Dateien auf Syntaxfehler",
	Long: `Parst jede angegebene Datei und meldet Fehler mit Quellzeile.
Der Exit-Code ist 2 bei Syntaxfehlern und 4 bei nicht lesbaren Dateien.

Beispiele:
  acid check main.acid lib/*.acid
  acid check -q main.acid`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Nur Fehler ausgeben")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var first error
	failed := 0
	for _, path := range args {
		source, name, err := readSource(cmd, path)
		if err == nil {
			var n int
			n, err = countInstructions(source, name)
			if err == nil {
				if !checkQuiet {
					fmt.Fprintf(out, "ok    %s (%d Anweisungen)\n", name, n)
				}
				continue
			}
		}

		failed++
		if first == nil {
			first = err
		}
		report(cmd, source, err)
	}

	if failed > 0 {
		if !checkQuiet {
			fmt.Fprintf(out, "%d von %d Dateien fehlerhaft\n", failed, len(args))
		}
		return reportedError{first}
	}
	return nil
}

func countInstructions(source, name string) (int, error) {
	prog, err := engine.Parse(source, name)
	if err != nil {
		return 0, err
	}
	return len(prog.Instructions), nil
}
