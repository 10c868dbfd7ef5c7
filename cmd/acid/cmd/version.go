package cmd

import (
	"fmt"

	"github.com/msto63/acid/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:       "version [lexer|parser|repl]",
	Short:     "Zeigt die Version an",
	Long:      "Zeigt alle Versionen an, oder nur die der angegebenen Komponente.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"lexer", "parser", "repl"},
	// no configuration needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", args[0], version.ComponentVersion(args[0]))
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), version.Details())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
