package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags = struct {
	grammar  *string
	helpFile *string
}{}

var rootCmd = &cobra.Command{
	Use:   "recli",
	Short: "Parse and query a restricted command-line shell's grammar",
	Long: `recli compiles a compact grammar DSL into a canonical, hash-consed
syntax forest, then uses that forest to validate argument lists, perform
contextual tab completion, and drive context-sensitive help.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "", "grammar source file path (required)")
	rootFlags.helpFile = rootCmd.PersistentFlags().StringP("help-file", "H", "", "help source file path (optional)")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
