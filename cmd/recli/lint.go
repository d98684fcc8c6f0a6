package main

import (
	"fmt"
	"os"

	rerr "github.com/go-recli/recli/error"
	"github.com/go-recli/recli/grammar"
	"github.com/go-recli/recli/grammar/parser"
	"github.com/spf13/cobra"
)

var lintFlags = struct {
	canonical *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lint <grammar file path>",
		Short:   "Parse a grammar file and report the first error, if any",
		Example: `  recli lint grammar.recli`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLint,
	}
	lintFlags.canonical = cmd.Flags().Bool("canonical", false, "print the grammar in its canonical (factored, sorted) form")
	rootCmd.AddCommand(cmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	e := grammar.New()
	defer e.Close()

	err := e.LoadGrammarFile(args[0])
	if err != nil {
		if specErr, ok := err.(*rerr.SpecError); ok {
			fmt.Fprintln(os.Stdout, specErr.Caret())
		}
		return err
	}

	if *lintFlags.canonical {
		fmt.Fprintln(os.Stdout, parser.Unparse(e.Grammar()))
	}

	stats := e.Pool.Stats()
	fmt.Fprintf(os.Stdout, "ok: %s is valid (%d live node(s), %d slot(s))\n", args[0], stats.Live, stats.Slots)
	return nil
}
