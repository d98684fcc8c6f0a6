package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check [word...]",
		Short:   "Validate an argument list against the grammar",
		Example: `  recli check -g grammar.recli show version`,
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	n, needsTerm, matchErr := e.Check(args)
	switch {
	case matchErr != nil:
		fmt.Fprint(os.Stdout, matchErr.CaretLine(args))
		return matchErr
	case n > len(args):
		fmt.Fprintf(os.Stdout, "incomplete: %d more word(s) expected\n", n-len(args))
	default:
		fmt.Fprintf(os.Stdout, "ok: %d word(s) consumed", n)
		if needsTerm {
			fmt.Fprint(os.Stdout, " (terminal)")
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
