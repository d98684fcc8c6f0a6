package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completeFlags = struct {
	maxCandidates *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "complete <line>",
		Short:   "List tab-completion candidates for a partially typed line",
		Example: `  recli complete -g grammar.recli "sh"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runComplete,
	}
	completeFlags.maxCandidates = cmd.Flags().IntP("max-candidates", "n", 0, "stop after this many candidates (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	cands := e.Complete(args[0])
	if n := *completeFlags.maxCandidates; n > 0 && len(cands) > n {
		cands = cands[:n]
	}
	for _, c := range cands {
		fmt.Fprintln(os.Stdout, c)
	}
	return nil
}
