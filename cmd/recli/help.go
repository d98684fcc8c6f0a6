package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "help [word...]",
		Short:   "Show help for a command path",
		Example: `  recli help -g grammar.recli -H help.md show version`,
		RunE:    runHelp,
	}
	rootCmd.AddCommand(cmd)
}

func runHelp(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	if long, ok := e.ShowHelp(args); ok {
		fmt.Fprintln(os.Stdout, long)
		return nil
	}

	if short, ok := e.PrintContextHelp(args); ok {
		fmt.Fprintf(os.Stdout, "%s\n\n", short)
	}

	if g := e.Grammar(); g != nil {
		if err := e.Help.PrintContextHelpSubcommands(os.Stdout, g, args); err != nil {
			return fmt.Errorf("no help available for %q", strings.Join(args, " "))
		}
	}
	return nil
}
