package main

import (
	"fmt"

	"github.com/go-recli/recli/grammar"
)

// loadEngine builds an Engine from the --grammar/--help-file persistent
// flags shared by check, complete, and help. The caller owns the returned
// Engine and must Close it.
func loadEngine() (*grammar.Engine, error) {
	if *rootFlags.grammar == "" {
		return nil, fmt.Errorf("--grammar is required")
	}

	e := grammar.New()
	if err := e.LoadGrammarFile(*rootFlags.grammar); err != nil {
		e.Close()
		return nil, fmt.Errorf("%s:%d: %v", *rootFlags.grammar, e.ErrorByte, err)
	}
	if *rootFlags.helpFile != "" {
		if err := e.LoadHelpFile(*rootFlags.helpFile); err != nil {
			e.Close()
			return nil, fmt.Errorf("%s: %v", *rootFlags.helpFile, err)
		}
	}
	return e, nil
}
