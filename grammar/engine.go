// Package grammar bundles the Node Pool, Grammar Parser, Matcher, and Help
// Binder into a single engine context: one struct a host program
// constructs once, rather than scattered process-globals.
package grammar

import (
	"fmt"

	rerr "github.com/go-recli/recli/error"
	"github.com/go-recli/recli/grammar/complete"
	"github.com/go-recli/recli/grammar/help"
	"github.com/go-recli/recli/grammar/match"
	"github.com/go-recli/recli/grammar/node"
	"github.com/go-recli/recli/grammar/parser"
)

// Engine bundles a Node Pool, the Parser's macro/data-type tables, a
// Matcher bound to the same pool, an optional Help Binder, and the error
// slots the caller renders after a failed call.
type Engine struct {
	Pool   *node.Pool
	Parser *parser.Parser
	Match  *match.Matcher
	Help   *help.Binder

	grammar *node.Node

	// ErrorMessage and ErrorArgvIndex/ErrorByte are the error slots. They
	// are only valid immediately after a call that returned an error, and
	// are overwritten by the next such call.
	ErrorMessage   string
	ErrorByte      int
	ErrorArgvIndex int
}

var defaultEngine *Engine

// Default returns a process-wide Engine, creating it on first call. It is
// a convenience facade for single-context callers — anything that needs
// more than one independent grammar context should call New directly
// instead.
func Default() *Engine {
	if defaultEngine == nil {
		defaultEngine = New()
	}
	return defaultEngine
}

// New creates an Engine with an empty grammar and the built-in data types
// (grammar/types.All) registered.
func New() *Engine {
	pool := node.NewPool()
	p := parser.New(pool)
	p.RegisterBuiltins()
	e := &Engine{
		Pool:   pool,
		Parser: p,
		Match:  match.New(pool),
	}
	e.Help = help.New(pool, p)
	return e
}

// LoadGrammarFile parses path and merges it into the engine's grammar.
// Calling it more than once accumulates additional grammar lines into the
// same forest.
func (e *Engine) LoadGrammarFile(path string) error {
	g, err := e.Parser.ParseFile(path)
	if err != nil {
		e.recordSpecError(err)
		return err
	}
	if e.grammar == nil {
		e.grammar = g
		return nil
	}
	merged, err := e.Pool.Alternate(e.grammar, g)
	if err != nil {
		e.recordSpecError(err)
		return err
	}
	e.grammar = merged
	return nil
}

// LoadHelpFile parses path into the engine's Help Binder.
func (e *Engine) LoadHelpFile(path string) error {
	return e.Help.LoadFile(path)
}

// Grammar returns the engine's merged grammar forest, or nil if nothing
// has been loaded yet. Borrowed: callers must not release it.
func (e *Engine) Grammar() *node.Node { return e.grammar }

// RegisterDataType adds a custom data-type validator, available to any
// grammar line parsed afterward.
func (e *Engine) RegisterDataType(v *node.Validator) error {
	return e.Parser.RegisterDataType(v)
}

// Check validates argv against the loaded grammar. On a syntax mismatch
// the error slots are populated and the *rerr.MatchError is also returned
// directly for callers that don't want to go through the slots.
func (e *Engine) Check(argv []string) (int, bool, *rerr.MatchError) {
	n, needsTerm, err := e.Match.Check(e.grammar, argv)
	if err != nil {
		e.ErrorMessage = err.Error()
		e.ErrorArgvIndex = err.ArgIndex
	}
	return n, needsTerm, err
}

// Complete returns the tab-completion candidates for buf.
func (e *Engine) Complete(buf string) []string {
	return complete.Complete(e.Match, e.grammar, complete.Tokenize(buf))
}

// ShowHelp and PrintContextHelp proxy to the Help Binder against the
// engine's own grammar context.
func (e *Engine) ShowHelp(argv []string) (string, bool) { return e.Help.ShowHelp(argv) }

func (e *Engine) PrintContextHelp(argv []string) (string, bool) {
	return e.Help.PrintContextHelp(argv)
}

func (e *Engine) recordSpecError(err error) {
	e.ErrorMessage = err.Error()
	if se, ok := err.(*rerr.SpecError); ok {
		e.ErrorByte = se.Byte
	}
}

// Close tears down the engine: it releases the merged grammar, the Help
// Binder's forests, then every macro the Parser rooted, and finally
// asserts the Pool is empty.
func (e *Engine) Close() error {
	if e.grammar != nil {
		e.Pool.Release(e.grammar)
		e.grammar = nil
	}
	e.Help.Close()
	e.Parser.ReleaseRoots()

	if stats := e.Pool.Stats(); stats.Live != 0 {
		return fmt.Errorf("grammar: pool teardown leaked %d live node(s)", stats.Live)
	}
	return nil
}
