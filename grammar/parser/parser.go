// Package parser implements the Grammar Parser: a recursive-descent
// reader for the line-oriented grammar DSL, producing normalized
// node.Handles through the Node Algebra rather than a separate AST.
//
// Grounded on the teacher's own recursive-descent parser
// (grammar/parser.go's parseSymbol/parseAltRHS/parseRHS-shaped productions)
// for structure; see DESIGN.md for why this module hand-scans rather than
// loading a generated lexer. The teacher builds a *Grammar AST consumed
// later by an LALR table builder; this parser has no separate AST because
// grammar/node's interning Pool already *is* the normal form the rest of
// the engine consumes.
package parser

import (
	"bufio"
	"fmt"
	"os"

	rerr "github.com/go-recli/recli/error"
	"github.com/go-recli/recli/grammar/node"
	"github.com/go-recli/recli/grammar/types"
)

// Parser holds the state the DSL needs beyond the Pool itself: a macro
// table and data-type registry rooted for the process lifetime, plus the
// per-call lexer/line bookkeeping used to render caret diagnostics.
type Parser struct {
	pool      *node.Pool
	dataTypes map[string]*node.Validator
	macros    map[string]*node.Node
	builtins  bool

	lex      *lexer
	cur      token
	lineText string
}

// New creates a Parser bound to pool. The returned Parser owns the macro
// and data-type registrations it accumulates; they are released only when
// the whole engine tears down.
func New(pool *node.Pool) *Parser {
	return &Parser{
		pool:      pool,
		dataTypes: make(map[string]*node.Validator),
		macros:    make(map[string]*node.Node),
	}
}

// RegisterDataType adds v under its name, or confirms an identical
// re-registration is a no-op. A name already bound to a different
// validator is a RegistrationError.
func (p *Parser) RegisterDataType(v *node.Validator) error {
	if existing, ok := p.dataTypes[v.Name]; ok {
		if existing != v {
			return &RegistrationError{Name: v.Name}
		}
		return nil
	}
	p.dataTypes[v.Name] = v
	return nil
}

// RegisterBuiltins registers the built-in data types of grammar/types
// (BOOLEAN, INTEGER, IPADDR, ...). It is idempotent and must run before
// the first ParseLine/ParseFile call that might reference one of them.
func (p *Parser) RegisterBuiltins() {
	if p.builtins {
		return
	}
	for _, v := range types.All {
		_ = p.RegisterDataType(v)
	}
	p.builtins = true
}

func (p *Parser) advance() {
	p.cur = p.lex.next()
}

func (p *Parser) errAt(pos int, cause error) error {
	return &rerr.SpecError{Cause: cause, Line: p.lineText, Byte: pos + 1}
}

func (p *Parser) errHere(cause error) error {
	return p.errAt(p.cur.pos, cause)
}

// ParseLine parses one line of grammar source. A blank or comment-only
// line, and a macro-definition line, both return (nil, nil): neither
// contributes a fragment to merge into a grammar, they only have side
// effects (or none at all).
func (p *Parser) ParseLine(text string) (*node.Node, error) {
	p.lineText = text
	p.lex = newLexer(text)
	p.advance()

	if p.cur.kind == tokEOF {
		return nil, nil
	}

	if p.cur.kind == tokIdent {
		name := p.cur
		savedPos := p.lex.pos
		next := p.lex.next()
		if next.kind == tokEquals {
			if !isAllUpper(name.text) {
				return nil, p.errAt(name.pos, errMacroNameNotUpper)
			}
			p.advance() // now positioned just past '='
			body, err := p.parseAlternation()
			if err != nil {
				return nil, err
			}
			if p.cur.kind != tokEOF {
				if body != nil {
					p.pool.Release(body)
				}
				return nil, p.errHere(errUnexpectedToken)
			}
			return p.defineMacro(name.text, body)
		}
		p.lex.pos = savedPos
	}

	result, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		if result != nil {
			p.pool.Release(result)
		}
		return nil, p.errHere(errUnexpectedToken)
	}
	return result, nil
}

// MergeLine is equivalent to alternate(existing, parse_line(text)), except
// a blank/comment/macro-def line leaves existing untouched, and existing
// may itself be the empty marker (nil) for the very first line of a
// grammar.
func (p *Parser) MergeLine(existing *node.Node, text string) (*node.Node, error) {
	parsed, err := p.ParseLine(text)
	if err != nil {
		if existing != nil {
			p.pool.Release(existing)
		}
		return nil, err
	}
	if parsed == nil {
		return existing, nil
	}
	if existing == nil {
		return parsed, nil
	}
	return p.pool.Alternate(existing, parsed)
}

// ParseFile reads path line by line, merging each into a single grammar,
// and aborts on the first error. The built-in data types are registered
// first if they have not been already.
func (p *Parser) ParseFile(path string) (*node.Node, error) {
	p.RegisterBuiltins()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var grammar *node.Node
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		grammar, err = p.MergeLine(grammar, scanner.Text())
		if err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if grammar != nil {
			p.pool.Release(grammar)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return grammar, nil
}

// ReleaseRoots releases every macro this Parser has rooted for the process
// lifetime. Validator-bearing Words are not pool-rooted by the Parser
// itself (grammar/types.All's Validators are plain Go values, not Nodes,
// until a grammar line actually references one), so only the macro table
// needs releasing here.
func (p *Parser) ReleaseRoots() {
	for name, m := range p.macros {
		p.pool.Release(m)
		delete(p.macros, name)
	}
}

func (p *Parser) defineMacro(name string, body *node.Node) (*node.Node, error) {
	if old, ok := p.macros[name]; ok {
		p.pool.Release(old)
	}
	m := p.pool.Macro(name, body)
	p.macros[name] = m
	return nil, nil
}

// parseSequence parses a run of concatenated postfix atoms, stopping at
// EOF or at a token the caller's context treats as a terminator (')', ']'
// or '|', none of which are valid atom starts so the loop naturally stops
// there). The "a grammar cannot consist solely of varargs" rule only
// applies to a whole top-level line, not a nested one.
func (p *Parser) parseSequence() (*node.Node, error) {
	return p.parseSequenceLevel(false)
}

func (p *Parser) parseSequenceLevel(nested bool) (*node.Node, error) {
	var result *node.Node
	count := 0
	varargsSeen := false

	for !p.atSequenceEnd() {
		if varargsSeen {
			if result != nil {
				p.pool.Release(result)
			}
			return nil, p.errHere(errVarargsNotLast)
		}
		atom, err := p.parsePostfixAtom()
		if err != nil {
			if result != nil {
				p.pool.Release(result)
			}
			return nil, err
		}
		if atom.Kind() == node.Varargs {
			varargsSeen = true
		}
		count++
		if result == nil {
			result = atom
		} else {
			result = p.pool.Concat(result, atom)
		}
	}

	if count == 0 {
		return nil, p.errHere(errEmptySequence)
	}
	if !nested && count == 1 && varargsSeen {
		p.pool.Release(result)
		return nil, p.errHere(errSoleVarargs)
	}
	return result, nil
}

func (p *Parser) atSequenceEnd() bool {
	switch p.cur.kind {
	case tokEOF, tokRParen, tokRBracket, tokPipe:
		return true
	}
	return false
}

// parseAlternation parses a|b|c... inside a closing delimiter the caller
// will check for and consume.
func (p *Parser) parseAlternation() (*node.Node, error) {
	result, err := p.parseSequenceLevel(true)
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPipe {
		p.advance()
		rhs, err := p.parseSequenceLevel(true)
		if err != nil {
			if result != nil {
				p.pool.Release(result)
			}
			return nil, err
		}
		merged, err := p.pool.Alternate(result, rhs)
		if err != nil {
			return nil, p.errHere(err)
		}
		result = merged
	}
	return result, nil
}

func (p *Parser) parsePostfixAtom() (*node.Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokPlus:
			pos := p.cur.pos
			p.advance()
			atom, err = p.pool.Plus(atom, 1)
			if err != nil {
				return nil, p.errAt(pos, err)
			}
		case tokStar:
			pos := p.cur.pos
			p.advance()
			atom, err = p.pool.Plus(atom, 0)
			if err != nil {
				return nil, p.errAt(pos, err)
			}
		default:
			return atom, nil
		}
	}
}

func (p *Parser) parseAtom() (*node.Node, error) {
	switch p.cur.kind {
	case tokIdent:
		return p.parseWordOrName()
	case tokLBracket:
		p.advance()
		inner, err := p.parseSequenceLevel(true)
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRBracket {
			if inner != nil {
				p.pool.Release(inner)
			}
			return nil, p.errHere(errUnclosedBracket)
		}
		p.advance()
		opt, err := p.pool.Optional(inner)
		if err != nil {
			return nil, p.errHere(err)
		}
		return opt, nil
	case tokLParen:
		openPos := p.cur.pos
		p.advance()
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			if inner != nil {
				p.pool.Release(inner)
			}
			return nil, p.errAt(openPos, errUnclosedParen)
		}
		p.advance()
		return inner, nil
	case tokEllipsis:
		p.advance()
		return p.pool.Varargs(), nil
	default:
		return nil, p.errHere(errUnexpectedToken)
	}
}

func (p *Parser) parseWordOrName() (*node.Node, error) {
	tok := p.cur
	p.advance()

	caseFold, terminal, base, err := splitModifier(tok.text)
	if err != nil {
		return nil, p.errAt(tok.pos, err)
	}

	if isAllUpper(base) {
		if caseFold || terminal {
			return nil, p.errAt(tok.pos, errModifierOnName)
		}
		return p.resolveName(tok.pos, base)
	}

	w, err := p.pool.Word(base, caseFold, terminal, nil)
	if err != nil {
		return nil, p.errAt(tok.pos, err)
	}
	return w, nil
}

func (p *Parser) resolveName(pos int, name string) (*node.Node, error) {
	if v, ok := p.dataTypes[name]; ok {
		w, err := p.pool.Word(name, false, false, v)
		if err != nil {
			return nil, p.errAt(pos, err)
		}
		return w, nil
	}
	if m, ok := p.macros[name]; ok {
		return p.pool.Ref(m.Body()), nil
	}
	return nil, p.errAt(pos, errUnknownName)
}

// splitModifier strips a single trailing "/i" or "/t" modifier suffix.
// Any other trailing "/x" is an unknown-modifier error; a word with no
// '/' at all is returned unchanged.
func splitModifier(text string) (caseFold, terminal bool, base string, err error) {
	idx := -1
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '/' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, false, text, nil
	}
	switch text[idx:] {
	case "/i":
		return true, false, text[:idx], nil
	case "/t":
		return false, true, text[:idx], nil
	default:
		return false, false, "", errUnknownModifier
	}
}

func isAllUpper(s string) bool {
	hasLetter := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return hasLetter
}
