// Package help implements the Help Binder: parsing a Markdown-ish help
// source into two parallel grammar forests and answering long-help,
// context-help, and context-help-subcommand lookups against them with the
// same Matcher primitives the engine already uses for argument validation
// and completion.
//
// Grounded on the teacher's grammar/parser.go line-scanning style for
// LoadFile's heading/prose split, and on grammar/match's MatchWord for
// every lookup here — the Help Binder adds no new matching algorithm,
// only a second pair of forests built from the same Node Algebra.
package help

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-recli/recli/grammar/match"
	"github.com/go-recli/recli/grammar/node"
	"github.com/go-recli/recli/grammar/parser"
)

// Kind tags which help forest a leaf came from.
type Kind byte

const (
	KindLong  Kind = 1
	KindShort Kind = 2
)

var (
	errEmptyHeading = errors.New("help: heading line names no command path")
	errNotPlainPath = errors.New("help: heading must be a plain command path (no |, [], (), or ...)")
)

// Binder owns the long-help and short-help forests, each a grammar tree
// built the same way the Grammar Parser builds command syntax. Both
// forests, like every other grammar tree in this engine, are rooted for
// the process/Binder lifetime until Close.
type Binder struct {
	pool   *node.Pool
	parser *parser.Parser
	m      *match.Matcher

	longHelp  *node.Node
	shortHelp *node.Node
}

// New creates a Binder that parses command-path headings with p and stores
// leaves in pool.
func New(pool *node.Pool, p *parser.Parser) *Binder {
	return &Binder{pool: pool, parser: p, m: match.New(pool)}
}

// Close releases both forests. Safe to call once after the last lookup.
func (b *Binder) Close() {
	if b.longHelp != nil {
		b.pool.Release(b.longHelp)
		b.longHelp = nil
	}
	if b.shortHelp != nil {
		b.pool.Release(b.shortHelp)
		b.shortHelp = nil
	}
}

// LoadFile reads the help source file at path and merges its
// headings/prose into the Binder's forests.
func (b *Binder) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return b.Load(f)
}

// Load is LoadFile's reader-based core, exposed directly for tests and for
// callers that already hold an open stream.
func (b *Binder) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	var path *node.Node
	var long, short strings.Builder
	haveHeading := false

	finish := func() error {
		if !haveHeading {
			return nil
		}
		if longText := strings.TrimRight(long.String(), "\n"); longText != "" {
			if err := b.insert(&b.longHelp, path, KindLong, longText); err != nil {
				return err
			}
		}
		if shortText := strings.TrimRight(short.String(), "\n"); shortText != "" {
			if err := b.insert(&b.shortHelp, path, KindShort, shortText); err != nil {
				return err
			}
		}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			if err := finish(); err != nil {
				if path != nil {
					b.pool.Release(path)
				}
				return err
			}
			headingText := strings.TrimSpace(strings.TrimLeft(line, "#"))
			newPath, err := b.parser.ParseLine(headingText)
			if err != nil {
				if path != nil {
					b.pool.Release(path)
				}
				return err
			}
			if err := assertPlainPath(newPath); err != nil {
				if newPath != nil {
					b.pool.Release(newPath)
				}
				if path != nil {
					b.pool.Release(path)
				}
				return err
			}
			if path != nil {
				b.pool.Release(path)
			}
			path = newPath
			haveHeading = true
			long.Reset()
			short.Reset()
			continue
		}
		if !haveHeading || strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "    ") {
			short.WriteString(strings.TrimPrefix(line, "    "))
			short.WriteByte('\n')
		} else {
			long.WriteString(line)
			long.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		if path != nil {
			b.pool.Release(path)
		}
		return fmt.Errorf("read help source: %w", err)
	}
	if err := finish(); err != nil {
		if path != nil {
			b.pool.Release(path)
		}
		return err
	}
	if path != nil {
		b.pool.Release(path)
	}
	return nil
}

// insert alternates a new concat(command_path, help_leaf) entry into
// *forest. path is borrowed; forest and leaf are consumed into *forest.
func (b *Binder) insert(forest **node.Node, path *node.Node, kind Kind, text string) error {
	leaf := b.pool.ForceWord(encodeLeaf(kind, text))
	entry := b.pool.Concat(b.pool.Ref(path), leaf)
	if *forest == nil {
		*forest = entry
		return nil
	}
	merged, err := b.pool.Alternate(*forest, entry)
	if err != nil {
		return err
	}
	*forest = merged
	return nil
}

// ShowHelp locates argv in the long-help forest and returns the first
// long-help leaf reachable from there.
func (b *Binder) ShowHelp(argv []string) (string, bool) {
	return b.lookupLeaf(b.longHelp, KindLong, argv)
}

// PrintContextHelp is the same lookup against the short-help forest.
func (b *Binder) PrintContextHelp(argv []string) (string, bool) {
	return b.lookupLeaf(b.shortHelp, KindShort, argv)
}

// lookupLeaf locates argv in forest and inspects what remains. It is built
// on the same repeated-MatchWord loop Match-max uses internally
// (grammar/match.MatchMax), but skips Match-max's literal-argv
// reconstruction since only the alternation tail itself is wanted here.
func (b *Binder) lookupLeaf(forest *node.Node, want Kind, argv []string) (string, bool) {
	residual, ok := b.consume(forest, argv)
	if !ok {
		return "", false
	}
	defer b.pool.Release(residual)
	return firstLeafOfKind(residual, want)
}

// PrintContextHelpSubcommands writes, one word per line padded to a common
// width, every legal next word at argv according to syntax, with short help
// text from the Binder for those words that have any registered.
func (b *Binder) PrintContextHelpSubcommands(w io.Writer, syntax *node.Node, argv []string) error {
	curSyntax, ok := b.consume(syntax, argv)
	if !ok {
		return fmt.Errorf("help: %q does not match the grammar", strings.Join(argv, " "))
	}
	defer func() {
		if curSyntax != nil {
			b.pool.Release(curSyntax)
		}
	}()

	words := nextWords(curSyntax)
	shortByWord := make(map[string]string, len(words))

	if curHelp, ok := b.consume(b.shortHelp, argv); ok {
		for _, word := range words {
			next, ok := b.m.MatchWord(word, false, curHelp, nil)
			if ok {
				if text, ok2 := firstLeafOfKind(next, KindShort); ok2 {
					shortByWord[word] = text
				}
				if next != nil {
					b.pool.Release(next)
				}
			}
		}
		b.pool.Release(curHelp)
	}

	width := 0
	for _, word := range words {
		if len(word) > width {
			width = len(word)
		}
	}
	for _, word := range words {
		if sh, ok := shortByWord[word]; ok {
			fmt.Fprintf(w, "%-*s  %s\n", width, word, sh)
		} else {
			fmt.Fprintln(w, word)
		}
	}
	return nil
}

// consume walks forest (borrowed) through argv in Exact mode, returning a
// fresh owned residual, or (nil, false) if argv doesn't match at all. An
// empty argv returns a fresh ref to forest itself.
func (b *Binder) consume(forest *node.Node, argv []string) (*node.Node, bool) {
	if forest == nil {
		return nil, false
	}
	cur := b.pool.Ref(forest)
	for _, word := range argv {
		next, ok := b.m.MatchWord(word, false, cur, nil)
		b.pool.Release(cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// firstLeafOfKind reports the text of the first reachable leaf of kind
// want that n resolves to without consuming any further words, preferring
// the canonical-order First() branch at each Alternate.
func firstLeafOfKind(n *node.Node, want Kind) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case node.Word:
		k, text := decodeLeaf(n.Text())
		if k == want {
			return text, true
		}
		return "", false
	case node.Alternate:
		if text, ok := firstLeafOfKind(n.First(), want); ok {
			return text, true
		}
		return firstLeafOfKind(n.Next(), want)
	case node.Optional:
		return firstLeafOfKind(n.Child(), want)
	case node.Macro:
		return firstLeafOfKind(n.Body(), want)
	default:
		return "", false
	}
}

// nextWords flattens n into the literal next words reachable from its
// first position, in canonical order, deduplicated. Unlike
// grammar/complete's completion candidates, validator leaves are included
// here (displayed by their data-type name) since help listings describe
// full command syntax rather than literal input to accept.
func nextWords(n *node.Node) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(*node.Node)
	walk = func(n *node.Node) {
		if n == nil {
			return
		}
		switch n.Kind() {
		case node.Word:
			if !seen[n.Text()] {
				seen[n.Text()] = true
				out = append(out, n.Text())
			}
		case node.Optional:
			walk(n.Child())
		case node.Plus:
			walk(n.Child())
		case node.Alternate:
			walk(n.First())
			walk(n.Next())
		case node.Concat:
			walk(n.First())
			if canBeEmpty(n.First()) {
				walk(n.Next())
			}
		case node.Macro:
			walk(n.Body())
		}
	}
	walk(n)
	return out
}

func canBeEmpty(n *node.Node) bool {
	switch n.Kind() {
	case node.Optional, node.Varargs:
		return true
	case node.Plus:
		return n.Min() == 0
	case node.Concat:
		return canBeEmpty(n.First()) && canBeEmpty(n.Next())
	case node.Alternate:
		return canBeEmpty(n.First()) || canBeEmpty(n.Next())
	case node.Macro:
		return canBeEmpty(n.Body())
	default:
		return false
	}
}

// assertPlainPath rejects a parsed heading that contains alternation,
// optional, or other branching syntax: a heading must name one plain
// command path.
func assertPlainPath(n *node.Node) error {
	if n == nil {
		return errEmptyHeading
	}
	switch n.Kind() {
	case node.Word:
		return nil
	case node.Concat:
		if err := assertPlainPath(n.First()); err != nil {
			return err
		}
		return assertPlainPath(n.Next())
	case node.Macro:
		return assertPlainPath(n.Body())
	default:
		return errNotPlainPath
	}
}

func encodeLeaf(k Kind, text string) string {
	return string([]byte{byte(k)}) + text
}

func decodeLeaf(raw string) (Kind, string) {
	if raw == "" {
		return 0, ""
	}
	return Kind(raw[0]), raw[1:]
}
