package complete

import (
	"strings"

	"github.com/go-recli/recli/grammar/match"
	"github.com/go-recli/recli/grammar/node"
)

// Complete returns the tab-completion candidates for words, the tokenized
// input line (see Tokenize), whose final element is the word still being
// typed (possibly ""). Every word before it is consumed against g in Exact
// mode; the residual grammar reached that way supplies the candidates for
// the final, partial word.
//
// Returns nil if the already-typed words don't match g at all. Each
// returned candidate is the full line so far plus a trailing space, ready
// to replace the input buffer outright (e.g. "show " + "version" -> "show
// version ").
func Complete(m *match.Matcher, g *node.Node, words []string) []string {
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	head := words[:len(words)-1]

	cur := m.Pool().Ref(g)
	for _, w := range head {
		next, ok := m.MatchWord(w, false, cur, nil)
		m.Pool().Release(cur)
		if !ok {
			return nil
		}
		cur = next
	}
	defer m.Pool().Release(cur)
	if cur == nil {
		return nil
	}

	prefix := strings.Join(head, " ")
	if prefix != "" {
		prefix += " "
	}

	leaves := firstPositionLeaves(cur)

	// Exact match: the typed word already fully names one candidate, so
	// offer only that one (the user typed the word in full).
	for _, l := range leaves {
		if matchesExact(l, last) {
			return []string{prefix + candidateText(l) + " "}
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, l := range leaves {
		if l.Validator() != nil {
			continue
		}
		text := candidateText(l)
		if hasPrefixFold(text, last, l.CaseFold()) {
			cand := prefix + text + " "
			if !seen[cand] {
				seen[cand] = true
				out = append(out, cand)
			}
		}
	}
	return out
}

// firstPositionLeaves flattens n into the set of Word leaves that can
// appear in its first position, borrowing n's tree (no refs taken).
// Varargs contributes no literal candidate text of its own.
func firstPositionLeaves(n *node.Node) []*node.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case node.Word:
		return []*node.Node{n}
	case node.Varargs:
		return nil
	case node.Optional:
		return firstPositionLeaves(n.Child())
	case node.Plus:
		return firstPositionLeaves(n.Child())
	case node.Alternate:
		return append(firstPositionLeaves(n.First()), firstPositionLeaves(n.Next())...)
	case node.Concat:
		leaves := firstPositionLeaves(n.First())
		if canBeEmpty(n.First()) {
			leaves = append(leaves, firstPositionLeaves(n.Next())...)
		}
		return leaves
	case node.Macro:
		return firstPositionLeaves(n.Body())
	default:
		return nil
	}
}

// canBeEmpty reports whether n can match zero words, the condition under
// which a Concat's first slot doesn't shadow its second slot's candidates.
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

func candidateText(n *node.Node) string { return n.Text() }

func matchesExact(n *node.Node, word string) bool {
	if n.Validator() != nil {
		return false
	}
	if n.CaseFold() {
		return strings.EqualFold(n.Text(), word)
	}
	return n.Text() == word
}

func hasPrefixFold(text, word string, fold bool) bool {
	if fold {
		return strings.HasPrefix(strings.ToLower(text), strings.ToLower(word))
	}
	return strings.HasPrefix(text, word)
}
