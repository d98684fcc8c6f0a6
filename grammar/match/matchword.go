package match

import (
	"strings"

	"github.com/go-recli/recli/grammar/node"
)

// MatchWord is the Match-word primitive: given one already-read word, an
// exact/prefix sense flag, a grammar subtree n, and an optional
// tail subtree (the grammar that should apply after n, e.g. when n is
// being tried as one branch of a larger Concat/Alternate the caller has
// already peeled apart), return a fresh owned handle to what remains
// after consuming that one word, or (nil, false) if word cannot be
// consumed here at all. n and tail are borrowed.
func (m *Matcher) MatchWord(word string, prefix bool, n, tail *node.Node) (*node.Node, bool) {
	switch n.Kind() {
	case node.Word:
		if !wordCandidateMatches(n, word, prefix) {
			return nil, false
		}
		return m.pool.Ref(tail), true

	case node.Varargs:
		// Varargs absorbs any word and remains itself to absorb more.
		return m.pool.Ref(n), true

	case node.Optional:
		if r, ok := m.MatchWord(word, prefix, n.Child(), tail); ok {
			return r, true
		}
		if tail != nil {
			return m.MatchWord(word, prefix, tail, nil)
		}
		return nil, false

	case node.Plus:
		// n.Child() is guaranteed to be neither Plus nor Varargs (rejected
		// at construction), so this can never error.
		more, _ := m.pool.Plus(m.pool.Ref(n.Child()), 0)
		continuation := m.join(more, tail)
		m.pool.Release(more)
		r, ok := m.MatchWord(word, prefix, n.Child(), continuation)
		if continuation != nil {
			m.pool.Release(continuation)
		}
		if ok {
			return r, true
		}
		if n.Min() == 0 && tail != nil {
			return m.MatchWord(word, prefix, tail, nil)
		}
		return nil, false

	case node.Alternate:
		if r, ok := m.MatchWord(word, prefix, n.First(), tail); ok {
			return r, true
		}
		return m.MatchWord(word, prefix, n.Next(), tail)

	case node.Concat:
		continuation := m.join(n.Next(), tail)
		r, ok := m.MatchWord(word, prefix, n.First(), continuation)
		if continuation != nil {
			m.pool.Release(continuation)
		}
		return r, ok

	case node.Macro:
		return m.MatchWord(word, prefix, n.Body(), tail)

	default:
		return nil, false
	}
}

// join builds the accumulated continuation "next, then tail", taking
// fresh refs to both (borrowed) inputs. Either may be nil.
func (m *Matcher) join(next, tail *node.Node) *node.Node {
	switch {
	case next == nil:
		return m.pool.Ref(tail)
	case tail == nil:
		return m.pool.Ref(next)
	default:
		return m.pool.Concat(m.pool.Ref(next), m.pool.Ref(tail))
	}
}

// wordCandidateMatches suppresses validator Words from prefix (completion)
// matching since their literal name (e.g. "INTEGER") is not legal input,
// but they still participate fully in Exact mode (validating an
// already-typed argument).
func wordCandidateMatches(n *node.Node, word string, prefix bool) bool {
	if n.Validator() != nil {
		if prefix {
			return false
		}
		ok, _ := n.Validator().Check(word)
		return ok
	}
	if prefix {
		if n.CaseFold() {
			return strings.HasPrefix(strings.ToLower(n.Text()), strings.ToLower(word))
		}
		return strings.HasPrefix(n.Text(), word)
	}
	if n.CaseFold() {
		return strings.EqualFold(n.Text(), word)
	}
	return n.Text() == word
}
