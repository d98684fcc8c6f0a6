// Package match implements the Matcher: the single algorithm,
// parameterized by mode, that drives argument validation (Check), the
// single-word primitive used by completion and the Help Binder (MatchWord),
// and the argv-splicing reconstruction (MatchMax).
//
// Grounded on the teacher's own LALR driver loop (driver/driver.go) for
// the shape of a hand-rolled, table-free stepping matcher over a tree
// rather than a generated parser; the "walk the right spine iteratively"
// discipline is carried over from grammar/node's Release, to bound stack
// usage on a long grammar.
package match

import (
	"strings"

	rerr "github.com/go-recli/recli/error"
	"github.com/go-recli/recli/grammar/node"
)

// Matcher binds the matching algorithms to the Pool whose nodes they walk
// and, for MatchWord/MatchMax, build transient continuations from.
type Matcher struct {
	pool *node.Pool
}

// New creates a Matcher bound to pool.
func New(pool *node.Pool) *Matcher {
	return &Matcher{pool: pool}
}

// Pool returns the bound Node Pool, for callers (grammar/complete) that
// need to build or release handles of their own alongside a Matcher.
func (m *Matcher) Pool() *node.Pool { return m.pool }

type status int

const (
	statusOK status = iota
	statusWantMore
	statusMismatch
)

type result struct {
	pos       int
	needsTerm bool
	status    status
	remaining *node.Node // set only for statusWantMore: the sub-grammar still required
}

// matchState records the deepest failure reached across a whole Check
// call, so the final error is reported at the furthest point reached, not
// the last one tried.
type matchState struct {
	failArgc int
	failErr  error
}

func (st *matchState) record(argc int, err error) {
	if argc > st.failArgc {
		st.failArgc = argc
		st.failErr = err
	}
}

// Check is the Matcher's Validate mode. It borrows g and argv; it never
// mutates the grammar. The returned *rerr.MatchError is non-nil only when
// the int result is negative (a syntax mismatch or Exhausted).
func (m *Matcher) Check(g *node.Node, argv []string) (int, bool, *rerr.MatchError) {
	if len(argv) == 0 {
		return 0, false, nil
	}
	st := &matchState{failArgc: -1}
	r := m.matchSeq(g, argv, 0, st)

	switch r.status {
	case statusOK:
		if r.pos < len(argv) {
			// Exhausted: the grammar is satisfied but argv still has
			// unconsumed trailing words. Reported at the first of them,
			// same as a mismatch.
			return -(r.pos + 1), false, &rerr.MatchError{
				Cause:    errUnexpectedArgument,
				ArgIndex: r.pos + 1,
				ArgText:  argv[r.pos],
			}
		}
		return r.pos, r.needsTerm, nil
	case statusWantMore:
		hint := minRequired(r.remaining)
		if hint < 1 {
			hint = 1
		}
		return len(argv) + hint, r.needsTerm, nil
	default:
		idx := st.failArgc
		if idx < 0 {
			idx = 0
		}
		argText := ""
		if idx < len(argv) {
			argText = argv[idx]
		}
		return -(idx + 1), false, &rerr.MatchError{Cause: st.failErr, ArgIndex: idx + 1, ArgText: argText}
	}
}

// matchSeq walks n, which may be a Concat chain, consuming as much of
// argv from pos as n requires. It iterates along the right spine rather
// than recursing, so a grammar with a long run of fixed required words
// costs no extra stack depth.
func (m *Matcher) matchSeq(n *node.Node, argv []string, pos int, st *matchState) result {
	needsTerm := false
	for n.Kind() == node.Concat {
		r := m.matchOne(n.First(), argv, pos, st)
		if r.status != statusOK {
			return r
		}
		needsTerm = needsTerm || r.needsTerm
		pos = r.pos
		n = n.Next()
	}
	r := m.matchOne(n, argv, pos, st)
	r.needsTerm = r.needsTerm || needsTerm
	return r
}

// matchOne matches a single slot of the grammar: a Word, Varargs,
// Optional, Plus, Alternate, or Macro. Concat is handled by matchSeq, but
// matchOne still accepts it (e.g. as an Optional's or Plus's child) and
// delegates back to matchSeq.
func (m *Matcher) matchOne(n *node.Node, argv []string, pos int, st *matchState) result {
	switch n.Kind() {
	case node.Concat:
		return m.matchSeq(n, argv, pos, st)

	case node.Word:
		if pos >= len(argv) {
			return result{pos: pos, status: statusWantMore, remaining: n}
		}
		text := argv[pos]
		var ok bool
		var cause error
		if n.Validator() != nil {
			var msg string
			ok, msg = n.Validator().Check(text)
			if !ok {
				cause = strErr(msg)
			}
		} else {
			ok = wordTextMatches(n, text)
		}
		if !ok {
			st.record(pos, cause)
			return result{pos: pos, status: statusMismatch}
		}
		return result{pos: pos + 1, needsTerm: n.Terminal(), status: statusOK}

	case node.Varargs:
		return result{pos: len(argv), status: statusOK}

	case node.Optional:
		r := m.matchSeq(n.Child(), argv, pos, st)
		if r.status == statusOK {
			return r
		}
		return result{pos: pos, status: statusOK}

	case node.Plus:
		curPos := pos
		needsTerm := false
		count := 0
		var last result
		for {
			last = m.matchSeq(n.Child(), argv, curPos, st)
			if last.status != statusOK || last.pos == curPos {
				break
			}
			curPos = last.pos
			needsTerm = needsTerm || last.needsTerm
			count++
		}
		if count >= n.Min() {
			return result{pos: curPos, needsTerm: needsTerm, status: statusOK}
		}
		if last.status == statusWantMore {
			return result{pos: curPos, status: statusWantMore, remaining: n}
		}
		return result{pos: curPos, status: statusMismatch}

	case node.Alternate:
		// Iterates along the right spine rather than recursing into
		// n.Next(), trying each alternative in canonical order and
		// tracking the deepest failure across all of them.
		cur := n
		var best result
		haveBest := false
		for {
			r := m.matchSeq(cur.First(), argv, pos, st)
			if r.status == statusOK {
				return r
			}
			if !haveBest || betterFailure(r, best) {
				best = r
				haveBest = true
			}
			next := cur.Next()
			if next.Kind() != node.Alternate {
				r2 := m.matchSeq(next, argv, pos, st)
				if r2.status == statusOK {
					return r2
				}
				if betterFailure(r2, best) {
					best = r2
				}
				return best
			}
			cur = next
		}

	case node.Macro:
		return m.matchSeq(n.Body(), argv, pos, st)

	default:
		return result{pos: pos, status: statusMismatch}
	}
}

// betterFailure reports whether a represents a deeper (or otherwise more
// informative) failure than b: a greater consumed position wins outright;
// on a tie, a mismatch outranks a want-more since it pinpoints an actual
// bad token rather than just an early end of input.
func betterFailure(a, b result) bool {
	if a.pos != b.pos {
		return a.pos > b.pos
	}
	return a.status == statusMismatch && b.status != statusMismatch
}

func wordTextMatches(n *node.Node, text string) bool {
	if n.CaseFold() {
		return strings.EqualFold(n.Text(), text)
	}
	return n.Text() == text
}

// minRequired estimates the minimum number of further words n needs, as a
// non-binding hint. It is not exact for Alternate (it takes the cheaper
// branch) or for a partially-consumed Plus, since the hint is explicitly
// advisory.
func minRequired(n *node.Node) int {
	switch n.Kind() {
	case node.Word:
		return 1
	case node.Varargs, node.Optional:
		return 0
	case node.Plus:
		if n.Min() == 0 {
			return 0
		}
		return minRequired(n.Child())
	case node.Concat:
		return minRequired(n.First()) + minRequired(n.Next())
	case node.Alternate:
		a, b := minRequired(n.First()), minRequired(n.Next())
		if a < b {
			return a
		}
		return b
	case node.Macro:
		return minRequired(n.Body())
	default:
		return 0
	}
}

type strErr string

func (e strErr) Error() string { return string(e) }

var errUnexpectedArgument = strErr("unexpected argument")
