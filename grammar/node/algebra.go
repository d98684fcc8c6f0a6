// Node Algebra: constructors that produce normalized, interned handles.
// Every exported constructor here follows a "move" discipline: it consumes
// the Handles passed to it (the caller's reference is spent) and returns
// one new owned Handle, even on the error path, so the Pool's ref-count
// invariant holds no matter how a constructor call ends.
package node

import "errors"

var (
	// ErrVarargsNested rejects '...' appearing inside an Optional, Plus,
	// or Alternate.
	ErrVarargsNested = errors.New("'...' cannot appear inside an optional, a repetition, or an alternation")
	// ErrDoublePlus rejects double application of a repetition (x++).
	ErrDoublePlus = errors.New("a repetition cannot itself be repeated")
	// ErrEmptyWord rejects a zero-length keyword.
	ErrEmptyWord = errors.New("a keyword cannot be empty")
	// ErrWordStart rejects a keyword not starting with a letter.
	ErrWordStart = errors.New("a keyword must start with a letter")
	// ErrWordPrintable rejects a keyword with a non-printable byte.
	ErrWordPrintable = errors.New("a keyword must contain only printable bytes")
)

// Word constructs a keyword or validator-bearing data-type leaf, enforcing
// the lexical rules (starts with a letter, printable bytes only).
// validator may be nil for a plain keyword.
func (p *Pool) Word(text string, caseFold, terminal bool, validator *Validator) (*Node, error) {
	if err := validateWordText(text); err != nil {
		return nil, err
	}
	return p.wordNode(text, caseFold, terminal, validator), nil
}

// ForceWord builds a Word node bypassing the keyword lexical rules
// entirely, used by the Help Binder to store prose as an opaque leaf and
// by Match-max to splice already-typed argv text into a residual grammar.
func (p *Pool) ForceWord(text string) *Node {
	return p.wordNode(text, false, false, nil)
}

func (p *Pool) wordNode(text string, caseFold, terminal bool, validator *Validator) *Node {
	n := &Node{kind: Word, text: text, caseFold: caseFold, terminal: terminal, validator: validator}
	n.fingerprint = fingerprint(n)
	return p.intern(n)
}

func validateWordText(s string) error {
	if s == "" {
		return ErrEmptyWord
	}
	if !isLetter(s[0]) {
		return ErrWordStart
	}
	for i := 0; i < len(s); i++ {
		if !isPrintable(s[i]) {
			return ErrWordPrintable
		}
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPrintable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

// Varargs returns a fresh owned ref to the sentinel "..." node. Because it
// carries no payload, every call interns to the same singleton node
// within this Pool.
func (p *Pool) Varargs() *Node {
	n := &Node{kind: Varargs}
	n.fingerprint = fingerprint(n)
	return p.intern(n)
}

// Optional wraps x: Optional(Optional(x)) collapses to Optional(x), and
// wrapping Varargs is rejected.
func (p *Pool) Optional(x *Node) (*Node, error) {
	if x.kind == Varargs {
		p.Release(x)
		return nil, ErrVarargsNested
	}
	if x.kind == Optional {
		return x, nil
	}
	n := &Node{kind: Optional, child: x}
	n.fingerprint = fingerprint(n)
	return p.intern(n), nil
}

// Plus wraps x with the given minimum repetition count (0 or 1): Plus(x,0)
// is x*, Plus(x,1) is x+. Double application (Plus of a Plus) and wrapping
// Varargs are rejected.
func (p *Pool) Plus(x *Node, min int) (*Node, error) {
	if x.kind == Varargs {
		p.Release(x)
		return nil, ErrVarargsNested
	}
	if x.kind == Plus {
		p.Release(x)
		return nil, ErrDoublePlus
	}
	n := &Node{kind: Plus, child: x, min: min}
	n.fingerprint = fingerprint(n)
	return p.intern(n), nil
}

// Concat builds a sequence, rewriting to the right-leaning normal form:
// concat(concat(x,y),z) = concat(x,concat(y,z)). b may be nil (the
// empty-sequence marker), in which case a is returned unchanged; this
// happens in alternate's prefix factoring and when MatchMax splices argv
// onto an empty residual.
func (p *Pool) Concat(a, b *Node) *Node {
	if b == nil {
		return a
	}
	if a.kind == Concat {
		// concat(concat(x,y), z) -> concat(x, concat(y,z))
		x := p.Ref(a.first)
		y := p.Ref(a.next)
		p.Release(a)
		return p.Concat(x, p.Concat(y, b))
	}
	length := 2
	if b.kind == Concat {
		length = 1 + b.length
	}
	n := &Node{kind: Concat, first: a, next: b, length: length}
	n.fingerprint = fingerprint(n)
	return p.intern(n)
}

// internAlternate builds one level of a right-leaning Alternate spine
// directly, without re-running alternate's factoring/sorting logic. It is
// used only to rebuild a spine from an already-canonicalized operand array.
func (p *Pool) internAlternate(a, b *Node) *Node {
	n := &Node{kind: Alternate, first: a, next: b}
	n.fingerprint = fingerprint(n)
	return p.intern(n)
}

// Macro names a grammar fragment. name must already be validated
// uppercase by the caller (the Parser).
func (p *Pool) Macro(name string, body *Node) *Node {
	n := &Node{kind: Macro, name: name, body: body}
	n.fingerprint = fingerprint(n)
	return p.intern(n)
}
