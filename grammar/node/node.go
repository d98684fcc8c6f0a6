// Package node implements the Node Pool and the Node Algebra: a
// content-addressed, hash-consed syntax DAG with ref-counted handles, a
// seven-variant node kind, and the constructors that keep every node in
// a strict normal form.
//
// Grounded on the teacher's content-addressed production.go: genProductionID
// hashes a production's LHS/RHS symbols with SHA-256 and productionSet
// dedups by that hash in an id2Prod map. Node generalizes the same idea to
// seven variant kinds, swaps SHA-256 for a 32-bit FNV-1a fingerprint, and
// adds a ref-counted lifetime (the teacher's productions are never freed;
// nodes are).
package node

// Kind identifies a Node's variant.
type Kind uint8

const (
	Word Kind = iota
	Varargs
	Optional
	Plus
	Concat
	Alternate
	Macro
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Varargs:
		return "Varargs"
	case Optional:
		return "Optional"
	case Plus:
		return "Plus"
	case Concat:
		return "Concat"
	case Alternate:
		return "Alternate"
	case Macro:
		return "Macro"
	default:
		return "?"
	}
}

// Validator recognizes whether text is an instance of a registered data
// type. Name identifies the data type for fingerprinting and for the
// Parser's UPPER-name lookup; Check returns (accepted, errorText).
// A pointer to a Validator is part of a Word's identity: two Words with the
// same literal text but different (or absent) validators are distinct nodes.
type Validator struct {
	Name  string
	Check func(text string) (ok bool, errMsg string)
}

// Node is one member of the syntax DAG. Only the fields that apply to
// n.kind are meaningful; the zero value of the others is ignored.
//
// A *Node is a Handle: external code never constructs one directly, only
// receives them (already ref-counted) from a Pool.
type Node struct {
	kind        Kind
	fingerprint uint32
	refs        int

	// Word
	text      string
	validator *Validator
	caseFold  bool // the "/i" modifier
	terminal  bool // the "/t" modifier, "needs-terminal"

	// Optional, Plus: child
	child *Node
	min   int // Plus only: 0 or 1

	// Concat, Alternate: right-leaning pair
	first  *Node
	next   *Node
	length int // Concat only: count of leaves along the right spine

	// Macro
	name string
	body *Node
}

// Handle is the external name for *Node. It is the same Go type; the
// alias exists so package consumers can talk about "handles" rather than
// bare pointers.
type Handle = *Node

// Kind reports the node's variant.
func (n *Node) Kind() Kind { return n.kind }

// Text returns a Word's literal text, or "" for every other kind.
func (n *Node) Text() string { return n.text }

// Validator returns a Word's validator, or nil if it is a plain keyword or
// the node is not a Word.
func (n *Node) Validator() *Validator { return n.validator }

// CaseFold reports whether a Word compares case-insensitively (the "/i"
// modifier).
func (n *Node) CaseFold() bool { return n.caseFold }

// Terminal reports whether a Word carries the needs-terminal flag (the
// "/t" modifier).
func (n *Node) Terminal() bool { return n.terminal }

// Child returns the operand of an Optional or Plus node.
func (n *Node) Child() *Node { return n.child }

// Min returns a Plus node's minimum repetition count (0 or 1).
func (n *Node) Min() int { return n.min }

// First returns the left operand of a Concat or Alternate node.
func (n *Node) First() *Node { return n.first }

// Next returns the right operand of a Concat or Alternate node.
func (n *Node) Next() *Node { return n.next }

// Length returns a Concat node's flattened leaf count.
func (n *Node) Length() int { return n.length }

// MacroName returns a Macro node's uppercase name.
func (n *Node) MacroName() string { return n.name }

// Body returns a Macro node's expansion.
func (n *Node) Body() *Node { return n.body }

// Fingerprint returns the node's 32-bit content fingerprint.
func (n *Node) Fingerprint() uint32 { return n.fingerprint }

// Refs returns the node's current reference count. Exposed for tests and
// for the Pool's diagnostics only.
func (n *Node) Refs() int { return n.refs }

// IsEmpty reports whether h represents the "empty sequence" marker used
// throughout the Algebra's prefix factoring and alternation. The empty
// marker is the Go nil *Node, never an allocated node.
func IsEmpty(h *Node) bool { return h == nil }
