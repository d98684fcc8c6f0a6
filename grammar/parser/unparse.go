package parser

import "github.com/go-recli/recli/grammar/node"

// Unparse renders a node back into DSL source text, used by the lint CLI
// subcommand. Reparsing Unparse's output with the same Parser/Pool must
// yield the identical handle.
func Unparse(n *node.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case node.Word:
		s := n.Text()
		if n.CaseFold() {
			s += "/i"
		}
		if n.Terminal() {
			s += "/t"
		}
		return s
	case node.Varargs:
		return "..."
	case node.Optional:
		return "[" + Unparse(n.Child()) + "]"
	case node.Plus:
		if n.Min() == 1 {
			return unparseAtom(n.Child()) + "+"
		}
		return unparseAtom(n.Child()) + "*"
	case node.Concat:
		return Unparse(n.First()) + " " + Unparse(n.Next())
	case node.Alternate:
		return "(" + unparseAlternatives(n) + ")"
	case node.Macro:
		return n.MacroName()
	default:
		return ""
	}
}

// unparseAtom parenthesizes a Concat or Alternate child so a postfix
// operator binds to the whole group rather than just its last leaf.
func unparseAtom(n *node.Node) string {
	switch n.Kind() {
	case node.Concat, node.Alternate:
		return "(" + Unparse(n) + ")"
	default:
		return Unparse(n)
	}
}

func unparseAlternatives(n *node.Node) string {
	var parts []string
	cur := n
	for cur.Kind() == node.Alternate {
		parts = append(parts, Unparse(cur.First()))
		cur = cur.Next()
	}
	parts = append(parts, Unparse(cur))

	out := parts[0]
	for _, p := range parts[1:] {
		out += "|" + p
	}
	return out
}
