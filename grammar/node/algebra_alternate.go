package node

import "sort"

// Alternate builds an ordered alternation: identical operands collapse, a
// shared prefix is factored out recursively, the remaining alternatives
// are sorted into the total order of order.go and deduplicated, then
// re-factored and rebuilt into a right-leaning spine. a or b may be the
// empty marker (Go nil), which happens only through Alternate's own
// recursion during prefix factoring (an empty side becomes Optional of
// the other); ordinary top-level callers (the Parser) never pass nil.
func (p *Pool) Alternate(a, b *Node) (*Node, error) {
	if a == nil && b == nil {
		return nil, nil
	}
	if a == nil {
		return p.Optional(b)
	}
	if b == nil {
		return p.Optional(a)
	}
	if a == b {
		p.Release(b)
		return a, nil
	}
	if a.kind == Varargs || b.kind == Varargs {
		p.Release(a)
		p.Release(b)
		return nil, ErrVarargsNested
	}

	if lcp := longestCommonPrefix(a, b); lcp > 0 {
		prefix := p.takePrefixRef(a, lcp)
		suffixA := p.skipRef(a, lcp)
		suffixB := p.skipRef(b, lcp)
		p.Release(a)
		p.Release(b)
		rest, err := p.Alternate(suffixA, suffixB)
		if err != nil {
			p.Release(prefix)
			return nil, err
		}
		return p.Concat(prefix, rest), nil
	}

	ops := p.flattenAlternative(a)
	ops = append(ops, p.flattenAlternative(b)...)

	sort.Slice(ops, func(i, j int) bool { return Less(ops[i], ops[j]) })
	ops = dedupeOps(p, ops)

	ops, err := p.factorPrefixes(ops)
	if err != nil {
		for _, o := range ops {
			p.Release(o)
		}
		return nil, err
	}

	return p.buildAlternateSpine(ops), nil
}

// step decomposes n into its head leaf and the remainder, uniformly for
// both a Concat chain and a bare leaf (rest is nil once there is nothing
// left), so longestCommonPrefix and the factoring pass don't need to know
// which representation either side is in.
func step(n *Node) (head, rest *Node) {
	if n.kind == Concat {
		return n.first, n.next
	}
	return n, nil
}

// longestCommonPrefix walks both sides leaf by leaf and returns the count
// of leading leaves that are the identical interned node. It borrows a
// and b; it never changes reference counts.
func longestCommonPrefix(a, b *Node) int {
	count := 0
	for {
		ah, arest := step(a)
		bh, brest := step(b)
		if ah != bh {
			return count
		}
		count++
		if arest == nil || brest == nil {
			return count
		}
		a, b = arest, brest
	}
}

// takePrefixRef returns a fresh owned handle for h's first n leaves,
// rebuilt as a right-leaning Concat chain (or the bare leaf if n == 1).
// It borrows h: every leaf it uses gets a new Ref, h itself is untouched.
func (p *Pool) takePrefixRef(h *Node, n int) *Node {
	head, rest := step(h)
	if n == 1 {
		return p.Ref(head)
	}
	return p.Concat(p.Ref(head), p.takePrefixRef(rest, n-1))
}

// skipRef returns a fresh owned handle for h's suffix after dropping its
// first n leaves, or nil (the empty marker) if n consumes h entirely. It
// borrows h.
func (p *Pool) skipRef(h *Node, n int) *Node {
	for i := 0; i < n; i++ {
		_, rest := step(h)
		if rest == nil {
			return nil
		}
		h = rest
	}
	return p.Ref(h)
}

// flattenAlternative consumes h and returns owned handles to its top-level
// alternatives: h's own Alternate spine if it has one, or the single
// operand [h] otherwise.
func (p *Pool) flattenAlternative(h *Node) []*Node {
	var ops []*Node
	cur := h
	for cur.kind == Alternate {
		ops = append(ops, p.Ref(cur.first))
		cur = cur.next
	}
	ops = append(ops, p.Ref(cur))
	p.Release(h)
	return ops
}

// dedupeOps drops adjacent duplicates from a sorted operand slice,
// releasing the extra reference. Interning guarantees two structurally
// equal operands are the same pointer, so an adjacency check after sorting
// is sufficient to dedup in O(n) given the sort already grouped equals
// together.
func dedupeOps(p *Pool, ops []*Node) []*Node {
	if len(ops) == 0 {
		return ops
	}
	result := ops[:1]
	for _, o := range ops[1:] {
		if o == result[len(result)-1] {
			p.Release(o)
			continue
		}
		result = append(result, o)
	}
	return result
}

// factorPrefixes is the recursive prefix-factoring pass: scan the sorted,
// deduplicated operands for adjacent runs (of at least two) sharing a
// one-leaf prefix, strip it, recurse on the stripped suffixes (an empty
// suffix becomes Optional via Alternate's own nil handling), and re-emit
// the run as concat(prefix, alternate-of-rest).
func (p *Pool) factorPrefixes(ops []*Node) ([]*Node, error) {
	var result []*Node
	i := 0
	for i < len(ops) {
		head, _ := step(ops[i])
		j := i + 1
		for j < len(ops) {
			h2, _ := step(ops[j])
			if h2 != head {
				break
			}
			j++
		}

		if j-i < 2 {
			result = append(result, ops[i])
			i++
			continue
		}

		headRef := p.Ref(head)
		suffixes := make([]*Node, 0, j-i)
		for k := i; k < j; k++ {
			_, rest := step(ops[k])
			suffixes = append(suffixes, p.Ref(rest))
		}
		for k := i; k < j; k++ {
			p.Release(ops[k])
		}

		group, err := p.alternateFold(suffixes)
		if err != nil {
			p.Release(headRef)
			for _, r := range result {
				p.Release(r)
			}
			for _, o := range ops[j:] {
				p.Release(o)
			}
			return nil, err
		}
		result = append(result, p.Concat(headRef, group))
		i = j
	}
	return result, nil
}

// alternateFold folds a slice of suffix handles (one or more of which may
// be nil) into a single alternation via repeated calls to Alternate,
// consuming every element.
func (p *Pool) alternateFold(suffixes []*Node) (*Node, error) {
	acc := suffixes[0]
	for k, s := range suffixes[1:] {
		next, err := p.Alternate(acc, s)
		if err != nil {
			for _, rest := range suffixes[k+2:] {
				p.Release(rest)
			}
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// buildAlternateSpine rebuilds a canonical right-leaning Alternate spine
// from an already sorted, deduplicated, prefix-factored operand slice.
func (p *Pool) buildAlternateSpine(ops []*Node) *Node {
	n := ops[len(ops)-1]
	for i := len(ops) - 2; i >= 0; i-- {
		n = p.internAlternate(ops[i], n)
	}
	return n
}
