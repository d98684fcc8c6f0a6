package match

import "github.com/go-recli/recli/grammar/node"

// MatchMax is the Match-max primitive: given argv[0..n], return
// concat(force_word(argv[0]), concat(force_word(argv[1]), ...,
// concat(force_word(argv[n-1]), remaining))). Each argv[i] leaf is stored
// via ForceWord so it bypasses keyword casing rules. Returns nil if any
// word fails to match g.
func (m *Matcher) MatchMax(g *node.Node, argv []string) *node.Node {
	cur := m.pool.Ref(g)
	leaves := make([]*node.Node, 0, len(argv))

	for _, w := range argv {
		next, ok := m.MatchWord(w, false, cur, nil)
		m.pool.Release(cur)
		if !ok {
			for _, l := range leaves {
				m.pool.Release(l)
			}
			return nil
		}
		leaves = append(leaves, m.pool.ForceWord(w))
		cur = next
	}

	result := cur
	for i := len(leaves) - 1; i >= 0; i-- {
		result = m.pool.Concat(leaves[i], result)
	}
	return result
}
