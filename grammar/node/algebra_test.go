package node

import "testing"

func mustWord(t *testing.T, p *Pool, text string) *Node {
	t.Helper()
	n, err := p.Word(text, false, false, nil)
	if err != nil {
		t.Fatalf("Word(%q): %v", text, err)
	}
	return n
}

func TestAlternateIdempotent(t *testing.T) {
	p := NewPool()
	a := mustWord(t, p, "foo")
	b := p.Ref(a)

	r, err := p.Alternate(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if r != a {
		t.Fatalf("alternate(a,a) = %v, want the same node back", r.kind)
	}
	p.Release(r)
	if !p.Empty() {
		t.Fatalf("pool not empty after release: %+v", p.Stats())
	}
}

func TestAlternateCommutative(t *testing.T) {
	p := NewPool()
	a := mustWord(t, p, "add")
	b := mustWord(t, p, "sub")
	a2 := p.Ref(a)
	b2 := p.Ref(b)

	ab, err := p.Alternate(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := p.Alternate(b2, a2)
	if err != nil {
		t.Fatal(err)
	}
	if ab != ba {
		t.Fatalf("alternate(a,b) != alternate(b,a)")
	}
	p.Release(ab)
	p.Release(ba)
	if !p.Empty() {
		t.Fatalf("pool not empty after release: %+v", p.Stats())
	}
}

// "foo bar" and "foo baz" canonically factor into "foo (bar|baz)".
func TestPrefixFactoring(t *testing.T) {
	p := NewPool()
	foo1, bar := mustWord(t, p, "foo"), mustWord(t, p, "bar")
	foo2, baz := mustWord(t, p, "foo"), mustWord(t, p, "baz")

	line1 := p.Concat(foo1, bar)
	line2 := p.Concat(foo2, baz)

	result, err := p.Alternate(line1, line2)
	if err != nil {
		t.Fatal(err)
	}

	if result.Kind() != Concat {
		t.Fatalf("top node kind = %v, want Concat", result.Kind())
	}
	if result.First().Kind() != Word || result.First().Text() != "foo" {
		t.Fatalf("prefix = %+v, want word foo", result.First())
	}
	alt := result.Next()
	if alt.Kind() != Alternate {
		t.Fatalf("suffix kind = %v, want Alternate", alt.Kind())
	}
	got := map[string]bool{alt.First().Text(): true, alt.Next().Text(): true}
	if !got["bar"] || !got["baz"] {
		t.Fatalf("alternatives = %v, want {bar, baz}", got)
	}

	p.Release(result)
	if !p.Empty() {
		t.Fatalf("pool not empty after release: %+v", p.Stats())
	}
}

// "a" and "a b" canonically collapse into "a [b]".
func TestOptionalCollapse(t *testing.T) {
	p := NewPool()
	a1 := mustWord(t, p, "a")
	a2, b := mustWord(t, p, "a"), mustWord(t, p, "b")

	line1 := a1
	line2 := p.Concat(a2, b)

	result, err := p.Alternate(line1, line2)
	if err != nil {
		t.Fatal(err)
	}

	if result.Kind() != Concat {
		t.Fatalf("top node kind = %v, want Concat", result.Kind())
	}
	if result.First().Text() != "a" {
		t.Fatalf("prefix = %q, want a", result.First().Text())
	}
	if result.Next().Kind() != Optional {
		t.Fatalf("suffix kind = %v, want Optional", result.Next().Kind())
	}
	if result.Next().Child().Text() != "b" {
		t.Fatalf("optional child = %q, want b", result.Next().Child().Text())
	}

	p.Release(result)
	if !p.Empty() {
		t.Fatalf("pool not empty after release: %+v", p.Stats())
	}
}

func TestOptionalOfOptionalCollapses(t *testing.T) {
	p := NewPool()
	a := mustWord(t, p, "a")
	once, err := p.Optional(a)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := p.Optional(p.Ref(once))
	if err != nil {
		t.Fatal(err)
	}
	if twice != once {
		t.Fatalf("Optional(Optional(x)) did not collapse to Optional(x)")
	}
	p.Release(twice)
	p.Release(once)
	if !p.Empty() {
		t.Fatalf("pool not empty after release: %+v", p.Stats())
	}
}

func TestPlusRejectsDoubleApplication(t *testing.T) {
	p := NewPool()
	a := mustWord(t, p, "a")
	once, err := p.Plus(a, 1)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Plus(once, 1)
	if err != ErrDoublePlus {
		t.Fatalf("Plus(Plus(x)) err = %v, want ErrDoublePlus", err)
	}
	if !p.Empty() {
		t.Fatalf("pool not empty after rejected Plus: %+v", p.Stats())
	}
}

func TestVarargsRejectedInsideOptionalPlusAlternate(t *testing.T) {
	p := NewPool()

	if _, err := p.Optional(p.Varargs()); err != ErrVarargsNested {
		t.Fatalf("Optional(Varargs) err = %v, want ErrVarargsNested", err)
	}
	if _, err := p.Plus(p.Varargs(), 0); err != ErrVarargsNested {
		t.Fatalf("Plus(Varargs) err = %v, want ErrVarargsNested", err)
	}
	a := mustWord(t, p, "a")
	if _, err := p.Alternate(a, p.Varargs()); err != ErrVarargsNested {
		t.Fatalf("Alternate(a, Varargs) err = %v, want ErrVarargsNested", err)
	}
	if !p.Empty() {
		t.Fatalf("pool not empty after rejected constructions: %+v", p.Stats())
	}
}

func TestConcatAssociative(t *testing.T) {
	p := NewPool()
	x1, y1, z1 := mustWord(t, p, "x"), mustWord(t, p, "y"), mustWord(t, p, "z")
	x2, y2, z2 := mustWord(t, p, "x"), mustWord(t, p, "y"), mustWord(t, p, "z")

	left := p.Concat(p.Concat(x1, y1), z1)
	right := p.Concat(x2, p.Concat(y2, z2))

	if left != right {
		t.Fatalf("concat(concat(x,y),z) != concat(x,concat(y,z))")
	}
	if left.Length() != 3 {
		t.Fatalf("length = %d, want 3", left.Length())
	}
	if left.First() != right.First() {
		t.Fatalf("first child mismatch after right-leaning rewrite")
	}

	p.Release(left)
	p.Release(right)
	if !p.Empty() {
		t.Fatalf("pool not empty after release: %+v", p.Stats())
	}
}

func TestWordLexicalRules(t *testing.T) {
	p := NewPool()
	if _, err := p.Word("", false, false, nil); err != ErrEmptyWord {
		t.Fatalf("empty word err = %v", err)
	}
	if _, err := p.Word("1abc", false, false, nil); err != ErrWordStart {
		t.Fatalf("digit-led word err = %v", err)
	}
	if _, err := p.Word("bad\x01", false, false, nil); err != ErrWordPrintable {
		t.Fatalf("control-byte word err = %v", err)
	}
}

func TestForceWordBypassesLexicalRules(t *testing.T) {
	p := NewPool()
	n := p.ForceWord("10.0.0.1")
	if n.Kind() != Word || n.Text() != "10.0.0.1" {
		t.Fatalf("ForceWord produced %+v", n)
	}
	p.Release(n)
}
