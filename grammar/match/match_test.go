package match

import (
	"testing"

	"github.com/go-recli/recli/grammar/node"
	"github.com/go-recli/recli/grammar/parser"
)

func build(t *testing.T, src string) (*node.Pool, *node.Node) {
	t.Helper()
	pool := node.NewPool()
	p := parser.New(pool)
	p.RegisterBuiltins()
	g, err := p.ParseLine(src)
	if err != nil {
		t.Fatalf("ParseLine(%q): %v", src, err)
	}
	return pool, g
}

// A Word with a validator rejects argument text the validator rejects.
func TestValidationHit(t *testing.T) {
	pool, g := build(t, "ping IPV4ADDR")
	defer pool.Release(g)
	m := New(pool)

	n, _, err := m.Check(g, []string{"ping", "10.0.0.1"})
	if err != nil || n != 2 {
		t.Fatalf("check(ping 10.0.0.1) = %d, %v; want 2, nil", n, err)
	}

	n, _, err = m.Check(g, []string{"ping", "10.0.0.300"})
	if n != -2 {
		t.Fatalf("check(ping 10.0.0.300) = %d, want -2", n)
	}
	if err == nil || err.Error() != `argument 2 ("10.0.0.300"): Invalid syntax for IP address` {
		t.Fatalf("err = %v", err)
	}
}

// An input that ends before the grammar is satisfied reports want-more.
func TestWantMore(t *testing.T) {
	pool, g := build(t, "show version")
	defer pool.Release(g)
	m := New(pool)

	n, _, err := m.Check(g, []string{"show"})
	if err != nil {
		t.Fatal(err)
	}
	if n <= 1 {
		t.Fatalf("check(show) = %d, want > 1", n)
	}
}

// A "/i" word matches regardless of case; a "/t" word sets needsTerm.
func TestCaseInsensitiveAndTerminal(t *testing.T) {
	pool, g := build(t, "quit/i")
	defer pool.Release(g)
	m := New(pool)

	n, needsTerm, err := m.Check(g, []string{"QUIT"})
	if err != nil || n != 1 {
		t.Fatalf("check(QUIT) = %d, %v; want 1, nil", n, err)
	}
	if needsTerm {
		t.Fatalf("needsTerm = true, want false")
	}

	pool2, g2 := build(t, "reload/t")
	defer pool2.Release(g2)
	m2 := New(pool2)
	n, needsTerm, err = m2.Check(g2, []string{"reload"})
	if err != nil || n != 1 {
		t.Fatalf("check(reload) = %d, %v; want 1, nil", n, err)
	}
	if !needsTerm {
		t.Fatalf("needsTerm = false, want true")
	}
}

// Varargs absorbs every remaining word regardless of count.
func TestVarargsTail(t *testing.T) {
	pool, g := build(t, "echo ...")
	defer pool.Release(g)
	m := New(pool)

	n, _, err := m.Check(g, []string{"echo", "one", "two", "three"})
	if err != nil || n != 4 {
		t.Fatalf("check(echo one two three) = %d, %v; want 4, nil", n, err)
	}
}

func TestCheckEmptyInput(t *testing.T) {
	pool, g := build(t, "show version")
	defer pool.Release(g)
	m := New(pool)

	n, needsTerm, err := m.Check(g, nil)
	if n != 0 || needsTerm || err != nil {
		t.Fatalf("check(nil) = %d, %v, %v; want 0, false, nil", n, needsTerm, err)
	}
}

func TestExhaustedReportsFirstUnexpectedToken(t *testing.T) {
	pool, g := build(t, "show version")
	defer pool.Release(g)
	m := New(pool)

	n, _, err := m.Check(g, []string{"show", "version", "extra"})
	if n != -3 {
		t.Fatalf("check(show version extra) = %d, want -3", n)
	}
	if err == nil {
		t.Fatal("err = nil, want a MatchError pointing at the trailing \"extra\"")
	}
	if err.ArgIndex != 3 || err.ArgText != "extra" {
		t.Fatalf("err = %+v, want ArgIndex=3 ArgText=\"extra\"", err)
	}
}

func TestMatchWordExactAndPrefix(t *testing.T) {
	pool, g := build(t, "(show (version|status)|set key value)")
	defer pool.Release(g)
	m := New(pool)

	rest, ok := m.MatchWord("show", false, g, nil)
	if !ok {
		t.Fatalf("MatchWord(show) failed")
	}
	defer pool.Release(rest)
	if rest.Kind() != node.Alternate {
		t.Fatalf("residual kind = %v, want Alternate", rest.Kind())
	}

	r2, ok := m.MatchWord("sh", true, g, nil)
	if !ok {
		t.Fatalf("MatchWord(sh, prefix) should match show")
	}
	if r2 != nil {
		pool.Release(r2)
	}

	_, ok = m.MatchWord("sh", false, g, nil)
	if ok {
		t.Fatalf("MatchWord(sh, exact) should not match")
	}
}

func TestMatchMaxReconstructsPrefix(t *testing.T) {
	pool, g := build(t, "echo ...")
	defer pool.Release(g)
	m := New(pool)

	result := m.MatchMax(g, []string{"echo", "hi", "there"})
	if result == nil {
		t.Fatalf("MatchMax returned nil")
	}
	defer pool.Release(result)

	if result.Kind() != node.Concat || result.First().Text() != "echo" {
		t.Fatalf("got %+v", result)
	}
}
