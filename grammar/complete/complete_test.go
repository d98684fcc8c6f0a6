package complete

import (
	"reflect"
	"testing"

	"github.com/go-recli/recli/grammar/match"
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

func TestTokenizeTrailingEmpty(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"show", []string{"show"}},
		{"show ", []string{"show", ""}},
		{"show version", []string{"show", "version"}},
		{`set key "a b"`, []string{"set", "key", `"a b"`}},
	}
	for _, c := range cases {
		got := Tokenize(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

// A partially typed word completes to the one candidate it names.
func TestCompletePartialWord(t *testing.T) {
	pool, g := build(t, "(show (version|status)|set key value)")
	defer pool.Release(g)
	m := match.New(pool)

	got := Complete(m, g, Tokenize("sh"))
	if !reflect.DeepEqual(got, []string{"show "}) {
		t.Fatalf("Complete(sh) = %#v, want [\"show \"]", got)
	}
}

// After a completed word plus trailing space, every candidate carries the
// full line typed so far, not just the next word.
func TestCompleteAfterWord(t *testing.T) {
	pool, g := build(t, "(show (version|status)|set key value)")
	defer pool.Release(g)
	m := match.New(pool)

	got := Complete(m, g, Tokenize("show "))
	want := []string{"show status ", "show version "}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Complete(show ) = %#v, want %#v", got, want)
	}
}

func TestCompleteExactWordStopsAtOneCandidate(t *testing.T) {
	pool, g := build(t, "(show (version|status)|set key value)")
	defer pool.Release(g)
	m := match.New(pool)

	got := Complete(m, g, Tokenize("show version"))
	if !reflect.DeepEqual(got, []string{"show version "}) {
		t.Fatalf("Complete(show version) = %#v, want [\"show version \"]", got)
	}
}

func TestCompleteNoMatch(t *testing.T) {
	pool, g := build(t, "show version")
	defer pool.Release(g)
	m := match.New(pool)

	got := Complete(m, g, Tokenize("frobnicate"))
	if got != nil {
		t.Fatalf("Complete(frobnicate) = %#v, want nil", got)
	}
}

func TestCompleteSuppressesValidatorWords(t *testing.T) {
	pool, g := build(t, "ping IPV4ADDR")
	defer pool.Release(g)
	m := match.New(pool)

	got := Complete(m, g, Tokenize("ping "))
	if got != nil {
		t.Fatalf("Complete(ping ) = %#v, want nil (validator words are not candidates)", got)
	}
}
