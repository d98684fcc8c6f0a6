package help

import (
	"strings"
	"testing"

	"github.com/go-recli/recli/grammar/node"
	"github.com/go-recli/recli/grammar/parser"
)

const source = `# show
Show information about the system.
It has several subcommands.

    Show system info.

## show version
Show the running software version string.

    Show version.

## show status
Show whether the daemon is currently running.

    Show status.
`

func newBinder(t *testing.T) (*node.Pool, *parser.Parser, *Binder) {
	t.Helper()
	pool := node.NewPool()
	p := parser.New(pool)
	p.RegisterBuiltins()
	b := New(pool, p)
	if err := b.Load(strings.NewReader(source)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return pool, p, b
}

func TestShowHelpLongText(t *testing.T) {
	_, _, b := newBinder(t)
	defer b.Close()

	text, ok := b.ShowHelp([]string{"show", "version"})
	if !ok {
		t.Fatalf("ShowHelp(show version) not found")
	}
	want := "Show the running software version string."
	if text != want {
		t.Fatalf("ShowHelp(show version) = %q, want %q", text, want)
	}
}

func TestPrintContextHelpShortText(t *testing.T) {
	_, _, b := newBinder(t)
	defer b.Close()

	text, ok := b.PrintContextHelp([]string{"show", "status"})
	if !ok {
		t.Fatalf("PrintContextHelp(show status) not found")
	}
	if text != "Show status." {
		t.Fatalf("PrintContextHelp(show status) = %q", text)
	}
}

func TestShowHelpUnknownPathNotFound(t *testing.T) {
	_, _, b := newBinder(t)
	defer b.Close()

	if _, ok := b.ShowHelp([]string{"show", "frobnicate"}); ok {
		t.Fatalf("expected an unregistered path to have no help")
	}
}

func TestPrintContextHelpSubcommands(t *testing.T) {
	pool, p, b := newBinder(t)
	defer b.Close()

	syntax, err := p.ParseLine("show (version|status)")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	defer pool.Release(syntax)

	var out strings.Builder
	if err := b.PrintContextHelpSubcommands(&out, syntax, []string{"show"}); err != nil {
		t.Fatalf("PrintContextHelpSubcommands: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "status") || !strings.Contains(got, "Show status.") {
		t.Fatalf("missing status line: %q", got)
	}
	if !strings.Contains(got, "version") || !strings.Contains(got, "Show version.") {
		t.Fatalf("missing version line: %q", got)
	}
}
