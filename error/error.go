// Package error holds the engine's structured error kinds: one raised by
// the grammar-file reader, one by the CLI input validator, each carrying
// enough position information to draw the two-line "offending text, then
// a caret" diagnostic.
package error

import (
	"fmt"
	"strings"
)

// SpecError is raised while parsing a grammar or help source line. Byte is
// a 1-indexed column into Line; a zero Byte means no column is known (e.g.
// an error that spans the whole line rather than one token).
type SpecError struct {
	Cause error
	Line  string
	Byte  int
}

func (e *SpecError) Error() string {
	if e.Byte == 0 {
		return fmt.Sprintf("error: %v", e.Cause)
	}
	return fmt.Sprintf("%v: error: %v", e.Byte, e.Cause)
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// Caret renders the two-line diagnostic for grammar files: the offending
// source line, then a line of spaces with a caret under Byte, followed by
// the message.
func (e *SpecError) Caret() string {
	var b strings.Builder
	fmt.Fprintln(&b, e.Line)
	if e.Byte > 0 {
		col := e.Byte - 1
		if col > len(e.Line) {
			col = len(e.Line)
		}
		fmt.Fprintln(&b, strings.Repeat(" ", col)+"^")
	}
	fmt.Fprintln(&b, e.Cause)
	return b.String()
}

// MatchError is reported by the Matcher when validation fails: ArgIndex is
// 1-indexed into argv, ArgText is the offending token's own text, and
// Cause may carry a validator's own error string.
type MatchError struct {
	Cause    error
	ArgIndex int
	ArgText  string
}

func (e *MatchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("argument %d (%q): syntax error", e.ArgIndex, e.ArgText)
	}
	return fmt.Sprintf("argument %d (%q): %v", e.ArgIndex, e.ArgText, e.Cause)
}

func (e *MatchError) Unwrap() error {
	return e.Cause
}

// CaretLine renders the CLI-input diagnostic: the full typed line, then a
// caret placed at argv[ArgIndex-1]'s column, followed by the error.
func (e *MatchError) CaretLine(argv []string) string {
	var b strings.Builder
	line := strings.Join(argv, " ")
	fmt.Fprintln(&b, line)

	col := 0
	for i := 0; i < e.ArgIndex-1 && i < len(argv); i++ {
		col += len(argv[i]) + 1
	}
	fmt.Fprintln(&b, strings.Repeat(" ", col)+"^")
	if e.Cause == nil {
		fmt.Fprintln(&b, "syntax error")
	} else {
		fmt.Fprintln(&b, e.Cause)
	}
	return b.String()
}
