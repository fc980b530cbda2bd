// errors.go: the lexical error type and caret-snippet rendering.
//
// A *LexError carries a human-readable message and the byte span of the
// offending text. WrapErrorWithSource upgrades it into a multi-line snippet
// with numbered context lines and a caret under the error column:
//
//	lexical error in main.lume at 3:9: unterminated string literal
//
//	   2 | let x = 1;
//	   3 | let s = "abc
//	     |         ^
//
// Any other error value passes through WrapErrorWithSource unchanged, so
// callers can apply it unconditionally on the way out.
package lume

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// LexError is the single error kind the scanner produces. Callers that need
// to distinguish conditions do so by message; the one machine-readable
// distinction is IsIncomplete, used by interactive front ends.
type LexError struct {
	Msg  string
	Span Span

	// incomplete marks errors caused by input ending mid-construct when the
	// lexer was built with NewInteractive.
	incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error in %s: %s", e.Span.File, e.Msg)
}

// IsIncomplete reports whether err is a lexical error caused by the input
// ending in the middle of a construct (string, character literal, escape,
// or block comment) while scanning in interactive mode. A REPL uses this to
// keep prompting for more lines instead of reporting a hard failure.
func IsIncomplete(err error) bool {
	le, ok := err.(*LexError)
	return ok && le.incomplete
}

var (
	errHeader = color.New(color.FgRed, color.Bold)
	errCaret  = color.New(color.FgRed)
	errGutter = color.New(color.Faint)
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of src. It recognizes *LexError and leaves every other error untouched.
// src must be the same text that was scanned (after shebang stripping, if
// any), otherwise the snippet will point at the wrong place.
func WrapErrorWithSource(err error, src string) error {
	le, ok := err.(*LexError)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", renderSnippet(src, le))
}

func renderSnippet(src string, le *LexError) string {
	line, col := lineCol(src, le.Span.Start)
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if le.Span.File != "" {
		errHeader.Fprintf(&b, "lexical error in %s at %d:%d: %s", le.Span.File, line, col, le.Msg)
	} else {
		errHeader.Fprintf(&b, "lexical error at %d:%d: %s", line, col, le.Msg)
	}
	b.WriteString("\n\n")
	if line > 1 {
		errGutter.Fprintf(&b, "%4d | ", line-1)
		b.WriteString(lines[line-2])
		b.WriteByte('\n')
	}
	errGutter.Fprintf(&b, "%4d | ", line)
	b.WriteString(lineTxt)
	b.WriteByte('\n')
	errGutter.Fprint(&b, "     | ")
	errCaret.Fprintf(&b, "%s^", strings.Repeat(" ", col-1))
	b.WriteByte('\n')
	if line < len(lines) {
		errGutter.Fprintf(&b, "%4d | ", line+1)
		b.WriteString(lines[line])
		b.WriteByte('\n')
	}
	return b.String()
}
