package lume

import "fmt"

// Span is a half-open byte interval [Start, End) into the source text a
// token or error came from, plus the name the source was registered under
// (usually a file path). Offsets are counted in bytes, not runes, so they
// stay exact in the presence of multi-byte UTF-8 sequences.
//
// If the source began with a shebang line, offsets are relative to the text
// after that line; see New.
type Span struct {
	Start int // inclusive
	End   int // exclusive
	File  string
}

// NewSpan builds a span. End must be >= Start.
func NewSpan(start, end int, file string) Span {
	return Span{Start: start, End: end, File: file}
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d..%d", s.File, s.Start, s.End)
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// lineCol converts a byte offset into 1-based line and column coordinates
// against src. Offsets past the end clamp to the last position. The column
// is a byte column, which is what the caret renderer needs to line up under
// the offending text.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
