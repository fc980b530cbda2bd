package lume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanBasics(t *testing.T) {
	t.Parallel()

	s := NewSpan(4, 9, "main.lume")
	assert.Equal(t, 4, s.Start)
	assert.Equal(t, 9, s.End)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "main.lume:4..9", s.String())

	empty := NewSpan(7, 7, "x")
	assert.Equal(t, 0, empty.Len())
}

func TestLineCol(t *testing.T) {
	t.Parallel()

	src := "let x = 1;\nlet y = 2;\nlet z = 3;"

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{10, 1, 11}, // the newline itself
		{11, 2, 1},
		{15, 2, 5},
		{22, 3, 1},
		{len(src), 3, 11},
		{len(src) + 50, 3, 11}, // clamps past the end
	}
	for _, tc := range tests {
		line, col := lineCol(src, tc.offset)
		assert.Equal(t, tc.line, line, "offset %d", tc.offset)
		assert.Equal(t, tc.col, col, "offset %d", tc.offset)
	}
}

func TestLineColEmptySource(t *testing.T) {
	line, col := lineCol("", 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}
