package lume

import (
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestLexErrorMessage(t *testing.T) {
	err := &LexError{Msg: "unterminated string literal", Span: NewSpan(8, 12, "main.lume")}
	assert.Equal(t, "lexical error in main.lume: unterminated string literal", err.Error())
}

func TestIsIncomplete(t *testing.T) {
	assert.False(t, IsIncomplete(nil))
	assert.False(t, IsIncomplete(errors.New("boring")))
	assert.False(t, IsIncomplete(&LexError{Msg: "x"}))
	assert.True(t, IsIncomplete(&LexError{Msg: "x", incomplete: true}))
}

func TestWrapErrorWithSourcePassThrough(t *testing.T) {
	plain := errors.New("not a lexical error")
	assert.Same(t, plain, WrapErrorWithSource(plain, "let x = 1;"))
	assert.Nil(t, WrapErrorWithSource(nil, ""))
}

func TestWrapErrorWithSourceSnippet(t *testing.T) {
	plainColors(t)

	src := "let x = 1;\nlet s = \"abc"
	_, err := Lex(src, "test")
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	want := "lexical error in test at 2:9: unterminated string literal\n" +
		"\n" +
		"   1 | let x = 1;\n" +
		"   2 | let s = \"abc\n" +
		"     |         ^\n"
	assert.Equal(t, want, wrapped.Error())
}

func TestSnippetShowsSurroundingLines(t *testing.T) {
	plainColors(t)

	src := "let a = 1;\nlet b = @;\nlet c = 3;"
	_, err := Lex(src, "test")
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	want := "lexical error in test at 2:9: unexpected character: '@'\n" +
		"\n" +
		"   1 | let a = 1;\n" +
		"   2 | let b = @;\n" +
		"     |         ^\n" +
		"   3 | let c = 3;\n"
	assert.Equal(t, want, wrapped.Error())
}

func TestSnippetFirstLine(t *testing.T) {
	plainColors(t)

	src := "!a"
	_, err := Lex(src, "test")
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	want := "lexical error in test at 1:1: unexpected '!'; logical NOT is written as 'not'\n" +
		"\n" +
		"   1 | !a\n" +
		"     | ^\n"
	assert.Equal(t, want, wrapped.Error())
}

func TestSnippetWithoutFile(t *testing.T) {
	plainColors(t)

	_, err := Lex("~", "")
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, "~")
	assert.Contains(t, wrapped.Error(), "lexical error at 1:1:")
}
