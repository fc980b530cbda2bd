package lume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{Eof, "EOF"},
		{Let, "let"},
		{Not, "not"},
		{Int, "integer"},
		{Float, "float"},
		{Bool, "boolean"},
		{Str, "string"},
		{PrefixedStr, "prefixed string"},
		{Char, "character"},
		{PrefixedChar, "prefixed character"},
		{Ident, "identifier"},
		{Lifetime, "lifetime"},
		{Neq, "!="},
		{ShlEq, "<<="},
		{FatArrow, "=>"},
		{Question, "?"},
		{Kind(999), "Kind(999)"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.kind.String())
	}
}

func TestEveryKindHasAName(t *testing.T) {
	for k := Eof; k <= FatArrow; k++ {
		assert.NotContains(t, k.String(), "Kind(", "kind %d has no display name", int(k))
	}
}

func TestKeywordOrIdent(t *testing.T) {
	t.Parallel()

	sp := NewSpan(0, 3, "test")

	tok := keywordOrIdent("let", sp)
	assert.Equal(t, Let, tok.Kind)
	assert.Empty(t, tok.Text)
	assert.Nil(t, tok.Value)

	tok = keywordOrIdent("true", sp)
	assert.Equal(t, Bool, tok.Kind)
	assert.Equal(t, true, tok.Value)

	tok = keywordOrIdent("false", sp)
	assert.Equal(t, Bool, tok.Kind)
	assert.Equal(t, false, tok.Value)

	tok = keywordOrIdent("letx", sp)
	assert.Equal(t, Ident, tok.Kind)
	assert.Equal(t, "letx", tok.Text)
	assert.Equal(t, sp, tok.Span)
}

func TestKeywordTableMatchesKinds(t *testing.T) {
	// Every keyword lexes back to its own kind.
	for word, kind := range keywords {
		got := scan(t, word)
		require.Equal(t, kind, got[0].Kind, "keyword %q", word)
	}
}
