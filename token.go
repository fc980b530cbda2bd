package lume

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// Special
	Eof Kind = iota

	// Keywords
	Let
	Mut
	Func
	If
	Else
	Match
	Case
	On
	Own
	Throws
	Recover
	Return
	Import
	Export
	From
	Enum
	Class
	With
	Type
	Is
	And
	Or
	Not

	// Literals
	Int          // 64-bit signed integer
	Float        // 64-bit float
	Bool         // true / false
	Str          // "..." with escapes decoded
	PrefixedStr  // ident"...", raw content, no escape processing
	Char         // '..', one Unicode scalar value
	PrefixedChar // ident'..', prefix plus one scalar value

	// Identifiers
	Ident
	Lifetime // 'name

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Eq
	EqEq
	Neq
	Lt
	Gt
	Le
	Ge

	// Bitwise
	Amp   // &
	Pipe  // |
	Caret // ^
	Shl   // <<
	Shr   // >>

	// Compound assignment
	PlusEq    // +=
	MinusEq   // -=
	StarEq    // *=
	SlashEq   // /=
	PercentEq // %=
	AmpEq     // &=
	PipeEq    // |=
	CaretEq   // ^=
	ShlEq     // <<=
	ShrEq     // >>=

	// Delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Dot
	Colon
	Question
	Arrow    // ->
	FatArrow // =>
)

// Token is one lexical unit together with its source span.
//
// Payload layout follows the kind: Text holds identifier and lifetime names
// and the prefix of prefixed literals; Value holds the literal payload
// (int64, float64, bool, string for string content, rune for characters).
// Keywords, operators and delimiters carry no payload.
type Token struct {
	Kind  Kind
	Text  string
	Value interface{}
	Span  Span
}

// keywords maps reserved words to their token kinds. true/false are handled
// separately since they carry a boolean payload.
var keywords = map[string]Kind{
	"let":     Let,
	"mut":     Mut,
	"func":    Func,
	"if":      If,
	"else":    Else,
	"match":   Match,
	"case":    Case,
	"on":      On,
	"own":     Own,
	"throws":  Throws,
	"recover": Recover,
	"return":  Return,
	"import":  Import,
	"export":  Export,
	"from":    From,
	"enum":    Enum,
	"class":   Class,
	"with":    With,
	"type":    Type,
	"is":      Is,
	"and":     And,
	"or":      Or,
	"not":     Not,
}

// keywordOrIdent classifies a scanned identifier run.
func keywordOrIdent(text string, span Span) Token {
	switch text {
	case "true":
		return Token{Kind: Bool, Value: true, Span: span}
	case "false":
		return Token{Kind: Bool, Value: false, Span: span}
	}
	if k, ok := keywords[text]; ok {
		return Token{Kind: k, Span: span}
	}
	return Token{Kind: Ident, Text: text, Span: span}
}

var kindNames = map[Kind]string{
	Eof:          "EOF",
	Let:          "let",
	Mut:          "mut",
	Func:         "func",
	If:           "if",
	Else:         "else",
	Match:        "match",
	Case:         "case",
	On:           "on",
	Own:          "own",
	Throws:       "throws",
	Recover:      "recover",
	Return:       "return",
	Import:       "import",
	Export:       "export",
	From:         "from",
	Enum:         "enum",
	Class:        "class",
	With:         "with",
	Type:         "type",
	Is:           "is",
	And:          "and",
	Or:           "or",
	Not:          "not",
	Int:          "integer",
	Float:        "float",
	Bool:         "boolean",
	Str:          "string",
	PrefixedStr:  "prefixed string",
	Char:         "character",
	PrefixedChar: "prefixed character",
	Ident:        "identifier",
	Lifetime:     "lifetime",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Eq:           "=",
	EqEq:         "==",
	Neq:          "!=",
	Lt:           "<",
	Gt:           ">",
	Le:           "<=",
	Ge:           ">=",
	Amp:          "&",
	Pipe:         "|",
	Caret:        "^",
	Shl:          "<<",
	Shr:          ">>",
	PlusEq:       "+=",
	MinusEq:      "-=",
	StarEq:       "*=",
	SlashEq:      "/=",
	PercentEq:    "%=",
	AmpEq:        "&=",
	PipeEq:       "|=",
	CaretEq:      "^=",
	ShlEq:        "<<=",
	ShrEq:        ">>=",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Comma:        ",",
	Semicolon:    ";",
	Dot:          ".",
	Colon:        ":",
	Question:     "?",
	Arrow:        "->",
	FatArrow:     "=>",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
