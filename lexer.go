// lexer.go: the Lume scanner.
//
// One left-to-right pass over the source text. The main loop consumes a
// character, classifies it, and hands off to a sub-scanner (numbers,
// strings, character literals, identifiers, comments) or resolves an
// operator with at most two characters of lookahead. Offsets are byte
// offsets; every token and error carries a half-open byte Span.
package lume

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans a Lume source string into tokens. A Lexer is single-use:
// construct, optionally set Trace, call Scan once.
type Lexer struct {
	src         string
	file        string
	pos         int // byte offset of the next unconsumed character
	tokens      []Token
	interactive bool

	// Trace, when non-nil, is invoked for every token as it is emitted.
	// Diagnostic aid only; it must not mutate the token.
	Trace func(Token)
}

// Lex tokenizes source in one pass and returns the token sequence,
// terminated by exactly one Eof token, or the first lexical error.
// file names the source in spans and error messages.
func Lex(source, file string) ([]Token, error) {
	return New(source, file).Scan()
}

// New creates a lexer for the given source. A leading "#!" line is stripped
// here; all spans are relative to the remaining text.
func New(source, file string) *Lexer {
	return &Lexer{src: stripShebang(source), file: file}
}

// NewInteractive creates a lexer whose unterminated-input errors are marked
// incomplete (see IsIncomplete), for REPL-style line accumulation.
func NewInteractive(source, file string) *Lexer {
	l := New(source, file)
	l.interactive = true
	return l
}

func stripShebang(src string) string {
	if strings.HasPrefix(src, "#!") {
		if idx := strings.IndexByte(src, '\n'); idx >= 0 {
			return src[idx+1:]
		}
		return ""
	}
	return src
}

// ----- cursor -----

func (l *Lexer) isAtEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, true
}

// peekAt returns the n-th unconsumed rune (0 is the same as peek).
func (l *Lexer) peekAt(n int) (rune, bool) {
	i := l.pos
	for ; n > 0 && i < len(l.src); n-- {
		_, size := utf8.DecodeRuneInString(l.src[i:])
		i += size
	}
	if i >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[i:])
	return r, true
}

func (l *Lexer) advance() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return r, true
}

// match consumes the next byte if it equals b. Operator lookahead only ever
// needs ASCII, so a byte comparison is exact.
func (l *Lexer) match(b byte) bool {
	if l.pos < len(l.src) && l.src[l.pos] == b {
		l.pos++
		return true
	}
	return false
}

func (l *Lexer) span(start, end int) Span {
	return Span{Start: start, End: end, File: l.file}
}

func (l *Lexer) push(tok Token) {
	if l.Trace != nil {
		l.Trace(tok)
	}
	l.tokens = append(l.tokens, tok)
}

func (l *Lexer) pushOp(kind Kind, start int) {
	l.push(Token{Kind: kind, Span: l.span(start, l.pos)})
}

// opEq emits the compound-assignment kind if the next byte is '=',
// otherwise the plain kind.
func (l *Lexer) opEq(start int, plain, compound Kind) {
	if l.match('=') {
		l.pushOp(compound, start)
	} else {
		l.pushOp(plain, start)
	}
}

// ----- errors -----

func (l *Lexer) lexErr(start, end int, msg string) *LexError {
	return &LexError{Msg: msg, Span: l.span(start, end)}
}

// unterminated builds an end-of-input error spanning to the end of the
// source. In interactive mode it is flagged incomplete.
func (l *Lexer) unterminated(start int, msg string) *LexError {
	e := l.lexErr(start, len(l.src), msg)
	e.incomplete = l.interactive
	return e
}

// ----- main loop -----

// Scan tokenizes the entire source. On success the last token is Eof; on
// failure no tokens are returned, only the error.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		start := l.pos
		ch, ok := l.advance()
		if !ok {
			break
		}

		switch ch {
		case ' ', '\t', '\n', '\r':
			continue

		case '"':
			content, err := l.scanStringContent(start, true)
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: Str, Value: content, Span: l.span(start, l.pos)})

		case '\'':
			if err := l.scanQuote(start); err != nil {
				return nil, err
			}

		case '=':
			switch {
			case l.match('='):
				l.pushOp(EqEq, start)
			case l.match('>'):
				l.pushOp(FatArrow, start)
			default:
				l.pushOp(Eq, start)
			}

		case '!':
			if l.match('=') {
				l.pushOp(Neq, start)
			} else {
				return nil, l.lexErr(start, start+1, "unexpected '!'; logical NOT is written as 'not'")
			}

		case '<':
			switch {
			case l.match('<'):
				l.opEq(start, Shl, ShlEq)
			case l.match('='):
				l.pushOp(Le, start)
			default:
				l.pushOp(Lt, start)
			}

		case '>':
			switch {
			case l.match('>'):
				l.opEq(start, Shr, ShrEq)
			case l.match('='):
				l.pushOp(Ge, start)
			default:
				l.pushOp(Gt, start)
			}

		case '+':
			l.opEq(start, Plus, PlusEq)

		case '-':
			switch {
			case l.match('>'):
				l.pushOp(Arrow, start)
			case l.match('='):
				l.pushOp(MinusEq, start)
			default:
				l.pushOp(Minus, start)
			}

		case '*':
			l.opEq(start, Star, StarEq)

		case '/':
			switch {
			case l.match('/'):
				l.match('/') // doc comments use a third slash
				l.skipLineComment()
			case l.match('*'):
				if err := l.skipBlockComment(start); err != nil {
					return nil, err
				}
			default:
				l.opEq(start, Slash, SlashEq)
			}

		case '%':
			l.opEq(start, Percent, PercentEq)
		case '&':
			l.opEq(start, Amp, AmpEq)
		case '|':
			l.opEq(start, Pipe, PipeEq)
		case '^':
			l.opEq(start, Caret, CaretEq)

		case '(':
			l.pushOp(LParen, start)
		case ')':
			l.pushOp(RParen, start)
		case '{':
			l.pushOp(LBrace, start)
		case '}':
			l.pushOp(RBrace, start)
		case '[':
			l.pushOp(LBracket, start)
		case ']':
			l.pushOp(RBracket, start)
		case ';':
			l.pushOp(Semicolon, start)
		case ',':
			l.pushOp(Comma, start)
		case ':':
			l.pushOp(Colon, start)
		case '.':
			l.pushOp(Dot, start)
		case '?':
			l.pushOp(Question, start)

		default:
			switch {
			case ch >= '0' && ch <= '9':
				tok, err := l.scanNumber(start)
				if err != nil {
					return nil, err
				}
				l.push(tok)
			case isIdentStart(ch):
				if err := l.scanIdentOrPrefixed(start); err != nil {
					return nil, err
				}
			default:
				return nil, l.lexErr(start, start+utf8.RuneLen(ch),
					fmt.Sprintf("unexpected character: '%c'", ch))
			}
		}
	}

	l.push(Token{Kind: Eof, Span: l.span(len(l.src), len(l.src))})
	return l.tokens, nil
}

// ----- character classes -----

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isBaseDigit(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	default:
		return isDigit(b)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ----- numbers -----

// scanNumber is entered with the first digit already consumed; start is its
// offset. Handles base prefixes (0x/0b/0o), underscores as separators,
// fractions and exponents. A base prefix commits the literal to integer
// form: float detection is never attempted after one.
func (l *Lexer) scanNumber(start int) (Token, error) {
	if l.src[start] == '0' && !l.isAtEnd() {
		base := 0
		switch l.src[l.pos] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			l.pos++ // the base marker
			hasDigit := false
			for l.pos < len(l.src) {
				b := l.src[l.pos]
				if b == '_' {
					l.pos++
					continue
				}
				if !isBaseDigit(b, base) {
					break
				}
				hasDigit = true
				l.pos++
			}
			if !hasDigit {
				return Token{}, l.lexErr(start, l.pos, "invalid integer literal")
			}
			digits := strings.ReplaceAll(l.src[start+2:l.pos], "_", "")
			v, err := strconv.ParseInt(digits, base, 64)
			if err != nil {
				return Token{}, l.lexErr(start, l.pos, "integer literal too large")
			}
			return Token{Kind: Int, Value: v, Span: l.span(start, l.pos)}, nil
		}
	}

	l.eatDigitRun()

	isFloat := false

	// A '.' is part of the number only when a digit follows; otherwise it is
	// left for the next scan (method-call dot).
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		isFloat = true
		l.pos++
		l.eatDigitRun()
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		hasDigit := false
		for l.pos < len(l.src) {
			b := l.src[l.pos]
			if b == '_' {
				l.pos++
				continue
			}
			if !isDigit(b) {
				break
			}
			hasDigit = true
			l.pos++
		}
		if !hasDigit {
			return Token{}, l.lexErr(start, l.pos, "invalid exponent")
		}
	}

	text := strings.ReplaceAll(l.src[start:l.pos], "_", "")
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, l.lexErr(start, l.pos, "invalid float literal")
		}
		return Token{Kind: Float, Value: v, Span: l.span(start, l.pos)}, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, l.lexErr(start, l.pos, "integer literal too large")
	}
	return Token{Kind: Int, Value: v, Span: l.span(start, l.pos)}, nil
}

func (l *Lexer) eatDigitRun() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

// ----- identifiers, keywords, prefixed literals -----

// scanIdent consumes the rest of an identifier run whose first rune was
// already consumed at start, and returns the whole run.
func (l *Lexer) scanIdent(start int) string {
	for {
		r, ok := l.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		l.advance()
	}
	return l.src[start:l.pos]
}

// scanIdentOrPrefixed finishes an identifier run and disambiguates: a run
// immediately followed by a quote is the prefix of a string or character
// literal; anything else is a keyword or plain identifier.
func (l *Lexer) scanIdentOrPrefixed(start int) error {
	name := l.scanIdent(start)
	switch {
	case l.match('"'):
		quote := l.pos - 1
		content, err := l.scanStringContent(quote, false)
		if err != nil {
			return err
		}
		l.push(Token{Kind: PrefixedStr, Text: name, Value: content, Span: l.span(start, l.pos)})
	case l.match('\''):
		ch, err := l.scanCharBody(start)
		if err != nil {
			return err
		}
		l.push(Token{Kind: PrefixedChar, Text: name, Value: ch, Span: l.span(start, l.pos)})
	default:
		l.push(keywordOrIdent(name, l.span(start, l.pos)))
	}
	return nil
}

// ----- strings and escapes -----

// scanStringContent consumes up to and including the closing quote.
// quoteStart is the offset of the opening quote, which the caller already
// consumed. In raw mode (allowEscape false) backslashes pass through
// untouched and the first '"' always closes.
func (l *Lexer) scanStringContent(quoteStart int, allowEscape bool) (string, error) {
	var b strings.Builder
	for {
		ch, ok := l.advance()
		if !ok {
			return "", l.unterminated(quoteStart, "unterminated string literal")
		}
		if ch == '"' {
			return b.String(), nil
		}
		if ch == '\\' && allowEscape {
			r, err := l.readEscape()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			continue
		}
		b.WriteRune(ch)
	}
}

// readEscape decodes one escape sequence; the backslash was just consumed.
// Shared by the string and character scanners.
func (l *Lexer) readEscape() (rune, error) {
	escStart := l.pos - 1 // the backslash
	ch, ok := l.advance()
	if !ok {
		return 0, l.unterminated(escStart, "unterminated escape sequence")
	}
	switch ch {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case 'u':
		if !l.match('{') {
			return 0, l.lexErr(escStart, l.pos, "expected '{' after \\u")
		}
		hexStart := l.pos
		for {
			r, ok := l.peek()
			if !ok {
				return 0, l.unterminated(escStart, "unterminated escape sequence")
			}
			if r == '}' {
				l.advance()
				break
			}
			if !isBaseDigit(byte(r), 16) || r >= utf8.RuneSelf {
				return 0, l.lexErr(escStart, l.pos+utf8.RuneLen(r), "invalid hex digit in \\u{...}")
			}
			l.advance()
		}
		hex := l.src[hexStart : l.pos-1]
		if len(hex) == 0 || len(hex) > 6 {
			return 0, l.lexErr(escStart, l.pos, "unicode escape must have 1-6 hex digits")
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, l.lexErr(escStart, l.pos, "invalid unicode escape")
		}
		r := rune(v)
		if !utf8.ValidRune(r) { // surrogates and values past U+10FFFF
			return 0, l.lexErr(escStart, l.pos, "invalid unicode codepoint")
		}
		return r, nil
	default:
		return 0, l.lexErr(escStart, l.pos, fmt.Sprintf("unknown escape sequence \\%c", ch))
	}
}

// ----- character literals and lifetimes -----

// scanQuote is entered with a leading '\'' consumed at start. Two runes of
// lookahead decide between a character literal ('a', '\n', '5') and a
// lifetime marker ('static).
func (l *Lexer) scanQuote(start int) error {
	first, ok := l.peek()
	if !ok {
		return l.unterminated(start, "unexpected end of input after quote")
	}
	if first == '_' || unicode.IsLetter(first) {
		second, ok := l.peekAt(1)
		if !ok {
			return l.unterminated(start, "unexpected end of input after quote")
		}
		if second != '\'' {
			identStart := l.pos
			l.advance()
			name := l.scanIdent(identStart)
			l.push(Token{Kind: Lifetime, Text: name, Span: l.span(start, l.pos)})
			return nil
		}
	}
	ch, err := l.scanCharBody(start)
	if err != nil {
		return err
	}
	l.push(Token{Kind: Char, Value: ch, Span: l.span(start, l.pos)})
	return nil
}

// scanCharBody reads exactly one content scalar plus the closing quote.
// start is where the whole literal began (the quote, or the prefix of a
// prefixed literal), used for error spans.
func (l *Lexer) scanCharBody(start int) (rune, error) {
	ch, ok := l.advance()
	if !ok {
		return 0, l.unterminated(start, "unterminated character literal")
	}
	if ch == '\'' {
		return 0, l.lexErr(start, start+2, "empty character literal")
	}
	if ch == '\\' {
		var err error
		ch, err = l.readEscape()
		if err != nil {
			return 0, err
		}
	}
	if ch >= 0xD800 && ch <= 0xDFFF {
		return 0, l.lexErr(start, l.pos, "character literal contains invalid Unicode surrogate")
	}
	if !l.match('\'') {
		if l.isAtEnd() {
			return 0, l.unterminated(start, "unterminated character literal")
		}
		return 0, l.lexErr(start, l.pos+1, "character literal must contain exactly one character")
	}
	return ch, nil
}

// ----- comments -----

func (l *Lexer) skipLineComment() {
	for {
		ch, ok := l.advance()
		if !ok || ch == '\n' {
			return
		}
	}
}

// skipBlockComment is entered just past the opening "/*" at start and
// consumes through the matching "*/", counting nesting depth.
func (l *Lexer) skipBlockComment(start int) error {
	depth := 1
	for depth > 0 {
		ch, ok := l.advance()
		if !ok {
			return l.unterminated(start, "unterminated block comment")
		}
		switch ch {
		case '*':
			if l.match('/') {
				depth--
			}
		case '/':
			if l.match('*') {
				depth++
			}
		}
	}
	return nil
}
