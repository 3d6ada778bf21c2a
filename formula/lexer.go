package formula

import (
	"strings"
	"unicode"
)

// lexer turns formula source (the text after the leading '=') into a
// token stream. Structured as a hand-rolled scanner in the teacher's
// style (character classification helpers, single look-ahead) rather
// than a generated lexer.
type lexer struct {
	src []rune
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src)}
}

func (l *lexer) peekChar() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekCharAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	c := l.peekChar()
	l.pos++
	return c
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isAlpha(c rune) bool {
	return unicode.IsLetter(c)
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}

// skipSpace consumes run-of-the-mill whitespace; formulas don't carry
// semantic whitespace.
func (l *lexer) skipSpace() {
	for unicode.IsSpace(l.peekChar()) {
		l.pos++
	}
}

// next returns the next token, or a TokenEOF token once the source is
// exhausted.
func (l *lexer) next() (Token, error) {
	l.skipSpace()
	start := l.pos
	c := l.peekChar()

	switch {
	case c == 0:
		return Token{Type: TokenEOF, Pos: start}, nil

	case isDigit(c) || (c == '.' && isDigit(l.peekCharAt(1))):
		return l.lexNumber(start), nil

	case isAlpha(c):
		return l.lexIdentifierOrCellRef(start), nil

	case c == '(':
		l.advance()
		return Token{Type: TokenLParen, Text: "(", Pos: start}, nil

	case c == ')':
		l.advance()
		return Token{Type: TokenRParen, Text: ")", Pos: start}, nil

	case c == ',':
		l.advance()
		return Token{Type: TokenComma, Text: ",", Pos: start}, nil

	case c == ':':
		l.advance()
		return Token{Type: TokenColon, Text: ":", Pos: start}, nil

	case c == '+' || c == '-' || c == '*' || c == '/' || c == '^' || c == '%':
		l.advance()
		return Token{Type: TokenOp, Text: string(c), Pos: start}, nil

	case c == '=':
		l.advance()
		return Token{Type: TokenCompare, Text: "=", Pos: start}, nil

	case c == '<':
		l.advance()
		if l.peekChar() == '>' {
			l.advance()
			return Token{Type: TokenCompare, Text: "<>", Pos: start}, nil
		}
		if l.peekChar() == '=' {
			l.advance()
			return Token{Type: TokenCompare, Text: "<=", Pos: start}, nil
		}
		return Token{Type: TokenCompare, Text: "<", Pos: start}, nil

	case c == '>':
		l.advance()
		if l.peekChar() == '=' {
			l.advance()
			return Token{Type: TokenCompare, Text: ">=", Pos: start}, nil
		}
		return Token{Type: TokenCompare, Text: ">", Pos: start}, nil

	default:
		l.advance()
		return Token{Type: TokenError, Text: string(c), Pos: start}, newParseError(start, "unexpected character %q", c)
	}
}

func (l *lexer) lexNumber(start int) Token {
	var b strings.Builder
	for isDigit(l.peekChar()) {
		b.WriteRune(l.advance())
	}
	if l.peekChar() == '.' && isDigit(l.peekCharAt(1)) {
		b.WriteRune(l.advance())
		for isDigit(l.peekChar()) {
			b.WriteRune(l.advance())
		}
	}
	if l.peekChar() == 'e' || l.peekChar() == 'E' {
		offset := 1
		if l.peekCharAt(1) == '+' || l.peekCharAt(1) == '-' {
			offset = 2
		}
		if isDigit(l.peekCharAt(offset)) {
			b.WriteRune(l.advance())
			if l.peekChar() == '+' || l.peekChar() == '-' {
				b.WriteRune(l.advance())
			}
			for isDigit(l.peekChar()) {
				b.WriteRune(l.advance())
			}
		}
	}
	return Token{Type: TokenNumber, Text: b.String(), Pos: start}
}

// lexIdentifierOrCellRef scans a run of letters followed optionally by
// digits. "A1", "AA23" classify as cell references; anything else (a
// bare word, or letters with no trailing digits, like "SUM") is an
// identifier — a function name.
func (l *lexer) lexIdentifierOrCellRef(start int) Token {
	var b strings.Builder
	for isAlpha(l.peekChar()) {
		b.WriteRune(l.advance())
	}
	letters := b.String()
	digitStart := l.pos
	for isDigit(l.peekChar()) {
		b.WriteRune(l.advance())
	}
	text := b.String()

	if len(text) > len(letters) && isValidColumnLetters(letters) {
		return Token{Type: TokenCellRef, Text: text, Pos: start}
	}
	// rewind: the digit run (if any) doesn't belong to an identifier
	l.pos = digitStart
	return Token{Type: TokenIdentifier, Text: letters, Pos: start}
}

func isValidColumnLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			if c < 'a' || c > 'z' {
				return false
			}
		}
	}
	return true
}
