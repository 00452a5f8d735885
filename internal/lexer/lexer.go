package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// spanLimit caps how much input an Error quotes
const spanLimit = 60

// Error is a lexical failure: no rule matched, or a literal or comment was
// left open
type Error struct {
	Span   string
	Offset int
	Line   int
	Column int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q (at offset %d, line %d, column %d)",
		e.Reason, e.Span, e.Offset, e.Line, e.Column)
}

var operators = map[string]bool{
	"...": true, "<<=": true, ">>=": true,
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
	"++": true, "--": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "^=": true, "&=": true, "|=": true, "<<": true, ">>": true,
	"->": true,
}

// Lexer tokenizes source text with maximal munch, one token per Next call
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	trivia bool

	start     int
	startLine int
	startCol  int
}

// NewLexer creates a lexer over input. With trivia set, whitespace and
// comments are returned as Space and Comment tokens instead of skipped.
func NewLexer(input string, trivia bool) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
		trivia: trivia,
	}
}

// Tokenize lexes input without trivia
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input, false).Tokenize()
}

// Tokenize processes the remaining input and returns all tokens
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or io.EOF once the input is exhausted
func (l *Lexer) Next() (Token, error) {
	for l.pos < len(l.input) {
		l.mark()
		ch := l.input[l.pos]

		switch {
		case isSpace(ch):
			for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
				l.advance()
			}
			if l.trivia {
				return l.emit(Space), nil
			}
		case ch == '/' && (l.peek() == '/' || l.peek() == '*'):
			if err := l.readComment(); err != nil {
				return Token{}, err
			}
			if l.trivia {
				return l.emit(Comment), nil
			}
		case isLetter(ch):
			return l.readIdentifier(), nil
		case isDigit(ch) || (ch == '.' && isDigit(l.peek())):
			return l.readNumber(), nil
		case ch == '"':
			return l.readString()
		case ch == '\'':
			return l.readChar()
		case ch == '.' && l.peek() != '.':
			l.advance()
			return l.emit(Lexeme), nil
		case isOperator(ch):
			return l.readOperator(), nil
		case isPunctuation(ch):
			l.advance()
			return l.emit(Lexeme), nil
		default:
			return Token{}, l.fail("unexpected character")
		}
	}
	return Token{}, io.EOF
}

func (l *Lexer) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.column
}

func (l *Lexer) emit(kind Kind) Token {
	return Token{
		Kind:   kind,
		Text:   l.input[l.start:l.pos],
		Line:   l.startLine,
		Column: l.startCol,
	}
}

func (l *Lexer) fail(reason string) *Error {
	end := min(l.start+spanLimit, len(l.input))
	return &Error{
		Span:   l.input[l.start:end],
		Offset: l.pos,
		Line:   l.startLine,
		Column: l.startCol,
		Reason: reason,
	}
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

// advanceRune steps over one whole UTF-8 encoded code point
func (l *Lexer) advanceRune() {
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if size <= 1 {
		l.advance()
		return
	}
	l.pos += size
	l.column++
}

func (l *Lexer) cur() byte {
	return l.at(0)
}

func (l *Lexer) peek() byte {
	return l.at(1)
}

func (l *Lexer) at(n int) byte {
	if l.pos+n < len(l.input) {
		return l.input[l.pos+n]
	}
	return 0
}

func (l *Lexer) readComment() error {
	l.advance() // skip /
	if l.cur() == '/' {
		// Line comment, newline included
		for l.pos < len(l.input) {
			ch := l.input[l.pos]
			l.advance()
			if ch == '\n' {
				break
			}
		}
		return nil
	}

	l.advance() // skip *
	for l.pos < len(l.input) {
		if l.cur() == '*' && l.peek() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return l.fail("unterminated comment")
}

func (l *Lexer) readIdentifier() Token {
	for isIdentChar(l.cur()) {
		l.advance()
	}
	// Qualified names stay one token: a.b.c
	for l.cur() == '.' && isLetter(l.peek()) {
		l.advance()
		for isIdentChar(l.cur()) {
			l.advance()
		}
	}
	return l.emit(Lexeme)
}

func (l *Lexer) readNumber() Token {
	if l.cur() == '0' && (l.peek() == 'x' || l.peek() == 'X') && isHex(l.at(2)) {
		l.advance()
		l.advance()
		for isHex(l.cur()) {
			l.advance()
		}
		if ch := l.cur(); ch == 'l' || ch == 'L' {
			l.advance()
		}
		return l.emit(Lexeme)
	}

	for isDigit(l.cur()) {
		l.advance()
	}
	if l.cur() == '.' {
		l.advance()
		for isDigit(l.cur()) {
			l.advance()
		}
	}

	// The exponent is only taken when digits follow it
	if ch := l.cur(); ch == 'e' || ch == 'E' {
		n := 1
		if sign := l.at(1); sign == '+' || sign == '-' {
			n = 2
		}
		if isDigit(l.at(n)) {
			for ; n > 0; n-- {
				l.advance()
			}
			for isDigit(l.cur()) {
				l.advance()
			}
		}
	}

	switch l.cur() {
	case 'f', 'F', 'l', 'L', 'd', 'D':
		l.advance()
	}
	return l.emit(Lexeme)
}

func (l *Lexer) readString() (Token, error) {
	l.advance() // skip opening quote
	for {
		if l.pos >= len(l.input) {
			return Token{}, l.fail("unterminated string literal")
		}
		ch := l.input[l.pos]
		switch ch {
		case '\\':
			l.advance()
			if l.pos >= len(l.input) {
				return Token{}, l.fail("unterminated string literal")
			}
			l.advanceRune()
			continue
		case '\n':
			return Token{}, l.fail("unterminated string literal")
		}
		l.advanceRune()
		if ch == '"' {
			return l.emit(Literal), nil
		}
	}
}

func (l *Lexer) readChar() (Token, error) {
	l.advance() // skip opening quote

	ch := l.cur()
	switch {
	case l.pos >= len(l.input) || ch == '\'' || ch == '\n':
		return Token{}, l.fail("invalid character literal")
	case ch == '\\':
		l.advance()
		if l.pos >= len(l.input) || l.cur() == '\n' {
			return Token{}, l.fail("unterminated character literal")
		}
		switch {
		case l.cur() == 'u':
			for l.cur() == 'u' {
				l.advance()
			}
			for i := 0; i < 4; i++ {
				if !isHex(l.cur()) {
					return Token{}, l.fail("invalid unicode escape")
				}
				l.advance()
			}
		case isOctal(l.cur()):
			for i := 0; i < 3 && isOctal(l.cur()); i++ {
				l.advance()
			}
		default:
			l.advanceRune()
		}
	default:
		l.advanceRune()
	}

	if l.cur() != '\'' {
		return Token{}, l.fail("unterminated character literal")
	}
	l.advance()
	return l.emit(Literal), nil
}

func (l *Lexer) readOperator() Token {
	for _, n := range []int{3, 2} {
		if l.pos+n <= len(l.input) && operators[l.input[l.pos:l.pos+n]] {
			for ; n > 0; n-- {
				l.advance()
			}
			return l.emit(Lexeme)
		}
	}
	l.advance()
	return l.emit(Lexeme)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\v' || ch == '\f' || ch == '\r'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctal(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isOperator(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '=' ||
		ch == '<' || ch == '>' || ch == '!' || ch == '&' || ch == '|' ||
		ch == '^' || ch == '%' || ch == '~' || ch == '?' || ch == '.'
}

func isPunctuation(ch byte) bool {
	return ch == '{' || ch == '}' || ch == '(' || ch == ')' ||
		ch == '[' || ch == ']' || ch == ';' || ch == ',' ||
		ch == ':' || ch == '@'
}
