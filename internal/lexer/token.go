package lexer

import "strings"

// Kind tags a Token
type Kind int

const (
	// Lexeme is a bare identifier, keyword, number, operator or punctuation
	Lexeme Kind = iota
	// Literal is a string or character literal, quotes included
	Literal
	Comment
	Space
	// Ref is an identifier the parser could not bind to a local. The emitter
	// decides whether it is a member, another type's static or a global.
	Ref
	// Call is the head of a call site. Args holds the shallow argument types.
	Call
)

func (k Kind) String() string {
	switch k {
	case Lexeme:
		return "lexeme"
	case Literal:
		return "literal"
	case Comment:
		return "comment"
	case Space:
		return "space"
	case Ref:
		return "ref"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// Token represents one lexical unit, or a parser-produced reference
type Token struct {
	Kind   Kind
	Text   string
	Args   []string // Call only
	Line   int
	Column int
}

// Bare returns a position-less lexeme
func Bare(text string) Token {
	return Token{Kind: Lexeme, Text: text}
}

// Is reports whether t is the bare lexeme text. Literals never match.
func (t Token) Is(text string) bool {
	return t.Kind == Lexeme && t.Text == text
}

// Qualifier returns the text before the first dot, or "" when there is none
func (t Token) Qualifier() string {
	if i := strings.IndexByte(t.Text, '.'); i >= 0 {
		return t.Text[:i]
	}
	return ""
}

// Key is the overload signature key name@T1:T2 of a Call token
func (t Token) Key() string {
	return t.Text + "@" + strings.Join(t.Args, ":")
}

func (t Token) String() string {
	if t.Kind == Call {
		return t.Key()
	}
	return t.Text
}

// Texts returns the text of every token
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}
