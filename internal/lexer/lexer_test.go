package lexer

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

type want struct {
	kind Kind
	text string
}

func collect(t *testing.T, input string, trivia bool) []want {
	t.Helper()
	tokens, err := NewLexer(input, trivia).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := make([]want, len(tokens))
	for i, tok := range tokens {
		out[i] = want{tok.Kind, tok.Text}
	}
	return out
}

func expectTokens(t *testing.T, got, expected []want) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d:\n%s", len(expected), len(got), spew.Sdump(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestLiterals(t *testing.T) {
	got := collect(t, `abc == 123 /* cool */ 'x' '\'' '\t' "\"" `, false)
	expectTokens(t, got, []want{
		{Lexeme, "abc"},
		{Lexeme, "=="},
		{Lexeme, "123"},
		{Literal, `'x'`},
		{Literal, `'\''`},
		{Literal, `'\t'`},
		{Literal, `"\""`},
	})
}

func TestTrivia(t *testing.T) {
	t.Run("comments and spaces", func(t *testing.T) {
		got := collect(t, "/*A*/F//B\n\n//X", true)
		expectTokens(t, got, []want{
			{Comment, "/*A*/"},
			{Lexeme, "F"},
			{Comment, "//B\n"},
			{Space, "\n"},
			{Comment, "//X"},
		})
	})

	t.Run("annotation", func(t *testing.T) {
		got := collect(t, "@Test class", true)
		expectTokens(t, got, []want{
			{Lexeme, "@"},
			{Lexeme, "Test"},
			{Space, " "},
			{Lexeme, "class"},
		})
	})

	t.Run("skipped by default", func(t *testing.T) {
		got := collect(t, "a /* b */ c // d\n e", false)
		expectTokens(t, got, []want{{Lexeme, "a"}, {Lexeme, "c"}, {Lexeme, "e"}})
	})
}

func TestIdentifiers(t *testing.T) {
	got := collect(t, "System.out.println(x_1 . y) a.", false)
	expectTokens(t, got, []want{
		{Lexeme, "System.out.println"},
		{Lexeme, "("},
		{Lexeme, "x_1"},
		{Lexeme, "."},
		{Lexeme, "y"},
		{Lexeme, ")"},
		{Lexeme, "a"},
		{Lexeme, "."},
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"0", []string{"0"}},
		{"0x1F", []string{"0x1F"}},
		{"0XffL", []string{"0XffL"}},
		{"1.5", []string{"1.5"}},
		{".5f", []string{".5f"}},
		{"1.", []string{"1."}},
		{"1e10", []string{"1e10"}},
		{"2.5E-3d", []string{"2.5E-3d"}},
		{"100L", []string{"100L"}},
		{"3e", []string{"3", "e"}},
		{"7e+x", []string{"7", "e", "+", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := Texts(tokens)
			if spew.Sdump(got) != spew.Sdump(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOperators(t *testing.T) {
	tokens, err := Tokenize("a<<=b>>c<=d!=e&&f||g++ h-- ...i->j?k:l~m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{
		"a", "<<=", "b", ">>", "c", "<=", "d", "!=", "e", "&&", "f", "||", "g", "++",
		"h", "--", "...", "i", "->", "j", "?", "k", ":", "l", "~", "m",
	}
	got := Texts(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestCharacterLiterals(t *testing.T) {
	for _, input := range []string{`'a'`, `'\n'`, `'\u0041'`, `'\uu00e9'`, `'\0'`, `'\177'`, `'é'`, `'😀'`} {
		t.Run(input, func(t *testing.T) {
			got := collect(t, input, false)
			expectTokens(t, got, []want{{Literal, input}})
		})
	}
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("class A {\n  int n;\n}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tokens[4]
	if n.Text != "n" || n.Line != 2 || n.Column != 7 {
		t.Errorf("expected n at 2:7, got %q at %d:%d", n.Text, n.Line, n.Column)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"unterminated string at newline", "\"abc\n\"", "unterminated string literal"},
		{"unterminated string at end", `"abc`, "unterminated string literal"},
		{"empty char", `''`, "invalid character literal"},
		{"unterminated char", `'ab'`, "unterminated character literal"},
		{"unterminated comment", "/* never closed", "unterminated comment"},
		{"unknown character", "a # b", "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if lexErr.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, lexErr.Reason)
			}
		})
	}

	t.Run("span and cursor", func(t *testing.T) {
		_, err := Tokenize("x = \"open")
		var lexErr *Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if lexErr.Span != "\"open" {
			t.Errorf("expected span %q, got %q", "\"open", lexErr.Span)
		}
		if lexErr.Offset != 9 || lexErr.Column != 5 {
			t.Errorf("expected offset 9 column 5, got %d/%d", lexErr.Offset, lexErr.Column)
		}
	})
}
