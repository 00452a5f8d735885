package format

import (
	"testing"

	"j2ts/internal/lexer"
)

func words(texts ...string) []lexer.Token {
	out := make([]lexer.Token, len(texts))
	for i, text := range texts {
		out[i] = lexer.Bare(text)
	}
	return out
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []lexer.Token
		rename   map[string]string
		expected string
	}{
		{
			name:     "empty",
			expected: "",
		},
		{
			name:     "line breaks",
			tokens:   words("class", "T", "{", "x", ":", "int", ";", "}"),
			expected: "class T {\nx : int ;\n}\n",
		},
		{
			name:     "trailing partial line",
			tokens:   words("type", "a", "=", "b"),
			expected: "type a = b\n",
		},
		{
			name:     "rename",
			tokens:   words("x", ":", "Vector", ";"),
			rename:   map[string]string{"Vector": "Array<any>"},
			expected: "x : Array<any> ;\n",
		},
		{
			name: "literal braces do not break",
			tokens: []lexer.Token{
				lexer.Bare("s"), lexer.Bare("="), {Kind: lexer.Literal, Text: `"{"`}, lexer.Bare(";"),
			},
			expected: "s = \"{\" ;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.tokens, tt.rename); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
