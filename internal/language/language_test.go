package language

import (
	"testing"

	"j2ts/internal/lexer"
)

func TestIsID(t *testing.T) {
	tests := []struct {
		tok      lexer.Token
		expected bool
	}{
		{lexer.Bare("x"), true},
		{lexer.Bare("_x1"), true},
		{lexer.Bare("a.b.c"), true},
		{lexer.Bare("int"), true},
		{lexer.Bare("this.x"), true},
		{lexer.Bare("a."), false},
		{lexer.Bare("1a"), false},
		{lexer.Bare("("), false},
		{lexer.Bare("new"), false},
		{lexer.Bare("return"), false},
		{lexer.Bare("case"), false},
		{lexer.Token{Kind: lexer.Literal, Text: "x"}, false},
	}

	for _, tt := range tests {
		if got := IsID(tt.tok); got != tt.expected {
			t.Errorf("IsID(%s %q) = %v, expected %v", tt.tok.Kind, tt.tok.Text, got, tt.expected)
		}
	}
}

func TestWordClasses(t *testing.T) {
	for _, word := range []string{"public", "private", "static", "final", "class", "while"} {
		if !IsReserved(word) {
			t.Errorf("expected %q to be reserved", word)
		}
	}
	for _, word := range []string{"format", "print", "String", "finalize"} {
		if IsReserved(word) {
			t.Errorf("expected %q not to be reserved", word)
		}
	}
	if IsModifier("static") {
		t.Error("static is handled apart from the other modifiers")
	}
	if !IsModifier("abstract") || !IsPrimitive("double") || IsPrimitive("String") {
		t.Error("unexpected word class")
	}
}
