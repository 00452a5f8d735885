// Package language holds the word classes of the source language
package language

import (
	"strings"

	"j2ts/internal/lexer"
)

var reserved = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
}

// Words that may start an expression statement but never name anything
var notIdentifiers = map[string]bool{
	"new": true, "return": true, "case": true, "break": true, "continue": true, "throw": true,
}

// Member modifiers skipped by the parser. static is handled separately.
var modifiers = map[string]bool{
	"public": true, "protected": true, "private": true, "final": true,
	"abstract": true, "synchronized": true, "native": true, "transient": true,
	"volatile": true, "strictfp": true, "default": true,
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true,
}

// IsReserved reports whether word is a reserved word of the source language
func IsReserved(word string) bool {
	return reserved[word]
}

// IsModifier reports whether word is a member modifier other than static
func IsModifier(word string) bool {
	return modifiers[word]
}

// IsPrimitive reports whether word names a primitive type
func IsPrimitive(word string) bool {
	return primitives[word]
}

// IsTypeKeyword reports whether word opens a type declaration
func IsTypeKeyword(word string) bool {
	return word == "class" || word == "enum" || word == "interface"
}

// IsID reports whether tok is a bare identifier, possibly dot-qualified
func IsID(tok lexer.Token) bool {
	if tok.Kind != lexer.Lexeme || notIdentifiers[tok.Text] {
		return false
	}
	return isIDText(tok.Text)
}

func isIDText(text string) bool {
	if text == "" || strings.HasSuffix(text, ".") {
		return false
	}
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
		case i > 0 && ((ch >= '0' && ch <= '9') || ch == '.'):
		default:
			return false
		}
	}
	return true
}
