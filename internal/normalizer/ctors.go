// Package normalizer rewrites parsed records before emission
package normalizer

import (
	"strconv"
	"unicode"

	"j2ts/internal/lexer"
	"j2ts/internal/parser"
)

const ctorName = "constructor"

// Runtime typeof results of the primitive and boxed types
var typeofs = map[string]string{
	"byte": "number", "short": "number", "int": "number", "long": "number",
	"float": "number", "double": "number",
	"Byte": "number", "Short": "number", "Integer": "number", "Long": "number",
	"Float": "number", "Double": "number", "Number": "number",
	"String": "string", "string": "string", "char": "string", "Character": "string",
	"boolean": "boolean", "Boolean": "boolean",
}

// Constructors replaces several constructors by one dispatcher that picks
// the overload from the runtime arguments. The overloads stay as
// constructor_0 .. constructor_n methods and every instance property is
// asserted non-null. It reports whether the record changed; a record with
// at most one constructor, or one already rewritten, is left alone.
func Constructors(rec *parser.TypeRecord) bool {
	var ctors []*parser.Method
	for _, method := range rec.Methods() {
		if method.Name != ctorName {
			continue
		}
		if method.Dispatcher {
			return false
		}
		ctors = append(ctors, method)
	}
	if len(ctors) <= 1 {
		return false
	}

	for _, ctor := range ctors {
		if ctor.Alias == "" {
			ctor.Alias = ctorName + "_0"
			break
		}
	}

	rec.Prepend(&parser.Method{
		Decl: parser.Decl{Name: ctorName},
		Args: []parser.Decl{{Type: "any[]", Name: "...args"}},
		Body: dispatch(ctors),

		Dispatcher: true,
	})

	for _, prop := range rec.Properties() {
		if !prop.IsStatic() {
			prop.Flags |= parser.AssertNonNull
		}
	}
	return true
}

// dispatch builds the dispatcher body:
//
//	{ if ( args.length === 0 ) { this.constructor_0 ( ) ; }
//	  else if ( args.length === 1 && typeof args[0] === 'number' ) { ... }
//	  else throw Error ( 'Unknown type(s)' ) ; }
func dispatch(ctors []*parser.Method) []lexer.Token {
	out := words("{")
	for i, ctor := range ctors {
		if i > 0 {
			out = append(out, lexer.Bare("else"))
		}
		out = append(out, words("if", "(", "args.length", "===", strconv.Itoa(len(ctor.Args)))...)

		var call []lexer.Token
		for j := range ctor.Args {
			arg := "args[" + strconv.Itoa(j) + "]"
			out = append(out, lexer.Bare("&&"))
			out = append(out, check(arg, &ctor.Args[j])...)
			if j > 0 {
				call = append(call, lexer.Bare(","))
			}
			call = append(call, words(arg, "as", ctor.Args[j].TypeName())...)
		}

		out = append(out, words(")", "{", "this."+ctor.InternalName(), "(")...)
		out = append(out, call...)
		out = append(out, words(")", ";", "}")...)
	}
	out = append(out, words("else", "throw", "Error", "(")...)
	out = append(out, literal("'Unknown type(s)'"))
	return append(out, words(")", ";", "}")...)
}

// check is the runtime test that arg matches the declared type
func check(arg string, decl *parser.Decl) []lexer.Token {
	var test []lexer.Token
	typ, ok := typeofs[decl.Type]
	switch {
	case decl.Array > 0:
		test = words("Array.isArray", "(", arg, ")")
	case ok:
		test = append(words("typeof", arg, "==="), literal("'"+typ+"'"))
	default:
		test = words(arg, "instanceof", decl.Type)
	}

	if decl.Array == 0 && !startsUpper(decl.Type) {
		return test
	}
	out := words("(")
	out = append(out, test...)
	out = append(out, words("||", arg, "===")...)
	out = append(out, literal("null"))
	return append(out, lexer.Bare(")"))
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func words(texts ...string) []lexer.Token {
	out := make([]lexer.Token, len(texts))
	for i, text := range texts {
		out[i] = lexer.Bare(text)
	}
	return out
}

// literal tokens are left untouched by the emitter's null rewriting
func literal(text string) lexer.Token {
	return lexer.Token{Kind: lexer.Literal, Text: text}
}
