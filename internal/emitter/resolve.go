package emitter

import (
	"slices"
	"strings"

	"j2ts/internal/lexer"
	"j2ts/internal/parser"
)

// resolveHoisted rewrites a token of the file-scope code. Type.member
// loses its qualifier when Type is registered; a name that was not
// hoisted from this record but is a static of a registered enum is
// qualified with that enum.
func (e *emitter) resolveHoisted(tok lexer.Token, hoisted map[string]bool) lexer.Token {
	if tok.Kind != lexer.Lexeme && tok.Kind != lexer.Ref && tok.Kind != lexer.Call {
		return tok
	}

	name := tok.Text
	if q := tok.Qualifier(); q != "" && e.types.Has(q) {
		name = name[len(q)+1:]
	}
	if tok.Kind == lexer.Lexeme {
		tok.Text = name
		return tok
	}

	if !hoisted[name] {
		qualified := name
		for _, enum := range e.types.Enums() {
			if enum.StaticMember(name) {
				qualified = enum.Name + "." + name
			}
		}
		name = qualified
	}
	return resolved(tok, name)
}

// resolveRef decides what a deferred identifier of the type body refers to
func (e *emitter) resolveRef(name string) string {
	if prop := e.rec.Property(name); prop != nil {
		if !prop.IsStatic() {
			return "this." + name
		}
		if e.rec.Kind == parser.Enum {
			return e.rec.Name + "." + name
		}
	}

	if q, rest, ok := strings.Cut(name, "."); ok {
		if prop := e.rec.Property(q); prop != nil && !prop.IsStatic() {
			return "this." + name
		}
		// Interface constants were hoisted to file scope
		if target := e.types.Lookup(q); target != nil && target.Kind == parser.Interface {
			return rest
		}
	}
	return name
}

// resolveCall picks the method a call site refers to
func (e *emitter) resolveCall(tok lexer.Token) string {
	if method := e.rec.Method(tok.Key()); method != nil {
		if !method.IsStatic() {
			return "this." + method.InternalName()
		}
		if e.rec.Kind == parser.Enum {
			return e.rec.Name + "." + tok.Text
		}
	}

	if name, ok := resolveMethod(e.rec, e.types, tok.Text, tok.Args); ok {
		return "this." + name
	}

	if e.rec.Kind == parser.Enum {
		for _, method := range e.rec.Methods() {
			if method.Name == tok.Text && len(method.Args) == len(tok.Args) && method.IsStatic() {
				return e.rec.Name + "." + tok.Text
			}
		}
	}
	return tok.Text
}

// resolveMethod resolves name(args) against the instance methods of rec.
// An unqualified name matches its signature key, or only its arity when an
// argument type is unknown. q.name goes through the instance property q
// and, when the type of q is registered, name is resolved against that
// type. An explicit this. qualifier is dropped first.
func resolveMethod(rec *parser.TypeRecord, types *parser.Registry, name string, args []string) (string, bool) {
	name = strings.TrimPrefix(name, "this.")
	q, rest, qualified := strings.Cut(name, ".")
	if !qualified {
		key := lexer.Token{Text: name, Args: args}.Key()
		if method := rec.Method(key); method != nil && !method.IsStatic() {
			return method.InternalName(), true
		}
		if slices.Contains(args, "?") {
			for _, method := range rec.Methods() {
				if method.Name == name && len(method.Args) == len(args) && !method.IsStatic() {
					return method.InternalName(), true
				}
			}
		}
		return "", false
	}

	prop := rec.Property(q)
	if prop == nil || prop.IsStatic() {
		return "", false
	}
	// One level of qualification only
	if target := types.Lookup(prop.Type); target != nil && !strings.Contains(rest, ".") {
		if inner, ok := resolveMethod(target, types, rest, args); ok {
			return q + "." + inner, true
		}
	}
	return name, true
}
