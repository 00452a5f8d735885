// Package emitter writes a parsed record out as target tokens
package emitter

import (
	"j2ts/internal/lexer"
	"j2ts/internal/normalizer"
	"j2ts/internal/parser"
)

// nullMarker replaces every null so it type-checks against any declared type
const nullMarker = "null as any"

type emitter struct {
	rec     *parser.TypeRecord
	types   *parser.Registry
	exports map[string]bool
}

// Emit returns the tokens of rec: its hoisted statics, when a registry is
// given and rec is not an enum, followed by the type declaration. Emit
// normalizes rec in place, so a record is emitted once.
func Emit(rec *parser.TypeRecord, types *parser.Registry, exports map[string]bool) []lexer.Token {
	normalizer.Constructors(rec)

	e := &emitter{rec: rec, types: types, exports: exports}
	hoist := types != nil && rec.Kind != parser.Enum

	var file []lexer.Token
	if hoist {
		file = e.hoist()
	}

	out := e.body(hoist)
	out = append(file, out...)
	for i := range out {
		if out[i].Is("null") {
			out[i].Text = nullMarker
		}
	}
	return out
}

func (e *emitter) exported(name string) bool {
	return e.exports[name] || e.rec.Kind == parser.Interface
}

// hoist writes every static member as a file-scope const or function
func (e *emitter) hoist() []lexer.Token {
	var file []lexer.Token
	hoisted := make(map[string]bool)

	for _, member := range e.rec.Members {
		decl := member.Declaration()
		if !decl.IsStatic() {
			continue
		}
		if e.exported(decl.Name) {
			file = append(file, lexer.Bare("export"))
		}

		switch m := member.(type) {
		case *parser.Property:
			v := m.VarDecl
			v.Flags = v.Flags&^(parser.Static|parser.EnumConst) | parser.First | parser.Last
			file = append(file, lexer.Bare("const"))
			file = parser.AppendVarDecl(file, &v)
		case *parser.Method:
			fn := *m
			fn.Flags &^= parser.Static | parser.EnumConst
			file = append(file, lexer.Bare("function"))
			file = parser.AppendMethodDecl(file, &fn)
			file = append(file, m.Body...)
		}
		hoisted[decl.Name] = true
	}

	for i, tok := range file {
		file[i] = e.resolveHoisted(tok, hoisted)
	}
	return file
}

// body writes the type declaration with the members that were not hoisted
func (e *emitter) body(hoisted bool) []lexer.Token {
	var out []lexer.Token
	if e.exported(e.rec.Name) {
		out = append(out, lexer.Bare("export"))
	}
	kind := string(e.rec.Kind)
	if e.rec.Kind == parser.Enum {
		kind = string(parser.Class)
	}
	out = append(out, lexer.Bare(kind), lexer.Bare(e.rec.Name), lexer.Bare("{"))

	for _, member := range e.rec.Members {
		if hoisted && member.Declaration().IsStatic() {
			continue
		}
		switch m := member.(type) {
		case *parser.Property:
			out = parser.AppendVarDecl(out, &m.VarDecl)
		case *parser.Method:
			out = parser.AppendMethodDecl(out, m)
			out = append(out, m.Body...)
		}
	}
	out = append(out, lexer.Bare("}"))

	for i, tok := range out {
		switch tok.Kind {
		case lexer.Ref:
			out[i] = resolved(tok, e.resolveRef(tok.Text))
		case lexer.Call:
			out[i] = resolved(tok, e.resolveCall(tok))
		}
	}
	return out
}

// resolved turns a Ref or Call into the lexeme text, keeping its position
func resolved(tok lexer.Token, text string) lexer.Token {
	return lexer.Token{Kind: lexer.Lexeme, Text: text, Line: tok.Line, Column: tok.Column}
}
