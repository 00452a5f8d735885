package parser

import (
	"strings"

	"j2ts/internal/language"
	"j2ts/internal/lexer"
)

// scope is the flat name table of one method, shared by its nested blocks.
// The property scope of a type defers every identifier.
type scope struct {
	vars     map[string]Decl
	deferAll bool
}

func newScope() *scope {
	return &scope{vars: make(map[string]Decl)}
}

func (s *scope) bind(decl Decl) {
	if s.vars == nil {
		s.vars = make(map[string]Decl)
	}
	s.vars[decl.Name] = decl
}

func (s *scope) lookup(name string) (Decl, bool) {
	decl, ok := s.vars[name]
	return decl, ok
}

func (s *scope) binds(name string) bool {
	if s.deferAll {
		return false
	}
	_, ok := s.vars[name]
	return ok
}

// deferred marks an identifier as a Ref unless the text before its first
// dot is bound in sc
func deferred(tok lexer.Token, sc *scope) lexer.Token {
	if !language.IsID(tok) {
		return tok
	}
	key := tok.Text
	if q := tok.Qualifier(); q != "" {
		key = q
	}
	if !sc.binds(key) {
		tok.Kind = lexer.Ref
	}
	return tok
}

// parseExpr copies one expression. It stops before , ; or } at the top
// level and before a ) or ] that closes an enclosing bracket.
func (p *Parser) parseExpr(sc *scope) ([]lexer.Token, error) {
	var out []lexer.Token
	level := 0

loop:
	for {
		if p.atEnd() {
			return nil, p.fail("end of expression")
		}
		tok := p.current()
		if level == 0 && (tok.Is(",") || tok.Is(";") || tok.Is("}")) {
			break
		}

		switch {
		case tok.Is("new"):
			expr, err := p.parseNew(sc)
			if err != nil {
				return nil, err
			}
			out = append(out, expr...)
			continue

		case tok.Is("case"):
			// The label is copied up to its :
			out = append(out, tok)
			p.advance()
			for !p.checkValue(":") {
				if p.atEnd() {
					return nil, p.fail(":")
				}
				out = append(out, p.current())
				p.advance()
			}
			break loop

		case tok.Is("default"):
			out = append(out, tok)
			p.advance()
			break loop

		case tok.Is("{"):
			// values = {1, 2, 3}
			expr, err := p.parseArrayLiteral(sc)
			if err != nil {
				return nil, err
			}
			out = append(out, expr...)
			break loop

		case language.IsID(tok) && p.peek(1).Is("("):
			if strings.HasSuffix(tok.Text, ".length") && p.peek(2).Is(")") {
				// s.length() reads the same as a.length
				out = append(out, deferred(tok, sc))
				p.pos += 3
				continue
			}
			call, err := p.parseCall(sc)
			if err != nil {
				return nil, err
			}
			out = append(out, call...)
			continue

		case p.isCast():
			p.pos += 3
			continue

		case tok.Is("(") || tok.Is("["):
			level++

		case tok.Is(")") || tok.Is("]"):
			level--
			if level < 0 {
				break loop
			}
		}

		out = append(out, deferred(tok, sc))
		p.advance()
	}
	return out, nil
}

// isCast matches (Type) followed by an operand. A cast to a primitive type
// is recognised whatever follows it.
func (p *Parser) isCast() bool {
	if !p.checkValue("(") || !p.peek(2).Is(")") {
		return false
	}
	typ := p.peek(1)
	if !language.IsID(typ) {
		return false
	}
	if language.IsPrimitive(typ.Text) {
		return true
	}
	next := p.peek(3)
	return language.IsID(next) || next.Is("(")
}

// parseArrayLiteral rewrites {a, b} as [ a , b ]
func (p *Parser) parseArrayLiteral(sc *scope) ([]lexer.Token, error) {
	open := p.current()
	p.advance()
	out := []lexer.Token{{Kind: lexer.Lexeme, Text: "[", Line: open.Line, Column: open.Column}}
	for !p.checkValue("}") {
		if p.atEnd() {
			return nil, p.fail("}")
		}
		if p.checkValue(",") {
			out = append(out, p.current())
			p.advance()
			continue
		}
		expr, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		if len(expr) == 0 {
			return nil, p.fail("expr")
		}
		out = append(out, expr...)
	}
	p.advance()
	return append(out, lexer.Bare("]")), nil
}

// parseNew handles object creation and the array forms:
//
//	new T[] {a, b}  =>  [ a , b ]
//	new T[n]        =>  new_any ( n )
//	new T[n][m]     =>  new_any ( n , m )
func (p *Parser) parseNew(sc *scope) ([]lexer.Token, error) {
	kw := p.current()
	p.advance()

	typ := p.current()
	if !language.IsID(typ) {
		return nil, p.fail("type")
	}
	p.advance()

	var generic []lexer.Token
	if p.checkValue("<") {
		n := p.skipTypeArgs(0)
		if n == 0 {
			return nil, p.fail(">")
		}
		generic = append(generic, p.tokens[p.pos:p.pos+n]...)
		p.pos += n
	}

	if p.checkValue("(") {
		rest, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		out := append([]lexer.Token{kw, typ}, generic...)
		return append(out, rest...), nil
	}

	if _, err := p.expect("["); err != nil {
		return nil, err
	}

	if p.checkValue("]") {
		p.advance()
		for p.checkValue("[") && p.peek(1).Is("]") {
			p.pos += 2
		}
		if _, err := p.expect("{"); err != nil {
			return nil, err
		}

		out := []lexer.Token{lexer.Bare("[")}
		for {
			expr, err := p.parseExpr(sc)
			if err != nil {
				return nil, err
			}
			out = append(out, expr...)
			if p.checkValue(",") {
				out = append(out, p.current())
				p.advance()
			} else if p.checkValue("}") {
				break
			} else {
				return nil, p.fail(",/;/}")
			}
		}
		p.advance()
		return append(out, lexer.Bare("]")), nil
	}

	out := []lexer.Token{lexer.Bare("new_any"), lexer.Bare("(")}
	for dim := 0; ; dim++ {
		if dim > 0 {
			out = append(out, lexer.Bare(","))
		}
		size, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, size...)
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}

		// Trailing [] pairs leave the inner dimensions unsized
		for p.checkValue("[") && p.peek(1).Is("]") {
			p.pos += 2
		}
		if !p.checkValue("[") {
			break
		}
		p.advance()
	}
	return append(out, lexer.Bare(")")), nil
}

// parseCall copies name(args) behind a Call head carrying the shallow
// argument types
func (p *Parser) parseCall(sc *scope) ([]lexer.Token, error) {
	name := p.current()
	p.advance()

	open, err := p.expect("(")
	if err != nil {
		return nil, err
	}
	out := []lexer.Token{open}

	var types []string
	for !p.checkValue(")") {
		if len(types) > 0 {
			comma, err := p.expect(",")
			if err != nil {
				return nil, err
			}
			out = append(out, comma)
		}
		expr, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, expr...)
		types = append(types, p.exprType(expr, sc))
	}
	out = append(out, p.current())
	p.advance()

	head := lexer.Token{
		Kind:   lexer.Call,
		Text:   name.Text,
		Args:   types,
		Line:   name.Line,
		Column: name.Column,
	}
	return append([]lexer.Token{head}, out...), nil
}

// exprType infers the type of a call argument from its first tokens only.
// It returns ? when the type cannot be told.
func (p *Parser) exprType(expr []lexer.Token, sc *scope) string {
	if len(expr) > 1 {
		if expr[0].Is("new") {
			return expr[1].Text
		}
		return "?"
	}
	if len(expr) == 0 {
		return "?"
	}

	tok := expr[0]
	switch tok.Kind {
	case lexer.Lexeme:
		if decl, ok := sc.lookup(tok.Text); ok {
			return decl.Type
		}
		if prop := p.record.Property(tok.Text); prop != nil {
			return prop.Type
		}
		if isInteger(tok.Text) {
			return "int"
		}
	case lexer.Ref:
		if prop := p.record.Property(tok.Text); prop != nil {
			return prop.Type
		}
	}
	return "?"
}

func isInteger(text string) bool {
	text = strings.TrimPrefix(text, "-")
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
