// Package parser turns the token segment of one type into a TypeRecord.
// Member bodies are copied through as target tokens; identifiers that do
// not bind to a local are left as Ref and Call tokens for the emitter.
package parser

import (
	"io"

	"j2ts/internal/language"
	"j2ts/internal/lexer"
)

// Parser is a recursive-descent parser over one type segment
type Parser struct {
	tokens      []lexer.Token
	pos         int
	record      *TypeRecord
	properties  *scope
	diagnostics io.Writer
}

// Option configures a Parser
type Option func(*Parser)

// WithDiagnostics writes the token context of every structural error to w
func WithDiagnostics(w io.Writer) Option {
	return func(p *Parser) {
		p.diagnostics = w
	}
}

// Parse parses a type segment into its record
func Parse(tokens []lexer.Token, opts ...Option) (*TypeRecord, error) {
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse()
}

func (p *Parser) parse() (*TypeRecord, error) {
	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	// class T<X> extends U implements I
	for !p.checkValue("{") {
		if p.atEnd() {
			return nil, p.fail("{")
		}
		p.advance()
	}
	p.advance()

	for !p.checkValue("}") {
		if p.atEnd() {
			return nil, p.fail("}")
		}
		if p.checkValue(";") {
			p.advance()
			continue
		}
		if err := p.parseMember(); err != nil {
			return nil, err
		}
	}
	return p.record, nil
}

func (p *Parser) parseHeader() error {
	for i, tok := range p.tokens {
		if tok.Kind != lexer.Lexeme || !language.IsTypeKeyword(tok.Text) {
			continue
		}
		p.pos = i + 1
		name := p.current()
		if !language.IsID(name) {
			return p.fail("type name")
		}
		p.record = NewTypeRecord(name.Text, Kind(tok.Text))
		p.properties = &scope{deferAll: true}
		p.advance()
		if p.checkValue("@") {
			return p.skipAnnotation()
		}
		return nil
	}
	p.pos = len(p.tokens)
	return p.fail("type keyword")
}

// skipAnnotation skips @Name with optional balanced arguments
func (p *Parser) skipAnnotation() error {
	p.advance() // @
	if p.atEnd() {
		return p.fail("annotation")
	}
	p.advance()
	if !p.checkValue("(") {
		return nil
	}
	p.advance()
	for level := 1; level > 0; p.advance() {
		switch {
		case p.atEnd():
			return p.fail(")")
		case p.checkValue("("):
			level++
		case p.checkValue(")"):
			level--
		}
	}
	return nil
}

// skipModifiers skips annotations and modifiers in any order and reports
// whether static was among them
func (p *Parser) skipModifiers() (bool, error) {
	static := false
	for !p.atEnd() {
		tok := p.current()
		switch {
		case tok.Is("@"):
			if err := p.skipAnnotation(); err != nil {
				return false, err
			}
		case tok.Is("static"):
			static = true
			p.advance()
		case tok.Kind == lexer.Lexeme && language.IsModifier(tok.Text):
			p.advance()
		default:
			return static, nil
		}
	}
	return static, nil
}

func (p *Parser) parseMember() error {
	static, err := p.skipModifiers()
	if err != nil {
		return err
	}
	if p.atEnd() {
		return p.fail("class member")
	}
	// Modifiers left behind by a nested type that was moved out
	if p.checkValue("}") || p.checkValue(";") {
		return nil
	}
	// Type parameters of a generic method
	if p.checkValue("<") {
		if n := p.skipTypeArgs(0); n > 0 {
			p.pos += n
		}
	}

	decl, dims, ok := p.declHead()
	switch {
	case ok:
		if static {
			decl.Flags |= Static
		}
	case p.current().Is(p.record.Name):
		decl = Decl{Name: "constructor"}
		p.advance()
	case p.record.Kind == Enum:
		prop, err := p.parseEnumConstant()
		if err != nil {
			return err
		}
		p.record.AddProperty(prop)
		return nil
	default:
		return p.fail("class member")
	}

	if p.checkValue("(") {
		sc := newScope()
		args, err := p.parseArgs(sc)
		if err != nil {
			return err
		}
		method := &Method{Decl: decl, Args: args}
		p.record.AddMethod(method)
		method.Body, err = p.parseMethodBody(sc)
		return err
	}

	decls, err := p.parseVarDecls(decl, dims, p.properties)
	if err != nil {
		return err
	}
	for _, d := range decls {
		p.record.AddProperty(&Property{VarDecl: *d})
	}
	_, err = p.expect(";")
	return err
}

// declHead matches [final] Type[<...>][[]...] name[[]...] without consuming
// anything on failure. dims is the number of dimensions written after the
// type, which sibling declarations share.
func (p *Parser) declHead() (decl Decl, dims int, ok bool) {
	n := 0
	if p.peek(0).Is("final") {
		n++
	}
	typ := p.peek(n)
	if !isTypeName(typ) {
		return Decl{}, 0, false
	}
	n++
	if p.peek(n).Is("<") {
		skip := p.skipTypeArgs(n)
		if skip == 0 {
			return Decl{}, 0, false
		}
		n += skip
	}
	for p.peek(n).Is("[") && p.peek(n+1).Is("]") {
		dims++
		n += 2
	}
	if p.peek(n).Is("...") {
		dims++
		n++
	}

	name := p.peek(n)
	if !language.IsID(name) {
		return Decl{}, 0, false
	}
	n++
	array := dims
	for p.peek(n).Is("[") && p.peek(n+1).Is("]") {
		array++
		n += 2
	}

	p.pos += n
	return Decl{Type: typ.Text, Name: name.Text, Array: array}, dims, true
}

// siblingDecl matches name[[]...] after a comma of a declaration group
func (p *Parser) siblingDecl(first Decl, dims int) (Decl, bool) {
	name := p.current()
	if !language.IsID(name) {
		return Decl{}, false
	}
	p.advance()
	decl := Decl{Type: first.Type, Name: name.Text, Flags: first.Flags &^ First, Array: dims}
	for p.checkValue("[") && p.peek(1).Is("]") {
		decl.Array++
		p.pos += 2
	}
	return decl, true
}

// isTypeName accepts identifiers other than keywords, plus the primitive
// types and void
func isTypeName(tok lexer.Token) bool {
	if !language.IsID(tok) {
		return false
	}
	return !language.IsReserved(tok.Text) || language.IsPrimitive(tok.Text) || tok.Text == "void"
}

// skipTypeArgs returns the length of a generic argument list starting at
// offset n, or 0 when the tokens there do not form one
func (p *Parser) skipTypeArgs(n int) int {
	start := n
	depth := 0
	for {
		tok := p.peek(n)
		n++
		switch {
		case tok.Is("<"):
			depth++
		case tok.Is(">"):
			depth--
		case tok.Is(">>"):
			depth -= 2
		case tok.Is(",") || tok.Is("?") || tok.Is("&") || tok.Is("[") || tok.Is("]"):
		case language.IsID(tok):
		default:
			return 0
		}
		if depth < 0 {
			return 0
		}
		if depth == 0 {
			return n - start
		}
	}
}

func (p *Parser) parseEnumConstant() (*Property, error) {
	name := p.current()
	if !language.IsID(name) {
		return nil, p.fail("enum entry")
	}
	p.advance()

	prop := &Property{VarDecl: VarDecl{
		Decl: Decl{
			Type:  p.record.Name,
			Name:  name.Text,
			Flags: Static | First | Last | EnumConst,
		},
	}}

	value := []lexer.Token{lexer.Bare("new"), lexer.Bare(p.record.Name), lexer.Bare("(")}
	if p.checkValue("(") {
		p.advance()
		// Nothing is bound while parsing enum arguments
		sc := newScope()
		for i := 0; !p.checkValue(")"); i++ {
			if i > 0 {
				comma, err := p.expect(",")
				if err != nil {
					return nil, err
				}
				value = append(value, comma)
			}
			expr, err := p.parseExpr(sc)
			if err != nil {
				return nil, err
			}
			value = append(value, expr...)
			if p.atEnd() {
				return nil, p.fail(")")
			}
		}
		p.advance()
	}
	prop.Value = append(value, lexer.Bare(")"))

	switch {
	case p.checkValue(",") || p.checkValue(";"):
		p.advance()
	case p.checkValue("}"):
	default:
		return nil, p.fail("[,;]")
	}
	return prop, nil
}

// parseVarDecls parses a comma-separated declaration group starting with
// first, binding every name in sc. It stops before the closing ; or, for
// a for-each head, before the :.
func (p *Parser) parseVarDecls(first Decl, dims int, sc *scope) ([]*VarDecl, error) {
	var decls []*VarDecl

	decl := first
	decl.Flags |= First

	for {
		sc.bind(decl)
		v := &VarDecl{Decl: decl}

		if p.checkValue("=") {
			p.advance()
			value, err := p.parseExpr(sc)
			if err != nil {
				return nil, err
			}
			v.Value = value
		}
		decls = append(decls, v)

		if p.checkValue(":") {
			break
		}
		if p.checkValue(";") {
			v.Flags |= Last
			break
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}

		var ok bool
		if decl, ok = p.siblingDecl(first, dims); !ok {
			return nil, p.fail("decl")
		}
	}
	return decls, nil
}

func (p *Parser) parseArgs(sc *scope) ([]Decl, error) {
	var args []Decl
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	for !p.checkValue(")") {
		if p.checkValue("@") {
			if err := p.skipAnnotation(); err != nil {
				return nil, err
			}
			continue
		}
		decl, _, ok := p.declHead()
		if !ok {
			return nil, p.fail("arg")
		}
		args = append(args, decl)
		sc.bind(decl)
		if p.checkValue(",") {
			p.advance()
		}
	}
	p.advance()
	return args, nil
}

func (p *Parser) parseMethodBody(sc *scope) ([]lexer.Token, error) {
	if p.record.Kind == Interface && p.checkValue(";") {
		p.advance()
		return []lexer.Token{lexer.Bare(";")}, nil
	}

	// throws clause
	for !p.checkValue("{") {
		switch {
		case p.atEnd():
			return nil, p.fail("{")
		case p.checkValue(";"):
			// abstract or native
			p.advance()
			return []lexer.Token{lexer.Bare(";")}, nil
		}
		p.advance()
	}

	return p.parseBlock(sc)
}

func (p *Parser) current() lexer.Token {
	return p.peek(0)
}

func (p *Parser) peek(n int) lexer.Token {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	return lexer.Token{Kind: lexer.Space}
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) checkValue(value string) bool {
	return p.current().Is(value)
}

// expect consumes the lexeme value or fails
func (p *Parser) expect(value string) (lexer.Token, error) {
	if !p.checkValue(value) {
		return lexer.Token{}, p.fail(value)
	}
	tok := p.current()
	p.advance()
	return tok, nil
}
