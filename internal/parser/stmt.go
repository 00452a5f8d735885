package parser

import (
	"j2ts/internal/language"
	"j2ts/internal/lexer"
)

// parseBlock copies { ... }. Local declarations are written out at once as
// var statements and bound in the method scope.
func (p *Parser) parseBlock(sc *scope) ([]lexer.Token, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	out := []lexer.Token{open}

	for !p.checkValue("}") {
		if p.atEnd() {
			return nil, p.fail("}")
		}

		if decl, dims, ok := p.declHead(); ok {
			out = append(out, lexer.Bare("var"))
			decls, err := p.parseVarDecls(decl, dims, sc)
			if err != nil {
				return nil, err
			}
			for _, d := range decls {
				out = AppendVarDecl(out, d)
			}
			if _, err := p.expect(";"); err != nil {
				return nil, err
			}
			continue
		}

		var stmt []lexer.Token
		if p.checkValue("{") {
			stmt, err = p.parseBlock(sc)
		} else {
			stmt, err = p.parseStmt(sc)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, stmt...)
	}

	out = append(out, p.current())
	p.advance()
	return out, nil
}

func (p *Parser) parseStmt(sc *scope) ([]lexer.Token, error) {
	tok := p.current()

	switch {
	case tok.Is("for"):
		return p.parseFor(sc)
	case tok.Is("if"):
		return p.parseIf(sc)
	case tok.Is("do"):
		return p.parseDo(sc)
	case tok.Is("while"):
		return p.parseWhile(sc)
	case tok.Is("switch"):
		return p.parseSwitch(sc)
	case tok.Is("try"):
		return p.parseTry(sc)
	case language.IsID(tok) && p.peek(1).Is(":"):
		// label, or default inside a switch
		colon := p.peek(1)
		p.pos += 2
		return []lexer.Token{tok, colon}, nil
	case tok.Is(";"):
		p.advance()
		return []lexer.Token{tok}, nil
	}

	out, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	if !p.checkValue(";") && !p.checkValue(":") {
		return nil, p.fail("[:;]")
	}
	out = append(out, p.current())
	p.advance()
	return out, nil
}

// parseBody parses the statement or block controlled by a loop or branch
func (p *Parser) parseBody(sc *scope) ([]lexer.Token, error) {
	if p.checkValue("{") {
		return p.parseBlock(sc)
	}
	return p.parseStmt(sc)
}

// parseCondition copies ( expr )
func (p *Parser) parseCondition(sc *scope) ([]lexer.Token, error) {
	open, err := p.expect("(")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	closing, err := p.expect(")")
	if err != nil {
		return nil, err
	}
	out := append([]lexer.Token{open}, expr...)
	return append(out, closing), nil
}

// parseExprList copies a comma-separated expression list
func (p *Parser) parseExprList(sc *scope) ([]lexer.Token, error) {
	out, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	for p.checkValue(",") {
		out = append(out, p.current())
		p.advance()
		expr, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, expr...)
	}
	return out, nil
}

// parseFor handles both the three-clause loop and for-each, which is told
// apart by the : after the loop variable
func (p *Parser) parseFor(sc *scope) ([]lexer.Token, error) {
	out := []lexer.Token{p.current()}
	p.advance()
	open, err := p.expect("(")
	if err != nil {
		return nil, err
	}
	out = append(out, open)

	if decl, dims, ok := p.declHead(); ok {
		sc.bind(decl)
		out = append(out, lexer.Bare("let"))
		vars, err := p.parseVarDecls(decl, dims, sc)
		if err != nil {
			return nil, err
		}
		if p.checkValue(":") {
			if len(vars) != 1 || vars[0].Value != nil {
				return nil, p.fail("simple var")
			}
			out = append(out, lexer.Bare(vars[0].Name))
		} else {
			// The last declaration carries the ;
			for _, v := range vars {
				out = AppendVarDecl(out, v)
			}
		}
	} else {
		init, err := p.parseExprList(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, init...)
		if p.checkValue(";") {
			out = append(out, p.current())
		}
	}

	if p.checkValue(":") {
		p.advance()
		out = append(out, lexer.Bare("of"))
		expr, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, expr...)
	} else {
		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, cond...)
		semi, err := p.expect(";")
		if err != nil {
			return nil, err
		}
		out = append(out, semi)
		update, err := p.parseExprList(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, update...)
	}

	closing, err := p.expect(")")
	if err != nil {
		return nil, err
	}
	out = append(out, closing)

	body, err := p.parseBody(sc)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

func (p *Parser) parseIf(sc *scope) ([]lexer.Token, error) {
	out := []lexer.Token{p.current()}
	p.advance()

	cond, err := p.parseCondition(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, cond...)

	body, err := p.parseBody(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, body...)

	// else if chains are an else whose body is another if
	for p.checkValue("else") {
		out = append(out, p.current())
		p.advance()
		body, err := p.parseBody(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}
	return out, nil
}

func (p *Parser) parseDo(sc *scope) ([]lexer.Token, error) {
	out := []lexer.Token{p.current()}
	p.advance()

	body, err := p.parseBody(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, body...)

	kw, err := p.expect("while")
	if err != nil {
		return nil, err
	}
	out = append(out, kw)

	cond, err := p.parseExpr(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, cond...)

	semi, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	return append(out, semi), nil
}

func (p *Parser) parseWhile(sc *scope) ([]lexer.Token, error) {
	out := []lexer.Token{p.current()}
	p.advance()

	cond, err := p.parseCondition(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, cond...)

	body, err := p.parseBody(sc)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

// parseSwitch parses the switch body as an ordinary block. Its labels are
// picked up as statements.
func (p *Parser) parseSwitch(sc *scope) ([]lexer.Token, error) {
	out := []lexer.Token{p.current()}
	p.advance()

	cond, err := p.parseCondition(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, cond...)

	body, err := p.parseBlock(sc)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

// parseTry keeps only the variable name of each catch clause
func (p *Parser) parseTry(sc *scope) ([]lexer.Token, error) {
	out := []lexer.Token{p.current()}
	p.advance()

	block, err := p.parseBlock(sc)
	if err != nil {
		return nil, err
	}
	out = append(out, block...)

	for p.checkValue("catch") {
		out = append(out, p.current())
		p.advance()
		open, err := p.expect("(")
		if err != nil {
			return nil, err
		}
		out = append(out, open)

		var param []lexer.Token
		for !p.checkValue(")") {
			if p.atEnd() {
				return nil, p.fail(")")
			}
			param = append(param, p.current())
			p.advance()
		}
		if len(param) == 0 {
			return nil, p.fail("catch parameter")
		}
		name := param[len(param)-1]
		catchType := "?"
		if len(param) == 2 {
			catchType = param[0].Text
		}
		sc.bind(Decl{Type: catchType, Name: name.Text})
		out = append(out, name, p.current())
		p.advance()

		block, err := p.parseBlock(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}

	if p.checkValue("finally") {
		out = append(out, p.current())
		p.advance()
		block, err := p.parseBlock(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}
