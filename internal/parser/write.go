package parser

import "j2ts/internal/lexer"

func appendType(out []lexer.Token, decl *Decl) []lexer.Token {
	return append(out, lexer.Bare(":"), lexer.Bare(decl.TypeName()))
}

// AppendVarDecl writes one declaration of a group: static or a separating
// comma, the name, its type, the initializer and the closing semicolon of
// the last declaration.
func AppendVarDecl(out []lexer.Token, decl *VarDecl) []lexer.Token {
	if decl.Flags&First != 0 {
		if decl.Flags&Static != 0 {
			out = append(out, lexer.Bare("static"))
		}
	} else {
		out = append(out, lexer.Bare(","))
	}

	name := decl.Name
	if decl.Flags&AssertNonNull != 0 {
		name += "!"
	}
	out = append(out, lexer.Bare(name))
	out = appendType(out, &decl.Decl)

	if decl.Value != nil {
		out = append(out, lexer.Bare("="))
		out = append(out, decl.Value...)
	}

	if decl.Flags&Last != 0 {
		out = append(out, lexer.Bare(";"))
	}
	return out
}

// AppendMethodDecl writes a method head: static, the internal name, the
// argument list and the return type unless it is a constructor
func AppendMethodDecl(out []lexer.Token, method *Method) []lexer.Token {
	if method.Flags&Static != 0 {
		out = append(out, lexer.Bare("static"))
	}

	out = append(out, lexer.Bare(method.InternalName()), lexer.Bare("("))
	for i := range method.Args {
		if i > 0 {
			out = append(out, lexer.Bare(","))
		}
		out = append(out, lexer.Bare(method.Args[i].Name))
		out = appendType(out, &method.Args[i])
	}
	out = append(out, lexer.Bare(")"))

	if method.Type != "" {
		out = appendType(out, &method.Decl)
	}
	return out
}
