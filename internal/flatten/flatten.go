// Package flatten splits a token stream into one segment per declared type
package flatten

import (
	"j2ts/internal/language"
	"j2ts/internal/lexer"
)

// Segment is the self-contained token slice of one class, enum or interface.
// Nested types are moved into their own segments.
type Segment struct {
	Name   string
	Kind   string
	Level  int
	Tokens []lexer.Token
}

// builder is a segment still being filled. depth is the brace depth at
// which it was opened; the segment closes when the depth returns to it.
type builder struct {
	segment Segment
	depth   int
	root    bool
}

// File returns the type segments of a whole file in source order.
// Import declarations and tokens outside every type are dropped.
func File(tokens []lexer.Token) []Segment {
	var (
		finished []*builder
		stack    []*builder
		depth    int
	)

	current := &builder{segment: Segment{Level: -1}, root: true}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.Is("import") {
			for i < len(tokens) && !tokens[i].Is(";") {
				i++
			}
			continue
		}

		if tok.Kind == lexer.Lexeme && language.IsTypeKeyword(tok.Text) && i+1 < len(tokens) {
			name := tokens[i+1]
			next := &builder{
				segment: Segment{
					Name:  name.Text,
					Kind:  tok.Text,
					Level: current.segment.Level + 1,
				},
				depth: depth,
			}

			// Modifiers written before the keyword belong to the new type
			pulled := current.segment.Tokens
			cut := len(pulled)
			for cut > 0 && pulled[cut-1].Kind == lexer.Lexeme && language.IsReserved(pulled[cut-1].Text) {
				cut--
			}
			next.segment.Tokens = append(next.segment.Tokens, pulled[cut:]...)
			next.segment.Tokens = append(next.segment.Tokens, tok, name)
			current.segment.Tokens = pulled[:cut:cut]

			finished = append(finished, next)
			stack = append(stack, current)
			current = next
			i++
			continue
		}

		current.segment.Tokens = append(current.segment.Tokens, tok)

		switch {
		case tok.Is("{"):
			depth++
		case tok.Is("}"):
			depth--
			if !current.root && depth == current.depth {
				current = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}

	segments := make([]Segment, len(finished))
	for i, b := range finished {
		segments[i] = b.segment
	}
	return segments
}
