package parser

import (
	"fmt"
	"strings"
)

// contextRadius is how many tokens a StructuralError quotes on each side
const contextRadius = 20

// StructuralError reports a token that was expected but not found
type StructuralError struct {
	Type     string // type being parsed, empty before the header is read
	Index    int    // index of the failing token in the segment
	Expected string
	Found    string
	Context  []string // one line per token, failing token marked with *
}

func (e *StructuralError) Error() string {
	name := e.Type
	if name == "" {
		name = "<unknown>"
	}
	return fmt.Sprintf("%s: expected %s, got %q at token %d\n%s",
		name, e.Expected, e.Found, e.Index, strings.Join(e.Context, "\n"))
}

// Dump is the diagnostic listing written to the diagnostics sink
func (e *StructuralError) Dump() string {
	return e.Type + ":\n" + strings.Join(e.Context, "\n") + "\n"
}

func (p *Parser) fail(expected string) *StructuralError {
	err := &StructuralError{
		Index:    p.pos,
		Expected: expected,
		Found:    "end of input",
	}
	if p.record != nil {
		err.Type = p.record.Name
	}
	if !p.atEnd() {
		err.Found = p.tokens[p.pos].Text
	}

	first := max(0, p.pos-contextRadius)
	last := min(p.pos+contextRadius, len(p.tokens))
	for i := first; i < last; i++ {
		star := " "
		if i == p.pos {
			star = "*"
		}
		err.Context = append(err.Context, fmt.Sprintf("%s %d: %s", star, i, p.tokens[i]))
	}

	if p.diagnostics != nil {
		fmt.Fprint(p.diagnostics, err.Dump())
	}
	return err
}
