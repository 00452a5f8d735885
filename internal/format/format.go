// Package format turns emitted tokens into source text
package format

import (
	"strings"

	"j2ts/internal/lexer"
)

// Join writes tokens separated by single spaces and breaks the line after
// every bare {, } and ;. A token whose text is a key of rename is written
// as the mapped text.
func Join(tokens []lexer.Token, rename map[string]string) string {
	var sb strings.Builder
	line := false
	for _, tok := range tokens {
		text := tok.Text
		if to, ok := rename[text]; ok {
			text = to
		}

		if line {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		line = true

		if tok.Is("{") || tok.Is("}") || tok.Is(";") {
			sb.WriteByte('\n')
			line = false
		}
	}
	if line {
		sb.WriteByte('\n')
	}
	return sb.String()
}
