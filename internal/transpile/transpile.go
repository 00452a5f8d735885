// Package transpile runs the whole pipeline over one source file
package transpile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"j2ts/internal/emitter"
	"j2ts/internal/flatten"
	"j2ts/internal/format"
	"j2ts/internal/lexer"
	"j2ts/internal/parser"
)

// DefaultPrelude maps the numeric primitives onto number
var DefaultPrelude = []string{
	"type int=number;",
	"type short=number;",
	"type byte=number;",
	"type float=number;",
	"type double=number;",
	"type long=number;",
}

// Options configures a run
type Options struct {
	// Prelude lines are written before the first type
	Prelude []string
	// Rename maps emitted token texts to replacements, e.g. System.out.println
	Rename map[string]string
	// Exports names the types and static members written with export
	Exports map[string]bool

	Debug bool
	// Log receives the debug output. Defaults to stderr.
	Log io.Writer
	// Diagnostics receives the token context of structural errors
	Diagnostics io.Writer
}

// Result is the outcome of one file
type Result struct {
	File   string
	Types  []string
	Output string
}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Transpile converts the source text of one file. name is used for
// messages only. Any error is fatal and no partial output is returned.
func Transpile(name, source string, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = os.Stderr
	}
	debugf := func(msg string, args ...any) {
		if opts.Debug {
			fmt.Fprintf(log, msg, args...)
		}
	}

	debugf("[lex] %s (%d bytes)\n", name, len(source))
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, fmt.Errorf("%s: lex: %w", name, err)
	}

	segments := flatten.File(tokens)
	debugf("[flatten] %d tokens, %d type(s)\n", len(tokens), len(segments))
	if opts.Debug {
		for _, seg := range segments {
			fmt.Fprintf(log, "  %s %s (level %d, %d tokens)\n", seg.Kind, seg.Name, seg.Level, len(seg.Tokens))
		}
	}

	var parseOpts []parser.Option
	if opts.Diagnostics != nil {
		parseOpts = append(parseOpts, parser.WithDiagnostics(opts.Diagnostics))
	}

	types := parser.NewRegistry()
	records := make([]*parser.TypeRecord, 0, len(segments))
	for _, seg := range segments {
		rec, err := parser.Parse(seg.Tokens, parseOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", name, seg.Name, err)
		}
		debugf("[parse] %s %s: %d member(s)\n", rec.Kind, rec.Name, len(rec.Members))
		if opts.Debug {
			dumper.Fdump(log, rec.Members)
		}
		types.Add(rec)
		records = append(records, rec)
	}

	result := &Result{File: name}
	var sb strings.Builder
	for _, line := range opts.Prelude {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	for _, rec := range records {
		out := emitter.Emit(rec, types, opts.Exports)
		debugf("[emit] %s: %d token(s)\n", rec.Name, len(out))
		sb.WriteString(format.Join(out, opts.Rename))
		result.Types = append(result.Types, rec.Name)
	}
	result.Output = sb.String()
	return result, nil
}

// File reads path and transpiles it
func File(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Transpile(path, string(data), opts)
}
