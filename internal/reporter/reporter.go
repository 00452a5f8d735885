// Package reporter writes transpile results to the console or as JSON
package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"j2ts/internal/transpile"
)

// Reporter formats and outputs transpile results
type Reporter struct {
	output io.Writer
	json   bool
}

// NewReporter creates a new reporter
func NewReporter(output io.Writer, jsonOutput bool) *Reporter {
	return &Reporter{
		output: output,
		json:   jsonOutput,
	}
}

// Report writes the results in order
func (r *Reporter) Report(results []*transpile.Result) error {
	if r.json {
		return r.reportJSON(results)
	}
	return r.reportConsole(results)
}

func (r *Reporter) reportConsole(results []*transpile.Result) error {
	for _, result := range results {
		if len(results) > 1 {
			if _, err := fmt.Fprintf(r.output, "// %s\n", result.File); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(r.output, result.Output); err != nil {
			return err
		}
	}
	return nil
}

// File is the JSON form of one result
type File struct {
	File   string   `json:"file"`
	Types  []string `json:"types"`
	Output string   `json:"output"`
}

// Summary holds aggregate information about a run
type Summary struct {
	Files int `json:"files"`
	Types int `json:"types"`
}

func (r *Reporter) reportJSON(results []*transpile.Result) error {
	output := struct {
		Files   []File  `json:"files"`
		Summary Summary `json:"summary"`
	}{
		Files: []File{},
	}

	for _, result := range results {
		types := result.Types
		if types == nil {
			types = []string{}
		}
		output.Files = append(output.Files, File{File: result.File, Types: types, Output: result.Output})
		output.Summary.Files++
		output.Summary.Types += len(result.Types)
	}

	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
