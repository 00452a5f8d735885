package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"j2ts/internal/reporter"
	"j2ts/internal/scanner"
	"j2ts/internal/transpile"
)

var (
	version = "0.3.0"
)

func main() {
	exportFlag := flag.String("export", "", "Comma-separated list of types and static members to export")
	renameFlag := flag.String("rename", "", "Comma-separated list of from=to token renames (e.g., System.out.println=console.log)")
	excludeFlag := flag.String("exclude", "", "Comma-separated list of directories to exclude (e.g., test,build)")
	outFlag := flag.String("out", "", "Write one .ts file per input into this directory")
	jsonFlag := flag.Bool("json", false, "Output results in JSON format")
	debugFlag := flag.Bool("debug", false, "Log pipeline phases and dump parsed records to stderr")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: j2ts [options] <path> [paths...]\n\n")
		fmt.Fprintf(os.Stderr, "Java to TypeScript source translator\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  j2ts Parser.java                   Print the translation of Parser.java\n")
		fmt.Fprintf(os.Stderr, "  j2ts --out=gen ./src               Write gen/<Name>.ts for every file in ./src\n")
		fmt.Fprintf(os.Stderr, "  j2ts --json ./src > out.json       Output results as JSON\n")
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("j2ts version %s\n", version)
		os.Exit(0)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No paths specified")
		fmt.Fprintln(os.Stderr, "Run 'j2ts --help' for usage")
		os.Exit(1)
	}

	rename, err := parseRename(*renameFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	exports := make(map[string]bool)
	for _, name := range splitList(*exportFlag) {
		exports[name] = true
	}

	files, err := scanner.NewScanner(splitList(*excludeFlag)).ScanPaths(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning paths: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No Java files found")
		os.Exit(1)
	}

	opts := transpile.Options{
		Prelude:     transpile.DefaultPrelude,
		Rename:      rename,
		Exports:     exports,
		Debug:       *debugFlag,
		Log:         os.Stderr,
		Diagnostics: os.Stderr,
	}

	var results []*transpile.Result
	for _, file := range files {
		result, err := transpile.File(file, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		results = append(results, result)
	}

	if *outFlag != "" {
		if err := writeFiles(*outFlag, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	r := reporter.NewReporter(os.Stdout, *jsonFlag)
	if err := r.Report(results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}

// writeFiles writes dir/<Base>.ts for every result
func writeFiles(dir string, results []*transpile.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, result := range results {
		base := filepath.Base(result.File)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ".ts"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(result.Output), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseRename(s string) (map[string]string, error) {
	rename := make(map[string]string)
	for _, pair := range splitList(s) {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" {
			return nil, fmt.Errorf("invalid rename %q, expected from=to", pair)
		}
		rename[from] = to
	}
	return rename, nil
}
