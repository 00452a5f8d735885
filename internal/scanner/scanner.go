// Package scanner finds the source files to transpile
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExt is the extension of the files picked up by a scan
const SourceExt = ".java"

// Scanner walks directories for source files, skipping excluded directories
type Scanner struct {
	Excludes []string
}

// NewScanner creates a scanner that skips directories named in excludes
func NewScanner(excludes []string) *Scanner {
	return &Scanner{Excludes: excludes}
}

// ScanPath returns the source files under path in lexical order. A path
// naming a file is returned as is when it has the source extension.
func (s *Scanner) ScanPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	if !info.IsDir() {
		if isSource(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped
			return nil
		}
		if d.IsDir() {
			if p != path && s.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isSource(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return files, nil
}

// ScanPaths scans every path and returns the absolute file paths, each once
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			abs, err := filepath.Abs(f)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", f, err)
			}
			if !seen[abs] {
				seen[abs] = true
				all = append(all, abs)
			}
		}
	}
	return all, nil
}

func (s *Scanner) excluded(dir string) bool {
	return slices.Contains(s.Excludes, dir)
}

func isSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceExt)
}
