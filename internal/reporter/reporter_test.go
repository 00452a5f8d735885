package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"j2ts/internal/transpile"
)

func TestConsole(t *testing.T) {
	one := &transpile.Result{File: "A.java", Types: []string{"A"}, Output: "class A {\n}\n"}
	two := &transpile.Result{File: "B.java", Types: []string{"B"}, Output: "class B {\n}\n"}

	tests := []struct {
		name     string
		results  []*transpile.Result
		expected string
	}{
		{
			name: "nothing",
		},
		{
			name:     "single file has no banner",
			results:  []*transpile.Result{one},
			expected: "class A {\n}\n",
		},
		{
			name:     "several files",
			results:  []*transpile.Result{one, two},
			expected: "// A.java\nclass A {\n}\n// B.java\nclass B {\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewReporter(&buf, false).Report(tt.results); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	results := []*transpile.Result{
		{File: "A.java", Types: []string{"A", "Inner"}, Output: "class A {\n}\n"},
		{File: "Empty.java"},
	}
	if err := NewReporter(&buf, true).Report(results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Files   []File  `json:"files"`
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if decoded.Summary != (Summary{Files: 2, Types: 2}) {
		t.Errorf("unexpected summary:\n%s", spew.Sdump(decoded.Summary))
	}
	if len(decoded.Files) != 2 || decoded.Files[0].Types[1] != "Inner" || decoded.Files[1].Types == nil {
		t.Errorf("unexpected files:\n%s", spew.Sdump(decoded.Files))
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"files\": [")) {
		t.Errorf("expected two-space indentation:\n%s", buf.String())
	}

	t.Run("no results", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, true).Report(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"files": []`)) {
			t.Errorf("expected an empty file list:\n%s", buf.String())
		}
	})
}
