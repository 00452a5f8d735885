package transpile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"j2ts/internal/lexer"
	"j2ts/internal/parser"
)

const demo = `package demo;
import java.util.List;

public class Outer {
  static int LIMIT = 3;
  int n;
  enum Mode { ON, OFF }
  void f() { n = LIMIT; System.out.println("x"); }
}
`

func TestTranspile(t *testing.T) {
	result, err := Transpile("Outer.java", demo, Options{
		Prelude: []string{"type int=number;"},
		Rename:  map[string]string{"System.out.println": "console.log"},
		Exports: map[string]bool{"Outer": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `type int=number;
const LIMIT : int = 3 ;
export class Outer {
n : int ;
f ( ) : void {
this.n = LIMIT ;
console.log ( "x" ) ;
}
}
class Mode {
static ON : Mode = new Mode ( ) ;
static OFF : Mode = new Mode ( ) ;
}
`
	if result.Output != expected {
		t.Errorf("unexpected output:\nexpected:\n%s\ngot:\n%s", expected, result.Output)
	}

	if spew.Sdump(result.Types) != spew.Sdump([]string{"Outer", "Mode"}) {
		t.Errorf("unexpected types: %v", result.Types)
	}
	if result.File != "Outer.java" {
		t.Errorf("expected file name Outer.java, got %q", result.File)
	}
}

func TestDefaultPrelude(t *testing.T) {
	result, err := Transpile("T.java", "class T {}", Options{Prelude: DefaultPrelude})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result.Output, strings.Join(DefaultPrelude, "\n")+"\n") {
		t.Errorf("missing prelude in:\n%s", result.Output)
	}
	if !strings.HasSuffix(result.Output, "class T {\n}\n") {
		t.Errorf("missing type in:\n%s", result.Output)
	}
}

func TestErrors(t *testing.T) {
	t.Run("structural", func(t *testing.T) {
		var diag bytes.Buffer
		_, err := Transpile("T.java", "class T { 42 }", Options{Diagnostics: &diag})
		if err == nil {
			t.Fatal("expected an error")
		}

		var structural *parser.StructuralError
		if !errors.As(err, &structural) {
			t.Fatalf("expected a structural error, got %T: %v", err, err)
		}
		if structural.Type != "T" || structural.Expected != "class member" {
			t.Errorf("unexpected error:\n%s", spew.Sdump(structural))
		}
		if !strings.Contains(err.Error(), "parse T") {
			t.Errorf("expected the phase in %q", err.Error())
		}
		if !strings.HasPrefix(diag.String(), "T:\n") {
			t.Errorf("expected a diagnostic dump, got %q", diag.String())
		}
	})

	t.Run("lexical", func(t *testing.T) {
		_, err := Transpile("T.java", `class T { String s = "abc; }`, Options{})
		var lexical *lexer.Error
		if !errors.As(err, &lexical) {
			t.Fatalf("expected a lexical error, got %T: %v", err, err)
		}
		if !strings.Contains(err.Error(), "lex") {
			t.Errorf("expected the phase in %q", err.Error())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := File(filepath.Join(t.TempDir(), "Missing.java"), Options{})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected a not-exist error, got %v", err)
		}
	})
}

func TestDebugLog(t *testing.T) {
	var log bytes.Buffer
	if _, err := Transpile("T.java", "class T { int x; }", Options{Debug: true, Log: &log}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"[lex] T.java", "[flatten]", "[parse] class T: 1 member(s)", "[emit] T"} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("expected %q in debug log:\n%s", want, log.String())
		}
	}

	t.Run("quiet", func(t *testing.T) {
		var log bytes.Buffer
		if _, err := Transpile("T.java", "class T {}", Options{Log: &log}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if log.Len() != 0 {
			t.Errorf("expected no output, got %q", log.String())
		}
	})
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Outer.java")
	if err := os.WriteFile(path, []byte(demo), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := File(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.File != path || len(result.Types) != 2 {
		t.Errorf("unexpected result:\n%s", spew.Sdump(result))
	}
}
