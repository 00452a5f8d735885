package flatten

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"j2ts/internal/lexer"
)

func lex(t *testing.T, source string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return tokens
}

func expectText(t *testing.T, got []lexer.Token, expected string) {
	t.Helper()
	want := strings.Join(lexer.Texts(lex(t, expected)), " ")
	have := strings.Join(lexer.Texts(got), " ")
	if have != want {
		t.Errorf("segment mismatch:\nexpected: %s\n     got: %s", want, have)
	}
}

func TestFile(t *testing.T) {
	source := `
class Class1 {
  int n;
  int g(){}
  /* { method */
  private int f() {
    if (1) {} else {
    }
    else {
    }
  }
  // {
  /** some doc
   */
  private class Class2 {
    String x;
    int g()
    {
      /** random doc */
    }
  }
  /** some doc too */
  int blah;
  interface Blah
  {
  }
  int doo;
  /** some doc 3 */
  enum Enum {
  }
}
`
	segments := File(lex(t, source))
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d:\n%s", len(segments), spew.Sdump(segments))
	}

	expectText(t, segments[0].Tokens, `
class Class1 {
  int n;
  int g(){}
  private int f() {
    if (1) {} else {
    }
    else {
    }
  }
  int blah;
  int doo;
}`)
	expectText(t, segments[1].Tokens, `private class Class2 { String x; int g() { } }`)
	expectText(t, segments[2].Tokens, `interface Blah { }`)
	expectText(t, segments[3].Tokens, `enum Enum { }`)

	expected := []struct {
		name  string
		kind  string
		level int
	}{
		{"Class1", "class", 0},
		{"Class2", "class", 1},
		{"Blah", "interface", 1},
		{"Enum", "enum", 1},
	}
	for i, want := range expected {
		seg := segments[i]
		if seg.Name != want.name || seg.Kind != want.kind || seg.Level != want.level {
			t.Errorf("segment %d: expected %s %s level %d, got %s %s level %d",
				i, want.kind, want.name, want.level, seg.Kind, seg.Name, seg.Level)
		}
	}
}

func TestImportsDropped(t *testing.T) {
	source := `import java.util.List;
import static java.lang.Math.max;
public final class A { int x; }
class B { }`
	tokens := lex(t, source)
	segments := File(tokens)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	expectText(t, segments[0].Tokens, `public final class A { int x; }`)
	expectText(t, segments[1].Tokens, `class B { }`)

	// Every token is either in a segment or part of an import line
	imports := len(lex(t, "import java.util.List; import static java.lang.Math.max;"))
	total := imports
	for _, seg := range segments {
		total += len(seg.Tokens)
	}
	if total != len(tokens) {
		t.Errorf("expected %d tokens across segments and imports, got %d", len(tokens), total)
	}
}

func TestLocalClass(t *testing.T) {
	source := `class Outer {
  void f() {
    class Local { int v; }
    int after;
  }
  int tail;
}`
	segments := File(lex(t, source))
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	expectText(t, segments[0].Tokens, `class Outer { void f() { int after; } int tail; }`)
	expectText(t, segments[1].Tokens, `class Local { int v; }`)
	if segments[1].Level != 1 {
		t.Errorf("expected local class at level 1, got %d", segments[1].Level)
	}
}

func TestOutsideTokens(t *testing.T) {
	segments := File(lex(t, "package a.b; class A { }"))
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	expectText(t, segments[0].Tokens, `class A { }`)
}
