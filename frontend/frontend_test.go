package frontend

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/types"
)

var programs = []struct {
	name string
	src  string
	// err is empty for a well-formed program
	err string
}{
	{
		name: "array",
		src:  "dim arr[10]: int\narr[2] = 42\nlet v: int = arr[2]\n",
	},
	{
		name: "promotion",
		src:  "let x: float = 5.5\nlet y: int = 10\nlet z: float = x + y\n",
	},
	{
		name: "missing field",
		src:  "type Car\ntend\nlet c: ptr Car = new ptr Car\nlet b: string = c.brand\n",
		err:  "field 'brand' not found",
	},
	{
		name: "argument type",
		src:  "proc f(a: int, b: int): float\n  return a + b\npend\nf(1, 2.0)\n",
		err:  "argument 2",
	},
	{
		name: "unknown type",
		src:  "let x: Foo = 1\n",
		err:  "expected a valid type",
	},
	{
		name: "bad character",
		src:  "let x: int = 1 $\n",
		err:  "unexpected character",
	},
}

func TestCheck(t *testing.T) {
	for _, p := range programs {
		t.Run(p.name, func(t *testing.T) {
			res, err := Check(p.src, "test.fb")
			if p.err == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if res.Program == nil || res.Analyzer == nil {
					t.Fatal("expected a result")
				}
				return
			}

			if err == nil {
				t.Fatalf("expected an error containing %q", p.err)
			}
			if res != nil {
				t.Error("expected no result on failure")
			}
			if !strings.Contains(err.Error(), p.err) {
				t.Errorf("expected an error containing %q, got %v", p.err, err)
			}
		})
	}
}

func TestCheckIsFresh(t *testing.T) {
	src := "let x: int = 1\n"
	if _, err := Check(src, "a.fb"); err != nil {
		t.Fatal(err)
	}
	if _, err := Check(src, "a.fb"); err != nil {
		t.Errorf("a second check of the same program should not see the first one's symbols: %v", err)
	}
}

func TestErrorFormat(t *testing.T) {
	_, err := Check("let x: int = 1\nlet c: char = 128\n", "main.fb")
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "[error] main.fb:2:15:\n\t-> value '128' out of range for type 'char'"
	if got := errors.Format(err); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize("x = 1", "test.fb")
	if err != nil {
		t.Fatal(err)
	}
	kinds := []types.TokenKind{types.IDENT, types.OPERATOR, types.INT, types.EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %v", len(kinds), toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.fb")
	if err := ioutil.WriteFile(path, []byte("let x: int = 1\nlet y: int = x * 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	res, err := CheckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Program.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(res.Program.Statements))
	}

	if _, err := CheckFile(filepath.Join(dir, "missing.fb")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
