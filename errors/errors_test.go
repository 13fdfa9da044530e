package errors

import (
	"fmt"
	"testing"

	"github.com/RednibCoding/FlatBasic/types"
	"github.com/ztrue/tracerr"
)

var at = types.Position{Filename: "a.fb", Line: 2, Column: 3, Length: 1}

func TestFormat(t *testing.T) {
	err := tracerr.Wrap(Static(at, "bad %s", "thing"))
	if got, want := Format(err), "[error] a.fb:2:3:\n\t-> bad thing"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got, want := Format(fmt.Errorf("plain")), "[error] plain"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClassify(t *testing.T) {
	lex := tracerr.Wrap(Lexical(at, "unexpected character %q", '@'))
	if !IsLexical(lex) || IsIncomplete(lex) {
		t.Error("expected a complete lexical error")
	}
	if pos, ok := Location(lex); !ok || pos != at {
		t.Errorf("expected %v, got %v", at, pos)
	}

	static := Static(at, "expected 'pend', got end of input")
	static.Incomplete = true
	if IsLexical(static) || !IsIncomplete(tracerr.Wrap(static)) {
		t.Error("expected an incomplete static error")
	}
	if _, ok := Location(fmt.Errorf("plain")); ok {
		t.Error("a plain error has no location")
	}
}

func TestRecover(t *testing.T) {
	run := func(v interface{}) (err error) {
		defer Recover(&err)
		panic(v)
	}

	err := run(Static(at, "boom"))
	if Message(err) != "boom" {
		t.Errorf("expected the recovered error, got %v", err)
	}

	defer func() {
		if r := recover(); r != "not an error" {
			t.Errorf("expected the non-error panic to propagate, got %v", r)
		}
	}()
	run("not an error")
}
