// Package frontend runs the lexer, parser and analyzer over one source unit.
package frontend

import (
	"io/ioutil"

	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/lexer"
	"github.com/RednibCoding/FlatBasic/parser"
	"github.com/RednibCoding/FlatBasic/semantic"
	"github.com/RednibCoding/FlatBasic/types"
	"github.com/ztrue/tracerr"
)

// Result is a program that passed every stage, with the analyzer that
// checked it so its symbols can be inspected.
type Result struct {
	Program  *ast.Program
	Analyzer *semantic.Analyzer
}

func Tokenize(text, filename string) ([]types.Token, error) {
	return lexer.FromString(text, filename).All()
}

func Parse(text, filename string) (*ast.Program, error) {
	return parser.NewParser(lexer.FromString(text, filename)).Parse()
}

// Check parses and analyzes text. Every call starts from empty scopes.
func Check(text, filename string) (*Result, error) {
	prog, err := Parse(text, filename)
	if err != nil {
		return nil, err
	}

	a := semantic.NewAnalyzer()
	if err := a.Analyze(prog); err != nil {
		return nil, err
	}
	return &Result{Program: prog, Analyzer: a}, nil
}

func CheckFile(path string) (*Result, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return Check(string(data), path)
}
