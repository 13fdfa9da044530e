package types

import (
	"fmt"
)

type Position struct {
	Filename string
	Line     int
	Column   int
	Length   int
}

type TokenKind int

const (
	EOF TokenKind = iota

	KEYWORD
	IDENT
	INT
	FLOAT
	STRING
	OPERATOR
	SEPARATOR
	DATATYPE
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:       "EOF",
		KEYWORD:   "KEYWORD",
		IDENT:     "IDENT",
		INT:       "INT",
		FLOAT:     "FLOAT",
		STRING:    "STRING",
		OPERATOR:  "OPERATOR",
		SEPARATOR: "SEPARATOR",
		DATATYPE:  "DATATYPE",
	}
	return data[t]
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Before reports whether p starts strictly before o in the same file.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Column < o.Column)
}

type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
