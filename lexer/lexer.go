package lexer

import (
	"bufio"
	"io"
	"strings"

	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/symbols"
	"github.com/RednibCoding/FlatBasic/types"
)

var keywords = map[string]bool{
	"let":    true,
	"end":    true,
	"if":     true,
	"then":   true,
	"else":   true,
	"endif":  true,
	"for":    true,
	"to":     true,
	"step":   true,
	"next":   true,
	"proc":   true,
	"pend":   true,
	"dim":    true,
	"while":  true,
	"wend":   true,
	"do":     true,
	"loop":   true,
	"until":  true,
	"select": true,
	"case":   true,
	"return": true,
	"and":    true,
	"or":     true,
	"type":   true,
	"field":  true,
	"tend":   true,
	"new":    true,
	"ptr":    true,
}

// IsKeyword reports whether word is reserved by the language.
func IsKeyword(word string) bool {
	return keywords[word]
}

type Lexer struct {
	pos    types.Position
	last   types.Position
	reader *bufio.Reader
	peeked *types.Token
	// peekErr holds a lexical error hit while peeking until Lex reports it.
	peekErr error
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 1, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func FromString(text, filename string) *Lexer {
	return NewLexer(strings.NewReader(text), filename)
}

// read consumes one rune, keeping pos pointed at the next unread rune.
func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}

	l.last = l.pos
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r, true
}

// backup un-reads the rune returned by the last read. Only one level is
// supported.
func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	l.pos = l.last
}

func (l *Lexer) peekRune() (rune, bool) {
	r, ok := l.read()
	if ok {
		l.backup()
	}
	return r, ok
}

func (l *Lexer) token(kind types.TokenKind, text string, from types.Position) types.Token {
	from.Length = l.pos.Column - from.Column
	return types.Token{Kind: kind, Text: text, Pos: from}
}

func identStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func identChar(r rune) bool {
	return identStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func (l *Lexer) lexIdent(from types.Position) types.Token {
	var lit strings.Builder

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if !identChar(r) {
			l.backup()
			break
		}
		lit.WriteRune(r)
	}

	text := lit.String()
	switch {
	case symbols.IsPrimitive(text):
		return l.token(types.DATATYPE, text, from)
	case keywords[text]:
		return l.token(types.KEYWORD, text, from)
	}
	return l.token(types.IDENT, text, from)
}

// lexNumber reads digits with at most one '.'. A second '.' ends the number
// and is left for the next token.
func (l *Lexer) lexNumber(from types.Position) types.Token {
	var lit strings.Builder
	seenDot := false

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if r == '.' && !seenDot {
			seenDot = true
		} else if !isDigit(r) {
			l.backup()
			break
		}
		lit.WriteRune(r)
	}

	if seenDot {
		return l.token(types.FLOAT, lit.String(), from)
	}
	return l.token(types.INT, lit.String(), from)
}

func (l *Lexer) lexString(from types.Position) types.Token {
	var lit strings.Builder

	// opening quote
	l.read()
	for {
		r, ok := l.read()
		if !ok {
			panic(errors.Lexical(from, "unterminated string literal"))
		}
		if r == '"' {
			break
		}
		lit.WriteRune(r)
	}

	tok := l.token(types.STRING, lit.String(), from)
	if l.pos.Line != from.Line {
		tok.Pos.Length = len([]rune(lit.String())) + 2
	}
	return tok
}

func (l *Lexer) skipComment() {
	for {
		r, ok := l.read()
		if !ok || r == '\n' {
			return
		}
	}
}

var twoCharOperators = map[string]bool{
	"<=": true,
	">=": true,
	"==": true,
	"!=": true,
}

func (l *Lexer) lex() types.Token {
	for {
		from := l.pos
		r, ok := l.peekRune()
		if !ok {
			return types.Token{Kind: types.EOF, Pos: from}
		}

		switch {
		case isSpace(r):
			l.read()
			continue
		case r == '#':
			l.skipComment()
			continue
		case identStart(r):
			return l.lexIdent(from)
		case isDigit(r):
			return l.lexNumber(from)
		case r == '"':
			return l.lexString(from)
		}

		l.read()
		switch r {
		case '<', '>', '=', '!':
			if next, ok := l.peekRune(); ok && twoCharOperators[string([]rune{r, next})] {
				l.read()
				return l.token(types.OPERATOR, string([]rune{r, next}), from)
			}
			return l.token(types.OPERATOR, string(r), from)
		case '+', '-', '*', '/', ':':
			return l.token(types.OPERATOR, string(r), from)
		case '(', ')', ',', '.', '[', ']':
			return l.token(types.SEPARATOR, string(r), from)
		}

		from.Length = 1
		panic(errors.Lexical(from, "unexpected character %q", r))
	}
}

// Lex returns the next token. Once the input is exhausted every further
// call returns an EOF token.
func (l *Lexer) Lex() (tok types.Token, err error) {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked, nil
	}
	if l.peekErr != nil {
		err, l.peekErr = l.peekErr, nil
		return types.Token{}, err
	}

	defer errors.Recover(&err)
	return l.lex(), nil
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (types.Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}

	if l.peekErr != nil {
		return types.Token{}, l.peekErr
	}

	tok, err := l.Lex()
	if err != nil {
		l.peekErr = err
		return types.Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// PeekIs reports whether the next token has the given kind and one of the
// given texts. Lexical errors are left for the following Lex call.
func (l *Lexer) PeekIs(kind types.TokenKind, texts ...string) bool {
	tok, err := l.Peek()
	if err != nil || tok.Kind != kind {
		return false
	}
	for _, text := range texts {
		if tok.Text == text {
			return true
		}
	}
	return len(texts) == 0
}

// All lexes the remaining input. The returned slice ends with the EOF token.
func (l *Lexer) All() ([]types.Token, error) {
	var ret []types.Token
	for {
		tok, err := l.Lex()
		if err != nil {
			return ret, err
		}
		ret = append(ret, tok)
		if tok.Kind == types.EOF {
			return ret, nil
		}
	}
}
