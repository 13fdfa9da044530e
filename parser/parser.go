package parser

import (
	"fmt"

	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/lexer"
	"github.com/RednibCoding/FlatBasic/symbols"
	"github.com/RednibCoding/FlatBasic/types"
)

// Parser is a recursive descent parser with one token of lookahead. It
// registers declarations into its own scope table as it goes, since later
// tokens of a statement (a field type, a ptr target) resolve against them.
type Parser struct {
	l     *lexer.Lexer
	cur   types.Token
	scope *symbols.Table
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{
		l:     l,
		scope: symbols.NewTable(),
	}
}

// Symbols exposes the declarations collected while parsing.
func (p *Parser) Symbols() *symbols.Table {
	return p.scope
}

// Parse reads the whole input. On failure no partial program is returned.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if err != nil {
			prog = nil
		}
	}()
	defer errors.Recover(&err)

	p.advance()
	prog = &ast.Program{Pos: p.cur.Pos}
	for p.cur.Kind != types.EOF {
		prog.Statements = append(prog.Statements, p.statement())
	}
	return prog, nil
}

func (p *Parser) advance() {
	tok, err := p.l.Lex()
	if err != nil {
		panic(err)
	}
	p.cur = tok
}

func describe(tok types.Token) string {
	if tok.Kind == types.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Text)
}

func (p *Parser) errorAt(tok types.Token, format string, args ...interface{}) errors.StaticError {
	e := errors.Static(tok.Pos, format, args...)
	e.Incomplete = tok.Kind == types.EOF
	return e
}

func (p *Parser) is(kind types.TokenKind, texts ...string) bool {
	if p.cur.Kind != kind {
		return false
	}
	for _, text := range texts {
		if p.cur.Text == text {
			return true
		}
	}
	return false
}

func (p *Parser) isKeyword(kw ...string) bool {
	return p.is(types.KEYWORD, kw...)
}

func (p *Parser) isOperator(op ...string) bool {
	return p.is(types.OPERATOR, op...)
}

func (p *Parser) isSeparator(sep ...string) bool {
	return p.is(types.SEPARATOR, sep...)
}

// peekIs looks at the token after the current one without consuming it.
func (p *Parser) peekIs(kind types.TokenKind, text string) bool {
	tok, err := p.l.Peek()
	if err != nil {
		panic(err)
	}
	return tok.Is(kind, text)
}

func (p *Parser) expect(kind types.TokenKind, text string) types.Token {
	tok := p.cur
	if !tok.Is(kind, text) {
		panic(p.errorAt(tok, "expected '%s', got %s", text, describe(tok)))
	}
	p.advance()
	return tok
}

func (p *Parser) expectIdent(what string) types.Token {
	tok := p.cur
	if tok.Kind != types.STRING && lexer.IsKeyword(tok.Text) {
		panic(p.errorAt(tok, "keyword '%s' cannot be used as %s", tok.Text, what))
	}
	if tok.Kind != types.IDENT {
		panic(p.errorAt(tok, "expected %s, got %s", what, describe(tok)))
	}
	p.advance()
	return tok
}

func (p *Parser) declare(tok types.Token, sym symbols.Symbol) {
	if err := p.scope.Declare(tok.Text, sym); err != nil {
		panic(errors.Static(tok.Pos, "%s", err))
	}
}

func (p *Parser) declareGlobal(tok types.Token, sym symbols.Symbol) {
	if err := p.scope.DeclareGlobal(tok.Text, sym); err != nil {
		panic(errors.Static(tok.Pos, "%s", err))
	}
}

func symbolOf(t ast.TypeRef) symbols.Symbol {
	return symbols.Symbol{Type: symbols.TypeName(t.Name), Pointer: t.Pointer}
}

// parseType reads [ptr] followed by a primitive or an already defined type.
func (p *Parser) parseType(what string) ast.TypeRef {
	ref := ast.TypeRef{Pos: p.cur.Pos}
	if p.isKeyword("ptr") {
		ref.Pointer = true
		p.advance()
	}

	tok := p.cur
	if tok.Kind == types.DATATYPE || (tok.Kind == types.IDENT && p.scope.Types.Has(tok.Text)) {
		ref.Name = tok.Text
		p.advance()
		return ref
	}

	panic(p.errorAt(tok, "expected a valid type for %s, got %s", what, describe(tok)))
}

// statementsUntil parses statements up to, not including, one of the given
// keywords.
func (p *Parser) statementsUntil(terminators ...string) []ast.Statement {
	var stmts []ast.Statement
	for !p.isKeyword(terminators...) {
		if p.cur.Kind == types.EOF {
			panic(p.errorAt(p.cur, "expected '%s', got end of input", terminators[len(terminators)-1]))
		}
		stmts = append(stmts, p.statement())
	}
	return stmts
}

func (p *Parser) statement() ast.Statement {
	tok := p.cur

	switch tok.Kind {
	case types.KEYWORD:
		switch tok.Text {
		case "let":
			return p.parseLet()
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDo()
		case "select":
			return p.parseSelect()
		case "proc":
			return p.parseProc()
		case "dim":
			return p.parseDim()
		case "return":
			return p.parseReturn()
		case "type":
			return p.parseTypeDef()
		}
	case types.IDENT:
		return p.parseIdentStatement()
	}

	panic(p.errorAt(tok, "unexpected statement %s", describe(tok)))
}

func (p *Parser) parseLet() ast.Statement {
	pos := p.expect(types.KEYWORD, "let").Pos
	name := p.expectIdent("a variable name")
	p.expect(types.OPERATOR, ":")
	typ := p.parseType(fmt.Sprintf("variable '%s'", name.Text))
	p.expect(types.OPERATOR, "=")
	value := p.expression()

	p.declare(name, symbolOf(typ))

	return &ast.Let{
		Name:  name.Text,
		Type:  typ,
		Value: value,
		Pos:   pos,
	}
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.expect(types.KEYWORD, "if").Pos
	cond := p.expression()
	p.expect(types.KEYWORD, "then")

	stmt := &ast.If{
		Condition: cond,
		Then:      p.statementsUntil("else", "endif"),
		Pos:       pos,
	}
	if p.isKeyword("else") {
		p.advance()
		stmt.Else = p.statementsUntil("endif")
	}
	p.expect(types.KEYWORD, "endif")

	return stmt
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.expect(types.KEYWORD, "for").Pos
	v := p.expectIdent("a loop variable")
	if _, ok := p.scope.Lookup(v.Text); !ok {
		p.declare(v, symbols.Value(symbols.Int))
	}

	p.expect(types.OPERATOR, "=")
	stmt := &ast.For{
		Var:   v.Text,
		Start: p.expression(),
		Pos:   pos,
	}
	p.expect(types.KEYWORD, "to")
	stmt.End = p.expression()
	if p.isKeyword("step") {
		p.advance()
		stmt.Step = p.expression()
	}

	stmt.Body = p.statementsUntil("next")
	p.expect(types.KEYWORD, "next")

	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.expect(types.KEYWORD, "while").Pos
	cond := p.expression()
	body := p.statementsUntil("wend")
	p.expect(types.KEYWORD, "wend")

	return &ast.While{
		Condition: cond,
		Body:      body,
		Pos:       pos,
	}
}

// parseDo handles do ... loop [while cond | until cond]. Without a
// condition the loop never ends and only its body is kept.
func (p *Parser) parseDo() ast.Statement {
	pos := p.expect(types.KEYWORD, "do").Pos
	body := p.statementsUntil("loop")
	p.expect(types.KEYWORD, "loop")

	switch {
	case p.isKeyword("while"):
		p.advance()
		return &ast.DoWhile{Body: body, Condition: p.expression(), Pos: pos}
	case p.isKeyword("until"):
		p.advance()
		return &ast.DoUntil{Body: body, Condition: p.expression(), Pos: pos}
	}
	return &ast.Block{Statements: body, Pos: pos}
}

func (p *Parser) parseSelect() ast.Statement {
	pos := p.expect(types.KEYWORD, "select").Pos
	p.expect(types.KEYWORD, "case")

	stmt := &ast.SelectCase{
		Value: p.expression(),
		Pos:   pos,
	}

	for p.isKeyword("case") {
		casePos := p.cur.Pos
		p.advance()
		value := p.expression()
		p.expect(types.OPERATOR, ":")
		stmt.Cases = append(stmt.Cases, ast.Case{
			Value: value,
			Body:  p.statementsUntil("case", "else", "end"),
			Pos:   casePos,
		})
	}
	if p.isKeyword("else") {
		p.advance()
		p.expect(types.OPERATOR, ":")
		stmt.Default = p.statementsUntil("end")
	}
	p.expect(types.KEYWORD, "end")
	p.expect(types.KEYWORD, "select")

	return stmt
}

func (p *Parser) parseProc() ast.Statement {
	pos := p.expect(types.KEYWORD, "proc").Pos
	name := p.expectIdent("a procedure name")
	p.expect(types.SEPARATOR, "(")

	if err := p.scope.Enter(name.Text); err != nil {
		panic(errors.Static(pos, "%s", err))
	}

	stmt := &ast.ProcDef{Name: name.Text, Pos: pos}
	var params []symbols.Symbol
	if !p.isSeparator(")") {
		for {
			param := p.expectIdent("a parameter name")
			p.expect(types.OPERATOR, ":")
			typ := p.parseType(fmt.Sprintf("parameter '%s'", param.Text))

			p.declare(param, symbolOf(typ))
			params = append(params, symbolOf(typ))
			stmt.Params = append(stmt.Params, ast.Param{
				Name: param.Text,
				Type: typ,
				Pos:  param.Pos,
			})

			if p.isSeparator(",") {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(types.SEPARATOR, ")")
	p.expect(types.OPERATOR, ":")
	stmt.Returns = p.parseType(fmt.Sprintf("the return type of procedure '%s'", name.Text))

	// declared before the body so the procedure can call itself
	p.declareGlobal(name, symbols.Procedure(params, symbols.TypeName(stmt.Returns.Name), stmt.Returns.Pointer))

	stmt.Body = p.statementsUntil("pend")
	p.expect(types.KEYWORD, "pend")
	p.scope.Leave()

	return stmt
}

func (p *Parser) parseDim() ast.Statement {
	tok := p.cur
	pos := p.expect(types.KEYWORD, "dim").Pos
	if p.scope.Kind() == symbols.Local {
		panic(p.errorAt(tok, "arrays can only be declared at global scope"))
	}

	name := p.expectIdent("an array name")
	p.expect(types.SEPARATOR, "[")
	size := p.expression()
	p.expect(types.SEPARATOR, "]")
	p.expect(types.OPERATOR, ":")
	typ := p.parseType(fmt.Sprintf("array '%s'", name.Text))

	sym := symbolOf(typ)
	sym.Array = true
	p.declareGlobal(name, sym)

	return &ast.Dim{
		Name: name.Text,
		Size: size,
		Type: typ,
		Pos:  pos,
	}
}

func (p *Parser) parseReturn() ast.Statement {
	pos := p.expect(types.KEYWORD, "return").Pos
	return &ast.Return{
		Value: p.expression(),
		Pos:   pos,
	}
}

func (p *Parser) parseTypeDef() ast.Statement {
	pos := p.expect(types.KEYWORD, "type").Pos
	name := p.expectIdent("a type name")

	stmt := &ast.TypeDef{Name: name.Text, Pos: pos}
	var fields []symbols.Field
	for !p.isKeyword("tend") {
		p.expect(types.KEYWORD, "field")
		fname := p.expectIdent("a field name")
		p.expect(types.OPERATOR, ":")
		typ := p.parseType(fmt.Sprintf("field '%s'", fname.Text))

		decl := ast.FieldDecl{
			Name: fname.Text,
			Type: typ,
			Pos:  fname.Pos,
		}
		if p.isOperator("=") {
			p.advance()
			decl.Default = p.expression()
		}

		sym := symbolOf(typ)
		sym.Default = decl.Default
		fields = append(fields, symbols.Field{Name: fname.Text, Symbol: sym})
		stmt.Fields = append(stmt.Fields, decl)
	}
	p.expect(types.KEYWORD, "tend")

	if _, err := p.scope.Types.Define(name.Text, fields); err != nil {
		panic(errors.Static(name.Pos, "%s", err))
	}

	return stmt
}

// parseIdentStatement tells apart call, indexed assignment, field assignment
// and plain assignment by the token following the identifier.
func (p *Parser) parseIdentStatement() ast.Statement {
	name := p.cur

	switch {
	case p.peekIs(types.SEPARATOR, "("):
		p.advance()
		call := p.finishCall(name)
		return &ast.CallStatement{Call: call, Pos: name.Pos}

	case p.peekIs(types.SEPARATOR, "["):
		p.advance()
		index := p.finishIndex(name)
		if p.isSeparator(".") {
			target := p.fieldChain(index)
			p.expect(types.OPERATOR, "=")
			return &ast.Assignment{Target: target, Value: p.expression(), Pos: name.Pos}
		}
		p.expect(types.OPERATOR, "=")
		return &ast.ArrayAssignment{
			Array: name.Text,
			Index: index.Index,
			Value: p.expression(),
			Pos:   name.Pos,
		}
	}

	p.advance()
	var target ast.Expression = &ast.Identifier{Name: name.Text, Pos: name.Pos}
	if p.isSeparator(".") {
		target = p.fieldChain(target)
	}
	p.expect(types.OPERATOR, "=")

	return &ast.Assignment{
		Target: target,
		Value:  p.expression(),
		Pos:    name.Pos,
	}
}
