package parser

import (
	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/types"
)

// Precedence, lowest first: or, and, equality, relational, additive,
// multiplicative, unary, primary. Every binary level is left associative.

func (p *Parser) expression() ast.Expression {
	return p.logicalOr()
}

func (p *Parser) binary(next func() ast.Expression, match func() bool) ast.Expression {
	left := next()
	for match() {
		op := p.cur
		p.advance()
		left = &ast.Binary{
			Left:  left,
			Op:    op.Text,
			Right: next(),
			Pos:   op.Pos,
		}
	}
	return left
}

func (p *Parser) logicalOr() ast.Expression {
	return p.binary(p.logicalAnd, func() bool { return p.isKeyword("or") })
}

func (p *Parser) logicalAnd() ast.Expression {
	return p.binary(p.equality, func() bool { return p.isKeyword("and") })
}

func (p *Parser) equality() ast.Expression {
	return p.binary(p.relational, func() bool { return p.isOperator("==", "!=") })
}

func (p *Parser) relational() ast.Expression {
	return p.binary(p.additive, func() bool { return p.isOperator("<", "<=", ">", ">=") })
}

func (p *Parser) additive() ast.Expression {
	return p.binary(p.multiplicative, func() bool { return p.isOperator("+", "-") })
}

func (p *Parser) multiplicative() ast.Expression {
	return p.binary(p.unary, func() bool { return p.isOperator("*", "/") })
}

func (p *Parser) unary() ast.Expression {
	if p.isOperator("-", "+", "!") {
		op := p.cur
		p.advance()
		return &ast.Unary{
			Op:      op.Text,
			Operand: p.unary(),
			Pos:     op.Pos,
		}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expression {
	tok := p.cur

	switch tok.Kind {
	case types.INT, types.FLOAT:
		p.advance()
		return &ast.Number{Text: tok.Text, IsFloat: tok.Kind == types.FLOAT, Pos: tok.Pos}
	case types.STRING:
		p.advance()
		return &ast.String{Value: tok.Text, Pos: tok.Pos}
	case types.SEPARATOR:
		if tok.Text == "(" {
			p.advance()
			expr := p.expression()
			p.expect(types.SEPARATOR, ")")
			return expr
		}
	case types.KEYWORD:
		if tok.Text == "new" {
			return p.newInstance()
		}
	case types.IDENT:
		p.advance()
		switch {
		case p.isSeparator("("):
			return p.fieldChain(p.finishCall(tok))
		case p.isSeparator("["):
			return p.fieldChain(p.finishIndex(tok))
		}
		return p.fieldChain(&ast.Identifier{Name: tok.Text, Pos: tok.Pos})
	}

	panic(p.errorAt(tok, "unexpected token %s", describe(tok)))
}

// finishCall parses the argument list; the current token is '('.
func (p *Parser) finishCall(name types.Token) *ast.Call {
	p.expect(types.SEPARATOR, "(")

	call := &ast.Call{Name: name.Text, Pos: name.Pos}
	if !p.isSeparator(")") {
		for {
			call.Arguments = append(call.Arguments, p.expression())
			if p.isSeparator(",") {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(types.SEPARATOR, ")")

	return call
}

// finishIndex parses [index]; the current token is '['.
func (p *Parser) finishIndex(name types.Token) *ast.Index {
	p.expect(types.SEPARATOR, "[")
	index := p.expression()
	p.expect(types.SEPARATOR, "]")

	return &ast.Index{Array: name.Text, Index: index, Pos: name.Pos}
}

func (p *Parser) fieldChain(base ast.Expression) ast.Expression {
	for p.isSeparator(".") {
		p.advance()
		field := p.expectIdent("a field name")
		base = &ast.FieldAccess{Of: base, Field: field.Text, Pos: field.Pos}
	}
	return base
}

func (p *Parser) newInstance() ast.Expression {
	pos := p.expect(types.KEYWORD, "new").Pos
	return &ast.NewInstance{
		Type: p.parseType("new"),
		Pos:  pos,
	}
}
