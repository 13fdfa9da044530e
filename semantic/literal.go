package semantic

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/symbols"
)

// literalOf matches a number literal, optionally under a unary sign, so that
// -128 can be range checked as a whole.
func literalOf(e ast.Expression) (*ast.Number, bool, bool) {
	switch expr := e.(type) {
	case *ast.Number:
		return expr, false, true
	case *ast.Unary:
		if num, ok := expr.Operand.(*ast.Number); ok && (expr.Op == "-" || expr.Op == "+") {
			return num, expr.Op == "-", true
		}
	}
	return nil, false, false
}

func isZero(text string) bool {
	return strings.Trim(text, "0") == ""
}

// typeLiteral gives a number literal the expected type want, failing when
// the value does not fit it.
func typeLiteral(num *ast.Number, negative bool, want symbols.TypeName) (symbols.Symbol, error) {
	text := num.Text
	if negative {
		text = "-" + text
	}

	if num.IsFloat {
		if !symbols.IsFloating(want) {
			return symbols.Symbol{}, fmt.Errorf("type mismatch: cannot assign a floating-point value '%s' to '%s'", text, want)
		}
		if want == symbols.Float {
			if _, err := strconv.ParseFloat(num.Text, 32); err != nil {
				return symbols.Symbol{}, fmt.Errorf("value '%s' out of range for type '%s'", text, want)
			}
		}
		return symbols.Value(want), nil
	}

	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return symbols.Symbol{}, fmt.Errorf("invalid numeric value '%s'", text)
	}
	if !symbols.InRange(value, want) {
		return symbols.Symbol{}, fmt.Errorf("value '%s' out of range for type '%s'", text, want)
	}
	return symbols.Value(want), nil
}

// valueFor computes the type of e where a value of type want is expected.
// Number literals take the expected numeric type after a range check; any
// other expression gets its natural type.
func (a *Analyzer) valueFor(e ast.Expression, want symbols.Symbol) symbols.Symbol {
	num, negative, ok := literalOf(e)
	if !ok || !symbols.IsNumeric(want.Type) {
		return a.expression(e)
	}

	sym, err := typeLiteral(num, negative, want.Type)
	if err != nil {
		panic(a.errorAt(e, "%s", err))
	}
	return sym
}
