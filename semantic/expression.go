package semantic

import (
	"fmt"

	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/symbols"
)

func (a *Analyzer) expression(e ast.Expression) symbols.Symbol {
	switch expr := e.(type) {
	case *ast.Identifier:
		sym, ok := a.scope.Lookup(expr.Name)
		if !ok {
			panic(a.errorAt(expr, "variable or procedure '%s' not defined", expr.Name))
		}
		if sym.Array {
			panic(a.errorAt(expr, "array '%s' must be indexed", expr.Name))
		}
		return sym
	case *ast.Number:
		if expr.IsFloat {
			return symbols.Value(symbols.Double)
		}
		return symbols.Value(symbols.Int)
	case *ast.String:
		return symbols.Value(symbols.String)
	case *ast.Unary:
		return a.unary(expr)
	case *ast.Binary:
		return a.binary(expr)
	case *ast.Call:
		return a.call(expr, true)
	case *ast.Index:
		elem := a.array(expr, expr.Array)
		a.index(expr.Index)
		return elem
	case *ast.FieldAccess:
		return a.fieldAccess(expr)
	case *ast.NewInstance:
		return a.newInstance(expr)
	}
	panic(fmt.Sprintf("unhandled expression %T", e))
}

func (a *Analyzer) unary(n *ast.Unary) symbols.Symbol {
	operand := a.expression(n.Operand)

	switch n.Op {
	case "-", "+":
		if operand.Pointer {
			panic(a.errorAt(n, "unary '%s' operator cannot be applied to pointers", n.Op))
		}
		if !symbols.IsNumeric(operand.Type) {
			panic(a.errorAt(n, "unary '%s' operator requires a numeric operand, got %s", n.Op, operand.Type))
		}
		return symbols.Value(operand.Type)
	case "!":
		if !symbols.SameType(operand, symbols.Value(symbols.Int)) {
			panic(a.errorAt(n, "unary '!' operator requires an integer (boolean) operand, got %s", operand.TypeString()))
		}
		return symbols.Value(symbols.Int)
	}
	panic(a.errorAt(n, "unknown unary operator %s", n.Op))
}

func (a *Analyzer) binary(n *ast.Binary) symbols.Symbol {
	left := a.expression(n.Left)
	right := a.expression(n.Right)

	switch n.Op {
	case "+", "-", "*", "/":
		if left.Pointer || right.Pointer {
			return a.pointerArithmetic(n, left, right)
		}
		if !symbols.IsNumeric(left.Type) || !symbols.IsNumeric(right.Type) {
			panic(a.errorAt(n, "arithmetic operations require numeric operands, got %s and %s", left.Type, right.Type))
		}
		return symbols.Value(symbols.Promote(left.Type, right.Type))

	case "<", "<=", ">", ">=", "==", "!=":
		// pointee types of compared pointers are not checked
		if left.Pointer != right.Pointer {
			panic(a.errorAt(n, "comparison operations require both operands to be either pointers or numerics"))
		}
		if !left.Pointer && (!symbols.IsNumeric(left.Type) || !symbols.IsNumeric(right.Type)) {
			panic(a.errorAt(n, "comparison operations require numeric operands, got %s and %s", left.Type, right.Type))
		}
		return symbols.Value(symbols.Int)

	case "and", "or":
		boolean := symbols.Value(symbols.Int)
		if !symbols.SameType(left, boolean) || !symbols.SameType(right, boolean) {
			panic(a.errorAt(n, "logical operations require integer (boolean) operands, got %s and %s", left.TypeString(), right.TypeString()))
		}
		return boolean
	}
	panic(a.errorAt(n, "unknown binary operator %s", n.Op))
}

// pointerArithmetic allows ptr + n, n + ptr and ptr - n for non-floating n;
// n - ptr is rejected.
// The result points at the pointer operand's pointee type.
func (a *Analyzer) pointerArithmetic(n *ast.Binary, left, right symbols.Symbol) symbols.Symbol {
	if n.Op == "*" || n.Op == "/" {
		panic(a.errorAt(n, "operation '%s' not allowed on pointers", n.Op))
	}
	if n.Op == "-" && right.Pointer && !left.Pointer {
		panic(a.errorAt(n, "a pointer cannot be subtracted from a value"))
	}

	ptr, offset := left, right
	if right.Pointer {
		ptr, offset = right, left
	}
	if offset.Pointer || !symbols.IsIntegral(offset.Type) {
		panic(a.errorAt(n, "pointer arithmetic requires a pointer and a non-floating-point numeric type"))
	}
	return symbols.PointerTo(ptr.Type)
}

// call checks a procedure call. Invoking a procedure stored in a variable is
// not supported: only names bound to a procedure definition are callable.
func (a *Analyzer) call(n *ast.Call, asValue bool) symbols.Symbol {
	proc, ok := a.scope.Lookup(n.Name)
	if !ok {
		panic(a.errorAt(n, "procedure '%s' not defined", n.Name))
	}
	if !proc.Callable {
		panic(a.errorAt(n, "'%s' is not callable", n.Name))
	}
	if len(n.Arguments) != len(proc.Params) {
		panic(a.errorAt(n, "procedure '%s' expects %d arguments, got %d", n.Name, len(proc.Params), len(n.Arguments)))
	}

	for i, arg := range n.Arguments {
		a.argument(n, i, arg, proc.Params[i])
	}

	if asValue && proc.ReturnType == symbols.Void && !proc.ReturnPointer {
		panic(a.errorAt(n, "procedure '%s' returns void and cannot be used as a value", n.Name))
	}
	return proc.Returned()
}

func (a *Analyzer) argument(n *ast.Call, i int, arg ast.Expression, want symbols.Symbol) {
	if num, negative, ok := literalOf(arg); ok && symbols.IsNumeric(want.Type) {
		if _, err := typeLiteral(num, negative, want.Type); err != nil {
			panic(a.errorAt(arg, "argument %d of procedure '%s' should be of type '%s', got '%s' (%s)",
				i+1, n.Name, want.TypeString(), a.expression(num).TypeString(), err))
		}
	}

	got := a.valueFor(arg, want)
	if !symbols.Compatible(want, got) || want.Pointer != got.Pointer {
		panic(a.errorAt(arg, "argument %d of procedure '%s' should be of type '%s', got '%s'",
			i+1, n.Name, want.TypeString(), got.TypeString()))
	}
}

// fieldAccess resolves one link of a field chain against the struct type of
// the expression before it. Pointers to structs are dereferenced implicitly.
func (a *Analyzer) fieldAccess(n *ast.FieldAccess) symbols.Symbol {
	of := a.expression(n.Of)
	st, ok := a.scope.Types.Lookup(string(of.Type))
	if of.Callable || !ok {
		panic(a.errorAt(n, "type '%s' not defined as a struct, cannot access field '%s'", of.Type, n.Field))
	}

	field, ok := st.Field(n.Field)
	if !ok {
		panic(a.errorAt(n, "field '%s' not found in type '%s'", n.Field, st.Name))
	}
	return symbols.Symbol{Type: field.Type, Pointer: field.Pointer}
}

// newInstance accepts any struct; with ptr it also accepts primitive types.
func (a *Analyzer) newInstance(n *ast.NewInstance) symbols.Symbol {
	name := n.Type.Name
	if n.Type.Pointer {
		if !a.scope.IsType(name) {
			panic(a.errorAt(n, "type '%s' not defined", name))
		}
	} else if !a.scope.Types.Has(name) {
		panic(a.errorAt(n, "type '%s' is not a struct type and cannot be instantiated without ptr", name))
	}
	return symbols.Symbol{Type: symbols.TypeName(name), Pointer: n.Type.Pointer}
}
