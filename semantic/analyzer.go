// Package semantic checks a parsed program: it resolves every name against
// the global and procedure scopes, computes the static type of every
// expression and enforces the assignment, pointer and call rules.
package semantic

import (
	"fmt"

	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/symbols"
)

// Analyzer holds the state of one analysis. Use a fresh Analyzer per
// program.
type Analyzer struct {
	scope *symbols.Table
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{scope: symbols.NewTable()}
}

// Symbols exposes the global scope and struct table built by Analyze.
func (a *Analyzer) Symbols() *symbols.Table {
	return a.scope
}

// Analyze checks prog and stops at the first violation.
func (a *Analyzer) Analyze(prog *ast.Program) (err error) {
	defer errors.Recover(&err)

	a.block(prog.Statements)
	return nil
}

// TypeOf computes the static type of expr in the current global scope.
func (a *Analyzer) TypeOf(expr ast.Expression) (sym symbols.Symbol, err error) {
	defer errors.Recover(&err)

	return a.expression(expr), nil
}

func (a *Analyzer) errorAt(node ast.Node, format string, args ...interface{}) errors.StaticError {
	return errors.Static(node.Position(), format, args...)
}

func (a *Analyzer) block(stmts []ast.Statement) {
	for _, stmt := range stmts {
		a.statement(stmt)
	}
}

func (a *Analyzer) statement(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.ProcDef:
		a.procDef(stmt)
	case *ast.Let:
		a.let(stmt)
	case *ast.Assignment:
		a.assignment(stmt)
	case *ast.ArrayAssignment:
		a.arrayAssignment(stmt)
	case *ast.If:
		a.condition(stmt.Condition)
		a.block(stmt.Then)
		a.block(stmt.Else)
	case *ast.For:
		a.forLoop(stmt)
	case *ast.While:
		a.condition(stmt.Condition)
		a.block(stmt.Body)
	case *ast.DoWhile:
		a.block(stmt.Body)
		a.condition(stmt.Condition)
	case *ast.DoUntil:
		a.block(stmt.Body)
		a.condition(stmt.Condition)
	case *ast.Block:
		a.block(stmt.Statements)
	case *ast.SelectCase:
		a.selectCase(stmt)
	case *ast.Return:
		a.returnStmt(stmt)
	case *ast.Dim:
		a.dim(stmt)
	case *ast.TypeDef:
		a.typeDef(stmt)
	case *ast.CallStatement:
		a.call(stmt.Call, false)
	default:
		panic(fmt.Sprintf("unhandled statement %T", s))
	}
}

// resolveType checks that a written type exists. Variables, parameters,
// fields and array elements may not be void.
func (a *Analyzer) resolveType(ref ast.TypeRef, node ast.Node, allowVoid bool) symbols.Symbol {
	if !a.scope.IsType(ref.Name) {
		panic(a.errorAt(node, "type '%s' not defined", ref.Name))
	}
	if !allowVoid && symbols.TypeName(ref.Name) == symbols.Void {
		panic(a.errorAt(node, "'void' is not a valid type here"))
	}
	return symbols.Symbol{Type: symbols.TypeName(ref.Name), Pointer: ref.Pointer}
}

func (a *Analyzer) procDef(n *ast.ProcDef) {
	if _, exists := a.scope.LookupGlobal(n.Name); exists {
		panic(a.errorAt(n, "'%s' already declared", n.Name))
	}
	if err := a.scope.Enter(n.Name); err != nil {
		panic(a.errorAt(n, "%s", err))
	}

	var params []symbols.Symbol
	for i := range n.Params {
		param := &n.Params[i]
		sym := a.resolveType(param.Type, param, false)
		if err := a.scope.Declare(param.Name, sym); err != nil {
			panic(errors.Static(param.Pos, "%s", err))
		}
		params = append(params, sym)
	}
	ret := a.resolveType(n.Returns, n, true)

	// registered before the body so the procedure can call itself
	if err := a.scope.DeclareGlobal(n.Name, symbols.Procedure(params, ret.Type, ret.Pointer)); err != nil {
		panic(a.errorAt(n, "%s", err))
	}

	a.block(n.Body)
	a.scope.Leave()
}

func (a *Analyzer) let(n *ast.Let) {
	target := a.resolveType(n.Type, n, false)
	value := a.valueFor(n.Value, target)
	a.checkAssignable(n, target, value, "declaration")

	if err := a.scope.Declare(n.Name, target); err != nil {
		panic(a.errorAt(n, "%s", err))
	}
}

func (a *Analyzer) assignment(n *ast.Assignment) {
	target := a.assignTarget(n.Target)
	value := a.valueFor(n.Value, target)
	a.checkAssignable(n, target, value, "assignment")
}

func (a *Analyzer) assignTarget(e ast.Expression) symbols.Symbol {
	switch target := e.(type) {
	case *ast.Identifier:
		sym, ok := a.scope.Lookup(target.Name)
		if !ok {
			panic(a.errorAt(target, "variable '%s' not defined", target.Name))
		}
		if sym.Callable {
			panic(a.errorAt(target, "cannot assign to procedure '%s'", target.Name))
		}
		if sym.Array {
			panic(a.errorAt(target, "array '%s' must be indexed", target.Name))
		}
		return sym
	case *ast.FieldAccess:
		return a.expression(target)
	}
	panic(a.errorAt(e, "invalid assignment target"))
}

func (a *Analyzer) arrayAssignment(n *ast.ArrayAssignment) {
	elem := a.array(n, n.Array)
	a.index(n.Index)

	value := a.valueFor(n.Value, elem)
	if value.Type != elem.Type {
		panic(a.errorAt(n, "array '%s' expects elements of type %s, got %s", n.Array, elem.Type, value.Type))
	}
	if value.Pointer != elem.Pointer {
		panic(a.errorAt(n, "pointer mismatch: cannot assign %s to array of %s", pointerness(value), plural(elem)))
	}
}

// array resolves name to a dim array and returns its element symbol.
func (a *Analyzer) array(node ast.Node, name string) symbols.Symbol {
	sym, ok := a.scope.Lookup(name)
	if !ok {
		panic(a.errorAt(node, "array '%s' not defined", name))
	}
	if !sym.Array {
		panic(a.errorAt(node, "'%s' is not an array", name))
	}
	return symbols.Symbol{Type: sym.Type, Pointer: sym.Pointer}
}

func (a *Analyzer) index(e ast.Expression) {
	sym := a.expression(e)
	if sym.Pointer || !symbols.IsIntegral(sym.Type) {
		panic(a.errorAt(e, "array index must be a non-floating-point numeric type, got %s", sym.TypeString()))
	}
}

func (a *Analyzer) condition(e ast.Expression) {
	sym := a.expression(e)
	if !symbols.SameType(sym, symbols.Value(symbols.Int)) {
		panic(a.errorAt(e, "condition expression must be an integer, got %s", sym.TypeString()))
	}
}

func (a *Analyzer) forLoop(n *ast.For) {
	v, ok := a.scope.Lookup(n.Var)
	if !ok {
		v = symbols.Value(symbols.Int)
		if err := a.scope.Declare(n.Var, v); err != nil {
			panic(a.errorAt(n, "%s", err))
		}
	}
	if v.Callable || v.Array || v.Pointer || !symbols.IsIntegral(v.Type) {
		panic(a.errorAt(n, "loop variable '%s' must be a non-floating-point numeric, got %s", n.Var, v))
	}

	for _, bound := range []ast.Expression{n.Start, n.End, n.Step} {
		if bound == nil {
			continue
		}
		sym := a.valueFor(bound, v)
		if sym.Pointer || !symbols.IsIntegral(sym.Type) {
			panic(a.errorAt(bound, "for loop bounds and step must be non-floating-point numerics, got %s", sym.TypeString()))
		}
	}

	a.block(n.Body)
}

func (a *Analyzer) selectCase(n *ast.SelectCase) {
	sym := a.expression(n.Value)
	for _, c := range n.Cases {
		value := a.valueFor(c.Value, sym)
		if !symbols.SameType(value, sym) {
			panic(a.errorAt(c.Value, "case value type %s does not match select expression type %s", value.TypeString(), sym.TypeString()))
		}
		a.block(c.Body)
	}
	a.block(n.Default)
}

func (a *Analyzer) returnStmt(n *ast.Return) {
	name, ok := a.scope.Procedure()
	if !ok {
		panic(a.errorAt(n, "return outside of a procedure"))
	}
	proc, _ := a.scope.LookupGlobal(name)

	want := proc.Returned()
	if want.Type == symbols.Void && !want.Pointer {
		panic(a.errorAt(n, "procedure '%s' returns void and cannot return a value", name))
	}
	value := a.valueFor(n.Value, want)
	a.checkAssignable(n, want, value, "return")
}

func (a *Analyzer) dim(n *ast.Dim) {
	if a.scope.Kind() == symbols.Local {
		panic(a.errorAt(n, "arrays can only be declared at global scope"))
	}
	if _, exists := a.scope.LookupGlobal(n.Name); exists {
		panic(a.errorAt(n, "array '%s' already defined", n.Name))
	}

	size := a.expression(n.Size)
	if size.Pointer || !symbols.IsIntegral(size.Type) {
		panic(a.errorAt(n.Size, "array size must be a non-floating-point numeric type, got %s", size.TypeString()))
	}
	if num, negative, ok := literalOf(n.Size); ok && (negative || isZero(num.Text)) {
		panic(a.errorAt(n.Size, "array size must be positive"))
	}

	elem := a.resolveType(n.Type, n, false)
	elem.Array = true
	if err := a.scope.DeclareGlobal(n.Name, elem); err != nil {
		panic(a.errorAt(n, "%s", err))
	}
}

func (a *Analyzer) typeDef(n *ast.TypeDef) {
	var fields []symbols.Field
	for i := range n.Fields {
		f := &n.Fields[i]
		sym := a.resolveType(f.Type, f, false)
		if f.Default != nil {
			value := a.valueFor(f.Default, sym)
			a.checkAssignable(f.Default, sym, value, "field default")
			sym.Default = f.Default
		}
		fields = append(fields, symbols.Field{Name: f.Name, Symbol: sym})
	}

	if _, err := a.scope.Types.Define(n.Name, fields); err != nil {
		panic(a.errorAt(n, "%s", err))
	}
}

// checkAssignable reports a type mismatch before a pointer mismatch so the
// two get distinct messages.
func (a *Analyzer) checkAssignable(node ast.Node, target, value symbols.Symbol, context string) {
	if !symbols.Compatible(target, value) {
		panic(a.errorAt(node, "type mismatch in %s: cannot assign '%s' to '%s'", context, value.TypeString(), target.TypeString()))
	}
	if target.Pointer != value.Pointer {
		panic(a.errorAt(node, "pointer mismatch in %s: cannot assign %s to %s", context, pointerness(value), pointerness(target)))
	}
}

func pointerness(s symbols.Symbol) string {
	if s.Pointer {
		return "a pointer"
	}
	return "a non-pointer"
}

func plural(s symbols.Symbol) string {
	if s.Pointer {
		return "pointers"
	}
	return "non-pointers"
}
