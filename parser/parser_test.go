package parser

import (
	"strings"
	"testing"

	"github.com/RednibCoding/FlatBasic/ast"
	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/lexer"
	"github.com/RednibCoding/FlatBasic/types"
	"github.com/go-test/deep"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := NewParser(lexer.FromString(src, "test.fb")).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func parseError(t *testing.T, src, want string) error {
	t.Helper()
	prog, err := NewParser(lexer.FromString(src, "test.fb")).Parse()
	if err == nil {
		t.Fatalf("expected an error containing %q", want)
	}
	if prog != nil {
		t.Error("expected no program on failure")
	}
	if msg := errors.Message(err); !strings.Contains(msg, want) {
		t.Fatalf("expected an error containing %q, got %q", want, msg)
	}
	return err
}

func pos(line, col, length int) types.Position {
	return types.Position{Filename: "test.fb", Line: line, Column: col, Length: length}
}

func TestParseLet(t *testing.T) {
	got := parse(t, "let x: int = 1 + 2")
	want := &ast.Program{
		Pos: pos(1, 1, 3),
		Statements: []ast.Statement{
			&ast.Let{
				Name: "x",
				Type: ast.TypeRef{Name: "int", Pos: pos(1, 8, 3)},
				Value: &ast.Binary{
					Left:  &ast.Number{Text: "1", Pos: pos(1, 14, 1)},
					Op:    "+",
					Right: &ast.Number{Text: "2", Pos: pos(1, 18, 1)},
					Pos:   pos(1, 16, 1),
				},
				Pos: pos(1, 1, 3),
			},
		},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func letValue(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog := parse(t, src)
	let, ok := prog.Statements[len(prog.Statements)-1].(*ast.Let)
	if !ok {
		t.Fatalf("expected a let statement, got %T", prog.Statements[0])
	}
	return let.Value
}

func TestPrecedence(t *testing.T) {
	expr := letValue(t, "let x: int = 1 + 2 * 3 == 7 or 0 and 1")

	or, ok := expr.(*ast.Binary)
	if !ok || or.Op != "or" {
		t.Fatalf("expected 'or' at the top, got %#v", expr)
	}
	if and, ok := or.Right.(*ast.Binary); !ok || and.Op != "and" {
		t.Errorf("expected 'and' on the right of 'or', got %#v", or.Right)
	}
	eq, ok := or.Left.(*ast.Binary)
	if !ok || eq.Op != "==" {
		t.Fatalf("expected '==' on the left of 'or', got %#v", or.Left)
	}
	add, ok := eq.Left.(*ast.Binary)
	if !ok || add.Op != "+" {
		t.Fatalf("expected '+' under '==', got %#v", eq.Left)
	}
	if mul, ok := add.Right.(*ast.Binary); !ok || mul.Op != "*" {
		t.Errorf("expected '*' on the right of '+', got %#v", add.Right)
	}
}

func TestLeftAssociative(t *testing.T) {
	expr := letValue(t, "let x: int = 10 - 4 - 3")

	outer := expr.(*ast.Binary)
	inner, ok := outer.Left.(*ast.Binary)
	if !ok || inner.Op != "-" {
		t.Fatalf("expected (10 - 4) - 3, got %#v", expr)
	}
	if num := outer.Right.(*ast.Number); num.Text != "3" {
		t.Errorf("expected 3 on the right, got %s", num.Text)
	}
}

func TestUnaryAndParens(t *testing.T) {
	expr := letValue(t, "let x: int = -(1 + 2) * !0")

	mul := expr.(*ast.Binary)
	neg, ok := mul.Left.(*ast.Unary)
	if !ok || neg.Op != "-" {
		t.Fatalf("expected unary minus, got %#v", mul.Left)
	}
	if _, ok := neg.Operand.(*ast.Binary); !ok {
		t.Errorf("expected a parenthesized sum, got %#v", neg.Operand)
	}
	if not, ok := mul.Right.(*ast.Unary); !ok || not.Op != "!" {
		t.Errorf("expected '!', got %#v", mul.Right)
	}
}

func TestFieldChain(t *testing.T) {
	src := `
type Engine
  field speed: float = 10
tend
type Car
  field engine: Engine
tend
let c: Car = new Car
let s: float = c.engine.speed`
	expr := letValue(t, src)

	speed, ok := expr.(*ast.FieldAccess)
	if !ok || speed.Field != "speed" {
		t.Fatalf("expected .speed, got %#v", expr)
	}
	engine, ok := speed.Of.(*ast.FieldAccess)
	if !ok || engine.Field != "engine" {
		t.Fatalf("expected .engine, got %#v", speed.Of)
	}
	if id, ok := engine.Of.(*ast.Identifier); !ok || id.Name != "c" {
		t.Errorf("expected c at the root, got %#v", engine.Of)
	}
}

func TestIdentStatements(t *testing.T) {
	src := `
dim arr[10]: int
type P
  field x: int
tend
let p: P = new P
proc f(): void
pend
f()
arr[1] = 2
p.x = 3
let y: int = 0
y = 4`
	prog := parse(t, src)

	var kinds []string
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.Dim:
			kinds = append(kinds, "dim")
		case *ast.TypeDef:
			kinds = append(kinds, "type")
		case *ast.Let:
			kinds = append(kinds, "let")
		case *ast.ProcDef:
			kinds = append(kinds, "proc")
		case *ast.CallStatement:
			kinds = append(kinds, "call")
		case *ast.ArrayAssignment:
			kinds = append(kinds, "array assignment")
		case *ast.Assignment:
			if _, ok := s.Target.(*ast.FieldAccess); ok {
				kinds = append(kinds, "field assignment")
			} else {
				kinds = append(kinds, "assignment")
			}
		default:
			kinds = append(kinds, "other")
		}
	}

	want := []string{"dim", "type", "let", "proc", "call", "array assignment", "field assignment", "let", "assignment"}
	if diff := deep.Equal(kinds, want); diff != nil {
		t.Error(diff)
	}
}

func TestControlFlow(t *testing.T) {
	src := `
let x: int = 0
if x < 1 then
  x = 1
else
  x = 2
endif
for i = 1 to 10 step 2
  x = x + i
next
while x > 0
  x = x - 1
wend
do
  x = x + 1
loop until x == 5
do
  x = x - 1
loop while x > 0
do
  x = 0
loop
select case x
case 1: x = 2
case 2: x = 3
  x = 4
else: x = 0
end select`
	prog := parse(t, src)
	stmts := prog.Statements

	ifStmt := stmts[1].(*ast.If)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Errorf("unexpected if branches: %#v", ifStmt)
	}
	forStmt := stmts[2].(*ast.For)
	if forStmt.Var != "i" || forStmt.Step == nil || len(forStmt.Body) != 1 {
		t.Errorf("unexpected for loop: %#v", forStmt)
	}
	if _, ok := stmts[3].(*ast.While); !ok {
		t.Errorf("expected while, got %T", stmts[3])
	}
	if _, ok := stmts[4].(*ast.DoUntil); !ok {
		t.Errorf("expected do until, got %T", stmts[4])
	}
	if _, ok := stmts[5].(*ast.DoWhile); !ok {
		t.Errorf("expected do while, got %T", stmts[5])
	}
	if _, ok := stmts[6].(*ast.Block); !ok {
		t.Errorf("expected an endless do loop to become a block, got %T", stmts[6])
	}

	sel := stmts[7].(*ast.SelectCase)
	if len(sel.Cases) != 2 || len(sel.Cases[1].Body) != 2 || len(sel.Default) != 1 {
		t.Errorf("unexpected select: %#v", sel)
	}
}

func TestForDeclaresLoopVariable(t *testing.T) {
	p := NewParser(lexer.FromString("for i = 1 to 3\nnext", "test.fb"))
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	sym, ok := p.Symbols().Lookup("i")
	if !ok || sym.Type != "int" {
		t.Errorf("expected i to be declared as int, got %v %v", sym, ok)
	}
}

func TestProcParams(t *testing.T) {
	prog := parse(t, "proc add(a: int, b: ptr double): ptr int\n  return a\npend")
	proc := prog.Statements[0].(*ast.ProcDef)

	want := []ast.Param{
		{Name: "a", Type: ast.TypeRef{Name: "int", Pos: pos(1, 13, 3)}, Pos: pos(1, 10, 1)},
		{Name: "b", Type: ast.TypeRef{Name: "double", Pointer: true, Pos: pos(1, 21, 3)}, Pos: pos(1, 18, 1)},
	}
	if diff := deep.Equal(proc.Params, want); diff != nil {
		t.Error(diff)
	}
	if proc.Returns.String() != "ptr int" {
		t.Errorf("expected ptr int, got %s", proc.Returns)
	}
	if len(proc.Body) != 1 {
		t.Errorf("expected one statement in the body, got %d", len(proc.Body))
	}
}

func TestScopes(t *testing.T) {
	// the same parameter name in different procedures
	parse(t, "proc f(a: int): void\npend\nproc g(a: int): void\npend")
	// a local may shadow a global
	parse(t, "let a: int = 1\nproc f(): void\n  let a: double = 2.0\npend")

	parseError(t, "proc f(a: int): void\n  let a: int = 1\npend", "variable 'a' already declared in this scope")
	parseError(t, "let a: int = 1\nlet a: int = 2", "variable 'a' already declared in this scope")
	parseError(t, "proc f(): void\n  proc g(): void\n  pend\npend", "cannot be declared inside procedure 'f'")
	parseError(t, "proc f(): void\n  dim a[3]: int\npend", "arrays can only be declared at global scope")
}

func TestTypeErrors(t *testing.T) {
	err := parseError(t, "let x: Foo = 1", "expected a valid type for variable 'x', got 'Foo'")
	if p, _ := errors.Location(err); p.Line != 1 || p.Column != 8 {
		t.Errorf("expected the error at 1:8, got %v", p)
	}

	// a type is only usable after its definition
	parseError(t, "let c: Car = 1\ntype Car\ntend", "expected a valid type")
	parseError(t, "type Car\ntend\ntype Car\ntend", "type 'Car' already defined")
	parseError(t, "type Car\n  field a: int\n  field a: int\ntend", "field 'a' specified more than once in type 'Car'")
}

func TestSyntaxErrors(t *testing.T) {
	parseError(t, "5", "unexpected statement '5'")
	parseError(t, "let x int = 1", "expected ':', got 'int'")
	parseError(t, "if 1 then\nx = 1\nnext", "unexpected statement 'next'")
	parseError(t, "let x: int = (1 + 2", "expected ')'")
}

func TestKeywordAsName(t *testing.T) {
	err := parseError(t, "let next: int = 1", "keyword 'next' cannot be used as a variable name")
	if p, _ := errors.Location(err); p.Line != 1 || p.Column != 5 {
		t.Errorf("expected the error at 1:5, got %v", p)
	}
	parseError(t, "proc f(to: int): void\npend", "keyword 'to' cannot be used as a parameter name")
	parseError(t, "type Car\n  field loop: int\ntend", "keyword 'loop' cannot be used as a field name")
}

func TestIncomplete(t *testing.T) {
	for _, src := range []string{
		"proc f(): int\n  return 1",
		"if 1 then",
		"let x: int =",
		"type Car\n  field a: int",
	} {
		_, err := NewParser(lexer.FromString(src, "test.fb")).Parse()
		if err == nil {
			t.Errorf("%q: expected an error", src)
			continue
		}
		if !errors.IsIncomplete(err) {
			t.Errorf("%q: expected an incomplete input error, got %v", src, err)
		}
	}

	_, err := NewParser(lexer.FromString("let x: Foo = 1", "test.fb")).Parse()
	if errors.IsIncomplete(err) {
		t.Error("an unknown type is not incomplete input")
	}
}

func TestLexicalErrorPropagates(t *testing.T) {
	_, err := NewParser(lexer.FromString("let x: int = 1 @", "test.fb")).Parse()
	if !errors.IsLexical(err) {
		t.Errorf("expected a lexical error, got %v", err)
	}
}
