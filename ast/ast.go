// Package ast holds the syntax tree produced by the parser. The Statement and
// Expression sum types and their marker methods are generated from nodes.sum.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.sum ../ast/nodes_gen.go ast"

import (
	"github.com/RednibCoding/FlatBasic/types"
)

type Node interface {
	Position() types.Position
}

// TypeRef is a type written in source, optionally prefixed by ptr.
type TypeRef struct {
	Name    string
	Pointer bool
	Pos     types.Position
}

func (t TypeRef) String() string {
	if t.Pointer {
		return "ptr " + t.Name
	}
	return t.Name
}

type Program struct {
	Statements []Statement
	Pos        types.Position
}

type Param struct {
	Name string
	Type TypeRef
	Pos  types.Position
}

type ProcDef struct {
	Name    string
	Params  []Param
	Returns TypeRef
	Body    []Statement
	Pos     types.Position
}

type Let struct {
	Name  string
	Type  TypeRef
	Value Expression
	Pos   types.Position
}

// Assignment stores into a variable or a field chain. Target is an
// *Identifier or a *FieldAccess.
type Assignment struct {
	Target Expression
	Value  Expression
	Pos    types.Position
}

type ArrayAssignment struct {
	Array string
	Index Expression
	Value Expression
	Pos   types.Position
}

type If struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
	Pos       types.Position
}

type For struct {
	Var   string
	Start Expression
	End   Expression
	// Step is nil when the loop has no step clause.
	Step Expression
	Body []Statement
	Pos  types.Position
}

type While struct {
	Condition Expression
	Body      []Statement
	Pos       types.Position
}

type DoWhile struct {
	Body      []Statement
	Condition Expression
	Pos       types.Position
}

type DoUntil struct {
	Body      []Statement
	Condition Expression
	Pos       types.Position
}

// Block is the body of a do ... loop without a condition.
type Block struct {
	Statements []Statement
	Pos        types.Position
}

type Case struct {
	Value Expression
	Body  []Statement
	Pos   types.Position
}

type SelectCase struct {
	Value   Expression
	Cases   []Case
	Default []Statement
	Pos     types.Position
}

type Return struct {
	Value Expression
	Pos   types.Position
}

type Dim struct {
	Name string
	Size Expression
	Type TypeRef
	Pos  types.Position
}

type FieldDecl struct {
	Name string
	Type TypeRef
	// Default is nil when the field has no initializer.
	Default Expression
	Pos     types.Position
}

type TypeDef struct {
	Name   string
	Fields []FieldDecl
	Pos    types.Position
}

type CallStatement struct {
	Call *Call
	Pos  types.Position
}

type Identifier struct {
	Name string
	Pos  types.Position
}

type Number struct {
	Text    string
	IsFloat bool
	Pos     types.Position
}

type String struct {
	Value string
	Pos   types.Position
}

type Unary struct {
	Op      string
	Operand Expression
	Pos     types.Position
}

type Binary struct {
	Left  Expression
	Op    string
	Right Expression
	Pos   types.Position
}

type Call struct {
	Name      string
	Arguments []Expression
	Pos       types.Position
}

// Index reads one element of a dim array.
type Index struct {
	Array string
	Index Expression
	Pos   types.Position
}

// FieldAccess is one link of a .field chain; a.b.c nests as ((a.b).c).
type FieldAccess struct {
	Of    Expression
	Field string
	Pos   types.Position
}

type NewInstance struct {
	Type TypeRef
	Pos  types.Position
}

func (n *Program) Position() types.Position         { return n.Pos }
func (n *Param) Position() types.Position           { return n.Pos }
func (n *FieldDecl) Position() types.Position       { return n.Pos }
func (n *ProcDef) Position() types.Position         { return n.Pos }
func (n *Let) Position() types.Position             { return n.Pos }
func (n *Assignment) Position() types.Position      { return n.Pos }
func (n *ArrayAssignment) Position() types.Position { return n.Pos }
func (n *If) Position() types.Position              { return n.Pos }
func (n *For) Position() types.Position             { return n.Pos }
func (n *While) Position() types.Position           { return n.Pos }
func (n *DoWhile) Position() types.Position         { return n.Pos }
func (n *DoUntil) Position() types.Position         { return n.Pos }
func (n *Block) Position() types.Position           { return n.Pos }
func (n *SelectCase) Position() types.Position      { return n.Pos }
func (n *Return) Position() types.Position          { return n.Pos }
func (n *Dim) Position() types.Position             { return n.Pos }
func (n *TypeDef) Position() types.Position         { return n.Pos }
func (n *CallStatement) Position() types.Position   { return n.Pos }
func (n *Identifier) Position() types.Position      { return n.Pos }
func (n *Number) Position() types.Position          { return n.Pos }
func (n *String) Position() types.Position          { return n.Pos }
func (n *Unary) Position() types.Position           { return n.Pos }
func (n *Binary) Position() types.Position          { return n.Pos }
func (n *Call) Position() types.Position            { return n.Pos }
func (n *Index) Position() types.Position           { return n.Pos }
func (n *FieldAccess) Position() types.Position     { return n.Pos }
func (n *NewInstance) Position() types.Position     { return n.Pos }
