package symbols

import (
	"fmt"
	"sort"
)

// ScopeKind says which mapping declarations currently go to. There is no
// block scoping: only the global scope and at most one procedure scope.
type ScopeKind int

const (
	Global ScopeKind = iota
	Local
)

func (k ScopeKind) String() string {
	if k == Local {
		return "local"
	}
	return "global"
}

type Table struct {
	kind   ScopeKind
	global map[string]Symbol
	// local is nil unless kind is Local.
	local map[string]Symbol
	// procedure names the procedure owning the local scope.
	procedure string

	Types *StructTable
}

func NewTable() *Table {
	return &Table{
		kind:   Global,
		global: make(map[string]Symbol),
		Types:  NewStructTable(),
	}
}

func (t *Table) Kind() ScopeKind {
	return t.kind
}

// Procedure returns the name of the procedure whose body is active.
func (t *Table) Procedure() (string, bool) {
	return t.procedure, t.kind == Local
}

// Enter opens a fresh local scope for the body of procedure name.
func (t *Table) Enter(name string) error {
	if t.kind == Local {
		return fmt.Errorf("procedure '%s' cannot be declared inside procedure '%s'", name, t.procedure)
	}
	t.kind = Local
	t.local = make(map[string]Symbol)
	t.procedure = name
	return nil
}

// Leave discards the local scope.
func (t *Table) Leave() {
	t.kind = Global
	t.local = nil
	t.procedure = ""
}

// Declare adds name to the active scope.
func (t *Table) Declare(name string, sym Symbol) error {
	if t.kind == Local {
		return declare(t.local, name, sym)
	}
	return declare(t.global, name, sym)
}

// DeclareGlobal adds name to the global scope whatever scope is active.
func (t *Table) DeclareGlobal(name string, sym Symbol) error {
	return declare(t.global, name, sym)
}

func declare(m map[string]Symbol, name string, sym Symbol) error {
	if _, ok := m[name]; ok {
		return fmt.Errorf("variable '%s' already declared in this scope", name)
	}
	m[name] = sym
	return nil
}

// Lookup resolves name in the local scope first, then the global one.
func (t *Table) Lookup(name string) (Symbol, bool) {
	if t.kind == Local {
		if sym, ok := t.local[name]; ok {
			return sym, true
		}
	}
	return t.LookupGlobal(name)
}

func (t *Table) LookupGlobal(name string) (Symbol, bool) {
	sym, ok := t.global[name]
	return sym, ok
}

// Globals returns the names declared globally, sorted.
func (t *Table) Globals() []string {
	names := make([]string, 0, len(t.global))
	for name := range t.global {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsType reports whether name can appear in a type position.
func (t *Table) IsType(name string) bool {
	return IsPrimitive(name) || t.Types.Has(name)
}
