package symbols

import (
	"fmt"
	"sort"
)

type Field struct {
	Name   string
	Symbol Symbol
}

// Struct is a user defined type. Fields keep declaration order.
type Struct struct {
	Name   string
	Fields []Field
	index  map[string]int
}

func (s *Struct) Field(name string) (Symbol, bool) {
	i, ok := s.index[name]
	if !ok {
		return Symbol{}, false
	}
	return s.Fields[i].Symbol, true
}

type StructTable struct {
	structs map[string]*Struct
}

func NewStructTable() *StructTable {
	return &StructTable{structs: make(map[string]*Struct)}
}

// Define registers a struct. Structs cannot be redefined.
func (t *StructTable) Define(name string, fields []Field) (*Struct, error) {
	if _, ok := t.structs[name]; ok {
		return nil, fmt.Errorf("type '%s' already defined", name)
	}

	s := &Struct{Name: name, index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if _, ok := s.index[f.Name]; ok {
			return nil, fmt.Errorf("field '%s' specified more than once in type '%s'", f.Name, name)
		}
		s.index[f.Name] = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}

	t.structs[name] = s
	return s, nil
}

func (t *StructTable) Lookup(name string) (*Struct, bool) {
	s, ok := t.structs[name]
	return s, ok
}

func (t *StructTable) Has(name string) bool {
	_, ok := t.structs[name]
	return ok
}

func (t *StructTable) Names() []string {
	names := make([]string, 0, len(t.structs))
	for name := range t.structs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
