// Package symbols implements the named-binding model (§3.3, §4.2): a
// Symbol carries a type, mutability and a kind tag; a SymbolTable is an
// ordered, insertion-stable map; SymbolTables chain to form lexical and
// prototype scopes.
package symbols

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/types"
)

// Kind tags what a Symbol names.
type Kind int

const (
	KindAny Kind = iota
	KindMethod
	KindAttribute
	KindConstant
	KindGlobal
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindAttribute:
		return "attribute"
	case KindConstant:
		return "constant"
	case KindGlobal:
		return "global"
	default:
		return "any"
	}
}

// Symbol is a named binding.
type Symbol struct {
	Name    string
	Type    types.Type
	Mutable bool
	Kind    Kind
}

// ErrRedefined is returned by Define when name already exists in this
// table (not a parent).
type ErrRedefined struct{ Name string }

func (e *ErrRedefined) Error() string { return fmt.Sprintf("%q is already defined in this scope", e.Name) }

// ErrUndefined is returned by Update when name does not exist.
type ErrUndefined struct{ Name string }

func (e *ErrUndefined) Error() string { return fmt.Sprintf("%q is not defined", e.Name) }

// SymbolTable is an ordered, insertion-stable name -> Symbol map with an
// optional parent for lexical/prototype chaining.
type SymbolTable struct {
	order  []string
	table  map[string]*Symbol
	parent *SymbolTable
}

// NewSymbolTable creates an empty table, optionally chained to parent.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{table: map[string]*Symbol{}, parent: parent}
}

// Define adds a new binding to THIS table (not checking parents).
// Returns ErrRedefined if name is already present here.
func (t *SymbolTable) Define(name string, ty types.Type, mutable bool, kind Kind) (*Symbol, error) {
	if _, exists := t.table[name]; exists {
		return nil, &ErrRedefined{Name: name}
	}
	sym := &Symbol{Name: name, Type: ty, Mutable: mutable, Kind: kind}
	t.table[name] = sym
	t.order = append(t.order, name)
	return sym, nil
}

// Contains reports whether name is defined directly in this table (not
// in parents).
func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.table[name]
	return ok
}

// Lookup returns the nearest symbol named name, searching this table
// then its parent chain. Returns nil, false if absent anywhere.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if sym, ok := cur.table[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Update mutates an existing binding's type in place,
// wherever in the chain it is defined. Returns ErrUndefined if absent.
func (t *SymbolTable) Update(name string, ty types.Type) error {
	for cur := t; cur != nil; cur = cur.parent {
		if sym, ok := cur.table[name]; ok {
			sym.Type = ty
			return nil
		}
	}
	return &ErrUndefined{Name: name}
}

// Names returns the names defined directly in this table, in insertion
// order (parents are not included).
func (t *SymbolTable) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Parent returns the enclosing table, or nil at the root.
func (t *SymbolTable) Parent() *SymbolTable {
	return t.parent
}
