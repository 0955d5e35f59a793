// Package ast defines the fixed input contract this core consumes: the
// node kinds a parser (an external collaborator, out of scope per
// spec.md §1) produces, plus the fields the semantic passes attach to
// each node in place (resolved Type, resolved method, locals table, ...).
package ast

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/types"
)

// Pos is a single point in source.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a source range.
type Span struct {
	Start Pos
	End   Pos
}

// Node is the base interface every AST node satisfies.
type Node interface {
	Position() Pos
}

// Expr is any node that produces a value and carries a computed Type
// once DefineType has run.
type Expr interface {
	Node
	exprNode()
	// ResolvedType returns the type DefineType assigned to this node, or
	// nil before that pass visits it.
	ResolvedType() types.Type
	SetResolvedType(types.Type)
}

// typed is embedded by every concrete Expr to give it the ResolvedType
// storage + accessor pair, the way typedast.TypedExpr does in the
// teacher but folded directly onto the mutable AST node instead of a
// parallel tree, since here the AST *is* the TIR once typed (§6.2).
type typed struct {
	Type types.Type
}

func (t *typed) ResolvedType() types.Type     { return t.Type }
func (t *typed) SetResolvedType(ty types.Type) { t.Type = ty }

// Scope bundles the mutable symbol-table pointer every scope-bearing
// node (module body, method body, closure/lambda body, try-else body)
// gets from the SetupSymbolTables pass. The concrete type lives in
// internal/symbols; ast stores it as an opaque interface{} to avoid an
// import cycle (symbols never needs to know about ast node shapes).
type Scope struct {
	Locals interface{} // *symbols.SymbolTable
}

// File is a single parsed module: a module declaration, its imports and
// its top-level statements.
type File struct {
	Pos        Pos
	ModulePath string
	Imports    []*Import
	Statements []Node
	Scope      Scope
}

func (f *File) Position() Pos { return f.Pos }

// Import is a module-scoped import declaration.
type Import struct {
	Pos     Pos
	Path    string
	Symbols []string // selective import; empty means "the whole module" or implicit
}

func (i *Import) Position() Pos { return i.Pos }
