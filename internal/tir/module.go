package tir

import (
	"github.com/google/uuid"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// TirModule owns a single module's module type, its body block type, its
// globals table, its resolved imports list and its source location
// (§3.4). It is created by the build driver (an external collaborator)
// and handed to the pass pipeline.
type TirModule struct {
	// ID is a per-module unique identifier, assigned by NewTirModule.
	ID uuid.UUID

	Path string
	File *ast.File

	// ModuleType is the Object used as this module's prototype: its
	// attributes and methods are the module's top-level definitions.
	ModuleType *types.Object

	// Body is the block type of the module's top-level statement
	// sequence (kind Method, by convention). The top-level scope has no
	// enclosing method, so `return` and `throw` there are rejected.
	Body *types.Block

	// Globals is the module's own global symbol table (constants,
	// object/trait declarations, and the ModuleGlobal entry itself).
	Globals *symbols.SymbolTable

	// Imports is the resolved list of modules this module imports,
	// populated by DefineImportTypes.
	Imports []*ImportedModule

	// Declared is every Object/Trait this module declares, in
	// declaration order — the "list of declared types" §6.2 promises
	// the backend.
	Declared []types.Type

	// DeferredMethods holds method bodies DefineType could not fully
	// resolve (forward references) for ProcessDeferredMethods to rewalk.
	DeferredMethods []*DeferredMethod
}

// ImportedModule is one resolved import: the path, the imported
// module's own type (used to resolve `A::B`-style imported-constant
// lookups), and the selective symbol list (empty = implicit whole-module
// import).
type ImportedModule struct {
	Path    string
	Module  *TirModule
	Symbols []string
}

// DeferredMethod is a method body DefineType could not fully resolve on
// first visit because it calls a method whose omitted return type had
// not been inferred yet (e.g. a sibling method declared later in the
// same object).
type DeferredMethod struct {
	Owner  types.Type // the Object/Trait the method belongs to
	Method *ast.MethodDef
	Scope  symbols.TypeScope
}

// NewTirModule creates an empty module for path; ModuleType, Body and
// Globals are attached later by DefineThisModuleType, so this
// constructor only allocates identity.
func NewTirModule(path string, file *ast.File) *TirModule {
	return &TirModule{
		ID:   uuid.New(),
		Path: path,
		File: file,
	}
}
