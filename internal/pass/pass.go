// Package pass implements the ordered pipeline of semantic-analysis
// passes (§2, §4.4–§4.6): SetupSymbolTables, DefineThisModuleType,
// InsertImplicitImports, DefineImportTypes, DefineTypeSignatures,
// ImplementTraits, DefineType and ProcessDeferredMethods. Each pass is a
// function of (module, &mut State) that annotates the module's AST in
// place, per the design notes (§9):
// no pass holds another pass's private mutable state, and diagnostics
// are emitted as values onto the shared State.
package pass

import (
	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// Ctx bundles the state every pass needs: the shared compilation State
// and the module currently being processed.
type Ctx struct {
	State  *tir.State
	Module *tir.TirModule

	// CurrentMethodNode is the MethodDef whose body DefineType is
	// currently walking, used only to attribute a deferred re-check (see
	// deferCurrentMethod) to the right AST node; nil at module top level.
	CurrentMethodNode *ast.MethodDef

	// deferred remembers which MethodDefs already have a pending
	// DeferredMethod entry, so a method calling several still-unresolved
	// siblings is only queued for ProcessDeferredMethods once.
	deferred map[*ast.MethodDef]bool
}

// deferCurrentMethod queues the method currently being checked for a
// second pass once every signature in the module has settled -- used
// when a call's resolved method return type is still nil because that
// method's body has not been checked yet (a call to a sibling declared
// later, or mutual recursion through inferred return types, §4.6).
func (c *Ctx) deferCurrentMethod(owner types.Type, scope symbols.TypeScope) {
	if c.CurrentMethodNode == nil {
		return
	}
	if c.deferred == nil {
		c.deferred = map[*ast.MethodDef]bool{}
	}
	if c.deferred[c.CurrentMethodNode] {
		return
	}
	c.deferred[c.CurrentMethodNode] = true
	c.Module.DeferredMethods = append(c.Module.DeferredMethods, &tir.DeferredMethod{
		Owner: owner, Method: c.CurrentMethodNode, Scope: scope,
	})
}

// emitError records a diagnostic and returns the Error poison type, the
// single helper the design notes (§9) call for in place of scattering
// `emit` calls followed by manual `return ErrorType` everywhere.
func (c *Ctx) emitError(kind diagnostics.Kind, pos ast.Pos, message string) types.Type {
	c.State.Diagnostics.Emit(kind, pos, message)
	return types.ErrorType
}

func (c *Ctx) emitWarning(kind diagnostics.Kind, pos ast.Pos, message string) {
	d := diagnostics.New(kind, pos, message)
	d.Severity = diagnostics.SeverityWarning
	c.State.Diagnostics.Add(d)
}

// rootScope builds the TypeScope for a module's top-level body: self_type
// is the module's own type, the enclosing block is the module body, and
// locals is the module File's own scope table (installed by
// SetupSymbolTables).
func (c *Ctx) rootScope() symbols.TypeScope {
	locals, _ := c.Module.File.Scope.Locals.(*symbols.SymbolTable)
	return symbols.TypeScope{
		SelfType:       c.Module.ModuleType,
		EnclosingBlock: c.Module.Body,
		ModuleGlobals:  c.Module.Globals,
		Locals:         locals,
	}
}

// childScope derives a nested scope reusing everything from parent
// except a fresh locals table, used when entering a nested lexical
// region that is not itself a full method/closure body.
func childScope(parent symbols.TypeScope, locals *symbols.SymbolTable) symbols.TypeScope {
	return parent.WithLocals(locals)
}

// locals extracts the concrete *symbols.SymbolTable from an ast.Scope,
// which stores it as interface{} to avoid ast depending on symbols.
func locals(s ast.Scope) *symbols.SymbolTable {
	t, _ := s.Locals.(*symbols.SymbolTable)
	return t
}
