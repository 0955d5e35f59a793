package symbols

import "github.com/inko-lang/inko-sub002/internal/types"

// TypeScope bundles everything DefineType needs to resolve a name or
// check a construct's context (§4.2): the current self_type, the
// enclosing block type, the current module's global table, the current
// locals table, and (when inside a method body) the enclosing method --
// used both for `where`-introduced type parameters and for deciding
// whether `return`/`throw` is valid here.
type TypeScope struct {
	SelfType        types.Type
	EnclosingBlock  *types.Block
	ModuleGlobals   *SymbolTable
	Locals          *SymbolTable
	EnclosingMethod *types.Block // nil outside any method body

	// MethodName is the name of EnclosingMethod, kept alongside it since
	// Block itself carries no name -- used by the `let @x` constructor-only
	// check (§4.5).
	MethodName string

	// EnclosingClosureThrow, when non-nil, points at the throw-type slot
	// of the nearest enclosing closure/lambda; `throw e` (§4.5) infers
	// into *this*, never into a module-top-level or the enclosing
	// method's own throw type.
	EnclosingClosureThrow *ThrowSlot

	// MethodBounds holds the `where P: Trait...` clauses introduced by
	// EnclosingMethod, if any (parameter name -> required traits).
	MethodBounds map[string][]*types.Trait
}

// ThrowSlot is a mutable cell a closure/lambda's inferred throw type
// accumulates into as `try`-without-else and `throw` expressions are
// visited inside its body.
type ThrowSlot struct {
	Type types.Type
}

// Infer records the newly observed throw type t. A nil existing type is
// simply replaced; a non-nil one is left as-is, so the first observed
// throw type is the one the slot keeps.
func (s *ThrowSlot) Infer(t types.Type) {
	if s.Type == nil {
		s.Type = t
	}
}

// WithLocals returns a TypeScope identical to s but with Locals replaced
// by locals (any chaining to the current table is that table's own
// parent link) -- used when entering a nested block (if/try bodies, etc.
// that introduce their own bindings without being a full closure).
func (s TypeScope) WithLocals(locals *SymbolTable) TypeScope {
	s.Locals = locals
	return s
}

// EffectiveRequiredTraits resolves tp's required traits as seen from
// this scope, applying any `where` bound in MethodBounds.
func (s TypeScope) EffectiveRequiredTraits(tp *types.TypeParameter) []*types.Trait {
	return types.EffectiveRequiredTraits(tp, s.MethodBounds)
}
