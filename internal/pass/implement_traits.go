package pass

import (
	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// ImplementTraits walks every `impl Trait for Object` block, allocates
// any method it defines or overrides onto the object (so a default
// trait method can be overridden), and records the implementation
// (§4.1.1 rule 4, §3.3). It runs after DefineTypeSignatures (every
// Object/Trait/method signature already exists) and before DefineType
// (body type-checking can then rely on ImplementedTraits being final).
func ImplementTraits(mod *tir.TirModule, state *tir.State) {
	c := &Ctx{State: state, Module: mod}
	scope := c.rootScope()

	for _, stmt := range mod.File.Statements {
		implDef, ok := stmt.(*ast.ImplDef)
		if !ok {
			continue
		}

		forType := DefineType(c, scope, implDef.ForObject)
		obj, ok := forType.(*types.Object)
		if !ok {
			c.emitError(diagnostics.KindInvalidImplementation, implDef.Pos, "impl is not for an object")
			continue
		}

		trait, args := resolveTraitRef(c, scope, implDef.Trait)
		if trait == nil {
			c.emitError(diagnostics.KindInvalidImplementation, implDef.Pos, "impl target is not a trait")
			continue
		}

		implScope := scope
		implScope.SelfType = obj
		for _, s := range implDef.Body {
			md, ok := s.(*ast.MethodDef)
			if !ok {
				continue
			}
			if _, exists := obj.MethodTable[md.Name]; !exists {
				defineObjectMethodSignature(c, implScope, obj, md)
			}
		}

		if len(args) == 0 {
			for _, tp := range trait.TypeParameters {
				args = append(args, tp)
			}
		}
		if _, err := obj.ImplementTrait(trait, args); err != nil {
			c.emitError(diagnostics.KindInvalidImplementation, implDef.Pos, err.Error())
		}
	}
}

// resolveTraitRef resolves the Trait clause of an impl block to its
// canonical declaration pointer plus its explicit argument list, never
// to the fresh copy DefineType's generic-instantiation path would hand
// back for a `Trait!(Args)` reference -- ImplementedTraits is keyed by
// declaration identity (DESIGN.md open-question decision), so using an
// instantiated copy as the key would silently allow duplicate impls.
func resolveTraitRef(c *Ctx, scope symbols.TypeScope, e ast.Expr) (*types.Trait, []types.Type) {
	if ta, ok := e.(*ast.TypeArgsRef); ok {
		base := DefineType(c, scope, ta.Base)
		trait, ok := base.(*types.Trait)
		if !ok {
			return nil, nil
		}
		args := make([]types.Type, len(ta.TypeArg))
		for i, te := range ta.TypeArg {
			args[i] = DefineType(c, scope, te)
		}
		return trait, args
	}
	trait, ok := DefineType(c, scope, e).(*types.Trait)
	if !ok {
		return nil, nil
	}
	return trait, nil
}
