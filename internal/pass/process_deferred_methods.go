package pass

import "github.com/inko-lang/inko-sub002/internal/tir"

// ProcessDeferredMethods re-checks every method DefineType could not
// fully resolve on first visit (§4.6) -- in practice, a method that
// called a method whose omitted return type had not been inferred yet
// (one declared later in the module, or one that calls back into the
// caller). By the time this pass runs, every other
// method in the module has had its return type settled, so a second
// walk resolves cleanly.
func ProcessDeferredMethods(mod *tir.TirModule, state *tir.State) {
	c := &Ctx{State: state, Module: mod}
	pending := mod.DeferredMethods
	mod.DeferredMethods = nil
	for _, dm := range pending {
		scope := dm.Scope
		scope.SelfType = dm.Owner
		defineMethodDef(c, scope, dm.Method)
	}
}
