package pass

import (
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// InsertImplicitImports installs the well-known stdlib prototypes
// (§1, §3.5) as module-global constants, as though every module
// implicitly imported them from a bootstrap module. A name already bound
// in the module's globals when this pass runs is left alone rather than
// overwritten. In the compiler pipeline this runs before
// DefineTypeSignatures, so an object or trait the module declares under
// one of these names is not bound yet here; its later definition
// collides with the implicit binding and is reported as Redefined.
func InsertImplicitImports(mod *tir.TirModule, state *tir.State) {
	db := state.TypeDb
	implicit := map[string]types.Type{
		"Integer":               db.Integer,
		"Float":                 db.Float,
		"String":                db.String,
		"Boolean":               db.Boolean,
		"Nil":                   db.Nil,
		state.Config.ArrayConst: db.Array,
		state.Config.TraitConst: db.TraitObj,
		"Block":                 db.Block,
	}
	for name, ty := range implicit {
		if mod.Globals.Contains(name) {
			continue
		}
		mod.Globals.Define(name, ty, false, symbols.KindConstant)
	}
}
