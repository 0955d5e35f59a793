package pass

import (
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// DefineThisModuleType bootstraps a module's own type: an Object used as
// the module's prototype (its attributes/methods are the module's
// top-level definitions), a Block type for the module body, and the
// module's own globals table with the configured MODULE_GLOBAL entry
// bound to that Object (§6.3, glossary "Module type").
func DefineThisModuleType(mod *tir.TirModule, state *tir.State) {
	mod.ModuleType = types.NewObject(mod.Path)
	mod.ModuleType.Prototype = state.TypeDb.TopLevel

	mod.Body = types.NewBlock(types.BlockKindMethod)
	mod.Body.ReturnType = types.VoidType

	mod.Globals = symbols.NewSymbolTable(nil)
	mod.Globals.Define(state.Config.ModuleGlobal, mod.ModuleType, false, symbols.KindGlobal)
}
