package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
)

// DefineImportTypes resolves each of a module's `import` declarations
// against modules already registered on the shared State (module
// discovery itself is an external collaborator, §1) and projects the
// imported names into this module's globals: a selective import
// (`import foo (Bar, baz)`) binds only the named symbols; a whole-module
// import binds the target module's own type under its path's final
// segment.
func DefineImportTypes(mod *tir.TirModule, state *tir.State) {
	c := &Ctx{State: state, Module: mod}
	for _, imp := range mod.File.Imports {
		target, ok := state.LookupModule(imp.Path)
		if !ok {
			c.emitError(diagnostics.KindUndefinedConstant, imp.Pos,
				fmt.Sprintf("cannot resolve import %q", imp.Path))
			continue
		}

		resolved := &tir.ImportedModule{Path: imp.Path, Module: target, Symbols: imp.Symbols}
		mod.Imports = append(mod.Imports, resolved)

		if len(imp.Symbols) == 0 {
			name := moduleBindingName(imp.Path)
			if !mod.Globals.Contains(name) {
				mod.Globals.Define(name, target.ModuleType, false, symbols.KindConstant)
			}
			continue
		}

		for _, symName := range imp.Symbols {
			sym, ok := target.Globals.Lookup(symName)
			if !ok {
				c.emitError(diagnostics.KindUndefinedConstant, imp.Pos,
					fmt.Sprintf("module %q does not export %q", imp.Path, symName))
				continue
			}
			if !mod.Globals.Contains(symName) {
				mod.Globals.Define(symName, sym.Type, sym.Mutable, sym.Kind)
			}
		}
	}
}

func moduleBindingName(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			last = path[i+1:]
			break
		}
	}
	return last
}
