package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/pass"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func bootstrapModule(t *testing.T, state *tir.State, path string, file *ast.File) *tir.TirModule {
	t.Helper()
	mod := tir.NewTirModule(path, file)
	state.RegisterModule(mod)
	pass.DefineThisModuleType(mod, state)
	pass.InsertImplicitImports(mod, state)
	return mod
}

func TestDefineImportTypesWholeModuleBindsUnderLastSegment(t *testing.T) {
	cfg := config.Default()
	state := tir.NewState(cfg)

	dep := bootstrapModule(t, state, "std/widgets", &ast.File{ModulePath: "std/widgets"})

	main := bootstrapModule(t, state, "main", &ast.File{
		ModulePath: "main",
		Imports:    []*ast.Import{{Path: "std/widgets"}},
	})

	pass.DefineImportTypes(main, state)

	sym, ok := main.Globals.Lookup("widgets")
	require.True(t, ok, "expected a binding under the import path's last segment")
	assert.Same(t, dep.ModuleType, sym.Type)
	require.Len(t, main.Imports, 1)
	assert.Same(t, dep, main.Imports[0].Module)
}

func TestDefineImportTypesSelectiveImportBindsOnlyNamedSymbols(t *testing.T) {
	cfg := config.Default()
	state := tir.NewState(cfg)

	dep := bootstrapModule(t, state, "std/widgets", &ast.File{ModulePath: "std/widgets"})
	widget := types.NewObject("Widget")
	_, err := dep.Globals.Define("Widget", widget, false, symbols.KindConstant)
	require.NoError(t, err)

	main := bootstrapModule(t, state, "main", &ast.File{
		ModulePath: "main",
		Imports:    []*ast.Import{{Path: "std/widgets", Symbols: []string{"Widget"}}},
	})

	pass.DefineImportTypes(main, state)

	sym, ok := main.Globals.Lookup("Widget")
	require.True(t, ok)
	assert.Same(t, widget, sym.Type)

	_, bound := main.Globals.Lookup("widgets")
	assert.False(t, bound, "a selective import must not also bind the whole-module name")
}

func TestDefineImportTypesUnresolvedModuleReportsUndefinedConstant(t *testing.T) {
	cfg := config.Default()
	state := tir.NewState(cfg)

	main := bootstrapModule(t, state, "main", &ast.File{
		ModulePath: "main",
		Imports:    []*ast.Import{{Path: "nope/nothing"}},
	})

	pass.DefineImportTypes(main, state)

	errs := state.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.KindUndefinedConstant, errs[0].Kind)
}
