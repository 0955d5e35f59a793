package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/pass"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func TestInsertImplicitImportsBindsWellKnownPrototypes(t *testing.T) {
	cfg := config.Default()
	state := tir.NewState(cfg)
	mod := tir.NewTirModule("main", &ast.File{ModulePath: "main"})
	pass.DefineThisModuleType(mod, state)

	pass.InsertImplicitImports(mod, state)

	for _, name := range []string{"Integer", "Float", "String", "Boolean", "Nil", "Array", "Trait", "Block"} {
		sym, ok := mod.Globals.Lookup(name)
		require.True(t, ok, "expected %q bound implicitly", name)
		assert.Equal(t, symbols.KindConstant, sym.Kind)
	}

	intSym, _ := mod.Globals.Lookup("Integer")
	assert.Same(t, state.TypeDb.Integer, intSym.Type)
}

func TestInsertImplicitImportsDoesNotClobberExplicitDeclaration(t *testing.T) {
	cfg := config.Default()
	state := tir.NewState(cfg)
	mod := tir.NewTirModule("main", &ast.File{ModulePath: "main"})
	pass.DefineThisModuleType(mod, state)

	shadow := types.NewObject("Integer")
	_, err := mod.Globals.Define("Integer", shadow, false, symbols.KindConstant)
	require.NoError(t, err)

	pass.InsertImplicitImports(mod, state)

	sym, ok := mod.Globals.Lookup("Integer")
	require.True(t, ok)
	assert.Same(t, shadow, sym.Type, "explicit module definition must win over the implicit import")
}
