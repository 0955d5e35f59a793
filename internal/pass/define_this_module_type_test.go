package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/pass"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func TestDefineThisModuleTypeBootstrapsModuleObject(t *testing.T) {
	cfg := config.Default()
	state := tir.NewState(cfg)
	mod := tir.NewTirModule("main", &ast.File{ModulePath: "main"})

	pass.DefineThisModuleType(mod, state)

	require.NotNil(t, mod.ModuleType)
	assert.Equal(t, "main", mod.ModuleType.Name)
	assert.Same(t, state.TypeDb.TopLevel, mod.ModuleType.Prototype)

	require.NotNil(t, mod.Body)
	assert.Equal(t, types.BlockKindMethod, mod.Body.Kind)
	assert.Same(t, types.VoidType, mod.Body.ReturnType)

	sym, ok := mod.Globals.Lookup(cfg.ModuleGlobal)
	require.True(t, ok, "expected %q bound in module globals", cfg.ModuleGlobal)
	assert.Same(t, mod.ModuleType, sym.Type)
}
