package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/pass"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func runSignaturePasses(t *testing.T, file *ast.File) (*tir.TirModule, *tir.State) {
	t.Helper()
	cfg := config.Default()
	state := tir.NewState(cfg)
	mod := tir.NewTirModule(file.ModulePath, file)
	state.RegisterModule(mod)
	pass.SetupSymbolTables(file, nil)
	pass.DefineThisModuleType(mod, state)
	pass.InsertImplicitImports(mod, state)
	pass.DefineTypeSignatures(mod, state)
	return mod, state
}

func TestDefineTypeSignaturesAllocatesObjectAndMethod(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{
				Name: "Greeter",
				Body: []ast.Node{
					&ast.MethodDef{
						Name:       "greet",
						ReturnType: &ast.ConstantRef{Name: "String"},
					},
				},
			},
		},
	}

	mod, _ := runSignaturePasses(t, file)

	sym, ok := mod.Globals.Lookup("Greeter")
	require.True(t, ok)
	obj, ok := sym.Type.(*types.Object)
	require.True(t, ok)

	method, ok := obj.MethodTable["greet"]
	require.True(t, ok)
	stringSym, ok := mod.Globals.Lookup("String")
	require.True(t, ok)
	assert.Same(t, stringSym.Type, method.ReturnType)
}

func TestDefineTypeSignaturesOmittedReturnTypeLeftNilForInference(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{
				Name: "Box",
				Body: []ast.Node{
					&ast.MethodDef{
						Name: "value",
						Body: []ast.Node{&ast.IntegerLit{Value: 1}},
					},
				},
			},
		},
	}

	mod, _ := runSignaturePasses(t, file)

	sym, _ := mod.Globals.Lookup("Box")
	obj := sym.Type.(*types.Object)
	method := obj.MethodTable["value"]
	assert.Nil(t, method.ReturnType, "a method with a body and no declared return type defers inference to DefineType")
}

func TestDefineTypeSignaturesRequiredMethodDefaultsToVoid(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.TraitDef{
				Name: "Greets",
				Body: []ast.Node{
					&ast.MethodDef{Name: "greet"}, // no body => required
				},
			},
		},
	}

	mod, _ := runSignaturePasses(t, file)

	sym, _ := mod.Globals.Lookup("Greets")
	tr := sym.Type.(*types.Trait)
	method := tr.MethodTable["greet"]
	require.NotNil(t, method)
	_, required := tr.RequiredMethods["greet"]
	assert.True(t, required)
	assert.Same(t, types.VoidType, method.ReturnType)
}

func TestDefineTypeSignaturesReservedNameReportsError(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{Name: "Self"},
		},
	}

	_, state := runSignaturePasses(t, file)

	errs := state.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.KindReservedConstant, errs[0].Kind)
}

func TestDefineTypeSignaturesDuplicateObjectReportsRedefined(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{Name: "Widget"},
			&ast.ObjectDef{Name: "Widget"},
		},
	}

	_, state := runSignaturePasses(t, file)

	errs := state.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.KindRedefined, errs[0].Kind)
}

func TestDefineTypeSignaturesReopenMergesIntoExistingObject(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{
				Name: "Box",
				Body: []ast.Node{
					&ast.MethodDef{Name: "value", ReturnType: &ast.ConstantRef{Name: "Integer"}},
				},
			},
			&ast.ObjectDef{
				Name:   "Box",
				Reopen: true,
				Body: []ast.Node{
					&ast.MethodDef{Name: "other", ReturnType: &ast.ConstantRef{Name: "Integer"}},
				},
			},
		},
	}

	mod, state := runSignaturePasses(t, file)

	assert.Empty(t, state.Diagnostics.Errors())
	sym, _ := mod.Globals.Lookup("Box")
	obj := sym.Type.(*types.Object)
	_, hasValue := obj.MethodTable["value"]
	_, hasOther := obj.MethodTable["other"]
	assert.True(t, hasValue)
	assert.True(t, hasOther)
}

func TestDefineTypeSignaturesReopenUndefinedReportsInvalidReopen(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{Name: "Ghost", Reopen: true},
		},
	}

	_, state := runSignaturePasses(t, file)

	errs := state.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.KindInvalidReopen, errs[0].Kind)
}
