package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/compiler"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/tir"
)

func newState() *tir.State {
	return tir.NewState(config.Default())
}

// object Greeter {
//   def greet -> String { "hi" }
// }
// let g = Greeter.greet
func TestCompileSimpleMethodCallHasNoErrors(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{
				Name: "Greeter",
				Body: []ast.Node{
					&ast.MethodDef{
						Name:       "greet",
						ReturnType: &ast.ConstantRef{Name: "String"},
						Body: []ast.Node{
							&ast.StringLit{Value: "hi"},
						},
					},
				},
			},
			&ast.LetDef{
				Name: "g",
				Value: &ast.Call{
					Receiver: &ast.ConstantRef{Name: "Greeter"},
					Message:  "greet",
				},
			},
		},
	}

	state := newState()
	result := compiler.Compile("main", file, state)

	require.Empty(t, result.Diagnostics, "expected a clean compile")
	assert.False(t, result.HasErrors())
	assert.Contains(t, result.PhaseTimings, "DefineType")
}

// let x = undefined_name
func TestCompileUndefinedIdentifierReportsError(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.LetDef{
				Name:  "x",
				Value: &ast.Identifier{Name: "undefined_name"},
			},
		},
	}

	state := newState()
	result := compiler.Compile("main", file, state)

	require.True(t, result.HasErrors())
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diagnostics.KindUndefinedIdentifier, result.Diagnostics[0].Kind)
}

// trait Inspect { def inspect -> String }
// object Widget {}
// impl Inspect for Widget {} -- missing required method
func TestCompileMissingTraitMethodReportsInvalidImplementation(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.TraitDef{
				Name: "Inspect",
				Body: []ast.Node{
					&ast.MethodDef{
						Name:       "inspect",
						ReturnType: &ast.ConstantRef{Name: "String"},
					},
				},
			},
			&ast.ObjectDef{Name: "Widget"},
			&ast.ImplDef{
				Trait:     &ast.ConstantRef{Name: "Inspect"},
				ForObject: &ast.ConstantRef{Name: "Widget"},
			},
		},
	}

	state := newState()
	result := compiler.Compile("main", file, state)

	require.True(t, result.HasErrors())
	found := false
	for _, d := range result.Diagnostics {
		if d.Kind == diagnostics.KindInvalidImplementation {
			found = true
		}
	}
	assert.True(t, found, "expected an InvalidImplementation diagnostic")
}

// object Box { def value -> Integer { 1 } }
// object Box { def other -> Integer { 2 } } -- Reopen via the parser is
// modeled directly: ObjectDef.Reopen.
func TestCompileReopenMergesMethods(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{
				Name: "Box",
				Body: []ast.Node{
					&ast.MethodDef{
						Name:       "value",
						ReturnType: &ast.ConstantRef{Name: "Integer"},
						Body:       []ast.Node{&ast.IntegerLit{Value: 1}},
					},
				},
			},
			&ast.ObjectDef{
				Name:   "Box",
				Reopen: true,
				Body: []ast.Node{
					&ast.MethodDef{
						Name:       "other",
						ReturnType: &ast.ConstantRef{Name: "Integer"},
						Body:       []ast.Node{&ast.IntegerLit{Value: 2}},
					},
				},
			},
			&ast.LetDef{
				Name: "n",
				Value: &ast.Call{
					Receiver: &ast.ConstantRef{Name: "Box"},
					Message:  "other",
				},
			},
		},
	}

	state := newState()
	result := compiler.Compile("main", file, state)

	assert.False(t, result.HasErrors())
}

// A method calling a sibling declared after it, both with omitted return
// types, must still resolve via ProcessDeferredMethods.
func TestCompileForwardReturnTypeInferenceResolvesViaDeferredPass(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.ObjectDef{
				Name: "Loop",
				Body: []ast.Node{
					&ast.MethodDef{
						Name: "a",
						Body: []ast.Node{
							&ast.Call{Message: "b"},
						},
					},
					&ast.MethodDef{
						Name: "b",
						Body: []ast.Node{
							&ast.IntegerLit{Value: 1},
						},
					},
				},
			},
		},
	}

	state := newState()
	result := compiler.Compile("main", file, state)

	assert.False(t, result.HasErrors())
}
