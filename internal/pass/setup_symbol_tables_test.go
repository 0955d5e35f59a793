package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/pass"
	"github.com/inko-lang/inko-sub002/internal/symbols"
)

func TestSetupSymbolTablesInstallsModuleScope(t *testing.T) {
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{
			&ast.LetDef{Name: "x", Value: &ast.IntegerLit{Value: 1}},
		},
	}

	pass.SetupSymbolTables(file, nil)

	tbl, ok := file.Scope.Locals.(*symbols.SymbolTable)
	require.True(t, ok, "expected a *symbols.SymbolTable installed on the module scope")
	assert.Nil(t, tbl.Parent())
}

func TestSetupSymbolTablesChainsNestedScopes(t *testing.T) {
	method := &ast.MethodDef{
		Name: "greet",
		Body: []ast.Node{
			&ast.LetDef{Name: "y", Value: &ast.IntegerLit{Value: 2}},
		},
	}
	obj := &ast.ObjectDef{
		Name: "Greeter",
		Body: []ast.Node{method},
	}
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{obj},
	}

	pass.SetupSymbolTables(file, nil)

	fileTbl := file.Scope.Locals.(*symbols.SymbolTable)
	objTbl, ok := obj.Scope.Locals.(*symbols.SymbolTable)
	require.True(t, ok)
	assert.Same(t, fileTbl, objTbl.Parent())

	methodTbl, ok := method.Scope.Locals.(*symbols.SymbolTable)
	require.True(t, ok)
	assert.Same(t, objTbl, methodTbl.Parent())
}

func TestSetupSymbolTablesGivesTryElseItsOwnScope(t *testing.T) {
	tryExpr := &ast.Try{
		Value:   &ast.Identifier{Name: "risky"},
		HasElse: true,
		ElseBody: []ast.Node{
			&ast.LetDef{Name: "err", Value: &ast.IntegerLit{Value: 0}},
		},
	}
	file := &ast.File{
		ModulePath: "main",
		Statements: []ast.Node{tryExpr},
	}

	pass.SetupSymbolTables(file, nil)

	fileTbl := file.Scope.Locals.(*symbols.SymbolTable)
	elseTbl, ok := tryExpr.ElseScope.Locals.(*symbols.SymbolTable)
	require.True(t, ok, "expected the try-else body to get its own symbol table")
	assert.Same(t, fileTbl, elseTbl.Parent())
}
