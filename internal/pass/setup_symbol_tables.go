package pass

import (
	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/symbols"
)

// SetupSymbolTables walks the AST and attaches an empty local symbol
// table to every scope-bearing node (module body, method body, closure,
// lambda, try-else body). No type work happens here (§4.4); it only
// establishes the chain of SymbolTables DefineType will populate and
// consult, each parented to its lexically enclosing table.
func SetupSymbolTables(file *ast.File, parent *symbols.SymbolTable) {
	file.Scope.Locals = symbols.NewSymbolTable(parent)
	for _, stmt := range file.Statements {
		setupNode(stmt, locals(file.Scope))
	}
}

func setupNode(n ast.Node, parent *symbols.SymbolTable) {
	switch v := n.(type) {
	case *ast.MethodDef:
		v.Scope.Locals = symbols.NewSymbolTable(parent)
		for _, stmt := range v.Body {
			setupNode(stmt, locals(v.Scope))
		}
	case *ast.ClosureLit:
		v.Scope.Locals = symbols.NewSymbolTable(parent)
		for _, stmt := range v.Body {
			setupNode(stmt, locals(v.Scope))
		}
	case *ast.ObjectDef:
		v.Scope.Locals = symbols.NewSymbolTable(parent)
		for _, stmt := range v.Body {
			setupNode(stmt, locals(v.Scope))
		}
	case *ast.TraitDef:
		v.Scope.Locals = symbols.NewSymbolTable(parent)
		for _, stmt := range v.Body {
			setupNode(stmt, locals(v.Scope))
		}
	case *ast.ImplDef:
		v.Scope.Locals = symbols.NewSymbolTable(parent)
		for _, stmt := range v.Body {
			setupNode(stmt, locals(v.Scope))
		}
	case *ast.Try:
		if v.HasElse {
			// The else-body is its own scope-bearing region (it binds
			// the error argument); model it as a nested table chained
			// to the enclosing one.
			v.ElseScope.Locals = symbols.NewSymbolTable(parent)
			for _, stmt := range v.ElseBody {
				setupNode(stmt, locals(v.ElseScope))
			}
		}
		setupExprChild(v.Value, parent)
	case *ast.LetDef:
		setupExprChild(v.Value, parent)
	case *ast.Assign:
		setupExprChild(v.Value, parent)
	case *ast.Return:
		setupExprChild(v.Value, parent)
	case *ast.Throw:
		setupExprChild(v.Value, parent)
	case *ast.Call:
		setupExprChild(v.Receiver, parent)
		for _, a := range v.Args {
			setupExprChild(a.Value, parent)
		}
	case *ast.ArrayLit:
		for _, e := range v.Elements {
			setupExprChild(e, parent)
		}
	case *ast.As:
		setupExprChild(v.Value, parent)
	case *ast.Deref:
		setupExprChild(v.Value, parent)
	case *ast.RawInstruction:
		for _, a := range v.Args {
			setupExprChild(a, parent)
		}
	}
}

func setupExprChild(e ast.Expr, parent *symbols.SymbolTable) {
	if e == nil {
		return
	}
	setupNode(e, parent)
}
