package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// defineLetDef handles the four `let` forms (§4.5): a plain/mutable
// local, `let @x` (an attribute, only inside the constructor method),
// and `let X` (a module-global constant).
func defineLetDef(c *Ctx, scope symbols.TypeScope, n *ast.LetDef) types.Type {
	valType := DefineType(c, scope, n.Value)
	declType := valType
	if n.Type != nil {
		declType = DefineType(c, scope, n.Type)
		if !types.Compatible(valType, declType, scope.SelfType) {
			c.emitError(diagnostics.KindTypeMismatch, n.Pos,
				fmt.Sprintf("let %s: expected %s, got %s", n.Name, declType.String(), valType.String()))
		}
	}

	switch {
	case n.IsAttribute:
		obj, ok := scope.SelfType.(*types.Object)
		if !ok {
			return c.emitError(diagnostics.KindInvalidContext, n.Pos,
				fmt.Sprintf("let @%s used outside an object body", n.Name))
		}
		if scope.MethodName != c.State.Config.InitMessage {
			return c.emitError(diagnostics.KindInvalidContext, n.Pos,
				fmt.Sprintf("let @%s may only define a new attribute inside %s", n.Name, c.State.Config.InitMessage))
		}
		if _, added := obj.DefineAttribute(n.Name, declType); !added {
			return c.emitError(diagnostics.KindRedefined, n.Pos,
				fmt.Sprintf("attribute %q is already defined on %s", n.Name, obj.Name))
		}
		return types.VoidType

	case n.IsConstant:
		if c.State.Config.IsReserved(n.Name) {
			return c.emitError(diagnostics.KindReservedConstant, n.Pos, fmt.Sprintf("%q is reserved", n.Name))
		}
		if scope.ModuleGlobals == nil {
			return c.emitError(diagnostics.KindInvalidContext, n.Pos, fmt.Sprintf("let %s used outside module scope", n.Name))
		}
		if _, err := scope.ModuleGlobals.Define(n.Name, declType, false, symbols.KindConstant); err != nil {
			return c.emitError(diagnostics.KindRedefined, n.Pos, fmt.Sprintf("%q is already defined", n.Name))
		}
		return types.VoidType

	default:
		if scope.Locals == nil {
			return c.emitError(diagnostics.KindInvalidContext, n.Pos, "let used outside any scope")
		}
		if _, err := scope.Locals.Define(n.Name, declType, n.Mutable, symbols.KindAny); err != nil {
			return c.emitError(diagnostics.KindRedefined, n.Pos, fmt.Sprintf("%q is already defined in this scope", n.Name))
		}
		return types.VoidType
	}
}

// defineAssign handles `x = v` and `@x = v` reassignment, checking
// mutability and value compatibility against the existing binding.
func defineAssign(c *Ctx, scope symbols.TypeScope, n *ast.Assign) types.Type {
	valType := DefineType(c, scope, n.Value)

	if n.IsAttribute {
		obj, ok := scope.SelfType.(*types.Object)
		if !ok {
			return c.emitError(diagnostics.KindInvalidContext, n.Pos,
				fmt.Sprintf("@%s = ... used outside an object body", n.Name))
		}
		attr, ok := obj.LookupAttribute(n.Name)
		if !ok {
			return c.emitError(diagnostics.KindUndefinedAttribute, n.Pos,
				fmt.Sprintf("@%s is not defined on %s", n.Name, obj.Name))
		}
		want := types.SubstituteSelf(attr.Type, scope.SelfType)
		if !types.Compatible(valType, want, scope.SelfType) {
			c.emitError(diagnostics.KindTypeMismatch, n.Pos,
				fmt.Sprintf("@%s: expected %s, got %s", n.Name, want.String(), valType.String()))
		}
		return types.VoidType
	}

	if scope.Locals == nil {
		return c.emitError(diagnostics.KindUndefinedIdentifier, n.Pos, fmt.Sprintf("%q is not defined", n.Name))
	}
	sym, ok := scope.Locals.Lookup(n.Name)
	if !ok {
		return c.emitError(diagnostics.KindUndefinedIdentifier, n.Pos, fmt.Sprintf("%q is not defined", n.Name))
	}
	if !sym.Mutable {
		return c.emitError(diagnostics.KindInvalidContext, n.Pos, fmt.Sprintf("%q is not mutable", n.Name))
	}
	if !types.Compatible(valType, sym.Type, scope.SelfType) {
		c.emitError(diagnostics.KindTypeMismatch, n.Pos,
			fmt.Sprintf("%s: expected %s, got %s", n.Name, sym.Type.String(), valType.String()))
	}
	return types.VoidType
}
