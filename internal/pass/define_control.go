package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func defineReturn(c *Ctx, scope symbols.TypeScope, n *ast.Return) types.Type {
	if scope.EnclosingMethod == nil {
		if n.Value != nil {
			DefineType(c, scope, n.Value)
		}
		return c.emitError(diagnostics.KindInvalidContext, n.Pos, "return used outside a method body")
	}

	var valType types.Type
	if n.Value == nil {
		valType = types.VoidType
	} else {
		valType = DefineType(c, scope, n.Value)
	}

	if want := scope.EnclosingMethod.ReturnType; want != nil {
		if !types.Compatible(valType, want, scope.SelfType) {
			c.emitError(diagnostics.KindTypeMismatch, n.Pos,
				fmt.Sprintf("return: expected %s, got %s", want.String(), valType.String()))
		}
	}
	return types.VoidType
}

func defineThrow(c *Ctx, scope symbols.TypeScope, n *ast.Throw) types.Type {
	valType := DefineType(c, scope, n.Value)

	switch {
	case scope.EnclosingClosureThrow != nil:
		scope.EnclosingClosureThrow.Infer(valType)
	case scope.EnclosingMethod != nil && scope.EnclosingMethod.ThrowType != nil:
		if !types.Compatible(valType, scope.EnclosingMethod.ThrowType, scope.SelfType) {
			c.emitError(diagnostics.KindTypeMismatch, n.Pos,
				fmt.Sprintf("throw: expected %s, got %s", scope.EnclosingMethod.ThrowType.String(), valType.String()))
		}
	case scope.EnclosingMethod != nil:
		c.emitError(diagnostics.KindInvalidContext, n.Pos, "throw used in a method that declares no throw type")
	default:
		c.emitError(diagnostics.KindInvalidContext, n.Pos, "throw used outside a method or closure body")
	}
	return types.VoidType
}

// defineTry handles `try e`, `try! e` and `try e else (err) { body }`
// (§4.5). The throw type used for the else-binding and the useless-try
// warning is read off e's resolved method, when e is a method call.
func defineTry(c *Ctx, scope symbols.TypeScope, n *ast.Try) types.Type {
	valType := DefineType(c, scope, n.Value)

	var throwType types.Type
	if call, ok := n.Value.(*ast.Call); ok {
		if m, ok := call.ResolvedMethod.(*types.Block); ok {
			throwType = m.ThrowType
		}
	}
	if throwType == nil {
		c.emitWarning(diagnostics.KindUselessTry, n.Pos, "try used on an expression that cannot throw")
	}

	if n.HasElse {
		elseScope := scope
		elseScope.Locals = locals(n.ElseScope)
		errType := throwType
		if errType == nil {
			errType = types.DynamicType
		}
		if elseScope.Locals != nil {
			sym, _ := elseScope.Locals.Define(n.ErrName, errType, false, symbols.KindAny)
			n.ErrorSymbol = sym
		}
		elseType := typeStatements(c, elseScope, n.ElseBody)
		n.ElseType = elseType

		// An else-branch typed nil lifts the try-value to Optional(T)
		// rather than requiring T and nil to be directly compatible
		// (§4.5): `try throws() else nil` reads as "T, or nothing".
		if elseType == c.State.TypeDb.Nil {
			if valType == c.State.TypeDb.Nil {
				return valType
			}
			return types.NewOptional(valType)
		}

		if types.Compatible(elseType, valType, scope.SelfType) {
			return valType
		}
		if types.Compatible(valType, elseType, scope.SelfType) {
			return elseType
		}
		return c.emitError(diagnostics.KindTypeMismatch, n.Pos,
			fmt.Sprintf("try/else: %s and %s are not compatible", valType.String(), elseType.String()))
	}

	if !n.Bang && throwType != nil {
		switch {
		case scope.EnclosingClosureThrow != nil:
			scope.EnclosingClosureThrow.Infer(throwType)
		case scope.EnclosingMethod != nil && scope.EnclosingMethod.ThrowType != nil:
			if !types.Compatible(throwType, scope.EnclosingMethod.ThrowType, scope.SelfType) {
				c.emitError(diagnostics.KindTypeMismatch, n.Pos,
					fmt.Sprintf("try: expected enclosing throw type %s, got %s", scope.EnclosingMethod.ThrowType.String(), throwType.String()))
			}
		case scope.EnclosingMethod != nil:
			c.emitError(diagnostics.KindInvalidContext, n.Pos,
				"try without else requires the enclosing method to declare a throw type")
		}
	}

	return valType
}
