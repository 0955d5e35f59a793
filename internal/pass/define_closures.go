package pass

import (
	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// defineClosureLit types a `do |...| {...}` / `lambda |...| {...}`
// literal. hint, when non-nil, is the Block type expected at this use
// site (a declared parameter/attribute type): an untyped parameter
// borrows its type from the hint positionally, an omitted return type
// borrows the hint's return type, and — per §4.5's re-typing rule — a
// closure literal passed where a Lambda is expected is itself typed as
// a Lambda even without the `lambda` keyword.
func defineClosureLit(c *Ctx, scope symbols.TypeScope, n *ast.ClosureLit, hint *types.Block) types.Type {
	kind := types.BlockKindClosure
	if n.Kind == ast.BlockKindLambda {
		kind = types.BlockKindLambda
	}
	if hint != nil && hint.Kind == types.BlockKindLambda {
		kind = types.BlockKindLambda
	}

	b := types.NewBlock(kind)
	bodyScope := scope
	bodyScope.Locals = locals(n.Scope)
	bodyScope.EnclosingBlock = b
	bodyScope.EnclosingMethod = nil
	throwSlot := &symbols.ThrowSlot{}
	bodyScope.EnclosingClosureThrow = throwSlot

	for i, pd := range n.Params {
		var pt types.Type
		switch {
		case pd.Type != nil:
			pt = DefineType(c, scope, pd.Type)
		case hint != nil && i < len(hint.Parameters):
			pt = hint.Parameters[i].Type
		default:
			pt = types.DynamicType
		}
		b.Parameters = append(b.Parameters, &types.Parameter{
			Name: pd.Name, Type: pt, Mutable: pd.Mutable, HasDefault: pd.Default != nil, Rest: pd.Rest,
		})
		if bodyScope.Locals != nil {
			bodyScope.Locals.Define(pd.Name, pt, pd.Mutable, symbols.KindAny)
		}
	}

	if n.ReturnType != nil {
		b.ReturnType = DefineType(c, scope, n.ReturnType)
	}

	bodyType := typeStatements(c, bodyScope, n.Body)

	if n.ReturnType == nil {
		if hint != nil && hint.ReturnType != nil {
			b.ReturnType = hint.ReturnType
		} else {
			b.ReturnType = bodyType
		}
	}

	if n.ThrowType != nil {
		b.ThrowType = DefineType(c, scope, n.ThrowType)
	} else {
		b.ThrowType = throwSlot.Type
	}

	return b
}
