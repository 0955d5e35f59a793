package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// defineConstantRef resolves `A` (n.Scope == nil) through the standard
// lookup chain, or `A::B` by finding the module n.Scope names among the
// current module's imports and looking B up in that module's own globals.
func defineConstantRef(c *Ctx, scope symbols.TypeScope, n *ast.ConstantRef) types.Type {
	if n.Scope == nil {
		if t, kind, ok := lookupChain(scope, n.Name); ok {
			return resultTypeOf(t, kind, scope.SelfType)
		}
		return c.emitError(diagnostics.KindUndefinedConstant, n.Pos,
			fmt.Sprintf("undefined constant %q", n.Name))
	}

	mod := moduleFromScopeExpr(c, n.Scope)
	if mod == nil {
		return c.emitError(diagnostics.KindUndefinedConstant, n.Pos,
			fmt.Sprintf("%q does not name an imported module", exprLabel(n.Scope)))
	}
	sym, ok := mod.Globals.Lookup(n.Name)
	if !ok {
		return c.emitError(diagnostics.KindUndefinedConstant, n.Pos,
			fmt.Sprintf("module %q does not define %q", mod.Path, n.Name))
	}
	return sym.Type
}

// moduleFromScopeExpr resolves the left-hand side of an `A::B` reference
// to one of the current module's imports by its binding name.
func moduleFromScopeExpr(c *Ctx, e ast.Expr) *tir.TirModule {
	var name string
	switch v := e.(type) {
	case *ast.ConstantRef:
		if v.Scope == nil {
			name = v.Name
		}
	case *ast.GlobalRef:
		name = v.Name
	default:
		return nil
	}
	if name == "" {
		return nil
	}
	for _, imp := range c.Module.Imports {
		if moduleBindingName(imp.Path) == name {
			return imp.Module
		}
	}
	return nil
}

func exprLabel(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.ConstantRef:
		return v.Name
	case *ast.GlobalRef:
		return "::" + v.Name
	default:
		return "<expr>"
	}
}

// defineTypeArgsRef instantiates a generic Object/Trait constant with
// explicit arguments (`A!(T...)`), producing a fresh copy carrying its
// own InstanceMap without ever mutating the declaration (§3.2).
func defineTypeArgsRef(c *Ctx, scope symbols.TypeScope, n *ast.TypeArgsRef) types.Type {
	base := DefineType(c, scope, n.Base)
	args := make([]types.Type, len(n.TypeArg))
	for i, a := range n.TypeArg {
		args[i] = DefineType(c, scope, a)
	}

	switch b := base.(type) {
	case *types.Object:
		if len(b.TypeParameters) != len(args) {
			return c.emitError(diagnostics.KindArityMismatch, n.Pos,
				fmt.Sprintf("%s expects %d type argument(s), got %d", b.Name, len(b.TypeParameters), len(args)))
		}
		inst := *b
		inst.ParamInstances = types.Instantiate(b.TypeParameters, args)
		return &inst
	case *types.Trait:
		if len(b.TypeParameters) != len(args) {
			return c.emitError(diagnostics.KindArityMismatch, n.Pos,
				fmt.Sprintf("%s expects %d type argument(s), got %d", b.Name, len(b.TypeParameters), len(args)))
		}
		inst := *b
		inst.ParamInstances = types.Instantiate(b.TypeParameters, args)
		// Keep a pointer back to the declaration: ImplementedTraits is
		// keyed by declaration identity, and this copy's own identity
		// is fresh (§4.1.1 rule 4, see canonicalTrait in compat.go).
		if b.Declaration != nil {
			inst.Declaration = b.Declaration
		} else {
			inst.Declaration = b
		}
		return &inst
	default:
		return c.emitError(diagnostics.KindInvalidContext, n.Pos,
			fmt.Sprintf("%s does not take type arguments", base.String()))
	}
}

func defineSelfExpr(c *Ctx, scope symbols.TypeScope, n *ast.SelfExpr) types.Type {
	if scope.SelfType == nil {
		return c.emitError(diagnostics.KindInvalidContext, n.Pos, "Self used outside any object/trait/method context")
	}
	return scope.SelfType
}

func defineIdentifier(c *Ctx, scope symbols.TypeScope, n *ast.Identifier) types.Type {
	if t, kind, ok := lookupChain(scope, n.Name); ok {
		return resultTypeOf(t, kind, scope.SelfType)
	}
	return c.emitError(diagnostics.KindUndefinedIdentifier, n.Pos,
		fmt.Sprintf("undefined identifier %q", n.Name))
}

func defineAttributeRef(c *Ctx, scope symbols.TypeScope, n *ast.AttributeRef) types.Type {
	switch self := scope.SelfType.(type) {
	case *types.Object:
		attr, ok := self.LookupAttribute(n.Name)
		if !ok {
			return c.emitError(diagnostics.KindUndefinedAttribute, n.Pos,
				fmt.Sprintf("@%s is not defined on %s", n.Name, self.Name))
		}
		return types.SubstituteSelf(attr.Type, scope.SelfType)
	case *types.Trait:
		if attr, ok := self.AttributeTable[n.Name]; ok {
			return types.SubstituteSelf(attr.Type, scope.SelfType)
		}
		return c.emitError(diagnostics.KindUndefinedAttribute, n.Pos,
			fmt.Sprintf("@%s is not defined on %s", n.Name, self.Name))
	default:
		return c.emitError(diagnostics.KindUndefinedAttribute, n.Pos,
			fmt.Sprintf("@%s used outside an object/trait body", n.Name))
	}
}

func defineGlobalRef(c *Ctx, scope symbols.TypeScope, n *ast.GlobalRef) types.Type {
	if scope.ModuleGlobals == nil {
		return c.emitError(diagnostics.KindUndefinedConstant, n.Pos, fmt.Sprintf("::%s is not defined", n.Name))
	}
	if sym, ok := scope.ModuleGlobals.Lookup(n.Name); ok {
		return sym.Type
	}
	return c.emitError(diagnostics.KindUndefinedConstant, n.Pos, fmt.Sprintf("::%s is not defined", n.Name))
}

// defineBlockTypeRef types a standalone block-type signature (`do (T) -> R`,
// `lambda (T) !! E -> R`, or `?do (...)`), used in type-annotation position.
func defineBlockTypeRef(c *Ctx, scope symbols.TypeScope, n *ast.BlockTypeRef) types.Type {
	kind := types.BlockKindClosure
	if n.Kind == ast.BlockKindLambda {
		kind = types.BlockKindLambda
	}
	b := types.NewBlock(kind)
	for i, p := range n.Params {
		pt := DefineType(c, scope, p)
		b.Parameters = append(b.Parameters, &types.Parameter{Name: fmt.Sprintf("arg%d", i), Type: pt})
	}
	if n.ThrowType != nil {
		b.ThrowType = DefineType(c, scope, n.ThrowType)
	}
	if n.ReturnType != nil {
		b.ReturnType = DefineType(c, scope, n.ReturnType)
	} else {
		b.ReturnType = types.VoidType
	}
	var result types.Type = b
	if n.Optional {
		result = types.NewOptional(b)
	}
	return result
}
