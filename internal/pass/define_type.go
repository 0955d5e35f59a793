package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// RunDefineType walks every top-level statement of mod's file through
// DefineType, using the module's own type as self_type and its module
// body as the enclosing block (§4.4 pass ordering: this runs after
// DefineTypeSignatures/ImplementTraits have allocated every signature).
func RunDefineType(mod *tir.TirModule, state *tir.State) {
	c := &Ctx{State: state, Module: mod}
	scope := c.rootScope()
	for _, stmt := range mod.File.Statements {
		DefineType(c, scope, stmt)
	}
}

// DefineType is the core pass (§4.5): it assigns a type to every AST
// node. For every node kind the contract is the same: compute and
// return a type, store it on the node, emit diagnostics for ill-formed
// constructs, and on a diagnostic return Error so the caller can
// continue silently (§4.3 propagation policy).
func DefineType(c *Ctx, scope symbols.TypeScope, node ast.Node) types.Type {
	if node == nil {
		return types.VoidType
	}

	var result types.Type
	switch n := node.(type) {
	case *ast.IntegerLit:
		result = c.State.TypeDb.Integer
	case *ast.FloatLit:
		result = c.State.TypeDb.Float
	case *ast.StringLit:
		result = c.State.TypeDb.String

	case *ast.ConstantRef:
		result = defineConstantRef(c, scope, n)
	case *ast.TypeArgsRef:
		result = defineTypeArgsRef(c, scope, n)
	case *ast.OptionalTypeRef:
		inner := DefineType(c, scope, n.Inner)
		result = types.NewOptional(inner)
	case *ast.SelfExpr:
		result = defineSelfExpr(c, scope, n)

	case *ast.Identifier:
		result = defineIdentifier(c, scope, n)
	case *ast.AttributeRef:
		result = defineAttributeRef(c, scope, n)
	case *ast.GlobalRef:
		result = defineGlobalRef(c, scope, n)

	case *ast.Call:
		result = defineCall(c, scope, n)

	case *ast.ClosureLit:
		result = defineClosureLit(c, scope, n, nil)
	case *ast.BlockTypeRef:
		result = defineBlockTypeRef(c, scope, n)

	case *ast.MethodDef:
		result = defineMethodDef(c, scope, n)
	case *ast.ObjectDef:
		result = defineObjectDef(c, scope, n)
	case *ast.TraitDef:
		result = defineTraitDef(c, scope, n)
	case *ast.ImplDef:
		result = defineImplDef(c, scope, n)

	case *ast.LetDef:
		result = defineLetDef(c, scope, n)
	case *ast.Assign:
		result = defineAssign(c, scope, n)

	case *ast.Return:
		result = defineReturn(c, scope, n)
	case *ast.Throw:
		result = defineThrow(c, scope, n)
	case *ast.Try:
		result = defineTry(c, scope, n)

	case *ast.As:
		result = defineAs(c, scope, n)
	case *ast.Deref:
		result = defineDeref(c, scope, n)

	case *ast.RawInstruction:
		result = defineRawInstruction(c, scope, n)
	case *ast.ArrayLit:
		result = defineArrayLit(c, scope, n)

	case *ast.ErrorExpr:
		result = types.ErrorType

	default:
		result = c.emitError(diagnostics.KindInvalidContext, node.Position(),
			fmt.Sprintf("don't know how to type-check node %T", node))
	}

	if expr, ok := node.(ast.Expr); ok {
		expr.SetResolvedType(result)
	}
	return result
}

// typeStatements runs DefineType over each statement in order and
// returns the type of the last one (Void for an empty sequence), the
// way a method/closure body's implicit result works.
func typeStatements(c *Ctx, scope symbols.TypeScope, stmts []ast.Node) types.Type {
	last := types.VoidType
	for _, s := range stmts {
		last = DefineType(c, scope, s)
	}
	return last
}

// lookupChain implements the identifier lookup order of §4.5:
// locals -> attributes of self_type -> module methods -> globals.
func lookupChain(scope symbols.TypeScope, name string) (types.Type, symbols.Kind, bool) {
	if scope.Locals != nil {
		if sym, ok := scope.Locals.Lookup(name); ok {
			return sym.Type, sym.Kind, true
		}
	}
	if obj, ok := scope.SelfType.(*types.Object); ok {
		if attr, ok := obj.LookupAttribute(name); ok {
			return attr.Type, symbols.KindAttribute, true
		}
		if m, ok := obj.LookupMethod(name); ok {
			return m, symbols.KindMethod, true
		}
	}
	if trait, ok := scope.SelfType.(*types.Trait); ok {
		if attr, ok := trait.AttributeTable[name]; ok {
			return attr.Type, symbols.KindAttribute, true
		}
		if m, ok := trait.MethodTable[name]; ok {
			return m, symbols.KindMethod, true
		}
	}
	if scope.ModuleGlobals != nil {
		if sym, ok := scope.ModuleGlobals.Lookup(name); ok {
			return sym.Type, sym.Kind, true
		}
	}
	return nil, symbols.KindAny, false
}

// resultTypeOf converts a looked-up symbol's stored type into the type
// an expression referencing it produces: a method symbol yields its
// return type (instantiated against the receiver's current bindings,
// here the identity instantiation since there is no explicit receiver),
// anything else yields the stored type directly.
func resultTypeOf(t types.Type, kind symbols.Kind, selfType types.Type) types.Type {
	if kind == symbols.KindMethod {
		if block, ok := t.(*types.Block); ok {
			return types.Resolve(block.ReturnType, block.ParamInstances)
		}
	}
	return types.SubstituteSelf(t, selfType)
}
