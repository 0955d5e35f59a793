package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// defineMethodDef type-checks a method body against the signature
// DefineTypeSignatures already allocated for it. A method declared
// without an explicit return type has a nil Block.ReturnType at this
// point; the first time its body is fully checked, that nil is filled in
// from the body's own type (§4.5 default-return-type rule). A required
// method (no body) is a no-op here.
func defineMethodDef(c *Ctx, scope symbols.TypeScope, n *ast.MethodDef) types.Type {
	owner := scope.SelfType
	method := lookupOwnMethod(owner, n.Name)
	if method == nil {
		return c.emitError(diagnostics.KindInvalidContext, n.Pos,
			fmt.Sprintf("method %q has no allocated signature", n.Name))
	}
	if n.Body == nil {
		return types.VoidType
	}

	prevMethod := c.CurrentMethodNode
	c.CurrentMethodNode = n
	defer func() { c.CurrentMethodNode = prevMethod }()

	methodScope := scope
	methodScope.Locals = locals(n.Scope)
	methodScope.EnclosingMethod = method
	methodScope.EnclosingBlock = method
	methodScope.EnclosingClosureThrow = nil
	methodScope.MethodName = n.Name

	if len(n.Where) > 0 {
		bounds := map[string][]*types.Trait{}
		for _, w := range n.Where {
			var reqs []*types.Trait
			for _, re := range w.Required {
				if tr, ok := DefineType(c, scope, re).(*types.Trait); ok {
					reqs = append(reqs, tr)
				}
			}
			bounds[w.Param] = reqs
		}
		methodScope.MethodBounds = bounds
	}

	if methodScope.Locals != nil {
		for i, p := range method.Parameters {
			if i < len(n.Params) {
				methodScope.Locals.Define(n.Params[i].Name, p.Type, p.Mutable, symbols.KindAny)
			}
		}
	}

	bodyType := typeStatements(c, methodScope, n.Body)

	if method.ReturnType == nil {
		method.ReturnType = bodyType
	} else if !types.Compatible(bodyType, method.ReturnType, owner) {
		c.emitError(diagnostics.KindTypeMismatch, n.Pos,
			fmt.Sprintf("method %q must return %s, body produces %s", n.Name, method.ReturnType.String(), bodyType.String()))
	}
	return types.VoidType
}

func lookupOwnMethod(owner types.Type, name string) *types.Block {
	switch o := owner.(type) {
	case *types.Object:
		m, _ := o.MethodTable[name]
		if m == nil {
			m, _ = o.LookupMethod(name)
		}
		return m
	case *types.Trait:
		return o.MethodTable[name]
	}
	return nil
}

// defineObjectDef type-checks an object's already-signatured body (and,
// for a reopened object, only the members this ObjectDef adds).
func defineObjectDef(c *Ctx, scope symbols.TypeScope, n *ast.ObjectDef) types.Type {
	sym, ok := c.Module.Globals.Lookup(n.Name)
	if !ok {
		return types.VoidType
	}
	obj, ok := sym.Type.(*types.Object)
	if !ok {
		return types.VoidType
	}

	objScope := scope
	objScope.SelfType = obj
	objScope.Locals = locals(n.Scope)
	objScope.EnclosingMethod = nil
	objScope.MethodBounds = nil
	for _, stmt := range n.Body {
		DefineType(c, objScope, stmt)
	}
	return types.VoidType
}

func defineTraitDef(c *Ctx, scope symbols.TypeScope, n *ast.TraitDef) types.Type {
	sym, ok := c.Module.Globals.Lookup(n.Name)
	if !ok {
		return types.VoidType
	}
	tr, ok := sym.Type.(*types.Trait)
	if !ok {
		return types.VoidType
	}

	traitScope := scope
	traitScope.SelfType = tr
	traitScope.Locals = locals(n.Scope)
	traitScope.EnclosingMethod = nil
	traitScope.MethodBounds = nil
	for _, stmt := range n.Body {
		DefineType(c, traitScope, stmt)
	}
	return types.VoidType
}

// defineImplDef type-checks an `impl Trait for Object` block's method
// bodies with Self bound to the implementing object. The implementation
// itself was already recorded by the ImplementTraits pass, which runs
// before DefineType; here we only re-resolve the two constant references
// for diagnostics consistency and walk the body.
func defineImplDef(c *Ctx, scope symbols.TypeScope, n *ast.ImplDef) types.Type {
	forType := DefineType(c, scope, n.ForObject)
	obj, ok := forType.(*types.Object)
	if !ok {
		return c.emitError(diagnostics.KindInvalidImplementation, n.Pos, "impl is not for an object")
	}
	if _, ok := DefineType(c, scope, n.Trait).(*types.Trait); !ok {
		return c.emitError(diagnostics.KindInvalidImplementation, n.Pos, "impl target is not a trait")
	}

	implScope := scope
	implScope.SelfType = obj
	implScope.Locals = locals(n.Scope)
	implScope.EnclosingMethod = nil
	implScope.MethodBounds = nil
	for _, stmt := range n.Body {
		DefineType(c, implScope, stmt)
	}
	return types.VoidType
}
