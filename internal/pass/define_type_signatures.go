package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// DefineTypeSignatures allocates every Object/Trait declaration and
// every method's Block signature across the whole module in one pass,
// before any method body is checked (§4.4–§4.5). This is what lets a
// later method body reference a sibling type or method declared further
// down the same file, and what lets a recursive object reference itself.
func DefineTypeSignatures(mod *tir.TirModule, state *tir.State) {
	c := &Ctx{State: state, Module: mod}
	scope := c.rootScope()
	for _, stmt := range mod.File.Statements {
		switch n := stmt.(type) {
		case *ast.ObjectDef:
			defineObjectSignature(c, scope, n)
		case *ast.TraitDef:
			defineTraitSignature(c, scope, n)
		case *ast.MethodDef:
			defineModuleMethodSignature(c, scope, n)
		}
	}
}

func defineObjectSignature(c *Ctx, scope symbols.TypeScope, n *ast.ObjectDef) {
	var obj *types.Object
	if n.Reopen {
		sym, ok := c.Module.Globals.Lookup(n.Name)
		if !ok {
			c.emitError(diagnostics.KindInvalidReopen, n.Pos, fmt.Sprintf("cannot reopen undefined object %q", n.Name))
			return
		}
		if _, isTrait := sym.Type.(*types.Trait); isTrait {
			c.emitError(diagnostics.KindInvalidReopen, n.Pos, fmt.Sprintf("%q is a trait, not an object", n.Name))
			return
		}
		existing, ok := sym.Type.(*types.Object)
		if !ok {
			c.emitError(diagnostics.KindInvalidReopen, n.Pos, fmt.Sprintf("%q is not an object", n.Name))
			return
		}
		obj = existing
	} else {
		obj = types.NewObject(n.Name)
		obj.TypeParameters = buildTypeParameters(c, scope, n.TypeParams)
		if c.State.Config.IsReserved(n.Name) {
			c.emitError(diagnostics.KindReservedConstant, n.Pos, fmt.Sprintf("%q is reserved", n.Name))
		}
		if _, err := c.Module.Globals.Define(n.Name, obj, false, symbols.KindConstant); err != nil {
			c.emitError(diagnostics.KindRedefined, n.Pos, fmt.Sprintf("%q is already defined", n.Name))
		}
		c.Module.Declared = append(c.Module.Declared, obj)
	}

	objScope := scope
	objScope.SelfType = obj
	for _, stmt := range n.Body {
		switch s := stmt.(type) {
		case *ast.MethodDef:
			defineObjectMethodSignature(c, objScope, obj, s)
		case *ast.LetDef:
			if s.IsAttribute {
				declType := types.Type(types.DynamicType)
				if s.Type != nil {
					declType = DefineType(c, objScope, s.Type)
				}
				if _, added := obj.DefineAttribute(s.Name, declType); !added {
					c.emitError(diagnostics.KindRedefined, s.Pos,
						fmt.Sprintf("attribute %q is already defined on %s", s.Name, obj.Name))
				}
			}
		}
	}
}

func defineTraitSignature(c *Ctx, scope symbols.TypeScope, n *ast.TraitDef) {
	tr := types.NewTrait(n.Name)
	tr.TypeParameters = buildTypeParameters(c, scope, n.TypeParams)
	for _, re := range n.Required {
		rt := DefineType(c, scope, re)
		if req, ok := rt.(*types.Trait); ok {
			tr.RequiredTraits = append(tr.RequiredTraits, req)
		} else {
			c.emitError(diagnostics.KindInvalidTraitRequirement, n.Pos,
				fmt.Sprintf("%s is not a trait", rt.String()))
		}
	}
	if c.State.Config.IsReserved(n.Name) {
		c.emitError(diagnostics.KindReservedConstant, n.Pos, fmt.Sprintf("%q is reserved", n.Name))
	}
	if _, err := c.Module.Globals.Define(n.Name, tr, false, symbols.KindConstant); err != nil {
		c.emitError(diagnostics.KindRedefined, n.Pos, fmt.Sprintf("%q is already defined", n.Name))
	}
	c.Module.Declared = append(c.Module.Declared, tr)

	traitScope := scope
	traitScope.SelfType = tr
	for _, stmt := range n.Body {
		if md, ok := stmt.(*ast.MethodDef); ok {
			defineTraitMethodSignature(c, traitScope, tr, md)
		}
	}
}

func defineModuleMethodSignature(c *Ctx, scope symbols.TypeScope, n *ast.MethodDef) {
	b := buildMethodBlock(c, scope, n)
	if _, added := c.Module.ModuleType.DefineMethod(n.Name, b); !added {
		c.emitError(diagnostics.KindRedefined, n.Pos, fmt.Sprintf("method %q is already defined", n.Name))
	}
}

func defineObjectMethodSignature(c *Ctx, scope symbols.TypeScope, obj *types.Object, n *ast.MethodDef) {
	b := buildMethodBlock(c, scope, n)
	if _, added := obj.DefineMethod(n.Name, b); !added {
		c.emitError(diagnostics.KindRedefined, n.Pos,
			fmt.Sprintf("method %q is already defined on %s", n.Name, obj.Name))
	}
}

func defineTraitMethodSignature(c *Ctx, scope symbols.TypeScope, tr *types.Trait, n *ast.MethodDef) {
	required := n.Body == nil
	b := buildMethodBlock(c, scope, n)
	if _, added := tr.DefineMethod(n.Name, b, required); !added {
		c.emitError(diagnostics.KindRedefined, n.Pos,
			fmt.Sprintf("method %q is already defined on trait %s", n.Name, tr.Name))
	}
}

func buildTypeParameters(c *Ctx, scope symbols.TypeScope, decls []*ast.TypeParamDecl) []*types.TypeParameter {
	var out []*types.TypeParameter
	for _, tp := range decls {
		var required []*types.Trait
		for _, re := range tp.Required {
			if tr, ok := DefineType(c, scope, re).(*types.Trait); ok {
				required = append(required, tr)
			} else {
				c.emitError(diagnostics.KindInvalidTraitRequirement, tp.Pos,
					fmt.Sprintf("type parameter %q requires a trait", tp.Name))
			}
		}
		out = append(out, types.NewTypeParameter(tp.Name, required))
	}
	return out
}

// buildMethodBlock allocates a method's Block signature from its
// declaration, without checking its body. An omitted return type is left
// nil for defineMethodDef to infer from the body, except on a required
// (bodyless) method, where it defaults to Void.
func buildMethodBlock(c *Ctx, scope symbols.TypeScope, n *ast.MethodDef) *types.Block {
	b := types.NewBlock(types.BlockKindMethod)
	b.TypeParameters = buildTypeParameters(c, scope, n.TypeParams)

	for _, w := range n.Where {
		var reqs []*types.Trait
		for _, re := range w.Required {
			if tr, ok := DefineType(c, scope, re).(*types.Trait); ok {
				reqs = append(reqs, tr)
			}
		}
		b.MethodBounds[w.Param] = reqs
	}

	for _, p := range n.Params {
		var pt types.Type
		if p.Type != nil {
			pt = DefineType(c, scope, p.Type)
		} else {
			pt = types.DynamicType
		}
		b.Parameters = append(b.Parameters, &types.Parameter{
			Name: p.Name, Type: pt, Mutable: p.Mutable, HasDefault: p.Default != nil, Rest: p.Rest,
		})
	}

	if n.ThrowType != nil {
		b.ThrowType = DefineType(c, scope, n.ThrowType)
	}
	switch {
	case n.ReturnType != nil:
		b.ReturnType = DefineType(c, scope, n.ReturnType)
	case n.Body == nil:
		b.ReturnType = types.VoidType
	default:
		b.ReturnType = nil
	}
	return b
}
