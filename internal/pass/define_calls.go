package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/types"
)

// defineCall types a method/field/closure-call expression (§4.5): it
// resolves the receiver, looks the message up on the receiver's type
// (absorbing Dynamic/Error immediately, dispatching an Optional receiver
// through both its inner type and the nil prototype), binds
// positional/keyword/rest arguments against the resolved method's
// parameters, and returns the method's (possibly generic-instantiated)
// return type.
func defineCall(c *Ctx, scope symbols.TypeScope, n *ast.Call) types.Type {
	var receiverType types.Type
	if n.Receiver == nil {
		receiverType = scope.SelfType
	} else {
		receiverType = DefineType(c, scope, n.Receiver)
	}

	if types.IsError(receiverType) {
		evalArgsForEffect(c, scope, n)
		return types.ErrorType
	}
	if types.IsDynamic(receiverType) {
		evalArgsForEffect(c, scope, n)
		return types.DynamicType
	}
	if opt, ok := receiverType.(*types.Optional); ok {
		return defineOptionalCall(c, scope, n, opt.Inner)
	}

	method, ok := lookupMethodOn(receiverType, n.Message)
	if !ok {
		evalArgsForEffect(c, scope, n)
		return c.emitError(diagnostics.KindUndefinedIdentifier, n.Pos,
			fmt.Sprintf("%s does not respond to %q", receiverType.String(), n.Message))
	}

	inst, ok := resolveCallTypeArgs(c, scope, n, method)
	if !ok {
		return types.ErrorType
	}

	bindCallArguments(c, scope, n, method, inst)

	n.ResolvedMethod = method
	if method.ReturnType == nil {
		c.deferCurrentMethod(scope.SelfType, scope)
		return types.DynamicType
	}
	ret := types.Resolve(method.ReturnType, inst)
	return types.SubstituteSelf(ret, receiverType)
}

// resolveCallTypeArgs binds n's explicit `msg!(T...)` type arguments
// against method's type parameters, emitting ArityMismatch on a count
// mismatch (§4.5: "Explicit type arguments ... bind M's parameters
// before argument checking; wrong arity is an error").
func resolveCallTypeArgs(c *Ctx, scope symbols.TypeScope, n *ast.Call, method *types.Block) (*types.InstanceMap, bool) {
	inst := types.NewInstanceMap()
	if len(n.TypeArgs) == 0 {
		return inst, true
	}
	if len(n.TypeArgs) != len(method.TypeParameters) {
		evalArgsForEffect(c, scope, n)
		c.emitError(diagnostics.KindArityMismatch, n.Pos,
			fmt.Sprintf("%s expects %d type argument(s), got %d", n.Message, len(method.TypeParameters), len(n.TypeArgs)))
		return nil, false
	}
	for i, te := range n.TypeArgs {
		inst.Bind(method.TypeParameters[i].Name, DefineType(c, scope, te))
	}
	return inst, true
}

// defineOptionalCall implements §4.5's Optional(T) receiver rule:
// resolve the message on T and on the nil prototype; if nil answers it
// with a compatible signature, the result is their common return type,
// otherwise the result is Optional of T's return type. Incompatible
// nil/T implementations are an error.
func defineOptionalCall(c *Ctx, scope symbols.TypeScope, n *ast.Call, inner types.Type) types.Type {
	method, ok := lookupMethodOn(inner, n.Message)
	if !ok {
		evalArgsForEffect(c, scope, n)
		return c.emitError(diagnostics.KindUndefinedIdentifier, n.Pos,
			fmt.Sprintf("%s does not respond to %q", inner.String(), n.Message))
	}

	inst, ok := resolveCallTypeArgs(c, scope, n, method)
	if !ok {
		return types.ErrorType
	}
	bindCallArguments(c, scope, n, method, inst)
	n.ResolvedMethod = method

	innerReturn := types.Type(types.DynamicType)
	if method.ReturnType == nil {
		c.deferCurrentMethod(scope.SelfType, scope)
	} else {
		innerReturn = types.SubstituteSelf(types.Resolve(method.ReturnType, inst), inner)
	}

	nilMethod, nilOk := lookupMethodOn(c.State.TypeDb.Nil, n.Message)
	if !nilOk {
		return types.NewOptional(innerReturn)
	}

	if !sameParameterShape(method, nilMethod, scope.SelfType) {
		return c.emitError(diagnostics.KindTypeMismatch, n.Pos,
			fmt.Sprintf("%q is implemented on nil with an incompatible signature to %s", n.Message, inner.String()))
	}

	nilReturn := types.Type(types.DynamicType)
	if nilMethod.ReturnType != nil {
		nilReturn = nilMethod.ReturnType
	}
	common, ok := commonReturnType(innerReturn, nilReturn, scope.SelfType)
	if !ok {
		return c.emitError(diagnostics.KindTypeMismatch, n.Pos,
			fmt.Sprintf("%q returns %s on nil but %s on %s", n.Message, nilReturn.String(), innerReturn.String(), inner.String()))
	}
	return common
}

// sameParameterShape reports whether a and b take a mutually-compatible
// parameter list, used to decide whether nil's and T's implementations
// of a message dispatched through an Optional receiver agree closely
// enough to share a call site.
func sameParameterShape(a, b *types.Block, self types.Type) bool {
	if (a.RestParameter() != nil) != (b.RestParameter() != nil) {
		return false
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		pa, pb := a.Parameters[i].Type, b.Parameters[i].Type
		if !types.Compatible(pa, pb, self) && !types.Compatible(pb, pa, self) {
			return false
		}
	}
	return true
}

// commonReturnType picks the return type two signatures share: the more
// general of a/b when they're compatible one way, or a failure when
// neither is compatible with the other.
func commonReturnType(a, b, self types.Type) (types.Type, bool) {
	switch {
	case types.Compatible(a, b, self):
		return b, true
	case types.Compatible(b, a, self):
		return a, true
	default:
		return nil, false
	}
}

func evalArgsForEffect(c *Ctx, scope symbols.TypeScope, n *ast.Call) {
	for _, a := range n.Args {
		DefineType(c, scope, a.Value)
	}
}

// lookupMethodOn finds method name on t: directly on an Object/Trait, via
// a TypeParameter's required traits, or the synthetic `call` method every
// Block type answers to.
func lookupMethodOn(t types.Type, name string) (*types.Block, bool) {
	switch v := t.(type) {
	case *types.Object:
		return v.LookupMethod(name)
	case *types.Trait:
		m, ok := v.MethodTable[name]
		return m, ok
	case *types.TypeParameter:
		for _, tr := range v.RequiredTraits {
			if m, ok := tr.MethodTable[name]; ok {
				return m, true
			}
		}
		return nil, false
	case *types.Block:
		if name == "call" {
			return v, true
		}
		return nil, false
	}
	return nil, false
}

// bindCallArguments checks n's arguments against method's parameter list,
// emitting ArityMismatch/InvalidKeywordArgument/TypeMismatch diagnostics
// as needed, and opportunistically binds method's own unbound type
// parameters from argument types into inst.
func bindCallArguments(c *Ctx, scope symbols.TypeScope, n *ast.Call, method *types.Block, inst *types.InstanceMap) {
	var positional []*types.Parameter
	rest := method.RestParameter()
	for _, p := range method.Parameters {
		if !p.Rest {
			positional = append(positional, p)
		}
	}

	var positionalArgs, keywordArgs []*ast.Argument
	for _, a := range n.Args {
		if a.Name == "" {
			positionalArgs = append(positionalArgs, a)
		} else {
			keywordArgs = append(keywordArgs, a)
		}
	}

	posIdx := 0
	for _, a := range positionalArgs {
		switch {
		case posIdx < len(positional):
			p := positional[posIdx]
			hint, _ := types.Resolve(p.Type, inst).(*types.Block)
			argType := evalCallArg(c, scope, a.Value, hint)
			checkArgCompat(c, scope, a, argType, p, method, inst)
			posIdx++
		case rest != nil:
			hint, _ := types.Resolve(rest.Type, inst).(*types.Block)
			argType := evalCallArg(c, scope, a.Value, hint)
			want := types.Resolve(rest.Type, inst)
			if !types.Compatible(argType, want, scope.SelfType) {
				c.emitError(diagnostics.KindTypeMismatch, a.Pos,
					fmt.Sprintf("expected %s for rest parameter %q, got %s", want.String(), rest.Name, argType.String()))
			}
		default:
			DefineType(c, scope, a.Value)
			c.emitError(diagnostics.KindArityMismatch, a.Pos,
				fmt.Sprintf("%q takes at most %d positional argument(s)", n.Message, len(positional)))
		}
	}
	if posIdx < len(positional) {
		missing := 0
		for _, p := range positional[posIdx:] {
			if !p.HasDefault {
				missing++
			}
		}
		if missing > 0 {
			c.emitError(diagnostics.KindArityMismatch, n.Pos,
				fmt.Sprintf("%q is missing %d required argument(s)", n.Message, missing))
		}
	}

	seen := map[string]bool{}
	for _, a := range keywordArgs {
		p, _ := method.ParameterByName(a.Name)
		if p == nil || p.Rest {
			DefineType(c, scope, a.Value)
			c.emitError(diagnostics.KindInvalidKeywordArgument, a.Pos,
				fmt.Sprintf("%q has no keyword argument %q", n.Message, a.Name))
			continue
		}
		if seen[a.Name] {
			DefineType(c, scope, a.Value)
			c.emitError(diagnostics.KindInvalidKeywordArgument, a.Pos,
				fmt.Sprintf("keyword argument %q is already bound", a.Name))
			continue
		}
		seen[a.Name] = true
		hint, _ := types.Resolve(p.Type, inst).(*types.Block)
		argType := evalCallArg(c, scope, a.Value, hint)
		checkArgCompat(c, scope, a, argType, p, method, inst)
	}
}

func evalCallArg(c *Ctx, scope symbols.TypeScope, e ast.Expr, hint *types.Block) types.Type {
	if cl, ok := e.(*ast.ClosureLit); ok {
		return defineClosureLit(c, scope, cl, hint)
	}
	return DefineType(c, scope, e)
}

func checkArgCompat(c *Ctx, scope symbols.TypeScope, a *ast.Argument, argType types.Type, p *types.Parameter, method *types.Block, inst *types.InstanceMap) {
	if tp, isParam := p.Type.(*types.TypeParameter); isParam && isMethodTypeParam(method, tp) {
		inst.BindIfUnbound(tp.Name, argType)
	}
	want := types.Resolve(p.Type, inst)
	if !types.Compatible(argType, want, scope.SelfType) {
		c.emitError(diagnostics.KindTypeMismatch, a.Pos,
			fmt.Sprintf("expected %s, got %s", want.String(), argType.String()))
	}
}

func isMethodTypeParam(method *types.Block, tp *types.TypeParameter) bool {
	for _, p := range method.TypeParameters {
		if p == tp {
			return true
		}
	}
	return false
}
