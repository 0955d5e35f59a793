package pass

import (
	"fmt"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/symbols"
	"github.com/inko-lang/inko-sub002/internal/tir"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func defineAs(c *Ctx, scope symbols.TypeScope, n *ast.As) types.Type {
	valType := DefineType(c, scope, n.Value)
	want := DefineType(c, scope, n.Type)
	if types.Compatible(valType, want, scope.SelfType) || types.Compatible(want, valType, scope.SelfType) {
		return want
	}
	return c.emitError(diagnostics.KindInvalidCast, n.Pos,
		fmt.Sprintf("cannot cast %s as %s", valType.String(), want.String()))
}

func defineDeref(c *Ctx, scope symbols.TypeScope, n *ast.Deref) types.Type {
	valType := DefineType(c, scope, n.Value)
	if opt, ok := valType.(*types.Optional); ok {
		return opt.Inner
	}
	if types.IsDynamic(valType) || types.IsError(valType) {
		return valType
	}
	return c.emitError(diagnostics.KindInvalidDereference, n.Pos,
		fmt.Sprintf("*%s: %s is not Optional", exprSourceHint(n.Value), valType.String()))
}

func exprSourceHint(e ast.Expr) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return "expression"
}

// rawSignature describes one _INKOC.* primitive's expected argument
// count and result type (§4.5's representative primitive subset). args
// holds each argument expression's already-resolved type, in order, so
// a primitive like array_set or set_attribute can answer "the type of
// v" instead of a type fixed in advance; n gives the result func access
// to the literal argument expressions themselves, for get_attribute's
// string-literal special case.
type rawSignature struct {
	arity  int // -1 means variadic, skip the arity check
	result func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type
}

var rawInstructions = map[string]rawSignature{
	"integer_add":      {2, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"integer_subtract": {2, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"integer_multiply": {2, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"integer_divide":   {2, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"integer_equals":   {2, fixed(func(db *tir.TypeDb) types.Type { return db.Boolean })},
	"integer_to_string": {1, fixed(func(db *tir.TypeDb) types.Type { return db.String })},
	"integer_to_float":  {1, fixed(func(db *tir.TypeDb) types.Type { return db.Float })},
	"float_add":         {2, fixed(func(db *tir.TypeDb) types.Type { return db.Float })},
	"float_to_string":   {1, fixed(func(db *tir.TypeDb) types.Type { return db.String })},
	"string_concat":     {2, fixed(func(db *tir.TypeDb) types.Type { return db.String })},
	"string_to_upper":   {1, fixed(func(db *tir.TypeDb) types.Type { return db.String })},
	"string_to_lower":   {1, fixed(func(db *tir.TypeDb) types.Type { return db.String })},
	"string_length":     {1, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"string_equals":     {2, fixed(func(db *tir.TypeDb) types.Type { return db.Boolean })},
	"array_length":      {1, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"object_equals":     {2, fixed(func(db *tir.TypeDb) types.Type { return db.Boolean })},
	"stdout_write":      {1, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"stderr_write":      {1, fixed(func(db *tir.TypeDb) types.Type { return db.Integer })},
	"panic":             {1, fixed(func(db *tir.TypeDb) types.Type { return types.NeverType })},
	"get_nil":           {0, fixed(func(db *tir.TypeDb) types.Type { return db.Nil })},
	"get_true":          {0, fixed(func(db *tir.TypeDb) types.Type { return db.Boolean })},
	"get_false":         {0, fixed(func(db *tir.TypeDb) types.Type { return db.Boolean })},
	"get_toplevel":      {0, fixed(func(db *tir.TypeDb) types.Type { return db.TopLevel })},
	"run_block":         {-1, fixed(func(db *tir.TypeDb) types.Type { return types.DynamicType })},

	// array_at/array_remove answer Optional(element); array_set answers
	// the type of the value being stored (§4.5's raw-instruction table).
	"array_at": {2, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		return types.NewOptional(arrayElementType(c, args[0]))
	}},
	"array_set": {3, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		return args[2]
	}},
	"array_remove": {2, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		return types.NewOptional(arrayElementType(c, args[0]))
	}},

	// set_prototype/set_attribute answer the type of their second/third
	// argument; set_attribute_to_object stores a freshly-built empty
	// object and answers that object's type.
	"set_prototype": {2, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		return args[1]
	}},
	"set_attribute": {3, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		return args[2]
	}},
	"set_attribute_to_object": {2, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		obj := types.NewObject("Object")
		obj.Prototype = c.State.TypeDb.TopLevel
		return obj
	}},
	"set_object": {-1, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		obj := types.NewObject("Object")
		if len(args) > 0 {
			obj.Prototype = args[0]
		} else {
			obj.Prototype = c.State.TypeDb.TopLevel
		}
		return obj
	}},

	// get_attribute answers the type of the named attribute when the
	// key is a string literal (so it can be resolved statically), and
	// Dynamic for any computed key (§4.5).
	"get_attribute": {2, func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		lit, ok := n.Args[1].(*ast.StringLit)
		if !ok {
			return types.DynamicType
		}
		obj, ok := args[0].(*types.Object)
		if !ok {
			return types.DynamicType
		}
		attr, ok := obj.LookupAttribute(lit.Value)
		if !ok {
			return types.DynamicType
		}
		return types.SubstituteSelf(attr.Type, args[0])
	}},
}

// fixed adapts a result func that only needs the shared TypeDb into the
// full rawSignature.result shape, for the primitives whose result
// doesn't depend on argument types.
func fixed(f func(db *tir.TypeDb) types.Type) func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
	return func(c *Ctx, n *ast.RawInstruction, args []types.Type) types.Type {
		return f(c.State.TypeDb)
	}
}

// arrayElementType resolves t's element type when t is an Array
// instance, widening to Dynamic for anything else (a malformed call
// already reported elsewhere, or a genuinely dynamic receiver).
func arrayElementType(c *Ctx, t types.Type) types.Type {
	obj, ok := t.(*types.Object)
	if !ok || obj.Name != c.State.TypeDb.Array.Name {
		return types.DynamicType
	}
	return c.State.TypeDb.ArrayElementType(obj)
}

func defineRawInstruction(c *Ctx, scope symbols.TypeScope, n *ast.RawInstruction) types.Type {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = DefineType(c, scope, a)
	}
	sig, ok := rawInstructions[n.Name]
	if !ok {
		return c.emitError(diagnostics.KindUnknownRawInstruction, n.Pos,
			fmt.Sprintf("unknown raw instruction %q", n.Name))
	}
	if sig.arity >= 0 && len(n.Args) != sig.arity {
		return c.emitError(diagnostics.KindArityMismatch, n.Pos,
			fmt.Sprintf("_INKOC.%s expects %d argument(s), got %d", n.Name, sig.arity, len(n.Args)))
	}
	return sig.result(c, n, argTypes)
}

// defineArrayLit types an array literal as the Array.new rest-arg
// constructor call it desugars to (§4.5): the element type is the join
// of every element's type, widening to Dynamic on a mismatch rather than
// rejecting a heterogeneous literal outright. An empty literal leaves the
// element parameter unbound.
func defineArrayLit(c *Ctx, scope symbols.TypeScope, n *ast.ArrayLit) types.Type {
	var elem types.Type
	for _, e := range n.Elements {
		et := DefineType(c, scope, e)
		switch {
		case elem == nil:
			elem = et
		case !types.Compatible(et, elem, scope.SelfType):
			elem = types.DynamicType
		}
	}
	return c.State.TypeDb.InstantiateArray(elem)
}
