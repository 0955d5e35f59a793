// Package tir implements the typed intermediate representation (§3.4,
// §3.5, §6.2): the TypeDb registry of well-known prototype types, the
// shared compilation State, and the TirModule entity the build driver
// hands to the pass pipeline.
package tir

import "github.com/inko-lang/inko-sub002/internal/types"

// TypeDb registers the handful of well-known stdlib prototypes the core
// must know about (§1, §3.5): integer, float, string, array, boolean,
// nil, block, trait, top-level, plus a generic Array with a single type
// parameter.
type TypeDb struct {
	Integer  *types.Object
	Float    *types.Object
	String   *types.Object
	Boolean  *types.Object
	Nil      *types.Object
	Array    *types.Object
	Block    *types.Object
	TraitObj *types.Object // the "Trait" prototype object
	TopLevel *types.Object
}

// NewTypeDb bootstraps the well-known prototypes, wiring Array's single
// type parameter using the name from config.
func NewTypeDb(arrayTypeParameterName string) *TypeDb {
	db := &TypeDb{
		Integer:  types.NewObject("Integer"),
		Float:    types.NewObject("Float"),
		String:   types.NewObject("String"),
		Boolean:  types.NewObject("Boolean"),
		Nil:      types.NewObject("NilType"),
		Block:    types.NewObject("Block"),
		TraitObj: types.NewObject("Trait"),
		TopLevel: types.NewObject("TopLevel"),
	}
	db.Array = types.NewObject("Array")
	elem := types.NewTypeParameter(arrayTypeParameterName, nil)
	db.Array.TypeParameters = []*types.TypeParameter{elem}
	return db
}

// InstantiateArray produces a fresh Array[elem] instance, a distinct
// *types.Object sharing the Array declaration's identity-bearing fields
// (name, type parameters, methods) but carrying its own InstanceMap —
// exactly the "fresh instance produced without mutating the declaration"
// rule of §3.2/§4.1.2.
func (db *TypeDb) InstantiateArray(elem types.Type) *types.Object {
	inst := *db.Array
	if elem != nil {
		inst.ParamInstances = types.Instantiate(db.Array.TypeParameters, []types.Type{elem})
	}
	return &inst
}

// ArrayElementType resolves the element type bound on an Array
// instance, returning the bare type parameter (unbound) for a `[]`
// literal or an un-instantiated `Array` reference.
func (db *TypeDb) ArrayElementType(arr *types.Object) types.Type {
	if len(db.Array.TypeParameters) == 0 {
		return types.DynamicType
	}
	return types.ResolveParam(db.Array.TypeParameters[0], arr.ParamInstances)
}
