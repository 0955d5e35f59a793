package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptionalCollapse(t *testing.T) {
	integer := NewObject("Integer")
	once := NewOptional(integer)
	twice := NewOptional(once)

	if !cmp.Equal(once.(*Optional).Inner.String(), twice.(*Optional).Inner.String()) {
		t.Fatalf("??T did not collapse to ?T: once=%v twice=%v", once, twice)
	}
	if _, ok := twice.(*Optional).Inner.(*Optional); ok {
		t.Fatalf("expected collapsed optional, got nested Optional inner")
	}
}

func TestErrorAbsorbsEverything(t *testing.T) {
	integer := NewObject("Integer")
	if !Compatible(ErrorType, integer, nil) {
		t.Error("Error should be compatible with any target")
	}
	if !Compatible(integer, ErrorType, nil) {
		t.Error("any value should be compatible with Error target")
	}
}

func TestDynamicAbsorbsEverything(t *testing.T) {
	str := NewObject("String")
	if !Compatible(DynamicType, str, nil) || !Compatible(str, DynamicType, nil) {
		t.Error("Dynamic should be bidirectionally compatible with anything")
	}
}

func TestOptionalLiftingIsAsymmetric(t *testing.T) {
	integer := NewObject("Integer")
	optInt := NewOptional(integer)

	if !Compatible(integer, optInt, nil) {
		t.Error("T should be compatible with ?T (lifting)")
	}
	if Compatible(optInt, integer, nil) {
		t.Error("?T should NOT be compatible with T without explicit dereference")
	}
}

func TestOptionalOfOptionalRule(t *testing.T) {
	a := NewObject("A")
	b := NewObject("B")
	if Compatible(NewOptional(a), NewOptional(b), nil) {
		t.Error("?A should not be compatible with ?B when A is not compatible with B")
	}
	if !Compatible(NewOptional(a), NewOptional(a), nil) {
		t.Error("?A should be compatible with ?A")
	}
}

func TestTraitImplementationRequiresMethods(t *testing.T) {
	inspect := NewTrait("Inspect")
	req := NewBlock(BlockKindMethod)
	req.ReturnType = NewObject("String")
	inspect.DefineMethod("inspect", req, true)

	list := NewObject("List")
	if _, err := list.ImplementTrait(inspect, nil); err == nil {
		t.Fatal("expected InvalidImplementation error for missing required method")
	}
	if _, ok := list.ImplementedTraits[inspect]; ok {
		t.Error("List.ImplementedTraits must not contain Inspect after a failed impl")
	}
}

func TestTraitImplementationSucceeds(t *testing.T) {
	str := NewObject("String")
	inspect := NewTrait("Inspect")
	req := NewBlock(BlockKindMethod)
	req.ReturnType = str
	inspect.DefineMethod("inspect", req, true)

	list := NewObject("List")
	have := NewBlock(BlockKindMethod)
	have.ReturnType = str
	list.DefineMethod("inspect", have)

	impl, err := list.ImplementTrait(inspect, nil)
	if err != nil {
		t.Fatalf("expected successful implementation, got %v", err)
	}
	if impl.Trait != inspect {
		t.Errorf("recorded implementation points at wrong trait")
	}
	if !Compatible(list, inspect, nil) {
		t.Error("List should now be compatible with Inspect")
	}
}

func TestDuplicateImplementationRejected(t *testing.T) {
	eq := NewTrait("Equal")
	list := NewObject("List")
	if _, err := list.ImplementTrait(eq, nil); err != nil {
		t.Fatalf("first impl should succeed: %v", err)
	}
	if _, err := list.ImplementTrait(eq, nil); err == nil {
		t.Fatal("second impl of the same trait declaration should be rejected")
	}
}

func TestTypeParameterCompatibility(t *testing.T) {
	equal := NewTrait("Equal")
	mp := NewTypeParameter("MP", []*Trait{equal})

	integer := NewObject("Integer")
	if Compatible(integer, mp, nil) {
		t.Error("Integer should not satisfy MP before implementing Equal")
	}
	if _, err := integer.ImplementTrait(equal, nil); err != nil {
		t.Fatalf("unexpected error implementing Equal: %v", err)
	}
	if !Compatible(integer, mp, nil) {
		t.Error("Integer should satisfy MP after implementing Equal")
	}
}

func TestInstantiateDoesNotMutateDeclaration(t *testing.T) {
	mp := NewTypeParameter("T", nil)
	arrayDecl := NewObject("Array")
	arrayDecl.TypeParameters = []*TypeParameter{mp}

	if arrayDecl.ParamInstances.Len() != 0 {
		t.Fatalf("declaration should start with no bindings")
	}

	integer := NewObject("Integer")
	inst := Instantiate(arrayDecl.TypeParameters, []Type{integer})

	if arrayDecl.ParamInstances.Len() != 0 {
		t.Error("instantiating should never mutate the declaration's own map")
	}
	if got, ok := inst.Get("T"); !ok || got != Type(integer) {
		t.Error("fresh instance map should bind T -> Integer")
	}
}

func TestTraitInstantiationCompatibleThroughDeclarationPointer(t *testing.T) {
	param := NewTypeParameter("T", nil)
	decl := NewTrait("Box")
	decl.TypeParameters = []*TypeParameter{param}

	integer := NewObject("Integer")
	str := NewObject("String")

	obj := NewObject("Crate")
	if _, err := obj.ImplementTrait(decl, []Type{integer}); err != nil {
		t.Fatalf("unexpected error implementing Box: %v", err)
	}

	// Simulates `Box!(Integer)` reached through an explicit instantiation
	// (a fresh copy of decl, as defineTypeArgsRef builds one): its
	// Declaration must resolve ImplementedTraits lookups back to decl.
	matching := *decl
	matching.ParamInstances = Instantiate(decl.TypeParameters, []Type{integer})
	matching.Declaration = decl
	if !Compatible(obj, &matching, nil) {
		t.Error("Crate implementing Box!(Integer) should be compatible with Box!(Integer) reached through an instantiated copy")
	}

	mismatched := *decl
	mismatched.ParamInstances = Instantiate(decl.TypeParameters, []Type{str})
	mismatched.Declaration = decl
	if Compatible(obj, &mismatched, nil) {
		t.Error("Crate implementing Box!(Integer) should not satisfy Box!(String)")
	}
}

func TestUninstantiatedGenericParameterStaysUnbound(t *testing.T) {
	// The resolution step behind S5 (list: Array with its element
	// unbound): resolving Array's element parameter against list's nil
	// instance map yields the parameter itself.
	elem := NewTypeParameter("T", nil)
	arrayDecl := NewObject("Array")
	arrayDecl.TypeParameters = []*TypeParameter{elem}

	list := &Object{
		Name:              "Array",
		AttributeTable:    map[string]*Attribute{},
		MethodTable:       map[string]*Block{},
		ImplementedTraits: map[*Trait]*TraitImplementation{},
		TypeParameters:    arrayDecl.TypeParameters,
		ParamInstances:    nil, // unbound
	}

	result := Resolve(elem, list.ParamInstances)
	if result != Type(elem) {
		t.Errorf("unbound parameter should resolve to itself, got %v", result)
	}
}

func TestLambdaInvariance(t *testing.T) {
	integer := NewObject("Integer")
	str := NewObject("String")

	a := NewBlock(BlockKindLambda)
	a.Parameters = []*Parameter{{Name: "0", Type: integer}}
	a.ReturnType = integer

	b := NewBlock(BlockKindLambda)
	b.Parameters = []*Parameter{{Name: "0", Type: str}}
	b.ReturnType = integer

	if Compatible(a, b, nil) {
		t.Error("lambdas with different argument types should not be compatible (invariance)")
	}
}

func TestMethodContravariance(t *testing.T) {
	animal := NewObject("Animal")
	dog := NewObject("Dog")
	dog.Prototype = animal
	equalT := NewTrait("Equal")
	if _, err := dog.ImplementTrait(equalT, nil); err != nil {
		t.Fatal(err)
	}

	// T expects a method (Animal) -> Animal; V provides (Dynamic) -> Animal.
	// The return types are identical, so this only checks that a Dynamic
	// parameter is accepted wherever any parameter type is expected. (Dog
	// would not do as V's return type: a prototype link does not make
	// Dog compatible with Animal.)
	vBlock := NewBlock(BlockKindMethod)
	vBlock.Parameters = []*Parameter{{Name: "0", Type: DynamicType}}
	vBlock.ReturnType = animal

	tBlock := NewBlock(BlockKindMethod)
	tBlock.Parameters = []*Parameter{{Name: "0", Type: animal}}
	tBlock.ReturnType = animal

	if !compatibleBlock(vBlock, tBlock) {
		t.Error("Dynamic parameter should satisfy any expected parameter type")
	}
}

func TestSelfResolution(t *testing.T) {
	shape := NewObject("Shape")
	m := NewBlock(BlockKindMethod)
	m.ReturnType = SelfType

	resolved := SubstituteSelf(m, shape)
	rb := resolved.(*Block)
	if rb.ReturnType != Type(shape) {
		t.Errorf("Self should resolve to the enclosing self_type, got %v", rb.ReturnType)
	}
}
