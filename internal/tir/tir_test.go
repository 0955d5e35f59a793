package tir

import (
	"testing"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/types"
)

func TestNewStateBootstrapsWellKnownTypes(t *testing.T) {
	st := NewState(config.Default())
	if st.TypeDb.Integer == nil || st.TypeDb.Array == nil || st.TypeDb.TopLevel == nil {
		t.Fatal("expected well-known prototypes to be bootstrapped")
	}
	if len(st.TypeDb.Array.TypeParameters) != 1 {
		t.Fatalf("expected Array to carry exactly one type parameter, got %d", len(st.TypeDb.Array.TypeParameters))
	}
}

func TestInstantiateArrayDoesNotMutateDeclaration(t *testing.T) {
	st := NewState(config.Default())
	before := st.TypeDb.Array.ParamInstances.Len()

	inst := st.TypeDb.InstantiateArray(st.TypeDb.Integer)
	elem := st.TypeDb.ArrayElementType(inst)
	if elem != types.Type(st.TypeDb.Integer) {
		t.Errorf("expected instantiated Array's element to be Integer, got %v", elem)
	}
	if st.TypeDb.Array.ParamInstances.Len() != before {
		t.Error("instantiating Array must not mutate the shared declaration")
	}
}

func TestModuleRegistryRoundtrips(t *testing.T) {
	st := NewState(config.Default())
	mod := NewTirModule("main", &ast.File{})
	st.RegisterModule(mod)

	got, ok := st.LookupModule("main")
	if !ok || got != mod {
		t.Fatal("expected to find the registered module by path")
	}
	if _, ok := st.LookupModule("missing"); ok {
		t.Error("expected lookup of an unregistered path to fail")
	}
}
