package symbols

import (
	"testing"

	"github.com/inko-lang/inko-sub002/internal/types"
)

func TestDefineAndLookup(t *testing.T) {
	root := NewSymbolTable(nil)
	integer := types.NewObject("Integer")

	if _, err := root.Define("x", integer, false, KindAny); err != nil {
		t.Fatalf("unexpected error defining x: %v", err)
	}
	sym, ok := root.Lookup("x")
	if !ok || sym.Type != types.Type(integer) {
		t.Fatalf("expected to find x bound to Integer")
	}
}

func TestRedefinitionInSameScopeFails(t *testing.T) {
	root := NewSymbolTable(nil)
	integer := types.NewObject("Integer")
	if _, err := root.Define("x", integer, false, KindAny); err != nil {
		t.Fatal(err)
	}
	if _, err := root.Define("x", integer, false, KindAny); err == nil {
		t.Fatal("expected ErrRedefined on duplicate define in same table")
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	outer := NewSymbolTable(nil)
	integer := types.NewObject("Integer")
	str := types.NewObject("String")
	outer.Define("x", integer, false, KindAny)

	inner := NewSymbolTable(outer)
	if _, err := inner.Define("x", str, false, KindAny); err != nil {
		t.Fatalf("shadowing in a nested scope should succeed: %v", err)
	}
	sym, _ := inner.Lookup("x")
	if sym.Type != types.Type(str) {
		t.Error("inner lookup should see the shadowing String binding")
	}
	outerSym, _ := outer.Lookup("x")
	if outerSym.Type != types.Type(integer) {
		t.Error("outer table must be unaffected by inner shadowing")
	}
}

func TestLookupSearchesParentChain(t *testing.T) {
	outer := NewSymbolTable(nil)
	integer := types.NewObject("Integer")
	outer.Define("y", integer, false, KindAny)

	inner := NewSymbolTable(outer)
	sym, ok := inner.Lookup("y")
	if !ok || sym.Type != types.Type(integer) {
		t.Fatal("lookup should find bindings defined in an enclosing table")
	}
}

func TestUpdateUndefinedFails(t *testing.T) {
	root := NewSymbolTable(nil)
	if err := root.Update("missing", types.DynamicType); err == nil {
		t.Fatal("expected ErrUndefined updating a name that was never defined")
	}
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	root := NewSymbolTable(nil)
	root.Define("c", types.DynamicType, false, KindAny)
	root.Define("a", types.DynamicType, false, KindAny)
	root.Define("b", types.DynamicType, false, KindAny)

	names := root.Names()
	want := []string{"c", "a", "b"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("expected insertion order %v, got %v", want, names)
		}
	}
}
