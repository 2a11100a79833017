package vm

import (
	"testing"

	"github.com/math4tots-misc/gclang/pkg/symbol"
)

func TestTableDeclareThenGet(t *testing.T) {
	tbl := NewTable()
	name := symbol.Intern("table-test-a")
	if err := tbl.Declare(name, IntegerValue(42)); err != nil {
		t.Fatal(err)
	}
	v, err := tbl.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindInteger || v.Integer() != 42 {
		t.Errorf("Get = %v, want Integer(42)", v)
	}
}

func TestTableGetWalksPrototypeChain(t *testing.T) {
	root := NewTable()
	name := symbol.Intern("table-test-proto")
	root.Declare(name, IntegerValue(7))

	child := NewChildTable(root)
	v, err := child.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	if v.Integer() != 7 {
		t.Errorf("Get via prototype = %v, want Integer(7)", v)
	}
}

func TestTableGetMissingNameIsNameError(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Get(symbol.Intern("table-test-missing"))
	if _, ok := err.(*NameError); !ok {
		t.Fatalf("err = %T, want *NameError", err)
	}
}

func TestTableDeclareTwiceInSameTableIsRedeclarationError(t *testing.T) {
	tbl := NewTable()
	name := symbol.Intern("table-test-redecl")
	if err := tbl.Declare(name, NilValue); err != nil {
		t.Fatal(err)
	}
	err := tbl.Declare(name, NilValue)
	if _, ok := err.(*RedeclarationError); !ok {
		t.Fatalf("err = %T, want *RedeclarationError", err)
	}
}

func TestTableDeclareInChildDoesNotAffectParent(t *testing.T) {
	root := NewTable()
	name := symbol.Intern("table-test-shadow")
	root.Declare(name, IntegerValue(1))

	child := NewChildTable(root)
	if err := child.Declare(name, IntegerValue(2)); err != nil {
		t.Fatal(err)
	}

	rootVal, _ := root.Get(name)
	childVal, _ := child.Get(name)
	if rootVal.Integer() != 1 {
		t.Errorf("root value mutated: %v", rootVal)
	}
	if childVal.Integer() != 2 {
		t.Errorf("child value = %v, want Integer(2)", childVal)
	}
}

func TestTableTraverseVisitsHeapValuesAndProto(t *testing.T) {
	root := NewTable()
	child := NewChildTable(root)
	fn := &Function{Env: root, Blob: nil}
	child.Declare(symbol.Intern("table-test-traverse-fn"), FunctionValue(fn))

	var visited []heapObject
	child.traverse(func(o heapObject) { visited = append(visited, o) })

	if len(visited) != 2 {
		t.Fatalf("traverse visited %d objects, want 2 (function + proto)", len(visited))
	}
}
