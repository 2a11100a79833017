package vm

import "github.com/math4tots-misc/gclang/pkg/symbol"

// Table is the VM's sole scope/record object: a Symbol-keyed mapping
// with an optional prototype for lexical-scope-style lookup chaining.
// Every block and function activation is backed by one Table.
type Table struct {
	proto   *Table
	mapping map[symbol.Symbol]Value
	c       objectColor
}

// NewTable allocates a root Table with no prototype.
func NewTable() *Table {
	return &Table{mapping: make(map[symbol.Symbol]Value)}
}

// NewChildTable allocates a Table whose lookups fall back to proto when a
// name is not declared directly in the new table.
func NewChildTable(proto *Table) *Table {
	return &Table{proto: proto, mapping: make(map[symbol.Symbol]Value)}
}

// Get looks up name, walking the prototype chain on a miss. It returns a
// *NameError if name is not declared anywhere in the chain.
func (t *Table) Get(name symbol.Symbol) (Value, error) {
	for cur := t; cur != nil; cur = cur.proto {
		if v, ok := cur.mapping[name]; ok {
			return v, nil
		}
	}
	return NilValue, &NameError{Name: symbol.Name(name)}
}

// Declare binds name to value directly in t. It returns a
// *RedeclarationError if name is already bound in t itself; the
// prototype chain is not consulted, since shadowing an outer name is
// exactly what a nested block is for.
func (t *Table) Declare(name symbol.Symbol, value Value) error {
	if _, ok := t.mapping[name]; ok {
		return &RedeclarationError{Name: symbol.Name(name)}
	}
	t.mapping[name] = value
	return nil
}

func (t *Table) color() objectColor      { return t.c }
func (t *Table) setColor(c objectColor)  { t.c = c }

// traverse visits every heap object directly reachable from t: the
// values of its own bindings and its prototype, if any.
func (t *Table) traverse(visit func(heapObject)) {
	for _, v := range t.mapping {
		if v.IsHeapObject() {
			visit(v.obj)
		}
	}
	if t.proto != nil {
		visit(t.proto)
	}
}
