package vm

import "github.com/math4tots-misc/gclang/pkg/bytecode"

// Function is a closure: a code Blob paired with the Table in scope at
// the PUSH_FUNCTION instruction that created it. Calling the function
// opens a fresh child Table of env for the activation's parameters and
// locals.
type Function struct {
	Env  *Table
	Blob *bytecode.Blob
	c    objectColor
}

func (f *Function) color() objectColor     { return f.c }
func (f *Function) setColor(c objectColor) { f.c = c }

// traverse visits the single heap object a Function directly holds: its
// captured environment.
func (f *Function) traverse(visit func(heapObject)) {
	visit(f.Env)
}
