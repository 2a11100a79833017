// Package vm implements the gclang virtual machine: the value model, the
// two heap object kinds (Table and Function), the tracing mark-and-sweep
// garbage collector, and the fetch-decode-execute loop that drives them.
package vm

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindTable
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "NIL"
	case KindInteger:
		return "INTEGER"
	case KindTable:
		return "TABLE"
	case KindFunction:
		return "FUNCTION"
	default:
		return "INVALID"
	}
}

// Value is a tagged union of the language's four primitive/object kinds.
// Nil and Integer are carried by value; Table and Function carry a
// reference to a heap object owned by the GC.
//
// The reference implementation (original_source/vm/value.go's sibling in
// the teacher repo) NaN-boxes values into a single uint64 for a
// performance-sensitive Smalltalk object model with many more variants.
// That representation buys compactness at the cost of hiding heap
// pointers from Go's own garbage collector inside an opaque integer. This
// spec's Value has exactly four variants and no tight inner loop that
// depends on a packed representation, so a plain tagged struct is the
// idiomatic Go choice: it keeps every heap reference a real, GC-visible
// *Table/*Function pointer, matching how the C++ reference implementation
// models Value as a tagged union of an int64 and an Object* (x.cc).
type Value struct {
	kind Kind
	i    int64
	obj  heapObject
}

// heapObject is satisfied by every GC-managed object kind: Table and
// Function. It is unexported because only this package allocates objects
// satisfying it.
type heapObject interface {
	color() objectColor
	setColor(objectColor)
	// traverse calls visit once for every heap object directly
	// reachable from this object — the tracing step of mark-and-sweep.
	traverse(visit func(heapObject))
}

// NilValue is the single nil value.
var NilValue = Value{kind: KindNil}

// IntegerValue returns an Integer value wrapping n.
func IntegerValue(n int64) Value {
	return Value{kind: KindInteger, i: n}
}

// TableValue returns a Value referencing t.
func TableValue(t *Table) Value {
	return Value{kind: KindTable, obj: t}
}

// FunctionValue returns a Value referencing f.
func FunctionValue(f *Function) Value {
	return Value{kind: KindFunction, obj: f}
}

// Kind reports v's variant.
func (v Value) Kind() Kind { return v.kind }

// Integer returns v's payload as an int64. Only meaningful if
// v.Kind() == KindInteger.
func (v Value) Integer() int64 { return v.i }

// Table returns v's payload as a *Table, or nil if v is not a Table value.
func (v Value) Table() *Table {
	t, _ := v.obj.(*Table)
	return t
}

// Function returns v's payload as a *Function, or nil if v is not a
// Function value.
func (v Value) Function() *Function {
	f, _ := v.obj.(*Function)
	return f
}

// Truthy reports whether v is truthy: every non-nil value is truthy.
func (v Value) Truthy() bool {
	return v.kind != KindNil
}

// IsHeapObject reports whether v carries a reference the GC must trace —
// i.e. v.Kind() is KindTable or KindFunction.
func (v Value) IsHeapObject() bool {
	return v.obj != nil
}

// debugString renders v the way DEBUG_PRINT does: the uppercase type tag,
// followed for integers only by the value in parentheses.
func (v Value) debugString() string {
	switch v.kind {
	case KindInteger:
		return v.kind.String() + "(" + itoa(v.i) + ")"
	default:
		return v.kind.String()
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	var buf [20]byte
	i := len(buf)
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// compile-time interface checks
var (
	_ heapObject = (*Table)(nil)
	_ heapObject = (*Function)(nil)
)
