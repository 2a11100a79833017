package vm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/math4tots-misc/gclang/pkg/symbol"
)

// Inspector produces a structured snapshot of a VM's live heap for
// diagnostics. It never mutates VM state and carries no reference to the
// collector beyond the VM it was built from, so inspecting is safe to
// call between Run steps in debug mode.
type Inspector struct {
	vm *VM
}

// NewInspector creates an Inspector attached to the given VM.
func NewInspector(v *VM) *Inspector {
	return &Inspector{vm: v}
}

// InspectionResult is one node of an inspected heap snapshot. Table and
// Function both render as Bindings; only Table populates Proto.
type InspectionResult struct {
	ID       string // a fresh uuid assigned to this object for this snapshot
	Type     string // "Table", "Function", "Nil", or "Integer"
	Value    string
	Proto    *InspectionResult
	Bindings []BindingInfo
}

// BindingInfo names one Table entry or a Function's captured environment.
type BindingInfo struct {
	Name  string
	Value *InspectionResult
}

// DefaultInspectionDepth bounds how deep Inspect recurses into nested
// Table/Function values before summarizing.
const DefaultInspectionDepth = 5

// Inspect snapshots v at the default depth.
func (i *Inspector) Inspect(v Value) *InspectionResult {
	return i.inspectDepth(v, DefaultInspectionDepth, make(map[heapObject]bool))
}

// Snapshot returns one InspectionResult per currently live Table on the
// VM's env stack, outermost first, each assigned a fresh display uuid.
func (i *Inspector) Snapshot() []*InspectionResult {
	seen := make(map[heapObject]bool)
	out := make([]*InspectionResult, len(i.vm.env))
	for idx, t := range i.vm.env {
		out[idx] = i.inspectDepth(TableValue(t), DefaultInspectionDepth, seen)
	}
	return out
}

func (i *Inspector) inspectDepth(v Value, depth int, seen map[heapObject]bool) *InspectionResult {
	switch v.Kind() {
	case KindNil:
		return &InspectionResult{ID: uuid.New().String(), Type: "Nil", Value: "nil"}
	case KindInteger:
		return &InspectionResult{ID: uuid.New().String(), Type: "Integer", Value: fmt.Sprintf("%d", v.Integer())}
	case KindTable:
		return i.inspectTable(v.Table(), depth, seen)
	case KindFunction:
		return i.inspectFunction(v.Function(), depth, seen)
	default:
		return &InspectionResult{ID: uuid.New().String(), Type: "Unknown", Value: "<unknown>"}
	}
}

func (i *Inspector) inspectTable(t *Table, depth int, seen map[heapObject]bool) *InspectionResult {
	result := &InspectionResult{ID: uuid.New().String(), Type: "Table"}
	if seen[t] {
		result.Value = "<cycle>"
		return result
	}
	seen[t] = true

	result.Value = fmt.Sprintf("a Table (%d bindings)", len(t.mapping))
	if depth <= 0 {
		return result
	}

	for name, val := range t.mapping {
		result.Bindings = append(result.Bindings, BindingInfo{
			Name:  symbol.Name(name),
			Value: i.inspectDepth(val, depth-1, seen),
		})
	}
	if t.proto != nil {
		result.Proto = i.inspectTable(t.proto, depth-1, seen)
	}
	return result
}

func (i *Inspector) inspectFunction(f *Function, depth int, seen map[heapObject]bool) *InspectionResult {
	result := &InspectionResult{
		ID:   uuid.New().String(),
		Type: "Function",
	}
	if seen[f] {
		result.Value = "<cycle>"
		return result
	}
	seen[f] = true

	var params []string
	if f.Blob != nil {
		params = make([]string, len(f.Blob.Params))
		for idx, p := range f.Blob.Params {
			params[idx] = symbol.Name(p)
		}
	}
	result.Value = fmt.Sprintf("a Function (%s)", strings.Join(params, " "))
	if depth <= 0 {
		return result
	}
	result.Bindings = []BindingInfo{{Name: "env", Value: i.inspectDepth(TableValue(f.Env), depth-1, seen)}}
	return result
}

// String renders r as an indented tree, the way the bytecode
// disassembler renders nested Blobs.
func (r *InspectionResult) String() string {
	var sb strings.Builder
	r.writeIndented(&sb, 0)
	return sb.String()
}

func (r *InspectionResult) writeIndented(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(sb, "%s%s[%s]: %s\n", prefix, r.Type, r.ID, r.Value)
	for _, b := range r.Bindings {
		fmt.Fprintf(sb, "%s  %s:\n", prefix, b.Name)
		b.Value.writeIndented(sb, indent+2)
	}
	if r.Proto != nil {
		fmt.Fprintf(sb, "%s  proto:\n", prefix)
		r.Proto.writeIndented(sb, indent+2)
	}
}
