package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/math4tots-misc/gclang/pkg/bytecode"
)

// Option configures a VM at construction time.
type Option func(*config)

type config struct {
	gcMode        GCMode
	bytecodeTrace bool
	debugPrintOut io.Writer
}

// WithGCMode sets the collector's trigger policy. The default is
// GCModeProd.
func WithGCMode(mode GCMode) Option {
	return func(c *config) { c.gcMode = mode }
}

// WithBytecodeTrace enables or disables trace logging via commonlog: one
// record per executed instruction and one per GC sweep. The default is
// disabled.
func WithBytecodeTrace(enabled bool) Option {
	return func(c *config) { c.bytecodeTrace = enabled }
}

// WithDebugPrintWriter sets the sink DEBUG_PRINT writes to. The default
// is os.Stdout.
func WithDebugPrintWriter(w io.Writer) Option {
	return func(c *config) { c.debugPrintOut = w }
}

// VM executes compiled Blobs. It owns three parallel stacks (eval, ret,
// env), a heap of GC-managed Table/Function objects, and the single
// program counter driving the fetch-decode-execute loop.
type VM struct {
	eval []Value
	ret  []bytecode.ProgramCounter
	env  []*Table
	pc   bytecode.ProgramCounter

	heap *heap
	cfg  config

	lastSweep *SweepStats
}

// NewVM returns a VM ready to Run a top-level Blob. The VM starts with a
// single root Table (no prototype) as the outermost scope, matching the
// reference interpreter's envstack({make<Table>()}) initialization.
func NewVM(opts ...Option) *VM {
	cfg := config{
		gcMode:        GCModeProd,
		debugPrintOut: os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	v := &VM{
		heap: newHeap(),
		cfg:  cfg,
	}
	v.env = []*Table{make1(v, NewTable())}
	return v
}

// make1 registers obj with the heap for collection and returns it.
func make1[T heapObject](v *VM, obj T) T {
	v.heap.track(obj)
	return obj
}

// LastSweep returns statistics from the most recent GC pass, or nil if
// none has run yet.
func (v *VM) LastSweep() *SweepStats {
	return v.lastSweep
}

// Run executes blob from its first instruction to completion: the
// fetch-decode-execute loop ends once the return stack is empty and the
// program counter has run off the end of the top-level blob.
func (v *VM) Run(blob *bytecode.Blob) error {
	v.pc = bytecode.NewProgramCounter(blob)
	for !(len(v.ret) == 0 && v.pc.Done()) {
		v.stepGC()

		if v.pc.Done() {
			v.pc = v.ret[len(v.ret)-1]
			v.ret = v.ret[:len(v.ret)-1]
			v.env = v.env[:len(v.env)-1]
			continue
		}

		inst := v.pc.Instruction()
		if v.cfg.bytecodeTrace {
			traceInstruction(len(v.env), blobLabel(v.pc.Blob), v.pc.Index, inst.Op.String())
		}

		if err := v.step(inst); err != nil {
			return err
		}
	}
	return nil
}

// stepGC runs (or considers running) a collection before the next
// instruction, per the configured GCMode: GCModeDebug collects every
// instruction, GCModeProd collects once the live object count reaches
// the current threshold.
func (v *VM) stepGC() {
	switch v.cfg.gcMode {
	case GCModeDebug:
		v.collect()
	default:
		if v.heap.shouldCollect() {
			v.collect()
		}
	}
}

// collect runs one mark-and-sweep pass rooted at the heap values on the
// eval stack and every Table on the env stack. The return stack holds
// only program counters into immortal Blobs, so it contributes no roots.
func (v *VM) collect() {
	roots := make([]heapObject, 0, len(v.eval)+len(v.env))
	for _, val := range v.eval {
		if val.IsHeapObject() {
			roots = append(roots, val.obj)
		}
	}
	for _, t := range v.env {
		roots = append(roots, t)
	}
	stats := v.heap.sweep(roots)
	v.lastSweep = &stats
	if v.cfg.bytecodeTrace {
		traceSweep(stats)
	}
}

// topEnv returns the innermost active scope.
func (v *VM) topEnv() *Table {
	return v.env[len(v.env)-1]
}

// pop removes and returns the top of the eval stack.
func (v *VM) pop() Value {
	top := v.eval[len(v.eval)-1]
	v.eval = v.eval[:len(v.eval)-1]
	return top
}

func (v *VM) push(val Value) {
	v.eval = append(v.eval, val)
}

// step dispatches a single decoded instruction.
func (v *VM) step(inst bytecode.Instruction) error {
	switch inst.Op {
	case bytecode.OpPushNil:
		v.push(NilValue)
		v.pc.Index++

	case bytecode.OpPushInteger:
		v.push(IntegerValue(inst.Int))
		v.pc.Index++

	case bytecode.OpPushVariable:
		val, err := v.topEnv().Get(inst.Symbol)
		if err != nil {
			return err
		}
		v.push(val)
		v.pc.Index++

	case bytecode.OpDeclareVariable:
		if err := v.topEnv().Declare(inst.Symbol, v.eval[len(v.eval)-1]); err != nil {
			return err
		}
		v.pc.Index++

	case bytecode.OpPushFunction:
		fn := make1(v, &Function{Env: v.topEnv(), Blob: inst.Blob})
		v.push(FunctionValue(fn))
		v.pc.Index++

	case bytecode.OpPop:
		v.pop()
		v.pc.Index++

	case bytecode.OpBlockStart:
		v.env = append(v.env, make1(v, NewChildTable(v.topEnv())))
		v.pc.Index++

	case bytecode.OpBlockEnd:
		v.env = v.env[:len(v.env)-1]
		v.pc.Index++

	case bytecode.OpIf:
		cond := v.pop()
		if cond.Truthy() {
			v.pc.Index++
		} else {
			v.pc.Index = int(inst.Int)
		}

	case bytecode.OpElse:
		v.pc.Index = int(inst.Int)

	case bytecode.OpDebugPrint:
		fmt.Fprintln(v.cfg.debugPrintOut, v.eval[len(v.eval)-1].debugString())
		v.pc.Index++

	case bytecode.OpCall:
		return v.call(int(inst.Int))

	case bytecode.OpTailCall:
		return &InvalidInstructionError{Detail: "TAILCALL is reserved and not implemented"}

	default:
		return &InvalidInstructionError{Detail: inst.Op.String()}
	}
	return nil
}

// call implements the CALL protocol: the callee is on top of eval, with
// nargs arguments beneath it (deepest argument first), per the compiler's
// args-then-callee emission order. It binds each argument into a fresh
// child Table of the callee's captured environment and transfers control
// to the callee's Blob, pushing the resumption point onto ret/env.
func (v *VM) call(nargs int) error {
	callee := v.pop()
	fn := callee.Function()
	if fn == nil {
		return newTypeError("not callable: %s", callee.Kind())
	}

	if len(fn.Blob.Params) != nargs {
		return &ArityError{Want: len(fn.Blob.Params), Got: nargs}
	}

	v.pc.Index++
	v.ret = append(v.ret, v.pc)

	activation := make1(v, NewChildTable(fn.Env))
	args := v.eval[len(v.eval)-nargs:]
	for i, param := range fn.Blob.Params {
		if err := activation.Declare(param, args[i]); err != nil {
			return err
		}
	}
	v.eval = v.eval[:len(v.eval)-nargs]

	v.env = append(v.env, activation)
	v.pc = bytecode.NewProgramCounter(fn.Blob)
	return nil
}

func blobLabel(b *bytecode.Blob) string {
	return fmt.Sprintf("%p", b)
}
