package bytecode

import "github.com/math4tots-misc/gclang/pkg/symbol"

// Instruction is a single decoded bytecode instruction: an Opcode plus
// whichever operand field Op.Operand() says is meaningful.
type Instruction struct {
	Op     Opcode
	Int    int64         // OperandInt: jump target, literal, or arg count
	Symbol symbol.Symbol // OperandSymbol
	Blob   *Blob         // OperandBlob
}

// Blob is an immutable-after-compilation unit of compiled bytecode: the
// parameter list and instruction sequence for one function body, or for
// the top-level program. Blobs are shared — a Function value only ever
// references a Blob, so the same Blob can back many closures.
type Blob struct {
	Params       []symbol.Symbol
	Instructions []Instruction
}

// NewBlob returns an empty Blob ready for emission.
func NewBlob() *Blob {
	return &Blob{Instructions: make([]Instruction, 0, 8)}
}

// Len returns the number of instructions emitted so far.
func (b *Blob) Len() int {
	return len(b.Instructions)
}

// Emit appends a bare, operand-less instruction and returns its index.
func (b *Blob) Emit(op Opcode) int {
	idx := len(b.Instructions)
	b.Instructions = append(b.Instructions, Instruction{Op: op})
	return idx
}

// EmitInt appends an instruction carrying an integer operand and returns
// its index.
func (b *Blob) EmitInt(op Opcode, n int64) int {
	idx := len(b.Instructions)
	b.Instructions = append(b.Instructions, Instruction{Op: op, Int: n})
	return idx
}

// EmitSymbol appends an instruction carrying a Symbol operand and returns
// its index.
func (b *Blob) EmitSymbol(op Opcode, s symbol.Symbol) int {
	idx := len(b.Instructions)
	b.Instructions = append(b.Instructions, Instruction{Op: op, Symbol: s})
	return idx
}

// EmitBlob appends an instruction carrying a nested Blob operand and
// returns its index.
func (b *Blob) EmitBlob(op Opcode, child *Blob) int {
	idx := len(b.Instructions)
	b.Instructions = append(b.Instructions, Instruction{Op: op, Blob: child})
	return idx
}

// EmitJump appends a jump instruction (IF or ELSE) with a placeholder
// target and returns its index, for later patching with Patch once the
// real target is known.
func (b *Blob) EmitJump(op Opcode) int {
	return b.EmitInt(op, -1)
}

// Patch sets the integer operand of the instruction at idx to target.
// Used to back-patch IF/ELSE jump targets once the jumped-to code has
// been emitted.
func (b *Blob) Patch(idx int, target int) {
	b.Instructions[idx].Int = int64(target)
}

// ProgramCounter is a position within a Blob: which Blob, and which
// instruction index. It "advances by one or jumps absolutely" per the
// fetch-decode-execute loop, and is "done" once Index runs off the end of
// Blob.Instructions — which is how the VM recognizes a function has
// returned.
type ProgramCounter struct {
	Blob  *Blob
	Index int
}

// NewProgramCounter returns a ProgramCounter positioned at the start of b.
func NewProgramCounter(b *Blob) ProgramCounter {
	return ProgramCounter{Blob: b, Index: 0}
}

// Done reports whether this ProgramCounter has run off the end of its Blob.
func (pc ProgramCounter) Done() bool {
	return pc.Index >= len(pc.Blob.Instructions)
}

// Instruction returns the instruction this ProgramCounter currently points
// at. Panics if Done.
func (pc ProgramCounter) Instruction() Instruction {
	return pc.Blob.Instructions[pc.Index]
}
