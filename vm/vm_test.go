package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/math4tots-misc/gclang/pkg/ast"
	"github.com/math4tots-misc/gclang/pkg/bytecode"
	"github.com/math4tots-misc/gclang/pkg/symbol"
)

func runProgram(t *testing.T, e ast.Expression, opts ...Option) string {
	t.Helper()
	blob, err := bytecode.Compile(e)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var out bytes.Buffer
	opts = append(opts, WithDebugPrintWriter(&out))
	v := NewVM(opts...)
	if err := v.Run(blob); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestScenarioLiterals(t *testing.T) {
	e := ast.Block(
		ast.DebugPrint(ast.Integer(124124)),
		ast.DebugPrint(ast.Integer(7)),
	)
	got := runProgram(t, e)
	want := "INTEGER(124124)\nINTEGER(7)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioScoping(t *testing.T) {
	x := symbol.Intern("x")
	e := ast.Block(
		ast.Declare(x, ast.Integer(55371)),
		ast.DebugPrint(ast.Variable(x)),
		ast.DebugPrint(ast.Nil()),
	)
	got := runProgram(t, e)
	want := "INTEGER(55371)\nNIL\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioIf(t *testing.T) {
	e := ast.DebugPrint(ast.If(ast.Nil(), ast.Integer(11111), ast.Integer(222222)))
	got := runProgram(t, e)
	want := "INTEGER(222222)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioClosures(t *testing.T) {
	f := symbol.Intern("f")
	a := symbol.Intern("a")
	e := ast.Block(
		ast.Declare(f, ast.Lambda([]symbol.Symbol{a}, ast.Block(
			ast.DebugPrint(ast.Variable(a)),
		))),
		ast.Call(ast.Variable(f), ast.Integer(777777)),
		ast.Call(ast.Variable(f), ast.Integer(9999999999)),
	)
	got := runProgram(t, e)
	want := "INTEGER(777777)\nINTEGER(9999999999)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioClosuresUnderDebugGC(t *testing.T) {
	f := symbol.Intern("closure-gc-f")
	a := symbol.Intern("closure-gc-a")
	e := ast.Block(
		ast.Declare(f, ast.Lambda([]symbol.Symbol{a}, ast.Block(
			ast.DebugPrint(ast.Variable(a)),
		))),
		ast.Call(ast.Variable(f), ast.Integer(1)),
		ast.Call(ast.Variable(f), ast.Integer(2)),
	)
	got := runProgram(t, e, WithGCMode(GCModeDebug))
	want := "INTEGER(1)\nINTEGER(2)\n"
	if got != want {
		t.Errorf("GC-observational-invisibility violated: got %q, want %q", got, want)
	}
}

func TestUndeclaredVariableIsNameError(t *testing.T) {
	blob, err := bytecode.Compile(ast.Variable(symbol.Intern("never-declared-xyz")))
	if err != nil {
		t.Fatal(err)
	}
	v := NewVM()
	err = v.Run(blob)
	if _, ok := err.(*NameError); !ok {
		t.Fatalf("err = %T (%v), want *NameError", err, err)
	}
}

func TestCallingIntegerIsTypeError(t *testing.T) {
	blob, err := bytecode.Compile(ast.Call(ast.Integer(5)))
	if err != nil {
		t.Fatal(err)
	}
	v := NewVM()
	err = v.Run(blob)
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("err = %T (%v), want *TypeError", err, err)
	}
}

func TestCallWithWrongArityIsArityError(t *testing.T) {
	a := symbol.Intern("arity-a")
	e := ast.Call(ast.Lambda([]symbol.Symbol{a}, ast.Variable(a)), ast.Integer(1), ast.Integer(2))
	blob, err := bytecode.Compile(e)
	if err != nil {
		t.Fatal(err)
	}
	v := NewVM()
	err = v.Run(blob)
	ae, ok := err.(*ArityError)
	if !ok {
		t.Fatalf("err = %T (%v), want *ArityError", err, err)
	}
	if ae.Want != 1 || ae.Got != 2 {
		t.Errorf("ArityError = %+v, want {Want:1 Got:2}", ae)
	}
}

func TestRedeclarationInSameScopeIsError(t *testing.T) {
	x := symbol.Intern("redecl-x")
	e := ast.Block(
		ast.Declare(x, ast.Integer(1)),
		ast.Declare(x, ast.Integer(2)),
	)
	blob, err := bytecode.Compile(e)
	if err != nil {
		t.Fatal(err)
	}
	v := NewVM()
	err = v.Run(blob)
	if _, ok := err.(*RedeclarationError); !ok {
		t.Fatalf("err = %T (%v), want *RedeclarationError", err, err)
	}
}

func TestShadowingInNestedBlockIsAllowed(t *testing.T) {
	x := symbol.Intern("shadow-x")
	e := ast.Block(
		ast.Declare(x, ast.Integer(1)),
		ast.Block(
			ast.Declare(x, ast.Integer(2)),
			ast.DebugPrint(ast.Variable(x)),
		),
		ast.DebugPrint(ast.Variable(x)),
	)
	got := runProgram(t, e)
	want := "INTEGER(2)\nINTEGER(1)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEveryLiveObjectIsWhiteAfterSweep(t *testing.T) {
	f := symbol.Intern("sweep-f")
	a := symbol.Intern("sweep-a")
	e := ast.Block(
		ast.Declare(f, ast.Lambda([]symbol.Symbol{a}, ast.Variable(a))),
		ast.Call(ast.Variable(f), ast.Integer(1)),
	)
	blob, err := bytecode.Compile(e)
	if err != nil {
		t.Fatal(err)
	}
	v := NewVM()
	if err := v.Run(blob); err != nil {
		t.Fatal(err)
	}
	v.collect()
	for _, obj := range v.heap.objects {
		if obj.color() != colorWhite {
			t.Errorf("object %v left non-white after sweep", obj)
		}
	}
}

func TestEvalStackEndsWithExactlyOneValue(t *testing.T) {
	e := ast.Block(ast.Integer(1), ast.Integer(2), ast.Integer(3))
	blob, err := bytecode.Compile(e)
	if err != nil {
		t.Fatal(err)
	}
	v := NewVM()
	if err := v.Run(blob); err != nil {
		t.Fatal(err)
	}
	if len(v.eval) != 1 {
		t.Errorf("len(eval) = %d, want 1", len(v.eval))
	}
	if len(v.env) != 1 {
		t.Errorf("len(env) = %d, want 1 (restored to pre-execution depth)", len(v.env))
	}
}

func TestDebugPrintDoesNotConsumeValue(t *testing.T) {
	// DEBUG_PRINT must not pop, so a subsequent POP in the enclosing
	// block sees the same value that was printed.
	e := ast.Block(ast.DebugPrint(ast.Integer(9)), ast.Integer(0))
	got := runProgram(t, e)
	if !strings.Contains(got, "INTEGER(9)") {
		t.Errorf("got %q, want it to contain INTEGER(9)", got)
	}
}
