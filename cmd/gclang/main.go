// Command gclang runs one of a small set of built-in demo programs on the
// gclang virtual machine. There is no surface syntax parser in scope, so
// instead of compiling source files this CLI builds a chosen program
// directly with the pkg/ast constructors, the same way the reference
// interpreter's main() hand-builds its demo program, and runs it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/math4tots-misc/gclang/manifest"
	"github.com/math4tots-misc/gclang/pkg/ast"
	"github.com/math4tots-misc/gclang/pkg/bytecode"
	"github.com/math4tots-misc/gclang/pkg/symbol"
	"github.com/math4tots-misc/gclang/vm"
)

func main() {
	gcMode := flag.String("gc", "prod", "GC trigger policy: prod or debug")
	traceBytecode := flag.Bool("trace-bytecode", false, "log each instruction before it executes, and each GC sweep's statistics")
	traceGC := flag.Bool("trace-gc", false, "log each GC sweep's statistics (also logs each instruction, like -trace-bytecode)")
	program := flag.String("program", "closures", "demo program to run: literals, scoping, if, closures")
	dumpBytecode := flag.Bool("dump-bytecode", false, "print disassembled bytecode before running")
	manifestPath := flag.String("manifest", "", "load gclang.toml settings from this path instead of flags")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gclang [options]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a built-in gclang demo program.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gclang -program closures\n")
		fmt.Fprintf(os.Stderr, "  gclang -program if -dump-bytecode\n")
		fmt.Fprintf(os.Stderr, "  gclang -gc debug -trace-bytecode -program scoping\n")
		fmt.Fprintf(os.Stderr, "  gclang -manifest ./gclang.toml\n")
	}
	flag.Parse()

	if *manifestPath != "" {
		m, err := manifest.LoadFile(*manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
			os.Exit(1)
		}
		*gcMode = m.GC.Mode
		*traceBytecode = m.Trace.Bytecode
		*traceGC = m.Trace.GC
		*program = m.Run.Program
		*dumpBytecode = m.Run.DumpBytecode
	}

	e, err := demoProgram(*program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	blob, err := bytecode.Compile(e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compile error: %v\n", err)
		os.Exit(1)
	}

	if *dumpBytecode {
		fmt.Println(bytecode.Disassemble(blob, nil))
	}

	mode := vm.GCModeProd
	if *gcMode == "debug" {
		mode = vm.GCModeDebug
	}

	v := vm.NewVM(
		vm.WithGCMode(mode),
		vm.WithBytecodeTrace(*traceBytecode || *traceGC),
	)
	if err := v.Run(blob); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// demoProgram builds the named demo program's AST. Each mirrors one of
// the end-to-end scenarios the runtime is tested against.
func demoProgram(name string) (ast.Expression, error) {
	switch name {
	case "literals":
		return ast.Block(
			ast.DebugPrint(ast.Integer(124124)),
			ast.DebugPrint(ast.Integer(7)),
		), nil

	case "scoping":
		x := symbol.Intern("x")
		return ast.Block(
			ast.Declare(x, ast.Integer(55371)),
			ast.DebugPrint(ast.Variable(x)),
			ast.DebugPrint(ast.Nil()),
		), nil

	case "if":
		return ast.DebugPrint(ast.If(ast.Nil(), ast.Integer(11111), ast.Integer(222222))), nil

	case "closures":
		f := symbol.Intern("f")
		a := symbol.Intern("a")
		return ast.Block(
			ast.Declare(f, ast.Lambda([]symbol.Symbol{a}, ast.Block(
				ast.DebugPrint(ast.Variable(a)),
			))),
			ast.Call(ast.Variable(f), ast.Integer(777777)),
			ast.Call(ast.Variable(f), ast.Integer(9999999999)),
			ast.DebugPrint(ast.Nil()),
		), nil

	default:
		return ast.Expression{}, fmt.Errorf("unknown demo program %q (want literals, scoping, if, closures)", name)
	}
}
