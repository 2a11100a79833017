package bytecode

import (
	"fmt"
	"strings"

	"github.com/math4tots-misc/gclang/pkg/symbol"
)

// Disassemble returns a human-readable bytecode listing for b, recursing
// into any nested Blobs reached via PUSH_FUNCTION. Names are resolved
// through pool; pass symbol.Intern/symbol.Name's default pool by using
// nil.
func Disassemble(b *Blob, pool *symbol.Pool) string {
	var sb strings.Builder
	disassembleInto(&sb, b, pool, "0")
	return sb.String()
}

func disassembleInto(sb *strings.Builder, b *Blob, pool *symbol.Pool, label string) {
	fmt.Fprintf(sb, "; blob %s: nargs=%d", label, len(b.Params))
	for _, p := range b.Params {
		fmt.Fprintf(sb, " %s", resolveName(pool, p))
	}
	sb.WriteString("\n")

	var nested []*Blob
	for i, inst := range b.Instructions {
		fmt.Fprintf(sb, "%6d  %-18s", i, inst.Op.String())
		switch inst.Op.Operand() {
		case OperandInt:
			fmt.Fprintf(sb, "%d", inst.Int)
		case OperandSymbol:
			fmt.Fprintf(sb, "%s", resolveName(pool, inst.Symbol))
		case OperandBlob:
			fmt.Fprintf(sb, "<blob %s.%d>", label, len(nested))
			nested = append(nested, inst.Blob)
		}
		sb.WriteString("\n")
	}

	for i, child := range nested {
		sb.WriteString("\n")
		disassembleInto(sb, child, pool, fmt.Sprintf("%s.%d", label, i))
	}
}

func resolveName(pool *symbol.Pool, s symbol.Symbol) string {
	if pool == nil {
		return symbol.Name(s)
	}
	return pool.Name(s)
}
