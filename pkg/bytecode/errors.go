package bytecode

import "fmt"

// CompileError reports a structurally malformed Expression — for example
// an If node without exactly three children. The AST builders in pkg/ast
// always produce well-formed trees; CompileError exists because
// ast.Expression's fields are public and nothing stops a caller from
// constructing one by hand.
type CompileError struct {
	Kind   string // the ast.Kind string whose shape was wrong
	Detail string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s: %s", e.Kind, e.Detail)
}

func newCompileError(kind fmt.Stringer, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind.String(), Detail: fmt.Sprintf(format, args...)}
}
