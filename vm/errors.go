package vm

import "fmt"

// NameError reports a lookup for a name that is not declared in the
// current scope or any of its prototypes.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("no such name %q", e.Name)
}

// RedeclarationError reports a DECLARE_VARIABLE for a name already bound
// directly in the target scope. Redeclaration is never allowed, even with
// the same value.
type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("already declared name %q", e.Name)
}

// TypeError reports an operation applied to a value of the wrong kind,
// such as calling a non-Function value.
type TypeError struct {
	Detail string
}

func (e *TypeError) Error() string {
	return "type error: " + e.Detail
}

func newTypeError(format string, args ...any) *TypeError {
	return &TypeError{Detail: fmt.Sprintf(format, args...)}
}

// ArityError reports a CALL whose argument count does not match the
// callee's declared parameter count.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d args but got %d", e.Want, e.Got)
}

// InvalidInstructionError reports an Opcode the fetch-decode-execute loop
// does not recognize, including the zero value OpInvalid, as well as the
// reserved OpTailCall.
type InvalidInstructionError struct {
	Detail string
}

func (e *InvalidInstructionError) Error() string {
	return "invalid instruction: " + e.Detail
}
