package bytecode

import "github.com/math4tots-misc/gclang/pkg/ast"

// Compile lowers an Expression tree into a root Blob by structural
// recursion, following the emission rules below for each variant. Nested
// lambdas get their own child Blob, embedded as the operand of a
// PUSH_FUNCTION instruction in the enclosing Blob.
func Compile(e ast.Expression) (*Blob, error) {
	b := NewBlob()
	if err := compileInto(b, e); err != nil {
		return nil, err
	}
	return b, nil
}

func compileInto(b *Blob, e ast.Expression) error {
	switch e.Kind {
	case ast.KindNil:
		b.Emit(OpPushNil)
		return nil

	case ast.KindInteger:
		b.EmitInt(OpPushInteger, e.Integer)
		return nil

	case ast.KindVariable:
		b.EmitSymbol(OpPushVariable, e.Name)
		return nil

	case ast.KindLambda:
		if len(e.Children) != 1 {
			return newCompileError(e.Kind, "want 1 body, got %d", len(e.Children))
		}
		child := NewBlob()
		child.Params = e.Params
		if err := compileInto(child, e.Children[0]); err != nil {
			return err
		}
		b.EmitBlob(OpPushFunction, child)
		return nil

	case ast.KindDeclare:
		if len(e.Children) != 1 {
			return newCompileError(e.Kind, "want 1 value, got %d", len(e.Children))
		}
		if err := compileInto(b, e.Children[0]); err != nil {
			return err
		}
		b.EmitSymbol(OpDeclareVariable, e.Name)
		return nil

	case ast.KindCall:
		// Children hold the callee first (source order), but the
		// bytecode is emitted callee-last: all arguments, then the
		// callee, so the callee ends up on top of the eval stack at
		// CALL time. This order was a documented ambiguity
		// in the reference implementation's history; CALL's handler
		// only works if the callee is on top, so that is what we emit.
		if len(e.Children) < 1 {
			return newCompileError(e.Kind, "want a callee, got no children")
		}
		callee := e.Children[0]
		args := e.Children[1:]
		for _, arg := range args {
			if err := compileInto(b, arg); err != nil {
				return err
			}
		}
		if err := compileInto(b, callee); err != nil {
			return err
		}
		b.EmitInt(OpCall, int64(len(args)))
		return nil

	case ast.KindIf:
		if len(e.Children) != 3 {
			return newCompileError(e.Kind, "want 3 children (cond, then, else), got %d", len(e.Children))
		}
		if err := compileInto(b, e.Children[0]); err != nil {
			return err
		}
		ifIdx := b.EmitJump(OpIf)
		if err := compileInto(b, e.Children[1]); err != nil {
			return err
		}
		elseIdx := b.EmitJump(OpElse)
		if err := compileInto(b, e.Children[2]); err != nil {
			return err
		}
		b.Patch(ifIdx, elseIdx+1)
		b.Patch(elseIdx, b.Len())
		return nil

	case ast.KindBlock:
		if len(e.Children) == 0 {
			b.Emit(OpPushNil)
			return nil
		}
		b.Emit(OpBlockStart)
		for _, stmt := range e.Children[:len(e.Children)-1] {
			if err := compileInto(b, stmt); err != nil {
				return err
			}
			b.Emit(OpPop)
		}
		if err := compileInto(b, e.Children[len(e.Children)-1]); err != nil {
			return err
		}
		b.Emit(OpBlockEnd)
		return nil

	case ast.KindDebugPrint:
		if len(e.Children) != 1 {
			return newCompileError(e.Kind, "want 1 value, got %d", len(e.Children))
		}
		if err := compileInto(b, e.Children[0]); err != nil {
			return err
		}
		b.Emit(OpDebugPrint)
		return nil

	default:
		return newCompileError(e.Kind, "unknown expression kind")
	}
}
