// Package ast defines the Expression tree that the compiler lowers into
// bytecode. There is no surface syntax or parser in this module — the host
// program builds Expression trees directly with the constructors below.
package ast

import "github.com/math4tots-misc/gclang/pkg/symbol"

// Kind discriminates the variants of Expression.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindVariable
	KindLambda
	KindDeclare
	KindCall
	KindIf
	KindBlock
	KindDebugPrint
)

// String returns the variant name, matching the teacher's convention of a
// String method for every enum-like type in the pack (e.g. bytecode.Opcode).
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "NIL"
	case KindInteger:
		return "INTEGER"
	case KindVariable:
		return "VARIABLE"
	case KindLambda:
		return "LAMBDA"
	case KindDeclare:
		return "DECLARE"
	case KindCall:
		return "CALL"
	case KindIf:
		return "IF"
	case KindBlock:
		return "BLOCK"
	case KindDebugPrint:
		return "DEBUG_PRINT"
	default:
		return "INVALID"
	}
}

// Expression is a node in the AST the compiler consumes. Only the fields
// relevant to Kind are populated; see the constructors below for the
// shape each variant expects.
type Expression struct {
	Kind Kind

	Integer int64         // KindInteger
	Name    symbol.Symbol // KindVariable, KindDeclare (declared name)
	Params  []symbol.Symbol // KindLambda

	// Children, by variant:
	//   KindLambda:     [body]
	//   KindDeclare:    [value]
	//   KindCall:       [callee, arg0, arg1, ...]
	//   KindIf:         [cond, then, else]
	//   KindBlock:      [stmt0, stmt1, ...]
	//   KindDebugPrint: [value]
	Children []Expression
}

// Nil builds a nil literal.
func Nil() Expression {
	return Expression{Kind: KindNil}
}

// Integer builds an integer literal.
func Integer(n int64) Expression {
	return Expression{Kind: KindInteger, Integer: n}
}

// Variable builds a reference to a lexically bound name.
func Variable(name symbol.Symbol) Expression {
	return Expression{Kind: KindVariable, Name: name}
}

// Lambda builds a function literal with the given parameter names and body.
func Lambda(params []symbol.Symbol, body Expression) Expression {
	return Expression{
		Kind:     KindLambda,
		Params:   params,
		Children: []Expression{body},
	}
}

// Declare builds a declaration of name bound to value in the current scope.
// Like every expression form, its value is the value that was declared.
func Declare(name symbol.Symbol, value Expression) Expression {
	return Expression{
		Kind:     KindDeclare,
		Name:     name,
		Children: []Expression{value},
	}
}

// Call builds an application of callee to args, in source order.
func Call(callee Expression, args ...Expression) Expression {
	children := make([]Expression, 0, len(args)+1)
	children = append(children, callee)
	children = append(children, args...)
	return Expression{Kind: KindCall, Children: children}
}

// If builds a conditional: cond is evaluated, then exactly one of then/els
// is evaluated and becomes the result.
func If(cond, then, els Expression) Expression {
	return Expression{Kind: KindIf, Children: []Expression{cond, then, els}}
}

// Block builds a sequence of statements whose value is the value of the
// last statement (or Nil, if stmts is empty).
func Block(stmts ...Expression) Expression {
	return Expression{Kind: KindBlock, Children: append([]Expression{}, stmts...)}
}

// DebugPrint builds a diagnostic print of value. Its own value is value,
// unchanged — printing is a side effect, not a consuming operation.
func DebugPrint(value Expression) Expression {
	return Expression{Kind: KindDebugPrint, Children: []Expression{value}}
}
