// Package ast defines the typed AST produced by the parser's elaborator:
// a single tagged Node struct (rather than one type per expression/statement
// kind) plus the Obj storage-entity model and the type annotator that
// stamps every node with a ctype.Type at construction time.
//
// A tagged union with exhaustive switch dispatch is the deliberate choice
// here (see DESIGN.md) because every Node kind in this grammar shares most
// of its fields (Lhs/Rhs, Cond/Then/Els, Tok, Ty, Next) the same way the
// original C compiler's single `struct Node` does, and spec.md §9 calls for
// exactly this shape in a systems-language port.
package ast

import (
	"mcc/ctype"
	"mcc/token"
)

// NodeKind tags the variant a Node represents.
type NodeKind int

const (
	Num NodeKind = iota
	Var
	Neg
	Addr
	Deref
	Add
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Assign
	Funcall
	Return
	If
	For
	Block
	ExprStmt
)

// Node is a single AST node. Which fields are meaningful depends on Kind:
//
//   - Num: Val
//   - Var: Obj
//   - Neg, Addr, Deref: Lhs
//   - Add, Sub, Mul, Div, Eq, Ne, Lt, Le, Assign: Lhs, Rhs
//   - Funcall: FuncName, Args
//   - Return, ExprStmt: Lhs
//   - If: Cond, Then, Els
//   - For: Init, Cond, Inc, Then (loop body)
//   - Block: Body (head of the statement list, linked through Next)
//
// Next links sibling statements inside a Block (or at file scope, though
// this compiler has no file-scope statements). Ty is populated once, by
// AddType, and never mutated afterward.
type Node struct {
	Kind NodeKind
	Tok  token.Token
	Ty   *ctype.Type
	Next *Node

	Lhs *Node
	Rhs *Node

	Cond *Node
	Then *Node
	Els  *Node
	Init *Node
	Inc  *Node

	Body *Node

	Obj *Obj
	Val int64

	FuncName string
	Args     []*Node
}
