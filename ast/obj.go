package ast

import "mcc/ctype"

// Obj is a named storage entity: a function, a global variable, or a local
// variable, per spec.md §3.
type Obj struct {
	Name       string
	Ty         *ctype.Type
	IsLocal    bool
	IsFunction bool

	// Locals only: frame offset in bytes from rbp; the object lives at
	// [rbp - Offset].
	Offset int

	// Functions only.
	StackSize int
	Params    []*Obj
	Locals    []*Obj
	Body      *Node

	// Globals only. nil means zero-initialized storage.
	InitData []byte
}
