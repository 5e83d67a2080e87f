// Package ctype implements the small C type system this compiler supports:
// int, char, pointer, array, and function types, plus the size/base
// propagation rules needed by the parser's elaborator and the code
// generator.
package ctype

// Kind distinguishes the shape of a Type.
type Kind int

const (
	KindInt Kind = iota
	KindChar
	KindPtr
	KindArray
	KindFunc
)

// Type describes a C type. Pointer and array types carry a non-nil Base
// (their pointee/element type); int and char carry a nil Base. Func types
// carry Return and Params; everything else leaves those nil/empty.
//
// Name is the identifying token of the declarator this type was built for,
// set by the parser once a declarator chain has bound an identifier. It is
// unused by the type system itself.
type Type struct {
	Kind   Kind
	Size   int
	Base   *Type
	Len    int
	Return *Type
	Params []*Type
	Name   string
}

// Int and Char are the two canonical base types. Every other Type is
// allocated fresh by the constructors below; Int and Char are shared and
// must never be mutated in place (use Copy to get a detached value).
var (
	Int  = &Type{Kind: KindInt, Size: 8}
	Char = &Type{Kind: KindChar, Size: 1}
)

// PointerTo builds a pointer-to-base type.
func PointerTo(base *Type) *Type {
	return &Type{Kind: KindPtr, Base: base, Size: 8}
}

// ArrayOf builds an array-of-base type with the given element count.
func ArrayOf(base *Type, length int) *Type {
	return &Type{Kind: KindArray, Base: base, Len: length, Size: base.Size * length}
}

// NewFunc builds a function type with the given return type. Params is left
// empty; the parser appends to it as it parses the parameter list.
func NewFunc(returnTy *Type) *Type {
	return &Type{Kind: KindFunc, Return: returnTy, Params: nil}
}

// Copy returns a shallow, detached structural copy of t. Used to split a
// parameter's type off of a shared declarator base before the declarator
// chain is reused for the next parameter.
func Copy(t *Type) *Type {
	cp := *t
	return &cp
}

// IsInteger reports whether t is one of the scalar integer kinds.
func IsInteger(t *Type) bool {
	return t.Kind == KindInt || t.Kind == KindChar
}

// IsPointerLike reports whether t has a base type, i.e. is a pointer or an
// array. This unification is exactly why array indexing can be desugared
// through the same "+" rules as pointer arithmetic.
func IsPointerLike(t *Type) bool {
	return t.Base != nil
}
