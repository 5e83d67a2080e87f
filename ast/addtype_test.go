package ast

import (
	"testing"

	"mcc/ctype"
	"mcc/token"
)

func TestAddTypeArithmeticInheritsLhsType(t *testing.T) {
	lhs := &Node{Kind: Num, Val: 1, Ty: ctype.Int}
	rhs := &Node{Kind: Num, Val: 2, Ty: ctype.Int}
	add := &Node{Kind: Add, Lhs: lhs, Rhs: rhs}
	if err := AddType(nil, add); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if add.Ty != ctype.Int {
		t.Fatalf("expected Add to inherit lhs type, got %+v", add.Ty)
	}
}

func TestAddTypeComparisonIsAlwaysInt(t *testing.T) {
	lhs := &Node{Kind: Num, Val: 1, Ty: ctype.Char}
	rhs := &Node{Kind: Num, Val: 2, Ty: ctype.Char}
	eq := &Node{Kind: Eq, Lhs: lhs, Rhs: rhs}
	if err := AddType(nil, eq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq.Ty != ctype.Int {
		t.Fatalf("expected comparison to produce int, got %+v", eq.Ty)
	}
}

func TestAddTypeDerefOfNonPointerIsError(t *testing.T) {
	operand := &Node{Kind: Num, Val: 1, Ty: ctype.Int}
	deref := &Node{Kind: Deref, Lhs: operand, Tok: token.Token{Pos: 0}}
	src := []byte("*1\n\x00")
	if err := AddType(src, deref); err == nil {
		t.Fatal("expected an error dereferencing a non-pointer")
	}
}

func TestAddTypeAddrOfArrayDecaysToElementPointer(t *testing.T) {
	arr := &Node{Kind: Var, Obj: &Obj{Ty: ctype.ArrayOf(ctype.Int, 4)}}
	addr := &Node{Kind: Addr, Lhs: arr}
	if err := AddType(nil, addr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Ty.Kind != ctype.KindPtr || addr.Ty.Base != ctype.Int {
		t.Fatalf("expected pointer-to-int, got %+v", addr.Ty)
	}
}

func TestAddTypeIsIdempotent(t *testing.T) {
	lhs := &Node{Kind: Num, Val: 1, Ty: ctype.Int}
	rhs := &Node{Kind: Num, Val: 2, Ty: ctype.Int}
	add := &Node{Kind: Add, Lhs: lhs, Rhs: rhs}
	if err := AddType(nil, add); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstTy := add.Ty
	if err := AddType(nil, add); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if add.Ty != firstTy {
		t.Fatal("expected AddType to be a no-op once Ty is set")
	}
}
