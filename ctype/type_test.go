package ctype

import "testing"

func TestArrayOfComputesSizeFromBase(t *testing.T) {
	arr := ArrayOf(Int, 10)
	if arr.Size != 80 {
		t.Fatalf("expected size 80, got %d", arr.Size)
	}
	if arr.Base != Int {
		t.Fatalf("expected base Int, got %+v", arr.Base)
	}
}

func TestPointerToHasWordSize(t *testing.T) {
	p := PointerTo(Char)
	if p.Size != 8 {
		t.Fatalf("expected pointer size 8, got %d", p.Size)
	}
}

func TestIsPointerLikeCoversArraysAndPointers(t *testing.T) {
	if !IsPointerLike(PointerTo(Int)) {
		t.Error("expected pointer to be pointer-like")
	}
	if !IsPointerLike(ArrayOf(Int, 3)) {
		t.Error("expected array to be pointer-like")
	}
	if IsPointerLike(Int) {
		t.Error("expected plain int not to be pointer-like")
	}
}

func TestCopyDetachesFromSharedSingleton(t *testing.T) {
	cp := Copy(Int)
	cp.Name = "x"
	if Int.Name != "" {
		t.Fatal("expected Copy to return a detached value")
	}
}

func TestIsIntegerCoversIntAndChar(t *testing.T) {
	if !IsInteger(Int) || !IsInteger(Char) {
		t.Error("expected int and char to be integer types")
	}
	if IsInteger(PointerTo(Int)) {
		t.Error("expected pointer not to be an integer type")
	}
}
