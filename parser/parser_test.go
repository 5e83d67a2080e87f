package parser

import (
	"testing"

	"mcc/ast"
	"mcc/ctype"
	"mcc/lexer"
)

func mustParse(t *testing.T, src string) []*ast.Obj {
	t.Helper()
	toks, err := lexer.New([]byte(src)).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	globals, err := New([]byte(src), toks).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return globals
}

func findFunc(t *testing.T, globals []*ast.Obj, name string) *ast.Obj {
	t.Helper()
	for _, g := range globals {
		if g.IsFunction && g.Name == name {
			return g
		}
	}
	t.Fatalf("function %q not found", name)
	return nil
}

func TestParseSimpleFunctionReturnsBody(t *testing.T) {
	globals := mustParse(t, "int main() { return 42; }")
	fn := findFunc(t, globals, "main")
	if fn.Body == nil || fn.Body.Kind != ast.Block {
		t.Fatalf("expected block body, got %+v", fn.Body)
	}
	ret := fn.Body.Body
	if ret == nil || ret.Kind != ast.Return {
		t.Fatalf("expected return statement, got %+v", ret)
	}
	if ret.Lhs.Kind != ast.Num || ret.Lhs.Val != 42 {
		t.Fatalf("expected literal 42, got %+v", ret.Lhs)
	}
}

func TestParseFunctionParamsGetLowestOffsetsInDeclarationOrder(t *testing.T) {
	globals := mustParse(t, "int add(int a, int b) { return a+b; }")
	fn := findFunc(t, globals, "add")
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("params out of declaration order: %+v", fn.Params)
	}
	// Params are walked in reverse and prepended, so with no other locals
	// the first-declared param ("a") sits at the head, where
	// assignLocalOffsets gives it the lowest offset.
	if len(fn.Locals) != 2 || fn.Locals[0].Name != "a" || fn.Locals[1].Name != "b" {
		t.Fatalf("unexpected locals order: %+v", fn.Locals)
	}
}

func TestParseSizeofUnarySizes(t *testing.T) {
	cases := []struct {
		expr string
		size int64
	}{
		{"sizeof(1)", 8},
		{"sizeof 1", 8},
	}
	for _, c := range cases {
		globals := mustParse(t, "int main() { return "+c.expr+"; }")
		fn := findFunc(t, globals, "main")
		ret := fn.Body.Body
		if ret.Lhs.Kind != ast.Num || ret.Lhs.Val != c.size {
			t.Errorf("%s: expected %d, got %+v", c.expr, c.size, ret.Lhs)
		}
	}
}

func TestParseSizeofArrayAndPointerSizes(t *testing.T) {
	globals := mustParse(t, "int main() { int a[10]; return sizeof(a); }")
	fn := findFunc(t, globals, "main")
	ret := fn.Body.Body.Next
	if ret.Lhs.Kind != ast.Num || ret.Lhs.Val != 80 {
		t.Fatalf("sizeof(int[10]): expected 80, got %+v", ret.Lhs)
	}

	globals = mustParse(t, "int main() { int a[10]; return sizeof(&a); }")
	fn = findFunc(t, globals, "main")
	ret = fn.Body.Body.Next
	if ret.Lhs.Kind != ast.Num || ret.Lhs.Val != 8 {
		t.Fatalf("sizeof(&a): expected 8, got %+v", ret.Lhs)
	}
}

func TestParsePointerArithmeticScalesByPointeeSize(t *testing.T) {
	globals := mustParse(t, "int main() { int *p; return p+3; }")
	fn := findFunc(t, globals, "main")
	// statements: decl (empty Block) then return
	ret := fn.Body.Body.Next
	if ret.Kind != ast.Return {
		t.Fatalf("expected return, got %+v", ret)
	}
	add := ret.Lhs
	if add.Kind != ast.Add {
		t.Fatalf("expected Add node, got %+v", add)
	}
	scaled := add.Rhs
	if scaled.Kind != ast.Mul || scaled.Rhs.Val != 8 {
		t.Fatalf("expected scaling by element size 8, got %+v", scaled)
	}
}

func TestParseArrayIndexEquivalentOrderings(t *testing.T) {
	// a[i], *(a+i), *(i+a), and i[a] must all desugar to a Deref over an
	// Add whose pointer-typed operand is always on the left.
	srcs := []string{
		"int main() { int a[3]; int i; return a[i]; }",
		"int main() { int a[3]; int i; return *(a+i); }",
		"int main() { int a[3]; int i; return *(i+a); }",
		"int main() { int a[3]; int i; return i[a]; }",
	}
	for _, src := range srcs {
		globals := mustParse(t, src)
		fn := findFunc(t, globals, "main")
		ret := fn.Body.Body.Next.Next
		if ret.Kind != ast.Return {
			t.Fatalf("%s: expected return, got %+v", src, ret)
		}
		deref := ret.Lhs
		if deref.Kind != ast.Deref {
			t.Fatalf("%s: expected Deref, got %+v", src, deref)
		}
		if deref.Lhs.Kind != ast.Add {
			t.Fatalf("%s: expected Add under Deref, got %+v", src, deref.Lhs)
		}
		if !ctype.IsPointerLike(deref.Lhs.Lhs.Ty) {
			t.Fatalf("%s: expected pointer-like operand on Add.Lhs, got %+v", src, deref.Lhs.Lhs.Ty)
		}
	}
}

func TestParseGlobalStringLiteralHoisted(t *testing.T) {
	globals := mustParse(t, `int main() { return 0; } char *msg = "hi";`)
	found := false
	for _, g := range globals {
		if len(g.Name) > 4 && g.Name[:4] == ".L.." {
			found = true
			if string(g.InitData) != "hi\x00" {
				t.Fatalf("expected decoded payload with NUL, got %q", g.InitData)
			}
		}
	}
	if !found {
		t.Fatal("expected an anonymous global for the string literal")
	}
}

func TestParseCommaSeparatedGlobalDeclarators(t *testing.T) {
	globals := mustParse(t, "int a, b, c;")
	names := map[string]bool{}
	for _, g := range globals {
		names[g.Name] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !names[want] {
			t.Errorf("expected global %q to be declared", want)
		}
	}
}

func TestParseEmptyBodyFunction(t *testing.T) {
	globals := mustParse(t, "int noop() {}")
	fn := findFunc(t, globals, "noop")
	if fn.Body == nil || fn.Body.Kind != ast.Block || fn.Body.Body != nil {
		t.Fatalf("expected empty block body, got %+v", fn.Body)
	}
}

func TestParseDereferenceOfNonPointerIsSemanticError(t *testing.T) {
	src := "int main() { int a; return *a; }"
	toks, err := lexer.New([]byte(src)).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = New([]byte(src), toks).Parse()
	if err == nil {
		t.Fatal("expected a semantic error for dereferencing a non-pointer")
	}
}
