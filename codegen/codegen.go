// Package codegen lowers a typed AST's global-object list to x86-64 GAS
// assembly text (.intel_syntax noprefix), following the offset-assignment,
// evaluation-stack, and per-kind emission rules of spec.md §4.5.
//
// This package's overall shape — a context struct holding a bufio.Writer and
// a monotonic label-id counter, with one emit* method per concern — is
// grounded on the teacher's compiler package, generalized from bytecode
// opcode emission to textual assembly emission.
package codegen

import (
	"bufio"
	"fmt"
	"io"

	"mcc/ast"
	"mcc/ctype"
	"mcc/diag"
)

var argReg64 = [...]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
var argReg8 = [...]string{"dil", "sil", "dl", "cl", "r8b", "r9b"}

// Context holds all per-compilation-unit code generator state explicitly,
// per spec.md §9's directive to avoid process-wide globals: the output
// writer, the evaluation-stack depth counter, the fresh label-id counter,
// and the name of the function currently being emitted (for its
// .L.return.<fnname> label).
type Context struct {
	src []byte
	w   *bufio.Writer

	depth     int
	labelID   int
	currentFn string
}

// Generate assigns frame offsets to every function's locals, then emits the
// whole program to w: the data section (global variables and hoisted
// string literals) followed by the text section (function bodies).
func Generate(src []byte, globals []*ast.Obj, w io.Writer) error {
	for _, g := range globals {
		if g.IsFunction {
			assignLocalOffsets(g)
		}
	}

	c := &Context{src: src, w: bufio.NewWriter(w)}
	c.emit(".intel_syntax noprefix")

	if err := c.emitData(globals); err != nil {
		return err
	}
	if err := c.emitText(globals); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *Context) emit(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
	c.w.WriteByte('\n')
}

func (c *Context) push() {
	c.emit("  push rax")
	c.depth++
}

func (c *Context) pop(reg string) {
	c.emit("  pop %s", reg)
	c.depth--
}

func (c *Context) nextLabelID() int {
	c.labelID++
	return c.labelID
}

// assignLocalOffsets walks fn.Locals (most-recently-declared first, per
// spec.md §3) and assigns each a positive frame offset, then rounds the
// accumulated size up to 16 for fn.StackSize, per spec.md §4.5.
func assignLocalOffsets(fn *ast.Obj) {
	total := 0
	for _, v := range fn.Locals {
		total += v.Ty.Size
		v.Offset = total
	}
	fn.StackSize = alignTo(total, 16)
}

func alignTo(n, align int) int {
	return (n + align - 1) / align * align
}

// emitData emits ".data" once, then one global/zero-init block per
// non-function object, per spec.md §4.5's data-emission rule.
func (c *Context) emitData(globals []*ast.Obj) error {
	c.emit(".data")
	for _, g := range globals {
		if g.IsFunction {
			continue
		}
		c.emit(".globl %s", g.Name)
		c.emit("%s:", g.Name)
		if g.InitData != nil {
			for _, b := range g.InitData {
				c.emit("  .byte %d", b)
			}
		} else {
			c.emit("  .zero %d", g.Ty.Size)
		}
	}
	return nil
}

// emitText emits ".text" once, then one function body per function object.
func (c *Context) emitText(globals []*ast.Obj) error {
	c.emit(".text")
	for _, g := range globals {
		if !g.IsFunction {
			continue
		}
		if err := c.emitFunction(g); err != nil {
			return err
		}
	}
	return nil
}

// emitFunction emits a complete function: prologue, parameter spill,
// body, epilogue, per spec.md §4.5's function-emission rule.
func (c *Context) emitFunction(fn *ast.Obj) error {
	c.emit(".globl %s", fn.Name)
	c.emit("%s:", fn.Name)
	c.currentFn = fn.Name

	c.emit("  push rbp")
	c.emit("  mov rbp, rsp")
	c.emit("  sub rsp, %d", fn.StackSize)

	for i, param := range fn.Params {
		if param.Ty.Size == 1 {
			c.emit("  mov [rbp-%d], %s", param.Offset, argReg8[i])
		} else {
			c.emit("  mov [rbp-%d], %s", param.Offset, argReg64[i])
		}
	}

	if err := c.genStmt(fn.Body); err != nil {
		return err
	}
	if c.depth != 0 {
		return diag.Internalf(c.src, fn.Body.Tok.Pos, "evaluation stack not empty at end of %s (depth=%d)", fn.Name, c.depth)
	}

	c.emit(".L.return.%s:", fn.Name)
	c.emit("  mov rsp, rbp")
	c.emit("  pop rbp")
	c.emit("  ret")
	return nil
}

// genAddr produces the address of an lvalue node in rax.
func (c *Context) genAddr(n *ast.Node) error {
	switch n.Kind {
	case ast.Var:
		if n.Obj.IsLocal {
			c.emit("  lea rax, [rbp-%d]", n.Obj.Offset)
		} else {
			c.emit("  lea rax, %s[rip]", n.Obj.Name)
		}
		return nil
	case ast.Deref:
		return c.genExpr(n.Lhs)
	default:
		return diag.Semanticf(c.src, n.Tok.Pos, "not an lvalue")
	}
}

// load dereferences the address currently in rax, decaying arrays to their
// already-computed address (the C "array decays to pointer" rule).
func (c *Context) load(ty *ctype.Type) {
	if ty.Kind == ctype.KindArray {
		return
	}
	if ty.Size == 1 {
		c.emit("  movsx rax, BYTE PTR [rax]")
	} else {
		c.emit("  mov rax, [rax]")
	}
}

// store pops a destination address off the runtime stack into rdi and
// writes rax's value through it.
func (c *Context) store(ty *ctype.Type) {
	c.pop("rdi")
	if ty.Size == 1 {
		c.emit("  mov [rdi], al")
	} else {
		c.emit("  mov [rdi], rax")
	}
}

// genStmt emits a statement node; statements never leave a value in rax
// that the caller must consume.
func (c *Context) genStmt(n *ast.Node) error {
	switch n.Kind {
	case ast.Block:
		for s := n.Body; s != nil; s = s.Next {
			if err := c.genStmt(s); err != nil {
				return err
			}
			if c.depth != 0 {
				return diag.Internalf(c.src, s.Tok.Pos, "evaluation stack not empty after statement (depth=%d)", c.depth)
			}
		}
		return nil

	case ast.ExprStmt:
		return c.genExpr(n.Lhs)

	case ast.Return:
		if err := c.genExpr(n.Lhs); err != nil {
			return err
		}
		c.emit("  jmp .L.return.%s", c.currentFn)
		return nil

	case ast.If:
		id := c.nextLabelID()
		if err := c.genExpr(n.Cond); err != nil {
			return err
		}
		c.emit("  cmp rax, 0")
		c.emit("  je .L.else.%d", id)
		if err := c.genStmt(n.Then); err != nil {
			return err
		}
		c.emit("  jmp .L.end.%d", id)
		c.emit(".L.else.%d:", id)
		if n.Els != nil {
			if err := c.genStmt(n.Els); err != nil {
				return err
			}
		}
		c.emit(".L.end.%d:", id)
		return nil

	case ast.For:
		id := c.nextLabelID()
		if n.Init != nil {
			if err := c.genStmt(n.Init); err != nil {
				return err
			}
		}
		c.emit(".L.begin.%d:", id)
		if n.Cond != nil {
			if err := c.genExpr(n.Cond); err != nil {
				return err
			}
			c.emit("  cmp rax, 0")
			c.emit("  je .L.end.%d", id)
		}
		if err := c.genStmt(n.Then); err != nil {
			return err
		}
		if n.Inc != nil {
			if err := c.genExpr(n.Inc); err != nil {
				return err
			}
		}
		c.emit("  jmp .L.begin.%d", id)
		c.emit(".L.end.%d:", id)
		return nil

	default:
		return diag.Internalf(c.src, n.Tok.Pos, "invalid statement")
	}
}

// genExpr emits an expression node, leaving its value in rax.
func (c *Context) genExpr(n *ast.Node) error {
	switch n.Kind {
	case ast.Num:
		c.emit("  mov rax, %d", n.Val)
		return nil

	case ast.Neg:
		if err := c.genExpr(n.Lhs); err != nil {
			return err
		}
		c.emit("  neg rax")
		return nil

	case ast.Var, ast.Deref:
		if err := c.genAddr(n); err != nil {
			return err
		}
		c.load(n.Ty)
		return nil

	case ast.Addr:
		return c.genAddr(n.Lhs)

	case ast.Assign:
		if err := c.genAddr(n.Lhs); err != nil {
			return err
		}
		c.push()
		if err := c.genExpr(n.Rhs); err != nil {
			return err
		}
		c.store(n.Ty)
		return nil

	case ast.Funcall:
		for _, arg := range n.Args {
			if err := c.genExpr(arg); err != nil {
				return err
			}
			c.push()
		}
		for i := len(n.Args) - 1; i >= 0; i-- {
			c.pop(argReg64[i])
		}
		c.emit("  mov rax, 0")
		c.emit("  call %s", n.FuncName)
		return nil

	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Eq, ast.Ne, ast.Lt, ast.Le:
		return c.genBinary(n)

	default:
		return diag.Internalf(c.src, n.Tok.Pos, "invalid expression")
	}
}

// genBinary implements the canonical rhs-push / lhs-pop sequence shared by
// every binary operator, per spec.md §4.5.
func (c *Context) genBinary(n *ast.Node) error {
	if err := c.genExpr(n.Rhs); err != nil {
		return err
	}
	c.push()
	if err := c.genExpr(n.Lhs); err != nil {
		return err
	}
	c.pop("rdi")

	switch n.Kind {
	case ast.Add:
		c.emit("  add rax, rdi")
	case ast.Sub:
		c.emit("  sub rax, rdi")
	case ast.Mul:
		c.emit("  imul rax, rdi")
	case ast.Div:
		c.emit("  cqo")
		c.emit("  idiv rdi")
	case ast.Eq:
		c.emit("  cmp rax, rdi")
		c.emit("  sete al")
		c.emit("  movzx rax, al")
	case ast.Ne:
		c.emit("  cmp rax, rdi")
		c.emit("  setne al")
		c.emit("  movzx rax, al")
	case ast.Lt:
		c.emit("  cmp rax, rdi")
		c.emit("  setl al")
		c.emit("  movzx rax, al")
	case ast.Le:
		c.emit("  cmp rax, rdi")
		c.emit("  setle al")
		c.emit("  movzx rax, al")
	}
	return nil
}
