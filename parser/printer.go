package parser

import (
	"fmt"
	"io"
	"strings"

	"mcc/ast"
)

// Print writes a human-readable dump of globals to w, one top-level object
// per line with nested expressions indented — the typed-AST analogue of the
// teacher's parser/printer.go visitor-based dump, rebuilt here as a plain
// switch over ast.NodeKind since there is no per-kind type to dispatch on.
func Print(w io.Writer, globals []*ast.Obj) {
	for _, g := range globals {
		if g.IsFunction {
			fmt.Fprintf(w, "func %s\n", g.Name)
			printStmt(w, g.Body, 1)
		} else {
			fmt.Fprintf(w, "global %s\n", g.Name)
		}
	}
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func printStmt(w io.Writer, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Block:
		for s := n.Body; s != nil; s = s.Next {
			printStmt(w, s, depth)
		}
	case ast.If:
		indent(w, depth)
		fmt.Fprintln(w, "if")
		printExpr(w, n.Cond, depth+1)
		printStmt(w, n.Then, depth+1)
		if n.Els != nil {
			indent(w, depth)
			fmt.Fprintln(w, "else")
			printStmt(w, n.Els, depth+1)
		}
	case ast.For:
		indent(w, depth)
		fmt.Fprintln(w, "for")
		printStmt(w, n.Init, depth+1)
		printExpr(w, n.Cond, depth+1)
		printExpr(w, n.Inc, depth+1)
		printStmt(w, n.Then, depth+1)
	case ast.Return:
		indent(w, depth)
		fmt.Fprintln(w, "return")
		printExpr(w, n.Lhs, depth+1)
	case ast.ExprStmt:
		printExpr(w, n.Lhs, depth)
	default:
		printExpr(w, n, depth)
	}
}

func printExpr(w io.Writer, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	indent(w, depth)
	switch n.Kind {
	case ast.Num:
		fmt.Fprintf(w, "%d\n", n.Val)
	case ast.Var:
		fmt.Fprintf(w, "var %s\n", n.Obj.Name)
	case ast.Funcall:
		fmt.Fprintf(w, "call %s\n", n.FuncName)
		for _, a := range n.Args {
			printExpr(w, a, depth+1)
		}
	case ast.Neg, ast.Addr, ast.Deref:
		fmt.Fprintf(w, "%s\n", nodeKindName(n.Kind))
		printExpr(w, n.Lhs, depth+1)
	default:
		fmt.Fprintf(w, "%s\n", nodeKindName(n.Kind))
		printExpr(w, n.Lhs, depth+1)
		printExpr(w, n.Rhs, depth+1)
	}
}

func nodeKindName(k ast.NodeKind) string {
	switch k {
	case ast.Neg:
		return "neg"
	case ast.Addr:
		return "addr"
	case ast.Deref:
		return "deref"
	case ast.Add:
		return "add"
	case ast.Sub:
		return "sub"
	case ast.Mul:
		return "mul"
	case ast.Div:
		return "div"
	case ast.Eq:
		return "eq"
	case ast.Ne:
		return "ne"
	case ast.Lt:
		return "lt"
	case ast.Le:
		return "le"
	case ast.Assign:
		return "assign"
	default:
		return "node"
	}
}
