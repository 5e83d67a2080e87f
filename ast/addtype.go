package ast

import (
	"mcc/ctype"
	"mcc/diag"
)

// AddType recursively annotates node and its subtree with a ctype.Type, per
// spec.md §4.2. It is idempotent (a no-op once node.Ty is set) and safe to
// call with a nil node. src is the original source buffer, needed only to
// anchor a diagnostic if node turns out to be an invalid dereference.
func AddType(src []byte, n *Node) error {
	if n == nil || n.Ty != nil {
		return nil
	}

	children := []*Node{n.Lhs, n.Rhs, n.Cond, n.Then, n.Els, n.Init, n.Inc}
	for _, c := range children {
		if err := AddType(src, c); err != nil {
			return err
		}
	}
	for s := n.Body; s != nil; s = s.Next {
		if err := AddType(src, s); err != nil {
			return err
		}
	}
	for _, a := range n.Args {
		if err := AddType(src, a); err != nil {
			return err
		}
	}

	switch n.Kind {
	case Add, Sub, Mul, Div, Neg, Assign:
		n.Ty = n.Lhs.Ty
	case Eq, Ne, Lt, Le, Num, Funcall:
		n.Ty = ctype.Int
	case Var:
		n.Ty = n.Obj.Ty
	case Addr:
		if n.Lhs.Ty.Kind == ctype.KindArray {
			n.Ty = ctype.PointerTo(n.Lhs.Ty.Base)
		} else {
			n.Ty = ctype.PointerTo(n.Lhs.Ty)
		}
	case Deref:
		if n.Lhs.Ty.Base == nil {
			return diag.Semanticf(src, n.Tok.Pos, "invalid pointer dereference")
		}
		n.Ty = n.Lhs.Ty.Base
	}
	return nil
}
