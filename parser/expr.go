package parser

import (
	"mcc/ast"
	"mcc/ctype"
	"mcc/diag"
	"mcc/token"
)

// expr parses the top-level expr production: assign.
func (p *Parser) expr() (*ast.Node, error) {
	return p.assign()
}

// assign parses `equality ("=" assign)?`, right-associative.
func (p *Parser) assign() (*ast.Node, error) {
	lhs, err := p.equality()
	if err != nil {
		return nil, err
	}
	if p.cur().Is("=") {
		tok := p.advance()
		rhs, err := p.assign()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Node{Kind: ast.Assign, Lhs: lhs, Rhs: rhs, Tok: tok}
	}
	return lhs, nil
}

// equality parses `relational (("==" | "!=") relational)*`.
func (p *Parser) equality() (*ast.Node, error) {
	lhs, err := p.relational()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur().Is("=="):
			tok := p.advance()
			rhs, err := p.relational()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Eq, Lhs: lhs, Rhs: rhs, Tok: tok}
		case p.cur().Is("!="):
			tok := p.advance()
			rhs, err := p.relational()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Ne, Lhs: lhs, Rhs: rhs, Tok: tok}
		default:
			return lhs, nil
		}
	}
}

// relational parses `add (("<" | "<=" | ">" | ">=") add)*`. ">" and ">="
// desugar into "<"/"<=" with swapped operands, so codegen only ever has to
// emit Lt/Le.
func (p *Parser) relational() (*ast.Node, error) {
	lhs, err := p.add()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur().Is("<"):
			tok := p.advance()
			rhs, err := p.add()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Lt, Lhs: lhs, Rhs: rhs, Tok: tok}
		case p.cur().Is("<="):
			tok := p.advance()
			rhs, err := p.add()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Le, Lhs: lhs, Rhs: rhs, Tok: tok}
		case p.cur().Is(">"):
			tok := p.advance()
			rhs, err := p.add()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Lt, Lhs: rhs, Rhs: lhs, Tok: tok}
		case p.cur().Is(">="):
			tok := p.advance()
			rhs, err := p.add()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Le, Lhs: rhs, Rhs: lhs, Tok: tok}
		default:
			return lhs, nil
		}
	}
}

// add parses `mul (("+" | "-") mul)*`, desugaring pointer/array arithmetic
// through newAdd/newSub.
func (p *Parser) add() (*ast.Node, error) {
	lhs, err := p.mul()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur().Is("+"):
			tok := p.advance()
			rhs, err := p.mul()
			if err != nil {
				return nil, err
			}
			lhs, err = p.newAdd(lhs, rhs, tok)
			if err != nil {
				return nil, err
			}
		case p.cur().Is("-"):
			tok := p.advance()
			rhs, err := p.mul()
			if err != nil {
				return nil, err
			}
			lhs, err = p.newSub(lhs, rhs, tok)
			if err != nil {
				return nil, err
			}
		default:
			return lhs, nil
		}
	}
}

// mul parses `unary (("*" | "/") unary)*`.
func (p *Parser) mul() (*ast.Node, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur().Is("*"):
			tok := p.advance()
			rhs, err := p.unary()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Mul, Lhs: lhs, Rhs: rhs, Tok: tok}
		case p.cur().Is("/"):
			tok := p.advance()
			rhs, err := p.unary()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Node{Kind: ast.Div, Lhs: lhs, Rhs: rhs, Tok: tok}
		default:
			return lhs, nil
		}
	}
}

// unary parses `("+" | "-" | "*" | "&") unary | postfix`. A leading "+" is
// identity (see SPEC_FULL.md's recovered-features section) and contributes
// no node of its own.
func (p *Parser) unary() (*ast.Node, error) {
	switch {
	case p.cur().Is("+"):
		p.advance()
		return p.unary()
	case p.cur().Is("-"):
		tok := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Neg, Lhs: operand, Tok: tok}, nil
	case p.cur().Is("&"):
		tok := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Addr, Lhs: operand, Tok: tok}, nil
	case p.cur().Is("*"):
		tok := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Deref, Lhs: operand, Tok: tok}, nil
	default:
		return p.postfix()
	}
}

// postfix parses `primary ("[" expr "]")*`, desugaring "a[i]" into
// "*(a+i)" so indexing shares newAdd's pointer-scaling logic and works
// symmetrically for "a[i]" and "i[a]".
func (p *Parser) postfix() (*ast.Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.cur().Is("[") {
		tok := p.advance()
		idx, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.consume("]"); err != nil {
			return nil, err
		}
		sum, err := p.newAdd(n, idx, tok)
		if err != nil {
			return nil, err
		}
		n = &ast.Node{Kind: ast.Deref, Lhs: sum, Tok: tok}
	}
	return n, nil
}

// primary parses the atoms: parenthesized expressions, sizeof, numbers,
// string literals, and identifiers (variables or calls).
func (p *Parser) primary() (*ast.Node, error) {
	tok := p.cur()

	switch {
	case tok.Is("("):
		p.advance()
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(")"); err != nil {
			return nil, err
		}
		return n, nil

	case tok.Is("sizeof"):
		p.advance()
		// sizeof binds only to unary, per SPEC_FULL.md's recovered-features
		// section (matching the original's `unary()` call, not `expr()`).
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if err := ast.AddType(p.src, operand); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Num, Val: int64(operand.Ty.Size), Tok: tok}, nil

	case tok.Kind == token.NUM:
		p.advance()
		return &ast.Node{Kind: ast.Num, Val: tok.IVal, Tok: tok}, nil

	case tok.Kind == token.STRING:
		p.advance()
		obj := p.newAnonGlobal(tok)
		return &ast.Node{Kind: ast.Var, Obj: obj, Tok: tok}, nil

	case tok.Kind == token.IDENT:
		p.advance()
		if p.cur().Is("(") {
			return p.funcall(tok)
		}
		obj, ok := p.lookup(tok.Lexeme)
		if !ok {
			return nil, diag.Semanticf(p.src, tok.Pos, "undefined variable '%s'", tok.Lexeme)
		}
		return &ast.Node{Kind: ast.Var, Obj: obj, Tok: tok}, nil

	default:
		return nil, diag.Syntaxf(p.src, tok.Pos, "expected an expression")
	}
}

// funcall parses the argument list of a call whose name token (and the
// following "(") have already been identified; nameTok.Pos anchors the
// call's own diagnostics and nameTok.Lexeme becomes the callee name.
func (p *Parser) funcall(nameTok token.Token) (*ast.Node, error) {
	p.advance() // consume "("
	var args []*ast.Node
	if !p.cur().Is(")") {
		for {
			arg, err := p.assign()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.cur().Is(",") {
				break
			}
			p.advance()
		}
	}
	if err := p.consume(")"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Funcall, FuncName: nameTok.Lexeme, Args: args, Tok: nameTok}, nil
}

// scale returns the element size that a pointer/array-typed node's
// arithmetic operand must be multiplied by.
func scale(ty *ctype.Type) int64 {
	if ty.Base != nil {
		return int64(ty.Base.Size)
	}
	return 1
}

// newAdd implements spec.md's type-directed "+" desugaring: num+num stays
// a plain Add; pointer/array + num scales the integer operand by the
// pointee size; num + pointer/array is rewritten so the pointer is always
// lhs, preserving the same scaling rule regardless of operand order.
func (p *Parser) newAdd(lhs, rhs *ast.Node, tok token.Token) (*ast.Node, error) {
	if err := ast.AddType(p.src, lhs); err != nil {
		return nil, err
	}
	if err := ast.AddType(p.src, rhs); err != nil {
		return nil, err
	}

	lhsPtr := ctype.IsPointerLike(lhs.Ty)
	rhsPtr := ctype.IsPointerLike(rhs.Ty)

	switch {
	case !lhsPtr && !rhsPtr:
		return &ast.Node{Kind: ast.Add, Lhs: lhs, Rhs: rhs, Tok: tok}, nil
	case lhsPtr && rhsPtr:
		return nil, diag.Semanticf(p.src, tok.Pos, "invalid operands: pointer + pointer")
	case lhsPtr && !rhsPtr:
		scaled := &ast.Node{Kind: ast.Mul, Lhs: rhs, Rhs: &ast.Node{Kind: ast.Num, Val: scale(lhs.Ty), Tok: tok}, Tok: tok}
		return &ast.Node{Kind: ast.Add, Lhs: lhs, Rhs: scaled, Tok: tok}, nil
	default: // !lhsPtr && rhsPtr
		scaled := &ast.Node{Kind: ast.Mul, Lhs: lhs, Rhs: &ast.Node{Kind: ast.Num, Val: scale(rhs.Ty), Tok: tok}, Tok: tok}
		return &ast.Node{Kind: ast.Add, Lhs: rhs, Rhs: scaled, Tok: tok}, nil
	}
}

// newSub mirrors newAdd for "-": num-num is plain Sub; pointer-num scales
// the integer; pointer-pointer yields the element distance between the two
// addresses (raw byte Sub, typed int, divided by element size).
func (p *Parser) newSub(lhs, rhs *ast.Node, tok token.Token) (*ast.Node, error) {
	if err := ast.AddType(p.src, lhs); err != nil {
		return nil, err
	}
	if err := ast.AddType(p.src, rhs); err != nil {
		return nil, err
	}

	lhsPtr := ctype.IsPointerLike(lhs.Ty)
	rhsPtr := ctype.IsPointerLike(rhs.Ty)

	switch {
	case !lhsPtr && !rhsPtr:
		return &ast.Node{Kind: ast.Sub, Lhs: lhs, Rhs: rhs, Tok: tok}, nil
	case lhsPtr && !rhsPtr:
		scaled := &ast.Node{Kind: ast.Mul, Lhs: rhs, Rhs: &ast.Node{Kind: ast.Num, Val: scale(lhs.Ty), Tok: tok}, Tok: tok}
		return &ast.Node{Kind: ast.Sub, Lhs: lhs, Rhs: scaled, Tok: tok}, nil
	case lhsPtr && rhsPtr:
		diff := &ast.Node{Kind: ast.Sub, Lhs: lhs, Rhs: rhs, Tok: tok, Ty: ctype.Int}
		return &ast.Node{Kind: ast.Div, Lhs: diff, Rhs: &ast.Node{Kind: ast.Num, Val: scale(lhs.Ty), Tok: tok}, Tok: tok}, nil
	default:
		return nil, diag.Semanticf(p.src, tok.Pos, "invalid operands: int - pointer")
	}
}
