package parser

import (
	"mcc/ast"
	"mcc/diag"
	"mcc/token"
)

func isDeclspecStart(tok token.Token) bool {
	return tok.Is("int") || tok.Is("char")
}

// statement parses a single statement per spec.md §4.4's `stmt` production.
func (p *Parser) statement() (*ast.Node, error) {
	tok := p.cur()

	switch {
	case tok.Is("return"):
		p.advance()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(";"); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Return, Lhs: e, Tok: tok}, nil

	case tok.Is("if"):
		p.advance()
		if err := p.consume("("); err != nil {
			return nil, err
		}
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(")"); err != nil {
			return nil, err
		}
		then, err := p.statement()
		if err != nil {
			return nil, err
		}
		var els *ast.Node
		if p.cur().Is("else") {
			p.advance()
			els, err = p.statement()
			if err != nil {
				return nil, err
			}
		}
		return &ast.Node{Kind: ast.If, Cond: cond, Then: then, Els: els, Tok: tok}, nil

	case tok.Is("for"):
		p.advance()
		if err := p.consume("("); err != nil {
			return nil, err
		}
		init, err := p.exprStmt()
		if err != nil {
			return nil, err
		}
		var cond *ast.Node
		if !p.cur().Is(";") {
			cond, err = p.expr()
			if err != nil {
				return nil, err
			}
		}
		if err := p.consume(";"); err != nil {
			return nil, err
		}
		var inc *ast.Node
		if !p.cur().Is(")") {
			inc, err = p.expr()
			if err != nil {
				return nil, err
			}
		}
		if err := p.consume(")"); err != nil {
			return nil, err
		}
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.For, Init: init, Cond: cond, Inc: inc, Then: body, Tok: tok}, nil

	case tok.Is("while"):
		p.advance()
		if err := p.consume("("); err != nil {
			return nil, err
		}
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(")"); err != nil {
			return nil, err
		}
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.For, Cond: cond, Then: body, Tok: tok}, nil

	case tok.Is("{"):
		p.advance()
		return p.compoundStmt()

	default:
		return p.exprStmt()
	}
}

// exprStmt parses `";" | expr ";"`. An empty statement becomes an empty
// Block, which the code generator emits as a no-op.
func (p *Parser) exprStmt() (*ast.Node, error) {
	if p.cur().Is(";") {
		p.advance()
		return &ast.Node{Kind: ast.Block}, nil
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.consume(";"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.ExprStmt, Lhs: e, Tok: e.Tok}, nil
}

// compoundStmt parses a block body up to (and consuming) the closing "}".
// The caller is responsible for having consumed the opening "{". It opens
// its own scope, matching spec.md §3's "compound_stmt opens a new scope on
// entry and closes it on }".
func (p *Parser) compoundStmt() (*ast.Node, error) {
	p.pushScope()

	var head, tail *ast.Node
	for !p.cur().Is("}") {
		if p.cur().Kind == token.EOF {
			p.popScope()
			return nil, diag.Syntaxf(p.src, p.cur().Pos, "expected '}'")
		}

		var stmt *ast.Node
		var err error
		if isDeclspecStart(p.cur()) {
			stmt, err = p.declaration()
		} else {
			stmt, err = p.statement()
		}
		if err != nil {
			p.popScope()
			return nil, err
		}
		if err := ast.AddType(p.src, stmt); err != nil {
			p.popScope()
			return nil, err
		}

		if head == nil {
			head = stmt
			tail = stmt
		} else {
			tail.Next = stmt
			tail = stmt
		}
	}
	p.advance() // consume "}"
	p.popScope()
	return &ast.Node{Kind: ast.Block, Body: head}, nil
}

// declaration parses `declspec (declarator ("=" assign)? ("," ...)*)? ";"`.
// Each initializer desugars into an ExprStmt wrapping an Assign, matching
// the existing node vocabulary instead of introducing a dedicated
// declaration-with-initializer node.
func (p *Parser) declaration() (*ast.Node, error) {
	base, err := p.declspec()
	if err != nil {
		return nil, err
	}
	if p.cur().Is(";") {
		p.advance()
		return &ast.Node{Kind: ast.Block}, nil
	}

	var head, tail *ast.Node
	for {
		ty, nameTok, err := p.declarator(base)
		if err != nil {
			return nil, err
		}
		local := p.newLocal(nameTok.Lexeme, ty)

		if p.cur().Is("=") {
			p.advance()
			rhs, err := p.assign()
			if err != nil {
				return nil, err
			}
			varNode := &ast.Node{Kind: ast.Var, Obj: local, Tok: nameTok}
			assignNode := &ast.Node{Kind: ast.Assign, Lhs: varNode, Rhs: rhs, Tok: nameTok}
			stmt := &ast.Node{Kind: ast.ExprStmt, Lhs: assignNode, Tok: nameTok}
			if head == nil {
				head = stmt
				tail = stmt
			} else {
				tail.Next = stmt
				tail = stmt
			}
		}

		if !p.cur().Is(",") {
			break
		}
		p.advance()
	}

	if err := p.consume(";"); err != nil {
		return nil, err
	}
	if head == nil {
		return &ast.Node{Kind: ast.Block}, nil
	}
	return &ast.Node{Kind: ast.Block, Body: head}, nil
}
