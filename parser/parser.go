// Package parser implements a hand-written recursive-descent parser with
// one-token lookahead that builds a typed AST and a global symbol table in
// a single pass, interleaving parsing with the type annotator exactly as
// spec.md §4.4 describes.
//
// The Parser struct's shape — a token slice, an integer position, and
// cur/advance/consume helper methods — is grounded on
// parser/parser.go's Parser in the teacher repo; what's new here is the
// declarator/type-suffix machinery and the scope stack needed for a
// statically-typed, block-scoped C subset instead of Nilan's untyped,
// single-scope expression grammar.
package parser

import (
	"fmt"

	"mcc/ast"
	"mcc/ctype"
	"mcc/diag"
	"mcc/token"
)

// Parser holds all per-compilation-unit mutable state explicitly (per
// spec.md §9's guidance to avoid process-wide globals): the token stream
// and cursor, the accumulated global objects, the current function's
// locals, the active lexical-scope stack, and the anonymous-global-id
// counter used to name hoisted string literals.
type Parser struct {
	src  []byte
	toks []token.Token
	pos  int

	globals []*ast.Obj
	locals  []*ast.Obj
	scopes  []map[string]*ast.Obj

	anonID int
}

// New returns a Parser ready to parse toks, which must have been produced
// from src (src is kept only to anchor diagnostics at byte offsets).
func New(src []byte, toks []token.Token) *Parser {
	return &Parser{src: src, toks: toks}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.toks[p.pos].Kind != token.EOF {
		p.pos++
	}
	return tok
}

// consume advances past the current token if it is the punctuator/keyword
// spelled lexeme, otherwise returns a syntax error.
func (p *Parser) consume(lexeme string) error {
	if p.cur().Is(lexeme) {
		p.advance()
		return nil
	}
	return diag.Syntaxf(p.src, p.cur().Pos, "expected '%s'", lexeme)
}

// Parse consumes the whole token stream, returning the accumulated globals
// (functions and global variables, including hoisted string-literal
// globals) in declaration order, per the `program` production of spec.md
// §4.4's grammar.
func (p *Parser) Parse() ([]*ast.Obj, error) {
	for p.cur().Kind != token.EOF {
		base, err := p.declspec()
		if err != nil {
			return nil, err
		}

		if err := p.parseTopLevelDecl(base); err != nil {
			return nil, err
		}
	}
	return p.globals, nil
}

// parseTopLevelDecl implements the function-vs-variable lookahead: it
// speculatively runs declarator against a throwaway, detached copy of base
// (per spec.md §9's Open Question (ii), to avoid reading an uninitialized
// declarator base type) and rewinds before committing to the real parse of
// either a function_def or a global_decl.
func (p *Parser) parseTopLevelDecl(base *ctype.Type) error {
	savedPos := p.pos
	probeTy, _, err := p.declarator(ctype.Copy(base))
	p.pos = savedPos
	if err != nil {
		return err
	}

	if probeTy.Kind == ctype.KindFunc {
		return p.functionDef(base)
	}
	return p.globalDecl(base)
}

func (p *Parser) declspec() (*ctype.Type, error) {
	switch {
	case p.cur().Is("char"):
		p.advance()
		return ctype.Char, nil
	case p.cur().Is("int"):
		p.advance()
		return ctype.Int, nil
	default:
		return nil, diag.Syntaxf(p.src, p.cur().Pos, "expected a type")
	}
}

// declarator parses "*"* IDENT type_suffix against base, returning the
// fully built type (with Name set to the bound identifier) plus the
// identifier token itself.
func (p *Parser) declarator(base *ctype.Type) (*ctype.Type, token.Token, error) {
	ty := base
	for p.cur().Is("*") {
		p.advance()
		ty = ctype.PointerTo(ty)
	}

	if p.cur().Kind != token.IDENT {
		return nil, token.Token{}, diag.Syntaxf(p.src, p.cur().Pos, "expected a variable name")
	}
	nameTok := p.advance()

	ty, err := p.typeSuffix(ty)
	if err != nil {
		return nil, token.Token{}, err
	}
	if ty == base {
		// base may be the shared Int/Char singleton; name a detached copy.
		ty = ctype.Copy(ty)
	}
	ty.Name = nameTok.Lexeme
	return ty, nameTok, nil
}

// typeSuffix applies the "[" NUM "]" type_suffix | "(" func_params | ε
// productions. Array brackets recurse into the remaining suffix before
// wrapping, so "int a[2][3]" builds array-of-2(array-of-3(int)).
func (p *Parser) typeSuffix(ty *ctype.Type) (*ctype.Type, error) {
	switch {
	case p.cur().Is("("):
		p.advance()
		return p.funcParams(ty)
	case p.cur().Is("["):
		p.advance()
		if p.cur().Kind != token.NUM {
			return nil, diag.Syntaxf(p.src, p.cur().Pos, "expected a number")
		}
		length := int(p.advance().IVal)
		if err := p.consume("]"); err != nil {
			return nil, err
		}
		elem, err := p.typeSuffix(ty)
		if err != nil {
			return nil, err
		}
		return ctype.ArrayOf(elem, length), nil
	default:
		return ty, nil
	}
}

// funcParams parses "(" already consumed up to the ")" terminator:
// (param ("," param)*)? ")".
func (p *Parser) funcParams(returnTy *ctype.Type) (*ctype.Type, error) {
	fn := ctype.NewFunc(returnTy)
	if !p.cur().Is(")") {
		for {
			pbase, err := p.declspec()
			if err != nil {
				return nil, err
			}
			pty, _, err := p.declarator(pbase)
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, pty)
			if !p.cur().Is(",") {
				break
			}
			p.advance()
		}
	}
	if err := p.consume(")"); err != nil {
		return nil, err
	}
	return fn, nil
}

// globalDecl parses declspec (declarator ("," declarator)*)? ";" and
// appends each bound name to p.globals.
func (p *Parser) globalDecl(base *ctype.Type) error {
	if p.cur().Is(";") {
		p.advance()
		return nil
	}
	for {
		ty, nameTok, err := p.declarator(base)
		if err != nil {
			return err
		}
		p.globals = append(p.globals, &ast.Obj{Name: nameTok.Lexeme, Ty: ty})
		if !p.cur().Is(",") {
			break
		}
		p.advance()
	}
	return p.consume(";")
}

// functionDef parses declspec declarator "{" compound_stmt for a
// declarator that resolved to a function type. Parameters are walked in
// reverse and prepended to p.locals (see DESIGN.md), giving earlier
// parameters the lower frame offsets once codegen assigns offsets.
func (p *Parser) functionDef(base *ctype.Type) error {
	ty, nameTok, err := p.declarator(base)
	if err != nil {
		return err
	}

	fnObj := &ast.Obj{Name: nameTok.Lexeme, Ty: ty, IsFunction: true}
	p.globals = append(p.globals, fnObj)

	p.locals = nil
	p.pushScope()

	for i := len(ty.Params) - 1; i >= 0; i-- {
		p.newLocal(ty.Params[i].Name, ty.Params[i])
	}
	params := make([]*ast.Obj, len(ty.Params))
	for i, pty := range ty.Params {
		obj, ok := p.lookup(pty.Name)
		if !ok {
			p.popScope()
			return diag.Internalf(p.src, nameTok.Pos, "parameter '%s' not found after declaration", pty.Name)
		}
		params[i] = obj
	}
	fnObj.Params = params

	if err := p.consume("{"); err != nil {
		p.popScope()
		return err
	}
	body, err := p.compoundStmt()
	if err != nil {
		p.popScope()
		return err
	}

	fnObj.Body = body
	fnObj.Locals = p.locals
	p.popScope()
	return nil
}

// newAnonGlobal hoists a string-literal token into a hidden, anonymous
// global named ".L..<id>" whose InitData is the token's decoded payload.
func (p *Parser) newAnonGlobal(tok token.Token) *ast.Obj {
	name := fmt.Sprintf(".L..%d", p.anonID)
	p.anonID++
	obj := &ast.Obj{Name: name, Ty: tok.Ty, InitData: tok.SVal}
	p.globals = append(p.globals, obj)
	return obj
}
