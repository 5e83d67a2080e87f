package parser

import (
	"mcc/ast"
	"mcc/ctype"
)

// pushScope opens a new block scope, entered on every compound_stmt (and
// on a function's parameter list) per spec.md §3.
func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, map[string]*ast.Obj{})
}

// popScope closes the innermost scope on "}".
func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// newLocal declares a new local in the current function and innermost
// scope, and prepends it to p.locals so the list stays ordered
// most-recently-declared first, as spec.md §3 requires of Obj.Locals.
func (p *Parser) newLocal(name string, ty *ctype.Type) *ast.Obj {
	obj := &ast.Obj{Name: name, Ty: ty, IsLocal: true}
	p.locals = append([]*ast.Obj{obj}, p.locals...)
	p.scopes[len(p.scopes)-1][name] = obj
	return obj
}

// lookup resolves an identifier, innermost scope first, falling back to
// the global list — globals are reachable from any inner frame, per
// spec.md §3's "Scope stack" invariant.
func (p *Parser) lookup(name string) (*ast.Obj, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if obj, ok := p.scopes[i][name]; ok {
			return obj, true
		}
	}
	for _, g := range p.globals {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}
