package parser

import "github.com/Il-Capitano/bozon-sub003/internal/types"

// scope is one nesting level of name -> declaration bindings: the built-in
// primitives at the root, then one level per compound block or function
// parameter list. Lookup walks outward, shadowing as it goes — the same
// static-scoping shape the teacher's evaluator gives its environment chain,
// just resolved once at parse time instead of per evaluation.
type scope struct {
	parent *scope
	names  map[string]types.Declaration
}

func newRootScope() *scope {
	s := &scope{names: make(map[string]types.Declaration, len(types.PrimitiveDecls))}
	for _, p := range types.PrimitiveDecls {
		s.names[p.Name] = p
	}

	return s
}

func (s *scope) push() *scope {
	return &scope{parent: s, names: make(map[string]types.Declaration)}
}

func (s *scope) define(name string, decl types.Declaration) {
	s.names[name] = decl
}

func (s *scope) lookup(name string) (types.Declaration, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.names[name]; ok {
			return d, true
		}
	}

	return nil, false
}

// isTypeDecl reports whether decl names a type (usable as a type-strict
// terminator or a bare TypenameExpr) rather than a value (variable,
// parameter, function).
func isTypeDecl(decl types.Declaration) bool {
	switch decl.(type) {
	case *types.PrimitiveDecl, *types.StructDecl, *types.EnumDecl:
		return true
	default:
		return false
	}
}
