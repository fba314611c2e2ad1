package match

import "github.com/Il-Capitano/bozon-sub003/internal/types"

// matchTuple implements tuple-literal matching (spec.md 4.3.5).
func (m *Matcher) matchTuple(e *types.TupleExpr, dest *types.Type, mode Mode) result {
	stripped := dest.RemoveAnyMut()

	switch term := stripped.Term.(type) {
	case types.TupleType:
		if len(stripped.Mods) != 0 {
			return fail()
		}

		return m.matchTupleToTuple(e, term.Elems, mode)

	default:
		if mk, ok := lastModKind(stripped); ok && mk == types.ModArray {
			return m.matchTupleToArray(e, stripped, mode)
		}
		if _, isAuto := stripped.Term.(types.AutoType); isAuto && len(stripped.Mods) == 0 {
			return m.matchTupleToAuto(e, mode)
		}

		return fail()
	}
}

func (m *Matcher) matchTupleToTuple(e *types.TupleExpr, destElems []*types.Type, mode Mode) result {
	expanded := ExpandVariadicTail(destElems, len(e.Elems))
	if len(expanded) != len(e.Elems) {
		return fail()
	}

	sub := make([]Score, len(e.Elems))
	for i, el := range e.Elems {
		r := m.match(el, expanded[i], mode)
		if !r.ok {
			return fail()
		}
		sub[i] = r.score
		if mode.mutates() {
			e.Elems[i] = r.expr
		}
	}
	resultType := types.NewType(types.TupleType{Elems: expanded})

	return result{ok: true, score: compositeScore(sub), typ: resultType, expr: e}
}

func (m *Matcher) matchTupleToArray(e *types.TupleExpr, dest *types.Type, mode Mode) result {
	arrayMod := dest.Mods[0]
	elemType := withoutLastMod(dest)

	if arrayMod.Size != 0 && arrayMod.Size != len(e.Elems) {
		return fail()
	}

	if mode.wantsType() && HasAutoPlaceholder(elemType) {
		if len(e.Elems) == 0 {
			return fail()
		}
		deduced, ok := m.MatchedType(e.Elems[0], elemType)
		if !ok {
			return fail()
		}
		elemType = deduced
	}

	sub := make([]Score, len(e.Elems))
	for i, el := range e.Elems {
		r := m.match(el, elemType, mode)
		if !r.ok {
			return fail()
		}
		sub[i] = r.score
		if mode.mutates() {
			e.Elems[i] = r.expr
		}
	}

	size := arrayMod.Size
	if size == 0 {
		size = len(e.Elems)
	}
	resultType := &types.Type{Mods: []types.Modifier{{Kind: types.ModArray, Size: size}}, Term: elemType.Term}
	resultType = withElemMods(resultType, elemType)

	var rewritten types.Expr = e
	if mode.mutates() {
		rewritten = &types.ArrayExpr{ExprBase: types.ExprBase{Loc: e.Loc, Type: resultType}, Elems: e.Elems}
	}

	return result{ok: true, score: compositeScore(sub), typ: resultType, expr: rewritten}
}

// withElemMods rebuilds an array type whose element shape (beyond the bare
// terminator) matches elemType's own modifier stack, since elemType may
// itself carry mut/pointer/etc layers the caller-constructed resultType
// skeleton didn't know about yet.
func withElemMods(arrayType *types.Type, elemType *types.Type) *types.Type {
	mods := make([]types.Modifier, 0, len(arrayType.Mods)+len(elemType.Mods))
	mods = append(mods, arrayType.Mods...)
	mods = append(mods, elemType.Mods...)

	return &types.Type{Mods: mods, Term: elemType.Term}
}

func (m *Matcher) matchTupleToAuto(e *types.TupleExpr, mode Mode) result {
	elemTypes := make([]*types.Type, len(e.Elems))
	sub := make([]Score, len(e.Elems))
	for i, el := range e.Elems {
		r := m.match(el, autoType(), mode)
		if !r.ok {
			return fail()
		}
		sub[i] = r.score
		elemTypes[i] = r.typ
		if mode.mutates() {
			e.Elems[i] = r.expr
		}
	}

	return result{ok: true, score: compositeScore(sub), typ: types.NewType(types.TupleType{Elems: elemTypes}), expr: e}
}
