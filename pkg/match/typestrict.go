package match

import "github.com/Il-Capitano/bozon-sub003/internal/types"

// matchTypeStrict implements type-strict matching (spec.md 4.3.6): e names
// a type used as a value, so dest and e.Referenced are descended through
// identical modifier layers in lockstep. Anywhere dest bottoms out in a
// bare typename terminator, the corresponding sub-type of e.Referenced is
// captured as a deduced generic type argument.
func (m *Matcher) matchTypeStrict(e *types.TypenameExpr, dest *types.Type, mode Mode) result {
	resolved, depth, ok := matchTypeStrictLayer(dest, e.Referenced)
	if !ok {
		return fail()
	}

	tk := DirectMatch
	if resolved.Equal(e.Referenced) {
		tk = ExactMatch
	}

	var rewritten types.Expr = e
	if mode.mutates() {
		rewritten = &types.TypenameExpr{
			ExprBase:   types.ExprBase{Loc: e.Base().Loc, Type: resolved},
			Referenced: resolved,
		}
	}

	return result{ok: true, score: leafScore(depth, RefNone, tk), typ: resolved, expr: rewritten}
}

// matchTypeStrictLayer peels one modifier layer at a time off dest and src
// in lockstep, returning the concrete type dest resolves to (with any
// typename leaves filled from src) once dest's modifier stack bottoms out.
// An array layer whose size is 0 on either side matches any size on the
// other; equal, non-zero sizes on both sides are required to compare as the
// same layer rather than just "compatible".
func matchTypeStrictLayer(dest, src *types.Type) (*types.Type, int, bool) {
	if len(dest.Mods) == 0 {
		if _, isTypename := dest.Term.(types.TypenameType); isTypename {
			return src, 0, true
		}

		return matchTypeStrictTerminator(dest, src)
	}
	if len(src.Mods) == 0 {
		return nil, 0, false
	}

	dm, sm := dest.Mods[0], src.Mods[0]
	if dm.Kind != sm.Kind {
		return nil, 0, false
	}
	if dm.Kind == types.ModArray && dm.Size != 0 && sm.Size != 0 && dm.Size != sm.Size {
		return nil, 0, false
	}

	inner, depth, ok := matchTypeStrictLayer(
		&types.Type{Mods: dest.Mods[1:], Term: dest.Term},
		&types.Type{Mods: src.Mods[1:], Term: src.Term},
	)
	if !ok {
		return nil, 0, false
	}

	mod := dm
	if mod.Kind == types.ModArray && mod.Size == 0 {
		mod.Size = sm.Size
	}

	return &types.Type{Mods: append([]types.Modifier{mod}, inner.Mods...), Term: inner.Term}, depth + 1, true
}

// matchTypeStrictTerminator handles the case where dest's modifier stack has
// bottomed out: a tuple destination (whose trailing element may be
// variadic, absorbing any number of trailing source elements) descends
// element-wise; everything else must already be identical.
func matchTypeStrictTerminator(dest, src *types.Type) (*types.Type, int, bool) {
	switch dterm := dest.Term.(type) {
	case types.TupleType:
		sterm, ok := src.Term.(types.TupleType)
		if !ok {
			return nil, 0, false
		}
		expanded := ExpandVariadicTail(dterm.Elems, len(sterm.Elems))
		if len(expanded) != len(sterm.Elems) {
			return nil, 0, false
		}
		outElems := make([]*types.Type, len(expanded))
		for i := range expanded {
			r, _, ok := matchTypeStrictLayer(expanded[i], sterm.Elems[i])
			if !ok {
				return nil, 0, false
			}
			outElems[i] = r
		}

		return types.NewType(types.TupleType{Elems: outElems}), 0, true

	default:
		if dest.Equal(src) {
			return dest, 0, true
		}

		return nil, 0, false
	}
}
