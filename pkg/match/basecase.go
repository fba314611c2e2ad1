package match

import "github.com/Il-Capitano/bozon-sub003/internal/types"

// matchReference implements reference binding (spec.md 4.3.7): dest's
// outermost (post-mut) layer is one of the four reference kinds.
func (m *Matcher) matchReference(e types.Expr, dest *types.Type, mode Mode) result {
	srcType := e.Base().Type
	if srcType == nil {
		return fail()
	}

	stripped := dest.StripMut()
	refMod := stripped.Mods[0]
	referent := &types.Type{Mods: stripped.Mods[1:], Term: stripped.Term}
	destIsMut := len(referent.Mods) > 0 && referent.Mods[0].Kind == types.ModMut
	srcIsMut := len(srcType.Mods) > 0 && srcType.Mods[0].Kind == types.ModMut

	refKind, ok := classifyReference(refMod.Kind, e.Base().Category, srcIsMut, destIsMut)
	if !ok {
		return fail()
	}

	srcNorm := srcType.RemoveMutReference()

	var resolvedReferent *types.Type
	if isPlainAuto(referent.RemoveAnyMut()) {
		resolvedReferent = stampMutability(referent, srcNorm, destIsMut)
	} else {
		if !srcNorm.RemoveAnyMut().Equal(referent.RemoveAnyMut()) {
			return fail()
		}
		resolvedReferent = referent
	}

	resolvedDest := &types.Type{Mods: append([]types.Modifier{refMod}, resolvedReferent.Mods...), Term: resolvedReferent.Term}
	sc := leafScore(0, refKind, ExactMatch)

	var rewritten types.Expr = e
	if mode.mutates() && refKind == RefMove {
		rewritten = &types.CastExpr{
			ExprBase: types.ExprBase{Loc: e.Base().Loc, Type: resolvedDest},
			Operand:  e, Dest: resolvedDest, Inserted: true, Kind: "move",
		}
	}

	return result{ok: true, score: sc, typ: resolvedDest, expr: rewritten}
}

// matchBaseCase implements the value-expression base case (spec.md 4.3.7):
// everything that is neither a composite (if/switch), a tuple literal, a
// typename expression, nor bound to a reference destination.
func (m *Matcher) matchBaseCase(e types.Expr, dest *types.Type, mode Mode) result {
	srcType := e.Base().Type
	if srcType == nil {
		return fail()
	}

	destCore := dest.StripMut()

	if isPlainAuto(destCore) {
		resolved := srcType.RemoveMutReference()

		return result{ok: true, score: leafScore(0, RefNone, ExactMatch), typ: resolved, expr: e}
	}

	srcNorm := srcType.RemoveMutReference()

	if srcNorm.RemoveAnyMut().Equal(destCore.RemoveAnyMut()) {
		return result{ok: true, score: leafScore(0, RefNone, ExactMatch), typ: destCore, expr: e}
	}

	if r, ok := m.matchOptionalPromotion(e, srcNorm, destCore, mode); ok {
		return r
	}
	if r, ok := m.matchArraySliceDecay(e, srcNorm, destCore, mode); ok {
		return r
	}
	if r, ok := m.matchImplicitLiteralConversion(e, srcNorm, destCore, mode); ok {
		return r
	}
	if r, ok := matchGenericInstance(e, srcNorm, destCore); ok {
		return r
	}

	return fail()
}

func isPlainAuto(t *types.Type) bool {
	_, isAuto := t.Term.(types.AutoType)

	return isAuto && len(t.Mods) == 0
}

// matchOptionalPromotion handles wrapping a value in an optional, unless it
// is already one (spec.md 4.3.7): dest = optional(X), src matches X.
func (m *Matcher) matchOptionalPromotion(e types.Expr, srcNorm, destCore *types.Type, mode Mode) (result, bool) {
	mk, ok := lastModKind(destCore)
	if !ok || mk != types.ModOptional {
		return result{}, false
	}
	inner := withoutLastMod(destCore)
	if !srcNorm.RemoveAnyMut().Equal(inner.RemoveAnyMut()) {
		return result{}, false
	}

	var rewritten types.Expr = e
	if mode.mutates() {
		rewritten = &types.CastExpr{
			ExprBase: types.ExprBase{Loc: e.Base().Loc, Type: destCore},
			Operand:  e, Dest: destCore, Inserted: true, Kind: "optional",
		}
	}

	return result{ok: true, score: leafScore(1, RefNone, DirectMatch), typ: destCore, expr: rewritten}, true
}

// matchArraySliceDecay handles array-to-slice conversion (spec.md 4.3.7):
// dest = array_slice(X), src = array(X) of any size.
func (m *Matcher) matchArraySliceDecay(e types.Expr, srcNorm, destCore *types.Type, mode Mode) (result, bool) {
	dmk, ok := lastModKind(destCore)
	if !ok || dmk != types.ModArraySlice {
		return result{}, false
	}
	smk, ok := lastModKind(srcNorm)
	if !ok || smk != types.ModArray {
		return result{}, false
	}
	destElem := withoutLastMod(destCore)
	srcElem := withoutLastMod(srcNorm)
	if !destElem.RemoveAnyMut().Equal(srcElem.RemoveAnyMut()) {
		return result{}, false
	}

	var rewritten types.Expr = e
	if mode.mutates() {
		rewritten = &types.CastExpr{
			ExprBase: types.ExprBase{Loc: e.Base().Loc, Type: destCore},
			Operand:  e, Dest: destCore, Inserted: true, Kind: "array_slice",
		}
	}

	return result{ok: true, score: leafScore(1, RefNone, DirectMatch), typ: destCore, expr: rewritten}, true
}

// matchImplicitLiteralConversion lets an untyped integer literal narrow or
// widen to any other integer kind, inheriting signedness from the
// destination (spec.md 4.3.7).
func (m *Matcher) matchImplicitLiteralConversion(e types.Expr, srcNorm, destCore *types.Type, mode Mode) (result, bool) {
	if e.Base().Category != types.ValueCategoryLiteral {
		return result{}, false
	}
	if len(srcNorm.Mods) != 0 || len(destCore.Mods) != 0 {
		return result{}, false
	}
	srcBase, ok := srcNorm.Term.(types.BaseType)
	if !ok {
		return result{}, false
	}
	destBase, ok := destCore.Term.(types.BaseType)
	if !ok {
		return result{}, false
	}
	srcPrim, ok := srcBase.Decl.(*types.PrimitiveDecl)
	if !ok || !srcPrim.IsInt() {
		return result{}, false
	}
	destPrim, ok := destBase.Decl.(*types.PrimitiveDecl)
	if !ok || !destPrim.IsInt() {
		return result{}, false
	}

	var rewritten types.Expr = e
	if mode.mutates() {
		rewritten = &types.CastExpr{
			ExprBase: types.ExprBase{Loc: e.Base().Loc, Type: destCore},
			Operand:  e, Dest: destCore, Inserted: true, Kind: "numeric",
		}
	}

	return result{ok: true, score: leafScore(0, RefNone, ImplicitLiteralConversion), typ: destCore, expr: rewritten}, true
}

// matchGenericInstance lets a monomorphised struct instance match its
// generic parent's name (spec.md 4.3.7), e.g. passing a `vector[i32]` where
// a `vector` parameter is declared.
func matchGenericInstance(e types.Expr, srcNorm, destCore *types.Type) (result, bool) {
	if len(srcNorm.Mods) != 0 || len(destCore.Mods) != 0 {
		return result{}, false
	}
	srcBase, ok := srcNorm.Term.(types.BaseType)
	if !ok {
		return result{}, false
	}
	destBase, ok := destCore.Term.(types.BaseType)
	if !ok {
		return result{}, false
	}
	srcDecl, ok := srcBase.Decl.(*types.StructDecl)
	if !ok {
		return result{}, false
	}
	destDecl, ok := destBase.Decl.(*types.StructDecl)
	if !ok {
		return result{}, false
	}
	if srcDecl.Parent != destDecl {
		return result{}, false
	}

	return result{ok: true, score: leafScore(0, RefNone, GenericMatch), typ: destCore, expr: e}, true
}
