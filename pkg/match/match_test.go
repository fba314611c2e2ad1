package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Il-Capitano/bozon-sub003/internal/config"
	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/ctx"
	"github.com/Il-Capitano/bozon-sub003/pkg/match"
)

func newTestMatcher(t *testing.T) (*match.Matcher, *ctx.Context) {
	t.Helper()
	sink := diag.NewZapSink(zap.NewNop(), diag.DefaultWarningSet())
	c := ctx.New(sink, config.New())

	return match.New(c), c
}

func i32() *types.Type { return types.NewType(types.BaseType{Decl: types.Int32}) }
func i64() *types.Type { return types.NewType(types.BaseType{Decl: types.Int64}) }

func lvalue(t *types.Type) types.Expr {
	return &types.IdentExpr{ExprBase: types.ExprBase{Type: t, Category: types.ValueCategoryLvalue}}
}

func intLiteral(v int64) types.Expr {
	return &types.IntLiteralExpr{
		ExprBase: types.ExprBase{Type: i32(), Category: types.ValueCategoryLiteral},
		Value:    v,
	}
}

func TestExactMatchSameType(t *testing.T) {
	m, _ := newTestMatcher(t)
	assert.True(t, m.CanMatch(lvalue(i32()), i32()))

	sc, ok := m.MatchLevel(lvalue(i32()), i32())
	require.True(t, ok)
	assert.Equal(t, match.ExactMatch, sc.Type)
	assert.Equal(t, 0, sc.ModifierDepth)
}

func TestTypeMismatchFails(t *testing.T) {
	m, _ := newTestMatcher(t)
	assert.False(t, m.CanMatch(lvalue(i32()), i64()))
}

func TestImplicitLiteralConversionScoresWorseThanExact(t *testing.T) {
	m, _ := newTestMatcher(t)

	exact, ok := m.MatchLevel(intLiteral(5), i32())
	require.True(t, ok)
	assert.Equal(t, match.ExactMatch, exact.Type)

	narrowed, ok := m.MatchLevel(intLiteral(5), i64())
	require.True(t, ok)
	assert.Equal(t, match.ImplicitLiteralConversion, narrowed.Type)
	assert.Equal(t, -1, match.Compare(exact, narrowed))
}

func TestMatchExpressionInsertsNumericCast(t *testing.T) {
	m, _ := newTestMatcher(t)
	rewritten, ok := m.MatchExpression(intLiteral(5), i64())
	require.True(t, ok)

	cast, isCast := rewritten.(*types.CastExpr)
	require.True(t, isCast)
	assert.True(t, cast.Inserted)
	assert.Equal(t, "numeric", cast.Kind)
	assert.True(t, cast.Dest.Equal(i64()))
}

func TestMatchExpressionFailureReportsOneError(t *testing.T) {
	m, c := newTestMatcher(t)
	_, ok := m.MatchExpression(lvalue(i32()), i64())

	assert.False(t, ok)
	assert.Equal(t, 1, c.Sink.ErrorCount())
}

func lvalueRefType(inner *types.Type) *types.Type {
	return &types.Type{Mods: append([]types.Modifier{{Kind: types.ModLvalueReference}}, inner.Mods...), Term: inner.Term}
}

func moveRefType(inner *types.Type) *types.Type {
	return &types.Type{Mods: append([]types.Modifier{{Kind: types.ModMoveReference}}, inner.Mods...), Term: inner.Term}
}

func TestLvalueBindsToLvalueReference(t *testing.T) {
	m, _ := newTestMatcher(t)
	sc, ok := m.MatchLevel(lvalue(i32()), lvalueRefType(i32()))
	require.True(t, ok)
	assert.Equal(t, match.RefExactLvalue, sc.Ref)
}

func TestRvalueDoesNotBindToLvalueReference(t *testing.T) {
	m, _ := newTestMatcher(t)
	assert.False(t, m.CanMatch(intLiteral(5), lvalueRefType(i32())))
}

func TestRvalueBindsToMoveReference(t *testing.T) {
	m, _ := newTestMatcher(t)
	rvalue := &types.IntLiteralExpr{ExprBase: types.ExprBase{Type: i32(), Category: types.ValueCategoryRvalue}, Value: 1}

	sc, ok := m.MatchLevel(rvalue, moveRefType(i32()))
	require.True(t, ok)
	assert.Equal(t, match.RefMove, sc.Ref)
}

func autoDest() *types.Type { return types.NewType(types.AutoType{}) }

func TestAutoDestinationDeducesSourceType(t *testing.T) {
	m, _ := newTestMatcher(t)
	typ, ok := m.MatchedType(lvalue(i32()), autoDest())
	require.True(t, ok)
	assert.True(t, typ.Equal(i32()))
}

func arrayType(elem *types.Type, size int) *types.Type {
	return &types.Type{Mods: append([]types.Modifier{{Kind: types.ModArray, Size: size}}, elem.Mods...), Term: elem.Term}
}

func sliceType(elem *types.Type) *types.Type {
	return &types.Type{Mods: append([]types.Modifier{{Kind: types.ModArraySlice}}, elem.Mods...), Term: elem.Term}
}

func TestArrayDecaysToSlice(t *testing.T) {
	m, _ := newTestMatcher(t)
	arr := lvalue(arrayType(i32(), 3))

	sc, ok := m.MatchLevel(arr, sliceType(i32()))
	require.True(t, ok)
	assert.Equal(t, match.DirectMatch, sc.Type)

	rewritten, ok := m.MatchExpression(arr, sliceType(i32()))
	require.True(t, ok)
	cast, isCast := rewritten.(*types.CastExpr)
	require.True(t, isCast)
	assert.Equal(t, "array_slice", cast.Kind)
}

func optionalType(inner *types.Type) *types.Type {
	return inner.WithOptional()
}

func TestValuePromotesToOptional(t *testing.T) {
	m, _ := newTestMatcher(t)
	rewritten, ok := m.MatchExpression(lvalue(i32()), optionalType(i32()))
	require.True(t, ok)
	cast, isCast := rewritten.(*types.CastExpr)
	require.True(t, isCast)
	assert.Equal(t, "optional", cast.Kind)
}

func TestIfCompositeMatchesBothArmsToDestination(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.IfExpr{Then: lvalue(i64()), Else: intLiteral(1)}

	sc, ok := m.MatchLevel(e, i64())
	require.True(t, ok)
	// The literal-conversion arm is the worse of the two composite elements.
	assert.Equal(t, match.ImplicitLiteralConversion, sc.Sub[1].Type)
}

func TestIfCompositeFailsWhenOneArmCannotMatch(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.IfExpr{Then: lvalue(i32()), Else: lvalue(i64())}

	assert.False(t, m.CanMatch(e, i32()))
}

func TestIfWithOnlyThenBranchIgnoresNilElse(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.IfExpr{Then: lvalue(i32())}

	assert.True(t, m.CanMatch(e, i32()))
}

func TestIfCompositeDeducesAutoDestinationWhenArmsAgree(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.IfExpr{Then: lvalue(i32()), Else: lvalue(i32())}

	typ, ok := m.MatchedType(e, autoDest())
	require.True(t, ok)
	assert.True(t, typ.Equal(i32()))
}

func TestIfCompositeAutoDeductionFailsOnDisagreement(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.IfExpr{Then: lvalue(i32()), Else: lvalue(i64())}

	_, ok := m.MatchedType(e, autoDest())
	assert.False(t, ok)
}

func TestTupleLiteralMatchesTupleType(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.TupleExpr{Elems: []types.Expr{lvalue(i32()), lvalue(i64())}}
	dest := types.NewType(types.TupleType{Elems: []*types.Type{i32(), i64()}})

	sc, ok := m.MatchLevel(e, dest)
	require.True(t, ok)
	require.Len(t, sc.Sub, 2)
}

func TestTupleLiteralArityMismatchFails(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.TupleExpr{Elems: []types.Expr{lvalue(i32())}}
	dest := types.NewType(types.TupleType{Elems: []*types.Type{i32(), i64()}})

	assert.False(t, m.CanMatch(e, dest))
}

func TestTupleLiteralMatchesArrayDestination(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.TupleExpr{Elems: []types.Expr{lvalue(i32()), lvalue(i32())}}
	dest := arrayType(i32(), 0)

	rewritten, ok := m.MatchExpression(e, dest)
	require.True(t, ok)
	arr, isArr := rewritten.(*types.ArrayExpr)
	require.True(t, isArr)
	assert.Len(t, arr.Elems, 2)
}

func TestTupleLiteralMatchesAutoDestination(t *testing.T) {
	m, _ := newTestMatcher(t)
	e := &types.TupleExpr{Elems: []types.Expr{lvalue(i32()), lvalue(i64())}}

	typ, ok := m.MatchedType(e, autoDest())
	require.True(t, ok)
	tup, isTup := typ.Term.(types.TupleType)
	require.True(t, isTup)
	require.Len(t, tup.Elems, 2)
	assert.True(t, tup.Elems[0].Equal(i32()))
	assert.True(t, tup.Elems[1].Equal(i64()))
}

func typenameValue(referenced *types.Type) types.Expr {
	return &types.TypenameExpr{
		ExprBase:   types.ExprBase{Type: types.NewType(types.TypenameType{})},
		Referenced: referenced,
	}
}

func typenameDest() *types.Type { return types.NewType(types.TypenameType{}) }

func TestTypeStrictCapturesTypenameDestination(t *testing.T) {
	m, _ := newTestMatcher(t)
	typ, ok := m.MatchedType(typenameValue(i32()), typenameDest())
	require.True(t, ok)
	assert.True(t, typ.Equal(i32()))
}

func TestTypeStrictDescendsThroughPointerLayers(t *testing.T) {
	m, _ := newTestMatcher(t)
	ptrI32 := &types.Type{Mods: []types.Modifier{{Kind: types.ModPointer}}, Term: i32().Term}
	ptrDest := &types.Type{Mods: []types.Modifier{{Kind: types.ModPointer}}, Term: types.TypenameType{}}

	typ, ok := m.MatchedType(typenameValue(ptrI32), ptrDest)
	require.True(t, ok)
	assert.True(t, typ.Equal(ptrI32))
}

func TestTypeStrictMismatchedModifierFails(t *testing.T) {
	m, _ := newTestMatcher(t)
	ptrDest := &types.Type{Mods: []types.Modifier{{Kind: types.ModPointer}}, Term: types.TypenameType{}}

	assert.False(t, m.CanMatch(typenameValue(arrayType(i32(), 3)), ptrDest))
}

func TestGenericInstanceMatchesParentName(t *testing.T) {
	m, _ := newTestMatcher(t)
	parent := &types.StructDecl{Name: "vector", Generic: true}
	instance := &types.StructDecl{Name: "vector[i32]", Parent: parent, Instance: []*types.Type{i32()}}
	instanceType := types.NewType(types.BaseType{Decl: instance})
	parentType := types.NewType(types.BaseType{Decl: parent})

	sc, ok := m.MatchLevel(lvalue(instanceType), parentType)
	require.True(t, ok)
	assert.Equal(t, match.GenericMatch, sc.Type)
}

func TestScoreAmbiguousDetectsMixedConversionMargins(t *testing.T) {
	// winsByLiteral is better on element 0 only because the other side needs
	// an implicit literal conversion there; winsByDirect is better on
	// element 1, where winsByLiteral needs a direct_match.
	winsByLiteral := match.Score{Sub: []match.Score{
		{Type: match.ExactMatch}, {Type: match.DirectMatch},
	}}
	winsByDirect := match.Score{Sub: []match.Score{
		{Type: match.ImplicitLiteralConversion}, {Type: match.ExactMatch},
	}}

	assert.True(t, match.Ambiguous(winsByLiteral, winsByDirect))
}

func TestScorePlainTieIsNotAmbiguous(t *testing.T) {
	a := match.Score{Sub: []match.Score{{Type: match.ExactMatch}, {Type: match.DirectMatch}}}
	b := match.Score{Sub: []match.Score{{Type: match.ExactMatch}, {Type: match.DirectMatch}}}

	assert.False(t, match.Ambiguous(a, b))
	assert.Equal(t, 0, match.Compare(a, b))
}
