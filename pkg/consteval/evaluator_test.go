package consteval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Il-Capitano/bozon-sub003/internal/config"
	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
	"github.com/Il-Capitano/bozon-sub003/pkg/consteval"
	"github.com/Il-Capitano/bozon-sub003/pkg/ctx"
)

func newTestEvaluator(t *testing.T) (*consteval.Evaluator, *ctx.Context) {
	t.Helper()
	sink := diag.NewZapSink(zap.NewNop(), diag.DefaultWarningSet())
	c := ctx.New(sink, config.New())
	ev := consteval.New(c)
	c.Evaluator = ev

	return ev, c
}

func int32Type() *types.Type {
	return types.NewType(types.BaseType{Decl: types.Int32})
}

func intLit(v int64) *types.IntLiteralExpr {
	return &types.IntLiteralExpr{ExprBase: types.ExprBase{Type: int32Type()}, Value: v}
}

func binExpr(op types.BinaryOp, l, r types.Expr) *types.BinaryExpr {
	return &types.BinaryExpr{ExprBase: types.ExprBase{Type: int32Type()}, Op: op, Left: l, Right: r}
}

func TestFoldIntLiteralAddition(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	e := binExpr("+", intLit(2), intLit(3))

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Sint(5), e.Base().Folded)
}

func TestFoldDivisionByZeroFailsAndReportsUnderForce(t *testing.T) {
	ev, c := newTestEvaluator(t)
	e := binExpr("/", intLit(1), intLit(0))

	assert.False(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, types.ConstevalGuaranteedFailed, e.Base().State)

	e2 := binExpr("/", intLit(1), intLit(0))
	assert.False(t, ev.Fold(e2, consteval.ForceWithError))
	assert.Equal(t, types.ConstevalFailed, e2.Base().State)
	// Each fold reports its own division-by-zero warning; only the forced
	// one also reports an error.
	assert.Equal(t, 2, c.Sink.WarningCount())
}

func TestFoldIntOverflowWrapsAndWarns(t *testing.T) {
	ev, c := newTestEvaluator(t)
	// int32 max is 2147483647; adding 1 overflows and wraps to the minimum.
	e := binExpr("+", intLit(2147483647), intLit(1))

	require.True(t, ev.Fold(e, consteval.ForceWithError))
	assert.Equal(t, value.Sint(-2147483648), e.Base().Folded)
	assert.Equal(t, 1, c.Sink.WarningCount())
}

func TestFoldShortCircuitAndSkipsRightOperand(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	falseLit := &types.BoolLiteralExpr{Value: false}
	// The right operand folds to nothing under Guaranteed (an identifier
	// with no declaration), proving the short-circuit never touches it.
	unresolved := &types.IdentExpr{}
	e := &types.BinaryExpr{Op: "&&", Left: falseLit, Right: unresolved}

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Bool(false), e.Base().Folded)
}

func TestFoldIfPicksSelectedBranchOnly(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	cond := &types.BoolLiteralExpr{Value: true}
	e := &types.IfExpr{Cond: cond, Then: intLit(1), Else: intLit(2)}

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Sint(1), e.Base().Folded)
	assert.Equal(t, types.ConstevalNeverTried, e.Else.Base().State)
}

func TestFoldSubscriptOutOfBoundsFailsAndWarns(t *testing.T) {
	ev, c := newTestEvaluator(t)
	arr := &types.ArrayExpr{Elems: []types.Expr{intLit(1), intLit(2)}}
	e := &types.SubscriptExpr{Array: arr, Index: intLit(5)}

	assert.False(t, ev.Fold(e, consteval.ForceWithError))
	assert.Equal(t, 1, c.Sink.WarningCount())
}

func TestFoldSubscriptInBounds(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	arr := &types.ArrayExpr{Elems: []types.Expr{intLit(10), intLit(20), intLit(30)}}
	e := &types.SubscriptExpr{Array: arr, Index: intLit(1)}

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Sint(20), e.Base().Folded)
}

func TestFoldCastNarrowingOverflowWarns(t *testing.T) {
	ev, c := newTestEvaluator(t)
	e := &types.CastExpr{
		Operand: &types.IntLiteralExpr{ExprBase: types.ExprBase{Type: types.NewType(types.BaseType{Decl: types.Int64})}, Value: 300},
		Dest:    types.NewType(types.BaseType{Decl: types.Int8}),
		Kind:    "numeric",
	}

	require.True(t, ev.Fold(e, consteval.ForceWithError))
	assert.Equal(t, 1, c.Sink.WarningCount())
	_, isSint := e.Base().Folded.(value.Sint)
	assert.True(t, isSint)
}

func TestFoldCastInvalidUnicodeFails(t *testing.T) {
	ev, c := newTestEvaluator(t)
	e := &types.CastExpr{
		Operand: &types.IntLiteralExpr{ExprBase: types.ExprBase{Type: types.NewType(types.BaseType{Decl: types.Int64})}, Value: 0xD800},
		Dest:    types.NewType(types.BaseType{Decl: types.CharP}),
		Kind:    "numeric",
	}

	assert.False(t, ev.Fold(e, consteval.ForceWithError))
	assert.Equal(t, 1, c.Sink.WarningCount())
}

func TestFoldCallIntrinsicStrSize(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "str_size", Intrinsic: "str_size"}
	e := &types.CallExpr{
		Callee: &types.IdentExpr{Decl: decl},
		Args:   []types.Expr{&types.StringLiteralExpr{Value: "hello"}},
	}

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Uint(5), e.Base().Folded)
}

func TestFoldCallIntrinsicWrongArityFailsAtGuaranteed(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "str_size", Intrinsic: "str_size"}
	e := &types.CallExpr{
		Callee: &types.IdentExpr{Decl: decl},
		Args:   []types.Expr{&types.StringLiteralExpr{Value: "a"}, &types.StringLiteralExpr{Value: "b"}},
	}

	assert.False(t, ev.Fold(e, consteval.Guaranteed))
}

func TestExecuteFunctionInterpretsPureFinalBody(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	decl := &types.FuncDecl{
		Name:       "double",
		Consteval:  true,
		Parameters: []types.ParamDecl{{Name: "x", Type: int32Type()}},
	}
	param := &decl.Parameters[0]
	decl.Body = &types.CompoundExpr{Final: binExpr("+", &types.IdentExpr{Decl: param}, &types.IdentExpr{Decl: param})}

	result, ok := ev.ExecuteFunction(decl, []value.Value{value.Sint(21)}, true)
	require.True(t, ok)
	assert.Equal(t, value.Sint(42), result)
}

func TestExecuteFunctionRejectsNonPureFinalBody(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	decl := &types.FuncDecl{
		Name:      "impure",
		Consteval: true,
		Body:      &types.CompoundExpr{Stmts: []types.Stmt{types.ExprStmt{Expr: intLit(1)}}, Final: intLit(2)},
	}

	_, ok := ev.ExecuteFunction(decl, nil, true)
	assert.False(t, ok)
}

func TestExecuteFunctionDetectsRecursionCycle(t *testing.T) {
	ev, c := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "self", Consteval: true}
	call := &types.CallExpr{Callee: &types.IdentExpr{Decl: decl}}
	decl.Body = &types.CompoundExpr{Final: call}

	_, ok := ev.ExecuteFunction(decl, nil, true)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Sink.ErrorCount(), "the cycle is reported where it is detected, and the failed call expression once more")
}

func TestIsComptimeTrueUnderForceWithoutWarning(t *testing.T) {
	ev, c := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "is_comptime", Intrinsic: "is_comptime"}
	e := &types.CallExpr{Callee: &types.IdentExpr{Decl: decl}}

	require.True(t, ev.Fold(e, consteval.ForceWithError))
	assert.Equal(t, value.Bool(true), e.Base().Folded)
	assert.Equal(t, 0, c.Sink.WarningCount())
}

func TestIsComptimeTrueWithWarningUnderGuaranteed(t *testing.T) {
	ev, c := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "is_comptime", Intrinsic: "is_comptime"}
	e := &types.CallExpr{Callee: &types.IdentExpr{Decl: decl}}

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Bool(true), e.Base().Folded)
	assert.Equal(t, 1, c.Sink.WarningCount())
}

func TestIntrinsicBitManipulation(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "popcount_u32", Intrinsic: "popcount_u32"}
	e := &types.CallExpr{
		Callee: &types.IdentExpr{Decl: decl},
		Args:   []types.Expr{&types.UintLiteralExpr{Value: 0b1011}},
	}

	require.True(t, ev.Fold(e, consteval.Guaranteed))
	assert.Equal(t, value.Uint(3), e.Base().Folded)
}

func TestCompileErrorRefusesUnderGuaranteedAndReportsUnderForce(t *testing.T) {
	ev, c := newTestEvaluator(t)
	decl := &types.FuncDecl{Name: "compile_error", Intrinsic: "compile_error"}
	e := &types.CallExpr{
		Callee: &types.IdentExpr{Decl: decl},
		Args:   []types.Expr{&types.StringLiteralExpr{Value: "boom"}},
	}

	assert.False(t, ev.Fold(e, consteval.Guaranteed))

	e2 := &types.CallExpr{
		Callee: &types.IdentExpr{Decl: decl},
		Args:   []types.Expr{&types.StringLiteralExpr{Value: "boom"}},
	}
	assert.True(t, ev.Fold(e2, consteval.ForceWithError))
	assert.Equal(t, 1, c.Sink.ErrorCount())
}
