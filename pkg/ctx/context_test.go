package ctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Il-Capitano/bozon-sub003/internal/config"
	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/ctx"
)

func newTestContext(t *testing.T) *ctx.Context {
	t.Helper()
	sink := diag.NewZapSink(zap.NewNop(), nil)

	return ctx.New(sink, config.New())
}

func TestPushResolveDetectsCycle(t *testing.T) {
	c := newTestContext(t)
	decl := &types.VarDecl{Name: "x"}

	require.True(t, c.PushResolve(decl, types.SourceLoc{}))
	assert.False(t, c.PushResolve(decl, types.SourceLoc{}))
	assert.Equal(t, 1, c.Sink.ErrorCount())
}

func TestPushPopResolveBalances(t *testing.T) {
	c := newTestContext(t)
	a := &types.VarDecl{Name: "a"}
	b := &types.VarDecl{Name: "b"}

	require.True(t, c.PushResolve(a, types.SourceLoc{}))
	require.True(t, c.PushResolve(b, types.SourceLoc{}))
	c.PopResolve()
	// b is gone, a is still on the queue, so re-pushing a should still cycle.
	assert.False(t, c.PushResolve(a, types.SourceLoc{}))
	c.PopResolve()
	// now the queue is empty: a can be pushed again.
	assert.True(t, c.PushResolve(a, types.SourceLoc{}))
}

func TestPopResolveOnEmptyQueuePanics(t *testing.T) {
	c := newTestContext(t)
	assert.Panics(t, func() { c.PopResolve() })
}

func TestIsInstantiableDefaultsTrue(t *testing.T) {
	c := newTestContext(t)
	decl := &types.StructDecl{Name: "S"}
	assert.True(t, c.IsInstantiable(decl))

	c.MarkNotInstantiable(decl)
	assert.False(t, c.IsInstantiable(decl))
}

func TestMakeCopyConstructionWrapsOperand(t *testing.T) {
	c := newTestContext(t)
	intType := types.NewType(types.BaseType{Decl: &types.PrimitiveDecl{Name: "int32"}})
	ident := &types.IdentExpr{ExprBase: types.ExprBase{Type: intType, Category: types.ValueCategoryLvalue}, Name: "x"}

	copyExpr := c.MakeCopyConstruction(ident)
	assert.Equal(t, "copy", copyExpr.Kind)
	assert.True(t, copyExpr.Inserted)
	assert.Same(t, ident, copyExpr.Operand.(*types.IdentExpr))
}

func TestMakeMoveConstructionAddsMoveReference(t *testing.T) {
	c := newTestContext(t)
	intType := types.NewType(types.BaseType{Decl: &types.PrimitiveDecl{Name: "int32"}})
	ident := &types.IdentExpr{ExprBase: types.ExprBase{Type: intType, Category: types.ValueCategoryRvalue}, Name: "tmp"}

	moveExpr := c.MakeMoveConstruction(ident)
	require.Len(t, moveExpr.Dest.Mods, 1)
	assert.Equal(t, types.ModMoveReference, moveExpr.Dest.Mods[0].Kind)
}
