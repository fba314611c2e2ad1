package codegen_test

import (
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
	"github.com/Il-Capitano/bozon-sub003/pkg/codegen"
)

func TestLowerSintUsesDeclaredWidth(t *testing.T) {
	i16 := types.NewType(types.BaseType{Decl: types.Int16})
	c, err := codegen.Lower(value.Sint(-1), i16)
	require.NoError(t, err)
	i, ok := c.(*constant.Int)
	require.True(t, ok, "expected *constant.Int, got %T", c)
	assert.Equal(t, uint64(16), i.Typ.BitSize)
}

func TestLowerFloat64(t *testing.T) {
	f64 := types.NewType(types.BaseType{Decl: types.Float64})
	c, err := codegen.Lower(value.Float64(2.5), f64)
	require.NoError(t, err)
	_, ok := c.(*constant.Float)
	assert.True(t, ok, "expected *constant.Float, got %T", c)
}

func TestLowerBool(t *testing.T) {
	c, err := codegen.Lower(value.Bool(true), types.NewType(types.BaseType{Decl: types.BoolP}))
	require.NoError(t, err)
	i, ok := c.(*constant.Int)
	require.True(t, ok)
	assert.Equal(t, int64(1), i.X.Int64())
}

func TestLowerTuple(t *testing.T) {
	tupleType := types.NewType(types.TupleType{Elems: []*types.Type{
		types.NewType(types.BaseType{Decl: types.Int32}),
		types.NewType(types.BaseType{Decl: types.Int32}),
	}})
	v := value.Tuple{Elems: []value.Value{value.Sint(1), value.Sint(2)}}
	c, err := codegen.Lower(v, tupleType)
	require.NoError(t, err)
	_, ok := c.(*constant.Struct)
	assert.True(t, ok, "expected *constant.Struct, got %T", c)
}

func TestLowerVoidErrors(t *testing.T) {
	_, err := codegen.Lower(value.Void{}, nil)
	assert.Error(t, err)
}
