package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
)

func int32Type() *types.Type {
	return types.NewType(types.BaseType{Decl: types.Int32})
}

func TestTypeIsCompletePrimitivesAndAuto(t *testing.T) {
	assert.True(t, int32Type().IsComplete())
	assert.False(t, types.NewType(types.AutoType{}).IsComplete())
	assert.False(t, types.NewType(types.TypenameType{}).IsComplete())

	autoRef := types.NewType(types.BaseType{Decl: &types.PrimitiveDecl{Name: "int32"}}, types.Modifier{Kind: types.ModAutoReference})
	assert.False(t, autoRef.IsComplete())
}

func TestTupleTypeIsCompleteRequiresAllElements(t *testing.T) {
	complete := types.NewType(types.TupleType{Elems: []*types.Type{int32Type(), int32Type()}})
	assert.True(t, complete.IsComplete())

	incomplete := types.NewType(types.TupleType{Elems: []*types.Type{int32Type(), types.NewType(types.AutoType{})}})
	assert.False(t, incomplete.IsComplete())
}

func TestRemoveMutReference(t *testing.T) {
	// mut & int32 -> int32
	ref := types.NewType(
		types.BaseType{Decl: types.Int32},
		types.Modifier{Kind: types.ModMut},
		types.Modifier{Kind: types.ModLvalueReference},
	)
	stripped := ref.RemoveMutReference()
	assert.True(t, stripped.Equal(int32Type()))
}

func TestRemoveAnyMutStripsNonLeadingMut(t *testing.T) {
	// &mut int32 (reference to mut int32) -> reference to int32 after RemoveAnyMut
	nested := types.NewType(
		types.BaseType{Decl: &types.PrimitiveDecl{Name: "int32"}},
		types.Modifier{Kind: types.ModLvalueReference},
		types.Modifier{Kind: types.ModMut},
	)
	cleaned := nested.RemoveAnyMut()
	assert.Len(t, cleaned.Mods, 1)
	assert.Equal(t, types.ModLvalueReference, cleaned.Mods[0].Kind)
}

func TestIsReferenceAfterStrippingLeadingMut(t *testing.T) {
	mutRef := types.NewType(
		int32Type().Term,
		types.Modifier{Kind: types.ModMut},
		types.Modifier{Kind: types.ModLvalueReference},
	)
	assert.True(t, mutRef.IsReference())
	assert.False(t, int32Type().IsReference())
}

func TestTypeEqualityIsStructural(t *testing.T) {
	a := int32Type()
	b := int32Type()
	assert.True(t, a.Equal(b))

	arrA := types.NewType(a.Term, types.Modifier{Kind: types.ModArray, Size: 3})
	arrB := types.NewType(a.Term, types.Modifier{Kind: types.ModArray, Size: 4})
	assert.False(t, arrA.Equal(arrB))
}

func TestHasDistinguishedNullBitPattern(t *testing.T) {
	ptr := types.NewType(int32Type().Term, types.Modifier{Kind: types.ModPointer})
	assert.True(t, ptr.HasDistinguishedNullBitPattern())
	assert.False(t, int32Type().HasDistinguishedNullBitPattern())
}

func TestEnumDeclValueName(t *testing.T) {
	decl := &types.EnumDecl{
		Name:        "color",
		IsSigned:    false,
		Enumerators: []types.Enumerator{{Name: "red", Bits: 0}, {Name: "green", Bits: 1}},
	}
	name, ok := decl.ValueName(1)
	assert.True(t, ok)
	assert.Equal(t, "green", name)

	_, ok = decl.ValueName(99)
	assert.False(t, ok)
}
