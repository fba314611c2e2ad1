package codegen

import (
	"github.com/llir/llvm/ir/constant"
	llvmtypes "github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

// Lower converts a folded constant value into an LLVM IR constant, using t
// to recover the bit width value.Value itself doesn't carry (every sized
// integer kind <= 64 bits shares value.Sint/value.Uint).
//
// cmd/bozonc's --emit=llvm-ir path calls Lower on the folded value of each
// top-level consteval variable whose initializer folded; function results
// are not lowered there.
func Lower(v value.Value, t *types.Type) (constant.Constant, error) {
	switch v := v.(type) {
	case value.Sint:
		return constant.NewInt(intType(t, 64), int64(v)), nil
	case value.Uint:
		return constant.NewInt(intType(t, 64), int64(v)), nil
	case value.Float32:
		return constant.NewFloat(llvmtypes.Float, float64(v)), nil
	case value.Float64:
		return constant.NewFloat(llvmtypes.Double, float64(v)), nil
	case value.Bool:
		if v {
			return constant.NewInt(llvmtypes.I1, 1), nil
		}

		return constant.NewInt(llvmtypes.I1, 0), nil
	case value.Char:
		// u8char is a 32-bit Unicode scalar value (spec.md GLOSSARY).
		return constant.NewInt(llvmtypes.I32, int64(v)), nil
	case value.Null:
		return constant.NewNull(llvmtypes.NewPointer(llvmtypes.I8)), nil
	case value.String:
		return constant.NewCharArrayFromString(string(v) + "\x00"), nil
	case value.Enum:
		return constant.NewInt(llvmtypes.I64, int64(v.Bits)), nil
	case value.Array:
		return lowerElems(v.Elems, t)
	case value.Tuple:
		return lowerElems(v.Elems, t)
	case value.Aggregate:
		return lowerElems(v.Elems, t)
	case value.SintArray:
		elems := make([]constant.Constant, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = constant.NewInt(llvmtypes.I64, e)
		}

		return constant.NewArray(llvmtypes.NewArray(uint64(len(elems)), llvmtypes.I64), elems...), nil
	case value.UintArray:
		elems := make([]constant.Constant, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = constant.NewInt(llvmtypes.I64, int64(e))
		}

		return constant.NewArray(llvmtypes.NewArray(uint64(len(elems)), llvmtypes.I64), elems...), nil
	case value.Float32Array:
		elems := make([]constant.Constant, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = constant.NewFloat(llvmtypes.Float, float64(e))
		}

		return constant.NewArray(llvmtypes.NewArray(uint64(len(elems)), llvmtypes.Float), elems...), nil
	case value.Float64Array:
		elems := make([]constant.Constant, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = constant.NewFloat(llvmtypes.Double, e)
		}

		return constant.NewArray(llvmtypes.NewArray(uint64(len(elems)), llvmtypes.Double), elems...), nil
	case value.Void:
		return nil, errors.New("codegen: void carries no constant representation")
	case value.Function:
		return nil, errors.Errorf("codegen: function values are lowered through symbol references, not Lower")
	case value.Type:
		return nil, errors.Errorf("codegen: type values have no IR constant representation")
	default:
		return nil, errors.Errorf("codegen: unhandled value kind %s", v.Kind())
	}
}

func lowerElems(elems []value.Value, t *types.Type) (constant.Constant, error) {
	elemTypes := tupleElemTypes(t, len(elems))
	out := make([]constant.Constant, len(elems))
	for i, e := range elems {
		var et *types.Type
		if i < len(elemTypes) {
			et = elemTypes[i]
		}
		c, err := Lower(e, et)
		if err != nil {
			return nil, errors.Wrapf(err, "lowering element %d", i)
		}
		out[i] = c
	}

	return constant.NewStruct(llvmtypes.NewStruct(constantTypes(out)...), out...), nil
}

func constantTypes(cs []constant.Constant) []llvmtypes.Type {
	out := make([]llvmtypes.Type, len(cs))
	for i, c := range cs {
		out[i] = c.Type()
	}

	return out
}

func tupleElemTypes(t *types.Type, n int) []*types.Type {
	if t == nil {
		return nil
	}
	if tt, ok := t.RemoveAnyMut().Term.(types.TupleType); ok {
		return tt.Elems
	}

	return nil
}

// intType picks the LLVM integer type backing t, falling back to fallback
// bits when t doesn't resolve to a sized-integer primitive (e.g. t is nil,
// because the caller only has a bare value.Sint/value.Uint with no type
// context — every sized signed/unsigned kind <= 64 bits shares those two
// value variants).
func intType(t *types.Type, fallback int) *llvmtypes.IntType {
	bits := fallback
	if t != nil {
		if bt, ok := t.RemoveAnyMut().Term.(types.BaseType); ok {
			if prim, ok := bt.Decl.(*types.PrimitiveDecl); ok && prim.IsInt() {
				bits = prim.Bits
			}
		}
	}

	return llvmtypes.NewInt(uint64(bits))
}
