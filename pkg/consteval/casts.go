package consteval

import (
	"math/big"
	"unicode/utf8"

	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

// foldCast folds an explicit or compiler-inserted cast per spec.md 4.2.4.
// Copy/move/optional-promotion casts (Kind != "numeric"/"", the compiler-
// inserted rewrite kinds) pass their operand through unchanged: they change
// value category and representation, not the constant value itself.
func (ev *Evaluator) foldCast(e *types.CastExpr, intensity Intensity) (value.Value, bool) {
	if !ev.Fold(e.Operand, intensity) {
		return nil, false
	}
	v := e.Operand.Base().Folded

	switch e.Kind {
	case "copy", "move", "optional", "array_slice":
		return v, true
	}

	return ev.applyNumericCast(e, v)
}

// applyNumericCast implements the numeric/char/bool cast table: numeric <->
// numeric, integer <-> u8char (with a Unicode-validity check), and
// <-> boolean. Narrowing integer casts emit int_overflow when the source
// value does not fit in the destination's bit width.
func (ev *Evaluator) applyNumericCast(e *types.CastExpr, v value.Value) (value.Value, bool) {
	destBits, destSigned, destIsInt := intWidthOf(e.Dest)
	destBase, ok := e.Dest.RemoveAnyMut().Term.(types.BaseType)
	if !ok {
		return nil, false
	}
	prim, ok := destBase.Decl.(*types.PrimitiveDecl)
	if !ok {
		return nil, false
	}

	switch {
	case destIsInt:
		return ev.castToInt(e, v, destBits, destSigned)
	case prim.Float:
		return castToFloat(v, prim.Name == "f32"), true
	case prim.Char:
		return ev.castToChar(e, v)
	case prim.Bool:
		return castToBool(v)
	default:
		return nil, false
	}
}

func asExactBigInt(v value.Value) (*big.Int, bool) {
	switch v := v.(type) {
	case value.Sint:
		return big.NewInt(int64(v)), true
	case value.Uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case value.Char:
		return big.NewInt(int64(v)), true
	case value.Bool:
		if v {
			return big.NewInt(1), true
		}

		return big.NewInt(0), true
	case value.Float32:
		return big.NewInt(int64(v)), true
	case value.Float64:
		return big.NewInt(int64(v)), true
	default:
		return nil, false
	}
}

func (ev *Evaluator) castToInt(e *types.CastExpr, v value.Value, bits int, signed bool) (value.Value, bool) {
	src, ok := asExactBigInt(v)
	if !ok {
		return nil, false
	}
	wrapped, overflow := wrapToWidth(src, bits, signed)
	if overflow {
		ev.Context.ReportParenSuppressedWarning(e.Base(), diag.WarnIntOverflow, "value does not fit in the destination integer type")
	}

	return wrapInt(wrapped, signed), true
}

func castToFloat(v value.Value, is32 bool) value.Value {
	var f float64
	switch v := v.(type) {
	case value.Sint:
		f = float64(v)
	case value.Uint:
		f = float64(v)
	case value.Float32:
		f = float64(v)
	case value.Float64:
		f = float64(v)
	case value.Bool:
		if v {
			f = 1
		}
	}
	if is32 {
		return value.Float32(float32(f))
	}

	return value.Float64(f)
}

func (ev *Evaluator) castToChar(e *types.CastExpr, v value.Value) (value.Value, bool) {
	src, ok := asExactBigInt(v)
	if !ok {
		return nil, false
	}
	if !src.IsInt64() {
		ev.Context.ReportParenSuppressedWarning(e.Base(), diag.WarnInvalidUnicode, "value is not a valid Unicode scalar value")

		return nil, false
	}
	r := rune(src.Int64())
	if src.Sign() < 0 || !utf8.ValidRune(r) {
		ev.Context.ReportParenSuppressedWarning(e.Base(), diag.WarnInvalidUnicode, "value is not a valid Unicode scalar value")

		return nil, false
	}

	return value.Char(r), true
}

func castToBool(v value.Value) (value.Value, bool) {
	switch v := v.(type) {
	case value.Sint:
		return value.Bool(v != 0), true
	case value.Uint:
		return value.Bool(v != 0), true
	case value.Bool:
		return v, true
	default:
		return nil, false
	}
}
