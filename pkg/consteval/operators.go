package consteval

import (
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

// foldBinary folds a binary operator application. && and || short-circuit
// per spec.md 4.2.2: if the left operand decides the result, the right
// operand is never required to fold.
func (ev *Evaluator) foldBinary(e *types.BinaryExpr, intensity Intensity) (value.Value, bool) {
	switch e.Op {
	case "&&":
		return ev.foldShortCircuit(e, intensity, false)
	case "||":
		return ev.foldShortCircuit(e, intensity, true)
	}

	if !ev.Fold(e.Left, intensity) || !ev.Fold(e.Right, intensity) {
		return nil, false
	}

	return ev.applyBinary(e, e.Left.Base().Folded, e.Right.Base().Folded)
}

func (ev *Evaluator) foldShortCircuit(e *types.BinaryExpr, intensity Intensity, shortCircuitOn bool) (value.Value, bool) {
	if !ev.Fold(e.Left, intensity) {
		return nil, false
	}
	left, ok := e.Left.Base().Folded.(value.Bool)
	if !ok {
		return nil, false
	}
	if bool(left) == shortCircuitOn {
		return value.Bool(shortCircuitOn), true
	}
	if !ev.Fold(e.Right, intensity) {
		return nil, false
	}
	right, ok := e.Right.Base().Folded.(value.Bool)
	if !ok {
		return nil, false
	}

	return right, true
}

// applyBinary dispatches a binary operator across already-folded operands.
// Arithmetic and bitwise operators on integers route through the
// safe-arithmetic layer; comparisons and equality are structural.
func (ev *Evaluator) applyBinary(e *types.BinaryExpr, l, r value.Value) (value.Value, bool) {
	switch e.Op {
	case "==":
		return value.Bool(l.Equal(r)), true
	case "!=":
		return value.Bool(!l.Equal(r)), true
	}

	if v, ok := ev.applyCharArithmetic(e, l, r); ok {
		return v, true
	}

	if li, ri, lw, signed, ok := asIntPair(e.Left.Base().Type, l, r); ok {
		switch e.Op {
		case "<", ">", "<=", ">=":
			return compareInts(e.Op, li, ri, signed), true
		}

		return ev.safeIntBinary(e, li, ri, lw, signed)
	}

	if lf, rf, is32, ok := asFloatPair(l, r); ok {
		switch e.Op {
		case "<", ">", "<=", ">=":
			return compareFloats(e.Op, lf, rf), true
		}

		return ev.safeFloatBinary(e, lf, rf, is32)
	}

	if lb, okL := l.(value.Bool); okL {
		if rb, okR := r.(value.Bool); okR {
			switch e.Op {
			case "&":
				return value.Bool(bool(lb) && bool(rb)), true
			case "|":
				return value.Bool(bool(lb) || bool(rb)), true
			case "^":
				return value.Bool(bool(lb) != bool(rb)), true
			}
		}
	}

	if ls, okL := l.(value.String); okL {
		if rs, okR := r.(value.String); okR && e.Op == "+" {
			return value.String(string(ls) + string(rs)), true
		}
	}

	return nil, false
}

// applyCharArithmetic implements the asymmetric u8char/integer arithmetic
// noted in spec.md 9: a u8char may be offset by a signed or unsigned
// integer on either side of "+", but "-" only takes the integer on the
// right (u8char - int), never the left (int - u8char). char-char pairs fall
// through to the equality check above; they have no "-" or "+" identity.
func (ev *Evaluator) applyCharArithmetic(e *types.BinaryExpr, l, r value.Value) (value.Value, bool) {
	lc, lIsChar := l.(value.Char)
	rc, rIsChar := r.(value.Char)
	if lIsChar == rIsChar {
		return nil, false
	}

	if lIsChar {
		offset, ok := intOffset(r)
		if !ok {
			return nil, false
		}
		switch e.Op {
		case "+":
			return ev.foldCharOffset(e, lc, offset)
		case "-":
			return ev.foldCharOffset(e, lc, -offset)
		default:
			return nil, false
		}
	}

	offset, ok := intOffset(l)
	if !ok || e.Op != "+" {
		return nil, false
	}

	return ev.foldCharOffset(e, rc, offset)
}

// intOffset extracts the integer value of a Sint/Uint operand, the only
// value kinds that participate in char arithmetic.
func intOffset(v value.Value) (int64, bool) {
	switch t := v.(type) {
	case value.Sint:
		return int64(t), true
	case value.Uint:
		return int64(t), true
	default:
		return 0, false
	}
}

// foldCharOffset applies offset to c's Unicode scalar value, rejecting the
// fold (rather than wrapping) when the result is not a valid scalar value,
// since u8char has no well-defined "wrap around" behaviour.
func (ev *Evaluator) foldCharOffset(e *types.BinaryExpr, c value.Char, offset int64) (value.Value, bool) {
	shifted := int64(c) + offset
	if shifted < 0 || shifted > math.MaxInt32 || !utf8.ValidRune(rune(shifted)) {
		ev.Context.ReportParenSuppressedWarning(e.Base(), diag.WarnInvalidUnicode, "u8char arithmetic produced a value that is not a valid Unicode scalar value")

		return nil, false
	}

	return value.Char(rune(shifted)), true
}

func asIntPair(t *types.Type, l, r value.Value) (lv, rv int64, bits int, signed bool, ok bool) {
	bits, signed, hasWidth := intWidthOf(t)
	if !hasWidth {
		bits = 64
	}
	switch lt := l.(type) {
	case value.Sint:
		if rt, ok := r.(value.Sint); ok {
			return int64(lt), int64(rt), bits, true, true
		}
	case value.Uint:
		if rt, ok := r.(value.Uint); ok {
			return int64(lt), int64(rt), bits, false, true
		}
	}

	return 0, 0, 0, false, false
}

func intWidthOf(t *types.Type) (bits int, signed bool, ok bool) {
	if t == nil {
		return 0, false, false
	}
	bt, isBase := t.RemoveAnyMut().Term.(types.BaseType)
	if !isBase {
		return 0, false, false
	}
	prim, isPrim := bt.Decl.(*types.PrimitiveDecl)
	if !isPrim || !prim.IsInt() {
		return 0, false, false
	}

	return prim.Bits, prim.Signed, true
}

func asFloatPair(l, r value.Value) (lv, rv float64, is32 bool, ok bool) {
	switch lt := l.(type) {
	case value.Float32:
		if rt, ok := r.(value.Float32); ok {
			return float64(lt), float64(rt), true, true
		}
	case value.Float64:
		if rt, ok := r.(value.Float64); ok {
			return float64(lt), float64(rt), false, true
		}
	}

	return 0, 0, false, false
}

func compareInts(op string, l, r int64, signed bool) value.Value {
	var cmp int
	if signed {
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	} else {
		lu, ru := uint64(l), uint64(r)
		switch {
		case lu < ru:
			cmp = -1
		case lu > ru:
			cmp = 1
		}
	}

	return value.Bool(compareResult(op, cmp))
}

func compareFloats(op string, l, r float64) value.Value {
	var cmp int
	switch {
	case l < r:
		cmp = -1
	case l > r:
		cmp = 1
	}

	return value.Bool(compareResult(op, cmp))
}

func compareResult(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// safeIntBinary implements the safe-arithmetic layer: the wrapped result is
// always produced; overflow and divide-by-zero diagnostics are emitted only
// when the expression's paren-level budget allows it.
func (ev *Evaluator) safeIntBinary(e *types.BinaryExpr, l, r int64, bits int, signed bool) (value.Value, bool) {
	base := e.Base()

	switch e.Op {
	case "+", "-", "*":
		result := bigBinaryOp(e.Op, l, r, signed)
		wrapped, overflow := wrapToWidth(result, bits, signed)
		if overflow {
			ev.Context.ReportParenSuppressedWarning(base, diag.WarnIntOverflow, "integer overflow in constant expression")
		}

		return wrapInt(wrapped, signed), true

	case "/", "%":
		if r == 0 {
			ev.Context.ReportParenSuppressedWarning(base, diag.WarnIntDivideByZero, "integer division by zero in constant expression")

			return nil, false
		}
		var result *big.Int
		if signed {
			lb, rb := big.NewInt(l), big.NewInt(r)
			if e.Op == "/" {
				result = new(big.Int).Quo(lb, rb)
			} else {
				result = new(big.Int).Rem(lb, rb)
			}
		} else {
			lb, rb := new(big.Int).SetUint64(uint64(l)), new(big.Int).SetUint64(uint64(r))
			if e.Op == "/" {
				result = new(big.Int).Div(lb, rb)
			} else {
				result = new(big.Int).Mod(lb, rb)
			}
		}
		wrapped, overflow := wrapToWidth(result, bits, signed)
		if overflow {
			ev.Context.ReportParenSuppressedWarning(base, diag.WarnIntOverflow, "integer overflow in constant expression")
		}

		return wrapInt(wrapped, signed), true

	case "&":
		return wrapInt(l&r, signed), true
	case "|":
		return wrapInt(l|r, signed), true
	case "^":
		return wrapInt(l^r, signed), true
	case "<<":
		if r < 0 || r >= int64(bits) {
			ev.Context.ReportParenSuppressedWarning(base, diag.WarnIntOverflow, "shift amount exceeds the operand's bit width")

			return nil, false
		}
		var lb *big.Int
		if signed {
			lb = big.NewInt(l)
		} else {
			lb = new(big.Int).SetUint64(uint64(l))
		}
		shifted := new(big.Int).Lsh(lb, uint(r))
		wrapped, _ := wrapToWidth(shifted, bits, signed)

		return wrapInt(wrapped, signed), true
	case ">>":
		if r < 0 || r >= int64(bits) {
			ev.Context.ReportParenSuppressedWarning(base, diag.WarnIntOverflow, "shift amount exceeds the operand's bit width")

			return nil, false
		}
		if signed {
			return value.Sint(l >> uint(r)), true
		}

		return value.Uint(uint64(l) >> uint(r)), true
	}

	return nil, false
}

func bigBinaryOp(op string, l, r int64, signed bool) *big.Int {
	var lb, rb *big.Int
	if signed {
		lb, rb = big.NewInt(l), big.NewInt(r)
	} else {
		lb, rb = new(big.Int).SetUint64(uint64(l)), new(big.Int).SetUint64(uint64(r))
	}
	switch op {
	case "+":
		return new(big.Int).Add(lb, rb)
	case "-":
		return new(big.Int).Sub(lb, rb)
	case "*":
		return new(big.Int).Mul(lb, rb)
	default:
		return big.NewInt(0)
	}
}

// wrapToWidth truncates result to bits-wide two's-complement (signed) or
// unsigned arithmetic, reporting whether the untruncated value did not fit.
func wrapToWidth(result *big.Int, bits int, signed bool) (int64, bool) {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	if !signed {
		overflow := result.Sign() < 0 || result.Cmp(mod) >= 0
		trunc := new(big.Int).Mod(result, mod)

		return int64(trunc.Uint64()), overflow
	}

	half := new(big.Int).Rsh(mod, 1)
	minV := new(big.Int).Neg(half)
	maxV := new(big.Int).Sub(half, big.NewInt(1))
	overflow := result.Cmp(minV) < 0 || result.Cmp(maxV) > 0

	trunc := new(big.Int).Mod(result, mod)
	if trunc.Sign() < 0 {
		trunc.Add(trunc, mod)
	}
	if trunc.Cmp(half) >= 0 {
		trunc.Sub(trunc, mod)
	}

	return trunc.Int64(), overflow
}

func wrapInt(bits int64, signed bool) value.Value {
	if signed {
		return value.Sint(bits)
	}

	return value.Uint(uint64(bits))
}

// safeFloatBinary implements the float side of the safe-arithmetic layer:
// results follow IEEE-754 unconditionally; overflow/divide-by-zero/NaN
// diagnostics are advisory.
func (ev *Evaluator) safeFloatBinary(e *types.BinaryExpr, l, r float64, is32 bool) (value.Value, bool) {
	base := e.Base()
	var result float64
	switch e.Op {
	case "+":
		result = l + r
	case "-":
		result = l - r
	case "*":
		result = l * r
	case "/":
		if r == 0 && l != 0 {
			ev.Context.ReportParenSuppressedWarning(base, diag.WarnFloatDivideByZero, "floating-point division by zero in constant expression")
		}
		result = l / r
	default:
		return nil, false
	}

	if math.IsInf(result, 0) && !math.IsInf(l, 0) && !math.IsInf(r, 0) {
		ev.Context.ReportParenSuppressedWarning(base, diag.WarnFloatOverflow, "floating-point overflow in constant expression")
	} else if math.IsNaN(result) && !math.IsNaN(l) && !math.IsNaN(r) {
		ev.Context.ReportParenSuppressedWarning(base, diag.WarnFloatNanMath, "floating-point operation produced NaN in constant expression")
	}

	if is32 {
		return value.Float32(float32(result)), true
	}

	return value.Float64(result), true
}

// foldUnary folds a unary operator application.
func (ev *Evaluator) foldUnary(e *types.UnaryExpr, intensity Intensity) (value.Value, bool) {
	if !ev.Fold(e.Operand, intensity) {
		return nil, false
	}
	operand := e.Operand.Base().Folded

	switch e.Op {
	case "!":
		if b, ok := operand.(value.Bool); ok {
			return value.Bool(!b), true
		}

		return nil, false

	case "~":
		bits, signed, ok := intWidthOf(e.Operand.Base().Type)
		if !ok {
			bits, signed = 64, false
		}
		switch v := operand.(type) {
		case value.Sint:
			wrapped, _ := wrapToWidth(big.NewInt(^int64(v)), bits, signed)

			return wrapInt(wrapped, signed), true
		case value.Uint:
			wrapped, _ := wrapToWidth(new(big.Int).SetUint64(^uint64(v)), bits, signed)

			return wrapInt(wrapped, signed), true
		default:
			return nil, false
		}

	case "-":
		switch v := operand.(type) {
		case value.Sint:
			bits, signed, ok := intWidthOf(e.Operand.Base().Type)
			if !ok {
				bits, signed = 64, true
			}
			wrapped, overflow := wrapToWidth(new(big.Int).Neg(big.NewInt(int64(v))), bits, signed)
			if overflow {
				ev.Context.ReportParenSuppressedWarning(e.Base(), diag.WarnIntOverflow, "integer overflow in constant expression")
			}

			return wrapInt(wrapped, signed), true
		case value.Float32:
			return value.Float32(-v), true
		case value.Float64:
			return value.Float64(-v), true
		default:
			return nil, false
		}

	case "+":
		return operand, true

	default:
		return nil, false
	}
}
