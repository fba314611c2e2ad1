package value

import (
	"fmt"
	"strconv"
)

// Kind identifies which of the 19 constant-value variants a Value holds.
// The numeric order is a stable external contract: it is the order the
// symbol-name tag letters in codec.go are matched against, and the source
// compiler asserts variant_count == 19 at the same positions.
type Kind byte

const (
	KindSint Kind = iota
	KindUint
	KindFloat32
	KindFloat64
	KindChar // u8char: a 32-bit Unicode scalar value
	KindString
	KindBool
	KindNull
	KindVoid
	KindEnum
	KindArray
	KindSintArray
	KindUintArray
	KindFloat32Array
	KindFloat64Array
	KindTuple
	KindAggregate
	KindFunction
	KindType

	variantCount = int(KindType) + 1
)

func (k Kind) String() string {
	names := [variantCount]string{
		"sint", "uint", "float32", "float64", "u8char", "string", "boolean",
		"null", "void", "enum", "array", "sint_array", "uint_array",
		"float32_array", "float64_array", "tuple", "aggregate", "function", "type",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// Value is the interface every constant-value variant implements.
//
// Equal is structural and defined only between identical Kinds; comparing
// across Kinds (e.g. a Sint to a Uint) returns false rather than panicking
// or attempting a numeric coercion — conversions are the matcher's job, not
// the value lattice's.
type Value interface {
	Kind() Kind
	Equal(Value) bool
	Display() string
}

// EnumRef is the minimal view of an enum declaration the value lattice needs
// to display and encode an Enum value. internal/types.EnumDecl implements
// this without value importing internal/types (which would create an
// import cycle, since types.ExprBase holds a folded Value).
type EnumRef interface {
	// TypeName is the enum's unqualified name, used as the symbol prefix.
	TypeName() string
	// ValueName returns the symbolic name for bits, if the declaration has
	// one (an enumerator whose value equals bits).
	ValueName(bits uint64) (string, bool)
	// Signed reports whether the enum's underlying integer kind is signed.
	Signed() bool
}

// TypeView is the minimal view of a type the Type variant needs for display
// and symbol-name encoding.
type TypeView interface {
	SymbolName() string
	String() string
}

// FunctionRef is the minimal view of a function declaration the Function
// variant needs for symbol-name encoding.
type FunctionRef interface {
	SymbolName() string
}

// ---------------------------------------------------------------------
// Scalar variants
// ---------------------------------------------------------------------

// Sint is a signed 64-bit integer, used for every signed integer size <= 64 bits.
type Sint int64

func (Sint) Kind() Kind { return KindSint }
func (v Sint) Equal(o Value) bool {
	other, ok := o.(Sint)

	return ok && v == other
}
func (v Sint) Display() string { return strconv.FormatInt(int64(v), 10) }

// Uint is an unsigned 64-bit integer, used for unsigned integer sizes <= 64
// bits and for pointer bit-patterns.
type Uint uint64

func (Uint) Kind() Kind { return KindUint }
func (v Uint) Equal(o Value) bool {
	other, ok := o.(Uint)

	return ok && v == other
}
func (v Uint) Display() string { return strconv.FormatUint(uint64(v), 10) }

// Float32 is an IEEE-754 binary32 value.
type Float32 float32

func (Float32) Kind() Kind { return KindFloat32 }
func (v Float32) Equal(o Value) bool {
	other, ok := o.(Float32)

	return ok && v == other
}
func (v Float32) Display() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

// Float64 is an IEEE-754 binary64 value.
type Float64 float64

func (Float64) Kind() Kind { return KindFloat64 }
func (v Float64) Equal(o Value) bool {
	other, ok := o.(Float64)

	return ok && v == other
}
func (v Float64) Display() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// Char is a u8char: a 32-bit Unicode scalar value. The invariant that it is
// a valid codepoint is enforced by whoever constructs it (casts check this
// explicitly; see pkg/consteval's cast table).
type Char rune

func (Char) Kind() Kind { return KindChar }
func (v Char) Equal(o Value) bool {
	other, ok := o.(Char)

	return ok && v == other
}
func (v Char) Display() string { return "'" + escapeRune(rune(v)) + "'" }

// String is a UTF-8 string constant.
type String string

func (String) Kind() Kind { return KindString }
func (v String) Equal(o Value) bool {
	other, ok := o.(String)

	return ok && v == other
}
func (v String) Display() string { return `"` + escapeString(string(v)) + `"` }

// Bool is a two-valued boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (v Bool) Equal(o Value) bool {
	other, ok := o.(Bool)

	return ok && v == other
}
func (v Bool) Display() string {
	if v {
		return "true"
	}

	return "false"
}

// Null is the value of the null-pointer literal. It is a distinct variant
// from the "absent" (nil Value) state: a nil Value means "no constant was
// produced", Null{} means "the constant is the null literal".
type Null struct{}

func (Null) Kind() Kind          { return KindNull }
func (Null) Equal(o Value) bool  { _, ok := o.(Null); return ok }
func (Null) Display() string     { return "null" }

// Void is the value of a void-typed expression.
type Void struct{}

func (Void) Kind() Kind         { return KindVoid }
func (Void) Equal(o Value) bool { _, ok := o.(Void); return ok }
func (Void) Display() string    { return "void()" }

// Enum holds a reference to the declaration it belongs to plus the raw
// underlying bits; signedness for display/encoding purposes is read off the
// declaration, not stored redundantly on the value.
type Enum struct {
	Decl EnumRef
	Bits uint64
}

func (Enum) Kind() Kind { return KindEnum }
func (v Enum) Equal(o Value) bool {
	other, ok := o.(Enum)

	return ok && v.Decl == other.Decl && v.Bits == other.Bits
}

func (v Enum) Display() string {
	typeName := v.Decl.TypeName()
	if name, ok := v.Decl.ValueName(v.Bits); ok {
		return typeName + "." + name
	}
	if v.Decl.Signed() {
		return fmt.Sprintf("%s(%d)", typeName, int64(v.Bits))
	}

	return fmt.Sprintf("%s(%d)", typeName, v.Bits)
}
