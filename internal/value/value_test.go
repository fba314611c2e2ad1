package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

type fakeEnum struct {
	name    string
	signed  bool
	byValue map[uint64]string
}

func (e fakeEnum) TypeName() string { return e.name }
func (e fakeEnum) Signed() bool     { return e.signed }
func (e fakeEnum) ValueName(bits uint64) (string, bool) {
	name, ok := e.byValue[bits]

	return name, ok
}

// Equality must be structural only within a Kind, never across Kinds: a
// sint and a uint holding the same bit pattern are distinct values.
func TestValueEqualIsKindStrict(t *testing.T) {
	assert.True(t, value.Sint(1).Equal(value.Sint(1)))
	assert.False(t, value.Sint(1).Equal(value.Uint(1)))
	assert.False(t, value.Uint(1).Equal(value.Sint(1)))
}

func TestDisplayScalars(t *testing.T) {
	assert.Equal(t, "-1", value.Sint(-1).Display())
	assert.Equal(t, "42", value.Uint(42).Display())
	assert.Equal(t, "true", value.Bool(true).Display())
	assert.Equal(t, "false", value.Bool(false).Display())
	assert.Equal(t, "null", value.Null{}.Display())
	assert.Equal(t, "void()", value.Void{}.Display())
	assert.Equal(t, `"hi"`, value.String("hi").Display())
	assert.Equal(t, `"a\nb"`, value.String("a\nb").Display())
	assert.Equal(t, "'x'", value.Char('x').Display())
}

func TestDisplayAggregates(t *testing.T) {
	arr := value.Array{Elems: []value.Value{value.Sint(1), value.Sint(2)}}
	assert.Equal(t, "[ 1, 2 ]", arr.Display())
	assert.Equal(t, "[]", value.Array{}.Display())

	tup := value.Tuple{Elems: []value.Value{value.Sint(1), value.Bool(true)}}
	assert.Equal(t, "[ 1, true ]", tup.Display())
}

func TestEnumDisplay(t *testing.T) {
	decl := fakeEnum{name: "color", signed: false, byValue: map[uint64]string{0: "red"}}
	named := value.Enum{Decl: decl, Bits: 0}
	assert.Equal(t, "color.red", named.Display())

	unnamed := value.Enum{Decl: decl, Bits: 7}
	assert.Equal(t, "color(7)", unnamed.Display())

	signedDecl := fakeEnum{name: "level", signed: true, byValue: map[uint64]string{}}
	unnamedSigned := value.Enum{Decl: signedDecl, Bits: uint64(int64(-3))}
	assert.Equal(t, "level(-3)", unnamedSigned.Display())
}

// S1: encoding a negative sint reinterprets its bits as an unsigned 64-bit
// integer rather than encoding a sign.
func TestEncodeSintScenario(t *testing.T) {
	assert.Equal(t, "i18446744073709551615", value.Encode(value.Sint(-1)))
}

// S2: a float32 constant encodes as its IEEE-754 bit pattern in 8 lowercase
// hex digits.
func TestEncodeFloat32Scenario(t *testing.T) {
	assert.Equal(t, "f3fc00000", value.Encode(value.Float32(1.5)))
}

func TestEncodeFloat64(t *testing.T) {
	encoded := value.Encode(value.Float64(1.5))
	require.Len(t, encoded, 17)
	assert.Equal(t, byte('d'), encoded[0])
}

func TestEncodeDecodeRoundTripsDisplayForScalars(t *testing.T) {
	cases := []value.Value{
		value.Sint(-12345),
		value.Uint(9999),
		value.Float32(1.5),
		value.Float64(2.25),
		value.Bool(true),
		value.Bool(false),
		value.Null{},
		value.Void{},
	}

	for _, v := range cases {
		encoded := value.Encode(v)
		cur := value.NewCursor(encoded)
		assert.Equal(t, v.Display(), value.Decode(cur))
		assert.True(t, cur.Done())
	}
}

func TestEncodeDecodeRoundTripsArray(t *testing.T) {
	arr := value.Array{Elems: []value.Value{value.Sint(1), value.Sint(-2), value.Sint(3)}}
	encoded := value.Encode(arr)
	cur := value.NewCursor(encoded)
	assert.Equal(t, arr.Display(), value.Decode(cur))
	assert.True(t, cur.Done())
}

func TestEncodeDecodeRoundTripsSintArray(t *testing.T) {
	arr := value.SintArray{Elems: []int64{1, -2, 3}}
	encoded := value.Encode(arr)
	cur := value.NewCursor(encoded)
	assert.Equal(t, arr.Display(), value.Decode(cur))
	assert.True(t, cur.Done())
}

// Enum encoding round-trips for both the named and unnamed-unsigned and
// unnamed-signed branches, including the zero/zero-marker collision that
// the leading-'0' placeholder must disambiguate.
func TestEncodeDecodeEnum(t *testing.T) {
	decl := fakeEnum{name: "color", signed: false, byValue: map[uint64]string{0: "red"}}

	named := value.Enum{Decl: decl, Bits: 0}
	cur := value.NewCursor(value.Encode(named))
	assert.Equal(t, "color.red", value.Decode(cur))

	unnamed := value.Enum{Decl: decl, Bits: 0}
	unnamed.Decl = fakeEnum{name: "color", signed: false, byValue: map[uint64]string{}}
	cur = value.NewCursor(value.Encode(unnamed))
	assert.Equal(t, "color(0)", value.Decode(cur))

	unnamedNonzero := value.Enum{Decl: fakeEnum{name: "color", signed: false, byValue: map[uint64]string{}}, Bits: 7}
	cur = value.NewCursor(value.Encode(unnamedNonzero))
	assert.Equal(t, "color(7)", value.Decode(cur))

	signedDecl := fakeEnum{name: "level", signed: true, byValue: map[uint64]string{}}
	unnamedSigned := value.Enum{Decl: signedDecl, Bits: uint64(int64(-3))}
	cur = value.NewCursor(value.Encode(unnamedSigned))
	assert.Equal(t, "level(-3)", value.Decode(cur))

	unnamedSignedZero := value.Enum{Decl: signedDecl, Bits: 0}
	cur = value.NewCursor(value.Encode(unnamedSignedZero))
	assert.Equal(t, "level(0)", value.Decode(cur))
}

// Decoding a string field returns its raw bytes rather than a quoted
// Display-style rendering; this matches original_source's
// decode_from_symbol_name, whose 's' case never re-adds quotes.
func TestDecodeStringIsUnquoted(t *testing.T) {
	cur := value.NewCursor(value.Encode(value.String("hi")))
	assert.Equal(t, "hi", value.Decode(cur))
}
