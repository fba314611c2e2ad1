package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode produces the deterministic, injective symbol-name encoding used to
// mangle linker-visible names for monomorphised compile-time constants. The
// grammar is fixed by original_source/src/ast/constant_value.cpp and is
// reproduced field-for-field here, including its two quirks:
//   - sint is encoded as its bit-reinterpreted uint64 (two's complement),
//     never as a signed decimal.
//   - array-like variants (array, the four primitive arrays, tuple,
//     aggregate) encode a decimal element count, not a length-delimited
//     byte span; each element is then prefixed with a single '.'.
func Encode(v Value) string {
	var b strings.Builder
	encodeInto(&b, v)

	return b.String()
}

func encodeInto(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case Sint:
		b.WriteByte('i')
		b.WriteString(strconv.FormatUint(uint64(int64(val)), 10))
	case Uint:
		b.WriteByte('u')
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case Float32:
		b.WriteByte('f')
		fmt.Fprintf(b, "%08x", math.Float32bits(float32(val)))
	case Float64:
		b.WriteByte('d')
		fmt.Fprintf(b, "%016x", math.Float64bits(float64(val)))
	case Char:
		b.WriteByte('c')
		b.WriteString(strconv.FormatUint(uint64(uint32(val)), 10))
	case String:
		b.WriteByte('s')
		b.WriteString(strconv.Itoa(len(val)))
		b.WriteByte('.')
		b.WriteString(string(val))
	case Bool:
		b.WriteByte('b')
		if val {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case Null:
		b.WriteByte('n')
	case Void:
		b.WriteByte('v')
	case Enum:
		b.WriteByte('e')
		b.WriteString(val.Decl.TypeName())
		b.WriteByte('.')
		if name, ok := val.Decl.ValueName(val.Bits); ok {
			b.WriteString(strconv.Itoa(len(name)))
			b.WriteByte('.')
			b.WriteString(name)
		} else if val.Decl.Signed() {
			// The leading '0' digit is the negative-sign placeholder for an
			// unnamed signed enum value; the remaining digits are decimal.
			b.WriteByte('0')
			b.WriteString(strconv.FormatUint(val.Bits, 10))
		} else {
			b.WriteString(strconv.FormatUint(val.Bits, 10))
		}
	case Array:
		b.WriteByte('A')
		encodeValueSlice(b, val.Elems)
	case SintArray:
		b.WriteByte('I')
		b.WriteString(strconv.Itoa(len(val.Elems)))
		for _, e := range val.Elems {
			b.WriteByte('.')
			b.WriteString(strconv.FormatUint(uint64(e), 10))
		}
	case UintArray:
		b.WriteByte('U')
		b.WriteString(strconv.Itoa(len(val.Elems)))
		for _, e := range val.Elems {
			b.WriteByte('.')
			b.WriteString(strconv.FormatUint(e, 10))
		}
	case Float32Array:
		b.WriteByte('G')
		b.WriteString(strconv.Itoa(len(val.Elems)))
		for _, e := range val.Elems {
			b.WriteByte('.')
			fmt.Fprintf(b, "%08x", math.Float32bits(e))
		}
	case Float64Array:
		b.WriteByte('D')
		b.WriteString(strconv.Itoa(len(val.Elems)))
		for _, e := range val.Elems {
			b.WriteByte('.')
			fmt.Fprintf(b, "%016x", math.Float64bits(e))
		}
	case Tuple:
		b.WriteByte('T')
		encodeValueSlice(b, val.Elems)
	case Aggregate:
		b.WriteByte('a')
		encodeValueSlice(b, val.Elems)
	case Function:
		symbol := val.Ref.SymbolName()
		b.WriteByte('F')
		b.WriteString(strconv.Itoa(len(symbol)))
		b.WriteByte('.')
		b.WriteString(symbol)
	case Type:
		symbol := val.View.SymbolName()
		b.WriteByte('t')
		b.WriteString(strconv.Itoa(len(symbol)))
		b.WriteByte('.')
		b.WriteString(symbol)
	default:
		panic(fmt.Sprintf("value: unhandled variant in Encode: %T", v))
	}
}

func encodeValueSlice(b *strings.Builder, elems []Value) {
	b.WriteString(strconv.Itoa(len(elems)))
	for _, e := range elems {
		b.WriteByte('.')
		encodeInto(b, e)
	}
}

// Cursor walks a symbol-name encoding produced by Encode. Decode is total
// over well-formed input and panics on malformed input — the caller is
// trusted to pass a string this same codec produced.
type Cursor struct {
	s   string
	pos int
}

// NewCursor creates a cursor positioned at the start of s.
func NewCursor(s string) *Cursor { return &Cursor{s: s} }

// Done reports whether the cursor has consumed the entire input.
func (c *Cursor) Done() bool { return c.pos >= len(c.s) }

func (c *Cursor) peek() byte {
	if c.pos >= len(c.s) {
		panic("value: symbol-name decode ran past end of input")
	}

	return c.s[c.pos]
}

func (c *Cursor) advance() byte {
	ch := c.peek()
	c.pos++

	return ch
}

func (c *Cursor) expect(ch byte) {
	if c.advance() != ch {
		panic(fmt.Sprintf("value: expected %q in symbol-name encoding", ch))
	}
}

func (c *Cursor) parseUint() uint64 {
	start := c.pos
	for c.pos < len(c.s) && c.s[c.pos] >= '0' && c.s[c.pos] <= '9' {
		c.pos++
	}
	if c.pos == start {
		panic("value: expected decimal digits in symbol-name encoding")
	}
	n, err := strconv.ParseUint(c.s[start:c.pos], 10, 64)
	if err != nil {
		panic("value: malformed decimal in symbol-name encoding: " + err.Error())
	}

	return n
}

func (c *Cursor) parseHex(digits int) uint64 {
	start := c.pos
	c.pos += digits
	if c.pos > len(c.s) {
		panic("value: truncated hex field in symbol-name encoding")
	}
	n, err := strconv.ParseUint(c.s[start:c.pos], 16, 64)
	if err != nil {
		panic("value: malformed hex in symbol-name encoding: " + err.Error())
	}

	return n
}

func (c *Cursor) takeString(n int) string {
	if c.pos+n > len(c.s) {
		panic("value: truncated string field in symbol-name encoding")
	}
	s := c.s[c.pos : c.pos+n]
	c.pos += n

	return s
}

// Decode advances the cursor past one encoded value and returns its
// rendered (display) form. For most variants this is the same text Display
// produces for the original value. The exceptions: a decoded string field
// returns its raw bytes, unlike String.Display which wraps them in quotes
// (this matches decode_from_symbol_name's case 's' exactly); a u8char is
// quoted but not re-escaped; and function and type fields decode to the
// symbol name they were encoded from, not to Function.Display or
// Type.Display.
func Decode(c *Cursor) string {
	switch c.advance() {
	case 'i':
		return Sint(int64(c.parseUint())).Display()
	case 'u':
		return Uint(c.parseUint()).Display()
	case 'f':
		return Float32(math.Float32frombits(uint32(c.parseHex(8)))).Display()
	case 'd':
		return Float64(math.Float64frombits(c.parseHex(16))).Display()
	case 'c':
		return "'" + string(rune(c.parseUint())) + "'"
	case 's':
		n := int(c.parseUint())
		c.expect('.')

		return c.takeString(n)
	case 'b':
		if c.advance() == '1' {
			return "true"
		}

		return "false"
	case 'n':
		return "null"
	case 'v':
		return "void()"
	case 'e':
		return decodeEnum(c)
	case 'A':
		return decodeArrayLike(c, func(c *Cursor) string { return Decode(c) })
	case 'I':
		return decodeArrayLike(c, func(c *Cursor) string { return Sint(int64(c.parseUint())).Display() })
	case 'U':
		return decodeArrayLike(c, func(c *Cursor) string { return Uint(c.parseUint()).Display() })
	case 'G':
		return decodeArrayLike(c, func(c *Cursor) string {
			return Float32(math.Float32frombits(uint32(c.parseHex(8)))).Display()
		})
	case 'D':
		return decodeArrayLike(c, func(c *Cursor) string {
			return Float64(math.Float64frombits(c.parseHex(16))).Display()
		})
	case 'T':
		return decodeArrayLike(c, func(c *Cursor) string { return Decode(c) })
	case 'F':
		n := int(c.parseUint())
		c.expect('.')

		return c.takeString(n)
	case 't':
		n := int(c.parseUint())
		c.expect('.')

		return c.takeString(n)
	case 'a':
		return decodeArrayLike(c, func(c *Cursor) string { return Decode(c) })
	default:
		panic("value: unrecognized tag letter in symbol-name encoding")
	}
}

func decodeArrayLike(c *Cursor, decodeElem func(*Cursor) string) string {
	n := int(c.parseUint())
	if n == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[ ")
	for i := range n {
		if i != 0 {
			b.WriteString(", ")
		}
		c.expect('.')
		b.WriteString(decodeElem(c))
	}
	b.WriteString(" ]")

	return b.String()
}

// decodeEnum disambiguates the named ("<namelen>.<name>") and unnamed
// ("<bits>" or "0<bits>" for the signed, unnamed-negative case) tails by
// reading a maximal run of decimal digits first and only then checking
// whether a '.' follows: a named value's length prefix is always
// immediately followed by '.', while neither unnamed form ever contains one
// (FormatUint/Itoa never themselves emit a leading zero except for the
// value 0, which is exactly the marker this grammar reuses).
func decodeEnum(c *Cursor) string {
	start := c.pos
	for c.s[c.pos] != '.' {
		c.pos++
	}
	typeName := c.s[start:c.pos]
	c.expect('.')

	digitsStart := c.pos
	for c.pos < len(c.s) && c.s[c.pos] >= '0' && c.s[c.pos] <= '9' {
		c.pos++
	}
	run := c.s[digitsStart:c.pos]
	if run == "" {
		panic("value: malformed enum field in symbol-name encoding")
	}

	if c.pos < len(c.s) && c.s[c.pos] == '.' {
		c.pos++
		nameLen, err := strconv.Atoi(run)
		if err != nil {
			panic("value: malformed enum name length in symbol-name encoding")
		}
		name := c.takeString(nameLen)

		return fmt.Sprintf("%s.%s", typeName, name)
	}

	if len(run) > 1 && run[0] == '0' {
		bits, err := strconv.ParseUint(run[1:], 10, 64)
		if err != nil {
			panic("value: malformed signed enum bits in symbol-name encoding")
		}

		return fmt.Sprintf("%s(%d)", typeName, int64(bits))
	}

	bits, err := strconv.ParseUint(run, 10, 64)
	if err != nil {
		panic("value: malformed unsigned enum bits in symbol-name encoding")
	}

	return fmt.Sprintf("%s(%d)", typeName, bits)
}
