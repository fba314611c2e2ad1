package types

import (
	"fmt"
	"strings"
)

// ModKind identifies one layer of a type's modifier stack.
type ModKind byte

const (
	ModMut ModKind = iota
	ModConst
	ModConsteval
	ModLvalueReference
	ModMoveReference
	ModAutoReference
	ModAutoReferenceMut
	ModPointer
	ModOptional
	ModArray
	ModArraySlice
	ModVariadic
)

func (k ModKind) String() string {
	names := [...]string{
		"mut", "const", "consteval", "lvalue_reference", "move_reference",
		"auto_reference", "auto_reference_mut", "pointer", "optional",
		"array", "array_slice", "variadic",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return fmt.Sprintf("ModKind(%d)", k)
}

// Modifier is one layer of a type's modifier stack. Size is meaningful only
// for ModArray: 0 means "unsized" (inferred at the use site, e.g. from an
// array literal's element count).
type Modifier struct {
	Kind ModKind
	Size int
}

// Type is a (modifier-stack, terminator) pair. Modifiers are stored
// outside-in: Mods[0] is the outermost layer. Types are built once and
// shared by pointer; callers never mutate a Type reachable from an Expr or
// a value.Type.
type Type struct {
	Mods []Modifier
	Term Terminator
}

// NewType builds a type from its terminator and modifier layers, outermost
// first.
func NewType(term Terminator, mods ...Modifier) *Type {
	return &Type{Mods: mods, Term: term}
}

func (t *Type) String() string {
	var b strings.Builder
	for _, m := range t.Mods {
		switch m.Kind {
		case ModArray:
			if m.Size > 0 {
				fmt.Fprintf(&b, "[%d]", m.Size)
			} else {
				b.WriteString("[]")
			}
		case ModArraySlice:
			b.WriteString("[:]")
		case ModPointer:
			b.WriteByte('*')
		case ModOptional:
			b.WriteByte('?')
		case ModVariadic:
			b.WriteString("...")
		case ModLvalueReference:
			b.WriteByte('&')
		case ModMoveReference:
			b.WriteString("&&")
		case ModAutoReference:
			b.WriteString("#")
		case ModAutoReferenceMut:
			b.WriteString("#mut ")
		case ModMut:
			b.WriteString("mut ")
		case ModConst:
			b.WriteString("const ")
		case ModConsteval:
			b.WriteString("consteval ")
		}
	}
	b.WriteString(t.Term.String())

	return b.String()
}

// SymbolName renders the type the way it would appear inside a mangled
// linker symbol: compact, with no whitespace. Implements value.TypeView.
func (t *Type) SymbolName() string {
	var b strings.Builder
	for _, m := range t.Mods {
		switch m.Kind {
		case ModArray:
			fmt.Fprintf(&b, "A%d", m.Size)
		case ModArraySlice:
			b.WriteByte('S')
		case ModPointer:
			b.WriteByte('P')
		case ModOptional:
			b.WriteByte('O')
		case ModVariadic:
			b.WriteByte('V')
		case ModLvalueReference:
			b.WriteByte('R')
		case ModMoveReference:
			b.WriteByte('M')
		case ModAutoReference:
			b.WriteByte('r')
		case ModAutoReferenceMut:
			b.WriteByte('m')
		case ModMut:
			b.WriteByte('K')
		case ModConst:
			b.WriteByte('C')
		case ModConsteval:
			b.WriteByte('E')
		}
	}
	b.WriteString(t.Term.symbolName())

	return b.String()
}

func (t *Type) topMod() (Modifier, bool) {
	if len(t.Mods) == 0 {
		return Modifier{}, false
	}

	return t.Mods[0], true
}

// StripMut returns the type with a leading ModMut layer removed, if present.
func (t *Type) StripMut() *Type {
	if m, ok := t.topMod(); ok && m.Kind == ModMut {
		return &Type{Mods: t.Mods[1:], Term: t.Term}
	}

	return t
}

// IsReference reports whether the outermost (post-mut) modifier is one of
// the four reference kinds.
func (t *Type) IsReference() bool {
	m, ok := t.StripMut().topMod()

	return ok && (m.Kind == ModLvalueReference || m.Kind == ModMoveReference ||
		m.Kind == ModAutoReference || m.Kind == ModAutoReferenceMut)
}

// IsComplete reports whether the type contains no auto, auto_reference,
// auto_reference_mut, typename, or incomplete base-type declaration
// anywhere in its terminator.
func (t *Type) IsComplete() bool {
	for _, m := range t.Mods {
		if m.Kind == ModAutoReference || m.Kind == ModAutoReferenceMut {
			return false
		}
	}

	return t.Term.isComplete()
}

// RemoveMutReference strips a leading mut and, if what remains is a
// reference, strips the reference layer too (but not a trailing mut on the
// referent, which the caller may strip again if desired).
func (t *Type) RemoveMutReference() *Type {
	stripped := t.StripMut()
	if m, ok := stripped.topMod(); ok && (m.Kind == ModLvalueReference || m.Kind == ModMoveReference ||
		m.Kind == ModAutoReference || m.Kind == ModAutoReferenceMut) {
		return &Type{Mods: stripped.Mods[1:], Term: stripped.Term}
	}

	return stripped
}

// RemoveAnyMut strips every ModMut layer in the modifier stack, not just a
// leading one.
func (t *Type) RemoveAnyMut() *Type {
	mods := make([]Modifier, 0, len(t.Mods))
	for _, m := range t.Mods {
		if m.Kind != ModMut {
			mods = append(mods, m)
		}
	}

	return &Type{Mods: mods, Term: t.Term}
}

// Equal reports structural equality: same modifier stack (kind and, for
// ModArray, size) and equal terminators.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || len(t.Mods) != len(o.Mods) {
		return false
	}
	for i := range t.Mods {
		if t.Mods[i] != o.Mods[i] {
			return false
		}
	}

	return t.Term.equal(o.Term)
}

// WithOptional wraps t in an optional modifier. An optional of a pointer,
// reference or function shape carries a distinguished null bit-pattern and
// round-trips through the null value variant (spec.md 3.2); every other
// terminator needs an explicit present/absent flag, which this type model
// does not need to represent since that lowering decision belongs to
// codegen, not the type model.
func (t *Type) WithOptional() *Type {
	return &Type{Mods: append([]Modifier{{Kind: ModOptional}}, t.Mods...), Term: t.Term}
}

// HasDistinguishedNullBitPattern reports whether an optional of this type
// can be represented without an extra presence flag, because the
// underlying representation already has a spare bit pattern to spend on
// "null" — true for pointers, references, and function values.
func (t *Type) HasDistinguishedNullBitPattern() bool {
	if t.IsReference() {
		return true
	}
	m, ok := t.topMod()
	if ok && m.Kind == ModPointer {
		return true
	}
	_, isFn := t.Term.(FunctionType)

	return isFn
}
