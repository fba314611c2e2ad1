package types

import (
	"fmt"
	"strconv"
	"strings"
)

// CallConv is a function terminator's calling convention tag. The set is
// intentionally small and closed; new targets add a case here, not a new
// terminator shape.
type CallConv byte

const (
	CallConvDefault CallConv = iota
	CallConvC
	CallConvFast
	CallConvStd
)

func (c CallConv) String() string {
	switch c {
	case CallConvC:
		return "\"c\" "
	case CallConvFast:
		return "\"fast\" "
	case CallConvStd:
		return "\"std\" "
	default:
		return ""
	}
}

// Terminator is the underlying shape a modifier stack wraps. The set is
// closed: base_type, tuple, function, auto, typename, void.
type Terminator interface {
	String() string
	symbolName() string
	isComplete() bool
	equal(Terminator) bool
}

// BaseType names a resolved declaration (a struct, primitive, or enum).
type BaseType struct {
	Decl Declaration
}

func (t BaseType) String() string     { return t.Decl.DeclName() }
func (t BaseType) symbolName() string { return t.Decl.DeclName() }
func (t BaseType) isComplete() bool   { return t.Decl.IsComplete() }
func (t BaseType) equal(o Terminator) bool {
	other, ok := o.(BaseType)

	return ok && t.Decl == other.Decl
}

// TupleType is a fixed-arity heterogeneous sequence of element types. The
// last element may itself carry a ModVariadic layer; that is encoded on
// the element *Type, not on TupleType.
type TupleType struct {
	Elems []*Type
}

func (t TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (t TupleType) symbolName() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.SymbolName()
	}

	return "T" + strconv.Itoa(len(t.Elems)) + strings.Join(parts, "")
}

func (t TupleType) isComplete() bool {
	for _, e := range t.Elems {
		if !e.IsComplete() {
			return false
		}
	}

	return true
}

func (t TupleType) equal(o Terminator) bool {
	other, ok := o.(TupleType)
	if !ok || len(t.Elems) != len(other.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}

	return true
}

// FunctionType is a function signature: calling convention, parameter
// types (the last of which may carry ModVariadic), and a return type.
type FunctionType struct {
	CC     CallConv
	Params []*Type
	Return *Type
}

func (t FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}

	return fmt.Sprintf("function %s(%s) -> %s", t.CC, strings.Join(parts, ", "), t.Return)
}

func (t FunctionType) symbolName() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.SymbolName()
	}

	return "F" + strconv.Itoa(len(t.Params)) + strings.Join(parts, "") + "_" + t.Return.SymbolName()
}

func (t FunctionType) isComplete() bool {
	if !t.Return.IsComplete() {
		return false
	}
	for _, p := range t.Params {
		if !p.IsComplete() {
			return false
		}
	}

	return true
}

func (t FunctionType) equal(o Terminator) bool {
	other, ok := o.(FunctionType)
	if !ok || t.CC != other.CC || len(t.Params) != len(other.Params) || !t.Return.Equal(other.Return) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(other.Params[i]) {
			return false
		}
	}

	return true
}

// AutoType is the placeholder terminator for type deduction, e.g. `let x =
// ...` or a generic parameter not yet bound.
type AutoType struct{}

func (AutoType) String() string          { return "auto" }
func (AutoType) symbolName() string      { return "auto" }
func (AutoType) isComplete() bool        { return false }
func (AutoType) equal(o Terminator) bool { _, ok := o.(AutoType); return ok }

// TypenameType is the terminator of a type that itself holds a type value
// (a generic type parameter, or the destination of a type-strict match).
type TypenameType struct{}

func (TypenameType) String() string          { return "typename" }
func (TypenameType) symbolName() string      { return "typename" }
func (TypenameType) isComplete() bool        { return false }
func (TypenameType) equal(o Terminator) bool { _, ok := o.(TypenameType); return ok }

// VoidType is the terminator of an expression with no value.
type VoidType struct{}

func (VoidType) String() string          { return "void" }
func (VoidType) symbolName() string      { return "v" }
func (VoidType) isComplete() bool        { return true }
func (VoidType) equal(o Terminator) bool { _, ok := o.(VoidType); return ok }
