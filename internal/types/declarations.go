package types

import "sort"

// Declaration is the common view every base-type declaration (struct,
// primitive, enum) exposes to the type model itself. It deliberately says
// nothing about members or methods — those live on the concrete decl
// structs below, which callers type-assert down to when they need more.
type Declaration interface {
	DeclName() string
	IsComplete() bool
}

// PrimitiveDecl names one of the language's built-in scalar kinds (the
// int8..uint64, f32/f64, char, bool, etc. family). Primitives are always
// complete. Bits/Signed/Float/Char/Bool/Void classify the kind for the
// evaluator's safe-arithmetic and cast layers, so nobody downstream needs to
// parse Name back into a width and signedness.
type PrimitiveDecl struct {
	Name  string
	Bits  int // bit width for integer kinds; 0 for non-integer kinds
	Signed bool
	Float bool
	Char  bool
	Bool  bool
	Void  bool
}

func (d *PrimitiveDecl) DeclName() string { return d.Name }
func (*PrimitiveDecl) IsComplete() bool   { return true }

// IsInt reports whether this primitive is one of the sized signed/unsigned
// integer kinds (not char, bool, float, or void).
func (d *PrimitiveDecl) IsInt() bool { return d.Bits > 0 && !d.Float }

// the closed set of built-in primitive declarations, shared by pointer so
// BaseType.Decl equality (and map keys built from it) works the way
// EnumDecl/StructDecl instance identity does.
var (
	Int8    = &PrimitiveDecl{Name: "int8", Bits: 8, Signed: true}
	Int16   = &PrimitiveDecl{Name: "int16", Bits: 16, Signed: true}
	Int32   = &PrimitiveDecl{Name: "int32", Bits: 32, Signed: true}
	Int64   = &PrimitiveDecl{Name: "int64", Bits: 64, Signed: true}
	Uint8   = &PrimitiveDecl{Name: "uint8", Bits: 8}
	Uint16  = &PrimitiveDecl{Name: "uint16", Bits: 16}
	Uint32  = &PrimitiveDecl{Name: "uint32", Bits: 32}
	Uint64  = &PrimitiveDecl{Name: "uint64", Bits: 64}
	Float32 = &PrimitiveDecl{Name: "f32", Float: true}
	Float64 = &PrimitiveDecl{Name: "f64", Float: true}
	CharP   = &PrimitiveDecl{Name: "char", Char: true}
	BoolP   = &PrimitiveDecl{Name: "bool", Bool: true}
	VoidP   = &PrimitiveDecl{Name: "void", Void: true}
	Str     = &PrimitiveDecl{Name: "str"}
)

// PrimitiveDecls lists the closed built-in set, e.g. for a parser building
// its initial identifier scope.
var PrimitiveDecls = []*PrimitiveDecl{
	Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64,
	Float32, Float64, CharP, BoolP, VoidP, Str,
}

// StructDecl is a user-defined aggregate type. Fields are listed in
// declaration order, matching the order value.Aggregate's Elems must be in.
type StructDecl struct {
	Name     string
	Fields   []FieldDecl
	Generic  bool
	Instance []*Type // non-nil when this is a monomorphised instance of a generic parent
	Parent   *StructDecl
}

// FieldDecl is one member of a struct.
type FieldDecl struct {
	Name string
	Type *Type
}

func (d *StructDecl) DeclName() string { return d.Name }
func (d *StructDecl) IsComplete() bool {
	if d.Generic && d.Instance == nil {
		return false
	}
	for _, f := range d.Fields {
		if !f.Type.IsComplete() {
			return false
		}
	}

	return true
}

// Enumerator is one named, valued member of an enum declaration.
type Enumerator struct {
	Name string
	Bits uint64
}

// EnumDecl is a user-defined enum. Implements value.EnumRef so an Enum
// value can reference its declaration without internal/value importing
// internal/types.
type EnumDecl struct {
	Name         string
	Underlying   *Type // the underlying integer type
	IsSigned     bool
	Enumerators  []Enumerator
	byValueCache map[uint64]string
}

func (d *EnumDecl) DeclName() string { return d.Name }
func (*EnumDecl) IsComplete() bool   { return true }

// TypeName implements value.EnumRef.
func (d *EnumDecl) TypeName() string { return d.Name }

// Signed implements value.EnumRef.
func (d *EnumDecl) Signed() bool { return d.IsSigned }

// ValueName implements value.EnumRef, returning the enumerator name whose
// value equals bits, if one exists. Built lazily and cached since a given
// declaration is looked up far more often than it is constructed.
func (d *EnumDecl) ValueName(bits uint64) (string, bool) {
	if d.byValueCache == nil {
		d.byValueCache = make(map[uint64]string, len(d.Enumerators))
		for _, e := range d.Enumerators {
			if _, exists := d.byValueCache[e.Bits]; !exists {
				d.byValueCache[e.Bits] = e.Name
			}
		}
	}
	name, ok := d.byValueCache[bits]

	return name, ok
}

// SortedEnumerators returns the enumerators ordered by value, used by
// diagnostics that list an enum's members (e.g. a non-exhaustive-switch
// note).
func (d *EnumDecl) SortedEnumerators() []Enumerator {
	out := make([]Enumerator, len(d.Enumerators))
	copy(out, d.Enumerators)
	sort.Slice(out, func(i, j int) bool { return out[i].Bits < out[j].Bits })

	return out
}

// FuncDecl is a user-defined or intrinsic function declaration. Implements
// value.FunctionRef so a Function value can reference its declaration
// without internal/value importing internal/types.
type FuncDecl struct {
	Name       string
	Symbol     string
	Signature  *Type // a FunctionType-terminated *Type
	Consteval  bool  // declared consteval: body may be interpreted at compile time
	Intrinsic  string
	Parameters []ParamDecl
	Body       *CompoundExpr // nil for intrinsics and declarations-only
}

// ParamDecl is one parameter of a function declaration.
type ParamDecl struct {
	Name     string
	Type     *Type
	Variadic bool
}

func (d *FuncDecl) DeclName() string   { return d.Name }
func (d *FuncDecl) IsComplete() bool   { return d.Signature.IsComplete() }
func (d *FuncDecl) SymbolName() string { return d.Symbol }

// IsIntrinsic reports whether this declaration names one of the closed set
// of ~145 recognised intrinsic identities (pkg/consteval owns the table;
// this is just the marker the evaluator keys off of).
func (d *FuncDecl) IsIntrinsic() bool { return d.Intrinsic != "" }

func (p *ParamDecl) DeclName() string { return p.Name }
func (p *ParamDecl) IsComplete() bool { return p.Type.IsComplete() }

// VarDecl is a variable declaration. Identifiers only fold (spec.md
// §4.2.2) when they resolve to a VarDecl with Consteval set and a
// resolved Initializer.
type VarDecl struct {
	Name        string
	Type        *Type
	Consteval   bool
	Initializer Expr
}

func (d *VarDecl) DeclName() string { return d.Name }
func (d *VarDecl) IsComplete() bool { return d.Type.IsComplete() }
