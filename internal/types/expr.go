package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

// SourcePos is a single point in source text.
type SourcePos struct {
	Line   int
	Column int
}

// SourceLoc is the begin/pivot/end triple every expression carries. Pivot
// is the token diagnostics should underline (an operator, a keyword); it
// need not equal Begin.
type SourceLoc struct {
	Begin SourcePos
	Pivot SourcePos
	End   SourcePos
}

// ValueCategory classifies what kind of storage an expression's result
// occupies.
type ValueCategory byte

const (
	ValueCategoryLvalue ValueCategory = iota
	ValueCategoryRvalue
	ValueCategoryRvalueReference
	ValueCategoryMovedLvalue
	ValueCategoryLiteral
)

func (c ValueCategory) String() string {
	names := [...]string{"lvalue", "rvalue", "rvalue_reference", "moved_lvalue", "literal"}
	if int(c) < len(names) {
		return names[c]
	}

	return fmt.Sprintf("ValueCategory(%d)", c)
}

// ConstevalState is the five-state machine every expression's constant
// fold progresses through. The evaluator advances it monotonically except
// that GuaranteedFailed may later become Succeeded under a stronger
// evaluation intensity (spec.md 3.3).
type ConstevalState byte

const (
	ConstevalNeverTried ConstevalState = iota
	ConstevalGuaranteedFailed
	ConstevalSucceeded
	ConstevalFailed
	ConstevalInProgress
)

func (s ConstevalState) String() string {
	names := [...]string{"never_tried", "guaranteed_failed", "succeeded", "failed", "in_progress"}
	if int(s) < len(names) {
		return names[s]
	}

	return fmt.Sprintf("ConstevalState(%d)", s)
}

// CanRegress reports whether s -> next is the state machine's one permitted
// backward move, guaranteed_failed -> succeeded, taken when a later,
// stronger evaluation intensity folds what a cheap guaranteed pass could
// not. It returns false for every other pair, forward moves included.
func (s ConstevalState) CanRegress(next ConstevalState) bool {
	return s == ConstevalGuaranteedFailed && next == ConstevalSucceeded
}

// ExprBase holds the bookkeeping every Expr node carries, mirroring
// spec.md 3.3: location, paren-level, type, value-category, consteval
// state, and (once folded) the constant value itself.
type ExprBase struct {
	Loc        SourceLoc
	ParenLevel int
	Type       *Type
	Category   ValueCategory
	State      ConstevalState
	Folded     value.Value
}

// Base lets every concrete Expr share the bookkeeping without repeating
// accessor boilerplate.
func (b *ExprBase) Base() *ExprBase { return b }

// SetState moves the consteval state machine forward, or performs the one
// legal backward transition (guaranteed_failed -> succeeded). Any other
// attempted regression is a logic error in the caller, not a recoverable
// condition, so it panics rather than silently clobbering state.
func (b *ExprBase) SetState(next ConstevalState) {
	if next < b.State && !b.State.CanRegress(next) {
		panic(fmt.Sprintf("types: illegal consteval state transition %s -> %s", b.State, next))
	}
	b.State = next
}

// IsConstant reports whether this expression has a folded value available.
func (b *ExprBase) IsConstant() bool { return b.State == ConstevalSucceeded }

// WarningSuppressed reports whether a warning with the given paren-level
// budget should be suppressed at this expression's current paren nesting.
// A budget of 2 means "suppressed once wrapped in 2 or more redundant
// parenthesis pairs" — the common case in spec.md 4.2.2's "at paren-level
// < 2" checks.
func (b *ExprBase) WarningSuppressed(budget int) bool { return b.ParenLevel >= budget }

// Expr is the interface every expression node implements. The matcher and
// evaluator both dispatch on the concrete type via a type switch, never a
// visitor: spec.md 9 calls for tagged sum types with exhaustive match in
// place of the source's visitor hierarchy.
type Expr interface {
	Base() *ExprBase
	String() string
}

// IntLiteralExpr is an integer literal (already folded at parse time; its
// consteval state is asserted Succeeded rather than computed).
type IntLiteralExpr struct {
	ExprBase
	Value int64
}

func (e *IntLiteralExpr) String() string { return strconv.FormatInt(e.Value, 10) }

// UintLiteralExpr is an unsigned integer literal.
type UintLiteralExpr struct {
	ExprBase
	Value uint64
}

func (e *UintLiteralExpr) String() string { return strconv.FormatUint(e.Value, 10) }

// FloatLiteralExpr is a floating-point literal.
type FloatLiteralExpr struct {
	ExprBase
	Value float64
}

func (e *FloatLiteralExpr) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

// BoolLiteralExpr is a boolean literal.
type BoolLiteralExpr struct {
	ExprBase
	Value bool
}

func (e *BoolLiteralExpr) String() string { return strconv.FormatBool(e.Value) }

// NullLiteralExpr is the null-pointer literal.
type NullLiteralExpr struct{ ExprBase }

func (e *NullLiteralExpr) String() string { return "null" }

// StringLiteralExpr is a string literal.
type StringLiteralExpr struct {
	ExprBase
	Value string
}

func (e *StringLiteralExpr) String() string { return strconv.Quote(e.Value) }

// CharLiteralExpr is a u8char literal.
type CharLiteralExpr struct {
	ExprBase
	Value rune
}

func (e *CharLiteralExpr) String() string { return strconv.QuoteRune(e.Value) }

// IdentExpr is a name reference, resolved to a declaration by the parser's
// collaborator (pkg/ctx); the type model only needs the display name here.
type IdentExpr struct {
	ExprBase
	Name string
	Decl Declaration
}

func (e *IdentExpr) String() string { return e.Name }

// BinaryOp is a binary operator token. Every built-in binary operator is
// also an intrinsic-function identity (spec.md 4.2.2); this tag is what
// the evaluator uses to look that identity up.
type BinaryOp string

// UnaryOp is a unary operator token, same convention as BinaryOp.
type UnaryOp string

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	ExprBase
	Op          BinaryOp
	Left, Right Expr
}

func (e *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", e.Op, e.Operand) }

// CallExpr is a function call, either to a resolved FuncDecl or through an
// arbitrary function-typed expression.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}

	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(parts, ", "))
}

// IfExpr is an if/then/else expression; IfConsteval marks `if consteval`,
// which requires Cond to fold and rejects the program otherwise.
type IfExpr struct {
	ExprBase
	IfConsteval bool
	Cond        Expr
	Then        Expr
	Else        Expr
}

func (e *IfExpr) String() string {
	kw := "if"
	if e.IfConsteval {
		kw = "if consteval"
	}

	return fmt.Sprintf("%s %s then %s else %s", kw, e.Cond, e.Then, e.Else)
}

// SwitchArm is one case of a switch expression; Values is empty for the
// default arm.
type SwitchArm struct {
	Values []Expr
	Body   Expr
}

// SwitchExpr is a switch/match expression over a scrutinee.
type SwitchExpr struct {
	ExprBase
	Scrutinee Expr
	Arms      []SwitchArm
	Default   *SwitchArm
}

func (e *SwitchExpr) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "switch %s { ", e.Scrutinee)
	for _, arm := range e.Arms {
		vals := make([]string, len(arm.Values))
		for i, v := range arm.Values {
			vals[i] = v.String()
		}
		fmt.Fprintf(&b, "%s -> %s; ", strings.Join(vals, ", "), arm.Body)
	}
	if e.Default != nil {
		fmt.Fprintf(&b, "else -> %s; ", e.Default.Body)
	}
	b.WriteByte('}')

	return b.String()
}

// TupleExpr is a tuple literal `[e1, e2, ...]`.
type TupleExpr struct {
	ExprBase
	Elems []Expr
}

func (e *TupleExpr) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// MemberExpr is field access into an aggregate, `e.field`.
type MemberExpr struct {
	ExprBase
	Base_ Expr
	Field string
}

func (e *MemberExpr) String() string { return fmt.Sprintf("%s.%s", e.Base_, e.Field) }

// SubscriptExpr is indexing into an array/slice/tuple, `e[index]`.
type SubscriptExpr struct {
	ExprBase
	Array Expr
	Index Expr
}

func (e *SubscriptExpr) String() string { return fmt.Sprintf("%s[%s]", e.Array, e.Index) }

// CastExpr is an explicit or compiler-inserted cast, `(T)e`. Inserted is
// true for casts the matcher synthesised during match_expression (copy
// construction, optional promotion, array-to-slice decay) rather than ones
// the user wrote.
type CastExpr struct {
	ExprBase
	Operand   Expr
	Dest      *Type
	Inserted  bool
	Kind      string // "copy", "move", "optional", "array_slice", "numeric", ...
}

func (e *CastExpr) String() string { return fmt.Sprintf("(%s)(%s)", e.Dest, e.Operand) }

// Stmt is a statement inside a compound expression's preceding-statement
// list. It is intentionally minimal: the core only needs to know whether a
// compound is a pure final-expression (spec.md 4.2.2); full statement
// semantics belong to the interpreter, not to the matcher/evaluator core.
type Stmt interface {
	String() string
}

// ExprStmt wraps a bare expression statement.
type ExprStmt struct{ Expr Expr }

func (s ExprStmt) String() string { return s.Expr.String() + ";" }

// CompoundExpr is a braced block; it folds under the consteval machine iff
// it has no preceding statements and a non-nil Final (spec.md 4.2.2),
// otherwise it delegates to the interpreter.
type CompoundExpr struct {
	ExprBase
	Stmts []Stmt
	Final Expr // nil if the block ends without a trailing expression (void)
}

// IsPureFinalExpression reports whether this compound is exactly one
// trailing expression with nothing before it — the only shape the
// evaluator folds directly rather than delegating to the interpreter.
func (e *CompoundExpr) IsPureFinalExpression() bool {
	return len(e.Stmts) == 0 && e.Final != nil
}

func (e *CompoundExpr) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, s := range e.Stmts {
		b.WriteString(s.String())
		b.WriteByte(' ')
	}
	if e.Final != nil {
		b.WriteString(e.Final.String())
		b.WriteByte(' ')
	}
	b.WriteByte('}')

	return b.String()
}

// StructInitExpr is an aggregate/struct initializer, one expression per
// field in declaration order.
type StructInitExpr struct {
	ExprBase
	Decl   *StructDecl
	Fields []Expr
}

func (e *StructInitExpr) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}

	return fmt.Sprintf("%s{ %s }", e.Decl.Name, strings.Join(parts, ", "))
}

// ArrayExpr is an array literal `[e1, e2, ...]` destined for an array (not
// tuple) type; distinguished from TupleExpr once the matcher has
// determined the destination shape and rewritten the node.
type ArrayExpr struct {
	ExprBase
	Elems []Expr
}

func (e *ArrayExpr) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// TypenameExpr is a compile-time type used as a value, the expression-side
// counterpart of a typename destination in the type-strict match path.
type TypenameExpr struct {
	ExprBase
	Referenced *Type
}

func (e *TypenameExpr) String() string { return e.Referenced.String() }
