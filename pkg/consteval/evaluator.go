package consteval

import (
	"fmt"

	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
	"github.com/Il-Capitano/bozon-sub003/pkg/ctx"
)

// Intensity selects one of the three evaluation strengths spec.md 4.2.1
// defines, forming a total order from cheapest to most permissive.
type Intensity byte

const (
	// Guaranteed never invokes a user-defined function and never recurses
	// into an expression that has not already been folded. Safe to run
	// opportunistically during parsing.
	Guaranteed Intensity = iota
	// ForceWithError drives the full interpreter and reports a diagnostic
	// through the context on failure.
	ForceWithError
	// ForceWithoutError is ForceWithError without the failure error, for
	// speculative evaluation inside overload resolution. Warnings raised
	// while folding are still reported at this intensity.
	ForceWithoutError
)

func (i Intensity) String() string {
	switch i {
	case Guaranteed:
		return "guaranteed"
	case ForceWithError:
		return "force_with_error"
	case ForceWithoutError:
		return "force_without_error"
	default:
		return fmt.Sprintf("Intensity(%d)", i)
	}
}

func (i Intensity) reportsErrors() bool { return i == ForceWithError }
func (i Intensity) forced() bool        { return i != Guaranteed }

// Evaluator is the bottom-up constant-expression folder. One Evaluator is
// constructed per translation unit, over the same Context the matcher and
// interpreter share.
type Evaluator struct {
	Context *ctx.Context

	intrinsics map[string]intrinsicRule
	// frames is the call-stack of parameter substitutions active while
	// interpreting a consteval function body; foldIdent consults it before
	// falling back to a VarDecl's own initializer.
	frames []map[types.Declaration]value.Value
}

// New builds an Evaluator over c. The caller is responsible for assigning
// the result into c.Evaluator once construction completes (see
// pkg/ctx/doc.go for why this can't happen inside New itself).
func New(c *ctx.Context) *Evaluator {
	ev := &Evaluator{Context: c}
	ev.registerIntrinsics()

	return ev
}

// Fold advances e's consteval state at the given intensity, returning
// whether it now holds a constant value. It is idempotent: a node already
// Succeeded or Failed returns immediately without recomputing.
func (ev *Evaluator) Fold(e types.Expr, intensity Intensity) bool {
	b := e.Base()

	switch b.State {
	case types.ConstevalSucceeded:
		return true
	case types.ConstevalFailed:
		return false
	case types.ConstevalInProgress:
		// A node being folded from within its own fold is a cycle in the
		// expression graph, which the parser should never produce; treat
		// it as a hard failure rather than recursing forever.
		return false
	}

	b.SetState(types.ConstevalInProgress)
	val, ok := ev.foldDispatch(e, intensity)
	if ok {
		b.Folded = val
		b.State = types.ConstevalSucceeded

		return true
	}

	if !intensity.forced() {
		b.State = types.ConstevalGuaranteedFailed

		return false
	}

	if intensity.reportsErrors() {
		ev.reportFoldFailure(e)
	}
	b.State = types.ConstevalFailed

	return false
}

// foldDispatch performs the one-shot fold attempt for e's concrete shape,
// recursing into operands at the same intensity. It never itself sets e's
// state; Fold does that.
func (ev *Evaluator) foldDispatch(e types.Expr, intensity Intensity) (value.Value, bool) {
	switch e := e.(type) {
	case *types.IntLiteralExpr:
		return value.Sint(e.Value), true
	case *types.UintLiteralExpr:
		return value.Uint(e.Value), true
	case *types.FloatLiteralExpr:
		return floatLiteralValue(e), true
	case *types.BoolLiteralExpr:
		return value.Bool(e.Value), true
	case *types.NullLiteralExpr:
		return value.Null{}, true
	case *types.StringLiteralExpr:
		return value.String(e.Value), true
	case *types.CharLiteralExpr:
		return value.Char(e.Value), true
	case *types.TypenameExpr:
		return value.Type{View: e.Referenced}, true

	case *types.IdentExpr:
		return ev.foldIdent(e, intensity)
	case *types.BinaryExpr:
		return ev.foldBinary(e, intensity)
	case *types.UnaryExpr:
		return ev.foldUnary(e, intensity)
	case *types.CallExpr:
		return ev.foldCall(e, intensity)
	case *types.IfExpr:
		return ev.foldIf(e, intensity)
	case *types.SwitchExpr:
		return ev.foldSwitch(e, intensity)
	case *types.TupleExpr:
		return ev.foldElems(e.Elems, intensity, func(vs []value.Value) value.Value { return value.Tuple{Elems: vs} })
	case *types.ArrayExpr:
		return ev.foldElems(e.Elems, intensity, func(vs []value.Value) value.Value { return value.Array{Elems: vs} })
	case *types.StructInitExpr:
		return ev.foldElems(e.Fields, intensity, func(vs []value.Value) value.Value { return value.Aggregate{Elems: vs} })
	case *types.MemberExpr:
		return ev.foldMember(e, intensity)
	case *types.SubscriptExpr:
		return ev.foldSubscript(e, intensity)
	case *types.CastExpr:
		return ev.foldCast(e, intensity)
	case *types.CompoundExpr:
		return ev.foldCompound(e, intensity)
	default:
		return nil, false
	}
}

// floatLiteralValue picks the Float32/Float64 variant from the literal
// expression's matched type; defaults to Float64 when the type is not yet
// known (e.g. during a guaranteed pass before the matcher has run).
func floatLiteralValue(e *types.FloatLiteralExpr) value.Value {
	if isF32Type(e.Type) {
		return value.Float32(e.Value)
	}

	return value.Float64(e.Value)
}

func isF32Type(t *types.Type) bool {
	if t == nil || len(t.Mods) != 0 {
		return false
	}
	bt, ok := t.Term.(types.BaseType)
	if !ok {
		return false
	}
	prim, ok := bt.Decl.(*types.PrimitiveDecl)

	return ok && prim.Float && prim.Name == "f32"
}

// foldIdent implements the "identifiers fold only if the declaration is a
// consteval variable with a resolved initialiser" rule, plus parameter
// substitution while interpreting a call (frames).
func (ev *Evaluator) foldIdent(e *types.IdentExpr, intensity Intensity) (value.Value, bool) {
	for i := len(ev.frames) - 1; i >= 0; i-- {
		if v, ok := ev.frames[i][e.Decl]; ok {
			return v, true
		}
	}

	v, ok := e.Decl.(*types.VarDecl)
	if !ok || !v.Consteval || v.Initializer == nil {
		return nil, false
	}
	if !ev.Fold(v.Initializer, intensity) {
		return nil, false
	}

	return v.Initializer.Base().Folded, true
}

func (ev *Evaluator) foldElems(elems []types.Expr, intensity Intensity, build func([]value.Value) value.Value) (value.Value, bool) {
	vals := make([]value.Value, len(elems))
	for i, el := range elems {
		if !ev.Fold(el, intensity) {
			return nil, false
		}
		vals[i] = el.Base().Folded
	}

	return build(vals), true
}

func (ev *Evaluator) foldMember(e *types.MemberExpr, intensity Intensity) (value.Value, bool) {
	if !ev.Fold(e.Base_, intensity) {
		return nil, false
	}
	agg, ok := e.Base_.Base().Folded.(value.Aggregate)
	if !ok {
		return nil, false
	}
	bt, ok := e.Base_.Base().Type.RemoveAnyMut().Term.(types.BaseType)
	if !ok {
		return nil, false
	}
	decl, ok := bt.Decl.(*types.StructDecl)
	if !ok {
		return nil, false
	}
	for i, f := range decl.Fields {
		if f.Name == e.Field && i < len(agg.Elems) {
			return agg.Elems[i], true
		}
	}

	return nil, false
}

func (ev *Evaluator) foldCompound(e *types.CompoundExpr, intensity Intensity) (value.Value, bool) {
	if !e.IsPureFinalExpression() {
		return nil, false
	}
	if !ev.Fold(e.Final, intensity) {
		return nil, false
	}

	return e.Final.Base().Folded, true
}

// ExecuteFunction implements ctx.Evaluator, interpreting decl's body with
// args bound to its parameters. Only consteval-declared functions whose
// body is a pure final-expression are interpretable; anything else fails.
func (ev *Evaluator) ExecuteFunction(decl *types.FuncDecl, args []value.Value, reportErrors bool) (value.Value, bool) {
	if decl.IsIntrinsic() {
		return ev.callIntrinsic(decl.Intrinsic, args, ForceWithError)
	}
	if !decl.Consteval {
		return nil, false
	}

	if decl.Body == nil || !decl.Body.IsPureFinalExpression() {
		return nil, false
	}

	loc := types.SourceLoc{}
	if !ev.Context.PushResolve(decl, loc) {
		return nil, false
	}
	defer ev.Context.PopResolve()

	frame := make(map[types.Declaration]value.Value, len(decl.Parameters))
	for i := range decl.Parameters {
		if i < len(args) {
			frame[&decl.Parameters[i]] = args[i]
		}
	}
	ev.frames = append(ev.frames, frame)
	defer func() { ev.frames = ev.frames[:len(ev.frames)-1] }()

	intensity := ForceWithoutError
	if reportErrors {
		intensity = ForceWithError
	}
	if !ev.Fold(decl.Body.Final, intensity) {
		return nil, false
	}

	return decl.Body.Final.Base().Folded, true
}

// ExecuteCompoundExpression implements ctx.Evaluator for a non-pure-final
// compound (one with preceding statements). This implementation does not
// interpret statement sequences, so it always fails; the grounding for this
// scope decision is recorded in DESIGN.md.
func (ev *Evaluator) ExecuteCompoundExpression(e *types.CompoundExpr, reportErrors bool) (value.Value, bool) {
	if e.IsPureFinalExpression() {
		intensity := ForceWithoutError
		if reportErrors {
			intensity = ForceWithError
		}
		if ev.Fold(e.Final, intensity) {
			return e.Final.Base().Folded, true
		}
	}

	return nil, false
}

// reportFoldFailure performs the on-demand failure-note walk of spec.md
// 4.2.5, then reports the outer diagnostic.
func (ev *Evaluator) reportFoldFailure(e types.Expr) {
	notes := ev.collectFailureNotes(e, nil)
	ev.Context.ReportError(e.Base().Loc, fmt.Sprintf("expression %q is not a constant expression", e), notes...)
}

func (ev *Evaluator) collectFailureNotes(e types.Expr, notes []diag.Note) []diag.Note {
	if e.Base().State == types.ConstevalSucceeded {
		return notes
	}
	switch e := e.(type) {
	case *types.BinaryExpr:
		notes = ev.collectFailureNotes(e.Left, notes)
		notes = ev.collectFailureNotes(e.Right, notes)

		return notes
	case *types.UnaryExpr:
		return ev.collectFailureNotes(e.Operand, notes)
	case *types.CastExpr:
		return ev.collectFailureNotes(e.Operand, notes)
	case *types.IdentExpr:
		notes = append(notes, ev.Context.MakeNote(e.Base().Loc, fmt.Sprintf("subexpression %q is not a constant expression", e)))
		if v, ok := e.Decl.(*types.VarDecl); ok {
			notes = append(notes, ev.Context.MakeNote(e.Base().Loc, fmt.Sprintf("%q declared here", v.Name)))
		}

		return notes
	default:
		return append(notes, ev.Context.MakeNote(e.Base().Loc, fmt.Sprintf("subexpression %q is not a constant expression", e)))
	}
}
