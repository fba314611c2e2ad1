package ctx

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Il-Capitano/bozon-sub003/internal/config"
	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

// Evaluator is the narrow slice of pkg/consteval's Evaluator that Context
// needs to dispatch function execution and non-pure compound-expression
// evaluation. Defined here (rather than imported) to avoid a pkg/ctx <->
// pkg/consteval import cycle.
type Evaluator interface {
	ExecuteFunction(decl *types.FuncDecl, args []value.Value, reportErrors bool) (value.Value, bool)
	ExecuteCompoundExpression(e *types.CompoundExpr, reportErrors bool) (value.Value, bool)
}

// queueEntry is one pending resolution: the declaration being resolved and
// the call site that triggered it, for the cycle diagnostic.
type queueEntry struct {
	decl     types.Declaration
	callSite types.SourceLoc
}

// Context is the parse-context collaborator. One Context exists per
// translation unit; it is not safe for concurrent use without external
// synchronisation (spec.md §5 — the core itself is single-threaded).
type Context struct {
	// ID tags this translation unit for log correlation and for the
	// resolve queue's cycle-report note; it has no semantic meaning to the
	// core itself.
	ID        uuid.UUID
	Sink      diag.Sink
	Config    *config.Config
	Evaluator Evaluator

	queue        []queueEntry
	instantiable map[types.Declaration]bool
}

// New builds a Context over sink and cfg, stamped with a fresh ID.
// Evaluator is left nil; the caller wires it in once the
// consteval.Evaluator exists.
func New(sink diag.Sink, cfg *config.Config) *Context {
	return &Context{
		ID:           uuid.New(),
		Sink:         sink,
		Config:       cfg,
		instantiable: make(map[types.Declaration]bool),
	}
}

// ReportError implements the parse-context's report_error.
func (c *Context) ReportError(loc types.SourceLoc, message string, notes ...diag.Note) {
	c.Sink.ReportError(loc, message, notes...)
}

// ReportWarning implements report_warning.
func (c *Context) ReportWarning(kind diag.WarningKind, loc types.SourceLoc, message string, notes ...diag.Note) {
	c.Sink.ReportWarning(kind, loc, message, notes...)
}

// ReportParenSuppressedWarning implements
// report_parenthesis_suppressed_warning.
func (c *Context) ReportParenSuppressedWarning(e *types.ExprBase, kind diag.WarningKind, message string, notes ...diag.Note) bool {
	return c.Sink.ReportParenSuppressedWarning(e.ParenLevel, kind, e.Loc, message, notes...)
}

// MakeNote implements make_note.
func (c *Context) MakeNote(loc types.SourceLoc, message string) diag.Note {
	return c.Sink.MakeNote(loc, message)
}

// IsAggressiveConstevalEnabled implements the query of the same name.
func (c *Context) IsAggressiveConstevalEnabled() bool {
	return c.Config.IsAggressiveConstevalEnabled()
}

// IsInstantiable implements is_instantiable. Declarations are instantiable
// by default; MarkNotInstantiable records an exception (e.g. a generic
// parent declaration that hasn't been monomorphised yet).
func (c *Context) IsInstantiable(decl types.Declaration) bool {
	if instantiable, ok := c.instantiable[decl]; ok {
		return instantiable
	}

	return true
}

// MarkNotInstantiable records that decl cannot be instantiated as-is.
func (c *Context) MarkNotInstantiable(decl types.Declaration) {
	c.instantiable[decl] = false
}

// PushResolve implements add_to_resolve_queue. It reports a cycle error
// and returns false if decl is already on the queue; cycles are detected
// by membership check, exactly as spec.md §5 specifies, rather than by any
// deeper graph analysis.
func (c *Context) PushResolve(decl types.Declaration, callSite types.SourceLoc) bool {
	for _, entry := range c.queue {
		if entry.decl == decl {
			c.ReportError(callSite, fmt.Sprintf("resolution cycle detected involving %q (unit %s)", decl.DeclName(), c.ID),
				c.MakeNote(entry.callSite, fmt.Sprintf("cycle started resolving %q here", decl.DeclName())))

			return false
		}
	}
	c.queue = append(c.queue, queueEntry{decl: decl, callSite: callSite})

	return true
}

// PopResolve implements pop_resolve_queue. It panics if the queue is
// empty, since every PopResolve must be paired with a prior successful
// PushResolve — an unbalanced call is a logic error in the caller, not a
// recoverable condition.
func (c *Context) PopResolve() {
	if len(c.queue) == 0 {
		panic("ctx: PopResolve called with an empty resolve queue")
	}
	c.queue = c.queue[:len(c.queue)-1]
}

// ExecuteFunction implements execute_function: drives the full
// interpreter, reporting diagnostics through Sink on failure.
func (c *Context) ExecuteFunction(decl *types.FuncDecl, args []value.Value) (value.Value, bool) {
	if c.Evaluator == nil {
		return nil, false
	}

	return c.Evaluator.ExecuteFunction(decl, args, true)
}

// ExecuteFunctionWithoutError implements execute_function_without_error:
// the same interpreter dispatch, but failures are silent. Used for
// speculative evaluation inside overload resolution.
func (c *Context) ExecuteFunctionWithoutError(decl *types.FuncDecl, args []value.Value) (value.Value, bool) {
	if c.Evaluator == nil {
		return nil, false
	}

	return c.Evaluator.ExecuteFunction(decl, args, false)
}

// ExecuteCompoundExpression implements execute_compound_expression for a
// compound that is not a pure final-expression (one with preceding
// statements), delegating to the interpreter.
func (c *Context) ExecuteCompoundExpression(e *types.CompoundExpr, reportErrors bool) (value.Value, bool) {
	if c.Evaluator == nil {
		return nil, false
	}

	return c.Evaluator.ExecuteCompoundExpression(e, reportErrors)
}

// MakeCastExpression implements make_cast_expression, wrapping operand in
// a compiler-inserted cast to dest.
func (c *Context) MakeCastExpression(operand types.Expr, dest *types.Type, kind string) *types.CastExpr {
	return &types.CastExpr{
		ExprBase: types.ExprBase{
			Loc:      operand.Base().Loc,
			Type:     dest,
			Category: types.ValueCategoryRvalue,
			State:    types.ConstevalNeverTried,
		},
		Operand:  operand,
		Dest:     dest,
		Inserted: true,
		Kind:     kind,
	}
}

// MakeOptionalCastExpression implements make_optional_cast_expression: the
// base-case match's optional-promotion rewrite (spec.md §4.3.7).
func (c *Context) MakeOptionalCastExpression(operand types.Expr, dest *types.Type) *types.CastExpr {
	return c.MakeCastExpression(operand, dest, "optional")
}

// MakeCopyConstruction implements make_copy_construction: wraps an lvalue
// operand destined for a non-reference parameter in a copy node.
func (c *Context) MakeCopyConstruction(operand types.Expr) *types.CastExpr {
	return c.MakeCastExpression(operand, operand.Base().Type, "copy")
}

// MakeMoveConstruction implements make_move_construction: wraps an
// rvalue/moved-lvalue operand destined for a move-reference parameter in a
// take-move-reference node.
func (c *Context) MakeMoveConstruction(operand types.Expr) *types.CastExpr {
	dest := types.NewType(operand.Base().Type.Term, append([]types.Modifier{{Kind: types.ModMoveReference}}, operand.Base().Type.Mods...)...)

	return c.MakeCastExpression(operand, dest, "move")
}
