package match

import (
	"fmt"

	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/ctx"
)

// Mode selects the matcher's return type and side-effect profile. All four
// modes share one decision tree (spec.md 4.3.1); only the leaf actions and
// error handling differ.
type Mode byte

const (
	// CanMatch: boolean, no side effects.
	CanMatch Mode = iota
	// MatchLevelMode: a structured score, or failure.
	MatchLevelMode
	// MatchedTypeMode: the deduced destination type, or failure.
	MatchedTypeMode
	// MatchExpressionMode: boolean success; mutates the expression tree by
	// inserting optional, array_slice, numeric and move casts. No
	// copy-construction node is inserted, and the destination type is not
	// modified: types deduced for auto leaves, array sizes and variadic
	// tails are not written back into it.
	MatchExpressionMode
)

func (m Mode) reportsErrors() bool  { return m == MatchExpressionMode }
func (m Mode) mutates() bool        { return m == MatchExpressionMode }
func (m Mode) wantsType() bool      { return m == MatchedTypeMode || m == MatchExpressionMode }
func (m Mode) wantsScore() bool     { return m == MatchLevelMode || m == MatchExpressionMode }

// result is the matcher's internal leaf/traversal outcome; the public
// per-mode entry points project out of it.
type result struct {
	ok    bool
	score Score
	typ   *types.Type
	expr  types.Expr
}

func fail() result { return result{} }

// Matcher is the single type-directed matching algorithm, built over the
// same Context the evaluator shares (for diagnostics, the resolve queue,
// and execute_function during consteval-dependent matches like `if
// consteval` branch selection).
type Matcher struct {
	Context *ctx.Context
}

// New builds a Matcher over c.
func New(c *ctx.Context) *Matcher {
	return &Matcher{Context: c}
}

// CanMatch reports whether e can match dest, with no side effects and no
// diagnostics.
func (m *Matcher) CanMatch(e types.Expr, dest *types.Type) bool {
	return m.match(e, dest, CanMatch).ok
}

// MatchLevel computes e's match score against dest, or ok=false if it does
// not match at all.
func (m *Matcher) MatchLevel(e types.Expr, dest *types.Type) (Score, bool) {
	r := m.match(e, dest, MatchLevelMode)

	return r.score, r.ok
}

// MatchedType deduces the concrete type e would bind to against dest
// (meaningful when dest contains auto/typename placeholders).
func (m *Matcher) MatchedType(e types.Expr, dest *types.Type) (*types.Type, bool) {
	r := m.match(e, dest, MatchedTypeMode)

	return r.typ, r.ok
}

// MatchExpression performs the real match: on success it returns the
// (possibly rewritten) expression the caller should substitute in e's
// place, with every implicit conversion made explicit in the tree. On
// failure it reports exactly one error plus up to two notes (spec.md
// 4.3.8) and returns e unchanged.
func (m *Matcher) MatchExpression(e types.Expr, dest *types.Type) (types.Expr, bool) {
	r := m.match(e, dest, MatchExpressionMode)
	if !r.ok {
		m.reportMatchFailure(e, dest)

		return e, false
	}

	return r.expr, true
}

// match is the shared decision tree (spec.md 4.3.2): dispatch on the
// expression's shape first (compound/if/switch/tuple/typename each take a
// dedicated path), then fall through to the destination-shape split
// (reference binding vs. the value-expression base case) for everything
// else.
func (m *Matcher) match(e types.Expr, dest *types.Type, mode Mode) result {
	switch e := e.(type) {
	case *types.CompoundExpr:
		if !e.IsPureFinalExpression() {
			return fail()
		}

		return m.match(e.Final, dest, mode)

	case *types.IfExpr:
		return m.matchIf(e, dest, mode)

	case *types.SwitchExpr:
		return m.matchSwitch(e, dest, mode)

	case *types.TupleExpr:
		return m.matchTuple(e, dest, mode)

	case *types.TypenameExpr:
		return m.matchTypeStrict(e, dest, mode)
	}

	stripped := dest.StripMut()
	if stripped.IsReference() {
		return m.matchReference(e, dest, mode)
	}

	return m.matchBaseCase(e, dest, mode)
}

func (m *Matcher) reportMatchFailure(e types.Expr, dest *types.Type) {
	var srcDesc string
	if t := e.Base().Type; t != nil {
		srcDesc = t.String()
	} else {
		srcDesc = "<unresolved>"
	}
	m.Context.ReportError(e.Base().Loc, fmt.Sprintf(
		"unable to match expression of type %q to destination type %q", srcDesc, dest))
}

func (m *Matcher) note(loc types.SourceLoc, format string, args ...any) diag.Note {
	return m.Context.MakeNote(loc, fmt.Sprintf(format, args...))
}
