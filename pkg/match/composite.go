package match

import (
	"github.com/Il-Capitano/bozon-sub003/internal/types"
)

// matchIf implements if/if-consteval matching (spec.md 4.3.4): a branch
// that is nil (this type model's stand-in for "noreturn", since the type
// model has no noreturn terminator of its own) does not participate.
func (m *Matcher) matchIf(e *types.IfExpr, dest *types.Type, mode Mode) result {
	var arms []types.Expr
	var writeBack func(i int, rewritten types.Expr)
	switch {
	case e.Then != nil && e.Else != nil:
		arms = []types.Expr{e.Then, e.Else}
		writeBack = func(i int, rewritten types.Expr) {
			if i == 0 {
				e.Then = rewritten
			} else {
				e.Else = rewritten
			}
		}
	case e.Then != nil:
		arms = []types.Expr{e.Then}
		writeBack = func(_ int, rewritten types.Expr) { e.Then = rewritten }
	case e.Else != nil:
		arms = []types.Expr{e.Else}
		writeBack = func(_ int, rewritten types.Expr) { e.Else = rewritten }
	}

	return m.matchArms(arms, dest, mode, writeBack)
}

// matchSwitch implements switch matching (spec.md 4.3.4): every arm body
// plus the default (if present) are treated as the composite's branch set.
func (m *Matcher) matchSwitch(e *types.SwitchExpr, dest *types.Type, mode Mode) result {
	arms := make([]types.Expr, 0, len(e.Arms)+1)
	for i := range e.Arms {
		arms = append(arms, e.Arms[i].Body)
	}
	hasDefault := e.Default != nil
	if hasDefault {
		arms = append(arms, e.Default.Body)
	}
	writeBack := func(i int, rewritten types.Expr) {
		if i < len(e.Arms) {
			e.Arms[i].Body = rewritten
		} else {
			e.Default.Body = rewritten
		}
	}

	return m.matchArms(arms, dest, mode, writeBack)
}

func (m *Matcher) matchArms(arms []types.Expr, dest *types.Type, mode Mode, writeBack func(int, types.Expr)) result {
	if len(arms) == 0 {
		return fail()
	}

	if HasAutoPlaceholder(dest) {
		return m.matchArmsDeduced(arms, mode, writeBack)
	}

	sub := make([]Score, len(arms))
	for i, a := range arms {
		r := m.match(a, dest, mode)
		if !r.ok {
			return fail()
		}
		sub[i] = r.score
		if mode.mutates() && writeBack != nil {
			writeBack(i, r.expr)
		}
	}

	return result{ok: true, score: compositeScore(sub), typ: dest}
}

// matchArmsDeduced implements the auto-destination branch of spec.md
// 4.3.4: every arm is probed with matched_type; if they all agree, that
// type wins. Otherwise each pair is probed with can_match to find the one
// arm whose type every other arm's value also matches; failing that, the
// arms are genuinely ambiguous.
func (m *Matcher) matchArmsDeduced(arms []types.Expr, mode Mode, writeBack func(int, types.Expr)) result {
	deduced := make([]*types.Type, len(arms))
	for i, a := range arms {
		t, ok := m.MatchedType(a, autoType())
		if !ok {
			return fail()
		}
		deduced[i] = t
	}

	allAgree := true
	for _, t := range deduced[1:] {
		if !t.Equal(deduced[0]) {
			allAgree = false

			break
		}
	}
	if allAgree {
		return m.finishDeducedArms(arms, deduced[0], mode, writeBack)
	}

	winner := -1
	for i, candidate := range deduced {
		acceptsAll := true
		for j, other := range arms {
			if j == i {
				continue
			}
			if !m.CanMatch(other, candidate) {
				acceptsAll = false

				break
			}
		}
		if acceptsAll {
			if winner != -1 {
				winner = -1

				break
			}
			winner = i
		}
	}
	if winner == -1 {
		return fail()
	}

	return m.finishDeducedArms(arms, deduced[winner], mode, writeBack)
}

func (m *Matcher) finishDeducedArms(arms []types.Expr, dest *types.Type, mode Mode, writeBack func(int, types.Expr)) result {
	sub := make([]Score, len(arms))
	for i, a := range arms {
		r := m.match(a, dest, mode)
		if !r.ok {
			return fail()
		}
		sub[i] = r.score
		if mode.mutates() && writeBack != nil {
			writeBack(i, r.expr)
		}
	}

	return result{ok: true, score: compositeScore(sub), typ: dest}
}

func autoType() *types.Type { return types.NewType(types.AutoType{}) }
