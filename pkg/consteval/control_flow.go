package consteval

import (
	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
)

// foldIf implements the if/if-consteval folding rule: fold the condition,
// then fold only the selected branch. if-consteval's condition is always
// forced, since the language rejects the program outright when it isn't
// constant — that check belongs to the matcher/parser, not here; this
// layer simply fails the fold if asked to evaluate a non-constant
// if-consteval condition at Guaranteed intensity.
func (ev *Evaluator) foldIf(e *types.IfExpr, intensity Intensity) (value.Value, bool) {
	condIntensity := intensity
	if e.IfConsteval && !intensity.forced() {
		condIntensity = ForceWithoutError
	}
	if !ev.Fold(e.Cond, condIntensity) {
		return nil, false
	}
	cond, ok := e.Cond.Base().Folded.(value.Bool)
	if !ok {
		return nil, false
	}

	branch := e.Else
	if bool(cond) {
		branch = e.Then
	}
	if branch == nil {
		return value.Void{}, true
	}
	if !ev.Fold(branch, intensity) {
		return nil, false
	}

	return branch.Base().Folded, true
}

// foldSwitch folds the scrutinee, then the single matching arm (or the
// default), per spec.md 4.2.2.
func (ev *Evaluator) foldSwitch(e *types.SwitchExpr, intensity Intensity) (value.Value, bool) {
	if !ev.Fold(e.Scrutinee, intensity) {
		return nil, false
	}
	scrutinee := e.Scrutinee.Base().Folded

	for _, arm := range e.Arms {
		for _, v := range arm.Values {
			if !ev.Fold(v, intensity) {
				return nil, false
			}
			if scrutinee.Equal(v.Base().Folded) {
				if !ev.Fold(arm.Body, intensity) {
					return nil, false
				}

				return arm.Body.Base().Folded, true
			}
		}
	}
	if e.Default != nil {
		if !ev.Fold(e.Default.Body, intensity) {
			return nil, false
		}

		return e.Default.Body.Base().Folded, true
	}

	return nil, false
}

// foldSubscript implements the subscript folding rule: the base must fold
// to a constant aggregate-like value and the index to a constant,
// non-negative, in-bounds integer.
func (ev *Evaluator) foldSubscript(e *types.SubscriptExpr, intensity Intensity) (value.Value, bool) {
	if !ev.Fold(e.Array, intensity) || !ev.Fold(e.Index, intensity) {
		return nil, false
	}

	elems, ok := elemsOf(e.Array.Base().Folded)
	if !ok {
		return nil, false
	}

	idx, inBounds := indexOf(e.Index.Base().Folded, len(elems))
	if !inBounds {
		ev.Context.ReportParenSuppressedWarning(e.Base(), diag.WarnOutOfBoundsIndex,
			"index is out of bounds for this constant aggregate")

		return nil, false
	}

	return elems[idx], true
}

func elemsOf(v value.Value) ([]value.Value, bool) {
	switch v := v.(type) {
	case value.Array:
		return v.Elems, true
	case value.Tuple:
		return v.Elems, true
	case value.Aggregate:
		return v.Elems, true
	default:
		return nil, false
	}
}

// indexOf extracts a non-negative in-bounds index from a folded integer
// value.
func indexOf(v value.Value, length int) (int, bool) {
	switch v := v.(type) {
	case value.Sint:
		if v < 0 || int64(v) >= int64(length) {
			return 0, false
		}

		return int(v), true
	case value.Uint:
		if uint64(v) >= uint64(length) {
			return 0, false
		}

		return int(v), true
	default:
		return 0, false
	}
}

// foldCall folds a call to a resolved intrinsic or consteval function.
// Calls through an arbitrary function-typed expression (not a direct
// identifier to a FuncDecl) never fold: the language grammar only demands
// constants at sites where the callee is statically known.
func (ev *Evaluator) foldCall(e *types.CallExpr, intensity Intensity) (value.Value, bool) {
	ident, ok := e.Callee.(*types.IdentExpr)
	if !ok {
		return nil, false
	}
	decl, ok := ident.Decl.(*types.FuncDecl)
	if !ok {
		return nil, false
	}

	if decl.IsIntrinsic() {
		if rule, ok := ev.intrinsics[decl.Intrinsic]; ok && rule.arity >= 0 && rule.arity != len(e.Args) {
			return nil, false
		}
		args, ok := ev.foldArgs(e.Args, intensity, decl.Intrinsic)
		if !ok {
			return nil, false
		}

		return ev.callIntrinsic(decl.Intrinsic, args, intensity)
	}

	if !decl.Consteval || !intensity.forced() {
		return nil, false
	}
	args, ok := ev.foldArgs(e.Args, intensity, decl.Name)
	if !ok {
		return nil, false
	}

	return ev.ExecuteFunction(decl, args, intensity.reportsErrors())
}

func (ev *Evaluator) foldArgs(args []types.Expr, intensity Intensity, _ string) ([]value.Value, bool) {
	vals := make([]value.Value, len(args))
	for i, a := range args {
		if !ev.Fold(a, intensity) {
			return nil, false
		}
		vals[i] = a.Base().Folded
	}

	return vals, true
}
