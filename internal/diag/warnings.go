package diag

import "fmt"

// WarningKind identifies one member of the closed, bit-exact-named warning
// set from spec.md §6. The numeric order has no external meaning (unlike
// value.Kind's symbol-name tag order); it only has to stay stable within a
// single build.
type WarningKind int

const (
	WarnIntOverflow WarningKind = iota
	WarnIntDivideByZero
	WarnFloatOverflow
	WarnFloatDivideByZero
	WarnFloatNanMath
	WarnUnknownAttribute
	WarnNullPointerDereference
	WarnUnusedValue
	WarnUnclosedComment
	WarnMismatchedBraceIndent
	WarnUnusedVariable
	WarnGreekQuestionMark
	WarnBadFileExtension
	WarnUnknownTarget
	WarnInvalidUnicode
	WarnNanCompare
	WarnOutOfBoundsIndex
	WarnMathDomainError
	WarnBinaryStdout
	WarnIsComptimeAlwaysTrue
	WarnNonExhaustiveSwitch
	WarnUnneededElse
	WarnAssignInCondition
	WarnGetValueNull
	WarnEnumValueOverflow
	WarnSizeofReferenceExpression
	WarnComptimeWarning

	warningCount = int(WarnComptimeWarning) + 1
)

var warningNames = [warningCount]string{
	"int-overflow", "int-divide-by-zero", "float-overflow", "float-divide-by-zero",
	"float-nan-math", "unknown-attribute", "null-pointer-dereference", "unused-value",
	"unclosed-comment", "mismatched-brace-indent", "unused-variable", "greek-question-mark",
	"bad-file-extension", "unknown-target", "invalid-unicode", "nan-compare",
	"out-of-bounds-index", "math-domain-error", "binary-stdout", "is-comptime-always-true",
	"non-exhaustive-switch", "unneeded-else", "assign-in-condition", "get-value-null",
	"enum-value-overflow", "sizeof-reference-expression", "comptime-warning",
}

func (k WarningKind) String() string {
	if int(k) < len(warningNames) {
		return warningNames[k]
	}

	return fmt.Sprintf("WarningKind(%d)", k)
}

// LookupWarningKind resolves a bit-exact CLI name (e.g. "int-overflow") to
// its WarningKind, as used by -W<name>/-Wno-<name>/-Werror=<name>.
func LookupWarningKind(name string) (WarningKind, bool) {
	for i, n := range warningNames {
		if n == name {
			return WarningKind(i), true
		}
	}

	return 0, false
}

// AllWarningKinds returns every member of the closed warning set, in
// registry order — used to build the default-enabled set and to list all
// known names for a `--help`-style surface.
func AllWarningKinds() []WarningKind {
	out := make([]WarningKind, warningCount)
	for i := range out {
		out[i] = WarningKind(i)
	}

	return out
}

// parenBudget is the paren-level suppression budget for the warnings the
// evaluator explicitly gates on "paren-level < 2" (spec.md §4.2.2,
// §4.2.3, §4.2.4): wrapping the offending expression in this many (or
// more) redundant parenthesis pairs suppresses the warning. Kinds absent
// from this table are not paren-suppressible at all (lexer/parser/CLI
// scoped warnings have no expression to parenthesize). The math and
// funnel-shift intrinsics report WarnMathDomainError and WarnIntOverflow
// through ReportWarning with no paren level, so parentheses around such a
// call do not suppress those warnings.
var parenBudget = map[WarningKind]int{
	WarnIntOverflow:       2,
	WarnIntDivideByZero:   2,
	WarnFloatOverflow:     2,
	WarnFloatDivideByZero: 2,
	WarnFloatNanMath:      2,
	WarnOutOfBoundsIndex:  2,
	WarnMathDomainError:   2,
	WarnInvalidUnicode:    2,
}

// ParenBudget reports the paren-level suppression budget for kind and
// whether kind is paren-suppressible at all.
func ParenBudget(kind WarningKind) (budget int, suppressible bool) {
	budget, suppressible = parenBudget[kind]

	return budget, suppressible
}

// WarningSet is the CLI's -W<name>/-Wno-<name>/-Werror=<name> surface
// reified as a value, replacing the source's process-wide warning bitset
// (spec.md §9). It is threaded through the parse-context and consulted by
// Sink implementations; it holds no logic of its own beyond membership
// tests.
type WarningSet struct {
	enabled  [warningCount]bool
	asErrors [warningCount]bool
}

// DefaultWarningSet enables every warning and escalates none to errors,
// matching a compiler's out-of-the-box behaviour before any -W/-Werror
// flag is parsed.
func DefaultWarningSet() *WarningSet {
	ws := &WarningSet{}
	for i := range ws.enabled {
		ws.enabled[i] = true
	}

	return ws
}

// Enable turns kind on (-W<name>).
func (ws *WarningSet) Enable(kind WarningKind) { ws.enabled[kind] = true }

// Disable turns kind off (-Wno-<name>).
func (ws *WarningSet) Disable(kind WarningKind) { ws.enabled[kind] = false }

// SetError marks kind to be reported as a hard error (-Werror=<name>). A
// warning promoted to an error is implicitly enabled.
func (ws *WarningSet) SetError(kind WarningKind) {
	ws.enabled[kind] = true
	ws.asErrors[kind] = true
}

// IsEnabled reports whether kind currently produces any diagnostic at all.
func (ws *WarningSet) IsEnabled(kind WarningKind) bool { return ws.enabled[kind] }

// IsError reports whether kind has been escalated to a hard error.
func (ws *WarningSet) IsError(kind WarningKind) bool { return ws.asErrors[kind] }
