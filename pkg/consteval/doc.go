// Package consteval implements the constant-expression evaluator: the E
// component that folds an expression tree bottom-up, in source order,
// under one of three evaluation intensities.
//
// Evaluator satisfies pkg/ctx's Evaluator interface so the parse-context
// collaborator can dispatch user-defined-function execution and compound-
// expression interpretation back into it without pkg/ctx importing this
// package (see pkg/ctx/doc.go for the wiring order).
//
// Interpreting a full consteval function body is, in this implementation,
// restricted to bodies whose CompoundExpr is a pure final-expression
// (types.CompoundExpr.IsPureFinalExpression): parameters are bound as
// constant substitutions and the trailing expression is folded. Richer
// statement-sequence interpretation (locals, loops, assignment) is out of
// scope for the core this package implements; a function whose body needs
// more than that fails to fold rather than running a general interpreter.
package consteval
