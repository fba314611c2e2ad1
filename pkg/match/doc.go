// Package match implements the type-directed matcher: the single decision
// tree that answers every "does this expression fit this destination type"
// question the core asks, parameterised by a mode that picks the leaf
// action (spec.md 4.3.1). Overload resolution, implicit conversions, and
// parameter binding all go through the same Matcher so two call sites can
// never disagree about whether an expression matches a type.
package match
