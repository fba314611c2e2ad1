// Package ctx implements the parse-context collaborator named throughout
// spec.md §6: the object the evaluator and matcher call back into for
// diagnostics, on-demand resolution, and interpreter dispatch.
//
// Context holds an Evaluator field rather than importing pkg/consteval
// directly: pkg/consteval needs a *Context to report through and to push
// onto the resolve queue, so the dependency would otherwise cycle. The
// wiring code (cmd/bozonc) constructs the Context first, then the
// consteval.Evaluator, then assigns the latter into the former's Evaluator
// field — the same late-binding trick internal/value uses for EnumRef.
package ctx
