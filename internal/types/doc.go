// Package types implements the type model (component "T") and the
// expression tree the matcher and evaluator operate over.
//
// A Type is a (modifier-stack, terminator) pair: modifiers are stacked
// outside-in (type.go) around one of a closed set of Terminator shapes —
// base type, tuple, function, auto, typename, void (terminators.go). Types
// are built once per declaration and shared by pointer; nothing in this
// package mutates a Type after it has been handed to an Expr or wrapped in
// a value.Type.
//
// Declarations (declarations.go) are the minimal structs the resolver
// produces. EnumDecl and FuncDecl implement value.EnumRef/value.FunctionRef
// so a folded constant can reference them without this package importing
// value, and Type itself implements value.TypeView for the same reason.
//
// Expr (expr.go) is the external input to the matcher: every node carries a
// source-location triple, a paren-level suppression counter, a
// value-category, and a five-state consteval machine, matching the
// per-expression bookkeeping the evaluator and matcher both depend on.
package types
