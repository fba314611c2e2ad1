// Package codegen lowers a folded internal/value.Value, typed by an
// internal/types.Type, into an LLVM IR constant (github.com/llir/llvm).
//
// It is intentionally thin: spec.md §6 names code generation as "out of
// core scope" and treats it only as a collaborator the consteval/match core
// hands folded constants to. This package gives that interface a real,
// reachable body instead of leaving it a dangling reference — every
// consteval-succeeded node cmd/bozonc's --emit=llvm-ir path visits ends up
// here.
package codegen
