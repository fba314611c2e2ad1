// Package main implements bozonc, the command-line front end wiring
// pkg/lexer and pkg/parser into pkg/ctx, pkg/consteval, pkg/match and
// pkg/codegen (spec.md §6's CLI surface).
//
// bozonc does not implement a full compiler pipeline — there is no
// optimizer, linker, or object-file writer — but it drives the real
// consteval/match core end to end: it lexes and parses every source file
// given on the command line, folds every top-level consteval variable at
// force intensity (and, with --aggressive-consteval, the body of every
// zero-argument consteval function), reports diagnostics through the same
// zap-backed sink the core uses internally, and, when asked to
// --emit=llvm-ir, lowers the resulting constants through pkg/codegen and
// prints the module.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Args = rewriteCompactFlags(os.Args)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
