package main

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"go.uber.org/zap"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/codegen"
	"github.com/Il-Capitano/bozon-sub003/pkg/consteval"
	"github.com/Il-Capitano/bozon-sub003/pkg/parser"
)

// emitLLVMIR lowers every successfully-folded top-level consteval variable
// into an LLVM global constant and prints the resulting module's textual
// IR. Variables that never folded (or whose declaration has no use here,
// like a function) are skipped rather than treated as an error: --emit is
// a best-effort snapshot of what the consteval core resolved, not a full
// code generator.
func emitLLVMIR(path string, program *parser.Program, evaluator *consteval.Evaluator, logger *zap.Logger) error {
	module := ir.NewModule()
	module.SourceFilename = path

	lowered := 0
	for _, decl := range program.Declarations {
		varDecl, ok := decl.(*types.VarDecl)
		if !ok || !varDecl.Consteval || varDecl.Initializer == nil {
			continue
		}
		base := varDecl.Initializer.Base()
		if base.State != types.ConstevalSucceeded || base.Folded == nil {
			continue
		}
		c, err := codegen.Lower(base.Folded, varDecl.Type)
		if err != nil {
			return fmt.Errorf("lowering %q: %w", varDecl.Name, err)
		}
		module.NewGlobalDef(varDecl.Name, c)
		lowered++
	}

	logger.Debug("lowered translation unit",
		zap.String("path", path),
		zap.Int("globals", lowered),
		zap.Int("declarations", len(program.Declarations)),
	)

	fmt.Println(module.String())

	return nil
}
