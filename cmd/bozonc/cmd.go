package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Il-Capitano/bozon-sub003/internal/config"
	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/consteval"
	"github.com/Il-Capitano/bozon-sub003/pkg/ctx"
	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
	"github.com/Il-Capitano/bozon-sub003/pkg/match"
	"github.com/Il-Capitano/bozon-sub003/pkg/parser"
)

type cliFlags struct {
	opt           string
	warn          []string
	warnDisable   []string
	warnError     []string
	option        []string
	optionClear   []string
	include       []string
	emit          string
	target        string
	aggressive    bool
	freestanding  bool
	noMain        bool
	verbose       bool
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:           "bozonc [files...]",
		Short:         "fold consteval expressions and lower them to LLVM IR",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.opt, "opt", "0", "optimisation group: 0, 1, 2, 3, s, z")
	cmd.Flags().StringArrayVar(&flags.warn, "warn", nil, "enable a warning (-W<name>)")
	cmd.Flags().StringArrayVar(&flags.warnDisable, "warn-disable", nil, "disable a warning (-Wno-<name>)")
	cmd.Flags().StringArrayVar(&flags.warnError, "warn-error", nil, "promote a warning to an error (-Werror=<name>)")
	cmd.Flags().StringArrayVar(&flags.option, "option", nil, "set a compile-time option (-F<name>[=<value>])")
	cmd.Flags().StringArrayVar(&flags.optionClear, "option-clear", nil, "clear a compile-time option (-Fno-<name>)")
	cmd.Flags().StringArrayVarP(&flags.include, "include", "I", nil, "add a directory to the import search path")
	cmd.Flags().StringVar(&flags.emit, "emit", "obj", "output kind: obj, asm, llvm-bc, llvm-ir, c, null")
	cmd.Flags().StringVar(&flags.target, "target", "", "target triple")
	cmd.Flags().BoolVar(&flags.aggressive, "aggressive-consteval", false, "also fold the body of every zero-argument consteval function at force intensity")
	cmd.Flags().BoolVar(&flags.freestanding, "freestanding", false, "omit the standard runtime's entry-point shim")
	cmd.Flags().BoolVar(&flags.noMain, "no-main", false, "omit the language-level main wrapper")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug-level logging")

	return cmd
}

func buildConfig(flags *cliFlags) (*config.Config, error) {
	cfg := config.New()

	group, ok := config.ParseOptGroup(flags.opt)
	if !ok {
		return nil, fmt.Errorf("invalid -O value %q", flags.opt)
	}
	cfg.OptGroup = group

	emit, ok := config.ParseEmitType(flags.emit)
	if !ok {
		return nil, fmt.Errorf("invalid --emit value %q", flags.emit)
	}
	cfg.Emit = emit

	cfg.Target = flags.target
	cfg.ImportDirs = flags.include
	cfg.AggressiveConsteval = flags.aggressive
	cfg.Freestanding = flags.freestanding
	cfg.NoMain = flags.noMain

	for _, name := range flags.warn {
		kind, ok := diag.LookupWarningKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown warning %q", name)
		}
		cfg.Warnings.Enable(kind)
	}
	for _, name := range flags.warnDisable {
		kind, ok := diag.LookupWarningKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown warning %q", name)
		}
		cfg.Warnings.Disable(kind)
	}
	for _, name := range flags.warnError {
		kind, ok := diag.LookupWarningKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown warning %q", name)
		}
		cfg.Warnings.SetError(kind)
	}
	for _, kv := range flags.option {
		name, value := splitOption(kv)
		cfg.Options.Set(name, value)
	}
	for _, name := range flags.optionClear {
		cfg.Options.Clear(name)
	}

	return cfg, nil
}

func splitOption(kv string) (name, value string) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:]
		}
	}

	return kv, ""
}

func run(flags *cliFlags, files []string) error {
	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags.verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	hadErrors := false
	for _, file := range files {
		if err := compileFile(file, cfg, logger); err != nil {
			hadErrors = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
		}
	}
	if hadErrors {
		return fmt.Errorf("compilation failed")
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// compileFile drives the whole lex -> parse -> consteval pipeline for a
// single translation unit, returning an error if parsing failed or the
// diagnostics sink recorded any unsuppressed error.
func compileFile(path string, cfg *config.Config, logger *zap.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	if p.Errors().HasErrors() {
		for _, e := range p.Errors().Errors() {
			fmt.Fprintln(os.Stderr, e)
		}

		return fmt.Errorf("%d parse error(s)", len(p.Errors().Errors()))
	}

	sink := diag.NewZapSink(logger, cfg.Warnings)
	parseCtx := ctx.New(sink, cfg)
	evaluator := consteval.New(parseCtx)
	parseCtx.Evaluator = evaluator
	matcher := match.New(parseCtx)

	logger.Debug("parsed translation unit",
		zap.String("path", path),
		zap.String("unit", parseCtx.ID.String()),
		zap.Int("declarations", len(program.Declarations)),
	)

	for _, decl := range program.Declarations {
		foldTopLevelDecl(decl, evaluator, matcher, cfg)
	}

	if sink.ErrorCount() > 0 {
		return fmt.Errorf("%d error(s)", sink.ErrorCount())
	}

	if cfg.Emit == config.EmitLLVMIR {
		return emitLLVMIR(path, program, evaluator, logger)
	}

	return nil
}

// foldTopLevelDecl folds the declaration's consteval-relevant expression,
// if it has one: a VarDecl's initializer, or (when aggressive consteval is
// enabled) a zero-argument consteval function's body. A VarDecl's
// initializer is first run through the matcher against the declared type
// so an initializer needing an inserted cast (a narrower integer literal,
// an array-to-slice conversion, ...) folds the cast the matcher produced
// rather than the bare, unconverted expression.
func foldTopLevelDecl(decl types.Declaration, evaluator *consteval.Evaluator, matcher *match.Matcher, cfg *config.Config) {
	switch decl := decl.(type) {
	case *types.VarDecl:
		if !decl.Consteval || decl.Initializer == nil {
			return
		}
		if decl.Type != nil {
			if matched, ok := matcher.MatchExpression(decl.Initializer, decl.Type); ok {
				decl.Initializer = matched
			}
		}
		evaluator.Fold(decl.Initializer, consteval.ForceWithError)
	case *types.FuncDecl:
		if !decl.Consteval || decl.Body == nil || len(decl.Parameters) != 0 || !cfg.IsAggressiveConstevalEnabled() {
			return
		}
		if decl.Body.IsPureFinalExpression() {
			evaluator.Fold(decl.Body.Final, consteval.ForceWithError)
		}
	}
}
