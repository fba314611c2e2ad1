package diag

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
)

// Note is a secondary annotation attached to an error or warning: a
// declaration-site pointer, a "while matching..." recap, or one line of a
// failed-fold walk (spec.md §4.2.5, §4.3.8).
type Note struct {
	Loc     types.SourceLoc
	Message string
}

// Sink is the diagnostics surface the evaluator and matcher report
// through — the parse-context collaborator's report_error,
// report_warning, report_parenthesis_suppressed_warning, and make_note
// (spec.md §6).
type Sink interface {
	ReportError(loc types.SourceLoc, message string, notes ...Note)
	ReportWarning(kind WarningKind, loc types.SourceLoc, message string, notes ...Note)
	// ReportParenSuppressedWarning reports kind at loc unless the
	// surrounding expression's parenLevel meets or exceeds kind's paren
	// budget (or the warning is disabled outright). Returns whether the
	// warning was actually emitted.
	ReportParenSuppressedWarning(parenLevel int, kind WarningKind, loc types.SourceLoc, message string, notes ...Note) bool
	MakeNote(loc types.SourceLoc, message string) Note
	ErrorCount() int
	WarningCount() int
}

// ZapSink is the production Sink, backed by a *zap.Logger the way the rest
// of the ambient stack uses structured logging. It is safe for concurrent
// use even though the core itself is single-threaded (spec.md §5), since
// CLI-level tooling (parallel translation units, background workers) may
// share one sink.
type ZapSink struct {
	logger   *zap.Logger
	warnings *WarningSet

	mu           sync.Mutex
	errorCount   int
	warningCount int
}

// NewZapSink builds a Sink over logger, gated by warnings. A nil
// WarningSet is treated as DefaultWarningSet().
func NewZapSink(logger *zap.Logger, warnings *WarningSet) *ZapSink {
	if warnings == nil {
		warnings = DefaultWarningSet()
	}

	return &ZapSink{logger: logger, warnings: warnings}
}

func locFields(loc types.SourceLoc) []zap.Field {
	return []zap.Field{
		zap.Int("line", loc.Pivot.Line),
		zap.Int("column", loc.Pivot.Column),
	}
}

func (s *ZapSink) logNotes(notes []Note) {
	for _, n := range notes {
		s.logger.Info("note",
			zap.Int("line", n.Loc.Pivot.Line),
			zap.Int("column", n.Loc.Pivot.Column),
			zap.String("message", n.Message),
		)
	}
}

// ReportError implements Sink.
func (s *ZapSink) ReportError(loc types.SourceLoc, message string, notes ...Note) {
	s.mu.Lock()
	s.errorCount++
	s.mu.Unlock()

	s.logger.Error(message, locFields(loc)...)
	s.logNotes(notes)
}

// ReportWarning implements Sink.
func (s *ZapSink) ReportWarning(kind WarningKind, loc types.SourceLoc, message string, notes ...Note) {
	if !s.warnings.IsEnabled(kind) {
		return
	}

	if s.warnings.IsError(kind) {
		s.ReportError(loc, fmt.Sprintf("[%s] %s", kind, message), notes...)

		return
	}

	s.mu.Lock()
	s.warningCount++
	s.mu.Unlock()

	fields := append(locFields(loc), zap.String("warning", kind.String()))
	s.logger.Warn(message, fields...)
	s.logNotes(notes)
}

// ReportParenSuppressedWarning implements Sink.
func (s *ZapSink) ReportParenSuppressedWarning(parenLevel int, kind WarningKind, loc types.SourceLoc, message string, notes ...Note) bool {
	if budget, ok := ParenBudget(kind); ok && parenLevel >= budget {
		return false
	}

	s.ReportWarning(kind, loc, message, notes...)

	return s.warnings.IsEnabled(kind)
}

// MakeNote implements Sink.
func (s *ZapSink) MakeNote(loc types.SourceLoc, message string) Note {
	return Note{Loc: loc, Message: message}
}

// ErrorCount implements Sink.
func (s *ZapSink) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.errorCount
}

// WarningCount implements Sink.
func (s *ZapSink) WarningCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.warningCount
}
