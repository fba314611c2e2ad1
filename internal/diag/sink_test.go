package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Il-Capitano/bozon-sub003/internal/diag"
	"github.com/Il-Capitano/bozon-sub003/internal/types"
)

func newObservedSink(ws *diag.WarningSet) (*diag.ZapSink, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)

	return diag.NewZapSink(zap.New(core), ws), logs
}

func TestLookupWarningKindRoundTrips(t *testing.T) {
	for _, k := range diag.AllWarningKinds() {
		found, ok := diag.LookupWarningKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, found)
	}

	_, ok := diag.LookupWarningKind("not-a-real-warning")
	assert.False(t, ok)
}

func TestDefaultWarningSetEnablesEverythingNoErrors(t *testing.T) {
	ws := diag.DefaultWarningSet()
	for _, k := range diag.AllWarningKinds() {
		assert.True(t, ws.IsEnabled(k))
		assert.False(t, ws.IsError(k))
	}
}

// Property 9: a warning suppressed at paren-level L does not appear at
// paren-level L+1 or deeper either.
func TestParenSuppressionIsMonotonic(t *testing.T) {
	ws := diag.DefaultWarningSet()
	sink, logs := newObservedSink(ws)

	budget, ok := diag.ParenBudget(diag.WarnIntOverflow)
	require.True(t, ok)

	loc := types.SourceLoc{}
	emittedAtBudget := sink.ReportParenSuppressedWarning(budget, diag.WarnIntOverflow, loc, "overflow")
	emittedBeyond := sink.ReportParenSuppressedWarning(budget+1, diag.WarnIntOverflow, loc, "overflow")
	emittedBelow := sink.ReportParenSuppressedWarning(budget-1, diag.WarnIntOverflow, loc, "overflow")

	assert.False(t, emittedAtBudget)
	assert.False(t, emittedBeyond)
	assert.True(t, emittedBelow)
	assert.Equal(t, 1, logs.Len())
}

func TestWarningDisabledNeverEmits(t *testing.T) {
	ws := diag.DefaultWarningSet()
	ws.Disable(diag.WarnUnusedVariable)
	sink, logs := newObservedSink(ws)

	sink.ReportWarning(diag.WarnUnusedVariable, types.SourceLoc{}, "x is unused")
	assert.Equal(t, 0, logs.Len())
	assert.Equal(t, 0, sink.WarningCount())
}

func TestWerrorEscalatesToError(t *testing.T) {
	ws := diag.DefaultWarningSet()
	ws.SetError(diag.WarnIntOverflow)
	sink, _ := newObservedSink(ws)

	sink.ReportWarning(diag.WarnIntOverflow, types.SourceLoc{}, "overflow")
	assert.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, 0, sink.WarningCount())
}

func TestNonSuppressibleWarningHasNoBudget(t *testing.T) {
	_, ok := diag.ParenBudget(diag.WarnUnusedVariable)
	assert.False(t, ok)
}
