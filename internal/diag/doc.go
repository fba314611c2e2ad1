// Package diag provides the diagnostics sink the core reports through and
// the closed warning-identifier registry named in spec.md §6.
//
// Sink is the parse-context collaborator's reporting surface
// (report_error, report_warning, report_parenthesis_suppressed_warning,
// make_note); ZapSink is the production implementation, built on
// go.uber.org/zap the way the rest of the corpus wires structured logging.
// WarningSet reifies the CLI's -W<name>/-Wno-<name>/-Werror=<name> surface
// as an in-memory bitset threaded through the parse-context, replacing the
// source's global warning bitset (spec.md §9's "global mutable state"
// redesign note).
package diag
