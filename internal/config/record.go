package config

import "github.com/Il-Capitano/bozon-sub003/internal/diag"

// Config is the single threaded configuration record every collaborator
// consults instead of reading process-wide mutable state (spec.md §9).
// cmd/bozonc builds one Config from parsed flags and passes it down into
// pkg/ctx's parse-context, which is the only thing the core itself ever
// sees.
type Config struct {
	OptGroup   OptGroup
	Emit       EmitType
	Target     string
	ImportDirs []string

	Warnings *diag.WarningSet
	Options  *OptionTable

	// AggressiveConsteval mirrors is_aggressive_consteval_enabled: when
	// set, cmd/bozonc also folds the body of every zero-argument consteval
	// function at force-with-error intensity. Top-level consteval variable
	// initialisers are folded at that intensity whether or not it is set.
	AggressiveConsteval bool

	// Freestanding disables implicit linkage against the standard
	// runtime's entry-point shim; NoMain additionally omits the
	// language-level main wrapper (both taken from
	// original_source/src/global_data.h's identically named flags).
	Freestanding bool
	NoMain       bool
}

// New builds a Config with every field at its default (no optimisation,
// obj emission, every warning enabled, no options set).
func New() *Config {
	return &Config{
		OptGroup: OptO0,
		Emit:     EmitObj,
		Warnings: diag.DefaultWarningSet(),
		Options:  NewOptionTable(),
	}
}

// IsAggressiveConstevalEnabled implements the parse-context query of the
// same name (spec.md §6).
func (c *Config) IsAggressiveConstevalEnabled() bool { return c.AggressiveConsteval }

// IsOptionSet implements the __builtin_is_option_set intrinsic's backing
// query.
func (c *Config) IsOptionSet(name string) bool { return c.Options.IsSet(name) }
