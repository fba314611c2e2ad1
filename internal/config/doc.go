// Package config reifies the compiler's process-wide mutable state
// (original_source's global_data::…, its warning bitsets, and its debug
// flags) as a single threaded value, per spec.md §9's "global mutable
// state... is reified as a configuration record" redesign note. Nothing in
// internal, pkg, or cmd reads package-level mutable state for
// compiler behaviour; everything goes through a *Config passed down from
// cmd/bozonc.
package config
