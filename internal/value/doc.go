// Package value implements the constant-value lattice (component "V").
//
// A Value is exactly one of 19 tagged variants (Kind), matching the stable
// tag order a linker-visible symbol-name encoding depends on — see
// Encode/Decode in codec.go. The lattice is trivially copyable: arrays,
// tuples and aggregates hold views over a caller-owned slice rather than
// copying it, mirroring the arena-view discipline the source compiler uses
// for the same concern.
//
// Every variant implements Value (Kind, Equal, Display); equality is
// structural and defined only between identical Kinds — comparing a Sint to
// a Uint is false, never a type error.
package value
