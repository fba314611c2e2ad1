// Package lexer tokenizes the surface expression-and-declaration syntax
// pkg/parser consumes: literals, identifiers/keywords, the prefix
// type-modifier operators (&, &&, #, *, ?, [N], [:], ...), and ordinary
// expression/declaration punctuation. Single-pass, maximal-munch scanning,
// in the same style as a hand-written recursive lexer — no lexer generator
// or regex table anywhere in the pack to prefer over this.
package lexer
