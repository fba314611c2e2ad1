// Package parser turns a pkg/lexer token stream into an internal/types
// expression tree (and, for a whole translation unit, declarations): a
// two-token-lookahead Pratt parser for expressions plus a small recursive-
// descent layer for struct/enum/function/variable declarations. Identifiers
// resolve to their internal/types.Declaration at parse time, the same
// binding pkg/consteval's identifier folding and pkg/match's generic-
// instance matching depend on — there is no separate name-resolution pass.
package parser
