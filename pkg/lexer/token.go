package lexer

import "fmt"

// TokenType classifies one lexical unit of the surface language: a small
// expression-and-declaration syntax whose type-modifier tokens (&, &&, #,
// *, ?, [N], [:], ...) are chosen to read, left to right, exactly the way
// internal/types.Type.String() prints a modifier stack — so the lexer's
// token set is derived from that rendering rather than invented separately.
type TokenType int

const (
	TOKEN_EOF     TokenType = iota // end of input
	TOKEN_ILLEGAL                  // unrecognized byte sequence

	// Literals.
	TOKEN_INT    // 123
	TOKEN_FLOAT  // 1.5
	TOKEN_STRING // "..."
	TOKEN_CHAR   // '.'
	TOKEN_IDENT  // identifiers, including primitive and user type names

	// Keywords.
	TOKEN_IF        // "if"
	TOKEN_THEN      // "then"
	TOKEN_ELSE      // "else"
	TOKEN_CONSTEVAL // "consteval" (both `if consteval` and the type modifier)
	TOKEN_SWITCH    // "switch"
	TOKEN_TRUE      // "true"
	TOKEN_FALSE     // "false"
	TOKEN_NULL      // "null"
	TOKEN_AUTO      // "auto"
	TOKEN_VOID      // "void"
	TOKEN_MUT       // "mut"
	TOKEN_CONST     // "const"
	TOKEN_FUNCTION  // "function" (function type / function declaration)
	TOKEN_LET       // "let"
	TOKEN_STRUCT    // "struct"
	TOKEN_ENUM      // "enum"

	// Arithmetic.
	TOKEN_PLUS    // "+"
	TOKEN_MINUS   // "-"
	TOKEN_STAR    // "*" (multiplication or pointer modifier, by position)
	TOKEN_SLASH   // "/"
	TOKEN_PERCENT // "%"

	// Comparison.
	TOKEN_EQ  // "=="
	TOKEN_NEQ // "!="
	TOKEN_LT  // "<"
	TOKEN_GT  // ">"
	TOKEN_LTE // "<="
	TOKEN_GTE // ">="

	// Logical and bitwise; & and && double as reference modifiers in type
	// position, the same overload C++ gives them.
	TOKEN_BANG     // "!"
	TOKEN_AMP      // "&"
	TOKEN_AMPAMP   // "&&"
	TOKEN_PIPE     // "|"
	TOKEN_PIPEPIPE // "||"
	TOKEN_CARET    // "^"
	TOKEN_TILDE    // "~"
	TOKEN_SHL      // "<<"
	TOKEN_SHR      // ">>"

	// Special.
	TOKEN_HASH     // "#" (auto-reference modifier)
	TOKEN_QUESTION // "?" (optional modifier)
	TOKEN_ARROW    // "->" (function return type)
	TOKEN_ELLIPSIS // "..." (variadic modifier)
	TOKEN_DOT      // "."
	TOKEN_ASSIGN   // "="

	// Delimiters.
	TOKEN_SEMICOLON
	TOKEN_COLON
	TOKEN_COMMA
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_LBRACKET
	TOKEN_RBRACKET
)

// Token is one lexical unit: its kind, source text, and position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF: "EOF", TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_INT: "INT", TOKEN_FLOAT: "FLOAT", TOKEN_STRING: "STRING", TOKEN_CHAR: "CHAR", TOKEN_IDENT: "IDENT",
	TOKEN_IF: "IF", TOKEN_THEN: "THEN", TOKEN_ELSE: "ELSE", TOKEN_CONSTEVAL: "CONSTEVAL",
	TOKEN_SWITCH: "SWITCH", TOKEN_TRUE: "TRUE", TOKEN_FALSE: "FALSE", TOKEN_NULL: "NULL",
	TOKEN_AUTO: "AUTO", TOKEN_VOID: "VOID", TOKEN_MUT: "MUT", TOKEN_CONST: "CONST",
	TOKEN_FUNCTION: "FUNCTION", TOKEN_LET: "LET", TOKEN_STRUCT: "STRUCT", TOKEN_ENUM: "ENUM",
	TOKEN_PLUS: "PLUS", TOKEN_MINUS: "MINUS", TOKEN_STAR: "STAR", TOKEN_SLASH: "SLASH", TOKEN_PERCENT: "PERCENT",
	TOKEN_EQ: "EQ", TOKEN_NEQ: "NEQ", TOKEN_LT: "LT", TOKEN_GT: "GT", TOKEN_LTE: "LTE", TOKEN_GTE: "GTE",
	TOKEN_BANG: "BANG", TOKEN_AMP: "AMP", TOKEN_AMPAMP: "AMPAMP", TOKEN_PIPE: "PIPE", TOKEN_PIPEPIPE: "PIPEPIPE",
	TOKEN_CARET: "CARET", TOKEN_TILDE: "TILDE", TOKEN_SHL: "SHL", TOKEN_SHR: "SHR",
	TOKEN_HASH: "HASH", TOKEN_QUESTION: "QUESTION", TOKEN_ARROW: "ARROW", TOKEN_ELLIPSIS: "ELLIPSIS",
	TOKEN_DOT: "DOT", TOKEN_ASSIGN: "ASSIGN",
	TOKEN_SEMICOLON: "SEMICOLON", TOKEN_COLON: "COLON", TOKEN_COMMA: "COMMA",
	TOKEN_LPAREN: "LPAREN", TOKEN_RPAREN: "RPAREN", TOKEN_LBRACE: "LBRACE", TOKEN_RBRACE: "RBRACE",
	TOKEN_LBRACKET: "LBRACKET", TOKEN_RBRACKET: "RBRACKET",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

var keywords = map[string]TokenType{
	"if": TOKEN_IF, "then": TOKEN_THEN, "else": TOKEN_ELSE, "consteval": TOKEN_CONSTEVAL,
	"switch": TOKEN_SWITCH, "true": TOKEN_TRUE, "false": TOKEN_FALSE, "null": TOKEN_NULL,
	"auto": TOKEN_AUTO, "void": TOKEN_VOID, "mut": TOKEN_MUT, "const": TOKEN_CONST,
	"function": TOKEN_FUNCTION, "let": TOKEN_LET, "struct": TOKEN_STRUCT, "enum": TOKEN_ENUM,
}

// LookupIdent classifies ident as a keyword token or a plain identifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}

	return TOKEN_IDENT
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
