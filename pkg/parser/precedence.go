package parser

import "github.com/Il-Capitano/bozon-sub003/pkg/lexer"

// Operator precedence levels, lowest to highest.
const (
	precedenceLowest = iota
	precedenceOr      // ||
	precedenceAnd     // &&
	precedenceBitOr   // |
	precedenceBitXor  // ^
	precedenceBitAnd  // &
	precedenceEquals  // == !=
	precedenceCompare // < > <= >=
	precedenceShift   // << >>
	precedenceSum     // + -
	precedenceProduct // * / %
	precedenceCall    // ( ) call, [ ] subscript, . member
)

var precedenceMap = map[lexer.TokenType]int{
	lexer.TOKEN_PIPEPIPE: precedenceOr,
	lexer.TOKEN_AMPAMP:   precedenceAnd,
	lexer.TOKEN_PIPE:     precedenceBitOr,
	lexer.TOKEN_CARET:    precedenceBitXor,
	lexer.TOKEN_AMP:      precedenceBitAnd,
	lexer.TOKEN_EQ:       precedenceEquals,
	lexer.TOKEN_NEQ:      precedenceEquals,
	lexer.TOKEN_LT:       precedenceCompare,
	lexer.TOKEN_GT:       precedenceCompare,
	lexer.TOKEN_LTE:      precedenceCompare,
	lexer.TOKEN_GTE:      precedenceCompare,
	lexer.TOKEN_SHL:      precedenceShift,
	lexer.TOKEN_SHR:      precedenceShift,
	lexer.TOKEN_PLUS:     precedenceSum,
	lexer.TOKEN_MINUS:    precedenceSum,
	lexer.TOKEN_STAR:     precedenceProduct,
	lexer.TOKEN_SLASH:    precedenceProduct,
	lexer.TOKEN_PERCENT:  precedenceProduct,
	lexer.TOKEN_DOT:      precedenceCall,
	lexer.TOKEN_LBRACKET: precedenceCall,
	lexer.TOKEN_LPAREN:   precedenceCall,
}
