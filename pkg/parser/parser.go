package parser

import (
	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
)

// Parser is a two-token-lookahead Pratt parser over a pkg/lexer token
// stream. cur/peek give it the lookahead window needed to disambiguate a
// grouped expression from a cast, and an array-size modifier from a tuple
// terminator, without backtracking the lexer.
type Parser struct {
	l     *lexer.Lexer
	cur   lexer.Token
	peek  lexer.Token
	errs  *ParseErrors
	scope *scope
}

// New creates a parser over l with an empty root scope seeded from the
// built-in primitive declarations.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errs: &ParseErrors{}, scope: newRootScope()}
	p.advance()
	p.advance()

	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

// expectPeek advances past peek iff it has the expected type, otherwise it
// records an error and leaves the token window untouched so recovery can
// still make progress from the same position.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if !p.peekIs(t) {
		p.errs.Addf(p.peek.Line, p.peek.Column, "expected %s, got %s", t, p.peek.Type)

		return false
	}
	p.advance()

	return true
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedenceMap[p.peek.Type]; ok {
		return prec
	}

	return precedenceLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedenceMap[p.cur.Type]; ok {
		return prec
	}

	return precedenceLowest
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() *ParseErrors { return p.errs }

// newExprBase builds the bookkeeping every Expr node carries, anchored on
// pivot (the token a diagnostic about this node should underline).
func (p *Parser) newExprBase(pivot lexer.Token) types.ExprBase {
	pos := types.SourcePos{Line: pivot.Line, Column: pivot.Column}

	return types.ExprBase{
		Loc:      types.SourceLoc{Begin: pos, Pivot: pos, End: pos},
		Category: types.ValueCategoryRvalue,
		State:    types.ConstevalNeverTried,
	}
}

// ParseExpression parses a single standalone expression, e.g. for a REPL or
// a consteval-only test harness. Callers that need a whole translation unit
// should use ParseProgram instead.
func (p *Parser) ParseExpression() types.Expr {
	return p.parseExpression(precedenceLowest)
}

// ParseProgram parses a whole translation unit: a sequence of top-level
// struct/enum/function/variable declarations.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for !p.curIs(lexer.TOKEN_EOF) {
		decl := p.parseTopLevelDeclaration()
		if decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
		p.advance()
	}

	return prog
}
