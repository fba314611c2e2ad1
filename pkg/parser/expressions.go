package parser

import (
	"strconv"
	"strings"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/internal/value"
	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
)

// parseExpression is the Pratt loop: parse one prefix expression, then keep
// absorbing infix/postfix operators whose precedence beats the caller's
// floor. On return cur sits on the last token consumed for the expression,
// the convention every parse*Expr helper in this file follows.
func (p *Parser) parseExpression(precedence int) types.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(lexer.TOKEN_SEMICOLON) && precedence < p.peekPrecedence() {
		switch p.peek.Type {
		case lexer.TOKEN_LPAREN:
			p.advance()
			left = p.parseCallExpr(left)
		case lexer.TOKEN_LBRACKET:
			p.advance()
			left = p.parseSubscriptExpr(left)
		case lexer.TOKEN_DOT:
			p.advance()
			left = p.parseMemberExpr(left)
		default:
			if !isBinaryOperatorToken(p.peek.Type) {
				return left
			}
			p.advance()
			left = p.parseBinaryExpr(left)
		}
	}

	return left
}

func isBinaryOperatorToken(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS, lexer.TOKEN_STAR, lexer.TOKEN_SLASH, lexer.TOKEN_PERCENT,
		lexer.TOKEN_EQ, lexer.TOKEN_NEQ, lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.TOKEN_LTE, lexer.TOKEN_GTE,
		lexer.TOKEN_AMP, lexer.TOKEN_AMPAMP, lexer.TOKEN_PIPE, lexer.TOKEN_PIPEPIPE, lexer.TOKEN_CARET,
		lexer.TOKEN_SHL, lexer.TOKEN_SHR:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrefix() types.Expr {
	switch p.cur.Type {
	case lexer.TOKEN_INT:
		return p.parseIntLiteral()
	case lexer.TOKEN_FLOAT:
		return p.parseFloatLiteral()
	case lexer.TOKEN_STRING:
		return p.parseStringLiteral()
	case lexer.TOKEN_CHAR:
		return p.parseCharLiteral()
	case lexer.TOKEN_TRUE, lexer.TOKEN_FALSE:
		return p.parseBoolLiteral()
	case lexer.TOKEN_NULL:
		return p.parseNullLiteral()
	case lexer.TOKEN_IDENT:
		return p.parseIdentOrTypenameOrStructInit()
	case lexer.TOKEN_LPAREN:
		return p.parseGroupedOrCast()
	case lexer.TOKEN_LBRACE:
		return p.parseCompoundExpr()
	case lexer.TOKEN_LBRACKET:
		return p.parseBracketLiteral()
	case lexer.TOKEN_MINUS, lexer.TOKEN_BANG, lexer.TOKEN_TILDE, lexer.TOKEN_STAR, lexer.TOKEN_AMP:
		return p.parseUnaryExpr()
	case lexer.TOKEN_IF:
		return p.parseIfExpr()
	case lexer.TOKEN_SWITCH:
		return p.parseSwitchExpr()
	default:
		p.errs.Addf(p.cur.Line, p.cur.Column, "unexpected token %s in expression", p.cur.Type)

		return nil
	}
}

func (p *Parser) parseIntLiteral() types.Expr {
	tok := p.cur
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errs.Addf(tok.Line, tok.Column, "invalid integer literal %q", tok.Literal)
	}
	base := p.newExprBase(tok)
	base.Category = types.ValueCategoryLiteral
	base.State = types.ConstevalSucceeded
	base.Type = types.NewType(types.BaseType{Decl: types.Int32})
	base.Folded = value.Sint(n)

	return &types.IntLiteralExpr{ExprBase: base, Value: n}
}

func (p *Parser) parseFloatLiteral() types.Expr {
	tok := p.cur
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errs.Addf(tok.Line, tok.Column, "invalid float literal %q", tok.Literal)
	}
	base := p.newExprBase(tok)
	base.Category = types.ValueCategoryLiteral
	base.State = types.ConstevalSucceeded
	base.Type = types.NewType(types.BaseType{Decl: types.Float64})
	base.Folded = value.Float64(f)

	return &types.FloatLiteralExpr{ExprBase: base, Value: f}
}

func unescape(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			b.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(raw[i])
		default:
			b.WriteByte(raw[i])
		}
	}

	return b.String()
}

func (p *Parser) parseStringLiteral() types.Expr {
	tok := p.cur
	base := p.newExprBase(tok)
	base.Category = types.ValueCategoryRvalue
	base.State = types.ConstevalSucceeded
	base.Type = types.NewType(types.BaseType{Decl: types.Str})
	s := unescape(tok.Literal)
	base.Folded = value.String(s)

	return &types.StringLiteralExpr{ExprBase: base, Value: s}
}

func (p *Parser) parseCharLiteral() types.Expr {
	tok := p.cur
	decoded := unescape(tok.Literal)
	r := rune(0)
	for _, c := range decoded {
		r = c
		break
	}
	base := p.newExprBase(tok)
	base.Category = types.ValueCategoryRvalue
	base.State = types.ConstevalSucceeded
	base.Type = types.NewType(types.BaseType{Decl: types.CharP})
	base.Folded = value.Char(r)

	return &types.CharLiteralExpr{ExprBase: base, Value: r}
}

func (p *Parser) parseBoolLiteral() types.Expr {
	tok := p.cur
	v := tok.Type == lexer.TOKEN_TRUE
	base := p.newExprBase(tok)
	base.State = types.ConstevalSucceeded
	base.Type = types.NewType(types.BaseType{Decl: types.BoolP})
	base.Folded = value.Bool(v)

	return &types.BoolLiteralExpr{ExprBase: base, Value: v}
}

func (p *Parser) parseNullLiteral() types.Expr {
	tok := p.cur
	base := p.newExprBase(tok)
	base.State = types.ConstevalSucceeded
	base.Type = types.NewType(types.AutoType{}).WithOptional()
	base.Folded = value.Null{}

	return &types.NullLiteralExpr{ExprBase: base}
}

// parseIdentOrTypenameOrStructInit resolves the identifier against the
// current scope: a type declaration followed by '{' is a struct
// initializer, a bare type declaration is a TypenameExpr (a type used as a
// value), and anything else is an ordinary identifier reference.
func (p *Parser) parseIdentOrTypenameOrStructInit() types.Expr {
	tok := p.cur
	decl, ok := p.scope.lookup(tok.Literal)
	if !ok {
		p.errs.Addf(tok.Line, tok.Column, "undefined identifier %q", tok.Literal)
		base := p.newExprBase(tok)

		return &types.IdentExpr{ExprBase: base, Name: tok.Literal}
	}

	if isTypeDecl(decl) {
		if structDecl, isStruct := decl.(*types.StructDecl); isStruct && p.peekIs(lexer.TOKEN_LBRACE) {
			p.advance() // cur = '{'

			return p.parseStructInitExpr(structDecl)
		}
		base := p.newExprBase(tok)
		base.Type = types.NewType(types.TypenameType{})

		return &types.TypenameExpr{ExprBase: base, Referenced: types.NewType(types.BaseType{Decl: decl})}
	}

	base := p.newExprBase(tok)
	base.Category = identCategory(decl)
	base.Type = identType(decl)

	return &types.IdentExpr{ExprBase: base, Name: tok.Literal, Decl: decl}
}

func identCategory(decl types.Declaration) types.ValueCategory {
	switch decl.(type) {
	case *types.VarDecl, *types.ParamDecl:
		return types.ValueCategoryLvalue
	default:
		return types.ValueCategoryRvalue
	}
}

func identType(decl types.Declaration) *types.Type {
	switch d := decl.(type) {
	case *types.VarDecl:
		return d.Type
	case *types.ParamDecl:
		return d.Type
	case *types.FuncDecl:
		return d.Signature
	default:
		return nil
	}
}

func (p *Parser) parseStructInitExpr(decl *types.StructDecl) types.Expr {
	pivot := p.cur // '{'
	p.advance()    // cur = first field token or '}'

	var fields []types.Expr
	if !p.curIs(lexer.TOKEN_RBRACE) {
		fields = append(fields, p.parseExpression(precedenceLowest))
		for p.peekIs(lexer.TOKEN_COMMA) {
			p.advance()
			p.advance()
			fields = append(fields, p.parseExpression(precedenceLowest))
		}
		p.expectPeek(lexer.TOKEN_RBRACE)
	}

	base := p.newExprBase(pivot)
	base.Type = types.NewType(types.BaseType{Decl: decl})

	return &types.StructInitExpr{ExprBase: base, Decl: decl, Fields: fields}
}

// parseGroupedOrCast disambiguates `(expr)` from `(Type)expr` by resolving
// the token after '(' against scope: if it can only start a type, this is a
// cast, otherwise it is a parenthesised expression.
func (p *Parser) parseGroupedOrCast() types.Expr {
	pivot := p.cur // '('
	p.advance()    // cur = first token after '('

	if p.looksLikeTypeStart() {
		dest := p.parseType() // leaves cur one past the type, i.e. on ')'
		if !p.curIs(lexer.TOKEN_RPAREN) {
			p.errs.Addf(p.cur.Line, p.cur.Column, "expected ')' to close cast, got %s", p.cur.Type)
		} else {
			p.advance()
		}
		operand := p.parseExpression(precedenceCall)
		base := p.newExprBase(pivot)
		base.Type = dest

		return &types.CastExpr{ExprBase: base, Operand: operand, Dest: dest, Kind: "numeric"}
	}

	expr := p.parseExpression(precedenceLowest)
	p.expectPeek(lexer.TOKEN_RPAREN)
	if expr != nil {
		expr.Base().ParenLevel++
	}

	return expr
}

func (p *Parser) looksLikeTypeStart() bool {
	switch p.cur.Type {
	case lexer.TOKEN_AUTO, lexer.TOKEN_VOID, lexer.TOKEN_FUNCTION, lexer.TOKEN_MUT, lexer.TOKEN_CONST,
		lexer.TOKEN_CONSTEVAL, lexer.TOKEN_AMPAMP, lexer.TOKEN_HASH, lexer.TOKEN_QUESTION,
		lexer.TOKEN_LBRACKET, lexer.TOKEN_ELLIPSIS, lexer.TOKEN_STAR:
		return true
	case lexer.TOKEN_IDENT:
		decl, ok := p.scope.lookup(p.cur.Literal)

		return ok && isTypeDecl(decl)
	default:
		return false
	}
}

func (p *Parser) parseBracketLiteral() types.Expr {
	pivot := p.cur // '['
	p.advance()    // cur = first elem token or ']'

	var elems []types.Expr
	if !p.curIs(lexer.TOKEN_RBRACKET) {
		elems = append(elems, p.parseExpression(precedenceLowest))
		for p.peekIs(lexer.TOKEN_COMMA) {
			p.advance()
			p.advance()
			elems = append(elems, p.parseExpression(precedenceLowest))
		}
		p.expectPeek(lexer.TOKEN_RBRACKET)
	}

	return &types.TupleExpr{ExprBase: p.newExprBase(pivot), Elems: elems}
}

func (p *Parser) parseUnaryExpr() types.Expr {
	tok := p.cur
	p.advance()
	operand := p.parseExpression(precedenceCall)
	base := p.newExprBase(tok)
	if operand != nil {
		base.Type = inferUnaryType(tok.Literal, operand.Base().Type)
	}

	return &types.UnaryExpr{ExprBase: base, Op: types.UnaryOp(tok.Literal), Operand: operand}
}

func inferUnaryType(op string, operand *types.Type) *types.Type {
	if operand == nil {
		return nil
	}
	switch op {
	case "!":
		return types.NewType(types.BaseType{Decl: types.BoolP})
	case "&":
		mods := append([]types.Modifier{{Kind: types.ModPointer}}, operand.Mods...)

		return &types.Type{Mods: mods, Term: operand.Term}
	case "*":
		if m, ok := firstMod(operand); ok && m.Kind == types.ModPointer {
			return &types.Type{Mods: operand.Mods[1:], Term: operand.Term}
		}

		return operand
	default:
		return operand
	}
}

func firstMod(t *types.Type) (types.Modifier, bool) {
	if len(t.Mods) == 0 {
		return types.Modifier{}, false
	}

	return t.Mods[0], true
}

func (p *Parser) parseBinaryExpr(left types.Expr) types.Expr {
	tok := p.cur
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	base := p.newExprBase(tok)
	base.Type = inferBinaryType(tok.Type, left, right)

	return &types.BinaryExpr{ExprBase: base, Op: types.BinaryOp(tok.Literal), Left: left, Right: right}
}

func inferBinaryType(op lexer.TokenType, left, right types.Expr) *types.Type {
	switch op {
	case lexer.TOKEN_EQ, lexer.TOKEN_NEQ, lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.TOKEN_LTE, lexer.TOKEN_GTE,
		lexer.TOKEN_AMPAMP, lexer.TOKEN_PIPEPIPE:
		return types.NewType(types.BaseType{Decl: types.BoolP})
	default:
		if left != nil && left.Base().Type != nil {
			return left.Base().Type
		}
		if right != nil {
			return right.Base().Type
		}

		return nil
	}
}

func (p *Parser) parseCallExpr(callee types.Expr) types.Expr {
	pivot := p.cur // '('
	p.advance()    // cur = first arg token or ')'

	var args []types.Expr
	if !p.curIs(lexer.TOKEN_RPAREN) {
		args = append(args, p.parseExpression(precedenceLowest))
		for p.peekIs(lexer.TOKEN_COMMA) {
			p.advance()
			p.advance()
			args = append(args, p.parseExpression(precedenceLowest))
		}
		p.expectPeek(lexer.TOKEN_RPAREN)
	}

	base := p.newExprBase(pivot)
	if ident, ok := callee.(*types.IdentExpr); ok {
		if fn, ok := ident.Decl.(*types.FuncDecl); ok {
			if sig, ok := fn.Signature.Term.(types.FunctionType); ok {
				base.Type = sig.Return
			}
		}
	}

	return &types.CallExpr{ExprBase: base, Callee: callee, Args: args}
}

func (p *Parser) parseSubscriptExpr(array types.Expr) types.Expr {
	pivot := p.cur // '['
	p.advance()    // cur = first index token
	index := p.parseExpression(precedenceLowest)
	p.expectPeek(lexer.TOKEN_RBRACKET)

	base := p.newExprBase(pivot)
	if array != nil && array.Base().Type != nil {
		base.Type = elementType(array.Base().Type)
	}
	base.Category = types.ValueCategoryLvalue

	return &types.SubscriptExpr{ExprBase: base, Array: array, Index: index}
}

func elementType(t *types.Type) *types.Type {
	if len(t.Mods) > 0 && (t.Mods[0].Kind == types.ModArray || t.Mods[0].Kind == types.ModArraySlice) {
		return &types.Type{Mods: t.Mods[1:], Term: t.Term}
	}
	if tup, ok := t.Term.(types.TupleType); ok && len(tup.Elems) > 0 {
		return tup.Elems[0]
	}

	return t
}

func (p *Parser) parseMemberExpr(base types.Expr) types.Expr {
	pivot := p.cur // '.'
	if !p.expectPeek(lexer.TOKEN_IDENT) {
		return base
	}
	field := p.cur.Literal
	eb := p.newExprBase(pivot)
	eb.Category = types.ValueCategoryLvalue
	if base != nil && base.Base().Type != nil {
		eb.Type = fieldType(base.Base().Type, field)
	}

	return &types.MemberExpr{ExprBase: eb, Base_: base, Field: field}
}

func fieldType(t *types.Type, field string) *types.Type {
	structDecl, ok := t.RemoveAnyMut().Term.(types.BaseType)
	if !ok {
		return nil
	}
	sd, ok := structDecl.Decl.(*types.StructDecl)
	if !ok {
		return nil
	}
	for _, f := range sd.Fields {
		if f.Name == field {
			return f.Type
		}
	}

	return nil
}

func (p *Parser) parseIfExpr() types.Expr {
	pivot := p.cur // "if"
	p.advance()
	ifConsteval := false
	if p.curIs(lexer.TOKEN_CONSTEVAL) {
		ifConsteval = true
		p.advance()
	}
	cond := p.parseExpression(precedenceLowest)
	p.expectPeek(lexer.TOKEN_THEN)
	p.advance()
	thenExpr := p.parseExpression(precedenceLowest)
	p.expectPeek(lexer.TOKEN_ELSE)
	p.advance()
	elseExpr := p.parseExpression(precedenceLowest)

	base := p.newExprBase(pivot)
	if thenExpr != nil {
		base.Type = thenExpr.Base().Type
	}

	return &types.IfExpr{ExprBase: base, IfConsteval: ifConsteval, Cond: cond, Then: thenExpr, Else: elseExpr}
}

func (p *Parser) parseSwitchExpr() types.Expr {
	pivot := p.cur // "switch"
	p.advance()
	scrutinee := p.parseExpression(precedenceLowest)
	p.expectPeek(lexer.TOKEN_LBRACE)
	p.advance() // cur = first arm token or '}'

	var arms []types.SwitchArm
	var def *types.SwitchArm
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.TOKEN_EOF) {
		if p.curIs(lexer.TOKEN_ELSE) {
			p.advance() // cur should now be '->'
			if !p.curIs(lexer.TOKEN_ARROW) {
				p.errs.Addf(p.cur.Line, p.cur.Column, "expected '->' after else, got %s", p.cur.Type)
			} else {
				p.advance()
			}
			body := p.parseExpression(precedenceLowest)
			def = &types.SwitchArm{Body: body}
		} else {
			vals := []types.Expr{p.parseExpression(precedenceLowest)}
			for p.peekIs(lexer.TOKEN_COMMA) {
				p.advance()
				p.advance()
				vals = append(vals, p.parseExpression(precedenceLowest))
			}
			p.expectPeek(lexer.TOKEN_ARROW)
			p.advance()
			body := p.parseExpression(precedenceLowest)
			arms = append(arms, types.SwitchArm{Values: vals, Body: body})
		}
		if p.peekIs(lexer.TOKEN_SEMICOLON) {
			p.advance()
		}
		p.advance()
	}

	base := p.newExprBase(pivot)
	if len(arms) > 0 && arms[0].Body != nil {
		base.Type = arms[0].Body.Base().Type
	}

	return &types.SwitchExpr{ExprBase: base, Scrutinee: scrutinee, Arms: arms, Default: def}
}

func (p *Parser) parseCompoundExpr() types.Expr {
	pivot := p.cur // '{'
	p.advance()    // cur = first stmt token or '}'

	var stmts []types.Stmt
	var final types.Expr
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.TOKEN_EOF) {
		e := p.parseExpression(precedenceLowest)
		if p.peekIs(lexer.TOKEN_SEMICOLON) {
			p.advance() // cur = ';'
			stmts = append(stmts, types.ExprStmt{Expr: e})
			p.advance() // cur = next stmt token or '}'
			continue
		}
		final = e
		p.advance() // cur should now be '}'
		break
	}
	if !p.curIs(lexer.TOKEN_RBRACE) {
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected '}' to close block, got %s", p.cur.Type)
	}

	base := p.newExprBase(pivot)
	if final != nil {
		base.Type = final.Base().Type
	} else {
		base.Type = types.NewType(types.VoidType{})
	}

	return &types.CompoundExpr{ExprBase: base, Stmts: stmts, Final: final}
}
