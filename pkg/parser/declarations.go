package parser

import (
	"strconv"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
)

// Program is a whole translation unit: an ordered list of top-level
// struct/enum/function/variable declarations. Order matters for name
// resolution: each declaration enters the root scope as it is parsed, so
// it is visible to the declarations after it (and a struct or function to
// its own fields or body), not to the ones before it.
type Program struct {
	Declarations []types.Declaration
}

func (p *Parser) parseTopLevelDeclaration() types.Declaration {
	switch p.cur.Type {
	case lexer.TOKEN_STRUCT:
		return p.parseStructDecl()
	case lexer.TOKEN_ENUM:
		return p.parseEnumDecl()
	case lexer.TOKEN_FUNCTION:
		return p.parseFuncDecl(false)
	case lexer.TOKEN_CONSTEVAL:
		if p.peekIs(lexer.TOKEN_FUNCTION) {
			p.advance() // cur = "function"

			return p.parseFuncDecl(true)
		}
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected 'function' after 'consteval' at top level")

		return nil
	case lexer.TOKEN_LET:
		return p.parseVarDecl()
	default:
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected a declaration, got %s", p.cur.Type)

		return nil
	}
}

// parseStructDecl parses `struct Name { field: Type, ... }`. The
// declaration is defined in scope before its fields are parsed so a field
// type can reference the struct through a pointer or reference modifier.
func (p *Parser) parseStructDecl() *types.StructDecl {
	p.advance() // cur = name
	name := p.cur.Literal
	decl := &types.StructDecl{Name: name}
	p.scope.define(name, decl)

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return decl
	}
	p.advance() // cur = first field name or '}'

	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.TOKEN_EOF) {
		fieldName := p.cur.Literal
		if !p.expectPeek(lexer.TOKEN_COLON) {
			break
		}
		p.advance() // cur = first token of field type
		fieldType := p.parseType()
		decl.Fields = append(decl.Fields, types.FieldDecl{Name: fieldName, Type: fieldType})
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
		}
	}

	return decl
}

// parseEnumDecl parses `enum Name { A, B = 5, C }`: enumerators default to
// one past the previous value, starting at 0.
func (p *Parser) parseEnumDecl() *types.EnumDecl {
	p.advance() // cur = name
	name := p.cur.Literal

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return &types.EnumDecl{Name: name}
	}
	p.advance() // cur = first enumerator or '}'

	var enumerators []types.Enumerator
	var next uint64
	for !p.curIs(lexer.TOKEN_RBRACE) && !p.curIs(lexer.TOKEN_EOF) {
		enumName := p.cur.Literal
		val := next
		if p.peekIs(lexer.TOKEN_ASSIGN) {
			p.advance()
			p.advance() // cur = INT
			if n, err := strconv.ParseUint(p.cur.Literal, 10, 64); err == nil {
				val = n
			}
		}
		enumerators = append(enumerators, types.Enumerator{Name: enumName, Bits: val})
		next = val + 1
		if p.peekIs(lexer.TOKEN_COMMA) {
			p.advance()
		}
		p.advance()
	}

	decl := &types.EnumDecl{
		Name:        name,
		Underlying:  types.NewType(types.BaseType{Decl: types.Int32}),
		IsSigned:    true,
		Enumerators: enumerators,
	}
	p.scope.define(name, decl)

	return decl
}

// parseFuncDecl parses `[consteval] function name(p: Type, ...) -> Type
// [{ ... }]`, pushing a child scope for the parameter list and function
// body so parameter names shadow outer declarations.
func (p *Parser) parseFuncDecl(consteval bool) *types.FuncDecl {
	p.advance() // cur = name
	name := p.cur.Literal

	if !p.expectPeek(lexer.TOKEN_LPAREN) {
		return &types.FuncDecl{Name: name, Symbol: name}
	}
	p.advance() // cur = first param or ')'

	funcScope := p.scope.push()
	var paramDecls []*types.ParamDecl
	for !p.curIs(lexer.TOKEN_RPAREN) && !p.curIs(lexer.TOKEN_EOF) {
		pname := p.cur.Literal
		if !p.expectPeek(lexer.TOKEN_COLON) {
			break
		}
		p.advance() // cur = first token of param type
		ptype := p.parseType()
		variadic := len(ptype.Mods) > 0 && ptype.Mods[0].Kind == types.ModVariadic
		pd := &types.ParamDecl{Name: pname, Type: ptype, Variadic: variadic}
		paramDecls = append(paramDecls, pd)
		funcScope.define(pname, pd)
		if p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
		}
	}
	// cur == ')'
	p.advance() // cur = "->"
	if !p.curIs(lexer.TOKEN_ARROW) {
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected '->' in function declaration, got %s", p.cur.Type)
	} else {
		p.advance() // cur = first token of return type
	}
	retType := p.parseType() // leaves cur one past return type

	paramTypes := make([]*types.Type, len(paramDecls))
	params := make([]types.ParamDecl, len(paramDecls))
	for i, pd := range paramDecls {
		paramTypes[i] = pd.Type
		params[i] = *pd
		// The body binds to the entry in Parameters, the declaration the
		// evaluator keys its argument frame on.
		funcScope.define(pd.Name, &params[i])
	}
	sig := types.NewType(types.FunctionType{CC: types.CallConvDefault, Params: paramTypes, Return: retType})

	decl := &types.FuncDecl{Name: name, Symbol: name, Signature: sig, Consteval: consteval, Parameters: params}
	p.scope.define(name, decl)

	if p.curIs(lexer.TOKEN_LBRACE) {
		savedScope := p.scope
		p.scope = funcScope
		decl.Body, _ = p.parseCompoundExpr().(*types.CompoundExpr)
		p.scope = savedScope
	}

	return decl
}

// parseVarDecl parses `let [consteval] name: Type [= initializer];`.
func (p *Parser) parseVarDecl() *types.VarDecl {
	p.advance() // cur = "consteval" or name
	consteval := false
	if p.curIs(lexer.TOKEN_CONSTEVAL) {
		consteval = true
		p.advance()
	}
	name := p.cur.Literal

	if !p.expectPeek(lexer.TOKEN_COLON) {
		return &types.VarDecl{Name: name, Consteval: consteval}
	}
	p.advance() // cur = first token of type
	varType := p.parseType() // leaves cur one past the type

	var init types.Expr
	if p.curIs(lexer.TOKEN_ASSIGN) {
		p.advance()
		init = p.parseExpression(precedenceLowest)
		if p.peekIs(lexer.TOKEN_SEMICOLON) {
			p.advance()
		}
	}

	decl := &types.VarDecl{Name: name, Type: varType, Consteval: consteval, Initializer: init}
	p.scope.define(name, decl)

	return decl
}
