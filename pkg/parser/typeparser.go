package parser

import (
	"strconv"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
)

// parseType parses a modifier-stack-then-terminator type, the mirror image
// of internal/types.Type.String(): each modifier token is read left to
// right in the same order String() would print it (mut, const, consteval,
// &, &&, #/#mut, *, ?, [N]/[]/[:]ds, ...) before falling through to the
// terminator. Unlike the expression parser's convention, parseType fully
// consumes its tokens: on return cur sits one past the type, ready for
// whatever follows (a ')', a ',', an '=', ...).
func (p *Parser) parseType() *types.Type {
	var mods []types.Modifier

	for {
		switch p.cur.Type {
		case lexer.TOKEN_MUT:
			mods = append(mods, types.Modifier{Kind: types.ModMut})
			p.advance()
		case lexer.TOKEN_CONST:
			mods = append(mods, types.Modifier{Kind: types.ModConst})
			p.advance()
		case lexer.TOKEN_CONSTEVAL:
			mods = append(mods, types.Modifier{Kind: types.ModConsteval})
			p.advance()
		case lexer.TOKEN_AMP:
			mods = append(mods, types.Modifier{Kind: types.ModLvalueReference})
			p.advance()
		case lexer.TOKEN_AMPAMP:
			mods = append(mods, types.Modifier{Kind: types.ModMoveReference})
			p.advance()
		case lexer.TOKEN_HASH:
			p.advance()
			if p.curIs(lexer.TOKEN_MUT) {
				mods = append(mods, types.Modifier{Kind: types.ModAutoReferenceMut})
				p.advance()
			} else {
				mods = append(mods, types.Modifier{Kind: types.ModAutoReference})
			}
		case lexer.TOKEN_STAR:
			mods = append(mods, types.Modifier{Kind: types.ModPointer})
			p.advance()
		case lexer.TOKEN_QUESTION:
			mods = append(mods, types.Modifier{Kind: types.ModOptional})
			p.advance()
		case lexer.TOKEN_ELLIPSIS:
			mods = append(mods, types.Modifier{Kind: types.ModVariadic})
			p.advance()
		case lexer.TOKEN_LBRACKET:
			if mod, isArray := p.tryParseArrayModifier(); isArray {
				mods = append(mods, mod)
				continue
			}

			return types.NewType(p.parseTupleTerminator(), mods...)
		default:
			return types.NewType(p.parseTerminator(), mods...)
		}
	}
}

// tryParseArrayModifier consumes a leading '[' and classifies what follows:
// '[]' or '[N]' is a ModArray layer (the loop in parseType continues), '[:]'
// is a ModArraySlice layer, and anything else means the bracket in fact
// opens a TupleType terminator, so it backs out leaving cur positioned on
// the first element for parseTupleTerminator to pick up.
func (p *Parser) tryParseArrayModifier() (types.Modifier, bool) {
	p.advance() // consume '['
	if p.curIs(lexer.TOKEN_RBRACKET) {
		p.advance()

		return types.Modifier{Kind: types.ModArray}, true
	}
	if p.curIs(lexer.TOKEN_COLON) {
		p.advance()
		if !p.curIs(lexer.TOKEN_RBRACKET) {
			p.errs.Addf(p.cur.Line, p.cur.Column, "expected ']' to close array slice modifier, got %s", p.cur.Type)

			return types.Modifier{Kind: types.ModArraySlice}, true
		}
		p.advance()

		return types.Modifier{Kind: types.ModArraySlice}, true
	}
	if p.curIs(lexer.TOKEN_INT) {
		size, err := strconv.Atoi(p.cur.Literal)
		if err != nil {
			p.errs.Addf(p.cur.Line, p.cur.Column, "invalid array size %q", p.cur.Literal)
		}
		p.advance()
		if !p.curIs(lexer.TOKEN_RBRACKET) {
			p.errs.Addf(p.cur.Line, p.cur.Column, "expected ']' to close array modifier, got %s", p.cur.Type)
		} else {
			p.advance()
		}

		return types.Modifier{Kind: types.ModArray, Size: size}, true
	}

	return types.Modifier{}, false
}

// parseTupleTerminator parses the element list of a bracketed tuple type;
// cur is already past the opening '[' when this is called.
func (p *Parser) parseTupleTerminator() types.Terminator {
	var elems []*types.Type
	if !p.curIs(lexer.TOKEN_RBRACKET) {
		elems = append(elems, p.parseType())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			elems = append(elems, p.parseType())
		}
	}
	if !p.curIs(lexer.TOKEN_RBRACKET) {
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected ']' to close tuple type, got %s", p.cur.Type)
	} else {
		p.advance()
	}

	return types.TupleType{Elems: elems}
}

// parseTerminator parses one of the closed set of terminator shapes: a
// named base type, a function signature, auto, or void. Typename has no
// surface spelling of its own; it only appears as the inferred type of a
// bare type-valued expression.
func (p *Parser) parseTerminator() types.Terminator {
	switch p.cur.Type {
	case lexer.TOKEN_AUTO:
		p.advance()

		return types.AutoType{}
	case lexer.TOKEN_VOID:
		p.advance()

		return types.VoidType{}
	case lexer.TOKEN_FUNCTION:
		return p.parseFunctionTerminator()
	case lexer.TOKEN_IDENT:
		decl, ok := p.scope.lookup(p.cur.Literal)
		if !ok || !isTypeDecl(decl) {
			p.errs.Addf(p.cur.Line, p.cur.Column, "%q does not name a type", p.cur.Literal)
			p.advance()

			return types.VoidType{}
		}
		p.advance()

		return types.BaseType{Decl: decl}
	default:
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected a type, got %s", p.cur.Type)

		return types.VoidType{}
	}
}

func (p *Parser) parseFunctionTerminator() types.Terminator {
	p.advance() // consume "function"
	cc := types.CallConvDefault
	if p.curIs(lexer.TOKEN_STRING) {
		switch p.cur.Literal {
		case "c":
			cc = types.CallConvC
		case "fast":
			cc = types.CallConvFast
		case "std":
			cc = types.CallConvStd
		default:
			p.errs.Addf(p.cur.Line, p.cur.Column, "unknown calling convention %q", p.cur.Literal)
		}
		p.advance()
	}
	if !p.curIs(lexer.TOKEN_LPAREN) {
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected '(' in function type, got %s", p.cur.Type)
	} else {
		p.advance()
	}

	var params []*types.Type
	if !p.curIs(lexer.TOKEN_RPAREN) {
		params = append(params, p.parseType())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			params = append(params, p.parseType())
		}
	}
	if !p.curIs(lexer.TOKEN_RPAREN) {
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected ')' in function type, got %s", p.cur.Type)
	} else {
		p.advance()
	}
	if !p.curIs(lexer.TOKEN_ARROW) {
		p.errs.Addf(p.cur.Line, p.cur.Column, "expected '->' in function type, got %s", p.cur.Type)
	} else {
		p.advance()
	}

	return types.FunctionType{CC: cc, Params: params, Return: p.parseType()}
}
