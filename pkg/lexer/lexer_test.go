package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
)

func tokenTypes(t *testing.T, input string) []lexer.TokenType {
	t.Helper()
	l := lexer.New(input)
	var out []lexer.TokenType
	for {
		tok := l.NextToken()
		out = append(out, tok.Type)
		if tok.Type == lexer.TOKEN_EOF {
			break
		}
	}

	return out
}

func TestLexer_ArithmeticExpression(t *testing.T) {
	toks := tokenTypes(t, "1 + 2 * (3 - 4)")
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_INT, lexer.TOKEN_PLUS, lexer.TOKEN_INT, lexer.TOKEN_STAR,
		lexer.TOKEN_LPAREN, lexer.TOKEN_INT, lexer.TOKEN_MINUS, lexer.TOKEN_INT, lexer.TOKEN_RPAREN,
		lexer.TOKEN_EOF,
	}, toks)
}

func TestLexer_TypeModifierTokens(t *testing.T) {
	toks := tokenTypes(t, "&mut [3]?i32")
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_AMP, lexer.TOKEN_MUT, lexer.TOKEN_LBRACKET, lexer.TOKEN_INT, lexer.TOKEN_RBRACKET,
		lexer.TOKEN_QUESTION, lexer.TOKEN_IDENT, lexer.TOKEN_EOF,
	}, toks)
}

func TestLexer_ReferenceAndAutoReference(t *testing.T) {
	toks := tokenTypes(t, "&& # #mut ...")
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_AMPAMP, lexer.TOKEN_HASH, lexer.TOKEN_HASH, lexer.TOKEN_MUT, lexer.TOKEN_ELLIPSIS,
		lexer.TOKEN_EOF,
	}, toks)
}

func TestLexer_Keywords(t *testing.T) {
	toks := tokenTypes(t, "if consteval then else switch auto void mut const function let struct enum")
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_IF, lexer.TOKEN_CONSTEVAL, lexer.TOKEN_THEN, lexer.TOKEN_ELSE, lexer.TOKEN_SWITCH,
		lexer.TOKEN_AUTO, lexer.TOKEN_VOID, lexer.TOKEN_MUT, lexer.TOKEN_CONST, lexer.TOKEN_FUNCTION,
		lexer.TOKEN_LET, lexer.TOKEN_STRUCT, lexer.TOKEN_ENUM, lexer.TOKEN_EOF,
	}, toks)
}

func TestLexer_StringLiteral(t *testing.T) {
	l := lexer.New(`"hello \"world\""`)
	tok := l.NextToken()
	assert.Equal(t, lexer.TOKEN_STRING, tok.Type)
	assert.Equal(t, `hello \"world\"`, tok.Literal)
}

func TestLexer_CharLiteral(t *testing.T) {
	l := lexer.New(`'a' '\n'`)
	tok := l.NextToken()
	assert.Equal(t, lexer.TOKEN_CHAR, tok.Type)
	assert.Equal(t, "a", tok.Literal)
	tok = l.NextToken()
	assert.Equal(t, lexer.TOKEN_CHAR, tok.Type)
	assert.Equal(t, `\n`, tok.Literal)
}

func TestLexer_FloatVsMemberAccess(t *testing.T) {
	toks := tokenTypes(t, "x.field 3.14")
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_IDENT, lexer.TOKEN_DOT, lexer.TOKEN_IDENT, lexer.TOKEN_FLOAT, lexer.TOKEN_EOF,
	}, toks)
}

func TestLexer_Comments(t *testing.T) {
	toks := tokenTypes(t, "1 // line comment\n+ /* block */ 2")
	assert.Equal(t, []lexer.TokenType{lexer.TOKEN_INT, lexer.TOKEN_PLUS, lexer.TOKEN_INT, lexer.TOKEN_EOF}, toks)
}

func TestLexer_IllegalCharacter(t *testing.T) {
	l := lexer.New("@")
	tok := l.NextToken()
	assert.Equal(t, lexer.TOKEN_ILLEGAL, tok.Type)
	assert.Equal(t, "@", tok.Literal)
}

func TestLexer_LineColumnTracking(t *testing.T) {
	l := lexer.New("a\nbb")
	first := l.NextToken()
	assert.Equal(t, 1, first.Line)
	second := l.NextToken()
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Column)
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "PLUS", lexer.TOKEN_PLUS.String())
	assert.Contains(t, lexer.TokenType(9999).String(), "TokenType")
}
