package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Il-Capitano/bozon-sub003/internal/types"
	"github.com/Il-Capitano/bozon-sub003/pkg/lexer"
	"github.com/Il-Capitano/bozon-sub003/pkg/parser"
)

func parseExpr(t *testing.T, src string) types.Expr {
	t.Helper()
	p := parser.New(lexer.New(src))
	e := p.ParseExpression()
	require.False(t, p.Errors().HasErrors(), "unexpected parse errors: %v", p.Errors().Errors())

	return e
}

func TestParseExpression_ArithmeticPrecedence(t *testing.T) {
	e := parseExpr(t, "1 + 2 * 3")
	bin, ok := e.(*types.BinaryExpr)
	require.True(t, ok, "expected *types.BinaryExpr, got %T", e)
	assert.Equal(t, types.BinaryOp("+"), bin.Op)
	_, ok = bin.Left.(*types.IntLiteralExpr)
	assert.True(t, ok)
	rhs, ok := bin.Right.(*types.BinaryExpr)
	require.True(t, ok, "expected right side to be *types.BinaryExpr, got %T", bin.Right)
	assert.Equal(t, types.BinaryOp("*"), rhs.Op)
}

func TestParseExpression_Parenthesized(t *testing.T) {
	e := parseExpr(t, "(1 + 2) * 3")
	bin, ok := e.(*types.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, types.BinaryOp("*"), bin.Op)
	lhs, ok := bin.Left.(*types.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, types.BinaryOp("+"), lhs.Op)
	assert.Equal(t, 1, lhs.ParenLevel)
}

func TestParseExpression_Cast(t *testing.T) {
	e := parseExpr(t, "(int32)3.5")
	cast, ok := e.(*types.CastExpr)
	require.True(t, ok, "expected *types.CastExpr, got %T", e)
	assert.Equal(t, "numeric", cast.Kind)
	assert.Equal(t, "int32", cast.Dest.String())
	_, ok = cast.Operand.(*types.FloatLiteralExpr)
	assert.True(t, ok)
}

func TestParseExpression_BareAmpersandIsGroupedAddressOf(t *testing.T) {
	// A single '&' right after '(' is treated as address-of inside a
	// grouped expression, not a reference-type cast prefix: only '&&'
	// (move-reference) is unambiguous enough to start a type here.
	p := parser.New(lexer.New("(&x)"))
	e := p.ParseExpression()
	_, ok := e.(*types.CastExpr)
	assert.False(t, ok, "expected a grouped unary expression, not a cast, got %T", e)
}

func TestParseExpression_IfThenElse(t *testing.T) {
	e := parseExpr(t, "if consteval true then 1 else 2")
	ifE, ok := e.(*types.IfExpr)
	require.True(t, ok, "expected *types.IfExpr, got %T", e)
	assert.True(t, ifE.IfConsteval)
	_, ok = ifE.Then.(*types.IntLiteralExpr)
	assert.True(t, ok)
}

func TestParseExpression_Switch(t *testing.T) {
	e := parseExpr(t, "switch 1 { 1, 2 -> 10; else -> 20; }")
	sw, ok := e.(*types.SwitchExpr)
	require.True(t, ok, "expected *types.SwitchExpr, got %T", e)
	require.Len(t, sw.Arms, 1)
	assert.Len(t, sw.Arms[0].Values, 2)
	require.NotNil(t, sw.Default)
}

func TestParseExpression_CompoundBlock(t *testing.T) {
	e := parseExpr(t, "{ 1; 2; 3 }")
	block, ok := e.(*types.CompoundExpr)
	require.True(t, ok, "expected *types.CompoundExpr, got %T", e)
	assert.Len(t, block.Stmts, 2)
	assert.True(t, block.IsPureFinalExpression() == false)
	require.NotNil(t, block.Final)
}

func TestParseExpression_TupleLiteralAndSubscript(t *testing.T) {
	e := parseExpr(t, "[1, 2, 3][0]")
	sub, ok := e.(*types.SubscriptExpr)
	require.True(t, ok, "expected *types.SubscriptExpr, got %T", e)
	tuple, ok := sub.Array.(*types.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tuple.Elems, 3)
}

func TestParseExpression_UndefinedIdentifierReported(t *testing.T) {
	p := parser.New(lexer.New("undefined_name"))
	p.ParseExpression()
	assert.True(t, p.Errors().HasErrors())
}

func TestParseProgram_StructAndFunction(t *testing.T) {
	src := `
struct Point { x: int32, y: int32 }

function add(a: int32, b: int32) -> int32 { a + b }
`
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	require.False(t, p.Errors().HasErrors(), "unexpected parse errors: %v", p.Errors().Errors())
	require.Len(t, prog.Declarations, 2)

	structDecl, ok := prog.Declarations[0].(*types.StructDecl)
	require.True(t, ok, "expected *types.StructDecl, got %T", prog.Declarations[0])
	assert.Equal(t, "Point", structDecl.Name)
	require.Len(t, structDecl.Fields, 2)
	assert.Equal(t, "x", structDecl.Fields[0].Name)

	funcDecl, ok := prog.Declarations[1].(*types.FuncDecl)
	require.True(t, ok, "expected *types.FuncDecl, got %T", prog.Declarations[1])
	assert.Equal(t, "add", funcDecl.Name)
	require.Len(t, funcDecl.Parameters, 2)
	require.NotNil(t, funcDecl.Body)
	assert.True(t, funcDecl.Body.IsPureFinalExpression())
}

func TestParseProgram_ConstevalFunctionAndVarDecl(t *testing.T) {
	src := `
consteval function double(n: int32) -> int32 { n * 2 }

let consteval answer: int32 = double(21);
`
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	require.False(t, p.Errors().HasErrors(), "unexpected parse errors: %v", p.Errors().Errors())
	require.Len(t, prog.Declarations, 2)

	funcDecl, ok := prog.Declarations[0].(*types.FuncDecl)
	require.True(t, ok)
	assert.True(t, funcDecl.Consteval)

	varDecl, ok := prog.Declarations[1].(*types.VarDecl)
	require.True(t, ok, "expected *types.VarDecl, got %T", prog.Declarations[1])
	assert.True(t, varDecl.Consteval)
	call, ok := varDecl.Initializer.(*types.CallExpr)
	require.True(t, ok, "expected *types.CallExpr initializer, got %T", varDecl.Initializer)
	callee, ok := call.Callee.(*types.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "double", callee.Name)
}
