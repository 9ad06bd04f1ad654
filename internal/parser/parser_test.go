package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-lang/axon/internal/ast"
	"github.com/axon-lang/axon/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	return prog
}

func TestParseLetAndPrint(t *testing.T) {
	prog := parse(t, `let x = 5; print(x);`)
	require.Len(t, prog.Statements, 2)

	let, ok := prog.Statements[0].(*ast.LetStmt)
	require.True(t, ok)
	require.Equal(t, "x", let.Name)

	pr, ok := prog.Statements[1].(*ast.PrintStmt)
	require.True(t, ok)
	_, isVar := pr.Expr.(*ast.VarExpr)
	require.True(t, isVar)
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parse(t, `let x = 1 + 2 * 3;`)
	let := prog.Statements[0].(*ast.LetStmt)
	bin := let.Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpAdd, bin.Op)
	require.IsType(t, &ast.NumberLit{}, bin.Left)
	mul := bin.Right.(*ast.BinOpExpr)
	require.Equal(t, ast.OpMul, mul.Op)
}

func TestLeftAssociativity(t *testing.T) {
	prog := parse(t, `let x = 10 - 3 - 2;`)
	let := prog.Statements[0].(*ast.LetStmt)
	outer := let.Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpSub, outer.Op)
	inner := outer.Left.(*ast.BinOpExpr)
	require.Equal(t, ast.OpSub, inner.Op)
	require.IsType(t, &ast.NumberLit{}, outer.Right)
}

func TestIfElse(t *testing.T) {
	prog := parse(t, `if (x == 1) { print(1); } else { print(2); }`)
	ifs := prog.Statements[0].(*ast.IfStmt)
	require.NotNil(t, ifs.Else)
	require.Len(t, ifs.Then.Statements, 1)
	require.Len(t, ifs.Else.Statements, 1)
}

func TestWhileLoop(t *testing.T) {
	prog := parse(t, `while (x < 10) { x = x + 1; }`)
	w := prog.Statements[0].(*ast.WhileStmt)
	require.NotNil(t, w.Cond)
	require.Len(t, w.Body.Statements, 1)
}

func TestForLoop(t *testing.T) {
	prog := parse(t, `for i = 0; 5 { print(i); }`)
	f := prog.Statements[0].(*ast.ForStmt)
	require.Equal(t, "i", f.Var)
	require.IsType(t, &ast.NumberLit{}, f.Start)
	require.IsType(t, &ast.NumberLit{}, f.End)
}

func TestFunctionDeclAndReturn(t *testing.T) {
	prog := parse(t, `fn add(a, b) { return a + b; }`)
	fn := prog.Statements[0].(*ast.FnStmt)
	require.Equal(t, "add", fn.Name)
	require.Equal(t, []string{"a", "b"}, fn.Params)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	require.NotNil(t, ret.Expr)
}

func TestCallExpression(t *testing.T) {
	prog := parse(t, `print(add(2, 3));`)
	pr := prog.Statements[0].(*ast.PrintStmt)
	call := pr.Expr.(*ast.CallExpr)
	require.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestListAndDictLiterals(t *testing.T) {
	prog := parse(t, `let arr = [1, 2, 3]; let d = {"a": 1, "b": 2};`)
	list := prog.Statements[0].(*ast.LetStmt).Expr.(*ast.ListExpr)
	require.Len(t, list.Elements, 3)
	dict := prog.Statements[1].(*ast.LetStmt).Expr.(*ast.DictExpr)
	require.Len(t, dict.Entries, 2)
}

func TestIndexExpression(t *testing.T) {
	prog := parse(t, `print(arr[1]);`)
	pr := prog.Statements[0].(*ast.PrintStmt)
	idx := pr.Expr.(*ast.IndexExpr)
	require.IsType(t, &ast.VarExpr{}, idx.Collection)
}

func TestBareAssignmentIsLet(t *testing.T) {
	prog := parse(t, `x = 5;`)
	require.IsType(t, &ast.LetStmt{}, prog.Statements[0])
}

func TestMissingSemicolonIsParseError(t *testing.T) {
	p := New(lexer.New(`let x = 5`))
	_, err := p.ParseProgram()
	require.Error(t, err)
	require.IsType(t, &ParseError{}, err)
}

func TestUnaryAndLogical(t *testing.T) {
	prog := parse(t, `let x = not a and -b or c;`)
	let := prog.Statements[0].(*ast.LetStmt)
	or := let.Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpOr, or.Op)
	and := or.Left.(*ast.BinOpExpr)
	require.Equal(t, ast.OpAnd, and.Op)
	require.IsType(t, &ast.UnaryOpExpr{}, and.Left)
}

func TestCommentsAndWhitespaceDoNotAffectStructure(t *testing.T) {
	a := parse(t, "let x=1;print(x);")
	b := parse(t, "let x = 1; // set x\n  print(x);  ")
	require.Equal(t, len(a.Statements), len(b.Statements))
	require.Equal(t, a.String(), b.String())
}
