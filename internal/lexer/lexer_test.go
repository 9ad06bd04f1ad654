package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-lang/axon/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `let x = 5;
	x = x + 10; // comment
	print(x);`

	tests := []struct {
		lexeme string
		typ    token.Type
	}{
		{"let", token.LET},
		{"x", token.IDENT},
		{"=", token.EQ},
		{"5", token.NUMBER},
		{";", token.SEMICOLON},
		{"x", token.IDENT},
		{"=", token.EQ},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{";", token.SEMICOLON},
		{"print", token.PRINT},
		{"(", token.LPAREN},
		{"x", token.IDENT},
		{")", token.RPAREN},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		require.Equalf(t, tt.typ, tok.Type, "token %d lexeme=%q", i, tok.Lexeme)
		require.Equalf(t, tt.lexeme, tok.Lexeme, "token %d", i)
	}
}

func TestKeywords(t *testing.T) {
	input := "let if else while for break continue fn return true false cls and or not"
	want := []token.Type{
		token.LET, token.IF, token.ELSE, token.WHILE, token.FOR, token.BREAK,
		token.CONTINUE, token.FN, token.RETURN, token.TRUE, token.FALSE,
		token.CLS, token.AND, token.OR, token.NOT, token.EOF,
	}
	l := New(input)
	for i, typ := range want {
		tok := l.NextToken()
		require.Equalf(t, typ, tok.Type, "token %d", i)
	}
}

func TestMultiCharOperatorsWinOverPrefixes(t *testing.T) {
	input := "== != <= >= = < >"
	want := []token.Type{
		token.EQEQ, token.NEQ, token.LE, token.GE, token.EQ, token.LT, token.GT, token.EOF,
	}
	l := New(input)
	for i, typ := range want {
		tok := l.NextToken()
		require.Equalf(t, typ, tok.Type, "token %d", i)
	}
}

func TestNumberKind(t *testing.T) {
	l := New("42 3.14 7.")
	tok := l.NextToken()
	require.Equal(t, "42", tok.Lexeme)
	tok = l.NextToken()
	require.Equal(t, "3.14", tok.Lexeme)
	tok = l.NextToken()
	require.Equal(t, "7", tok.Lexeme, "trailing dot with no following digit is not part of the number")
}

func TestStringEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\"\\end"`)
	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "hello\nworld\t\"quoted\"\\end", tok.Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	l.NextToken()
	require.Len(t, l.Errors(), 1)
}

func TestIllegalCharacter(t *testing.T) {
	l := New("let x = 5 $ 6;")
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	require.Len(t, l.Errors(), 1)
}

func TestPeekLookahead(t *testing.T) {
	l := New("a b c")
	require.Equal(t, "a", l.Peek(0).Lexeme)
	require.Equal(t, "b", l.Peek(1).Lexeme)
	require.Equal(t, "c", l.Peek(2).Lexeme)
	require.Equal(t, "a", l.NextToken().Lexeme)
	require.Equal(t, "b", l.NextToken().Lexeme)
}

func TestLineCommentsDiscarded(t *testing.T) {
	l := New("let x = 1; // rest of line is ignored\nlet y = 2;")
	var kinds []token.Type
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	require.NotContains(t, kinds, token.ILLEGAL)
}

func TestUnicodeIdentifierColumns(t *testing.T) {
	l := New("let café = 1;")
	l.NextToken() // let
	tok := l.NextToken()
	require.Equal(t, "café", tok.Lexeme)
	// 'é' is two bytes but one column, so '=' sits at rune column 10.
	require.Equal(t, 10, l.NextToken().Pos.Column)
}
