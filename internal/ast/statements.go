package ast

import (
	"fmt"
	"strings"

	"github.com/axon-lang/axon/internal/token"
)

// LetStmt binds Expr's value to Name, both for `let name = expr;` and for a
// bare `name = expr;` reassignment — the grammar treats them identically.
type LetStmt struct {
	Expr  Expression
	Token token.Token
	Name  string
}

func (l *LetStmt) statementNode()    {}
func (l *LetStmt) Pos() token.Position { return l.Token.Pos }
func (l *LetStmt) String() string    { return fmt.Sprintf("let %s = %s;", l.Name, l.Expr.String()) }

// PrintStmt is `print(expr);`.
type PrintStmt struct {
	Expr  Expression
	Token token.Token
}

func (p *PrintStmt) statementNode()    {}
func (p *PrintStmt) Pos() token.Position { return p.Token.Pos }
func (p *PrintStmt) String() string    { return fmt.Sprintf("print(%s);", p.Expr.String()) }

// ClearStmt is `cls;`.
type ClearStmt struct {
	Token token.Token
}

func (c *ClearStmt) statementNode()    {}
func (c *ClearStmt) Pos() token.Position { return c.Token.Pos }
func (c *ClearStmt) String() string    { return "cls;" }

// Block is a brace-delimited statement sequence.
type Block struct {
	Statements []Statement
}

func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// IfStmt is `if (cond) { Then } [else { Else }]`. Else is nil when absent.
type IfStmt struct {
	Cond  Expression
	Then  *Block
	Else  *Block
	Token token.Token
}

func (i *IfStmt) statementNode()    {}
func (i *IfStmt) Pos() token.Position { return i.Token.Pos }
func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("if (%s) %s else %s", i.Cond.String(), i.Then.String(), i.Else.String())
	}
	return fmt.Sprintf("if (%s) %s", i.Cond.String(), i.Then.String())
}

// WhileStmt is `while (cond) { Body }`.
type WhileStmt struct {
	Cond  Expression
	Body  *Block
	Token token.Token
}

func (w *WhileStmt) statementNode()    {}
func (w *WhileStmt) Pos() token.Position { return w.Token.Pos }
func (w *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", w.Cond.String(), w.Body.String())
}

// ForStmt is `for Var = Start; End { Body }` — a half-open integer range
// [Start, End).
type ForStmt struct {
	Start Expression
	End   Expression
	Body  *Block
	Token token.Token
	Var   string
}

func (f *ForStmt) statementNode()    {}
func (f *ForStmt) Pos() token.Position { return f.Token.Pos }
func (f *ForStmt) String() string {
	return fmt.Sprintf("for %s = %s; %s %s", f.Var, f.Start.String(), f.End.String(), f.Body.String())
}

// BreakStmt is `break;`.
type BreakStmt struct {
	Token token.Token
}

func (b *BreakStmt) statementNode()    {}
func (b *BreakStmt) Pos() token.Position { return b.Token.Pos }
func (b *BreakStmt) String() string    { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Token token.Token
}

func (c *ContinueStmt) statementNode()    {}
func (c *ContinueStmt) Pos() token.Position { return c.Token.Pos }
func (c *ContinueStmt) String() string    { return "continue;" }

// FnStmt is `fn name(params) { Body }`. It is a statement, so it may appear
// in any block; Axon has no function literals in expression position.
type FnStmt struct {
	Body   *Block
	Token  token.Token
	Name   string
	Params []string
}

func (f *FnStmt) statementNode()    {}
func (f *FnStmt) Pos() token.Position { return f.Token.Pos }
func (f *FnStmt) String() string {
	return fmt.Sprintf("fn %s(%s) %s", f.Name, strings.Join(f.Params, ", "), f.Body.String())
}

// ReturnStmt is `return expr;`.
type ReturnStmt struct {
	Expr  Expression
	Token token.Token
}

func (r *ReturnStmt) statementNode()    {}
func (r *ReturnStmt) Pos() token.Position { return r.Token.Pos }
func (r *ReturnStmt) String() string {
	if r.Expr == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Expr.String())
}

// ExprStmt is an expression evaluated for side effects (e.g. a call),
// terminated by ';'.
type ExprStmt struct {
	Expr  Expression
	Token token.Token
}

func (e *ExprStmt) statementNode()    {}
func (e *ExprStmt) Pos() token.Position { return e.Token.Pos }
func (e *ExprStmt) String() string    { return e.Expr.String() + ";" }
