package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/axon-lang/axon/internal/token"
)

// BinaryOp and UnaryOp enumerate the operator spellings the parser and
// compiler pass between each other, independent of token.Type so that
// constant-folding and disassembly don't need to reach back into the
// lexer's token package.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "not"
	}
	return "-"
}

// NumberLit is either an integer or a float literal, distinguished by
// IsFloat. The lexer decides the kind from the presence of '.'.
type NumberLit struct {
	Token    token.Token
	IntVal   int64
	FloatVal float64
	IsFloat  bool
}

func (n *NumberLit) expressionNode()      {}
func (n *NumberLit) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLit) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.FloatVal, 'g', -1, 64)
	}
	return strconv.FormatInt(n.IntVal, 10)
}

// StringLit is a decoded string literal (quotes stripped, escapes decoded
// by the lexer already).
type StringLit struct {
	Token token.Token
	Value string
}

func (s *StringLit) expressionNode()     {}
func (s *StringLit) Pos() token.Position { return s.Token.Pos }
func (s *StringLit) String() string      { return strconv.Quote(s.Value) }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (b *BoolLit) expressionNode()     {}
func (b *BoolLit) Pos() token.Position { return b.Token.Pos }
func (b *BoolLit) String() string      { return strconv.FormatBool(b.Value) }

// VarExpr references a bound name.
type VarExpr struct {
	Token token.Token
	Name  string
}

func (v *VarExpr) expressionNode()     {}
func (v *VarExpr) Pos() token.Position { return v.Token.Pos }
func (v *VarExpr) String() string      { return v.Name }

// BinOpExpr is a left-associative binary operator application.
type BinOpExpr struct {
	Left  Expression
	Right Expression
	Token token.Token
	Op    BinaryOp
}

func (b *BinOpExpr) expressionNode()     {}
func (b *BinOpExpr) Pos() token.Position { return b.Token.Pos }
func (b *BinOpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

// UnaryOpExpr is a prefix unary operator application.
type UnaryOpExpr struct {
	Expr  Expression
	Token token.Token
	Op    UnaryOp
}

func (u *UnaryOpExpr) expressionNode()     {}
func (u *UnaryOpExpr) Pos() token.Position { return u.Token.Pos }
func (u *UnaryOpExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op.String(), u.Expr.String())
}

// ListExpr is a `[a, b, c]` literal.
type ListExpr struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListExpr) expressionNode()     {}
func (l *ListExpr) Pos() token.Position { return l.Token.Pos }
func (l *ListExpr) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictEntry is one `key: value` pair inside a DictExpr.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictExpr is a `{k: v, ...}` literal.
type DictExpr struct {
	Token   token.Token
	Entries []DictEntry
}

func (d *DictExpr) expressionNode()     {}
func (d *DictExpr) Pos() token.Position { return d.Token.Pos }
func (d *DictExpr) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// IndexExpr is `collection[index]`.
type IndexExpr struct {
	Collection Expression
	Index      Expression
	Token      token.Token
}

func (i *IndexExpr) expressionNode()     {}
func (i *IndexExpr) Pos() token.Position { return i.Token.Pos }
func (i *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", i.Collection.String(), i.Index.String())
}

// CallExpr is `name(args...)`. Axon has no first-class function values at
// the call site — CALL_FUNCTION always resolves a name.
type CallExpr struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (c *CallExpr) expressionNode()     {}
func (c *CallExpr) Pos() token.Position { return c.Token.Pos }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}
