// Package ast defines the Abstract Syntax Tree node types produced by the
// Axon parser and consumed by the bytecode compiler.
//
// Nodes are immutable once constructed: the parser builds a tree and hands
// ownership to the compiler, which only reads it.
package ast

import (
	"strings"

	"github.com/axon-lang/axon/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is a node that produces a value when compiled and executed.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action without itself producing a
// value on the evaluation stack (the compiler balances the stack around it).
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the tree: a flat sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
