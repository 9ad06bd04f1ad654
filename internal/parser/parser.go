// Package parser implements Axon's recursive-descent parser: token stream
// to AST.
package parser

import (
	"fmt"

	"github.com/axon-lang/axon/internal/ast"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/token"
)

// ParseError reports a missing or unexpected token. The parser never
// silently recovers: the first error aborts Parse.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError: %s at %s", e.Message, e.Pos)
}

// Parser consumes tokens from a lexer.Lexer one at a time, with one token of
// lookahead (peekTok), and builds an *ast.Program.
type Parser struct {
	l        *lexer.Lexer
	errors   []string
	curTok   token.Token
	peekTok  token.Token
}

// New constructs a Parser over l, priming curTok/peekTok.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every error message accumulated by ParseProgramCollectingErrors.
// Errors returns the accumulated multi-error diagnostics from a call to
// ParseProgramCollectingErrors. The embedder-facing Parse (see package
// axon) instead returns the first *ParseError directly.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curTok.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekTok.Type == t }

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.curIs(t) {
		return token.Token{}, &ParseError{
			Pos:     p.curTok.Pos,
			Message: fmt.Sprintf("expected %s, got %s (%q)", t, p.curTok.Type, p.curTok.Lexeme),
		}
	}
	tok := p.curTok
	p.next()
	return tok, nil
}

// ParseProgram parses the whole token stream, stopping at the first error.
// This is the shape the embedder API's Parse wraps directly.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// ParseProgramCollectingErrors parses as much of the program as possible,
// recording every statement-level error instead of stopping at the first
// one. Intended for tooling (formatters, IDE diagnostics), not the three
// required embedder entry points.
func (p *Parser) ParseProgramCollectingErrors() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err.Error())
			p.synchronize()
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog
}

// synchronize discards tokens up to the next statement boundary so that
// ParseProgramCollectingErrors can keep finding further errors after one.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.next()
			return
		}
		if p.curIs(token.RBRACE) {
			return
		}
		p.next()
	}
}
