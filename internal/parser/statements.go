package parser

import (
	"github.com/axon-lang/axon/internal/ast"
	"github.com/axon-lang/axon/internal/token"
)

// parseStatement dispatches on the leading keyword. An IDENT followed by
// '=' is a bare assignment; anything else starting an
// expression is an expression-statement terminated by ';'.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.CLS:
		return p.parseClearStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FN:
		return p.parseFnStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.IDENT:
		if p.peekIs(token.EQ) {
			return p.parseAssignStatement()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'let'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Token: tok, Name: nameTok.Lexeme, Expr: expr}, nil
}

// parseAssignStatement parses `IDENT = expr ;`, the bare-assignment form,
// which the compiler treats identically to `let`.
func (p *Parser) parseAssignStatement() (ast.Statement, error) {
	nameTok := p.curTok
	tok := p.curTok
	p.next() // consume IDENT
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Token: tok, Name: nameTok.Lexeme, Expr: expr}, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'print'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Token: tok, Expr: expr}, nil
}

func (p *Parser) parseClearStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'cls'
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ClearStmt{Token: tok}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			return nil, &ParseError{Pos: p.curTok.Pos, Message: "unterminated block, expected }"}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.next() // consume '}'
	return block, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'if'
	// Parentheses around the condition are optional: `(cond)` parses as an
	// ordinary grouped expression.
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.next()
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}, nil
}

// parseForStatement parses `for IDENT = expr ; expr { block }`, the
// half-open integer range form.
func (p *Parser) parseForStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'for'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Token: tok, Var: nameTok.Lexeme, Start: start, End: end, Body: body}, nil
}

func (p *Parser) parseFnStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'fn'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for !p.curIs(token.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		paramTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, paramTok.Lexeme)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FnStmt{Token: tok, Name: nameTok.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next() // consume 'return'
	if p.curIs(token.SEMICOLON) {
		p.next()
		return &ast.ReturnStmt{Token: tok}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Token: tok, Expr: expr}, nil
}

func (p *Parser) parseBreakStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.BreakStmt{Token: tok}, nil
}

func (p *Parser) parseContinueStatement() (ast.Statement, error) {
	tok := p.curTok
	p.next()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ContinueStmt{Token: tok}, nil
}

func (p *Parser) parseExprStatement() (ast.Statement, error) {
	tok := p.curTok
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		pe := err.(*ParseError)
		return nil, &ParseError{Pos: pe.Pos, Message: pe.Message + " (expression statements must end with ';')"}
	}
	return &ast.ExprStmt{Token: tok, Expr: expr}, nil
}
