package parser

import (
	"strconv"
	"strings"

	"github.com/axon-lang/axon/internal/ast"
	"github.com/axon-lang/axon/internal/token"
)

// The expression grammar below is one parse method per precedence level,
// from lowest (or_expr) to highest (primary).
// All binary operators are left-associative, built with the standard
// left-fold-over-a-loop shape.

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OR) {
		tok := p.curTok
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExpr{Token: tok, Left: left, Op: ast.OpOr, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.AND) {
		tok := p.curTok
		p.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExpr{Token: tok, Left: left, Op: ast.OpAnd, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.EQEQ) || p.curIs(token.NEQ) {
		tok := p.curTok
		op := ast.OpEq
		if tok.Type == token.NEQ {
			op = ast.OpNe
		}
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExpr{Token: tok, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.LT) || p.curIs(token.LE) || p.curIs(token.GT) || p.curIs(token.GE) {
		tok := p.curTok
		var op ast.BinaryOp
		switch tok.Type {
		case token.LT:
			op = ast.OpLt
		case token.LE:
			op = ast.OpLe
		case token.GT:
			op = ast.OpGt
		default:
			op = ast.OpGe
		}
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExpr{Token: tok, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		tok := p.curTok
		op := ast.OpAdd
		if tok.Type == token.MINUS {
			op = ast.OpSub
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExpr{Token: tok, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.PERCENT) {
		tok := p.curTok
		var op ast.BinaryOp
		switch tok.Type {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExpr{Token: tok, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curIs(token.MINUS) || p.curIs(token.NOT) {
		tok := p.curTok
		op := ast.OpNeg
		if tok.Type == token.NOT {
			op = ast.OpNot
		}
		p.next()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Token: tok, Op: op, Expr: expr}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles chained call/index suffixes: a()[0](1)[2] ...
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.curTok.Type {
		case token.LPAREN:
			expr, err = p.parseCallSuffix(expr)
		case token.LBRACKET:
			expr, err = p.parseIndexSuffix(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseCallSuffix parses `(args...)` applied to expr. A Call node carries a
// bare name, so expr must be a VarExpr — first-class function values are
// not part of Axon.
func (p *Parser) parseCallSuffix(expr ast.Expression) (ast.Expression, error) {
	tok := p.curTok
	name, ok := expr.(*ast.VarExpr)
	if !ok {
		return nil, &ParseError{Pos: tok.Pos, Message: "call target must be a function name"}
	}
	p.next() // consume '('
	var args []ast.Expression
	for !p.curIs(token.RPAREN) {
		if len(args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Token: tok, Name: name.Name, Args: args}, nil
}

func (p *Parser) parseIndexSuffix(expr ast.Expression) (ast.Expression, error) {
	tok := p.curTok
	p.next() // consume '['
	idx, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.IndexExpr{Token: tok, Collection: expr, Index: idx}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.curTok.Type {
	case token.NUMBER:
		return p.parseNumber()
	case token.STRING:
		tok := p.curTok
		p.next()
		return &ast.StringLit{Token: tok, Value: tok.Lexeme}, nil
	case token.TRUE, token.FALSE:
		tok := p.curTok
		p.next()
		return &ast.BoolLit{Token: tok, Value: tok.Type == token.TRUE}, nil
	case token.IDENT:
		tok := p.curTok
		p.next()
		return &ast.VarExpr{Token: tok, Name: tok.Lexeme}, nil
	case token.LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.LBRACE:
		return p.parseDictLiteral()
	default:
		return nil, &ParseError{
			Pos:     p.curTok.Pos,
			Message: "unexpected token " + p.curTok.Type.String() + " (" + p.curTok.Lexeme + ") in expression",
		}
	}
}

func (p *Parser) parseNumber() (ast.Expression, error) {
	tok := p.curTok
	p.next()
	if strings.Contains(tok.Lexeme, ".") {
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &ParseError{Pos: tok.Pos, Message: "invalid float literal " + tok.Lexeme}
		}
		return &ast.NumberLit{Token: tok, IsFloat: true, FloatVal: f}, nil
	}
	i, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return nil, &ParseError{Pos: tok.Pos, Message: "invalid integer literal " + tok.Lexeme}
	}
	return &ast.NumberLit{Token: tok, IntVal: i}, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.curTok
	p.next() // consume '['
	list := &ast.ListExpr{Token: tok}
	for !p.curIs(token.RBRACKET) {
		if len(list.Elements) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, elem)
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	tok := p.curTok
	p.next() // consume '{'
	dict := &ast.DictExpr{Token: tok}
	for !p.curIs(token.RBRACE) {
		if len(dict.Entries) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		dict.Entries = append(dict.Entries, ast.DictEntry{Key: key, Value: val})
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return dict, nil
}
