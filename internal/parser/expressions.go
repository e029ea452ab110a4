package parser

import (
	"strconv"

	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/token"
)

// parseExpression is the grammar's entry point (lowest precedence: or).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.ok() && p.curTokenIs(token.OR) {
		tok := p.curToken
		p.nextToken()
		right := p.parseAnd()
		if !p.ok() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Operator: "or", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.ok() && p.curTokenIs(token.AND) {
		tok := p.curToken
		p.nextToken()
		right := p.parseEquality()
		if !p.ok() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Operator: "and", Left: left, Right: right}
	}
	return left
}

// parseEquality admits at most one ==/!= at this level (spec §4.1:
// equality is non-associative).
func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	if !p.ok() {
		return nil
	}
	if p.curTokenIs(token.EQ) || p.curTokenIs(token.NOT_EQ) {
		tok := p.curToken
		op := tok.Literal
		p.nextToken()
		right := p.parseRelational()
		if !p.ok() {
			return nil
		}
		return &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

// parseRelational admits at most one </>/<=/>= at this level.
func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	if !p.ok() {
		return nil
	}
	switch p.curToken.Type {
	case token.LT, token.GT, token.LTE, token.GTE:
		tok := p.curToken
		op := tok.Literal
		p.nextToken()
		right := p.parseAdditive()
		if !p.ok() {
			return nil
		}
		return &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.ok() && (p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS)) {
		tok := p.curToken
		op := tok.Literal
		p.nextToken()
		right := p.parseMultiplicative()
		if !p.ok() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.ok() && (p.curTokenIs(token.ASTERISK) || p.curTokenIs(token.SLASH)) {
		tok := p.curToken
		op := tok.Literal
		p.nextToken()
		right := p.parseUnary()
		if !p.ok() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curTokenIs(token.NOT) || p.curTokenIs(token.MINUS) {
		tok := p.curToken
		op := tok.Literal
		p.nextToken()
		right := p.parseUnary()
		if !p.ok() {
			return nil
		}
		return &ast.UnaryExpression{Token: tok, Operator: op, Right: right}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.failf("unexpected token %s %q in expression", p.curToken.Type, p.curToken.Literal)
		return nil
	}
	return prefix()
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.curToken
	name := p.curToken.Literal
	p.nextToken()

	if p.curTokenIs(token.LPAREN) {
		p.nextToken()
		call := &ast.CallExpression{Token: tok, Function: name}
		for !p.curTokenIs(token.RPAREN) {
			arg := p.parseExpression()
			if !p.ok() {
				return call
			}
			call.Arguments = append(call.Arguments, arg)
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
		return call
	}

	var expr ast.Expression = &ast.Identifier{Token: tok, Name: name}
	for p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		idx := p.parseExpression()
		if !p.ok() {
			return expr
		}
		if !p.expect(token.RBRACKET) {
			return expr
		}
		expr = &ast.IndexExpression{Token: tok, Array: expr, Index: idx}
	}
	return expr
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.failf("invalid integer literal %q", tok.Literal)
		return nil
	}
	p.nextToken()
	return &ast.IntegerLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.failf("invalid float literal %q", tok.Literal)
		return nil
	}
	p.nextToken()
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('
	exp := p.parseExpression()
	if !p.ok() {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '['
	lit := &ast.ArrayLiteral{Token: tok}
	for !p.curTokenIs(token.RBRACKET) {
		el := p.parseExpression()
		if !p.ok() {
			return lit
		}
		lit.Elements = append(lit.Elements, el)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseReadExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.ReadExpression{Token: tok}
}

func (p *Parser) parseReadCSVExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return nil
	}
	path := p.parseExpression()
	if !p.ok() {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.ReadCSVExpression{Token: tok, Path: path}
}

func (p *Parser) parseDataframeOp() ast.Expression {
	tok := p.curToken
	op := tok.Literal
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return nil
	}
	node := &ast.DataframeOpExpression{Token: tok, Op: op}
	node.Dataframe = p.parseExpression()
	if !p.ok() {
		return nil
	}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		arg := p.parseExpression()
		if !p.ok() {
			return nil
		}
		node.Args = append(node.Args, arg)
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return node
}
