package parser

import (
	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/token"
)

// ParseProgram parses global_assignment* function* main_function EOI.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for p.ok() && p.curTokenIs(token.IDENT) && p.isAssignmentAhead() {
		prog.Globals = append(prog.Globals, p.parseAssignStatement())
	}
	for p.ok() && p.curTokenIs(token.GLOBAL) {
		prog.Globals = append(prog.Globals, p.parseAssignStatement())
	}

	for p.ok() && p.curTokenIs(token.FUNC) {
		fn := p.parseFunction()
		if !p.ok() {
			return prog
		}
		if fn.Name == "main" {
			prog.Main = fn
			break
		}
		prog.Functions = append(prog.Functions, fn)
	}

	if !p.ok() {
		return prog
	}
	if !p.curTokenIs(token.EOF) && prog.Main == nil {
		p.failf("expected function declaration or end of input, got %s", p.curToken.Type)
		return prog
	}
	if !p.curTokenIs(token.EOF) {
		p.fail(token.EOF)
	}
	return prog
}

// isAssignmentAhead distinguishes a bare-identifier global assignment
// (`x = 1;`) from the start of a function declaration, both of which begin
// with IDENT at the top level of a program — actually only assignments
// can start with IDENT here since functions start with the `func` keyword,
// so this is always true when curToken is IDENT; kept as a named check for
// clarity at the call site.
func (p *Parser) isAssignmentAhead() bool {
	return p.curTokenIs(token.IDENT)
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	fn := &ast.FunctionDecl{Token: p.curToken}
	p.nextToken() // consume 'func'

	if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.MAIN) {
		p.fail(token.IDENT)
		return fn
	}
	fn.Name = p.curToken.Literal
	p.nextToken()

	if !p.expect(token.LPAREN) {
		return fn
	}
	for !p.curTokenIs(token.RPAREN) {
		if !p.curTokenIs(token.IDENT) {
			p.fail(token.IDENT)
			return fn
		}
		name := p.curToken.Literal
		p.nextToken()
		if !p.expect(token.COLON) {
			return fn
		}
		typ, ok := p.parseTypeName()
		if !ok {
			return fn
		}
		fn.Params = append(fn.Params, ast.Param{Name: name, Type: typ})
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return fn
	}
	if !p.expect(token.COLON) {
		return fn
	}
	typ, ok := p.parseTypeName()
	if !ok {
		return fn
	}
	fn.ReturnType = typ

	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseTypeName() (string, bool) {
	switch p.curToken.Type {
	case token.INT_TYPE, token.FLOAT_TYPE, token.BOOL_TYPE, token.STRING_TYPE, token.VOID_TYPE:
		name := p.curToken.Literal
		p.nextToken()
		return name, true
	}
	p.failf("expected a type name, got %s", p.curToken.Type)
	return "", false
}

func (p *Parser) parseBlock() []ast.Statement {
	if !p.expect(token.LBRACE) {
		return nil
	}
	var stmts []ast.Statement
	for p.ok() && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if !p.ok() {
			return stmts
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(token.RBRACE)
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.GLOBAL:
		return p.parseAssignStatement()
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			return p.parseExpressionStatement()
		}
		return p.parseAssignStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.PLOT:
		return p.parsePlotStatement()
	case token.HISTOGRAM:
		return p.parseHistStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	stmt := &ast.AssignStatement{Token: p.curToken}
	if p.curTokenIs(token.GLOBAL) {
		stmt.Global = true
		p.nextToken()
	}
	if !p.curTokenIs(token.IDENT) {
		p.fail(token.IDENT)
		return stmt
	}
	stmt.Name = p.curToken.Literal
	p.nextToken()

	for p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		idx := p.parseExpression()
		if !p.ok() {
			return stmt
		}
		stmt.Index = append(stmt.Index, idx)
		if !p.expect(token.RBRACKET) {
			return stmt
		}
	}

	if !p.expect(token.ASSIGN) {
		return stmt
	}
	stmt.Value = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parsePrintStatement() *ast.PrintStatement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return stmt
	}
	for !p.curTokenIs(token.RPAREN) {
		arg := p.parseExpression()
		if !p.ok() {
			return stmt
		}
		stmt.Args = append(stmt.Args, arg)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return stmt
	}
	stmt.Condition = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	stmt.Consequence = p.parseBlock()
	if !p.ok() {
		return stmt
	}
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.Alternative = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return stmt
	}
	stmt.Condition = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	stmt := &ast.ForStatement{Token: p.curToken}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return stmt
	}
	if !p.curTokenIs(token.IDENT) {
		p.fail(token.IDENT)
		return stmt
	}
	stmt.Var = p.curToken.Literal
	p.nextToken()
	if !p.expect(token.ASSIGN) {
		return stmt
	}
	stmt.Start = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	if !p.expect(token.TO) {
		return stmt
	}
	stmt.Limit = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Value = p.parseExpression()
		if !p.ok() {
			return stmt
		}
	}
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parsePlotStatement() *ast.PlotStatement {
	stmt := &ast.PlotStatement{Token: p.curToken}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return stmt
	}
	stmt.Dataframe = p.parseExpression()
	if !p.ok() || !p.expect(token.COMMA) {
		return stmt
	}
	stmt.XCol = p.parseExpression()
	if !p.ok() || !p.expect(token.COMMA) {
		return stmt
	}
	stmt.YCol = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseHistStatement() *ast.HistStatement {
	stmt := &ast.HistStatement{Token: p.curToken}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return stmt
	}
	stmt.Dataframe = p.parseExpression()
	if !p.ok() || !p.expect(token.COMMA) {
		return stmt
	}
	stmt.Column = p.parseExpression()
	if !p.ok() || !p.expect(token.COMMA) {
		return stmt
	}
	stmt.Bins = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	if !p.expect(token.RPAREN) {
		return stmt
	}
	p.expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expr = p.parseExpression()
	if !p.ok() {
		return stmt
	}
	p.expect(token.SEMICOLON)
	return stmt
}
