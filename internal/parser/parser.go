// Package parser implements a recursive-descent parser for Raoul.
//
// Leaf/primary expressions are dispatched through a prefix-function table
// keyed by token.Type, the same registration idiom as the teacher's
// internal/parser/expressions_core.go (prefixParseFns/infixParseFns).
// Raoul's binary-operator grammar has two strictly non-associative
// precedence levels (equality, relational) that do not fit the teacher's
// generic single-loop precedence climb without extra bookkeeping, so the
// operator levels above primary are instead a small ladder of dedicated
// parse functions (one per precedence level) — plain recursive descent,
// which makes "at most one operator at this level" a direct fall-through
// rather than a special case grafted onto a generic engine.
package parser

import (
	"fmt"

	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/lexer"
	"github.com/raoul-lang/raoul/internal/token"
)

// Parser is a hand-written single-token-lookahead parser. It does not
// recover from errors: the first ParseError aborts (spec §4.1 "Failure").
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	prefixFns map[token.Type]func() ast.Expression

	err *diagnostics.Error
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.prefixFns = map[token.Type]func() ast.Expression{
		token.IDENT:       p.parseIdentifierOrCall,
		token.INT:         p.parseIntegerLiteral,
		token.FLOAT:       p.parseFloatLiteral,
		token.STRING:      p.parseStringLiteral,
		token.TRUE:        p.parseBoolLiteral,
		token.FALSE:       p.parseBoolLiteral,
		token.LPAREN:      p.parseGroupedExpression,
		token.LBRACKET:    p.parseArrayLiteral,
		token.READ:        p.parseReadExpression,
		token.READ_CSV:    p.parseReadCSVExpression,
		token.GET_ROWS:    p.parseDataframeOp,
		token.GET_COLUMNS: p.parseDataframeOp,
		token.AVERAGE:     p.parseDataframeOp,
		token.STD:         p.parseDataframeOp,
		token.MEDIAN:      p.parseDataframeOp,
		token.VARIANCE:    p.parseDataframeOp,
		token.MIN:         p.parseDataframeOp,
		token.MAX:         p.parseDataframeOp,
		token.RANGE:       p.parseDataframeOp,
		token.CORRELATION: p.parseDataframeOp,
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Err returns the parse error encountered, if any.
func (p *Parser) Err() *diagnostics.Error { return p.err }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expect advances past the current token if it has type t, else records a
// ParseError and returns false.
func (p *Parser) expect(t token.Type) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.fail(t)
	return false
}

func (p *Parser) fail(expected token.Type) {
	if p.err != nil {
		return
	}
	p.err = diagnostics.New(diagnostics.ErrParse, p.curToken, fmt.Sprintf(
		"expected %s, got %s %q", expected, p.curToken.Type, p.curToken.Literal))
}

func (p *Parser) failf(format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = diagnostics.New(diagnostics.ErrParse, p.curToken, fmt.Sprintf(format, args...))
}

func (p *Parser) ok() bool { return p.err == nil }
