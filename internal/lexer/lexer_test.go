package lexer

import (
	"testing"

	"github.com/raoul-lang/raoul/internal/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	toks := collect(`= == != < <= > >= + - * / , ; : ( ) { } [ ]`)
	want := []token.Type{
		token.ASSIGN, token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.COMMA, token.SEMICOLON, token.COLON,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestKeywordsResolveOverIdent(t *testing.T) {
	toks := collect("func global if else while for to return print input true false and or not")
	want := []token.Type{
		token.FUNC, token.GLOBAL, token.IF, token.ELSE, token.WHILE, token.FOR, token.TO,
		token.RETURN, token.PRINT, token.READ, token.TRUE, token.FALSE, token.AND, token.OR, token.NOT,
		token.EOF,
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestDataframeKeywords(t *testing.T) {
	toks := collect("read_csv get_rows get_columns average std median variance min max range correlation")
	want := []token.Type{
		token.READ_CSV, token.GET_ROWS, token.GET_COLUMNS, token.AVERAGE, token.STD,
		token.MEDIAN, token.VARIANCE, token.MIN, token.MAX, token.RANGE, token.CORRELATION,
		token.EOF,
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestIdentifierNotKeyword(t *testing.T) {
	toks := collect("averageScore")
	if toks[0].Type != token.IDENT || toks[0].Literal != "averageScore" {
		t.Errorf("got %v %q, want IDENT %q", toks[0].Type, toks[0].Literal, "averageScore")
	}
}

func TestIntAndFloatLiterals(t *testing.T) {
	toks := collect("42 3.14 0 7.0")
	cases := []struct {
		typ token.Type
		lit string
	}{
		{token.INT, "42"},
		{token.FLOAT, "3.14"},
		{token.INT, "0"},
		{token.FLOAT, "7.0"},
	}
	for i, c := range cases {
		if toks[i].Type != c.typ || toks[i].Literal != c.lit {
			t.Errorf("token %d: got %v %q, want %v %q", i, toks[i].Type, toks[i].Literal, c.typ, c.lit)
		}
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	toks := collect(`"hello\nworld" 'single\tquoted'`)
	if toks[0].Type != token.STRING || toks[0].Literal != "hello\nworld" {
		t.Errorf("got %v %q", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.STRING || toks[1].Literal != "single\tquoted" {
		t.Errorf("got %v %q", toks[1].Type, toks[1].Literal)
	}
}

func TestUnterminatedStringConsumesToEOF(t *testing.T) {
	toks := collect(`"never closed`)
	if toks[0].Type != token.STRING || toks[0].Literal != "never closed" {
		t.Errorf("got %v %q", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.EOF {
		t.Errorf("got %v, want EOF", toks[1].Type)
	}
}

func TestLineComment(t *testing.T) {
	toks := collect("1 // trailing comment\n2")
	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Fatalf("got %v", toks)
	}
}

func TestBlockComment(t *testing.T) {
	toks := collect("1 /* a block\ncomment */ 2")
	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Fatalf("got %v", toks)
	}
}

// TestEmptyBlockCommentDoesNotCloseItself checks the lexer's deliberate
// carried-over quirk: "/**/" does not close the comment it opens, because no
// character was consumed between the "/*" and the "*/" that immediately
// follows it.
func TestEmptyBlockCommentDoesNotCloseItself(t *testing.T) {
	toks := collect("1 /**/ 2 */ 3")
	if toks[0].Literal != "1" {
		t.Fatalf("got %v", toks)
	}
	// The first "*/" (right after the opening "/*") does not close the
	// comment, so scanning continues through " 2 " and only the second
	// "*/" closes it — "2" is swallowed as part of the comment body.
	if toks[1].Literal != "3" {
		t.Fatalf("expected the comment to swallow through the second */, got %v", toks)
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := collect("@")
	if toks[0].Type != token.ILLEGAL || toks[0].Literal != "@" {
		t.Errorf("got %v %q", toks[0].Type, toks[0].Literal)
	}
}

func TestPositionTracking(t *testing.T) {
	toks := collect("x = 1;\ny = 2;")
	if toks[0].Pos.Line != 1 {
		t.Errorf("got line %d, want 1", toks[0].Pos.Line)
	}
	var yTok token.Token
	for _, tk := range toks {
		if tk.Type == token.IDENT && tk.Literal == "y" {
			yTok = tk
		}
	}
	if yTok.Pos.Line != 2 {
		t.Errorf("got line %d for 'y', want 2", yTok.Pos.Line)
	}
}
