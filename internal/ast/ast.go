// Package ast defines the abstract syntax tree produced by the parser.
//
// Node shape follows the teacher's internal/ast/ast_core.go convention: one
// concrete struct per node kind, each carrying the token it started at for
// diagnostics, implementing small marker interfaces rather than a visitor.
package ast

import "github.com/raoul-lang/raoul/internal/token"

// Node is anything with a source position.
type Node interface {
	Pos() token.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node executed for effect.
type Statement interface {
	Node
	stmtNode()
}

// Identifier references a variable, function, or dataframe binding.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (i *Identifier) exprNode()           {}

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntegerLiteral) Pos() token.Position { return n.Token.Pos }
func (n *IntegerLiteral) exprNode()           {}

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (n *FloatLiteral) Pos() token.Position { return n.Token.Pos }
func (n *FloatLiteral) exprNode()           {}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) Pos() token.Position { return n.Token.Pos }
func (n *StringLiteral) exprNode()           {}

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) Pos() token.Position { return n.Token.Pos }
func (n *BoolLiteral) exprNode()           {}

// ArrayLiteral is a literal 1-D array `[e, e, ...]`, or — when every
// element is itself an ArrayLiteral of equal length — a 2-D array literal
// `[[e,e],[e,e]]`. Shape is inferred from this node, not declared.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (n *ArrayLiteral) Pos() token.Position { return n.Token.Pos }
func (n *ArrayLiteral) exprNode()           {}

// IndexExpression is `Array[Index]`. A 2-D access `a[i][j]` parses as
// IndexExpression{Array: IndexExpression{Array: a, Index: i}, Index: j}.
type IndexExpression struct {
	Token token.Token
	Array Expression
	Index Expression
}

func (n *IndexExpression) Pos() token.Position { return n.Token.Pos }
func (n *IndexExpression) exprNode()           {}

type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (n *UnaryExpression) Pos() token.Position { return n.Token.Pos }
func (n *UnaryExpression) exprNode()           {}

type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpression) Pos() token.Position { return n.Token.Pos }
func (n *BinaryExpression) exprNode()           {}

// CallExpression is a user-function call. In expression position it must
// resolve to a non-void return type (enforced by the analyzer); as the
// whole of an ExpressionStatement it may call a void function.
type CallExpression struct {
	Token     token.Token
	Function  string
	Arguments []Expression
}

func (n *CallExpression) Pos() token.Position { return n.Token.Pos }
func (n *CallExpression) exprNode()           {}

// ReadExpression is `input()`.
type ReadExpression struct {
	Token token.Token
}

func (n *ReadExpression) Pos() token.Position { return n.Token.Pos }
func (n *ReadExpression) exprNode()           {}

// ReadCSVExpression is `read_csv(path)`, a primary expression of type dataframe.
type ReadCSVExpression struct {
	Token token.Token
	Path  Expression
}

func (n *ReadCSVExpression) Pos() token.Position { return n.Token.Pos }
func (n *ReadCSVExpression) exprNode()           {}

// DataframeOpExpression covers the value-producing dataframe ops:
// get_rows, get_columns, average, std, median, variance, min, max, range,
// correlation. Op is the lowercase operator name as written in source.
type DataframeOpExpression struct {
	Token      token.Token
	Op         string
	Dataframe  Expression
	Args       []Expression
}

func (n *DataframeOpExpression) Pos() token.Position { return n.Token.Pos }
func (n *DataframeOpExpression) exprNode()           {}

// AssignStatement covers `assignee = expr;`, where assignee is a bare
// identifier (optionally `global`-qualified) or an array-element chain.
// Index is empty for a plain variable assignment, length 1 or 2 for
// element assignment.
type AssignStatement struct {
	Token  token.Token
	Global bool
	Name   string
	Index  []Expression
	Value  Expression
}

func (n *AssignStatement) Pos() token.Position { return n.Token.Pos }
func (n *AssignStatement) stmtNode()           {}

type PrintStatement struct {
	Token token.Token
	Args  []Expression
}

func (n *PrintStatement) Pos() token.Position { return n.Token.Pos }
func (n *PrintStatement) stmtNode()           {}

type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence []Statement
	Alternative []Statement // nil when there is no else block
}

func (n *IfStatement) Pos() token.Position { return n.Token.Pos }
func (n *IfStatement) stmtNode()           {}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (n *WhileStatement) Pos() token.Position { return n.Token.Pos }
func (n *WhileStatement) stmtNode()           {}

// ForStatement is `for (Var = Start to Limit) Body`; Limit is inclusive.
type ForStatement struct {
	Token token.Token
	Var   string
	Start Expression
	Limit Expression
	Body  []Statement
}

func (n *ForStatement) Pos() token.Position { return n.Token.Pos }
func (n *ForStatement) stmtNode()           {}

// ReturnStatement; Value is nil for a void return.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (n *ReturnStatement) Pos() token.Position { return n.Token.Pos }
func (n *ReturnStatement) stmtNode()           {}

// ExpressionStatement is a bare expression used as a statement — in
// practice a void-returning function call.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (n *ExpressionStatement) Pos() token.Position { return n.Token.Pos }
func (n *ExpressionStatement) stmtNode()           {}

// PlotStatement requests a scatter render of two numeric columns. It is a
// statement, never an expression, and execution halts once it returns.
type PlotStatement struct {
	Token     token.Token
	Dataframe Expression
	XCol      Expression
	YCol      Expression
}

func (n *PlotStatement) Pos() token.Position { return n.Token.Pos }
func (n *PlotStatement) stmtNode()           {}

// HistStatement requests a binned histogram of one numeric column.
type HistStatement struct {
	Token     token.Token
	Dataframe Expression
	Column    Expression
	Bins      Expression
}

func (n *HistStatement) Pos() token.Position { return n.Token.Pos }
func (n *HistStatement) stmtNode()           {}

// Param is one function parameter: `name: type`.
type Param struct {
	Name string
	Type string
}

// FunctionDecl is a top-level function, or the program's single `main`.
type FunctionDecl struct {
	Token      token.Token
	Name       string
	Params     []Param
	ReturnType string
	Body       []Statement
}

func (n *FunctionDecl) Pos() token.Position { return n.Token.Pos }

// Program is the root node: global assignments, then function declarations,
// then the required main function (spec invariant I3: exactly one, last).
type Program struct {
	Globals   []*AssignStatement
	Functions []*FunctionDecl
	Main      *FunctionDecl
}

func (n *Program) Pos() token.Position {
	if len(n.Globals) > 0 {
		return n.Globals[0].Pos()
	}
	if len(n.Functions) > 0 {
		return n.Functions[0].Pos()
	}
	if n.Main != nil {
		return n.Main.Pos()
	}
	return token.Position{Line: 1, Column: 0}
}
