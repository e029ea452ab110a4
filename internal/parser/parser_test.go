package parser

import (
	"testing"

	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseGlobalsAndMain(t *testing.T) {
	prog := parse(t, `
a = 1;
b = 2.5;
func main(): void {
    print(a, b);
}
`)
	if len(prog.Globals) != 2 {
		t.Fatalf("got %d globals, want 2", len(prog.Globals))
	}
	if prog.Globals[0].Name != "a" || prog.Globals[1].Name != "b" {
		t.Errorf("got globals %q, %q", prog.Globals[0].Name, prog.Globals[1].Name)
	}
	if prog.Main == nil || prog.Main.Name != "main" {
		t.Fatal("expected a main function")
	}
}

func TestParseFunctionWithParams(t *testing.T) {
	prog := parse(t, `
func add(a: int, b: int): int {
    return a + b;
}
func main(): void { }
`)
	if len(prog.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" || fn.ReturnType != "int" {
		t.Errorf("got name=%q returnType=%q", fn.Name, fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[0].Type != "int" {
		t.Errorf("got params %+v", fn.Params)
	}
}

func TestParseArrayLiteralAssignment(t *testing.T) {
	prog := parse(t, `
func main(): void {
    arr = [1, 2, 3];
}
`)
	stmt := prog.Main.Body[0].(*ast.AssignStatement)
	lit, ok := stmt.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayLiteral", stmt.Value)
	}
	if len(lit.Elements) != 3 {
		t.Errorf("got %d elements, want 3", len(lit.Elements))
	}
}

func TestParseNestedIndexExpression(t *testing.T) {
	prog := parse(t, `
func main(): void {
    x = a[1][2];
}
`)
	stmt := prog.Main.Body[0].(*ast.AssignStatement)
	outer, ok := stmt.Value.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("got %T, want outer *ast.IndexExpression", stmt.Value)
	}
	inner, ok := outer.Array.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("got %T, want inner *ast.IndexExpression", outer.Array)
	}
	if _, ok := inner.Array.(*ast.Identifier); !ok {
		t.Fatalf("got %T, want *ast.Identifier at the base", inner.Array)
	}
}

func TestParseGlobalQualifiedAssignment(t *testing.T) {
	prog := parse(t, `
func main(): void {
    global b = 3;
}
`)
	stmt := prog.Main.Body[0].(*ast.AssignStatement)
	if !stmt.Global || stmt.Name != "b" {
		t.Errorf("got Global=%v Name=%q", stmt.Global, stmt.Name)
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parse(t, `
func main(): void {
    for (i = 0 to 10) {
        print(i);
    }
}
`)
	stmt, ok := prog.Main.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ForStatement", prog.Main.Body[0])
	}
	if stmt.Var != "i" {
		t.Errorf("got Var=%q, want %q", stmt.Var, "i")
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, `
func main(): void {
    if (1 < 2) {
        print(1);
    } else {
        print(2);
    }
}
`)
	stmt, ok := prog.Main.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStatement", prog.Main.Body[0])
	}
	if len(stmt.Consequence) != 1 || len(stmt.Alternative) != 1 {
		t.Errorf("got %d consequence, %d alternative stmts", len(stmt.Consequence), len(stmt.Alternative))
	}
}

func TestParseBinaryOperatorPrecedence(t *testing.T) {
	prog := parse(t, `
func main(): void {
    x = 1 + 2 * 3;
}
`)
	stmt := prog.Main.Body[0].(*ast.AssignStatement)
	bin, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryExpression", stmt.Value)
	}
	if bin.Operator != "+" {
		t.Fatalf("got top-level operator %q, want %q (multiplication should bind tighter)", bin.Operator, "+")
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != "*" {
		t.Fatalf("got right operand %+v, want a '*' binary expression", bin.Right)
	}
}

func TestParseFunctionCallInExpression(t *testing.T) {
	prog := parse(t, `
func main(): void {
    x = square(3) + 1;
}
`)
	stmt := prog.Main.Body[0].(*ast.AssignStatement)
	bin, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryExpression", stmt.Value)
	}
	call, ok := bin.Left.(*ast.CallExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpression", bin.Left)
	}
	if call.Function != "square" || len(call.Arguments) != 1 {
		t.Errorf("got Function=%q Arguments=%v", call.Function, call.Arguments)
	}
}

func TestParseReadCSVAndDataframeOp(t *testing.T) {
	prog := parse(t, `
func main(): void {
    df = read_csv("data.csv");
    x = average(df, "col");
}
`)
	dfStmt := prog.Main.Body[0].(*ast.AssignStatement)
	if _, ok := dfStmt.Value.(*ast.ReadCSVExpression); !ok {
		t.Fatalf("got %T, want *ast.ReadCSVExpression", dfStmt.Value)
	}
	xStmt := prog.Main.Body[1].(*ast.AssignStatement)
	op, ok := xStmt.Value.(*ast.DataframeOpExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.DataframeOpExpression", xStmt.Value)
	}
	if op.Op != "average" || len(op.Args) != 1 {
		t.Errorf("got Op=%q Args=%v", op.Op, op.Args)
	}
}

func TestParseMissingSemicolonIsParseError(t *testing.T) {
	p := New(lexer.New(`
func main(): void {
    x = 1
    print(x);
}
`))
	p.ParseProgram()
	if p.Err() == nil {
		t.Fatal("expected a parse error for the missing semicolon")
	}
}

func TestParseMissingMainStillParses(t *testing.T) {
	// ParseProgram itself does not require main to be present — that
	// invariant is the analyzer's job (ErrMissingMain), not the parser's.
	p := New(lexer.New(`func f(): void { }`))
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if prog.Main != nil {
		t.Error("expected no main function to be parsed")
	}
}

func TestParseReturnWithoutValue(t *testing.T) {
	prog := parse(t, `
func main(): void {
    return;
}
`)
	stmt, ok := prog.Main.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ReturnStatement", prog.Main.Body[0])
	}
	if stmt.Value != nil {
		t.Errorf("got Value=%v, want nil", stmt.Value)
	}
}
