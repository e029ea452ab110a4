package vm

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/raoul-lang/raoul/internal/analyzer"
	"github.com/raoul-lang/raoul/internal/parser"
	"github.com/raoul-lang/raoul/internal/pipeline"
	"github.com/raoul-lang/raoul/internal/plotsink"
)

func compileAndRun(t *testing.T, src, stdin string, maxDepth int) (string, error) {
	t.Helper()
	ctx := pipeline.New(parser.NewProcessor(), analyzer.NewProcessor()).Run(pipeline.NewContext(src))
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected compile error: %v", ctx.Errors[0])
	}
	var out bytes.Buffer
	machine := New(ctx.IR, strings.NewReader(stdin), &out, plotsink.Null{}, maxDepth)
	defer machine.Close()
	err := machine.Run(context.Background())
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := compileAndRun(t, `
func main(): void {
    print(1 + 2 * 3, 10 / 3, 10.0 / 4.0);
}
`, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "7 3 2.5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := compileAndRun(t, `
func main(): void {
    x = 1 / 0;
    print(x);
}
`, "", 0)
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected a *RuntimeError, got %v", err)
	}
	if rerr.Kind != DivByZero {
		t.Fatalf("got %v, want %v", rerr.Kind, DivByZero)
	}
}

func TestArrayOutOfBounds(t *testing.T) {
	_, err := compileAndRun(t, `
func main(): void {
    arr = [1, 2, 3];
    i = 5;
    print(arr[i]);
}
`, "", 0)
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected a *RuntimeError, got %v", err)
	}
	if rerr.Kind != OutOfBounds {
		t.Fatalf("got %v, want %v", rerr.Kind, OutOfBounds)
	}
}

func TestRecursionRespectsMaxDepth(t *testing.T) {
	_, err := compileAndRun(t, `
func loop(n: int): int {
    return loop(n + 1);
}
func main(): void {
    print(loop(0));
}
`, "", 8)
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected a *RuntimeError, got %v", err)
	}
	if rerr.Kind != StackOverflow {
		t.Fatalf("got %v, want %v", rerr.Kind, StackOverflow)
	}
}

func TestRecursionIsolatesLocalsPerFrame(t *testing.T) {
	out, err := compileAndRun(t, `
func factorial(n: int): int {
    if (n <= 1) {
        return 1;
    }
    return n * factorial(n - 1);
}
func main(): void {
    print(factorial(5));
}
`, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "120\n" {
		t.Fatalf("got %q", out)
	}
}

func TestImplicitStringToIntCastAtArgument(t *testing.T) {
	out, err := compileAndRun(t, `
func takesInt(n: int): void {
    print(n);
}
func main(): void {
    takesInt("42");
}
`, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReadFromStdin(t *testing.T) {
	out, err := compileAndRun(t, `
func main(): void {
    x = 0;
    x = input();
    print(x + 1);
}
`, "41\n", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReturnInMainHalts(t *testing.T) {
	out, err := compileAndRun(t, `
func main(): void {
    print(1);
    return;
    print(2);
}
`, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("got %q, expected execution to stop at the bare return", out)
	}
}

func TestNestedCallInArgumentPosition(t *testing.T) {
	out, err := compileAndRun(t, `
func square(n: int): int {
    return n * n;
}
func addOne(n: int): int {
    return n + 1;
}
func main(): void {
    print(addOne(square(3)));
}
`, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "10\n" {
		t.Fatalf("got %q", out)
	}
}
