package analyzer

import (
	"testing"

	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/parser"
	"github.com/raoul-lang/raoul/internal/pipeline"
)

func compile(t *testing.T, src string) *pipeline.Context {
	t.Helper()
	ctx := pipeline.NewContext(src)
	p := parser.NewProcessor()
	ctx = p.Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected parse error: %v", ctx.Errors[0])
	}
	return NewProcessor().Process(ctx)
}

func firstCode(ctx *pipeline.Context) diagnostics.Code {
	if len(ctx.Errors) == 0 {
		return ""
	}
	return ctx.Errors[0].Code
}

func TestMissingMain(t *testing.T) {
	ctx := compile(t, `func f(): void { }`)
	if firstCode(ctx) != diagnostics.ErrMissingMain {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrMissingMain)
	}
}

func TestDuplicateFunction(t *testing.T) {
	ctx := compile(t, `
func f(): void { }
func f(): void { }
func main(): void { }
`)
	if firstCode(ctx) != diagnostics.ErrDuplicateFunction {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrDuplicateFunction)
	}
}

func TestMissingReturn(t *testing.T) {
	ctx := compile(t, `
func f(): int {
    if (true) {
        return 1;
    }
}
func main(): void { }
`)
	if firstCode(ctx) != diagnostics.ErrMissingReturn {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrMissingReturn)
	}
}

func TestMissingReturnSatisfiedByIfElse(t *testing.T) {
	ctx := compile(t, `
func f(): int {
    if (true) {
        return 1;
    } else {
        return 2;
    }
}
func main(): void { }
`)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
}

func TestArityMismatch(t *testing.T) {
	ctx := compile(t, `
func f(n: int): void { }
func main(): void {
    f(1, 2);
}
`)
	if firstCode(ctx) != diagnostics.ErrArityMismatch {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrArityMismatch)
	}
}

func TestUndeclaredIdentifier(t *testing.T) {
	ctx := compile(t, `
func main(): void {
    print(nope);
}
`)
	if firstCode(ctx) != diagnostics.ErrUndeclaredIdentifier {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrUndeclaredIdentifier)
	}
}

func TestDimMismatch(t *testing.T) {
	ctx := compile(t, `
func main(): void {
    arr = [1, 2, 3];
    x = arr[0][0];
}
`)
	if firstCode(ctx) != diagnostics.ErrDimMismatch {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrDimMismatch)
	}
}

func TestNotAnArray(t *testing.T) {
	ctx := compile(t, `
func main(): void {
    x = 1;
    y = x[0];
}
`)
	if firstCode(ctx) != diagnostics.ErrNotAnArray {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrNotAnArray)
	}
}

// TestTypePinnedAcrossReassignment checks that a bare reassignment of a
// variable whose type was already inferred rejects a different kind, even
// from inside a function that never locally declared it.
func TestTypePinnedAcrossReassignment(t *testing.T) {
	ctx := compile(t, `
a = 1;
func main(): void {
    a = "x";
}
`)
	if firstCode(ctx) != diagnostics.ErrTypeMismatch {
		t.Fatalf("got %v, want %v", firstCode(ctx), diagnostics.ErrTypeMismatch)
	}
}

// TestIntFloatReassignmentAllowed checks that int<->float stays legal on
// reassignment since spec treats them as interchangeable numeric storage,
// not a type change.
func TestIntFloatReassignmentAllowed(t *testing.T) {
	ctx := compile(t, `
a = 1;
func main(): void {
    a = 2.5;
    print(a);
}
`)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
}

// TestGlobalQualifierCreatesGlobal checks that `global` introduces a brand
// new global from inside a function body.
func TestGlobalQualifierCreatesGlobal(t *testing.T) {
	ctx := compile(t, `
func main(): void {
    global b = 3;
    print(b);
}
`)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if _, ok := ctx.Symbols.Global.Lookup("b"); !ok {
		t.Fatal("expected b to be registered in the global scope")
	}
}

// TestReassignExistingGlobalWithoutQualifier checks that reassigning a
// global that already exists does not require the `global` keyword — only
// creating a brand new one does.
func TestReassignExistingGlobalWithoutQualifier(t *testing.T) {
	ctx := compile(t, `
count = 0;
func bump(): void {
    count = count + 1;
}
func main(): void {
    bump();
    print(count);
}
`)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
}

func TestRecursiveCallResolves(t *testing.T) {
	ctx := compile(t, `
func factorial(n: int): int {
    if (n <= 1) {
        return 1;
    }
    return n * factorial(n - 1);
}
func main(): void {
    print(factorial(5));
}
`)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.IR == nil || len(ctx.IR.Quadruples) == 0 {
		t.Fatal("expected a non-empty compiled program")
	}
}
