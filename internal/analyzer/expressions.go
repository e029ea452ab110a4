package analyzer

import (
	"fmt"

	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// analyzeExpr dispatches on the concrete expression node, type-checks it,
// and emits whatever quadruples the value requires, returning the address
// its result lives at.
func (a *Analyzer) analyzeExpr(expr ast.Expression) (int, typesystem.Type, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return a.internConst(address.KindInt, e.Value, typesystem.Int)
	case *ast.FloatLiteral:
		return a.internConst(address.KindFloat, e.Value, typesystem.Float)
	case *ast.StringLiteral:
		return a.internConst(address.KindString, e.Value, typesystem.String)
	case *ast.BoolLiteral:
		return a.internConst(address.KindBool, e.Value, typesystem.Bool)
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.IndexExpression:
		return a.analyzeIndexExpression(e)
	case *ast.UnaryExpression:
		return a.analyzeUnary(e)
	case *ast.BinaryExpression:
		return a.analyzeBinary(e)
	case *ast.CallExpression:
		return a.analyzeCall(e)
	case *ast.DataframeOpExpression:
		return a.analyzeDataframeOp(e)
	case *ast.ReadExpression:
		a.fail(diagnostics.ErrTypeMismatch, e, "input() is only allowed as a direct assignment value")
		return 0, typesystem.Type{}, false
	case *ast.ReadCSVExpression:
		a.fail(diagnostics.ErrTypeMismatch, e, "read_csv() is only allowed as a direct assignment value")
		return 0, typesystem.Type{}, false
	case *ast.ArrayLiteral:
		a.fail(diagnostics.ErrTypeMismatch, e, "array literal is only allowed as a direct assignment value")
		return 0, typesystem.Type{}, false
	}
	a.fail(diagnostics.ErrTypeMismatch, expr, "unsupported expression")
	return 0, typesystem.Type{}, false
}

func (a *Analyzer) internConst(kind address.Kind, value any, elem typesystem.Kind) (int, typesystem.Type, bool) {
	addr, ok := a.b.InternConst(kind, value)
	if !ok {
		return 0, typesystem.Type{}, false
	}
	return addr, typesystem.Scalar(elem), true
}

func (a *Analyzer) analyzeIdentifier(n *ast.Identifier) (int, typesystem.Type, bool) {
	sym, ok := a.resolveVariable(n.Name)
	if !ok {
		a.fail(diagnostics.ErrUndeclaredIdentifier, n, fmt.Sprintf("undeclared identifier %q", n.Name))
		return 0, typesystem.Type{}, false
	}
	return sym.Address, sym.Type, true
}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpression) (int, typesystem.Type, bool) {
	lAddr, lType, lok := a.analyzeExpr(n.Left)
	rAddr, rType, rok := a.analyzeExpr(n.Right)
	if !lok || !rok {
		return 0, typesystem.Type{}, false
	}
	if lType.IsArray() || rType.IsArray() {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("operator %q does not apply to array operands", n.Operator))
		a.releaseIfTemp(lAddr)
		a.releaseIfTemp(rAddr)
		return 0, typesystem.Type{}, false
	}

	var resultKind typesystem.Kind
	var ok bool
	switch n.Operator {
	case "+", "-", "*", "/":
		resultKind, ok = typesystem.ArithmeticResultType(n.Operator, lType.Elem, rType.Elem)
	case "==", "!=", "<", ">", "<=", ">=":
		resultKind, ok = typesystem.ComparisonResultType(n.Operator, lType.Elem, rType.Elem)
	case "and", "or":
		resultKind, ok = typesystem.LogicalResultType(lType.Elem, rType.Elem)
	}
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("operator %q is not defined for %s and %s", n.Operator, lType, rType))
		a.releaseIfTemp(lAddr)
		a.releaseIfTemp(rAddr)
		return 0, typesystem.Type{}, false
	}

	resAddr, ok := a.allocTemp(resultKind)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, n, "temporary address space exhausted")
		a.releaseIfTemp(lAddr)
		a.releaseIfTemp(rAddr)
		return 0, typesystem.Type{}, false
	}
	a.b.Emit(binaryOps[n.Operator], lAddr, rAddr, resAddr)
	a.releaseIfTemp(lAddr)
	a.releaseIfTemp(rAddr)
	return resAddr, typesystem.Scalar(resultKind), true
}

func (a *Analyzer) analyzeUnary(n *ast.UnaryExpression) (int, typesystem.Type, bool) {
	addr, typ, ok := a.analyzeExpr(n.Right)
	if !ok {
		return 0, typesystem.Type{}, false
	}
	if typ.IsArray() {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("operator %q does not apply to an array operand", n.Operator))
		a.releaseIfTemp(addr)
		return 0, typesystem.Type{}, false
	}

	var resultKind typesystem.Kind
	var op ir.Op
	switch n.Operator {
	case "not":
		resultKind, ok = typesystem.NotResultType(typ.Elem)
		op = ir.NOT
	case "-":
		resultKind, ok = typesystem.NegateResultType(typ.Elem)
		op = ir.NEG
	default:
		ok = false
	}
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("operator %q is not defined for %s", n.Operator, typ))
		a.releaseIfTemp(addr)
		return 0, typesystem.Type{}, false
	}

	resAddr, ok := a.allocTemp(resultKind)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, n, "temporary address space exhausted")
		a.releaseIfTemp(addr)
		return 0, typesystem.Type{}, false
	}
	a.b.Emit(op, addr, ir.Unused, resAddr)
	a.releaseIfTemp(addr)
	return resAddr, typesystem.Scalar(resultKind), true
}
