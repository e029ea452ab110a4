package analyzer

import (
	"fmt"

	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/symbols"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// resolveIndexChain walks a chain of nested IndexExpression nodes down to
// the identifier at its root, collecting indices outer-to-inner so
// a[i][j] yields (sym_a, [i, j]).
func (a *Analyzer) resolveIndexChain(e *ast.IndexExpression) (*symbols.Symbol, []ast.Expression, bool) {
	var indices []ast.Expression
	var cur ast.Expression = e
	for {
		ix, ok := cur.(*ast.IndexExpression)
		if !ok {
			break
		}
		indices = append([]ast.Expression{ix.Index}, indices...)
		cur = ix.Array
	}
	id, ok := cur.(*ast.Identifier)
	if !ok {
		a.fail(diagnostics.ErrNotAnArray, e, "indexed expression does not name an array variable")
		return nil, nil, false
	}
	sym, ok := a.resolveVariable(id.Name)
	if !ok {
		a.fail(diagnostics.ErrUndeclaredIdentifier, e, fmt.Sprintf("undeclared identifier %q", id.Name))
		return nil, nil, false
	}
	if !sym.Type.IsArray() {
		a.fail(diagnostics.ErrNotAnArray, e, fmt.Sprintf("%q is not an array", id.Name))
		return nil, nil, false
	}
	return sym, indices, true
}

// emitElementAddress type-checks indices against sym's declared shape and
// emits the VERIFY/POINTER quadruples of spec §4.2 that linearize them into
// a single pointer-partition address the caller reads or writes through.
func (a *Analyzer) emitElementAddress(tok ast.Node, sym *symbols.Symbol, indices []ast.Expression) (int, typesystem.Type, bool) {
	if len(indices) != sym.Type.Dims {
		a.fail(diagnostics.ErrDimMismatch, tok, fmt.Sprintf("%q is %d-dimensional, indexed with %d indices", sym.Name, sym.Type.Dims, len(indices)))
		return 0, typesystem.Type{}, false
	}

	elemType := typesystem.Scalar(sym.Type.Elem)

	iAddr, iType, ok := a.analyzeExpr(indices[0])
	if !ok {
		return 0, typesystem.Type{}, false
	}
	if !typesystem.CanCast(iType, typesystem.Scalar(typesystem.Int)) {
		a.fail(diagnostics.ErrTypeMismatch, tok, "array index must be numeric")
		a.releaseIfTemp(iAddr)
		return 0, typesystem.Type{}, false
	}
	a.b.Emit(ir.VERIFY, iAddr, sym.Type.Dim1, ir.Unused)

	offsetAddr := iAddr
	if sym.Type.Dims == 2 {
		jAddr, jType, ok := a.analyzeExpr(indices[1])
		if !ok {
			a.releaseIfTemp(iAddr)
			return 0, typesystem.Type{}, false
		}
		if !typesystem.CanCast(jType, typesystem.Scalar(typesystem.Int)) {
			a.fail(diagnostics.ErrTypeMismatch, tok, "array index must be numeric")
			a.releaseIfTemp(iAddr)
			a.releaseIfTemp(jAddr)
			return 0, typesystem.Type{}, false
		}
		a.b.Emit(ir.VERIFY, jAddr, sym.Type.Dim2, ir.Unused)

		dim2Const, ok := a.b.InternConst(address.KindInt, int64(sym.Type.Dim2))
		if !ok {
			a.fail(diagnostics.ErrTypeMismatch, tok, "constant space exhausted")
			return 0, typesystem.Type{}, false
		}
		rowAddr, ok := a.allocTemp(typesystem.Int)
		if !ok {
			a.fail(diagnostics.ErrTypeMismatch, tok, "temporary address space exhausted")
			return 0, typesystem.Type{}, false
		}
		a.b.Emit(ir.MUL, iAddr, dim2Const, rowAddr)
		a.releaseIfTemp(iAddr)

		sumAddr, ok := a.allocTemp(typesystem.Int)
		if !ok {
			a.fail(diagnostics.ErrTypeMismatch, tok, "temporary address space exhausted")
			return 0, typesystem.Type{}, false
		}
		a.b.Emit(ir.ADD, rowAddr, jAddr, sumAddr)
		a.releaseIfTemp(rowAddr)
		a.releaseIfTemp(jAddr)
		offsetAddr = sumAddr
	}

	ptr := a.b.AllocPointer()
	a.b.Emit(ir.POINTER, sym.Address, offsetAddr, ptr)
	a.releaseIfTemp(offsetAddr)
	return ptr, elemType, true
}

// analyzeIndexExpression handles a[i] / a[i][j] used as a value.
func (a *Analyzer) analyzeIndexExpression(e *ast.IndexExpression) (int, typesystem.Type, bool) {
	sym, indices, ok := a.resolveIndexChain(e)
	if !ok {
		return 0, typesystem.Type{}, false
	}
	return a.emitElementAddress(e, sym, indices)
}

// analyzeArrayLiteralAssign handles `assignee = [e, e, ...];`, the only
// grammar production that introduces an array (spec §3: shape is inferred
// from the literal, never declared separately). Because every index is a
// compile-time literal here, each element is stored directly at
// base+offset — no VERIFY/POINTER indirection is needed.
func (a *Analyzer) analyzeArrayLiteralAssign(stmt *ast.AssignStatement, lit *ast.ArrayLiteral) bool {
	typ, rows, ok := a.inferArrayLiteralShape(lit)
	if !ok {
		return false
	}

	scope := a.currentScope()
	if stmt.Global {
		scope = a.table.Global
	}
	sym, existed := scope.Lookup(stmt.Name)
	if existed {
		if !sym.Type.Equal(typ) {
			a.fail(diagnostics.ErrDimMismatch, stmt, fmt.Sprintf("%q was declared as %s, assigned a literal of shape %s", stmt.Name, sym.Type, typ))
			return false
		}
	} else {
		sym, ok = scope.Declare(stmt.Name, typ, false)
		if !ok {
			a.fail(diagnostics.ErrDimMismatch, stmt, "address space exhausted for this type")
			return false
		}
	}

	elemKind := typesystem.Scalar(typ.Elem)
	offset := 0
	for _, row := range rows {
		for _, elem := range row {
			valAddr, valType, ok := a.analyzeExpr(elem)
			if !ok {
				return false
			}
			if !typesystem.CanCast(valType, elemKind) {
				a.fail(diagnostics.ErrTypeMismatch, elem, fmt.Sprintf("cannot assign %s into a %s array element", valType, elemKind))
				a.releaseIfTemp(valAddr)
				return false
			}
			a.b.Emit(ir.ASSIGN, valAddr, ir.Unused, sym.Address+offset)
			a.releaseIfTemp(valAddr)
			offset++
		}
	}
	return true
}

// inferArrayLiteralShape determines the element kind and dimensions of an
// array literal: 1-D if every element is scalar, 2-D if every element is
// itself an ArrayLiteral of the same length. rows groups elements by row
// so the caller can walk them in row-major order regardless of dimension.
func (a *Analyzer) inferArrayLiteralShape(lit *ast.ArrayLiteral) (typesystem.Type, [][]ast.Expression, bool) {
	if len(lit.Elements) == 0 {
		a.fail(diagnostics.ErrDimMismatch, lit, "array literal must have at least one element")
		return typesystem.Type{}, nil, false
	}

	if nested, ok := lit.Elements[0].(*ast.ArrayLiteral); ok {
		width := len(nested.Elements)
		rows := make([][]ast.Expression, len(lit.Elements))
		var elemKind typesystem.Kind
		for i, el := range lit.Elements {
			row, ok := el.(*ast.ArrayLiteral)
			if !ok || len(row.Elements) != width {
				a.fail(diagnostics.ErrDimMismatch, lit, "every row of a 2-D array literal must have the same length")
				return typesystem.Type{}, nil, false
			}
			rows[i] = row.Elements
			k, ok := a.scalarLiteralKind(row.Elements[0])
			if !ok {
				return typesystem.Type{}, nil, false
			}
			if i == 0 {
				elemKind = k
			}
		}
		return typesystem.Array2(elemKind, len(lit.Elements), width), rows, true
	}

	elemKind, ok := a.scalarLiteralKind(lit.Elements[0])
	if !ok {
		return typesystem.Type{}, nil, false
	}
	return typesystem.Array1(elemKind, len(lit.Elements)), [][]ast.Expression{lit.Elements}, true
}

// scalarLiteralKind reports the static element kind of a literal array
// element without emitting anything, used only to fix the array's shape.
func (a *Analyzer) scalarLiteralKind(e ast.Expression) (typesystem.Kind, bool) {
	switch e.(type) {
	case *ast.IntegerLiteral:
		return typesystem.Int, true
	case *ast.FloatLiteral:
		return typesystem.Float, true
	case *ast.StringLiteral:
		return typesystem.String, true
	case *ast.BoolLiteral:
		return typesystem.Bool, true
	}
	a.fail(diagnostics.ErrTypeMismatch, e, "array literal elements must be literals of a scalar type")
	return typesystem.Invalid, false
}
