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

// dataframeOpcodes maps a dataframe-op keyword to its quadruple operator.
// Since spec invariant I5 allows at most one dataframe per program, these
// quadruples never carry a dataframe operand — they always act on the
// single process-wide dataframe the VM holds, leaving all three operand
// slots free for the op's actual column/result data.
var dataframeOpcodes = map[string]ir.Op{
	"get_rows":    ir.GET_ROWS,
	"get_columns": ir.GET_COLUMNS,
	"average":     ir.AVERAGE,
	"std":         ir.STD,
	"median":      ir.MEDIAN,
	"variance":    ir.VARIANCE,
	"min":         ir.MIN,
	"max":         ir.MAX,
	"range":       ir.RANGE,
	"correlation": ir.CORREL,
}

// lookupFunctionCall resolves e.Function and checks its arity, the two
// checks analyzeCall and analyzeCallStatement both need before they diverge
// on how to handle the result.
func (a *Analyzer) lookupFunctionCall(e *ast.CallExpression) (*symbols.FunctionInfo, bool) {
	info, ok := a.table.Functions[e.Function]
	if !ok {
		a.fail(diagnostics.ErrUndeclaredIdentifier, e, fmt.Sprintf("undeclared function %q", e.Function))
		return nil, false
	}
	if len(e.Arguments) != len(info.ParamTypes) {
		a.fail(diagnostics.ErrArityMismatch, e, fmt.Sprintf("%q expects %d argument(s), got %d", e.Function, len(info.ParamTypes), len(e.Arguments)))
		return nil, false
	}
	return info, true
}

// emitCall type-checks e's arguments against info's signature and emits
// the ERA/PARAM.../GOSUB sequence of spec §4.3, registering the call site
// for a later pass once info.StartIP is known.
func (a *Analyzer) emitCall(e *ast.CallExpression, info *symbols.FunctionInfo) bool {
	eraIdx := a.b.Emit(ir.ERA, 0, ir.Unused, ir.Unused)

	argAddrs := make([]int, len(e.Arguments))
	for i, arg := range e.Arguments {
		addr, typ, ok := a.analyzeExpr(arg)
		if !ok {
			return false
		}
		if !typesystem.CanCast(typ, info.ParamTypes[i]) {
			a.fail(diagnostics.ErrTypeMismatch, arg, fmt.Sprintf("argument %d of %q: cannot use %s as %s", i+1, e.Function, typ, info.ParamTypes[i]))
			a.releaseIfTemp(addr)
			return false
		}
		argAddrs[i] = addr
	}
	for i, addr := range argAddrs {
		a.b.Emit(ir.PARAM, addr, ir.Unused, i)
		a.releaseIfTemp(addr)
	}

	gosubIdx := a.b.Emit(ir.GOSUB, 0, ir.Unused, ir.Unused)
	a.pendingCalls = append(a.pendingCalls, pendingCall{eraIndex: eraIdx, gosubIndex: gosubIdx, name: info.Name})
	return true
}

// analyzeCall handles a call used as a value: `f(args)` in an expression.
func (a *Analyzer) analyzeCall(e *ast.CallExpression) (int, typesystem.Type, bool) {
	info, ok := a.lookupFunctionCall(e)
	if !ok {
		return 0, typesystem.Type{}, false
	}
	if info.ReturnType.Elem == typesystem.Void {
		a.fail(diagnostics.ErrTypeMismatch, e, fmt.Sprintf("%q returns void and cannot be used as a value", e.Function))
		return 0, typesystem.Type{}, false
	}
	if !a.emitCall(e, info) {
		return 0, typesystem.Type{}, false
	}
	return a.table.ReturnSlot(info.ReturnType.Elem), info.ReturnType, true
}

// analyzeCallStatement handles a call used for effect: a bare
// `f(args);` expression statement, the only legal use of a void function.
func (a *Analyzer) analyzeCallStatement(e *ast.CallExpression) bool {
	info, ok := a.lookupFunctionCall(e)
	if !ok {
		return false
	}
	return a.emitCall(e, info)
}

// analyzeReadAssign handles `assignee = input();`: the destination's
// already-known declared type (scalar only) fixes what kind of token the
// VM parses stdin as, since input() carries no type of its own.
func (a *Analyzer) analyzeReadAssign(destType typesystem.Type) (int, typesystem.Type, bool) {
	if destType.IsArray() || destType.Elem == typesystem.Void || destType.Elem == typesystem.Dataframe {
		return 0, typesystem.Type{}, false
	}
	resAddr, ok := a.allocTemp(destType.Elem)
	if !ok {
		return 0, typesystem.Type{}, false
	}
	a.b.Emit(ir.READ, ir.Unused, ir.Unused, resAddr)
	return resAddr, destType, true
}

// analyzeReadCSVAssign handles `assignee = read_csv(path);`, the only
// expression that introduces Raoul's single process-wide dataframe (spec
// invariant I5). The dataframe always lives at address.DataframeAddress,
// a fixed slot rather than one handed out by a Scope's allocator.
func (a *Analyzer) analyzeReadCSVAssign(scope *symbols.Scope, name string, e *ast.ReadCSVExpression) bool {
	if a.dataframeSeen {
		a.fail(diagnostics.ErrMultipleDataframes, e, "a program may read at most one dataframe")
		return false
	}
	pathAddr, pathType, ok := a.analyzeExpr(e.Path)
	if !ok {
		return false
	}
	if !typesystem.CanCast(pathType, typesystem.Scalar(typesystem.String)) {
		a.fail(diagnostics.ErrTypeMismatch, e, "read_csv path must be a string")
		a.releaseIfTemp(pathAddr)
		return false
	}
	a.b.Emit(ir.READ_CSV, pathAddr, ir.Unused, address.DataframeAddress)
	a.releaseIfTemp(pathAddr)
	a.dataframeSeen = true
	scope.DeclareFixed(name, typesystem.Scalar(typesystem.Dataframe), address.DataframeAddress)
	return true
}

// analyzeDataframeOp handles the value-producing dataframe operations:
// get_rows, get_columns, average, std, median, variance, min, max, range,
// correlation. get_rows/get_columns yield the row/column count rather than
// the rows or names themselves, since Raoul's array types have a
// compile-time-fixed shape and a CSV's dimensions are only known at
// runtime.
func (a *Analyzer) analyzeDataframeOp(e *ast.DataframeOpExpression) (int, typesystem.Type, bool) {
	dfAddr, dfType, ok := a.analyzeExpr(e.Dataframe)
	if !ok {
		return 0, typesystem.Type{}, false
	}
	if dfType.IsArray() || dfType.Elem != typesystem.Dataframe {
		a.fail(diagnostics.ErrTypeMismatch, e, "expected a dataframe")
		a.releaseIfTemp(dfAddr)
		return 0, typesystem.Type{}, false
	}
	a.releaseIfTemp(dfAddr)

	op, ok := dataframeOpcodes[e.Op]
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, e, fmt.Sprintf("unknown dataframe operation %q", e.Op))
		return 0, typesystem.Type{}, false
	}

	wantArgs := 1
	switch e.Op {
	case "get_rows", "get_columns":
		wantArgs = 0
	case "correlation":
		wantArgs = 2
	}
	if len(e.Args) != wantArgs {
		a.fail(diagnostics.ErrArityMismatch, e, fmt.Sprintf("%s expects %d column argument(s), got %d", e.Op, wantArgs, len(e.Args)))
		return 0, typesystem.Type{}, false
	}

	argAddrs := make([]int, 0, len(e.Args))
	for _, arg := range e.Args {
		addr, typ, ok := a.analyzeExpr(arg)
		if !ok {
			return 0, typesystem.Type{}, false
		}
		if !typesystem.CanCast(typ, typesystem.Scalar(typesystem.String)) {
			a.fail(diagnostics.ErrTypeMismatch, arg, "dataframe column name must be a string")
			a.releaseIfTemp(addr)
			return 0, typesystem.Type{}, false
		}
		argAddrs = append(argAddrs, addr)
	}

	resultKind := typesystem.Float
	if e.Op == "get_rows" || e.Op == "get_columns" {
		resultKind = typesystem.Int
	}
	resAddr, ok := a.allocTemp(resultKind)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, e, "temporary address space exhausted")
		return 0, typesystem.Type{}, false
	}

	a1, a2 := ir.Unused, ir.Unused
	if len(argAddrs) >= 1 {
		a1 = argAddrs[0]
	}
	if len(argAddrs) >= 2 {
		a2 = argAddrs[1]
	}
	a.b.Emit(op, a1, a2, resAddr)
	for _, addr := range argAddrs {
		a.releaseIfTemp(addr)
	}
	return resAddr, typesystem.Scalar(resultKind), true
}
