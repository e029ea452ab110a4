package analyzer

import (
	"fmt"

	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/symbols"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// canReassign governs the narrower cast set a plain `name = value;` may use
// once name already has an inferred type, distinct from the broader
// typesystem.CanCast matrix that governs argument passing and other
// value-consuming sites. A variable's type is pinned at its first
// assignment (Non-goal: "mutable reassignment of a variable's type"), so
// only int/float — which spec §3 treats as interchangeable numeric
// storage, not a type change — may cross kinds here; string/bool keep
// their exact-kind requirement even though typesystem.CanCast would permit
// string→{int,float} elsewhere.
func canReassign(from, to typesystem.Type) bool {
	if from.IsArray() || to.IsArray() {
		return from.Equal(to)
	}
	if from.Elem == to.Elem {
		return true
	}
	return from.Elem.IsNumeric() && to.Elem.IsNumeric()
}

func (a *Analyzer) analyzeStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		a.analyzeStatement(s)
	}
}

func (a *Analyzer) analyzeStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.AssignStatement:
		a.analyzeAssign(n)
	case *ast.PrintStatement:
		a.analyzePrint(n)
	case *ast.IfStatement:
		a.analyzeIf(n)
	case *ast.WhileStatement:
		a.analyzeWhile(n)
	case *ast.ForStatement:
		a.analyzeFor(n)
	case *ast.ReturnStatement:
		a.analyzeReturn(n)
	case *ast.PlotStatement:
		a.analyzePlot(n)
	case *ast.HistStatement:
		a.analyzeHist(n)
	case *ast.ExpressionStatement:
		a.analyzeExprStatement(n)
	default:
		a.fail(diagnostics.ErrTypeMismatch, s, "unsupported statement")
	}
}

// analyzeAssign handles every assignee/value combination the grammar
// admits: a plain scalar, the three value forms restricted to direct
// assignment (array literal, input(), read_csv()), and an indexed element
// store.
func (a *Analyzer) analyzeAssign(n *ast.AssignStatement) {
	scope := a.currentScope()
	if n.Global {
		scope = a.table.Global
	}

	if len(n.Index) > 0 {
		a.analyzeIndexedAssign(n, scope)
		return
	}

	switch v := n.Value.(type) {
	case *ast.ArrayLiteral:
		a.analyzeArrayLiteralAssign(n, v)
		return
	case *ast.ReadCSVExpression:
		a.analyzeReadCSVAssign(scope, n.Name, v)
		return
	case *ast.ReadExpression:
		a.analyzeReadAssignStatement(n, scope, v)
		return
	}

	valAddr, valType, ok := a.analyzeExpr(n.Value)
	if !ok {
		return
	}

	// A bare (non-`global`-prefixed) assignee reassigns whatever the name
	// already resolves to — local shadowing global, per the two-level
	// lookup of resolveVariable — rather than always shadowing into the
	// local scope. `global` is only needed to introduce a brand new global
	// from inside a function body; reassigning one that already exists
	// does not require it.
	sym, existed := scope.Lookup(n.Name)
	if !existed && !n.Global {
		sym, existed = a.resolveVariable(n.Name)
	}
	if existed {
		if !canReassign(valType, sym.Type) {
			a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("cannot assign %s to %q of type %s", valType, n.Name, sym.Type))
			a.releaseIfTemp(valAddr)
			return
		}
		a.b.Emit(ir.ASSIGN, valAddr, ir.Unused, sym.Address)
		a.releaseIfTemp(valAddr)
		return
	}

	sym, ok = scope.Declare(n.Name, valType, false)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("address space exhausted for type %s", valType))
		a.releaseIfTemp(valAddr)
		return
	}
	a.b.Emit(ir.ASSIGN, valAddr, ir.Unused, sym.Address)
	a.releaseIfTemp(valAddr)
}

// analyzeReadAssignStatement handles `assignee = input();`. The
// destination must already be declared — input() carries no type of its
// own, so there must be a prior declaration to borrow one from.
func (a *Analyzer) analyzeReadAssignStatement(n *ast.AssignStatement, scope *symbols.Scope, v *ast.ReadExpression) {
	sym, existed := scope.Lookup(n.Name)
	if !existed {
		a.fail(diagnostics.ErrUndeclaredIdentifier, n, fmt.Sprintf("%q must be declared before it can be assigned from input()", n.Name))
		return
	}
	addr, _, ok := a.analyzeReadAssign(sym.Type)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, v, fmt.Sprintf("input() cannot be assigned to %q of type %s", n.Name, sym.Type))
		return
	}
	a.b.Emit(ir.ASSIGN, addr, ir.Unused, sym.Address)
	a.releaseIfTemp(addr)
}

// analyzeIndexedAssign handles `assignee[i]... = expr;`. Unlike a plain
// assignment, an indexed store can never create its target: the array's
// shape only comes from a prior whole-array literal assignment. Applying
// `global` here without such a prior declaration is InvalidGlobalPrefix
// (spec §7) — a plain global assignment can still create a fresh variable,
// but an indexed one has nothing to infer a shape from.
func (a *Analyzer) analyzeIndexedAssign(n *ast.AssignStatement, scope *symbols.Scope) {
	sym, existed := scope.Lookup(n.Name)
	if !existed {
		if n.Global {
			a.fail(diagnostics.ErrInvalidGlobalPrefix, n, fmt.Sprintf("global %q cannot be created by an indexed assignment", n.Name))
		} else {
			a.fail(diagnostics.ErrUndeclaredIdentifier, n, fmt.Sprintf("undeclared identifier %q", n.Name))
		}
		return
	}
	if !sym.Type.IsArray() {
		a.fail(diagnostics.ErrNotAnArray, n, fmt.Sprintf("%q is not an array", n.Name))
		return
	}

	ptr, elemType, ok := a.emitElementAddress(n, sym, n.Index)
	if !ok {
		return
	}
	valAddr, valType, ok := a.analyzeExpr(n.Value)
	if !ok {
		return
	}
	if !typesystem.CanCast(valType, elemType) {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("cannot assign %s into a %s array element", valType, elemType))
		a.releaseIfTemp(valAddr)
		return
	}
	a.b.Emit(ir.ASSIGN, valAddr, ir.Unused, ptr)
	a.releaseIfTemp(valAddr)
}

func (a *Analyzer) analyzePrint(n *ast.PrintStatement) {
	for _, arg := range n.Args {
		addr, _, ok := a.analyzeExpr(arg)
		if !ok {
			continue
		}
		a.b.Emit(ir.PRINT, addr, ir.Unused, ir.Unused)
		a.releaseIfTemp(addr)
	}
	a.b.Emit(ir.PRINTNL, ir.Unused, ir.Unused, ir.Unused)
}

func (a *Analyzer) analyzeIf(n *ast.IfStatement) {
	condAddr, condType, ok := a.analyzeExpr(n.Condition)
	if !ok {
		return
	}
	if condType.IsArray() || condType.Elem != typesystem.Bool {
		a.fail(diagnostics.ErrTypeMismatch, n, "if condition must be bool")
		a.releaseIfTemp(condAddr)
		return
	}
	gotoF := a.b.Emit(ir.GOTOF, condAddr, ir.Unused, ir.Unused)
	a.releaseIfTemp(condAddr)
	a.analyzeStatements(n.Consequence)

	if n.Alternative != nil {
		gotoEnd := a.b.Emit(ir.GOTO, ir.Unused, ir.Unused, ir.Unused)
		a.b.PatchRes(gotoF, a.b.Here())
		a.analyzeStatements(n.Alternative)
		a.b.PatchRes(gotoEnd, a.b.Here())
		return
	}
	a.b.PatchRes(gotoF, a.b.Here())
}

func (a *Analyzer) analyzeWhile(n *ast.WhileStatement) {
	checkIP := a.b.Here()
	condAddr, condType, ok := a.analyzeExpr(n.Condition)
	if !ok {
		return
	}
	if condType.IsArray() || condType.Elem != typesystem.Bool {
		a.fail(diagnostics.ErrTypeMismatch, n, "while condition must be bool")
		a.releaseIfTemp(condAddr)
		return
	}
	gotoF := a.b.Emit(ir.GOTOF, condAddr, ir.Unused, ir.Unused)
	a.releaseIfTemp(condAddr)
	a.analyzeStatements(n.Body)
	a.b.Emit(ir.GOTO, ir.Unused, ir.Unused, checkIP)
	a.b.PatchRes(gotoF, a.b.Here())
}

// analyzeFor handles `for (v = start to limit) body`, with an inclusive
// upper bound (spec §4.2) and a dedicated INC quadruple for the counter
// step, grounded on original_source treating `for` as syntactic sugar over
// a counted while loop.
func (a *Analyzer) analyzeFor(n *ast.ForStatement) {
	startAddr, startType, ok := a.analyzeExpr(n.Start)
	if !ok {
		return
	}
	if !typesystem.CanCast(startType, typesystem.Scalar(typesystem.Int)) {
		a.fail(diagnostics.ErrTypeMismatch, n, "for-loop start value must be numeric")
		a.releaseIfTemp(startAddr)
		return
	}
	limitAddr, limitType, ok := a.analyzeExpr(n.Limit)
	if !ok {
		a.releaseIfTemp(startAddr)
		return
	}
	if !typesystem.CanCast(limitType, typesystem.Scalar(typesystem.Int)) {
		a.fail(diagnostics.ErrTypeMismatch, n, "for-loop limit value must be numeric")
		a.releaseIfTemp(startAddr)
		a.releaseIfTemp(limitAddr)
		return
	}

	scope := a.currentScope()
	sym, existed := scope.Lookup(n.Var)
	if !existed {
		sym, ok = scope.Declare(n.Var, typesystem.Scalar(typesystem.Int), false)
		if !ok {
			a.fail(diagnostics.ErrTypeMismatch, n, "address space exhausted for type int")
			a.releaseIfTemp(startAddr)
			a.releaseIfTemp(limitAddr)
			return
		}
	} else if sym.Type.IsArray() || sym.Type.Elem != typesystem.Int {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("for-loop variable %q must be int", n.Var))
		a.releaseIfTemp(startAddr)
		a.releaseIfTemp(limitAddr)
		return
	}

	a.b.Emit(ir.ASSIGN, startAddr, ir.Unused, sym.Address)
	a.releaseIfTemp(startAddr)

	checkIP := a.b.Here()
	leAddr, ok := a.allocTemp(typesystem.Bool)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, n, "temporary address space exhausted")
		a.releaseIfTemp(limitAddr)
		return
	}
	a.b.Emit(ir.LTE, sym.Address, limitAddr, leAddr)
	gotoF := a.b.Emit(ir.GOTOF, leAddr, ir.Unused, ir.Unused)
	a.releaseIfTemp(leAddr)

	a.analyzeStatements(n.Body)

	a.b.Emit(ir.INC, ir.Unused, ir.Unused, sym.Address)
	a.b.Emit(ir.GOTO, ir.Unused, ir.Unused, checkIP)
	a.b.PatchRes(gotoF, a.b.Here())
	a.releaseIfTemp(limitAddr)
}

func (a *Analyzer) analyzeReturn(n *ast.ReturnStatement) {
	if a.cur == nil {
		a.fail(diagnostics.ErrTypeMismatch, n, "return outside of a function")
		return
	}
	ret := a.cur.info.ReturnType

	if n.Value == nil {
		if ret.Elem != typesystem.Void {
			a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("%q must return a value of type %s", a.cur.info.Name, ret))
			return
		}
		a.b.Emit(ir.RETURN, ir.Unused, ir.Unused, ir.Unused)
		return
	}

	if ret.Elem == typesystem.Void {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("%q is void and cannot return a value", a.cur.info.Name))
		return
	}
	valAddr, valType, ok := a.analyzeExpr(n.Value)
	if !ok {
		return
	}
	if !typesystem.CanCast(valType, ret) {
		a.fail(diagnostics.ErrTypeMismatch, n, fmt.Sprintf("cannot return %s from a function declared to return %s", valType, ret))
		a.releaseIfTemp(valAddr)
		return
	}
	slot := a.table.ReturnSlot(ret.Elem)
	a.b.Emit(ir.ASSIGN, valAddr, ir.Unused, slot)
	a.releaseIfTemp(valAddr)
	a.b.Emit(ir.RETURN, ir.Unused, ir.Unused, ir.Unused)
}

func (a *Analyzer) analyzeDataframeHandle(e ast.Expression) bool {
	addr, typ, ok := a.analyzeExpr(e)
	if !ok {
		return false
	}
	a.releaseIfTemp(addr)
	if typ.IsArray() || typ.Elem != typesystem.Dataframe {
		a.fail(diagnostics.ErrTypeMismatch, e, "expected a dataframe")
		return false
	}
	return true
}

func (a *Analyzer) analyzePlot(n *ast.PlotStatement) {
	if !a.analyzeDataframeHandle(n.Dataframe) {
		return
	}
	xAddr, xType, ok := a.analyzeExpr(n.XCol)
	if !ok {
		return
	}
	if !typesystem.CanCast(xType, typesystem.Scalar(typesystem.String)) {
		a.fail(diagnostics.ErrTypeMismatch, n, "plot column name must be a string")
		a.releaseIfTemp(xAddr)
		return
	}
	yAddr, yType, ok := a.analyzeExpr(n.YCol)
	if !ok {
		a.releaseIfTemp(xAddr)
		return
	}
	if !typesystem.CanCast(yType, typesystem.Scalar(typesystem.String)) {
		a.fail(diagnostics.ErrTypeMismatch, n, "plot column name must be a string")
		a.releaseIfTemp(xAddr)
		a.releaseIfTemp(yAddr)
		return
	}
	a.b.Emit(ir.PLOT, xAddr, yAddr, ir.Unused)
	a.releaseIfTemp(xAddr)
	a.releaseIfTemp(yAddr)
}

func (a *Analyzer) analyzeHist(n *ast.HistStatement) {
	if !a.analyzeDataframeHandle(n.Dataframe) {
		return
	}
	colAddr, colType, ok := a.analyzeExpr(n.Column)
	if !ok {
		return
	}
	if !typesystem.CanCast(colType, typesystem.Scalar(typesystem.String)) {
		a.fail(diagnostics.ErrTypeMismatch, n, "histogram column name must be a string")
		a.releaseIfTemp(colAddr)
		return
	}
	binsAddr, binsType, ok := a.analyzeExpr(n.Bins)
	if !ok {
		a.releaseIfTemp(colAddr)
		return
	}
	if !typesystem.CanCast(binsType, typesystem.Scalar(typesystem.Int)) {
		a.fail(diagnostics.ErrTypeMismatch, n, "histogram bin count must be numeric")
		a.releaseIfTemp(colAddr)
		a.releaseIfTemp(binsAddr)
		return
	}
	a.b.Emit(ir.HIST, colAddr, binsAddr, ir.Unused)
	a.releaseIfTemp(colAddr)
	a.releaseIfTemp(binsAddr)
}

func (a *Analyzer) analyzeExprStatement(n *ast.ExpressionStatement) {
	if call, ok := n.Expr.(*ast.CallExpression); ok {
		a.analyzeCallStatement(call)
		return
	}
	addr, _, ok := a.analyzeExpr(n.Expr)
	if ok {
		a.releaseIfTemp(addr)
	}
}
