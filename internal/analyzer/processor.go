package analyzer

import (
	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/pipeline"
	"github.com/raoul-lang/raoul/internal/symbols"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// Processor wires Analyzer into the compilation pipeline: forward-declare
// every function, walk global assignments and each function body in turn,
// then materialize the finished ir.Program.
type Processor struct{}

// NewProcessor creates a pipeline.Processor running the analyzer stage.
func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Program == nil {
		return ctx
	}
	a := New()
	a.run(ctx.Program)

	ctx.Symbols = a.table
	ctx.IR = a.buildProgram()
	for _, err := range a.errors {
		ctx.AddError(err)
	}
	return ctx
}

// run performs the analyzer's two passes: declareFunctions builds the
// whole-program function table first (spec §4.2), then each body is
// walked with that table already complete, so calls resolve regardless of
// declaration order, including recursion.
func (a *Analyzer) run(prog *ast.Program) {
	a.declareFunctions(prog)

	// Execution enters at the global initializers; a GOTO after them jumps
	// over the other function bodies to main's first quadruple.
	a.table.MainEntry = a.b.Here()
	for _, g := range prog.Globals {
		a.analyzeStatement(g)
	}
	toMain := a.b.Emit(ir.GOTO, ir.Unused, ir.Unused, ir.Unused)

	for _, fn := range prog.Functions {
		a.analyzeFunctionBody(fn)
	}

	if prog.Main != nil {
		a.b.PatchRes(toMain, a.b.Here())
		a.analyzeFunctionBody(prog.Main)
	}

	a.b.Emit(ir.END, ir.Unused, ir.Unused, ir.Unused)
	a.patchPendingCalls()
}

func (a *Analyzer) analyzeFunctionBody(fn *ast.FunctionDecl) {
	info, ok := a.table.Functions[fn.Name]
	if !ok {
		return
	}
	info.StartIP = a.b.Here()
	a.cur = &funcState{info: info, scope: info.Scope}
	a.analyzeStatements(fn.Body)
	if info.ReturnType.Elem != typesystem.Void && !blockAlwaysReturns(fn.Body) {
		a.fail(diagnostics.ErrMissingReturn, fn, "not every path returns a value")
	}
	if fn.Name != "main" {
		a.b.Emit(ir.ENDFUNC, ir.Unused, ir.Unused, ir.Unused)
	}
	a.cur = nil
}

// blockAlwaysReturns reports whether every control-flow path through stmts
// ends in a return statement — the case a trailing `return` at the end of
// the block, or an if/else whose both arms always return.
func blockAlwaysReturns(stmts []ast.Statement) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ReturnStatement:
			return true
		case *ast.IfStatement:
			if n.Alternative != nil && blockAlwaysReturns(n.Consequence) && blockAlwaysReturns(n.Alternative) {
				return true
			}
		}
	}
	return false
}

// buildProgram materializes the finished ir.Program from the builder's
// accumulated quadruples and constant table plus the symbol table's
// function signatures.
func (a *Analyzer) buildProgram() *ir.Program {
	prog := ir.NewProgram()
	prog.Quadruples = a.b.Quads
	prog.MainEntry = a.table.MainEntry

	for _, entry := range a.b.Consts.Entries() {
		prog.Constants = append(prog.Constants, ir.ConstEntry{Addr: entry.Addr, Kind: int(entry.Kind), Value: entry.Value})
	}

	for name, info := range a.table.Functions {
		locals, temps := info.Scope.ResourceCounts()
		prog.Functions[name] = &ir.FunctionMeta{
			Name:       name,
			StartIP:    info.StartIP,
			ParamAddrs: paramAddrs(info),
			ReturnKind: int(info.ReturnType.Elem),
			Locals:     locals,
			Temps:      temps,
		}
	}
	return prog
}

func paramAddrs(info *symbols.FunctionInfo) []int {
	addrs := make([]int, len(info.ParamNames))
	for i, name := range info.ParamNames {
		if sym, ok := info.Scope.Lookup(name); ok {
			addrs[i] = sym.Address
		} else {
			addrs[i] = address.Pointer.Base() // unreachable: params are declared in declareFunction
		}
	}
	return addrs
}
