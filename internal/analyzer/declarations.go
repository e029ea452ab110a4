package analyzer

import (
	"fmt"

	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// declareFunctions is the forward pass of spec §4.2: register every
// signature before analyzing any body, so calls resolve regardless of
// textual order.
func (a *Analyzer) declareFunctions(prog *ast.Program) {
	for _, fn := range prog.Functions {
		a.declareFunction(fn)
	}
	if prog.Main == nil {
		a.errors = append(a.errors, diagnostics.NewAt(diagnostics.ErrMissingMain, prog.Pos(),
			"program has no main function"))
		return
	}
	if len(prog.Main.Params) > 0 {
		a.fail(diagnostics.ErrArityMismatch, prog.Main, "main must take no parameters")
	}
	if prog.Main.ReturnType != "void" {
		a.fail(diagnostics.ErrTypeMismatch, prog.Main, "main must return void")
	}
	a.declareFunction(prog.Main)
}

func (a *Analyzer) declareFunction(fn *ast.FunctionDecl) {
	if _, exists := a.table.Functions[fn.Name]; exists {
		a.fail(diagnostics.ErrDuplicateFunction, fn, fmt.Sprintf("function %q already declared", fn.Name))
		return
	}
	retType, ok := parseTypeName(fn.ReturnType)
	if !ok {
		a.fail(diagnostics.ErrTypeMismatch, fn, fmt.Sprintf("unknown return type %q", fn.ReturnType))
		retType = typesystem.Scalar(typesystem.Void)
	}
	paramNames := make([]string, len(fn.Params))
	paramTypes := make([]typesystem.Type, len(fn.Params))
	for i, p := range fn.Params {
		paramNames[i] = p.Name
		pt, ok := parseTypeName(p.Type)
		if !ok {
			a.fail(diagnostics.ErrTypeMismatch, fn, fmt.Sprintf("unknown parameter type %q", p.Type))
			pt = typesystem.Scalar(typesystem.Int)
		}
		paramTypes[i] = pt
	}
	info := a.table.DeclareFunction(fn.Name, paramNames, paramTypes, retType)
	for i, p := range fn.Params {
		info.Scope.Declare(p.Name, paramTypes[i], true)
		_ = p
	}
}

func parseTypeName(name string) (typesystem.Type, bool) {
	switch name {
	case "int":
		return typesystem.Scalar(typesystem.Int), true
	case "float":
		return typesystem.Scalar(typesystem.Float), true
	case "bool":
		return typesystem.Scalar(typesystem.Bool), true
	case "string":
		return typesystem.Scalar(typesystem.String), true
	case "void":
		return typesystem.Scalar(typesystem.Void), true
	}
	return typesystem.Type{}, false
}
