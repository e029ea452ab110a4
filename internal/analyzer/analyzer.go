// Package analyzer implements semantic analysis and, interleaved with it,
// IR emission (spec §4.2/§4.3 describe these as one conceptual pass).
//
// The interleaving follows original_source's QuadrupleManager, which
// likewise type-checks and emits quadruples in the same walk rather than
// building a second, separately-typed tree first. Unlike original's
// single-pass parser-cum-codegen, this pipeline already has a materialized
// ast.Program (spec §2's architecture diagram shows AST as a real artifact
// between Parser and SemAnalyzer), so the "operand/operator/jump stacks"
// of spec §4.3 are realized as an ordinary post-order walk of that tree —
// the Go call stack plays the role of the operand/operator stacks, and
// pending jump fixups are plain local variables (ir.Builder.PatchRes),
// rather than an explicit stack object. The quadruples produced are the
// same either way.
package analyzer

import (
	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/symbols"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// funcState tracks per-function analysis state: its own scope and
// signature, so statement/expression analysis can resolve locals and the
// return slot without threading the FunctionDecl through every call.
type funcState struct {
	info  *symbols.FunctionInfo
	scope *symbols.Scope
}

// pendingCall records a call site's ERA/GOSUB quadruples whose target
// function size and entry point are not yet known — the callee may be
// analyzed later in program order, or may be the caller itself
// (recursion). Both are patched once every function body has been walked.
type pendingCall struct {
	eraIndex   int
	gosubIndex int
	name       string
}

// Analyzer walks an ast.Program, checking types and emitting quadruples.
type Analyzer struct {
	table *symbols.Table
	b     *ir.Builder

	errors []*diagnostics.Error

	cur           *funcState
	dataframeSeen bool
	pendingCalls  []pendingCall
}

// patchPendingCalls fills in every call site's ERA/GOSUB operands now that
// every function's StartIP and resource counts are final.
func (a *Analyzer) patchPendingCalls() {
	for _, p := range a.pendingCalls {
		info, ok := a.table.Functions[p.name]
		if !ok {
			continue
		}
		locals, temps := info.Scope.ResourceCounts()
		a.b.Quads[p.eraIndex].Arg1 = locals + temps
		a.b.Quads[p.gosubIndex].Arg1 = info.StartIP
	}
}

// New creates an Analyzer with a fresh symbol table and IR builder.
func New() *Analyzer {
	return &Analyzer{
		table: symbols.NewTable(),
		b:     ir.NewBuilder(),
	}
}

// fail records a diagnostic at node's position without aborting the walk —
// the analyzer accumulates errors across a whole function body rather
// than stopping at the first (spec §7).
func (a *Analyzer) fail(code diagnostics.Code, node ast.Node, message string) {
	a.errors = append(a.errors, diagnostics.NewAt(code, node.Pos(), message))
}

// currentScope returns the scope a bare (non-global) assignee or
// expression identifier resolves against: the current function's locals,
// or the global scope for top-level statements and global-prefixed ones.
func (a *Analyzer) currentScope() *symbols.Scope {
	if a.cur != nil {
		return a.cur.scope
	}
	return a.table.Global
}

// resolveVariable looks up name in the current function scope, falling
// back to the global scope — the two-level lookup spec §3 describes.
func (a *Analyzer) resolveVariable(name string) (*symbols.Symbol, bool) {
	if a.cur != nil {
		if sym, ok := a.cur.scope.Lookup(name); ok {
			return sym, true
		}
	}
	return a.table.Global.Lookup(name)
}

// releaseIfTemp returns addr to its scope's temporary pool if it is a
// temporary address, matching original's safe_remove_temp_address: a
// temporary is freed immediately after the quadruple consuming it is
// emitted, so sibling subexpressions can reuse the slot.
func (a *Analyzer) releaseIfTemp(addr int) {
	if addr == ir.Unused {
		return
	}
	if address.PartitionOf(addr) != address.Temporary {
		return
	}
	a.currentScope().ReleaseTemp(addr)
}

func elemAddrKind(k typesystem.Kind) address.Kind {
	switch k {
	case typesystem.Int:
		return address.KindInt
	case typesystem.Float:
		return address.KindFloat
	case typesystem.String:
		return address.KindString
	case typesystem.Bool:
		return address.KindBool
	}
	return address.KindInt
}

// allocTemp allocates a temporary of kind k from the current scope.
func (a *Analyzer) allocTemp(k typesystem.Kind) (int, bool) {
	return a.currentScope().AllocTemp(elemAddrKind(k))
}

var binaryOps = map[string]ir.Op{
	"+": ir.ADD, "-": ir.SUB, "*": ir.MUL, "/": ir.DIV,
	"==": ir.EQ, "!=": ir.NE, "<": ir.LT, ">": ir.GT, "<=": ir.LTE, ">=": ir.GTE,
	"and": ir.AND, "or": ir.OR,
}
