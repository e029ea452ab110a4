package vm

import "github.com/raoul-lang/raoul/internal/ir"

// frame is one activation record: a function's own Local and Temporary
// memory, plus the instruction pointer execution resumes at in the caller
// once this frame is popped (by RETURN or ENDFUNC).
//
// Local and Temporary addresses are only meaningful relative to the
// function that owns them — every function's symbols.Scope starts
// allocating both partitions from zero, so two unrelated functions'
// address spaces legitimately overlap. Giving every frame its own bank
// pair is what makes that overlap safe, and is what makes recursion work
// at all: each active call of the same function gets its own locals.
type frame struct {
	meta     *ir.FunctionMeta
	locals   bank
	temps    bank
	returnIP int
}

// stagedArg is one value captured by a PARAM quadruple between a call's
// ERA and GOSUB, tagged with the kind it was read as so GOSUB can write it
// into the callee's parameter slot with the right typed store.
type stagedArg struct {
	kind  argKind
	ival  int64
	fval  float64
	sval  string
	bval  bool
}

type argKind int

const (
	argInt argKind = iota
	argFloat
	argString
	argBool
)

// callStaging is one pending call's argument list, built up between ERA and
// GOSUB. Calls nest — an argument expression can itself be a call — so the
// VM keeps a stack of these rather than a single pending call, pushed by
// ERA and popped by GOSUB in strict LIFO order.
type callStaging struct {
	args []stagedArg
}
