package ir

import "github.com/raoul-lang/raoul/internal/address"

// Builder accumulates a Program's quadruple list as the analyzer walks the
// AST. It owns the constant table and the pointer allocator — both are
// shared across the whole compilation, not scoped per function, grounded
// on original_source's QuadrupleManager holding its own ConstantMemory and
// PointerMemory fields directly rather than per-Function.
type Builder struct {
	Quads    []Quadruple
	Consts   *address.ConstantMemory
	Pointers *address.PointerAllocator
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		Consts:   address.NewConstantMemory(),
		Pointers: address.NewPointerAllocator(),
	}
}

// Emit appends a quadruple and returns its index.
func (b *Builder) Emit(op Op, arg1, arg2, res int) int {
	b.Quads = append(b.Quads, Quadruple{Op: op, Arg1: arg1, Arg2: arg2, Res: res})
	return len(b.Quads) - 1
}

// Here returns the index the next Emit call will use — the IP a jump
// targeting "the next instruction" should record.
func (b *Builder) Here() int {
	return len(b.Quads)
}

// PatchRes fills in the Res field of a previously emitted quadruple,
// resolving a pending jump (spec §4.3's GOTOF/GOTO "push its index... fill
// the slot with the current IP").
func (b *Builder) PatchRes(index int, res int) {
	b.Quads[index].Res = res
}

// InternConst interns a literal value of kind into the shared constant
// table and returns its address.
func (b *Builder) InternConst(kind address.Kind, value any) (int, bool) {
	return b.Consts.Intern(kind, value)
}

// AllocPointer mints a fresh pointer-partition address for a linearized
// array index (spec §4.2 "a linearization... via POINTER quadruples").
func (b *Builder) AllocPointer() int {
	return b.Pointers.Alloc()
}
