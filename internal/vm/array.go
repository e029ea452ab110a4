package vm

import "github.com/raoul-lang/raoul/internal/ir"

// execVerify bounds-checks an array index against its dimension, both
// known here as plain integers: the index is a memory address to read,
// the dimension is a compile-time literal embedded directly in Arg2.
func (vm *VM) execVerify(q ir.Quadruple) error {
	idx := vm.readInt(q.Arg1)
	dim := int64(q.Arg2)
	if idx < 0 || idx >= dim {
		return vm.fail(OutOfBounds, "index %d out of bounds for dimension %d", idx, dim)
	}
	return nil
}

// execPointer linearizes an array access into a single indirection slot:
// ptr := base + offset, recorded in the pointer table rather than in a
// typed bank, since a pointer's target can be any kind depending on the
// array it was computed from.
func (vm *VM) execPointer(q ir.Quadruple) {
	offset := vm.readInt(q.Arg2)
	vm.pointers[q.Res] = q.Arg1 + int(offset)
}
