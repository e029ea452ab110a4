package vm

import "github.com/raoul-lang/raoul/internal/address"

// bank is one Threshold-sized, four-kind memory region: a single slot
// count per partition (global, constant) or per activation record (local,
// temporary), grounded on original_source/src/vm/mod.rs's Memory struct,
// which likewise keeps one flat array per kind rather than a boxed-value
// cell per slot.
//
// Every address that lands in the same bank carries its slot as
// addr % address.Threshold regardless of kind or partition, since
// address.TypeRangeSize is always a multiple of address.Threshold — see
// address.KindOf/PartitionOf for the derivation this relies on.
type bank struct {
	ints    [address.Threshold]int64
	floats  [address.Threshold]float64
	strings [address.Threshold]string
	bools   [address.Threshold]bool
}

func slot(addr int) int { return addr % address.Threshold }

func (b *bank) readInt(addr int) int64       { return b.ints[slot(addr)] }
func (b *bank) readFloat(addr int) float64   { return b.floats[slot(addr)] }
func (b *bank) readString(addr int) string   { return b.strings[slot(addr)] }
func (b *bank) readBool(addr int) bool       { return b.bools[slot(addr)] }
func (b *bank) writeInt(addr int, v int64)   { b.ints[slot(addr)] = v }
func (b *bank) writeFloat(addr int, v float64) { b.floats[slot(addr)] = v }
func (b *bank) writeString(addr int, v string) { b.strings[slot(addr)] = v }
func (b *bank) writeBool(addr int, v bool)   { b.bools[slot(addr)] = v }

// bankFor resolves which bank addr's partition lives in, after pointer
// indirection has already been resolved by the caller. Dataframe/pointer
// addresses never reach here — callers special-case those first.
func (vm *VM) bankFor(addr int) *bank {
	switch address.PartitionOf(addr) {
	case address.Global:
		return &vm.global
	case address.Constant:
		return &vm.consts
	case address.Local:
		return &vm.frame().locals
	case address.Temporary:
		return &vm.frame().temps
	}
	return &vm.global
}

// resolve dereferences addr through the pointer table when it names a
// pointer-partition slot, returning the absolute address VM memory actually
// holds the value at. addr is returned unchanged otherwise (including for
// address.DataframeAddress, which callers handle separately).
func (vm *VM) resolve(addr int) int {
	if address.IsPointer(addr) {
		return vm.pointers[addr]
	}
	return addr
}

// kindOf resolves addr (through pointer indirection) and reports its
// atomic kind.
func (vm *VM) kindOf(addr int) address.Kind {
	return address.KindOf(vm.resolve(addr))
}

// readInt/readFloat/readString/readBool read the typed value at addr,
// dereferencing through a pointer slot first.
func (vm *VM) readInt(addr int) int64 {
	a := vm.resolve(addr)
	return vm.bankFor(a).readInt(a)
}

func (vm *VM) readFloat(addr int) float64 {
	a := vm.resolve(addr)
	return vm.bankFor(a).readFloat(a)
}

func (vm *VM) readString(addr int) string {
	a := vm.resolve(addr)
	return vm.bankFor(a).readString(a)
}

func (vm *VM) readBool(addr int) bool {
	a := vm.resolve(addr)
	return vm.bankFor(a).readBool(a)
}

// readNumeric reads an int or float operand as a float64, the uniform
// representation every arithmetic/comparison op computes over before
// narrowing the result back down per the destination's kind.
func (vm *VM) readNumeric(addr int) float64 {
	if vm.kindOf(addr) == address.KindInt {
		return float64(vm.readInt(addr))
	}
	return vm.readFloat(addr)
}

func (vm *VM) writeInt(addr int, v int64) {
	a := vm.resolve(addr)
	vm.bankFor(a).writeInt(a, v)
}

func (vm *VM) writeFloat(addr int, v float64) {
	a := vm.resolve(addr)
	vm.bankFor(a).writeFloat(a, v)
}

func (vm *VM) writeString(addr int, v string) {
	a := vm.resolve(addr)
	vm.bankFor(a).writeString(a, v)
}

func (vm *VM) writeBool(addr int, v bool) {
	a := vm.resolve(addr)
	vm.bankFor(a).writeBool(a, v)
}
