// Package address implements Raoul's partitioned virtual address space.
//
// Every value the compiler ever talks about — a global, a local, a
// temporary, a literal constant, a pointer slot — is a single integer.
// The partitioning scheme (fixed-size per-type ranges, a threshold per
// range, pointer addresses living past every typed range) is carried over
// unchanged from the address manager of the original implementation
// (_examples/original_source/src/address/mod.rs): Threshold and
// TypeRangeSize are the same constants, and PartitionOf/KindOf recover the
// same (scope, kind) pair from a bare address that original's
// Address::is_temp_address/is_pointer_address and Memory::get_index did.
package address

// Threshold is the number of addresses reserved per (partition, kind) pair.
const Threshold = 250

// TypeRangeSize is the width of one partition: one Threshold-sized range
// per atomic kind (int, float, string, bool).
const TypeRangeSize = Threshold * 4

// Partition identifies which region of the address space an address falls
// in: global variable, local (frame-relative) variable, temporary, literal
// constant, or pointer indirection slot.
type Partition int

const (
	Global Partition = iota
	Local
	Temporary
	Constant
	Pointer
)

func (p Partition) Base() int { return int(p) * TypeRangeSize }

// DataframeAddress is the single fixed slot for the process-wide dataframe
// value (spec invariant I5: at most one dataframe). It lives past the
// pointer partition, mirroring original's fixed constant for the
// dataframe's own address.
const DataframeAddress = 5 * TypeRangeSize

// Kind is the atomic type an address's slot holds, within a partition.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
)

func (k Kind) offset() int { return int(k) * Threshold }

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "?"
}

// PartitionOf recovers which partition addr was allocated from.
func PartitionOf(addr int) Partition {
	if addr >= DataframeAddress {
		return Pointer // treated as indirection-range for dispatch purposes
	}
	return Partition(addr / TypeRangeSize)
}

// IsPointer reports whether addr must be indirected through PointerMemory
// before use.
func IsPointer(addr int) bool {
	return addr >= Pointer.Base() && addr < DataframeAddress
}

// KindOf recovers the atomic kind of a (non-pointer, non-dataframe) address.
func KindOf(addr int) Kind {
	offset := addr % TypeRangeSize
	return Kind(offset / Threshold)
}

// Manager hands out addresses within one partition, Threshold slots per
// kind, and reports resource counts for activation-record sizing.
type Manager struct {
	partition Partition
	counters  [4]int
}

// NewManager creates a Manager allocating out of partition p.
func NewManager(p Partition) *Manager {
	return &Manager{partition: p}
}

// Alloc reserves amount contiguous slots of kind (amount defaults to 1 when
// <= 0, matching a scalar declaration) and returns the base address of the
// run. ok is false if the kind's Threshold would be exceeded.
func (m *Manager) Alloc(kind Kind, amount int) (addr int, ok bool) {
	if amount <= 0 {
		amount = 1
	}
	if m.counters[kind]+amount > Threshold {
		return 0, false
	}
	addr = m.partition.Base() + kind.offset() + m.counters[kind]
	m.counters[kind] += amount
	return addr, true
}

// Size returns the total number of slots allocated so far, across all
// kinds — used to size an activation record (spec §4.2 "resource counts").
func (m *Manager) Size() int {
	total := 0
	for _, c := range m.counters {
		total += c
	}
	return total
}

// Counts returns a copy of the per-kind allocation counts.
func (m *Manager) Counts() [4]int {
	return m.counters
}

// TempManager allocates from the Temporary partition with LIFO reuse of
// addresses released after a consuming quadruple is emitted, exactly as
// original's TempAddressManager does for the IR generator's operand stack.
type TempManager struct {
	mgr      *Manager
	released map[Kind][]int
}

// NewTempManager creates a TempManager.
func NewTempManager() *TempManager {
	return &TempManager{mgr: NewManager(Temporary), released: make(map[Kind][]int)}
}

// Alloc returns a temporary address of kind, preferring a released one.
func (t *TempManager) Alloc(kind Kind) (int, bool) {
	if stack := t.released[kind]; len(stack) > 0 {
		addr := stack[len(stack)-1]
		t.released[kind] = stack[:len(stack)-1]
		return addr, true
	}
	return t.mgr.Alloc(kind, 1)
}

// Release returns addr to the pool for its kind, for immediate reuse by a
// later Alloc of the same kind.
func (t *TempManager) Release(addr int) {
	kind := KindOf(addr)
	t.released[kind] = append(t.released[kind], addr)
}

// Size returns the high-water mark of temporaries allocated — released
// addresses are still counted, since the activation record must be sized
// for the worst case within the function, not the steady state.
func (t *TempManager) Size() int {
	return t.mgr.Size()
}

// ConstEntry is one interned literal, materialized into VM memory at
// program load.
type ConstEntry struct {
	Addr  int
	Kind  Kind
	Value any
}

// ConstantMemory interns literal values by (kind, value), de-duplicating
// repeated literals to a single address, matching original's
// ConstantMemory::add scan-before-allocate behavior.
type ConstantMemory struct {
	mgr     *Manager
	values  map[Kind]map[any]int
	ordered []ConstEntry
}

// NewConstantMemory creates an empty constant table.
func NewConstantMemory() *ConstantMemory {
	return &ConstantMemory{mgr: NewManager(Constant), values: make(map[Kind]map[any]int)}
}

// Intern returns the address for value of kind, allocating and recording a
// new slot only the first time this (kind, value) pair is seen.
func (c *ConstantMemory) Intern(kind Kind, value any) (int, bool) {
	byValue, ok := c.values[kind]
	if !ok {
		byValue = make(map[any]int)
		c.values[kind] = byValue
	}
	if addr, ok := byValue[value]; ok {
		return addr, true
	}
	addr, ok := c.mgr.Alloc(kind, 1)
	if !ok {
		return 0, false
	}
	byValue[value] = addr
	c.ordered = append(c.ordered, ConstEntry{Addr: addr, Kind: kind, Value: value})
	return addr, true
}

// Entries returns every interned constant in allocation order, for
// materializing the program's constant memory at VM start.
func (c *ConstantMemory) Entries() []ConstEntry {
	return c.ordered
}

// PointerAllocator mints ever-incrementing pointer-partition addresses.
// Unlike TempManager, pointer addresses are never reused: each indexed
// array access gets its own indirection slot, grounded on original's
// PointerMemory::get_pointer, which is likewise a single monotonic counter
// shared by the whole compilation (not scoped per function).
type PointerAllocator struct {
	counter int
}

// NewPointerAllocator creates a PointerAllocator starting at the base of
// the Pointer partition.
func NewPointerAllocator() *PointerAllocator {
	return &PointerAllocator{counter: Pointer.Base()}
}

// Alloc mints and returns the next pointer-partition address.
func (p *PointerAllocator) Alloc() int {
	addr := p.counter
	p.counter++
	return addr
}
