// Package symbols implements the two-level symbol table described in
// spec §3: a single global scope plus one scope per function, and a shared
// function table keyed by name.
//
// The global/per-function split follows original_source's
// dir_func::function.rs GlobalScope/Function pair; the Symbol shape
// (name, type, address, is-argument) follows the teacher's
// internal/symbols/symbol_table_core.go Symbol struct, trimmed to the
// fields Raoul's simpler type system actually needs.
package symbols

import (
	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/typesystem"
)

// Symbol is one declared name: a variable or a function parameter.
type Symbol struct {
	Name       string
	Type       typesystem.Type
	Address    int
	IsArgument bool
}

// Scope is one level of the symbol table (global, or one function's
// locals), backed by an address.Manager in the matching partition.
type Scope struct {
	partition address.Partition
	addrs     *address.Manager
	temps     *address.TempManager
	symbols   map[string]*Symbol
	order     []string
}

// NewScope creates an empty Scope allocating out of partition.
func NewScope(partition address.Partition) *Scope {
	return &Scope{
		partition: partition,
		addrs:     address.NewManager(partition),
		temps:     address.NewTempManager(),
		symbols:   make(map[string]*Symbol),
	}
}

// Lookup finds name in this scope only (no fallthrough to an enclosing
// scope — callers that need global fallback do it explicitly, as spec §3
// describes the symbol table as "a two-level map", not nested scoping).
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Declare allocates an address for a new name of typ and records it.
// Callers must have already confirmed name is not yet declared in this
// scope — Declare always creates a fresh Symbol.
func (s *Scope) Declare(name string, typ typesystem.Type, isArgument bool) (*Symbol, bool) {
	amount := 1
	if typ.Dims == 1 {
		amount = typ.Dim1
	} else if typ.Dims == 2 {
		amount = typ.Dim1 * typ.Dim2
	}
	addr, ok := s.addrs.Alloc(elemKind(typ.Elem), amount)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Name: name, Type: typ, Address: addr, IsArgument: isArgument}
	s.symbols[name] = sym
	s.order = append(s.order, name)
	return sym, true
}

// DeclareFixed records name at a caller-supplied address instead of
// allocating one, used for the dataframe singleton (spec invariant I5),
// which always lives at address.DataframeAddress rather than a slot
// handed out by this scope's Manager.
func (s *Scope) DeclareFixed(name string, typ typesystem.Type, addr int) (*Symbol, bool) {
	sym := &Symbol{Name: name, Type: typ, Address: addr}
	s.symbols[name] = sym
	s.order = append(s.order, name)
	return sym, true
}

// AllocTemp allocates a temporary of kind k within this scope's function
// (or the global scope, for top-level expressions).
func (s *Scope) AllocTemp(k address.Kind) (int, bool) {
	return s.temps.Alloc(k)
}

// ReleaseTemp returns a temporary address to the pool for reuse.
func (s *Scope) ReleaseTemp(addr int) {
	s.temps.Release(addr)
}

// ResourceCounts reports {locals, temporaries} sizes for activation-record
// sizing (spec §3 "Resource counts").
func (s *Scope) ResourceCounts() (locals, temporaries int) {
	return s.addrs.Size(), s.temps.Size()
}

// Names returns declared names in declaration order.
func (s *Scope) Names() []string {
	return s.order
}

func elemKind(k typesystem.Kind) address.Kind {
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

// FunctionInfo is one entry of the function table: a signature plus the
// function's own local scope, and the IP its body starts at (filled in by
// the IR generator once it knows it).
type FunctionInfo struct {
	Name       string
	ParamNames []string
	ParamTypes []typesystem.Type
	ReturnType typesystem.Type
	StartIP    int
	Scope      *Scope
}

// Table is the whole-program symbol table: the global scope and the
// function table, built in a forward pass before any function body is
// analyzed (spec §4.2 "Builds the function table first").
type Table struct {
	Global      *Scope
	Functions   map[string]*FunctionInfo
	Order       []string
	MainEntry   int
	returnSlots map[typesystem.Kind]int
}

// NewTable creates an empty program-level symbol table.
func NewTable() *Table {
	return &Table{
		Global:      NewScope(address.Global),
		Functions:   make(map[string]*FunctionInfo),
		returnSlots: make(map[typesystem.Kind]int),
	}
}

// DeclareFunction registers a new function signature and returns it. It
// always registers; callers check for DuplicateFunction before calling.
func (t *Table) DeclareFunction(name string, paramNames []string, paramTypes []typesystem.Type, ret typesystem.Type) *FunctionInfo {
	fn := &FunctionInfo{
		Name:       name,
		ParamNames: paramNames,
		ParamTypes: paramTypes,
		ReturnType: ret,
		Scope:      NewScope(address.Local),
	}
	t.Functions[name] = fn
	t.Order = append(t.Order, name)
	return fn
}

// ReturnSlot returns the well-known global address that callers read a
// value-returning function's result from immediately after GOSUB (spec
// §4.3 "the return slot is a well-known global address per return type"),
// allocating it on first use for that atomic kind.
func (t *Table) ReturnSlot(k typesystem.Kind) int {
	if addr, ok := t.returnSlots[k]; ok {
		return addr
	}
	addr, ok := t.Global.addrs.Alloc(elemKind(k), 1)
	if !ok {
		// Threshold (250 globals per kind) is far larger than the handful of
		// atomic kinds that can be a return type; this cannot fail in
		// practice, but surface a recognizable address rather than panic.
		addr = -1
	}
	t.returnSlots[k] = addr
	return addr
}
