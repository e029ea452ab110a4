// Package ir defines Raoul's intermediate representation: a flat list of
// quadruples indexed by instruction pointer, plus the program image (IR +
// constant table + function table) the VM loads.
//
// The Op enum and its OpNames disassembly table follow the teacher's
// internal/vm/opcodes.go Opcode/OpcodeNames pattern; the operator set
// itself is grounded on original_source's quadruple::quadruple.rs Operator
// enum (Era/GoSub/Goto/GotoF/Inc/Ver/Sum/Times/... renamed to the
// ALL_CAPS spelling spec.md's §3 quadruple list uses).
package ir

import "github.com/google/uuid"

// Op is one quadruple operator.
type Op byte

const (
	ADD Op = iota
	SUB
	MUL
	DIV
	EQ
	NE
	GT
	LT
	GTE
	LTE
	AND
	OR
	NOT
	NEG // unary minus
	ASSIGN
	VERIFY  // (VERIFY, index, dim, _) fails unless 0 <= index < dim
	POINTER // (POINTER, base, offset, ptr) ptr := base+offset
	GOTO
	GOTOF
	GOTOT
	ERA     // (ERA, function_size, _, _) reserve a staging frame
	PARAM   // (PARAM, value, _, index)
	GOSUB   // (GOSUB, first_quad, _, _)
	ENDFUNC // pop active frame, restore caller IP
	RETURN  // pop active frame like ENDFUNC; a returned value is ASSIGNed to the return slot first
	PRINT   // one operand of a print statement
	PRINTNL // the trailing newline after a print statement's operands
	READ
	READ_CSV
	GET_ROWS
	GET_COLUMNS
	AVERAGE
	STD
	MEDIAN
	VARIANCE
	MIN
	MAX
	RANGE
	CORREL
	PLOT
	HIST
	INC // for-loop counter increment: res := res + 1
	END
)

var opNames = map[Op]string{
	ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV",
	EQ: "EQ", NE: "NE", GT: "GT", LT: "LT", GTE: "GTE", LTE: "LTE",
	AND: "AND", OR: "OR", NOT: "NOT", NEG: "NEG",
	ASSIGN: "ASSIGN", VERIFY: "VERIFY", POINTER: "POINTER",
	GOTO: "GOTO", GOTOF: "GOTOF", GOTOT: "GOTOT",
	ERA: "ERA", PARAM: "PARAM", GOSUB: "GOSUB", ENDFUNC: "ENDFUNC", RETURN: "RETURN",
	PRINT: "PRINT", PRINTNL: "PRINTNL", READ: "READ",
	READ_CSV: "READ_CSV", GET_ROWS: "GET_ROWS", GET_COLUMNS: "GET_COLUMNS",
	AVERAGE: "AVERAGE", STD: "STD", MEDIAN: "MEDIAN", VARIANCE: "VARIANCE",
	MIN: "MIN", MAX: "MAX", RANGE: "RANGE", CORREL: "CORREL",
	PLOT: "PLOT", HIST: "HIST", INC: "INC", END: "END",
}

func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "UNKNOWN"
}

// Unused marks an operand slot as "_" — not every quadruple uses all three.
const Unused = -1

// Quadruple is one three-address-code instruction.
type Quadruple struct {
	Op   Op
	Arg1 int
	Arg2 int
	Res  int
}

// FunctionMeta is the function table entry the VM uses to build an
// activation record: entry IP, declared parameter addresses (in the
// callee's own local-partition scope, so PARAM quads can target them
// through the staging frame), return type, and resource counts.
type FunctionMeta struct {
	Name       string
	StartIP    int
	ParamAddrs []int
	ReturnKind int // typesystem.Kind, stored as int to avoid an import cycle
	Locals     int
	Temps      int
}

// Program is the full image the VM executes: the quadruple list, the
// materialized constant table, the function table, and the entry point.
type Program struct {
	BuildID    string
	Quadruples []Quadruple
	Constants  []ConstEntry
	Functions  map[string]*FunctionMeta
	MainEntry  int
}

// ConstEntry mirrors address.ConstEntry without importing the address
// package's Kind type directly into the program image — kept as a plain
// copy so internal/vm can materialize memory without depending on
// internal/address's allocation-time types.
type ConstEntry struct {
	Addr  int
	Kind  int // address.Kind
	Value any
}

// NewProgram creates an empty program image stamped with a fresh build ID,
// grounded on the teacher's direct google/uuid dependency — used here the
// way a build artifact gets a content-addressed or session identity, so
// two debug dumps of "the same" compiled program can be told apart.
func NewProgram() *Program {
	return &Program{
		BuildID:   uuid.NewString(),
		Functions: make(map[string]*FunctionMeta),
	}
}
