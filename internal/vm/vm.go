// Package vm executes a compiled Raoul ir.Program: a flat quadruple list
// over partitioned, statically-typed memory (spec §4.4).
//
// The dispatch loop, activation-record push/pop on GOSUB/ENDFUNC/RETURN,
// and the staged-argument handoff between ERA and GOSUB are grounded on
// original_source/src/vm/mod.rs's VM::run() match arm and its
// process_era/process_go_sub helpers; the surrounding shape (named
// sentinel-free RuntimeError type, an explicit max-depth constant, a
// context.Context-aware Run loop) follows the teacher's internal/vm/vm.go
// idiom of an explicit growth/limit constant plus a single dispatch method.
package vm

import (
	"bufio"
	"context"
	"io"

	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/dataframe"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/plotsink"
)

// maxCallDepth bounds the activation-record stack, grounded on the
// original's STACK_SIZE_CAP and the teacher's MaxFrameCount.
const maxCallDepth = 1024

// VM executes one compiled program to completion.
type VM struct {
	program *ir.Program

	global bank
	consts bank

	pointers map[int]int
	df       *dataframe.Frame

	frames  []*frame
	staging []*callStaging

	ip     int
	halted bool

	stdout       io.Writer
	stdin        *bufio.Reader
	sink         plotsink.Sink
	printPending bool

	ipToFunc map[int]*ir.FunctionMeta
	maxDepth int
}

// New creates a VM ready to run program, reading input() tokens from stdin
// and writing print output to stdout. sink receives plot/histogram calls;
// pass plotsink.Null{} for a headless run. maxDepth overrides maxCallDepth;
// 0 keeps the default (the --config recursion-depth override wires through
// here).
func New(program *ir.Program, stdin io.Reader, stdout io.Writer, sink plotsink.Sink, maxDepth int) *VM {
	if maxDepth <= 0 {
		maxDepth = maxCallDepth
	}
	vm := &VM{
		program:  program,
		pointers: make(map[int]int),
		stdout:   stdout,
		stdin:    bufio.NewReader(stdin),
		sink:     sink,
		ipToFunc: make(map[int]*ir.FunctionMeta),
		maxDepth: maxDepth,
	}
	for _, entry := range program.Constants {
		vm.storeConst(entry)
	}
	for _, fn := range program.Functions {
		vm.ipToFunc[fn.StartIP] = fn
	}
	// main is never called via GOSUB, so it (and the global initializers
	// that run before it) uses a synthetic root frame that is pushed once
	// and never popped.
	vm.frames = append(vm.frames, &frame{})
	vm.ip = program.MainEntry
	return vm
}

func (vm *VM) storeConst(entry ir.ConstEntry) {
	switch address.Kind(entry.Kind) {
	case address.KindInt:
		vm.consts.writeInt(entry.Addr, entry.Value.(int64))
	case address.KindFloat:
		vm.consts.writeFloat(entry.Addr, entry.Value.(float64))
	case address.KindString:
		vm.consts.writeString(entry.Addr, entry.Value.(string))
	case address.KindBool:
		vm.consts.writeBool(entry.Addr, entry.Value.(bool))
	}
}

func (vm *VM) frame() *frame {
	return vm.frames[len(vm.frames)-1]
}

// Run executes the program from its entry point until END, an explicit
// RETURN out of main, a plot or histogram call returns, ctx is canceled,
// or a RuntimeError is raised.
func (vm *VM) Run(ctx context.Context) error {
	for !vm.halted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

// step executes the quadruple at vm.ip. Control-flow ops set vm.ip
// themselves and return early; every other op falls through to the
// default ip++ at the bottom.
func (vm *VM) step() error {
	if vm.ip < 0 || vm.ip >= len(vm.program.Quadruples) {
		vm.halted = true
		return nil
	}
	q := vm.program.Quadruples[vm.ip]

	switch q.Op {
	case ir.GOTO:
		vm.ip = q.Res
		return nil
	case ir.GOTOF:
		if !vm.readBool(q.Arg1) {
			vm.ip = q.Res
			return nil
		}
	case ir.GOTOT:
		if vm.readBool(q.Arg1) {
			vm.ip = q.Res
			return nil
		}
	case ir.ERA:
		vm.staging = append(vm.staging, &callStaging{})
	case ir.PARAM:
		if err := vm.execParam(q); err != nil {
			return err
		}
	case ir.GOSUB:
		if err := vm.execGosub(q); err != nil {
			return err
		}
		return nil
	case ir.ENDFUNC, ir.RETURN:
		vm.execReturn()
		return nil
	case ir.END:
		vm.halted = true
		return nil
	case ir.ASSIGN:
		if err := vm.execAssign(q); err != nil {
			return err
		}
	case ir.VERIFY:
		if err := vm.execVerify(q); err != nil {
			return err
		}
	case ir.POINTER:
		vm.execPointer(q)
	case ir.INC:
		vm.writeInt(q.Res, vm.readInt(q.Res)+1)
	case ir.PRINT:
		vm.execPrint(q)
	case ir.PRINTNL:
		vm.execPrintNL()
	case ir.READ:
		if err := vm.execRead(q); err != nil {
			return err
		}
	case ir.NOT:
		vm.writeBool(q.Res, !vm.readBool(q.Arg1))
	case ir.NEG:
		if err := vm.execNeg(q); err != nil {
			return err
		}
	case ir.AND:
		vm.writeBool(q.Res, vm.readBool(q.Arg1) && vm.readBool(q.Arg2))
	case ir.OR:
		vm.writeBool(q.Res, vm.readBool(q.Arg1) || vm.readBool(q.Arg2))
	case ir.ADD, ir.SUB, ir.MUL, ir.DIV:
		if err := vm.execArith(q); err != nil {
			return err
		}
	case ir.EQ, ir.NE, ir.GT, ir.LT, ir.GTE, ir.LTE:
		if err := vm.execCompare(q); err != nil {
			return err
		}
	case ir.READ_CSV:
		if err := vm.execReadCSV(q); err != nil {
			return err
		}
	case ir.GET_ROWS, ir.GET_COLUMNS, ir.AVERAGE, ir.STD, ir.MEDIAN,
		ir.VARIANCE, ir.MIN, ir.MAX, ir.RANGE, ir.CORREL:
		if err := vm.execDataframeOp(q); err != nil {
			return err
		}
	case ir.PLOT:
		if err := vm.execPlot(q); err != nil {
			return err
		}
		vm.halted = true
		return nil
	case ir.HIST:
		if err := vm.execHist(q); err != nil {
			return err
		}
		vm.halted = true
		return nil
	}

	vm.ip++
	return nil
}
