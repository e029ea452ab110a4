package vm

import "strconv"
import "github.com/raoul-lang/raoul/internal/address"
import "github.com/raoul-lang/raoul/internal/ir"

// execParam captures the value at q.Arg1 into the top-of-stack staging
// frame at parameter index q.Res, tagging it with the kind it was read as
// so execGosub can cast it to the kind of the callee's own parameter slot.
func (vm *VM) execParam(q ir.Quadruple) error {
	top := vm.staging[len(vm.staging)-1]
	idx := q.Res
	for len(top.args) <= idx {
		top.args = append(top.args, stagedArg{})
	}
	switch vm.kindOf(q.Arg1) {
	case address.KindInt:
		top.args[idx] = stagedArg{kind: argInt, ival: vm.readInt(q.Arg1)}
	case address.KindFloat:
		top.args[idx] = stagedArg{kind: argFloat, fval: vm.readFloat(q.Arg1)}
	case address.KindString:
		top.args[idx] = stagedArg{kind: argString, sval: vm.readString(q.Arg1)}
	case address.KindBool:
		top.args[idx] = stagedArg{kind: argBool, bval: vm.readBool(q.Arg1)}
	}
	return nil
}

// execGosub pops the top staging frame, pushes a fresh activation record
// for the callee at q.Arg1, writes the staged arguments into the callee's
// declared parameter addresses (casting int/float/string values to each
// parameter's kind; a string that does not parse as a number fails with
// CastFailed), and jumps.
func (vm *VM) execGosub(q ir.Quadruple) error {
	staged := vm.staging[len(vm.staging)-1]
	vm.staging = vm.staging[:len(vm.staging)-1]

	target := q.Arg1
	meta := vm.ipToFunc[target]

	if len(vm.frames) > vm.maxDepth {
		return vm.fail(StackOverflow, "call depth exceeded %d", vm.maxDepth)
	}

	f := &frame{meta: meta, returnIP: vm.ip + 1}
	vm.frames = append(vm.frames, f)

	if meta != nil {
		for i, addr := range meta.ParamAddrs {
			if i >= len(staged.args) {
				break
			}
			arg := staged.args[i]
			switch arg.kind {
			case argInt:
				if vm.kindOf(addr) == address.KindFloat {
					vm.writeFloat(addr, float64(arg.ival))
				} else {
					vm.writeInt(addr, arg.ival)
				}
			case argFloat:
				vm.writeNumeric(addr, arg.fval)
			case argString:
				if vm.kindOf(addr) == address.KindString {
					vm.writeString(addr, arg.sval)
					break
				}
				v, err := strconv.ParseFloat(arg.sval, 64)
				if err != nil {
					return vm.fail(CastFailed, "cannot cast %q to a numeric parameter", arg.sval)
				}
				vm.writeNumeric(addr, v)
			case argBool:
				vm.writeBool(addr, arg.bval)
			}
		}
	}

	vm.ip = target
	return nil
}

// execReturn unwinds the current activation record. In the root frame
// (inside main, never pushed by a GOSUB) there is nothing to unwind to —
// a `return;` there just ends the program.
func (vm *VM) execReturn() {
	if len(vm.frames) <= 1 {
		vm.halted = true
		return
	}
	f := vm.frame()
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.ip = f.returnIP
}
