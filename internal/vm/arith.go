package vm

import "github.com/raoul-lang/raoul/internal/address"
import "github.com/raoul-lang/raoul/internal/ir"

// writeNumeric stores v into dest, narrowing to int64 when dest's declared
// kind is int and keeping it as float64 otherwise — the analyzer has
// already fixed which of the two every arithmetic result's destination
// temporary is (typesystem.ArithmeticResultType), so this just honors it.
func (vm *VM) writeNumeric(dest int, v float64) {
	if vm.kindOf(dest) == address.KindInt {
		vm.writeInt(dest, int64(v))
		return
	}
	vm.writeFloat(dest, v)
}

func (vm *VM) execArith(q ir.Quadruple) error {
	lInt := vm.kindOf(q.Arg1) == address.KindInt
	rInt := vm.kindOf(q.Arg2) == address.KindInt

	if q.Op == ir.DIV {
		if lInt && rInt {
			rv := vm.readInt(q.Arg2)
			if rv == 0 {
				return vm.fail(DivByZero, "integer division by zero")
			}
			vm.writeInt(q.Res, vm.readInt(q.Arg1)/rv)
			return nil
		}
		rv := vm.readNumeric(q.Arg2)
		if rv == 0 {
			return vm.fail(DivByZero, "division by zero")
		}
		vm.writeFloat(q.Res, vm.readNumeric(q.Arg1)/rv)
		return nil
	}

	lv, rv := vm.readNumeric(q.Arg1), vm.readNumeric(q.Arg2)
	var result float64
	switch q.Op {
	case ir.ADD:
		result = lv + rv
	case ir.SUB:
		result = lv - rv
	case ir.MUL:
		result = lv * rv
	}
	vm.writeNumeric(q.Res, result)
	return nil
}

func (vm *VM) execCompare(q ir.Quadruple) error {
	if vm.kindOf(q.Arg1) == address.KindString {
		ls, rs := vm.readString(q.Arg1), vm.readString(q.Arg2)
		switch q.Op {
		case ir.EQ:
			vm.writeBool(q.Res, ls == rs)
		case ir.NE:
			vm.writeBool(q.Res, ls != rs)
		default:
			return vm.fail(RuntimeType, "relational operator is not defined for string operands")
		}
		return nil
	}

	lv, rv := vm.readNumeric(q.Arg1), vm.readNumeric(q.Arg2)
	var result bool
	switch q.Op {
	case ir.EQ:
		result = lv == rv
	case ir.NE:
		result = lv != rv
	case ir.GT:
		result = lv > rv
	case ir.LT:
		result = lv < rv
	case ir.GTE:
		result = lv >= rv
	case ir.LTE:
		result = lv <= rv
	}
	vm.writeBool(q.Res, result)
	return nil
}

func (vm *VM) execNeg(q ir.Quadruple) error {
	if vm.kindOf(q.Arg1) == address.KindInt {
		vm.writeInt(q.Res, -vm.readInt(q.Arg1))
		return nil
	}
	vm.writeFloat(q.Res, -vm.readFloat(q.Arg1))
	return nil
}
