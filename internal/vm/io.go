package vm

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/raoul-lang/raoul/internal/address"
	"github.com/raoul-lang/raoul/internal/ir"
)

func (vm *VM) execAssign(q ir.Quadruple) error {
	destKind := vm.kindOf(q.Res)
	srcKind := vm.kindOf(q.Arg1)

	switch destKind {
	case address.KindInt:
		switch srcKind {
		case address.KindInt:
			vm.writeInt(q.Res, vm.readInt(q.Arg1))
		case address.KindFloat:
			vm.writeInt(q.Res, int64(vm.readFloat(q.Arg1)))
		case address.KindString:
			v, err := strconv.ParseFloat(vm.readString(q.Arg1), 64)
			if err != nil {
				return vm.fail(CastFailed, "cannot cast %q to int", vm.readString(q.Arg1))
			}
			vm.writeInt(q.Res, int64(v))
		default:
			return vm.fail(RuntimeType, "cannot assign into an int destination")
		}
	case address.KindFloat:
		switch srcKind {
		case address.KindFloat:
			vm.writeFloat(q.Res, vm.readFloat(q.Arg1))
		case address.KindInt:
			vm.writeFloat(q.Res, float64(vm.readInt(q.Arg1)))
		case address.KindString:
			v, err := strconv.ParseFloat(vm.readString(q.Arg1), 64)
			if err != nil {
				return vm.fail(CastFailed, "cannot cast %q to float", vm.readString(q.Arg1))
			}
			vm.writeFloat(q.Res, v)
		default:
			return vm.fail(RuntimeType, "cannot assign into a float destination")
		}
	case address.KindString:
		if srcKind != address.KindString {
			return vm.fail(RuntimeType, "cannot assign a non-string into a string destination")
		}
		vm.writeString(q.Res, vm.readString(q.Arg1))
	case address.KindBool:
		if srcKind != address.KindBool {
			return vm.fail(RuntimeType, "cannot assign a non-bool into a bool destination")
		}
		vm.writeBool(q.Res, vm.readBool(q.Arg1))
	}
	return nil
}

// execPrint writes one operand of a print statement. Operands within the
// same statement are space-separated; the trailing newline is a distinct
// PRINTNL quadruple (spec §4.4), so the space only goes *before* an operand
// that isn't the first.
func (vm *VM) execPrint(q ir.Quadruple) {
	if vm.printPending {
		io.WriteString(vm.stdout, " ")
	}
	switch vm.kindOf(q.Arg1) {
	case address.KindInt:
		io.WriteString(vm.stdout, strconv.FormatInt(vm.readInt(q.Arg1), 10))
	case address.KindFloat:
		io.WriteString(vm.stdout, strconv.FormatFloat(vm.readFloat(q.Arg1), 'g', -1, 64))
	case address.KindString:
		io.WriteString(vm.stdout, vm.readString(q.Arg1))
	case address.KindBool:
		io.WriteString(vm.stdout, strconv.FormatBool(vm.readBool(q.Arg1)))
	}
	vm.printPending = true
}

func (vm *VM) execPrintNL() {
	io.WriteString(vm.stdout, "\n")
	vm.printPending = false
}

// execRead implements input(): the destination's already-declared kind
// (fixed at compile time by analyzeReadAssign) says what kind of token to
// parse the next whitespace-separated chunk of stdin as.
func (vm *VM) execRead(q ir.Quadruple) error {
	tok, err := vm.readToken()
	if err != nil {
		return vm.fail(EndOfInput, "unexpected end of input")
	}
	switch vm.kindOf(q.Res) {
	case address.KindInt:
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return vm.fail(CastFailed, "cannot parse %q as int", tok)
		}
		vm.writeInt(q.Res, v)
	case address.KindFloat:
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return vm.fail(CastFailed, "cannot parse %q as float", tok)
		}
		vm.writeFloat(q.Res, v)
	case address.KindBool:
		v, err := strconv.ParseBool(tok)
		if err != nil {
			return vm.fail(CastFailed, "cannot parse %q as bool", tok)
		}
		vm.writeBool(q.Res, v)
	case address.KindString:
		vm.writeString(q.Res, tok)
	}
	return nil
}

func (vm *VM) readToken() (string, error) {
	var b strings.Builder
	sawAny := false
	for {
		r, _, err := vm.stdin.ReadRune()
		if err != nil {
			if sawAny {
				return b.String(), nil
			}
			return "", err
		}
		if unicode.IsSpace(r) {
			if sawAny {
				return b.String(), nil
			}
			continue
		}
		sawAny = true
		b.WriteRune(r)
	}
}
