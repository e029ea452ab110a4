package ir

import (
	"fmt"
	"io"
)

// Disassemble writes one line per quadruple, the debug-dump format the CLI's
// -d/--debug flag uses (spec §6), grounded on the teacher's
// internal/vm/disasm.go line layout.
func (p *Program) Disassemble(w io.Writer) {
	fmt.Fprintf(w, "; build %s, entry @ %d\n", p.BuildID, p.MainEntry)
	for i, q := range p.Quadruples {
		fmt.Fprintf(w, "%4d  %-8s %6s %6s %6s\n", i, q.Op, operand(q.Arg1), operand(q.Arg2), operand(q.Res))
	}
}

func operand(v int) string {
	if v == Unused {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}
