package interp

import (
	"fmt"
	"io"
)

// Dump writes a snapshot of the call stack at the moment it's called: one
// section per active frame (innermost last), listing every bound name and
// its current value. It is meant for post-mortem use -- after Run returns
// an error the stack is left exactly as execution found it, since doReturn
// never unwound it -- mirroring the source's vmDumper, adapted from a flat
// memory layout to per-frame bindings.
func (vm *Interpreter) Dump(w io.Writer) {
	fmt.Fprintf(w, "# Interpreter Dump\n")
	fmt.Fprintf(w, "  pc: func=%d instr=%d\n", vm.pc.Func, vm.pc.Instr)
	for i, frame := range vm.frames {
		fmt.Fprintf(w, "  frame[%d]: %s\n", i, frame.fnName)
		for name, cell := range frame.vars {
			if cell.IsArray {
				fmt.Fprintf(w, "    %s: %v\n", name, cell.Array)
			} else {
				fmt.Fprintf(w, "    %s: %d\n", name, cell.Scalar)
			}
		}
	}
}
