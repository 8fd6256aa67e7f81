package ir

// Builder accumulates a single function's instructions in memory as the
// parser walks the source grammar, replacing the source language's naive
// string-concatenation codegen (see spec.md section 9's redesign note) with
// an in-memory instruction list that's serialized to text only once, at the
// Program/text boundary.
type Builder struct {
	instrs []Instr
}

// Emit appends a plain instruction with the given opcode and operands.
func (b *Builder) Emit(op Opcode, operands ...Operand) {
	b.instrs = append(b.instrs, Instr{Op: op, Operands: operands})
}

// EmitBranch appends a %branch_if / %branch_ifn / %jmp instruction, whose
// target is a label rather than an operand.
func (b *Builder) EmitBranch(op Opcode, cond Operand, label string) {
	in := Instr{Op: op, Callee: label}
	if op != OpJmp {
		in.Operands = []Operand{cond}
	}
	b.instrs = append(b.instrs, in)
}

// EmitCall appends a %call instruction.
func (b *Builder) EmitCall(dst Operand, callee string, args ...Operand) {
	b.instrs = append(b.instrs, Instr{Op: OpCall, Operands: []Operand{dst}, Callee: callee, Args: args})
}

// Label appends a bare label declaration line.
func (b *Builder) Label(name string) {
	b.instrs = append(b.instrs, LabelLine(name))
}

// Append concatenates another builder's instructions onto b, in place of
// the source's string concatenation of code fragments.
func (b *Builder) Append(other *Builder) {
	b.instrs = append(b.instrs, other.instrs...)
}

// Instrs returns the accumulated instruction slice.
func (b *Builder) Instrs() []Instr { return b.instrs }

// Reset discards any accumulated instructions.
func (b *Builder) Reset() { b.instrs = nil }
