package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tinylang/minilang/pkg/ir"
)

// exec runs one non-label instruction against the current top frame,
// advancing vm.pc for control-flow opcodes and leaving it untouched (it was
// already advanced past in by the caller) for everything else.
func (vm *Interpreter) exec(fn *ir.Function, in ir.Instr) error {
	frame := vm.curFrame()

	switch in.Op {
	case ir.OpInt:
		frame.vars[in.Operands[0].Name] = newScalarCell()

	case ir.OpIntArr:
		size, err := vm.eval(frame, in.Operands[1])
		if err != nil {
			return err
		}
		if size < 0 {
			return errf("array %q: negative size %d", in.Operands[0].Name, size)
		}
		frame.vars[in.Operands[0].Name] = newArrayCell(size)

	case ir.OpMov:
		v, err := vm.eval(frame, in.Operands[1])
		if err != nil {
			return err
		}
		return vm.store(frame, in.Operands[0], v)

	case ir.OpAdd, ir.OpSub, ir.OpMult, ir.OpDiv, ir.OpMod:
		return vm.execArith(frame, in)

	case ir.OpLt, ir.OpGt, ir.OpLe, ir.OpGe, ir.OpEq, ir.OpNeq:
		return vm.execCompare(frame, in)

	case ir.OpBranchIf, ir.OpBranchIfn:
		cond, err := vm.eval(frame, in.Operands[0])
		if err != nil {
			return err
		}
		take := cond != 0
		if in.Op == ir.OpBranchIfn {
			take = !take
		}
		if take {
			p, err := vm.resolveLabel(in.Callee)
			if err != nil {
				return err
			}
			vm.pc = p
		}
		return nil

	case ir.OpJmp:
		p, err := vm.resolveLabel(in.Callee)
		if err != nil {
			return err
		}
		vm.pc = p
		return nil

	case ir.OpCall:
		return vm.execCall(frame, in)

	case ir.OpRet:
		v, err := vm.eval(frame, in.Operands[0])
		if err != nil {
			return err
		}
		return vm.doReturn(v)

	case ir.OpOut:
		v, err := vm.eval(frame, in.Operands[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(vm.out, "%d\n", v)
		return err

	case ir.OpInput:
		return vm.execInput(frame, in)

	default:
		return errf("unsupported opcode %q", in.Op)
	}
	return nil
}

func (vm *Interpreter) execArith(frame *Frame, in ir.Instr) error {
	x, err := vm.eval(frame, in.Operands[1])
	if err != nil {
		return err
	}
	y, err := vm.eval(frame, in.Operands[2])
	if err != nil {
		return err
	}
	var result int32
	switch in.Op {
	case ir.OpAdd:
		result = x + y
	case ir.OpSub:
		result = x - y
	case ir.OpMult:
		result = x * y
	case ir.OpDiv:
		if y == 0 {
			return errf("division by zero")
		}
		result = x / y
	case ir.OpMod:
		if y == 0 {
			return errf("modulus by zero")
		}
		result = x % y
	}
	return vm.store(frame, in.Operands[0], result)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (vm *Interpreter) execCompare(frame *Frame, in ir.Instr) error {
	x, err := vm.eval(frame, in.Operands[1])
	if err != nil {
		return err
	}
	y, err := vm.eval(frame, in.Operands[2])
	if err != nil {
		return err
	}
	var result bool
	switch in.Op {
	case ir.OpLt:
		result = x < y
	case ir.OpGt:
		result = x > y
	case ir.OpLe:
		result = x <= y
	case ir.OpGe:
		result = x >= y
	case ir.OpEq:
		result = x == y
	case ir.OpNeq:
		result = x != y
	}
	return vm.store(frame, in.Operands[0], boolInt(result))
}

// execCall pushes a new frame bound to the callee's declared parameters
// (pass-by-value scalars only, per spec.md section 4.5) and transfers
// control to its first instruction; the call's own return value is wired
// up in doReturn once the callee returns.
func (vm *Interpreter) execCall(caller *Frame, in ir.Instr) error {
	calleeIdx := vm.prog.FuncByName(in.Callee)
	if calleeIdx < 0 {
		return errf("call to undefined function %q", in.Callee)
	}
	callee := vm.prog.Functions[calleeIdx]
	if len(callee.Params) != len(in.Args) {
		return errf("function %q expects %d argument(s), got %d", in.Callee, len(callee.Params), len(in.Args))
	}

	args := make([]int32, len(in.Args))
	for i, a := range in.Args {
		v, err := vm.eval(caller, a)
		if err != nil {
			return err
		}
		args[i] = v
	}

	next := newFrame(callee.Name)
	for i, param := range callee.Params {
		next.vars[param] = &Cell{Scalar: args[i]}
	}
	next.hasCaller = true
	next.retTo = vm.pc
	next.retDst = in.Operands[0]

	vm.frames = append(vm.frames, next)
	vm.pc = ir.Pos{Func: calleeIdx, Instr: 0}
	return nil
}

func (vm *Interpreter) execInput(frame *Frame, in ir.Instr) error {
	line, err := vm.readLine()
	if err != nil {
		return errf("read: %v", err)
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if perr != nil {
		return errf("read: %q is not a valid integer", line)
	}
	return vm.store(frame, in.Operands[0], int32(n))
}

func (vm *Interpreter) readLine() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := vm.stdin.ReadRune()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if r == '\n' {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// eval reads an operand's value out of frame.
func (vm *Interpreter) eval(frame *Frame, op ir.Operand) (int32, error) {
	switch op.Kind {
	case ir.OpLiteral:
		return int32(op.Lit), nil
	case ir.OpName:
		cell, ok := frame.vars[op.Name]
		if !ok {
			return 0, errf("undeclared name %q", op.Name)
		}
		if cell.IsArray {
			return 0, errf("%q is an array, not a scalar", op.Name)
		}
		return cell.Scalar, nil
	case ir.OpIndexed:
		cell, ok := frame.vars[op.Base]
		if !ok {
			return 0, errf("undeclared name %q", op.Base)
		}
		if !cell.IsArray {
			return 0, errf("%q is not an array", op.Base)
		}
		idx, err := vm.eval(frame, op.Index)
		if err != nil {
			return 0, err
		}
		if idx < 0 || int(idx) >= len(cell.Array) {
			return 0, errf("index %d out of bounds for %q (length %d)", idx, op.Base, len(cell.Array))
		}
		return cell.Array[idx], nil
	default:
		return 0, errf("malformed operand %v", op)
	}
}

// store writes a value into a scalar name or an array element.
func (vm *Interpreter) store(frame *Frame, dst ir.Operand, v int32) error {
	switch dst.Kind {
	case ir.OpName:
		cell, ok := frame.vars[dst.Name]
		if !ok {
			return errf("undeclared name %q", dst.Name)
		}
		if cell.IsArray {
			return errf("%q is an array, not a scalar", dst.Name)
		}
		cell.Scalar = v
		return nil
	case ir.OpIndexed:
		cell, ok := frame.vars[dst.Base]
		if !ok {
			return errf("undeclared name %q", dst.Base)
		}
		if !cell.IsArray {
			return errf("%q is not an array", dst.Base)
		}
		idx, err := vm.eval(frame, dst.Index)
		if err != nil {
			return err
		}
		if idx < 0 || int(idx) >= len(cell.Array) {
			return errf("index %d out of bounds for %q (length %d)", idx, dst.Base, len(cell.Array))
		}
		cell.Array[idx] = v
		return nil
	default:
		return errf("invalid assignment target %v", dst)
	}
}
