// Package interp executes minilang's textual IR (spec.md section 4). It is
// independent of the pkg/parser/pkg/scanner front end: it consumes a
// *ir.Program and ir.Labels produced by pkg/ir.Parse, exactly as a
// standalone "run this compiled program" tool would.
package interp

import (
	"context"
	"os"

	"github.com/tinylang/minilang/internal/fileinput"
	"github.com/tinylang/minilang/internal/flushio"
	"github.com/tinylang/minilang/internal/panicerr"
	"github.com/tinylang/minilang/pkg/ir"
)

// Interpreter runs one program's worth of IR. It holds no state across
// calls to Run beyond what New's options configured, so a single
// Interpreter may be Run more than once (each call gets its own call
// stack and program counter).
type Interpreter struct {
	out  flushio.WriteFlusher
	tees []flushio.WriteFlusher
	logf func(mess string, args ...interface{})

	stdin fileinput.Input

	prog   *ir.Program
	labels ir.Labels
	frames []*Frame
	pc     ir.Pos
	done   bool
}

// New builds an Interpreter, defaulting %out to os.Stdout absent a
// WithOutput/WithTee option.
func New(opts ...Option) *Interpreter {
	vm := &Interpreter{}
	vm.applyOptions(opts)
	if vm.out == nil {
		vm.out = flushio.NewWriteFlusher(os.Stdout)
	}
	if len(vm.tees) > 0 {
		vm.out = flushio.WriteFlushers(append([]flushio.WriteFlusher{vm.out}, vm.tees...)...)
	}
	return vm
}

// Run executes prog starting at its "main" function (spec.md section 4.5),
// driving %out writes to the configured output and %input reads from the
// configured stdin queue, until main returns or falls off its end. The
// whole run happens under panicerr.Recover so that any interpreter bug
// surfaces as an error rather than crashing the caller.
func (vm *Interpreter) Run(ctx context.Context, prog *ir.Program, labels ir.Labels) error {
	vm.prog = prog
	vm.labels = labels
	vm.frames = nil
	vm.pc = ir.Pos{}
	vm.done = false

	err := panicerr.Recover("interp", func() error { return vm.run(ctx) })
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (vm *Interpreter) run(ctx context.Context) error {
	mainIdx := vm.prog.FuncByName("main")
	if mainIdx < 0 {
		return errf("program defines no main function")
	}
	mainFn := vm.prog.Functions[mainIdx]
	if len(mainFn.Params) != 0 {
		return errf("main must take no parameters, got %d", len(mainFn.Params))
	}

	frame := newFrame(mainFn.Name)
	vm.frames = append(vm.frames, frame)
	vm.pc = ir.Pos{Func: mainIdx, Instr: 0}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if vm.done {
			return nil
		}

		fn := &vm.prog.Functions[vm.pc.Func]
		if vm.pc.Instr >= len(fn.Instrs) {
			if err := vm.doReturn(0); err != nil {
				return err
			}
			continue
		}

		in := fn.Instrs[vm.pc.Instr]
		vm.pc.Instr++
		if in.Label != "" {
			continue
		}
		if vm.logf != nil {
			vm.logf("%s:%d %v", fn.Name, vm.pc.Instr-1, in)
		}
		if err := vm.exec(fn, in); err != nil {
			return err
		}
	}
}

func (vm *Interpreter) curFrame() *Frame { return vm.frames[len(vm.frames)-1] }

func (vm *Interpreter) resolveLabel(name string) (ir.Pos, error) {
	p, ok := vm.labels[name]
	if !ok {
		return ir.Pos{}, errf("undefined label %q", name)
	}
	return p, nil
}

func (vm *Interpreter) doReturn(val int32) error {
	popped := vm.frames[len(vm.frames)-1]
	vm.frames = vm.frames[:len(vm.frames)-1]

	if len(vm.frames) == 0 {
		vm.done = true
		return nil
	}
	vm.pc = popped.retTo
	if popped.hasCaller {
		caller := vm.curFrame()
		if err := vm.store(caller, popped.retDst, val); err != nil {
			return err
		}
	}
	return nil
}
