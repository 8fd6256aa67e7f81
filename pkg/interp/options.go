package interp

import (
	"io"

	"github.com/tinylang/minilang/internal/flushio"
)

// Option configures an Interpreter at construction time, in the
// functional-options style.
type Option interface {
	apply(*Interpreter)
}

type optionFunc func(*Interpreter)

func (f optionFunc) apply(vm *Interpreter) { f(vm) }

// WithOutput sets the stream %out writes decimal results to. Repeated calls
// replace the prior output rather than accumulating it; use WithTee to
// write to more than one place.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(vm *Interpreter) {
		vm.out = flushio.NewWriteFlusher(w)
	})
}

// WithTee adds an additional destination that every %out write is also
// copied to, on top of whatever WithOutput configured (or stdout, by
// default).
func WithTee(w io.Writer) Option {
	return optionFunc(func(vm *Interpreter) {
		vm.tees = append(vm.tees, flushio.NewWriteFlusher(w))
	})
}

// WithStdin appends r to the queue of readers %input draws lines from, in
// the order given. Multiple calls extend the queue rather than replacing
// it, matching fileinput.Input's multi-reader Queue semantics.
func WithStdin(r io.Reader) Option {
	return optionFunc(func(vm *Interpreter) {
		vm.stdin.Queue = append(vm.stdin.Queue, r)
	})
}

// WithLogf installs a leveled trace hook: the interpreter calls it once per
// executed instruction (see internal/logio's Leveledf), mirroring the
// source's per-step trace logging.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return optionFunc(func(vm *Interpreter) {
		vm.logf = logf
	})
}

func (vm *Interpreter) applyOptions(opts []Option) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}
