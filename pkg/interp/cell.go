package interp

import "github.com/tinylang/minilang/pkg/ir"

// Cell is a frame-local storage slot: either a single 32-bit scalar, or a
// fixed-length array of them, per spec.md section 3. IsArray selects which
// of Scalar/Array is meaningful.
type Cell struct {
	IsArray bool
	Scalar  int32
	Array   []int32
}

func newScalarCell() *Cell { return &Cell{} }

func newArrayCell(size int32) *Cell { return &Cell{IsArray: true, Array: make([]int32, size)} }

// Frame is one call's local bindings plus the bookkeeping needed to resume
// its caller on return.
type Frame struct {
	fnName string
	vars   map[string]*Cell

	hasCaller bool
	retTo     ir.Pos
	retDst    ir.Operand
}

func newFrame(fnName string) *Frame {
	return &Frame{fnName: fnName, vars: make(map[string]*Cell)}
}
