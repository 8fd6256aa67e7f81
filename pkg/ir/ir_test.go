package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_serializeRoundTrip(t *testing.T) {
	var b Builder
	b.Emit(OpInt, Name("x"))
	b.Emit(OpMov, Name("x"), Lit(1))
	b.EmitBranch(OpBranchIfn, Name("x"), "endloop1")
	b.EmitBranch(OpJmp, Operand{}, "beginningloop1")
	b.Label("endloop1")
	b.Emit(OpOut, Name("x"))
	b.Emit(OpRet, Lit(0))

	prog := &Program{Functions: []Function{{Name: "main", Instrs: b.Instrs()}}}
	text := Serialize(prog)

	parsed, labels, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, parsed.Functions, 1)

	fn := parsed.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Instrs, 7)
	assert.Equal(t, OpInt, fn.Instrs[0].Op)
	assert.Equal(t, OpMov, fn.Instrs[1].Op)
	assert.Equal(t, OpBranchIfn, fn.Instrs[2].Op)
	assert.Equal(t, "endloop1", fn.Instrs[2].Callee)
	assert.Equal(t, OpJmp, fn.Instrs[3].Op)
	assert.Equal(t, "beginningloop1", fn.Instrs[3].Callee)
	assert.Equal(t, "endloop1", fn.Instrs[4].Label)

	pos, ok := labels["endloop1"]
	require.True(t, ok)
	assert.Equal(t, Pos{Func: 0, Instr: 5}, pos)
}

func TestBuilder_call(t *testing.T) {
	var b Builder
	b.Emit(OpInt, Name("t"))
	b.EmitCall(Name("t"), "add", Lit(1), Name("y"))

	prog := &Program{Functions: []Function{{Name: "main", Instrs: b.Instrs()}}}
	text := Serialize(prog)

	parsed, _, err := Parse(text)
	require.NoError(t, err)
	call := parsed.Functions[0].Instrs[1]
	assert.Equal(t, OpCall, call.Op)
	assert.Equal(t, "add", call.Callee)
	require.Len(t, call.Args, 2)
	assert.Equal(t, Lit(1), call.Args[0])
	assert.Equal(t, Name("y"), call.Args[1])
}

func TestParse_indexedOperand(t *testing.T) {
	text := "%func main()\n%int[] a, 3\n%mov [a + 0], 7\n%endfunc\n"
	prog, _, err := Parse(text)
	require.NoError(t, err)
	in := prog.Functions[0].Instrs[1]
	assert.Equal(t, OpMov, in.Op)
	assert.Equal(t, OpIndexed, in.Operands[0].Kind)
	assert.Equal(t, "a", in.Operands[0].Base)
	assert.Equal(t, Lit(0), in.Operands[0].Index)
}

func TestParse_funcHeaderParams(t *testing.T) {
	text := "%func add(%int a, %int b)\n%ret a\n%endfunc\n"
	prog, _, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, prog.Functions[0].Params)
}

func TestParse_malformedRejected(t *testing.T) {
	_, _, err := Parse("%mov a, 1\n")
	require.Error(t, err)
}

func TestProgram_FuncByName(t *testing.T) {
	prog := &Program{Functions: []Function{{Name: "a"}, {Name: "main"}}}
	assert.Equal(t, 1, prog.FuncByName("main"))
	assert.Equal(t, -1, prog.FuncByName("nope"))
}
