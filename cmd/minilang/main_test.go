package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinylang/minilang/pkg/interp"
	"github.com/tinylang/minilang/pkg/ir"
	"github.com/tinylang/minilang/pkg/parser"
)

// runSource drives the same compile -> serialize/parse -> interpret pipeline
// main() does, without touching flag.Args/os.Exit, so the scenarios from
// spec.md section 8 can be exercised directly against this package's
// wiring.
func runSource(t *testing.T, src string, stdin string) string {
	t.Helper()
	irText, err := parser.Compile(src)
	require.NoError(t, err)

	prog, labels, err := ir.Parse(irText)
	require.NoError(t, err)

	var out bytes.Buffer
	opts := []interp.Option{}
	if stdin != "" {
		opts = append(opts, interp.WithStdin(bytes.NewBufferString(stdin)))
	}
	vm := interp.New(append(opts, interp.WithOutput(&out))...)
	require.NoError(t, vm.Run(context.Background(), prog, labels))
	return out.String()
}

func TestPipeline_arithmetic(t *testing.T) {
	out := runSource(t, `func main() {
		int x;
		x = 1 + 2 * 3;
		print(x);
	}`, "")
	assert.Equal(t, "7\n", out)
}

func TestPipeline_whileLoop(t *testing.T) {
	out := runSource(t, `func main() {
		int i;
		i = 0;
		while i < 3 {
			print(i);
			i = i + 1;
		}
	}`, "")
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestPipeline_arraySum(t *testing.T) {
	out := runSource(t, `func main() {
		int[3] a;
		int i;
		int total;
		i = 0;
		while i < 3 {
			a[i] = i * 10;
			i = i + 1;
		}
		total = 0;
		i = 0;
		while i < 3 {
			total = total + a[i];
			i = i + 1;
		}
		print(total);
	}`, "")
	assert.Equal(t, "30\n", out)
}

func TestPipeline_functionCall(t *testing.T) {
	out := runSource(t, `func add(int a, int b) {
		return a + b;
	}

	func main() {
		print(add(20, 22));
	}`, "")
	assert.Equal(t, "42\n", out)
}

func TestPipeline_ifElse(t *testing.T) {
	out := runSource(t, `func main() {
		int x;
		x = 4;
		if x > 10 {
			print(1);
		} else {
			print(0);
		}
	}`, "")
	assert.Equal(t, "0\n", out)
}

func TestPipeline_undeclaredIdentifierRejectedAtCompile(t *testing.T) {
	_, err := parser.Compile(`func main() { int x; y = 3; }`)
	require.Error(t, err)
}

func TestPipeline_recursion(t *testing.T) {
	out := runSource(t, `func fib(int n) {
		if n < 2 {
			return n;
		}
		return fib(n - 1) + fib(n - 2);
	}

	func main() {
		print(fib(10));
	}`, "")
	assert.Equal(t, "55\n", out)
}

func TestPipeline_readInput(t *testing.T) {
	out := runSource(t, `func main() {
		int a;
		int b;
		read(a);
		read(b);
		print(a + b);
	}`, "4\n38\n")
	assert.Equal(t, "42\n", out)
}

func TestPrintError_framing(t *testing.T) {
	// printError writes to stdout via fmt.Println; capture it by swapping
	// os.Stdout for the duration of the call.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	printError(assertErrorValue{"boom"})
	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	buf.ReadFrom(r)
	got := buf.String()
	assert.Contains(t, got, "**Error**")
	assert.Contains(t, got, rule)
	assert.Contains(t, got, "boom")
}

type assertErrorValue struct{ msg string }

func (e assertErrorValue) Error() string { return e.msg }
