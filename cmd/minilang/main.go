// Command minilang compiles and runs minilang source files: scan+parse to
// IR text, print that IR, then interpret it, framing the pipeline's output
// the same way across success and failure (spec.md section 6).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tinylang/minilang/internal/logio"
	"github.com/tinylang/minilang/pkg/interp"
	"github.com/tinylang/minilang/pkg/ir"
	"github.com/tinylang/minilang/pkg/parser"
)

const rule = "----------------------------------------"

func main() {
	var (
		trace   bool
		dump    bool
		timeout time.Duration
	)
	flag.BoolVar(&trace, "trace", false, "log each executed instruction")
	flag.BoolVar(&dump, "dump", false, "print a call-stack dump after execution")
	flag.DurationVar(&timeout, "timeout", 0, "limit how long interpretation may run")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	args := flag.Args()
	switch {
	case len(args) == 0:
		fmt.Println("Please provide an input file.")
		return
	case len(args) > 1:
		fmt.Println("Too many commandline arguments.")
		return
	}
	filename := args[0]

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("**Error. File %q: %v\n", filename, err)
		return
	}

	if strings.TrimSpace(string(source)) == "" {
		fmt.Println("No code has been provided.")
		return
	}

	irText, err := parser.Compile(string(source))
	if err != nil {
		printError(err)
		return
	}

	fmt.Println("Program Parsed Successfully.")
	fmt.Println(rule)
	fmt.Println("Generated Code:")
	fmt.Println(rule)
	fmt.Print(irText)
	fmt.Println(rule)

	prog, labels, err := ir.Parse(irText)
	if err != nil {
		printError(err)
		return
	}

	opts := []interp.Option{interp.WithStdin(os.Stdin)}
	if trace {
		opts = append(opts, interp.WithLogf(log.Leveledf("TRACE")))
	}
	vm := interp.New(opts...)

	var dumper io.Writer
	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		dumper = lw
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer log.Unwrap()

	runErr := vm.Run(ctx, prog, labels)
	if dumper != nil {
		vm.Dump(dumper)
	}
	if runErr != nil {
		if errors.Is(runErr, context.DeadlineExceeded) || errors.Is(runErr, context.Canceled) {
			printError(fmt.Errorf("execution %v", runErr))
			return
		}
		printError(runErr)
		return
	}
}

func printError(err error) {
	fmt.Println("**Error**")
	fmt.Println(rule)
	fmt.Println(err)
	fmt.Println(rule)
}
