// Command gen_golden regenerates the golden IR and output fixtures under
// testdata/programs/: for every *.mini file it compiles the source, writes
// the emitted IR alongside it as *.ir, then interprets that IR (feeding it
// the matching *.in file as stdin, if one exists) and writes the captured
// output as *.out. Every file is regenerated concurrently through an
// errgroup, the same concurrency shape the source uses to pipe generated
// test helpers through goimports.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/tinylang/minilang/pkg/interp"
	"github.com/tinylang/minilang/pkg/ir"
	"github.com/tinylang/minilang/pkg/parser"
)

func main() {
	dir := flag.String("dir", "testdata/programs", "directory of *.mini fixtures")
	timeout := flag.Duration("timeout", 10*time.Second, "overall regeneration deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *dir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.mini"))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range matches {
		name := name
		eg.Go(func() error { return regenerate(ctx, name) })
	}
	return eg.Wait()
}

func regenerate(ctx context.Context, miniPath string) error {
	source, err := os.ReadFile(miniPath)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(miniPath, ".mini")
	irPath := base + ".ir"
	outPath := base + ".out"

	irText, err := parser.Compile(string(source))
	if err != nil {
		return os.WriteFile(outPath, []byte("**Error**\n"+err.Error()+"\n"), 0o644)
	}
	if err := os.WriteFile(irPath, []byte(irText), 0o644); err != nil {
		return err
	}

	prog, labels, err := ir.Parse(irText)
	if err != nil {
		return fmt.Errorf("%s: regenerated IR failed to parse: %w", miniPath, err)
	}

	var stdin bytes.Buffer
	if in, err := os.ReadFile(base + ".in"); err == nil {
		stdin.Write(in)
	}

	var out bytes.Buffer
	vm := interp.New(interp.WithOutput(&out), interp.WithStdin(&stdin))
	if err := ctx.Err(); err != nil {
		return err
	}
	if runErr := vm.Run(ctx, prog, labels); runErr != nil {
		out.Reset()
		out.WriteString("**Error**\n")
		out.WriteString(runErr.Error())
		out.WriteByte('\n')
	}

	return os.WriteFile(outPath, out.Bytes(), 0o644)
}
