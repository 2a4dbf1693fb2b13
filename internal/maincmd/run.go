package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/crux-lang/crux/lang/compiler"
	"github.com/crux-lang/crux/lang/gc"
	"github.com/crux-lang/crux/lang/vm"
)

// RunFile reads path, compiles it, and runs its top-level code once,
// mapping outcomes to the exit codes spec §6 names.
func RunFile(_ context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return exitIO
	}

	heap := gc.NewHeap()
	fn, cerr := compiler.Compile(path, src, heap)
	if cerr != nil {
		fmt.Fprintln(stdio.Stderr, cerr)
		return exitCompile
	}

	m := vm.New(heap)
	m.Stdout = stdio.Stdout
	m.Stderr = stdio.Stderr

	if _, mr, rerr := m.Interpret(fn, path); rerr != nil {
		fmt.Fprint(stdio.Stderr, m.RuntimeError(mr, rerr))
		return exitRuntime
	}
	return mainer.Success
}
