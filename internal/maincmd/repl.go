package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mna/mainer"

	"github.com/crux-lang/crux/lang/compiler"
	"github.com/crux-lang/crux/lang/gc"
	"github.com/crux-lang/crux/lang/object"
	"github.com/crux-lang/crux/lang/vm"
)

const replPrompt = "> "

// REPL implements the interactive mode (spec §6): read a line, compile
// and run it against one persistent module so globals survive across
// lines, print its result, repeat until EOF. A compile or runtime error
// on one line is reported and the REPL continues; it never itself exits
// non-zero except for a read error on stdin.
func REPL(_ context.Context, stdio mainer.Stdio) mainer.ExitCode {
	heap := gc.NewHeap()
	m := vm.New(heap)
	m.Stdout = stdio.Stdout
	m.Stderr = stdio.Stderr
	mod := m.NewREPLModule("<repl>")

	in := bufio.NewReader(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, replPrompt)
		line, err := in.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				fmt.Fprintln(stdio.Stdout)
				return mainer.Success
			}
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return exitIO
		}

		fn, cerr := compiler.Compile("<repl>", []byte(line), heap)
		if cerr != nil {
			fmt.Fprintln(stdio.Stderr, cerr)
			if err == io.EOF {
				return mainer.Success
			}
			continue
		}

		frameBase := len(mod.Frames)
		result, rerr := m.InterpretInModule(fn, mod)
		if rerr != nil {
			fmt.Fprint(stdio.Stderr, m.RuntimeError(mod, rerr))
			// runTopLevel leaves the failing line's frames in place for the
			// trace above; drop them now so the next line starts clean.
			mod.Frames = mod.Frames[:frameBase]
		} else if _, isNil := result.(object.Nil); !isNil {
			fmt.Fprintln(stdio.Stdout, result.String())
		}

		if err == io.EOF {
			return mainer.Success
		}
	}
}
