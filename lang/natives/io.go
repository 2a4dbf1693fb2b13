package natives

import (
	"bufio"
	"os"

	"github.com/crux-lang/crux/lang/object"
)

var stdinReader = bufio.NewReader(os.Stdin)

// ioModule builds crux:io: the REPL/script side of console interaction
// that the universe print/println builtins don't cover -- reading a line
// of input, and writing without the implicit newline println adds.
func ioModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("write"), object.NewNativeInfallibleFunction(ctx.Intern("write"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		ctx.Print(stringifyArg(args[0]))
		return object.NilValue
	}))
	t.Set(ctx.Intern("read_line"), object.NewNativeFunction(ctx.Intern("read_line"), 0, func(ctx object.NativeContext, args []object.Value) *object.Result {
		line, err := stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return object.Err(object.NewError(object.NewString(err.Error()), object.ErrIO, false))
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return object.Ok(ctx.Intern(line))
	}))

	return t
}
