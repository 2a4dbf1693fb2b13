package natives

import (
	"os"

	"github.com/crux-lang/crux/lang/object"
)

// fsModule builds crux:fs: opening files in the three modes object.File
// models, plus a couple of whole-file conveniences that don't need a
// lingering handle.
func fsModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(8)

	open := func(name string, mode object.FileMode, flag int) {
		t.Set(ctx.Intern(name), object.NewNativeFunction(ctx.Intern(name), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
			path, ok := args[0].(*object.String)
			if !ok {
				return typeErr(name + "() requires a string path")
			}
			h, err := os.OpenFile(path.Chars, flag, 0644)
			if err != nil {
				return object.Err(object.NewError(object.NewString(err.Error()), object.ErrIO, false))
			}
			return object.Ok(ctx.Track(object.NewFile(path, mode, h)))
		}))
	}
	open("open_read", object.FileRead, os.O_RDONLY)
	open("open_write", object.FileWrite, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	open("open_append", object.FileAppend, os.O_WRONLY|os.O_CREATE|os.O_APPEND)

	t.Set(ctx.Intern("read_to_string"), object.NewNativeFunction(ctx.Intern("read_to_string"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		path, ok := args[0].(*object.String)
		if !ok {
			return typeErr("read_to_string() requires a string path")
		}
		data, err := os.ReadFile(path.Chars)
		if err != nil {
			return object.Err(object.NewError(object.NewString(err.Error()), object.ErrIO, false))
		}
		return object.Ok(ctx.Intern(string(data)))
	}))
	t.Set(ctx.Intern("exists"), object.NewNativeInfallibleFunction(ctx.Intern("exists"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		path, ok := args[0].(*object.String)
		if !ok {
			return object.False
		}
		_, err := os.Stat(path.Chars)
		return object.Bool(err == nil)
	}))

	return t
}

// fileMethods builds the "file" entry of the per-type method table: read,
// write, close against an open object.File handle.
func fileMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("write"), object.NewNativeMethod(ctx.Intern("write"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		f := args[0].(*object.File)
		s, ok := args[1].(*object.String)
		if !ok {
			return typeErr("write() requires a string")
		}
		if !f.Open {
			return object.Err(object.NewError(object.NewString("write on closed file"), object.ErrIO, false))
		}
		n, err := f.Handle.WriteString(s.Chars)
		if err != nil {
			return object.Err(object.NewError(object.NewString(err.Error()), object.ErrIO, false))
		}
		f.Pos += int64(n)
		return object.Ok(object.Int(n))
	}))
	t.Set(ctx.Intern("read_all"), object.NewNativeMethod(ctx.Intern("read_all"), 0, func(ctx object.NativeContext, args []object.Value) *object.Result {
		f := args[0].(*object.File)
		if !f.Open {
			return object.Err(object.NewError(object.NewString("read on closed file"), object.ErrIO, false))
		}
		data, err := os.ReadFile(f.Path.Chars)
		if err != nil {
			return object.Err(object.NewError(object.NewString(err.Error()), object.ErrIO, false))
		}
		return object.Ok(ctx.Intern(string(data)))
	}))
	t.Set(ctx.Intern("close"), object.NewNativeInfallibleMethod(ctx.Intern("close"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		f := args[0].(*object.File)
		f.Close()
		return object.NilValue
	}))

	return t
}
