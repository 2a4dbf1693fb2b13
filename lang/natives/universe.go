// Package natives implements Crux's built-in surface: the universe
// functions available in every module without a `use`, the `crux:`-prefixed
// native modules (math, io, fs, time, random, sys, vectors), and the
// per-type method tables OP_INVOKE consults for built-in receivers (spec
// §3.2, §6, and the Non-goals-excluded-detail stdlib this expands on).
// Every native here is written against object.NativeContext rather than a
// concrete VM, so this package never needs to import lang/vm.
package natives

import "github.com/crux-lang/crux/lang/object"

// Universe returns the fixed built-in functions installed into every
// module's globals before its own top-level code runs.
func Universe(ctx object.NativeContext) map[string]*object.NativeFunction {
	u := make(map[string]*object.NativeFunction)

	reg := func(name string, arity int, fn object.NativeFn) {
		u[name] = object.NewNativeFunction(ctx.Intern(name), arity, fn)
	}
	regInfall := func(name string, arity int, fn object.NativeInfallibleFn) {
		u[name] = object.NewNativeInfallibleFunction(ctx.Intern(name), arity, fn)
	}

	regInfall("print", 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		ctx.Print(stringifyArg(args[0]))
		return object.NilValue
	})
	regInfall("println", 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		ctx.Print(stringifyArg(args[0]) + "\n")
		return object.NilValue
	})
	regInfall("typeof", 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(args[0].Type())
	})
	regInfall("ok", 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Ok(args[0])
	})
	regInfall("err", 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Err(object.NewError(messageOf(ctx, args[0]), object.ErrValue, false))
	})

	reg("len", 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		return lenOf(args[0])
	})
	reg("assert", 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		if object.Truth(args[0]) {
			return object.Ok(object.NilValue)
		}
		return object.Err(object.NewError(messageOf(ctx, args[1]), object.ErrAssert, true))
	})
	reg("panic", 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		return object.Err(object.NewError(messageOf(ctx, args[0]), object.ErrRuntime, true))
	})

	return u
}

func stringifyArg(v object.Value) string {
	if s, ok := v.(*object.String); ok {
		return s.Chars
	}
	return v.String()
}

func messageOf(ctx object.NativeContext, v object.Value) *object.String {
	if s, ok := v.(*object.String); ok {
		return s
	}
	return ctx.Intern(v.String())
}

func lenOf(v object.Value) *object.Result {
	switch v := v.(type) {
	case *object.String:
		return object.Ok(object.Int(v.Len()))
	case *object.Array:
		return object.Ok(object.Int(v.Len()))
	case *object.StaticArray:
		return object.Ok(object.Int(v.Len()))
	case *object.Table:
		return object.Ok(object.Int(v.Len()))
	case *object.StaticTable:
		return object.Ok(object.Int(v.Len()))
	default:
		return object.Err(object.NewError(object.NewString("len() requires a string, array, or table"), object.ErrType, false))
	}
}
