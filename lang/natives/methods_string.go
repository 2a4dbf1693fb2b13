package natives

import (
	"strings"

	"github.com/crux-lang/crux/lang/object"
)

// stringMethods builds the "string" entry of the per-type method table
// OP_INVOKE consults (spec §3.2, §4.4): the receiver arrives as args[0].
func stringMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(8)

	t.Set(ctx.Intern("len"), object.NewNativeInfallibleMethod(ctx.Intern("len"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Int(args[0].(*object.String).Len())
	}))
	t.Set(ctx.Intern("upper"), object.NewNativeInfallibleMethod(ctx.Intern("upper"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(strings.ToUpper(args[0].(*object.String).Chars))
	}))
	t.Set(ctx.Intern("lower"), object.NewNativeInfallibleMethod(ctx.Intern("lower"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(strings.ToLower(args[0].(*object.String).Chars))
	}))
	t.Set(ctx.Intern("trim"), object.NewNativeInfallibleMethod(ctx.Intern("trim"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(strings.TrimSpace(args[0].(*object.String).Chars))
	}))
	t.Set(ctx.Intern("contains"), object.NewNativeMethod(ctx.Intern("contains"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		s := args[0].(*object.String)
		sub, ok := args[1].(*object.String)
		if !ok {
			return typeErr("contains() requires a string argument")
		}
		return object.Ok(object.Bool(strings.Contains(s.Chars, sub.Chars)))
	}))
	t.Set(ctx.Intern("split"), object.NewNativeMethod(ctx.Intern("split"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		s := args[0].(*object.String)
		sep, ok := args[1].(*object.String)
		if !ok {
			return typeErr("split() requires a string separator")
		}
		parts := strings.Split(s.Chars, sep.Chars)
		elems := make([]object.Value, len(parts))
		for i, p := range parts {
			elems[i] = ctx.Intern(p)
		}
		return object.Ok(ctx.Track(object.NewArray(elems)))
	}))
	t.Set(ctx.Intern("concat"), object.NewNativeMethod(ctx.Intern("concat"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		s := args[0].(*object.String)
		other, ok := args[1].(*object.String)
		if !ok {
			return typeErr("concat() requires a string argument")
		}
		return object.Ok(ctx.Intern(s.Chars + other.Chars))
	}))

	return t
}
