package natives

import "github.com/crux-lang/crux/lang/object"

// resultMethods and errorMethods expose Result/Error as callable-method
// receivers for code that prefers `.is_ok()`/`.message()` style access
// over `match` (spec §3.2, §7) -- match remains the primary idiom, these
// are the escape hatch.
func resultMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("is_ok"), object.NewNativeInfallibleMethod(ctx.Intern("is_ok"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Bool(args[0].(*object.Result).IsOk())
	}))
	t.Set(ctx.Intern("is_err"), object.NewNativeInfallibleMethod(ctx.Intern("is_err"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Bool(!args[0].(*object.Result).IsOk())
	}))
	t.Set(ctx.Intern("unwrap"), object.NewNativeInfallibleMethod(ctx.Intern("unwrap"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return args[0].(*object.Result).Unwrap()
	}))

	return t
}

func errorMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("message"), object.NewNativeInfallibleMethod(ctx.Intern("message"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return args[0].(*object.Error).Message
	}))
	t.Set(ctx.Intern("kind"), object.NewNativeInfallibleMethod(ctx.Intern("kind"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(args[0].(*object.Error).Kind.String())
	}))

	return t
}
