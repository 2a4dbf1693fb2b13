package natives

import "github.com/crux-lang/crux/lang/object"

// arrayMethods builds the "array" method table. StaticArray is
// deliberately absent: spec §3.2/§4.4 reserve mutation (push) for the
// dynamic Array kind, and its read-only operations go through
// OP_GET_COLLECTION/len() instead of a method call.
func arrayMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("len"), object.NewNativeInfallibleMethod(ctx.Intern("len"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Int(args[0].(*object.Array).Len())
	}))
	t.Set(ctx.Intern("push"), object.NewNativeInfallibleMethod(ctx.Intern("push"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		a := args[0].(*object.Array)
		a.Push(args[1])
		return object.NilValue
	}))
	t.Set(ctx.Intern("pop"), object.NewNativeMethod(ctx.Intern("pop"), 0, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Array)
		n := a.Len()
		if n == 0 {
			return object.Err(object.NewError(object.NewString("pop() on empty array"), object.ErrBounds, false))
		}
		v, _ := a.Get(n - 1)
		a.Elems = a.Elems[:n-1]
		return object.Ok(v)
	}))

	return t
}
