package natives

import "github.com/crux-lang/crux/lang/object"

// tableMethods builds the "table" method table. StaticTable is absent for
// the same reason StaticArray is in arrayMethods: it has no mutating
// operations to expose.
func tableMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("len"), object.NewNativeInfallibleMethod(ctx.Intern("len"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Int(args[0].(*object.Table).Len())
	}))
	t.Set(ctx.Intern("has"), object.NewNativeMethod(ctx.Intern("has"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		tbl := args[0].(*object.Table)
		if !object.Hashable(args[1]) {
			return typeErr("has() requires a hashable key")
		}
		_, ok := tbl.Get(args[1])
		return object.Ok(object.Bool(ok))
	}))
	t.Set(ctx.Intern("delete"), object.NewNativeMethod(ctx.Intern("delete"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		tbl := args[0].(*object.Table)
		if !object.Hashable(args[1]) {
			return typeErr("delete() requires a hashable key")
		}
		return object.Ok(object.Bool(tbl.Delete(args[1])))
	}))

	return t
}
