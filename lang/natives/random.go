package natives

import "github.com/crux-lang/crux/lang/object"

// randomModule builds crux:random: a `new(seed)` constructor for
// independent object.Random generators (spec §3.2), plus one shared
// default instance per VM (built when Install runs), seeded from a fixed
// constant so scripts that just want
// "a random number" don't need to thread a generator through.
func randomModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("new"), object.NewNativeInfallibleFunction(ctx.Intern("new"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		seed, _ := toFloat(args[0])
		return ctx.Track(object.NewRandom(uint64(seed)))
	}))

	deflt := ctx.Track(object.NewRandom(0xC0FFEE)).(*object.Random)
	t.Set(ctx.Intern("default"), deflt)

	return t
}

// randomMethods builds the "random" entry of the per-type method table
// consulted by OP_INVOKE, mirroring object.Random's Next/Float64/Int31n.
func randomMethods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("float"), object.NewNativeInfallibleMethod(ctx.Intern("float"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		r := args[0].(*object.Random)
		return object.Float(r.Float64())
	}))
	t.Set(ctx.Intern("int"), object.NewNativeMethod(ctx.Intern("int"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		r := args[0].(*object.Random)
		lo, loOk := args[1].(object.Int)
		hi, hiOk := args[2].(object.Int)
		if !loOk || !hiOk || hi <= lo {
			return typeErr("int(lo, hi) requires lo < hi as integers")
		}
		return object.Ok(lo + object.Int(r.Int31n(int32(hi-lo))))
	}))

	return t
}
