package natives

import (
	"time"

	"github.com/crux-lang/crux/lang/object"
)

// timeModule builds crux:time: wall-clock seconds and a blocking sleep,
// the two primitives every other timing utility can be built from.
func timeModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("now"), object.NewNativeInfallibleFunction(ctx.Intern("now"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Float(float64(time.Now().UnixNano()) / 1e9)
	}))
	t.Set(ctx.Intern("sleep"), object.NewNativeInfallibleFunction(ctx.Intern("sleep"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		secs, _ := toFloat(args[0])
		if secs > 0 {
			time.Sleep(time.Duration(secs * float64(time.Second)))
		}
		return object.NilValue
	}))

	return t
}
