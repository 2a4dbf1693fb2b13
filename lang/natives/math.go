package natives

import (
	"math"

	"github.com/crux-lang/crux/lang/object"
)

// mathModule builds the crux:math native module: the usual transcendental
// and rounding functions plus the pi/e constants, all operating on
// Int-or-Float operands and always yielding Float (spec §3.1 promotion
// rules already make Float the common numeric currency for these).
func mathModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(16)

	unary := func(name string, fn func(float64) float64) {
		t.Set(ctx.Intern(name), object.NewNativeFunction(ctx.Intern(name), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
			f, ok := toFloat(args[0])
			if !ok {
				return typeErr(name + "() requires a numeric argument")
			}
			return object.Ok(object.Float(fn(f)))
		}))
	}

	unary("sqrt", math.Sqrt)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("exp", math.Exp)
	unary("abs", math.Abs)
	unary("ln", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)

	t.Set(ctx.Intern("pow"), object.NewNativeFunction(ctx.Intern("pow"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a, aok := toFloat(args[0])
		b, bok := toFloat(args[1])
		if !aok || !bok {
			return typeErr("pow() requires numeric arguments")
		}
		return object.Ok(object.Float(math.Pow(a, b)))
	}))
	t.Set(ctx.Intern("min"), object.NewNativeFunction(ctx.Intern("min"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a, aok := toFloat(args[0])
		b, bok := toFloat(args[1])
		if !aok || !bok {
			return typeErr("min() requires numeric arguments")
		}
		return object.Ok(object.Float(math.Min(a, b)))
	}))
	t.Set(ctx.Intern("max"), object.NewNativeFunction(ctx.Intern("max"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a, aok := toFloat(args[0])
		b, bok := toFloat(args[1])
		if !aok || !bok {
			return typeErr("max() requires numeric arguments")
		}
		return object.Ok(object.Float(math.Max(a, b)))
	}))

	t.Set(ctx.Intern("pi"), object.Float(math.Pi))
	t.Set(ctx.Intern("e"), object.Float(math.E))

	return t
}

func toFloat(v object.Value) (float64, bool) {
	switch v := v.(type) {
	case object.Int:
		return float64(v), true
	case object.Float:
		return float64(v), true
	}
	return 0, false
}

func typeErr(msg string) *object.Result {
	return object.Err(object.NewError(object.NewString(msg), object.ErrType, false))
}
