package natives

import (
	"math"

	"github.com/crux-lang/crux/lang/object"
)

const vecEpsilon = 1e-10

// vectorsModule builds crux:vectors: constructors for object.Vec2/Vec3.
// Component access and arithmetic live on the per-type method tables
// (vec2Methods/vec3Methods) so `v.length()` etc. dispatch through OP_INVOKE
// like any other built-in method call.
func vectorsModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	t.Set(ctx.Intern("vec2"), object.NewNativeFunction(ctx.Intern("vec2"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		x, xok := toFloat(args[0])
		y, yok := toFloat(args[1])
		if !xok || !yok {
			return typeErr("vec2(x, y) requires numeric arguments")
		}
		return object.Ok(ctx.Track(object.NewVec2(x, y)))
	}))
	t.Set(ctx.Intern("vec3"), object.NewNativeFunction(ctx.Intern("vec3"), 3, func(ctx object.NativeContext, args []object.Value) *object.Result {
		x, xok := toFloat(args[0])
		y, yok := toFloat(args[1])
		z, zok := toFloat(args[2])
		if !xok || !yok || !zok {
			return typeErr("vec3(x, y, z) requires numeric arguments")
		}
		return object.Ok(ctx.Track(object.NewVec3(x, y, z)))
	}))

	return t
}

// vec2Methods builds the "vec2" entry of the per-type method table,
// grounded on original_source/src/std/vectors.c's vec2_* methods.
func vec2Methods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(16)

	t.Set(ctx.Intern("x"), object.NewNativeInfallibleMethod(ctx.Intern("x"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Float(args[0].(*object.Vec2).X)
	}))
	t.Set(ctx.Intern("y"), object.NewNativeInfallibleMethod(ctx.Intern("y"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Float(args[0].(*object.Vec2).Y)
	}))
	t.Set(ctx.Intern("length"), object.NewNativeInfallibleMethod(ctx.Intern("length"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		v := args[0].(*object.Vec2)
		return object.Float(math.Hypot(v.X, v.Y))
	}))
	t.Set(ctx.Intern("magnitude"), object.NewNativeInfallibleMethod(ctx.Intern("magnitude"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		v := args[0].(*object.Vec2)
		return object.Float(math.Hypot(v.X, v.Y))
	}))
	t.Set(ctx.Intern("angle"), object.NewNativeInfallibleMethod(ctx.Intern("angle"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		v := args[0].(*object.Vec2)
		return object.Float(math.Atan2(v.Y, v.X))
	}))

	t.Set(ctx.Intern("add"), object.NewNativeMethod(ctx.Intern("add"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("add() requires another vec2")
		}
		return object.Ok(ctx.Track(object.NewVec2(a.X+b.X, a.Y+b.Y)))
	}))
	t.Set(ctx.Intern("subtract"), object.NewNativeMethod(ctx.Intern("subtract"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("subtract() requires another vec2")
		}
		return object.Ok(ctx.Track(object.NewVec2(a.X-b.X, a.Y-b.Y)))
	}))
	t.Set(ctx.Intern("multiply"), object.NewNativeMethod(ctx.Intern("multiply"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec2)
		scalar, ok := toFloat(args[1])
		if !ok {
			return typeErr("multiply() requires a number")
		}
		return object.Ok(ctx.Track(object.NewVec2(v.X*scalar, v.Y*scalar)))
	}))
	t.Set(ctx.Intern("divide"), object.NewNativeMethod(ctx.Intern("divide"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec2)
		scalar, ok := toFloat(args[1])
		if !ok {
			return typeErr("divide() requires a number")
		}
		if math.Abs(scalar) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot divide by zero"), object.ErrMath, false))
		}
		return object.Ok(ctx.Track(object.NewVec2(v.X/scalar, v.Y/scalar)))
	}))
	t.Set(ctx.Intern("dot"), object.NewNativeMethod(ctx.Intern("dot"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("dot() requires another vec2")
		}
		return object.Ok(object.Float(a.X*b.X + a.Y*b.Y))
	}))
	t.Set(ctx.Intern("distance"), object.NewNativeMethod(ctx.Intern("distance"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("distance() requires another vec2")
		}
		return object.Ok(object.Float(math.Hypot(a.X-b.X, a.Y-b.Y)))
	}))
	t.Set(ctx.Intern("equals"), object.NewNativeMethod(ctx.Intern("equals"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("equals() requires another vec2")
		}
		eq := math.Abs(a.X-b.X) < vecEpsilon && math.Abs(a.Y-b.Y) < vecEpsilon
		return object.Ok(object.Bool(eq))
	}))
	t.Set(ctx.Intern("angle_between"), object.NewNativeMethod(ctx.Intern("angle_between"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("angle_between() requires another vec2")
		}
		dot := a.X*b.X + a.Y*b.Y
		magA, magB := math.Hypot(a.X, a.Y), math.Hypot(b.X, b.Y)
		if math.Abs(magA) < vecEpsilon || math.Abs(magB) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot calculate angle with zero vector"), object.ErrMath, false))
		}
		cosTheta := math.Max(-1.0, math.Min(1.0, dot/(magA*magB)))
		return object.Ok(object.Float(math.Acos(cosTheta)))
	}))
	t.Set(ctx.Intern("rotate"), object.NewNativeMethod(ctx.Intern("rotate"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec2)
		angle, ok := toFloat(args[1])
		if !ok {
			return typeErr("rotate() requires a number (radians)")
		}
		cosA, sinA := math.Cos(angle), math.Sin(angle)
		return object.Ok(ctx.Track(object.NewVec2(v.X*cosA-v.Y*sinA, v.X*sinA+v.Y*cosA)))
	}))
	t.Set(ctx.Intern("lerp"), object.NewNativeMethod(ctx.Intern("lerp"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec2)
		b, ok := args[1].(*object.Vec2)
		tArg, tok := toFloat(args[2])
		if !ok || !tok {
			return typeErr("lerp() requires another vec2 and a number")
		}
		return object.Ok(ctx.Track(object.NewVec2(a.X+tArg*(b.X-a.X), a.Y+tArg*(b.Y-a.Y))))
	}))
	t.Set(ctx.Intern("normalize"), object.NewNativeMethod(ctx.Intern("normalize"), 0, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec2)
		mag := math.Hypot(v.X, v.Y)
		if math.Abs(mag) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot normalize a zero vector"), object.ErrMath, false))
		}
		return object.Ok(ctx.Track(object.NewVec2(v.X/mag, v.Y/mag)))
	}))
	t.Set(ctx.Intern("reflect"), object.NewNativeMethod(ctx.Intern("reflect"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		incident := args[0].(*object.Vec2)
		normal, ok := args[1].(*object.Vec2)
		if !ok {
			return typeErr("reflect() requires another vec2 as the normal")
		}
		normalMag := math.Hypot(normal.X, normal.Y)
		if math.Abs(normalMag) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot reflect with zero normal vector"), object.ErrMath, false))
		}
		nx, ny := normal.X/normalMag, normal.Y/normalMag
		dot := incident.X*nx + incident.Y*ny
		return object.Ok(ctx.Track(object.NewVec2(incident.X-2.0*dot*nx, incident.Y-2.0*dot*ny)))
	}))

	return t
}

// vec3Methods builds the "vec3" entry of the per-type method table,
// grounded on original_source/src/std/vectors.c's vec3_* methods.
func vec3Methods(ctx object.NativeContext) *object.Table {
	t := object.NewTable(16)

	t.Set(ctx.Intern("x"), object.NewNativeInfallibleMethod(ctx.Intern("x"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Float(args[0].(*object.Vec3).X)
	}))
	t.Set(ctx.Intern("y"), object.NewNativeInfallibleMethod(ctx.Intern("y"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Float(args[0].(*object.Vec3).Y)
	}))
	t.Set(ctx.Intern("z"), object.NewNativeInfallibleMethod(ctx.Intern("z"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return object.Float(args[0].(*object.Vec3).Z)
	}))
	t.Set(ctx.Intern("length"), object.NewNativeInfallibleMethod(ctx.Intern("length"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		v := args[0].(*object.Vec3)
		return object.Float(math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
	}))
	t.Set(ctx.Intern("magnitude"), object.NewNativeInfallibleMethod(ctx.Intern("magnitude"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		v := args[0].(*object.Vec3)
		return object.Float(math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
	}))

	t.Set(ctx.Intern("add"), object.NewNativeMethod(ctx.Intern("add"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("add() requires another vec3")
		}
		return object.Ok(ctx.Track(object.NewVec3(a.X+b.X, a.Y+b.Y, a.Z+b.Z)))
	}))
	t.Set(ctx.Intern("subtract"), object.NewNativeMethod(ctx.Intern("subtract"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("subtract() requires another vec3")
		}
		return object.Ok(ctx.Track(object.NewVec3(a.X-b.X, a.Y-b.Y, a.Z-b.Z)))
	}))
	t.Set(ctx.Intern("multiply"), object.NewNativeMethod(ctx.Intern("multiply"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec3)
		scalar, ok := toFloat(args[1])
		if !ok {
			return typeErr("multiply() requires a number")
		}
		return object.Ok(ctx.Track(object.NewVec3(v.X*scalar, v.Y*scalar, v.Z*scalar)))
	}))
	t.Set(ctx.Intern("divide"), object.NewNativeMethod(ctx.Intern("divide"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec3)
		scalar, ok := toFloat(args[1])
		if !ok {
			return typeErr("divide() requires a number")
		}
		if math.Abs(scalar) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot divide by zero"), object.ErrMath, false))
		}
		return object.Ok(ctx.Track(object.NewVec3(v.X/scalar, v.Y/scalar, v.Z/scalar)))
	}))
	t.Set(ctx.Intern("dot"), object.NewNativeMethod(ctx.Intern("dot"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("dot() requires another vec3")
		}
		return object.Ok(object.Float(a.X*b.X + a.Y*b.Y + a.Z*b.Z))
	}))
	t.Set(ctx.Intern("cross"), object.NewNativeMethod(ctx.Intern("cross"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("cross() requires another vec3")
		}
		return object.Ok(ctx.Track(object.NewVec3(
			a.Y*b.Z-a.Z*b.Y,
			a.Z*b.X-a.X*b.Z,
			a.X*b.Y-a.Y*b.X,
		)))
	}))
	t.Set(ctx.Intern("distance"), object.NewNativeMethod(ctx.Intern("distance"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("distance() requires another vec3")
		}
		dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
		return object.Ok(object.Float(math.Sqrt(dx*dx + dy*dy + dz*dz)))
	}))
	t.Set(ctx.Intern("equals"), object.NewNativeMethod(ctx.Intern("equals"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("equals() requires another vec3")
		}
		eq := math.Abs(a.X-b.X) < vecEpsilon && math.Abs(a.Y-b.Y) < vecEpsilon && math.Abs(a.Z-b.Z) < vecEpsilon
		return object.Ok(object.Bool(eq))
	}))
	t.Set(ctx.Intern("angle_between"), object.NewNativeMethod(ctx.Intern("angle_between"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("angle_between() requires another vec3")
		}
		dot := a.X*b.X + a.Y*b.Y + a.Z*b.Z
		magA := math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
		magB := math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
		if math.Abs(magA) < vecEpsilon || math.Abs(magB) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot calculate angle with zero vector"), object.ErrMath, false))
		}
		cosTheta := math.Max(-1.0, math.Min(1.0, dot/(magA*magB)))
		return object.Ok(object.Float(math.Acos(cosTheta)))
	}))
	t.Set(ctx.Intern("lerp"), object.NewNativeMethod(ctx.Intern("lerp"), 2, func(ctx object.NativeContext, args []object.Value) *object.Result {
		a := args[0].(*object.Vec3)
		b, ok := args[1].(*object.Vec3)
		tArg, tok := toFloat(args[2])
		if !ok || !tok {
			return typeErr("lerp() requires another vec3 and a number")
		}
		return object.Ok(ctx.Track(object.NewVec3(
			a.X+tArg*(b.X-a.X),
			a.Y+tArg*(b.Y-a.Y),
			a.Z+tArg*(b.Z-a.Z),
		)))
	}))
	t.Set(ctx.Intern("normalize"), object.NewNativeMethod(ctx.Intern("normalize"), 0, func(ctx object.NativeContext, args []object.Value) *object.Result {
		v := args[0].(*object.Vec3)
		mag := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if math.Abs(mag) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot normalize a zero vector"), object.ErrMath, false))
		}
		return object.Ok(ctx.Track(object.NewVec3(v.X/mag, v.Y/mag, v.Z/mag)))
	}))
	t.Set(ctx.Intern("reflect"), object.NewNativeMethod(ctx.Intern("reflect"), 1, func(ctx object.NativeContext, args []object.Value) *object.Result {
		incident := args[0].(*object.Vec3)
		normal, ok := args[1].(*object.Vec3)
		if !ok {
			return typeErr("reflect() requires another vec3 as the normal")
		}
		normalMag := math.Sqrt(normal.X*normal.X + normal.Y*normal.Y + normal.Z*normal.Z)
		if math.Abs(normalMag) < vecEpsilon {
			return object.Err(object.NewError(object.NewString("cannot reflect with zero normal vector"), object.ErrMath, false))
		}
		nx, ny, nz := normal.X/normalMag, normal.Y/normalMag, normal.Z/normalMag
		dot := incident.X*nx + incident.Y*ny + incident.Z*nz
		return object.Ok(ctx.Track(object.NewVec3(
			incident.X-2.0*dot*nx,
			incident.Y-2.0*dot*ny,
			incident.Z-2.0*dot*nz,
		)))
	}))

	return t
}
