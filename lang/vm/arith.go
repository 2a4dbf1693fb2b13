package vm

import (
	"math"

	"github.com/crux-lang/crux/lang/object"
)

func newErr(msg string, kind object.ErrorKind) *object.Error {
	return object.NewError(object.NewString(msg), kind, false)
}

// arithmetic implements the promotion rules of spec §4.4: Int op Int stays
// Int when the exact result fits i32, otherwise promotes to Float, with
// `/` always Float, `\`/`%` staying Int (INT32_MIN edge cases), `**`
// always Float, and `+` on a String concatenating after stringifying the
// other operand.
func (v *VM) arithmetic(op object.Op, a, b object.Value) (object.Value, *object.Error) {
	if op == object.OpAdd {
		if as, ok := a.(*object.String); ok {
			return v.Heap.Intern(as.Chars + stringify(b)), nil
		}
		if bs, ok := b.(*object.String); ok {
			return v.Heap.Intern(stringify(a) + bs.Chars), nil
		}
	}

	ai, aIsInt := a.(object.Int)
	bi, bIsInt := b.(object.Int)
	af, aIsFloat := a.(object.Float)
	bf, bIsFloat := b.(object.Float)

	if !((aIsInt || aIsFloat) && (bIsInt || bIsFloat)) {
		return nil, newErr("arithmetic requires numeric operands", object.ErrType)
	}

	switch op {
	case object.OpDiv:
		x, y := numFloat(a), numFloat(b)
		if y == 0 {
			return nil, newErr("division by zero", object.ErrMath)
		}
		return object.Float(x / y), nil
	case object.OpPow:
		return object.Float(math.Pow(numFloat(a), numFloat(b))), nil
	case object.OpIntDiv, object.OpMod:
		if !aIsInt || !bIsInt {
			return nil, newErr("'\\' and '%' require Int operands", object.ErrType)
		}
		return intDivMod(op, ai, bi)
	case object.OpLShift, object.OpRShift:
		if !aIsInt || !bIsInt {
			return nil, newErr("bit shifts require Int operands", object.ErrType)
		}
		return shift(op, ai, bi)
	}

	if aIsInt && bIsInt {
		return addSubMulInt(op, ai, bi), nil
	}
	x, y := numFloat(a), numFloat(b)
	switch op {
	case object.OpAdd:
		return object.Float(x + y), nil
	case object.OpSub:
		return object.Float(x - y), nil
	case object.OpMul:
		return object.Float(x * y), nil
	}
	return nil, newErr("unsupported arithmetic operator", object.ErrType)
}

func numFloat(v object.Value) float64 {
	switch v := v.(type) {
	case object.Int:
		return float64(v)
	case object.Float:
		return float64(v)
	}
	return 0
}

// addSubMulInt implements the Int-stays-Int-unless-overflow rule using
// 64-bit intermediate arithmetic to detect overflow precisely.
func addSubMulInt(op object.Op, a, b object.Int) object.Value {
	x, y := int64(a), int64(b)
	var r int64
	switch op {
	case object.OpAdd:
		r = x + y
	case object.OpSub:
		r = x - y
	case object.OpMul:
		r = x * y
	}
	if r < math.MinInt32 || r > math.MaxInt32 {
		return object.Float(float64(r))
	}
	return object.Int(int32(r))
}

func intDivMod(op object.Op, a, b object.Int) (object.Value, *object.Error) {
	if b == 0 {
		return nil, newErr("division by zero", object.ErrMath)
	}
	// INT32_MIN \ -1 and INT32_MIN % -1 overflow a plain int32 division.
	if a == math.MinInt32 && b == -1 {
		if op == object.OpIntDiv {
			return object.Float(-float64(math.MinInt32)), nil
		}
		return object.Int(0), nil
	}
	if op == object.OpIntDiv {
		return object.Int(int32(a) / int32(b)), nil
	}
	return object.Int(int32(a) % int32(b)), nil
}

func shift(op object.Op, a, b object.Int) (object.Value, *object.Error) {
	if b < 0 || b >= 32 {
		return nil, newErr("shift amount out of range [0, 32)", object.ErrRuntime)
	}
	if op == object.OpLShift {
		return object.Int(int32(uint32(a) << uint(b))), nil
	}
	return object.Int(a >> uint(b)), nil
}

func stringify(v object.Value) string {
	return v.String()
}
