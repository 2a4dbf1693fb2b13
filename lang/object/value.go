// Package object implements Crux's runtime value model: the tagged Value
// variants described in spec §3 (Nil, Bool, Int, Float and heap Objects),
// the interned string table, and the bytecode chunk representation they are
// built from. It plays the role of the teacher's lang/machine value.go +
// tuple.go + float.go + nil.go files, generalized from Starlark's value set
// to Crux's (Int/Float split, structs, results, modules, ...).
package object

import (
	"fmt"
	"math"
)

// Value is the interface implemented by every value the VM can manipulate:
// the four primitive kinds (Nil, Bool, Int, Float) and every heap Obj.
type Value interface {
	// Type returns the short type name reported by the `typeof` operator.
	Type() string
	// String returns a human-readable representation, used by string
	// concatenation and native printing.
	String() string
}

// Nil is the type of the nil value. There is exactly one: NilValue.
type Nil struct{}

// NilValue is the sole Value of type Nil.
var NilValue = Nil{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Bool is a boolean value.
type Bool bool

const (
	True  Bool = true
	False Bool = false
)

func (b Bool) Type() string { return "bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int is a signed 32-bit integer value, per spec §3.1.
type Int int32

func (i Int) Type() string   { return "int" }
func (i Int) String() string { return fmt.Sprintf("%d", int32(i)) }

// Float is an IEEE-754 64-bit floating point value.
type Float float64

func (f Float) Type() string { return "float" }
func (f Float) String() string {
	v := float64(f)
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%g", v)
}

// Truth reports the boolean truthiness of v: nil and false are falsy. Crux
// does not attach truthiness rules beyond Bool/Nil in spec.md, so only those
// two are special-cased; every other Value, including an empty
// string/array/table, is truthy.
func Truth(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal implements structural equality for primitives and identity equality
// for objects, except that interned strings compare equal iff their object
// references are equal (spec §3.1) -- which falls out for free here because
// all interned *String values sharing content are the same pointer.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case Nil:
		_, ok := y.(Nil)
		return ok
	case Bool:
		yb, ok := y.(Bool)
		return ok && x == yb
	case Int:
		switch y := y.(type) {
		case Int:
			return x == y
		case Float:
			return Float(x) == y
		}
		return false
	case Float:
		switch y := y.(type) {
		case Int:
			return x == Float(y)
		case Float:
			return x == y
		}
		return false
	default:
		return x == y
	}
}

// Hashable reports whether v may be used as a Table key, per spec §3.2.
func Hashable(v Value) bool {
	switch v.(type) {
	case Nil, Bool, Int, Float, *String:
		return true
	default:
		return false
	}
}
