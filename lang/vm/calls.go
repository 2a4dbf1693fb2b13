package vm

import "github.com/crux-lang/crux/lang/object"

// call dispatches OP_CALL's callee-type switch (spec §4.4): a Closure
// pushes a new frame, a NativeFunction invokes immediately.
func (v *VM) call(m *ModuleRecord, callee object.Value, argCount int) *object.Error {
	switch fn := callee.(type) {
	case *object.Closure:
		return v.callClosure(m, fn, argCount)
	case *object.NativeFunction:
		return v.callNativeFunction(m, fn, argCount)
	case *object.NativeMethod:
		return v.callNativeMethod(m, fn, argCount)
	default:
		return newErr("can only call functions and closures", object.ErrType)
	}
}

func (v *VM) callClosure(m *ModuleRecord, cl *object.Closure, argCount int) *object.Error {
	if argCount != cl.Function.Arity {
		return newErr("wrong number of arguments", object.ErrArgumentMismatch)
	}
	if len(m.Frames) >= FramesMax {
		return object.NewError(object.NewString("stack overflow"), object.ErrStackOverflow, true)
	}
	m.Frames = append(m.Frames, Frame{
		Closure:   cl,
		IP:        0,
		SlotsBase: len(m.Stack) - argCount - 1,
	})
	return nil
}

func (v *VM) callNativeFunction(m *ModuleRecord, fn *object.NativeFunction, argCount int) *object.Error {
	if argCount != fn.Arity {
		return newErr("wrong number of arguments to native function", object.ErrArgumentMismatch)
	}
	args := append([]object.Value(nil), m.Stack[len(m.Stack)-argCount:]...)
	m.Stack = m.Stack[:len(m.Stack)-argCount-1]

	if fn.Fallible {
		result := fn.Fn(v, args)
		if !result.IsOk() && result.Error().IsPanic {
			return result.Error()
		}
		return m.Push(result)
	}
	return m.Push(fn.InfallFn(v, args))
}

func (v *VM) callNativeMethod(m *ModuleRecord, fn *object.NativeMethod, argCount int) *object.Error {
	if argCount != fn.Arity {
		return newErr("wrong number of arguments to native method", object.ErrArgumentMismatch)
	}
	// receiver is args[0], per spec §4.4 method invocation.
	args := append([]object.Value(nil), m.Stack[len(m.Stack)-argCount-1:]...)
	m.Stack = m.Stack[:len(m.Stack)-argCount-1]

	if fn.Fallible {
		result := fn.Fn(v, args)
		if !result.IsOk() && result.Error().IsPanic {
			return result.Error()
		}
		return m.Push(result)
	}
	return m.Push(fn.InfallFn(v, args))
}

// captureUpvalue finds or creates an open upvalue for the stack slot at
// index, deduplicating against the module's open-upvalue list kept in
// descending stack-address order (spec §4.4).
func (m *ModuleRecord) captureUpvalue(index int) *object.Upvalue {
	var prev *object.Upvalue
	cur := m.OpenUpvalues
	for cur != nil && cur.Index > index {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.Index == index {
		return cur
	}

	created := object.NewUpvalue(m.SlotPtr(index), index)
	created.Next = cur
	if prev == nil {
		m.OpenUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue at or above stack index `from`
// (spec §3.3, §4.4): its value is copied into its own storage and the
// list is unlinked up to that point.
func (m *ModuleRecord) closeUpvalues(from int) {
	for m.OpenUpvalues != nil && m.OpenUpvalues.Index >= from {
		uv := m.OpenUpvalues
		uv.Close()
		m.OpenUpvalues = uv.Next
	}
}
