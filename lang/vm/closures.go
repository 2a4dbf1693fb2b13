package vm

import "github.com/crux-lang/crux/lang/object"

// opClosure implements OP_CLOSURE (spec §4.4): the function constant was
// already pushed by the preceding OP_CONSTANT(_16); this instruction pops
// it, reads one (isLocal, index) byte pair per declared upvalue from the
// inline operand stream, and builds the Closure.
func (v *VM) opClosure(m *ModuleRecord) *object.Error {
	fnVal, err := m.Pop()
	if err != nil {
		return err
	}
	fn, ok := fnVal.(*object.Function)
	if !ok {
		return newErr("CLOSURE expects a function constant", object.ErrRuntime)
	}
	cl := object.NewClosure(fn)
	f := m.frame()
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := m.readByte() != 0
		index := int(m.readByte())
		if isLocal {
			cl.Upvalues[i] = m.captureUpvalue(f.SlotsBase + index)
		} else {
			cl.Upvalues[i] = f.Closure.Upvalues[index]
		}
	}
	return m.Push(v.Track(cl))
}

// opReturn implements OP_RETURN/OP_NIL_RETURN (spec §4.4): close every
// upvalue still open into the returning frame's locals, pop the frame, and
// leave exactly the return value on the caller's stack where the callee
// and its arguments used to be.
func (v *VM) opReturn(m *ModuleRecord, isNil bool) *object.Error {
	var result object.Value = object.NilValue
	if !isNil {
		var err *object.Error
		result, err = m.Pop()
		if err != nil {
			return err
		}
	}
	f := m.frame()
	m.closeUpvalues(f.SlotsBase)
	base := f.SlotsBase
	m.Frames = m.Frames[:len(m.Frames)-1]
	m.Stack = m.Stack[:base]
	return m.Push(result)
}
