package vm

import "github.com/crux-lang/crux/lang/object"

// runFrames executes instructions until the module's frame stack depth
// drops back to targetDepth, i.e. until the frame that was on top when
// this call started has returned. Interpret calls this with targetDepth 0
// (run the whole program); VM.Call (a native invoking a user callback)
// calls it with the depth just before the callback's frame was pushed.
func (v *VM) runFrames(m *ModuleRecord, targetDepth int) *object.Error {
	for len(m.Frames) > targetDepth {
		if err := v.step(m); err != nil {
			return err
		}
	}
	return nil
}

func (m *ModuleRecord) readByte() byte {
	f := m.frame()
	b := f.Closure.Function.Chunk.Code[f.IP]
	f.IP++
	return b
}

func (m *ModuleRecord) readUint16() uint16 {
	f := m.frame()
	hi := m.readByte()
	lo := m.readByte()
	_ = f
	return uint16(hi)<<8 | uint16(lo)
}

func (m *ModuleRecord) readConstant(idx int) object.Value {
	return m.frame().Closure.Function.Chunk.Constants[idx]
}

func (m *ModuleRecord) readConstant8() object.Value {
	return m.readConstant(int(m.readByte()))
}

func (m *ModuleRecord) readConstant16() object.Value {
	return m.readConstant(int(m.readUint16()))
}

// step decodes and executes exactly one bytecode instruction: the
// dispatch loop of spec §4.4, a plain Go switch playing the role of a
// computed-goto table (spec §9 notes either is an acceptable choice).
func (v *VM) step(m *ModuleRecord) *object.Error {
	op := object.Op(m.readByte())

	switch op {
	case object.OpConstant:
		return m.Push(m.readConstant8())
	case object.OpConstant16:
		return m.Push(m.readConstant16())
	case object.OpNil:
		return m.Push(object.NilValue)
	case object.OpTrue:
		return m.Push(object.True)
	case object.OpFalse:
		return m.Push(object.False)

	case object.OpAdd, object.OpSub, object.OpMul, object.OpDiv,
		object.OpIntDiv, object.OpMod, object.OpPow, object.OpLShift, object.OpRShift:
		b, err := m.Pop()
		if err != nil {
			return err
		}
		a, err := m.Pop()
		if err != nil {
			return err
		}
		r, aerr := v.arithmetic(op, a, b)
		if aerr != nil {
			return aerr
		}
		return m.Push(r)

	case object.OpNegate:
		a, err := m.Pop()
		if err != nil {
			return err
		}
		switch n := a.(type) {
		case object.Int:
			if n == -2147483648 {
				return m.Push(object.Float(2147483648))
			}
			return m.Push(-n)
		case object.Float:
			return m.Push(-n)
		default:
			return newErr("'-' requires a numeric operand", object.ErrType)
		}

	case object.OpNot:
		a, err := m.Pop()
		if err != nil {
			return err
		}
		return m.Push(object.Bool(!object.Truth(a)))

	case object.OpEqual:
		b, err := m.Pop()
		if err != nil {
			return err
		}
		a, err := m.Pop()
		if err != nil {
			return err
		}
		return m.Push(object.Bool(object.Equal(a, b)))

	case object.OpGreater, object.OpLess:
		b, err := m.Pop()
		if err != nil {
			return err
		}
		a, err := m.Pop()
		if err != nil {
			return err
		}
		return v.compare(m, op, a, b)

	case object.OpPop:
		_, err := m.Pop()
		return err

	case object.OpDefineGlobal:
		return v.defineGlobal(m, m.readConstant8())
	case object.OpDefineGlobal16:
		return v.defineGlobal(m, m.readConstant16())
	case object.OpGetGlobal:
		return v.getGlobal(m, m.readConstant8())
	case object.OpGetGlobal16:
		return v.getGlobal(m, m.readConstant16())
	case object.OpSetGlobal:
		return v.setGlobal(m, m.readConstant8(), object.OpAdd, false)
	case object.OpSetGlobal16:
		return v.setGlobal(m, m.readConstant16(), object.OpAdd, false)

	case object.OpSetGlobalPlus, object.OpSetGlobalMinus, object.OpSetGlobalStar,
		object.OpSetGlobalSlash, object.OpSetGlobalIntDiv, object.OpSetGlobalMod:
		return v.setGlobal(m, m.readConstant8(), object.ArithOpFor(op), true)

	case object.OpGetLocal:
		slot := int(m.readByte())
		return m.Push(m.Stack[m.frame().SlotsBase+slot])
	case object.OpSetLocal:
		slot := int(m.readByte())
		m.Stack[m.frame().SlotsBase+slot] = m.Peek(0)
		return nil

	case object.OpSetLocalPlus, object.OpSetLocalMinus, object.OpSetLocalStar,
		object.OpSetLocalSlash, object.OpSetLocalIntDiv, object.OpSetLocalMod:
		slot := int(m.readByte())
		idx := m.frame().SlotsBase + slot
		rhs, err := m.Pop()
		if err != nil {
			return err
		}
		r, aerr := v.arithmetic(object.ArithOpFor(op), m.Stack[idx], rhs)
		if aerr != nil {
			return aerr
		}
		m.Stack[idx] = r
		return m.Push(r)

	case object.OpGetUpvalue:
		slot := int(m.readByte())
		return m.Push(m.frame().Closure.Upvalues[slot].Get())
	case object.OpSetUpvalue:
		slot := int(m.readByte())
		m.frame().Closure.Upvalues[slot].Set(m.Peek(0))
		return nil

	case object.OpSetUpvaluePlus, object.OpSetUpvalueMinus, object.OpSetUpvalueStar,
		object.OpSetUpvalueSlash, object.OpSetUpvalueIntDiv, object.OpSetUpvalueMod:
		slot := int(m.readByte())
		uv := m.frame().Closure.Upvalues[slot]
		rhs, err := m.Pop()
		if err != nil {
			return err
		}
		r, aerr := v.arithmetic(object.ArithOpFor(op), uv.Get(), rhs)
		if aerr != nil {
			return aerr
		}
		uv.Set(r)
		return m.Push(r)

	case object.OpCloseUpvalue:
		m.closeUpvalues(len(m.Stack) - 1)
		_, err := m.Pop()
		return err

	case object.OpJump:
		dist := m.readUint16()
		m.frame().IP += int(dist)
		return nil
	case object.OpJumpIfFalse:
		dist := m.readUint16()
		if !object.Truth(m.Peek(0)) {
			m.frame().IP += int(dist)
		}
		return nil
	case object.OpLoop:
		dist := m.readUint16()
		m.frame().IP -= int(dist)
		return nil

	case object.OpCall:
		argCount := int(m.readByte())
		callee := m.Peek(argCount)
		return v.call(m, callee, argCount)

	case object.OpClosure, object.OpAnonFunction:
		return v.opClosure(m)

	case object.OpReturn:
		return v.opReturn(m, false)
	case object.OpNilReturn:
		return v.opReturn(m, true)

	case object.OpArray:
		return v.opArray(m)
	case object.OpTable:
		return v.opTable(m)
	case object.OpStaticArray:
		return v.opStaticArray(m)
	case object.OpStaticTable:
		return v.opStaticTable(m)
	case object.OpGetCollection:
		return v.opGetCollection(m)
	case object.OpSetCollection:
		return v.opSetCollection(m)

	case object.OpStruct:
		return nil // struct type values are emitted as constants; no-op marker
	case object.OpStructInstanceStart:
		return v.opStructInstanceStart(m)
	case object.OpStructNamedField:
		return v.opStructNamedField(m)
	case object.OpStructInstanceEnd:
		return v.opStructInstanceEnd(m)
	case object.OpGetProperty:
		return v.opGetProperty(m, m.readConstant8())
	case object.OpGetProperty16:
		return v.opGetProperty(m, m.readConstant16())
	case object.OpSetProperty:
		return v.opSetProperty(m, m.readConstant8())
	case object.OpSetProperty16:
		return v.opSetProperty(m, m.readConstant16())
	case object.OpInvoke:
		nameIdx := int(m.readByte())
		argCount := int(m.readByte())
		name := m.readConstant(nameIdx).(*object.String)
		return v.opInvoke(m, name, argCount)

	case object.OpMatch:
		return nil // marker; the target is already on the stack
	case object.OpMatchJump:
		return v.opMatchJump(m)
	case object.OpResultMatchOk:
		return v.opResultMatch(m, true)
	case object.OpResultMatchErr:
		return v.opResultMatch(m, false)
	case object.OpResultBind:
		return v.opResultBind(m)
	case object.OpMatchEnd:
		return v.opMatchEnd(m)
	case object.OpGive:
		_, err := m.Pop()
		return err

	case object.OpUseModule:
		return v.opUseModule(m, m.readConstant8())
	case object.OpUseNative:
		return v.opUseNative(m, m.readConstant8())
	case object.OpFinishUse:
		return v.opFinishUse(m)
	case object.OpPub:
		return v.opPub(m)

	case object.OpTypeof:
		a, err := m.Pop()
		if err != nil {
			return err
		}
		return m.Push(v.Heap.Intern(a.Type()))
	case object.OpUnwrap:
		a, err := m.Pop()
		if err != nil {
			return err
		}
		r, ok := a.(*object.Result)
		if !ok {
			return newErr("'?' requires a Result value", object.ErrType)
		}
		return m.Push(r.Unwrap())

	default:
		return newErr("unknown opcode", object.ErrRuntime)
	}
}

func (v *VM) compare(m *ModuleRecord, op object.Op, a, b object.Value) *object.Error {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return newErr("comparison requires numeric operands", object.ErrType)
	}
	var r bool
	if op == object.OpGreater {
		r = af > bf
	} else {
		r = af < bf
	}
	return m.Push(object.Bool(r))
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
