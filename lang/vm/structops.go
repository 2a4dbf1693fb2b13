package vm

import "github.com/crux-lang/crux/lang/object"

// opStructInstanceStart implements OP_STRUCT_INSTANCE_START: pop the
// struct type value a preceding GET_GLOBAL/GET_LOCAL pushed, and open a new
// instance under construction on the module's StructStack (spec §4.4).
func (v *VM) opStructInstanceStart(m *ModuleRecord) *object.Error {
	val, err := m.Pop()
	if err != nil {
		return err
	}
	def, ok := val.(*object.Struct)
	if !ok {
		return newErr("'{' following a non-struct value", object.ErrType)
	}
	m.StructStack = append(m.StructStack, object.NewStructInstance(def))
	return nil
}

// opStructNamedField implements OP_STRUCT_NAMED_FIELD: pop the field's
// value and write it into the instance under construction.
func (v *VM) opStructNamedField(m *ModuleRecord) *object.Error {
	nameIdx := int(m.readByte())
	name := m.readConstant(nameIdx).(*object.String)
	val, err := m.Pop()
	if err != nil {
		return err
	}
	inst := m.StructStack[len(m.StructStack)-1]
	if !inst.Set(name.Chars, val) {
		return newErr("unknown field '"+name.Chars+"' on struct "+inst.Struct.Name.Chars, object.ErrName)
	}
	return nil
}

// opStructInstanceEnd implements OP_STRUCT_INSTANCE_END: close the
// top-of-StructStack instance and push the finished value.
func (v *VM) opStructInstanceEnd(m *ModuleRecord) *object.Error {
	n := len(m.StructStack) - 1
	inst := m.StructStack[n]
	m.StructStack = m.StructStack[:n]
	return m.Push(v.Track(inst))
}

// opGetProperty implements OP_GET_PROPERTY(_16): `target.name` (spec §4.4).
func (v *VM) opGetProperty(m *ModuleRecord, nameVal object.Value) *object.Error {
	name := nameVal.(*object.String)
	target, err := m.Pop()
	if err != nil {
		return err
	}
	inst, ok := target.(*object.StructInstance)
	if !ok {
		return newErr("only struct instances have properties", object.ErrType)
	}
	val, ok := inst.Get(name.Chars)
	if !ok {
		return newErr("unknown field '"+name.Chars+"'", object.ErrName)
	}
	return m.Push(val)
}

// opSetProperty implements OP_SET_PROPERTY(_16): `target.name = value`.
func (v *VM) opSetProperty(m *ModuleRecord, nameVal object.Value) *object.Error {
	name := nameVal.(*object.String)
	val, err := m.Pop()
	if err != nil {
		return err
	}
	target, err := m.Pop()
	if err != nil {
		return err
	}
	inst, ok := target.(*object.StructInstance)
	if !ok {
		return newErr("only struct instances have properties", object.ErrType)
	}
	if !inst.Set(name.Chars, val) {
		return newErr("unknown field '"+name.Chars+"'", object.ErrName)
	}
	return m.Push(val)
}

// opInvoke implements OP_INVOKE: `target.name(args...)` (spec §4.4). A
// struct instance field holding a callable is invoked directly as a plain
// function (Crux structs are data, not classes -- there is no implicit
// receiver argument for a field-stored closure); every other receiver
// kind dispatches through the VM's built-in method tables, where the
// receiver itself becomes args[0] per NativeMethod convention.
func (v *VM) opInvoke(m *ModuleRecord, name *object.String, argCount int) *object.Error {
	receiver := m.Peek(argCount)

	if inst, ok := receiver.(*object.StructInstance); ok {
		if val, ok := inst.Get(name.Chars); ok {
			m.Stack[len(m.Stack)-argCount-1] = val
			return v.call(m, val, argCount)
		}
		return newErr("unknown method '"+name.Chars+"' on struct "+inst.Struct.Name.Chars, object.ErrName)
	}

	tbl, ok := v.Methods[receiver.Type()]
	if !ok {
		return newErr("type '"+receiver.Type()+"' has no methods", object.ErrType)
	}
	methodVal, ok := tbl.Get(name)
	if !ok {
		return newErr("unknown method '"+name.Chars+"' on "+receiver.Type(), object.ErrName)
	}
	return v.call(m, methodVal, argCount)
}
