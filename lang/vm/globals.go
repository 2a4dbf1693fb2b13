package vm

import "github.com/crux-lang/crux/lang/object"

// defineGlobal implements OP_DEFINE_GLOBAL(_16): pop the initializer value
// and bind it under name in the current module's globals (spec §4.4, §6).
// A loaded file module rejects redefining an existing global with NAME;
// the REPL sets m.AllowRedefine so each typed-in line can overwrite the
// last.
func (v *VM) defineGlobal(m *ModuleRecord, nameVal object.Value) *object.Error {
	name := nameVal.(*object.String)
	val, err := m.Pop()
	if err != nil {
		return err
	}
	if !m.AllowRedefine && m.userDefined[name] {
		return newErr("'"+name.Chars+"' is already defined", object.ErrName)
	}
	if m.userDefined == nil {
		m.userDefined = make(map[*object.String]bool)
	}
	m.userDefined[name] = true
	m.Globals.Set(name, val)
	m.lastDefinedGlobal = name
	return nil
}

func (v *VM) getGlobal(m *ModuleRecord, nameVal object.Value) *object.Error {
	name := nameVal.(*object.String)
	val, ok := m.Globals.Get(name)
	if !ok {
		return newErr("undefined variable '"+name.Chars+"'", object.ErrName)
	}
	return m.Push(val)
}

// setGlobal implements both plain SET_GLOBAL(_16) (compound == false,
// arithOp ignored) and the SET_GLOBAL_* compound-assignment family (spec
// §4.4): both require the global to already exist, surfacing NAME
// otherwise.
func (v *VM) setGlobal(m *ModuleRecord, nameVal object.Value, arithOp object.Op, compound bool) *object.Error {
	name := nameVal.(*object.String)
	if !compound {
		if _, ok := m.Globals.Get(name); !ok {
			return newErr("undefined variable '"+name.Chars+"'", object.ErrName)
		}
		m.Globals.Set(name, m.Peek(0))
		return nil
	}

	cur, ok := m.Globals.Get(name)
	if !ok {
		return newErr("undefined variable '"+name.Chars+"'", object.ErrName)
	}
	rhs, err := m.Pop()
	if err != nil {
		return err
	}
	r, aerr := v.arithmetic(arithOp, cur, rhs)
	if aerr != nil {
		return aerr
	}
	m.Globals.Set(name, r)
	return m.Push(r)
}

// opPub implements OP_PUB: mirror the global that the immediately
// preceding DEFINE_GLOBAL just bound into the module's Publics table
// (spec §3.3, §4.5).
func (v *VM) opPub(m *ModuleRecord) *object.Error {
	if m.lastDefinedGlobal == nil {
		return nil
	}
	val, ok := m.Globals.Get(m.lastDefinedGlobal)
	if !ok {
		return nil
	}
	m.Publics.Set(m.lastDefinedGlobal, val)
	return nil
}
