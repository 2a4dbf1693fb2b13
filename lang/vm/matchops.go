package vm

import "github.com/crux-lang/crux/lang/object"

// Stack shape invariant while a match arm's pattern is being checked:
// [..., target, result], target at Peek(1), result (the shared slot's
// live stack cell) at Peek(0) (spec §4.4, and lang/compiler/match.go's
// doc comment for the compile-time half of this design).

// opMatchJump implements OP_MATCH_JUMP: a plain-value arm pattern. The
// pattern value is on top; pop it, compare against the target by
// structural equality, and jump past the arm on a mismatch.
func (v *VM) opMatchJump(m *ModuleRecord) *object.Error {
	dist := m.readUint16()
	patternVal, err := m.Pop()
	if err != nil {
		return err
	}
	target := m.Peek(1)
	if !object.Equal(target, patternVal) {
		m.frame().IP += int(dist)
	}
	return nil
}

// opResultMatch implements OP_RESULT_MATCH_OK/OP_RESULT_MATCH_ERR: jump
// past the arm unless the target is a Result in the wanted state.
func (v *VM) opResultMatch(m *ModuleRecord, wantOk bool) *object.Error {
	dist := m.readUint16()
	target := m.Peek(1)
	r, ok := target.(*object.Result)
	if !ok || r.IsOk() != wantOk {
		m.frame().IP += int(dist)
	}
	return nil
}

// opResultBind implements OP_RESULT_BIND: having just pushed a nil
// placeholder local for the arm's bind name, overwrite it with the
// target Result's payload (Ok value or Err object).
func (v *VM) opResultBind(m *ModuleRecord) *object.Error {
	slot := int(m.readByte())
	target := m.Peek(2)
	r := target.(*object.Result)
	m.Stack[m.frame().SlotsBase+slot] = r.Unwrap()
	return nil
}

// opMatchEnd implements OP_MATCH_END: collapse [..., target, result] to
// just [..., result] (spec §4.4).
func (v *VM) opMatchEnd(m *ModuleRecord) *object.Error {
	result, err := m.Pop()
	if err != nil {
		return err
	}
	if _, err := m.Pop(); err != nil {
		return err
	}
	return m.Push(result)
}
