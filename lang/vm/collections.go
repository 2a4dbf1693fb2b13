package vm

import "github.com/crux-lang/crux/lang/object"

// opArray implements OP_ARRAY: build a dynamic Array from the n elements
// on top of the stack (spec §4.4), n read as a 16-bit inline operand.
func (v *VM) opArray(m *ModuleRecord) *object.Error {
	n := int(m.readUint16())
	elems := make([]object.Value, n)
	for i := n - 1; i >= 0; i-- {
		val, err := m.Pop()
		if err != nil {
			return err
		}
		elems[i] = val
	}
	return m.Push(v.Track(object.NewArray(elems)))
}

// opStaticArray implements OP_STATIC_ARRAY: same as OP_ARRAY but the
// result rejects further writes (spec §3.2, §4.4).
func (v *VM) opStaticArray(m *ModuleRecord) *object.Error {
	n := int(m.readUint16())
	elems := make([]object.Value, n)
	for i := n - 1; i >= 0; i-- {
		val, err := m.Pop()
		if err != nil {
			return err
		}
		elems[i] = val
	}
	return m.Push(v.Track(object.NewStaticArray(elems)))
}

// opTable implements OP_TABLE: the n key/value pairs are on the stack as
// key,value,key,value,... bottom to top.
func (v *VM) opTable(m *ModuleRecord) *object.Error {
	n := int(m.readUint16())
	t := object.NewTable(n)
	for i := 0; i < n; i++ {
		val, err := m.Pop()
		if err != nil {
			return err
		}
		key, err := m.Pop()
		if err != nil {
			return err
		}
		if !object.Hashable(key) {
			return newErr("table keys must be hashable", object.ErrType)
		}
		t.Set(key, val)
	}
	return m.Push(v.Track(t))
}

func (v *VM) opStaticTable(m *ModuleRecord) *object.Error {
	n := int(m.readUint16())
	entries := make(map[object.Value]object.Value, n)
	for i := 0; i < n; i++ {
		val, err := m.Pop()
		if err != nil {
			return err
		}
		key, err := m.Pop()
		if err != nil {
			return err
		}
		if !object.Hashable(key) {
			return newErr("table keys must be hashable", object.ErrType)
		}
		entries[key] = val
	}
	return m.Push(v.Track(object.NewStaticTable(entries)))
}

// opGetCollection implements OP_GET_COLLECTION: `container[index]` (spec
// §4.4), dispatching on the container's dynamic type.
func (v *VM) opGetCollection(m *ModuleRecord) *object.Error {
	idx, err := m.Pop()
	if err != nil {
		return err
	}
	container, err := m.Pop()
	if err != nil {
		return err
	}

	switch c := container.(type) {
	case *object.Array:
		i, ok := indexOf(idx, c.Len())
		if !ok {
			return newErr("array index out of bounds", object.ErrBounds)
		}
		val, _ := c.Get(i)
		return m.Push(val)
	case *object.StaticArray:
		i, ok := indexOf(idx, c.Len())
		if !ok {
			return newErr("array index out of bounds", object.ErrBounds)
		}
		val, _ := c.Get(i)
		return m.Push(val)
	case *object.Table:
		if !object.Hashable(idx) {
			return newErr("table keys must be hashable", object.ErrType)
		}
		val, ok := c.Get(idx)
		if !ok {
			return newErr("key not found in table", object.ErrCollectionGet)
		}
		return m.Push(val)
	case *object.StaticTable:
		if !object.Hashable(idx) {
			return newErr("table keys must be hashable", object.ErrType)
		}
		val, ok := c.Get(idx)
		if !ok {
			return newErr("key not found in table", object.ErrCollectionGet)
		}
		return m.Push(val)
	case *object.String:
		i, ok := indexOf(idx, len(c.Chars))
		if !ok {
			return newErr("string index out of bounds", object.ErrBounds)
		}
		return m.Push(v.Heap.Intern(string(c.Chars[i])))
	default:
		return newErr("value is not indexable", object.ErrCollectionGet)
	}
}

// opSetCollection implements OP_SET_COLLECTION: `container[index] = value`
// (spec §4.4). Static collections reject the write with COLLECTION_SET.
func (v *VM) opSetCollection(m *ModuleRecord) *object.Error {
	val, err := m.Pop()
	if err != nil {
		return err
	}
	idx, err := m.Pop()
	if err != nil {
		return err
	}
	container, err := m.Pop()
	if err != nil {
		return err
	}

	switch c := container.(type) {
	case *object.Array:
		i, ok := indexOf(idx, c.Len())
		if !ok {
			return newErr("array index out of bounds", object.ErrBounds)
		}
		c.Set(i, val)
		return m.Push(val)
	case *object.Table:
		if !object.Hashable(idx) {
			return newErr("table keys must be hashable", object.ErrType)
		}
		c.Set(idx, val)
		return m.Push(val)
	case *object.StaticArray, *object.StaticTable:
		return newErr("cannot assign into a static collection", object.ErrCollectionSet)
	default:
		return newErr("value does not support index assignment", object.ErrCollectionSet)
	}
}

func indexOf(idx object.Value, length int) (int, bool) {
	i, ok := idx.(object.Int)
	if !ok {
		return 0, false
	}
	n := int(i)
	if n < 0 || n >= length {
		return 0, false
	}
	return n, true
}
