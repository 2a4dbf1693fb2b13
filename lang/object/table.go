package object

import "github.com/dolthub/swiss"

// Table is Crux's hash map: an open-addressed map keyed by any hashable
// Value (Nil, Bool, Int, Float, *String; spec §3.2). Every hashable kind
// here is a Go-comparable type, so the Value interface itself can serve
// directly as the swiss.Map key -- the same open-addressing map the
// teacher's lang/machine/map.go wires in for its dict type, generalized
// from string-only keys to any hashable Value.
type Table struct {
	Header
	m *swiss.Map[Value, Value]
}

// NewTable builds an empty Table sized for roughly n entries.
func NewTable(n int) *Table {
	if n < 4 {
		n = 4
	}
	return &Table{m: swiss.NewMap[Value, Value](uint32(n))}
}

func (t *Table) Type() string   { return "table" }
func (t *Table) String() string { return tableString(t.m) }
func (t *Table) Size() uintptr  { return uintptr(t.m.Count())*32 + 24 }
func (t *Table) Trace(mark func(Value)) {
	t.m.Iter(func(k, v Value) (stop bool) {
		mark(k)
		mark(v)
		return false
	})
}

func (t *Table) Len() int { return t.m.Count() }

func (t *Table) Get(k Value) (Value, bool) {
	return t.m.Get(k)
}

func (t *Table) Set(k, v Value) {
	t.m.Put(k, v)
}

func (t *Table) Delete(k Value) bool {
	return t.m.Delete(k)
}

func (t *Table) Iter(f func(k, v Value) bool) {
	t.m.Iter(func(k, v Value) (stop bool) {
		return f(k, v)
	})
}

// StaticTable is a Table that rejects writes after construction (spec
// §3.2, §4.4: SET_COLLECTION on it fails with COLLECTION_SET).
type StaticTable struct {
	Header
	m *swiss.Map[Value, Value]
}

func NewStaticTable(entries map[Value]Value) *StaticTable {
	m := swiss.NewMap[Value, Value](uint32(len(entries)))
	for k, v := range entries {
		m.Put(k, v)
	}
	return &StaticTable{m: m}
}

func (t *StaticTable) Type() string   { return "static_table" }
func (t *StaticTable) String() string { return tableString(t.m) }
func (t *StaticTable) Size() uintptr  { return uintptr(t.m.Count())*32 + 24 }
func (t *StaticTable) Trace(mark func(Value)) {
	t.m.Iter(func(k, v Value) (stop bool) {
		mark(k)
		mark(v)
		return false
	})
}

func (t *StaticTable) Len() int { return t.m.Count() }

func (t *StaticTable) Get(k Value) (Value, bool) {
	return t.m.Get(k)
}

func tableString(m *swiss.Map[Value, Value]) string {
	s := "{"
	first := true
	m.Iter(func(k, v Value) (stop bool) {
		if !first {
			s += ", "
		}
		first = false
		s += k.String() + ": " + v.String()
		return false
	})
	return s + "}"
}
