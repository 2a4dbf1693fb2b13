package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableSetGet(t *testing.T) {
	tbl := NewTable(4)
	k := NewString("k")
	tbl.Set(k, Int(42))
	v, ok := tbl.Get(k)
	require.True(t, ok)
	require.Equal(t, Int(42), v)
	require.Equal(t, 1, tbl.Len())
}

func TestTableOverwrite(t *testing.T) {
	tbl := NewTable(4)
	tbl.Set(Int(1), Int(10))
	tbl.Set(Int(1), Int(20))
	require.Equal(t, 1, tbl.Len())
	v, _ := tbl.Get(Int(1))
	require.Equal(t, Int(20), v)
}

func TestStaticTableReadOnly(t *testing.T) {
	st := NewStaticTable(map[Value]Value{Int(1): Int(2)})
	v, ok := st.Get(Int(1))
	require.True(t, ok)
	require.Equal(t, Int(2), v)
}

func TestArrayGrowAndIndex(t *testing.T) {
	a := NewArray([]Value{Int(10), Int(20), Int(30)})
	v, ok := a.Get(1)
	require.True(t, ok)
	require.Equal(t, Int(20), v)
	require.True(t, a.Set(1, Int(99)))
	v, _ = a.Get(1)
	require.Equal(t, Int(99), v)
	_, ok = a.Get(5)
	require.False(t, ok)
	a.Push(Int(40))
	require.Equal(t, 4, a.Len())
	v, _ = a.Get(3)
	require.Equal(t, Int(40), v)
}
