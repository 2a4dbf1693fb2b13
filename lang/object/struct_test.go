package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructInstanceFields(t *testing.T) {
	def := NewStruct(NewString("Point"), []string{"x", "y"})
	inst := NewStructInstance(def)
	require.True(t, inst.Set("x", Int(3)))
	require.True(t, inst.Set("y", Int(4)))
	x, ok := inst.Get("x")
	require.True(t, ok)
	require.Equal(t, Int(3), x)
	_, ok = inst.Get("z")
	require.False(t, ok)
	require.Len(t, inst.Fields, len(def.Order))
}

func TestResultUnwrap(t *testing.T) {
	ok := Ok(Int(5))
	require.True(t, ok.IsOk())
	require.Equal(t, Int(5), ok.Unwrap())

	e := NewError(NewString("boom"), ErrValue, false)
	errRes := Err(e)
	require.False(t, errRes.IsOk())
	require.Equal(t, Value(e), errRes.Unwrap())
}
