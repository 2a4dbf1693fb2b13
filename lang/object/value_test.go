package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruth(t *testing.T) {
	require.False(t, Truth(NilValue))
	require.False(t, Truth(Bool(false)))
	require.True(t, Truth(Bool(true)))
	require.True(t, Truth(Int(0)))
	require.True(t, Truth(NewString("")))
}

func TestEqualPromotesIntFloat(t *testing.T) {
	require.True(t, Equal(Int(2), Float(2.0)))
	require.True(t, Equal(Float(2.0), Int(2)))
	require.False(t, Equal(Int(2), Int(3)))
}

func TestEqualIdentityForObjects(t *testing.T) {
	a := NewArray(nil)
	b := NewArray(nil)
	require.True(t, Equal(a, a))
	require.False(t, Equal(a, b))
}

func TestHashable(t *testing.T) {
	require.True(t, Hashable(NilValue))
	require.True(t, Hashable(Int(1)))
	require.True(t, Hashable(NewString("x")))
	require.False(t, Hashable(NewArray(nil)))
}
