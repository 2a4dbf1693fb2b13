package gc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crux-lang/crux/lang/object"
)

func TestInternDeduplicates(t *testing.T) {
	h := NewHeap()
	a := h.Intern("hello")
	b := h.Intern("hello")
	require.Same(t, a, b)
	c := h.Intern("world")
	require.NotSame(t, a, c)
}

func TestCollectSweepsUnreachable(t *testing.T) {
	h := NewHeap()
	var kept *object.Array
	h.SetRootMarker(func(mark func(object.Value)) {
		if kept != nil {
			mark(kept)
		}
	})

	kept = object.NewArray(nil)
	h.Track(kept)
	discarded := object.NewArray(nil)
	h.Track(discarded)

	before := h.bytesAllocated
	require.Greater(t, before, uintptr(0))

	h.Collect()

	require.True(t, kept.Marked() == false) // cleared for next cycle
	require.Equal(t, kept.Size(), h.bytesAllocated)
}

func TestCollectSweepsUnmarkedInternedStrings(t *testing.T) {
	h := NewHeap()
	h.SetRootMarker(func(func(object.Value)) {})
	h.Intern("transient")
	require.Contains(t, h.strings, "transient")
	h.Collect()
	require.NotContains(t, h.strings, "transient")
}

func TestStressModeCollectsEveryAllocation(t *testing.T) {
	h := NewHeap()
	h.SetStress(true)
	collections := 0
	h.SetRootMarker(func(func(object.Value)) { collections++ })
	h.Track(object.NewArray(nil))
	h.Track(object.NewArray(nil))
	require.Equal(t, 2, collections)
}

func TestPushPopRootKeepsValueAlive(t *testing.T) {
	h := NewHeap()
	h.SetRootMarker(func(func(object.Value)) {})
	h.SetStress(true)

	a := object.NewArray(nil)
	h.PushRoot(a)
	h.Track(a)
	h.Track(object.NewArray(nil)) // triggers a collection while a is rooted
	require.False(t, a.Marked())
	require.Greater(t, h.bytesAllocated, uintptr(0))
	h.PopRoot()
}
