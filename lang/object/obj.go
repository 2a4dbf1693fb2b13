package object

// Header is embedded by value in every heap object. It carries the
// intrusive linked-list pointer and mark bit the collector needs, the way
// the original implementation's Obj base struct does, translated from an
// intrusive C struct into Go's embedding.
type Header struct {
	gcNext   Obj
	gcMarked bool
}

// Marked reports whether the collector has already visited this object
// during the current cycle.
func (h *Header) Marked() bool { return h.gcMarked }

// SetMarked sets or clears the object's mark bit.
func (h *Header) SetMarked(m bool) { h.gcMarked = m }

// Next returns the next object in the heap's allocation list.
func (h *Header) Next() Obj { return h.gcNext }

// SetNext links the object into the heap's allocation list.
func (h *Header) SetNext(o Obj) { h.gcNext = o }

// Obj is implemented by every heap-allocated Value: everything that
// participates in the collector's mark-sweep cycle. Primitives (Nil, Bool,
// Int, Float) are not Objs: they are never heap-allocated.
type Obj interface {
	Value

	Marked() bool
	SetMarked(bool)
	Next() Obj
	SetNext(Obj)

	// Trace calls mark on every Value this object directly references, so
	// the collector can blacken it and continue the gray worklist.
	Trace(mark func(Value))

	// Size approximates the object's heap footprint in bytes, for the
	// collector's allocation-triggered growth heuristic.
	Size() uintptr
}
