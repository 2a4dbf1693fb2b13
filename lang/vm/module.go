// Package vm implements Crux's stack-based interpreter: call frames, the
// per-module execution state, the dispatch loop, arithmetic promotion
// rules, closures/upvalues, match-expression opcodes, and collection and
// struct operations (spec §4.4). Grounded on the driving-loop shape of the
// teacher's lang/machine/machine.go (a switch-dispatched interpreter over
// an explicit value stack with call frames) generalized from Starlark's
// value model to Crux's Int/Float/Object tagged values.
package vm

import "github.com/crux-lang/crux/lang/object"

// ModuleState is a ModuleRecord's lifecycle stage (spec §3.3, §4.5).
type ModuleState int

const (
	StateLoading ModuleState = iota
	StateLoaded
	StateError
)

// Call limits (spec §4.4, §4.5).
const (
	FramesMax      = 128
	StackMax       = FramesMax * 256
	MaxImportDepth = FramesMax / 2
)

// Frame is one activation record on a module's call stack (spec §4.4).
type Frame struct {
	Closure   *object.Closure
	IP        int
	SlotsBase int
}

// ModuleRecord is the runtime representation of one source file: its own
// value stack, frame stack, open-upvalue list, globals/publics tables,
// and lifecycle state (spec §3.2, §3.3). It is itself a heap object so the
// collector can trace it like any other root.
type ModuleRecord struct {
	object.Header

	Path      string
	Globals   *object.Table
	Publics   *object.Table
	Closure   *object.Closure
	Enclosing *ModuleRecord
	State     ModuleState

	// AllowRedefine permits OP_DEFINE_GLOBAL to silently overwrite an
	// existing global instead of raising NAME (spec §6: the REPL allows
	// redefinition, a loaded file module does not). Set by NewREPLModule;
	// false for every other module.
	AllowRedefine bool

	// userDefined tracks which globals were bound by this module's own
	// `let`/`fn`/`struct` declarations, as opposed to universe builtins
	// pre-seeded into Globals before the module ran: only the former
	// collide with NAME on redefinition. A fresh `let len = ...` shadowing
	// the builtin `len` is just an ordinary first definition.
	userDefined map[*object.String]bool

	Stack  []object.Value
	Frames []Frame

	OpenUpvalues *object.Upvalue // list head, descending stack-address order

	// StructStack holds struct instances under construction, kept off
	// the value stack to avoid confusing the tracer mid-construction
	// (spec §4.4 OP_STRUCT_INSTANCE_START/END).
	StructStack []*object.StructInstance

	// lastDefinedGlobal names the most recent DEFINE_GLOBAL target, so the
	// OP_PUB that immediately follows a `pub let`/`pub fn`/`pub struct`
	// knows which global to mirror into Publics without its own operand.
	lastDefinedGlobal *object.String
}

// NewModuleRecord allocates a module record for path, not yet attached to
// any compiled closure.
func NewModuleRecord(path string, enclosing *ModuleRecord) *ModuleRecord {
	return &ModuleRecord{
		Path:      path,
		Globals:   object.NewTable(16),
		Publics:   object.NewTable(8),
		Enclosing: enclosing,
		State:     StateLoading,
		// Preallocated at the fixed StackMax capacity so append never
		// reallocates the backing array: open upvalues hold raw
		// pointers into this slice (SlotPtr) that must stay valid.
		Stack: make([]object.Value, 0, StackMax),
	}
}

func (m *ModuleRecord) Type() string   { return "module" }
func (m *ModuleRecord) String() string { return "<module " + m.Path + ">" }
func (m *ModuleRecord) Size() uintptr {
	return uintptr(cap(m.Stack))*16 + uintptr(len(m.Frames))*32 + 64
}

// Trace marks everything spec §4.6's root list attaches to a module
// record: globals, publics, module closure, enclosing module (recursively,
// via Mark's own reachability), the value stack, frame closures, and the
// open-upvalue chain.
func (m *ModuleRecord) Trace(mark func(object.Value)) {
	mark(m.Globals)
	mark(m.Publics)
	if m.lastDefinedGlobal != nil {
		mark(m.lastDefinedGlobal)
	}
	if m.Closure != nil {
		mark(m.Closure)
	}
	if m.Enclosing != nil {
		mark(m.Enclosing)
	}
	for _, v := range m.Stack {
		if v != nil {
			mark(v)
		}
	}
	for _, f := range m.Frames {
		if f.Closure != nil {
			mark(f.Closure)
		}
	}
	for uv := m.OpenUpvalues; uv != nil; uv = uv.Next {
		mark(uv)
	}
	for _, si := range m.StructStack {
		mark(si)
	}
}

// Push appends v to the module's value stack, failing with STACK_OVERFLOW
// if StackMax is exceeded (spec §5).
func (m *ModuleRecord) Push(v object.Value) *object.Error {
	if len(m.Stack) >= StackMax {
		return object.NewError(object.NewString("stack overflow"), object.ErrStackOverflow, true)
	}
	m.Stack = append(m.Stack, v)
	return nil
}

// Pop removes and returns the top value, failing with RUNTIME if the
// stack is already empty (spec §5).
func (m *ModuleRecord) Pop() (object.Value, *object.Error) {
	if len(m.Stack) == 0 {
		return nil, object.NewError(object.NewString("stack underflow"), object.ErrRuntime, true)
	}
	n := len(m.Stack) - 1
	v := m.Stack[n]
	m.Stack = m.Stack[:n]
	return v, nil
}

// Peek returns the value `distance` slots below the top (0 is the top).
func (m *ModuleRecord) Peek(distance int) object.Value {
	return m.Stack[len(m.Stack)-1-distance]
}

func (m *ModuleRecord) SlotPtr(i int) *object.Value {
	return &m.Stack[i]
}

func (m *ModuleRecord) frame() *Frame {
	return &m.Frames[len(m.Frames)-1]
}
