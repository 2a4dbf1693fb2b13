package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/crux-lang/crux/lang/gc"
	"github.com/crux-lang/crux/lang/natives"
	"github.com/crux-lang/crux/lang/object"
)

// VM is the single root of Crux's runtime state (spec §9): one heap, one
// module cache, one native-module registry, and the chain of module
// records reachable from Current via Enclosing. Re-implementations should
// thread it explicitly rather than lean on package-level state, which is
// exactly what this type is for.
type VM struct {
	Heap *gc.Heap

	ModuleCache map[string]*ModuleRecord
	ImportStack []string
	NativeModules map[string]*object.Table

	// Methods maps a built-in value's Type() name (e.g. "string", "array")
	// to its method table, consulted by OP_INVOKE for every receiver that
	// is not a struct instance (spec §4.4). Populated by lang/natives.
	Methods map[string]*object.Table

	// Universe holds the builtins installed into every module's globals
	// before its top-level code runs (print, typeof, len, ...; spec §3.2).
	// Built once, here, rather than per module: every module shares the
	// same *NativeFunction instances.
	Universe map[string]*object.NativeFunction

	Current *ModuleRecord

	Stdout io.Writer
	Stderr io.Writer
}

var _ object.NativeContext = (*VM)(nil)

// New creates a VM backed by heap, wiring the collector's root marker to
// this VM's live state (spec §4.6 Roots), and installs the natives
// package's universe/module/method surface (spec §3.2, §4.4, §4.5).
func New(heap *gc.Heap) *VM {
	v := &VM{
		Heap:        heap,
		ModuleCache: make(map[string]*ModuleRecord),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
	heap.SetRootMarker(v.markRoots)
	v.Universe, v.NativeModules, v.Methods = natives.Install(v)
	return v
}

// markRoots implements the collector's root-marking protocol (spec §4.6):
// the module cache, every native-module table, the import-stack paths
// (strings, marked via the cache/current chain already owning them), and
// every module record reachable from Current via Enclosing.
func (v *VM) markRoots(mark func(object.Value)) {
	for _, m := range v.ModuleCache {
		mark(m)
	}
	for _, t := range v.NativeModules {
		mark(t)
	}
	for _, t := range v.Methods {
		mark(t)
	}
	for _, fn := range v.Universe {
		mark(fn)
	}
	for m := v.Current; m != nil; m = m.Enclosing {
		mark(m)
	}
}

// Intern implements object.NativeContext.
func (v *VM) Intern(s string) *object.String { return v.Heap.Intern(s) }

// Track implements object.NativeContext.
func (v *VM) Track(o object.Obj) object.Obj { return v.Heap.Track(o) }

// Print implements object.NativeContext: write s to the VM's configured
// stdout, for the print/println universe builtins.
func (v *VM) Print(s string) { fmt.Fprint(v.Stdout, s) }

// Call implements object.NativeContext: invoke a Crux callable (closure or
// native) with args, from within native code (e.g. an array `sort`
// callback).
func (v *VM) Call(callee object.Value, args []object.Value) (object.Value, *object.Error) {
	m := v.Current
	for _, a := range args {
		if err := m.Push(a); err != nil {
			return nil, err
		}
	}
	if err := m.Push(callee); err != nil {
		return nil, err
	}
	// rotate callee below its arguments, matching OP_CALL's stack shape
	n := len(args)
	top := m.Stack[len(m.Stack)-n-1:]
	copy(top, append([]object.Value{callee}, args...))

	framesBefore := len(m.Frames)
	if err := v.call(m, callee, n); err != nil {
		return nil, err
	}
	if len(m.Frames) > framesBefore {
		if err := v.runFrames(m, framesBefore); err != nil {
			return nil, err
		}
	}
	result, err := m.Pop()
	return result, err
}

// installUniverse pre-populates m's globals with every universe builtin,
// the way spec §3.2 says they're available without a `use` in every
// module. Done per module (rather than once, shared) so a module that
// shadows `len` with its own `let len = ...` only affects its own scope.
func (v *VM) installUniverse(m *ModuleRecord) {
	for _, fn := range v.Universe {
		m.Globals.Set(fn.Name, fn)
	}
}

// runTopLevel wraps fn in a fresh Closure and runs it as a top-level chunk
// against m: a new call frame rooted at however much of m's stack is
// already in use, run to completion, its result value captured and the
// stack restored to exactly where it started. Shared by Interpret (a
// one-shot module), loadModule (a `use`-triggered module, §4.5), and the
// REPL (many chunks run back-to-back against one persistent module, each
// one's locals and transient stack use cleaned up before the next).
func (v *VM) runTopLevel(m *ModuleRecord, fn *object.Function) (object.Value, *object.Error) {
	base := len(m.Stack)
	closure := object.NewClosure(fn)
	fn.Module = m
	m.Closure = closure

	prev := v.Current
	v.Current = m
	defer func() { v.Current = prev }()

	frameBase := len(m.Frames)
	m.Frames = append(m.Frames, Frame{Closure: closure, IP: 0, SlotsBase: base})
	if err := m.Push(closure); err != nil {
		return nil, err
	}

	if err := v.runFrames(m, frameBase); err != nil {
		m.Stack = m.Stack[:base]
		return nil, err
	}
	result := object.Value(object.NilValue)
	if len(m.Stack) > base {
		result = m.Stack[len(m.Stack)-1]
	}
	m.Stack = m.Stack[:base]
	return result, nil
}

// InterpretInModule runs fn as another top-level chunk against an existing
// module record m, instead of allocating a fresh one: the REPL's way of
// running one line at a time while sharing m's globals across lines (spec
// §6 "the REPL allows overwrite"). Callers should set m.AllowRedefine.
func (v *VM) InterpretInModule(fn *object.Function, m *ModuleRecord) (object.Value, *object.Error) {
	return v.runTopLevel(m, fn)
}

// NewREPLModule creates a module record suitable for InterpretInModule,
// pre-seeded with the universe and marked to permit global redefinition.
func (v *VM) NewREPLModule(path string) *ModuleRecord {
	m := NewModuleRecord(path, nil)
	m.AllowRedefine = true
	v.installUniverse(m)
	return m
}

// Interpret compiles-result entry point: runs fn as path's top-level code
// in a fresh ModuleRecord and returns its result value (normally nil for
// a file module's top level) and the module itself, so a caller can build
// a stack trace from m.Frames on error (runTopLevel leaves them
// unpopped on the failing path for exactly this purpose).
func (v *VM) Interpret(fn *object.Function, path string) (object.Value, *ModuleRecord, *object.Error) {
	m := NewModuleRecord(path, v.Current)
	v.installUniverse(m)
	result, err := v.runTopLevel(m, fn)
	if err != nil {
		m.State = StateError
		return nil, m, err
	}
	m.State = StateLoaded
	return result, m, nil
}

// RuntimeError formats a stack trace the way spec §7 describes: one line
// per live frame, newest first, with the source line derived from the
// frame's IP via the chunk's line table.
func (v *VM) RuntimeError(m *ModuleRecord, err *object.Error) string {
	s := err.String() + "\n"
	for i := len(m.Frames) - 1; i >= 0; i-- {
		f := m.Frames[i]
		line := f.Closure.Function.Chunk.LineAt(f.IP - 1)
		name := "script"
		if f.Closure.Function.Name != nil {
			name = f.Closure.Function.Name.Chars
		}
		s += fmt.Sprintf("  at %s (line %d)\n", name, line)
	}
	return s
}
