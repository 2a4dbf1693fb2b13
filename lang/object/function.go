package object

// Function is a compiled, callable unit: an arity, an upvalue count, its
// bytecode chunk, an optional name (anonymous functions have none) and the
// module it was compiled in. Module is typed as Obj rather than a concrete
// module-record type so this package does not need to know about the VM's
// per-module execution state; it is only ever traced, never dereferenced,
// from here.
type Function struct {
	Header
	Name         *String // nil for anonymous functions
	Arity        int
	UpvalueCount int
	Chunk        Chunk
	Module       Obj
}

func NewFunction(name *String, arity int) *Function {
	return &Function{Name: name, Arity: arity}
}

func (f *Function) Type() string { return "function" }
func (f *Function) String() string {
	if f.Name == nil {
		return "<fn anonymous>"
	}
	return "<fn " + f.Name.Chars + ">"
}
func (f *Function) Size() uintptr { return f.Chunk.Size() + 48 }
func (f *Function) Trace(mark func(Value)) {
	if f.Name != nil {
		mark(f.Name)
	}
	if f.Module != nil {
		mark(f.Module)
	}
	f.Chunk.Trace(mark)
}

// Upvalue is either open, pointing at a live stack slot via Slot, or
// closed, owning its Value in Closed after the slot left scope (spec
// §3.2, §3.3, §4.4).
type Upvalue struct {
	Header
	Slot  *Value // non-nil while open
	Index int    // stack slot index Slot points at, while open
	Closed Value
	// Next links open upvalues belonging to one module in descending
	// stack-address order (spec §3.2 invariant).
	Next *Upvalue
}

// NewUpvalue creates an open upvalue pointing at slot, which is stack
// index idx in whatever module owns that stack. Index is tracked
// separately from the pointer so callers can order/dedup open upvalues
// without resorting to unsafe pointer arithmetic.
func NewUpvalue(slot *Value, idx int) *Upvalue {
	return &Upvalue{Slot: slot, Index: idx}
}

func (u *Upvalue) Type() string   { return "upvalue" }
func (u *Upvalue) String() string { return "<upvalue>" }
func (u *Upvalue) Size() uintptr  { return 32 }
func (u *Upvalue) Trace(mark func(Value)) {
	if u.Slot != nil {
		mark(*u.Slot)
	} else if u.Closed != nil {
		mark(u.Closed)
	}
}

// IsOpen reports whether the upvalue still points into a live stack slot.
func (u *Upvalue) IsOpen() bool { return u.Slot != nil }

// Get returns the upvalue's current value, open or closed.
func (u *Upvalue) Get() Value {
	if u.Slot != nil {
		return *u.Slot
	}
	return u.Closed
}

// Set writes through to the stack slot if open, or to the closed storage.
func (u *Upvalue) Set(v Value) {
	if u.Slot != nil {
		*u.Slot = v
		return
	}
	u.Closed = v
}

// Close copies the current slot value into Closed and severs the link to
// the stack (OP_CLOSE_UPVALUE / frame return, spec §4.4).
func (u *Upvalue) Close() {
	if u.Slot == nil {
		return
	}
	u.Closed = *u.Slot
	u.Slot = nil
}

// Closure pairs a Function with the upvalues it captured at creation
// (spec §3.2, §3.3, §4.4 OP_CLOSURE).
type Closure struct {
	Header
	Function *Function
	Upvalues []*Upvalue
}

func NewClosure(fn *Function) *Closure {
	return &Closure{Function: fn, Upvalues: make([]*Upvalue, fn.UpvalueCount)}
}

func (c *Closure) Type() string   { return "closure" }
func (c *Closure) String() string { return c.Function.String() }
func (c *Closure) Size() uintptr  { return uintptr(len(c.Upvalues))*8 + 32 }
func (c *Closure) Trace(mark func(Value)) {
	mark(c.Function)
	for _, uv := range c.Upvalues {
		if uv != nil {
			mark(uv)
		}
	}
}

// NativeContext is the minimal capability set native functions need from
// the host VM/heap: interning strings and registering freshly allocated
// objects with the collector. Declared here (instead of importing the gc
// or vm packages, which would cycle back to object) so lang/natives only
// needs to satisfy this interface.
type NativeContext interface {
	Intern(s string) *String
	Track(o Obj) Obj
	// Call invokes a Crux callable (Closure or native) with args and
	// returns its result, for natives that accept user callbacks.
	Call(callee Value, args []Value) (Value, *Error)
	// Print writes s to the host's configured output stream, for print/
	// println.
	Print(s string)
}

// NativeFn is a fallible native: it returns Ok/Err as a *Result.
type NativeFn func(ctx NativeContext, args []Value) *Result

// NativeInfallibleFn is an infallible native: it returns a Value directly.
type NativeInfallibleFn func(ctx NativeContext, args []Value) Value

// NativeFunction is a host-provided callable registered under a name with
// a fixed arity (spec §3.2). Exactly one of Fallible/Infallible is set,
// selected by the Fallible flag.
type NativeFunction struct {
	Header
	Name       *String
	Arity      int
	Fallible   bool
	Fn         NativeFn
	InfallFn   NativeInfallibleFn
}

func NewNativeFunction(name *String, arity int, fn NativeFn) *NativeFunction {
	return &NativeFunction{Name: name, Arity: arity, Fallible: true, Fn: fn}
}

func NewNativeInfallibleFunction(name *String, arity int, fn NativeInfallibleFn) *NativeFunction {
	return &NativeFunction{Name: name, Arity: arity, Fallible: false, InfallFn: fn}
}

func (n *NativeFunction) Type() string   { return "native_function" }
func (n *NativeFunction) String() string { return "<native fn " + n.Name.Chars + ">" }
func (n *NativeFunction) Size() uintptr  { return 48 }
func (n *NativeFunction) Trace(mark func(Value)) {
	mark(n.Name)
}

// NativeMethod is a host-provided callable dispatched via OP_INVOKE on a
// receiver's object kind (spec §4.4): the receiver is passed as args[0].
type NativeMethod struct {
	Header
	Name     *String
	Arity    int
	Fallible bool
	Fn       NativeFn
	InfallFn NativeInfallibleFn
}

func NewNativeMethod(name *String, arity int, fn NativeFn) *NativeMethod {
	return &NativeMethod{Name: name, Arity: arity, Fallible: true, Fn: fn}
}

func NewNativeInfallibleMethod(name *String, arity int, fn NativeInfallibleFn) *NativeMethod {
	return &NativeMethod{Name: name, Arity: arity, Fallible: false, InfallFn: fn}
}

func (n *NativeMethod) Type() string   { return "native_method" }
func (n *NativeMethod) String() string { return "<native method " + n.Name.Chars + ">" }
func (n *NativeMethod) Size() uintptr  { return 48 }
func (n *NativeMethod) Trace(mark func(Value)) {
	mark(n.Name)
}
