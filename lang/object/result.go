package object

// ErrorKind is the exhaustive tag set from spec §7.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrMath
	ErrBounds
	ErrRuntime
	ErrType
	ErrLoopExtent
	ErrLimit
	ErrBranchExtent
	ErrClosureExtent
	ErrLocalExtent
	ErrArgumentExtent
	ErrName
	ErrCollectionExtent
	ErrVariableExtent
	ErrReturnExtent
	ErrArgumentMismatch
	ErrStackOverflow
	ErrCollectionGet
	ErrCollectionSet
	ErrUnpackMismatch
	ErrMemory
	ErrValue
	ErrAssert
	ErrImportExtent
	ErrIO
	ErrImport
)

var errorKindNames = [...]string{
	ErrSyntax:           "SYNTAX",
	ErrMath:             "MATH",
	ErrBounds:           "BOUNDS",
	ErrRuntime:          "RUNTIME",
	ErrType:             "TYPE",
	ErrLoopExtent:       "LOOP_EXTENT",
	ErrLimit:            "LIMIT",
	ErrBranchExtent:     "BRANCH_EXTENT",
	ErrClosureExtent:    "CLOSURE_EXTENT",
	ErrLocalExtent:      "LOCAL_EXTENT",
	ErrArgumentExtent:   "ARGUMENT_EXTENT",
	ErrName:             "NAME",
	ErrCollectionExtent: "COLLECTION_EXTENT",
	ErrVariableExtent:   "VARIABLE_EXTENT",
	ErrReturnExtent:     "RETURN_EXTENT",
	ErrArgumentMismatch: "ARGUMENT_MISMATCH",
	ErrStackOverflow:    "STACK_OVERFLOW",
	ErrCollectionGet:    "COLLECTION_GET",
	ErrCollectionSet:    "COLLECTION_SET",
	ErrUnpackMismatch:   "UNPACK_MISMATCH",
	ErrMemory:           "MEMORY",
	ErrValue:            "VALUE",
	ErrAssert:           "ASSERT",
	ErrImportExtent:     "IMPORT_EXTENT",
	ErrIO:               "IO",
	ErrImport:           "IMPORT",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "UNKNOWN"
}

// Error is a runtime error value: a message, a kind tag, and whether it is
// a panic (bypasses Result, unwinds immediately; spec §7).
type Error struct {
	Header
	Message *String
	Kind    ErrorKind
	IsPanic bool
}

func NewError(msg *String, kind ErrorKind, isPanic bool) *Error {
	return &Error{Message: msg, Kind: kind, IsPanic: isPanic}
}

func (e *Error) Type() string   { return "error" }
func (e *Error) String() string { return e.Kind.String() + ": " + e.Message.Chars }
func (e *Error) Size() uintptr  { return 40 }
func (e *Error) Trace(mark func(Value)) {
	mark(e.Message)
}

// Result is the discriminated Ok(Value) | Err(Error) sum type (spec §3.2,
// §7) that fallible natives return and that `match`/`?` consume.
type Result struct {
	Header
	ok    bool
	value Value // the Ok payload, when ok
	err   *Error
}

func Ok(v Value) *Result  { return &Result{ok: true, value: v} }
func Err(e *Error) *Result { return &Result{ok: false, err: e} }

func (r *Result) Type() string { return "result" }
func (r *Result) String() string {
	if r.ok {
		return "Ok(" + r.value.String() + ")"
	}
	return "Err(" + r.err.String() + ")"
}
func (r *Result) Size() uintptr { return 32 }
func (r *Result) Trace(mark func(Value)) {
	if r.ok {
		mark(r.value)
	} else {
		mark(r.err)
	}
}

func (r *Result) IsOk() bool   { return r.ok }
func (r *Result) Value() Value { return r.value }
func (r *Result) Error() *Error { return r.err }

// Unwrap implements `expr?` (OP_UNWRAP, spec §4.2, §7): it yields the Ok
// payload, or, for an Err, surfaces the error object itself as the value.
func (r *Result) Unwrap() Value {
	if r.ok {
		return r.value
	}
	return r.err
}
