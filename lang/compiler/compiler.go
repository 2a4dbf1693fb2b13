// Package compiler implements Crux's single-pass Pratt parser/compiler: it
// scans and emits bytecode in one pass, with no separate AST (spec §4.2).
// Grounded in the driver loop shape of the teacher's lang/parser (advance/
// precedence-climbing technique) but architecturally its own, since the
// teacher's own compiler is a multi-pass AST+resolver+CFG pipeline that
// does not fit a single-pass emitter; see DESIGN.md.
package compiler

import (
	"fmt"

	"github.com/crux-lang/crux/lang/gc"
	"github.com/crux-lang/crux/lang/object"
	"github.com/crux-lang/crux/lang/scanner"
	"github.com/crux-lang/crux/lang/token"
)

// Limits enforced at compile time (spec §4.2).
const (
	maxLocals    = 256
	maxUpvalues  = 256
	maxArgs      = 256
	maxConstants = 65536
	maxCollElems = 65536
	maxUseNames  = 256
)

// FuncKind distinguishes the role a compiled function plays, mirroring the
// compilation-context kinds spec §4.2 lists.
type FuncKind int

const (
	KindScript FuncKind = iota
	KindFunction
	KindMethod
	KindInitializer
	KindAnonymous
)

type localVar struct {
	name     string
	depth    int
	captured bool
}

type upvalueRef struct {
	index   int
	isLocal bool
}

type loopState struct {
	breaks     []int // patch offsets of pending `break` jumps
	continues  []int
	loopStart  int
	scopeDepth int
}

// funcState is one frame of the compiler's function-compilation stack
// (spec §4.2): the function being built plus its locals, upvalues, scope
// depth, and loop/match nesting.
type funcState struct {
	enclosing *funcState
	fn        *object.Function
	kind      FuncKind

	locals     []localVar
	upvalues   []upvalueRef
	scopeDepth int

	loops      []loopState
	matchDepth int
	// matchResultSlot is the local slot index holding the current match
	// expression's result value, valid while matchDepth > 0.
	matchResultSlot int
}

// Compiler drives the Pratt parser/emitter over one source file's token
// stream.
type Compiler struct {
	sc   scanner.Scanner
	heap *gc.Heap

	prev token.Value
	cur  token.Value
	prevTok, curTok token.Token

	filename string
	errs     scanner.ErrorList
	panicing bool

	// noStructLiteral suppresses `Ident { ... }` struct-instantiation
	// parsing, for the one context where a bare brace after an
	// expression means something else: a match target immediately
	// followed by its arms block.
	noStructLiteral bool

	fs *funcState
}

// Compile parses and compiles the entire source buffer into a top-level
// Function of kind Script, ready to be wrapped in a Closure and run (spec
// §4.2-§4.4). On any compile error, it returns a non-nil error and no
// chunk is usable.
func Compile(filename string, src []byte, heap *gc.Heap) (*object.Function, error) {
	c := &Compiler{heap: heap, filename: filename}
	c.sc.Init(filename, src, c.errs.Add)

	script := object.NewFunction(nil, 0)
	c.fs = &funcState{fn: script, kind: KindScript}
	// slot 0 is reserved for the running closure itself, as in the
	// teacher's call-frame layout.
	c.fs.locals = append(c.fs.locals, localVar{name: "", depth: 0})

	c.advance()
	for c.curTok != token.EOF {
		c.declaration()
	}
	c.emitReturn()

	c.errs.Sort()
	if err := c.errs.Err(); err != nil {
		return nil, err
	}
	return script, nil
}

// --- token stream plumbing -------------------------------------------------

func (c *Compiler) advance() {
	c.prev, c.prevTok = c.cur, c.curTok
	for {
		c.curTok = c.sc.Scan(&c.cur)
		if c.curTok != token.ILLEGAL {
			break
		}
	}
}

func (c *Compiler) check(t token.Token) bool { return c.curTok == t }

func (c *Compiler) match(t token.Token) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.Token, msg string) {
	if c.curTok == t {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.cur, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.prev, msg) }

func (c *Compiler) errorAt(v token.Value, msg string) {
	if c.panicing {
		return
	}
	c.panicing = true
	line, col := v.Pos.LineCol()
	c.errs.Add(scanner.Position{Filename: c.filename, Line: line, Column: col}, msg)
}

func (c *Compiler) errorf(format string, args ...any) {
	c.error(fmt.Sprintf(format, args...))
}

// synchronize implements panic-mode recovery (spec §4.2): skip tokens
// until a statement boundary (semicolon or a statement-starting keyword).
func (c *Compiler) synchronize() {
	c.panicing = false
	for c.curTok != token.EOF {
		if c.prevTok == token.SEMI {
			return
		}
		switch c.curTok {
		case token.FN, token.LET, token.STRUCT, token.FOR, token.IF,
			token.WHILE, token.RETURN, token.USE, token.MATCH, token.PUB:
			return
		}
		c.advance()
	}
}

// --- chunk emission ---------------------------------------------------------

func (c *Compiler) chunk() *object.Chunk { return &c.fs.fn.Chunk }

func (c *Compiler) emitByte(b byte) { c.chunk().Write(b, c.prev.Line) }

func (c *Compiler) emitOp(op object.Op) { c.chunk().WriteOp(op, c.prev.Line) }

func (c *Compiler) emitOp1(op object.Op, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitOp2(op object.Op, operand uint16) {
	c.emitOp(op)
	c.chunk().WriteUint16(operand, c.prev.Line)
}

func (c *Compiler) emitReturn() {
	c.emitOp(object.OpNilReturn)
}

// emitJump writes opcode + two placeholder bytes, returning the offset of
// the first placeholder byte for patchJump to fill in later (spec §4.2).
func (c *Compiler) emitJump(op object.Op) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	dist := len(c.chunk().Code) - offset - 2
	if dist > 65535 {
		c.error("too much code to jump over")
		return
	}
	c.chunk().PatchUint16(offset, uint16(dist))
}

// emitLoop emits a backward OP_LOOP to loopStart (spec §4.2).
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(object.OpLoop)
	dist := len(c.chunk().Code) - loopStart + 2
	if dist > 65535 {
		c.error("loop body too large")
		return
	}
	c.chunk().WriteUint16(uint16(dist), c.prev.Line)
}

// makeConstant adds v to the chunk's constant pool, keeping it GC-rooted
// across the (potentially allocating) append, and returns its index.
func (c *Compiler) makeConstant(v object.Value) int {
	c.heap.PushRoot(v)
	idx := c.chunk().AddConstant(v)
	c.heap.PopRoot()
	if idx >= maxConstants {
		c.error("too many constants in one chunk")
		return 0
	}
	return idx
}

// emitConstant emits CONSTANT or CONSTANT_16 depending on pool size.
func (c *Compiler) emitConstant(v object.Value) {
	idx := c.makeConstant(v)
	if idx > 0xff {
		c.emitOp2(object.OpConstant16, uint16(idx))
	} else {
		c.emitOp1(object.OpConstant, byte(idx))
	}
}

func (c *Compiler) internString(s string) *object.String {
	return c.heap.Intern(s)
}
