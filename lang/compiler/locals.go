package compiler

import "github.com/crux-lang/crux/lang/object"

func (c *Compiler) beginScope() { c.fs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fs.scopeDepth--
	fs := c.fs
	for len(fs.locals) > 0 && fs.locals[len(fs.locals)-1].depth > fs.scopeDepth {
		last := fs.locals[len(fs.locals)-1]
		if last.captured {
			c.emitOp(object.OpCloseUpvalue)
		} else {
			c.emitOp(object.OpPop)
		}
		fs.locals = fs.locals[:len(fs.locals)-1]
	}
}

// emitPopLocalsAbove emits the same pop/close-upvalue sequence endScope
// does for every local declared more deeply than depth, without touching
// c.fs.locals: used by break/continue, which jump past the scopes they
// sit inside without ever running those scopes' own endScope, so the
// runtime stack would otherwise retain values the static slot bookkeeping
// has already accounted for as popped.
func (c *Compiler) emitPopLocalsAbove(depth int) {
	fs := c.fs
	for i := len(fs.locals) - 1; i >= 0 && fs.locals[i].depth > depth; i-- {
		if fs.locals[i].captured {
			c.emitOp(object.OpCloseUpvalue)
		} else {
			c.emitOp(object.OpPop)
		}
	}
}

// declareVariable registers the just-parsed identifier `name` as a local
// in the current scope (no-op at global scope, where globals are resolved
// dynamically by name instead).
func (c *Compiler) declareVariable(name string) {
	if c.fs.scopeDepth == 0 {
		return
	}
	fs := c.fs
	for i := len(fs.locals) - 1; i >= 0; i-- {
		l := fs.locals[i]
		if l.depth != -1 && l.depth < fs.scopeDepth {
			break
		}
		if l.name == name {
			c.error("a variable with this name already exists in this scope")
			return
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if len(c.fs.locals) >= maxLocals {
		c.error("too many local variables in one function")
		return
	}
	c.fs.locals = append(c.fs.locals, localVar{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].depth = c.fs.scopeDepth
}

// resolveLocal walks fs's locals back-to-front for a name match, per spec
// §4.2. Returns -1 if not found. Reading an uninitialised local (depth ==
// -1, i.e. still inside its own initializer) is a compile error.
func (c *Compiler) resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			if fs.locals[i].depth == -1 {
				c.error("can't read local variable in its own initializer")
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue recurses into enclosing compiler frames; a hit anywhere
// up the chain promotes to an upvalue entry in every intermediate frame,
// marking the original local captured (spec §4.2).
func (c *Compiler) resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}
	if local := c.resolveLocal(fs.enclosing, name); local >= 0 {
		fs.enclosing.locals[local].captured = true
		return c.addUpvalue(fs, local, true)
	}
	if up := c.resolveUpvalue(fs.enclosing, name); up >= 0 {
		return c.addUpvalue(fs, up, false)
	}
	return -1
}

func (c *Compiler) addUpvalue(fs *funcState, index int, isLocal bool) int {
	for i, uv := range fs.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) >= maxUpvalues {
		c.error("too many closure variables in one function")
		return 0
	}
	fs.upvalues = append(fs.upvalues, upvalueRef{index: index, isLocal: isLocal})
	fs.fn.UpvalueCount = len(fs.upvalues)
	return len(fs.upvalues) - 1
}
