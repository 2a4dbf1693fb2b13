package compiler

import (
	"github.com/crux-lang/crux/lang/object"
	"github.com/crux-lang/crux/lang/token"
)

func (c *Compiler) declaration() {
	switch {
	case c.match(token.LET):
		c.letDeclaration()
	case c.match(token.FN):
		c.fnDeclaration()
	case c.match(token.STRUCT):
		c.structDeclaration()
	case c.match(token.PUB):
		c.pubDeclaration()
	default:
		c.statement()
	}
	if c.panicing {
		c.synchronize()
	}
}

func (c *Compiler) pubDeclaration() {
	if c.fs.scopeDepth != 0 {
		c.error("'pub' is only allowed at top-level scope")
	}
	switch {
	case c.match(token.LET):
		c.letDeclaration()
	case c.match(token.FN):
		c.fnDeclaration()
	case c.match(token.STRUCT):
		c.structDeclaration()
	default:
		c.error("expected a declaration after 'pub'")
		return
	}
	c.emitOp(object.OpPub)
}

func (c *Compiler) letDeclaration() {
	c.consume(token.IDENT, "expected a variable name")
	name := c.prev.Raw
	c.declareVariable(name)

	if c.match(token.EQ) {
		c.expression()
	} else {
		c.emitOp(object.OpNil)
	}
	c.consume(token.SEMI, "expected ';' after variable declaration")
	c.defineVariable(name)
}

func (c *Compiler) defineVariable(name string) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	idx := c.makeConstant(c.internString(name))
	if idx > 0xff {
		c.emitOp2(object.OpDefineGlobal16, uint16(idx))
	} else {
		c.emitOp1(object.OpDefineGlobal, byte(idx))
	}
}

func (c *Compiler) fnDeclaration() {
	c.consume(token.IDENT, "expected a function name")
	name := c.prev.Raw
	c.declareVariable(name)
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
	}
	c.functionBody(KindFunction, c.internString(name))
	c.defineVariable(name)
}

// functionBody parses `(params) { body }` and emits OP_CLOSURE with the
// upvalue capture descriptor pairs (spec §4.4).
func (c *Compiler) functionBody(kind FuncKind, name *object.String) {
	fn := object.NewFunction(name, 0)
	fs := &funcState{fn: fn, kind: kind, enclosing: c.fs}
	fs.locals = append(fs.locals, localVar{name: "", depth: 0})
	c.fs = fs
	c.beginScope()

	c.consume(token.LPAREN, "expected '(' after function name")
	if !c.check(token.RPAREN) {
		for {
			fn.Arity++
			if fn.Arity > maxArgs {
				c.error("too many parameters")
			}
			c.consume(token.IDENT, "expected a parameter name")
			pname := c.prev.Raw
			c.declareVariable(pname)
			c.markInitialized()
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expected ')' after parameters")
	c.consume(token.LBRACE, "expected '{' before function body")
	c.block()
	c.emitReturn()

	upvalues := fs.upvalues
	c.fs = fs.enclosing

	idx := c.makeConstant(fn)
	if idx > 0xff {
		c.emitOp2(object.OpConstant16, uint16(idx))
	} else {
		c.emitOp1(object.OpConstant, byte(idx))
	}
	c.emitOp(object.OpClosure)
	for _, uv := range upvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(uv.index))
	}
}

func (c *Compiler) structDeclaration() {
	c.consume(token.IDENT, "expected a struct name")
	name := c.prev.Raw
	c.declareVariable(name)

	var fields []string
	c.consume(token.LBRACE, "expected '{' after struct name")
	if !c.check(token.RBRACE) {
		for {
			if c.check(token.RBRACE) {
				break
			}
			c.consume(token.IDENT, "expected a field name")
			fields = append(fields, c.prev.Raw)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACE, "expected '}' after struct fields")

	def := object.NewStruct(c.internString(name), fields)
	c.emitConstant(def)
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
	}
	c.defineVariable(name)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.USE):
		c.useStatement()
	case c.match(token.MATCH):
		c.matchExpressionStatement()
	case c.match(token.GIVE):
		c.giveStatement()
	case c.match(token.BREAK):
		c.breakStatement()
	case c.match(token.CONTINUE):
		c.continueStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && c.curTok != token.EOF {
		c.declaration()
	}
	c.consume(token.RBRACE, "expected '}' after block")
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMI, "expected ';' after expression")
	c.emitOp(object.OpPop)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "expected '(' after 'if'")
	c.expression()
	c.consume(token.RPAREN, "expected ')' after condition")

	thenJump := c.emitJump(object.OpJumpIfFalse)
	c.emitOp(object.OpPop)
	c.statement()

	elseJump := c.emitJump(object.OpJump)
	c.patchJump(thenJump)
	c.emitOp(object.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk().Code)
	c.fs.loops = append(c.fs.loops, loopState{loopStart: loopStart, scopeDepth: c.fs.scopeDepth})

	c.consume(token.LPAREN, "expected '(' after 'while'")
	c.expression()
	c.consume(token.RPAREN, "expected ')' after condition")

	exitJump := c.emitJump(object.OpJumpIfFalse)
	c.emitOp(object.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(object.OpPop)
	c.patchLoopExits()
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "expected '(' after 'for'")

	switch {
	case c.match(token.SEMI):
		// no initializer
	case c.match(token.LET):
		c.letDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk().Code)
	c.fs.loops = append(c.fs.loops, loopState{loopStart: loopStart, scopeDepth: c.fs.scopeDepth})

	exitJump := -1
	if !c.check(token.SEMI) {
		c.expression()
		exitJump = c.emitJump(object.OpJumpIfFalse)
		c.emitOp(object.OpPop)
	}
	c.consume(token.SEMI, "expected ';' after loop condition")

	if !c.check(token.RPAREN) {
		bodyJump := c.emitJump(object.OpJump)
		incrStart := len(c.chunk().Code)
		c.expression()
		c.emitOp(object.OpPop)
		c.consume(token.RPAREN, "expected ')' after for clauses")

		c.emitLoop(loopStart)
		loopStart = incrStart
		c.fs.loops[len(c.fs.loops)-1].loopStart = loopStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.RPAREN, "expected ')' after for clauses")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(object.OpPop)
	}
	c.patchLoopExits()
	c.endScope()
}

func (c *Compiler) patchLoopExits() {
	loop := c.fs.loops[len(c.fs.loops)-1]
	for _, off := range loop.breaks {
		c.patchJump(off)
	}
	c.fs.loops = c.fs.loops[:len(c.fs.loops)-1]
}

func (c *Compiler) breakStatement() {
	if len(c.fs.loops) == 0 {
		c.error("'break' outside a loop")
		c.consume(token.SEMI, "expected ';' after 'break'")
		return
	}
	loop := &c.fs.loops[len(c.fs.loops)-1]
	c.emitPopLocalsAbove(loop.scopeDepth)
	off := c.emitJump(object.OpJump)
	loop.breaks = append(loop.breaks, off)
	c.consume(token.SEMI, "expected ';' after 'break'")
}

func (c *Compiler) continueStatement() {
	if len(c.fs.loops) == 0 {
		c.error("'continue' outside a loop")
		c.consume(token.SEMI, "expected ';' after 'continue'")
		return
	}
	loop := c.fs.loops[len(c.fs.loops)-1]
	c.emitPopLocalsAbove(loop.scopeDepth)
	c.emitLoop(loop.loopStart)
	c.consume(token.SEMI, "expected ';' after 'continue'")
}

func (c *Compiler) returnStatement() {
	if c.fs.kind == KindScript {
		c.error("can't return from top-level code")
	}
	if c.match(token.SEMI) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.SEMI, "expected ';' after return value")
	c.emitOp(object.OpReturn)
}

func (c *Compiler) giveStatement() {
	if c.fs.matchDepth == 0 {
		c.error("'give' is only valid inside a match arm")
	}
	if c.match(token.SEMI) {
		c.emitOp(object.OpNil)
	} else {
		c.expression()
		c.consume(token.SEMI, "expected ';' after 'give' value")
	}
	c.emitOp1(object.OpSetLocal, byte(c.fs.matchResultSlot))
	c.emitOp(object.OpGive)
}
