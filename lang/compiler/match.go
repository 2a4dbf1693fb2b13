package compiler

import (
	"github.com/crux-lang/crux/lang/object"
	"github.com/crux-lang/crux/lang/token"
)

// matchExpressionStatement compiles `match EXPR { ARM, ... }` (spec §4.2,
// §4.4). Match nesting is prohibited past depth 1.
//
// Stack discipline: after the target is pushed and OP_MATCH marks it, the
// target's cell and a single "result slot" directly above it (initialised
// to nil) are both registered as unnamed locals for the whole construct,
// so arm bindings get the slot indices of their real stack cells. Every
// arm runs in its own nested scope; `give expr` overwrites the result slot
// and the nested scope is then closed as usual, leaving exactly
// [target, result] regardless of which arm ran or whether it bound a
// Result payload. OP_MATCH_END collapses that pair to the single result
// value, which the statement then pops.
func (c *Compiler) matchExpressionStatement() {
	if c.fs.matchDepth >= 1 {
		c.error("match expressions cannot be nested")
	}
	c.fs.matchDepth++
	defer func() { c.fs.matchDepth-- }()

	c.noStructLiteral = true
	c.expression()
	c.noStructLiteral = false
	c.emitOp(object.OpMatch)

	c.beginScope()
	c.addLocal("") // the target's own stack cell
	c.markInitialized()
	c.emitOp(object.OpNil)
	c.addLocal("")
	c.markInitialized()
	resultSlot := len(c.fs.locals) - 1
	prevResultSlot := c.fs.matchResultSlot
	c.fs.matchResultSlot = resultSlot
	defer func() { c.fs.matchResultSlot = prevResultSlot }()

	c.consume(token.LBRACE, "expected '{' after match target")

	var endJumps []int
	hasDefault, hasOk, hasErr := false, false, false
	nextArmJump := -1

	for !c.check(token.RBRACE) && c.curTok != token.EOF {
		if nextArmJump != -1 {
			c.patchJump(nextArmJump)
			nextArmJump = -1
		}

		switch {
		case c.match(token.DEFAULT):
			hasDefault = true
			c.consume(token.ARROW, "expected '=>' after 'default'")
			c.beginScope()
			c.matchArmBody()
			c.endScope()

		case c.isResultPattern():
			isOk, bindName := c.parseResultPattern()
			if isOk {
				hasOk = true
			} else {
				hasErr = true
			}
			var op object.Op
			if isOk {
				op = object.OpResultMatchOk
			} else {
				op = object.OpResultMatchErr
			}
			nextArmJump = c.emitJump(op)

			c.beginScope()
			if bindName != "" {
				c.emitOp(object.OpNil)
				c.addLocal(bindName)
				c.markInitialized()
				slot := len(c.fs.locals) - 1
				c.emitOp1(object.OpResultBind, byte(slot))
			}
			c.consume(token.ARROW, "expected '=>' after match pattern")
			c.matchArmBody()
			c.endScope()

		default:
			c.expression() // pattern value
			nextArmJump = c.emitJump(object.OpMatchJump)
			c.consume(token.ARROW, "expected '=>' after match pattern")
			c.beginScope()
			c.matchArmBody()
			c.endScope()
		}

		endJumps = append(endJumps, c.emitJump(object.OpJump))
		if !c.match(token.COMMA) {
			break
		}
	}
	if nextArmJump != -1 {
		c.patchJump(nextArmJump)
	}
	c.consume(token.RBRACE, "expected '}' after match arms")

	if !hasDefault && !(hasOk && hasErr) {
		c.error("match must cover 'default' or both 'Ok' and 'Err' arms")
	}

	for _, j := range endJumps {
		c.patchJump(j)
	}

	// OP_MATCH_END collapses [target, result] to the result and the POP
	// discards it; both cells are then gone from the stack, so the two
	// locals are dropped from the compiler's view without emitting pops.
	c.emitOp(object.OpMatchEnd)
	c.emitOp(object.OpPop)
	c.fs.locals = c.fs.locals[:len(c.fs.locals)-2]
	c.fs.scopeDepth--
}

// matchArmBody compiles a `{ block }` or a single implicit-give expression.
func (c *Compiler) matchArmBody() {
	if c.match(token.LBRACE) {
		c.block()
		return
	}
	c.expression()
	c.emitOp1(object.OpSetLocal, byte(c.fs.matchResultSlot))
	c.emitOp(object.OpGive)
	if !c.check(token.RBRACE) {
		// comma is consumed by the caller loop
	}
}

// isResultPattern peeks for the `Ok`/`Err` pattern forms without
// consuming, so the caller can branch without backtracking.
func (c *Compiler) isResultPattern() bool {
	return c.curTok == token.IDENT && (c.cur.Raw == "Ok" || c.cur.Raw == "Err")
}

// parseResultPattern consumes `Ok(name)` or `Err(name)` (name optional:
// `Ok()`/`Ok` binds nothing).
func (c *Compiler) parseResultPattern() (isOk bool, bindName string) {
	isOk = c.cur.Raw == "Ok"
	c.advance() // Ok / Err
	if c.match(token.LPAREN) {
		if c.check(token.IDENT) {
			c.advance()
			bindName = c.prev.Raw
		}
		c.consume(token.RPAREN, "expected ')' after result pattern binding")
	}
	return isOk, bindName
}
