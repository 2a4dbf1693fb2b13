package compiler

import (
	"github.com/crux-lang/crux/lang/object"
	"github.com/crux-lang/crux/lang/token"
)

// expression parses and compiles one expression at PrecAssignment, the
// lowest real precedence (spec §4.2).
func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	rule := getRule(c.prevTok)
	if rule.prefix == nil {
		c.error("expected an expression")
		return
	}
	canAssign := prec <= PrecAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.curTok).precedence {
		c.advance()
		infix := getRule(c.prevTok).infix
		infix(c, canAssign)
	}

	if canAssign && (c.curTok == token.EQ || c.curTok.IsAssignOp()) {
		c.error("invalid assignment target")
	}
}

func (c *Compiler) numberLiteral(_ bool) {
	if c.prevTok == token.INT {
		c.emitConstant(object.Int(c.prev.Int))
	} else {
		c.emitConstant(object.Float(c.prev.Float))
	}
}

func (c *Compiler) stringLiteral(_ bool) {
	c.emitConstant(c.internString(c.prev.Str))
}

func (c *Compiler) literal(_ bool) {
	switch c.prevTok {
	case token.TRUE:
		c.emitOp(object.OpTrue)
	case token.FALSE:
		c.emitOp(object.OpFalse)
	case token.NIL:
		c.emitOp(object.OpNil)
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RPAREN, "expected ')' after expression")
}

func (c *Compiler) unary(_ bool) {
	op := c.prevTok
	c.parsePrecedence(PrecUnary)
	switch op {
	case token.MINUS:
		c.emitOp(object.OpNegate)
	case token.BANG:
		c.emitOp(object.OpNot)
	}
}

func (c *Compiler) binary(_ bool) {
	op := c.prevTok
	rule := getRule(op)
	c.parsePrecedence(rule.precedence + 1)

	switch op {
	case token.PLUS:
		c.emitOp(object.OpAdd)
	case token.MINUS:
		c.emitOp(object.OpSub)
	case token.STAR:
		c.emitOp(object.OpMul)
	case token.SLASH:
		c.emitOp(object.OpDiv)
	case token.BACKSLASH:
		c.emitOp(object.OpIntDiv)
	case token.PERCENT:
		c.emitOp(object.OpMod)
	case token.STARSTAR:
		c.emitOp(object.OpPow)
	case token.LTLT:
		c.emitOp(object.OpLShift)
	case token.GTGT:
		c.emitOp(object.OpRShift)
	case token.EQEQ:
		c.emitOp(object.OpEqual)
	case token.BANGEQ:
		c.emitOp(object.OpEqual)
		c.emitOp(object.OpNot)
	case token.GT:
		c.emitOp(object.OpGreater)
	case token.GE:
		c.emitOp(object.OpLess)
		c.emitOp(object.OpNot)
	case token.LT:
		c.emitOp(object.OpLess)
	case token.LE:
		c.emitOp(object.OpGreater)
		c.emitOp(object.OpNot)
	}
}

// and/or implement short-circuit evaluation via jumps (spec §4.2).
func (c *Compiler) and(_ bool) {
	endJump := c.emitJump(object.OpJumpIfFalse)
	c.emitOp(object.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or(_ bool) {
	elseJump := c.emitJump(object.OpJumpIfFalse)
	endJump := c.emitJump(object.OpJump)
	c.patchJump(elseJump)
	c.emitOp(object.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) typeofExpr(_ bool) {
	c.parsePrecedence(PrecUnary)
	c.emitOp(object.OpTypeof)
}

func (c *Compiler) unwrap(_ bool) {
	c.emitOp(object.OpUnwrap)
}

// call compiles a `f(args...)` call; the callee is already on the stack.
func (c *Compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitOp1(object.OpCall, byte(argCount))
}

func (c *Compiler) argumentList() int {
	count := 0
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if count >= maxArgs {
				c.error("too many arguments")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expected ')' after arguments")
	return count
}

// index compiles `a[i]`, and, when canAssign and `=`/compound-assign
// follows, `a[i] = v` instead (spec §4.2, §4.4 GET/SET_COLLECTION).
func (c *Compiler) index(canAssign bool) {
	c.expression()
	c.consume(token.RBRACK, "expected ']' after index")

	if canAssign && c.matchAssignOp() {
		c.finishCollectionAssign()
		return
	}
	c.emitOp(object.OpGetCollection)
}

func (c *Compiler) finishCollectionAssign() {
	op := c.prevTok
	if op == token.EQ {
		c.expression()
		c.emitOp(object.OpSetCollection)
		return
	}
	// compound assignment on a collection element: not expressible as a
	// single opcode family (unlike locals/globals/upvalues) since the
	// target is itself a stack value, not a named slot, so it is rejected
	// at compile time.
	c.error("compound assignment on an indexed expression is not supported")
}

// dot compiles `a.name`, property get/set, or a method invocation when
// followed by `(` (OP_INVOKE, spec §4.4).
func (c *Compiler) dot(canAssign bool) {
	c.consume(token.IDENT, "expected property name after '.'")
	name := c.prev.Raw

	if c.match(token.LPAREN) {
		argCount := c.argumentList()
		nameIdx := c.makeConstant(c.internString(name))
		c.emitOp1(object.OpInvoke, byte(nameIdx))
		c.emitByte(byte(argCount))
		return
	}

	if canAssign && c.matchAssignOp() {
		nameIdx := c.makeConstant(c.internString(name))
		op := c.prevTok
		if op == token.EQ {
			c.expression()
		} else {
			c.errorf("compound assignment on '.%s' is not supported", name)
			return
		}
		c.emitPropertyOp(object.OpSetProperty, object.OpSetProperty16, nameIdx)
		return
	}

	nameIdx := c.makeConstant(c.internString(name))
	c.emitPropertyOp(object.OpGetProperty, object.OpGetProperty16, nameIdx)
}

func (c *Compiler) emitPropertyOp(short, long object.Op, idx int) {
	if idx > 0xff {
		c.emitOp2(long, uint16(idx))
	} else {
		c.emitOp1(short, byte(idx))
	}
}

func (c *Compiler) matchAssignOp() bool {
	switch c.curTok {
	case token.EQ, token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ,
		token.SLASH_EQ, token.BSLASH_EQ, token.PERCENT_EQ:
		c.advance()
		return true
	}
	return false
}

// arrayLiteral compiles `[e1, e2, ...]` (spec §4.4 OP_ARRAY).
func (c *Compiler) arrayLiteral(_ bool) {
	count := c.collectionElems(token.RBRACK)
	c.emitOp2(object.OpArray, uint16(count))
}

func (c *Compiler) collectionElems(end token.Token) int {
	count := 0
	if !c.check(end) {
		for {
			if c.check(end) {
				break
			}
			c.expression()
			count++
			if count > maxCollElems {
				c.error("too many elements in collection literal")
			}
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(end, "expected closing bracket for collection literal")
	return count
}

// tableLiteral compiles `{k: v, ...}` (spec §4.4 OP_TABLE).
func (c *Compiler) tableLiteral(_ bool) {
	count := 0
	if !c.check(token.RBRACE) {
		for {
			if c.check(token.RBRACE) {
				break
			}
			c.expression()
			c.consume(token.COLON, "expected ':' after table key")
			c.expression()
			count++
			if count > maxCollElems {
				c.error("too many entries in table literal")
			}
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACE, "expected '}' after table literal")
	c.emitOp2(object.OpTable, uint16(count))
}

// variable resolves an identifier to a local, upvalue, or global access,
// including assignment forms (spec §4.2 local resolution, §4.4 SET_* and
// the compound-assignment opcode family).
func (c *Compiler) variable(canAssign bool) {
	name := c.prev.Raw
	if c.check(token.LBRACE) && !c.noStructLiteral {
		c.structInstance(name)
		return
	}
	c.namedVariable(name, canAssign)
}

// structInstance compiles `Name{field: val, ...}` (spec §4.4
// OP_STRUCT_INSTANCE_START / OP_STRUCT_NAMED_FIELD / OP_STRUCT_INSTANCE_END).
func (c *Compiler) structInstance(name string) {
	c.namedVariable(name, false) // pushes the Struct type value
	c.advance()                  // consume '{'
	c.emitOp(object.OpStructInstanceStart)

	if !c.check(token.RBRACE) {
		for {
			if c.check(token.RBRACE) {
				break
			}
			c.consume(token.IDENT, "expected a field name")
			fname := c.prev.Raw
			c.consume(token.COLON, "expected ':' after field name")
			c.expression()
			idx := c.makeConstant(c.internString(fname))
			c.emitOp1(object.OpStructNamedField, byte(idx))
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACE, "expected '}' after struct fields")
	c.emitOp(object.OpStructInstanceEnd)
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getOp, setOp object.Op
	var arg int
	var wide bool

	if local := c.resolveLocal(c.fs, name); local >= 0 {
		getOp, setOp, arg = object.OpGetLocal, object.OpSetLocal, local
	} else if up := c.resolveUpvalue(c.fs, name); up >= 0 {
		getOp, setOp, arg = object.OpGetUpvalue, object.OpSetUpvalue, up
	} else {
		idx := c.makeConstant(c.internString(name))
		arg = idx
		wide = idx > 0xff
		if wide {
			getOp, setOp = object.OpGetGlobal16, object.OpSetGlobal16
		} else {
			getOp, setOp = object.OpGetGlobal, object.OpSetGlobal
		}
	}

	if canAssign && c.curTok == token.EQ {
		c.advance()
		c.expression()
		c.emitVarOp(setOp, arg, wide)
		return
	}
	if canAssign && c.curTok.IsAssignOp() {
		famOp := compoundOpFor(setOp, c.curTok)
		c.advance()
		c.expression()
		c.emitVarOp(famOp, arg, wide)
		return
	}
	c.emitVarOp(getOp, arg, wide)
}

func (c *Compiler) emitVarOp(op object.Op, arg int, wide bool) {
	if wide {
		c.emitOp2(op, uint16(arg))
	} else {
		c.emitOp1(op, byte(arg))
	}
}

// compoundOpFor maps a base SET_* opcode and a compound-assign token to
// the matching family member, e.g. (OpSetLocal, PLUS_EQ) -> OpSetLocalPlus.
func compoundOpFor(base object.Op, tok token.Token) object.Op {
	var triad [6]object.Op
	switch base {
	case object.OpSetLocal:
		triad = [6]object.Op{object.OpSetLocalPlus, object.OpSetLocalMinus, object.OpSetLocalStar, object.OpSetLocalSlash, object.OpSetLocalIntDiv, object.OpSetLocalMod}
	case object.OpSetGlobal, object.OpSetGlobal16:
		triad = [6]object.Op{object.OpSetGlobalPlus, object.OpSetGlobalMinus, object.OpSetGlobalStar, object.OpSetGlobalSlash, object.OpSetGlobalIntDiv, object.OpSetGlobalMod}
	case object.OpSetUpvalue:
		triad = [6]object.Op{object.OpSetUpvaluePlus, object.OpSetUpvalueMinus, object.OpSetUpvalueStar, object.OpSetUpvalueSlash, object.OpSetUpvalueIntDiv, object.OpSetUpvalueMod}
	}
	switch tok {
	case token.PLUS_EQ:
		return triad[0]
	case token.MINUS_EQ:
		return triad[1]
	case token.STAR_EQ:
		return triad[2]
	case token.SLASH_EQ:
		return triad[3]
	case token.BSLASH_EQ:
		return triad[4]
	case token.PERCENT_EQ:
		return triad[5]
	}
	return base
}

// anonFunction compiles `fn(params) { ... }` used as an expression (spec
// §4.2 FuncKind Anonymous); like a named function it is emitted as
// OP_CONSTANT followed by OP_CLOSURE.
func (c *Compiler) anonFunction(_ bool) {
	c.functionBody(KindAnonymous, nil)
}
