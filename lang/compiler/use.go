package compiler

import (
	"strings"

	"github.com/crux-lang/crux/lang/object"
	"github.com/crux-lang/crux/lang/token"
)

// useStatement compiles `use N1[, N2]* [as ALIAS] from "path";` (spec
// §4.5). A path beginning with `crux:` compiles to OP_USE_NATIVE instead
// of OP_USE_MODULE.
func (c *Compiler) useStatement() {
	type importedName struct{ name, alias string }
	var names []importedName

	c.consume(token.IDENT, "expected a name to import")
	names = append(names, importedName{name: c.prev.Raw})
	for c.match(token.COMMA) {
		c.consume(token.IDENT, "expected a name to import")
		names = append(names, importedName{name: c.prev.Raw})
	}
	if len(names) > maxUseNames {
		c.error("too many names in one 'use'")
	}

	if c.match(token.AS) {
		if len(names) != 1 {
			c.error("'as' can only rename a single imported name")
		}
		c.consume(token.IDENT, "expected an alias after 'as'")
		names[0].alias = c.prev.Raw
	}

	c.consume(token.FROM, "expected 'from' after import names")
	c.consume(token.STRING, "expected a module path string")
	path := c.prev.Str
	c.consume(token.SEMI, "expected ';' after use statement")

	pathIdx := c.makeConstant(c.internString(path))
	if strings.HasPrefix(path, "crux:") {
		c.emitOp1(object.OpUseNative, byte(pathIdx))
	} else {
		c.emitOp1(object.OpUseModule, byte(pathIdx))
	}

	c.emitOp(object.OpFinishUse)
	c.emitByte(byte(len(names)))
	for _, n := range names {
		idx := c.makeConstant(c.internString(n.name))
		c.emitByte(byte(idx))
	}
	for _, n := range names {
		alias := n.alias
		if alias == "" {
			alias = n.name
		}
		idx := c.makeConstant(c.internString(alias))
		c.emitByte(byte(idx))
	}
}
