package compiler

import "github.com/crux-lang/crux/lang/token"

// Precedence levels, low to high, per spec §4.2.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecShift
	PrecTerm
	PrecFactor
	PrecPower
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[token.Token]parseRule

func init() {
	rules = map[token.Token]parseRule{
		token.LPAREN:    {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: PrecCall},
		token.LBRACK:    {prefix: (*Compiler).arrayLiteral, infix: (*Compiler).index, precedence: PrecCall},
		token.LBRACE:    {prefix: (*Compiler).tableLiteral},
		token.DOT:       {infix: (*Compiler).dot, precedence: PrecCall},
		token.MINUS:     {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.PLUS:      {infix: (*Compiler).binary, precedence: PrecTerm},
		token.SLASH:     {infix: (*Compiler).binary, precedence: PrecFactor},
		token.BACKSLASH: {infix: (*Compiler).binary, precedence: PrecFactor},
		token.PERCENT:   {infix: (*Compiler).binary, precedence: PrecFactor},
		token.STAR:      {infix: (*Compiler).binary, precedence: PrecFactor},
		token.STARSTAR:  {infix: (*Compiler).binary, precedence: PrecPower},
		token.LTLT:      {infix: (*Compiler).binary, precedence: PrecShift},
		token.GTGT:      {infix: (*Compiler).binary, precedence: PrecShift},
		token.BANG:      {prefix: (*Compiler).unary},
		token.BANGEQ:    {infix: (*Compiler).binary, precedence: PrecEquality},
		token.EQEQ:      {infix: (*Compiler).binary, precedence: PrecEquality},
		token.GT:        {infix: (*Compiler).binary, precedence: PrecComparison},
		token.GE:        {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LT:        {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LE:        {infix: (*Compiler).binary, precedence: PrecComparison},
		token.IDENT:     {prefix: (*Compiler).variable},
		token.STRING:    {prefix: (*Compiler).stringLiteral},
		token.INT:       {prefix: (*Compiler).numberLiteral},
		token.FLOAT:     {prefix: (*Compiler).numberLiteral},
		token.AND:       {infix: (*Compiler).and, precedence: PrecAnd},
		token.OR:        {infix: (*Compiler).or, precedence: PrecOr},
		token.FALSE:     {prefix: (*Compiler).literal},
		token.TRUE:      {prefix: (*Compiler).literal},
		token.NIL:       {prefix: (*Compiler).literal},
		token.FN:        {prefix: (*Compiler).anonFunction},
		token.TYPEOF:    {prefix: (*Compiler).typeofExpr},
		token.QUESTION:  {infix: (*Compiler).unwrap, precedence: PrecCall},
	}
}

func getRule(t token.Token) parseRule {
	return rules[t]
}
