package scanner

import (
	"strconv"

	"github.com/crux-lang/crux/lang/token"
)

// number scans an integer or float literal. Per the language's rule, a
// literal is a float iff it contains '.', 'e' or 'E'; there are no
// hex/octal/binary prefixes or digit-group separators.
func (s *Scanner) number(tokVal *token.Value, line int, pos token.Pos) token.Token {
	start := s.off
	isFloat := false

	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(rune(s.peekByte())) {
		isFloat = true
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	if s.cur == 'e' || s.cur == 'E' {
		isFloat = true
		s.advance()
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		if !isDigit(s.cur) {
			s.error(s.off, "malformed floating-point literal: missing exponent digits")
		}
		for isDigit(s.cur) {
			s.advance()
		}
	}

	lit := string(s.src[start:s.off])
	tokVal.Raw = lit
	tokVal.Pos = pos
	tokVal.Line = line

	if isFloat {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			s.error(start, "float literal value out of range")
		}
		tokVal.Float = v
		return token.FLOAT
	}

	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil || v < -(1<<31) || v > (1<<31)-1 {
		s.error(start, "integer literal value out of range")
	}
	tokVal.Int = int32(v)
	return token.INT
}
