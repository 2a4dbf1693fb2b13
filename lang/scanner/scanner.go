// Package scanner implements the Crux lexer: a finite-state machine that
// turns a source buffer into a stream of typed tokens with source offsets
// and line numbers, the way the teacher's lang/scanner package tokenizes
// Starlark-like source. Crux's grammar is C-like rather than Python-like, so
// the token set and punctuation rules differ, but the scanning technique
// (rune-at-a-time advance/peek, deferred error reporting via go/scanner's
// Error/ErrorList) is adapted directly from it.
package scanner

import (
	"fmt"
	gotoken "go/token"
	"go/scanner"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crux-lang/crux/lang/token"
)

type (
	// Position is a source position: filename, byte offset, line and column.
	Position = gotoken.Position
	// Error is a single scan or compile error at a source Position.
	Error = scanner.Error
	// ErrorList accumulates Errors, sorted and deduplicated.
	ErrorList = scanner.ErrorList
)

// TokenAndValue combines a token type with its scanned value.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanAll tokenizes the entire source buffer of the named file, returning
// every token (including the trailing EOF) and any scan errors encountered.
func ScanAll(filename string, src []byte) ([]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)
	s.Init(filename, src, el.Add)
	var out []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		out = append(out, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return out, el.Err()
}

// Scanner tokenizes a single source file for the compiler to consume.
type Scanner struct {
	filename string
	src      []byte
	err      func(pos Position, msg string)

	sb strings.Builder

	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset right after cur

	line   int // 1-based line of cur
	lineOff int // byte offset of the start of the current line
}

// Init (re)initializes the scanner to tokenize src, named filename for
// diagnostics. errHandler is called for every scan error encountered (it may
// be nil to discard errors, though the compiler always supplies one).
func (s *Scanner) Init(filename string, src []byte, errHandler func(Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler

	s.sb.Reset()
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.lineOff = 0

	// skip a leading hashbang line, the only non-Crux syntax tolerated as the
	// very first line of a file (so `crux` scripts can be made executable).
	if len(src) >= 2 && src[0] == '#' && src[1] == '!' {
		for s.roff < len(src) && src[s.roff] != '\n' {
			s.roff++
		}
	}
	s.advance()
}

func (s *Scanner) peekByte() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}
	if s.cur == '\n' {
		s.line++
		s.lineOff = s.roff
	}
	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) position(off int) Position {
	// recompute column by scanning back from off to the start of its line;
	// off is always on the scanner's current or a prior line, so this is a
	// small bounded walk in the common case of reporting the current token.
	line, lineOff := s.line, s.lineOff
	if off < s.lineOff {
		line, lineOff = 1, 0
		for i := 0; i < off && i < len(s.src); i++ {
			if s.src[i] == '\n' {
				line++
				lineOff = i + 1
			}
		}
	}
	return Position{Filename: s.filename, Offset: off, Line: line, Column: off - lineOff + 1}
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.position(off), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

// Scan returns the next token from the source, filling tokVal with its
// literal text, position and decoded value (for literals).
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	startOff := s.off
	line := s.line
	pos := token.MakePos(line, startOff-s.lineOff+1)

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.LookupIdent(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos, Line: line}

	case isDigit(cur) || (cur == '.' && isDigit(rune(s.peekByte()))):
		tok = s.number(tokVal, line, pos)

	default:
		s.advance() // always make progress
		switch cur {
		case '+':
			tok = token.PLUS
			if s.advanceIf('=') {
				tok = token.PLUS_EQ
			}
		case '-':
			tok = token.MINUS
			if s.advanceIf('=') {
				tok = token.MINUS_EQ
			}
		case '*':
			tok = token.STAR
			if s.advanceIf('*') {
				tok = token.STARSTAR
			} else if s.advanceIf('=') {
				tok = token.STAR_EQ
			}
		case '/':
			tok = token.SLASH
			if s.advanceIf('=') {
				tok = token.SLASH_EQ
			}
		case '\\':
			tok = token.BACKSLASH
			if s.advanceIf('=') {
				tok = token.BSLASH_EQ
			}
		case '%':
			tok = token.PERCENT
			if s.advanceIf('=') {
				tok = token.PERCENT_EQ
			}
		case '<':
			tok = token.LT
			if s.advanceIf('<') {
				tok = token.LTLT
			} else if s.advanceIf('=') {
				tok = token.LE
			}
		case '>':
			tok = token.GT
			if s.advanceIf('>') {
				tok = token.GTGT
			} else if s.advanceIf('=') {
				tok = token.GE
			}
		case '=':
			tok = token.EQ
			if s.advanceIf('=') {
				tok = token.EQEQ
			} else if s.advanceIf('>') {
				tok = token.ARROW
			}
		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.BANGEQ
			}
		case '.':
			tok = token.DOT
		case ',':
			tok = token.COMMA
		case ';':
			tok = token.SEMI
		case ':':
			tok = token.COLON
		case '?':
			tok = token.QUESTION
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case '"', '\'':
			tok = token.STRING
			lit, decoded := s.shortString(byte(cur), startOff, line)
			*tokVal = token.Value{Raw: lit, Pos: pos, Line: line, Str: decoded}
			return tok
		case -1:
			tok = token.EOF
		default:
			s.errorf(startOff, "illegal character %#U", cur)
			tok = token.ILLEGAL
		}
		*tokVal = token.Value{Raw: string(s.src[startOff:s.off]), Pos: pos, Line: line}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// skipWhitespaceAndComments skips spaces, tabs, newlines, `//` line comments
// and (possibly nested) `/* */` block comments.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peekByte() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		case s.cur == '/' && s.peekByte() == '*':
			startOff, startLine := s.off, s.line
			s.advance()
			s.advance()
			depth := 1
			for depth > 0 {
				switch {
				case s.cur == -1:
					s.error(startOff, "unterminated block comment")
					return
				case s.cur == '/' && s.peekByte() == '*':
					s.advance()
					s.advance()
					depth++
				case s.cur == '*' && s.peekByte() == '/':
					s.advance()
					s.advance()
					depth--
				default:
					s.advance()
				}
			}
			_ = startLine
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
