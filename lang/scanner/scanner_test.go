package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crux-lang/crux/lang/token"
)

func scanTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := ScanAll("test.crux", []byte(src))
	require.NoError(t, err)
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Token
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	got := scanTokens(t, "+ - * / \\ % ** << >> ! . ? , = ; : ( ) [ ] { } < > >= <= == != => += -= *= /= \\= %=")
	want := []token.Token{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.BACKSLASH, token.PERCENT,
		token.STARSTAR, token.LTLT, token.GTGT, token.BANG, token.DOT, token.QUESTION,
		token.COMMA, token.EQ, token.SEMI, token.COLON, token.LPAREN, token.RPAREN,
		token.LBRACK, token.RBRACK, token.LBRACE, token.RBRACE, token.LT, token.GT,
		token.GE, token.LE, token.EQEQ, token.BANGEQ, token.ARROW,
		token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.BSLASH_EQ, token.PERCENT_EQ,
		token.EOF,
	}
	require.Equal(t, want, got)
}

func TestScanKeywordsAndIdents(t *testing.T) {
	got := scanTokens(t, "let fn struct pub if else while for return use from as match give default break continue typeof and or not true false nil foo")
	want := []token.Token{
		token.LET, token.FN, token.STRUCT, token.PUB, token.IF, token.ELSE, token.WHILE,
		token.FOR, token.RETURN, token.USE, token.FROM, token.AS, token.MATCH, token.GIVE,
		token.DEFAULT, token.BREAK, token.CONTINUE, token.TYPEOF, token.AND, token.OR,
		token.NOT, token.TRUE, token.FALSE, token.NIL, token.IDENT, token.EOF,
	}
	require.Equal(t, want, got)
}

func TestScanNumbers(t *testing.T) {
	toks, err := ScanAll("test.crux", []byte("123 1.5 1e10 1.5e-3 0"))
	require.NoError(t, err)
	require.Equal(t, token.INT, toks[0].Token)
	require.Equal(t, int32(123), toks[0].Value.Int)
	require.Equal(t, token.FLOAT, toks[1].Token)
	require.Equal(t, 1.5, toks[1].Value.Float)
	require.Equal(t, token.FLOAT, toks[2].Token)
	require.Equal(t, token.FLOAT, toks[3].Token)
	require.Equal(t, token.INT, toks[4].Token)
}

func TestScanStrings(t *testing.T) {
	toks, err := ScanAll("test.crux", []byte(`"hello\nworld" 'single'`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "hello\nworld", toks[0].Value.Str)
	require.Equal(t, token.STRING, toks[1].Token)
	require.Equal(t, "single", toks[1].Value.Str)
}

func TestScanUnknownEscapeIsError(t *testing.T) {
	_, err := ScanAll("test.crux", []byte(`"bad\q"`))
	require.Error(t, err)
}

func TestScanComments(t *testing.T) {
	got := scanTokens(t, "let x = 1; // a comment\n/* block\nnested /* comment */ still */ let y = 2;")
	want := []token.Token{
		token.LET, token.IDENT, token.EQ, token.INT, token.SEMI,
		token.LET, token.IDENT, token.EQ, token.INT, token.SEMI,
		token.EOF,
	}
	require.Equal(t, want, got)
}
