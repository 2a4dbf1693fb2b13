package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	for tok := AND; tok < maxToken; tok++ {
		require.Equal(t, tok, LookupIdent(tok.String()))
	}
	require.Equal(t, IDENT, LookupIdent("notAKeyword"))
}

func TestIsAssignOp(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok >= PLUS_EQ && tok <= PERCENT_EQ
		require.Equal(t, expect, tok.IsAssignOp())
	}
}

func TestArithOp(t *testing.T) {
	require.Equal(t, PLUS, PLUS_EQ.ArithOp())
	require.Equal(t, PERCENT, PERCENT_EQ.ArithOp())
}
