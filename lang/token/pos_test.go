package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosRoundTripsLineCol(t *testing.T) {
	cases := []struct{ line, col int }{
		{1, 1},
		{1, 80},
		{42, 7},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		line, col := p.LineCol()
		require.Equal(t, c.line, line)
		require.Equal(t, c.col, col)
	}
}

func TestPosUnknown(t *testing.T) {
	require.True(t, Pos(0).Unknown())
	require.True(t, MakePos(0, 5).Unknown())
	require.True(t, MakePos(5, 0).Unknown())
	require.False(t, MakePos(1, 1).Unknown())
}
