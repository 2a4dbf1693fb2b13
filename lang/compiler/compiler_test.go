package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crux-lang/crux/lang/gc"
	"github.com/crux-lang/crux/lang/object"
)

func TestCompileArithmeticEmitsAddOpcode(t *testing.T) {
	heap := gc.NewHeap()
	fn, err := Compile("test.crux", []byte("let a = 2; let b = 3; println(a + b);"), heap)
	require.NoError(t, err)

	found := false
	for _, b := range fn.Chunk.Code {
		if object.Op(b) == object.OpAdd {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileSyntaxErrorReturnsError(t *testing.T) {
	heap := gc.NewHeap()
	_, err := Compile("test.crux", []byte("let = ;"), heap)
	require.Error(t, err)
}

func TestCompileClosureCapturesUpvalue(t *testing.T) {
	heap := gc.NewHeap()
	src := `fn make() { let x = 1; fn inner() { x += 1; return x; } return inner; }`
	fn, err := Compile("test.crux", []byte(src), heap)
	require.NoError(t, err)
	require.NotEmpty(t, fn.Chunk.Constants)

	var mk, inner *object.Function
	for _, k := range fn.Chunk.Constants {
		if f, ok := k.(*object.Function); ok {
			mk = f
		}
	}
	require.NotNil(t, mk)
	for _, k := range mk.Chunk.Constants {
		if f, ok := k.(*object.Function); ok {
			inner = f
		}
	}
	require.NotNil(t, inner)
	require.Equal(t, 1, inner.UpvalueCount)
}

func TestCompileMatchRequiresDefaultOrBothArms(t *testing.T) {
	heap := gc.NewHeap()
	src := `let r = ok(1); match r { Ok(v) => println(v) }`
	_, err := Compile("test.crux", []byte(src), heap)
	require.Error(t, err)
}

func TestCompileStructInstance(t *testing.T) {
	heap := gc.NewHeap()
	src := `struct Point { x, y } let p = Point{x: 3, y: 4}; println(p.x + p.y);`
	fn, err := Compile("test.crux", []byte(src), heap)
	require.NoError(t, err)
	hasStructOp := false
	for _, b := range fn.Chunk.Code {
		if object.Op(b) == object.OpStructInstanceStart {
			hasStructOp = true
		}
	}
	require.True(t, hasStructOp)
}

func TestCompileTooManyLocalsFails(t *testing.T) {
	heap := gc.NewHeap()
	var src string
	src += "fn f() {\n"
	for i := 0; i < 300; i++ {
		src += "let a" + itoa(i) + " = 0;\n"
	}
	src += "}\n"
	_, err := Compile("test.crux", []byte(src), heap)
	require.Error(t, err)
}

func TestCompileBreakInNestedScopePopsLocals(t *testing.T) {
	heap := gc.NewHeap()
	src := `fn f() {
		let i = 0;
		while (i < 3) {
			let x = i;
			if (x == 1) { break; }
			i += 1;
		}
		let y = 99;
		return y;
	}`
	_, err := Compile("test.crux", []byte(src), heap)
	require.NoError(t, err)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}
