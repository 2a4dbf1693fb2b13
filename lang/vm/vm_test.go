package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crux-lang/crux/lang/compiler"
	"github.com/crux-lang/crux/lang/gc"
)

// run compiles and interprets src as a fresh file module, capturing stdout.
func run(t *testing.T, src string) (string, *VM) {
	t.Helper()
	heap := gc.NewHeap()
	fn, err := compiler.Compile("test.crux", []byte(src), heap)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(heap)
	m.Stdout = &out

	_, mod, rerr := m.Interpret(fn, "test.crux")
	require.Nil(t, rerr, "%v", rerr)
	require.Equal(t, StateLoaded, mod.State)
	return out.String(), m
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, _ := run(t, `let a = 2; let b = 3; println(a + b);`)
	require.Equal(t, "5\n", out)
}

func TestInterpretClosureCapturesUpvalue(t *testing.T) {
	out, _ := run(t, `
		fn make() {
			let x = 1;
			fn inner() { x += 1; return x; }
			return inner;
		}
		let c = make();
		println(c());
		println(c());
	`)
	require.Equal(t, "2\n3\n", out)
}

func TestInterpretStructFieldClosureInvokedWithoutReceiver(t *testing.T) {
	out, _ := run(t, `
		struct Greeter { hello }
		let g = Greeter{hello: fn() { return "hi"; }};
		println(g.hello());
	`)
	require.Equal(t, "hi\n", out)
}

func TestBreakPopsLocalsFromNestedScope(t *testing.T) {
	out, _ := run(t, `
		fn f() {
			let i = 0;
			while (i < 3) {
				let x = i;
				if (x == 1) { break; }
				i += 1;
			}
			let y = 99;
			return y;
		}
		println(f());
	`)
	require.Equal(t, "99\n", out)
}

func TestContinuePopsLocalsFromNestedScopeEachIteration(t *testing.T) {
	out, _ := run(t, `
		fn f() {
			let sum = 0;
			let i = 0;
			while (i < 5) {
				i += 1;
				let skip = i;
				if (skip == 2) { continue; }
				sum += i;
			}
			return sum;
		}
		println(f());
	`)
	require.Equal(t, "13\n", out)
}

func TestInterpretMatchOkErr(t *testing.T) {
	out, _ := run(t, `
		fn describe(r) {
			match r {
				Ok(v) => println("ok: " + v),
				Err(e) => println("err: " + e.message()),
			}
		}
		describe(ok("good"));
		describe(err("bad"));
	`)
	require.Equal(t, "ok: good\nerr: bad\n", out)
}

func TestInterpretRuntimeErrorReturnsModuleForTrace(t *testing.T) {
	heap := gc.NewHeap()
	fn, cerr := compiler.Compile("test.crux", []byte(`
		fn boom() { return 1 / 0; }
		boom();
	`), heap)
	require.NoError(t, cerr)

	var out bytes.Buffer
	m := New(heap)
	m.Stdout = &out

	_, mod, rerr := m.Interpret(fn, "test.crux")
	require.NotNil(t, rerr)
	require.Equal(t, StateError, mod.State)
	require.NotEmpty(t, mod.Frames, "frames must survive the error for RuntimeError to walk")

	trace := m.RuntimeError(mod, rerr)
	require.Contains(t, trace, "boom")
}

func TestUserGlobalRedefinitionRejectedInFileModule(t *testing.T) {
	heap := gc.NewHeap()
	fn, cerr := compiler.Compile("test.crux", []byte(`
		let x = 1;
		let x = 2;
	`), heap)
	require.NoError(t, cerr)

	m := New(heap)
	var out bytes.Buffer
	m.Stdout = &out

	_, mod, rerr := m.Interpret(fn, "test.crux")
	require.NotNil(t, rerr)
	require.Equal(t, StateError, mod.State)
}

func TestShadowingUniverseBuiltinIsNotARedefinition(t *testing.T) {
	// A module's first `let len = ...` shadows the universe builtin but is
	// not a collision, since installUniverse's pre-seeding doesn't count as
	// a user definition.
	out, _ := run(t, `let len = fn(x) { return 42; }; println(len("hi"));`)
	require.Equal(t, "42\n", out)
}

func TestREPLModuleAllowsGlobalRedefinitionAcrossChunks(t *testing.T) {
	heap := gc.NewHeap()
	m := New(heap)
	var out bytes.Buffer
	m.Stdout = &out
	mod := m.NewREPLModule("<repl>")

	fn1, err := compiler.Compile("<repl>", []byte(`let x = 1;`), heap)
	require.NoError(t, err)
	_, rerr := m.InterpretInModule(fn1, mod)
	require.Nil(t, rerr)

	fn2, err := compiler.Compile("<repl>", []byte(`let x = 2; println(x);`), heap)
	require.NoError(t, err)
	_, rerr = m.InterpretInModule(fn2, mod)
	require.Nil(t, rerr)
	require.Equal(t, "2\n", out.String())
}

func TestREPLFramesDoNotLeakAcrossLinesAfterAnError(t *testing.T) {
	heap := gc.NewHeap()
	m := New(heap)
	var out bytes.Buffer
	m.Stdout = &out
	mod := m.NewREPLModule("<repl>")

	fn1, err := compiler.Compile("<repl>", []byte(`1 / 0;`), heap)
	require.NoError(t, err)
	frameBase := len(mod.Frames)
	_, rerr := m.InterpretInModule(fn1, mod)
	require.NotNil(t, rerr)
	// a caller (the real REPL loop) is responsible for truncating back to
	// frameBase after reading the trace; simulate that here.
	mod.Frames = mod.Frames[:frameBase]

	fn2, err := compiler.Compile("<repl>", []byte(`println(1 + 1);`), heap)
	require.NoError(t, err)
	_, rerr = m.InterpretInModule(fn2, mod)
	require.Nil(t, rerr)
	require.Equal(t, "2\n", out.String())
	require.Equal(t, frameBase, len(mod.Frames))
}
