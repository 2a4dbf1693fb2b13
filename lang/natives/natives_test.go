package natives_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crux-lang/crux/lang/compiler"
	"github.com/crux-lang/crux/lang/gc"
	"github.com/crux-lang/crux/lang/vm"
)

// run compiles and interprets src as a fresh file module, capturing stdout.
// Lives in natives_test (not vm_test) so it exercises the natives package
// strictly through the public use/print surface, the way a Crux script
// would.
func run(t *testing.T, src string) string {
	t.Helper()
	heap := gc.NewHeap()
	fn, err := compiler.Compile("test.crux", []byte(src), heap)
	require.NoError(t, err)

	var out bytes.Buffer
	m := vm.New(heap)
	m.Stdout = &out

	_, mod, rerr := m.Interpret(fn, "test.crux")
	require.Nil(t, rerr, "%v", rerr)
	require.Equal(t, vm.StateLoaded, mod.State)
	return out.String()
}

func TestMathModule(t *testing.T) {
	out := run(t, `use sqrt, pow from "crux:math"; println(sqrt(16.0)); println(pow(2.0, 10.0));`)
	require.Equal(t, "Ok(4)\nOk(1024)\n", out)
}

func TestStringMethods(t *testing.T) {
	out := run(t, `
		let s = "  Hello World  ";
		println(s.trim().lower());
		println(s.trim().contains("World").unwrap());
	`)
	require.Equal(t, "hello world\ntrue\n", out)
}

func TestArrayPushLenPop(t *testing.T) {
	out := run(t, `
		let a = [1, 2, 3];
		a.push(4);
		println(a.len());
		println(a.pop().unwrap());
		println(a.len());
	`)
	require.Equal(t, "4\n4\n3\n", out)
}

func TestArrayPopOnEmptyIsErr(t *testing.T) {
	out := run(t, `
		let a = [];
		let r = a.pop();
		println(r.is_ok());
	`)
	require.Equal(t, "false\n", out)
}

func TestTableHasDelete(t *testing.T) {
	out := run(t, `
		let t = {"a": 1, "b": 2};
		println(t.has("a").unwrap());
		t.delete("a");
		println(t.has("a").unwrap());
		println(t.len());
	`)
	require.Equal(t, "true\nfalse\n1\n", out)
}

func TestRandomIntIsWithinRange(t *testing.T) {
	out := run(t, `
		use default from "crux:random";
		let n = default.int(0, 10).unwrap();
		println(n >= 0 and n < 10);
	`)
	require.Equal(t, "true\n", out)
}

func TestRandomIntRejectsBadRange(t *testing.T) {
	out := run(t, `
		use default from "crux:random";
		let r = default.int(10, 0);
		println(r.is_ok());
	`)
	require.Equal(t, "false\n", out)
}

func TestVectorsAddAndLength(t *testing.T) {
	out := run(t, `
		use vec2 from "crux:vectors";
		let a = vec2(3.0, 0.0).unwrap();
		let b = vec2(0.0, 4.0).unwrap();
		let c = a.add(b).unwrap();
		println(c.length());
	`)
	require.Equal(t, "5\n", out)
}

func TestVectorsVec2ArithmeticAndGeometry(t *testing.T) {
	out := run(t, `
		use vec2 from "crux:vectors";
		let a = vec2(3.0, 4.0).unwrap();
		let b = vec2(1.0, 0.0).unwrap();
		println(a.subtract(b).unwrap().x());
		println(a.multiply(2.0).unwrap().y());
		println(a.dot(b).unwrap());
		println(a.distance(b).unwrap());
		println(a.equals(vec2(3.0, 4.0).unwrap()).unwrap());
	`)
	require.Equal(t, "2\n8\n3\n4.47213595499958\ntrue\n", out)
}

func TestVectorsVec2DivideByZeroIsMathError(t *testing.T) {
	out := run(t, `
		use vec2 from "crux:vectors";
		let a = vec2(1.0, 1.0).unwrap();
		let r = a.divide(0.0);
		println(r.is_err());
	`)
	require.Equal(t, "true\n", out)
}

func TestVectorsVec2NormalizeZeroVectorIsMathError(t *testing.T) {
	out := run(t, `
		use vec2 from "crux:vectors";
		let z = vec2(0.0, 0.0).unwrap();
		let r = z.normalize();
		println(r.is_err());
	`)
	require.Equal(t, "true\n", out)
}

func TestVectorsVec3CrossAndNormalize(t *testing.T) {
	out := run(t, `
		use vec3 from "crux:vectors";
		let x = vec3(1.0, 0.0, 0.0).unwrap();
		let y = vec3(0.0, 1.0, 0.0).unwrap();
		let c = x.cross(y).unwrap();
		println(c.z());
		let n = vec3(0.0, 0.0, 5.0).unwrap().normalize().unwrap();
		println(n.z());
	`)
	require.Equal(t, "1\n1\n", out)
}

func TestFsExists(t *testing.T) {
	out := run(t, `
		use exists from "crux:fs";
		println(exists("/does/not/exist/crux-test"));
	`)
	require.Equal(t, "false\n", out)
}

func TestSysUuidIsUnique(t *testing.T) {
	out := run(t, `
		use uuid from "crux:sys";
		let a = uuid();
		let b = uuid();
		println(a == b);
		println(a.len() > 0);
	`)
	require.Equal(t, "false\ntrue\n", out)
}

func TestUniverseLenTypeofAssert(t *testing.T) {
	out := run(t, `
		println(len("hello"));
		println(typeof(1));
		println(typeof("s"));
		assert(1 + 1 == 2, "math broke");
		println("ok");
	`)
	require.Equal(t, "Ok(5)\nint\nstring\nok\n", out)
}

func TestAssertFailureIsPanic(t *testing.T) {
	heap := gc.NewHeap()
	fn, cerr := compiler.Compile("test.crux", []byte(`assert(false, "nope");`), heap)
	require.NoError(t, cerr)

	m := vm.New(heap)
	var out bytes.Buffer
	m.Stdout = &out
	_, mod, rerr := m.Interpret(fn, "test.crux")
	require.NotNil(t, rerr)
	require.Equal(t, vm.StateError, mod.State)
	require.Contains(t, rerr.String(), "nope")
}
