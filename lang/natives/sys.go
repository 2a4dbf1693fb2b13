package natives

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/crux-lang/crux/lang/object"
)

// sysModule builds crux:sys: process argv/env access and exit, the
// narrow slice of host interaction the spec's CLI front-end delegates to
// script code rather than building in itself.
func sysModule(ctx object.NativeContext) *object.Table {
	t := object.NewTable(4)

	args := make([]object.Value, 0, len(os.Args))
	for _, a := range os.Args {
		args = append(args, ctx.Intern(a))
	}
	t.Set(ctx.Intern("args"), ctx.Track(object.NewStaticArray(args)))

	t.Set(ctx.Intern("env"), object.NewNativeInfallibleFunction(ctx.Intern("env"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		name, ok := args[0].(*object.String)
		if !ok {
			return object.NilValue
		}
		v, ok := os.LookupEnv(name.Chars)
		if !ok {
			return object.NilValue
		}
		return ctx.Intern(v)
	}))
	t.Set(ctx.Intern("exit"), object.NewNativeInfallibleFunction(ctx.Intern("exit"), 1, func(ctx object.NativeContext, args []object.Value) object.Value {
		code, _ := args[0].(object.Int)
		os.Exit(int(code))
		return object.NilValue
	}))
	t.Set(ctx.Intern("uuid"), object.NewNativeInfallibleFunction(ctx.Intern("uuid"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(uuid.NewString())
	}))
	t.Set(ctx.Intern("describe"), object.NewNativeInfallibleFunction(ctx.Intern("describe"), 0, func(ctx object.NativeContext, args []object.Value) object.Value {
		return ctx.Intern(describeEnv())
	}))

	return t
}

// describeEnv dumps the process environment as YAML, for scripts that want
// a human-readable debug snapshot of their host rather than querying one
// variable at a time via env().
func describeEnv() string {
	vars := make(map[string]string, len(os.Environ()))
	for _, kv := range os.Environ() {
		k, v, found := strings.Cut(kv, "=")
		if found {
			vars[k] = v
		}
	}
	out, err := yaml.Marshal(vars)
	if err != nil {
		return ""
	}
	return string(out)
}
