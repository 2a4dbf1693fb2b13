package natives

import "github.com/crux-lang/crux/lang/object"

// Install builds the universe functions, the crux:-prefixed native
// modules, and the per-built-in-type method tables, all in one pass so
// they share interned names. The host VM calls this once at startup: the
// universe map is copied into every module's globals, NativeModules and
// Methods are stored directly on the VM for OP_USE_NATIVE/OP_INVOKE to
// consult (spec §3.2, §4.4, §4.5).
func Install(ctx object.NativeContext) (universe map[string]*object.NativeFunction, modules map[string]*object.Table, methods map[string]*object.Table) {
	universe = Universe(ctx)

	modules = map[string]*object.Table{
		"math":    mathModule(ctx),
		"random":  randomModule(ctx),
		"vectors": vectorsModule(ctx),
		"fs":      fsModule(ctx),
		"io":      ioModule(ctx),
		"time":    timeModule(ctx),
		"sys":     sysModule(ctx),
	}

	methods = map[string]*object.Table{
		"string":       stringMethods(ctx),
		"array":        arrayMethods(ctx),
		"table":        tableMethods(ctx),
		"result":       resultMethods(ctx),
		"error":        errorMethods(ctx),
		"random":       randomMethods(ctx),
		"file":         fileMethods(ctx),
		"vec2":         vec2Methods(ctx),
		"vec3":         vec3Methods(ctx),
	}

	return universe, modules, methods
}
