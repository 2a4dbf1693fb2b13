package vm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/crux-lang/crux/lang/compiler"
	"github.com/crux-lang/crux/lang/object"
)

// opUseModule implements OP_USE_MODULE: resolve path relative to the
// importing module's own path, load (or fetch from cache) the target
// module, and push its Publics table for OP_FINISH_USE to consume (spec
// §4.5).
func (v *VM) opUseModule(m *ModuleRecord, pathVal object.Value) *object.Error {
	pathStr := pathVal.(*object.String).Chars
	resolved := filepath.Clean(filepath.Join(filepath.Dir(m.Path), pathStr))
	sub, err := v.loadModule(resolved)
	if err != nil {
		return err
	}
	return m.Push(sub.Publics)
}

// opUseNative implements OP_USE_NATIVE: a `crux:`-prefixed path names one
// of the VM's registered native modules directly, no file I/O involved.
func (v *VM) opUseNative(m *ModuleRecord, pathVal object.Value) *object.Error {
	pathStr := pathVal.(*object.String).Chars
	name := strings.TrimPrefix(pathStr, "crux:")
	tbl, ok := v.NativeModules[name]
	if !ok {
		return newErr("unknown native module 'crux:"+name+"'", object.ErrImport)
	}
	return m.Push(tbl)
}

// opFinishUse implements OP_FINISH_USE: pop the table OP_USE_MODULE/NATIVE
// pushed, then for each imported name bind its exported value under its
// (possibly aliased) local name in the importing module's globals (spec
// §4.5 steps 8-10).
func (v *VM) opFinishUse(m *ModuleRecord) *object.Error {
	tblVal, err := m.Pop()
	if err != nil {
		return err
	}
	tbl, ok := tblVal.(*object.Table)
	if !ok {
		return newErr("'use' source did not produce a module table", object.ErrRuntime)
	}

	count := int(m.readByte())
	nameIdx := make([]int, count)
	for i := range nameIdx {
		nameIdx[i] = int(m.readByte())
	}
	aliasIdx := make([]int, count)
	for i := range aliasIdx {
		aliasIdx[i] = int(m.readByte())
	}

	for i := 0; i < count; i++ {
		name := m.readConstant(nameIdx[i]).(*object.String)
		alias := m.readConstant(aliasIdx[i]).(*object.String)
		val, ok := tbl.Get(name)
		if !ok {
			return newErr("module does not export '"+name.Chars+"'", object.ErrImport)
		}
		m.Globals.Set(alias, val)
	}
	return nil
}

// loadModule fetches path from the module cache, or compiles and runs it
// top-level for the first time, per the lifecycle and cycle-detection
// rules of spec §4.5: Loading -> Loaded | Error, tracked via ImportStack.
func (v *VM) loadModule(path string) (*ModuleRecord, *object.Error) {
	if existing, ok := v.ModuleCache[path]; ok {
		switch existing.State {
		case StateLoaded:
			return existing, nil
		case StateLoading:
			return nil, newErr("import cycle detected at '"+path+"'", object.ErrImport)
		default:
			return nil, newErr("module '"+path+"' previously failed to load", object.ErrImport)
		}
	}
	if len(v.ImportStack) >= MaxImportDepth {
		return nil, newErr("import depth exceeded", object.ErrImportExtent)
	}

	src, ioerr := os.ReadFile(path)
	if ioerr != nil {
		return nil, newErr("cannot read module '"+path+"': "+ioerr.Error(), object.ErrIO)
	}

	sub := NewModuleRecord(path, nil)
	v.installUniverse(sub)
	v.ModuleCache[path] = sub
	v.ImportStack = append(v.ImportStack, path)
	defer func() { v.ImportStack = v.ImportStack[:len(v.ImportStack)-1] }()

	fn, cerr := compiler.Compile(path, src, v.Heap)
	if cerr != nil {
		sub.State = StateError
		return nil, newErr(cerr.Error(), object.ErrSyntax)
	}

	if _, runErr := v.runTopLevel(sub, fn); runErr != nil {
		sub.State = StateError
		return nil, runErr
	}
	sub.State = StateLoaded
	return sub, nil
}
