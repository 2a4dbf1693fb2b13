package object

import "os"

// FileMode mirrors the open modes the io/fs natives accept.
type FileMode int

const (
	FileRead FileMode = iota
	FileWrite
	FileAppend
)

// File wraps an OS file handle with the path/mode/position bookkeeping the
// io and fs natives need (spec §3.2). The handle is not traced: it is not
// a Value, and the finalization/close contract is owned by the natives
// package, not the collector (Go's GC, not Crux's, reclaims the os.File).
type File struct {
	Header
	Path   *String
	Mode   FileMode
	Handle *os.File
	Open   bool
	Pos    int64
}

func NewFile(path *String, mode FileMode, h *os.File) *File {
	return &File{Path: path, Mode: mode, Handle: h, Open: h != nil}
}

func (f *File) Type() string   { return "file" }
func (f *File) String() string { return "<file " + f.Path.Chars + ">" }
func (f *File) Size() uintptr  { return 64 }
func (f *File) Trace(mark func(Value)) {
	mark(f.Path)
}

// Close releases the OS handle; safe to call more than once.
func (f *File) Close() error {
	if !f.Open || f.Handle == nil {
		return nil
	}
	f.Open = false
	return f.Handle.Close()
}
