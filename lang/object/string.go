package object

import "hash/fnv"

// String is an immutable, interned byte string. Two Strings with identical
// content are always the same *String pointer (spec §3.1, §3.2): the
// interning table lives in the gc package, which is the only thing
// allowed to construct one via NewString.
type String struct {
	Header
	Chars string
	Hash  uint64
}

// HashString computes the FNV-1a hash used for interning and table keys.
func HashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// NewString constructs an uninterned String. Only the gc package's Intern
// should call this directly; everywhere else should go through a heap's
// Intern method so identical content shares one object.
func NewString(s string) *String {
	return &String{Chars: s, Hash: HashString(s)}
}

func (s *String) Type() string   { return "string" }
func (s *String) String() string { return s.Chars }
func (s *String) Size() uintptr  { return uintptr(len(s.Chars)) + 24 }
func (s *String) Trace(func(Value)) {
	// Strings hold no Value references.
}

func (s *String) Len() int { return len(s.Chars) }
