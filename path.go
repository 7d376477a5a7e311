// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package verkle

import "fmt"

// TriePath is a sequence of stem bytes from the root identifying a node's
// position, e.g. the stem-prefix leading to a newly created branch. It has
// value semantics so it can be used as a map key (via its String form) or
// compared directly.
type TriePath []byte

// Equal reports whether p and other identify the same position.
func (p TriePath) Equal(other TriePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p TriePath) String() string {
	return fmt.Sprintf("%x", []byte(p))
}

// TriePathSet is a set of TriePath values, the return type of
// VerkleTrie.Update for the newly-created branch paths the bundle/fragment
// projector's caller needs.
type TriePathSet map[string]TriePath

// NewTriePathSet builds an empty set.
func NewTriePathSet() TriePathSet {
	return make(TriePathSet)
}

// Add inserts p into the set.
func (s TriePathSet) Add(p TriePath) {
	cp := make(TriePath, len(p))
	copy(cp, p)
	s[string(cp)] = cp
}

// Contains reports whether p is in the set.
func (s TriePathSet) Contains(p TriePath) bool {
	_, ok := s[string(p)]
	return ok
}

// Paths returns the set's members in no particular order.
func (s TriePathSet) Paths() []TriePath {
	out := make([]TriePath, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	return out
}
