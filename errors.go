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

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned by traversal when it expected to find a child
// but the slot holds Empty.
var ErrNodeNotFound = errors.New("verkle: node not found")

// UnexpectedStemError is returned when a write targets a leaf whose stem
// does not match the write's stem.
type UnexpectedStemError struct {
	Expected Stem
	Actual   Stem
}

func (e *UnexpectedStemError) Error() string {
	return fmt.Sprintf("verkle: unexpected stem: expected %s, got %s", e.Expected, e.Actual)
}

// WrongOldValueError is returned when a write's expected-old-value
// precondition does not match the leaf's current value at that suffix.
type WrongOldValueError struct {
	Stem     Stem
	Suffix   uint8
	Expected *TrieValue
	Actual   *TrieValue
}

func (e *WrongOldValueError) Error() string {
	return fmt.Sprintf("verkle: wrong old value at stem %s suffix %d: expected %v, got %v",
		e.Stem, e.Suffix, e.Expected, e.Actual)
}
