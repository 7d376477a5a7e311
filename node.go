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

// Node is the common interface of the three node variants a branch's child
// slot can hold: an absent Empty sentinel, a Leaf, or another Branch.
type Node interface {
	// Commitment returns this node's current commitment point.
	Commitment() Point
	// CommitmentHash returns map_to_scalar_field(Commitment()), the value
	// a parent branch commits to for this child.
	CommitmentHash() Scalar
}

// Empty is the sentinel stored in a branch's child slots before anything
// has been written there. Its commitment is the group identity and its
// commitment-hash is the zero scalar, by invariant.
type Empty struct{}

func (Empty) Commitment() Point {
	return zeroPoint
}

func (Empty) CommitmentHash() Scalar {
	var z Scalar
	z.SetZero()
	return z
}

var (
	_ Node = Empty{}
	_ Node = (*Leaf)(nil)
	_ Node = (*Branch)(nil)
)
