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

import vcrypto "github.com/portal-network/verkle-bridge/crypto"

// Scalar is an element of the Banderwagon scalar field.
type Scalar = vcrypto.Fr

// Point is an element of the Banderwagon prime-order group.
type Point = vcrypto.Point

// Entry is one non-zero coordinate of a sparse vector being committed via
// CRS.CommitSparse.
type Entry = vcrypto.Entry

// MapToScalarField hashes a commitment point down to a scalar. The zero
// point always hashes to the zero scalar, matching invariant 2 in the
// component design.
func MapToScalarField(p *Point) Scalar {
	var s Scalar
	if p.IsZero() {
		s.SetZero()
		return s
	}
	vcrypto.ToFr(&s, p)
	return s
}

// zeroPoint is the group identity, returned as the commitment of the Empty
// sentinel node.
var zeroPoint = vcrypto.Identity()

// Identity returns the group identity point, the starting accumulator for
// any multi-scalar commitment sum.
func Identity() Point {
	return vcrypto.Identity()
}

// PointsEqual compares two commitments by value. It exists because Point's
// Equal method takes a pointer receiver, which a non-addressable function
// result (e.g. the return of Commitment()) cannot satisfy directly.
func PointsEqual(a, b Point) bool {
	return a.Equal(&b)
}
