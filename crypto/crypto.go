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

// Package crypto wraps the Banderwagon group and scalar field used by the
// verkle commitment scheme, plus a CRS of precomputed generators that lets
// callers commit to a single index in O(1) instead of recomputing a
// multi-scalar multiplication over the full width every time.
package crypto

import (
	"errors"

	"github.com/crate-crypto/go-ipa/bandersnatch/fr"
	"github.com/crate-crypto/go-ipa/banderwagon"
	"github.com/crate-crypto/go-ipa/ipa"
)

type (
	Fr    = fr.Element
	Point = banderwagon.Element
)

// NodeWidth is the number of children of a branch node / values of a leaf
// node, and therefore the number of generators in the CRS.
const NodeWidth = 256

func ToFr(fr *Fr, p *Point) {
	p.MapToScalarField(fr)
}

func FromLEBytes(fr *Fr, data []byte) error {
	if len(data) > 32 {
		return errors.New("data is too long")
	}
	var aligned [32]byte
	copy(aligned[:], data)
	fr.SetBytesLE(aligned[:])
	return nil
}

// Identity returns the group identity element (the commitment of an all-zero
// vector).
func Identity() Point {
	var p Point
	p.Identity()
	return p
}

// CRS holds the NodeWidth fixed generators used to commit to a branch's
// children or a leaf's values. Generator i is defined as the commitment of
// the i-th standard basis vector, so committing to a single index reduces
// to one scalar multiplication instead of a width-256 linear combination.
type CRS struct {
	generators [NodeWidth]Point
}

// NewCRS derives the NodeWidth generators from the IPA proving parameters.
// Computing it is O(NodeWidth^2) scalar multiplications and is meant to run
// once at process startup.
func NewCRS() (*CRS, error) {
	conf, err := ipa.NewIPASettings()
	if err != nil {
		return nil, err
	}
	crs := new(CRS)
	var basis [NodeWidth]Fr
	for i := 0; i < NodeWidth; i++ {
		if i > 0 {
			basis[i-1].SetZero()
		}
		basis[i].SetOne()
		crs.generators[i] = conf.Commit(basis[:])
	}
	return crs, nil
}

// Generator returns the fixed generator for index i, 0 <= i < NodeWidth.
func (c *CRS) Generator(i uint8) *Point {
	return &c.generators[i]
}

// CommitSingle returns scalar * Generator(index).
func (c *CRS) CommitSingle(index uint8, scalar *Fr) Point {
	var out Point
	out.ScalarMul(&c.generators[index], scalar)
	return out
}

// Entry is one non-zero coordinate of a sparse vector being committed.
type Entry struct {
	Index uint8
	Value Fr
}

// CommitSparse sums CommitSingle over every entry. Entries absent from the
// slice are implicitly zero and contribute nothing, matching the semantics
// of a dense multi-scalar commitment over a mostly-empty vector.
func (c *CRS) CommitSparse(entries []Entry) Point {
	out := Identity()
	for _, e := range entries {
		term := c.CommitSingle(e.Index, &e.Value)
		out.Add(&out, &term)
	}
	return out
}
