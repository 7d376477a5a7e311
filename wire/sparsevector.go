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

// Package wire holds the gossip-facing SSZ content types: content keys,
// content values, and the sparse-vector encoding shared by bundle and
// fragment descriptors.
package wire

import (
	"fmt"

	"github.com/prysmaticlabs/go-bitfield"
)

// SparseVector32 holds up to 32 present items out of a logical 32-slot
// vector, encoded on the wire as a 32-bit bitmap of present positions
// followed by the present items in order, per the wire-type design: zero
// entries are elided rather than transmitted.
type SparseVector32[T any] struct {
	Bitmap bitfield.Bitvector32
	Items  []T
}

// NewSparseVector32 builds a sparse vector from a logical 32-slot array,
// treating the caller-supplied isZero predicate as the "absent" test.
func NewSparseVector32[T any](slots [32]T, isZero func(T) bool) SparseVector32[T] {
	sv := SparseVector32[T]{Bitmap: bitfield.NewBitvector32()}
	for i, v := range slots {
		if isZero(v) {
			continue
		}
		sv.Bitmap.SetBitAt(uint64(i), true)
		sv.Items = append(sv.Items, v)
	}
	return sv
}

// Expand reconstructs the logical 32-slot array, filling absent positions
// with zero.
func (sv SparseVector32[T]) Expand() ([32]T, error) {
	var out [32]T
	next := 0
	for i := 0; i < 32; i++ {
		if !sv.Bitmap.BitAt(uint64(i)) {
			continue
		}
		if next >= len(sv.Items) {
			return out, fmt.Errorf("wire: sparse vector bitmap set bit %d but ran out of items", i)
		}
		out[i] = sv.Items[next]
		next++
	}
	if next != len(sv.Items) {
		return out, fmt.Errorf("wire: sparse vector has %d items but bitmap only accounts for %d", len(sv.Items), next)
	}
	return out, nil
}

// SparseVector8 is the fragment-level analogue of SparseVector32, covering
// the 8 consecutive child positions one fragment owns. An 8-bit bitmap fits
// in a single byte, so it is encoded directly rather than through
// go-bitfield's fixed-width vector types.
type SparseVector8[T any] struct {
	Bitmap uint8
	Items  []T
}

func NewSparseVector8[T any](slots [8]T, isZero func(T) bool) SparseVector8[T] {
	var sv SparseVector8[T]
	for i, v := range slots {
		if isZero(v) {
			continue
		}
		sv.Bitmap |= 1 << uint(i)
		sv.Items = append(sv.Items, v)
	}
	return sv
}

func (sv SparseVector8[T]) Expand() ([8]T, error) {
	var out [8]T
	next := 0
	for i := 0; i < 8; i++ {
		if sv.Bitmap&(1<<uint(i)) == 0 {
			continue
		}
		if next >= len(sv.Items) {
			return out, fmt.Errorf("wire: sparse vector bitmap set bit %d but ran out of items", i)
		}
		out[i] = sv.Items[next]
		next++
	}
	if next != len(sv.Items) {
		return out, fmt.Errorf("wire: sparse vector has %d items but bitmap only accounts for %d", len(sv.Items), next)
	}
	return out, nil
}
