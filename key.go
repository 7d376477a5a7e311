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
	"bytes"
	"fmt"

	vcrypto "github.com/portal-network/verkle-bridge/crypto"
)

// StemSize is the length in bytes of a trie stem.
const StemSize = 31

// Stem identifies an extension (leaf). It is the first 31 bytes of a
// TrieKey.
type Stem [StemSize]byte

func (s Stem) String() string {
	return fmt.Sprintf("%x", s[:])
}

// Less reports whether s sorts before other in natural byte order, the
// ordering genesis expansion and gossip dedup rely on.
func (s Stem) Less(other Stem) bool {
	return bytes.Compare(s[:], other[:]) < 0
}

// AsScalar interprets the stem as a little-endian integer, the form used as
// the G[1] basis scalar of a leaf's outer commitment.
func (s Stem) AsScalar() Scalar {
	var out Scalar
	vcrypto.FromLEBytes(&out, s[:])
	return out
}

// TrieKey is a full 32-byte trie key: 31 stem bytes followed by one suffix
// byte.
type TrieKey [32]byte

// Stem returns the key's first 31 bytes.
func (k TrieKey) Stem() Stem {
	var s Stem
	copy(s[:], k[:StemSize])
	return s
}

// Suffix returns the key's last byte, the index of the leaf slot it
// addresses.
func (k TrieKey) Suffix() uint8 {
	return k[StemSize]
}

// NewTrieKey builds a TrieKey from a stem and a suffix byte.
func NewTrieKey(stem Stem, suffix uint8) TrieKey {
	var k TrieKey
	copy(k[:StemSize], stem[:])
	k[StemSize] = suffix
	return k
}

// TrieValue is the 32-byte value stored at a trie key.
type TrieValue [32]byte

// leafMarkerBit is set in the low half of a split value so that, combined
// with a leaf's own marker base, an all-zero value is still distinguishable
// from an absent one at the commitment level.
const leafMarkerBit = 1 << 7

// Split divides a value into the (low, high) scalar pair committed to by a
// leaf's c1/c2 sub-commitments: low carries the 16 low-order bytes plus the
// leaf-marker bit, high carries the 16 high-order bytes.
func (v TrieValue) Split() (low, high Scalar) {
	var lowBytes [16]byte
	copy(lowBytes[:], v[:16])
	lowBytes[15] |= leafMarkerBit

	vcrypto.FromLEBytes(&low, lowBytes[:])
	vcrypto.FromLEBytes(&high, v[16:32])
	return low, high
}
