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

// Package bundle implements the lossless decomposition of a branch or leaf
// node into one bundle descriptor plus 32 fragment descriptors, so each
// shard is small enough to gossip independently over the content-addressed
// overlay.
package bundle

import (
	verkle "github.com/portal-network/verkle-bridge"
	"github.com/portal-network/verkle-bridge/wire"
)

// NumFragments is the number of fragments a branch or leaf node is split
// into.
const NumFragments = 32

// FragmentWidth is the number of consecutive child/value positions each
// fragment covers (256 / NumFragments).
const FragmentWidth = 8

func isZeroPoint(p wire.Point) bool {
	var z wire.Point
	z.Identity()
	return p.Equal(&z)
}

func isZeroValue(v verkle.TrieValue) bool {
	return v == verkle.TrieValue{}
}

// BranchFragmentCommitment computes fragment_commitment(f) for a branch:
// the sum, over the 8 child positions the fragment covers, of
// G[8f+k] * hash(child.commitment).
func BranchFragmentCommitment(b *verkle.Branch, fragmentIndex uint8) wire.Point {
	base := int(fragmentIndex) * FragmentWidth
	entries := make([]verkle.Entry, 0, FragmentWidth)
	for k := 0; k < FragmentWidth; k++ {
		childIndex := uint8(base + k)
		hash := b.Child(childIndex).CommitmentHash()
		entries = append(entries, verkle.Entry{Index: childIndex, Value: hash})
	}
	return verkle.GetCRS().CommitSparse(entries)
}

// ProjectBranchBundle builds the bundle descriptor for a branch: its 32
// fragment commitments (zeros elided) plus a placeholder proof. The sum of
// the 32 fragment commitments equals b.Commitment() by linearity, since the
// fragment windows partition the full 0-255 child-index range exactly once.
func ProjectBranchBundle(b *verkle.Branch) wire.BranchBundleNode {
	var commitments [32]wire.Point
	for f := 0; f < NumFragments; f++ {
		commitments[f] = BranchFragmentCommitment(b, uint8(f))
	}
	return wire.BranchBundleNode{
		Fragments: wire.NewSparseVector32(commitments, isZeroPoint),
		Proof:     wire.DummyMultiPointProof(),
	}
}

// ProjectBranchFragment builds one fragment descriptor for a branch: the 8
// child commitments (not hashes) the fragment covers, zeros elided.
func ProjectBranchFragment(b *verkle.Branch, fragmentIndex uint8) wire.BranchFragmentNode {
	var children [8]wire.Point
	base := int(fragmentIndex) * FragmentWidth
	for k := 0; k < FragmentWidth; k++ {
		children[k] = b.Child(uint8(base + k)).Commitment()
	}
	return wire.BranchFragmentNode{
		FragmentIndex: fragmentIndex,
		Children:      wire.NewSparseVector8(children, isZeroPoint),
	}
}

// leafHalfSubIndex maps an absolute suffix (0-255) to its commitment base
// pair index within whichever of c1 (suffixes 0-127) or c2 (128-255) covers
// it, mirroring the leaf's own internal half-commitment indexing. A
// fragment's 8 suffixes never straddle the c1/c2 boundary, since
// FragmentWidth divides halfWidth evenly.
func leafHalfSubIndex(suffix uint8) uint8 {
	if suffix < 128 {
		return suffix
	}
	return suffix - 128
}

// LeafFragmentCommitment computes the commitment of one leaf fragment: the
// suffix commitment restricted to the 8 suffixes the fragment covers, using
// the same (2*sub, 2*sub+1) base pairs c1/c2 use internally. This is
// deliberately not a "group sum of 8 bases at position 8f+k" the way branch
// fragments are: it reuses the leaf's own half-commitment indexing so that,
// within one half, the 16 fragments covering it sum back to exactly c1 (or
// c2) — see DESIGN.md for why the alternative absolute-index reading is not
// used here.
func LeafFragmentCommitment(l *verkle.Leaf, fragmentIndex uint8) wire.Point {
	base := int(fragmentIndex) * FragmentWidth
	entries := make([]verkle.Entry, 0, 2*FragmentWidth)
	for k := 0; k < FragmentWidth; k++ {
		suffix := uint8(base + k)
		value, ok := l.Get(suffix)
		if !ok {
			continue
		}
		low, high := value.Split()
		sub := leafHalfSubIndex(suffix)
		entries = append(entries, verkle.Entry{Index: 2 * sub, Value: low})
		entries = append(entries, verkle.Entry{Index: 2*sub + 1, Value: high})
	}
	return verkle.GetCRS().CommitSparse(entries)
}

// ProjectLeafBundle builds the bundle descriptor for a leaf: its marker,
// stem, 32 fragment commitments (zeros elided), and a placeholder proof.
func ProjectLeafBundle(l *verkle.Leaf) wire.LeafBundleNode {
	var commitments [32]wire.Point
	for f := 0; f < NumFragments; f++ {
		commitments[f] = LeafFragmentCommitment(l, uint8(f))
	}
	return wire.LeafBundleNode{
		Marker:    1,
		Stem:      l.Stem(),
		Fragments: wire.NewSparseVector32(commitments, isZeroPoint),
		Proof:     wire.DummyMultiPointProof(),
	}
}

// ProjectLeafFragment builds one fragment descriptor for a leaf: the 8
// values it covers, zeros elided.
func ProjectLeafFragment(l *verkle.Leaf, fragmentIndex uint8) wire.LeafFragmentNode {
	var values [8]verkle.TrieValue
	base := int(fragmentIndex) * FragmentWidth
	for k := 0; k < FragmentWidth; k++ {
		if v, ok := l.Get(uint8(base + k)); ok {
			values[k] = v
		}
	}
	return wire.LeafFragmentNode{
		FragmentIndex: fragmentIndex,
		Children:      wire.NewSparseVector8(values, isZeroValue),
	}
}
