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

package wire

import (
	verkle "github.com/portal-network/verkle-bridge"
)

// BranchBundleNode is the bundle descriptor for a branch node: its 32
// fragment commitments (sparse, zeros elided) plus the external prover's
// opaque bundle proof.
type BranchBundleNode struct {
	Fragments SparseVector32[Point] `json:"fragments"`
	Proof     BundleProof           `json:"proof"`
}

// BranchFragmentNode is one of a branch's 32 fragments: the 8 child
// commitments it covers (sparse, zeros elided).
type BranchFragmentNode struct {
	FragmentIndex uint8                `json:"fragmentIndex"`
	Children      SparseVector8[Point] `json:"children"`
}

// LeafBundleNode is the bundle descriptor for a leaf node: its marker,
// stem, 32 fragment commitments, and the external prover's bundle proof.
type LeafBundleNode struct {
	Marker    uint64                `json:"marker"`
	Stem      verkle.Stem           `json:"stem"`
	Fragments SparseVector32[Point] `json:"fragments"`
	Proof     BundleProof           `json:"proof"`
}

// LeafFragmentNode is one of a leaf's 32 fragments: the 8 values it covers
// (sparse, zeros elided). The stem is not repeated here — it is already
// carried by the content key addressing this fragment.
type LeafFragmentNode struct {
	FragmentIndex uint8                           `json:"fragmentIndex"`
	Children      SparseVector8[verkle.TrieValue] `json:"children"`
}

// WithProof wraps any content value with the execution-layer context a
// requester needs to validate it against a specific block: the block it was
// produced under, an optional path (used for newly-created branches), and
// an opaque state-level multiproof supplied by the external prover.
type WithProof[T any] struct {
	BlockHash [32]byte     `json:"blockHash"`
	Path      *verkle.TriePath `json:"path,omitempty"`
	TrieProof TrieProof    `json:"trieProof"`
	Value     T            `json:"value"`
}

// ContentValueKind discriminates the tagged union ContentValue represents.
type ContentValueKind uint8

const (
	ContentValueKindBranchBundle ContentValueKind = iota
	ContentValueKindBranchFragment
	ContentValueKindLeafBundle
	ContentValueKindLeafFragment
)

// ContentValue is the tagged union of every gossiped node descriptor,
// optionally wrapped WithProof by the caller before it goes on the wire.
type ContentValue struct {
	Kind           ContentValueKind
	BranchBundle   BranchBundleNode
	BranchFragment BranchFragmentNode
	LeafBundle     LeafBundleNode
	LeafFragment   LeafFragmentNode
}

func NewBranchBundleContentValue(v BranchBundleNode) ContentValue {
	return ContentValue{Kind: ContentValueKindBranchBundle, BranchBundle: v}
}

func NewBranchFragmentContentValue(v BranchFragmentNode) ContentValue {
	return ContentValue{Kind: ContentValueKindBranchFragment, BranchFragment: v}
}

func NewLeafBundleContentValue(v LeafBundleNode) ContentValue {
	return ContentValue{Kind: ContentValueKindLeafBundle, LeafBundle: v}
}

func NewLeafFragmentContentValue(v LeafFragmentNode) ContentValue {
	return ContentValue{Kind: ContentValueKindLeafFragment, LeafFragment: v}
}
