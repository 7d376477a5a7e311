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
	"fmt"

	verkle "github.com/portal-network/verkle-bridge"
)

// ContentKeyKind discriminates the tagged union ContentKey represents.
type ContentKeyKind uint8

const (
	ContentKeyKindBundle ContentKeyKind = iota
	ContentKeyKindBranchFragment
	ContentKeyKindLeafFragment
)

func (k ContentKeyKind) String() string {
	switch k {
	case ContentKeyKindBundle:
		return "bundle"
	case ContentKeyKindBranchFragment:
		return "branch-fragment"
	case ContentKeyKindLeafFragment:
		return "leaf-fragment"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// BundleKey addresses a bundle descriptor (branch or leaf) by its outer
// commitment.
type BundleKey struct {
	Commitment Point
}

// BranchFragmentKey addresses one fragment of a branch bundle by the
// fragment's own commitment; the fragment index lives in the value, not the
// key.
type BranchFragmentKey struct {
	Commitment Point
}

// LeafFragmentKey addresses one fragment of a leaf bundle; leaf fragments
// additionally carry the stem, since a leaf's commitment alone does not
// determine its stem the way a branch's does for its children.
type LeafFragmentKey struct {
	Stem       verkle.Stem
	Commitment Point
}

// ContentKey is the tagged union of every addressable content type in the
// gossip overlay.
type ContentKey struct {
	Kind           ContentKeyKind
	Bundle         BundleKey
	BranchFragment BranchFragmentKey
	LeafFragment   LeafFragmentKey
}

// NewBundleContentKey builds a ContentKey addressing a bundle.
func NewBundleContentKey(commitment Point) ContentKey {
	return ContentKey{Kind: ContentKeyKindBundle, Bundle: BundleKey{Commitment: commitment}}
}

// NewBranchFragmentContentKey builds a ContentKey addressing a branch
// fragment.
func NewBranchFragmentContentKey(commitment Point) ContentKey {
	return ContentKey{Kind: ContentKeyKindBranchFragment, BranchFragment: BranchFragmentKey{Commitment: commitment}}
}

// NewLeafFragmentContentKey builds a ContentKey addressing a leaf fragment.
func NewLeafFragmentContentKey(stem verkle.Stem, commitment Point) ContentKey {
	return ContentKey{Kind: ContentKeyKindLeafFragment, LeafFragment: LeafFragmentKey{Stem: stem, Commitment: commitment}}
}
