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
	"math/bits"

	"github.com/karalabe/ssz"

	verkle "github.com/portal-network/verkle-bridge"
)

// pointBytes and pointFromBytes give Point a fixed 32-byte SSZ
// representation. Banderwagon elements serialize to a compressed point;
// decoding validates the point is on-curve and in the prime-order subgroup.
func pointBytes(p Point) [32]byte {
	var out [32]byte
	copy(out[:], p.Bytes())
	return out
}

func pointFromBytes(b [32]byte) (Point, error) {
	var p Point
	if err := p.SetBytes(b[:]); err != nil {
		return Point{}, fmt.Errorf("wire: invalid point encoding: %w", err)
	}
	return p, nil
}

// SizeSSZ reports the encoded size of a branch fragment: one index byte, an
// 8-bit presence bitmap, and up to 8 32-byte commitments.
func (n *BranchFragmentNode) SizeSSZ(siz *ssz.Sizer) uint32 {
	return 1 + 1 + uint32(len(n.Children.Items))*32
}

func (n *BranchFragmentNode) DefineSSZ(codec *ssz.Codec) { defineBranchFragmentNode(codec, n) }

func defineBranchFragmentNode(codec *ssz.Codec, n *BranchFragmentNode) {
	ssz.DefineUint8(codec, &n.FragmentIndex)
	ssz.DefineUint8(codec, &n.Children.Bitmap)
	// On decode, Items starts nil: size it from the just-decoded bitmap
	// before consuming the item fields, or the remaining fields (e.g. a
	// bundle's trailing proof) read out of alignment.
	if n.Children.Items == nil {
		n.Children.Items = make([]Point, bits.OnesCount8(n.Children.Bitmap))
	}
	for i := range n.Children.Items {
		b := pointBytes(n.Children.Items[i])
		ssz.DefineStaticBytes(codec, &b)
		p, _ := pointFromBytes(b)
		n.Children.Items[i] = p
	}
}

func (n *LeafFragmentNode) SizeSSZ(siz *ssz.Sizer) uint32 {
	return 1 + 1 + uint32(len(n.Children.Items))*32
}

func (n *LeafFragmentNode) DefineSSZ(codec *ssz.Codec) { defineLeafFragmentNode(codec, n) }

func defineLeafFragmentNode(codec *ssz.Codec, n *LeafFragmentNode) {
	ssz.DefineUint8(codec, &n.FragmentIndex)
	ssz.DefineUint8(codec, &n.Children.Bitmap)
	if n.Children.Items == nil {
		n.Children.Items = make([]verkle.TrieValue, bits.OnesCount8(n.Children.Bitmap))
	}
	for i := range n.Children.Items {
		v := n.Children.Items[i]
		ssz.DefineStaticBytes(codec, &v)
		n.Children.Items[i] = v
	}
}

// bundleBitmapSize is the byte length of a 32-bit sparse-vector presence
// bitmap.
const bundleBitmapSize = 4

// popCount32 counts the set bits across a 4-byte presence bitmap, used to
// size a bundle's Items slice from its bitmap on decode.
func popCount32(bitmap [bundleBitmapSize]byte) int {
	count := 0
	for _, b := range bitmap {
		count += bits.OnesCount8(b)
	}
	return count
}

func (n *BranchBundleNode) SizeSSZ(siz *ssz.Sizer) uint32 {
	return bundleBitmapSize + uint32(len(n.Fragments.Items))*32 + multiPointProofSize
}

func (n *BranchBundleNode) DefineSSZ(codec *ssz.Codec) { defineBranchBundleNode(codec, n) }

func defineBranchBundleNode(codec *ssz.Codec, n *BranchBundleNode) {
	var bitmap [bundleBitmapSize]byte
	copy(bitmap[:], n.Fragments.Bitmap)
	ssz.DefineStaticBytes(codec, &bitmap)
	n.Fragments.Bitmap = append([]byte(nil), bitmap[:]...)
	if n.Fragments.Items == nil {
		n.Fragments.Items = make([]Point, popCount32(bitmap))
	}
	for i := range n.Fragments.Items {
		b := pointBytes(n.Fragments.Items[i])
		ssz.DefineStaticBytes(codec, &b)
		p, _ := pointFromBytes(b)
		n.Fragments.Items[i] = p
	}
	defineMultiPointProof(codec, &n.Proof)
}

func (n *LeafBundleNode) SizeSSZ(siz *ssz.Sizer) uint32 {
	return 8 + 31 + bundleBitmapSize + uint32(len(n.Fragments.Items))*32 + multiPointProofSize
}

func (n *LeafBundleNode) DefineSSZ(codec *ssz.Codec) { defineLeafBundleNode(codec, n) }

func defineLeafBundleNode(codec *ssz.Codec, n *LeafBundleNode) {
	ssz.DefineUint64(codec, &n.Marker)
	stem := n.Stem
	ssz.DefineStaticBytes(codec, &stem)
	n.Stem = stem
	var bitmap [bundleBitmapSize]byte
	copy(bitmap[:], n.Fragments.Bitmap)
	ssz.DefineStaticBytes(codec, &bitmap)
	n.Fragments.Bitmap = append([]byte(nil), bitmap[:]...)
	if n.Fragments.Items == nil {
		n.Fragments.Items = make([]Point, popCount32(bitmap))
	}
	for i := range n.Fragments.Items {
		b := pointBytes(n.Fragments.Items[i])
		ssz.DefineStaticBytes(codec, &b)
		p, _ := pointFromBytes(b)
		n.Fragments.Items[i] = p
	}
	defineMultiPointProof(codec, &n.Proof)
}

// multiPointProofSize is the encoded size of a MultiPointProof: 2*8
// round-commitment points, one final-evaluation scalar, and one G_x point.
const multiPointProofSize = 2*ipaProofWidth*32 + 32 + 32

func defineMultiPointProof(codec *ssz.Codec, p *MultiPointProof) {
	for i := range p.IpaProof.CL {
		b := pointBytes(p.IpaProof.CL[i])
		ssz.DefineStaticBytes(codec, &b)
		pt, _ := pointFromBytes(b)
		p.IpaProof.CL[i] = pt
	}
	for i := range p.IpaProof.CR {
		b := pointBytes(p.IpaProof.CR[i])
		ssz.DefineStaticBytes(codec, &b)
		pt, _ := pointFromBytes(b)
		p.IpaProof.CR[i] = pt
	}
	fe := p.IpaProof.FinalEvaluation.Bytes()
	ssz.DefineStaticBytes(codec, &fe)
	p.IpaProof.FinalEvaluation.SetBytes(fe[:])

	gx := pointBytes(p.GX)
	ssz.DefineStaticBytes(codec, &gx)
	pt, _ := pointFromBytes(gx)
	p.GX = pt
}

// EncodeToBytes serialises an SSZ object using karalabe/ssz's streaming
// codec.
func EncodeToBytes(obj ssz.Object) ([]byte, error) {
	return ssz.EncodeToBytes(obj)
}

// DecodeFromBytes deserialises an SSZ object into obj.
func DecodeFromBytes(data []byte, obj ssz.Object) error {
	return ssz.DecodeFromBytes(data, obj)
}

// SizeSSZ reports a ContentKey's encoded size: one kind byte plus the
// active variant's fields.
func (k *ContentKey) SizeSSZ(siz *ssz.Sizer) uint32 {
	switch k.Kind {
	case ContentKeyKindBundle, ContentKeyKindBranchFragment:
		return 1 + 32
	case ContentKeyKindLeafFragment:
		return 1 + 31 + 32
	default:
		return 1
	}
}

// DefineSSZ encodes ContentKey as a tagged union: a one-byte discriminant
// followed by exactly the active variant's fields, matching spec.md §4.7's
// content key tagged union.
func (k *ContentKey) DefineSSZ(codec *ssz.Codec) {
	kind := uint8(k.Kind)
	ssz.DefineUint8(codec, &kind)
	k.Kind = ContentKeyKind(kind)

	switch k.Kind {
	case ContentKeyKindBundle:
		b := pointBytes(k.Bundle.Commitment)
		ssz.DefineStaticBytes(codec, &b)
		p, _ := pointFromBytes(b)
		k.Bundle.Commitment = p
	case ContentKeyKindBranchFragment:
		b := pointBytes(k.BranchFragment.Commitment)
		ssz.DefineStaticBytes(codec, &b)
		p, _ := pointFromBytes(b)
		k.BranchFragment.Commitment = p
	case ContentKeyKindLeafFragment:
		stem := k.LeafFragment.Stem
		ssz.DefineStaticBytes(codec, &stem)
		k.LeafFragment.Stem = stem
		b := pointBytes(k.LeafFragment.Commitment)
		ssz.DefineStaticBytes(codec, &b)
		p, _ := pointFromBytes(b)
		k.LeafFragment.Commitment = p
	}
}

// EncodeContentKey SSZ-encodes key.
func EncodeContentKey(key ContentKey) ([]byte, error) {
	return EncodeToBytes(&key)
}

// SizeSSZ reports a ContentValue's encoded size: one kind byte plus the
// active node descriptor's size.
func (v *ContentValue) SizeSSZ(siz *ssz.Sizer) uint32 {
	switch v.Kind {
	case ContentValueKindBranchBundle:
		return 1 + v.BranchBundle.SizeSSZ(siz)
	case ContentValueKindBranchFragment:
		return 1 + v.BranchFragment.SizeSSZ(siz)
	case ContentValueKindLeafBundle:
		return 1 + v.LeafBundle.SizeSSZ(siz)
	case ContentValueKindLeafFragment:
		return 1 + v.LeafFragment.SizeSSZ(siz)
	default:
		return 1
	}
}

// DefineSSZ encodes ContentValue as a tagged union: a one-byte discriminant
// followed by exactly the active node descriptor's fields.
func (v *ContentValue) DefineSSZ(codec *ssz.Codec) {
	kind := uint8(v.Kind)
	ssz.DefineUint8(codec, &kind)
	v.Kind = ContentValueKind(kind)

	switch v.Kind {
	case ContentValueKindBranchBundle:
		defineBranchBundleNode(codec, &v.BranchBundle)
	case ContentValueKindBranchFragment:
		defineBranchFragmentNode(codec, &v.BranchFragment)
	case ContentValueKindLeafBundle:
		defineLeafBundleNode(codec, &v.LeafBundle)
	case ContentValueKindLeafFragment:
		defineLeafFragmentNode(codec, &v.LeafFragment)
	}
}

// EncodeContentValue SSZ-encodes value.
func EncodeContentValue(value ContentValue) ([]byte, error) {
	return EncodeToBytes(&value)
}
