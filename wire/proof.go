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

import vcrypto "github.com/portal-network/verkle-bridge/crypto"

// Point is the commitment type shared by every wire descriptor.
type Point = vcrypto.Point

// ipaProofWidth is the number of rounds folded into an inner-product
// argument proof over a 256-wide vector (log2(256) = 8).
const ipaProofWidth = 8

// IpaProof is the opaque structural shape of an inner-product argument
// proof: two vectors of 8 round commitments and a final scalar evaluation.
// The core never computes these fields; it only reserves them so an
// external IPA prover has somewhere to put its output.
type IpaProof struct {
	CL              [ipaProofWidth]Point `json:"cl"`
	CR              [ipaProofWidth]Point `json:"cr"`
	FinalEvaluation vcrypto.Fr           `json:"finalEvaluation"`
}

// MultiPointProof is the opaque multi-point IPA proof attached to a bundle
// descriptor, produced by the external prover named in the Non-goals.
type MultiPointProof struct {
	IpaProof IpaProof `json:"ipaProof"`
	GX       Point    `json:"gX"`
}

// BundleProof is an alias kept distinct from MultiPointProof at the type
// level so call sites read as "the proof attached to a bundle" even though
// the wire shape is identical.
type BundleProof = MultiPointProof

// DummyMultiPointProof returns a zero-filled MultiPointProof with the
// correct structural shape, used wherever no live prover is attached.
func DummyMultiPointProof() MultiPointProof {
	return MultiPointProof{}
}

// TrieProof is the opaque state-level multiproof carried by a WithProof
// content value, supplied by the external prover.
type TrieProof = MultiPointProof
