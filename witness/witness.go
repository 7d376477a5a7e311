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

// Package witness decodes the execution-layer payload's state diff and
// verkle proof, the two pieces of §4.6/§4.7 that travel inside a block's
// execution witness.
package witness

import (
	verkle "github.com/portal-network/verkle-bridge"
	"github.com/portal-network/verkle-bridge/wire"
)

// SuffixStateDiff is one suffix's before/after value within a stem. Both
// fields are optional: CurrentValue is nil when the slot was previously
// unset, NewValue is nil for a diff entry that only asserts the prior value
// (no write actually happened at that suffix).
type SuffixStateDiff struct {
	Suffix       uint8             `json:"suffix"`
	CurrentValue *verkle.TrieValue `json:"currentValue"`
	NewValue     *verkle.TrieValue `json:"newValue"`
}

// StemStateDiff batches every SuffixStateDiff for one stem.
type StemStateDiff struct {
	Stem        verkle.Stem       `json:"stem"`
	SuffixDiffs []SuffixStateDiff `json:"suffixDiffs"`
}

// IntoStemStateWrite converts a StemStateDiff into the StemStateWrite the
// trie's Update expects, dropping any suffix diff whose NewValue is nil —
// those entries exist only to assert a precondition, not to write anything.
func (d StemStateDiff) IntoStemStateWrite() verkle.StemStateWrite {
	writes := make(map[uint8]verkle.SuffixWrite, len(d.SuffixDiffs))
	for _, sd := range d.SuffixDiffs {
		if sd.NewValue == nil {
			continue
		}
		writes[sd.Suffix] = verkle.SuffixWrite{
			ExpectedOld: sd.CurrentValue,
			New:         *sd.NewValue,
		}
	}
	return verkle.StemStateWrite{Stem: d.Stem, Writes: writes}
}

// StateDiff is the ordered list of per-stem diffs carried by an execution
// witness, stem-sorted so that root hashes compare byte-exactly against a
// reference implementation.
type StateDiff []StemStateDiff

// IntoStateWrites converts every entry to a StemStateWrite, preserving
// order.
func (d StateDiff) IntoStateWrites() verkle.StateWrites {
	out := make(verkle.StateWrites, len(d))
	for i, sd := range d {
		out[i] = sd.IntoStemStateWrite()
	}
	return out
}

// VerkleProof is the opaque state-level multiproof an execution witness
// carries. The core never computes it; an external IPA prover fills it in,
// and the core only reserves the structural fields.
type VerkleProof struct {
	OtherStems            []verkle.Stem `json:"otherStems"`
	DepthExtensionPresent []byte        `json:"depthExtensionPresent"`
	CommitmentsByPath     []wire.Point  `json:"commitmentsByPath"`
	D                     wire.Point    `json:"d"`
	IpaProof              wire.IpaProof `json:"ipaProof"`
}

// ExecutionWitness is the full witness payload attached to a block: the
// state diff to apply, and the proof that the resulting root matches the
// block header's declared state root.
type ExecutionWitness struct {
	StateDiff   StateDiff   `json:"stateDiff"`
	VerkleProof VerkleProof `json:"verkleProof"`
}
