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

// Reserved leaf basis indices, per the data model's "reserved leaf bases":
// the outer commitment spends G[0..4) on the marker, stem, and the two
// half-commitment hashes.
const (
	leafMarkerIndex = 0
	leafStemIndex   = 1
	leafC1Index     = 2
	leafC2Index     = 3

	// halfWidth is the number of suffixes covered by each of c1 (low
	// half) and c2 (high half).
	halfWidth = 128
)

// Leaf is an extension node: it holds one stem and up to 256 values, split
// across two half-commitments c1 (suffixes 0-127) and c2 (suffixes
// 128-255), whose hashes feed the outer commitment alongside the marker and
// stem bases.
type Leaf struct {
	marker     uint64
	stem       Stem
	c1         commitmentCache
	c2         commitmentCache
	commitment commitmentCache
	children   [256]*TrieValue
}

// NewLeaf constructs an empty leaf for stem. Both half-commitments hash to
// zero, so the initial outer commitment is just the marker and stem terms.
func NewLeaf(stem Stem) *Leaf {
	l := &Leaf{
		marker:     1,
		stem:       stem,
		c1:         newCommitmentCache(),
		c2:         newCommitmentCache(),
		commitment: newCommitmentCache(),
	}
	crs := GetCRS()
	var markerScalar Scalar
	markerScalar.SetOne()
	stemScalar := stem.AsScalar()

	markerTerm := crs.CommitSingle(leafMarkerIndex, &markerScalar)
	stemTerm := crs.CommitSingle(leafStemIndex, &stemScalar)
	var outer Point
	outer.Add(&markerTerm, &stemTerm)
	l.commitment.Set(outer)
	return l
}

func (l *Leaf) Stem() Stem {
	return l.stem
}

func (l *Leaf) Commitment() Point {
	return l.commitment.Point()
}

func (l *Leaf) CommitmentHash() Scalar {
	return l.commitment.Hash()
}

// Get returns the value at suffix, if any.
func (l *Leaf) Get(suffix uint8) (TrieValue, bool) {
	v := l.children[suffix]
	if v == nil {
		return TrieValue{}, false
	}
	return *v, true
}

// half returns the commitment cache and the 0-127 sub-index covering
// suffix.
func (l *Leaf) half(suffix uint8) (*commitmentCache, uint8, uint8) {
	if suffix < halfWidth {
		return &l.c1, suffix, leafC1Index
	}
	return &l.c2, suffix - halfWidth, leafC2Index
}

// Set stores value at suffix, maintaining both the affected half-commitment
// and, through it, the outer commitment. The half-commitment must be
// updated (and its hash re-sampled) before the outer delta is computed, or
// the outer commitment will be built from a stale hash.
func (l *Leaf) Set(suffix uint8, value TrieValue) {
	newLow, newHigh := value.Split()

	var oldLow, oldHigh Scalar
	if old := l.children[suffix]; old != nil {
		oldLow, oldHigh = old.Split()
	} else {
		oldLow.SetZero()
		oldHigh.SetZero()
	}

	half, subIndex, outerIndex := l.half(suffix)
	oldHalfHash := half.Hash()

	crs := GetCRS()
	var deltaLow, deltaHigh Scalar
	deltaLow.Sub(&newLow, &oldLow)
	deltaHigh.Sub(&newHigh, &oldHigh)

	lowTerm := crs.CommitSingle(2*subIndex, &deltaLow)
	highTerm := crs.CommitSingle(2*subIndex+1, &deltaHigh)
	var halfDelta Point
	halfDelta.Add(&lowTerm, &highTerm)
	half.Add(halfDelta)

	newHalfHash := half.Hash()
	var hashDelta Scalar
	hashDelta.Sub(&newHalfHash, &oldHalfHash)
	outerDelta := crs.CommitSingle(outerIndex, &hashDelta)
	l.commitment.Add(outerDelta)

	stored := value
	l.children[suffix] = &stored
}

// Update applies a batched set of writes destined for this leaf. It fails
// with UnexpectedStemError if write.Stem does not match this leaf's stem,
// and with WrongOldValueError if any write's ExpectedOld precondition does
// not match the leaf's current value.
func (l *Leaf) Update(write StemStateWrite) error {
	if write.Stem != l.stem {
		return &UnexpectedStemError{Expected: l.stem, Actual: write.Stem}
	}
	for suffix, w := range write.Writes {
		if w.ExpectedOld != nil {
			current, ok := l.Get(suffix)
			if !ok || current != *w.ExpectedOld {
				var actual *TrieValue
				if ok {
					actual = &current
				}
				return &WrongOldValueError{
					Stem:     l.stem,
					Suffix:   suffix,
					Expected: w.ExpectedOld,
					Actual:   actual,
				}
			}
		}
		l.Set(suffix, w.New)
	}
	return nil
}
