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

// commitmentCache is the small per-node cache described in C1: a curve
// point plus a lazily computed, memoised scalar-field hash of it. Mutation
// helpers add a delta to the point and drop the memoised hash; Hash()
// recomputes it on next read.
type commitmentCache struct {
	point Point
	hash  *Scalar
}

func newCommitmentCache() commitmentCache {
	return commitmentCache{point: zeroPoint}
}

// Point returns the current commitment.
func (c *commitmentCache) Point() Point {
	return c.point
}

// Hash returns map_to_scalar_field(commitment), computing and memoising it
// on first access after a mutation invalidated the cache.
func (c *commitmentCache) Hash() Scalar {
	if c.hash == nil {
		h := MapToScalarField(&c.point)
		c.hash = &h
	}
	return *c.hash
}

// Add adds delta to the commitment point and invalidates the memoised hash.
// Callers must read Hash() (the "old" value) before calling Add, since Add
// destroys the information needed to compute a before/after delta.
func (c *commitmentCache) Add(delta Point) {
	var sum Point
	sum.Add(&c.point, &delta)
	c.point = sum
	c.hash = nil
}

// Set replaces the commitment outright (used by constructors) and
// invalidates the memoised hash.
func (c *commitmentCache) Set(p Point) {
	c.point = p
	c.hash = nil
}
