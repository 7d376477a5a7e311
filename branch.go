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

// MaxDepth is the greatest depth a branch may legally sit at. Stems are 31
// bytes, so no legitimate trie ever needs a branch at depth 31.
const MaxDepth = 30

// Branch is an internal node with up to 256 children, indexed by the stem
// byte at its depth.
type Branch struct {
	depth      uint8
	commitment commitmentCache
	children   [256]Node
}

// NewBranch constructs an empty branch at depth. It panics if depth exceeds
// MaxDepth: going deeper is a logic error, since stems are only 31 bytes
// long.
func NewBranch(depth uint8) *Branch {
	if depth > MaxDepth {
		panic("verkle: branch depth exceeds MaxDepth")
	}
	b := &Branch{depth: depth, commitment: newCommitmentCache()}
	for i := range b.children {
		b.children[i] = Empty{}
	}
	return b
}

func (b *Branch) Depth() uint8 {
	return b.depth
}

func (b *Branch) Commitment() Point {
	return b.commitment.Point()
}

func (b *Branch) CommitmentHash() Scalar {
	return b.commitment.Hash()
}

// Child returns the node stored at the given child index.
func (b *Branch) Child(index uint8) Node {
	return b.children[index]
}

// Get recurses on children[key[depth]]. Reaching a leaf only yields a value
// when the leaf's stem matches the key's stem; Empty always yields nothing.
func (b *Branch) Get(key TrieKey) (TrieValue, bool) {
	child := b.children[key[b.depth]]
	switch n := child.(type) {
	case Empty:
		return TrieValue{}, false
	case *Leaf:
		if n.Stem() != key.Stem() {
			return TrieValue{}, false
		}
		return n.Get(key.Suffix())
	case *Branch:
		return n.Get(key)
	default:
		return TrieValue{}, false
	}
}

// updateChild replaces the child at index with newChild, applying the
// incremental commitment delta G[index] * (newHash - oldHash) to this
// branch's own commitment. oldHash must have been sampled before the
// child's mutation took place.
func (b *Branch) updateChild(index uint8, oldHash Scalar, newChild Node) {
	b.children[index] = newChild
	newHash := newChild.CommitmentHash()
	var delta Scalar
	delta.Sub(&newHash, &oldHash)
	term := GetCRS().CommitSingle(index, &delta)
	b.commitment.Add(term)
}

// Insert writes value at key, creating leaves and splitting branches as
// needed. It mirrors Update but is unconditional: it applies a single
// (key, value) pair with no stem-write batching or old-value checks, the
// shape used directly by tests and by callers building a trie outside the
// StateWrites pipeline.
func (b *Branch) Insert(key TrieKey, value TrieValue) {
	index := key[b.depth]
	oldHash := b.children[index].CommitmentHash()

	switch child := b.children[index].(type) {
	case Empty:
		leaf := NewLeaf(key.Stem())
		leaf.Set(key.Suffix(), value)
		b.updateChild(index, oldHash, leaf)

	case *Leaf:
		if child.Stem() == key.Stem() {
			child.Set(key.Suffix(), value)
			b.updateChild(index, oldHash, child)
			return
		}
		newBranch := splitLeaf(b.depth+1, child)
		newBranch.Insert(key, value)
		b.updateChild(index, oldHash, newBranch)

	case *Branch:
		child.Insert(key, value)
		b.updateChild(index, oldHash, child)
	}
}

// splitLeaf builds the new branch created when a write's stem diverges from
// an existing leaf's stem at depth: the old leaf is reseated at the child
// slot given by its own stem byte at the new depth.
func splitLeaf(depth uint8, oldLeaf *Leaf) *Branch {
	newBranch := NewBranch(depth)
	j := oldLeaf.Stem()[depth]
	oldHash := newBranch.children[j].CommitmentHash()
	newBranch.updateChild(j, oldHash, oldLeaf)
	return newBranch
}

// Update applies a batched stem write, descending to (and, if necessary,
// creating) the leaf for write.Stem. It returns the stem-prefix path to a
// newly created branch iff this call created one at this position or a
// descendant's; a nil path with a nil error means no new branch was
// created. When a split creates a chain of nested branches, the path of the
// topmost one is returned.
func (b *Branch) Update(write StemStateWrite) (TriePath, error) {
	index := write.Stem[b.depth]
	oldHash := b.children[index].CommitmentHash()

	switch child := b.children[index].(type) {
	case Empty:
		leaf := NewLeaf(write.Stem)
		if err := leaf.Update(write); err != nil {
			return nil, err
		}
		b.updateChild(index, oldHash, leaf)
		return nil, nil

	case *Leaf:
		if child.Stem() == write.Stem {
			if err := child.Update(write); err != nil {
				return nil, err
			}
			b.updateChild(index, oldHash, child)
			return nil, nil
		}
		newDepth := b.depth + 1
		newBranch := splitLeaf(newDepth, child)
		createdPath, err := newBranch.Update(write)
		if err != nil {
			return nil, err
		}
		b.updateChild(index, oldHash, newBranch)
		path := stemPrefix(write.Stem, newDepth)
		_ = createdPath
		return path, nil

	case *Branch:
		createdPath, err := child.Update(write)
		if err != nil {
			return nil, err
		}
		b.updateChild(index, oldHash, child)
		return createdPath, nil
	}
	return nil, nil
}

// stemPrefix returns the first n bytes of stem, the path-to-new-branch
// representation the driver collects to drive fragment gossip.
func stemPrefix(stem Stem, n uint8) TriePath {
	p := make(TriePath, n)
	copy(p, stem[:n])
	return p
}
