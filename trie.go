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

// VerkleTrie is the root driver (C4): it owns the root branch, dispatches
// batched writes, and exposes the traversal results the bundle/fragment
// projector needs.
type VerkleTrie struct {
	root *Branch
}

// New returns an empty trie with an empty root branch at depth 0.
func New() *VerkleTrie {
	return &VerkleTrie{root: NewBranch(0)}
}

// RootCommitment returns the root branch's commitment point.
func (t *VerkleTrie) RootCommitment() Point {
	return t.root.Commitment()
}

// RootHash returns map_to_scalar_field of the root commitment.
func (t *VerkleTrie) RootHash() Scalar {
	return t.root.CommitmentHash()
}

// RootHashBytes returns the root hash as its canonical big-endian byte
// encoding, the form an execution payload's state root is compared against.
func (t *VerkleTrie) RootHashBytes() [32]byte {
	h := t.RootHash()
	return h.Bytes()
}

// Root returns the root branch, for callers (projection, inspection) that
// need direct node access.
func (t *VerkleTrie) Root() *Branch {
	return t.root
}

// Get looks up key, descending from the root.
func (t *VerkleTrie) Get(key TrieKey) (TrieValue, bool) {
	return t.root.Get(key)
}

// Insert writes a single (key, value) pair unconditionally, bypassing the
// StemStateWrite batching and precondition checks of Update.
func (t *VerkleTrie) Insert(key TrieKey, value TrieValue) {
	t.root.Insert(key, value)
}

// Update applies every StemStateWrite in writes, in order, accumulating the
// stem-prefix path Branch.Update reports for each write that created a new
// branch. When one write's split creates a chain of nested branches, only
// the topmost of them is in the set. A failing write aborts the remaining batch; the trie is
// left in an implementation-defined partial state, per the error-handling
// design — callers must discard it or replay from a known-good snapshot.
func (t *VerkleTrie) Update(writes StateWrites) (TriePathSet, error) {
	created := NewTriePathSet()
	for _, write := range writes {
		path, err := t.root.Update(write)
		if err != nil {
			return nil, err
		}
		if path != nil {
			created.Add(path)
		}
	}
	return created, nil
}

// BranchStep is one hop of a traversal: the branch visited and the child
// index taken out of it.
type BranchStep struct {
	Branch     *Branch
	ChildIndex uint8
}

// PathToLeaf is the result of TraverseToLeaf: every branch hop taken, and
// the leaf reached (nil if none).
type PathToLeaf struct {
	TriePath []BranchStep
	Leaf     *Leaf
}

// TraverseToLeaf walks from the root toward the leaf for stem, recording
// every branch hop taken. It returns ErrNodeNotFound if the walk reaches an
// Empty slot, or a Leaf whose stem does not match (i.e. the stem is not
// present in the trie).
func (t *VerkleTrie) TraverseToLeaf(stem Stem) (PathToLeaf, error) {
	var path PathToLeaf
	branch := t.root
	for {
		index := stem[branch.Depth()]
		child := branch.Child(index)
		path.TriePath = append(path.TriePath, BranchStep{Branch: branch, ChildIndex: index})

		switch n := child.(type) {
		case Empty:
			return path, ErrNodeNotFound
		case *Leaf:
			if n.Stem() != stem {
				return path, ErrNodeNotFound
			}
			path.Leaf = n
			return path, nil
		case *Branch:
			branch = n
		default:
			return path, ErrNodeNotFound
		}
	}
}
