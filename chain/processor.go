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

package chain

import (
	"fmt"

	verkle "github.com/portal-network/verkle-bridge"
)

// BlockProcessor is the EVM executor stand-in: given a block's execution
// payload, it applies the payload's witness to its own state trie and
// reports what changed. Real bytecode execution is explicitly out of
// scope (spec.md Non-goals); only the resulting state writes matter here.
type BlockProcessor interface {
	// ProcessBlock applies payload's witness to the processor's state
	// trie and returns the writes that were applied plus the set of
	// stem-prefix paths (keyed by TriePath.String()) to branches newly
	// created while applying them.
	ProcessBlock(payload ExecutionPayload) (verkle.StateWrites, map[string]struct{}, error)

	// StateTrie returns the trie the processor applies writes to, so the
	// driver can traverse it when building gossip content.
	StateTrie() *verkle.VerkleTrie
}

// FakeBlockProcessor is a BlockProcessor that does not execute EVM
// bytecode at all: it simply applies each payload's pre-computed state
// diff to an owned trie. It exists so cmd/verkle-gossip is runnable
// end-to-end without a real EVM, matching spec.md's explicit scoping-out
// of the executor.
type FakeBlockProcessor struct {
	trie *verkle.VerkleTrie
}

// NewFakeBlockProcessor returns a FakeBlockProcessor starting from an
// empty trie.
func NewFakeBlockProcessor() *FakeBlockProcessor {
	return &FakeBlockProcessor{trie: verkle.New()}
}

// NewFakeBlockProcessorFromTrie returns a FakeBlockProcessor starting from
// an already-populated trie, e.g. one seeded by genesis.GenerateStateDiff.
func NewFakeBlockProcessorFromTrie(trie *verkle.VerkleTrie) *FakeBlockProcessor {
	return &FakeBlockProcessor{trie: trie}
}

func (p *FakeBlockProcessor) StateTrie() *verkle.VerkleTrie {
	return p.trie
}

func (p *FakeBlockProcessor) ProcessBlock(payload ExecutionPayload) (verkle.StateWrites, map[string]struct{}, error) {
	writes := payload.Witness.StateDiff.IntoStateWrites()
	created, err := p.trie.Update(writes)
	if err != nil {
		return nil, nil, fmt.Errorf("chain: applying block %d: %w", payload.BlockNumber, err)
	}

	newBranches := make(map[string]struct{}, len(created))
	for _, path := range created.Paths() {
		newBranches[path.String()] = struct{}{}
	}
	return writes, newBranches, nil
}
