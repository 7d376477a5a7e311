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

package main

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	verkle "github.com/portal-network/verkle-bridge"
	"github.com/portal-network/verkle-bridge/bundle"
	"github.com/portal-network/verkle-bridge/chain"
	"github.com/portal-network/verkle-bridge/wire"
	"github.com/portal-network/verkle-bridge/witness"
)

// maxConcurrentGossipCalls bounds how many outbound gossip POSTs run at
// once, the Go analogue of the Rust driver's future::try_join_all over an
// unbounded future list — bounded here so a large slot's fan-out can't
// open thousands of sockets at once.
const maxConcurrentGossipCalls = 16

// Gossiper is the orchestration loop binding the three external
// collaborators to the core trie: for each slot, it fetches the block,
// runs it through the block processor, applies the resulting writes, and
// gossips every touched branch and leaf's bundle and fragments.
type Gossiper struct {
	processor chain.BlockProcessor
	fetcher   chain.BeaconBlockFetcher
	portal    chain.PortalGossipClient
	logger    *zap.Logger
}

// NewGossiper builds a Gossiper from its three collaborators.
func NewGossiper(processor chain.BlockProcessor, fetcher chain.BeaconBlockFetcher, portal chain.PortalGossipClient, logger *zap.Logger) *Gossiper {
	return &Gossiper{processor: processor, fetcher: fetcher, portal: portal, logger: logger}
}

// GossipBlock runs payload through the block processor, applies its writes,
// and gossips the result under payload.BlockHash. It returns WrongStateRootError
// if the resulting trie root does not match payload.StateRoot.
func (g *Gossiper) GossipBlock(ctx context.Context, payload chain.ExecutionPayload) error {
	writes, newBranches, err := g.processor.ProcessBlock(payload)
	if err != nil {
		return fmt.Errorf("processing block %d: %w", payload.BlockNumber, err)
	}

	if got := g.processor.StateTrie().RootHashBytes(); got != payload.StateRoot {
		return &chain.WrongStateRootError{BlockNumber: payload.BlockNumber, Expected: payload.StateRoot, Actual: got}
	}

	g.logger.Info("gossiping block",
		zap.Uint64("blockNumber", payload.BlockNumber),
		zap.Int("stems", len(writes)),
		zap.Int("newBranches", len(newBranches)),
	)
	return g.gossipStateWrites(ctx, payload.BlockHash, writes, newBranches)
}

// GossipGenesis applies diff to the (empty) state trie and gossips every
// stem it touched under blockHash. Unlike GossipBlock, it performs no
// state-root check: genesis has no externally declared root to validate
// against, since the trie is built from this diff in the first place.
func (g *Gossiper) GossipGenesis(ctx context.Context, blockHash [32]byte, diff witness.StateDiff) error {
	payload := chain.ExecutionPayload{
		BlockNumber: genesisBlockNumber,
		BlockHash:   blockHash,
		Witness:     witness.ExecutionWitness{StateDiff: diff},
	}
	writes, newBranches, err := g.processor.ProcessBlock(payload)
	if err != nil {
		return fmt.Errorf("applying genesis: %w", err)
	}
	g.logger.Info("gossiping genesis", zap.Int("stems", len(writes)))
	return g.gossipStateWrites(ctx, blockHash, writes, newBranches)
}

// GossipSlot fetches the beacon block for slot and gossips it. A missed
// slot (nil payload, nil error from the fetcher) is logged and skipped.
func (g *Gossiper) GossipSlot(ctx context.Context, slot uint64) error {
	payload, err := g.fetcher.FetchBeaconBlock(ctx, slot)
	if err != nil {
		return fmt.Errorf("fetching beacon block for slot %d: %w", slot, err)
	}
	if payload == nil {
		g.logger.Info("slot empty, skipping", zap.Uint64("slot", slot))
		return nil
	}
	return g.GossipBlock(ctx, *payload)
}

type branchFragments struct {
	branch   *verkle.Branch
	path     verkle.TriePath
	fragment map[uint8]struct{}
}

type leafFragments struct {
	leaf     *verkle.Leaf
	fragment map[uint8]struct{}
}

// gossipStateWrites walks every stem touched by writes, collects the set of
// branches and leaves it passed through along with which fragment each
// write actually touched, and gossips each one's bundle plus the touched
// fragments; a branch newly created by this batch also gets every fragment
// with a non-zero commitment — mirroring gossip_to_portal.rs's
// gossip_state_writes.
func (g *Gossiper) gossipStateWrites(ctx context.Context, blockHash [32]byte, writes verkle.StateWrites, newBranches map[string]struct{}) error {
	branches := make(map[string]*branchFragments)
	var branchOrder []string

	leaves := make(map[verkle.Stem]*leafFragments)
	var leafOrder []verkle.Stem

	trie := g.processor.StateTrie()

	for _, write := range writes {
		pathToLeaf, err := trie.TraverseToLeaf(write.Stem)
		if err != nil {
			return fmt.Errorf("traversing to leaf for stem %s: %w", write.Stem, err)
		}

		for depth, step := range pathToLeaf.TriePath {
			prefix := verkle.TriePath(write.Stem[:depth]).String()
			bf, ok := branches[prefix]
			if !ok {
				bf = &branchFragments{
					branch:   step.Branch,
					path:     verkle.TriePath(append([]byte(nil), write.Stem[:depth]...)),
					fragment: make(map[uint8]struct{}),
				}
				if _, isNew := newBranches[bf.path.String()]; isNew {
					for f := 0; f < bundle.NumFragments; f++ {
						commitment := bundle.BranchFragmentCommitment(bf.branch, uint8(f))
						if !commitment.IsZero() {
							bf.fragment[uint8(f)] = struct{}{}
						}
					}
				}
				branches[prefix] = bf
				branchOrder = append(branchOrder, prefix)
			}
			bf.fragment[step.ChildIndex/bundle.FragmentWidth] = struct{}{}
		}

		if pathToLeaf.Leaf == nil {
			continue
		}
		lf, ok := leaves[write.Stem]
		if !ok {
			lf = &leafFragments{leaf: pathToLeaf.Leaf, fragment: make(map[uint8]struct{})}
			leaves[write.Stem] = lf
			leafOrder = append(leafOrder, write.Stem)
		}
		for suffix := range write.Writes {
			lf.fragment[suffix/bundle.FragmentWidth] = struct{}{}
		}
	}

	sort.Strings(branchOrder)
	for _, prefix := range branchOrder {
		if err := g.gossipBranch(ctx, blockHash, branches[prefix]); err != nil {
			return err
		}
	}

	sort.Slice(leafOrder, func(i, j int) bool { return leafOrder[i].Less(leafOrder[j]) })
	for _, stem := range leafOrder {
		if err := g.gossipLeaf(ctx, blockHash, leaves[stem]); err != nil {
			return err
		}
	}
	return nil
}

// gossipBranch gossips a branch's bundle descriptor plus every fragment
// selected for it in bf.fragment. blockHash is not used: values are
// gossiped without a WithProof wrapper, so they carry no block linkage;
// bundle values carry DummyMultiPointProof and fragment values no proof.
func (g *Gossiper) gossipBranch(ctx context.Context, blockHash [32]byte, bf *branchFragments) error {
	g.logger.Debug("gossiping branch", zap.String("path", bf.path.String()), zap.Int("fragments", len(bf.fragment)))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentGossipCalls)

	bundleNode := bundle.ProjectBranchBundle(bf.branch)
	bundleKey := wire.NewBundleContentKey(bf.branch.Commitment())
	bundleValue := wire.NewBranchBundleContentValue(bundleNode)
	group.Go(func() error { return g.portal.Gossip(gctx, bundleKey, bundleValue) })

	for f := range bf.fragment {
		f := f
		group.Go(func() error {
			fragmentValue := bundle.ProjectBranchFragment(bf.branch, f)
			fragmentKey := wire.NewBranchFragmentContentKey(bundle.BranchFragmentCommitment(bf.branch, f))
			return g.portal.Gossip(gctx, fragmentKey, wire.NewBranchFragmentContentValue(fragmentValue))
		})
	}
	return group.Wait()
}

// gossipLeaf gossips a leaf's bundle descriptor plus every fragment touched
// by this block's writes. See gossipBranch for why blockHash is unused today.
func (g *Gossiper) gossipLeaf(ctx context.Context, blockHash [32]byte, lf *leafFragments) error {
	g.logger.Debug("gossiping leaf", zap.String("stem", lf.leaf.Stem().String()), zap.Int("fragments", len(lf.fragment)))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentGossipCalls)

	bundleNode := bundle.ProjectLeafBundle(lf.leaf)
	bundleKey := wire.NewBundleContentKey(lf.leaf.Commitment())
	bundleValue := wire.NewLeafBundleContentValue(bundleNode)
	group.Go(func() error { return g.portal.Gossip(gctx, bundleKey, bundleValue) })

	for f := range lf.fragment {
		f := f
		group.Go(func() error {
			fragmentValue := bundle.ProjectLeafFragment(lf.leaf, f)
			fragmentKey := wire.NewLeafFragmentContentKey(lf.leaf.Stem(), bundle.LeafFragmentCommitment(lf.leaf, f))
			return g.portal.Gossip(gctx, fragmentKey, wire.NewLeafFragmentContentValue(fragmentValue))
		})
	}
	return group.Wait()
}
