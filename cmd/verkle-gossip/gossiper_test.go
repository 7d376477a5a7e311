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
	"sync"
	"testing"

	"go.uber.org/zap"

	verkle "github.com/portal-network/verkle-bridge"
	"github.com/portal-network/verkle-bridge/chain"
	"github.com/portal-network/verkle-bridge/wire"
	"github.com/portal-network/verkle-bridge/witness"
)

type recordingGossipClient struct {
	mu   sync.Mutex
	keys []wire.ContentKey
}

func (c *recordingGossipClient) Gossip(ctx context.Context, key wire.ContentKey, value wire.ContentValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
	return nil
}

func (c *recordingGossipClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}

type fixedBeaconFetcher struct {
	payloads map[uint64]*chain.ExecutionPayload
}

func (f *fixedBeaconFetcher) FetchBeaconBlock(ctx context.Context, slot uint64) (*chain.ExecutionPayload, error) {
	return f.payloads[slot], nil
}

func TestGossipGenesisReachesEveryTouchedStemAndBranch(t *testing.T) {
	var stemA, stemB verkle.Stem
	stemA[0] = 0x01
	stemB[0] = 0x01
	stemB[1] = 0x02
	valueA := verkle.TrieValue{0x01}
	valueB := verkle.TrieValue{0x02}

	diff := witness.StateDiff{
		{Stem: stemA, SuffixDiffs: []witness.SuffixStateDiff{{Suffix: 0, NewValue: &valueA}}},
		{Stem: stemB, SuffixDiffs: []witness.SuffixStateDiff{{Suffix: 0, NewValue: &valueB}}},
	}

	processor := chain.NewFakeBlockProcessor()
	portal := &recordingGossipClient{}
	logger := zap.NewNop()
	gossiper := NewGossiper(processor, &fixedBeaconFetcher{}, portal, logger)

	if err := gossiper.GossipGenesis(context.Background(), [32]byte{0xAA}, diff); err != nil {
		t.Fatalf("GossipGenesis: %v", err)
	}

	// Two leaves plus at least one branch bundle, each gossiped at least once.
	if portal.count() < 3 {
		t.Fatalf("expected at least 3 gossip calls (2 leaf bundles + 1 branch bundle), got %d", portal.count())
	}
}

func TestGossipSlotSkipsMissedSlot(t *testing.T) {
	processor := chain.NewFakeBlockProcessor()
	portal := &recordingGossipClient{}
	fetcher := &fixedBeaconFetcher{payloads: map[uint64]*chain.ExecutionPayload{}}
	gossiper := NewGossiper(processor, fetcher, portal, zap.NewNop())

	if err := gossiper.GossipSlot(context.Background(), 5); err != nil {
		t.Fatalf("GossipSlot: %v", err)
	}
	if portal.count() != 0 {
		t.Fatalf("expected no gossip calls for a missed slot, got %d", portal.count())
	}
}

func TestGossipSlotDetectsWrongStateRoot(t *testing.T) {
	processor := chain.NewFakeBlockProcessor()
	portal := &recordingGossipClient{}

	var stem verkle.Stem
	stem[0] = 0x03
	value := verkle.TrieValue{0x09}
	payload := &chain.ExecutionPayload{
		BlockNumber: 1,
		StateRoot:   [32]byte{0xFF}, // deliberately wrong
		Witness: witness.ExecutionWitness{
			StateDiff: witness.StateDiff{
				{Stem: stem, SuffixDiffs: []witness.SuffixStateDiff{{Suffix: 0, NewValue: &value}}},
			},
		},
	}
	fetcher := &fixedBeaconFetcher{payloads: map[uint64]*chain.ExecutionPayload{1: payload}}
	gossiper := NewGossiper(processor, fetcher, portal, zap.NewNop())

	err := gossiper.GossipSlot(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected a wrong-state-root error")
	}
}
