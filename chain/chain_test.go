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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	verkle "github.com/portal-network/verkle-bridge"
	"github.com/portal-network/verkle-bridge/wire"
	"github.com/portal-network/verkle-bridge/witness"
)

func TestFakeBlockProcessorAppliesWritesAndReportsNewBranches(t *testing.T) {
	p := NewFakeBlockProcessor()

	var stemA, stemB verkle.Stem
	stemA[0] = 0x01
	stemB[0] = 0x01
	stemB[1] = 0x02
	valueA := verkle.TrieValue{0x42}
	valueB := verkle.TrieValue{0x43}

	payload := ExecutionPayload{
		BlockNumber: 1,
		Witness: witness.ExecutionWitness{
			StateDiff: witness.StateDiff{
				{Stem: stemA, SuffixDiffs: []witness.SuffixStateDiff{{Suffix: 0, NewValue: &valueA}}},
				{Stem: stemB, SuffixDiffs: []witness.SuffixStateDiff{{Suffix: 0, NewValue: &valueB}}},
			},
		},
	}

	writes, newBranches, err := p.ProcessBlock(payload)
	if err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}
	if len(writes) != 2 {
		t.Fatalf("expected 2 stem writes, got %d", len(writes))
	}
	if len(newBranches) != 1 {
		t.Fatalf("expected exactly 1 new branch from the diverging-stem split, got %d", len(newBranches))
	}

	got, ok := p.StateTrie().Get(verkle.NewTrieKey(stemA, 0))
	if !ok || got != valueA {
		t.Fatalf("value not applied to state trie")
	}
}

func TestHTTPBeaconBlockFetcherDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verkle_bridge/v1/beacon_block/7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(ExecutionPayload{BlockNumber: 7})
	}))
	defer server.Close()

	fetcher := NewHTTPBeaconBlockFetcher(server.URL)
	payload, err := fetcher.FetchBeaconBlock(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchBeaconBlock: %v", err)
	}
	if payload == nil || payload.BlockNumber != 7 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestHTTPBeaconBlockFetcherMissedSlot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPBeaconBlockFetcher(server.URL)
	payload, err := fetcher.FetchBeaconBlock(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchBeaconBlock: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload for missed slot")
	}
}

func TestHTTPPortalGossipClientPostsContent(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body gossipRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if len(body.ContentKey) == 0 || len(body.ContentValue) == 0 {
			t.Errorf("expected non-empty key and value bytes")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPPortalGossipClient(server.URL)
	key := wire.NewBundleContentKey(verkle.Identity())
	value := wire.NewBranchBundleContentValue(wire.BranchBundleNode{Proof: wire.DummyMultiPointProof()})

	if err := client.Gossip(context.Background(), key, value); err != nil {
		t.Fatalf("Gossip: %v", err)
	}
	if gotPath != "/verkle_bridge/v1/gossip" {
		t.Fatalf("unexpected request path: %s", gotPath)
	}
}
