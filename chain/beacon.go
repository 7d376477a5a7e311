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
	"fmt"
	"net/http"
	"time"
)

// requestTimeout bounds every outbound HTTP call this package makes,
// mirroring the 60-second client timeout gossip_to_portal.rs configures on
// its jsonrpsee HTTP client.
const requestTimeout = 60 * time.Second

// BeaconBlockFetcher retrieves the execution payload carried by the beacon
// block at a given slot. A nil payload with a nil error means the slot was
// empty (no block proposed), matching the Rust fetcher's "missed slot"
// handling in gossip_to_portal.rs.
type BeaconBlockFetcher interface {
	FetchBeaconBlock(ctx context.Context, slot uint64) (*ExecutionPayload, error)
}

// HTTPBeaconBlockFetcher fetches execution payloads from a beacon node's
// REST API over plain HTTP. It is not a full beacon API client — it knows
// exactly one endpoint shape, enough to drive this bridge.
type HTTPBeaconBlockFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBeaconBlockFetcher returns a fetcher issuing requests against
// baseURL, e.g. "http://localhost:9596".
func NewHTTPBeaconBlockFetcher(baseURL string) *HTTPBeaconBlockFetcher {
	return &HTTPBeaconBlockFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// FetchBeaconBlock issues "GET {baseURL}/verkle_bridge/v1/beacon_block/{slot}"
// and decodes the response body as an ExecutionPayload. A 404 response is
// treated as a missed slot (nil payload, nil error); any other non-2xx
// status is returned as an error.
func (f *HTTPBeaconBlockFetcher) FetchBeaconBlock(ctx context.Context, slot uint64) (*ExecutionPayload, error) {
	url := fmt.Sprintf("%s/verkle_bridge/v1/beacon_block/%d", f.baseURL, slot)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("chain: building beacon request for slot %d: %w", slot, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chain: fetching beacon block for slot %d: %w", slot, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chain: beacon node returned status %d for slot %d", resp.StatusCode, slot)
	}

	var payload ExecutionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("chain: decoding beacon block for slot %d: %w", slot, err)
	}
	return &payload, nil
}
