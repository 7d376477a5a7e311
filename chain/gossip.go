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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/portal-network/verkle-bridge/wire"
)

// PortalGossipClient offers one piece of content to the Portal Network
// gossip overlay. The bundled implementation is a narrow stand-in for the
// real overlay transport, which is out of scope per spec.md §1.
type PortalGossipClient interface {
	Gossip(ctx context.Context, key wire.ContentKey, value wire.ContentValue) error
}

// HTTPPortalGossipClient offers content by POSTing its SSZ encoding to a
// Portal client's HTTP gossip endpoint, mirroring the jsonrpsee HTTP client
// gossip_to_portal.rs uses to reach the real overlay network.
type HTTPPortalGossipClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPortalGossipClient returns a client posting gossip requests
// against baseURL, e.g. "http://localhost:8545".
func NewHTTPPortalGossipClient(baseURL string) *HTTPPortalGossipClient {
	return &HTTPPortalGossipClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Gossip SSZ-encodes key and value and POSTs them as one JSON object with
// "contentKey" and "contentValue" fields to "{baseURL}/verkle_bridge/v1/gossip".
func (c *HTTPPortalGossipClient) Gossip(ctx context.Context, key wire.ContentKey, value wire.ContentValue) error {
	keyBytes, err := wire.EncodeContentKey(key)
	if err != nil {
		return fmt.Errorf("chain: encoding gossip content key: %w", err)
	}
	valueBytes, err := wire.EncodeContentValue(value)
	if err != nil {
		return fmt.Errorf("chain: encoding gossip content value: %w", err)
	}

	body := gossipRequest{ContentKey: keyBytes, ContentValue: valueBytes}
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("chain: marshaling gossip request: %w", err)
	}

	url := c.baseURL + "/verkle_bridge/v1/gossip"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("chain: building gossip request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("chain: posting gossip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chain: portal client returned status %d", resp.StatusCode)
	}
	return nil
}

// gossipRequest is the wire shape this bridge POSTs to a Portal client's
// HTTP gossip endpoint. Both fields are opaque SSZ bytes, which
// encoding/json renders as base64 strings.
type gossipRequest struct {
	ContentKey   []byte `json:"contentKey"`
	ContentValue []byte `json:"contentValue"`
}
