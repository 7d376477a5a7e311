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

package genesis

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// jsonFile mirrors the on-disk genesis document: an object with a single
// "alloc" key mapping hex addresses to account allocations.
type jsonFile struct {
	Alloc map[string]jsonAccount `json:"alloc"`
}

type jsonAccount struct {
	Balance *hexU256          `json:"balance"`
	Nonce   *hexU256          `json:"nonce,omitempty"`
	Code    *hexBytes         `json:"code,omitempty"`
	Storage map[string]string `json:"storage,omitempty"`
}

// ReadGenesis parses a genesis JSON document into a Config. Unknown top- and
// account-level fields are rejected, matching the external-interface
// contract.
func ReadGenesis(data []byte) (Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var file jsonFile
	if err := dec.Decode(&file); err != nil {
		return Config{}, fmt.Errorf("genesis: parse: %w", err)
	}
	if file.Alloc == nil {
		return Config{}, fmt.Errorf("genesis: missing alloc")
	}

	cfg := Config{Alloc: make(map[Address]AccountAlloc, len(file.Alloc))}
	for addrHex, acct := range file.Alloc {
		addr, err := parseAddress(addrHex)
		if err != nil {
			return Config{}, fmt.Errorf("genesis: account %q: %w", addrHex, err)
		}
		if acct.Balance == nil {
			return Config{}, fmt.Errorf("genesis: account %s: missing balance", addrHex)
		}

		alloc := AccountAlloc{Balance: acct.Balance.Int}
		if acct.Nonce != nil {
			n := acct.Nonce.Int.Uint64()
			alloc.Nonce = &n
		}
		if acct.Code != nil {
			alloc.Code = acct.Code.bytes
		}
		if len(acct.Storage) > 0 {
			alloc.Storage = make(map[uint256.Int][32]byte, len(acct.Storage))
			for slotHex, valueHex := range acct.Storage {
				slot, err := parseU256(slotHex)
				if err != nil {
					return Config{}, fmt.Errorf("genesis: account %s: storage slot %q: %w", addrHex, slotHex, err)
				}
				value, err := parseHash(valueHex)
				if err != nil {
					return Config{}, fmt.Errorf("genesis: account %s: storage value %q: %w", addrHex, slotHex, err)
				}
				alloc.Storage[slot] = value
			}
		}
		cfg.Alloc[addr] = alloc
	}
	return cfg, nil
}

func parseAddress(s string) (Address, error) {
	raw, err := decodeHexPrefixed(s)
	if err != nil {
		return Address{}, err
	}
	if len(raw) != 20 {
		return Address{}, fmt.Errorf("address must be 20 bytes, got %d", len(raw))
	}
	var addr Address
	copy(addr[:], raw)
	return addr, nil
}

func parseHash(s string) ([32]byte, error) {
	raw, err := decodeHexPrefixed(s)
	if err != nil {
		return [32]byte{}, err
	}
	if len(raw) != 32 {
		return [32]byte{}, fmt.Errorf("value must be 32 bytes, got %d", len(raw))
	}
	var out [32]byte
	copy(out[:], raw)
	return out, nil
}

func parseU256(s string) (uint256.Int, error) {
	raw, err := decodeHexPrefixed(s)
	if err != nil {
		return uint256.Int{}, err
	}
	var out uint256.Int
	out.SetBytes(raw)
	return out, nil
}

func decodeHexPrefixed(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// hexU256 decodes a JSON hex string into a U256. A bare JSON number is
// rejected.
type hexU256 struct{ *uint256.Int }

func (h *hexU256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := parseU256(s)
	if err != nil {
		return err
	}
	h.Int = &n
	return nil
}

// hexBytes decodes an arbitrary-length JSON hex string.
type hexBytes struct{ bytes []byte }

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := decodeHexPrefixed(s)
	if err != nil {
		return err
	}
	h.bytes = raw
	return nil
}
