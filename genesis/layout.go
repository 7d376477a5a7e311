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

// Package genesis implements the deterministic mapping from an account
// allocation table to the flat, stem-sorted list of trie writes that seeds
// a fresh trie (C6).
package genesis

import (
	"fmt"

	"github.com/holiman/uint256"

	verkle "github.com/portal-network/verkle-bridge"
)

// Address is a 20-byte execution-layer account address.
type Address [20]byte

// Genesis account storage key layout. Every account's metadata and storage
// slots live under one stem derived from the address; the reserved suffix
// constants below match the account-header layout a reference verkle state
// tree uses.
const (
	versionSuffix  uint8 = 0
	balanceSuffix  uint8 = 1
	nonceSuffix    uint8 = 2
	codeHashSuffix uint8 = 3
	codeSizeSuffix uint8 = 4

	// storageSuffixBase and storageSuffixCount bound the suffix window
	// reserved for storage slots, immediately after the header fields.
	storageSuffixBase  = 64
	storageSuffixCount = 96

	// codeSuffixBase and codeSuffixCount bound the suffix window reserved
	// for code chunks, disjoint from the storage window so an account
	// with both code and storage can never have a chunk and a slot alias
	// the same suffix.
	codeSuffixBase  = storageSuffixBase + storageSuffixCount
	codeSuffixCount = 256 - codeSuffixBase

	// codeChunkSize is the number of code bytes packed into one 32-byte
	// trie value (31 code bytes plus a 1-byte PUSHDATA continuation
	// marker).
	codeChunkSize = 31
)

// AccountStorageLayout derives the trie keys for one account's metadata and
// storage, all sharing a stem computed from the address.
type AccountStorageLayout struct {
	stem verkle.Stem
}

// NewAccountStorageLayout derives the layout for address. The stem is the
// first 31 bytes of keccak256(address padded to 32 bytes), the same
// construction a verkle state tree uses to place every account's data
// behind one extension.
func NewAccountStorageLayout(addr Address) AccountStorageLayout {
	var padded [32]byte
	copy(padded[12:], addr[:])
	hash := keccak256(padded[:])
	var stem verkle.Stem
	copy(stem[:], hash[:verkle.StemSize])
	return AccountStorageLayout{stem: stem}
}

func (l AccountStorageLayout) Stem() verkle.Stem { return l.stem }

func (l AccountStorageLayout) key(suffix uint8) verkle.TrieKey {
	return verkle.NewTrieKey(l.stem, suffix)
}

func (l AccountStorageLayout) VersionKey() verkle.TrieKey  { return l.key(versionSuffix) }
func (l AccountStorageLayout) BalanceKey() verkle.TrieKey  { return l.key(balanceSuffix) }
func (l AccountStorageLayout) NonceKey() verkle.TrieKey    { return l.key(nonceSuffix) }
func (l AccountStorageLayout) CodeHashKey() verkle.TrieKey { return l.key(codeHashSuffix) }
func (l AccountStorageLayout) CodeSizeKey() verkle.TrieKey { return l.key(codeSizeSuffix) }

// StorageSlotKey derives the trie key for storage slot, packed directly by
// slot number into the storage suffix window. This single-stem simplification
// reuses suffixes cyclically: two slot numbers storageSuffixCount apart alias
// the same trie key. A full account layout would instead spill overflow
// slots into additional stems (EIP-6800's per-range stem derivation); that is
// out of scope here, so genesis accounts are expected to stay within
// storageSuffixCount distinct low-numbered slots.
func (l AccountStorageLayout) StorageSlotKey(slot uint256.Int) verkle.TrieKey {
	suffix := uint8(storageSuffixBase + (slot.Uint64() % storageSuffixCount))
	return l.key(suffix)
}

// ChunkifyCode splits code into 31-byte chunks, each stored as a 32-byte
// trie value: the chunk's up-to-31 code bytes, preceded by a marker byte
// counting how many leading bytes of the chunk are PUSHDATA continuing
// from the previous chunk (0 when the chunk starts a clean instruction
// boundary — this reference implementation does not track PUSH-data
// spans, so it is always emitted as 0). It fails if code has more chunks
// than fit in the code suffix window, rather than silently wrapping
// chunk indices back onto earlier suffixes.
func (l AccountStorageLayout) ChunkifyCode(code []byte) ([]struct {
	Key   verkle.TrieKey
	Value verkle.TrieValue
}, error) {
	numChunks := (len(code) + codeChunkSize - 1) / codeChunkSize
	if numChunks > codeSuffixCount {
		return nil, fmt.Errorf("genesis: code is %d bytes (%d chunks), exceeds the %d chunks a single stem's code window holds", len(code), numChunks, codeSuffixCount)
	}

	var out []struct {
		Key   verkle.TrieKey
		Value verkle.TrieValue
	}
	for i := 0; i < len(code); i += codeChunkSize {
		end := i + codeChunkSize
		if end > len(code) {
			end = len(code)
		}
		var value verkle.TrieValue
		copy(value[1:], code[i:end])
		chunkIndex := i / codeChunkSize
		out = append(out, struct {
			Key   verkle.TrieKey
			Value verkle.TrieValue
		}{
			Key:   l.key(uint8(codeSuffixBase + chunkIndex)),
			Value: value,
		})
	}
	return out, nil
}
