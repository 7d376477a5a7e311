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
	"fmt"
	"sort"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	verkle "github.com/portal-network/verkle-bridge"
	"github.com/portal-network/verkle-bridge/witness"
)

func keccak256(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}

// emptyCodeHash is keccak256("").
var emptyCodeHash = keccak256(nil)

// AccountAlloc is one genesis account: its balance, and its optional nonce,
// code, and storage.
type AccountAlloc struct {
	Balance uint256.Int
	Nonce   *uint64
	Code    []byte
	Storage map[uint256.Int][32]byte
}

// Config is the genesis allocation table: every account to seed the trie
// with, keyed by address.
type Config struct {
	Alloc map[Address]AccountAlloc
}

// valueFromUint256 right-aligns n's big-endian bytes into a 32-byte trie
// value, matching how the reference account layout stores numeric fields.
func valueFromUint256(n *uint256.Int) verkle.TrieValue {
	var v verkle.TrieValue
	b := n.Bytes32()
	copy(v[:], b[:])
	return v
}

func valueFromUint64(n uint64) verkle.TrieValue {
	var u uint256.Int
	u.SetUint64(n)
	return valueFromUint256(&u)
}

func valueFromHash(h [32]byte) verkle.TrieValue {
	return verkle.TrieValue(h)
}

type pendingWrite struct {
	key   verkle.TrieKey
	value verkle.TrieValue
}

// GenerateStateDiff produces the deterministic, stem-sorted StateDiff for
// cfg: for every account, its version/balance/nonce keys, code-hash (and,
// if code is present, code-size and chunked code) keys, and its storage
// slots. It fails if any account's code exceeds what a single stem's code
// window can hold.
func GenerateStateDiff(cfg Config) (witness.StateDiff, error) {
	byStem := make(map[verkle.Stem][]pendingWrite)
	var stemOrder []verkle.Stem

	addStem := func(stem verkle.Stem) {
		if _, ok := byStem[stem]; !ok {
			stemOrder = append(stemOrder, stem)
		}
	}

	addrs := make([]Address, 0, len(cfg.Alloc))
	for addr := range cfg.Alloc {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return string(addrs[i][:]) < string(addrs[j][:])
	})

	for _, addr := range addrs {
		acct := cfg.Alloc[addr]
		layout := NewAccountStorageLayout(addr)
		addStem(layout.Stem())

		writes := []pendingWrite{
			{layout.VersionKey(), valueFromUint64(0)},
			{layout.BalanceKey(), valueFromUint256(&acct.Balance)},
		}
		nonce := uint64(0)
		if acct.Nonce != nil {
			nonce = *acct.Nonce
		}
		writes = append(writes, pendingWrite{layout.NonceKey(), valueFromUint64(nonce)})

		if len(acct.Code) == 0 {
			writes = append(writes, pendingWrite{layout.CodeHashKey(), valueFromHash(emptyCodeHash)})
		} else {
			writes = append(writes, pendingWrite{layout.CodeHashKey(), valueFromHash(keccak256(acct.Code))})
			writes = append(writes, pendingWrite{layout.CodeSizeKey(), valueFromUint64(uint64(len(acct.Code)))})
			chunks, err := layout.ChunkifyCode(acct.Code)
			if err != nil {
				return nil, fmt.Errorf("genesis: account %x: %w", addr, err)
			}
			for _, chunk := range chunks {
				writes = append(writes, pendingWrite{chunk.Key, chunk.Value})
			}
		}

		slots := make([]uint256.Int, 0, len(acct.Storage))
		for slot := range acct.Storage {
			slots = append(slots, slot)
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].Lt(&slots[j]) })
		for _, slot := range slots {
			writes = append(writes, pendingWrite{layout.StorageSlotKey(slot), verkle.TrieValue(acct.Storage[slot])})
		}

		byStem[layout.Stem()] = append(byStem[layout.Stem()], writes...)
	}

	sort.Slice(stemOrder, func(i, j int) bool { return stemOrder[i].Less(stemOrder[j]) })

	diff := make(witness.StateDiff, 0, len(stemOrder))
	for _, stem := range stemOrder {
		var suffixDiffs []witness.SuffixStateDiff
		for _, w := range byStem[stem] {
			v := w.value
			suffixDiffs = append(suffixDiffs, witness.SuffixStateDiff{
				Suffix:       w.key.Suffix(),
				CurrentValue: nil,
				NewValue:     &v,
			})
		}
		diff = append(diff, witness.StemStateDiff{Stem: stem, SuffixDiffs: suffixDiffs})
	}
	return diff, nil
}
