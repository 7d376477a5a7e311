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
	"testing"

	"github.com/holiman/uint256"
)

func addr(b byte) Address {
	var a Address
	a[19] = b
	return a
}

// S5 — code-chunking: a 4-byte code produces a code_hash entry equal to
// keccak256(code), a code_size entry equal to 4, and exactly one chunk key.
func TestCodeChunking(t *testing.T) {
	code := []byte{0x60, 0x00, 0x60, 0x00}
	cfg := Config{
		Alloc: map[Address]AccountAlloc{
			addr(1): {Balance: *uint256.NewInt(0), Code: code},
		},
	}
	diff, err := GenerateStateDiff(cfg)
	if err != nil {
		t.Fatalf("GenerateStateDiff: %v", err)
	}
	if len(diff) != 1 {
		t.Fatalf("expected exactly 1 stem, got %d", len(diff))
	}

	layout := NewAccountStorageLayout(addr(1))
	wantHash := keccak256(code)

	var gotCodeHash, gotCodeSize bool
	chunkCount := 0
	for _, sd := range diff[0].SuffixDiffs {
		switch sd.Suffix {
		case layout.CodeHashKey().Suffix():
			gotCodeHash = true
			if *sd.NewValue != valueFromHash(wantHash) {
				t.Fatalf("code hash mismatch")
			}
		case layout.CodeSizeKey().Suffix():
			gotCodeSize = true
			if *sd.NewValue != valueFromUint64(4) {
				t.Fatalf("code size mismatch")
			}
		case codeSuffixBase:
			chunkCount++
		}
	}
	if !gotCodeHash || !gotCodeSize {
		t.Fatalf("missing code_hash or code_size entry")
	}
	if chunkCount != 1 {
		t.Fatalf("expected exactly 1 code chunk, got %d", chunkCount)
	}
}

func TestEmptyCodeHashDefault(t *testing.T) {
	cfg := Config{
		Alloc: map[Address]AccountAlloc{
			addr(2): {Balance: *uint256.NewInt(5)},
		},
	}
	diff, err := GenerateStateDiff(cfg)
	if err != nil {
		t.Fatalf("GenerateStateDiff: %v", err)
	}
	layout := NewAccountStorageLayout(addr(2))
	found := false
	for _, sd := range diff[0].SuffixDiffs {
		if sd.Suffix == layout.CodeHashKey().Suffix() {
			found = true
			if *sd.NewValue != valueFromHash(emptyCodeHash) {
				t.Fatalf("expected empty code hash for account without code")
			}
		}
	}
	if !found {
		t.Fatalf("missing code_hash entry")
	}
}

// Code too large to fit the code suffix window errors instead of wrapping
// chunk indices back onto earlier suffixes.
func TestChunkifyCodeOverflow(t *testing.T) {
	layout := NewAccountStorageLayout(addr(1))
	code := make([]byte, (codeSuffixCount+1)*codeChunkSize)
	if _, err := layout.ChunkifyCode(code); err == nil {
		t.Fatalf("expected an error for code exceeding the code suffix window")
	}

	cfg := Config{
		Alloc: map[Address]AccountAlloc{
			addr(1): {Balance: *uint256.NewInt(0), Code: code},
		},
	}
	if _, err := GenerateStateDiff(cfg); err == nil {
		t.Fatalf("expected GenerateStateDiff to propagate the chunking error")
	}
}

// Property 7 — genesis determinism: repeated calls produce a byte-identical
// ordered list.
func TestGenerateStateDiffDeterministic(t *testing.T) {
	cfg := Config{
		Alloc: map[Address]AccountAlloc{
			addr(9):  {Balance: *uint256.NewInt(1)},
			addr(3):  {Balance: *uint256.NewInt(2)},
			addr(42): {Balance: *uint256.NewInt(3)},
		},
	}
	a, err := GenerateStateDiff(cfg)
	if err != nil {
		t.Fatalf("GenerateStateDiff: %v", err)
	}
	b, err := GenerateStateDiff(cfg)
	if err != nil {
		t.Fatalf("GenerateStateDiff: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic stem count")
	}
	for i := range a {
		if a[i].Stem != b[i].Stem {
			t.Fatalf("stem order is not deterministic at index %d", i)
		}
	}
	for i := 1; i < len(a); i++ {
		if !a[i-1].Stem.Less(a[i].Stem) {
			t.Fatalf("stems are not in natural byte order at index %d", i)
		}
	}
}
