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

import "testing"

func TestReadGenesisRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"alloc":{"0x0000000000000000000000000000000000000001":{"balance":"0x1","bogus":"x"}}}`)
	if _, err := ReadGenesis(data); err == nil {
		t.Fatalf("expected unknown-field rejection")
	}
}

func TestReadGenesisParsesAccount(t *testing.T) {
	data := []byte(`{
		"alloc": {
			"0x0000000000000000000000000000000000000001": {
				"balance": "0x64",
				"nonce": "0x1",
				"code": "0x6000",
				"storage": {
					"0x1": "0x000000000000000000000000000000000000000000000000000000000000000a"
				}
			}
		}
	}`)
	cfg, err := ReadGenesis(data)
	if err != nil {
		t.Fatalf("ReadGenesis: %v", err)
	}
	acct, ok := cfg.Alloc[addr(1)]
	if !ok {
		t.Fatalf("expected account 0x01")
	}
	if acct.Balance.Uint64() != 0x64 {
		t.Fatalf("balance mismatch: %v", acct.Balance)
	}
	if acct.Nonce == nil || *acct.Nonce != 1 {
		t.Fatalf("nonce mismatch")
	}
	if len(acct.Code) != 2 {
		t.Fatalf("code mismatch: %x", acct.Code)
	}
	if len(acct.Storage) != 1 {
		t.Fatalf("expected 1 storage entry")
	}
}
