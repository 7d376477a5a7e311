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

// Package chain defines the narrow external-collaborator interfaces the
// driver needs — a beacon block source, an EVM block processor, and a
// Portal gossip sink — plus minimal concrete implementations of each so
// cmd/verkle-gossip is a runnable program. None of these are the real
// beacon chain, EVM, or Portal Network; spec.md explicitly scopes all
// three out and treats them as collaborators reached through interfaces.
package chain

import (
	"github.com/portal-network/verkle-bridge/witness"
)

// ExecutionPayload is the subset of a beacon block's execution payload
// this bridge needs: the block's identity, its declared post-state root,
// and the execution witness carrying the state diff to apply.
type ExecutionPayload struct {
	BlockNumber uint64                   `json:"blockNumber"`
	BlockHash   [32]byte                 `json:"blockHash"`
	StateRoot   [32]byte                 `json:"stateRoot"`
	Witness     witness.ExecutionWitness `json:"executionWitness"`
}
