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

import "fmt"

// UnexpectedBlockError describes a block whose number does not follow the
// last processed block. The Gossiper does not check block numbering, so no
// code path in this module returns it.
type UnexpectedBlockError struct {
	ExpectedBlockNumber uint64
	ActualBlockNumber   uint64
}

func (e *UnexpectedBlockError) Error() string {
	return fmt.Sprintf("chain: unexpected block: expected number %d, got %d",
		e.ExpectedBlockNumber, e.ActualBlockNumber)
}

// WrongStateRootError is returned by the driver when the trie root
// computed after applying a block's state writes does not match the
// block's declared state root.
type WrongStateRootError struct {
	BlockNumber uint64
	Expected    [32]byte
	Actual      [32]byte
}

func (e *WrongStateRootError) Error() string {
	return fmt.Sprintf("chain: wrong state root at block %d: expected %x, got %x",
		e.BlockNumber, e.Expected, e.Actual)
}
