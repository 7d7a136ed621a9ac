package huffman

import (
	mathbits "math/bits"
)

// depthHint estimates the depth of a balanced tree of n nodes, for sizing
// traversal stacks.
func depthHint(n int) int {
	if n < 1 {
		n = 1
	}
	return mathbits.Len(uint(n)) + 1
}

func bytesForBits(n uint64) uint64 {
	return (n + 7) / 8
}
