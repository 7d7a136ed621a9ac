package huffman

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// maxBitsPerCode is the longest possible path from the root of a tree with
// NumSymbols leaves.
const maxBitsPerCode = NumSymbols - 1

// Code represents a sequence of bits: the left (0) and right (1) decisions on
// the path from the root of a tree to one of its leaves.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Bit i of the sequence is
	// bit (i % 64) of Bits[i / 64], so the least significant bit of Bits[0]
	// is the first bit.
	Bits [4]uint64
}

// MakeCode is a convenience function that constructs a Code of at most 64
// bits.  The least significant bit of bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "MakeCode size %d > 64", size)
	if size < 64 {
		bits &= (uint64(1) << size) - 1
	}
	return Code{Size: size, Bits: [4]uint64{bits}}
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit bool) Code {
	assert.Assertf(hc.Size < maxBitsPerCode, "Code already holds %d bits", hc.Size)
	if bit {
		hc.Bits[hc.Size/64] |= uint64(1) << (hc.Size % 64)
	}
	hc.Size++
	return hc
}

// Bit returns bit i of this Code.
func (hc Code) Bit(i byte) bool {
	assert.Assertf(i < hc.Size, "bit %d out of range [0, %d)", i, hc.Size)
	return (hc.Bits[i/64]>>(i%64))&1 != 0
}

// HasPrefix returns true if the first prefix.Size bits of this Code are
// equal to prefix.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := byte(0); i < prefix.Size; i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		if hc.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
