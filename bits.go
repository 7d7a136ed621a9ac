package huffman

import (
	"io"
)

// BitWriter packs bits into bytes, least significant bit first.  The zero
// BitWriter is empty and ready to use.
type BitWriter struct {
	buf  []byte
	size uint64
}

// Grow reserves room for at least n more bits.
func (w *BitWriter) Grow(n uint64) {
	need := bytesForBits(w.size+n) - uint64(len(w.buf))
	if uint64(cap(w.buf)-len(w.buf)) < need {
		grown := make([]byte, len(w.buf), uint64(len(w.buf))+need)
		copy(grown, w.buf)
		w.buf = grown
	}
}

// WriteBit appends one bit.
func (w *BitWriter) WriteBit(bit bool) {
	shift := w.size % 8
	if shift == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit {
		w.buf[len(w.buf)-1] |= 1 << shift
	}
	w.size++
}

// WriteCode appends every bit of hc, first bit first.
func (w *BitWriter) WriteCode(hc Code) {
	for i := byte(0); i < hc.Size; i++ {
		w.WriteBit(hc.Bit(i))
	}
}

// Len returns the number of bits written so far.
func (w *BitWriter) Len() uint64 {
	return w.size
}

// Bytes returns the packed bits.  Unused high bits of the last byte are 0.
func (w *BitWriter) Bytes() []byte {
	return w.buf
}

// BitReader unpacks bits from bytes, least significant bit first.
type BitReader struct {
	data []byte
	pos  uint64
}

// NewBitReader returns a BitReader positioned at the first bit of data.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// ReadBit returns the next bit, or io.EOF once every byte has been consumed.
func (r *BitReader) ReadBit() (bool, error) {
	if r.pos >= uint64(len(r.data))*8 {
		return false, io.EOF
	}
	b := r.data[r.pos/8]
	bit := (b>>(r.pos%8))&1 != 0
	r.pos++
	return bit, nil
}

// Remaining returns the number of bits not yet read.
func (r *BitReader) Remaining() uint64 {
	return uint64(len(r.data))*8 - r.pos
}
