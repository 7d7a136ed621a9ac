package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Decoder turns a packed bit stream back into symbols by walking a Huffman
// tree from the root.
type Decoder struct {
	tree *Tree
}

// Init initializes this Decoder with a non-empty tree.
func (d *Decoder) Init(t *Tree) {
	assert.Assertf(t.Root() != NoNode, "cannot decode with an empty Tree")
	*d = Decoder{tree: t}
}

// DecodeCode follows hc from the root.  It returns the Symbol of the leaf
// reached after exactly hc.Size bits, or false if hc is not a complete Code
// of the tree.
func (d Decoder) DecodeCode(hc Code) (Symbol, bool) {
	t := d.tree
	id := t.Root()
	if t.IsLeaf(id) {
		if hc.Size != 1 || hc.Bit(0) {
			return 0, false
		}
		return t.Value(id).Symbol, true
	}
	for i := byte(0); i < hc.Size; i++ {
		if t.IsLeaf(id) {
			return 0, false
		}
		id = t.Child(id, sideForBit(hc.Bit(i)))
		if id == NoNode {
			return 0, false
		}
	}
	value := t.Value(id)
	return value.Symbol, t.IsLeaf(id) && value.HasSymbol
}

// Decode reads exactly count symbols from payload.  Bits left over after the
// last symbol are ignored.  Running out of bits first is ErrTruncatedDecode.
//
// Bit 1 descends right and bit 0 descends left; each leaf reached emits its
// Symbol and restarts at the root.  When the root is itself a leaf, every
// symbol is one 0 bit.
//
func (d Decoder) Decode(payload []byte, count uint64) ([]byte, error) {
	available := uint64(len(payload)) * 8
	if count > available {
		// every Code is at least 1 bit long
		return nil, fmt.Errorf("%w: %d symbols cannot fit in %d bits", ErrTruncatedDecode, count, available)
	}

	t := d.tree
	root := t.Root()
	single := t.IsLeaf(root)
	r := NewBitReader(payload)
	out := make([]byte, 0, count)

	for uint64(len(out)) < count {
		id := root
		if single {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, d.truncated(out, count)
			}
			if bit {
				return nil, corruptf("bit 1 at single-symbol root after %d symbols", len(out))
			}
		}
		for !t.IsLeaf(id) {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, d.truncated(out, count)
			}
			side := sideForBit(bit)
			next := t.Child(id, side)
			if next == NoNode {
				return nil, corruptf("node %d has no %v child", id, side)
			}
			id = next
		}

		value := t.Value(id)
		if !value.HasSymbol {
			return nil, corruptf("leaf %d has no symbol", id)
		}
		out = append(out, value.Symbol)
	}
	return out, nil
}

func (d Decoder) truncated(out []byte, count uint64) error {
	return fmt.Errorf("%w: decoded %d of %d symbols", ErrTruncatedDecode, len(out), count)
}

func sideForBit(bit bool) Side {
	if bit {
		return Right
	}
	return Left
}
