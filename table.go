package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Table maps each Symbol of a Huffman tree to its Code.
type Table struct {
	codes    [NumSymbols]Code
	numCodes int
	minSize  byte
	maxSize  byte
}

// BuildTable walks the given tree and returns its encoding table.
func BuildTable(t *Tree) *Table {
	tbl := new(Table)
	tbl.Init(t)
	return tbl
}

// Init initializes this Table from the leaves of a non-empty tree.  Each
// leaf's Code is its path from the root: 0 for every step left, 1 for every
// step right.
//
// A tree whose root is itself a leaf has no paths at all, so its only Symbol
// is given the one-bit Code "0".
//
func (tbl *Table) Init(t *Tree) {
	root := t.Root()
	assert.Assertf(root != NoNode, "cannot build a Table from an empty Tree")

	*tbl = Table{}
	if t.IsLeaf(root) {
		tbl.set(t.Value(root).Symbol, MakeCode(1, 0))
		return
	}
	tbl.walk(t, root, Code{})
}

func (tbl *Table) walk(t *Tree, id NodeID, prefix Code) {
	if t.IsLeaf(id) {
		if value := t.Value(id); value.HasSymbol {
			tbl.set(value.Symbol, prefix)
		}
		return
	}
	if left := t.Left(id); left != NoNode {
		tbl.walk(t, left, prefix.Append(false))
	}
	if right := t.Right(id); right != NoNode {
		tbl.walk(t, right, prefix.Append(true))
	}
}

func (tbl *Table) set(symbol Symbol, hc Code) {
	if tbl.numCodes == 0 {
		tbl.minSize = hc.Size
		tbl.maxSize = hc.Size
	} else if tbl.minSize > hc.Size {
		tbl.minSize = hc.Size
	} else if tbl.maxSize < hc.Size {
		tbl.maxSize = hc.Size
	}
	if tbl.codes[symbol].Size == 0 {
		tbl.numCodes++
	}
	tbl.codes[symbol] = hc
}

// Lookup returns the Code for symbol, if it has one.
func (tbl *Table) Lookup(symbol Symbol) (Code, bool) {
	hc := tbl.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of Symbols with a Code.
func (tbl *Table) Len() int {
	return tbl.numCodes
}

// Symbols lists the Symbols with a Code, in ascending order.
func (tbl *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, tbl.numCodes)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if tbl.codes[symbol].Size != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// MinSize is the bit length of the shortest Code.
func (tbl *Table) MinSize() byte {
	return tbl.minSize
}

// MaxSize is the bit length of the longest Code.
func (tbl *Table) MaxSize() byte {
	return tbl.maxSize
}

// EncodedBits returns the exact number of bits that encoding an input with
// the given frequencies produces.
func (tbl *Table) EncodedBits(freqs *Frequencies) (uint64, error) {
	var sum uint64
	for symbol, freq := range freqs {
		if freq == 0 {
			continue
		}
		hc, ok := tbl.Lookup(Symbol(symbol))
		if !ok {
			return 0, fmt.Errorf("%w: byte 0x%02x", ErrUnrepresentableSymbol, symbol)
		}
		sum += freq * uint64(hc.Size)
	}
	return sum, nil
}

// Pack encodes data into a bit stream, least significant bit first.  The
// final byte is zero-padded.  A byte with no Code aborts the whole encoding
// with an *UnrepresentableSymbolError.
func (tbl *Table) Pack(data []byte) ([]byte, error) {
	var w BitWriter
	w.Grow(uint64(len(data)) * uint64(tbl.minSize))
	for offset, b := range data {
		hc, ok := tbl.Lookup(b)
		if !ok {
			return nil, &UnrepresentableSymbolError{Symbol: b, Offset: offset}
		}
		w.WriteCode(hc)
	}
	return w.Bytes(), nil
}

// Dump writes a programmer-readable debugging dump of the Table's current
// state to the given writer.
func (tbl *Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", tbl.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", tbl.maxSize)
	for _, symbol := range tbl.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", quoteSymbol(symbol), tbl.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
