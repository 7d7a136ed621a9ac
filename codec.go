package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Codec holds everything needed to compress one input: its frequencies, its
// Huffman tree, the derived encoding table, and the input itself.
//
// A Codec is immutable once built and may be shared by concurrent readers.
//
type Codec struct {
	freqs Frequencies
	tree  *Tree
	table Table
	data  []byte
}

// Build counts the bytes of data, builds their Huffman tree and derives the
// encoding table.  Empty data is rejected with ErrEmptyInput before any tree
// work begins.
func Build(data []byte) (*Codec, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	freqs := CountFrequencies(data)
	tree, err := BuildTree(&freqs)
	if err != nil {
		return nil, err
	}

	c := &Codec{
		freqs: freqs,
		tree:  tree,
		data:  make([]byte, len(data)),
	}
	copy(c.data, data)
	c.table.Init(tree)
	return c, nil
}

// Tree returns the Huffman tree.  It must not be modified.
func (c *Codec) Tree() *Tree {
	return c.tree
}

// Table returns the encoding table.
func (c *Codec) Table() *Table {
	return &c.table
}

// Frequencies returns the byte counts of the input.
func (c *Codec) Frequencies() Frequencies {
	return c.freqs
}

// Data returns the uncompressed input.  It must not be modified.
func (c *Codec) Data() []byte {
	return c.data
}

// Len returns the number of bytes in the uncompressed input.
func (c *Codec) Len() int {
	return len(c.data)
}

// Compress returns the input packed with the encoding table.  Its length is
// always ceil(sum(freq[s] * len(code[s])) / 8) bytes.
func (c *Codec) Compress() ([]byte, error) {
	return c.table.Pack(c.data)
}

// Encode packs arbitrary data with this Codec's table.  Any byte that did not
// occur in the original input fails with ErrUnrepresentableSymbol.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	return c.table.Pack(data)
}

// Decompress unpacks a payload produced by Compress, stopping after Len()
// symbols.
func (c *Codec) Decompress(payload []byte) ([]byte, error) {
	return c.decoder().Decode(payload, uint64(len(c.data)))
}

func (c *Codec) decoder() Decoder {
	var d Decoder
	d.Init(c.tree)
	return d
}

// Save writes the tree, the symbol count and the compressed payload to w.
func (c *Codec) Save(w io.Writer) (int64, error) {
	payload, err := c.Compress()
	if err != nil {
		return 0, err
	}
	rawTree, err := c.tree.MarshalBinary()
	if err != nil {
		return 0, err
	}

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(c.data)))

	var buf bytes.Buffer
	buf.Grow(len(rawTree) + len(count) + len(payload))
	buf.Write(rawTree)
	buf.Write(count[:])
	buf.Write(payload)

	n, err := buf.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("huffman: failed to save: %w", err)
	}
	return n, nil
}

// Load reads a stream written by Save.  It reconstructs the tree, rebuilds
// the encoding table, and decompresses the payload eagerly.  It returns the
// new Codec together with the raw payload bytes it read.
//
// On any error the returned Codec is nil.
//
func Load(r io.Reader) (*Codec, []byte, error) {
	tree, err := ReadTree(r)
	if err != nil {
		return nil, nil, err
	}

	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, nil, readError("symbol count", err)
	}
	count := binary.LittleEndian.Uint64(header[:])
	if count == 0 {
		return nil, nil, corruptf("stream holds no symbols")
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("huffman: failed to read payload: %w", err)
	}

	c := &Codec{tree: tree}
	c.table.Init(tree)
	data, err := c.decoder().Decode(payload, count)
	if err != nil {
		return nil, nil, err
	}
	c.data = data
	c.freqs = CountFrequencies(data)

	if err := c.checkLeafFrequencies(); err != nil {
		return nil, nil, err
	}
	return c, payload, nil
}

func (c *Codec) checkLeafFrequencies() error {
	for _, id := range c.tree.PreOrder() {
		value := c.tree.Value(id)
		if !value.HasSymbol {
			continue
		}
		if actual := c.freqs[value.Symbol]; actual != value.Freq {
			return corruptf("symbol %s: tree says %d occurrences, payload has %d", quoteSymbol(value.Symbol), value.Freq, actual)
		}
	}
	return nil
}

// Dump writes a programmer-readable debugging dump of the Codec's current
// state to the given writer.
func (c *Codec) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Codec{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", len(c.data))
	fmt.Fprintf(&buf, "\tDistinct() = %d\n", c.freqs.Distinct())
	if bits, err := c.table.EncodedBits(&c.freqs); err == nil {
		fmt.Fprintf(&buf, "\tEncodedBits() = %d\n", bits)
	}
	fmt.Fprintf(&buf, "\tTree.Size() = %d\n", c.tree.Size())
	buf.WriteString("}\n")
	if _, err := c.table.Dump(&buf); err != nil {
		return 0, err
	}
	if _, err := c.tree.Dump(&buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
