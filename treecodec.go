package huffman

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	headerSize = 8
	recordSize = 12

	flagHasSymbol = 0x01
)

// WriteTo writes the persisted form of the tree: the offset header, the
// in-order node records, then the pre-order node records.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	raw, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(raw)
	return int64(n), err
}

// MarshalBinary returns the persisted form of the tree.  See WriteTo.
//
// Every record carries the node's position in pre-order as its index.  The
// indices are unique, so the two traversals determine the shape of the tree
// even when several merged nodes share the same frequency.
//
func (t *Tree) MarshalBinary() ([]byte, error) {
	pre := t.PreOrder()
	if len(pre) == 0 {
		return nil, fmt.Errorf("%w: cannot serialize an empty tree", ErrEmptyInput)
	}
	if len(pre) > math.MaxUint16+1 {
		return nil, fmt.Errorf("huffman: tree of %d nodes is too large to serialize", len(pre))
	}

	index := make([]uint16, len(t.nodes))
	for i, id := range pre {
		index[id] = uint16(i)
	}

	offset := headerSize + recordSize*len(pre)
	raw := make([]byte, 2*offset-headerSize)
	binary.LittleEndian.PutUint64(raw, uint64(offset))

	pos := headerSize
	for _, id := range t.InOrder() {
		putRecord(raw[pos:], index[id], t.nodes[id].value)
		pos += recordSize
	}
	for i, id := range pre {
		putRecord(raw[pos:], uint16(i), t.nodes[id].value)
		pos += recordSize
	}
	return raw, nil
}

// UnmarshalBinary replaces this tree with the one persisted in data.  data
// must hold exactly one tree and nothing else.
func (t *Tree) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	tree, err := ReadTree(r)
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return corruptf("%d trailing bytes after tree", r.Len())
	}
	*t = *tree
	return nil
}

var (
	_ encoding.BinaryMarshaler   = (*Tree)(nil)
	_ encoding.BinaryUnmarshaler = (*Tree)(nil)
	_ io.WriterTo                = (*Tree)(nil)
)

// ReadTree reads a tree written by Tree.WriteTo.  It reads exactly as many
// bytes as the tree occupies.
//
// Any inconsistency (a short read, an impossible offset, records that do not
// describe one well-formed Huffman tree) is reported as ErrCorruptStream.
// No partially built tree is ever returned.
//
func ReadTree(r io.Reader) (*Tree, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, readError("tree header", err)
	}

	offset := binary.LittleEndian.Uint64(header[:])
	if offset < headerSize+recordSize || (offset-headerSize)%recordSize != 0 {
		return nil, corruptf("invalid offset %d", offset)
	}
	numNodes := (offset - headerSize) / recordSize
	if numNodes > maxNodes {
		return nil, corruptf("offset %d implies %d nodes, max %d", offset, numNodes, maxNodes)
	}

	body := make([]byte, 2*numNodes*recordSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, readError("tree records", err)
	}
	return decodeTree(body, int(numNodes))
}

func decodeTree(body []byte, n int) (*Tree, error) {
	inOrder := make([]nodeRecord, n)
	preOrder := make([]nodeRecord, n)
	for i := 0; i < n; i++ {
		var err error
		if inOrder[i], err = parseRecord(body[i*recordSize:]); err != nil {
			return nil, err
		}
		if preOrder[i], err = parseRecord(body[(n+i)*recordSize:]); err != nil {
			return nil, err
		}
		if int(preOrder[i].index) != i {
			return nil, corruptf("pre-order record %d has index %d", i, preOrder[i].index)
		}
	}

	// inPos maps a node's index to its position in the in-order sequence.
	inPos := make([]int, n)
	for i := range inPos {
		inPos[i] = -1
	}
	for i, rec := range inOrder {
		idx := int(rec.index)
		if idx >= n {
			return nil, corruptf("in-order record %d has index %d, max %d", i, idx, n-1)
		}
		if inPos[idx] >= 0 {
			return nil, corruptf("index %d appears twice in in-order records", idx)
		}
		if rec.value != preOrder[idx].value {
			return nil, corruptf("records for index %d disagree: %v vs %v", idx, rec.value, preOrder[idx].value)
		}
		inPos[idx] = i
	}

	// NodeIDs are assigned in pre-order, so NodeID(i) has index i.
	t := NewTree(n)
	for _, rec := range preOrder {
		t.NewNode(rec.value)
	}

	rb := rebuilder{tree: t, inPos: inPos}
	if err := rb.rebuild(0, 0, n); err != nil {
		return nil, err
	}
	t.SetRoot(0)

	if err := validateTree(t); err != nil {
		return nil, err
	}
	return t, nil
}

type rebuilder struct {
	tree  *Tree
	inPos []int
}

// rebuild attaches the children of the node at pre-order position pre, the
// root of the subtree whose nodes occupy in-order positions
// [inStart, inStart+count).  The left subtree is the next leftCount nodes in
// pre-order; the right subtree follows it.
func (rb rebuilder) rebuild(pre int, inStart int, count int) error {
	k := rb.inPos[pre]
	if k < inStart || k >= inStart+count {
		return corruptf("node %d not found in in-order range [%d, %d)", pre, inStart, inStart+count)
	}

	leftCount := k - inStart
	rightCount := count - leftCount - 1

	if leftCount > 0 {
		left := pre + 1
		if err := rb.rebuild(left, inStart, leftCount); err != nil {
			return err
		}
		rb.tree.Attach(NodeID(pre), NodeID(left), Left)
	}
	if rightCount > 0 {
		right := pre + 1 + leftCount
		if err := rb.rebuild(right, k+1, rightCount); err != nil {
			return err
		}
		rb.tree.Attach(NodeID(pre), NodeID(right), Right)
	}
	return nil
}

// validateTree checks the Huffman shape: leaves carry distinct symbols,
// merged nodes carry no symbol, have two children, and sum their frequency.
func validateTree(t *Tree) error {
	var seen [NumSymbols]bool
	for _, id := range t.PreOrder() {
		value := t.Value(id)
		if t.IsLeaf(id) {
			if !value.HasSymbol {
				return corruptf("leaf %d has no symbol", id)
			}
			if seen[value.Symbol] {
				return corruptf("symbol %s appears on more than one leaf", quoteSymbol(value.Symbol))
			}
			seen[value.Symbol] = true
			continue
		}

		if value.HasSymbol {
			return corruptf("internal node %d has symbol %s", id, quoteSymbol(value.Symbol))
		}
		left, right := t.Left(id), t.Right(id)
		if left == NoNode || right == NoNode {
			return corruptf("internal node %d has only one child", id)
		}
		lf, rf := t.Value(left).Freq, t.Value(right).Freq
		sum := lf + rf
		if sum < lf {
			sum = math.MaxUint64
		}
		if value.Freq != sum {
			return corruptf("internal node %d has frequency %d, children sum to %d", id, value.Freq, sum)
		}
	}
	return nil
}

// type nodeRecord {{{

type nodeRecord struct {
	index uint16
	value Node
}

func putRecord(b []byte, index uint16, value Node) {
	binary.LittleEndian.PutUint16(b[0:2], index)
	binary.LittleEndian.PutUint64(b[2:10], value.Freq)
	b[10] = 0
	b[11] = 0
	if value.HasSymbol {
		b[10] = flagHasSymbol
		b[11] = value.Symbol
	}
}

func parseRecord(b []byte) (nodeRecord, error) {
	flags := b[10]
	if flags&^flagHasSymbol != 0 {
		return nodeRecord{}, corruptf("unknown node flags 0x%02x", flags)
	}
	rec := nodeRecord{
		index: binary.LittleEndian.Uint16(b[0:2]),
		value: Node{Freq: binary.LittleEndian.Uint64(b[2:10])},
	}
	if flags&flagHasSymbol != 0 {
		rec.value.Symbol = b[11]
		rec.value.HasSymbol = true
	} else if b[11] != 0 {
		return nodeRecord{}, corruptf("symbol byte 0x%02x on a node without a symbol", b[11])
	}
	return rec, nil
}

// }}}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: short read of %s: %w", ErrCorruptStream, what, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("huffman: failed to read %s: %w", what, err)
}
