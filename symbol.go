package huffman

import (
	"fmt"
	"strconv"
)

// Symbol represents one distinct input byte value.
type Symbol = byte

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256

// maxNodes is the largest possible tree: NumSymbols leaves plus
// NumSymbols-1 merged nodes.
const maxNodes = 2*NumSymbols - 1

// Node is the value stored at each position of a Huffman tree.
//
// HasSymbol is true iff the node is a leaf standing for an input byte.
// Merged (internal) nodes carry only the total frequency of their subtree.
//
type Node struct {
	Freq      uint64
	Symbol    Symbol
	HasSymbol bool
}

// LeafNode constructs a Node for an input symbol.
func LeafNode(freq uint64, symbol Symbol) Node {
	return Node{Freq: freq, Symbol: symbol, HasSymbol: true}
}

// MergedNode constructs a Node with no symbol.
func MergedNode(freq uint64) Node {
	return Node{Freq: freq}
}

// String returns the string representation of this Node.
func (n Node) String() string {
	if !n.HasSymbol {
		return fmt.Sprintf("(%d, None)", n.Freq)
	}
	return fmt.Sprintf("(%d, %s)", n.Freq, quoteSymbol(n.Symbol))
}

var _ fmt.Stringer = Node{}

func quoteSymbol(symbol Symbol) string {
	return strconv.QuoteRuneToASCII(rune(symbol))
}
