// Package huffman implements static, byte-oriented Huffman compression.
//
// A Codec counts the byte frequencies of its input, builds a Huffman tree by
// repeatedly merging the two least frequent entries, derives a prefix-free
// Code for every distinct byte, and packs the input into an LSB-first bit
// stream.  Codec.Save persists the tree together with the payload, and Load
// reconstructs everything from that stream alone.
//
// Persisted format (all integers little-endian):
//
//     [8 bytes]       offset = 8 + 12*nodeCount (end of the in-order block)
//     [12*nodeCount]  node records, in-order
//     [12*nodeCount]  node records, pre-order
//     [8 bytes]       number of encoded symbols
//     [remaining]     packed payload, least significant bit first
//
// Each node record is:
//
//     [2 bytes]  node index (the node's position in pre-order)
//     [8 bytes]  frequency
//     [1 byte]   flags (bit 0: the node carries a symbol)
//     [1 byte]   symbol (0 when the flag is clear)
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
