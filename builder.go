package huffman

import (
	"container/heap"
	"math"
)

// BuildTree constructs the Huffman tree for the given symbol frequencies.
//
// The two least frequent entries are repeatedly merged under a new node with
// no symbol: the first one popped becomes its right child, the second its
// left child.  Ties are broken by a fixed key so that the same frequencies
// always give the same tree: a leaf's key is its Symbol, and the i'th merged
// node's key is NumSymbols+i.  Leaves therefore win ties against merged
// nodes, leaves tie-break by ascending Symbol, and merged nodes by creation
// order.
//
// A single distinct Symbol yields a tree whose root is that leaf.  No
// distinct Symbols at all yields ErrEmptyInput.
//
func BuildTree(freqs *Frequencies) (*Tree, error) {
	numLeaves := freqs.Distinct()
	if numLeaves == 0 {
		return nil, ErrEmptyInput
	}

	t := NewTree(2*numLeaves - 1)

	// Step 1: build a minheap of leaves.

	h := nodeHeap{make([]heapEntry, 0, numLeaves)}
	for symbol := 0; symbol < NumSymbols; symbol++ {
		freq := freqs[symbol]
		if freq == 0 {
			continue
		}
		id := t.NewNode(LeafNode(freq, Symbol(symbol)))
		h.list = append(h.list, heapEntry{id: id, freq: freq, key: uint32(symbol)})
	}
	h.Init()

	// Step 2: pop two, merge, push the merged node back.

	nextKey := uint32(NumSymbols)
	for h.Len() > 1 {
		a := heap.Pop(&h).(heapEntry)
		b := heap.Pop(&h).(heapEntry)

		// Compute freqSum using saturating addition
		freqSum := a.freq + b.freq
		if freqSum < a.freq {
			freqSum = math.MaxUint64
		}

		id := t.NewNode(MergedNode(freqSum))
		t.Attach(id, a.id, Right)
		t.Attach(id, b.id, Left)

		heap.Push(&h, heapEntry{id: id, freq: freqSum, key: nextKey})
		nextKey++
	}

	root := heap.Pop(&h).(heapEntry)
	t.SetRoot(root.id)
	return t, nil
}

// type heapEntry + type nodeHeap {{{

type heapEntry struct {
	id   NodeID
	freq uint64
	key  uint32
}

type nodeHeap struct {
	list []heapEntry
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.key < b.key
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapEntry))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
