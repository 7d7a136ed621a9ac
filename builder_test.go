package huffman

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestBuildTree(t *testing.T) {
	freqs := CountFrequencies([]byte("aabbbc"))
	tree, err := BuildTree(&freqs)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"(6, None)\n",
		"L-(3, None)\n",
		"L--(2, 'a')\n",
		"R--(1, 'c')\n",
		"R-(3, 'b')\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	var freqs Frequencies
	tree, err := BuildTree(&freqs)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if tree != nil {
		t.Errorf("expected no tree, got %v", tree)
	}
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	freqs := CountFrequencies([]byte("aaaa"))
	tree, err := BuildTree(&freqs)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	root := tree.Root()
	if !tree.IsLeaf(root) {
		t.Errorf("expected the root to be a leaf")
	}
	expect := LeafNode(4, 'a')
	if actual := tree.Value(root); actual != expect {
		t.Errorf("expected %v, got %v", expect, actual)
	}
	if size := tree.Size(); size != 1 {
		t.Errorf("expected size 1, got %d", size)
	}
}

func TestBuildTree_Size(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, distinct := range []int{2, 3, 7, 64, 200, 256} {
		var freqs Frequencies
		for symbol := 0; symbol < distinct; symbol++ {
			freqs[symbol] = uint64(rng.Intn(1000) + 1)
		}

		tree, err := BuildTree(&freqs)
		if err != nil {
			t.Fatalf("BuildTree failed: %v", err)
		}
		if size := tree.Size(); size != 2*distinct-1 {
			t.Errorf("%d symbols: expected size %d, got %d", distinct, 2*distinct-1, size)
		}
		if leaves := tree.Leaves(); leaves != distinct {
			t.Errorf("%d symbols: expected %d leaves, got %d", distinct, distinct, leaves)
		}
		if freq := tree.Value(tree.Root()).Freq; freq != freqs.Total() {
			t.Errorf("%d symbols: expected root frequency %d, got %d", distinct, freqs.Total(), freq)
		}
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 4096)
	for i := range data {
		// few distinct values with many equal counts
		data[i] = byte(rng.Intn(16)) * 3
	}

	dump := func() string {
		freqs := CountFrequencies(data)
		tree, err := BuildTree(&freqs)
		if err != nil {
			t.Fatalf("BuildTree failed: %v", err)
		}
		var buf strings.Builder
		_, _ = tree.Dump(&buf)
		_, _ = BuildTable(tree).Dump(&buf)
		return buf.String()
	}

	first := dump()
	for i := 0; i < 3; i++ {
		if again := dump(); again != first {
			t.Fatalf("wrong output:\n\texpect: %s\n\tactual: %s", first, again)
		}
	}
}

func TestBuildTree_TieBreak(t *testing.T) {
	// All equal: leaves pair up in ascending symbol order, the lower symbol
	// going right, and merged nodes pair up in creation order.
	freqs := CountFrequencies([]byte("abcd"))
	tree, err := BuildTree(&freqs)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"(4, None)\n",
		"L-(2, None)\n",
		"L--(1, 'd')\n",
		"R--(1, 'c')\n",
		"R-(2, None)\n",
		"L--(1, 'b')\n",
		"R--(1, 'a')\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}
