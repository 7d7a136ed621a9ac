package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodec_Build(t *testing.T) {
	c, err := Build([]byte("aabbbc"))
	require.NoError(t, err)

	freqs := c.Frequencies()
	require.Equal(t, uint64(2), freqs['a'])
	require.Equal(t, uint64(3), freqs['b'])
	require.Equal(t, uint64(1), freqs['c'])
	require.Equal(t, 5, c.Tree().Size())
	require.Equal(t, 3, c.Tree().Leaves())
	require.Equal(t, 6, c.Len())

	payload, err := c.Compress()
	require.NoError(t, err)
	require.Equal(t, []byte{0x70, 0x01}, payload)

	out, err := c.Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, []byte("aabbbc"), out)
}

func TestCodec_Build_CopiesInput(t *testing.T) {
	data := []byte("aabbbc")
	c, err := Build(data)
	require.NoError(t, err)
	data[0] = 'z'
	require.Equal(t, []byte("aabbbc"), c.Data())
}

func TestCodec_SingleSymbol(t *testing.T) {
	c, err := Build([]byte("aaaa"))
	require.NoError(t, err)
	require.Equal(t, 1, c.Tree().Size())

	hc, ok := c.Table().Lookup('a')
	require.True(t, ok)
	require.Equal(t, MakeCode(1, 0), hc)

	payload, err := c.Compress()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, payload)

	out, err := c.Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, []byte("aaaa"), out)
}

func TestCodec_EmptyInput(t *testing.T) {
	c, err := Build(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, c)

	c, err = Build([]byte{})
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, c)
}

func TestCodec_Encode_Unrepresentable(t *testing.T) {
	c, err := Build([]byte("aabbbc"))
	require.NoError(t, err)

	payload, err := c.Encode([]byte("abx"))
	require.ErrorIs(t, err, ErrUnrepresentableSymbol)
	require.Nil(t, payload)

	var target *UnrepresentableSymbolError
	require.True(t, errors.As(err, &target))
	require.Equal(t, byte('x'), target.Symbol)
	require.Equal(t, 2, target.Offset)
	require.Contains(t, err.Error(), "0x78")
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, size := range []int{2, 10, 1000, 65536} {
		for _, alphabet := range []int{2, 5, 100, 256} {
			data := make([]byte, size)
			for i := range data {
				data[i] = byte(rng.Intn(alphabet))
			}
			data[0], data[1] = 0, 1

			c, err := Build(data)
			require.NoError(t, err)

			payload, err := c.Compress()
			require.NoError(t, err)

			freqs := c.Frequencies()
			bits, err := c.Table().EncodedBits(&freqs)
			require.NoError(t, err)
			require.Equal(t, int((bits+7)/8), len(payload), "size law")

			out, err := c.Decompress(payload)
			require.NoError(t, err)
			require.Equal(t, data, out)
		}
	}
}

func TestCodec_SaveLoad(t *testing.T) {
	for _, data := range []string{
		"aabbbc",
		"aaaa",
		"abcd",
		"\x00\x00\x00\x01\xff",
		strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50),
	} {
		c, err := Build([]byte(data))
		require.NoError(t, err)

		var buf bytes.Buffer
		n, err := c.Save(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(buf.Len()), n)

		payload, err := c.Compress()
		require.NoError(t, err)
		require.Equal(t, 2*(8+12*c.Tree().Size())-8+8+len(payload), buf.Len())

		loaded, raw, err := Load(&buf)
		require.NoError(t, err)
		require.Equal(t, payload, raw)
		require.Equal(t, []byte(data), loaded.Data())
		require.Equal(t, c.Frequencies(), loaded.Frequencies())

		out, err := loaded.Decompress(raw)
		require.NoError(t, err)
		require.Equal(t, []byte(data), out)

		for _, symbol := range c.Table().Symbols() {
			expect, _ := c.Table().Lookup(symbol)
			actual, ok := loaded.Table().Lookup(symbol)
			require.True(t, ok)
			require.Equal(t, expect, actual, "code for %q", symbol)
		}
		require.Equal(t, c.Table().Len(), loaded.Table().Len())
	}
}

func saveTestCodec(t *testing.T, data string) []byte {
	t.Helper()
	c, err := Build([]byte(data))
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = c.Save(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_Corrupt(t *testing.T) {
	saved := saveTestCodec(t, "aabbbc")
	require.Len(t, saved, 8+2*5*12+8+2)
	countStart := 8 + 2*5*12

	type testRow struct {
		name   string
		mutate func(b []byte) []byte
		expect error
	}

	testData := [...]testRow{
		{"empty", func(b []byte) []byte { return nil }, ErrCorruptStream},
		{"offset past end", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b, 8+12*100)
			return b
		}, ErrCorruptStream},
		{"huge offset", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b, 1<<40)
			return b
		}, ErrCorruptStream},
		{"missing count", func(b []byte) []byte { return b[:countStart+3] }, ErrCorruptStream},
		{"zero count", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[countStart:], 0)
			return b
		}, ErrCorruptStream},
		{"count too large", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[countStart:], 1<<50)
			return b
		}, ErrTruncatedDecode},
		{"count disagrees with tree", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[countStart:], 7)
			return b
		}, ErrCorruptStream},
		{"truncated payload", func(b []byte) []byte { return b[:len(b)-1] }, ErrTruncatedDecode},
		{"no payload", func(b []byte) []byte { return b[:countStart+8] }, ErrTruncatedDecode},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			b := row.mutate(append([]byte(nil), saved...))
			c, raw, err := Load(bytes.NewReader(b))
			require.ErrorIs(t, err, row.expect)
			require.Nil(t, c)
			require.Nil(t, raw)
		})
	}
}

func TestCodec_Dump(t *testing.T) {
	c, err := Build([]byte("aabbbc"))
	require.NoError(t, err)

	expectDump := strings.Join([]string{
		"Codec{\n",
		"\tLen() = 6\n",
		"\tDistinct() = 3\n",
		"\tEncodedBits() = 9\n",
		"\tTree.Size() = 5\n",
		"}\n",
		"Table{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 2\n",
		"\tEncode('a') = \"00\"\n",
		"\tEncode('b') = \"1\"\n",
		"\tEncode('c') = \"01\"\n",
		"}\n",
		"(6, None)\n",
		"L-(3, None)\n",
		"L--(2, 'a')\n",
		"R--(1, 'c')\n",
		"R-(3, 'b')\n",
	}, "")

	var buf strings.Builder
	_, err = c.Dump(&buf)
	require.NoError(t, err)
	require.Equal(t, expectDump, buf.String())
}
