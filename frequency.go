package huffman

// Frequencies counts the occurrences of each Symbol.  A count of 0 means the
// Symbol does not occur.
type Frequencies [NumSymbols]uint64

// CountFrequencies scans data and returns the count of each byte value.
func CountFrequencies(data []byte) Frequencies {
	var f Frequencies
	f.Add(data)
	return f
}

// Add counts the bytes in data on top of the existing counts.
func (f *Frequencies) Add(data []byte) {
	for _, b := range data {
		f[b]++
	}
}

// Distinct returns the number of Symbols with a non-zero count.
func (f *Frequencies) Distinct() int {
	var n int
	for _, freq := range f {
		if freq != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (f *Frequencies) Total() uint64 {
	var sum uint64
	for _, freq := range f {
		sum += freq
	}
	return sum
}
