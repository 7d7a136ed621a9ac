package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there are no symbols to build a tree from.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrUnrepresentableSymbol is returned when a byte has no code in the table.
	ErrUnrepresentableSymbol = errors.New("huffman: symbol has no code")

	// ErrCorruptStream is returned when a persisted stream is short or malformed.
	ErrCorruptStream = errors.New("huffman: corrupt stream")

	// ErrTruncatedDecode is returned when the payload ends before every symbol
	// has been decoded.
	ErrTruncatedDecode = errors.New("huffman: truncated payload")
)

// UnrepresentableSymbolError reports the first input byte that the encoding
// table cannot represent.
type UnrepresentableSymbolError struct {
	Symbol Symbol
	Offset int
}

// Error fulfills the error interface.
func (err *UnrepresentableSymbolError) Error() string {
	return fmt.Sprintf("%v: byte 0x%02x at offset %d", ErrUnrepresentableSymbol, err.Symbol, err.Offset)
}

// Is allows errors.Is(err, ErrUnrepresentableSymbol).
func (err *UnrepresentableSymbolError) Is(target error) bool {
	return target == ErrUnrepresentableSymbol
}

var _ error = (*UnrepresentableSymbolError)(nil)

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptStream, fmt.Sprintf(format, args...))
}
