package signature

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrMalformedEncoding is returned for empty, odd-length or non-hex input.
var ErrMalformedEncoding = errors.New("malformed hex encoding")

// DecodeHex converts a hexadecimal string to raw bytes.
// Partial input is rejected rather than truncated.
func DecodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedEncoding)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return b, nil
}

// decodeFixed decodes s and requires exactly size bytes.
func decodeFixed(s string, size int) ([]byte, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedEncoding, size, len(b))
	}
	return b, nil
}
