package signature

import (
	"encoding/hex"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for n := 1; n <= 96; n++ {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(rng.UintN(256))
		}

		got, err := DecodeHex(hex.EncodeToString(b))
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, b, got)
	}
}

func TestDecodeHex_UpperCase(t *testing.T) {
	got, err := DecodeHex("DEADBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)
}

func TestDecodeHex_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "single nibble", input: "a"},
		{name: "odd length", input: "abc"},
		{name: "non-hex", input: "zz"},
		{name: "non-hex tail", input: "00ff0g"},
		{name: "whitespace", input: "00 ff"},
		{name: "prefix", input: "0x00ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHex(tt.input)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrMalformedEncoding), "err = %v", err)
		})
	}
}

func TestDecodeFixed_Length(t *testing.T) {
	_, err := decodeFixed("0011", 3)
	assert.ErrorIs(t, err, ErrMalformedEncoding)

	got, err := decodeFixed("001122", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
