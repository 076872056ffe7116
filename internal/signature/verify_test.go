package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) (ed25519.PrivateKey, string) {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 7)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv, hex.EncodeToString(priv.Public().(ed25519.PublicKey))
}

func TestVerify(t *testing.T) {
	priv, pubHex := newTestKey(t)
	_, otherPubHex, err := GenerateKey()
	require.NoError(t, err)

	timestamp := "1700000000"
	body := []byte(`{"type":1}`)
	sig := Sign(priv, timestamp, body)

	tests := []struct {
		name      string
		timestamp string
		body      []byte
		signature string
		publicKey string
		want      bool
	}{
		{name: "valid", timestamp: timestamp, body: body, signature: sig, publicKey: pubHex, want: true},
		{name: "valid upper-case hex", timestamp: timestamp, body: body, signature: strings.ToUpper(sig), publicKey: pubHex, want: true},
		{name: "tampered body", timestamp: timestamp, body: []byte(`{"type":2}`), signature: sig, publicKey: pubHex},
		{name: "tampered timestamp", timestamp: "1700000001", body: body, signature: sig, publicKey: pubHex},
		{name: "wrong key", timestamp: timestamp, body: body, signature: sig, publicKey: otherPubHex},
		{name: "missing signature", timestamp: timestamp, body: body, signature: "", publicKey: pubHex},
		{name: "missing timestamp", timestamp: "", body: body, signature: sig, publicKey: pubHex},
		{name: "malformed signature hex", timestamp: timestamp, body: body, signature: "not-hex", publicKey: pubHex},
		{name: "short signature", timestamp: timestamp, body: body, signature: sig[:126], publicKey: pubHex},
		{name: "long signature", timestamp: timestamp, body: body, signature: sig + "00", publicKey: pubHex},
		{name: "odd signature", timestamp: timestamp, body: body, signature: sig[:127], publicKey: pubHex},
		{name: "short public key", timestamp: timestamp, body: body, signature: sig, publicKey: pubHex[:62]},
		{name: "malformed public key", timestamp: timestamp, body: body, signature: sig, publicKey: strings.Repeat("x", 64)},
		{name: "empty public key", timestamp: timestamp, body: body, signature: sig, publicKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.timestamp, tt.body, tt.signature, tt.publicKey))
		})
	}
}

func TestVerify_SingleBitMutations(t *testing.T) {
	priv, pubHex := newTestKey(t)
	timestamp := "1700000000"
	body := []byte(`{"type":2,"data":{"options":[{"name":"category","value":"cat"}]}}`)
	sig := Sign(priv, timestamp, body)
	require.True(t, Verify(timestamp, body, sig, pubHex))

	t.Run("body", func(t *testing.T) {
		for i := 0; i < len(body)*8; i++ {
			mutated := append([]byte(nil), body...)
			mutated[i/8] ^= 1 << (i % 8)
			if Verify(timestamp, mutated, sig, pubHex) {
				t.Fatalf("bit %d of body flipped but signature still verified", i)
			}
		}
	})

	t.Run("timestamp", func(t *testing.T) {
		for i := 0; i < len(timestamp)*8; i++ {
			mutated := []byte(timestamp)
			mutated[i/8] ^= 1 << (i % 8)
			if Verify(string(mutated), body, sig, pubHex) {
				t.Fatalf("bit %d of timestamp flipped but signature still verified", i)
			}
		}
	})

	t.Run("signature", func(t *testing.T) {
		raw, err := hex.DecodeString(sig)
		require.NoError(t, err)
		for i := 0; i < len(raw)*8; i++ {
			mutated := append([]byte(nil), raw...)
			mutated[i/8] ^= 1 << (i % 8)
			if Verify(timestamp, body, hex.EncodeToString(mutated), pubHex) {
				t.Fatalf("bit %d of signature flipped but signature still verified", i)
			}
		}
	})
}

func TestVerifier(t *testing.T) {
	priv, pubHex := newTestKey(t)
	v, err := NewVerifier(pubHex)
	require.NoError(t, err)

	sig := Sign(priv, "42", []byte("hello"))
	assert.True(t, v.Verify("42", []byte("hello"), sig))
	assert.False(t, v.Verify("43", []byte("hello"), sig))
	assert.Equal(t, priv.Public(), v.PublicKey())
}

func TestNewVerifier_InvalidKey(t *testing.T) {
	for _, key := range []string{"", "abc", strings.Repeat("0", 62), strings.Repeat("g", 64)} {
		_, err := NewVerifier(key)
		assert.ErrorIs(t, err, ErrInvalidPublicKey, "key %q", key)
	}
}

func TestParsePrivateKey(t *testing.T) {
	pubHex, privHex, err := GenerateKey()
	require.NoError(t, err)

	fromSeed, err := ParsePrivateKey(privHex)
	require.NoError(t, err)
	assert.Equal(t, pubHex, hex.EncodeToString(fromSeed.Public().(ed25519.PublicKey)))

	full, err := ParsePrivateKey(hex.EncodeToString(fromSeed))
	require.NoError(t, err)
	assert.Equal(t, fromSeed, full)

	_, err = ParsePrivateKey("0011")
	assert.Error(t, err)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, []byte("123{}"), Message("123", []byte("{}")))
	assert.Equal(t, []byte("123"), Message("123", nil))
}
