package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateKey returns a fresh hex-encoded key pair. The private key is the
// 32-byte seed.
func GenerateKey() (publicKeyHex, privateKeyHex string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(pub), hex.EncodeToString(priv.Seed()), nil
}

// ParsePrivateKey accepts either a 32-byte seed or a 64-byte private key, hex-encoded.
func ParsePrivateKey(privateKeyHex string) (ed25519.PrivateKey, error) {
	b, err := DecodeHex(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	switch len(b) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(b), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(b), nil
	default:
		return nil, fmt.Errorf("invalid private key: want %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(b))
	}
}

// Sign returns the hex signature over timestamp||body, in the form the
// platform sends in X-Signature-Ed25519.
func Sign(key ed25519.PrivateKey, timestamp string, body []byte) string {
	return hex.EncodeToString(ed25519.Sign(key, Message(timestamp, body)))
}
