// Package signature verifies Ed25519 detached signatures on interaction
// callbacks.
//
// The platform signs the concatenation of the X-Signature-Timestamp header
// and the raw request body. Every failure mode (missing header, bad hex,
// wrong length, bad signature) collapses to false so callers cannot tell
// which check failed.
package signature

import (
	"crypto/ed25519"
	"errors"
	"fmt"
)

// Header names carrying the detached signature and its timestamp.
const (
	SignatureHeader = "X-Signature-Ed25519"
	TimestampHeader = "X-Signature-Timestamp"
)

// ErrInvalidPublicKey is returned when a configured key is not a 32-byte hex value.
var ErrInvalidPublicKey = errors.New("invalid Ed25519 public key")

// ParsePublicKey decodes a hex-encoded Ed25519 public key (64 hex chars).
func ParsePublicKey(publicKeyHex string) (ed25519.PublicKey, error) {
	b, err := decodeFixed(publicKeyHex, ed25519.PublicKeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return ed25519.PublicKey(b), nil
}

// Message builds the signed message: timestamp bytes followed by the body.
func Message(timestamp string, body []byte) []byte {
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	return append(msg, body...)
}

// Verify reports whether signatureHex is a valid signature over
// timestamp||body for publicKeyHex. It never panics.
func Verify(timestamp string, body []byte, signatureHex, publicKeyHex string) bool {
	key, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return false
	}
	return verifyWithKey(key, timestamp, body, signatureHex)
}

// Verifier checks signatures against a public key decoded once at startup.
// It is immutable and safe for concurrent use.
type Verifier struct {
	key ed25519.PublicKey
}

// NewVerifier decodes publicKeyHex and returns a Verifier bound to it.
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	key, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return nil, err
	}
	return &Verifier{key: key}, nil
}

// Verify reports whether signatureHex signs timestamp||body.
func (v *Verifier) Verify(timestamp string, body []byte, signatureHex string) bool {
	return verifyWithKey(v.key, timestamp, body, signatureHex)
}

// PublicKey returns a copy of the bound key.
func (v *Verifier) PublicKey() ed25519.PublicKey {
	return append(ed25519.PublicKey(nil), v.key...)
}

func verifyWithKey(key ed25519.PublicKey, timestamp string, body []byte, signatureHex string) bool {
	if len(key) != ed25519.PublicKeySize {
		return false
	}
	if timestamp == "" || signatureHex == "" {
		return false
	}

	sig, err := decodeFixed(signatureHex, ed25519.SignatureSize)
	if err != nil {
		return false
	}

	return ed25519.Verify(key, Message(timestamp, body), sig)
}
