package verifier

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// segmentEncoding is the unpadded URL-safe alphabet used by all three token
// segments. Strict decoding rejects non-zero trailing bits so every byte
// sequence has exactly one valid encoding.
var segmentEncoding = base64.RawURLEncoding.Strict()

// Scheme computes and checks the MAC carried in the third token segment.
// signingInput is always the header and payload segments exactly as they
// appear in the token, joined by a dot.
type Scheme interface {
	Sign(signingInput string) string
	Verify(signingInput, signature string) error
}

// HS256 returns the HMAC-SHA256 scheme keyed with secret.
// It is the only scheme tokens are ever checked against.
func HS256(secret Secret) Scheme {
	return hs256{key: secret.key}
}

type hs256 struct {
	key []byte
}

func (h hs256) sum(signingInput string) []byte {
	mac := hmac.New(sha256.New, h.key)
	_, _ = io.WriteString(mac, signingInput)
	return mac.Sum(nil)
}

// Sign returns the encoded signature segment for signingInput.
func (h hs256) Sign(signingInput string) string {
	return segmentEncoding.EncodeToString(h.sum(signingInput))
}

// Verify compares the decoded signature against the recomputed digest.
// Lengths are compared first; only equal-length signatures reach the
// constant-time byte comparison.
func (h hs256) Verify(signingInput, signature string) error {
	// The decoder skips CR and LF, which would make signatures malleable.
	if strings.ContainsAny(signature, "\r\n") {
		return fmt.Errorf("%w: unexpected line break", ErrInvalidSignature)
	}

	got, err := segmentEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: decode: %w", ErrInvalidSignature, err)
	}

	want := h.sum(signingInput)
	if len(got) != len(want) {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, ErrSignatureLength)
	}

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrInvalidSignature
	}

	return nil
}
