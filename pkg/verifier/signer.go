package verifier

import (
	"encoding/json"
	"fmt"
)

// DefaultHeader is the header a Signer emits. Verifiers treat the header as
// opaque signed bytes, so its content is informational only.
const DefaultHeader = `{"alg":"HS256","typ":"JWT"}`

// Signer produces tokens in the format Verifier accepts.
// It exists for tests and for collaborators embedding this package;
// the verification service itself never issues tokens.
type Signer struct {
	scheme Scheme
}

// NewSigner creates a Signer keyed with secret.
func NewSigner(secret Secret) (*Signer, error) {
	if secret.IsZero() {
		return nil, ErrMissingSecret
	}
	return &Signer{scheme: HS256(secret)}, nil
}

// Sign JSON-encodes claims under DefaultHeader and returns the signed token.
func (s *Signer) Sign(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	return s.SignRaw([]byte(DefaultHeader), payload), nil
}

// SignRaw encodes the given header and payload bytes verbatim and signs them.
// No validation is performed on either part.
func (s *Signer) SignRaw(header, payload []byte) string {
	signingInput := segmentEncoding.EncodeToString(header) + "." + segmentEncoding.EncodeToString(payload)
	return signingInput + "." + s.scheme.Sign(signingInput)
}
