package verifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// Claim names read from the payload.
const (
	ClaimUserID       = "userId"
	ClaimPaymentID    = "paymentId"
	ClaimIsSuperAdmin = "isSuperAdmin"
	ClaimExpiresAt    = "exp"
)

// Claims is the sanitized claim set returned for an accepted token.
// No other payload field is ever exposed.
type Claims struct {
	UserID       string `json:"userId"`
	PaymentID    string `json:"paymentId"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

// decodeClaims turns the payload segment into a JSON object.
// Numbers are kept as json.Number so large exp values are not rounded.
func decodeClaims(segment string) (map[string]any, error) {
	raw, err := segmentEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidPayload, err)
	}

	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", ErrInvalidPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var claims map[string]any
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %w", ErrInvalidPayload, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidPayload)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidPayload)
	}

	return claims, nil
}

// checkExpiry rejects tokens whose exp is at or before now.
// A missing or null exp never expires.
func checkExpiry(claims map[string]any, now time.Time) error {
	raw, ok := claims[ClaimExpiresAt]
	if !ok || raw == nil {
		return nil
	}

	num, ok := raw.(json.Number)
	if !ok {
		return fmt.Errorf("%w: %s is not numeric", ErrInvalidPayload, ClaimExpiresAt)
	}

	if exp, err := num.Int64(); err == nil {
		if now.Unix() >= exp {
			return ErrTokenExpired
		}
		return nil
	}

	exp, err := num.Float64()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, ClaimExpiresAt, err)
	}
	if float64(now.Unix()) >= exp {
		return ErrTokenExpired
	}

	return nil
}

// authorize applies the audience rule and extracts the echoed claims.
// Only the boolean true marks a superadmin token; the check runs before
// field presence so elevated tokens are refused even when incomplete.
func authorize(claims map[string]any) (Claims, error) {
	if admin, _ := claims[ClaimIsSuperAdmin].(bool); admin {
		return Claims{}, ErrSuperAdmin
	}

	userID, _ := claims[ClaimUserID].(string)
	if userID == "" {
		return Claims{}, fmt.Errorf("%w: %s", ErrMissingClaims, ClaimUserID)
	}

	paymentID, _ := claims[ClaimPaymentID].(string)
	if paymentID == "" {
		return Claims{}, fmt.Errorf("%w: %s", ErrMissingClaims, ClaimPaymentID)
	}

	return Claims{
		UserID:       userID,
		PaymentID:    paymentID,
		IsSuperAdmin: false,
	}, nil
}
