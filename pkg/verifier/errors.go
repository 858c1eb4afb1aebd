package verifier

import "errors"

var (
	ErrMissingSecret    = errors.New("verifier: missing secret")
	ErrNoToken          = errors.New("verifier: no token provided")
	ErrInvalidFormat    = errors.New("verifier: invalid token format")
	ErrInvalidSignature = errors.New("verifier: invalid signature")
	ErrSignatureLength  = errors.New("verifier: signature length mismatch")
	ErrInvalidPayload   = errors.New("verifier: invalid payload")
	ErrTokenExpired     = errors.New("verifier: token is expired")
	ErrSuperAdmin       = errors.New("verifier: superadmin token not allowed")
	ErrMissingClaims    = errors.New("verifier: missing claims")
	ErrInternal         = errors.New("verifier: internal error")
)
