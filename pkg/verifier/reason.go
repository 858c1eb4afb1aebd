package verifier

import (
	"errors"
	"net/http"
)

// Reason is the machine-readable cause of a rejected token.
// The set is closed: callers may switch on it exhaustively.
type Reason string

const (
	ReasonNoTokenProvided      Reason = "no_token_provided"
	ReasonInvalidFormat        Reason = "invalid_format"
	ReasonInvalidSignature     Reason = "invalid_signature"
	ReasonInvalidPayload       Reason = "invalid_payload"
	ReasonTokenExpired         Reason = "token_expired"
	ReasonSuperAdminNotAllowed Reason = "superadmin_not_allowed"
	ReasonMissingClaims        Reason = "missing_claims"
	ReasonInternalError        Reason = "internal_error"
)

// reasons maps each sentinel error to its reason. Order matters only for
// readability; a pipeline error wraps exactly one sentinel.
var reasons = []struct {
	err    error
	reason Reason
}{
	{ErrNoToken, ReasonNoTokenProvided},
	{ErrInvalidFormat, ReasonInvalidFormat},
	{ErrInvalidSignature, ReasonInvalidSignature},
	{ErrInvalidPayload, ReasonInvalidPayload},
	{ErrTokenExpired, ReasonTokenExpired},
	{ErrSuperAdmin, ReasonSuperAdminNotAllowed},
	{ErrMissingClaims, ReasonMissingClaims},
}

// ReasonOf classifies an error returned by Parse.
// Unknown errors are reported as ReasonInternalError so internals never leak.
func ReasonOf(err error) Reason {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonInternalError
}

// Err returns the sentinel error for the reason.
func (r Reason) Err() error {
	for _, known := range reasons {
		if known.reason == r {
			return known.err
		}
	}
	return ErrInternal
}

// StatusCode maps the reason to the HTTP status an HTTP-transported caller should use.
func (r Reason) StatusCode() int {
	switch r {
	case ReasonNoTokenProvided, ReasonInvalidFormat, ReasonInvalidPayload, ReasonMissingClaims:
		return http.StatusBadRequest
	case ReasonInvalidSignature, ReasonTokenExpired:
		return http.StatusUnauthorized
	case ReasonSuperAdminNotAllowed:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (r Reason) String() string { return string(r) }
