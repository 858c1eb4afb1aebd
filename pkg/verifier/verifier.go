package verifier

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// DefaultMaxTokenLength bounds the work done on a single token.
	DefaultMaxTokenLength = 8192

	segmentCount = 3
)

// Verifier checks tokens signed with a fixed HMAC-SHA256 key.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	scheme    Scheme
	maxLength int
	logger    *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithMaxTokenLength overrides DefaultMaxTokenLength. Non-positive values are ignored.
func WithMaxTokenLength(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.maxLength = n
		}
	}
}

// WithLogger sets the logger used to report internal faults.
// Rejections are never logged here; that is the caller's decision.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Verifier bound to secret.
func New(secret Secret, opts ...Option) (*Verifier, error) {
	if secret.IsZero() {
		return nil, ErrMissingSecret
	}

	v := &Verifier{
		scheme:    HS256(secret),
		maxLength: DefaultMaxTokenLength,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Verify runs the full pipeline and never panics. Internal faults, including
// a Verifier not built with New, are reported as ReasonInternalError.
func (v *Verifier) Verify(token string, now time.Time) (res Result) {
	if !v.ready() {
		return Reject(ReasonInternalError)
	}

	defer func() {
		if r := recover(); r != nil {
			if v.logger != nil {
				v.logger.Error("token verification panicked", slog.Any("panic", r))
			}
			res = Reject(ReasonInternalError)
		}
	}()

	claims, err := v.Parse(token, now)
	if err != nil {
		return Reject(ReasonOf(err))
	}

	return Accept(claims)
}

// Parse runs the pipeline and returns the sanitized claims, or an error
// wrapping exactly one of the package sentinel errors. Stages run in order
// and the first failure wins:
//
//  1. structure: exactly three dot-separated segments
//  2. signature: HMAC-SHA256 over header.payload
//  3. payload: base64url, UTF-8, JSON object
//  4. expiry: exp present and now >= exp
//  5. audience and fields: no superadmin, userId and paymentId present
func (v *Verifier) Parse(token string, now time.Time) (Claims, error) {
	if !v.ready() {
		return Claims{}, fmt.Errorf("%w: verifier not initialized", ErrInternal)
	}

	header, payload, signature, err := v.split(token)
	if err != nil {
		return Claims{}, err
	}

	if err := v.scheme.Verify(header+"."+payload, signature); err != nil {
		return Claims{}, err
	}

	claims, err := decodeClaims(payload)
	if err != nil {
		return Claims{}, err
	}

	if err := checkExpiry(claims, now); err != nil {
		return Claims{}, err
	}

	return authorize(claims)
}

func (v *Verifier) ready() bool {
	return v != nil && v.scheme != nil
}

func (v *Verifier) split(token string) (header, payload, signature string, err error) {
	if token == "" {
		return "", "", "", fmt.Errorf("%w: empty token", ErrInvalidFormat)
	}
	if len(token) > v.maxLength {
		return "", "", "", fmt.Errorf("%w: token exceeds %d bytes", ErrInvalidFormat, v.maxLength)
	}

	parts := strings.Split(token, ".")
	if len(parts) != segmentCount {
		return "", "", "", fmt.Errorf("%w: token must have %d segments, got %d", ErrInvalidFormat, segmentCount, len(parts))
	}

	return parts[0], parts[1], parts[2], nil
}

// Verify is the functional form of Verifier.Verify for one-off checks.
// A zero secret yields ReasonInternalError.
func Verify(token string, secret Secret, now time.Time) Result {
	v, err := New(secret)
	if err != nil {
		return Reject(ReasonInternalError)
	}
	return v.Verify(token, now)
}
