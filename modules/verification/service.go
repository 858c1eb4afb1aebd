package verification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/paytoken/pkg/logger"
	"github.com/dmitrymomot/paytoken/pkg/verifier"
)

// Reasons produced by the HTTP layer rather than the token pipeline.
const (
	ReasonMethodNotAllowed verifier.Reason = "method_not_allowed"
	ReasonRateLimited      verifier.Reason = "rate_limited"
)

// bodyOverhead is room for the JSON envelope around the token.
const bodyOverhead = 1 << 10

// TokenVerifier is the subset of *verifier.Verifier the service needs.
type TokenVerifier interface {
	Verify(token string, now time.Time) verifier.Result
}

// Request is the body accepted by the verify endpoint.
type Request struct {
	Token string `json:"token"`
}

// Service exposes token verification over HTTP.
type Service struct {
	verifier     TokenVerifier
	logger       *slog.Logger
	now          func() time.Time
	maxBodyBytes int64
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for verification outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source passed to the verifier.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxTokenLength sizes the request body limit for tokens of n bytes.
func WithMaxTokenLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBodyBytes = int64(n) + bodyOverhead
		}
	}
}

// NewService creates the verification service.
func NewService(v TokenVerifier, opts ...Option) *Service {
	s := &Service{
		verifier:     v,
		logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
		maxBodyBytes: verifier.DefaultMaxTokenLength + bodyOverhead,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the endpoint: POST verifies, any other method gets 405.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.MethodNotAllowed(MethodNotAllowed)
	r.Post("/", s.verify)
	return r
}

func (s *Service) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, reason := s.readToken(w, r)
	if reason != "" {
		s.logRejection(ctx, reason)
		WriteResult(w, verifier.Reject(reason))
		return
	}

	res := s.verifier.Verify(token, s.now())
	switch {
	case res.Valid:
		s.logger.InfoContext(ctx, "token accepted",
			logger.UserID(res.Payload.UserID),
			logger.PaymentID(res.Payload.PaymentID),
		)
	default:
		s.logRejection(ctx, res.Reason)
	}

	WriteResult(w, res)
}

// readToken decodes the body. Anything that does not yield a non-empty
// string token is reported as no_token_provided; a body too large to hold a
// valid token is invalid_format.
func (s *Service) readToken(w http.ResponseWriter, r *http.Request) (string, verifier.Reason) {
	var req Request
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&req)

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return "", verifier.ReasonInvalidFormat
	case err != nil && !errors.Is(err, io.EOF):
		return "", verifier.ReasonNoTokenProvided
	case req.Token == "":
		return "", verifier.ReasonNoTokenProvided
	}

	return req.Token, ""
}

func (s *Service) logRejection(ctx context.Context, reason verifier.Reason) {
	if reason == verifier.ReasonInternalError {
		s.logger.ErrorContext(ctx, "token verification failed", logger.Reason(reason))
		return
	}
	s.logger.InfoContext(ctx, "token rejected", logger.Reason(reason))
}
