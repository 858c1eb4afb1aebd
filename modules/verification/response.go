package verification

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/paytoken/pkg/verifier"
)

// WriteResult renders res with the status code matching its reason.
func WriteResult(w http.ResponseWriter, res verifier.Result) {
	writeJSON(w, res.StatusCode(), res)
}

// MethodNotAllowed answers non-POST requests to the verify endpoint.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeJSON(w, http.StatusMethodNotAllowed, verifier.Reject(ReasonMethodNotAllowed))
}

// RateLimited is the denial body used with ratelimiter.WithLimitedHandler.
func RateLimited(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusTooManyRequests, verifier.Reject(ReasonRateLimited))
}

// Recoverer turns a panic in the handler chain into an internal_error
// response. The panic value and stack are logged, never returned.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic while handling request",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				WriteResult(w, verifier.Reject(verifier.ReasonInternalError))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
