package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mountable is implemented by services that expose their own sub-router.
type Mountable interface {
	Handle() http.Handler
}

// Paths the verify endpoint is served on. The second keeps older clients working.
const (
	PathVerify       = "/verify"
	PathVerifyLegacy = "/api/verify-token"
)

// RouterOptions configures the verification module.
type RouterOptions struct {
	Verify Mountable

	// Middlewares wrap POST requests to the verify endpoints, e.g. rate
	// limiting. Other methods go straight to the 405 handler.
	Middlewares []func(http.Handler) http.Handler
}

// Router mounts the verify endpoint on both of its paths.
//
//	r := chi.NewRouter()
//	r.Mount("/", verification.Router(verification.RouterOptions{
//		Verify:      verification.NewService(v, verification.WithLogger(log)),
//		Middlewares: []func(http.Handler) http.Handler{limit},
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Verify == nil {
		return r
	}

	h := opts.Verify.Handle()
	wrapped := chi.Chain(opts.Middlewares...).Handler(h)
	gated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			h.ServeHTTP(w, r)
			return
		}
		wrapped.ServeHTTP(w, r)
	})

	r.Mount(PathVerify, gated)
	r.Mount(PathVerifyLegacy, gated)

	return r
}
