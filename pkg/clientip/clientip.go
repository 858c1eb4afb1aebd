package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Common proxy headers, in the order most deployments should trust them.
const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
)

// Resolver determines the client address of a request.
// Headers are consulted in order and only when listed: a service reachable
// without a proxy must not trust any header, or callers can pick their own
// rate-limit bucket.
type Resolver struct {
	headers []string
}

// New returns a Resolver trusting the given headers in order.
// With no headers only RemoteAddr is used.
func New(trustedHeaders ...string) Resolver {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, http.CanonicalHeaderKey(h))
		}
	}
	return Resolver{headers: headers}
}

// IP returns the normalized client IP, or an empty string if none is valid.
func (res Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		// X-Forwarded-For may carry a chain; the first valid entry is the client.
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved IP in the request context.
func (res Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
