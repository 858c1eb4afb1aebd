package verifier

import "net/http"

// Result is the outcome of a single verification. It serializes directly to
// the wire shape callers expect:
//
//	{"valid":true,"payload":{"userId":"u1","paymentId":"p1","isSuperAdmin":false}}
//	{"valid":false,"reason":"token_expired"}
type Result struct {
	Valid   bool    `json:"valid"`
	Payload *Claims `json:"payload,omitempty"`
	Reason  Reason  `json:"reason,omitempty"`
}

// Accept builds a successful result.
func Accept(claims Claims) Result {
	return Result{Valid: true, Payload: &claims}
}

// Reject builds a failed result carrying reason.
func Reject(reason Reason) Result {
	return Result{Reason: reason}
}

// StatusCode returns the HTTP status matching the result.
func (r Result) StatusCode() int {
	if r.Valid {
		return http.StatusOK
	}
	return r.Reason.StatusCode()
}

// Err returns nil for valid results and the reason's sentinel error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.Reason.Err()
}
