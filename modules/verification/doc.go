// Package verification serves payment-session token checks over HTTP.
//
// POST /verify (and /api/verify-token) accepts {"token":"..."} and answers
// with the verifier.Result JSON:
//
//	200 {"valid":true,"payload":{"userId":"u1","paymentId":"p1","isSuperAdmin":false}}
//	401 {"valid":false,"reason":"token_expired"}
//
// Status codes follow verifier.Reason.StatusCode. The HTTP layer adds
// method_not_allowed (405) and rate_limited (429).
package verification
