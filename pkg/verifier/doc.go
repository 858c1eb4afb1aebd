// Package verifier decides whether a payment-session token is authentic,
// unexpired and issued for a normal user.
//
// A token is three unpadded base64url segments, header.payload.signature.
// The signature is HMAC-SHA256 over the first two segments exactly as they
// appear in the token. The header is never decoded: the algorithm is fixed
// and nothing inside the token can change it.
//
// # Pipeline
//
// Verify runs five checks and stops at the first failure:
//
//   - structure: exactly three segments, within the length limit
//   - signature: length check, then constant-time comparison
//   - payload: base64url, UTF-8 and a JSON object
//   - expiry: rejected when exp is present and now >= exp
//   - audience: isSuperAdmin == true is refused, userId and paymentId are required
//
// A successful result echoes only userId, paymentId and isSuperAdmin.
// Every failure carries one Reason from a closed set.
//
// # Usage
//
//	secret, err := verifier.NewSecretFromString(os.Getenv("TOKEN_SECRET"))
//	if err != nil {
//		// handle missing secret
//	}
//
//	v, err := verifier.New(secret)
//	if err != nil {
//		// handle error
//	}
//
//	res := v.Verify(token, time.Now())
//	if !res.Valid {
//		http.Error(w, res.Reason.String(), res.StatusCode())
//	}
//
// Verify reads no clock of its own; the caller passes now, which keeps the
// result a pure function of its inputs.
//
// # Errors
//
// Parse returns errors wrapping the sentinel values in errors.go; ReasonOf
// maps them back to a Reason. Verify never returns an error and never panics.
package verifier
