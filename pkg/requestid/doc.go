// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware accepts a client-supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-]; anything else is replaced with a fresh UUIDv4.
// The ID is stored in the request context (FromContext) and echoed in the
// response header. LoggerExtractor plugs the ID into pkg/logger so every
// record logged with the request context carries "request_id".
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
