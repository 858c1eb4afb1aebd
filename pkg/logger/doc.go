// Package logger builds *slog.Logger instances with functional options and
// context-aware attribute injection.
//
// New picks a JSON or text handler, applies static attributes, redacts
// sensitive keys and wraps everything in LogHandlerDecorator, which runs the
// registered ContextExtractor callbacks on every record (the request ID
// extractor from pkg/requestid is the usual one).
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "verifyd"),
//		logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "token rejected", logger.Reason(res.Reason))
//
// # Redaction
//
// Values of attributes named in DefaultRedactedKeys (secret, token,
// authorization, password) are replaced with "[REDACTED]". Add more with
// WithRedactedKeys. Redaction matches attribute keys, not values, so never
// log a secret under an innocuous key.
//
// # Attribute helpers
//
// Error, Reason, UserID, PaymentID, RequestID, ClientIP, Status, Duration and
// Component keep key names consistent. Helpers given a nil or empty value
// return an empty slog.Attr, which slog drops.
package logger
