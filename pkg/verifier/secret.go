package verifier

import "log/slog"

const redacted = "[REDACTED]"

// Secret holds the shared HMAC key. It is built once at startup and never
// mutated afterwards. Every textual representation is redacted so the key
// cannot end up in logs or responses by accident.
type Secret struct {
	key []byte
}

// NewSecret copies key into a new Secret.
func NewSecret(key []byte) (Secret, error) {
	if len(key) == 0 {
		return Secret{}, ErrMissingSecret
	}
	return Secret{key: append([]byte(nil), key...)}, nil
}

// NewSecretFromString is a convenience wrapper around NewSecret for
// environment-sourced configuration.
func NewSecretFromString(key string) (Secret, error) {
	return NewSecret([]byte(key))
}

// IsZero reports whether the secret carries no key material.
func (s Secret) IsZero() bool { return len(s.key) == 0 }

func (s Secret) String() string   { return redacted }
func (s Secret) GoString() string { return redacted }

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }
