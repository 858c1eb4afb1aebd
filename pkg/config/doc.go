// Package config loads typed configuration from the process environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the environment, later files
//     taking precedence and real environment variables always winning.
//   - Load parses the environment into any struct annotated with `env` tags
//     and caches the result per type for the lifetime of the process.
//   - MustLoad and MustLoadEnv panic instead of returning errors, for values
//     the process cannot start without (the token secret, for one).
//   - ResetCache and ForceReload exist for tests that mutate the environment.
//
// # Usage
//
//	type VerifierConfig struct {
//		Secret    string `env:"TOKEN_SECRET,required"`
//		MaxLength int    `env:"TOKEN_MAX_LENGTH" envDefault:"8192"`
//	}
//
//	var cfg VerifierConfig
//	config.MustLoad(&cfg)
//
// # Errors
//
// ErrParsingConfig, ErrLoadingEnvFile and ErrNilPointer are sentinel values
// joined with the underlying cause; compare them with errors.Is.
package config
