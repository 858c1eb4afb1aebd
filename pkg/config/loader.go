package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache stores one parsed value per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	global = &cache{values: make(map[reflect.Type]any)}

	defaultEnvMu     sync.Mutex
	defaultEnvLoaded bool
)

// Load parses environment variables into v using `env` struct tags.
// Each configuration type is parsed once; later calls copy the cached value.
// The default .env file in the working directory is loaded on first use if
// it exists; variables already present in the environment win.
//
// Example:
//
//	type VerifierConfig struct {
//		Secret    string `env:"TOKEN_SECRET,required"`
//		MaxLength int    `env:"TOKEN_MAX_LENGTH" envDefault:"8192"`
//	}
//
//	var cfg VerifierConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	loadDefaultEnv()

	key := typeKey[T]()

	global.mu.Lock()
	defer global.mu.Unlock()

	if cached, ok := global.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	global.values[key] = parsed
	*v = parsed

	return nil
}

// MustLoad works like Load but panics on failure.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReload discards the cached value for T and parses the environment again.
func ForceReload[T any](v *T) error {
	global.mu.Lock()
	delete(global.values, typeKey[T]())
	global.mu.Unlock()

	return Load(v)
}

// LoadEnv loads the given .env files into the process environment.
// Without arguments the default .env file is loaded. Later files override
// earlier ones; variables already set in the environment are never replaced.
func LoadEnv(paths ...string) error {
	defaultEnvMu.Lock()
	defaultEnvLoaded = true
	defaultEnvMu.Unlock()

	if len(paths) == 0 {
		return godotenv.Load()
	}

	// godotenv.Load keeps the first value it sees, so reverse the order to
	// give later files precedence.
	for i := len(paths) - 1; i >= 0; i-- {
		if err := godotenv.Load(paths[i]); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// ResetCache drops every cached configuration value. Intended for tests.
func ResetCache() {
	global.mu.Lock()
	global.values = make(map[reflect.Type]any)
	global.mu.Unlock()

	defaultEnvMu.Lock()
	defaultEnvLoaded = false
	defaultEnvMu.Unlock()
}

func loadDefaultEnv() {
	defaultEnvMu.Lock()
	defer defaultEnvMu.Unlock()

	if defaultEnvLoaded {
		return
	}
	defaultEnvLoaded = true

	// A missing .env file is not an error.
	_ = godotenv.Load()
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
