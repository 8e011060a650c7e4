// Package config provides type-safe environment variable loading with
// per-type caching. A .env file, when present, is loaded once before the
// first read; parsing uses the caarlos0/env library.
//
//	type DatabaseConfig struct {
//		Host string `env:"DB_HOST" envDefault:"localhost"`
//		Port int    `env:"DB_PORT" envDefault:"5432"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is parsed once per process; later loads of the
// same type return the cached value.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil or non-pointer target.
var ErrNilConfig = errors.New("config target must be a non-nil struct pointer")

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = make(map[reflect.Type]any)
)

// Load parses environment variables into the struct pointed to by target.
// The first call for a given type does the parse; subsequent calls copy the
// cached value. Missing required variables and malformed values return a
// descriptive error.
func Load(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNilConfig
	}

	// A missing .env file is not an error; real environments configure the
	// process directly.
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := v.Elem().Type()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: load %s: %w", typ, err)
	}

	cache[typ] = v.Elem().Interface()
	return nil
}

// MustLoad is like Load but panics on failure. Intended for startup paths
// where a missing variable should stop the process.
func MustLoad(target any) {
	if err := Load(target); err != nil {
		panic(err)
	}
}

// Reset clears the per-type cache. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cache = make(map[reflect.Type]any)
}
