package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/archetype"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/validation"
)

const (
	envPrefix  = "NAC_"
	envConfig  = "NAC_CONFIG"
	tagKoanf   = "koanf"
	keyDivider = "."
)

// Load builds a Config by layering defaults, an optional file and env vars.
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(keyDivider)

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// NAC_WORKER_COUNT -> worker_count. Keys are flat so underscores stay.
	envProvider := env.Provider(envPrefix, keyDivider, func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: tagKoanf}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// LoadArchetypeTable reads a YAML weight table from path. An empty path
// returns the built-in table. The result is always validated.
func LoadArchetypeTable(_ context.Context, path string) (archetype.Table, error) {
	if path == "" {
		return archetype.DefaultTable(), nil
	}

	k := koanf.New(keyDivider)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return archetype.Table{}, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}

	var t archetype.Table
	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{Tag: tagKoanf}); err != nil {
		return archetype.Table{}, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	if err := t.Validate(); err != nil {
		return archetype.Table{}, err
	}
	return t, nil
}
