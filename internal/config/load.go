package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// ErrConfigValidation wraps semantic validation failures (as opposed to
// TOML syntax or filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

// Env is the environment lookup used by Load.
type Env interface {
	Getenv(key string) string
}

// OSEnv reads the process environment.
type OSEnv struct{}

// Getenv returns the value of the environment variable named by key.
func (OSEnv) Getenv(key string) string {
	return os.Getenv(key)
}

// Load resolves the configuration: defaults, then the TOML file (if any),
// then environment overrides. The result is validated.
func Load(env Env) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(env.Getenv(EnvConfigPath))
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := ParseInto(&cfg, data, path); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}

	applyEnv(&cfg, env)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseInto decodes TOML data over cfg, rejecting unknown keys.
// source is used in error messages.
func ParseInto(cfg *Config, data []byte, source string) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	return nil
}

// decodeStrict re-decodes data with unknown-field rejection, which
// toml.Unmarshal does not do on its own.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

func applyEnv(cfg *Config, env Env) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(env.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Arch, EnvArch)
	set(&cfg.OS, EnvOS)
	set(&cfg.Root, EnvRoot)
	set(&cfg.BaseURL, EnvBaseURL)
	set(&cfg.LogLevel, EnvLogLevel)
	set(&cfg.LogFile, EnvLogFile)
}
