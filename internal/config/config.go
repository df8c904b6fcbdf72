// Package config loads wayfinder settings from a YAML file, a .env file and
// WAYFINDER_* environment variables, in increasing order of precedence.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// EnvPrefix prefixes every environment variable that overrides a setting.
// Nested keys are joined with underscores: WAYFINDER_STORE_REDIS_ADDR.
const EnvPrefix = "WAYFINDER_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the complete runtime configuration.
type Config struct {
	Strategy      string      `mapstructure:"strategy" yaml:"strategy"`
	LogLevel      string      `mapstructure:"log_level" yaml:"log_level"`
	VerifySensing bool        `mapstructure:"verify_sensing" yaml:"verify_sensing"`
	Store         StoreConfig `mapstructure:"store" yaml:"store"`
	HTTP          HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// StoreConfig selects where solutions are persisted.
type StoreConfig struct {
	Backend string      `mapstructure:"backend" yaml:"backend"`
	Path    string      `mapstructure:"path" yaml:"path"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis"`

	// EncryptionKey, when set, seals stored solutions with AES-256-GCM.
	// Keys are base64 encoded 32 byte values.
	EncryptionKey string   `mapstructure:"encryption_key" yaml:"encryption_key"`
	PreviousKeys  []string `mapstructure:"previous_keys" yaml:"previous_keys"`
}

// Keys decodes the encryption keys. The active key is nil when encryption
// is off.
func (s StoreConfig) Keys() (active []byte, previous [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	if active, err = decodeKey(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("encryption_key: %w", err)
	}
	for i, k := range s.PreviousKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("previous_keys[%d]: %w", i, err)
		}
		previous = append(previous, key)
	}
	return active, previous, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// HTTPConfig holds the server settings.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Strategy: string(domain.BreadthFirst),
		LogLevel: "info",
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    ".wayfinder/solutions",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "wayfinder:solution:",
			},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load builds the configuration. path may be empty; a missing .env file is
// ignored. Values in the environment win over the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	overlayEnv(raw, os.Environ())
	return Decode(raw)
}

// Decode applies raw settings over the defaults and validates the result.
func Decode(raw map[string]any) (Config, error) {
	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown strategies, backends and log levels.
func (c Config) Validate() error {
	if _, err := domain.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return fmt.Errorf("config: store %w", err)
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("config: negative redis ttl %s", c.Store.Redis.TTL)
	}
	return nil
}

// overlayEnv writes WAYFINDER_* variables into raw, matching the longest
// known key path so that log_level is not split into log.level.
func overlayEnv(raw map[string]any, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if keyPath := resolve(reflect.TypeOf(Config{}), name); keyPath != nil {
			set(raw, keyPath, value)
		}
	}
}

// resolve maps an underscore-joined name onto the mapstructure tags of t.
func resolve(t reflect.Type, name string) []string {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if name == tag {
			return []string{tag}
		}
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Duration(0)) && strings.HasPrefix(name, tag+"_") {
			if rest := resolve(f.Type, strings.TrimPrefix(name, tag+"_")); rest != nil {
				return append([]string{tag}, rest...)
			}
		}
	}
	return nil
}

func set(raw map[string]any, keyPath []string, value string) {
	node := raw
	for _, k := range keyPath[:len(keyPath)-1] {
		child, ok := node[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[k] = child
		}
		node = child
	}
	node[keyPath[len(keyPath)-1]] = value
}
