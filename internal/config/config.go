package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/learndash/internal/compute"
)

// EnvPrefix is the prefix of environment variables that override file settings.
const EnvPrefix = "LEARNDASH_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LEARNDASH_*). Nested keys are separated
// by a double underscore: LEARNDASH_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps LEARNDASH_SESSION__REDIS_URL to session.redis_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validBackends is the set of recognized session backends.
var validBackends = map[SessionBackend]bool{
	BackendSQLite: true,
	BackendRedis:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if !validBackends[c.Session.Backend] {
		return fmt.Errorf("invalid session.backend %q: must be one of sqlite, redis", c.Session.Backend)
	}
	if c.Session.Backend == BackendRedis && c.Session.RedisURL == "" {
		return fmt.Errorf("session.redis_url is required for the redis backend")
	}
	if c.Session.TTLMinutes < 0 {
		return fmt.Errorf("session.ttl_minutes must be non-negative")
	}

	cc := c.Compute
	if cc.Min < 0 || cc.Max <= cc.Min {
		return fmt.Errorf("compute range [%d, %d] is empty", cc.Min, cc.Max)
	}
	if int64(cc.Max) > compute.MaxN {
		return fmt.Errorf("compute.max %d exceeds %d", cc.Max, compute.MaxN)
	}
	if cc.Step <= 0 {
		return fmt.Errorf("compute.step must be positive")
	}
	if cc.Default < cc.Min || cc.Default > cc.Max {
		return fmt.Errorf("compute.default %d outside [%d, %d]", cc.Default, cc.Min, cc.Max)
	}
	if cc.DelayMS < 0 {
		return fmt.Errorf("compute.delay_ms must be non-negative")
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	if c.Upload.PreviewRows < 0 {
		return fmt.Errorf("upload.preview_rows must be non-negative")
	}

	if c.Audit.RetentionDays < 0 {
		return fmt.Errorf("audit.retention_days must be non-negative")
	}

	return nil
}
