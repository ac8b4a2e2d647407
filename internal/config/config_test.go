package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Session.Backend != BackendSQLite {
		t.Errorf("expected default backend %q, got %q", BackendSQLite, cfg.Session.Backend)
	}
	if cfg.Compute.Min != 1000 || cfg.Compute.Max != 200000 || cfg.Compute.Step != 5000 || cfg.Compute.Default != 50000 {
		t.Errorf("unexpected compute defaults: %+v", cfg.Compute)
	}
	if cfg.Compute.Delay().Milliseconds() != 1500 {
		t.Errorf("expected 1.5s delay, got %s", cfg.Compute.Delay())
	}
	if cfg.ImageURL != DefaultImageURL {
		t.Errorf("expected default image url, got %q", cfg.ImageURL)
	}
	if cfg.Upload.PreviewRows != 5 {
		t.Errorf("expected 5 preview rows, got %d", cfg.Upload.PreviewRows)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.learndash.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Session.Backend = BackendRedis
	original.Session.RedisURL = "redis://localhost:6379/1"
	original.Compute.DelayMS = 10
	original.Upload.Accept = []string{"*.csv", "*.tsv"}
	original.DataDir = "state"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Session.Backend != BackendRedis {
		t.Errorf("backend: got %q, want %q", loaded.Session.Backend, BackendRedis)
	}
	if loaded.Session.RedisURL != original.Session.RedisURL {
		t.Errorf("redis_url: got %q, want %q", loaded.Session.RedisURL, original.Session.RedisURL)
	}
	if loaded.Compute.DelayMS != 10 {
		t.Errorf("delay_ms: got %d, want 10", loaded.Compute.DelayMS)
	}
	if loaded.DataDir != "state" {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, "state")
	}
	if len(loaded.Upload.Accept) != 2 || loaded.Upload.Accept[1] != "*.tsv" {
		t.Errorf("accept: got %v", loaded.Upload.Accept)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("LEARNDASH_SERVER__PORT", "7070")
	t.Setenv("LEARNDASH_IMAGE_URL", "https://example.com/cat.jpg")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("env override failed: got %d, want 7070", loaded.Server.Port)
	}
	if loaded.ImageURL != "https://example.com/cat.jpg" {
		t.Errorf("env override failed: got %q", loaded.ImageURL)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LEARNDASH_DATA_DIR", "data_dir"},
		{"LEARNDASH_SERVER__PORT", "server.port"},
		{"LEARNDASH_SESSION__REDIS_URL", "session.redis_url"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"unknown backend", func(c *Config) { c.Session.Backend = "memcached" }, true},
		{"redis without url", func(c *Config) { c.Session.Backend = BackendRedis }, true},
		{"redis with url", func(c *Config) {
			c.Session.Backend = BackendRedis
			c.Session.RedisURL = "redis://localhost:6379"
		}, false},
		{"empty range", func(c *Config) { c.Compute.Max = c.Compute.Min }, true},
		{"max at sum limit", func(c *Config) { c.Compute.Max = 1 << 32 }, false},
		{"max beyond sum limit", func(c *Config) { c.Compute.Max = 1<<32 + 1 }, true},
		{"zero step", func(c *Config) { c.Compute.Step = 0 }, true},
		{"default out of range", func(c *Config) { c.Compute.Default = 1 }, true},
		{"negative delay", func(c *Config) { c.Compute.DelayMS = -1 }, true},
		{"zero max bytes", func(c *Config) { c.Upload.MaxBytes = 0 }, true},
		{"negative preview", func(c *Config) { c.Upload.PreviewRows = -1 }, true},
		{"keep audit forever", func(c *Config) { c.Audit.RetentionDays = 0 }, false},
		{"negative retention", func(c *Config) { c.Audit.RetentionDays = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"*.csv", []string{"*.csv"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
