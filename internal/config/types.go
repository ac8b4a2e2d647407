package config

// SessionBackend selects where per-session values are kept.
type SessionBackend string

const (
	BackendSQLite SessionBackend = "sqlite"
	BackendRedis  SessionBackend = "redis"
)

// Config is the top-level learndash configuration, corresponding to .learndash.yml.
type Config struct {
	Server   ServerConfig  `yaml:"server" koanf:"server"`
	DataDir  string        `yaml:"data_dir" koanf:"data_dir"`
	Session  SessionConfig `yaml:"session" koanf:"session"`
	Compute  ComputeConfig `yaml:"compute" koanf:"compute"`
	Upload   UploadConfig  `yaml:"upload" koanf:"upload"`
	Audit    AuditConfig   `yaml:"audit" koanf:"audit"`
	ImageURL string        `yaml:"image_url" koanf:"image_url"`
	Page     PageConfig    `yaml:"page" koanf:"page"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// SessionConfig holds session storage settings.
type SessionConfig struct {
	Backend    SessionBackend `yaml:"backend" koanf:"backend"`
	RedisURL   string         `yaml:"redis_url" koanf:"redis_url"`
	TTLMinutes int            `yaml:"ttl_minutes" koanf:"ttl_minutes"`
}

// ComputeConfig describes the slider range and simulated cost of the slow sum.
type ComputeConfig struct {
	Min     int `yaml:"min" koanf:"min"`
	Max     int `yaml:"max" koanf:"max"`
	Step    int `yaml:"step" koanf:"step"`
	Default int `yaml:"default" koanf:"default"`
	DelayMS int `yaml:"delay_ms" koanf:"delay_ms"`
}

// UploadConfig restricts what the file uploader accepts.
type UploadConfig struct {
	Accept      []string `yaml:"accept" koanf:"accept"`
	MaxBytes    int64    `yaml:"max_bytes" koanf:"max_bytes"`
	PreviewRows int      `yaml:"preview_rows" koanf:"preview_rows"`
}

// AuditConfig controls how long the interaction trail is kept.
// RetentionDays of 0 keeps entries forever.
type AuditConfig struct {
	RetentionDays int `yaml:"retention_days" koanf:"retention_days"`
}

// PageConfig is the browser-facing page metadata.
type PageConfig struct {
	Title string `yaml:"title" koanf:"title"`
	Icon  string `yaml:"icon" koanf:"icon"`
}
