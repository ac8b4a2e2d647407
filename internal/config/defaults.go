package config

import "time"

// DefaultImageURL is the sample image shown on the files section.
const DefaultImageURL = "https://static.streamlit.io/examples/dog.jpg"

// DefaultAccept are the upload patterns accepted by default.
var DefaultAccept = []string{"*.csv"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: false,
		},
		DataDir: ".learndash",
		Session: SessionConfig{
			Backend:    BackendSQLite,
			TTLMinutes: 60,
		},
		Compute: ComputeConfig{
			Min:     1_000,
			Max:     200_000,
			Step:    5_000,
			Default: 50_000,
			DelayMS: 1500,
		},
		Upload: UploadConfig{
			Accept:      DefaultAccept,
			MaxBytes:    10 << 20,
			PreviewRows: 5,
		},
		Audit: AuditConfig{
			RetentionDays: 30,
		},
		ImageURL: DefaultImageURL,
		Page: PageConfig{
			Title: "Streamlit Learning Dashboard",
			Icon:  "🧊",
		},
	}
}

// Delay returns the simulated cost of one uncached slow sum.
func (c ComputeConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// TTL returns how long an idle session is kept.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Retention returns how long audit entries are kept, or 0 for forever.
func (c AuditConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
