package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/config"
	"github.com/ziadkadry99/learndash/internal/db"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `learndash init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newSummer builds the memoized slow sum from the compute settings.
func newSummer(cfg *config.Config) *compute.Summer {
	c := cfg.Compute
	return compute.NewSummer(compute.Range{
		Min:     c.Min,
		Max:     c.Max,
		Step:    c.Step,
		Default: c.Default,
	}, c.Delay())
}

// loadLessons renders the section catalog and indexes it for search.
func loadLessons(ctx context.Context) (*lessons.Library, *lessons.Index, error) {
	catalog := lessons.Catalog()
	library, err := lessons.NewLibrary(lessons.NewRenderer(), catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering sections: %w", err)
	}
	index, err := lessons.NewIndex(ctx, catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("indexing sections: %w", err)
	}
	return library, index, nil
}

// openDatabase opens the SQLite database under the data directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "learndash.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// openSessionBackend returns the configured session store. The returned
// close func releases any connection the backend holds.
func openSessionBackend(ctx context.Context, cfg *config.Config, database *db.DB) (session.Backend, func() error, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		store, err := session.NewRedisStore(ctx, cfg.Session.RedisURL, cfg.Session.TTL())
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis session store: %w", err)
		}
		return store, store.Close, nil
	default:
		return session.NewSQLStore(database), func() error { return nil }, nil
	}
}
