package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ziadkadry99/learndash/internal/db"
)

// SQLStore implements Backend on the dashboard's SQLite database.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore creates a SQLStore backed by the given database.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

func (s *SQLStore) Touch(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id) VALUES (?)
		 ON CONFLICT(id) DO UPDATE SET last_seen = datetime('now')`, id)
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id, key string) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_values WHERE session_id = ? AND key = ?`, id, key,
	).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading session value: %w", err)
	}
	return v, nil
}

func (s *SQLStore) Add(ctx context.Context, id, key string, delta int64) (int64, error) {
	if err := s.Touch(ctx, id); err != nil {
		return 0, err
	}
	var v int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO session_values (session_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(session_id, key) DO UPDATE
		 SET value = value + excluded.value, updated_at = datetime('now')
		 RETURNING value`, id, key, delta,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("adding to session value: %w", err)
	}
	return v, nil
}

func (s *SQLStore) Set(ctx context.Context, id, key string, value int64) error {
	if err := s.Touch(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_values (session_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(session_id, key) DO UPDATE
		 SET value = excluded.value, updated_at = datetime('now')`, id, key, value)
	if err != nil {
		return fmt.Errorf("setting session value: %w", err)
	}
	return nil
}

func (s *SQLStore) End(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_values WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("deleting session values: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return tx.Commit()
}

// Expire drops sessions not seen for longer than idle and returns how many
// were removed.
func (s *SQLStore) Expire(ctx context.Context, idle time.Duration) (int64, error) {
	cutoff := fmt.Sprintf("-%d seconds", int64(idle.Seconds()))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM session_values WHERE session_id IN
		 (SELECT id FROM sessions WHERE last_seen < datetime('now', ?))`, cutoff); err != nil {
		return 0, fmt.Errorf("expiring session values: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE last_seen < datetime('now', ?)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expiring sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}
