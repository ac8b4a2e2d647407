package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/learndash/internal/db"
)

// Store provides CRUD operations for audit entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new audit entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	var previousValue, newValue sql.NullString
	if entry.PreviousValue != "" {
		previousValue = sql.NullString{String: entry.PreviousValue, Valid: true}
	}
	if entry.NewValue != "" {
		newValue = sql.NullString{String: entry.NewValue, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (
			id, session_id, action, section, summary, previous_value, new_value
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.SessionID,
		string(entry.Action),
		entry.Section,
		entry.Summary,
		previousValue,
		newValue,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// GetByID retrieves a single audit entry. It returns nil, nil when no entry
// has that id.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, session_id, action, section, summary, previous_value, new_value
		FROM audit_entries WHERE id = ?`, id)

	e, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting audit entry: %w", err)
	}
	return e, nil
}

// QueryFilter controls which audit entries are returned by Query.
type QueryFilter struct {
	SessionID string
	Action    Action
	Section   string
	Since     *time.Time
	Limit     int
	Offset    int
}

// Query returns audit entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.Section != "" {
		clauses = append(clauses, "section = ?")
		args = append(args, filter.Section)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, timestamp, session_id, action, section, summary, previous_value, new_value FROM audit_entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CountByAction returns how many entries of one session exist per action.
func (s *Store) CountByAction(ctx context.Context, sessionID string) (map[Action]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action, COUNT(*) FROM audit_entries WHERE session_id = ? GROUP BY action`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("counting audit entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[Action]int)
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("scanning audit count: %w", err)
		}
		counts[Action(action)] = n
	}
	return counts, rows.Err()
}

// DeleteBefore removes all audit entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old audit entries: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e                       Entry
		action, ts              string
		previousValue, newValue sql.NullString
	)

	err := sc.Scan(&e.ID, &ts, &e.SessionID, &action, &e.Section, &e.Summary, &previousValue, &newValue)
	if err != nil {
		return nil, err
	}

	e.Action = Action(action)
	e.Timestamp = parseTimestamp(ts)
	e.PreviousValue = previousValue.String
	e.NewValue = newValue.String

	return &e, nil
}

// parseTimestamp accepts SQLite's datetime('now') text as well as the
// RFC 3339 form the driver produces when it decodes the column itself.
func parseTimestamp(ts string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
