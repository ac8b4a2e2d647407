package forms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/learndash/internal/db"
)

// Store persists accepted contact form submissions.
type Store struct {
	db *db.DB
}

// NewStore creates a new submission store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Submit validates f and stores it. An invalid form returns a
// *ValidationError and nothing is written.
func (s *Store) Submit(ctx context.Context, sessionID string, f ContactForm) (*Submission, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	sub := Submission{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Form:      f,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, session_id, name, email, message, consented, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.SessionID, f.Name, f.Email, f.Message, f.Consent, sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting submission: %w", err)
	}
	return &sub, nil
}

// List returns the most recent submissions of one session, newest first.
func (s *Store) List(ctx context.Context, sessionID string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, name, email, message, consented, created_at
		 FROM contact_submissions WHERE session_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.SessionID, &sub.Form.Name, &sub.Form.Email,
			&sub.Form.Message, &sub.Form.Consent, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
