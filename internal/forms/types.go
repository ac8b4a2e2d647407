package forms

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingFields matches any *ValidationError.
var ErrMissingFields = errors.New("required fields are missing")

// ContactForm is one submission of the contact form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}

// Submission is a stored ContactForm.
type Submission struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Form      ContactForm `json:"form"`
	CreatedAt time.Time   `json:"created_at"`
}

// ValidationError lists the required fields that were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingFields
}

// Field labels as shown to the user.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldConsent = "consent"
)

// Validate checks that name and email are filled in and consent is given.
// Only presence is checked.
func (f ContactForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, FieldEmail)
	}
	if !f.Consent {
		missing = append(missing, FieldConsent)
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
