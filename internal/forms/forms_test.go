package forms

import (
	"errors"
	"testing"

	"github.com/ziadkadry99/learndash/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestValidate(t *testing.T) {
	complete := ContactForm{Name: "Hong Gildong", Email: "you@example.com", Consent: true}

	tests := []struct {
		name    string
		form    ContactForm
		missing []string
	}{
		{"complete", complete, nil},
		{"message is optional", ContactForm{Name: "a", Email: "b", Message: "", Consent: true}, nil},
		{"no name", ContactForm{Email: "b", Consent: true}, []string{FieldName}},
		{"blank name", ContactForm{Name: "   ", Email: "b", Consent: true}, []string{FieldName}},
		{"no email", ContactForm{Name: "a", Consent: true}, []string{FieldEmail}},
		{"no consent", ContactForm{Name: "a", Email: "b"}, []string{FieldConsent}},
		{"empty", ContactForm{}, []string{FieldName, FieldEmail, FieldConsent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.missing == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("Validate() = %v, want ErrMissingFields", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(verr.Missing) != len(tt.missing) {
				t.Fatalf("Missing = %v, want %v", verr.Missing, tt.missing)
			}
			for i := range tt.missing {
				if verr.Missing[i] != tt.missing[i] {
					t.Errorf("Missing[%d] = %q, want %q", i, verr.Missing[i], tt.missing[i])
				}
			}
		})
	}
}

func TestSubmitStoresValidForm(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	sub, err := store.Submit(ctx, "sess-1", ContactForm{
		Name: "Alice", Email: "alice@example.com", Message: "hi", Consent: true,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected an id")
	}

	subs, err := store.List(ctx, "sess-1", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(subs))
	}
	got := subs[0]
	if got.SessionID != "sess-1" || got.Form.Name != "Alice" || got.Form.Message != "hi" || !got.Form.Consent {
		t.Errorf("unexpected submission: %+v", got)
	}

	others, err := store.List(ctx, "sess-2", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(others) != 0 {
		t.Errorf("another session sees %d submissions", len(others))
	}
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	_, err := store.Submit(ctx, "sess-1", ContactForm{Name: "Alice", Email: "alice@example.com"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	subs, err := store.List(ctx, "sess-1", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("invalid form was stored (%d rows)", len(subs))
	}
}
