package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/learndash/internal/audit"
	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/forms"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/queryparams"
	"github.com/ziadkadry99/learndash/internal/session"
	"github.com/ziadkadry99/learndash/internal/upload"
)

// Counter operations, as used in /s/state/counter/{op} and /api/counter/{op}.
const (
	opIncrement = "increment"
	opDecrement = "decrement"
	opReset     = "reset"
)

var errUnknownOp = errors.New("unknown counter operation")

var errSearchUnavailable = errors.New("search is not available")

// applyCounter runs one counter operation and records it.
func (d *Dashboard) applyCounter(ctx context.Context, sessionID, op string) (int64, error) {
	var (
		value  int64
		err    error
		action audit.Action
	)
	switch op {
	case opIncrement:
		value, err = d.counter.Increment(ctx, sessionID)
		action = audit.ActionCounterIncremented
	case opDecrement:
		value, err = d.counter.Decrement(ctx, sessionID)
		action = audit.ActionCounterDecremented
	case opReset:
		value, err = d.counter.Reset(ctx, sessionID)
		action = audit.ActionCounterReset
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownOp, op)
	}
	if err != nil {
		return 0, err
	}

	d.record(ctx, audit.Entry{
		SessionID: sessionID,
		Action:    action,
		Section:   lessons.SlugState,
		Summary:   "Counter " + op,
		NewValue:  strconv.FormatInt(value, 10),
	})
	return value, nil
}

// sum runs the slow sum and records the computations that missed the cache.
func (d *Dashboard) sum(ctx context.Context, sessionID string, n int) (compute.Result, error) {
	res, err := d.summer.Sum(ctx, n)
	if err != nil {
		return res, err
	}
	if !res.Cached {
		d.record(ctx, audit.Entry{
			SessionID: sessionID,
			Action:    audit.ActionSumComputed,
			Section:   lessons.SlugState,
			Summary:   fmt.Sprintf("Computed sum below %d in %s", n, res.Elapsed.Round(time.Millisecond)),
			NewValue:  strconv.FormatInt(res.Sum, 10),
		})
	}
	return res, nil
}

func (d *Dashboard) search(ctx context.Context, query string, limit int) ([]lessons.Hit, error) {
	if d.index == nil {
		return nil, errSearchUnavailable
	}
	hits, err := d.index.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching sections: %w", err)
	}
	return hits, nil
}

// submitContact stores the form, or records the rejection.
func (d *Dashboard) submitContact(ctx context.Context, sessionID string, f forms.ContactForm) (*forms.Submission, error) {
	sub, err := d.contacts.Submit(ctx, sessionID, f)
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		d.record(ctx, audit.Entry{
			SessionID: sessionID,
			Action:    audit.ActionContactRejected,
			Section:   lessons.SlugFiles,
			Summary:   "Missing " + strings.Join(verr.Missing, ", "),
		})
	case err == nil:
		d.record(ctx, audit.Entry{
			SessionID: sessionID,
			Action:    audit.ActionContactSubmitted,
			Section:   lessons.SlugFiles,
			Summary:   "Contact form submitted",
			NewValue:  sub.ID,
		})
	}
	return sub, err
}

// readUpload parses the "file" field of a multipart request.
func (d *Dashboard) readUpload(w http.ResponseWriter, r *http.Request) (*upload.Table, error) {
	r.Body = http.MaxBytesReader(w, r.Body, d.cfg.Upload.MaxBytes)
	if err := r.ParseMultipartForm(d.cfg.Upload.MaxBytes); err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	defer file.Close()

	t, err := upload.Parse(file, header.Filename, d.cfg.Upload.Accept)
	if err != nil {
		return nil, err
	}

	rows, cols := t.Shape()
	d.record(r.Context(), audit.Entry{
		SessionID: session.ID(r.Context()),
		Action:    audit.ActionFileUploaded,
		Section:   lessons.SlugFiles,
		Summary:   fmt.Sprintf("%s: %d x %d", t.Filename, rows, cols),
	})
	return t, nil
}

// record writes an audit entry. Failures are logged and never surface to
// the visitor.
func (d *Dashboard) record(ctx context.Context, e audit.Entry) {
	if d.audit == nil {
		return
	}
	if err := d.audit.Log(ctx, e); err != nil {
		log.Printf("dashboard: audit: %v", err)
	}
}

func (d *Dashboard) handleCounterAction(w http.ResponseWriter, r *http.Request) {
	op := chi.URLParam(r, "op")
	if _, err := d.applyCounter(r.Context(), session.ID(r.Context()), op); err != nil {
		if errors.Is(err, errUnknownOp) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("dashboard: counter %s: %v", op, err)
		http.Error(w, "counter unavailable", http.StatusInternalServerError)
		return
	}

	target := "/s/" + lessons.SlugState
	if n := r.FormValue("n"); n != "" {
		target += "?" + url.Values{"n": {n}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (d *Dashboard) handleUploadAction(w http.ResponseWriter, r *http.Request) {
	page := d.newPage(r, lessons.SlugFiles)

	t, err := d.readUpload(w, r)
	if err != nil {
		page.UploadError = err.Error()
	} else {
		page.Upload = newUploadView(t, d.cfg.Upload.PreviewRows)
	}
	d.render(w, page)
}

func (d *Dashboard) handleContactAction(w http.ResponseWriter, r *http.Request) {
	page := d.newPage(r, lessons.SlugFiles)

	f := forms.ContactForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
		Consent: r.FormValue("consent") != "",
	}
	_, err := d.submitContact(r.Context(), session.ID(r.Context()), f)
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		page.Contact = &flash{Kind: "error", Text: "Please fill in the required fields: " + strings.Join(verr.Missing, ", ") + "."}
	case err != nil:
		log.Printf("dashboard: contact: %v", err)
		page.Contact = &flash{Kind: "error", Text: "Your message could not be saved. Please try again."}
	default:
		page.Contact = &flash{Kind: "success", Text: "Thanks! Your message was sent."}
	}
	d.render(w, page)
}

func (d *Dashboard) handleParamsApply(w http.ResponseWriter, r *http.Request) {
	p := queryparams.Parse(r.FormValue("current"))
	name := r.FormValue("name")
	p.Update(map[string]string{"name": name})

	d.record(r.Context(), audit.Entry{
		SessionID: session.ID(r.Context()),
		Action:    audit.ActionParamsUpdated,
		Section:   lessons.SlugParams,
		Summary:   "Set name",
		NewValue:  name,
	})

	target := "/s/" + lessons.SlugParams
	if p.Len() > 0 {
		target += "?" + p.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (d *Dashboard) handleParamsClear(w http.ResponseWriter, r *http.Request) {
	d.record(r.Context(), audit.Entry{
		SessionID:     session.ID(r.Context()),
		Action:        audit.ActionParamsCleared,
		Section:       lessons.SlugParams,
		Summary:       "Cleared URL parameters",
		PreviousValue: r.FormValue("current"),
	})
	http.Redirect(w, r, "/s/"+lessons.SlugParams, http.StatusSeeOther)
}

func (d *Dashboard) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := session.ID(r.Context())
	if err := d.sessions.End(r.Context(), id); err != nil {
		log.Printf("dashboard: ending session: %v", err)
	}
	d.record(r.Context(), audit.Entry{
		SessionID: id,
		Action:    audit.ActionSessionEnded,
		Summary:   "Session ended",
	})
	session.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
