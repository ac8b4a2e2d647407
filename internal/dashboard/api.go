package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/learndash/internal/audit"
	"github.com/ziadkadry99/learndash/internal/charts"
	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/forms"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/queryparams"
	"github.com/ziadkadry99/learndash/internal/session"
	"github.com/ziadkadry99/learndash/internal/upload"
)

type sectionResponse struct {
	lessons.Section
	HTML string `json:"html"`
}

type counterResponse struct {
	Counter int64 `json:"counter"`
}

type paramsResponse struct {
	Params map[string]string `json:"params"`
	URL    string            `json:"url,omitempty"`
}

type paramsRequest struct {
	URL    string            `json:"url"`
	Update map[string]string `json:"update"`
	Clear  bool              `json:"clear"`
}

type contactResponse struct {
	Status  string   `json:"status"`
	ID      string   `json:"id,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type uploadResponse struct {
	Filename string     `json:"filename"`
	Shape    [2]int     `json:"shape"`
	Columns  []string   `json:"columns"`
	Preview  [][]string `json:"preview"`
}

type wavesResponse struct {
	Data    charts.Dataset `json:"data"`
	Mermaid string         `json:"mermaid"`
}

func (d *Dashboard) handleAPISections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.library.Sections())
}

func (d *Dashboard) handleAPISection(w http.ResponseWriter, r *http.Request) {
	rendered, ok := d.library.Get(chi.URLParam(r, "slug"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "section not found"})
		return
	}
	writeJSON(w, http.StatusOK, sectionResponse{Section: rendered.Section, HTML: string(rendered.BodyHTML)})
}

func (d *Dashboard) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := d.search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errSearchUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	if hits == nil {
		hits = []lessons.Hit{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (d *Dashboard) handleAPICounter(w http.ResponseWriter, r *http.Request) {
	value, err := d.counter.Value(r.Context(), session.ID(r.Context()))
	if err != nil {
		log.Printf("dashboard: counter value: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "counter unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, counterResponse{Counter: value})
}

func (d *Dashboard) handleAPICounterAction(w http.ResponseWriter, r *http.Request) {
	value, err := d.applyCounter(r.Context(), session.ID(r.Context()), chi.URLParam(r, "op"))
	if err != nil {
		if errors.Is(err, errUnknownOp) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("dashboard: counter: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "counter unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, counterResponse{Counter: value})
}

func (d *Dashboard) handleAPISum(w http.ResponseWriter, r *http.Request) {
	n := d.summer.Range().Default
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "n must be an integer"})
			return
		}
		n = v
	}

	res, err := d.sum(r.Context(), session.ID(r.Context()), n)
	switch {
	case errors.Is(err, compute.ErrOutOfRange):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// handleAPIParams echoes the request's own query parameters.
func (d *Dashboard) handleAPIParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paramsResponse{Params: queryparams.FromURL(r.URL).Map()})
}

// handleAPIParamsUpdate applies an update or a clear to the parameters of
// the given URL and returns the resulting URL.
func (d *Dashboard) handleAPIParamsUpdate(w http.ResponseWriter, r *http.Request) {
	var req paramsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid url"})
		return
	}

	p := queryparams.FromURL(u)
	previous := p.Encode()
	action := audit.ActionParamsUpdated
	if req.Clear {
		p.Clear()
		action = audit.ActionParamsCleared
	}
	p.Update(req.Update)

	out := p.Apply(u)
	d.record(r.Context(), audit.Entry{
		SessionID:     session.ID(r.Context()),
		Action:        action,
		Section:       lessons.SlugParams,
		Summary:       "URL parameters changed",
		PreviousValue: previous,
		NewValue:      out.RawQuery,
	})
	writeJSON(w, http.StatusOK, paramsResponse{Params: p.Map(), URL: out.String()})
}

func (d *Dashboard) handleAPIContact(w http.ResponseWriter, r *http.Request) {
	var f forms.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{Status: "error", Error: "invalid request body"})
		return
	}

	sub, err := d.submitContact(r.Context(), session.ID(r.Context()), f)
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, contactResponse{Status: "invalid", Missing: verr.Missing, Error: verr.Error()})
	case err != nil:
		log.Printf("dashboard: contact: %v", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Status: "error", Error: "submission failed"})
	default:
		writeJSON(w, http.StatusCreated, contactResponse{Status: "ok", ID: sub.ID})
	}
}

// handleAPIContactList returns the caller's own submissions.
func (d *Dashboard) handleAPIContactList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	subs, err := d.contacts.List(r.Context(), session.ID(r.Context()), limit)
	if err != nil {
		log.Printf("dashboard: listing contacts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "listing submissions failed"})
		return
	}
	if subs == nil {
		subs = []forms.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (d *Dashboard) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	t, err := d.readUpload(w, r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, upload.ErrNotAccepted) {
			status = http.StatusUnsupportedMediaType
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	rows, cols := t.Shape()
	writeJSON(w, http.StatusOK, uploadResponse{
		Filename: t.Filename,
		Shape:    [2]int{rows, cols},
		Columns:  t.Columns,
		Preview:  t.Head(d.cfg.Upload.PreviewRows),
	})
}

func (d *Dashboard) handleAPIWaves(w http.ResponseWriter, r *http.Request) {
	waves := charts.Waves(wavePoints)
	chart, err := charts.LineChart("Sine and cosine", waves)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, wavesResponse{Data: waves, Mermaid: chart})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
