package dashboard

import (
	"fmt"
	"html/template"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/learndash/internal/audit"
	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/config"
	"github.com/ziadkadry99/learndash/internal/forms"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/session"
)

// Deps are the collaborators the dashboard renders from.
type Deps struct {
	Config   *config.Config
	Library  *lessons.Library
	Index    *lessons.Index
	Sessions session.Backend
	Summer   *compute.Summer
	Contacts *forms.Store
	Audit    *audit.Store
	Version  string
}

// Dashboard serves the tutorial pages, their form actions, a JSON mirror of
// every interaction and a WebSocket event channel.
type Dashboard struct {
	cfg      *config.Config
	library  *lessons.Library
	index    *lessons.Index
	sessions session.Backend
	counter  *session.Counter
	summer   *compute.Summer
	contacts *forms.Store
	audit    *audit.Store
	version  string
	tmpl     *template.Template
}

// New creates a new Dashboard. Index and Audit are optional.
func New(d Deps) (*Dashboard, error) {
	if d.Config == nil || d.Library == nil || d.Sessions == nil || d.Summer == nil || d.Contacts == nil {
		return nil, fmt.Errorf("dashboard: missing dependency")
	}

	tmpl, err := template.New("dashboard").Funcs(funcMap).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	if _, err := tmpl.Parse(sectionTemplates); err != nil {
		return nil, fmt.Errorf("parsing section templates: %w", err)
	}

	return &Dashboard{
		cfg:      d.Config,
		library:  d.Library,
		index:    d.Index,
		sessions: d.Sessions,
		counter:  session.NewCounter(d.Sessions),
		summer:   d.Summer,
		contacts: d.Contacts,
		audit:    d.Audit,
		version:  d.Version,
		tmpl:     tmpl,
	}, nil
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(d.sessions))

		r.Get("/", d.handleRoot)
		r.Get("/s/{slug}", d.handleSection)
		r.Post("/s/state/counter/{op}", d.handleCounterAction)
		r.Post("/s/files/upload", d.handleUploadAction)
		r.Post("/s/files/contact", d.handleContactAction)
		r.Post("/s/params/apply", d.handleParamsApply)
		r.Post("/s/params/clear", d.handleParamsClear)
		r.Post("/session/end", d.handleEndSession)

		r.Get("/api/sections", d.handleAPISections)
		r.Get("/api/sections/{slug}", d.handleAPISection)
		r.Get("/api/search", d.handleAPISearch)
		r.Get("/api/counter", d.handleAPICounter)
		r.Post("/api/counter/{op}", d.handleAPICounterAction)
		r.Get("/api/sum", d.handleAPISum)
		r.Get("/api/params", d.handleAPIParams)
		r.Post("/api/params", d.handleAPIParamsUpdate)
		r.Get("/api/contact", d.handleAPIContactList)
		r.Post("/api/contact", d.handleAPIContact)
		r.Post("/api/upload", d.handleAPIUpload)
		r.Get("/api/charts/waves", d.handleAPIWaves)

		r.Get("/ws/events", d.handleWebSocket)

		if d.audit != nil {
			audit.RegisterRoutes(r, d.audit)
		}
	})
}
