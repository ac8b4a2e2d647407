package dashboard

import (
	"bytes"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/learndash/internal/charts"
	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/queryparams"
	"github.com/ziadkadry99/learndash/internal/session"
	"github.com/ziadkadry99/learndash/internal/upload"
)

const (
	defaultGreetName  = "Chloe"
	defaultGreetLevel = 3
	wavePoints        = 100
	tableRows         = 10
)

// flash is a coloured callout shown after an interaction.
type flash struct {
	Kind string // "success", "error", "info" or "warning"
	Text string
}

type metric struct {
	Label string
	Value string
}

type greeting struct {
	Name    string
	Level   int
	Message string
}

type uploadView struct {
	Filename string
	Rows     int
	Cols     int
	Columns  []string
	Preview  [][]string
}

func newUploadView(t *upload.Table, previewRows int) *uploadView {
	rows, cols := t.Shape()
	return &uploadView{
		Filename: t.Filename,
		Rows:     rows,
		Cols:     cols,
		Columns:  t.Columns,
		Preview:  t.Head(previewRows),
	}
}

// page is everything the page template reads.
type page struct {
	Title    string
	Icon     string
	Version  string
	Sections []lessons.Section
	Links    []lessons.Link
	Active   *lessons.Rendered
	Query    string

	// syntax
	Greeting *greeting

	// layout
	Metrics []metric
	Table   []charts.Point

	// state
	Counter  int64
	Range    compute.Range
	SumN     int
	Sum      *compute.Result
	SumError string
	CachedN  []int64

	// charts
	WavesChart string
	SinChart   string

	// files
	ImageURL    string
	Upload      *uploadView
	UploadError string
	Contact     *flash

	// params
	Params    map[string]string
	ParamKeys []string
	ParamName string
}

func (d *Dashboard) newPage(r *http.Request, slug string) *page {
	active, _ := d.library.Get(slug)
	return &page{
		Title:    d.cfg.Page.Title,
		Icon:     d.cfg.Page.Icon,
		Version:  d.version,
		Sections: d.library.Sections(),
		Links:    lessons.QuickLinks,
		Active:   active,
		Query:    r.URL.RawQuery,
		ImageURL: d.cfg.ImageURL,
	}
}

func (d *Dashboard) handleRoot(w http.ResponseWriter, r *http.Request) {
	target := "/s/" + d.library.First()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (d *Dashboard) handleSection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, ok := d.library.Get(slug); !ok {
		http.NotFound(w, r)
		return
	}

	p := d.newPage(r, slug)
	var err error
	switch slug {
	case lessons.SlugSyntax:
		p.Greeting = readGreeting(r)
	case lessons.SlugLayout:
		p.Metrics = layoutMetrics()
		p.Table = charts.RandomTable(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), tableRows)
	case lessons.SlugState:
		err = d.fillState(r, p)
	case lessons.SlugCharts:
		err = fillCharts(p)
	case lessons.SlugParams:
		fillParams(r, p)
	}
	if err != nil {
		log.Printf("dashboard: section %s: %v", slug, err)
		http.Error(w, "failed to render section", http.StatusInternalServerError)
		return
	}

	d.render(w, p)
}

func readGreeting(r *http.Request) *greeting {
	q := r.URL.Query()
	g := &greeting{Name: defaultGreetName, Level: defaultGreetLevel}
	if name, ok := q["name"]; ok && len(name) > 0 {
		g.Name = name[0]
	}
	if lvl, err := strconv.Atoi(q.Get("level")); err == nil && lvl >= 1 && lvl <= 10 {
		g.Level = lvl
	}
	if q.Get("greet") != "" {
		g.Message = "Hello, " + g.Name + "! Starting at difficulty " + strconv.Itoa(g.Level) + " 🙂"
	}
	return g
}

func layoutMetrics() []metric {
	return []metric{
		{Label: "Visits today", Value: "123"},
		{Label: "Change vs. yesterday", Value: "▲ 12%"},
		{Label: "Response time (ms)", Value: "87"},
	}
}

func (d *Dashboard) fillState(r *http.Request, p *page) error {
	ctx := r.Context()
	sessionID := session.ID(ctx)

	value, err := d.counter.Value(ctx, sessionID)
	if err != nil {
		return err
	}
	p.Counter = value

	p.Range = d.summer.Range()
	p.SumN = p.Range.Default
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			p.SumError = "n must be a whole number"
			return nil
		}
		p.SumN = n
	}

	res, err := d.sum(ctx, sessionID, p.SumN)
	switch {
	case errors.Is(err, compute.ErrOutOfRange):
		p.SumError = err.Error()
	case err != nil:
		return err
	default:
		p.Sum = &res
	}
	for _, n := range d.summer.CachedInputs() {
		p.CachedN = append(p.CachedN, int64(n))
	}
	return nil
}

func fillCharts(p *page) error {
	waves := charts.Waves(wavePoints)
	both, err := charts.LineChart("Sine and cosine", waves)
	if err != nil {
		return err
	}
	sin, err := charts.LineChart("Sine only", waves, "sin")
	if err != nil {
		return err
	}
	p.WavesChart = both
	p.SinChart = sin
	return nil
}

func fillParams(r *http.Request, p *page) {
	qp := queryparams.FromURL(r.URL)
	p.Params = qp.Map()
	p.ParamKeys = qp.Keys()
	p.ParamName, _ = qp.Get("name")
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (d *Dashboard) render(w http.ResponseWriter, p *page) {
	var buf bytes.Buffer
	if err := d.tmpl.ExecuteTemplate(&buf, "page", p); err != nil {
		log.Printf("dashboard: rendering %s: %v", p.Active.Slug, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
