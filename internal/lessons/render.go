package lessons

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts section markdown and code snippets to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a Renderer with GFM and syntax highlighting enabled.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{md: md}
}

// Markdown converts src to HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Snippet renders code as a highlighted block.
func (r *Renderer) Snippet(s Snippet) (template.HTML, error) {
	fence := "```"
	for strings.Contains(s.Code, fence) {
		fence += "`"
	}
	code := s.Code
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return r.Markdown(fence + s.Language + "\n" + code + fence + "\n")
}

// Render converts a whole section.
func (r *Renderer) Render(s Section) (*Rendered, error) {
	body, err := r.Markdown(s.Body)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", s.Slug, err)
	}
	out := &Rendered{Section: s, BodyHTML: body}
	for _, sn := range s.Snippets {
		h, err := r.Snippet(sn)
		if err != nil {
			return nil, fmt.Errorf("section %s snippet %q: %w", s.Slug, sn.Title, err)
		}
		out.Code = append(out.Code, RenderedSnippet{Title: sn.Title, HTML: h})
	}
	return out, nil
}

// Library is the rendered catalog, built once at startup.
type Library struct {
	sections []Section
	rendered map[string]*Rendered
}

// NewLibrary renders every section up front.
func NewLibrary(r *Renderer, sections []Section) (*Library, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections")
	}
	lib := &Library{sections: sections, rendered: make(map[string]*Rendered, len(sections))}
	for _, s := range sections {
		if _, dup := lib.rendered[s.Slug]; dup {
			return nil, fmt.Errorf("duplicate section slug %q", s.Slug)
		}
		rs, err := r.Render(s)
		if err != nil {
			return nil, err
		}
		lib.rendered[s.Slug] = rs
	}
	return lib, nil
}

// Sections returns the sections in sidebar order.
func (l *Library) Sections() []Section { return l.sections }

// Get returns the rendered section for slug.
func (l *Library) Get(slug string) (*Rendered, bool) {
	rs, ok := l.rendered[slug]
	return rs, ok
}

// First returns the slug of the first section.
func (l *Library) First() string { return l.sections[0].Slug }
