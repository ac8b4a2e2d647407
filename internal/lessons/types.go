// Package lessons holds the dashboard's tutorial sections and renders
// their markdown to HTML.
package lessons

import (
	"html/template"
	"strconv"
)

// Section is one entry of the sidebar.
type Section struct {
	Slug     string    `json:"slug"`
	Number   int       `json:"number"`
	Title    string    `json:"title"`
	Icon     string    `json:"icon"`
	Summary  string    `json:"summary"`
	Body     string    `json:"body"`
	Snippets []Snippet `json:"snippets,omitempty"`
}

// Label is the sidebar text, e.g. "4) State & caching".
func (s Section) Label() string {
	return strconv.Itoa(s.Number) + ") " + s.Title
}

// Snippet is a collapsible code sample shown under a section.
type Snippet struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Rendered is a Section with its markdown converted to HTML.
type Rendered struct {
	Section
	BodyHTML template.HTML
	Code     []RenderedSnippet
}

// RenderedSnippet is a Snippet converted to highlighted HTML.
type RenderedSnippet struct {
	Title string
	HTML  template.HTML
}
