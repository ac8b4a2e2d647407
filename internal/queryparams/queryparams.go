// Package queryparams reads and rewrites the shareable key/value state kept
// in a page URL. Values are free-form strings with no schema.
package queryparams

import (
	"net/url"
	"sort"
)

// Params is a mutable view of a URL query string.
//
// A key may carry several values on the wire (?tag=a&tag=b). Reads return
// the first one; writes replace all of them.
type Params struct {
	values url.Values
}

// FromURL copies the query parameters of u.
func FromURL(u *url.URL) *Params {
	return Parse(u.RawQuery)
}

// Parse builds Params from a raw query string. Malformed pairs are skipped.
func Parse(raw string) *Params {
	v, _ := url.ParseQuery(raw)
	if v == nil {
		v = url.Values{}
	}
	return &Params{values: v}
}

// Get returns the first value for key and whether the key is present.
func (p *Params) Get(key string) (string, bool) {
	vs, ok := p.values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Update sets each key in kv to its single value and keeps the other keys.
func (p *Params) Update(kv map[string]string) {
	for k, v := range kv {
		p.values.Set(k, v)
	}
}

// Clear removes every key.
func (p *Params) Clear() {
	p.values = url.Values{}
}

// Len returns the number of distinct keys.
func (p *Params) Len() int { return len(p.values) }

// Map returns the parameters as a plain mapping, first value per key.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k := range p.values {
		m[k], _ = p.Get(k)
	}
	return m
}

// Keys returns the parameter names in sorted order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode returns the query string, keys sorted.
func (p *Params) Encode() string {
	return p.values.Encode()
}

// Apply returns a copy of u whose query string is replaced by p.
func (p *Params) Apply(u *url.URL) *url.URL {
	out := *u
	out.RawQuery = p.Encode()
	return &out
}
