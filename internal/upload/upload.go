// Package upload turns an uploaded CSV file into a small table summary.
package upload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotAccepted is returned when a file name matches none of the accepted
// patterns.
var ErrNotAccepted = errors.New("file type not accepted")

// ErrEmpty is returned for a file without a header row.
var ErrEmpty = errors.New("file is empty")

// Table is a parsed CSV file. The first record is the header.
type Table struct {
	Filename string     `json:"filename"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
}

// Shape returns (rows, columns), header excluded.
func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// Head returns the first n rows, each padded or cut to the header width.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		copy(row, t.Rows[i])
		out[i] = row
	}
	return out
}

// Accepts reports whether filename matches any of the glob patterns. The
// match is case-insensitive and only looks at the base name. An empty
// pattern list accepts everything.
func Accepts(filename string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	base := strings.ToLower(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	for _, p := range patterns {
		if ok, err := doublestar.Match(strings.ToLower(p), base); err == nil && ok {
			return true
		}
	}
	return false
}

// Parse reads a CSV file. Rows may have more or fewer fields than the
// header; no schema is enforced.
func Parse(r io.Reader, filename string, patterns []string) (*Table, error) {
	if !Accepts(filename, patterns) {
		return nil, fmt.Errorf("%w: %s (accepted: %s)", ErrNotAccepted, filename, strings.Join(patterns, ", "))
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Filename: filename, Columns: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
