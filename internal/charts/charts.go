// Package charts builds the sample datasets shown on the dashboard and the
// Mermaid chart definitions the browser renders from them.
package charts

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Series is one named line over a shared X axis.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Dataset is a set of series sampled at the same X values.
type Dataset struct {
	X      []int    `json:"x"`
	Series []Series `json:"series"`
}

// Lookup returns the series with the given name.
func (d Dataset) Lookup(name string) (Series, bool) {
	for _, s := range d.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Waves samples sin(x/10) and cos(x/10) for x = 0..n-1.
func Waves(n int) Dataset {
	if n < 0 {
		n = 0
	}
	d := Dataset{
		X: make([]int, n),
		Series: []Series{
			{Name: "sin", Values: make([]float64, n)},
			{Name: "cos", Values: make([]float64, n)},
		},
	}
	for x := 0; x < n; x++ {
		d.X[x] = x
		d.Series[0].Values[x] = math.Sin(float64(x) / 10)
		d.Series[1].Values[x] = math.Cos(float64(x) / 10)
	}
	return d
}

// Point is one row of the random layout table.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RandomTable returns n rows with x = 1..n and y drawn from [10, 100).
func RandomTable(r *rand.Rand, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: i + 1, Y: 10 + r.IntN(90)}
	}
	return pts
}

// LineChart renders the named series of d as a Mermaid xychart. With no
// names every series is drawn.
func LineChart(title string, d Dataset, names ...string) (string, error) {
	series := d.Series
	if len(names) > 0 {
		series = series[:0:0]
		for _, name := range names {
			s, ok := d.Lookup(name)
			if !ok {
				return "", fmt.Errorf("unknown series %q", name)
			}
			series = append(series, s)
		}
	}
	if len(series) == 0 || len(d.X) == 0 {
		return "", fmt.Errorf("nothing to plot")
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	var b strings.Builder
	b.WriteString("xychart-beta\n")
	if title != "" {
		b.WriteString(fmt.Sprintf("    title \"%s\"\n", escapeMermaid(title)))
	}
	b.WriteString("    x-axis [" + joinInts(d.X) + "]\n")
	b.WriteString(fmt.Sprintf("    y-axis \"value\" %s --> %s\n", formatFloat(math.Floor(lo)), formatFloat(math.Ceil(hi))))
	for _, s := range series {
		b.WriteString("    line [" + joinFloats(s.Values) + "]\n")
	}
	return b.String(), nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
