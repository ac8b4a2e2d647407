package charts

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestWaves(t *testing.T) {
	d := Waves(100)
	if len(d.X) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(d.X))
	}
	sin, ok := d.Lookup("sin")
	if !ok {
		t.Fatal("missing sin series")
	}
	cos, ok := d.Lookup("cos")
	if !ok {
		t.Fatal("missing cos series")
	}
	for _, x := range []int{0, 15, 99} {
		if math.Abs(sin.Values[x]-math.Sin(float64(x)/10)) > 1e-12 {
			t.Errorf("sin[%d] = %f", x, sin.Values[x])
		}
		if math.Abs(cos.Values[x]-math.Cos(float64(x)/10)) > 1e-12 {
			t.Errorf("cos[%d] = %f", x, cos.Values[x])
		}
	}
	if _, ok := d.Lookup("tan"); ok {
		t.Error("unexpected tan series")
	}
}

func TestRandomTable(t *testing.T) {
	pts := RandomTable(rand.New(rand.NewPCG(1, 2)), 10)
	if len(pts) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(pts))
	}
	for i, p := range pts {
		if p.X != i+1 {
			t.Errorf("row %d x = %d", i, p.X)
		}
		if p.Y < 10 || p.Y >= 100 {
			t.Errorf("row %d y = %d out of [10, 100)", i, p.Y)
		}
	}
}

func TestLineChart(t *testing.T) {
	d := Waves(3)
	out, err := LineChart(`sin "and" cos`, d)
	if err != nil {
		t.Fatalf("LineChart: %v", err)
	}
	if !strings.HasPrefix(out, "xychart-beta\n") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, `title "sin #quot;and#quot; cos"`) {
		t.Errorf("title not escaped: %q", out)
	}
	if !strings.Contains(out, "x-axis [0, 1, 2]") {
		t.Errorf("missing x-axis: %q", out)
	}
	if strings.Count(out, "    line [") != 2 {
		t.Errorf("expected two lines: %q", out)
	}
	if !strings.Contains(out, "y-axis \"value\" 0.0000 --> 1.0000") {
		t.Errorf("unexpected y-axis: %q", out)
	}
}

func TestLineChartSingleSeries(t *testing.T) {
	out, err := LineChart("", Waves(5), "sin")
	if err != nil {
		t.Fatalf("LineChart: %v", err)
	}
	if strings.Count(out, "    line [") != 1 {
		t.Errorf("expected one line: %q", out)
	}
	if strings.Contains(out, "title") {
		t.Errorf("unexpected title: %q", out)
	}
}

func TestLineChartErrors(t *testing.T) {
	if _, err := LineChart("", Waves(5), "nope"); err == nil {
		t.Error("expected error for unknown series")
	}
	if _, err := LineChart("", Waves(0)); err == nil {
		t.Error("expected error for empty dataset")
	}
}
