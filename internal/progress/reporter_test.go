package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{out: &buf}

	r.Start("computing")
	r.Finish("done")

	out := buf.String()
	if !strings.HasPrefix(out, "computing\n") {
		t.Errorf("missing start line: %q", out)
	}
	if !strings.Contains(out, "done (") {
		t.Errorf("missing finish line: %q", out)
	}
}

func TestTerminalReporterFinishWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{out: &buf}
	r.Finish("done")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestTerminalReporterPrintsMessage(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{out: &buf}
	r.Start("computing")
	r.Finish("sum = 45")
	if !strings.Contains(buf.String(), "sum = 45") {
		t.Errorf("expected final message, got %q", buf.String())
	}
}
