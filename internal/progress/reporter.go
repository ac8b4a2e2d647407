package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows that a blocking task is running.
type Reporter interface {
	Start(message string)
	Finish(message string)
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{out: os.Stderr}
	}
	return &TerminalReporter{out: os.Stderr}
}

// TerminalReporter displays a spinner in the terminal.
type TerminalReporter struct {
	out  io.Writer
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

func (r *TerminalReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-t.C:
				_ = r.bar.Add(1)
			}
		}
	}()
}

func (r *TerminalReporter) Finish(message string) {
	if r.bar == nil {
		return
	}
	close(r.stop)
	<-r.done
	_ = r.bar.Finish()
	r.bar = nil
	if message != "" {
		fmt.Fprintln(r.out, message)
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	out   io.Writer
	start time.Time
}

func (r *CIReporter) Start(message string) {
	r.start = time.Now()
	fmt.Fprintln(r.out, message)
}

func (r *CIReporter) Finish(message string) {
	fmt.Fprintf(r.out, "%s (%s)\n", message, time.Since(r.start).Round(time.Millisecond))
}
