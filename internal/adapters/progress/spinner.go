package progress

import (
	"context"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false

	return &SpinnerProgressReporter{spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		r.spinner.Suffix = " " + event.Message
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() { color.New(color.FgCyan).Println(message) })
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() { color.New(color.FgRed).Println(message) })
}

// pause stops an active spinner around print
func (r *SpinnerProgressReporter) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	print()

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
