package progress

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// NewSink returns a spinner on terminals and a no-op sink everywhere else
func NewSink(w io.Writer, interactive bool) usecase.ProgressSink {
	if interactive && isTerminal(w) {
		return NewSpinnerSink(w)
	}
	return NewNopSink()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SpinnerSink reports deployment stages with a spinner
type SpinnerSink struct {
	spinner    *spinner.Spinner
	out        io.Writer
	stageStart time.Time
}

// NewSpinnerSink creates a spinner writing to w
func NewSpinnerSink(w io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     w,
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.ProgressComplete:
		s.stop()
		color.New(color.FgGreen).Fprintf(s.out, "✓ %s (%s)\n", event.Message, time.Since(s.stageStart).Round(time.Millisecond))
		return
	case usecase.ProgressFailed:
		// The error itself is printed by the caller
		s.stop()
		return
	case usecase.ProgressLoading:
		s.stageStart = time.Now()
	}

	if event.Spinner {
		s.spinner.Suffix = " " + event.Message
		if !s.spinner.Active() {
			s.spinner.Start()
		}
	} else {
		s.stop()
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.printPaused(color.New(color.FgRed), message)
}

func (s *SpinnerSink) printPaused(c *color.Color, message string) {
	// Stop spinner temporarily
	wasActive := s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	c.Fprintln(s.out, message)

	if wasActive {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stop() {
	if s.spinner.Active() {
		s.spinner.Stop()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
