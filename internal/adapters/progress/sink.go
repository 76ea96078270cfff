package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// SpinnerSink reports progress with a spinner on terminals and plain lines elsewhere
type SpinnerSink struct {
	out         io.Writer
	interactive bool

	mu      sync.Mutex
	spinner *spinner.Spinner
	started time.Time
}

// NewSpinnerSink creates a new progress sink writing to out
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := event.Message
	if event.Total > 0 && message != "" {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, message)
	}

	if !s.interactive {
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if !event.Spinner {
		s.stopLocked()
		return
	}

	if s.spinner == nil {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Writer = s.out
		_ = s.spinner.Color("cyan", "bold")
	}
	s.spinner.Suffix = " " + message
	if !s.spinner.Active() {
		s.started = time.Now()
		s.spinner.Start()
	}
}

// Info prints a message, pausing the spinner
func (s *SpinnerSink) Info(message string) {
	s.print(color.New(color.FgCyan), message)
}

// Error prints an error message, pausing the spinner
func (s *SpinnerSink) Error(message string) {
	s.print(color.New(color.FgRed), message)
}

func (s *SpinnerSink) print(c *color.Color, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.spinner != nil && s.spinner.Active()
	if active {
		s.spinner.Stop()
	}
	if s.interactive {
		c.Fprintln(s.out, message)
	} else {
		fmt.Fprintln(s.out, message)
	}
	if active {
		s.spinner.Start()
	}
}

// Stop halts the spinner if it is running
func (s *SpinnerSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *SpinnerSink) stopLocked() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

// Elapsed returns how long the current spinner has been running
func (s *SpinnerSink) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started)
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
