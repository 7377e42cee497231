package output

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity while a blocking step runs. It is a no-op when the
// output is not a terminal.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner with the given suffix on w when caps reports a
// TTY. Unicode dots (set 14) are used.
func StartSpinner(w io.Writer, caps TerminalCapabilities, suffix string) *Spinner {
	if !caps.IsTTY {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	return &Spinner{s: s}
}

// Stop stops the spinner and clears its line.
func (sp *Spinner) Stop() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Stop()
}
