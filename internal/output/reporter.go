package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Prefix tags every diagnostic line.
const Prefix = "[AUTO-CONCURRENCY]"

// Notifier receives human-readable diagnostic lines.
type Notifier interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Reporter writes prefixed diagnostic lines to a writer.
type Reporter struct {
	w     io.Writer
	quiet bool

	prefix func(a ...interface{}) string
	warn   func(a ...interface{}) string
}

// NewReporter returns a Reporter writing to w. When useColor is false the
// output is plain text. A quiet Reporter only emits warnings.
func NewReporter(w io.Writer, useColor, quiet bool) *Reporter {
	prefix := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow, color.Bold)
	if !useColor {
		prefix.DisableColor()
		warn.DisableColor()
	}
	return &Reporter{
		w:      w,
		quiet:  quiet,
		prefix: prefix.SprintFunc(),
		warn:   warn.SprintFunc(),
	}
}

// Infof writes an informational line.
func (r *Reporter) Infof(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", r.prefix(Prefix), fmt.Sprintf(format, args...))
}

// Warnf writes a warning line. Warnings are printed even in quiet mode.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s %s\n", r.prefix(Prefix), r.warn("Warning:"), fmt.Sprintf(format, args...))
}

type discard struct{}

func (discard) Infof(string, ...any) {}
func (discard) Warnf(string, ...any) {}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}

// OrDiscard returns n, or Discard when n is nil.
func OrDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return n
}
