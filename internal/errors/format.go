package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette renders the parts of an error message.
type palette struct {
	label, category, message func(a ...interface{}) string
	usageLabel, usage        func(a ...interface{}) string
	fix, bullet              func(a ...interface{}) string
}

var (
	colored = palette{
		label:      color.New(color.FgRed, color.Bold).SprintFunc(),
		category:   color.New(color.FgYellow).SprintFunc(),
		message:    color.New(color.FgRed).SprintFunc(),
		usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
		usage:      color.New(color.FgCyan).SprintFunc(),
		fix:        color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:     color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label: fmt.Sprint, category: fmt.Sprint, message: fmt.Sprint,
		usageLabel: fmt.Sprint, usage: fmt.Sprint,
		fix: fmt.Sprint, bullet: fmt.Sprint,
	}
)

// FprintError writes err to w:
//
//	Error [Argument Error]: <message>
//
//	Usage: <usage>
//
//	To fix this:
//	  • <step>
//
// The usage and remediation blocks are omitted when empty.
func FprintError(w io.Writer, err *CLIError, useColors bool) {
	if err == nil {
		return
	}
	p := plain
	if useColors {
		p = colored
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category), p.message(err.Message))
	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}
	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	io.WriteString(w, sb.String())
}
