// Package output provides terminal output formatting utilities for autoconc.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrintExecutingCommand prints the runner command line about to be executed.
// Uses magenta arrow and dim text for the command details.
func PrintExecutingCommand(out io.Writer, argv []string) {
	magenta := color.New(color.FgMagenta).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", magenta("→ Executing:"), dim(JoinArgs(argv)))
}

// JoinArgs renders argv as a single shell-like line, quoting arguments that
// contain whitespace or quotes.
func JoinArgs(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
