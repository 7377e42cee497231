// Package errors provides structured error handling for the autoconc CLI.
// Every CLIError carries a category, which the CLI maps to an exit code, and
// remediation steps printed under the message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError.
type ErrorCategory int

const (
	// Argument errors come from the command line, e.g. a bad --concurrency.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or AUTOCONC_* variables.
	Configuration
	// Prerequisite errors mean the test runner or a plugin is missing.
	Prerequisite
	// Runtime errors happen while collecting or running tests.
	Runtime
)

var categoryNames = [...]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Error"
	}
	return categoryNames[c]
}

// CLIError is an error with a category and remediation guidance.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Remediation lists steps that fix the problem, printed as bullets.
	Remediation []string
	// Usage is the correct command syntax for argument errors.
	Usage string
	Cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewArgumentError returns an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage returns an Argument error that also shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	e := NewArgumentError(message, remediation...)
	e.Usage = usage
	return e
}

// NewPrerequisiteError returns a Prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// Wrap classifies err, keeping its message. A nil err yields nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, Cause: err}
}

// WrapWithMessage classifies err and prefixes its message with context.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	e := Wrap(err, category, remediation...)
	if e != nil {
		e.Message = fmt.Sprintf("%s: %v", message, err)
	}
	return e
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
