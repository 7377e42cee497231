package cli

import (
	stderrors "errors"

	"github.com/bityantriki/autoconc/internal/errors"
)

// Exit codes for the autoconc CLI.
// A failing test run exits with the runner's own exit code instead, so 2-4
// also occur as pytest's interrupted, internal and usage errors.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates an unclassified failure
	ExitFailure = 1

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates the test runner could not be found
	ExitMissingDependencies = 4
)

// runnerExit carries the host runner's non-zero exit code out of a command.
type runnerExit struct {
	code int
}

func (e *runnerExit) Error() string {
	return "test runner failed"
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var re *runnerExit
	if stderrors.As(err, &re) {
		if re.code < 1 {
			return ExitFailure
		}
		return re.code
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument:
			return ExitInvalidArguments
		case errors.Configuration:
			return ExitConfigError
		case errors.Prerequisite:
			return ExitMissingDependencies
		}
	}
	return ExitFailure
}
